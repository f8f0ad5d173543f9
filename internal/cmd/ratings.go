package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"colordist/internal/ratings"
)

var ratingsCmd = &cobra.Command{
	Use:   "ratings",
	Short: "Inspect and archive the rating log",
}

var ratingsCheckCmd = &cobra.Command{
	Use:   "check [ratings.tsv]",
	Short: "Validate every line of a rating log",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRatingsCheck,
}

var ratingsArchiveCmd = &cobra.Command{
	Use:   "archive [ratings.tsv]",
	Short: "Upload a snapshot of the rating log to S3-compatible storage",
	Long: `Uploads the rating log to the configured bucket as
<prefix>/ratings-YYYY-MM-DD-HH-MM.tsv (UTC).

Storage is configured through the archive.* keys or the matching
COLORDIST_ARCHIVE_* environment variables (ENDPOINT, ACCESS_KEY, SECRET_KEY,
BUCKET, PREFIX, SSL).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRatingsArchive,
}

var ratingsArchivesCmd = &cobra.Command{
	Use:   "archives",
	Short: "List or delete archived rating log snapshots",
	Long: `Lists the archived rating log snapshots. With --delete the named
snapshot keys are removed from the bucket instead.`,
	RunE: runRatingsArchives,
}

func init() {
	rootCmd.AddCommand(ratingsCmd)
	ratingsCmd.AddCommand(ratingsCheckCmd)
	ratingsCmd.AddCommand(ratingsArchiveCmd)
	ratingsCmd.AddCommand(ratingsArchivesCmd)

	addStoreFlags(ratingsCheckCmd)
	addStoreFlags(ratingsArchiveCmd)

	ratingsCmd.PersistentFlags().String("endpoint", "", "S3 endpoint (host:port)")
	ratingsCmd.PersistentFlags().String("bucket", "", "Bucket name")
	ratingsCmd.PersistentFlags().String("prefix", "ratings", "Key prefix inside the bucket")
	viper.BindPFlag("archive.endpoint", ratingsCmd.PersistentFlags().Lookup("endpoint"))
	viper.BindPFlag("archive.bucket", ratingsCmd.PersistentFlags().Lookup("bucket"))
	viper.BindPFlag("archive.prefix", ratingsCmd.PersistentFlags().Lookup("prefix"))

	ratingsArchivesCmd.Flags().Int("limit", 0, "Maximum number of snapshots to list (0 = all)")
	ratingsArchivesCmd.Flags().Bool("json", false, "Print JSON instead of a table")
	ratingsArchivesCmd.Flags().StringSlice("delete", nil, "Snapshot keys to delete")
}

func archiveConfig() (ratings.ArchiveConfig, error) {
	cfg := ratings.ArchiveConfig{
		Endpoint:  viper.GetString("archive.endpoint"),
		AccessKey: viper.GetString("archive.access_key"),
		SecretKey: viper.GetString("archive.secret_key"),
		Bucket:    viper.GetString("archive.bucket"),
		Prefix:    viper.GetString("archive.prefix"),
		UseSSL:    viper.GetBool("archive.ssl"),
	}
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return cfg, fmt.Errorf("archive endpoint and bucket are required (set archive.endpoint and archive.bucket)")
	}
	return cfg, nil
}

func logPath(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return viper.GetString("ratings.output")
}

func runRatingsCheck(cmd *cobra.Command, args []string) error {
	path := logPath(args)
	rs, bad, err := ratings.ReadLogFile(path)
	if err != nil {
		return fmt.Errorf("failed to read rating log: %w", err)
	}

	for _, le := range bad {
		fmt.Fprintf(os.Stderr, "%v\n", le)
	}
	fmt.Printf("%s: %s valid ratings, %s malformed lines\n", path, humanize.Comma(int64(len(rs))), humanize.Comma(int64(len(bad))))
	if len(rs) > 0 {
		first, last := rs[0].Time, rs[0].Time
		for _, r := range rs[1:] {
			if r.Time.Before(first) {
				first = r.Time
			}
			if r.Time.After(last) {
				last = r.Time
			}
		}
		fmt.Printf("Collected from %s to %s (%s)\n",
			first.UTC().Format(time.RFC3339), last.UTC().Format(time.RFC3339), last.Sub(first).Round(time.Second))
	}
	if len(bad) > 0 {
		return fmt.Errorf("%d malformed lines in %s", len(bad), path)
	}
	return nil
}

func runRatingsArchive(cmd *cobra.Command, args []string) error {
	cfg, err := archiveConfig()
	if err != nil {
		return err
	}
	path := logPath(args)

	info, err := ratings.NewArchiver(cfg).Upload(cmd.Context(), path, time.Now())
	if err != nil {
		return err
	}
	stdlog.Printf("Archived %s to %s/%s (%s)", path, cfg.Bucket, info.Key, humanize.Bytes(uint64(info.Size)))
	return nil
}

func runRatingsArchives(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")
	keys, _ := cmd.Flags().GetStringSlice("delete")

	cfg, err := archiveConfig()
	if err != nil {
		return err
	}
	archiver := ratings.NewArchiver(cfg)
	if len(keys) > 0 {
		return deleteSnapshots(cmd.Context(), archiver, keys, os.Stdout)
	}
	objects, err := archiver.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(objects)
	}
	if len(objects) == 0 {
		fmt.Println("No archived snapshots found.")
		return nil
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tSIZE\tMODIFIED\t")
	for _, o := range objects {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", o.Key, humanize.Bytes(uint64(o.Size)), humanize.Time(o.LastModified))
	}
	return tw.Flush()
}

type snapshotRemover interface {
	Remove(ctx context.Context, key string) error
}

// deleteSnapshots removes each key in turn and stops at the first failure.
func deleteSnapshots(ctx context.Context, r snapshotRemover, keys []string, w io.Writer) error {
	for i, key := range keys {
		if err := r.Remove(ctx, key); err != nil {
			return fmt.Errorf("deleted %d of %d snapshots: %w", i, len(keys), err)
		}
		fmt.Fprintf(w, "Deleted %s\n", key)
	}
	return nil
}
