package cmd

import (
	"context"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"colordist/internal/ratings"
	"colordist/internal/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the rating collection service",
	Long:  `Start an HTTP server that serves the study page and records submitted ratings.`,
}

var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the rating HTTP server",
	RunE:  runServerStart,
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.AddCommand(serverStartCmd)

	serverStartCmd.Flags().IntP("port", "p", 28080, "Port to run the server on")
	serverStartCmd.Flags().String("host", "0.0.0.0", "Host address to bind to")
	serverStartCmd.Flags().String("index", "web/index.html", "Path to the study page served at /")
	serverStartCmd.Flags().Float64("rate", 2, "Sustained submissions per second allowed per client (0 = unlimited)")
	serverStartCmd.Flags().Int("burst", 10, "Submissions a client may make in a burst")
	addStoreFlags(serverStartCmd)

	viper.BindPFlag("server.port", serverStartCmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", serverStartCmd.Flags().Lookup("host"))
	viper.BindPFlag("server.index", serverStartCmd.Flags().Lookup("index"))
	viper.BindPFlag("server.rate", serverStartCmd.Flags().Lookup("rate"))
	viper.BindPFlag("server.burst", serverStartCmd.Flags().Lookup("burst"))
}

func runServerStart(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	cfg := server.Config{
		Host:      viper.GetString("server.host"),
		Port:      viper.GetInt("server.port"),
		IndexPath: viper.GetString("server.index"),
		Rate:      viper.GetFloat64("server.rate"),
		Burst:     viper.GetInt("server.burst"),
	}

	if _, err := os.Stat(cfg.IndexPath); os.IsNotExist(err) {
		stdlog.Printf("Warning: index page not found at %s, GET / will answer 500", cfg.IndexPath)
	}
	if viper.GetBool("verbose") {
		currentDir, _ := os.Getwd()
		stdlog.Printf("Current working directory: %s", currentDir)
		stdlog.Printf("Rate limit: %.2f/s, burst %d", cfg.Rate, cfg.Burst)
	}

	return server.New(cfg, store).ListenAndServe(ctx)
}

// addStoreFlags registers the flags every command that touches the rating
// log shares.
func addStoreFlags(c *cobra.Command) {
	c.Flags().String("output", "ratings.tsv", "Rating log file (env OUTPUT_FILE)")
	c.Flags().String("driver", "file", "Rating store: file or mysql")
	c.Flags().String("dsn", "", "MySQL DSN when --driver=mysql")

	// Bound in PreRun so several commands can share the same keys.
	prev := c.PreRunE
	c.PreRunE = func(cmd *cobra.Command, args []string) error {
		viper.BindPFlag("ratings.output", cmd.Flags().Lookup("output"))
		viper.BindPFlag("ratings.driver", cmd.Flags().Lookup("driver"))
		viper.BindPFlag("ratings.dsn", cmd.Flags().Lookup("dsn"))
		if prev != nil {
			return prev(cmd, args)
		}
		return nil
	}
}

func storeConfig() ratings.Config {
	return ratings.Config{
		Driver: viper.GetString("ratings.driver"),
		Output: viper.GetString("ratings.output"),
		DSN:    viper.GetString("ratings.dsn"),
	}
}

func openStore(ctx context.Context) (ratings.Store, error) {
	cfg := storeConfig()
	store, err := ratings.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open rating store: %w", err)
	}
	stdlog.Printf("Recording ratings in %s", storeLocation(store))
	return store, nil
}

func storeLocation(store ratings.Store) string {
	if fs, ok := store.(*ratings.FileStore); ok {
		return fs.Path()
	}
	return "MySQL"
}
