package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "colordist",
		Short: "colordist - perceptual color distance toolkit",
		Long: `colordist converts colors between RGB, linear RGB, YIQ, HSV, HLS and CIE Lab,
computes normalized distances in each model, and runs the rating study that
compares those distances with human judgement.`,
		Version:      "1.0.0",
		SilenceUsage: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.colordist.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	setDefaults()

	// A missing .env is fine; only report files that exist but fail to load.
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
		}
	}
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 28080)
	viper.SetDefault("server.index", "web/index.html")
	viper.SetDefault("server.rate", 2.0)
	viper.SetDefault("server.burst", 10)
	viper.SetDefault("ratings.driver", "file")
	viper.SetDefault("ratings.output", "ratings.tsv")
	viper.SetDefault("archive.prefix", "ratings")
	viper.SetDefault("archive.ssl", true)

	// The service has always honoured OUTPUT_FILE for the log path.
	viper.BindEnv("ratings.output", "COLORDIST_RATINGS_OUTPUT", "OUTPUT_FILE")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".colordist")
	}

	viper.SetEnvPrefix("COLORDIST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Warning: Error reading config file: %v\n", err)
	}
}
