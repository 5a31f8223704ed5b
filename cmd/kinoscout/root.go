package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath string
	serverURL  string
	jsonOutput bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "kinoscout",
	Short: "Find where to watch a movie",
	Long: `kinoscout - find where to watch a movie

Resolves titles on Kinopoisk and asks every configured source
(online players, torrent trackers, the local library) where the
movie can be watched.

Run 'kinoscout serve' to start the HTTP API.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: discovered)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8585", "Server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log provider activity to stderr")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("kinoscout {{.Version}}\n")
}
