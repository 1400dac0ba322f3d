/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// Global flags
var (
	logLevel  string
	logFile   string
	noHistory bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "crates",
	Short: "Look up releases, artists and labels on Discogs",
	Long: `crates is a command-line client for the Discogs database.

It fetches releases, masters, artists and labels by ID and prints any of
their fields, either through a Go template or as JSON or YAML. Nested
objects such as a release's tracklist or an artist's aliases are read
straight from the fetched record without further requests.

Run 'crates auth' first to store your Discogs personal access token.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path, rotated automatically (default: stderr)")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "Do not record lookups in the history database")
}
