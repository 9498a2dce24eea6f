// Package cmd implements the CLI commands for SpecPipe using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "specpipe",
	Short: "SpecPipe — turn API documentation into a canonical endpoint catalog",
	Long: `SpecPipe is a deterministic ingestion pipeline that detects the format of
API documentation (OpenAPI JSON/YAML, Swagger, HTML), loads it, and
normalizes it into a canonical endpoint model rendered as JSON, Markdown,
or PDF.

Usage:
  specpipe ingest <file|url> [flags]`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
