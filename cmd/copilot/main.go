// Package main provides the entry point for the Career Copilot CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "copilot",
	Short: "Career Copilot resume and job application assistant",
	Long:  "Career Copilot parses resumes, analyzes job descriptions, tailors resumes toward specific postings, and serves a REST API for application tracking and interview coaching.",
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
