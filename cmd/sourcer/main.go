// Package main provides the entry point for the talent sourcer CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sourcer",
	Short: "Automated candidate sourcing pipeline",
	Long:  "Sourcer discovers candidates for open jobs across profile-search, developer, and resume-database providers, scores them against the job, and stores the matches.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
