package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/talent-sourcer/internal/db"
	"github.com/jonathan/talent-sourcer/internal/diagnosis"
	"github.com/jonathan/talent-sourcer/internal/observability"
)

var diagnoseCommand = &cobra.Command{
	Use:   "diagnose",
	Short: "Explain why a job search returns no candidates",
	Long:  "Inspects a job's title, location, and skill filters and suggests the most likely relaxation when searches come back empty.",
	RunE:  runDiagnoseCmd,
}

var (
	diagnoseJobID       string
	diagnoseDatabaseURL string
)

func init() {
	diagnoseCommand.Flags().StringVarP(&diagnoseJobID, "job-id", "j", "", "Job UUID to diagnose (required)")
	diagnoseCommand.Flags().StringVar(&diagnoseDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	_ = diagnoseCommand.MarkFlagRequired("job-id")

	rootCmd.AddCommand(diagnoseCommand)
}

func runDiagnoseCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	jobID, err := uuid.Parse(diagnoseJobID)
	if err != nil {
		return fmt.Errorf("invalid job-id format: %w", err)
	}

	databaseURL := diagnoseDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	job, err := database.GetJob(ctx, jobID)
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintDiagnosis(diagnosis.Diagnose(job))
	return nil
}
