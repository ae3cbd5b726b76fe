package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/jonathan/talent-sourcer/internal/analysis"
	"github.com/jonathan/talent-sourcer/internal/config"
	"github.com/jonathan/talent-sourcer/internal/db"
	"github.com/jonathan/talent-sourcer/internal/dedup"
	"github.com/jonathan/talent-sourcer/internal/observability"
	"github.com/jonathan/talent-sourcer/internal/provider"
	"github.com/jonathan/talent-sourcer/internal/scraper"
)

var scheduleCommand = &cobra.Command{
	Use:   "schedule",
	Short: "Periodically scrape candidates for every active job",
	Long: `Runs the sourcing pipeline on a cron schedule for all active jobs,
optionally restricted to one user. Stops cleanly on SIGINT or SIGTERM.`,
	RunE: runScheduleCmd,
}

var (
	scheduleConfigPath string
	scheduleEvery      time.Duration
	scheduleUserID     string
	scheduleVerbose    bool
)

func init() {
	scheduleCommand.Flags().StringVar(&scheduleConfigPath, "config", "", "Path to config.json file")
	scheduleCommand.Flags().DurationVar(&scheduleEvery, "every", 6*time.Hour, "Interval between scrape runs")
	scheduleCommand.Flags().StringVar(&scheduleUserID, "user-id", "", "Restrict to active jobs owned by this user")
	scheduleCommand.Flags().BoolVarP(&scheduleVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(scheduleCommand)
}

func runScheduleCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	var cfg config.Config
	if scheduleConfigPath != "" {
		loaded, err := config.LoadConfig(scheduleConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = scheduleVerbose
	}
	cfg = cfg.MergeWithDefaults(config.FromEnv())
	cfg = cfg.MergeWithDefaults(config.Config{
		MaxCandidates: scraper.DefaultMaxCandidates,
		MinMatchScore: scraper.DefaultMinMatchScore,
	})
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	userID := uuid.Nil
	if scheduleUserID != "" {
		var err error
		userID, err = uuid.Parse(scheduleUserID)
		if err != nil {
			return fmt.Errorf("invalid user-id format: %w", err)
		}
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	var seen *dedup.Cache
	if cfg.RedisAddr != "" {
		seen, err = dedup.NewCache(ctx, cfg.RedisAddr)
		if err != nil {
			fmt.Printf("Warning: dedup cache unavailable: %v\n", err)
		} else {
			defer seen.Close()
		}
	}

	var narrator scraper.NarrativeAnalyzer
	if cfg.GeminiKey != "" {
		client, err := analysis.NewClient(ctx, cfg.GeminiKey)
		if err != nil {
			fmt.Printf("Warning: AI analysis unavailable: %v\n", err)
		} else {
			defer client.Close()
			narrator = client
		}
	}

	printer := observability.NewPrinter(os.Stdout)
	orchestrator := scraper.New(database, database, provider.Registry(cfg.ProviderConfig()), seen, narrator)

	scheduler := cron.New()
	spec := "@every " + scheduleEvery.String()
	_, err = scheduler.AddFunc(spec, func() {
		scrapeActiveJobs(ctx, database, orchestrator, printer, userID, cfg)
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	scheduler.Start()
	fmt.Printf("Scheduler started, scraping every %s. Waiting for signals...\n", scheduleEvery)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	fmt.Printf("Received %s, stopping scheduler...\n", sig)

	// Wait for any in-flight run to finish.
	<-scheduler.Stop().Done()
	return nil
}

func scrapeActiveJobs(ctx context.Context, database *db.DB, orchestrator *scraper.Orchestrator, printer *observability.Printer, userID uuid.UUID, cfg config.Config) {
	jobs, err := database.ListActiveJobs(ctx, userID)
	if err != nil {
		fmt.Printf("Warning: failed to list active jobs: %v\n", err)
		return
	}
	fmt.Printf("Scheduled run: %d active job(s)\n", len(jobs))

	for _, job := range jobs {
		results, err := orchestrator.ScrapeForJob(ctx, job.ID, scraper.Options{
			Sources:       cfg.SourceList(),
			MaxCandidates: cfg.MaxCandidates,
			MinMatchScore: cfg.MinMatchScore,
			Parallel:      cfg.Parallel,
			Verbose:       cfg.Verbose,
		})
		if err != nil {
			fmt.Printf("Warning: scrape for job %s failed: %v\n", job.ID, err)
			continue
		}
		fmt.Printf("Job %q:\n", job.Title)
		printer.PrintScrapeResults(results)
	}
}
