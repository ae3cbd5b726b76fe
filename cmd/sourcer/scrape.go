package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/talent-sourcer/internal/analysis"
	"github.com/jonathan/talent-sourcer/internal/config"
	"github.com/jonathan/talent-sourcer/internal/db"
	"github.com/jonathan/talent-sourcer/internal/dedup"
	"github.com/jonathan/talent-sourcer/internal/diagnosis"
	"github.com/jonathan/talent-sourcer/internal/observability"
	"github.com/jonathan/talent-sourcer/internal/provider"
	"github.com/jonathan/talent-sourcer/internal/scraper"
	"github.com/jonathan/talent-sourcer/internal/types"
)

var scrapeCommand = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape candidates for one job across all configured sources",
	Long: `Loads the job, builds a weighted source plan, queries each provider, scores
the results, and stores every valid candidate at or above the match threshold.

Provider failures are isolated per source and reported in the summary; the
command fails only when the job itself cannot be loaded.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runScrapeCmd,
}

var (
	scrapeConfigPath    string
	scrapeJobID         string
	scrapeSources       string
	scrapeProvider      string
	scrapeMaxCandidates int
	scrapeMinScore      int
	scrapeParallel      bool
	scrapeVerbose       bool
	scrapeDatabaseURL   string
	scrapeRedisAddr     string
	scrapeAPIKey        string
)

func init() {
	scrapeCommand.Flags().StringVar(&scrapeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	scrapeCommand.Flags().StringVarP(&scrapeJobID, "job-id", "j", "", "Job UUID to scrape for (required)")
	scrapeCommand.Flags().StringVar(&scrapeSources, "sources", "", "Comma-separated sources (linkedin,github,resumedb,jobboard); empty uses the analyzer recommendation")
	scrapeCommand.Flags().StringVar(&scrapeProvider, "provider", "", "Restrict the run to a single source (shorthand for --sources with one entry)")
	scrapeCommand.Flags().IntVar(&scrapeMaxCandidates, "max-candidates", 0, "Total candidate budget across sources (default 50)")
	scrapeCommand.Flags().IntVar(&scrapeMinScore, "min-match-score", 0, "Minimum match score to store a candidate (default 60)")
	scrapeCommand.Flags().BoolVar(&scrapeParallel, "parallel", false, "Query sources concurrently")
	scrapeCommand.Flags().BoolVarP(&scrapeVerbose, "verbose", "v", false, "Print detailed debug information")

	scrapeCommand.Flags().StringVar(&scrapeDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	scrapeCommand.Flags().StringVar(&scrapeRedisAddr, "redis-addr", "", "Redis host:port for the dedup cache (optional, defaults to REDIS_ADDR env var)")
	scrapeCommand.Flags().StringVar(&scrapeAPIKey, "api-key", "", "Gemini API key for candidate narratives (optional, defaults to GEMINI_API_KEY env var)")

	_ = scrapeCommand.MarkFlagRequired("job-id")

	rootCmd.AddCommand(scrapeCommand)
}

func runScrapeCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadScrapeConfig(cmd)
	if err != nil {
		return err
	}

	jobID, err := uuid.Parse(scrapeJobID)
	if err != nil {
		return fmt.Errorf("invalid job-id format: %w", err)
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
			fmt.Printf("Continuing with database-only dedup...\n")
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

	if cfg.Verbose {
		if job, err := database.GetJob(ctx, jobID); err == nil {
			printer.PrintJob(job)
		}
	}

	results, err := orchestrator.ScrapeForJob(ctx, jobID, scraper.Options{
		Sources:       cfg.SourceList(),
		MaxCandidates: cfg.MaxCandidates,
		MinMatchScore: cfg.MinMatchScore,
		Parallel:      cfg.Parallel,
		Verbose:       cfg.Verbose,
	})
	if err != nil {
		return err
	}

	printer.PrintScrapeResults(results)

	totalFound := 0
	for _, r := range results {
		totalFound += r.CandidatesFound
	}
	if totalFound == 0 && len(results) > 0 {
		if job, jobErr := database.GetJob(ctx, jobID); jobErr == nil {
			printer.PrintDiagnosis(diagnosis.Diagnose(job))
		}
	}

	return nil
}

// loadScrapeConfig merges config file, explicit flags, environment
// variables, and defaults, in that priority order.
func loadScrapeConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if scrapeConfigPath != "" {
		loaded, err := config.LoadConfig(scrapeConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
		if scrapeVerbose {
			fmt.Printf("Loaded config from: %s\n", scrapeConfigPath)
		}
	}

	cfg = cfg.MergeWithDefaults(config.FromEnv())
	cfg = cfg.MergeWithDefaults(config.Config{
		MaxCandidates: scraper.DefaultMaxCandidates,
		MinMatchScore: scraper.DefaultMinMatchScore,
	})

	// Explicit flags win over file, env, and defaults. Applying them after
	// the merges lets --min-match-score 0 disable the threshold; the merge
	// treats zero as unset.
	if cmd.Flags().Changed("sources") {
		cfg.Sources = scrapeSources
	}
	if cmd.Flags().Changed("provider") {
		if cmd.Flags().Changed("sources") {
			return cfg, fmt.Errorf("--provider and --sources are mutually exclusive; provide only one")
		}
		cfg.Sources = scrapeProvider
	}
	if cmd.Flags().Changed("max-candidates") {
		cfg.MaxCandidates = scrapeMaxCandidates
	}
	if cmd.Flags().Changed("min-match-score") {
		cfg.MinMatchScore = scrapeMinScore
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Parallel = scrapeParallel
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = scrapeVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = scrapeDatabaseURL
	}
	if cmd.Flags().Changed("redis-addr") {
		cfg.RedisAddr = scrapeRedisAddr
	}
	if cmd.Flags().Changed("api-key") {
		cfg.GeminiKey = scrapeAPIKey
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}
	for _, s := range cfg.SourceList() {
		if !validSource(s) {
			return cfg, fmt.Errorf("unknown source %q (valid: %v)", s, types.AllSources)
		}
	}
	return cfg, nil
}

func validSource(s string) bool {
	for _, known := range types.AllSources {
		if s == known {
			return true
		}
	}
	return false
}
