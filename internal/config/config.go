// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/talent-sourcer/internal/provider"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags or environment variables.
type Config struct {
	// Behavior
	MaxCandidates int    `json:"max_candidates,omitempty"`  // Per-run candidate budget
	MinMatchScore int    `json:"min_match_score,omitempty"` // Persistence score threshold
	Sources       string `json:"sources,omitempty"`         // Comma-separated source list
	Parallel      bool   `json:"parallel,omitempty"`        // Scrape sources concurrently
	Verbose       bool   `json:"verbose,omitempty"`         // Print detailed debug information

	// Connections
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	RedisAddr   string `json:"redis_addr,omitempty"`   // Redis host:port for dedup cache
	GeminiKey   string `json:"gemini_api_key,omitempty"`

	// Provider credentials
	ProfileSearchTokens string `json:"profile_search_tokens,omitempty"` // Comma-separated actor tokens
	ProfileSearchActor  string `json:"profile_search_actor,omitempty"`
	DeveloperToken      string `json:"developer_token,omitempty"`
	ResumeDBKey         string `json:"resumedb_api_key,omitempty"`
	ResumeDBURL         string `json:"resumedb_base_url,omitempty"`
	JobBoardKey         string `json:"jobboard_api_key,omitempty"`
	JobBoardURL         string `json:"jobboard_base_url,omitempty"`
}

// Environment variable names consulted by FromEnv.
const (
	EnvDatabaseURL         = "DATABASE_URL"
	EnvRedisAddr           = "REDIS_ADDR"
	EnvGeminiKey           = "GEMINI_API_KEY"
	EnvProfileSearchTokens = "PROFILE_SEARCH_TOKENS"
	EnvProfileSearchActor  = "PROFILE_SEARCH_ACTOR"
	EnvDeveloperToken      = "DEVELOPER_API_TOKEN"
	EnvResumeDBKey         = "RESUMEDB_API_KEY"
	EnvResumeDBURL         = "RESUMEDB_BASE_URL"
	EnvJobBoardKey         = "JOBBOARD_API_KEY"
	EnvJobBoardURL         = "JOBBOARD_BASE_URL"
)

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a Config populated from environment variables.
func FromEnv() Config {
	return Config{
		DatabaseURL:         os.Getenv(EnvDatabaseURL),
		RedisAddr:           os.Getenv(EnvRedisAddr),
		GeminiKey:           os.Getenv(EnvGeminiKey),
		ProfileSearchTokens: os.Getenv(EnvProfileSearchTokens),
		ProfileSearchActor:  os.Getenv(EnvProfileSearchActor),
		DeveloperToken:      os.Getenv(EnvDeveloperToken),
		ResumeDBKey:         os.Getenv(EnvResumeDBKey),
		ResumeDBURL:         os.Getenv(EnvResumeDBURL),
		JobBoardKey:         os.Getenv(EnvJobBoardKey),
		JobBoardURL:         os.Getenv(EnvJobBoardURL),
	}
}

// Validate checks that the configuration has valid values.
// Required fields are enforced by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.MaxCandidates < 0 {
		return fmt.Errorf("config error: 'max_candidates' must be non-negative")
	}
	if c.MinMatchScore < 0 || c.MinMatchScore > 100 {
		return fmt.Errorf("config error: 'min_match_score' must be in [0, 100]")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Sources == "" {
		result.Sources = defaults.Sources
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisAddr == "" {
		result.RedisAddr = defaults.RedisAddr
	}
	if result.GeminiKey == "" {
		result.GeminiKey = defaults.GeminiKey
	}
	if result.ProfileSearchTokens == "" {
		result.ProfileSearchTokens = defaults.ProfileSearchTokens
	}
	if result.ProfileSearchActor == "" {
		result.ProfileSearchActor = defaults.ProfileSearchActor
	}
	if result.DeveloperToken == "" {
		result.DeveloperToken = defaults.DeveloperToken
	}
	if result.ResumeDBKey == "" {
		result.ResumeDBKey = defaults.ResumeDBKey
	}
	if result.ResumeDBURL == "" {
		result.ResumeDBURL = defaults.ResumeDBURL
	}
	if result.JobBoardKey == "" {
		result.JobBoardKey = defaults.JobBoardKey
	}
	if result.JobBoardURL == "" {
		result.JobBoardURL = defaults.JobBoardURL
	}

	if result.MaxCandidates == 0 {
		result.MaxCandidates = defaults.MaxCandidates
	}
	if result.MinMatchScore == 0 {
		result.MinMatchScore = defaults.MinMatchScore
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// SourceList splits the comma-separated source string, trimming whitespace.
func (c *Config) SourceList() []string {
	if c.Sources == "" {
		return nil
	}
	parts := strings.Split(c.Sources, ",")
	sources := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sources = append(sources, s)
		}
	}
	return sources
}

// ProviderConfig assembles the provider registry configuration.
func (c *Config) ProviderConfig() provider.Config {
	return provider.Config{
		ProfileSearch: provider.ProfileSearchConfig{
			Tokens:  c.ProfileSearchTokens,
			ActorID: c.ProfileSearchActor,
		},
		Developer: provider.DeveloperConfig{
			Token: c.DeveloperToken,
		},
		ResumeDB: provider.ResumeDBConfig{
			APIKey:  c.ResumeDBKey,
			BaseURL: c.ResumeDBURL,
		},
		JobBoard: provider.ResumeDBConfig{
			APIKey:  c.JobBoardKey,
			BaseURL: c.JobBoardURL,
		},
	}
}
