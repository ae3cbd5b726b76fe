package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
		"max_candidates": 25,
		"min_match_score": 70,
		"sources": "linkedin,github",
		"database_url": "postgres://localhost/sourcer"
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.MaxCandidates)
	assert.Equal(t, 70, cfg.MinMatchScore)
	assert.Equal(t, []string{"linkedin", "github"}, cfg.SourceList())
	assert.Equal(t, "postgres://localhost/sourcer", cfg.DatabaseURL)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	good := &Config{MaxCandidates: 50, MinMatchScore: 60}
	assert.NoError(t, good.Validate())

	negative := &Config{MaxCandidates: -1}
	assert.Error(t, negative.Validate())

	outOfRange := &Config{MinMatchScore: 101}
	assert.Error(t, outOfRange.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{MaxCandidates: 10}
	defaults := Config{
		MaxCandidates: 50,
		MinMatchScore: 60,
		Sources:       "linkedin",
		DatabaseURL:   "postgres://localhost/sourcer",
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, 10, merged.MaxCandidates, "explicit value wins")
	assert.Equal(t, 60, merged.MinMatchScore)
	assert.Equal(t, "linkedin", merged.Sources)
	assert.Equal(t, "postgres://localhost/sourcer", merged.DatabaseURL)
}

func TestSourceListTrimsAndSkipsEmpty(t *testing.T) {
	cfg := &Config{Sources: " linkedin , github ,,resumedb "}
	assert.Equal(t, []string{"linkedin", "github", "resumedb"}, cfg.SourceList())

	empty := &Config{}
	assert.Nil(t, empty.SourceList())
}

func TestProviderConfig(t *testing.T) {
	cfg := &Config{
		ProfileSearchTokens: "tok-a,tok-b",
		DeveloperToken:      "ghp-x",
		ResumeDBKey:         "rk",
		ResumeDBURL:         "https://resumes.test",
	}

	pc := cfg.ProviderConfig()
	assert.Equal(t, "tok-a,tok-b", pc.ProfileSearch.Tokens)
	assert.Equal(t, "ghp-x", pc.Developer.Token)
	assert.Equal(t, "rk", pc.ResumeDB.APIKey)
	assert.Equal(t, "https://resumes.test", pc.ResumeDB.BaseURL)
}
