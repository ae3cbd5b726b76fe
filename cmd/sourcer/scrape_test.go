package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-sourcer/internal/types"
)

func TestValidSource(t *testing.T) {
	for _, s := range types.AllSources {
		assert.True(t, validSource(s), s)
	}
	assert.False(t, validSource("stackoverflow"))
	assert.False(t, validSource(""))
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["scrape"])
	assert.True(t, names["diagnose"])
	assert.True(t, names["schedule"])
}
