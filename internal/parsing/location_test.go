package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Location
	}{
		{"three segments", "Austin, TX, USA", Location{City: "austin", State: "tx", Country: "usa"}},
		{"city and state abbrev", "Austin, TX", Location{City: "austin", State: "tx"}},
		{"city and full state name", "Austin, Texas", Location{City: "austin", State: "tx"}},
		{"city and country", "Berlin, Germany", Location{City: "berlin", Country: "germany"}},
		{"single segment is country", "Germany", Location{Country: "germany"}},
		{"empty string", "", Location{}},
		{"whitespace segments", "  Austin ,  TX ", Location{City: "austin", State: "tx"}},
		{"trailing comma", "Austin,", Location{Country: "austin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLocation(tt.input))
		})
	}
}

func TestMatchLocations(t *testing.T) {
	tests := []struct {
		name  string
		a, b  string
		match bool
	}{
		{"identical strings", "Austin, TX", "Austin, TX", true},
		{"same city different formatting", "austin, tx", "Austin, TX", true},
		{"same city abbrev vs full state", "Austin, Texas", "Austin, TX", true},
		{"same city conflicting state", "Springfield, IL", "Springfield, MO", false},
		{"same state different city", "Dallas, TX", "Austin, TX", true},
		{"same country different city", "Berlin, Germany", "Munich, Germany", true},
		{"substring containment", "Austin", "Austin, TX, USA", true},
		{"full disagreement", "Austin, TX", "Berlin, Germany", false},
		{"empty candidate side", "", "Austin, TX", false},
		{"both empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.match, MatchLocations(tt.a, tt.b))
		})
	}
}

func TestIsRemoteKeyword(t *testing.T) {
	assert.True(t, IsRemoteKeyword("Remote"))
	assert.True(t, IsRemoteKeyword("Anywhere in the world"))
	assert.True(t, IsRemoteKeyword("Work from home"))
	assert.False(t, IsRemoteKeyword("Austin, TX"))
}
