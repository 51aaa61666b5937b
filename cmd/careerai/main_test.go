package main

import (
	"path/filepath"
	"testing"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestBuildStoreOptions(t *testing.T) {
	tests := []struct {
		name     string
		flags    Flags
		expected int
	}{
		{
			name:     "memory store requested",
			flags:    Flags{memory: boolPtr(true), dbDSN: strPtr("postgres://u:p@localhost/db")},
			expected: 1,
		},
		{
			name:     "postgres DSN",
			flags:    Flags{memory: boolPtr(false), dbDSN: strPtr("postgres://u:p@localhost/db")},
			expected: 2,
		},
		{
			name:     "sqlite path",
			flags:    Flags{memory: boolPtr(false), dbDSN: strPtr("/var/lib/careerai/careerai.db")},
			expected: 2,
		},
		{
			name:     "no DSN",
			flags:    Flags{memory: boolPtr(false), dbDSN: strPtr("")},
			expected: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := buildStoreOptions(tt.flags)
			if len(opts) != tt.expected {
				t.Errorf("expected %d store options, got %d", tt.expected, len(opts))
			}
		})
	}
}

func TestBuildGenAIOptions(t *testing.T) {
	flags := Flags{openaiKey: strPtr("sk-test"), model: strPtr("gpt-4o")}
	if got := len(buildGenAIOptions(flags)); got != 2 {
		t.Errorf("expected 2 genai options, got %d", got)
	}

	empty := Flags{openaiKey: strPtr(""), model: strPtr("")}
	if got := len(buildGenAIOptions(empty)); got != 0 {
		t.Errorf("expected 0 genai options, got %d", got)
	}
}

func TestBuildAPIOptions(t *testing.T) {
	flags := Flags{apiAddr: strPtr(":9090")}
	if got := len(buildAPIOptions(flags)); got != 1 {
		t.Errorf("expected 1 api option, got %d", got)
	}

	empty := Flags{apiAddr: strPtr("")}
	if got := len(buildAPIOptions(empty)); got != 0 {
		t.Errorf("expected 0 api options, got %d", got)
	}
}

func TestDefaultDatabasePath(t *testing.T) {
	expected := filepath.Join(DefaultStateDir, DefaultDBFileName)
	if expected != "/var/lib/careerai/careerai.db" {
		t.Errorf("unexpected default database path: %s", expected)
	}
}
