// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the configuration structs shared between the CLI
// surface and the internal packages.
package types

import "time"

// AIConfig holds settings for the generative suggestion backend.
type AIConfig struct {
	// Model is the generative model identifier (e.g. "gemini-2.5-flash").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the generative API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Timeout bounds a single suggestion call (default 60s). A timed-out
	// call is reported like any other backend failure; it is never retried
	// automatically.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ExploreConfig holds settings for the interactive session.
type ExploreConfig struct {
	// RootConcept is the label of the root node (default "Creativity").
	RootConcept string `json:"root_concept" yaml:"root_concept"`

	// MaxDepth is the maximum branch depth. Zero or negative means
	// unlimited.
	MaxDepth int `json:"max_depth" yaml:"max_depth"`

	// OutputDir is where save files are written (default ".").
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// JournalConfig holds settings for the SQLite session journal.
type JournalConfig struct {
	// Path is the journal database file (default "explore.db" in the
	// output directory).
	Path string `json:"path" yaml:"path"`

	// Disabled turns journaling off entirely.
	Disabled bool `json:"disabled" yaml:"disabled"`
}

// Config groups all settings for the explorer.
type Config struct {
	AI      AIConfig      `json:"ai" yaml:"ai"`
	Explore ExploreConfig `json:"explore" yaml:"explore"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
}
