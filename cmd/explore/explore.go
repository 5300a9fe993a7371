// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwentythree/explore/internal/graph"
	"github.com/fivetwentythree/explore/internal/journal"
	"github.com/fivetwentythree/explore/internal/secrets"
	"github.com/fivetwentythree/explore/internal/session"
	"github.com/fivetwentythree/explore/internal/suggest"
	"github.com/fivetwentythree/explore/pkg/types"
)

const (
	defaultRootConcept = "Creativity"
	defaultJournalFile = "explore.db"
)

func runExplore(cmd *cobra.Command, args []string) error {
	cfg := exploreConfig(cmd)

	// Missing credentials are fatal before any interactive state.
	apiKey := secrets.GoogleAPIKey(loadedSecrets)
	if apiKey == "" {
		return fmt.Errorf("no Gemini credential: set %s or create .secrets/%s",
			secrets.GoogleAPIKeyEnv, secrets.GoogleAPIKeyFile)
	}
	cfg.AI.APIKey = apiKey

	store, err := graph.New(cfg.Explore.RootConcept)
	if err != nil {
		return fmt.Errorf("invalid root concept %q: %w", cfg.Explore.RootConcept, err)
	}

	backend := &suggest.GeminiBackend{
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
		Timeout: cfg.AI.Timeout,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := session.Options{
		MaxDepth:  cfg.Explore.MaxDepth,
		OutputDir: cfg.Explore.OutputDir,
		Input:     os.Stdin,
		Output:    os.Stdout,
	}

	if !cfg.Journal.Disabled {
		j, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: journal disabled: %v\n", err)
		} else {
			defer j.Close()
			if err := j.BeginSession(ctx, cfg.Explore.RootConcept, cfg.Explore.MaxDepth); err != nil {
				fmt.Fprintf(os.Stderr, "warning: journal disabled: %v\n", err)
			} else {
				opts.Journal = j
			}
		}
	}

	if scriptPath, _ := cmd.Flags().GetString("script"); scriptPath != "" {
		s, err := session.ReadScript(scriptPath)
		if err != nil {
			return err
		}
		opts.Script = s.Commands
	}

	return session.New(store, backend, opts).Run(ctx)
}

// exploreConfig resolves settings with flags taking precedence over the
// config file, which takes precedence over defaults.
func exploreConfig(cmd *cobra.Command) types.Config {
	cfg := types.Config{
		AI: types.AIConfig{
			Model:   viper.GetString("ai.model"),
			Timeout: viper.GetDuration("ai.timeout"),
		},
		Explore: types.ExploreConfig{
			RootConcept: viper.GetString("explore.root_concept"),
			MaxDepth:    viper.GetInt("explore.max_depth"),
			OutputDir:   viper.GetString("explore.output_dir"),
		},
		Journal: types.JournalConfig{
			Path:     viper.GetString("journal.path"),
			Disabled: viper.GetBool("journal.disabled"),
		},
	}

	if v, _ := cmd.Flags().GetString("root"); v != "" {
		cfg.Explore.RootConcept = v
	}
	if v, _ := cmd.Flags().GetInt("depth"); v != 0 {
		cfg.Explore.MaxDepth = v
	}
	if v, _ := cmd.Flags().GetString("model"); v != "" {
		cfg.AI.Model = v
	}
	if v, _ := cmd.Flags().GetString("output-dir"); v != "" {
		cfg.Explore.OutputDir = v
	}
	if v, _ := cmd.Flags().GetDuration("timeout"); v != 0 {
		cfg.AI.Timeout = v
	}
	if v, _ := cmd.Flags().GetString("journal"); v != "" {
		cfg.Journal.Path = v
	}
	if v, _ := cmd.Flags().GetBool("no-journal"); v {
		cfg.Journal.Disabled = true
	}

	if cfg.Explore.RootConcept == "" {
		cfg.Explore.RootConcept = defaultRootConcept
	}
	if cfg.Explore.MaxDepth < 0 {
		cfg.Explore.MaxDepth = 0
	}
	if cfg.Explore.OutputDir == "" {
		cfg.Explore.OutputDir = "."
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = suggest.DefaultModel
	}
	if cfg.AI.Timeout <= 0 {
		cfg.AI.Timeout = suggest.DefaultTimeout
	}
	if cfg.Journal.Path == "" {
		cfg.Journal.Path = filepath.Join(cfg.Explore.OutputDir, defaultJournalFile)
	}
	return cfg
}
