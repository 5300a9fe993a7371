// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the explore CLI, an interactive
// tool that grows a tree of related concepts with a generative model and
// exports the result as a text tree and a GraphML document.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwentythree/explore/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command; running it starts an exploration session.
var rootCmd = &cobra.Command{
	Use:   "explore",
	Short: "Interactively explore conceptual connections with Gemini",
	Long: `explore grows a labeled tree of concepts. Each expansion asks the Gemini
API for 4-5 related concepts for a chosen leaf; branches can be pruned and
the tree is saved as a plain text outline and a GraphML file that graph
tools such as Gephi or Cytoscape open directly.

At the prompt, enter a leaf number to expand it, "prune <label>" to remove
a branch, "save" to write the export files, or "exit" to save and quit.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
	RunE: runExplore,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./explore.yaml or ~/.config/explore/config.yaml)")

	rootCmd.Flags().String("root", "", "root concept to start from (default: Creativity)")
	rootCmd.Flags().Int("depth", 0, "maximum branch depth (unlimited if not set)")
	rootCmd.Flags().String("model", "", "Gemini model identifier")
	rootCmd.Flags().String("output-dir", "", "directory for save files")
	rootCmd.Flags().Duration("timeout", 0, "suggestion call timeout")
	rootCmd.Flags().String("script", "", "session script to replay before interactive input")
	rootCmd.Flags().String("journal", "", "session journal database path")
	rootCmd.Flags().Bool("no-journal", false, "disable the session journal")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("explore")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "explore"))
		}
	}

	viper.SetEnvPrefix("EXPLORE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
