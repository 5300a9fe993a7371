// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fivetwentythree/explore/internal/journal"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent session events from the journal",
	Long: `History reads the session journal database and lists recent events:
expansions (with the concepts attached), prunes (with subtree sizes), and
saves. Events are shown newest first.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("journal")
	if path == "" {
		path = defaultJournalFile
	}

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no journal at %s: %w", path, err)
	}

	j, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer j.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	events, err := j.History(context.Background(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(events)
	}

	if len(events) == 0 {
		fmt.Println("No events recorded.")
		return nil
	}

	for _, ev := range events {
		when := ev.CreatedAt.Local().Format(time.DateTime)
		switch ev.Kind {
		case journal.KindExpand:
			fmt.Printf("%s  [%s]  expand %q -> %s\n", when, ev.RootLabel, ev.Label, ev.Detail)
		case journal.KindPrune:
			fmt.Printf("%s  [%s]  prune %q (%s removed)\n", when, ev.RootLabel, ev.Label, ev.Detail)
		case journal.KindSave:
			fmt.Printf("%s  [%s]  save %s\n", when, ev.RootLabel, ev.Detail)
		default:
			fmt.Printf("%s  [%s]  %s %s\n", when, ev.RootLabel, ev.Kind, ev.Detail)
		}
	}
	fmt.Printf("\n%d events\n", len(events))
	return nil
}

func init() {
	historyCmd.Flags().String("journal", "", "journal database path (default: ./explore.db)")
	historyCmd.Flags().Int("limit", 50, "maximum events to list")
	historyCmd.Flags().Bool("json", false, "output events as JSON")

	rootCmd.AddCommand(historyCmd)
}
