// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/journal-recommender/internal/history"
	"github.com/pdiddy/journal-recommender/internal/podium"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent submissions",
	Long: `History lists the most recent recommendation submissions recorded in the
local history database, newest first.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of submissions to list")
	historyCmd.Flags().Bool("json", false, "output submissions as JSON")
	historyCmd.Flags().Int("prune", -1, "keep only the newest N submissions, then list")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return fmt.Errorf("history is disabled (history.enabled=false)")
	}

	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	if keep, _ := cmd.Flags().GetInt("prune"); keep >= 0 {
		n, err := store.Prune(cmd.Context(), keep)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Pruned %d submissions\n", n)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	subs, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		if subs == nil {
			subs = []history.Submission{}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(subs)
	}
	formatHistory(subs, cmd.OutOrStdout())
	return nil
}

// formatHistory writes one line per submission.
func formatHistory(subs []history.Submission, w io.Writer) {
	if len(subs) == 0 {
		fmt.Fprintln(w, "No submissions recorded.")
		return
	}
	for _, s := range subs {
		journals := "-"
		if len(s.Journals) > 0 {
			journals = strings.Join(s.Journals, ", ")
		}
		fmt.Fprintf(w, "%s  %-40s  %s\n", s.CreatedAt.Local().Format("2006-01-02 15:04"), podium.Truncate(s.Request.Title, 40), journals)
	}
}
