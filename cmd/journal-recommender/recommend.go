// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pdiddy/journal-recommender/internal/backend"
	"github.com/pdiddy/journal-recommender/internal/history"
	"github.com/pdiddy/journal-recommender/internal/intake"
	"github.com/pdiddy/journal-recommender/internal/pipeline"
	"github.com/pdiddy/journal-recommender/internal/podium"
	"github.com/pdiddy/journal-recommender/pkg/types"
)

// fieldFlags maps command-line flags to request wire names. Values are kept
// as strings so the request adapter applies the same parsing it uses for
// form input.
var fieldFlags = []struct {
	flag  string
	field string
	usage string
}{
	{"subject", types.FieldSubjectArea, "subject area of the paper"},
	{"title", types.FieldTitle, "paper title"},
	{"abstract", types.FieldAbstract, "paper abstract"},
	{"acc-from", types.FieldAccFrom, "minimum acceptance rate percent (default 0)"},
	{"acc-to", types.FieldAccTo, "maximum acceptance rate percent (default 100)"},
	{"open-access", types.FieldOpenAccess, `"true" to restrict to open-access journals`},
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend journals for a paper",
	Long: `Recommend sends the paper's subject area, title, and abstract to the
recommendation service and prints the top three journals.

Fields can come from flags, from a YAML or JSON file given with --file, or
both; flags override file values.`,
	RunE: runRecommend,
}

func init() {
	for _, f := range fieldFlags {
		recommendCmd.Flags().String(f.flag, "", f.usage)
	}
	recommendCmd.Flags().String("file", "", "YAML or JSON file with request fields")
	recommendCmd.Flags().Bool("json", false, "output the podium as JSON")
	recommendCmd.Flags().String("backend-url", "", "recommendation service base URL (overrides config)")
	recommendCmd.Flags().Bool("no-history", false, "do not record this submission")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if u, _ := cmd.Flags().GetString("backend-url"); u != "" {
		cfg.Backend.BaseURL = u
	}

	fields, err := requestFields(cmd)
	if err != nil {
		return err
	}

	svc := &pipeline.Service{Backend: backend.New(cfg.Backend), Logger: slog.Default()}
	if noHist, _ := cmd.Flags().GetBool("no-history"); cfg.History.Enabled && !noHist {
		store, err := history.NewStore(cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()
		svc.History = store
	}

	out, err := svc.Recommend(cmd.Context(), fields)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return podium.FormatJSON(out.Podium, cmd.OutOrStdout())
	}
	if !out.Raw.Success {
		fmt.Fprintln(cmd.ErrOrStderr(), "recommendation service reported no success")
	}
	podium.FormatTable(out.Podium, cmd.OutOrStdout())
	return nil
}

// requestFields loads --file when given and overlays every flag the user set.
func requestFields(cmd *cobra.Command) (types.RawFields, error) {
	fields := types.RawFields{}
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		loaded, err := intake.LoadFile(path)
		if err != nil {
			return nil, err
		}
		if loaded != nil {
			fields = loaded
		}
	}

	for _, f := range fieldFlags {
		if !cmd.Flags().Changed(f.flag) {
			continue
		}
		v, _ := cmd.Flags().GetString(f.flag)
		fields[f.field] = v
	}
	return fields, nil
}
