// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package podium

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/journal-recommender/pkg/types"
)

// FormatTable writes the podium as a human-readable table to w.
func FormatTable(cands []types.DisplayCandidate, w io.Writer) {
	if len(cands) == 0 {
		fmt.Fprintln(w, "No matching journals found.")
		return
	}

	fmt.Fprintf(w, "%-14s  %-40s  %-24s  %-6s  %-7s  %-4s  %s\n",
		"Tier", "Journal", "Publisher", "Score", "Accept", "OA", "Website")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for _, c := range cands {
		oa := "No"
		if c.OpenAccess {
			oa = "Yes"
		}
		fmt.Fprintf(w, "%-14s  %-40s  %-24s  %-6s  %-7s  %-4s  %s\n",
			c.RankTier.Label(), Truncate(c.Name, 40), Truncate(c.Publisher, 24),
			fmt.Sprintf("%d/100", c.Score), fmt.Sprintf("%d%%", c.AcceptanceRate), oa, c.WebsiteURL)
	}

	fmt.Fprintln(w)
	for _, c := range cands {
		fmt.Fprintf(w, "%s: %s (h-index %d)\n", c.RankTier.Label(), c.Name, c.HIndexOrImpact)
		fmt.Fprintf(w, "  Why: %s\n", c.Explanation)
	}
}

// FormatJSON writes the podium as indented JSON to w.
func FormatJSON(cands []types.DisplayCandidate, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(cands)
}

// Truncate shortens s to at most max characters, ending in "..." when cut.
// It counts runes, so multi-byte names are never split mid-character.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 3 {
		return string([]rune(s)[:max])
	}
	return string([]rune(s)[:max-3]) + "..."
}
