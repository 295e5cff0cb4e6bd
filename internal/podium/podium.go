// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package podium normalizes the recommendation service's reply into a fixed
// three-slot podium of fully populated display candidates.
//
// Ranking authority stays with the upstream service: candidates keep the
// order they arrived in and are never re-sorted by score or any other
// field. Positions beyond the podium are dropped silently.
package podium

import (
	"fmt"
	"math"
	"net/url"

	"github.com/pdiddy/journal-recommender/pkg/types"
)

// Size is the number of podium slots.
const Size = 3

const (
	defaultName           = "Unknown Journal"
	defaultPublisher      = "Unknown Publisher"
	defaultAcceptanceRate = 30
	defaultExplanation    = "This journal matches your research area and criteria."
	defaultAbstractFmt    = "%s is a peer-reviewed academic journal that publishes high-quality research articles in its field. " +
		"The journal maintains rigorous standards for publication and serves as an important venue for " +
		"disseminating research findings to the scientific community."

	maxScore = 100
	// maxMetric bounds h-index and acceptance rate so a wild upstream value
	// cannot overflow int.
	maxMetric = math.MaxInt32
	// fallbackStep is the score drop per podium position when upstream sends no score.
	fallbackStep = 10
)

// searchBase is the search engine used when a candidate has no website.
var searchBase = "https://www.google.com/search"

// tiers maps podium position to its label.
var tiers = [Size]types.RankTier{types.TierBest, types.TierSecond, types.TierThird}

// Normalize converts resp into at most Size display candidates in upstream
// order. A nil response, success=false, or an empty recommendation list
// yields an empty slice; that is a "no matches" outcome, not an error.
func Normalize(resp *types.RecommendResponse) []types.DisplayCandidate {
	if resp == nil || !resp.Success || len(resp.Recommendations) == 0 {
		return []types.DisplayCandidate{}
	}

	raw := resp.Recommendations
	if len(raw) > Size {
		raw = raw[:Size]
	}

	out := make([]types.DisplayCandidate, len(raw))
	for i, r := range raw {
		out[i] = normalizeCandidate(parseCandidate(r), i)
	}
	return out
}

// UpstreamNames returns the names the service sent for the podium slots, in
// upstream order. Slots without a name are skipped rather than filled with
// the display default.
func UpstreamNames(resp *types.RecommendResponse) []string {
	if resp == nil || !resp.Success {
		return []string{}
	}
	raw := resp.Recommendations
	if len(raw) > Size {
		raw = raw[:Size]
	}
	names := make([]string, 0, len(raw))
	for _, r := range raw {
		if name, ok := parseCandidate(r).text(fieldName); ok {
			names = append(names, name)
		}
	}
	return names
}

// normalizeCandidate fills every display field of the candidate at podium
// position index, using defaults for anything upstream left out.
func normalizeCandidate(c rawCandidate, index int) types.DisplayCandidate {
	name := textOr(c, fieldName, defaultName)

	d := types.DisplayCandidate{
		Name:           name,
		Publisher:      textOr(c, fieldPublisher, defaultPublisher),
		AcceptanceRate: defaultAcceptanceRate,
		OpenAccess:     c.flag(fieldOpenAccess),
		Score:          fallbackScore(index),
		Explanation:    textOr(c, fieldExplanation, defaultExplanation),
		AbstractText:   textOr(c, fieldAbstract, fmt.Sprintf(defaultAbstractFmt, name)),
		RankTier:       tiers[index],
	}

	if v, ok := c.number(fieldHIndex); ok {
		d.HIndexOrImpact = roundMetric(v)
	}
	if v, ok := c.number(fieldAcceptanceRate); ok {
		d.AcceptanceRate = roundMetric(v)
	}
	if v, ok := c.number(fieldScore); ok {
		d.Score = clampScore(math.Round(v))
	}

	if site, ok := c.text(fieldWebsite); ok {
		d.WebsiteURL = site
	} else {
		d.WebsiteURL = SearchURL(name)
	}
	return d
}

// SearchURL builds a search-engine query URL for a journal name.
func SearchURL(name string) string {
	return searchBase + "?" + url.Values{"q": {name}}.Encode()
}

func textOr(c rawCandidate, f field, def string) string {
	if s, ok := c.text(f); ok {
		return s
	}
	return def
}

// fallbackScore is the positional score for a candidate without one:
// 100, 90, 80 for the three podium slots.
func fallbackScore(index int) int {
	return maxScore - fallbackStep*index
}

// roundMetric rounds v and clamps it to ±maxMetric.
func roundMetric(v float64) int {
	return int(math.Max(-maxMetric, math.Min(maxMetric, math.Round(v))))
}

func clampScore(v float64) int {
	return int(math.Max(0, math.Min(maxScore, v)))
}
