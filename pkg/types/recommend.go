// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the journal recommender:
// the canonical request sent to the recommendation service, the raw reply it
// sends back, and the display candidates shown on the podium.
package types

import "encoding/json"

// RawFields holds untyped, user-entered values keyed by their wire names
// (subjectArea, title, abstract, accPercentFrom, accPercentTo, openAccess).
// Values come from JSON bodies, CLI flags, or YAML request files, so each
// may be a string, number, bool, or nil.
type RawFields map[string]any

// Wire names of the request fields.
const (
	FieldSubjectArea = "subjectArea"
	FieldTitle       = "title"
	FieldAbstract    = "abstract"
	FieldAccFrom     = "accPercentFrom"
	FieldAccTo       = "accPercentTo"
	FieldOpenAccess  = "openAccess"
)

// RecommendationRequest is the canonical request forwarded to the external
// recommendation service.
type RecommendationRequest struct {
	// SubjectArea is the research subject area (e.g. "Computer Science").
	SubjectArea string `json:"subjectArea" yaml:"subjectArea"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// AcceptanceRateFrom is the lower acceptance-rate filter in percent, 0-100.
	AcceptanceRateFrom int `json:"accPercentFrom" yaml:"accPercentFrom"`

	// AcceptanceRateTo is the upper acceptance-rate filter in percent, 0-100.
	AcceptanceRateTo int `json:"accPercentTo" yaml:"accPercentTo"`

	// OpenAccessOnly restricts recommendations to open-access journals.
	OpenAccessOnly bool `json:"openAccess" yaml:"openAccess"`
}

// RecommendResponse is the reply of the external recommendation service.
// Recommendations are kept as raw JSON so absent and aliased fields stay
// observable to the normalizer.
type RecommendResponse struct {
	Success         bool              `json:"success"`
	InputData       map[string]any    `json:"inputData,omitempty"`
	Recommendations []json.RawMessage `json:"recommendations"`
	ProcessingTime  float64           `json:"processingTime"`
}

// RankTier is the podium label assigned by final position.
type RankTier string

const (
	TierBest   RankTier = "Best"
	TierSecond RankTier = "Second"
	TierThird  RankTier = "Third"
)

// Label returns the human-readable podium badge for the tier.
func (t RankTier) Label() string {
	switch t {
	case TierBest:
		return "Best Match"
	case TierSecond:
		return "Second Choice"
	case TierThird:
		return "Third Choice"
	default:
		return string(t)
	}
}

// DisplayCandidate is one fully populated podium entry. Every field has a
// value; missing upstream data is replaced by defaults during normalization.
type DisplayCandidate struct {
	Name           string   `json:"name" yaml:"name"`
	Publisher      string   `json:"publisher" yaml:"publisher"`
	HIndexOrImpact int      `json:"hIndexOrImpact" yaml:"h_index_or_impact"`
	AcceptanceRate int      `json:"acceptanceRate" yaml:"acceptance_rate"`
	OpenAccess     bool     `json:"openAccess" yaml:"open_access"`
	Score          int      `json:"score" yaml:"score"`
	Explanation    string   `json:"explanation" yaml:"explanation"`
	WebsiteURL     string   `json:"websiteUrl" yaml:"website_url"`
	AbstractText   string   `json:"abstractText" yaml:"abstract_text"`
	RankTier       RankTier `json:"rankTier" yaml:"rank_tier"`
}
