// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package intake turns raw, user-entered form values into a canonical
// RecommendationRequest. Text fields are required; numeric filters are
// parsed leniently and fall back to defaults so a malformed filter never
// blocks a request that carries valid research content.
package intake

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/journal-recommender/pkg/types"
)

const (
	// DefaultAccFrom is used when accPercentFrom is absent or unparseable.
	DefaultAccFrom = 0
	// DefaultAccTo is used when accPercentTo is absent or unparseable.
	DefaultAccTo = 100

	minRate = 0
	maxRate = 100
)

// ErrValidation is matched by every ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError reports required text fields that were empty or absent.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// requiredFields lists the text fields in the order they are reported.
var requiredFields = []string{types.FieldSubjectArea, types.FieldTitle, types.FieldAbstract}

// Build validates fields and produces a RecommendationRequest. It returns a
// *ValidationError when any required text field is missing; numeric and
// boolean fields never cause an error.
func Build(fields types.RawFields) (types.RecommendationRequest, error) {
	text := make(map[string]string, len(requiredFields))
	var missing []string
	for _, key := range requiredFields {
		s := textValue(fields[key])
		if s == "" {
			missing = append(missing, key)
			continue
		}
		text[key] = s
	}
	if len(missing) > 0 {
		return types.RecommendationRequest{}, &ValidationError{Missing: missing}
	}

	return types.RecommendationRequest{
		SubjectArea:        text[types.FieldSubjectArea],
		Title:              text[types.FieldTitle],
		Abstract:           text[types.FieldAbstract],
		AcceptanceRateFrom: rateOrDefault(fields[types.FieldAccFrom], DefaultAccFrom),
		AcceptanceRateTo:   rateOrDefault(fields[types.FieldAccTo], DefaultAccTo),
		OpenAccessOnly:     openAccess(fields[types.FieldOpenAccess]),
	}, nil
}

// LoadFile reads a YAML request file whose keys are the wire field names.
func LoadFile(path string) (types.RawFields, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request file: %w", err)
	}
	fields := types.RawFields{}
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parsing request file: %w", err)
	}
	return fields, nil
}

// textValue returns the trimmed string form of v, or "" for nil and
// values that have no string form.
func textValue(v any) string {
	if v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// openAccess accepts exactly two spellings of true: the boolean and the
// string "true". Everything else, "yes" and 1 included, is false.
func openAccess(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return x == "true"
	default:
		return false
	}
}

// rateOrDefault parses v as an integer percentage clamped to [0,100],
// returning def when v has no integer reading.
func rateOrDefault(v any, def int) int {
	f, ok := parseLeadingInt(v)
	if !ok {
		return def
	}
	return int(math.Max(minRate, math.Min(maxRate, f)))
}

// parseLeadingInt reads an integer from v. Numbers are truncated toward
// zero; strings contribute their leading integer prefix ("42%" is 42,
// "3.9" is 3). Booleans, nil, and strings without leading digits fail.
func parseLeadingInt(v any) (float64, bool) {
	switch x := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		return leadingInt(x)
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		s, serr := cast.ToStringE(v)
		if serr != nil {
			return 0, false
		}
		return leadingInt(s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return math.Trunc(f), true
}

func leadingInt(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	sign := 1.0
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return sign * n, true
}
