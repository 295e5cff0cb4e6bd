// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package podium

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// field is a logical candidate attribute, independent of upstream key names.
type field int

const (
	fieldName field = iota
	fieldPublisher
	fieldHIndex
	fieldAcceptanceRate
	fieldOpenAccess
	fieldScore
	fieldExplanation
	fieldWebsite
	fieldAbstract
)

// upstreamKeys lists, per logical field, the keys the recommendation service
// has used for it, in lookup order. When the upstream contract drifts, this
// table is the only place that changes.
var upstreamKeys = map[field][]string{
	fieldName:           {"name"},
	fieldPublisher:      {"publisher"},
	fieldHIndex:         {"impactFactor", "h_index", "hIndex"},
	fieldAcceptanceRate: {"acceptanceRate"},
	fieldOpenAccess:     {"openAccess"},
	fieldScore:          {"score"},
	fieldExplanation:    {"explanation"},
	fieldWebsite:        {"homepage", "website"},
	fieldAbstract:       {"abstract"},
}

// rawCandidate wraps one upstream recommendation object.
type rawCandidate struct {
	doc gjson.Result
}

// parseCandidate accepts any JSON value; anything other than an object is
// read as a candidate with every field absent.
func parseCandidate(raw []byte) rawCandidate {
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		doc = gjson.Parse("{}")
	}
	return rawCandidate{doc: doc}
}

// lookup returns the first present value among the field's upstream keys.
func (c rawCandidate) lookup(f field) (gjson.Result, bool) {
	for _, key := range upstreamKeys[f] {
		if r := c.doc.Get(key); present(r) {
			return r, true
		}
	}
	return gjson.Result{}, false
}

// present reports whether r carries a usable value. The service encodes
// "unknown" as null, "", 0 or false, so those count as absent.
func present(r gjson.Result) bool {
	if !r.Exists() {
		return false
	}
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.String:
		return r.Str != ""
	case gjson.Number:
		return r.Num != 0
	default:
		return true
	}
}

func (c rawCandidate) text(f field) (string, bool) {
	r, ok := c.lookup(f)
	if !ok {
		return "", false
	}
	return r.String(), true
}

// number reads a numeric field; numeric strings are accepted.
func (c rawCandidate) number(f field) (float64, bool) {
	r, ok := c.lookup(f)
	if !ok {
		return 0, false
	}
	switch r.Type {
	case gjson.Number:
		return r.Num, true
	case gjson.String:
		n, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64)
		if err != nil || n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func (c rawCandidate) flag(f field) bool {
	r, ok := c.lookup(f)
	return ok && r.Bool()
}
