package rating

import (
	"fmt"
	"strings"
)

// BreakdownLevel is the five-step scale used by the per-group breakdown.
// It shares some letters with Severity but is a different scale: there is no
// conversion between the two.
type BreakdownLevel int

const (
	BreakdownNone BreakdownLevel = iota
	BreakdownLow
	BreakdownMedium
	BreakdownHigh
	BreakdownProhibited
)

var breakdownCodes = []string{"N", "L", "M", "H", "P"}
var breakdownLabels = []string{"None", "Low", "Medium", "High", "Prohibited"}

func ParseBreakdownLevel(code string) (BreakdownLevel, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	for i := range breakdownCodes {
		if c == breakdownCodes[i] || c == strings.ToUpper(breakdownLabels[i]) {
			return BreakdownLevel(i), nil
		}
	}
	return BreakdownNone, fmt.Errorf("invalid breakdown level %q", code)
}

func (l BreakdownLevel) Valid() bool {
	return l >= BreakdownNone && l <= BreakdownProhibited
}

func (l BreakdownLevel) Code() string {
	if !l.Valid() {
		return breakdownCodes[BreakdownNone]
	}
	return breakdownCodes[l]
}

func (l BreakdownLevel) Label() string {
	if !l.Valid() {
		return breakdownLabels[BreakdownNone]
	}
	return breakdownLabels[l]
}

func (l BreakdownLevel) Tag() string {
	return "breakdown-" + strings.ToLower(l.Label())
}

// Breakdown is an editorial per-group summary. It is stored alongside the
// axis severities and aggregated on its own.
type Breakdown struct {
	Faith         BreakdownLevel `json:"faith"`
	Prohibitions  BreakdownLevel `json:"prohibitions"`
	Normalization BreakdownLevel `json:"normalization"`
}

// Overall is the highest level across the three groups.
func (b Breakdown) Overall() BreakdownLevel {
	max := b.Faith
	if b.Prohibitions > max {
		max = b.Prohibitions
	}
	if b.Normalization > max {
		max = b.Normalization
	}
	return max
}

// Level returns the level recorded for a group.
func (b Breakdown) Level(g Group) BreakdownLevel {
	switch g {
	case GroupFaith:
		return b.Faith
	case GroupProhibitions:
		return b.Prohibitions
	case GroupNormalization:
		return b.Normalization
	}
	return BreakdownNone
}
