package rating

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidSeverity = errors.New("invalid severity code")

// Severity is the per-axis ordinal used by the tier engine.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityLow
	SeverityMedium
	SeveritySevere
)

var severityCodes = map[Severity]string{
	SeverityNone:   "N",
	SeverityLow:    "L",
	SeverityMedium: "M",
	SeveritySevere: "S",
}

var severityLabels = map[Severity]string{
	SeverityNone:   "None",
	SeverityLow:    "Low",
	SeverityMedium: "Medium",
	SeveritySevere: "Severe",
}

var severityTags = map[Severity]string{
	SeverityNone:   "severity-none",
	SeverityLow:    "severity-low",
	SeverityMedium: "severity-medium",
	SeveritySevere: "severity-severe",
}

// ParseSeverity accepts a single-letter code (N/L/M/S) or the full label, case-insensitive.
func ParseSeverity(code string) (Severity, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	switch c {
	case "N", "NONE":
		return SeverityNone, nil
	case "L", "LOW":
		return SeverityLow, nil
	case "M", "MEDIUM":
		return SeverityMedium, nil
	case "S", "SEVERE":
		return SeveritySevere, nil
	}
	return SeverityNone, fmt.Errorf("%w: %q", ErrInvalidSeverity, code)
}

func (s Severity) Valid() bool {
	return s >= SeverityNone && s <= SeveritySevere
}

func (s Severity) Code() string {
	if c, ok := severityCodes[s]; ok {
		return c
	}
	return severityCodes[SeverityNone]
}

// Label is the human readable form shown next to an axis.
func (s Severity) Label() string {
	if l, ok := severityLabels[s]; ok {
		return l
	}
	return severityLabels[SeverityNone]
}

// Tag is a stable class-like identifier for styling a severity badge.
func (s Severity) Tag() string {
	if t, ok := severityTags[s]; ok {
		return t
	}
	return severityTags[SeverityNone]
}

func (s Severity) String() string {
	return s.Label()
}
