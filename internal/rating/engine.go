package rating

import (
	"log/slog"
	"sort"
)

// Severities maps an axis to its rating. Missing axes count as SeverityNone.
type Severities map[Axis]Severity

// Get returns the severity recorded for an axis, defaulting to None.
func (s Severities) Get(a Axis) Severity {
	if v, ok := s[a]; ok && v.Valid() {
		return v
	}
	return SeverityNone
}

// Codes returns the single-letter code for every axis, in catalog order.
func (s Severities) Codes() map[Axis]string {
	out := make(map[Axis]string, len(axisCatalog))
	for _, a := range Axes() {
		out[a] = s.Get(a).Code()
	}
	return out
}

// NormalizeCodes turns raw axis/code pairs (as found in imports or forms) into
// Severities. Unknown codes become None and unknown axes are dropped; both are
// logged and never fail the whole record.
func NormalizeCodes(raw map[string]string) Severities {
	out := make(Severities, len(axisCatalog))
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		axis, ok := ParseAxis(key)
		if !ok {
			slog.Warn("ignoring unknown severity axis", "axis", key)
			continue
		}
		out[axis] = NormalizeCode(axis, raw[key])
	}
	return out
}

// NormalizeCode parses a code for a single axis, coercing anything unrecognized to None.
func NormalizeCode(axis Axis, code string) Severity {
	if code == "" {
		return SeverityNone
	}
	sev, err := ParseSeverity(code)
	if err != nil {
		slog.Warn("invalid severity code, using None", "axis", string(axis), "code", code)
		return SeverityNone
	}
	return sev
}

// Result is the output of Compute.
type Result struct {
	Tier               TierCode `json:"tier"`
	Flags              []Axis   `json:"flags"`
	RequiresAdjustment bool     `json:"requires_adjustment"`
}

// HasFlag reports whether the axis was flagged.
func (r Result) HasFlag(a Axis) bool {
	for _, f := range r.Flags {
		if f == a {
			return true
		}
	}
	return false
}

// FlagCodes returns the flags as plain strings for storage.
func (r Result) FlagCodes() []string {
	out := make([]string, len(r.Flags))
	for i, f := range r.Flags {
		out[i] = string(f)
	}
	return out
}

// Compute maps per-axis severities to a tier. Faith-risk axes at Severe
// dominate everything, then any Severe gives HRM, then any Medium gives MSH.
// Flags list every axis at Low or above in catalog order.
func Compute(sev Severities, isAdjustable bool) Result {
	res := Result{Tier: TierHalal, Flags: []Axis{}}

	var faithSevere, anySevere, anyMedium bool
	for _, a := range Axes() {
		s := sev.Get(a)
		if s >= SeverityLow {
			res.Flags = append(res.Flags, a)
		}
		switch s {
		case SeveritySevere:
			anySevere = true
			if a.IsFaithRisk() {
				faithSevere = true
			}
		case SeverityMedium:
			anyMedium = true
		}
	}

	switch {
	case faithSevere:
		res.Tier = TierKufr
	case anySevere:
		res.Tier = TierHaram
	case anyMedium:
		res.Tier = TierMashbouh
	}

	res.RequiresAdjustment = isAdjustable && res.Tier.AtLeast(TierMashbouh)
	return res
}
