package rating

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in      string
		want    Severity
		wantErr bool
	}{
		{"N", SeverityNone, false},
		{"l", SeverityLow, false},
		{" M ", SeverityMedium, false},
		{"S", SeveritySevere, false},
		{"severe", SeveritySevere, false},
		{"H", SeverityNone, true},
		{"P", SeverityNone, true},
		{"?", SeverityNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSeverity(tt.in)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidSeverity))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSeverityDisplay(t *testing.T) {
	assert.Equal(t, "S", SeveritySevere.Code())
	assert.Equal(t, "Medium", SeverityMedium.Label())
	assert.Equal(t, "severity-low", SeverityLow.Tag())
	assert.Equal(t, "N", Severity(-1).Code())
}

func TestBreakdownLevelIsSeparateScale(t *testing.T) {
	h, err := ParseBreakdownLevel("H")
	assert.NoError(t, err)
	assert.Equal(t, BreakdownHigh, h)

	p, err := ParseBreakdownLevel("p")
	assert.NoError(t, err)
	assert.Equal(t, "Prohibited", p.Label())
	assert.Equal(t, "breakdown-prohibited", p.Tag())

	// S belongs to the axis scale only.
	_, err = ParseBreakdownLevel("S")
	assert.Error(t, err)
}

func TestBreakdownOverall(t *testing.T) {
	b := Breakdown{Faith: BreakdownLow, Prohibitions: BreakdownHigh, Normalization: BreakdownMedium}
	assert.Equal(t, BreakdownHigh, b.Overall())
	assert.Equal(t, BreakdownMedium, b.Level(GroupNormalization))
	assert.Equal(t, BreakdownNone, Breakdown{}.Overall())
}

func TestAxisCatalog(t *testing.T) {
	axes := Axes()
	assert.Len(t, axes, 19)

	seen := map[Axis]bool{}
	faith := 0
	for _, a := range axes {
		assert.False(t, seen[a], "duplicate axis %s", a)
		seen[a] = true
		if a.IsFaithRisk() {
			faith++
		}
	}
	assert.Equal(t, 3, faith)

	a, ok := ParseAxis(" Gambling ")
	assert.True(t, ok)
	assert.Equal(t, AxisGambling, a)
}

func TestTierRank(t *testing.T) {
	assert.True(t, TierKufr.AtLeast(TierHaram))
	assert.True(t, TierMashbouh.AtLeast(TierMashbouh))
	assert.False(t, TierHalal.AtLeast(TierMashbouh))
	assert.False(t, TierCode("XXX").Valid())
	assert.Len(t, Tiers(), 4)
}
