package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
games:
  - title: Stardew Valley
    developer: ConcernedApe
    release_date: "2016-02-26"
    platforms: [pc, switch, mobile]
    is_adjustable: true
    stores:
      steam: https://store.steampowered.com/app/413150
    severities:
      music_instruments: L
      time_waste: m
      not_an_axis: S
    breakdown:
      normalization: M
  - title: Idol Maker
    severities:
      assuming_divinity: S
      gambling: S
  - title: Broken Date
    release_date: yesterday
  - title: Weird Codes
    severities:
      indecency: Z
`

func TestParseAndRun(t *testing.T) {
	f, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, f.Games, 4)

	db, err := database.OpenMemory()
	require.NoError(t, err)
	svc := services.NewGameService(db, nil)

	sum := Run(svc, f)
	assert.Equal(t, 3, sum.Created)
	assert.Equal(t, 0, sum.Updated)
	assert.Equal(t, 1, sum.Failed)
	assert.Equal(t, map[string]int{"MSH": 1, "KFR": 1, "HAL": 1}, sum.Tiers)

	stardew, err := svc.GetBySlug("stardew-valley")
	require.NoError(t, err)
	assert.Equal(t, "MSH", stardew.RatingTier)
	assert.True(t, stardew.RequiresAdjustment)
	assert.True(t, stardew.AvailableSwitch)
	assert.False(t, stardew.AvailableXbox)
	assert.Equal(t, "M", stardew.Breakdown.Normalization)
	assert.Equal(t, "N", stardew.Breakdown.Faith)
	assert.Equal(t, []string{"music_instruments", "time_waste"}, []string(stardew.Flags))
	assert.NotEmpty(t, stardew.SteamURL)

	weird, err := svc.GetBySlug("weird-codes")
	require.NoError(t, err)
	assert.Equal(t, "HAL", weird.RatingTier, "an invalid code never raises the tier")
	assert.Empty(t, weird.Flags)

	// A second run updates in place.
	sum = Run(svc, f)
	assert.Equal(t, 0, sum.Created)
	assert.Equal(t, 3, sum.Updated)

	var n int64
	require.NoError(t, db.Model(&models.Game{}).Count(&n).Error)
	assert.Equal(t, int64(3), n)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse(strings.NewReader("games:\n  - title: X\n    severity: {}\n"))
	assert.Error(t, err)
}

func TestParse_Empty(t *testing.T) {
	f, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Games)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.yml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	f, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, f.Games, 4)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	empty := filepath.Join(t.TempDir(), "empty.yml")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	f, err = ParseFile(empty)
	require.NoError(t, err)
	assert.Empty(t, f.Games)
}
