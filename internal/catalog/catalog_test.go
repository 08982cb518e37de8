package catalog

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsIdempotent(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)

	require.NoError(t, Seed(db))
	require.NoError(t, Seed(db))

	var tiers, flags int64
	require.NoError(t, db.Model(&models.RatingTier{}).Count(&tiers).Error)
	require.NoError(t, db.Model(&models.Flag{}).Count(&flags).Error)
	assert.Equal(t, int64(4), tiers)
	assert.Equal(t, int64(19), flags)
}

func TestLoad(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)

	_, err = Load(db)
	assert.ErrorIs(t, err, ErrNotSeeded)

	require.NoError(t, Seed(db))
	cat, err := Load(db)
	require.NoError(t, err)

	codes := make([]string, 0, 4)
	for _, tier := range cat.Tiers() {
		codes = append(codes, tier.Code)
	}
	assert.Equal(t, []string{"HAL", "MSH", "HRM", "KFR"}, codes)

	first := cat.Flags()[0]
	assert.Equal(t, "promoting_kufr", first.Code)
	assert.Equal(t, "faith", first.Group)

	kfr, ok := cat.Tier("KFR")
	require.True(t, ok)
	assert.NotEmpty(t, kfr.Name)
	_, ok = cat.Tier("XXX")
	assert.False(t, ok)
}

func TestFlagsFor(t *testing.T) {
	cat := New(nil, []models.Flag{
		{Code: "gambling", Name: "Gambling", SortOrder: 5},
		{Code: "horror", Name: "Horror", SortOrder: 12},
	})

	got := cat.FlagsFor([]string{"horror", "retired_axis", "gambling"})
	require.Len(t, got, 2)
	assert.Equal(t, "horror", got[0].Code)
	assert.Equal(t, "gambling", got[1].Code)

	assert.Equal(t, "gambling", cat.Flags()[0].Code)
}
