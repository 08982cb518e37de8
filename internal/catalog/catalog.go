// Package catalog seeds and serves the rating tier and flag reference tables.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/rating"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotSeeded = errors.New("rating catalog is not seeded")

// Seed upserts the tier and flag rows. Safe to run on every start.
func Seed(db *gorm.DB) error {
	tiers := make([]models.RatingTier, 0, len(rating.Tiers()))
	for _, t := range rating.Tiers() {
		tiers = append(tiers, models.RatingTier{
			Code:      string(t.Code),
			Name:      t.Name,
			Icon:      t.Icon,
			Color:     t.Color,
			SortOrder: t.SortOrder,
		})
	}

	flags := make([]models.Flag, 0, len(rating.AxisCatalog()))
	for i, a := range rating.AxisCatalog() {
		flags = append(flags, models.Flag{
			Code:        string(a.Axis),
			Name:        a.Name,
			Group:       string(a.Group),
			Icon:        a.Icon,
			Description: a.Description,
			SortOrder:   i + 1,
		})
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "icon", "color", "sort_order"}),
		}).Create(&tiers).Error; err != nil {
			return fmt.Errorf("seed rating tiers: %w", err)
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "axis_group", "icon", "description", "sort_order"}),
		}).Create(&flags).Error; err != nil {
			return fmt.Errorf("seed flags: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("rating catalog seeded", "tiers", len(tiers), "flags", len(flags))
	return nil
}

// Catalog is an immutable in-memory copy of the reference tables.
type Catalog struct {
	tiers     []models.RatingTier
	flags     []models.Flag
	tierIndex map[string]models.RatingTier
	flagIndex map[string]models.Flag
}

// Load reads both tables once. Every tier code the engine can emit must be present.
func Load(db *gorm.DB) (*Catalog, error) {
	var tiers []models.RatingTier
	if err := db.Order("sort_order ASC").Find(&tiers).Error; err != nil {
		return nil, fmt.Errorf("load rating tiers: %w", err)
	}
	var flags []models.Flag
	if err := db.Order("sort_order ASC").Find(&flags).Error; err != nil {
		return nil, fmt.Errorf("load flags: %w", err)
	}

	c := New(tiers, flags)
	for _, t := range rating.Tiers() {
		if _, ok := c.tierIndex[string(t.Code)]; !ok {
			return nil, fmt.Errorf("%w: missing tier %s", ErrNotSeeded, t.Code)
		}
	}
	return c, nil
}

// New builds a catalog from rows already in memory.
func New(tiers []models.RatingTier, flags []models.Flag) *Catalog {
	c := &Catalog{
		tiers:     append([]models.RatingTier(nil), tiers...),
		flags:     append([]models.Flag(nil), flags...),
		tierIndex: make(map[string]models.RatingTier, len(tiers)),
		flagIndex: make(map[string]models.Flag, len(flags)),
	}
	sort.SliceStable(c.tiers, func(i, j int) bool { return c.tiers[i].SortOrder < c.tiers[j].SortOrder })
	sort.SliceStable(c.flags, func(i, j int) bool { return c.flags[i].SortOrder < c.flags[j].SortOrder })
	for _, t := range c.tiers {
		c.tierIndex[t.Code] = t
	}
	for _, f := range c.flags {
		c.flagIndex[f.Code] = f
	}
	return c
}

func (c *Catalog) Tier(code string) (models.RatingTier, bool) {
	t, ok := c.tierIndex[code]
	return t, ok
}

func (c *Catalog) Flag(code string) (models.Flag, bool) {
	f, ok := c.flagIndex[code]
	return f, ok
}

func (c *Catalog) Tiers() []models.RatingTier {
	return append([]models.RatingTier(nil), c.tiers...)
}

func (c *Catalog) Flags() []models.Flag {
	return append([]models.Flag(nil), c.flags...)
}

// FlagsFor resolves stored flag codes, skipping any the catalog doesn't know.
func (c *Catalog) FlagsFor(codes []string) []models.Flag {
	out := make([]models.Flag, 0, len(codes))
	for _, code := range codes {
		if f, ok := c.flagIndex[code]; ok {
			out = append(out, f)
		}
	}
	return out
}
