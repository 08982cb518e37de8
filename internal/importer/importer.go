// Package importer loads game ratings from a YAML file.
//
//	games:
//	  - title: Stardew Valley
//	    developer: ConcernedApe
//	    release_date: "2016-02-26"
//	    platforms: [pc, switch, mobile]
//	    is_adjustable: true
//	    severities:
//	      music_instruments: L
//	      time_waste: M
//	    breakdown:
//	      normalization: M
package importer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/services"
	"gopkg.in/yaml.v3"
)

type File struct {
	Games []Record `yaml:"games"`
}

type Record struct {
	Title        string            `yaml:"title"`
	Slug         string            `yaml:"slug"`
	Developer    string            `yaml:"developer"`
	Publisher    string            `yaml:"publisher"`
	ReleaseDate  string            `yaml:"release_date"`
	CoverURL     string            `yaml:"cover_url"`
	Stores       map[string]string `yaml:"stores"`
	Platforms    []string          `yaml:"platforms"`
	IsAdjustable bool              `yaml:"is_adjustable"`
	Rationale    string            `yaml:"rationale"`
	Severities   map[string]string `yaml:"severities"`
	Breakdown    map[string]string `yaml:"breakdown"`
}

func Parse(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("failed to parse import file: %w", err)
	}
	return &f, nil
}

// ParseFile reads and parses the file at path. The file is closed before returning.
func ParseFile(path string) (*File, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open import file: %w", err)
	}
	defer in.Close()
	return Parse(in)
}

// Game converts the record into a model. Unknown axes and invalid codes are
// logged and treated as none.
func (r *Record) Game() (*models.Game, error) {
	req := dto.GameRequest{
		Title:          r.Title,
		Slug:           r.Slug,
		Developer:      r.Developer,
		Publisher:      r.Publisher,
		ReleaseDate:    r.ReleaseDate,
		CoverURL:       r.CoverURL,
		SteamURL:       r.Stores["steam"],
		PlayStationURL: r.Stores["playstation"],
		XboxURL:        r.Stores["xbox"],
		NintendoURL:    r.Stores["nintendo"],
		AppStoreURL:    r.Stores["app_store"],
		PlayStoreURL:   r.Stores["play_store"],
		Platforms:      r.Platforms,
		Severities:     r.Severities,
		Breakdown:      r.Breakdown,
		IsAdjustable:   r.IsAdjustable,
		Rationale:      r.Rationale,
	}

	var g models.Game
	if err := req.ApplyTo(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

type Summary struct {
	Created int
	Updated int
	Failed  int
	Tiers   map[string]int
}

// Run upserts every record. A bad record is logged and counted, the rest
// still import.
func Run(games *services.GameService, f *File) Summary {
	sum := Summary{Tiers: make(map[string]int)}
	for i := range f.Games {
		rec := &f.Games[i]
		g, created, err := importOne(games, rec)
		if err != nil {
			sum.Failed++
			slog.Error("game import failed", "index", i, "title", rec.Title, "error", err)
			continue
		}
		if created {
			sum.Created++
		} else {
			sum.Updated++
		}
		sum.Tiers[g.RatingTier]++
		slog.Info("game imported", "title", g.Title, "tier", g.RatingTier, "flags", len(g.Flags), "created", created)
	}
	return sum
}

func importOne(games *services.GameService, rec *Record) (*models.Game, bool, error) {
	g, err := rec.Game()
	if err != nil {
		return nil, false, err
	}
	created, err := games.Upsert(g)
	if err != nil {
		return nil, false, err
	}
	return g, created, nil
}
