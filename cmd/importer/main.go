// importer loads game ratings from a YAML file into the database.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/events"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/importer"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/services"
	flag "github.com/spf13/pflag"
	"gorm.io/gorm"
)

func main() {
	fs := flag.NewFlagSet("importer", flag.ExitOnError)
	file := fs.StringP("file", "f", "", "path to the YAML ratings file")
	dryRun := fs.Bool("dry-run", false, "rate into a throwaway in-memory database")
	seedOnly := fs.Bool("seed-only", false, "seed the tier and flag tables, then exit")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: importer [--dry-run] [--seed-only] -f games.yml\n\n")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	logging.Setup()

	if *file == "" && !*seedOnly {
		fs.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	db, err := openDB(cfg, *dryRun)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	if err := catalog.Seed(db); err != nil {
		slog.Error("catalog seed failed", "error", err)
		os.Exit(1)
	}
	if *seedOnly {
		return
	}

	f, err := importer.ParseFile(*file)
	if err != nil {
		slog.Error("import file rejected", "file", *file, "error", err)
		os.Exit(1)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.NATSURL != "" && !*dryRun {
		p, err := events.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			slog.Warn("nats unavailable, events disabled", "error", err)
		} else {
			publisher = p
		}
	}

	sum := importer.Run(services.NewGameService(db, publisher), f)
	publisher.Close()

	tiers := make([]string, 0, len(sum.Tiers))
	for code := range sum.Tiers {
		tiers = append(tiers, code)
	}
	sort.Strings(tiers)
	for _, code := range tiers {
		slog.Info("tier total", "tier", code, "games", sum.Tiers[code])
	}
	slog.Info("import finished",
		"created", sum.Created,
		"updated", sum.Updated,
		"failed", sum.Failed,
		"dry_run", *dryRun,
	)

	if sum.Failed > 0 {
		os.Exit(1)
	}
}

func openDB(cfg *config.Config, dryRun bool) (*gorm.DB, error) {
	if dryRun {
		return database.OpenMemory()
	}
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}
