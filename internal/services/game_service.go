package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/events"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/rating"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type GameService struct {
	db        *gorm.DB
	publisher events.Publisher
}

func NewGameService(db *gorm.DB, publisher events.Publisher) *GameService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &GameService{db: db, publisher: publisher}
}

// Save creates or updates a game. The rating is recomputed by the model hook.
func (s *GameService) Save(actor *models.User, game *models.Game) error {
	if !actor.IsStaff() {
		return ErrPermissionDenied
	}
	return s.save(game)
}

// Upsert matches an existing game by title and overwrites it, keeping any
// recorded manual tier. Used by the importer; callers are trusted.
func (s *GameService) Upsert(game *models.Game) (bool, error) {
	game.Title = strings.TrimSpace(game.Title)

	var existing models.Game
	err := s.db.Where("title = ?", game.Title).First(&existing).Error
	switch {
	case err == nil:
		game.ID = existing.ID
		game.CreatedAt = existing.CreatedAt
		if game.Slug == "" {
			game.Slug = existing.Slug
		}
		if existing.HasOverride() {
			game.RatingTier = existing.RatingTier
			game.OriginalRatingTier = existing.OriginalRatingTier
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return false, fmt.Errorf("failed to look up game: %w", err)
	}

	created := existing.ID == uuid.Nil
	return created, s.save(game)
}

func (s *GameService) save(game *models.Game) error {
	game.Title = strings.TrimSpace(game.Title)
	if game.Slug == "" {
		game.Slug = slug.Make(game.Title)
	}
	if game.Title == "" || game.Slug == "" {
		return ErrInvalidGame
	}

	if err := s.db.Save(game).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrGameExists
		}
		return fmt.Errorf("failed to save game: %w", err)
	}

	metrics.GamesRated.WithLabelValues(game.RatingTier).Inc()
	events.Emit(s.publisher, events.SubjectGameRated, events.GameRatedEvent{
		GameID:             game.ID,
		Slug:               game.Slug,
		Tier:               game.RatingTier,
		Flags:              []string(game.Flags),
		RequiresAdjustment: game.RequiresAdjustment,
		Override:           game.HasOverride(),
		At:                 time.Now().UTC(),
	})
	return nil
}

// OverrideTier pins the effective tier. The computed tier keeps being
// refreshed into original_rating_tier on later saves.
func (s *GameService) OverrideTier(actor *models.User, gameID uuid.UUID, tier string) (*models.Game, error) {
	if !actor.IsStaff() {
		return nil, ErrPermissionDenied
	}
	code := rating.TierCode(strings.ToUpper(strings.TrimSpace(tier)))
	if !code.Valid() {
		return nil, ErrInvalidTier
	}

	game, err := s.Get(gameID)
	if err != nil {
		return nil, err
	}
	game.RatingTier = string(code)
	marker := string(code)
	game.OriginalRatingTier = &marker

	if err := s.save(game); err != nil {
		return nil, err
	}
	slog.Info("rating tier overridden", "user_id", actor.ID.String(), "game", game.Slug,
		"tier", game.RatingTier, "computed", *game.OriginalRatingTier)
	return game, nil
}

// ClearOverride drops a manual tier and restores the computed one.
func (s *GameService) ClearOverride(actor *models.User, gameID uuid.UUID) (*models.Game, error) {
	if !actor.IsStaff() {
		return nil, ErrPermissionDenied
	}
	game, err := s.Get(gameID)
	if err != nil {
		return nil, err
	}
	game.OriginalRatingTier = nil
	if err := s.save(game); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *GameService) Get(id uuid.UUID) (*models.Game, error) {
	var game models.Game
	if err := s.db.First(&game, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	return &game, nil
}

func (s *GameService) GetBySlug(gameSlug string) (*models.Game, error) {
	var game models.Game
	if err := s.db.First(&game, "slug = ?", gameSlug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	return &game, nil
}

// List returns games ordered from the mildest tier up, then by title. An
// empty tier lists everything.
func (s *GameService) List(tier string, limit, offset int) ([]models.Game, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB { return db }
	if tier != "" {
		code := rating.TierCode(strings.ToUpper(tier))
		if !code.Valid() {
			return nil, 0, ErrInvalidTier
		}
		filter = func(db *gorm.DB) *gorm.DB { return db.Where("games.rating_tier = ?", string(code)) }
	}

	var total int64
	if err := s.db.Model(&models.Game{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count games: %w", err)
	}

	var games []models.Game
	if err := s.db.Model(&models.Game{}).Scopes(filter).
		Joins("LEFT JOIN rating_tiers ON rating_tiers.code = games.rating_tier").
		Order("rating_tiers.sort_order ASC").
		Order("games.title ASC").
		Limit(limit).Offset(offset).
		Find(&games).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list games: %w", err)
	}
	return games, total, nil
}
