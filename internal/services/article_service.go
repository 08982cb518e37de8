package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/models"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type ArticleService struct {
	db *gorm.DB
}

func NewArticleService(db *gorm.DB) *ArticleService {
	return &ArticleService{db: db}
}

func (s *ArticleService) Save(actor *models.User, article *models.Article) error {
	if !actor.IsStaff() {
		return ErrPermissionDenied
	}

	article.Title = strings.TrimSpace(article.Title)
	if article.Slug == "" {
		article.Slug = slug.Make(article.Title)
	}
	if article.Title == "" || article.Slug == "" || strings.TrimSpace(article.Body) == "" {
		return ErrInvalidArticle
	}

	if err := s.db.Save(article).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrArticleExists
		}
		return fmt.Errorf("failed to save article: %w", err)
	}
	return nil
}

// GetBySlug loads an article. Drafts are only returned when includeDrafts is set.
func (s *ArticleService) GetBySlug(articleSlug string, includeDrafts bool) (*models.Article, error) {
	query := s.db.Where("slug = ?", articleSlug)
	if !includeDrafts {
		query = query.Where("is_published = ?", true)
	}

	var article models.Article
	if err := query.First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to load article: %w", err)
	}
	return &article, nil
}

// List returns articles newest first.
func (s *ArticleService) List(includeDrafts bool, limit, offset int) ([]models.Article, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		if includeDrafts {
			return db
		}
		return db.Where("is_published = ?", true)
	}

	var total int64
	if err := s.db.Model(&models.Article{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	var articles []models.Article
	if err := s.db.Scopes(filter).
		Order("published_at DESC").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&articles).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}
	return articles, total, nil
}
