package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Article is an editorial post. Only published articles are shown publicly.
type Article struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Slug        string     `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Summary     string     `gorm:"size:500" json:"summary"`
	Body        string     `gorm:"type:text;not null" json:"body"`
	AuthorName  string     `gorm:"size:150" json:"author_name"`
	CoverURL    string     `gorm:"size:500" json:"cover_url,omitempty"`
	IsPublished bool       `gorm:"default:false;index" json:"is_published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// BeforeSave stamps PublishedAt the first time an article goes live.
func (a *Article) BeforeSave(tx *gorm.DB) error {
	if a.IsPublished && a.PublishedAt == nil {
		now := time.Now().UTC()
		a.PublishedAt = &now
	}
	return nil
}
