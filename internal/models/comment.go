package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentType names the kind of content a comment hangs off.
type ContentType string

const (
	ContentGame    ContentType = "game"
	ContentArticle ContentType = "article"
)

func (t ContentType) Valid() bool {
	return t == ContentGame || t == ContentArticle
}

// ContentRef points at exactly one game or article.
type ContentRef struct {
	Type ContentType
	ID   uuid.UUID
}

func GameRef(id uuid.UUID) ContentRef    { return ContentRef{Type: ContentGame, ID: id} }
func ArticleRef(id uuid.UUID) ContentRef { return ContentRef{Type: ContentArticle, ID: id} }

// CommentState is derived from Approved and ModeratorAttentionNeeded.
type CommentState string

const (
	StatePendingVisible    CommentState = "pending_visible"
	StateFlagged           CommentState = "flagged"
	StateUnapproved        CommentState = "unapproved"
	StateUnapprovedFlagged CommentState = "unapproved_flagged"
)

// Comment is shared by game and article comments; exactly one of GameID and
// ArticleID is set.
type Comment struct {
	ID                       uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	ContentType              ContentType `gorm:"size:20;not null;index" json:"content_type"`
	GameID                   *uuid.UUID  `gorm:"type:uuid;index;check:chk_comment_parent,(game_id IS NULL) <> (article_id IS NULL)" json:"game_id,omitempty"`
	ArticleID                *uuid.UUID  `gorm:"type:uuid;index" json:"article_id,omitempty"`
	AuthorID                 uuid.UUID   `gorm:"type:uuid;not null;index" json:"author_id"`
	Author                   User        `gorm:"foreignKey:AuthorID" json:"author"`
	Body                     string      `gorm:"type:text;not null" json:"body"`
	Approved                 bool        `gorm:"not null;default:true;index" json:"approved"`
	ModeratorAttentionNeeded bool        `gorm:"not null;default:false;index" json:"moderator_attention_needed"`
	FlaggedBy                []User      `gorm:"many2many:comment_flags;" json:"-"`
	CreatedAt                time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt                time.Time   `json:"updated_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Comment) State() CommentState {
	switch {
	case c.Approved && c.ModeratorAttentionNeeded:
		return StateFlagged
	case c.Approved:
		return StatePendingVisible
	case c.ModeratorAttentionNeeded:
		return StateUnapprovedFlagged
	default:
		return StateUnapproved
	}
}

// Parent returns the content this comment belongs to.
func (c *Comment) Parent() ContentRef {
	if c.GameID != nil {
		return GameRef(*c.GameID)
	}
	if c.ArticleID != nil {
		return ArticleRef(*c.ArticleID)
	}
	return ContentRef{Type: c.ContentType}
}

// CommentFlag is the join row recording that a user flagged a comment. The
// composite key makes a second flag by the same user a no-op insert.
type CommentFlag struct {
	CommentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time
}
