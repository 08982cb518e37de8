package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/models"
	"github.com/google/uuid"
)

type CreateCommentRequest struct {
	Body string `json:"body"`
}

// BulkActionRequest selects the comments a staff action applies to.
type BulkActionRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

type BulkActionResponse struct {
	Action   string `json:"action"`
	Selected int    `json:"selected"`
	Affected int64  `json:"affected"`
}

type FlagResponse struct {
	Message        string `json:"message"`
	AlreadyFlagged bool   `json:"already_flagged"`
}

type CommentAuthor struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

type CommentResponse struct {
	ID                       uuid.UUID           `json:"id"`
	ContentType              models.ContentType  `json:"content_type"`
	ContentID                uuid.UUID           `json:"content_id"`
	Author                   CommentAuthor       `json:"author"`
	Body                     string              `json:"body"`
	Approved                 bool                `json:"approved"`
	ModeratorAttentionNeeded bool                `json:"moderator_attention_needed"`
	State                    models.CommentState `json:"state"`
	FlagCount                *int64              `json:"flag_count,omitempty"`
	CreatedAt                time.Time           `json:"created_at"`
}

func NewCommentResponse(c *models.Comment) CommentResponse {
	return CommentResponse{
		ID:                       c.ID,
		ContentType:              c.ContentType,
		ContentID:                c.Parent().ID,
		Author:                   CommentAuthor{ID: c.AuthorID, Username: c.Author.Username},
		Body:                     c.Body,
		Approved:                 c.Approved,
		ModeratorAttentionNeeded: c.ModeratorAttentionNeeded,
		State:                    c.State(),
		CreatedAt:                c.CreatedAt,
	}
}

func NewCommentList(comments []models.Comment) []CommentResponse {
	out := make([]CommentResponse, len(comments))
	for i := range comments {
		out[i] = NewCommentResponse(&comments[i])
	}
	return out
}

type PageResponse struct {
	Items  interface{} `json:"items"`
	Total  int64       `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}
