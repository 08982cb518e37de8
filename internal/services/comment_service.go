package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/events"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const DefaultCommentMaxLength = 3000

// Moderation action names, used for metrics and events.
const (
	ActionApprove    = "approve"
	ActionUnapprove  = "unapprove"
	ActionReview     = "mark_reviewed"
	ActionDeactivate = "deactivate_authors"
	ActionReactivate = "reactivate_authors"
)

// CommentService creates, flags and moderates comments on games and articles.
//
// New comments are visible immediately; peer flags only raise
// moderator_attention_needed and never hide a comment on their own.
type CommentService struct {
	db        *gorm.DB
	publisher events.Publisher
	maxLength int
}

func NewCommentService(db *gorm.DB, publisher events.Publisher, maxLength int) *CommentService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if maxLength <= 0 {
		maxLength = DefaultCommentMaxLength
	}
	return &CommentService{db: db, publisher: publisher, maxLength: maxLength}
}

// Create stores a new visible comment. The author's active flag is re-read
// from the store so a deactivation takes effect on tokens issued earlier.
func (s *CommentService) Create(author *models.User, parent models.ContentRef, body string) (*models.Comment, error) {
	if author == nil || author.ID == uuid.Nil {
		return nil, ErrAuthenticationRequired
	}

	var current models.User
	if err := s.db.First(&current, "id = ?", author.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthenticationRequired
		}
		return nil, fmt.Errorf("failed to load author: %w", err)
	}
	if !current.IsActive {
		return nil, ErrAccountInactive
	}

	body = strings.TrimSpace(body)
	if body == "" || utf8.RuneCountInString(body) > s.maxLength {
		return nil, ErrInvalidCommentBody
	}

	if err := s.ensureParent(parent); err != nil {
		return nil, err
	}

	comment := models.Comment{
		ContentType: parent.Type,
		AuthorID:    current.ID,
		Body:        body,
		Approved:    true,
	}
	id := parent.ID
	switch parent.Type {
	case models.ContentGame:
		comment.GameID = &id
	case models.ContentArticle:
		comment.ArticleID = &id
	}

	if err := s.db.Omit(clause.Associations).Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	comment.Author = current

	metrics.CommentsCreated.WithLabelValues(string(parent.Type)).Inc()
	events.Emit(s.publisher, events.SubjectCommentCreated, events.CommentEvent{
		CommentIDs:  []uuid.UUID{comment.ID},
		ContentType: string(parent.Type),
		ContentID:   &id,
		ActorID:     current.ID,
		Action:      "create",
		Affected:    1,
		At:          time.Now().UTC(),
	})
	return &comment, nil
}

func (s *CommentService) ensureParent(parent models.ContentRef) error {
	var count int64
	var err error
	switch parent.Type {
	case models.ContentGame:
		err = s.db.Model(&models.Game{}).Where("id = ?", parent.ID).Count(&count).Error
	case models.ContentArticle:
		err = s.db.Model(&models.Article{}).Where("id = ? AND is_published = ?", parent.ID, true).Count(&count).Error
	default:
		return ErrContentNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", parent.Type, err)
	}
	if count == 0 {
		return ErrContentNotFound
	}
	return nil
}

// Flag records a peer flag and raises moderator attention in one transaction.
// A second flag by the same user returns ErrAlreadyFlagged and changes nothing.
func (s *CommentService) Flag(commentID uuid.UUID, flagger *models.User) (*models.Comment, error) {
	if flagger == nil || flagger.ID == uuid.Nil {
		return nil, ErrAuthenticationRequired
	}

	comment, err := s.Get(commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID == flagger.ID {
		return nil, ErrSelfFlagNotAllowed
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// The comment may have been deleted since it was loaded.
		var count int64
		if err := tx.Model(&models.Comment{}).Where("id = ?", comment.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to load comment: %w", err)
		}
		if count == 0 {
			return ErrCommentNotFound
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.CommentFlag{
			CommentID: comment.ID,
			UserID:    flagger.ID,
		})
		if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
			return ErrCommentNotFound
		}
		if res.Error != nil {
			return fmt.Errorf("failed to record flag: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyFlagged
		}
		return tx.Model(&models.Comment{}).
			Where("id = ?", comment.ID).
			Update("moderator_attention_needed", true).Error
	})
	if err != nil {
		return nil, err
	}
	comment.ModeratorAttentionNeeded = true

	metrics.CommentsFlagged.Inc()
	events.Emit(s.publisher, events.SubjectCommentFlagged, events.CommentEvent{
		CommentIDs:  []uuid.UUID{comment.ID},
		ContentType: string(comment.ContentType),
		ActorID:     flagger.ID,
		Action:      "flag",
		Affected:    1,
		At:          time.Now().UTC(),
	})
	return comment, nil
}

// Delete permanently removes a comment and its flags. Staff only.
func (s *CommentService) Delete(commentID uuid.UUID, actor *models.User) error {
	if actor == nil {
		return ErrAuthenticationRequired
	}
	if !actor.IsStaff() {
		return ErrPermissionDenied
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", commentID).Delete(&models.CommentFlag{}).Error; err != nil {
			return fmt.Errorf("failed to delete flags: %w", err)
		}
		res := tx.Where("id = ?", commentID).Delete(&models.Comment{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete comment: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrCommentNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	events.Emit(s.publisher, events.SubjectCommentDeleted, events.CommentEvent{
		CommentIDs: []uuid.UUID{commentID},
		ActorID:    actor.ID,
		Action:     "delete",
		Affected:   1,
		At:         time.Now().UTC(),
	})
	return nil
}

func (s *CommentService) Approve(actor *models.User, ids []uuid.UUID) (int64, error) {
	return s.updateComments(actor, ActionApprove, ids, map[string]interface{}{"approved": true})
}

func (s *CommentService) Unapprove(actor *models.User, ids []uuid.UUID) (int64, error) {
	return s.updateComments(actor, ActionUnapprove, ids, map[string]interface{}{"approved": false})
}

// MarkReviewed clears moderator attention and leaves approval untouched.
func (s *CommentService) MarkReviewed(actor *models.User, ids []uuid.UUID) (int64, error) {
	return s.updateComments(actor, ActionReview, ids, map[string]interface{}{"moderator_attention_needed": false})
}

func (s *CommentService) updateComments(actor *models.User, action string, ids []uuid.UUID, fields map[string]interface{}) (int64, error) {
	if !actor.IsStaff() {
		return 0, ErrPermissionDenied
	}
	if len(ids) == 0 {
		return 0, nil
	}

	res := s.db.Model(&models.Comment{}).Where("id IN ?", ids).Updates(fields)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to %s comments: %w", action, res.Error)
	}

	s.recordModeration(actor, action, ids, res.RowsAffected)
	return res.RowsAffected, nil
}

// DeactivateAuthors turns off is_active for every distinct author of the
// selected comments. Users are updated one by one; a failed update is logged
// and skipped. The count only includes users whose state changed.
func (s *CommentService) DeactivateAuthors(actor *models.User, ids []uuid.UUID) (int64, error) {
	return s.setAuthorsActive(actor, ActionDeactivate, ids, false)
}

func (s *CommentService) ReactivateAuthors(actor *models.User, ids []uuid.UUID) (int64, error) {
	return s.setAuthorsActive(actor, ActionReactivate, ids, true)
}

func (s *CommentService) setAuthorsActive(actor *models.User, action string, ids []uuid.UUID, active bool) (int64, error) {
	if !actor.IsStaff() {
		return 0, ErrPermissionDenied
	}
	if len(ids) == 0 {
		return 0, nil
	}

	var authorIDs []uuid.UUID
	if err := s.db.Model(&models.Comment{}).
		Where("id IN ?", ids).
		Distinct("author_id").
		Pluck("author_id", &authorIDs).Error; err != nil {
		return 0, fmt.Errorf("failed to collect comment authors: %w", err)
	}

	var updated int64
	for _, authorID := range authorIDs {
		res := s.db.Model(&models.User{}).
			Where("id = ? AND is_active <> ?", authorID, active).
			Update("is_active", active)
		if res.Error != nil {
			slog.Error("failed to update comment author", "action", action, "user_id", authorID.String(), "error", res.Error)
			continue
		}
		updated += res.RowsAffected
	}

	s.recordModeration(actor, action, ids, updated)
	return updated, nil
}

func (s *CommentService) recordModeration(actor *models.User, action string, ids []uuid.UUID, affected int64) {
	metrics.ModerationActions.WithLabelValues(action).Add(float64(affected))
	slog.Info("comment moderation", "action", action, "user_id", actor.ID.String(), "selected", len(ids), "affected", affected)
	events.Emit(s.publisher, events.SubjectCommentModerated, events.CommentEvent{
		CommentIDs: ids,
		ActorID:    actor.ID,
		Action:     action,
		Affected:   affected,
		At:         time.Now().UTC(),
	})
}

func (s *CommentService) Get(commentID uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.Preload("Author").First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}
	return &comment, nil
}

// ListForContent returns a content item's comments, oldest first. Unapproved
// comments are only included for staff views.
func (s *CommentService) ListForContent(parent models.ContentRef, includeUnapproved bool) ([]models.Comment, error) {
	query := s.db.Preload("Author").Where("content_type = ?", parent.Type)
	switch parent.Type {
	case models.ContentGame:
		query = query.Where("game_id = ?", parent.ID)
	case models.ContentArticle:
		query = query.Where("article_id = ?", parent.ID)
	default:
		return nil, ErrContentNotFound
	}
	if !includeUnapproved {
		query = query.Where("approved = ?", true)
	}

	var comments []models.Comment
	if err := query.Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// QueueItem is a comment waiting for staff with its flag count.
type QueueItem struct {
	models.Comment
	FlagCount int64 `json:"flag_count"`
}

// ModerationQueue lists comments with moderator attention raised, oldest first.
func (s *CommentService) ModerationQueue(limit, offset int) ([]QueueItem, int64, error) {
	var total int64
	base := s.db.Model(&models.Comment{}).Where("moderator_attention_needed = ?", true)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count moderation queue: %w", err)
	}

	var comments []models.Comment
	if err := s.db.Preload("Author").
		Where("moderator_attention_needed = ?", true).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&comments).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list moderation queue: %w", err)
	}

	ids := make([]uuid.UUID, len(comments))
	for i := range comments {
		ids[i] = comments[i].ID
	}
	counts, err := s.flagCounts(ids)
	if err != nil {
		return nil, 0, err
	}

	items := make([]QueueItem, len(comments))
	for i, c := range comments {
		items[i] = QueueItem{Comment: c, FlagCount: counts[c.ID]}
	}
	return items, total, nil
}

// flagCounts counts flags for a page of comments in one query.
func (s *CommentService) flagCounts(ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []struct {
		CommentID uuid.UUID
		Flags     int64
	}
	if err := s.db.Model(&models.CommentFlag{}).
		Select("comment_id, COUNT(*) AS flags").
		Where("comment_id IN ?", ids).
		Group("comment_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count flags: %w", err)
	}
	for _, r := range rows {
		counts[r.CommentID] = r.Flags
	}
	return counts, nil
}

func (s *CommentService) FlagCount(commentID uuid.UUID) (int64, error) {
	var n int64
	if err := s.db.Model(&models.CommentFlag{}).Where("comment_id = ?", commentID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count flags: %w", err)
	}
	return n, nil
}

// Flaggers lists the users who flagged a comment.
func (s *CommentService) Flaggers(commentID uuid.UUID) ([]models.User, error) {
	comment := models.Comment{ID: commentID}
	var users []models.User
	if err := s.db.Model(&comment).Association("FlaggedBy").Find(&users); err != nil {
		return nil, fmt.Errorf("failed to load flaggers: %w", err)
	}
	return users, nil
}
