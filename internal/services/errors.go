package services

import "errors"

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrAccountInactive        = errors.New("your account has been deactivated and cannot post comments")
	ErrPermissionDenied       = errors.New("permission denied")

	ErrSelfFlagNotAllowed = errors.New("you cannot flag your own comment")
	ErrAlreadyFlagged     = errors.New("you have already flagged this comment")
	ErrInvalidCommentBody = errors.New("comment body is empty or too long")

	ErrCommentNotFound = errors.New("comment not found")
	ErrContentNotFound = errors.New("content not found")
	ErrGameNotFound    = errors.New("game not found")
	ErrArticleNotFound = errors.New("article not found")

	ErrInvalidGame    = errors.New("game title is required")
	ErrInvalidArticle = errors.New("article title and body are required")
	ErrGameExists     = errors.New("a game with this title or slug already exists")
	ErrArticleExists  = errors.New("an article with this slug already exists")
	ErrInvalidTier    = errors.New("invalid rating tier")
)
