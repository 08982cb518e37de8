package services

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, name, role string) *models.User {
	t.Helper()
	u := &models.User{
		Email:    name + "@example.com",
		Username: name,
		Password: "x",
		Role:     role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func deactivate(t *testing.T, db *gorm.DB, u *models.User) {
	t.Helper()
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", u.ID).Update("is_active", false).Error)
	u.IsActive = false
}

func createGame(t *testing.T, db *gorm.DB, title string) *models.Game {
	t.Helper()
	g := &models.Game{Title: title, Slug: uuid.NewString()}
	require.NoError(t, db.Create(g).Error)
	return g
}

func createArticle(t *testing.T, db *gorm.DB, title string, published bool) *models.Article {
	t.Helper()
	a := &models.Article{Title: title, Slug: uuid.NewString(), Body: "body", IsPublished: published}
	require.NoError(t, db.Create(a).Error)
	return a
}

func reloadComment(t *testing.T, db *gorm.DB, id uuid.UUID) models.Comment {
	t.Helper()
	var c models.Comment
	require.NoError(t, db.First(&c, "id = ?", id).Error)
	return c
}

func countUsers(t *testing.T, db *gorm.DB, active bool) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.User{}).Where("is_active = ?", active).Count(&n).Error)
	return n
}

func stateOf(t *testing.T, db *gorm.DB, id uuid.UUID) models.CommentState {
	t.Helper()
	c := reloadComment(t, db, id)
	return c.State()
}
