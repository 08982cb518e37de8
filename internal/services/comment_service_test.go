package services

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/events"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type commentFixture struct {
	db      *gorm.DB
	rec     *events.Recorder
	svc     *CommentService
	alice   *models.User
	bob     *models.User
	staff   *models.User
	game    *models.Game
	article *models.Article
}

func newCommentFixture(t *testing.T) *commentFixture {
	db := newTestDB(t)
	rec := &events.Recorder{}
	return &commentFixture{
		db:      db,
		rec:     rec,
		svc:     NewCommentService(db, rec, 0),
		alice:   createUser(t, db, "alice", models.RoleUser),
		bob:     createUser(t, db, "bob", models.RoleUser),
		staff:   createUser(t, db, "mod", models.RoleStaff),
		game:    createGame(t, db, "Stardew Valley"),
		article: createArticle(t, db, "Reviewing farming sims", true),
	}
}

func TestCommentCreate_VisibleImmediately(t *testing.T) {
	f := newCommentFixture(t)

	c, err := f.svc.Create(f.bob, models.GameRef(f.game.ID), "  Lovely game  ")
	require.NoError(t, err)

	assert.Equal(t, "Lovely game", c.Body)
	assert.True(t, c.Approved)
	assert.False(t, c.ModeratorAttentionNeeded)
	assert.Equal(t, models.StatePendingVisible, c.State())
	assert.Equal(t, models.ContentGame, c.ContentType)
	require.NotNil(t, c.GameID)
	assert.Nil(t, c.ArticleID)

	list, err := f.svc.ListForContent(models.GameRef(f.game.ID), false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "bob", list[0].Author.Username)

	assert.Equal(t, []string{events.SubjectCommentCreated}, f.rec.Subjects())
}

func TestCommentCreate_OnArticle(t *testing.T) {
	f := newCommentFixture(t)

	c, err := f.svc.Create(f.alice, models.ArticleRef(f.article.ID), "Great write-up")
	require.NoError(t, err)
	require.NotNil(t, c.ArticleID)
	assert.Equal(t, f.article.ID, *c.ArticleID)
	assert.Equal(t, models.ArticleRef(f.article.ID), c.Parent())
}

func TestCommentCreate_Rejections(t *testing.T) {
	f := newCommentFixture(t)
	draft := createArticle(t, f.db, "Draft", false)
	inactive := createUser(t, f.db, "carol", models.RoleUser)
	deactivate(t, f.db, inactive)

	tests := []struct {
		name   string
		author *models.User
		parent models.ContentRef
		body   string
		want   error
	}{
		{"anonymous", nil, models.GameRef(f.game.ID), "hi", ErrAuthenticationRequired},
		{"unknown user", &models.User{ID: uuid.New()}, models.GameRef(f.game.ID), "hi", ErrAuthenticationRequired},
		{"inactive author", inactive, models.GameRef(f.game.ID), "hi", ErrAccountInactive},
		{"blank body", f.bob, models.GameRef(f.game.ID), "   ", ErrInvalidCommentBody},
		{"too long", f.bob, models.GameRef(f.game.ID), strings.Repeat("a", DefaultCommentMaxLength+1), ErrInvalidCommentBody},
		{"missing game", f.bob, models.GameRef(uuid.New()), "hi", ErrContentNotFound},
		{"unpublished article", f.bob, models.ArticleRef(draft.ID), "hi", ErrContentNotFound},
		{"bad content type", f.bob, models.ContentRef{Type: "video", ID: f.game.ID}, "hi", ErrContentNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(tt.author, tt.parent, tt.body)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	var n int64
	require.NoError(t, f.db.Model(&models.Comment{}).Count(&n).Error)
	assert.Zero(t, n, "rejected comments must not be stored")
	assert.Empty(t, f.rec.Messages())
}

func TestCommentCreate_StaleActiveFlagIsIgnored(t *testing.T) {
	f := newCommentFixture(t)

	// The caller still holds a copy with IsActive=true.
	stale := *f.bob
	require.NoError(t, f.db.Model(&models.User{}).Where("id = ?", f.bob.ID).Update("is_active", false).Error)

	_, err := f.svc.Create(&stale, models.GameRef(f.game.ID), "still here?")
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestCommentFlag_RaisesAttentionAndStaysVisible(t *testing.T) {
	f := newCommentFixture(t)
	c, err := f.svc.Create(f.bob, models.GameRef(f.game.ID), "hello")
	require.NoError(t, err)

	flagged, err := f.svc.Flag(c.ID, f.alice)
	require.NoError(t, err)
	assert.True(t, flagged.ModeratorAttentionNeeded)
	assert.True(t, flagged.Approved)
	assert.Equal(t, models.StateFlagged, flagged.State())

	stored := reloadComment(t, f.db, c.ID)
	assert.True(t, stored.ModeratorAttentionNeeded)
	assert.True(t, stored.Approved)

	visible, err := f.svc.ListForContent(models.GameRef(f.game.ID), false)
	require.NoError(t, err)
	assert.Len(t, visible, 1)
}

func TestCommentFlag_SecondFlagBySameUser(t *testing.T) {
	f := newCommentFixture(t)
	c, err := f.svc.Create(f.bob, models.GameRef(f.game.ID), "hello")
	require.NoError(t, err)

	_, err = f.svc.Flag(c.ID, f.alice)
	require.NoError(t, err)

	_, err = f.svc.Flag(c.ID, f.alice)
	assert.ErrorIs(t, err, ErrAlreadyFlagged)

	n, err := f.svc.FlagCount(c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	flaggers, err := f.svc.Flaggers(c.ID)
	require.NoError(t, err)
	require.Len(t, flaggers, 1)
	assert.Equal(t, f.alice.ID, flaggers[0].ID)
}

func TestCommentFlag_OwnComment(t *testing.T) {
	f := newCommentFixture(t)
	c, err := f.svc.Create(f.bob, models.GameRef(f.game.ID), "hello")
	require.NoError(t, err)

	_, err = f.svc.Flag(c.ID, f.bob)
	assert.ErrorIs(t, err, ErrSelfFlagNotAllowed)

	n, err := f.svc.FlagCount(c.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.False(t, reloadComment(t, f.db, c.ID).ModeratorAttentionNeeded)
}

func TestCommentFlag_Errors(t *testing.T) {
	f := newCommentFixture(t)

	_, err := f.svc.Flag(uuid.New(), f.alice)
	assert.ErrorIs(t, err, ErrCommentNotFound)

	_, err = f.svc.Flag(uuid.New(), nil)
	assert.ErrorIs(t, err, ErrAuthenticationRequired)
}

func TestCommentFlag_ManyUsers(t *testing.T) {
	f := newCommentFixture(t)
	c, err := f.svc.Create(f.bob, models.GameRef(f.game.ID), "hello")
	require.NoError(t, err)

	_, err = f.svc.Flag(c.ID, f.alice)
	require.NoError(t, err)
	_, err = f.svc.Flag(c.ID, f.staff)
	require.NoError(t, err)

	n, err := f.svc.FlagCount(c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	other, err := f.svc.Create(f.bob, models.GameRef(f.game.ID), "second")
	require.NoError(t, err)
	_, err = f.svc.Flag(other.ID, f.alice)
	require.NoError(t, err)
	_, err = f.svc.Create(f.bob, models.GameRef(f.game.ID), "never flagged")
	require.NoError(t, err)

	queue, total, err := f.svc.ModerationQueue(10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, queue, 2)
	counts := map[uuid.UUID]int64{}
	for _, item := range queue {
		counts[item.ID] = item.FlagCount
	}
	assert.Equal(t, map[uuid.UUID]int64{c.ID: 2, other.ID: 1}, counts)
}

func TestCommentFlag_Concurrent(t *testing.T) {
	f := newCommentFixture(t)
	c, err := f.svc.Create(f.bob, models.GameRef(f.game.ID), "hello")
	require.NoError(t, err)

	const flaggers = 20
	users := make([]*models.User, flaggers)
	for i := range users {
		users[i] = createUser(t, f.db, fmt.Sprintf("flagger%d", i), models.RoleUser)
	}

	errs := make([]error, flaggers)
	var wg sync.WaitGroup
	for i, u := range users {
		wg.Add(1)
		go func(i int, u *models.User) {
			defer wg.Done()
			_, errs[i] = f.svc.Flag(c.ID, u)
		}(i, u)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "flagger %d", i)
	}
	n, err := f.svc.FlagCount(c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(flaggers), n)
	assert.True(t, reloadComment(t, f.db, c.ID).ModeratorAttentionNeeded)
}

func TestCommentFlag_DeletedWhileFlagging(t *testing.T) {
	f := newCommentFixture(t)
	c, err := f.svc.Create(f.bob, models.GameRef(f.game.ID), "hello")
	require.NoError(t, err)

	// Remove the comment right before the flag row is written, inside the
	// same transaction, as a concurrent staff delete would.
	require.NoError(t, f.db.Callback().Create().Before("gorm:create").
		Register("test:delete_comment", func(tx *gorm.DB) {
			if tx.Statement.Schema == nil || tx.Statement.Schema.Table != "comment_flags" {
				return
			}
			tx.Session(&gorm.Session{NewDB: true}).Exec("DELETE FROM comments WHERE id = ?", c.ID)
		}))

	_, err = f.svc.Flag(c.ID, f.alice)
	assert.ErrorIs(t, err, ErrCommentNotFound)

	require.NoError(t, f.db.Callback().Create().Remove("test:delete_comment"))
	n, err := f.svc.FlagCount(c.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCommentDelete(t *testing.T) {
	f := newCommentFixture(t)
	c, err := f.svc.Create(f.bob, models.GameRef(f.game.ID), "hello")
	require.NoError(t, err)
	_, err = f.svc.Flag(c.ID, f.alice)
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(c.ID, f.bob), ErrPermissionDenied, "authors cannot delete")
	assert.ErrorIs(t, f.svc.Delete(c.ID, nil), ErrAuthenticationRequired)

	require.NoError(t, f.svc.Delete(c.ID, f.staff))
	_, err = f.svc.Get(c.ID)
	assert.ErrorIs(t, err, ErrCommentNotFound)

	var flags int64
	require.NoError(t, f.db.Model(&models.CommentFlag{}).Count(&flags).Error)
	assert.Zero(t, flags)

	assert.ErrorIs(t, f.svc.Delete(c.ID, f.staff), ErrCommentNotFound)
}

func TestCommentBulkActions_StaffOnly(t *testing.T) {
	f := newCommentFixture(t)
	c, err := f.svc.Create(f.bob, models.GameRef(f.game.ID), "hello")
	require.NoError(t, err)
	ids := []uuid.UUID{c.ID}

	actions := map[string]func(*models.User, []uuid.UUID) (int64, error){
		"approve":    f.svc.Approve,
		"unapprove":  f.svc.Unapprove,
		"review":     f.svc.MarkReviewed,
		"deactivate": f.svc.DeactivateAuthors,
		"reactivate": f.svc.ReactivateAuthors,
	}
	for name, action := range actions {
		t.Run(name, func(t *testing.T) {
			n, err := action(f.alice, ids)
			assert.ErrorIs(t, err, ErrPermissionDenied)
			assert.Zero(t, n)

			n, err = action(nil, ids)
			assert.ErrorIs(t, err, ErrPermissionDenied)
			assert.Zero(t, n)
		})
	}
}

func TestCommentBulkActions_StateTransitions(t *testing.T) {
	f := newCommentFixture(t)
	c1, err := f.svc.Create(f.bob, models.GameRef(f.game.ID), "one")
	require.NoError(t, err)
	c2, err := f.svc.Create(f.bob, models.ArticleRef(f.article.ID), "two")
	require.NoError(t, err)
	_, err = f.svc.Flag(c1.ID, f.alice)
	require.NoError(t, err)
	ids := []uuid.UUID{c1.ID, c2.ID}

	n, err := f.svc.Unapprove(f.staff, ids)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, models.StateUnapprovedFlagged, stateOf(t, f.db, c1.ID))
	assert.Equal(t, models.StateUnapproved, stateOf(t, f.db, c2.ID))

	visible, err := f.svc.ListForContent(models.GameRef(f.game.ID), false)
	require.NoError(t, err)
	assert.Empty(t, visible)
	all, err := f.svc.ListForContent(models.GameRef(f.game.ID), true)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	n, err = f.svc.MarkReviewed(f.staff, []uuid.UUID{c1.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, models.StateUnapproved, stateOf(t, f.db, c1.ID), "review leaves approval alone")

	n, err = f.svc.Approve(f.staff, ids)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, models.StatePendingVisible, stateOf(t, f.db, c1.ID))

	queue, total, err := f.svc.ModerationQueue(10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, queue)

	n, err = f.svc.Approve(f.staff, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCommentBulkActions_Authors(t *testing.T) {
	f := newCommentFixture(t)
	c1, err := f.svc.Create(f.bob, models.GameRef(f.game.ID), "one")
	require.NoError(t, err)
	c2, err := f.svc.Create(f.bob, models.GameRef(f.game.ID), "two")
	require.NoError(t, err)
	c3, err := f.svc.Create(f.alice, models.GameRef(f.game.ID), "three")
	require.NoError(t, err)

	n, err := f.svc.DeactivateAuthors(f.staff, []uuid.UUID{c1.ID, c2.ID, c3.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n, "each distinct author counts once")
	assert.Equal(t, int64(2), countUsers(t, f.db, false))

	n, err = f.svc.DeactivateAuthors(f.staff, []uuid.UUID{c1.ID, c2.ID, c3.ID})
	require.NoError(t, err)
	assert.Zero(t, n, "already inactive authors are not counted again")

	_, err = f.svc.Create(f.bob, models.GameRef(f.game.ID), "again")
	assert.ErrorIs(t, err, ErrAccountInactive)

	// Flagging is still allowed for deactivated users.
	_, err = f.svc.Flag(c3.ID, f.bob)
	assert.NoError(t, err)

	n, err = f.svc.ReactivateAuthors(f.staff, []uuid.UUID{c1.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = f.svc.Create(f.bob, models.GameRef(f.game.ID), "back")
	assert.NoError(t, err)

	// Comments by deactivated authors stay where they were.
	stored := reloadComment(t, f.db, c3.ID)
	assert.True(t, stored.Approved)
}

func TestCommentModeration_PublishesEvents(t *testing.T) {
	f := newCommentFixture(t)
	c, err := f.svc.Create(f.bob, models.GameRef(f.game.ID), "hello")
	require.NoError(t, err)
	_, err = f.svc.Flag(c.ID, f.alice)
	require.NoError(t, err)
	_, err = f.svc.Unapprove(f.staff, []uuid.UUID{c.ID})
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(c.ID, f.staff))

	assert.Equal(t, []string{
		events.SubjectCommentCreated,
		events.SubjectCommentFlagged,
		events.SubjectCommentModerated,
		events.SubjectCommentDeleted,
	}, f.rec.Subjects())

	msgs := f.rec.Messages()
	moderated, ok := msgs[2].Payload.(events.CommentEvent)
	require.True(t, ok)
	assert.Equal(t, ActionUnapprove, moderated.Action)
	assert.Equal(t, int64(1), moderated.Affected)
	assert.Equal(t, f.staff.ID, moderated.ActorID)
}
