package events

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runServer(t *testing.T) *server.Server {
	t.Helper()
	ns, err := server.NewServer(&server.Options{Host: "127.0.0.1", Port: -1})
	require.NoError(t, err)
	go ns.Start()
	if !ns.ReadyForConnections(5 * time.Second) {
		t.Fatal("nats server not ready")
	}
	t.Cleanup(ns.Shutdown)
	return ns
}

func TestNATSPublisher_Publish(t *testing.T) {
	ns := runServer(t)

	sub, err := nats.Connect(ns.ClientURL())
	require.NoError(t, err)
	defer sub.Close()

	received := make(chan *nats.Msg, 1)
	_, err = sub.ChanSubscribe("gamerating.comments.flagged", received)
	require.NoError(t, err)
	require.NoError(t, sub.Flush())

	pub, err := NewNATSPublisher(ns.ClientURL(), "gamerating")
	require.NoError(t, err)
	defer pub.Close()

	id := uuid.New()
	require.NoError(t, pub.Publish(SubjectCommentFlagged, CommentEvent{
		CommentIDs: []uuid.UUID{id},
		Action:     "flag",
		Affected:   1,
	}))

	select {
	case msg := <-received:
		var ev CommentEvent
		require.NoError(t, json.Unmarshal(msg.Data, &ev))
		assert.Equal(t, []uuid.UUID{id}, ev.CommentIDs)
		assert.Equal(t, "flag", ev.Action)
	case <-time.After(5 * time.Second):
		t.Fatal("no message received")
	}
}

func TestNATSPublisher_Subject(t *testing.T) {
	assert.Equal(t, "x.games.rated", (&NATSPublisher{prefix: "x"}).Subject(SubjectGameRated))
	assert.Equal(t, "games.rated", (&NATSPublisher{}).Subject(SubjectGameRated))
}

type failingPublisher struct{ NopPublisher }

func (failingPublisher) Publish(string, any) error { return errors.New("down") }

func TestEmit_SwallowsErrors(t *testing.T) {
	assert.NotPanics(t, func() {
		Emit(failingPublisher{}, SubjectGameRated, nil)
		Emit(nil, SubjectGameRated, nil)
	})

	rec := &Recorder{}
	Emit(rec, SubjectCommentCreated, CommentEvent{Action: "create"})
	assert.Equal(t, []string{SubjectCommentCreated}, rec.Subjects())
}
