// Package events publishes moderation and rating events for downstream
// consumers such as staff notification bots.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const (
	SubjectCommentCreated   = "comments.created"
	SubjectCommentFlagged   = "comments.flagged"
	SubjectCommentDeleted   = "comments.deleted"
	SubjectCommentModerated = "comments.moderated"
	SubjectGameRated        = "games.rated"
)

type Publisher interface {
	Publish(subject string, payload any) error
	Close()
}

// CommentEvent describes a change to a single comment or a moderation batch.
type CommentEvent struct {
	CommentIDs  []uuid.UUID `json:"comment_ids"`
	ContentType string      `json:"content_type,omitempty"`
	ContentID   *uuid.UUID  `json:"content_id,omitempty"`
	ActorID     uuid.UUID   `json:"actor_id"`
	Action      string      `json:"action"`
	Affected    int64       `json:"affected"`
	At          time.Time   `json:"at"`
}

type GameRatedEvent struct {
	GameID             uuid.UUID `json:"game_id"`
	Slug               string    `json:"slug"`
	Tier               string    `json:"tier"`
	Flags              []string  `json:"flags"`
	RequiresAdjustment bool      `json:"requires_adjustment"`
	Override           bool      `json:"override"`
	At                 time.Time `json:"at"`
}

// Emit publishes and logs failures. Events are best effort and never fail the caller.
func Emit(p Publisher, subject string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(subject, payload); err != nil {
		slog.Warn("event publish failed", "subject", subject, "error", err)
	}
}

type NopPublisher struct{}

func (NopPublisher) Publish(string, any) error { return nil }
func (NopPublisher) Close()                    {}

// NATSPublisher sends JSON payloads to <prefix>.<subject>.
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
}

func NewNATSPublisher(url, prefix string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("gamerating-backend"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			slog.Info("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return &NATSPublisher{conn: nc, prefix: prefix}, nil
}

func (p *NATSPublisher) Subject(subject string) string {
	if p.prefix == "" {
		return subject
	}
	return p.prefix + "." + subject
}

func (p *NATSPublisher) Publish(subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", subject, err)
	}
	return p.conn.Publish(p.Subject(subject), data)
}

func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		slog.Warn("nats drain failed", "error", err)
	}
}

// Message is a published event captured by Recorder.
type Message struct {
	Subject string
	Payload any
}

// Recorder keeps published events in memory. Used in tests and dry runs.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func (r *Recorder) Publish(subject string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Subject: subject, Payload: payload})
	return nil
}

func (r *Recorder) Close() {}

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}

// Subjects lists the subjects published so far, in order.
func (r *Recorder) Subjects() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	for i, m := range r.messages {
		out[i] = m.Subject
	}
	return out
}
