package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const batchSize = 50

// DBHandler is an slog.Handler that batches ERROR+ records into system_logs.
type DBHandler struct {
	db     *gorm.DB
	mu     sync.Mutex
	buffer []models.SystemLog
	ticker *time.Ticker
	done   chan struct{}
	once   *sync.Once
}

func NewDBHandler(db *gorm.DB, flushEvery time.Duration) *DBHandler {
	h := &DBHandler{
		db:     db,
		buffer: make([]models.SystemLog, 0, batchSize),
		ticker: time.NewTicker(flushEvery),
		done:   make(chan struct{}),
		once:   &sync.Once{},
	}
	go h.flushLoop()
	return h
}

func (h *DBHandler) flushLoop() {
	for {
		select {
		case <-h.ticker.C:
			h.Flush()
		case <-h.done:
			h.Flush()
			return
		}
	}
}

// Flush writes any buffered records now.
func (h *DBHandler) Flush() {
	h.mu.Lock()
	if len(h.buffer) == 0 {
		h.mu.Unlock()
		return
	}
	batch := h.buffer
	h.buffer = make([]models.SystemLog, 0, batchSize)
	h.mu.Unlock()

	if err := h.db.CreateInBatches(batch, batchSize).Error; err != nil {
		// Written to stderr directly: logging through slog would loop back here.
		fmt.Fprintf(os.Stderr, "failed to flush %d system logs: %v\n", len(batch), err)
	}
}

func (h *DBHandler) Stop() {
	h.once.Do(func() {
		h.ticker.Stop()
		close(h.done)
	})
}

// Enabled only handles ERROR and above.
func (h *DBHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *DBHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]interface{})
	collect := func(a slog.Attr) bool {
		switch a.Key {
		case "request_id":
			entry.RequestID = a.Value.String()
		case "user_id":
			s := a.Value.String()
			entry.UserID = &s
		case "action":
			entry.Action = a.Value.String()
		case "error":
			entry.Error = a.Value.String()
		case "latency_ms":
			if f, ok := a.Value.Any().(float64); ok {
				entry.LatencyMs = int(math.Round(f))
			}
		default:
			extra[a.Key] = a.Value.Any()
		}
		return true
	}
	record.Attrs(collect)

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	h.mu.Lock()
	h.buffer = append(h.buffer, entry)
	needFlush := len(h.buffer) >= batchSize
	h.mu.Unlock()

	if needFlush {
		go h.Flush()
	}
	return nil
}

// WithAttrs returns a handler sharing this one's buffer with extra attributes attached.
func (h *DBHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dbHandlerView{parent: h, attrs: append([]slog.Attr(nil), attrs...)}
}

func (h *DBHandler) WithGroup(name string) slog.Handler {
	return h
}

type dbHandlerView struct {
	parent *DBHandler
	attrs  []slog.Attr
}

func (v *dbHandlerView) Enabled(ctx context.Context, level slog.Level) bool {
	return v.parent.Enabled(ctx, level)
}

func (v *dbHandlerView) Handle(ctx context.Context, record slog.Record) error {
	r := record.Clone()
	r.AddAttrs(v.attrs...)
	return v.parent.Handle(ctx, r)
}

func (v *dbHandlerView) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dbHandlerView{parent: v.parent, attrs: append(append([]slog.Attr(nil), v.attrs...), attrs...)}
}

func (v *dbHandlerView) WithGroup(string) slog.Handler {
	return v
}
