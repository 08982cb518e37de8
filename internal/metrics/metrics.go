// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CommentsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comments_created_total",
			Help: "Comments accepted, by content type.",
		},
		[]string{"content_type"},
	)

	CommentsFlagged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "comments_flagged_total",
			Help: "Successful peer flags on comments.",
		},
	)

	ModerationActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comment_moderation_actions_total",
			Help: "Rows changed by staff moderation actions.",
		},
		[]string{"action"},
	)

	GamesRated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "games_rated_total",
			Help: "Game saves that recomputed a rating, by resulting tier.",
		},
		[]string{"tier"},
	)
)

func init() {
	prometheus.MustRegister(CommentsCreated, CommentsFlagged, ModerationActions, GamesRated)
}

// Handler serves the default registry through fiber.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
