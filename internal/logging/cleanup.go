package logging

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/models"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartCleanup schedules deletion of system_logs older than retentionDays.
// The returned cron must be stopped on shutdown.
func StartCleanup(db *gorm.DB, schedule string, retentionDays int) (*cron.Cron, error) {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if _, err := PurgeOlderThan(db, time.Now().AddDate(0, 0, -retentionDays)); err != nil {
			slog.Error("log cleanup failed", "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid cleanup schedule %q: %w", schedule, err)
	}
	c.Start()
	return c, nil
}

// PurgeOlderThan deletes log rows written before cutoff.
func PurgeOlderThan(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		slog.Info("log cleanup completed", "deleted", result.RowsAffected)
	}
	return result.RowsAffected, nil
}
