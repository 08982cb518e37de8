package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Database
	DBDriver   string `envconfig:"DB_DRIVER" default:"postgres"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"gamerating"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"gamerating.db"`

	// JWT
	JWTSecret        string        `envconfig:"JWT_SECRET"`
	JWTAccessExpiry  time.Duration `envconfig:"JWT_ACCESS_EXPIRY" default:"15m"`
	JWTRefreshExpiry time.Duration `envconfig:"JWT_REFRESH_EXPIRY" default:"168h"`

	// Staff
	StaffEmails  string `envconfig:"STAFF_EMAILS"`
	StaffUserIDs string `envconfig:"STAFF_USER_IDS"`
	AdminToken   string `envconfig:"ADMIN_TOKEN"`

	// Comments
	CommentMaxLength int    `envconfig:"COMMENT_MAX_LENGTH" default:"3000"`
	LoginURL         string `envconfig:"LOGIN_URL" default:"/login"`

	// Server
	Port        string `envconfig:"PORT" default:"8080"`
	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"*"`
	AppEnv      string `envconfig:"APP_ENV" default:"development"`

	// Observability
	SentryDSN          string `envconfig:"SENTRY_DSN"`
	LogRetentionDays   int    `envconfig:"LOG_RETENTION_DAYS" default:"30"`
	LogCleanupSchedule string `envconfig:"LOG_CLEANUP_SCHEDULE" default:"0 3 * * *"`

	// Events
	NATSURL     string `envconfig:"NATS_URL"`
	NATSSubject string `envconfig:"NATS_SUBJECT_PREFIX" default:"gamerating"`
}

// Load reads a .env file when present and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &c, nil
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}
