package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultHistoryURL = "https://docs.google.com/spreadsheets/d/1jULq22hV2beqPoOy2flUx-pItJJsIWE_9GC64264B40/edit?gid=0#gid=0"

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Sink     SinkConfig
	Sheets   SheetsConfig
	Database DatabaseConfig
	Kafka    KafkaConfig
	Redis    RedisConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port      int
	WebAppURI string
}

// SinkConfig holds the record sink settings shared by every backend
type SinkConfig struct {
	// ScriptURL is the sheet logger web app. Empty disables it.
	ScriptURL  string
	Timeout    time.Duration
	NoticeTTL  time.Duration
	HistoryURL string
}

// SheetsConfig holds the optional direct Google Sheets backend
type SheetsConfig struct {
	SpreadsheetID   string
	CredentialsFile string
	Range           string
}

// Enabled reports whether a spreadsheet was configured.
func (c SheetsConfig) Enabled() bool { return c.SpreadsheetID != "" }

// DatabaseConfig holds the optional Postgres ledger
type DatabaseConfig struct {
	URL string
}

// Enabled reports whether a database URL was configured.
func (c DatabaseConfig) Enabled() bool { return c.URL != "" }

// KafkaConfig holds the optional event stream backend
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether any broker was configured.
func (c KafkaConfig) Enabled() bool { return len(c.Brokers) > 0 }

// RedisConfig holds the optional shared notice board
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// Load reads configuration from the environment. Outside production env.local
// is loaded first when present.
func Load() (*Config, error) {
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}
	return FromEnv()
}

// FromEnv builds the configuration from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	var err error

	// Server configuration
	cfg.Server.Port, err = strconv.Atoi(getEnvWithDefault("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}
	cfg.Server.WebAppURI = getEnvWithDefault("WEBAPP_URI", "http://localhost:5173")

	// Sink configuration
	cfg.Sink.ScriptURL = os.Getenv("GOOGLE_SCRIPT_URL")
	if cfg.Sink.Timeout, err = parseDuration("SINK_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.Sink.NoticeTTL, err = parseDuration("NOTICE_TTL", "3s"); err != nil {
		return nil, err
	}
	cfg.Sink.HistoryURL = getEnvWithDefault("SHEET_HISTORY_URL", defaultHistoryURL)

	// Google Sheets configuration
	cfg.Sheets.SpreadsheetID = os.Getenv("SHEETS_SPREADSHEET_ID")
	cfg.Sheets.CredentialsFile = os.Getenv("SHEETS_CREDENTIALS_FILE")
	cfg.Sheets.Range = getEnvWithDefault("SHEETS_RANGE", "Hoja 1!A:K")

	// Database configuration
	cfg.Database.URL = os.Getenv("DATABASE_URL")

	// Kafka configuration
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.Kafka.Brokers = append(cfg.Kafka.Brokers, b)
			}
		}
	}
	cfg.Kafka.Topic = getEnvWithDefault("KAFKA_TOPIC", "utm-links")

	// Redis configuration
	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.Enabled = cfg.Redis.Addr != ""
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	cfg.Redis.DB, err = strconv.Atoi(getEnvWithDefault("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_DB: %w", err)
	}

	return cfg, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func parseDuration(key, defaultValue string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnvWithDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}
