package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8090"`

	// Auth
	APIKey string `env:"BOOKPARSE_API_KEY"`

	// Upload limits
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"52428800"` // 50MB

	// Book registry
	MaxBooks        int           `env:"MAX_BOOKS" envDefault:"1024"`
	BookTTL         time.Duration `env:"BOOK_TTL" envDefault:"1h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"5m"`
	DedupUploads    bool          `env:"DEDUP_UPLOADS" envDefault:"true"`

	// Batch ingestion
	WorkerCount  int           `env:"WORKER_COUNT" envDefault:"4"`
	MaxQueueSize int           `env:"MAX_QUEUE_SIZE" envDefault:"100"`
	JobTTL       time.Duration `env:"JOB_TTL" envDefault:"1h"`

	// Segmentation
	ExtraAbbreviations []string `env:"EXTRA_ABBREVIATIONS" envSeparator:","`

	// Chunking defaults, in estimated tokens
	ChunkSize    int `env:"CHUNK_SIZE" envDefault:"1500"`
	ChunkOverlap int `env:"CHUNK_OVERLAP" envDefault:"200"`

	// PDF
	PDFFallbackPdftotext bool `env:"PDF_FALLBACK_PDFTOTEXT" envDefault:"true"`

	// Observability
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
	StatsWindow time.Duration `env:"STATS_WINDOW" envDefault:"1h"`
}

// Load reads the environment, after merging any .env files given (or ./.env
// when none are). Missing .env files are not an error.
func Load(dotenv ...string) (Config, error) {
	if err := godotenv.Load(dotenv...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.MaxBooks < 0 {
		cfg.MaxBooks = 0
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = time.Hour
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 1500
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		cfg.ChunkOverlap = 0
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = time.Hour
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("BOOKPARSE_API_KEY is required")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// SlogLevel returns the configured level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	lvl, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// ParseLevel accepts debug, info, warn or error (any case).
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return lvl, nil
}
