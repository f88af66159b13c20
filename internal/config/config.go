// Package config loads settings from a JSON file with environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rcliao/convo-memory/internal/rank"
)

const (
	DefaultSession         = "default"
	DefaultCapacity        = 100
	DefaultSummaryInterval = 20
	DefaultLogLevel        = "warn"
	DefaultLogFormat       = "text"
)

type Config struct {
	DBPath           string  `json:"dbPath"`
	Session          string  `json:"session"`
	Capacity         int     `json:"capacity"`
	SummaryInterval  int     `json:"summaryInterval"`
	PhraseMatchScore float64 `json:"phraseMatchScore"`
	LogLevel         string  `json:"logLevel"`
	LogFormat        string  `json:"logFormat"`
}

func Dir() string {
	home := os.Getenv("HOME")
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	return filepath.Join(home, ".convo-memory")
}

// Path is the default config file location.
func Path() string {
	return filepath.Join(Dir(), "config.json")
}

func Default() *Config {
	return &Config{
		DBPath:           filepath.Join(Dir(), "memory.db"),
		Session:          DefaultSession,
		Capacity:         DefaultCapacity,
		SummaryInterval:  DefaultSummaryInterval,
		PhraseMatchScore: rank.DefaultPhraseMatchScore,
		LogLevel:         DefaultLogLevel,
		LogFormat:        DefaultLogFormat,
	}
}

// Load reads the config at path (Path() when empty). A missing file yields
// the defaults; a malformed one is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if db := os.Getenv("CONVO_MEMORY_DB"); db != "" {
		cfg.DBPath = db
	}
	if session := os.Getenv("CONVO_MEMORY_SESSION"); session != "" {
		cfg.Session = session
	}
	if capacity := os.Getenv("CONVO_MEMORY_CAPACITY"); capacity != "" {
		if parsed, err := strconv.Atoi(capacity); err == nil {
			cfg.Capacity = parsed
		}
	}
	if interval := os.Getenv("CONVO_MEMORY_SUMMARY_INTERVAL"); interval != "" {
		if parsed, err := strconv.Atoi(interval); err == nil {
			cfg.SummaryInterval = parsed
		}
	}
	if level := os.Getenv("CONVO_MEMORY_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	if cfg.DBPath == "" {
		cfg.DBPath = Default().DBPath
	}
	if cfg.Session == "" {
		cfg.Session = DefaultSession
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.SummaryInterval <= 0 {
		cfg.SummaryInterval = DefaultSummaryInterval
	}
	if cfg.PhraseMatchScore <= 0 {
		cfg.PhraseMatchScore = rank.DefaultPhraseMatchScore
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}

	return cfg, nil
}
