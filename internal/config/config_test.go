package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"CONVO_MEMORY_DB", "CONVO_MEMORY_SESSION", "CONVO_MEMORY_CAPACITY",
		"CONVO_MEMORY_SUMMARY_INTERVAL", "CONVO_MEMORY_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_NoFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Capacity != DefaultCapacity {
		t.Errorf("capacity = %d, want %d", cfg.Capacity, DefaultCapacity)
	}
	if cfg.SummaryInterval != DefaultSummaryInterval {
		t.Errorf("summaryInterval = %d, want %d", cfg.SummaryInterval, DefaultSummaryInterval)
	}
	if cfg.PhraseMatchScore != 0.8 {
		t.Errorf("phraseMatchScore = %v, want 0.8", cfg.PhraseMatchScore)
	}
	if cfg.DBPath != filepath.Join(tmpDir, ".convo-memory", "memory.db") {
		t.Errorf("unexpected db path %q", cfg.DBPath)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte(`{"session":"elena","capacity":50,"summaryInterval":-1,"logLevel":"debug"}`), 0o644)

	t.Setenv("CONVO_MEMORY_CAPACITY", "25")
	t.Setenv("CONVO_MEMORY_DB", "/tmp/x.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Session != "elena" {
		t.Errorf("session = %q, want elena", cfg.Session)
	}
	if cfg.Capacity != 25 {
		t.Errorf("capacity = %d, want env override 25", cfg.Capacity)
	}
	if cfg.SummaryInterval != DefaultSummaryInterval {
		t.Errorf("non-positive interval should fall back, got %d", cfg.SummaryInterval)
	}
	if cfg.DBPath != "/tmp/x.db" {
		t.Errorf("db = %q", cfg.DBPath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("logLevel = %q", cfg.LogLevel)
	}
}

func TestLoad_Malformed(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte(`{nope`), 0o644)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}
