// Package cli implements the convo-memory CLI commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rcliao/convo-memory/internal/config"
	"github.com/rcliao/convo-memory/internal/logging"
	"github.com/rcliao/convo-memory/internal/memory"
	"github.com/rcliao/convo-memory/internal/rank"
	"github.com/rcliao/convo-memory/internal/store"
	"github.com/spf13/cobra"
)

var (
	dbPath     string
	session    string
	configPath string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "convo-memory",
	Short: "Conversational memory for characters and agents",
	Long:  "Extracts facts from conversation, keeps the most important ones, and retrieves what matters for a context. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $CONVO_MEMORY_DB or ~/.convo-memory/memory.db)")
	RootCmd.PersistentFlags().StringVarP(&session, "session", "s", "", "Session key memories are persisted under (default: $CONVO_MEMORY_SESSION or \"default\")")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ~/.convo-memory/config.json)")
}

func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("load config", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if session != "" {
		cfg.Session = session
	}
	return cfg
}

func newLogger(cfg *config.Config) logging.Logger {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logging.LevelWarn
	}
	return logging.With(logging.New(level, cfg.LogFormat, os.Stderr), "session", cfg.Session)
}

func openKV(cfg *config.Config) *store.SQLiteKV {
	kv, err := store.NewSQLiteKV(cfg.DBPath)
	if err != nil {
		exitErr("open store", err)
	}
	return kv
}

// openManager opens the database and returns a Manager restored from the
// configured session, plus a close func.
func openManager(ctx context.Context) (*memory.Manager, func()) {
	cfg := loadConfig()
	logger := newLogger(cfg)
	kv := openKV(cfg)

	s := store.New(kv,
		store.WithKey(cfg.Session),
		store.WithCapacity(cfg.Capacity),
		store.WithLogger(logger),
	)
	ranker := rank.New()
	ranker.PhraseMatchScore = cfg.PhraseMatchScore

	m := memory.New(ctx, s,
		memory.WithSummaryInterval(cfg.SummaryInterval),
		memory.WithRanker(ranker),
		memory.WithLogger(logger),
	)
	return m, func() { kv.Close() }
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
