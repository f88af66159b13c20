package cli

import (
	"github.com/rcliao/convo-memory/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "Session management",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all persisted sessions",
		Run:   runSessionsList,
	}

	sessionsCmd.AddCommand(listCmd)
	RootCmd.AddCommand(sessionsCmd)
}

func runSessionsList(cmd *cobra.Command, args []string) {
	kv := openKV(loadConfig())
	defer kv.Close()

	keys, err := kv.Keys(cmd.Context())
	if err != nil {
		exitErr("list sessions", err)
	}
	if keys == nil {
		keys = []store.KeyInfo{}
	}
	printJSON(keys)
}
