package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "set-importance",
		Short: "Change a memory's importance",
		Long:  "Change a memory's importance. Values outside 1-10 are clamped.",
		Run:   runSetImportance,
	}

	cmd.Flags().String("id", "", "Memory ID (required)")
	cmd.Flags().IntP("value", "v", 0, "New importance (required)")
	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("value")

	RootCmd.AddCommand(cmd)
}

func runSetImportance(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetString("id")
	value, _ := cmd.Flags().GetInt("value")

	m, closeFn := openManager(cmd.Context())
	defer closeFn()

	if !m.UpdateImportance(cmd.Context(), id, value) {
		exitErr("set-importance", fmt.Errorf("memory not found: %s", id))
	}
	mem, _ := m.Get(id)
	printJSON(mem)
}
