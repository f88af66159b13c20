package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete a memory",
		Run:   runRm,
	}

	cmd.Flags().String("id", "", "Memory ID (required)")
	cmd.MarkFlagRequired("id")

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetString("id")

	m, closeFn := openManager(cmd.Context())
	defer closeFn()

	if !m.DeleteMemory(cmd.Context(), id) {
		exitErr("rm", fmt.Errorf("memory not found: %s", id))
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q}`+"\n", id)
}
