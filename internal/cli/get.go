package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show a memory by ID",
		Long:  "Show a memory by ID without counting it as an access.",
		Run:   runGet,
	}

	cmd.Flags().String("id", "", "Memory ID (required)")
	cmd.MarkFlagRequired("id")

	RootCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetString("id")

	m, closeFn := openManager(cmd.Context())
	defer closeFn()

	mem, ok := m.Get(id)
	if !ok {
		exitErr("get", fmt.Errorf("memory not found: %s", id))
	}
	printJSON(mem)
}
