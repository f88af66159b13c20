package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every memory in the session",
		Run:   runClear,
	}

	cmd.Flags().Bool("yes", false, "Confirm deletion (irreversible)")
	cmd.MarkFlagRequired("yes")

	RootCmd.AddCommand(cmd)
}

func runClear(cmd *cobra.Command, args []string) {
	m, closeFn := openManager(cmd.Context())
	defer closeFn()

	m.ClearAll(cmd.Context())
	fmt.Fprintln(cmd.OutOrStdout(), `{"ok":true}`)
}
