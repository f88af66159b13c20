package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import memories from JSON",
		Long:  "Replace the session's memories with a JSON array read from stdin. Expects the format produced by export.",
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		exitErr("read stdin", err)
	}

	m, closeFn := openManager(cmd.Context())
	defer closeFn()

	if !m.ImportAll(cmd.Context(), data) {
		exitErr("import", fmt.Errorf("input is not a JSON array of memories"))
	}

	fmt.Printf(`{"ok":true,"imported":%d}`+"\n", m.Stats().TotalMemories)
}
