package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rcliao/convo-memory/internal/model"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "put [content]",
		Short: "Store a memory",
		Long:  "Store a memory directly. Content can be a positional arg or piped via stdin.",
		Run:   runPut,
	}

	cmd.Flags().String("speaker", "", "Who the memory is about or from")
	cmd.Flags().StringP("type", "t", string(model.TypeManual), "Type: personal, preferences, relationships, events, feelings, beliefs, important, summary, manual")
	cmd.Flags().IntP("importance", "i", model.DefaultImportance, "Importance 1-10")

	RootCmd.AddCommand(cmd)
}

func runPut(cmd *cobra.Command, args []string) {
	speaker, _ := cmd.Flags().GetString("speaker")
	typeStr, _ := cmd.Flags().GetString("type")
	importance, _ := cmd.Flags().GetInt("importance")

	// Get content: positional arg first, then check stdin
	var content string
	if len(args) > 0 {
		content = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			content = string(b)
		}
	}

	if strings.TrimSpace(content) == "" {
		exitErr("put", fmt.Errorf("content is required (positional arg or stdin)"))
	}

	t, ok := model.ParseType(typeStr)
	if !ok {
		exitErr("put", fmt.Errorf("invalid type %q", typeStr))
	}

	m, closeFn := openManager(cmd.Context())
	defer closeFn()

	mem, ok := m.CreateMemory(cmd.Context(), strings.TrimSpace(content), speaker, t, importance)
	if !ok {
		exitErr("put", fmt.Errorf("not stored: empty, a similar memory exists, or it ranks below every retained memory"))
	}
	printJSON(mem)
}
