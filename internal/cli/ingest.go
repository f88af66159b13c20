package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rcliao/convo-memory/internal/model"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ingest [text]",
		Short: "Extract memories from conversation",
		Long: `Extract memories from a single message, or from a whole transcript with --file.
The transcript is a JSON array of {"speaker","text","timestamp"} objects, fed in order
so that summaries are produced every summary-interval messages.`,
		Run: runIngest,
	}

	cmd.Flags().String("speaker", "User", "Speaker of the message")
	cmd.Flags().StringP("file", "F", "", "Transcript JSON file (- for stdin)")

	RootCmd.AddCommand(cmd)
}

func runIngest(cmd *cobra.Command, args []string) {
	speaker, _ := cmd.Flags().GetString("speaker")
	file, _ := cmd.Flags().GetString("file")

	var messages []model.Message
	switch {
	case file != "":
		var data []byte
		var err error
		if file == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(file)
		}
		if err != nil {
			exitErr("read transcript", err)
		}
		if err := json.Unmarshal(data, &messages); err != nil {
			exitErr("parse transcript", err)
		}
	case len(args) > 0:
		messages = []model.Message{{Speaker: speaker, Text: strings.Join(args, " ")}}
	default:
		exitErr("ingest", fmt.Errorf("message text or --file is required"))
	}

	now := time.Now().UTC()
	for i := range messages {
		if messages[i].Timestamp.IsZero() {
			messages[i].Timestamp = now
		}
	}

	m, closeFn := openManager(cmd.Context())
	defer closeFn()

	added := m.IngestTranscript(cmd.Context(), messages)
	if added == nil {
		added = []model.Memory{}
	}
	printJSON(added)
}
