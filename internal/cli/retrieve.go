package cli

import (
	"fmt"
	"strings"

	"github.com/rcliao/convo-memory/internal/model"
	"github.com/rcliao/convo-memory/internal/rank"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "retrieve [context]",
		Short: "Retrieve the memories most relevant to a context",
		Long:  "Score memories by word overlap, recency and importance, and return the top results. Retrieved memories have their access count bumped.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runRetrieve,
	}

	cmd.Flags().IntP("limit", "l", rank.DefaultLimit, "Max results")
	cmd.Flags().Int("min-importance", 0, "Skip memories below this importance")
	cmd.Flags().String("speaker", "", "Filter by speaker")
	cmd.Flags().String("type", "", "Filter by type")
	cmd.Flags().Float64("recency-weight", rank.DefaultRecencyWeight, "Weight of recency in the score")
	cmd.Flags().Float64("importance-weight", rank.DefaultImportanceWeight, "Weight of importance in the score")

	RootCmd.AddCommand(cmd)
}

func runRetrieve(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	minImportance, _ := cmd.Flags().GetInt("min-importance")
	speaker, _ := cmd.Flags().GetString("speaker")
	typeStr, _ := cmd.Flags().GetString("type")
	recencyWeight, _ := cmd.Flags().GetFloat64("recency-weight")
	importanceWeight, _ := cmd.Flags().GetFloat64("importance-weight")
	query := strings.Join(args, " ")

	var t model.Type
	if typeStr != "" {
		var ok bool
		if t, ok = model.ParseType(typeStr); !ok {
			exitErr("retrieve", fmt.Errorf("invalid type %q", typeStr))
		}
	}

	m, closeFn := openManager(cmd.Context())
	defer closeFn()

	results := m.Retrieve(cmd.Context(), query, rank.Options{
		Limit:            limit,
		MinImportance:    minImportance,
		Speaker:          speaker,
		Type:             t,
		RecencyWeight:    rank.Weight(recencyWeight),
		ImportanceWeight: rank.Weight(importanceWeight),
	})
	if results == nil {
		results = []rank.Scored{}
	}
	printJSON(results)
}
