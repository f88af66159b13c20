package cli

import (
	"fmt"
	"strings"

	"github.com/rcliao/convo-memory/internal/model"
	"github.com/rcliao/convo-memory/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search memories by keyword",
		Long:  "Search memory content and speakers for matching text. Does not count as an access.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().StringP("type", "t", "", "Filter by type")
	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	typeStr, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	var t model.Type
	if typeStr != "" {
		var ok bool
		if t, ok = model.ParseType(typeStr); !ok {
			exitErr("search", fmt.Errorf("invalid type %q", typeStr))
		}
	}

	m, closeFn := openManager(cmd.Context())
	defer closeFn()

	results := m.Search(store.SearchParams{Query: query, Type: t, Limit: limit})
	if len(results) == 0 {
		fmt.Println("[]")
		return
	}
	printJSON(results)
}
