package cli

import (
	"fmt"

	"github.com/rcliao/convo-memory/internal/model"
	"github.com/rcliao/convo-memory/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List memories",
		Run:   runList,
	}

	cmd.Flags().String("speaker", "", "Filter by speaker")
	cmd.Flags().StringP("type", "t", "", "Filter by type")
	cmd.Flags().String("sort", string(store.SortImportance), "Sort by: importance, recency, access")
	cmd.Flags().IntP("limit", "l", 0, "Max results (0 for all)")
	cmd.Flags().Bool("ids-only", false, "Only output IDs")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	speaker, _ := cmd.Flags().GetString("speaker")
	typeStr, _ := cmd.Flags().GetString("type")
	sortBy, _ := cmd.Flags().GetString("sort")
	limit, _ := cmd.Flags().GetInt("limit")
	idsOnly, _ := cmd.Flags().GetBool("ids-only")

	var t model.Type
	if typeStr != "" {
		var ok bool
		if t, ok = model.ParseType(typeStr); !ok {
			exitErr("list", fmt.Errorf("invalid type %q", typeStr))
		}
	}
	switch store.SortBy(sortBy) {
	case store.SortImportance, store.SortRecency, store.SortAccess:
	default:
		exitErr("list", fmt.Errorf("invalid sort %q (use importance, recency, access)", sortBy))
	}

	m, closeFn := openManager(cmd.Context())
	defer closeFn()

	memories := m.ListAll(store.ListParams{
		Speaker: speaker,
		Type:    t,
		SortBy:  store.SortBy(sortBy),
		Limit:   limit,
	})

	if idsOnly {
		for _, mem := range memories {
			fmt.Println(mem.ID)
		}
		return
	}

	if memories == nil {
		memories = []model.Memory{}
	}
	printJSON(memories)
}
