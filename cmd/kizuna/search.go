package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/kizuna-core/internal/application/handlers"
)

func newSearchCmd() *cobra.Command {
	var (
		person string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Semantic search over interaction memos",
		Long: `Searches the memo index by meaning rather than keywords. Run
'kizuna index' after logging interactions to refresh the index.

Examples:
  kizuna search "talked about changing jobs"
  kizuna search "food preferences" --person 佐藤`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], person, limit)
		},
	}

	cmd.Flags().StringVarP(&person, "person", "p", "", "Restrict to one person's interactions")
	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultSearchLimit, "Maximum number of results")

	return cmd
}

func runSearch(cmd *cobra.Command, query, person string, limit int) error {
	ctx := cmd.Context()

	return withSearchHandler(func(handler *handlers.SearchHandler) error {
		memos, err := handler.HandleSearch(ctx, query, person, limit)
		if err != nil {
			return fmt.Errorf("searching memos: %w", err)
		}

		if len(memos) == 0 {
			fmt.Println("No memos found.")
			return nil
		}

		fmt.Printf("Found %d memos:\n\n", len(memos))
		for i, m := range memos {
			fmt.Printf("%d. [%s] %s (score %.2f)\n", i+1, m.EntryDate.Format("2006-01-02"), m.Text, m.Score)
			if m.Category != "" {
				fmt.Printf("   Category: %s\n", m.Category)
			}
			fmt.Printf("   Interaction: %s\n\n", m.InteractionID)
		}
		return nil
	})
}
