package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/kizuna-core/internal/application/handlers"
)

func newIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Rebuild the semantic memo index",
		Long:  "Drops and rebuilds the memo index from every logged interaction. The index is derived state; this is always safe to run.",
		RunE:  runIndex,
	}
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withSearchHandler(func(handler *handlers.SearchHandler) error {
		count, err := handler.HandleIndex(ctx)
		if err != nil {
			return fmt.Errorf("rebuilding index: %w", err)
		}

		fmt.Printf("Indexed %d memos.\n", count)
		return nil
	})
}
