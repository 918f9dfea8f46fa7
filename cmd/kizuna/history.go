package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <person>",
		Short: "List a person's life events",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryList,
	}

	cmd.AddCommand(
		newHistoryAddCmd(),
		newHistoryRemoveCmd(),
	)

	return cmd
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		events, err := d.History.HandleList(ctx, args[0])
		if err != nil {
			return fmt.Errorf("listing history: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No life events recorded.")
			return nil
		}

		fmt.Printf("Life events (%d):\n\n", len(events))
		for _, h := range events {
			if h.Date.IsZero() {
				fmt.Printf("%s  %s\n", h.ID, h.Content)
			} else {
				fmt.Printf("%s  [%s] %s\n", h.ID, h.Date, h.Content)
			}
		}
		return nil
	})
}

func newHistoryAddCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "add <person> <content>",
		Short: "Record a life event",
		Long: `Records a dated life event, e.g. a job change or a move. The date may
be partial.

Examples:
  kizuna history add 佐藤 "Changed jobs to ACME" --date 2026-04
  kizuna history add ken "Moved to Osaka"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryAdd(cmd, args[0], date, args[1])
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Event date (YYYY, YYYY-MM or YYYY-MM-DD)")

	return cmd
}

func runHistoryAdd(cmd *cobra.Command, ref, date, content string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		h, err := d.History.HandleAdd(ctx, ref, date, content)
		if err != nil {
			return fmt.Errorf("adding life event: %w", err)
		}

		fmt.Printf("Recorded life event %s\n", h.ID)
		return nil
	})
}

func newHistoryRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <event-id>",
		Aliases: []string{"delete"},
		Short:   "Remove a life event",
		Args:    cobra.ExactArgs(1),
		RunE:    runHistoryRemove,
	}
}

func runHistoryRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if err := d.History.HandleDelete(ctx, args[0]); err != nil {
			return fmt.Errorf("removing life event: %w", err)
		}

		fmt.Printf("Removed life event %s\n", args[0])
		return nil
	})
}
