package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/kizuna-core/internal/application/handlers"
	"github.com/ersonp/kizuna-core/internal/domain/entities"
)

func newTimelineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timeline <person>",
		Short: "Show a person's interaction timeline",
		Long:  "Lists the person's logged interactions newest first, with profiling answers resolved to their question text. Answers whose question was deleted are kept and marked.",
		Args:  cobra.ExactArgs(1),
		RunE:  runTimeline,
	}
}

func runTimeline(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		entries, err := d.Log.HandleTimeline(ctx, args[0])
		if err != nil {
			return fmt.Errorf("loading timeline: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No interactions logged yet.")
			return nil
		}

		fmt.Printf("Timeline (%d entries):\n\n", len(entries))
		for _, entry := range entries {
			displayTimelineEntry(entry)
		}
		return nil
	})
}

func displayTimelineEntry(entry handlers.TimelineEntry) {
	it := entry.Interaction

	fmt.Printf("%s", it.EntryDate.Format("2006-01-02"))
	if it.PeriodStart != "" {
		fmt.Printf(" (around %s", it.PeriodStart)
		if it.PeriodEnd != "" {
			fmt.Printf(" - %s", it.PeriodEnd)
		}
		fmt.Print(")")
	}
	if it.Category != "" {
		fmt.Printf(" [%s]", it.Category)
	}
	if it.Channel != "" {
		fmt.Printf(" via %s", it.Channel)
	}
	fmt.Println()

	if it.Content != "" {
		fmt.Printf("  %s\n", it.Content)
	}
	if it.Feeling != "" {
		fmt.Printf("  Feeling: %s\n", it.Feeling)
	}
	if len(it.Tags) > 0 {
		fmt.Printf("  Tags: %s\n", entities.JoinGroups(it.Tags))
	}
	for _, a := range entry.Answers {
		if a.Orphaned {
			fmt.Printf("  Q(deleted): %s\n", a.Value)
			continue
		}
		fmt.Printf("  Q: %s -> %s\n", a.QuestionText, a.Value)
	}
	fmt.Println()
}
