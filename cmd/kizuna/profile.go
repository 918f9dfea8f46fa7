package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/kizuna-core/internal/application/handlers"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile <person>",
		Short: "Show profiling progress for a person",
		Args:  cobra.ExactArgs(1),
		RunE:  runProfileStats,
	}

	cmd.AddCommand(
		newProfileNoteCmd(),
		newProfileNotesCmd(),
		newProfileNoteRemoveCmd(),
	)

	return cmd
}

func runProfileStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		stats, err := d.Profile.HandleStats(ctx, args[0])
		if err != nil {
			return fmt.Errorf("loading profile stats: %w", err)
		}

		fmt.Printf("Profiling progress for %s:\n\n", stats.Person.DisplayName())
		if len(stats.Completion) == 0 {
			fmt.Println("No questions in the bank yet.")
			return nil
		}

		for _, c := range stats.Completion {
			fmt.Printf("  %s: %d/%d answered\n", c.Category, c.Answered, c.Total)
		}
		return nil
	})
}

func newProfileNoteCmd() *cobra.Command {
	var in handlers.NoteInput

	cmd := &cobra.Command{
		Use:   "note <person> <framework> <result>",
		Short: "Record an analysis conclusion",
		Long: `Records a personality-analysis conclusion under a named framework,
graded by how confident you are (S, A, B or C).

Examples:
  kizuna profile note 佐藤 MBTI INTJ --confidence B
  kizuna profile note ken enneagram "type 5" --evidence "prefers to research before acting"`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Framework = args[1]
			in.Result = args[2]
			return runProfileNote(cmd, args[0], in)
		},
	}

	cmd.Flags().StringVar(&in.Confidence, "confidence", "", "Confidence grade: S, A, B or C")
	cmd.Flags().StringVar(&in.Evidence, "evidence", "", "Supporting observations")

	return cmd
}

func runProfileNote(cmd *cobra.Command, ref string, in handlers.NoteInput) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		n, err := d.Profile.HandleAddNote(ctx, ref, in)
		if err != nil {
			return fmt.Errorf("recording note: %w", err)
		}

		fmt.Printf("Recorded note %s\n", n.ID)
		return nil
	})
}

func newProfileNotesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notes <person>",
		Short: "List a person's analysis notes",
		Args:  cobra.ExactArgs(1),
		RunE:  runProfileNotes,
	}
}

func runProfileNotes(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		notes, err := d.Profile.HandleNotes(ctx, args[0])
		if err != nil {
			return fmt.Errorf("listing notes: %w", err)
		}

		if len(notes) == 0 {
			fmt.Println("No analysis notes recorded.")
			return nil
		}

		fmt.Printf("Analysis notes (%d):\n\n", len(notes))
		for _, n := range notes {
			fmt.Printf("%s  %s: %s", n.ID, n.Framework, n.Result)
			if n.Confidence != "" {
				fmt.Printf(" [%s]", n.Confidence)
			}
			fmt.Println()
			if n.Evidence != "" {
				fmt.Printf("  Evidence: %s\n", n.Evidence)
			}
		}
		return nil
	})
}

func newProfileNoteRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "note-remove <note-id>",
		Short: "Remove an analysis note",
		Args:  cobra.ExactArgs(1),
		RunE:  runProfileNoteRemove,
	}
}

func runProfileNoteRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if err := d.Profile.HandleDeleteNote(ctx, args[0]); err != nil {
			return fmt.Errorf("removing note: %w", err)
		}

		fmt.Printf("Removed note %s\n", args[0])
		return nil
	})
}
