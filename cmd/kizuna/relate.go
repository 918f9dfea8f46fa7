package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/kizuna-core/internal/application/handlers"
)

func newRelateCmd() *cobra.Command {
	var in handlers.RelateInput

	cmd := &cobra.Command{
		Use:   "relate <from> <type> <to>",
		Short: "Create or update the relationship between two people",
		Long: `Records the relationship between two people. There is at most one
relationship per pair; relating an already-related pair overwrites it.
Positions are read in the direction of the arguments: --position-out is
<from>'s role toward <to>.

Examples:
  kizuna relate 佐藤 colleague 鈴木 --quality good
  kizuna relate ken mentor yuki --position-out mentor --position-in mentee
  kizuna relate 田中 rival 山田 --quality bad --caution`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Type = args[1]
			return runRelate(cmd, args[0], args[2], in)
		},
	}

	cmd.Flags().StringVar(&in.Quality, "quality", "neutral", "How it's going: good, neutral, bad or complicated")
	cmd.Flags().StringVar(&in.PositionOut, "position-out", "", "From's role toward to, e.g. senior")
	cmd.Flags().StringVar(&in.PositionIn, "position-in", "", "To's role toward from, e.g. junior")
	cmd.Flags().BoolVar(&in.Caution, "caution", false, "Flag this relationship as needing care")

	return cmd
}

func runRelate(cmd *cobra.Command, fromRef, toRef string, in handlers.RelateInput) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		rel, err := d.Relationship.HandleRelate(ctx, fromRef, toRef, in)
		if err != nil {
			return fmt.Errorf("creating relationship: %w", err)
		}

		fmt.Printf("Recorded relationship: %s\n", rel.ID)
		fmt.Printf("  %s -[%s]- %s (%s)\n", fromRef, rel.Type, toRef, rel.Quality)
		if rel.Caution {
			fmt.Println("  (caution)")
		}
		return nil
	})
}

func newUnrelateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unrelate <person> <person>",
		Short: "Remove the relationship between two people",
		Args:  cobra.ExactArgs(2),
		RunE:  runUnrelate,
	}
}

func runUnrelate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if err := d.Relationship.HandleUnrelate(ctx, args[0], args[1]); err != nil {
			return fmt.Errorf("removing relationship: %w", err)
		}

		fmt.Printf("Removed relationship between %s and %s\n", args[0], args[1])
		return nil
	})
}
