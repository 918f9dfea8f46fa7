package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newRelationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "relations <person> [other]",
		Short: "List a person's relationships",
		Long:  "Lists every relationship touching the person, seen from their side: positions are printed as their role toward the other person. With a second person, shows only the edge between the two.",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runRelations,
	}
}

func runRelations(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if len(args) == 2 {
			return displayBetween(ctx, d, args[0], args[1])
		}

		infos, err := d.Relationship.HandleRelations(ctx, args[0])
		if err != nil {
			return fmt.Errorf("listing relationships: %w", err)
		}

		if len(infos) == 0 {
			fmt.Println("No relationships found.")
			return nil
		}

		fmt.Printf("Relationships (%d):\n\n", len(infos))
		for _, info := range infos {
			fmt.Printf("%s (%s)\n", info.Other.DisplayName(), info.Other.ID)
			fmt.Printf("  Type: %s, Quality: %s\n", info.Type, info.Quality)
			if info.PositionOut != "" || info.PositionIn != "" {
				fmt.Printf("  Position: %s / %s\n", info.PositionOut, info.PositionIn)
			}
			if info.Caution {
				fmt.Println("  Caution: yes")
			}
			fmt.Println()
		}
		return nil
	})
}

func displayBetween(ctx context.Context, d *Deps, aRef, bRef string) error {
	rel, err := d.Relationship.HandleBetween(ctx, aRef, bRef)
	if err != nil {
		return fmt.Errorf("looking up relationship: %w", err)
	}

	fmt.Printf("Type: %s, Quality: %s\n", rel.Type, rel.Quality)
	if rel.PositionOut != "" || rel.PositionIn != "" {
		fmt.Printf("Position: %s / %s\n", rel.PositionOut, rel.PositionIn)
	}
	if rel.Caution {
		fmt.Println("Caution: yes")
	}
	return nil
}
