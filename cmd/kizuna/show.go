package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/kizuna-core/internal/application/handlers"
	"github.com/ersonp/kizuna-core/internal/domain/entities"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <person>",
		Short: "Show a person's full profile",
		Long:  "Shows the full profile card: attributes, relationships, life events, analysis notes and profiling progress. The person may be referenced by id, name, kana or nickname.",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		detail, err := d.Person.HandleShow(ctx, args[0])
		if err != nil {
			return fmt.Errorf("showing person: %w", err)
		}

		displayDetail(detail)
		return nil
	})
}

func displayDetail(detail *handlers.PersonDetail) {
	p := detail.Person

	fmt.Printf("%s (%s)\n", p.DisplayName(), p.ID)
	if p.FamilyNameKana != "" || p.GivenNameKana != "" {
		fmt.Printf("  Kana: %s %s\n", p.FamilyNameKana, p.GivenNameKana)
	}
	if p.Nickname != "" {
		fmt.Printf("  Nickname: %s\n", p.Nickname)
	}
	if p.IsSelf {
		fmt.Println("  (this is you)")
	}
	if p.Status != "" {
		fmt.Printf("  Status: %s\n", p.Status)
	}
	if p.Gender != "" {
		fmt.Printf("  Gender: %s\n", p.Gender)
	}
	if p.BloodType != "" {
		fmt.Printf("  Blood type: %s\n", p.BloodType)
	}
	if !p.BirthDate.IsZero() {
		fmt.Printf("  Birth date: %s\n", p.BirthDate)
	}
	if detail.Age != nil {
		fmt.Printf("  Age: %d\n", *detail.Age)
	}
	if !p.FirstMet.IsZero() {
		fmt.Printf("  First met: %s\n", p.FirstMet)
	}
	if len(p.Groups) > 0 {
		fmt.Printf("  Groups: %s\n", entities.JoinGroups(p.Groups))
	}
	if p.Notes != "" {
		fmt.Printf("  Notes: %s\n", p.Notes)
	}
	if p.Strategy != "" {
		fmt.Printf("  Strategy: %s\n", p.Strategy)
	}
	if p.Prediction != "" {
		fmt.Printf("  Prediction: %s\n", p.Prediction)
	}

	if len(detail.Relationships) > 0 {
		fmt.Printf("\nRelationships (%d):\n", len(detail.Relationships))
		for _, rel := range detail.Relationships {
			displayOrientedRelationship(rel)
		}
	}

	if len(detail.History) > 0 {
		fmt.Printf("\nLife events (%d):\n", len(detail.History))
		for _, h := range detail.History {
			if h.Date.IsZero() {
				fmt.Printf("  - %s\n", h.Content)
			} else {
				fmt.Printf("  - [%s] %s\n", h.Date, h.Content)
			}
		}
	}

	if len(detail.Notes) > 0 {
		fmt.Printf("\nAnalysis notes (%d):\n", len(detail.Notes))
		for _, n := range detail.Notes {
			displayNote(n)
		}
	}

	if len(detail.Completion) > 0 {
		fmt.Println("\nProfiling progress:")
		for _, c := range detail.Completion {
			fmt.Printf("  %s: %d/%d\n", c.Category, c.Answered, c.Total)
		}
	}
}

func displayOrientedRelationship(rel entities.OrientedRelationship) {
	line := fmt.Sprintf("  - %s: %s (%s", rel.Type, rel.OtherID, rel.Quality)
	if rel.PositionOut != "" || rel.PositionIn != "" {
		line += fmt.Sprintf(", %s/%s", rel.PositionOut, rel.PositionIn)
	}
	line += ")"
	if rel.Caution {
		line += " [caution]"
	}
	fmt.Println(line)
}

func displayNote(n entities.ProfilingNote) {
	line := fmt.Sprintf("  - %s: %s", n.Framework, n.Result)
	if n.Confidence != "" {
		line += fmt.Sprintf(" [%s]", n.Confidence)
	}
	fmt.Println(line)
	if n.Evidence != "" {
		fmt.Printf("    Evidence: %s\n", n.Evidence)
	}
}
