package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
)

func newListCmd() *cobra.Command {
	var (
		where []string
		sort  string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"people"},
		Short:   "List people in the directory",
		Long: `Lists people in directory order (kana reading first), with optional
attribute filters and sorting.

Filter fields: name, group, status, gender, age, last_contact.
Filter operators: = (equals), ~ (contains), >= (at least), <= (at most).
People for whom a filtered attribute is unknown never match.

Examples:
  kizuna list
  kizuna list --where group=work --where age>=30
  kizuna list --where name~sato --sort age:desc
  kizuna list --where "last_contact<=2025-01-01"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, where, sort)
		},
	}

	cmd.Flags().StringArrayVarP(&where, "where", "f", nil, "Filter expression (repeatable, combined with AND)")
	cmd.Flags().StringVarP(&sort, "sort", "s", "", "Sort field, optionally with direction, e.g. age or age:desc")

	return cmd
}

func runList(cmd *cobra.Command, where []string, sort string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		people, err := d.Person.HandleList(ctx, where, sort)
		if err != nil {
			return fmt.Errorf("listing people: %w", err)
		}

		if len(people) == 0 {
			fmt.Println("No people found.")
			return nil
		}

		fmt.Printf("Showing %d people:\n\n", len(people))
		for _, p := range people {
			displayPersonLine(p)
		}
		return nil
	})
}

func displayPersonLine(p *entities.Person) {
	fmt.Printf("%s (%s)\n", p.DisplayName(), p.ID)
	if p.Status != "" {
		fmt.Printf("  Status: %s\n", p.Status)
	}
	if age, ok := p.AgeAt(time.Now()); ok {
		fmt.Printf("  Age: %d\n", age)
	}
	if len(p.Groups) > 0 {
		fmt.Printf("  Groups: %s\n", entities.JoinGroups(p.Groups))
	}
	fmt.Println()
}
