package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/kizuna-core/internal/application/handlers"
)

func newAddCmd() *cobra.Command {
	var in handlers.AddInput

	cmd := &cobra.Command{
		Use:   "add <family-name> <given-name>",
		Short: "Add a person to the directory",
		Long: `Registers a new person. Dates may be partial: "1990", "1990-06" or
"1990-06-15" are all accepted.

Examples:
  kizuna add 佐藤 健 --kana "さとう けん" --groups work,tennis
  kizuna add Tanaka Yuki --birth 1990-06 --status friend
  kizuna add 山田 花 --self`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.FamilyName = args[0]
			in.GivenName = args[1]
			return runAdd(cmd, in)
		},
	}

	cmd.Flags().StringVar(&in.FamilyNameKana, "family-kana", "", "Family name reading (kana)")
	cmd.Flags().StringVar(&in.GivenNameKana, "given-kana", "", "Given name reading (kana)")
	cmd.Flags().StringVar(&in.Nickname, "nickname", "", "Nickname")
	cmd.Flags().StringVar(&in.Gender, "gender", "", "Gender")
	cmd.Flags().StringVar(&in.BloodType, "blood-type", "", "Blood type")
	cmd.Flags().StringVar(&in.Status, "status", "", "Status label, e.g. friend, colleague")
	cmd.Flags().StringVar(&in.BirthDate, "birth", "", "Birth date (YYYY, YYYY-MM or YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.FirstMet, "first-met", "", "When you first met (YYYY, YYYY-MM or YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.Groups, "groups", "", "Comma-separated group labels")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "Free-form notes")
	cmd.Flags().BoolVar(&in.IsSelf, "self", false, "Mark this person as yourself")

	return cmd
}

func runAdd(cmd *cobra.Command, in handlers.AddInput) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		p, err := d.Person.HandleAdd(ctx, in)
		if err != nil {
			return fmt.Errorf("adding person: %w", err)
		}

		fmt.Printf("Added %s (%s)\n", p.DisplayName(), p.ID)
		return nil
	})
}
