package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/kizuna-core/internal/application/handlers"
)

func newEditCmd() *cobra.Command {
	var flags struct {
		familyName     string
		givenName      string
		familyNameKana string
		givenNameKana  string
		nickname       string
		gender         string
		bloodType      string
		status         string
		birthDate      string
		firstMet       string
		groups         string
		notes          string
		strategy       string
		prediction     string
		self           bool
	}

	cmd := &cobra.Command{
		Use:   "edit <person>",
		Short: "Edit a person's attributes",
		Long: `Applies a partial edit: only flags you pass change, and passing an
empty value clears the field.

Examples:
  kizuna edit 佐藤 --status colleague
  kizuna edit ken --groups work,tennis --notes ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in handlers.EditInput
			set := func(name string, dst **string, value *string) {
				if cmd.Flags().Changed(name) {
					*dst = value
				}
			}
			set("family-name", &in.FamilyName, &flags.familyName)
			set("given-name", &in.GivenName, &flags.givenName)
			set("family-kana", &in.FamilyNameKana, &flags.familyNameKana)
			set("given-kana", &in.GivenNameKana, &flags.givenNameKana)
			set("nickname", &in.Nickname, &flags.nickname)
			set("gender", &in.Gender, &flags.gender)
			set("blood-type", &in.BloodType, &flags.bloodType)
			set("status", &in.Status, &flags.status)
			set("birth", &in.BirthDate, &flags.birthDate)
			set("first-met", &in.FirstMet, &flags.firstMet)
			set("groups", &in.Groups, &flags.groups)
			set("notes", &in.Notes, &flags.notes)
			set("strategy", &in.Strategy, &flags.strategy)
			set("prediction", &in.Prediction, &flags.prediction)
			if cmd.Flags().Changed("self") {
				in.IsSelf = &flags.self
			}
			return runEdit(cmd, args[0], in)
		},
	}

	cmd.Flags().StringVar(&flags.familyName, "family-name", "", "Family name")
	cmd.Flags().StringVar(&flags.givenName, "given-name", "", "Given name")
	cmd.Flags().StringVar(&flags.familyNameKana, "family-kana", "", "Family name reading (kana)")
	cmd.Flags().StringVar(&flags.givenNameKana, "given-kana", "", "Given name reading (kana)")
	cmd.Flags().StringVar(&flags.nickname, "nickname", "", "Nickname")
	cmd.Flags().StringVar(&flags.gender, "gender", "", "Gender")
	cmd.Flags().StringVar(&flags.bloodType, "blood-type", "", "Blood type")
	cmd.Flags().StringVar(&flags.status, "status", "", "Status label")
	cmd.Flags().StringVar(&flags.birthDate, "birth", "", "Birth date (YYYY, YYYY-MM or YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.firstMet, "first-met", "", "When you first met")
	cmd.Flags().StringVar(&flags.groups, "groups", "", "Comma-separated group labels")
	cmd.Flags().StringVar(&flags.notes, "notes", "", "Free-form notes")
	cmd.Flags().StringVar(&flags.strategy, "strategy", "", "How you want to engage with this person")
	cmd.Flags().StringVar(&flags.prediction, "prediction", "", "Where you expect this relationship to go")
	cmd.Flags().BoolVar(&flags.self, "self", false, "Mark or unmark this person as yourself")

	return cmd
}

func runEdit(cmd *cobra.Command, ref string, in handlers.EditInput) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		p, err := d.Person.HandleEdit(ctx, ref, in)
		if err != nil {
			return fmt.Errorf("editing person: %w", err)
		}

		fmt.Printf("Updated %s (%s)\n", p.DisplayName(), p.ID)
		return nil
	})
}
