package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/kizuna-core/internal/application/handlers"
	"github.com/ersonp/kizuna-core/internal/domain/entities"
)

func newQuestionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Manage the profiling question bank",
		RunE:  runQuestionsList,
	}

	cmd.AddCommand(
		newQuestionsAddCmd(),
		newQuestionsEditCmd(),
		newQuestionsRemoveCmd(),
		newQuestionsSeedCmd(),
	)

	return cmd
}

func runQuestionsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		questions, err := d.Question.HandleList(ctx)
		if err != nil {
			return fmt.Errorf("listing questions: %w", err)
		}

		if len(questions) == 0 {
			fmt.Println("No questions in the bank. Run 'kizuna questions seed' to load the starter set.")
			return nil
		}

		fmt.Printf("Questions (%d):\n\n", len(questions))
		for _, q := range questions {
			fmt.Printf("%s [%s] %s\n", q.ID, q.Category, q.Text)
			if q.AnswerType == entities.AnswerSingleSelect {
				fmt.Printf("  Options: %s\n", strings.Join(q.Options, ", "))
			} else {
				fmt.Printf("  Type: %s\n", q.AnswerType)
			}
		}
		return nil
	})
}

func newQuestionsAddCmd() *cobra.Command {
	var in handlers.QuestionInput

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a question to the bank",
		Long: `Adds a profiling question. Answer types: numeric_scale (1-5),
free_text, single_select (requires --options).

Examples:
  kizuna questions add "How do they handle conflict?" --category values
  kizuna questions add "Morning or night person?" --type single_select --options morning,night`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Text = args[0]
			return runQuestionsAdd(cmd, in)
		},
	}

	cmd.Flags().StringVarP(&in.Category, "category", "c", "general", "Question category")
	cmd.Flags().StringVarP(&in.AnswerType, "type", "t", "free_text", "Answer type (numeric_scale, free_text, single_select)")
	cmd.Flags().StringVar(&in.Criteria, "criteria", "", "Hint shown when asking, e.g. what 5 means")
	cmd.Flags().StringVar(&in.Options, "options", "", "Comma-separated options (single_select only)")

	return cmd
}

func runQuestionsAdd(cmd *cobra.Command, in handlers.QuestionInput) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		q, err := d.Question.HandleAdd(ctx, in)
		if err != nil {
			return fmt.Errorf("adding question: %w", err)
		}

		fmt.Printf("Added question %s\n", q.ID)
		return nil
	})
}

func newQuestionsEditCmd() *cobra.Command {
	var flags struct {
		category   string
		text       string
		criteria   string
		answerType string
		options    string
	}

	cmd := &cobra.Command{
		Use:   "edit <question-id>",
		Short: "Edit a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in handlers.QuestionEditInput
			if cmd.Flags().Changed("category") {
				in.Category = &flags.category
			}
			if cmd.Flags().Changed("text") {
				in.Text = &flags.text
			}
			if cmd.Flags().Changed("criteria") {
				in.Criteria = &flags.criteria
			}
			if cmd.Flags().Changed("type") {
				in.AnswerType = &flags.answerType
			}
			if cmd.Flags().Changed("options") {
				in.Options = &flags.options
			}
			return runQuestionsEdit(cmd, args[0], in)
		},
	}

	cmd.Flags().StringVarP(&flags.category, "category", "c", "", "Question category")
	cmd.Flags().StringVar(&flags.text, "text", "", "Question text")
	cmd.Flags().StringVar(&flags.criteria, "criteria", "", "Hint shown when asking")
	cmd.Flags().StringVarP(&flags.answerType, "type", "t", "", "Answer type")
	cmd.Flags().StringVar(&flags.options, "options", "", "Comma-separated options")

	return cmd
}

func runQuestionsEdit(cmd *cobra.Command, id string, in handlers.QuestionEditInput) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		q, err := d.Question.HandleEdit(ctx, id, in)
		if err != nil {
			return fmt.Errorf("editing question: %w", err)
		}

		fmt.Printf("Updated question %s\n", q.ID)
		return nil
	})
}

func newQuestionsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <question-id>",
		Aliases: []string{"delete"},
		Short:   "Remove a question from the bank",
		Long:    "Removes a question. Answers already recorded against it stay in the interaction log.",
		Args:    cobra.ExactArgs(1),
		RunE:    runQuestionsRemove,
	}
}

func runQuestionsRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if err := d.Question.HandleRemove(ctx, args[0]); err != nil {
			return fmt.Errorf("removing question: %w", err)
		}

		fmt.Printf("Removed question %s\n", args[0])
		return nil
	})
}

func newQuestionsSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the starter question set",
		Long:  "Loads the built-in starter questions into an empty bank. Does nothing when the bank already has questions.",
		RunE:  runQuestionsSeed,
	}
}

func runQuestionsSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		seeded, err := d.Question.HandleSeed(ctx)
		if err != nil {
			return fmt.Errorf("seeding questions: %w", err)
		}

		if seeded == 0 {
			fmt.Println("Question bank already has questions; nothing seeded.")
			return nil
		}
		fmt.Printf("Seeded %d starter questions.\n", seeded)
		return nil
	})
}
