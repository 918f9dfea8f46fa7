package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/kizuna-core/internal/application/handlers"
	"github.com/ersonp/kizuna-core/internal/domain/services"
)

func newLogCmd() *cobra.Command {
	var (
		in      handlers.LogInput
		answers []string
	)

	cmd := &cobra.Command{
		Use:   "log <person>",
		Short: "Log an interaction with a person",
		Long: `Records a contact with a person: what happened, how it felt, and
optionally answers to profiling questions. When the exact date is fuzzy,
use --period-start/--period-end with free-form text instead of --date.

Examples:
  kizuna log 佐藤 --content "Lunch at the new ramen place" --feeling "relaxed"
  kizuna log ken --date 2026-08-15 --category work --channel in_person
  kizuna log yuki --answer <question-id>=4 --answer <question-id>="loves hiking"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseAnswerFlags(answers)
			if err != nil {
				return err
			}
			in.Answers = parsed
			return runLog(cmd, args[0], in)
		},
	}

	cmd.Flags().StringVar(&in.Date, "date", "", "Entry date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&in.PeriodStart, "period-start", "", "Fuzzy period start, e.g. \"2024 spring\"")
	cmd.Flags().StringVar(&in.PeriodEnd, "period-end", "", "Fuzzy period end")
	cmd.Flags().StringVar(&in.Category, "category", "", "Interaction category, e.g. work, hobby")
	cmd.Flags().StringVar(&in.Channel, "channel", "", "How you met, e.g. in_person, chat, call")
	cmd.Flags().StringVar(&in.Tags, "tags", "", "Comma-separated tags")
	cmd.Flags().StringVar(&in.Content, "content", "", "What happened")
	cmd.Flags().StringVar(&in.Feeling, "feeling", "", "How it felt")
	cmd.Flags().StringArrayVar(&answers, "answer", nil, "Profiling answer as <question-id>=<value> (repeatable)")

	return cmd
}

func parseAnswerFlags(raw []string) ([]services.AnswerInput, error) {
	answers := make([]services.AnswerInput, 0, len(raw))
	for _, r := range raw {
		questionID, value, found := strings.Cut(r, "=")
		if !found || strings.TrimSpace(questionID) == "" {
			return nil, fmt.Errorf("invalid answer %q (expected <question-id>=<value>)", r)
		}
		answers = append(answers, services.AnswerInput{
			QuestionID: strings.TrimSpace(questionID),
			Value:      value,
		})
	}
	return answers, nil
}

func runLog(cmd *cobra.Command, ref string, in handlers.LogInput) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		it, err := d.Log.HandleLog(ctx, ref, in)
		if err != nil {
			return fmt.Errorf("logging interaction: %w", err)
		}

		fmt.Printf("Logged interaction %s (%s)\n", it.ID, it.EntryDate.Format("2006-01-02"))
		if len(it.Answers) > 0 {
			fmt.Printf("  Recorded %d profiling answers\n", len(it.Answers))
		}
		return nil
	})
}
