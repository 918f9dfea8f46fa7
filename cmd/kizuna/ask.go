package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/kizuna-core/internal/application/handlers"
	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/services"
)

type askFlags struct {
	category string
	date     string
}

func newAskCmd() *cobra.Command {
	var flags askFlags

	cmd := &cobra.Command{
		Use:   "ask <person>",
		Short: "Interactive profiling session",
		Long: `Draws random questions from the bank and records your answers about a
person. Answers are queued and saved as one interaction when you finish.

Examples:
  kizuna ask 佐藤
  kizuna ask ken --category values`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.category, "category", "c", "", "Draw questions from one category only")
	cmd.Flags().StringVar(&flags.date, "date", "", "Entry date for the saved interaction (YYYY-MM-DD, default today)")

	return cmd
}

type askState struct {
	deps      *Deps
	personRef string
	flags     askFlags
	pending   []services.AnswerInput
	// answered tracks question ids already handled this session so the
	// random draw doesn't repeat them.
	answered map[string]bool
	labels   map[string]string
}

func runAsk(cmd *cobra.Command, personRef string, flags askFlags) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		// Resolve up front so typos fail before any question is asked.
		if _, err := d.Person.HandleShow(ctx, personRef); err != nil {
			return err
		}

		state := &askState{
			deps:      d,
			personRef: personRef,
			flags:     flags,
			answered:  make(map[string]bool),
			labels:    make(map[string]string),
		}
		return state.runQuestionLoop(ctx)
	})
}

func (s *askState) runQuestionLoop(ctx context.Context) error {
	fmt.Printf("Profiling session for %s. Answer, or 'skip' for the next question.\n", s.personRef)
	fmt.Println("Commands: 'save' to save answers, 'discard' to clear, 'list' to show pending, 'quit' to exit")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)

	for {
		q, err := s.nextQuestion(ctx)
		if err != nil {
			if errors.Is(err, entities.ErrNotFound) {
				fmt.Println("No more questions in the bank.")
				return s.finish(ctx, scanner)
			}
			return fmt.Errorf("drawing question: %w", err)
		}
		if q == nil {
			fmt.Println("Every question has been answered this session.")
			return s.finish(ctx, scanner)
		}

		displayQuestion(q)

		done, err := s.collectAnswer(ctx, scanner, q)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// nextQuestion draws a random question not yet handled this session. Returns
// nil when the bank is exhausted.
func (s *askState) nextQuestion(ctx context.Context) (*entities.ProfilingQuestion, error) {
	for i := 0; i < 20; i++ {
		q, err := s.deps.Question.HandleRandom(ctx, s.flags.category)
		if err != nil {
			return nil, err
		}
		if !s.answered[q.ID] {
			return q, nil
		}
	}
	return nil, nil
}

func displayQuestion(q *entities.ProfilingQuestion) {
	fmt.Printf("[%s] %s\n", q.Category, q.Text)
	switch q.AnswerType {
	case entities.AnswerNumericScale:
		fmt.Printf("  (scale %d-%d)\n", entities.NumericScaleMin, entities.NumericScaleMax)
	case entities.AnswerSingleSelect:
		fmt.Printf("  (one of: %s)\n", strings.Join(q.Options, ", "))
	}
	if q.Criteria != "" {
		fmt.Printf("  Hint: %s\n", q.Criteria)
	}
}

// collectAnswer reads input for one question until it is answered, skipped or
// a session command is given. Returns true when the session ended.
func (s *askState) collectAnswer(ctx context.Context, scanner *bufio.Scanner, q *entities.ProfilingQuestion) (bool, error) {
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return true, scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "skip":
			s.answered[q.ID] = true
			return false, nil
		case "quit", "exit":
			return true, s.finish(ctx, scanner)
		case "save":
			if err := s.savePending(ctx); err != nil {
				fmt.Printf("Error saving answers: %v\n", err)
			}
			return false, nil
		case "discard":
			s.pending = nil
			fmt.Println("Pending answers discarded.")
			return false, nil
		case "list":
			s.showPending()
			continue
		case "help":
			showAskHelp()
			continue
		}

		value, err := q.NormalizeAnswer(line)
		if err != nil {
			fmt.Printf("Invalid answer: %v\n", err)
			continue
		}

		s.pending = append(s.pending, services.AnswerInput{QuestionID: q.ID, Value: value})
		s.answered[q.ID] = true
		s.labels[q.ID] = q.Text
		fmt.Printf("Queued (%d pending).\n\n", len(s.pending))
		return false, nil
	}
}

func showAskHelp() {
	fmt.Println("Commands:")
	fmt.Println("  skip    - Skip this question")
	fmt.Println("  save    - Save queued answers as an interaction")
	fmt.Println("  discard - Discard queued answers")
	fmt.Println("  list    - Show queued answers")
	fmt.Println("  quit    - Exit the session")
	fmt.Println("  help    - Show this help")
}

func (s *askState) showPending() {
	if len(s.pending) == 0 {
		fmt.Println("No pending answers.")
		return
	}
	fmt.Printf("Pending answers (%d):\n", len(s.pending))
	for i, a := range s.pending {
		fmt.Printf("  %d. %s -> %s\n", i+1, s.labels[a.QuestionID], a.Value)
	}
}

// finish offers to save queued answers before the session ends.
func (s *askState) finish(ctx context.Context, scanner *bufio.Scanner) error {
	if len(s.pending) == 0 {
		fmt.Println("Goodbye!")
		return nil
	}

	fmt.Printf("Save %d queued answers? [Y/n] ", len(s.pending))
	if scanner.Scan() {
		response := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if response == "n" || response == "no" {
			fmt.Println("Answers discarded. Goodbye!")
			return nil
		}
	}
	if err := s.savePending(ctx); err != nil {
		return err
	}
	fmt.Println("Goodbye!")
	return nil
}

func (s *askState) savePending(ctx context.Context) error {
	if len(s.pending) == 0 {
		fmt.Println("No pending answers to save.")
		return nil
	}

	category := "profiling"
	if s.flags.category != "" {
		category = s.flags.category
	}

	it, err := s.deps.Log.HandleLog(ctx, s.personRef, handlers.LogInput{
		Date:     s.flags.date,
		Category: category,
		Channel:  "profiling_session",
		Answers:  s.pending,
	})
	if err != nil {
		return fmt.Errorf("saving answers: %w", err)
	}

	fmt.Printf("Saved %d answers as interaction %s.\n", len(s.pending), it.ID)
	s.pending = nil
	return nil
}
