package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/ports"
	"github.com/google/uuid"
)

// QuestionService manages the profiling question bank.
type QuestionService struct {
	store ports.Store
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(store ports.Store) *QuestionService {
	return &QuestionService{store: store}
}

// Create validates and stores a new question.
func (s *QuestionService) Create(ctx context.Context, q *entities.ProfilingQuestion) (*entities.ProfilingQuestion, error) {
	if q.Text == "" {
		return nil, &entities.ValidationError{Field: "text", Reason: "required"}
	}
	if q.Category == "" {
		return nil, &entities.ValidationError{Field: "category", Reason: "required"}
	}
	if err := validateAnswerType(q.AnswerType, q.Options); err != nil {
		return nil, err
	}
	if q.AnswerType != entities.AnswerSingleSelect {
		q.Options = nil
	}

	q.ID = uuid.New().String()
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}
	if err := s.store.SaveQuestion(ctx, q); err != nil {
		return nil, fmt.Errorf("saving question: %w", err)
	}
	return q, nil
}

// Update applies a partial update; only supplied fields change.
func (s *QuestionService) Update(ctx context.Context, id string, patch ports.QuestionPatch) (*entities.ProfilingQuestion, error) {
	if patch.Text != nil && *patch.Text == "" {
		return nil, &entities.ValidationError{Field: "text", Reason: "cannot be cleared"}
	}
	if patch.AnswerType != nil {
		var opts []string
		if patch.Options != nil {
			opts = *patch.Options
		}
		if err := validateAnswerType(*patch.AnswerType, opts); err != nil {
			return nil, err
		}
	}

	q, err := s.store.UpdateQuestion(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("updating question: %w", err)
	}
	return q, nil
}

// Delete removes a question from the bank. Historical answers referencing it
// stay in place and become unresolvable, matching the original behavior.
func (s *QuestionService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteQuestion(ctx, id); err != nil {
		return fmt.Errorf("deleting question: %w", err)
	}
	return nil
}

// Get returns the question with the given id.
func (s *QuestionService) Get(ctx context.Context, id string) (*entities.ProfilingQuestion, error) {
	return s.store.FindQuestionByID(ctx, id)
}

// List returns every question in the bank.
func (s *QuestionService) List(ctx context.Context) ([]entities.ProfilingQuestion, error) {
	return s.store.ListQuestions(ctx)
}

// SeedDefaults populates an empty question bank with the starter questions.
// A non-empty bank is left untouched.
func (s *QuestionService) SeedDefaults(ctx context.Context) (int, error) {
	count, err := s.store.CountQuestions(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting questions: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	for i := range entities.DefaultQuestions {
		q := entities.DefaultQuestions[i]
		q.ID = uuid.New().String()
		q.CreatedAt = time.Now()
		if err := s.store.SaveQuestion(ctx, &q); err != nil {
			return 0, fmt.Errorf("seeding question %q: %w", q.Text, err)
		}
	}
	return len(entities.DefaultQuestions), nil
}

// Random picks one question, optionally restricted to a category. Returns
// ErrNotFound when the bank (or the category) is empty.
func (s *QuestionService) Random(ctx context.Context, category string) (*entities.ProfilingQuestion, error) {
	questions, err := s.store.ListQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing questions: %w", err)
	}

	if category != "" {
		filtered := questions[:0]
		for _, q := range questions {
			if q.Category == category {
				filtered = append(filtered, q)
			}
		}
		questions = filtered
	}
	if len(questions) == 0 {
		return nil, entities.ErrNotFound
	}

	q := questions[rand.Intn(len(questions))]
	return &q, nil
}

func validateAnswerType(t entities.AnswerType, options []string) error {
	if !entities.ValidAnswerType(t) {
		return &entities.ValidationError{Field: "answer_type", Reason: fmt.Sprintf("unknown answer type %q", t)}
	}
	if t == entities.AnswerSingleSelect && len(options) < 2 {
		return &entities.ValidationError{Field: "options", Reason: "single_select needs at least two options"}
	}
	return nil
}
