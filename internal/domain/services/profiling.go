package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/ports"
	"github.com/google/uuid"
)

// ProfilingService aggregates question answers into per-person progress and
// manages recorded analysis conclusions.
type ProfilingService struct {
	store ports.Store
}

// NewProfilingService creates a new ProfilingService.
func NewProfilingService(store ports.Store) *ProfilingService {
	return &ProfilingService{store: store}
}

// AnswerCounts returns, per question id, how many answers the person has
// recorded across all their interactions. Questions never answered are absent
// from the map. Ids of since-deleted questions may appear.
func (s *ProfilingService) AnswerCounts(ctx context.Context, personID string) (map[string]int, error) {
	if _, err := s.store.FindPersonByID(ctx, personID); err != nil {
		return nil, fmt.Errorf("looking up person: %w", err)
	}

	answers, err := s.store.ListAnswersForPerson(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("listing answers: %w", err)
	}

	counts := make(map[string]int)
	for _, a := range answers {
		counts[a.QuestionID]++
	}
	return counts, nil
}

// CompletionByCategory returns, for every category with at least one
// question, how many of its questions the person has answered at least once.
// Repeat answers to the same question count once. Categories are sorted by
// name for stable output.
func (s *ProfilingService) CompletionByCategory(ctx context.Context, personID string) ([]entities.CategoryCompletion, error) {
	counts, err := s.AnswerCounts(ctx, personID)
	if err != nil {
		return nil, err
	}

	questions, err := s.store.ListQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing questions: %w", err)
	}

	byCategory := make(map[string]*entities.CategoryCompletion)
	for _, q := range questions {
		c, ok := byCategory[q.Category]
		if !ok {
			c = &entities.CategoryCompletion{Category: q.Category}
			byCategory[q.Category] = c
		}
		c.Total++
		if counts[q.ID] > 0 {
			c.Answered++
		}
	}

	result := make([]entities.CategoryCompletion, 0, len(byCategory))
	for _, c := range byCategory {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Category < result[j].Category })
	return result, nil
}

// AddNote records a personality-analysis conclusion for a person.
func (s *ProfilingService) AddNote(ctx context.Context, n *entities.ProfilingNote) (*entities.ProfilingNote, error) {
	if n.Framework == "" {
		return nil, &entities.ValidationError{Field: "framework", Reason: "required"}
	}
	if n.Result == "" {
		return nil, &entities.ValidationError{Field: "result", Reason: "required"}
	}
	if n.Confidence != "" && !entities.ValidConfidence(n.Confidence) {
		return nil, &entities.ValidationError{Field: "confidence", Reason: fmt.Sprintf("unknown grade %q", n.Confidence)}
	}
	if _, err := s.store.FindPersonByID(ctx, n.PersonID); err != nil {
		return nil, fmt.Errorf("looking up person: %w", err)
	}

	n.ID = uuid.New().String()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if err := s.store.SaveProfilingNote(ctx, n); err != nil {
		return nil, fmt.Errorf("saving profiling note: %w", err)
	}
	return n, nil
}

// ListNotes returns the person's analysis conclusions.
func (s *ProfilingService) ListNotes(ctx context.Context, personID string) ([]entities.ProfilingNote, error) {
	return s.store.ListProfilingNotesForPerson(ctx, personID)
}

// DeleteNote removes an analysis conclusion by id.
func (s *ProfilingService) DeleteNote(ctx context.Context, id string) error {
	if err := s.store.DeleteProfilingNote(ctx, id); err != nil {
		return fmt.Errorf("deleting profiling note: %w", err)
	}
	return nil
}
