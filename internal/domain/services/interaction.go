package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/ports"
	"github.com/google/uuid"
)

// AnswerInput is one profiling answer supplied with a new interaction.
type AnswerInput struct {
	QuestionID string
	Value      string
}

// InteractionService logs interactions. An interaction is written together
// with its answers in one transaction and is never updated afterwards.
type InteractionService struct {
	store ports.Store
}

// NewInteractionService creates a new InteractionService.
func NewInteractionService(store ports.Store) *InteractionService {
	return &InteractionService{store: store}
}

// Create validates and stores an interaction with its answers atomically.
// Every answer is normalized per its question's answer type before anything
// is written; a single bad answer rejects the whole interaction.
func (s *InteractionService) Create(ctx context.Context, it *entities.Interaction, answers []AnswerInput) (*entities.Interaction, error) {
	if it.PersonID == "" {
		return nil, &entities.ValidationError{Field: "person_id", Reason: "required"}
	}
	if _, err := s.store.FindPersonByID(ctx, it.PersonID); err != nil {
		return nil, fmt.Errorf("looking up person: %w", err)
	}

	it.ID = uuid.New().String()
	if it.EntryDate.IsZero() {
		it.EntryDate = time.Now()
	}
	if it.CreatedAt.IsZero() {
		it.CreatedAt = time.Now()
	}
	it.Tags = entities.NormalizeGroups(it.Tags)

	it.Answers = make([]entities.InteractionAnswer, 0, len(answers))
	for _, a := range answers {
		q, err := s.store.FindQuestionByID(ctx, a.QuestionID)
		if err != nil {
			return nil, fmt.Errorf("looking up question %s: %w", a.QuestionID, err)
		}
		value, err := q.NormalizeAnswer(a.Value)
		if err != nil {
			return nil, fmt.Errorf("answer to %q: %w", q.Text, err)
		}
		it.Answers = append(it.Answers, entities.InteractionAnswer{
			ID:            uuid.New().String(),
			InteractionID: it.ID,
			QuestionID:    q.ID,
			Value:         value,
		})
	}

	if err := s.store.SaveInteraction(ctx, it); err != nil {
		return nil, fmt.Errorf("saving interaction: %w", err)
	}
	return it, nil
}

// ListForPerson returns the person's interactions, newest first.
func (s *InteractionService) ListForPerson(ctx context.Context, personID string) ([]entities.Interaction, error) {
	return s.store.ListInteractionsForPerson(ctx, personID)
}

// ListAll returns every interaction, newest first.
func (s *InteractionService) ListAll(ctx context.Context) ([]entities.Interaction, error) {
	return s.store.ListInteractions(ctx)
}
