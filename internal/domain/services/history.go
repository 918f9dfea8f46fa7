package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/ports"
	"github.com/google/uuid"
)

// HistoryService manages dated life-event entries.
type HistoryService struct {
	store ports.Store
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(store ports.Store) *HistoryService {
	return &HistoryService{store: store}
}

// Add records a life event for a person.
func (s *HistoryService) Add(ctx context.Context, h *entities.PersonHistory) (*entities.PersonHistory, error) {
	if h.Content == "" {
		return nil, &entities.ValidationError{Field: "content", Reason: "required"}
	}
	if _, err := s.store.FindPersonByID(ctx, h.PersonID); err != nil {
		return nil, fmt.Errorf("looking up person: %w", err)
	}

	h.ID = uuid.New().String()
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}
	if err := s.store.SaveHistory(ctx, h); err != nil {
		return nil, fmt.Errorf("saving history entry: %w", err)
	}
	return h, nil
}

// ListForPerson returns the person's life events.
func (s *HistoryService) ListForPerson(ctx context.Context, personID string) ([]entities.PersonHistory, error) {
	return s.store.ListHistoryForPerson(ctx, personID)
}

// Delete removes a life event by id.
func (s *HistoryService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteHistory(ctx, id); err != nil {
		return fmt.Errorf("deleting history entry: %w", err)
	}
	return nil
}
