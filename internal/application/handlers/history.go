package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/services"
)

// HistoryHandler handles life-event entries.
type HistoryHandler struct {
	people  *services.PersonService
	history *services.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(people *services.PersonService, history *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{people: people, history: history}
}

// HandleAdd records a dated life event for a person.
func (h *HistoryHandler) HandleAdd(ctx context.Context, ref, date, content string) (*entities.PersonHistory, error) {
	p, err := resolvePerson(ctx, h.people, ref)
	if err != nil {
		return nil, err
	}

	d, err := entities.ParsePartialDate(date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	return h.history.Add(ctx, &entities.PersonHistory{
		PersonID: p.ID,
		Date:     d,
		Content:  content,
	})
}

// HandleList returns the person's life events.
func (h *HistoryHandler) HandleList(ctx context.Context, ref string) ([]entities.PersonHistory, error) {
	p, err := resolvePerson(ctx, h.people, ref)
	if err != nil {
		return nil, err
	}
	return h.history.ListForPerson(ctx, p.ID)
}

// HandleDelete removes a life event by id.
func (h *HistoryHandler) HandleDelete(ctx context.Context, id string) error {
	return h.history.Delete(ctx, id)
}
