package handlers

import (
	"context"
	"strings"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/services"
)

// ProfileHandler handles profiling progress and analysis notes.
type ProfileHandler struct {
	people    *services.PersonService
	profiling *services.ProfilingService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(people *services.PersonService, profiling *services.ProfilingService) *ProfileHandler {
	return &ProfileHandler{people: people, profiling: profiling}
}

// ProfileStats is the profiling progress summary for one person.
type ProfileStats struct {
	Person       *entities.Person              `json:"person"`
	Completion   []entities.CategoryCompletion `json:"completion"`
	AnswerCounts map[string]int                `json:"answer_counts,omitempty"`
}

// HandleStats returns the person's profiling progress.
func (h *ProfileHandler) HandleStats(ctx context.Context, ref string) (*ProfileStats, error) {
	p, err := resolvePerson(ctx, h.people, ref)
	if err != nil {
		return nil, err
	}

	completion, err := h.profiling.CompletionByCategory(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	counts, err := h.profiling.AnswerCounts(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	return &ProfileStats{
		Person:       p,
		Completion:   completion,
		AnswerCounts: counts,
	}, nil
}

// NoteInput carries raw CLI field values for a new analysis note.
type NoteInput struct {
	Framework  string
	Result     string
	Confidence string // S, A, B or C
	Evidence   string
}

// HandleAddNote records an analysis conclusion for a person.
func (h *ProfileHandler) HandleAddNote(ctx context.Context, ref string, in NoteInput) (*entities.ProfilingNote, error) {
	p, err := resolvePerson(ctx, h.people, ref)
	if err != nil {
		return nil, err
	}

	return h.profiling.AddNote(ctx, &entities.ProfilingNote{
		PersonID:   p.ID,
		Framework:  strings.TrimSpace(in.Framework),
		Result:     strings.TrimSpace(in.Result),
		Confidence: entities.Confidence(strings.ToUpper(strings.TrimSpace(in.Confidence))),
		Evidence:   in.Evidence,
	})
}

// HandleNotes returns the person's analysis notes.
func (h *ProfileHandler) HandleNotes(ctx context.Context, ref string) ([]entities.ProfilingNote, error) {
	p, err := resolvePerson(ctx, h.people, ref)
	if err != nil {
		return nil, err
	}
	return h.profiling.ListNotes(ctx, p.ID)
}

// HandleDeleteNote removes an analysis note by id.
func (h *ProfileHandler) HandleDeleteNote(ctx context.Context, id string) error {
	return h.profiling.DeleteNote(ctx, id)
}
