package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/services"
)

// ExportHandler assembles a full archive of the directory for backup or
// migration. Formatting is left to the caller.
type ExportHandler struct {
	people        *services.PersonService
	relationships *services.RelationshipService
	questions     *services.QuestionService
	interactions  *services.InteractionService
	history       *services.HistoryService
	profiling     *services.ProfilingService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(
	people *services.PersonService,
	relationships *services.RelationshipService,
	questions *services.QuestionService,
	interactions *services.InteractionService,
	history *services.HistoryService,
	profiling *services.ProfilingService,
) *ExportHandler {
	return &ExportHandler{
		people:        people,
		relationships: relationships,
		questions:     questions,
		interactions:  interactions,
		history:       history,
		profiling:     profiling,
	}
}

// ExportDocument is the complete archive: every person with everything they
// own, plus the shared relationship edges and question bank.
type ExportDocument struct {
	People        []*entities.Person           `json:"people"`
	Relationships []entities.Relationship      `json:"relationships,omitempty"`
	Questions     []entities.ProfilingQuestion `json:"questions,omitempty"`
	Interactions  []entities.Interaction       `json:"interactions,omitempty"`
	History       []entities.PersonHistory     `json:"history,omitempty"`
	Notes         []entities.ProfilingNote     `json:"profiling_notes,omitempty"`
}

// HandleExport gathers the full archive.
func (h *ExportHandler) HandleExport(ctx context.Context) (*ExportDocument, error) {
	doc := &ExportDocument{}
	var err error

	if doc.People, err = h.people.List(ctx); err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	if doc.Relationships, err = h.relationships.ListAll(ctx); err != nil {
		return nil, fmt.Errorf("listing relationships: %w", err)
	}
	if doc.Questions, err = h.questions.List(ctx); err != nil {
		return nil, fmt.Errorf("listing questions: %w", err)
	}
	if doc.Interactions, err = h.interactions.ListAll(ctx); err != nil {
		return nil, fmt.Errorf("listing interactions: %w", err)
	}

	for _, p := range doc.People {
		hist, err := h.history.ListForPerson(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("listing history for %s: %w", p.ID, err)
		}
		doc.History = append(doc.History, hist...)

		notes, err := h.profiling.ListNotes(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("listing notes for %s: %w", p.ID, err)
		}
		doc.Notes = append(doc.Notes, notes...)
	}
	return doc, nil
}
