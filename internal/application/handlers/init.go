package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/kizuna-core/internal/domain/ports"
	"github.com/ersonp/kizuna-core/internal/domain/services"
)

// InitHandler prepares the local database for first use: creates the schema
// and seeds the default question bank. The vector collection is optional so
// init still works without a running Qdrant.
type InitHandler struct {
	store     ports.Store
	vectorDB  ports.VectorDB
	questions *services.QuestionService
}

// NewInitHandler creates a new InitHandler. vectorDB may be nil.
func NewInitHandler(store ports.Store, vectorDB ports.VectorDB, questions *services.QuestionService) *InitHandler {
	return &InitHandler{store: store, vectorDB: vectorDB, questions: questions}
}

// InitResult summarizes what init set up.
type InitResult struct {
	SeededQuestions int  `json:"seeded_questions"`
	CollectionReady bool `json:"collection_ready"`
}

// HandleInit creates the schema, seeds the default questions and, when a
// vector store is wired, ensures the memo collection exists. Safe to run on
// an already initialized database.
func (h *InitHandler) HandleInit(ctx context.Context, vectorSize uint64) (*InitResult, error) {
	if err := h.store.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	seeded, err := h.questions.SeedDefaults(ctx)
	if err != nil {
		return nil, fmt.Errorf("seeding questions: %w", err)
	}

	result := &InitResult{SeededQuestions: seeded}
	if h.vectorDB != nil {
		if err := h.vectorDB.EnsureCollection(ctx, vectorSize); err != nil {
			return nil, fmt.Errorf("creating collection: %w", err)
		}
		result.CollectionReady = true
	}
	return result, nil
}
