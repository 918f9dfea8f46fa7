package handlers

import (
	"context"
	"strings"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/services"
)

// SearchHandler handles semantic memo search and index rebuilds.
type SearchHandler struct {
	people *services.PersonService
	search *services.SearchService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(people *services.PersonService, search *services.SearchService) *SearchHandler {
	return &SearchHandler{people: people, search: search}
}

// HandleSearch finds the memos most similar to the query. A non-empty
// personRef restricts results to that person's interactions.
func (h *SearchHandler) HandleSearch(ctx context.Context, query, personRef string, limit int) ([]entities.Memo, error) {
	personID := ""
	if strings.TrimSpace(personRef) != "" {
		p, err := resolvePerson(ctx, h.people, personRef)
		if err != nil {
			return nil, err
		}
		personID = p.ID
	}
	return h.search.Search(ctx, query, personID, limit)
}

// HandleIndex rebuilds the memo index from every interaction. Returns the
// number of memos indexed.
func (h *SearchHandler) HandleIndex(ctx context.Context) (int, error) {
	return h.search.Reindex(ctx)
}
