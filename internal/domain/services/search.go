package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/ports"
)

// DefaultSearchLimit is the default number of memos returned by a search.
const DefaultSearchLimit = 10

// reindexBatchSize bounds how many memos are embedded per API request.
const reindexBatchSize = 64

// SearchService provides semantic search over interaction logs. The vector
// index is derived state: it is rebuilt wholesale from the store and the
// store's own operations never touch it.
type SearchService struct {
	store    ports.Store
	vectorDB ports.VectorDB
	embedder ports.Embedder
	// vectorSize is the embedding dimension used for the collection.
	vectorSize uint64
}

// NewSearchService creates a new SearchService.
func NewSearchService(store ports.Store, vectorDB ports.VectorDB, embedder ports.Embedder, vectorSize uint64) *SearchService {
	return &SearchService{
		store:      store,
		vectorDB:   vectorDB,
		embedder:   embedder,
		vectorSize: vectorSize,
	}
}

// Search embeds the query and returns the most similar memos, optionally
// restricted to one person's interactions.
func (s *SearchService) Search(ctx context.Context, query, personID string, limit int) ([]entities.Memo, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &entities.ValidationError{Field: "query", Reason: "required"}
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	memos, err := s.vectorDB.Search(ctx, embedding, personID, limit)
	if err != nil {
		return nil, fmt.Errorf("searching memos: %w", err)
	}
	return memos, nil
}

// Reindex drops the collection and rebuilds it from every interaction that
// has any text. Returns the number of memos indexed.
func (s *SearchService) Reindex(ctx context.Context) (int, error) {
	interactions, err := s.store.ListInteractions(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing interactions: %w", err)
	}

	memos := make([]entities.Memo, 0, len(interactions))
	for i := range interactions {
		if m, ok := memoFromInteraction(&interactions[i]); ok {
			memos = append(memos, m)
		}
	}

	if err := s.vectorDB.ResetCollection(ctx, s.vectorSize); err != nil {
		return 0, fmt.Errorf("resetting collection: %w", err)
	}

	for start := 0; start < len(memos); start += reindexBatchSize {
		end := min(start+reindexBatchSize, len(memos))
		batch := memos[start:end]

		texts := make([]string, len(batch))
		for i := range batch {
			texts[i] = batch[i].Text
		}
		embeddings, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return 0, fmt.Errorf("embedding batch: %w", err)
		}
		if len(embeddings) != len(batch) {
			return 0, fmt.Errorf("embedder returned %d vectors for %d texts", len(embeddings), len(batch))
		}
		for i := range batch {
			batch[i].Embedding = embeddings[i]
		}

		if err := s.vectorDB.SaveBatch(ctx, batch); err != nil {
			return 0, fmt.Errorf("saving batch: %w", err)
		}
	}

	return len(memos), nil
}

// memoFromInteraction flattens an interaction's text for indexing. Returns
// false when there is nothing searchable.
func memoFromInteraction(it *entities.Interaction) (entities.Memo, bool) {
	parts := make([]string, 0, 2)
	if strings.TrimSpace(it.Content) != "" {
		parts = append(parts, strings.TrimSpace(it.Content))
	}
	if strings.TrimSpace(it.Feeling) != "" {
		parts = append(parts, strings.TrimSpace(it.Feeling))
	}
	if len(parts) == 0 {
		return entities.Memo{}, false
	}

	return entities.Memo{
		InteractionID: it.ID,
		PersonID:      it.PersonID,
		Category:      it.Category,
		Text:          strings.Join(parts, "\n"),
		EntryDate:     it.EntryDate,
	}, true
}
