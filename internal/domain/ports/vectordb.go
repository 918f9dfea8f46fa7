package ports

import (
	"context"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
)

// VectorDB is the semantic memo index over interaction logs. It is rebuilt
// wholesale by the index command and is never required by the entity store's
// own operations.
type VectorDB interface {
	// EnsureCollection creates the collection if it doesn't exist.
	EnsureCollection(ctx context.Context, vectorSize uint64) error

	// ResetCollection drops and recreates the collection for a full rebuild.
	ResetCollection(ctx context.Context, vectorSize uint64) error

	// SaveBatch upserts memos with their embeddings.
	SaveBatch(ctx context.Context, memos []entities.Memo) error

	// Search returns the memos most similar to the embedding. A non-empty
	// personID restricts results to that person's interactions.
	Search(ctx context.Context, embedding []float32, personID string, limit int) ([]entities.Memo, error)

	// Count returns the number of indexed memos.
	Count(ctx context.Context) (uint64, error)

	// Close closes the connection.
	Close() error
}
