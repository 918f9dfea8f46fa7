package ports

import "context"

// Embedder turns memo text into vectors for the semantic index.
type Embedder interface {
	// Embed returns the embedding for one text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns embeddings for the texts, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
