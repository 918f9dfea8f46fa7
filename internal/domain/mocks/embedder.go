package mocks

import "context"

// Embedder is a mock implementation of ports.Embedder producing fixed-size
// deterministic vectors.
type Embedder struct {
	Calls int
	Err   error
}

// NewEmbedder creates a new mock Embedder.
func NewEmbedder() *Embedder {
	return &Embedder{}
}

// Embed generates a deterministic embedding for a single text.
func (m *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := m.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates deterministic embeddings for multiple texts.
func (m *Embedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.Calls++
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		v := make([]float32, 4)
		for j, r := range text {
			v[j%4] += float32(r)
		}
		vectors[i] = v
	}
	return vectors, nil
}
