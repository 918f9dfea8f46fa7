package loopquery

import "context"

type embedder struct{}

func (e *embedder) Embed(ctx context.Context, text string) ([]float32, error) { return nil, nil }
func (e *embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, nil
}

func embedEach(ctx context.Context, e *embedder, texts []string) {
	for _, text := range texts {
		e.Embed(ctx, text) // want `potential N\+1: Embed called inside loop - batch outside the loop`
	}
}

func embedOnce(ctx context.Context, e *embedder, texts []string) {
	e.EmbedBatch(ctx, texts)
	for range texts {
	}
}
