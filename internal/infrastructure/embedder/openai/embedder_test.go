package openai

import (
	"context"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/kizuna-core/internal/infrastructure/config"
)

func TestNewEmbedder(t *testing.T) {
	t.Run("defaults to text-embedding-3-small", func(t *testing.T) {
		e, err := NewEmbedder(config.EmbedderConfig{APIKey: "test-key"})
		require.NoError(t, err)
		assert.Equal(t, openai.SmallEmbedding3, e.model)
	})

	t.Run("honors configured model", func(t *testing.T) {
		e, err := NewEmbedder(config.EmbedderConfig{
			APIKey: "test-key",
			Model:  "text-embedding-3-large",
		})
		require.NoError(t, err)
		assert.Equal(t, openai.EmbeddingModel("text-embedding-3-large"), e.model)
	})

	t.Run("rejects missing api key", func(t *testing.T) {
		e, err := NewEmbedder(config.EmbedderConfig{})
		require.ErrorIs(t, err, ErrMissingAPIKey)
		assert.Nil(t, e)
	})
}

func TestEmbedBatchEmpty(t *testing.T) {
	e, err := NewEmbedder(config.EmbedderConfig{APIKey: "test-key"})
	require.NoError(t, err)

	// An empty batch never reaches the API.
	vectors, err := e.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, vectors)
}
