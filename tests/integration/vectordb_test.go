package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	embedder "github.com/ersonp/kizuna-core/internal/infrastructure/embedder/openai"
)

// axisVector returns a unit vector along one axis so similarity ordering in
// tests is exact.
func axisVector(axis int) []float32 {
	v := make([]float32, embedder.VectorSize)
	v[axis] = 1
	return v
}

func newTestMemo(personID string, axis int, text string) entities.Memo {
	return entities.Memo{
		InteractionID: uuid.New().String(),
		PersonID:      personID,
		Category:      "hobby",
		Text:          text,
		EntryDate:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Embedding:     axisVector(axis),
	}
}

func TestQdrantMemoRoundTrip(t *testing.T) {
	requireVector(t)
	ctx := context.Background()

	require.NoError(t, testVectorRepo.ResetCollection(ctx, embedder.VectorSize))

	satoID := uuid.New().String()
	suzukiID := uuid.New().String()

	memos := []entities.Memo{
		newTestMemo(satoID, 0, "talked about hiking in Nagano"),
		newTestMemo(satoID, 1, "prefers quiet coffee shops"),
		newTestMemo(suzukiID, 0, "training for a marathon"),
	}
	require.NoError(t, testVectorRepo.SaveBatch(ctx, memos))

	count, err := testVectorRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)

	t.Run("search ranks by similarity", func(t *testing.T) {
		results, err := testVectorRepo.Search(ctx, axisVector(0), "", 10)
		require.NoError(t, err)
		require.NotEmpty(t, results)

		texts := []string{results[0].Text}
		if len(results) > 1 {
			texts = append(texts, results[1].Text)
		}
		assert.Contains(t, texts, "talked about hiking in Nagano")
		assert.Contains(t, texts, "training for a marathon")
	})

	t.Run("person filter", func(t *testing.T) {
		results, err := testVectorRepo.Search(ctx, axisVector(0), satoID, 10)
		require.NoError(t, err)
		require.NotEmpty(t, results)
		for _, m := range results {
			assert.Equal(t, satoID, m.PersonID)
		}
	})

	t.Run("reset empties the collection", func(t *testing.T) {
		require.NoError(t, testVectorRepo.ResetCollection(ctx, embedder.VectorSize))

		count, err := testVectorRepo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), count)
	})
}
