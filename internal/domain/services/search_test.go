package services

import (
	"context"
	"testing"
	"time"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchFixture(t *testing.T) (*SearchService, *mocks.Store, *mocks.VectorDB) {
	t.Helper()
	store := mocks.NewStore()
	vectorDB := mocks.NewVectorDB()
	embedder := mocks.NewEmbedder()
	svc := NewSearchService(store, vectorDB, embedder, 4)
	return svc, store, vectorDB
}

func TestSearchService_ReindexBuildsMemos(t *testing.T) {
	svc, store, vectorDB := searchFixture(t)
	store.Interactions["i1"] = &entities.Interaction{
		ID: "i1", PersonID: "p1", Content: "talked about hiking", Feeling: "relaxed",
		EntryDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	store.Interactions["i2"] = &entities.Interaction{
		ID: "i2", PersonID: "p2", Content: "argued about money",
		EntryDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	store.Interactions["i3"] = &entities.Interaction{
		ID: "i3", PersonID: "p1", // no text at all
		EntryDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
	}

	n, err := svc.Reindex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n, "textless interactions are skipped")
	assert.Equal(t, 1, vectorDB.Resets)
	require.Len(t, vectorDB.Memos, 2)

	memo := vectorDB.Memos["i1"]
	assert.Equal(t, "talked about hiking\nrelaxed", memo.Text)
	assert.NotEmpty(t, memo.Embedding)
}

func TestSearchService_ReindexReplacesStaleIndex(t *testing.T) {
	svc, store, vectorDB := searchFixture(t)
	vectorDB.Memos["stale"] = entities.Memo{InteractionID: "stale"}
	vectorDB.Order = []string{"stale"}

	store.Interactions["i1"] = &entities.Interaction{ID: "i1", PersonID: "p1", Content: "hello"}

	_, err := svc.Reindex(context.Background())
	require.NoError(t, err)
	_, stale := vectorDB.Memos["stale"]
	assert.False(t, stale)
}

func TestSearchService_SearchFiltersByPerson(t *testing.T) {
	svc, store, _ := searchFixture(t)
	store.Interactions["i1"] = &entities.Interaction{ID: "i1", PersonID: "p1", Content: "hiking trip"}
	store.Interactions["i2"] = &entities.Interaction{ID: "i2", PersonID: "p2", Content: "board games"}

	_, err := svc.Reindex(context.Background())
	require.NoError(t, err)

	memos, err := svc.Search(context.Background(), "outdoors", "p1", 10)
	require.NoError(t, err)
	require.Len(t, memos, 1)
	assert.Equal(t, "i1", memos[0].InteractionID)
}

func TestSearchService_EmptyQueryRejected(t *testing.T) {
	svc, _, _ := searchFixture(t)

	_, err := svc.Search(context.Background(), "   ", "", 10)
	require.Error(t, err)
	assert.True(t, entities.IsValidation(err))
}
