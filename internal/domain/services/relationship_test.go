package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addPerson(t *testing.T, store *mocks.Store, id, family, given string) {
	t.Helper()
	store.People[id] = &entities.Person{ID: id, FamilyName: family, GivenName: given}
}

func TestRelationshipService_UpsertCreatesSingleEdge(t *testing.T) {
	store := mocks.NewStore()
	addPerson(t, store, "p1", "Sato", "Taro")
	addPerson(t, store, "p2", "Suzuki", "Hana")
	svc := NewRelationshipService(store)

	rel, err := svc.Upsert(context.Background(), UpsertInput{
		AID:        "p1",
		BID:        "p2",
		Type:       "colleague",
		Quality:    entities.QualityGood,
		PositionAB: "senior",
		PositionBA: "junior",
	})
	require.NoError(t, err)
	require.Len(t, store.Relationships, 1)

	assert.Equal(t, "p1", rel.PersonAID)
	assert.Equal(t, "p2", rel.PersonBID)
	assert.Equal(t, "senior", rel.PositionAB)
	assert.Equal(t, "junior", rel.PositionBA)
}

func TestRelationshipService_UpsertIdempotentUnderEndpointSwap(t *testing.T) {
	store := mocks.NewStore()
	addPerson(t, store, "p1", "Sato", "Taro")
	addPerson(t, store, "p2", "Suzuki", "Hana")
	svc := NewRelationshipService(store)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, UpsertInput{
		AID: "p1", BID: "p2", Type: "colleague", Quality: entities.QualityGood,
		PositionAB: "senior", PositionBA: "junior",
	})
	require.NoError(t, err)

	// Same edge edited with the endpoints reversed and the positions
	// swapped correspondingly: still one edge, nothing observable changes.
	_, err = svc.Upsert(ctx, UpsertInput{
		AID: "p2", BID: "p1", Type: "colleague", Quality: entities.QualityGood,
		PositionAB: "junior", PositionBA: "senior",
	})
	require.NoError(t, err)
	require.Len(t, store.Relationships, 1)

	fromA, err := svc.Between(ctx, "p1", "p2")
	require.NoError(t, err)
	assert.Equal(t, "p2", fromA.OtherID)
	assert.Equal(t, "senior", fromA.PositionOut, "A's stance toward B must survive the swapped edit")
	assert.Equal(t, "junior", fromA.PositionIn)

	fromB, err := svc.Between(ctx, "p2", "p1")
	require.NoError(t, err)
	assert.Equal(t, "junior", fromB.PositionOut)
	assert.Equal(t, "senior", fromB.PositionIn)
}

func TestRelationshipService_UpsertReversedOrderOverwritesScalars(t *testing.T) {
	store := mocks.NewStore()
	addPerson(t, store, "p1", "Sato", "Taro")
	addPerson(t, store, "p2", "Suzuki", "Hana")
	svc := NewRelationshipService(store)
	ctx := context.Background()

	first, err := svc.Upsert(ctx, UpsertInput{
		AID: "p1", BID: "p2", Type: "colleague", Quality: entities.QualityGood,
		PositionAB: "senior", PositionBA: "junior",
	})
	require.NoError(t, err)

	second, err := svc.Upsert(ctx, UpsertInput{
		AID: "p2", BID: "p1", Type: "rival", Quality: entities.QualityBad,
		PositionAB: "challenger", PositionBA: "champion", Caution: true,
	})
	require.NoError(t, err)
	require.Len(t, store.Relationships, 1)
	assert.Equal(t, first.ID, second.ID)

	fromB, err := svc.Between(ctx, "p2", "p1")
	require.NoError(t, err)
	assert.Equal(t, "rival", fromB.Type)
	assert.Equal(t, entities.QualityBad, fromB.Quality)
	assert.True(t, fromB.Caution)
	assert.Equal(t, "challenger", fromB.PositionOut)
	assert.Equal(t, "champion", fromB.PositionIn)
}

func TestRelationshipService_UpsertRejectsSelfEdge(t *testing.T) {
	store := mocks.NewStore()
	addPerson(t, store, "p1", "Sato", "Taro")
	svc := NewRelationshipService(store)

	_, err := svc.Upsert(context.Background(), UpsertInput{AID: "p1", BID: "p1", Type: "twin"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrInvalidEdge))
	assert.Empty(t, store.Relationships)
}

func TestRelationshipService_UpsertRejectsUnknownPerson(t *testing.T) {
	store := mocks.NewStore()
	addPerson(t, store, "p1", "Sato", "Taro")
	svc := NewRelationshipService(store)

	_, err := svc.Upsert(context.Background(), UpsertInput{AID: "p1", BID: "ghost", Type: "friend"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrNotFound))
}

func TestRelationshipService_UpsertRejectsBadQuality(t *testing.T) {
	store := mocks.NewStore()
	addPerson(t, store, "p1", "Sato", "Taro")
	addPerson(t, store, "p2", "Suzuki", "Hana")
	svc := NewRelationshipService(store)

	_, err := svc.Upsert(context.Background(), UpsertInput{
		AID: "p1", BID: "p2", Type: "friend", Quality: entities.Quality("fantastic"),
	})
	require.Error(t, err)
	assert.True(t, entities.IsValidation(err))
}

func TestRelationshipService_UpsertDefaultsQualityToNeutral(t *testing.T) {
	store := mocks.NewStore()
	addPerson(t, store, "p1", "Sato", "Taro")
	addPerson(t, store, "p2", "Suzuki", "Hana")
	svc := NewRelationshipService(store)

	rel, err := svc.Upsert(context.Background(), UpsertInput{AID: "p1", BID: "p2", Type: "friend"})
	require.NoError(t, err)
	assert.Equal(t, entities.QualityNeutral, rel.Quality)
}

func TestRelationshipService_ListForPersonOrients(t *testing.T) {
	store := mocks.NewStore()
	addPerson(t, store, "p1", "Sato", "Taro")
	addPerson(t, store, "p2", "Suzuki", "Hana")
	addPerson(t, store, "p3", "Tanaka", "Ken")
	svc := NewRelationshipService(store)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, UpsertInput{
		AID: "p2", BID: "p1", Type: "manager", Quality: entities.QualityNeutral,
		PositionAB: "manager", PositionBA: "report",
	})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, UpsertInput{AID: "p2", BID: "p3", Type: "friend", Quality: entities.QualityGood})
	require.NoError(t, err)

	rels, err := svc.ListForPerson(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, rels, 1)
	assert.Equal(t, "p2", rels[0].OtherID)
	assert.Equal(t, "report", rels[0].PositionOut, "p1 reports to p2 regardless of storage order")
	assert.Equal(t, "manager", rels[0].PositionIn)

	rels, err = svc.ListForPerson(ctx, "p2")
	require.NoError(t, err)
	assert.Len(t, rels, 2)
}
