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

func graphFixture(t *testing.T) *mocks.Store {
	t.Helper()
	store := mocks.NewStore()
	store.People["me"] = &entities.Person{ID: "me", FamilyName: "Sato", GivenName: "Taro", IsSelf: true, Groups: []string{"work"}}
	store.People["p2"] = &entities.Person{ID: "p2", FamilyName: "Suzuki", GivenName: "Hana", Groups: []string{"work", "family"}}
	store.People["p3"] = &entities.Person{ID: "p3", FamilyName: "Tanaka", GivenName: "Ken", Groups: []string{"school"}}
	store.People["p4"] = &entities.Person{ID: "p4", FamilyName: "Ito", GivenName: "Mai"}

	store.Relationships["r1"] = &entities.Relationship{
		ID: "r1", PersonAID: "me", PersonBID: "p2", Type: "colleague", Quality: entities.QualityGood,
	}
	store.Relationships["r2"] = &entities.Relationship{
		ID: "r2", PersonAID: "p2", PersonBID: "p3", Type: "rival", Quality: entities.QualityBad,
	}
	store.Relationships["r3"] = &entities.Relationship{
		ID: "r3", PersonAID: "me", PersonBID: "p3", Type: "ex", Quality: entities.QualityGood, Caution: true,
	}
	return store
}

func TestGraphService_Global(t *testing.T) {
	svc := NewGraphService(graphFixture(t))

	view, err := svc.Global(context.Background())
	require.NoError(t, err)
	assert.Equal(t, GraphModeGlobal, view.Mode)
	assert.Len(t, view.Nodes, 4)
	assert.Len(t, view.Edges, 3)

	classes := map[string]EdgeClass{}
	for _, e := range view.Edges {
		classes[e.ID] = e.Class
	}
	assert.Equal(t, EdgeClassPositive, classes["r1"])
	assert.Equal(t, EdgeClassNegative, classes["r2"])
	assert.Equal(t, EdgeClassCaution, classes["r3"], "caution overrides quality")
}

func TestGraphService_SelfNodeClass(t *testing.T) {
	svc := NewGraphService(graphFixture(t))

	view, err := svc.Ego(context.Background(), "me")
	require.NoError(t, err)
	for _, n := range view.Nodes {
		if n.ID == "me" {
			assert.Equal(t, NodeClassSelf, n.Class, "self wins over centered")
		}
	}
}

func TestGraphService_GroupMembershipIsExact(t *testing.T) {
	store := graphFixture(t)
	store.People["p5"] = &entities.Person{ID: "p5", FamilyName: "Kato", GivenName: "Rin", Groups: []string{"homework"}}
	svc := NewGraphService(store)

	view, err := svc.Group(context.Background(), "work")
	require.NoError(t, err)

	ids := map[string]bool{}
	for _, n := range view.Nodes {
		ids[n.ID] = true
	}
	assert.True(t, ids["me"])
	assert.True(t, ids["p2"])
	assert.False(t, ids["p5"], "substring tags must not match")
	assert.Len(t, view.Nodes, 2)

	// Only the me-p2 edge has both endpoints inside the group.
	require.Len(t, view.Edges, 1)
	assert.Equal(t, "r1", view.Edges[0].ID)
}

func TestGraphService_EgoIncludesNeighborEdges(t *testing.T) {
	svc := NewGraphService(graphFixture(t))

	view, err := svc.Ego(context.Background(), "me")
	require.NoError(t, err)

	// me, p2, p3 — and all three edges, including the p2-p3 edge that
	// happens to exist between two neighbors.
	assert.Len(t, view.Nodes, 3)
	assert.Len(t, view.Edges, 3)

	centered := 0
	for _, n := range view.Nodes {
		if n.Class == NodeClassCentered {
			centered++
		}
	}
	assert.Zero(t, centered, "center is self here, so no node is merely centered")
}

func TestGraphService_EgoCenterAlwaysPresent(t *testing.T) {
	svc := NewGraphService(graphFixture(t))

	view, err := svc.Ego(context.Background(), "p4")
	require.NoError(t, err)
	require.Len(t, view.Nodes, 1, "isolated center still appears")
	assert.Equal(t, "p4", view.Nodes[0].ID)
	assert.Equal(t, NodeClassCentered, view.Nodes[0].Class)
	assert.Empty(t, view.Edges)
}

func TestGraphService_EgoUnknownCenter(t *testing.T) {
	svc := NewGraphService(graphFixture(t))

	_, err := svc.Ego(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrNotFound))
}
