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

func filterFixture(t *testing.T) (*FilterService, *mocks.Store) {
	t.Helper()
	store := mocks.NewStore()
	store.People["p1"] = &entities.Person{
		ID: "p1", FamilyName: "Sato", GivenName: "Taro",
		Status: "friend", Gender: "male",
		BirthDate: entities.PartialDate{Year: 2000, Month: 6, Day: 15},
		Groups:    []string{"work", "family"},
	}
	store.People["p2"] = &entities.Person{
		ID: "p2", FamilyName: "Suzuki", GivenName: "Hana",
		Status: "colleague", Gender: "female",
		BirthDate: entities.PartialDate{Year: 1985},
		Groups:    []string{"school"},
	}
	store.People["p3"] = &entities.Person{
		ID: "p3", FamilyName: "Tanaka", GivenName: "Ken",
		Status: "acquaintance",
	}

	svc := NewFilterService(store)
	svc.now = func() time.Time { return time.Date(2024, 6, 14, 12, 0, 0, 0, time.UTC) }
	return svc, store
}

func TestFilterService_GroupContainsIsExactMembership(t *testing.T) {
	svc, _ := filterFixture(t)

	people, err := svc.List(context.Background(), []FilterClause{
		{Field: FieldGroup, Op: OpContains, Value: "work"},
	}, SortSpec{})
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "p1", people[0].ID)
}

func TestFilterService_AgeBoundaries(t *testing.T) {
	svc, _ := filterFixture(t)
	ctx := context.Background()

	// Reference date 2024-06-14: p1 (born 2000-06-15) has not had their
	// birthday yet, so age is 23.
	people, err := svc.List(ctx, []FilterClause{{Field: FieldAge, Op: OpEquals, Value: "23"}}, SortSpec{})
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "p1", people[0].ID)

	// One day later the same person turns 24.
	svc.now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }
	people, err = svc.List(ctx, []FilterClause{{Field: FieldAge, Op: OpEquals, Value: "24"}}, SortSpec{})
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "p1", people[0].ID)
}

func TestFilterService_YearOnlyAgeEstimate(t *testing.T) {
	svc, _ := filterFixture(t)

	// p2 has only a birth year (1985): estimate is 2024-1985 = 39, with
	// no day adjustment.
	people, err := svc.List(context.Background(), []FilterClause{
		{Field: FieldAge, Op: OpEquals, Value: "39"},
	}, SortSpec{})
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "p2", people[0].ID)
}

func TestFilterService_UndefinedAgeNeverMatchesNumericOps(t *testing.T) {
	svc, _ := filterFixture(t)

	// p3 has no birth information; at-least 0 would match anyone with an
	// age, but never an undefined one.
	people, err := svc.List(context.Background(), []FilterClause{
		{Field: FieldAge, Op: OpAtLeast, Value: "0"},
	}, SortSpec{})
	require.NoError(t, err)
	assert.Len(t, people, 2)
	for _, p := range people {
		assert.NotEqual(t, "p3", p.ID)
	}
}

func TestFilterService_MalformedNumberNeverMatches(t *testing.T) {
	svc, _ := filterFixture(t)

	people, err := svc.List(context.Background(), []FilterClause{
		{Field: FieldAge, Op: OpAtLeast, Value: "banana"},
	}, SortSpec{})
	require.NoError(t, err, "malformed values are not errors")
	assert.Empty(t, people)
}

func TestFilterService_ClausesCombineWithAND(t *testing.T) {
	svc, _ := filterFixture(t)

	people, err := svc.List(context.Background(), []FilterClause{
		{Field: FieldGender, Op: OpEquals, Value: "male"},
		{Field: FieldStatus, Op: OpContains, Value: "friend"},
	}, SortSpec{})
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "p1", people[0].ID)
}

func TestFilterService_LastContact(t *testing.T) {
	svc, store := filterFixture(t)
	store.Interactions["i1"] = &entities.Interaction{
		ID: "i1", PersonID: "p1", EntryDate: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	store.Interactions["i2"] = &entities.Interaction{
		ID: "i2", PersonID: "p1", EntryDate: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	store.Interactions["i3"] = &entities.Interaction{
		ID: "i3", PersonID: "p2", EntryDate: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	}

	// The most recent interaction counts, and people without any never
	// satisfy the date comparison.
	people, err := svc.List(context.Background(), []FilterClause{
		{Field: FieldLastContact, Op: OpAtLeast, Value: "2024-06-01"},
	}, SortSpec{})
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "p1", people[0].ID)
}

func TestFilterService_SortAppliedAfterFiltering(t *testing.T) {
	svc, _ := filterFixture(t)

	people, err := svc.List(context.Background(), nil, SortSpec{Field: FieldAge, Direction: SortDesc})
	require.NoError(t, err)
	require.Len(t, people, 3)
	assert.Equal(t, "p2", people[0].ID, "oldest first")
	assert.Equal(t, "p1", people[1].ID)
	assert.Equal(t, "p3", people[2].ID, "ageless people sort last")
}

func TestFilterService_TooManyClauses(t *testing.T) {
	svc, _ := filterFixture(t)

	clauses := make([]FilterClause, MaxFilterClauses+1)
	for i := range clauses {
		clauses[i] = FilterClause{Field: FieldStatus, Op: OpContains, Value: "x"}
	}
	_, err := svc.List(context.Background(), clauses, SortSpec{})
	require.Error(t, err)
	assert.True(t, entities.IsValidation(err))
}

func TestFilterService_NameContainsCoversKanaAndNickname(t *testing.T) {
	svc, store := filterFixture(t)
	store.People["p1"].Nickname = "Taro-chan"
	store.People["p1"].FamilyNameKana = "さとう"

	people, err := svc.List(context.Background(), []FilterClause{
		{Field: FieldName, Op: OpContains, Value: "chan"},
	}, SortSpec{})
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "p1", people[0].ID)

	people, err = svc.List(context.Background(), []FilterClause{
		{Field: FieldName, Op: OpContains, Value: "さとう"},
	}, SortSpec{})
	require.NoError(t, err)
	require.Len(t, people, 1)
}
