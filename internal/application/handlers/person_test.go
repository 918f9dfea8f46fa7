package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/mocks"
	"github.com/ersonp/kizuna-core/internal/domain/services"
)

func newPersonHandler(store *mocks.Store) *PersonHandler {
	return NewPersonHandler(
		services.NewPersonService(store),
		services.NewFilterService(store),
		services.NewRelationshipService(store),
		services.NewHistoryService(store),
		services.NewProfilingService(store),
	)
}

func TestParseWhere(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		want    services.FilterClause
		wantErr bool
	}{
		{
			name: "at least",
			expr: "age>=30",
			want: services.FilterClause{Field: "age", Op: services.OpAtLeast, Value: "30"},
		},
		{
			name: "at most",
			expr: "last_contact<=2025-01-01",
			want: services.FilterClause{Field: "last_contact", Op: services.OpAtMost, Value: "2025-01-01"},
		},
		{
			name: "contains",
			expr: "name~sato",
			want: services.FilterClause{Field: "name", Op: services.OpContains, Value: "sato"},
		},
		{
			name: "equals",
			expr: "group=work",
			want: services.FilterClause{Field: "group", Op: services.OpEquals, Value: "work"},
		},
		{
			name: "trims whitespace",
			expr: "status = friend",
			want: services.FilterClause{Field: "status", Op: services.OpEquals, Value: "friend"},
		},
		{
			name:    "no operator",
			expr:    "age!30",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clauses, err := ParseWhere([]string{tt.expr})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, clauses, 1)
			assert.Equal(t, tt.want, clauses[0])
		})
	}
}

func TestParseSort(t *testing.T) {
	spec, err := ParseSort("")
	require.NoError(t, err)
	assert.Equal(t, services.SortSpec{}, spec)

	spec, err = ParseSort("age")
	require.NoError(t, err)
	assert.Equal(t, services.FilterField("age"), spec.Field)
	assert.Equal(t, services.SortAsc, spec.Direction)

	spec, err = ParseSort("age:desc")
	require.NoError(t, err)
	assert.Equal(t, services.SortDesc, spec.Direction)

	_, err = ParseSort("age:sideways")
	require.Error(t, err)
}

func TestPersonHandler_HandleAdd(t *testing.T) {
	store := mocks.NewStore()
	handler := newPersonHandler(store)

	p, err := handler.HandleAdd(context.Background(), AddInput{
		FamilyName: "佐藤",
		GivenName:  "健",
		BirthDate:  "1990-05",
		Groups:     "work, tennis",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, entities.PartialDate{Year: 1990, Month: 5}, p.BirthDate)
	assert.Equal(t, []string{"work", "tennis"}, p.Groups)
}

func TestPersonHandler_HandleAdd_InvalidBirthDate(t *testing.T) {
	store := mocks.NewStore()
	handler := newPersonHandler(store)

	_, err := handler.HandleAdd(context.Background(), AddInput{
		FamilyName: "佐藤",
		GivenName:  "健",
		BirthDate:  "not-a-date",
	})
	require.Error(t, err)
}

func TestResolvePerson(t *testing.T) {
	store := mocks.NewStore()
	people := services.NewPersonService(store)
	ctx := context.Background()

	sato, err := people.Create(ctx, &entities.Person{FamilyName: "佐藤", GivenName: "健", Nickname: "Ken"})
	require.NoError(t, err)
	_, err = people.Create(ctx, &entities.Person{FamilyName: "鈴木", GivenName: "花"})
	require.NoError(t, err)

	t.Run("by id", func(t *testing.T) {
		p, err := resolvePerson(ctx, people, sato.ID)
		require.NoError(t, err)
		assert.Equal(t, sato.ID, p.ID)
	})

	t.Run("by nickname", func(t *testing.T) {
		p, err := resolvePerson(ctx, people, "ken")
		require.NoError(t, err)
		assert.Equal(t, sato.ID, p.ID)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := resolvePerson(ctx, people, "nobody")
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("ambiguous", func(t *testing.T) {
		_, err := people.Create(ctx, &entities.Person{FamilyName: "佐藤", GivenName: "優"})
		require.NoError(t, err)

		_, err = resolvePerson(ctx, people, "佐藤")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ambiguous")
	})
}
