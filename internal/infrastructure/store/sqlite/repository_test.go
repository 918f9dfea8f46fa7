package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/ports"
	"github.com/ersonp/kizuna-core/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo
}

func newPerson(family, given string) *entities.Person {
	return &entities.Person{
		ID:         uuid.New().String(),
		FamilyName: family,
		GivenName:  given,
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
}

func TestRepository_PersonRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := newPerson("Sato", "Hanako")
	p.FamilyNameKana = "さとう"
	p.GivenNameKana = "はなこ"
	p.BirthDate = entities.PartialDate{Year: 1990, Month: 6}
	p.Groups = []string{"work", "tennis"}
	require.NoError(t, repo.SavePerson(ctx, p))

	got, err := repo.FindPersonByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sato Hanako", got.DisplayName())
	assert.Equal(t, "さとう", got.FamilyNameKana)
	assert.Equal(t, entities.PartialDate{Year: 1990, Month: 6}, got.BirthDate)
	assert.Equal(t, []string{"work", "tennis"}, got.Groups)
	assert.Nil(t, got.LegacyBirthDate)
}

func TestRepository_FindPersonByID_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.FindPersonByID(context.Background(), "nope")
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRepository_UpdatePerson_Partial(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := newPerson("Suzuki", "Taro")
	p.Status = "friend"
	require.NoError(t, repo.SavePerson(ctx, p))

	nickname := "Taro-chan"
	birth := entities.PartialDate{Year: 1988, Month: 3, Day: 21}
	got, err := repo.UpdatePerson(ctx, p.ID, ports.PersonPatch{
		Nickname:  &nickname,
		BirthDate: &birth,
	})
	require.NoError(t, err)

	assert.Equal(t, "Taro-chan", got.Nickname)
	assert.Equal(t, birth, got.BirthDate)
	assert.Equal(t, "friend", got.Status, "untouched fields survive")
}

func TestRepository_UpdatePerson_EmptyPatch(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := newPerson("Suzuki", "Taro")
	require.NoError(t, repo.SavePerson(ctx, p))

	got, err := repo.UpdatePerson(ctx, p.ID, ports.PersonPatch{})
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = repo.UpdatePerson(ctx, "nope", ports.PersonPatch{})
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRepository_FindSelf(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.FindSelf(ctx)
	assert.ErrorIs(t, err, entities.ErrNotFound)

	me := newPerson("Tanaka", "Jiro")
	me.IsSelf = true
	require.NoError(t, repo.SavePerson(ctx, me))

	got, err := repo.FindSelf(ctx)
	require.NoError(t, err)
	assert.Equal(t, me.ID, got.ID)
}

func TestRepository_SelfUniqueness(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := newPerson("Tanaka", "Jiro")
	first.IsSelf = true
	require.NoError(t, repo.SavePerson(ctx, first))

	second := newPerson("Sato", "Hanako")
	second.IsSelf = true
	assert.Error(t, repo.SavePerson(ctx, second), "only one person may be self")
}

func TestRepository_ListPeople_DirectoryOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	noKana := newPerson("Abe", "Kenji")
	suzuki := newPerson("Suzuki", "Taro")
	suzuki.FamilyNameKana = "すずき"
	sato := newPerson("Sato", "Hanako")
	sato.FamilyNameKana = "さとう"

	for _, p := range []*entities.Person{noKana, suzuki, sato} {
		require.NoError(t, repo.SavePerson(ctx, p))
	}

	people, err := repo.ListPeople(ctx)
	require.NoError(t, err)
	require.Len(t, people, 3)
	assert.Equal(t, sato.ID, people[0].ID)
	assert.Equal(t, suzuki.ID, people[1].ID)
	assert.Equal(t, noKana.ID, people[2].ID, "people without kana sort last")
}

func TestRepository_DeletePerson_Cascades(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := newPerson("Sato", "Hanako")
	other := newPerson("Suzuki", "Taro")
	require.NoError(t, repo.SavePerson(ctx, p))
	require.NoError(t, repo.SavePerson(ctx, other))

	a, b := entities.CanonicalPair(p.ID, other.ID)
	require.NoError(t, repo.SaveRelationship(ctx, &entities.Relationship{
		ID: uuid.New().String(), PersonAID: a, PersonBID: b, Type: "friend", Quality: entities.QualityGood,
	}))
	require.NoError(t, repo.SaveInteraction(ctx, &entities.Interaction{
		ID: uuid.New().String(), PersonID: p.ID, EntryDate: time.Now(),
		Answers: []entities.InteractionAnswer{},
	}))
	require.NoError(t, repo.SaveHistory(ctx, &entities.PersonHistory{
		ID: uuid.New().String(), PersonID: p.ID, Content: "moved to Osaka",
	}))
	require.NoError(t, repo.SaveProfilingNote(ctx, &entities.ProfilingNote{
		ID: uuid.New().String(), PersonID: p.ID, Framework: "MBTI", Result: "INTJ",
	}))

	require.NoError(t, repo.DeletePerson(ctx, p.ID))

	_, err := repo.FindPersonByID(ctx, p.ID)
	assert.ErrorIs(t, err, entities.ErrNotFound)

	rels, err := repo.ListRelationships(ctx)
	require.NoError(t, err)
	assert.Empty(t, rels)

	interactions, err := repo.ListInteractionsForPerson(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, interactions)

	history, err := repo.ListHistoryForPerson(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, history)

	notes, err := repo.ListProfilingNotesForPerson(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestRepository_RelationshipCanonicalPair(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p1 := newPerson("Sato", "Hanako")
	p2 := newPerson("Suzuki", "Taro")
	require.NoError(t, repo.SavePerson(ctx, p1))
	require.NoError(t, repo.SavePerson(ctx, p2))

	a, b := entities.CanonicalPair(p1.ID, p2.ID)
	rel := &entities.Relationship{
		ID:         uuid.New().String(),
		PersonAID:  a,
		PersonBID:  b,
		Type:       "colleague",
		Quality:    entities.QualityGood,
		PositionAB: "senior",
		PositionBA: "junior",
		CreatedAt:  time.Now(),
	}
	require.NoError(t, repo.SaveRelationship(ctx, rel))

	got, err := repo.FindRelationshipBetween(ctx, p2.ID, p1.ID)
	require.NoError(t, err, "lookup works from either side")
	assert.Equal(t, rel.ID, got.ID)
	assert.Equal(t, "senior", got.PositionAB)
	assert.Equal(t, entities.QualityGood, got.Quality)

	dup := *rel
	dup.ID = uuid.New().String()
	assert.Error(t, repo.SaveRelationship(ctx, &dup), "one edge per pair")
}

func TestRepository_QuestionOptionsRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	q := &entities.ProfilingQuestion{
		ID:         uuid.New().String(),
		Category:   "values",
		Text:       "What matters most to them?",
		AnswerType: entities.AnswerSingleSelect,
		Options:    []string{"family", "career", "freedom"},
		CreatedAt:  time.Now(),
	}
	require.NoError(t, repo.SaveQuestion(ctx, q))

	got, err := repo.FindQuestionByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"family", "career", "freedom"}, got.Options)

	scale := &entities.ProfilingQuestion{
		ID:         uuid.New().String(),
		Category:   "personality",
		Text:       "How outgoing are they?",
		AnswerType: entities.AnswerNumericScale,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, repo.SaveQuestion(ctx, scale))

	got, err = repo.FindQuestionByID(ctx, scale.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Options)
}

func TestRepository_DeleteQuestion_KeepsAnswers(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := newPerson("Sato", "Hanako")
	require.NoError(t, repo.SavePerson(ctx, p))

	q := &entities.ProfilingQuestion{
		ID:         uuid.New().String(),
		Category:   "personality",
		Text:       "How outgoing are they?",
		AnswerType: entities.AnswerNumericScale,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, repo.SaveQuestion(ctx, q))

	itID := uuid.New().String()
	require.NoError(t, repo.SaveInteraction(ctx, &entities.Interaction{
		ID: itID, PersonID: p.ID, EntryDate: time.Now(),
		Answers: []entities.InteractionAnswer{
			{ID: uuid.New().String(), InteractionID: itID, QuestionID: q.ID, Value: "4"},
		},
	}))

	require.NoError(t, repo.DeleteQuestion(ctx, q.ID))

	answers, err := repo.ListAnswersForPerson(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, q.ID, answers[0].QuestionID, "answers survive question deletion")
}

func TestRepository_InteractionRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := newPerson("Sato", "Hanako")
	require.NoError(t, repo.SavePerson(ctx, p))

	itID := uuid.New().String()
	it := &entities.Interaction{
		ID:          itID,
		PersonID:    p.ID,
		EntryDate:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		PeriodStart: "2024 spring",
		Category:    "meal",
		Tags:        []string{"lunch", "ramen"},
		Content:     "talked about work",
		Feeling:     "relaxed",
		CreatedAt:   time.Now(),
		Answers: []entities.InteractionAnswer{
			{ID: uuid.New().String(), InteractionID: itID, QuestionID: "q-gone", Value: "3"},
		},
	}
	require.NoError(t, repo.SaveInteraction(ctx, it))

	list, err := repo.ListInteractionsForPerson(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2024 spring", list[0].PeriodStart)
	assert.Equal(t, []string{"lunch", "ramen"}, list[0].Tags)
	require.Len(t, list[0].Answers, 1)
	assert.Equal(t, "3", list[0].Answers[0].Value)
}

func TestRepository_InteractionAtomicity(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := newPerson("Sato", "Hanako")
	require.NoError(t, repo.SavePerson(ctx, p))

	itID := uuid.New().String()
	dupAnswer := uuid.New().String()
	it := &entities.Interaction{
		ID: itID, PersonID: p.ID, EntryDate: time.Now(),
		Answers: []entities.InteractionAnswer{
			{ID: dupAnswer, InteractionID: itID, QuestionID: "q1", Value: "1"},
			{ID: dupAnswer, InteractionID: itID, QuestionID: "q2", Value: "2"},
		},
	}
	require.Error(t, repo.SaveInteraction(ctx, it))

	list, err := repo.ListInteractionsForPerson(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, list, "failed insert leaves nothing behind")
}

func TestRepository_LastContactDates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p1 := newPerson("Sato", "Hanako")
	p2 := newPerson("Suzuki", "Taro")
	require.NoError(t, repo.SavePerson(ctx, p1))
	require.NoError(t, repo.SavePerson(ctx, p2))

	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, d := range []time.Time{old, recent} {
		require.NoError(t, repo.SaveInteraction(ctx, &entities.Interaction{
			ID: uuid.New().String(), PersonID: p1.ID, EntryDate: d,
		}))
	}

	last, err := repo.LastContactDates(ctx)
	require.NoError(t, err)
	require.Contains(t, last, p1.ID)
	assert.True(t, last[p1.ID].Equal(recent))
	assert.NotContains(t, last, p2.ID, "people never contacted are absent")
}

func TestRepository_HistoryRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := newPerson("Sato", "Hanako")
	require.NoError(t, repo.SavePerson(ctx, p))

	h := &entities.PersonHistory{
		ID:        uuid.New().String(),
		PersonID:  p.ID,
		Date:      entities.PartialDate{Year: 2020, Month: 4},
		Content:   "changed jobs",
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.SaveHistory(ctx, h))

	events, err := repo.ListHistoryForPerson(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, entities.PartialDate{Year: 2020, Month: 4}, events[0].Date)

	require.NoError(t, repo.DeleteHistory(ctx, h.ID))
	assert.ErrorIs(t, repo.DeleteHistory(ctx, h.ID), entities.ErrNotFound)
}
