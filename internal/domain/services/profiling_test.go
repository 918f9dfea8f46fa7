package services

import (
	"context"
	"testing"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profilingFixture(t *testing.T) (*ProfilingService, *mocks.Store) {
	t.Helper()
	store := mocks.NewStore()
	store.People["p1"] = &entities.Person{ID: "p1", FamilyName: "Sato", GivenName: "Taro"}
	store.Questions["q1"] = &entities.ProfilingQuestion{ID: "q1", Category: "personality", Text: "a", AnswerType: entities.AnswerFreeText}
	store.Questions["q2"] = &entities.ProfilingQuestion{ID: "q2", Category: "personality", Text: "b", AnswerType: entities.AnswerFreeText}
	store.Questions["q3"] = &entities.ProfilingQuestion{ID: "q3", Category: "values", Text: "c", AnswerType: entities.AnswerFreeText}
	return NewProfilingService(store), store
}

func addAnswer(store *mocks.Store, itID, questionID string) {
	it, ok := store.Interactions[itID]
	if !ok {
		it = &entities.Interaction{ID: itID, PersonID: "p1"}
		store.Interactions[itID] = it
	}
	it.Answers = append(it.Answers, entities.InteractionAnswer{
		ID: itID + "-" + questionID, InteractionID: itID, QuestionID: questionID, Value: "x",
	})
}

func TestProfilingService_AnswerCounts(t *testing.T) {
	svc, store := profilingFixture(t)
	addAnswer(store, "i1", "q1")
	addAnswer(store, "i2", "q1")
	addAnswer(store, "i2", "q3")

	counts, err := svc.AnswerCounts(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"q1": 2, "q3": 1}, counts)
	_, present := counts["q2"]
	assert.False(t, present, "unanswered questions are absent, not zero")
}

func TestProfilingService_CompletionByCategory(t *testing.T) {
	svc, store := profilingFixture(t)
	addAnswer(store, "i1", "q1")
	addAnswer(store, "i2", "q1") // repeat answers count once
	addAnswer(store, "i2", "q3")

	completion, err := svc.CompletionByCategory(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, completion, 2)

	assert.Equal(t, entities.CategoryCompletion{Category: "personality", Answered: 1, Total: 2}, completion[0])
	assert.Equal(t, entities.CategoryCompletion{Category: "values", Answered: 1, Total: 1}, completion[1])

	for _, c := range completion {
		assert.LessOrEqual(t, c.Answered, c.Total)
	}
}

func TestProfilingService_CompletionMonotonicallyNonDecreasing(t *testing.T) {
	svc, store := profilingFixture(t)
	ctx := context.Background()

	before, err := svc.CompletionByCategory(ctx, "p1")
	require.NoError(t, err)

	addAnswer(store, "i1", "q2")
	after, err := svc.CompletionByCategory(ctx, "p1")
	require.NoError(t, err)

	for i := range before {
		assert.GreaterOrEqual(t, after[i].Answered, before[i].Answered)
	}
}

func TestProfilingService_DanglingAnswersStayCountable(t *testing.T) {
	svc, store := profilingFixture(t)
	addAnswer(store, "i1", "q1")
	delete(store.Questions, "q1")

	counts, err := svc.AnswerCounts(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, counts["q1"], "answers to deleted questions stay present")

	// But the deleted question no longer contributes to any category.
	completion, err := svc.CompletionByCategory(context.Background(), "p1")
	require.NoError(t, err)
	for _, c := range completion {
		if c.Category == "personality" {
			assert.Equal(t, 1, c.Total)
			assert.Equal(t, 0, c.Answered)
		}
	}
}

func TestProfilingService_EmptyCategoryNotReported(t *testing.T) {
	svc, store := profilingFixture(t)
	delete(store.Questions, "q3")

	completion, err := svc.CompletionByCategory(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, completion, 1)
	assert.Equal(t, "personality", completion[0].Category)
}

func TestProfilingService_Notes(t *testing.T) {
	svc, _ := profilingFixture(t)
	ctx := context.Background()

	_, err := svc.AddNote(ctx, &entities.ProfilingNote{PersonID: "p1", Framework: "MBTI"})
	require.Error(t, err, "result is required")

	_, err = svc.AddNote(ctx, &entities.ProfilingNote{
		PersonID: "p1", Framework: "MBTI", Result: "INTJ", Confidence: entities.Confidence("Z"),
	})
	require.Error(t, err, "unknown confidence grade")

	note, err := svc.AddNote(ctx, &entities.ProfilingNote{
		PersonID: "p1", Framework: "MBTI", Result: "INTJ", Confidence: entities.ConfidenceA,
		Evidence: "plans everything weeks ahead",
	})
	require.NoError(t, err)

	notes, err := svc.ListNotes(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, notes, 1)

	require.NoError(t, svc.DeleteNote(ctx, note.ID))
	notes, err = svc.ListNotes(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, notes)
}
