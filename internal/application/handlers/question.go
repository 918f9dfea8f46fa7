package handlers

import (
	"context"
	"strings"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/ports"
	"github.com/ersonp/kizuna-core/internal/domain/services"
)

// QuestionHandler handles profiling question bank operations.
type QuestionHandler struct {
	questions *services.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questions *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

// QuestionInput carries raw CLI field values for a new question.
type QuestionInput struct {
	Category   string
	Text       string
	Criteria   string
	AnswerType string // numeric_scale, free_text or single_select
	Options    string // comma-separated, single_select only
}

// HandleAdd creates a new question in the bank.
func (h *QuestionHandler) HandleAdd(ctx context.Context, in QuestionInput) (*entities.ProfilingQuestion, error) {
	return h.questions.Create(ctx, &entities.ProfilingQuestion{
		Category:   strings.TrimSpace(in.Category),
		Text:       strings.TrimSpace(in.Text),
		Criteria:   strings.TrimSpace(in.Criteria),
		AnswerType: entities.AnswerType(strings.TrimSpace(in.AnswerType)),
		Options:    entities.SplitGroups(in.Options),
	})
}

// QuestionEditInput carries raw CLI field values for a partial question edit.
type QuestionEditInput struct {
	Category   *string
	Text       *string
	Criteria   *string
	AnswerType *string
	Options    *string
}

// HandleEdit applies a partial update to a question.
func (h *QuestionHandler) HandleEdit(ctx context.Context, id string, in QuestionEditInput) (*entities.ProfilingQuestion, error) {
	patch := ports.QuestionPatch{
		Category: in.Category,
		Text:     in.Text,
		Criteria: in.Criteria,
	}
	if in.AnswerType != nil {
		at := entities.AnswerType(strings.TrimSpace(*in.AnswerType))
		patch.AnswerType = &at
	}
	if in.Options != nil {
		options := entities.SplitGroups(*in.Options)
		patch.Options = &options
	}
	return h.questions.Update(ctx, id, patch)
}

// HandleRemove deletes a question; past answers stay in the log.
func (h *QuestionHandler) HandleRemove(ctx context.Context, id string) error {
	return h.questions.Delete(ctx, id)
}

// HandleList returns the whole question bank.
func (h *QuestionHandler) HandleList(ctx context.Context) ([]entities.ProfilingQuestion, error) {
	return h.questions.List(ctx)
}

// HandleSeed loads the built-in starter questions into an empty bank.
// Returns the number seeded, zero when the bank already has questions.
func (h *QuestionHandler) HandleSeed(ctx context.Context) (int, error) {
	return h.questions.SeedDefaults(ctx)
}

// HandleRandom picks a random question, optionally from one category.
func (h *QuestionHandler) HandleRandom(ctx context.Context, category string) (*entities.ProfilingQuestion, error) {
	return h.questions.Random(ctx, strings.TrimSpace(category))
}
