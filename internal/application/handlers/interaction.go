package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/services"
)

// LogHandler handles interaction logging and the timeline view.
type LogHandler struct {
	people       *services.PersonService
	interactions *services.InteractionService
	questions    *services.QuestionService
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(
	people *services.PersonService,
	interactions *services.InteractionService,
	questions *services.QuestionService,
) *LogHandler {
	return &LogHandler{
		people:       people,
		interactions: interactions,
		questions:    questions,
	}
}

// LogInput carries raw CLI field values for a new interaction entry.
type LogInput struct {
	Date        string // "2006-01-02", empty means today
	PeriodStart string
	PeriodEnd   string
	Category    string
	Channel     string
	Tags        string // comma-separated labels
	Content     string
	Feeling     string
	Answers     []services.AnswerInput
}

// HandleLog resolves the reference and records an interaction with answers.
func (h *LogHandler) HandleLog(ctx context.Context, personRef string, in LogInput) (*entities.Interaction, error) {
	p, err := resolvePerson(ctx, h.people, personRef)
	if err != nil {
		return nil, err
	}

	var entryDate time.Time
	if s := strings.TrimSpace(in.Date); s != "" {
		entryDate, err = time.Parse("2006-01-02", s)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
		}
	}

	return h.interactions.Create(ctx, &entities.Interaction{
		PersonID:    p.ID,
		EntryDate:   entryDate,
		PeriodStart: strings.TrimSpace(in.PeriodStart),
		PeriodEnd:   strings.TrimSpace(in.PeriodEnd),
		Category:    strings.TrimSpace(in.Category),
		Channel:     strings.TrimSpace(in.Channel),
		Tags:        entities.SplitGroups(in.Tags),
		Content:     in.Content,
		Feeling:     in.Feeling,
	}, in.Answers)
}

// AnsweredQuestion is one answer with its question resolved for display.
type AnsweredQuestion struct {
	QuestionID   string `json:"question_id"`
	QuestionText string `json:"question_text,omitempty"`
	Value        string `json:"value"`
	// Orphaned marks answers whose question was since deleted.
	Orphaned bool `json:"orphaned,omitempty"`
}

// TimelineEntry is one interaction prepared for the timeline view.
type TimelineEntry struct {
	Interaction entities.Interaction `json:"interaction"`
	Answers     []AnsweredQuestion   `json:"answers,omitempty"`
}

// HandleTimeline returns the person's interactions newest first, with each
// answer's question text resolved. Answers to deleted questions stay listed,
// marked orphaned.
func (h *LogHandler) HandleTimeline(ctx context.Context, personRef string) ([]TimelineEntry, error) {
	p, err := resolvePerson(ctx, h.people, personRef)
	if err != nil {
		return nil, err
	}

	interactions, err := h.interactions.ListForPerson(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	// Question lookups are cached across entries; a profile tends to reuse
	// the same bank.
	cache := make(map[string]*entities.ProfilingQuestion)
	entries := make([]TimelineEntry, 0, len(interactions))
	for _, it := range interactions {
		entry := TimelineEntry{Interaction: it}
		for _, a := range it.Answers {
			aq := AnsweredQuestion{QuestionID: a.QuestionID, Value: a.Value}
			q, ok := cache[a.QuestionID]
			if !ok {
				q, err = h.questions.Get(ctx, a.QuestionID)
				if err != nil && !errors.Is(err, entities.ErrNotFound) {
					return nil, err
				}
				cache[a.QuestionID] = q
			}
			if q != nil {
				aq.QuestionText = q.Text
			} else {
				aq.Orphaned = true
			}
			entry.Answers = append(entry.Answers, aq)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
