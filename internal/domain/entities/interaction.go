package entities

import "time"

// InteractionAnswer records one answer to a profiling question, given during
// one interaction. The same (person, question) pair may be answered again in
// later interactions. QuestionID may dangle if the question was deleted.
type InteractionAnswer struct {
	ID            string `json:"id"`
	InteractionID string `json:"interaction_id"`
	QuestionID    string `json:"question_id"`
	Value         string `json:"value"`
}

// Interaction is a logged contact with a person. PeriodStart and PeriodEnd
// are opaque human-entered strings ("2024 spring") used when the exact date
// is fuzzy; EntryDate is still what orders the timeline. An interaction is
// created together with its answers and never updated in place.
type Interaction struct {
	ID          string              `json:"id"`
	PersonID    string              `json:"person_id"`
	EntryDate   time.Time           `json:"entry_date"`
	PeriodStart string              `json:"period_start,omitempty"`
	PeriodEnd   string              `json:"period_end,omitempty"`
	Category    string              `json:"category,omitempty"`
	Channel     string              `json:"channel,omitempty"`
	Tags        []string            `json:"tags,omitempty"`
	Content     string              `json:"content,omitempty"`
	Feeling     string              `json:"feeling,omitempty"`
	Answers     []InteractionAnswer `json:"answers,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}
