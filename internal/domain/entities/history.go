package entities

import "time"

// PersonHistory is a dated free-text life event owned by a person, e.g.
// "changed jobs" or "moved to Osaka". Created and deleted independently of
// interactions.
type PersonHistory struct {
	ID        string      `json:"id"`
	PersonID  string      `json:"person_id"`
	Date      PartialDate `json:"date,omitzero"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}
