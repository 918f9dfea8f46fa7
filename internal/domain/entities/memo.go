package entities

import "time"

// Memo is the searchable view of one interaction, stored in the vector index.
// Text concatenates the interaction content and the user's feeling note.
type Memo struct {
	InteractionID string    `json:"interaction_id"`
	PersonID      string    `json:"person_id"`
	Category      string    `json:"category,omitempty"`
	Text          string    `json:"text"`
	EntryDate     time.Time `json:"entry_date"`
	Embedding     []float32 `json:"embedding,omitempty"`
	// Score is the similarity score set on search results.
	Score float32 `json:"score,omitempty"`
}
