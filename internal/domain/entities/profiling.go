package entities

import "time"

// Confidence grades how sure the user is about a profiling conclusion.
type Confidence string

const (
	ConfidenceS Confidence = "S"
	ConfidenceA Confidence = "A"
	ConfidenceB Confidence = "B"
	ConfidenceC Confidence = "C"
)

// ValidConfidence reports whether c is a known confidence grade.
func ValidConfidence(c Confidence) bool {
	switch c {
	case ConfidenceS, ConfidenceA, ConfidenceB, ConfidenceC:
		return true
	}
	return false
}

// ProfilingNote is a recorded personality-analysis conclusion for a person,
// e.g. framework "MBTI", result "INTJ", with supporting evidence.
type ProfilingNote struct {
	ID         string     `json:"id"`
	PersonID   string     `json:"person_id"`
	Framework  string     `json:"framework"`
	Result     string     `json:"result"`
	Confidence Confidence `json:"confidence,omitempty"`
	Evidence   string     `json:"evidence,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CategoryCompletion is the profiling progress for one question category.
type CategoryCompletion struct {
	Category string `json:"category"`
	Answered int    `json:"answered"`
	Total    int    `json:"total"`
}
