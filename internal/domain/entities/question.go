package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AnswerType selects how a profiling question is answered.
type AnswerType string

const (
	AnswerNumericScale AnswerType = "numeric_scale"
	AnswerFreeText     AnswerType = "free_text"
	AnswerSingleSelect AnswerType = "single_select"
)

// NumericScaleMin and NumericScaleMax bound numeric-scale answers.
const (
	NumericScaleMin = 1
	NumericScaleMax = 5
)

// ValidAnswerType reports whether t is a known answer type.
func ValidAnswerType(t AnswerType) bool {
	switch t {
	case AnswerNumericScale, AnswerFreeText, AnswerSingleSelect:
		return true
	}
	return false
}

// ProfilingQuestion is a reusable question asked during interactions to build
// up a personality profile. Options is populated only for single_select.
type ProfilingQuestion struct {
	ID         string     `json:"id"`
	Category   string     `json:"category"`
	Text       string     `json:"text"`
	Criteria   string     `json:"criteria,omitempty"`
	AnswerType AnswerType `json:"answer_type"`
	Options    []string   `json:"options,omitempty"`
	// TargetTrait is the legacy trait label from before categories existed.
	TargetTrait string    `json:"target_trait,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NormalizeAnswer validates and canonicalizes an answer value for the
// question's answer type. Numeric-scale answers become their canonical
// integer form, single-select answers must match one of the options, and
// free-text answers pass through trimmed.
func (q *ProfilingQuestion) NormalizeAnswer(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", &ValidationError{Field: "answer", Reason: "answer value is required"}
	}

	switch q.AnswerType {
	case AnswerNumericScale:
		n, err := strconv.Atoi(value)
		if err != nil {
			return "", &ValidationError{Field: "answer", Reason: fmt.Sprintf("not a number: %q", value)}
		}
		if n < NumericScaleMin || n > NumericScaleMax {
			return "", &ValidationError{
				Field:  "answer",
				Reason: fmt.Sprintf("scale value %d outside %d..%d", n, NumericScaleMin, NumericScaleMax),
			}
		}
		return strconv.Itoa(n), nil
	case AnswerSingleSelect:
		for _, opt := range q.Options {
			if value == opt {
				return value, nil
			}
		}
		return "", &ValidationError{Field: "answer", Reason: fmt.Sprintf("%q is not one of the options", value)}
	case AnswerFreeText:
		return value, nil
	}
	return "", &ValidationError{Field: "answer_type", Reason: fmt.Sprintf("unknown answer type %q", q.AnswerType)}
}
