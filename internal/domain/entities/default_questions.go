package entities

// DefaultQuestions are the starter profiling questions seeded into an empty
// question bank. Users can edit or delete them freely afterwards.
var DefaultQuestions = []ProfilingQuestion{
	{
		Category:    "personality",
		Text:        "Do they enjoy trying new things?",
		Criteria:    "Yes suggests high openness",
		AnswerType:  AnswerNumericScale,
		TargetTrait: "Openness (Big5)",
	},
	{
		Category:    "personality",
		Text:        "On days off, do they mostly spend time alone or meet people?",
		Criteria:    "Meeting people suggests extraversion (E)",
		AnswerType:  AnswerSingleSelect,
		Options:     []string{"alone", "with people", "depends"},
		TargetTrait: "Extroversion (MBTI/Big5)",
	},
	{
		Category:    "personality",
		Text:        "Is their room or desk always tidy?",
		Criteria:    "Yes suggests high conscientiousness (J leaning)",
		AnswerType:  AnswerNumericScale,
		TargetTrait: "Conscientiousness (Big5)",
	},
	{
		Category:    "personality",
		Text:        "In an argument, do they tend to yield to the other side?",
		Criteria:    "Yes suggests high agreeableness (F leaning)",
		AnswerType:  AnswerNumericScale,
		TargetTrait: "Agreeableness (Big5)",
	},
	{
		Category:    "values",
		Text:        "What do they value most in life?",
		Criteria:    "Identifies core values",
		AnswerType:  AnswerFreeText,
		TargetTrait: "Values",
	},
	{
		Category:   "personal-info",
		Text:       "Where did they grow up?",
		Criteria:   "Background context",
		AnswerType: AnswerFreeText,
	},
	{
		Category:   "personal-info",
		Text:       "Do they have siblings?",
		Criteria:   "Family structure",
		AnswerType: AnswerFreeText,
	},
}
