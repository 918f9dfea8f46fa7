// Package mocks provides in-memory port implementations for tests.
package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/ports"
)

// Store is an in-memory mock implementation of ports.Store. Setting Err makes
// every call fail with it.
type Store struct {
	People        map[string]*entities.Person
	Relationships map[string]*entities.Relationship
	Questions     map[string]*entities.ProfilingQuestion
	Interactions  map[string]*entities.Interaction
	History       map[string]*entities.PersonHistory
	Notes         map[string]*entities.ProfilingNote
	Err           error
}

// NewStore creates a new mock Store.
func NewStore() *Store {
	return &Store{
		People:        make(map[string]*entities.Person),
		Relationships: make(map[string]*entities.Relationship),
		Questions:     make(map[string]*entities.ProfilingQuestion),
		Interactions:  make(map[string]*entities.Interaction),
		History:       make(map[string]*entities.PersonHistory),
		Notes:         make(map[string]*entities.ProfilingNote),
	}
}

// EnsureSchema creates the database schema if it doesn't exist.
func (m *Store) EnsureSchema(_ context.Context) error { return m.Err }

// Close closes the database connection.
func (m *Store) Close() error { return nil }

// SavePerson inserts a new person.
func (m *Store) SavePerson(_ context.Context, p *entities.Person) error {
	if m.Err != nil {
		return m.Err
	}
	cp := *p
	m.People[p.ID] = &cp
	return nil
}

// UpdatePerson applies the non-nil patch fields and returns the updated row.
func (m *Store) UpdatePerson(_ context.Context, id string, patch ports.PersonPatch) (*entities.Person, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.People[id]
	if !ok {
		return nil, entities.ErrNotFound
	}
	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&p.FamilyName, patch.FamilyName)
	applyString(&p.GivenName, patch.GivenName)
	applyString(&p.FamilyNameKana, patch.FamilyNameKana)
	applyString(&p.GivenNameKana, patch.GivenNameKana)
	applyString(&p.Nickname, patch.Nickname)
	applyString(&p.Gender, patch.Gender)
	applyString(&p.BloodType, patch.BloodType)
	applyString(&p.Status, patch.Status)
	applyString(&p.AvatarPath, patch.AvatarPath)
	applyString(&p.Notes, patch.Notes)
	applyString(&p.Strategy, patch.Strategy)
	applyString(&p.Prediction, patch.Prediction)
	if patch.BirthDate != nil {
		p.BirthDate = *patch.BirthDate
	}
	if patch.FirstMet != nil {
		p.FirstMet = *patch.FirstMet
	}
	if patch.Groups != nil {
		p.Groups = append([]string(nil), (*patch.Groups)...)
	}
	if patch.IsSelf != nil {
		p.IsSelf = *patch.IsSelf
	}
	cp := *p
	return &cp, nil
}

// FindPersonByID returns the person with the given id.
func (m *Store) FindPersonByID(_ context.Context, id string) (*entities.Person, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.People[id]
	if !ok {
		return nil, entities.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// FindSelf returns the person marked as the user themself.
func (m *Store) FindSelf(_ context.Context) (*entities.Person, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, p := range m.People {
		if p.IsSelf {
			cp := *p
			return &cp, nil
		}
	}
	return nil, entities.ErrNotFound
}

// ListPeople returns every person in directory order.
func (m *Store) ListPeople(_ context.Context) ([]*entities.Person, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]*entities.Person, 0, len(m.People))
	for _, p := range m.People {
		cp := *p
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].LessThan(result[j]) })
	return result, nil
}

// DeletePerson removes the person and cascades to everything they own.
func (m *Store) DeletePerson(_ context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.People[id]; !ok {
		return entities.ErrNotFound
	}
	delete(m.People, id)
	for relID, rel := range m.Relationships {
		if rel.Involves(id) {
			delete(m.Relationships, relID)
		}
	}
	for itID, it := range m.Interactions {
		if it.PersonID == id {
			delete(m.Interactions, itID)
		}
	}
	for hID, h := range m.History {
		if h.PersonID == id {
			delete(m.History, hID)
		}
	}
	for nID, n := range m.Notes {
		if n.PersonID == id {
			delete(m.Notes, nID)
		}
	}
	return nil
}

// SaveRelationship inserts or overwrites an edge by id.
func (m *Store) SaveRelationship(_ context.Context, rel *entities.Relationship) error {
	if m.Err != nil {
		return m.Err
	}
	cp := *rel
	m.Relationships[rel.ID] = &cp
	return nil
}

// FindRelationshipBetween returns the unique edge for the unordered pair.
func (m *Store) FindRelationshipBetween(_ context.Context, aID, bID string) (*entities.Relationship, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	canonA, canonB := entities.CanonicalPair(aID, bID)
	for _, rel := range m.Relationships {
		if rel.PersonAID == canonA && rel.PersonBID == canonB {
			cp := *rel
			return &cp, nil
		}
	}
	return nil, entities.ErrNotFound
}

// ListRelationshipsForPerson returns every edge touching the person.
func (m *Store) ListRelationshipsForPerson(_ context.Context, personID string) ([]entities.Relationship, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.Relationship, 0, len(m.Relationships))
	for _, rel := range m.Relationships {
		if rel.Involves(personID) {
			result = append(result, *rel)
		}
	}
	sortRelationships(result)
	return result, nil
}

// ListRelationships returns every edge.
func (m *Store) ListRelationships(_ context.Context) ([]entities.Relationship, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.Relationship, 0, len(m.Relationships))
	for _, rel := range m.Relationships {
		result = append(result, *rel)
	}
	sortRelationships(result)
	return result, nil
}

// DeleteRelationship removes an edge by id.
func (m *Store) DeleteRelationship(_ context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Relationships[id]; !ok {
		return entities.ErrNotFound
	}
	delete(m.Relationships, id)
	return nil
}

// SaveQuestion inserts a new profiling question.
func (m *Store) SaveQuestion(_ context.Context, q *entities.ProfilingQuestion) error {
	if m.Err != nil {
		return m.Err
	}
	cp := *q
	m.Questions[q.ID] = &cp
	return nil
}

// UpdateQuestion applies the non-nil patch fields and returns the updated row.
func (m *Store) UpdateQuestion(_ context.Context, id string, patch ports.QuestionPatch) (*entities.ProfilingQuestion, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	q, ok := m.Questions[id]
	if !ok {
		return nil, entities.ErrNotFound
	}
	if patch.Category != nil {
		q.Category = *patch.Category
	}
	if patch.Text != nil {
		q.Text = *patch.Text
	}
	if patch.Criteria != nil {
		q.Criteria = *patch.Criteria
	}
	if patch.AnswerType != nil {
		q.AnswerType = *patch.AnswerType
	}
	if patch.Options != nil {
		q.Options = append([]string(nil), (*patch.Options)...)
	}
	if patch.TargetTrait != nil {
		q.TargetTrait = *patch.TargetTrait
	}
	cp := *q
	return &cp, nil
}

// FindQuestionByID returns the question with the given id.
func (m *Store) FindQuestionByID(_ context.Context, id string) (*entities.ProfilingQuestion, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	q, ok := m.Questions[id]
	if !ok {
		return nil, entities.ErrNotFound
	}
	cp := *q
	return &cp, nil
}

// ListQuestions returns every question.
func (m *Store) ListQuestions(_ context.Context) ([]entities.ProfilingQuestion, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.ProfilingQuestion, 0, len(m.Questions))
	for _, q := range m.Questions {
		result = append(result, *q)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

// DeleteQuestion removes a question, leaving past answers in place.
func (m *Store) DeleteQuestion(_ context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Questions[id]; !ok {
		return entities.ErrNotFound
	}
	delete(m.Questions, id)
	return nil
}

// CountQuestions returns the number of questions in the bank.
func (m *Store) CountQuestions(_ context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Questions), nil
}

// SaveInteraction stores an interaction together with its answers.
func (m *Store) SaveInteraction(_ context.Context, it *entities.Interaction) error {
	if m.Err != nil {
		return m.Err
	}
	cp := *it
	cp.Answers = append([]entities.InteractionAnswer(nil), it.Answers...)
	m.Interactions[it.ID] = &cp
	return nil
}

// ListInteractionsForPerson returns the person's interactions, newest first.
func (m *Store) ListInteractionsForPerson(_ context.Context, personID string) ([]entities.Interaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.Interaction, 0, len(m.Interactions))
	for _, it := range m.Interactions {
		if it.PersonID == personID {
			result = append(result, *it)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EntryDate.After(result[j].EntryDate) })
	return result, nil
}

// ListInteractions returns every interaction.
func (m *Store) ListInteractions(_ context.Context) ([]entities.Interaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.Interaction, 0, len(m.Interactions))
	for _, it := range m.Interactions {
		result = append(result, *it)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EntryDate.After(result[j].EntryDate) })
	return result, nil
}

// LastContactDates returns the newest interaction entry date per person.
func (m *Store) LastContactDates(_ context.Context) (map[string]time.Time, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	last := make(map[string]time.Time)
	for _, it := range m.Interactions {
		if cur, ok := last[it.PersonID]; !ok || it.EntryDate.After(cur) {
			last[it.PersonID] = it.EntryDate
		}
	}
	return last, nil
}

// ListAnswersForPerson returns every answer across the person's interactions.
func (m *Store) ListAnswersForPerson(_ context.Context, personID string) ([]entities.InteractionAnswer, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.InteractionAnswer
	for _, it := range m.Interactions {
		if it.PersonID == personID {
			result = append(result, it.Answers...)
		}
	}
	return result, nil
}

// SaveHistory inserts a life-event entry.
func (m *Store) SaveHistory(_ context.Context, h *entities.PersonHistory) error {
	if m.Err != nil {
		return m.Err
	}
	cp := *h
	m.History[h.ID] = &cp
	return nil
}

// ListHistoryForPerson returns the person's life events.
func (m *Store) ListHistoryForPerson(_ context.Context, personID string) ([]entities.PersonHistory, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.PersonHistory, 0)
	for _, h := range m.History {
		if h.PersonID == personID {
			result = append(result, *h)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

// DeleteHistory removes a life-event entry by id.
func (m *Store) DeleteHistory(_ context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.History[id]; !ok {
		return entities.ErrNotFound
	}
	delete(m.History, id)
	return nil
}

// SaveProfilingNote inserts a personality-analysis note.
func (m *Store) SaveProfilingNote(_ context.Context, n *entities.ProfilingNote) error {
	if m.Err != nil {
		return m.Err
	}
	cp := *n
	m.Notes[n.ID] = &cp
	return nil
}

// ListProfilingNotesForPerson returns the person's analysis notes.
func (m *Store) ListProfilingNotesForPerson(_ context.Context, personID string) ([]entities.ProfilingNote, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.ProfilingNote, 0)
	for _, n := range m.Notes {
		if n.PersonID == personID {
			result = append(result, *n)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

// DeleteProfilingNote removes an analysis note by id.
func (m *Store) DeleteProfilingNote(_ context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Notes[id]; !ok {
		return entities.ErrNotFound
	}
	delete(m.Notes, id)
	return nil
}

// sortRelationships gives edge listings a stable order for tests.
func sortRelationships(rels []entities.Relationship) {
	sort.Slice(rels, func(i, j int) bool {
		if rels[i].PersonAID != rels[j].PersonAID {
			return rels[i].PersonAID < rels[j].PersonAID
		}
		return rels[i].PersonBID < rels[j].PersonBID
	})
}
