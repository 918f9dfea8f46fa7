// Package ports defines the interfaces between the domain and infrastructure.
package ports

import (
	"context"
	"time"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
)

// PersonPatch is a partial person update. Only non-nil fields are applied.
type PersonPatch struct {
	FamilyName     *string
	GivenName      *string
	FamilyNameKana *string
	GivenNameKana  *string
	Nickname       *string
	Gender         *string
	BloodType      *string
	Status         *string
	BirthDate      *entities.PartialDate
	FirstMet       *entities.PartialDate
	Groups         *[]string
	AvatarPath     *string
	IsSelf         *bool
	Notes          *string
	Strategy       *string
	Prediction     *string
}

// QuestionPatch is a partial profiling-question update.
type QuestionPatch struct {
	Category    *string
	Text        *string
	Criteria    *string
	AnswerType  *entities.AnswerType
	Options     *[]string
	TargetTrait *string
}

// Store is the persistent entity store: the single source of truth every
// derived view reads from. All mutations are immediately visible to
// subsequent reads. Lookups on unknown ids return entities.ErrNotFound.
type Store interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// People

	// SavePerson inserts a new person.
	SavePerson(ctx context.Context, p *entities.Person) error

	// UpdatePerson applies the non-nil patch fields and returns the updated row.
	UpdatePerson(ctx context.Context, id string, patch PersonPatch) (*entities.Person, error)

	// FindPersonByID returns the person with the given id.
	FindPersonByID(ctx context.Context, id string) (*entities.Person, error)

	// FindSelf returns the person marked as the user themself.
	FindSelf(ctx context.Context) (*entities.Person, error)

	// ListPeople returns every person in directory order: kana readings
	// first, people without readings after, ties broken by raw name.
	ListPeople(ctx context.Context) ([]*entities.Person, error)

	// DeletePerson removes the person and cascades to their interactions,
	// answers, history, profiling notes and every relationship edge
	// touching them, in one transaction.
	DeletePerson(ctx context.Context, id string) error

	// Relationships

	// SaveRelationship inserts or overwrites an edge by id.
	SaveRelationship(ctx context.Context, rel *entities.Relationship) error

	// FindRelationshipBetween returns the unique edge for the unordered
	// pair {a, b}, regardless of argument order.
	FindRelationshipBetween(ctx context.Context, aID, bID string) (*entities.Relationship, error)

	// ListRelationshipsForPerson returns every edge touching the person.
	ListRelationshipsForPerson(ctx context.Context, personID string) ([]entities.Relationship, error)

	// ListRelationships returns every edge.
	ListRelationships(ctx context.Context) ([]entities.Relationship, error)

	// DeleteRelationship removes an edge by id.
	DeleteRelationship(ctx context.Context, id string) error

	// Profiling questions

	// SaveQuestion inserts a new profiling question.
	SaveQuestion(ctx context.Context, q *entities.ProfilingQuestion) error

	// UpdateQuestion applies the non-nil patch fields and returns the updated row.
	UpdateQuestion(ctx context.Context, id string, patch QuestionPatch) (*entities.ProfilingQuestion, error)

	// FindQuestionByID returns the question with the given id.
	FindQuestionByID(ctx context.Context, id string) (*entities.ProfilingQuestion, error)

	// ListQuestions returns every question.
	ListQuestions(ctx context.Context) ([]entities.ProfilingQuestion, error)

	// DeleteQuestion removes a question. Past answers referencing it are
	// kept and simply become unresolvable.
	DeleteQuestion(ctx context.Context, id string) error

	// CountQuestions returns the number of questions in the bank.
	CountQuestions(ctx context.Context) (int, error)

	// Interactions

	// SaveInteraction stores an interaction together with its answers in
	// one transaction; on error nothing is visible.
	SaveInteraction(ctx context.Context, it *entities.Interaction) error

	// ListInteractionsForPerson returns the person's interactions with
	// answers, newest entry date first.
	ListInteractionsForPerson(ctx context.Context, personID string) ([]entities.Interaction, error)

	// ListInteractions returns every interaction with answers.
	ListInteractions(ctx context.Context) ([]entities.Interaction, error)

	// LastContactDates returns the newest interaction entry date per person.
	// People with no interactions are absent from the map.
	LastContactDates(ctx context.Context) (map[string]time.Time, error)

	// ListAnswersForPerson returns every answer across the person's
	// interaction history.
	ListAnswersForPerson(ctx context.Context, personID string) ([]entities.InteractionAnswer, error)

	// Person history

	// SaveHistory inserts a life-event entry.
	SaveHistory(ctx context.Context, h *entities.PersonHistory) error

	// ListHistoryForPerson returns the person's life events.
	ListHistoryForPerson(ctx context.Context, personID string) ([]entities.PersonHistory, error)

	// DeleteHistory removes a life-event entry by id.
	DeleteHistory(ctx context.Context, id string) error

	// Profiling notes

	// SaveProfilingNote inserts a personality-analysis note.
	SaveProfilingNote(ctx context.Context, n *entities.ProfilingNote) error

	// ListProfilingNotesForPerson returns the person's analysis notes.
	ListProfilingNotesForPerson(ctx context.Context, personID string) ([]entities.ProfilingNote, error)

	// DeleteProfilingNote removes an analysis note by id.
	DeleteProfilingNote(ctx context.Context, id string) error
}
