// Package sqlite provides a SQLite implementation of the Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/ports"
	"github.com/ersonp/kizuna-core/internal/infrastructure/config"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// Repository implements ports.Store using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- People (the contacts the user tracks, including themself)
	CREATE TABLE IF NOT EXISTS people (
		id TEXT PRIMARY KEY,
		family_name TEXT NOT NULL,
		given_name TEXT NOT NULL,
		family_name_kana TEXT NOT NULL DEFAULT '',
		given_name_kana TEXT NOT NULL DEFAULT '',
		nickname TEXT NOT NULL DEFAULT '',
		gender TEXT NOT NULL DEFAULT '',
		blood_type TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT '',
		birth_year INTEGER NOT NULL DEFAULT 0,
		birth_month INTEGER NOT NULL DEFAULT 0,
		birth_day INTEGER NOT NULL DEFAULT 0,
		legacy_birth_date TIMESTAMP,
		first_met_year INTEGER NOT NULL DEFAULT 0,
		first_met_month INTEGER NOT NULL DEFAULT 0,
		first_met_day INTEGER NOT NULL DEFAULT 0,
		groups TEXT NOT NULL DEFAULT '',
		avatar_path TEXT NOT NULL DEFAULT '',
		is_self INTEGER NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		strategy TEXT NOT NULL DEFAULT '',
		prediction TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_people_self ON people(is_self) WHERE is_self = 1;

	-- Relationship edges, stored canonically (person_a_id < person_b_id)
	CREATE TABLE IF NOT EXISTS relationships (
		id TEXT PRIMARY KEY,
		person_a_id TEXT NOT NULL REFERENCES people(id) ON DELETE CASCADE,
		person_b_id TEXT NOT NULL REFERENCES people(id) ON DELETE CASCADE,
		type TEXT NOT NULL DEFAULT '',
		quality TEXT NOT NULL DEFAULT '',
		position_ab TEXT NOT NULL DEFAULT '',
		position_ba TEXT NOT NULL DEFAULT '',
		caution INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(person_a_id, person_b_id)
	);
	CREATE INDEX IF NOT EXISTS idx_relationships_a ON relationships(person_a_id);
	CREATE INDEX IF NOT EXISTS idx_relationships_b ON relationships(person_b_id);

	-- Profiling question bank
	CREATE TABLE IF NOT EXISTS profiling_questions (
		id TEXT PRIMARY KEY,
		category TEXT NOT NULL,
		text TEXT NOT NULL,
		criteria TEXT NOT NULL DEFAULT '',
		answer_type TEXT NOT NULL,
		options TEXT,
		target_trait TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Interaction log
	CREATE TABLE IF NOT EXISTS interactions (
		id TEXT PRIMARY KEY,
		person_id TEXT NOT NULL REFERENCES people(id) ON DELETE CASCADE,
		entry_date TIMESTAMP NOT NULL,
		period_start TEXT NOT NULL DEFAULT '',
		period_end TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		channel TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		feeling TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_interactions_person ON interactions(person_id);
	CREATE INDEX IF NOT EXISTS idx_interactions_entry ON interactions(entry_date);

	-- Answers given during an interaction. question_id carries no foreign
	-- key: deleting a question must leave past answers in place.
	CREATE TABLE IF NOT EXISTS interaction_answers (
		id TEXT PRIMARY KEY,
		interaction_id TEXT NOT NULL REFERENCES interactions(id) ON DELETE CASCADE,
		question_id TEXT NOT NULL,
		value TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_answers_interaction ON interaction_answers(interaction_id);
	CREATE INDEX IF NOT EXISTS idx_answers_question ON interaction_answers(question_id);

	-- Dated life events per person
	CREATE TABLE IF NOT EXISTS person_history (
		id TEXT PRIMARY KEY,
		person_id TEXT NOT NULL REFERENCES people(id) ON DELETE CASCADE,
		date_year INTEGER NOT NULL DEFAULT 0,
		date_month INTEGER NOT NULL DEFAULT 0,
		date_day INTEGER NOT NULL DEFAULT 0,
		content TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_history_person ON person_history(person_id);

	-- Personality-analysis conclusions per person
	CREATE TABLE IF NOT EXISTS profiling_notes (
		id TEXT PRIMARY KEY,
		person_id TEXT NOT NULL REFERENCES people(id) ON DELETE CASCADE,
		framework TEXT NOT NULL,
		result TEXT NOT NULL,
		confidence TEXT NOT NULL DEFAULT '',
		evidence TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_notes_person ON profiling_notes(person_id);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// personColumns is the column list every person query selects, in scan order.
const personColumns = `id, family_name, given_name, family_name_kana, given_name_kana,
	nickname, gender, blood_type, status,
	birth_year, birth_month, birth_day, legacy_birth_date,
	first_met_year, first_met_month, first_met_day,
	groups, avatar_path, is_self, notes, strategy, prediction, created_at`

// SavePerson inserts a new person.
func (r *Repository) SavePerson(ctx context.Context, p *entities.Person) error {
	query := `
		INSERT INTO people (` + personColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	var legacy sql.NullTime
	if p.LegacyBirthDate != nil {
		legacy = sql.NullTime{Time: *p.LegacyBirthDate, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.FamilyName,
		p.GivenName,
		p.FamilyNameKana,
		p.GivenNameKana,
		p.Nickname,
		p.Gender,
		p.BloodType,
		p.Status,
		p.BirthDate.Year,
		p.BirthDate.Month,
		p.BirthDate.Day,
		legacy,
		p.FirstMet.Year,
		p.FirstMet.Month,
		p.FirstMet.Day,
		entities.JoinGroups(p.Groups),
		p.AvatarPath,
		p.IsSelf,
		p.Notes,
		p.Strategy,
		p.Prediction,
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving person: %w", err)
	}
	return nil
}

// UpdatePerson applies the non-nil patch fields and returns the updated row.
func (r *Repository) UpdatePerson(ctx context.Context, id string, patch ports.PersonPatch) (*entities.Person, error) {
	sets := make([]string, 0, 8)
	args := make([]any, 0, 8)
	set := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	setString := func(col string, v *string) {
		if v != nil {
			set(col, *v)
		}
	}

	setString("family_name", patch.FamilyName)
	setString("given_name", patch.GivenName)
	setString("family_name_kana", patch.FamilyNameKana)
	setString("given_name_kana", patch.GivenNameKana)
	setString("nickname", patch.Nickname)
	setString("gender", patch.Gender)
	setString("blood_type", patch.BloodType)
	setString("status", patch.Status)
	setString("avatar_path", patch.AvatarPath)
	setString("notes", patch.Notes)
	setString("strategy", patch.Strategy)
	setString("prediction", patch.Prediction)
	if patch.BirthDate != nil {
		set("birth_year", patch.BirthDate.Year)
		set("birth_month", patch.BirthDate.Month)
		set("birth_day", patch.BirthDate.Day)
	}
	if patch.FirstMet != nil {
		set("first_met_year", patch.FirstMet.Year)
		set("first_met_month", patch.FirstMet.Month)
		set("first_met_day", patch.FirstMet.Day)
	}
	if patch.Groups != nil {
		set("groups", entities.JoinGroups(*patch.Groups))
	}
	if patch.IsSelf != nil {
		set("is_self", *patch.IsSelf)
	}

	if len(sets) > 0 {
		query := fmt.Sprintf("UPDATE people SET %s WHERE id = ?", strings.Join(sets, ", "))
		args = append(args, id)
		result, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("updating person: %w", err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return nil, fmt.Errorf("person %s: %w", id, entities.ErrNotFound)
		}
	}

	return r.FindPersonByID(ctx, id)
}

// FindPersonByID returns the person with the given id.
func (r *Repository) FindPersonByID(ctx context.Context, id string) (*entities.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people WHERE id = ?`
	p, err := scanPerson(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("person %s: %w", id, entities.ErrNotFound)
	}
	return p, err
}

// FindSelf returns the person marked as the user themself.
func (r *Repository) FindSelf(ctx context.Context) (*entities.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people WHERE is_self = 1`
	p, err := scanPerson(r.db.QueryRowContext(ctx, query))
	if err == sql.ErrNoRows {
		return nil, entities.ErrNotFound
	}
	return p, err
}

// ListPeople returns every person in directory order. The kana-first
// collation can't be expressed in an ORDER BY, so rows are sorted in Go.
func (r *Repository) ListPeople(ctx context.Context) ([]*entities.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying people: %w", err)
	}
	defer rows.Close()

	result := make([]*entities.Person, 0, 16)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool { return result[i].LessThan(result[j]) })
	return result, nil
}

// DeletePerson removes the person. Foreign keys cascade the delete to their
// relationships, interactions, answers, history and profiling notes.
func (r *Repository) DeletePerson(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM people WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting person: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("person %s: %w", id, entities.ErrNotFound)
	}
	return nil
}

// scanPerson scans one person row.
func scanPerson(row rowScanner) (*entities.Person, error) {
	var p entities.Person
	var legacy sql.NullTime
	var groups string

	err := row.Scan(
		&p.ID,
		&p.FamilyName,
		&p.GivenName,
		&p.FamilyNameKana,
		&p.GivenNameKana,
		&p.Nickname,
		&p.Gender,
		&p.BloodType,
		&p.Status,
		&p.BirthDate.Year,
		&p.BirthDate.Month,
		&p.BirthDate.Day,
		&legacy,
		&p.FirstMet.Year,
		&p.FirstMet.Month,
		&p.FirstMet.Day,
		&groups,
		&p.AvatarPath,
		&p.IsSelf,
		&p.Notes,
		&p.Strategy,
		&p.Prediction,
		&p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning person: %w", err)
	}

	if legacy.Valid {
		t := legacy.Time
		p.LegacyBirthDate = &t
	}
	p.Groups = entities.SplitGroups(groups)
	return &p, nil
}

// SaveRelationship inserts or overwrites an edge by id.
func (r *Repository) SaveRelationship(ctx context.Context, rel *entities.Relationship) error {
	query := `
		INSERT INTO relationships (id, person_a_id, person_b_id, type, quality, position_ab, position_ba, caution, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			person_a_id = excluded.person_a_id,
			person_b_id = excluded.person_b_id,
			type = excluded.type,
			quality = excluded.quality,
			position_ab = excluded.position_ab,
			position_ba = excluded.position_ba,
			caution = excluded.caution
	`
	_, err := r.db.ExecContext(ctx, query,
		rel.ID,
		rel.PersonAID,
		rel.PersonBID,
		rel.Type,
		string(rel.Quality),
		rel.PositionAB,
		rel.PositionBA,
		rel.Caution,
		rel.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving relationship: %w", err)
	}
	return nil
}

// FindRelationshipBetween returns the unique edge for the unordered pair
// {a, b}, regardless of argument order.
func (r *Repository) FindRelationshipBetween(ctx context.Context, aID, bID string) (*entities.Relationship, error) {
	canonA, canonB := entities.CanonicalPair(aID, bID)
	query := `
		SELECT id, person_a_id, person_b_id, type, quality, position_ab, position_ba, caution, created_at
		FROM relationships
		WHERE person_a_id = ? AND person_b_id = ?
	`
	rel, err := scanRelationship(r.db.QueryRowContext(ctx, query, canonA, canonB))
	if err == sql.ErrNoRows {
		return nil, entities.ErrNotFound
	}
	return rel, err
}

// ListRelationshipsForPerson returns every edge touching the person.
func (r *Repository) ListRelationshipsForPerson(ctx context.Context, personID string) ([]entities.Relationship, error) {
	query := `
		SELECT id, person_a_id, person_b_id, type, quality, position_ab, position_ba, caution, created_at
		FROM relationships
		WHERE person_a_id = ? OR person_b_id = ?
		ORDER BY person_a_id, person_b_id
	`
	return r.queryRelationships(ctx, query, personID, personID)
}

// ListRelationships returns every edge.
func (r *Repository) ListRelationships(ctx context.Context) ([]entities.Relationship, error) {
	query := `
		SELECT id, person_a_id, person_b_id, type, quality, position_ab, position_ba, caution, created_at
		FROM relationships
		ORDER BY person_a_id, person_b_id
	`
	return r.queryRelationships(ctx, query)
}

// DeleteRelationship removes an edge by id.
func (r *Repository) DeleteRelationship(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM relationships WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting relationship: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("relationship %s: %w", id, entities.ErrNotFound)
	}
	return nil
}

// queryRelationships is a helper to execute relationship queries.
func (r *Repository) queryRelationships(ctx context.Context, query string, args ...any) ([]entities.Relationship, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying relationships: %w", err)
	}
	defer rows.Close()

	relationships := make([]entities.Relationship, 0, 16)
	for rows.Next() {
		rel, err := scanRelationship(rows)
		if err != nil {
			return nil, err
		}
		relationships = append(relationships, *rel)
	}
	return relationships, rows.Err()
}

// scanRelationship scans one relationship row.
func scanRelationship(row rowScanner) (*entities.Relationship, error) {
	var rel entities.Relationship
	var quality string

	err := row.Scan(
		&rel.ID,
		&rel.PersonAID,
		&rel.PersonBID,
		&rel.Type,
		&quality,
		&rel.PositionAB,
		&rel.PositionBA,
		&rel.Caution,
		&rel.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning relationship: %w", err)
	}

	rel.Quality = entities.Quality(quality)
	return &rel, nil
}

// SaveQuestion inserts a new profiling question.
func (r *Repository) SaveQuestion(ctx context.Context, q *entities.ProfilingQuestion) error {
	options, err := marshalOptions(q.Options)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO profiling_questions (id, category, text, criteria, answer_type, options, target_trait, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		q.ID,
		q.Category,
		q.Text,
		q.Criteria,
		string(q.AnswerType),
		options,
		q.TargetTrait,
		q.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving question: %w", err)
	}
	return nil
}

// UpdateQuestion applies the non-nil patch fields and returns the updated row.
func (r *Repository) UpdateQuestion(ctx context.Context, id string, patch ports.QuestionPatch) (*entities.ProfilingQuestion, error) {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 6)
	set := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}

	if patch.Category != nil {
		set("category", *patch.Category)
	}
	if patch.Text != nil {
		set("text", *patch.Text)
	}
	if patch.Criteria != nil {
		set("criteria", *patch.Criteria)
	}
	if patch.AnswerType != nil {
		set("answer_type", string(*patch.AnswerType))
	}
	if patch.Options != nil {
		options, err := marshalOptions(*patch.Options)
		if err != nil {
			return nil, err
		}
		set("options", options)
	}
	if patch.TargetTrait != nil {
		set("target_trait", *patch.TargetTrait)
	}

	if len(sets) > 0 {
		query := fmt.Sprintf("UPDATE profiling_questions SET %s WHERE id = ?", strings.Join(sets, ", "))
		args = append(args, id)
		result, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("updating question: %w", err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return nil, fmt.Errorf("question %s: %w", id, entities.ErrNotFound)
		}
	}

	return r.FindQuestionByID(ctx, id)
}

// FindQuestionByID returns the question with the given id.
func (r *Repository) FindQuestionByID(ctx context.Context, id string) (*entities.ProfilingQuestion, error) {
	query := `
		SELECT id, category, text, criteria, answer_type, options, target_trait, created_at
		FROM profiling_questions
		WHERE id = ?
	`
	q, err := scanQuestion(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("question %s: %w", id, entities.ErrNotFound)
	}
	return q, err
}

// ListQuestions returns every question, oldest first.
func (r *Repository) ListQuestions(ctx context.Context) ([]entities.ProfilingQuestion, error) {
	query := `
		SELECT id, category, text, criteria, answer_type, options, target_trait, created_at
		FROM profiling_questions
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying questions: %w", err)
	}
	defer rows.Close()

	questions := make([]entities.ProfilingQuestion, 0, 16)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

// DeleteQuestion removes a question. Past answers referencing it are kept.
func (r *Repository) DeleteQuestion(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM profiling_questions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting question: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("question %s: %w", id, entities.ErrNotFound)
	}
	return nil
}

// CountQuestions returns the number of questions in the bank.
func (r *Repository) CountQuestions(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiling_questions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting questions: %w", err)
	}
	return count, nil
}

// scanQuestion scans one question row.
func scanQuestion(row rowScanner) (*entities.ProfilingQuestion, error) {
	var q entities.ProfilingQuestion
	var answerType string
	var options sql.NullString

	err := row.Scan(
		&q.ID,
		&q.Category,
		&q.Text,
		&q.Criteria,
		&answerType,
		&options,
		&q.TargetTrait,
		&q.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning question: %w", err)
	}

	q.AnswerType = entities.AnswerType(answerType)
	if options.Valid && options.String != "" {
		if err := json.Unmarshal([]byte(options.String), &q.Options); err != nil {
			return nil, fmt.Errorf("unmarshaling options: %w", err)
		}
	}
	return &q, nil
}

// marshalOptions renders a question's option list to its storage form.
func marshalOptions(options []string) (sql.NullString, error) {
	if len(options) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(options)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshaling options: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// SaveInteraction stores an interaction together with its answers in one
// transaction; on error nothing is visible.
func (r *Repository) SaveInteraction(ctx context.Context, it *entities.Interaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO interactions (id, person_id, entry_date, period_start, period_end, category, channel, tags, content, feeling, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		it.ID,
		it.PersonID,
		it.EntryDate,
		it.PeriodStart,
		it.PeriodEnd,
		it.Category,
		it.Channel,
		entities.JoinGroups(it.Tags),
		it.Content,
		it.Feeling,
		it.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving interaction: %w", err)
	}

	answerQuery := `
		INSERT INTO interaction_answers (id, interaction_id, question_id, value)
		VALUES (?, ?, ?, ?)
	`
	for _, a := range it.Answers {
		if _, err := tx.ExecContext(ctx, answerQuery, a.ID, a.InteractionID, a.QuestionID, a.Value); err != nil {
			return fmt.Errorf("saving answer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing interaction: %w", err)
	}
	return nil
}

// ListInteractionsForPerson returns the person's interactions with answers,
// newest entry date first.
func (r *Repository) ListInteractionsForPerson(ctx context.Context, personID string) ([]entities.Interaction, error) {
	query := `
		SELECT id, person_id, entry_date, period_start, period_end, category, channel, tags, content, feeling, created_at
		FROM interactions
		WHERE person_id = ?
		ORDER BY entry_date DESC
	`
	return r.queryInteractions(ctx, query, personID)
}

// ListInteractions returns every interaction with answers.
func (r *Repository) ListInteractions(ctx context.Context) ([]entities.Interaction, error) {
	query := `
		SELECT id, person_id, entry_date, period_start, period_end, category, channel, tags, content, feeling, created_at
		FROM interactions
		ORDER BY entry_date DESC
	`
	return r.queryInteractions(ctx, query)
}

// queryInteractions executes an interaction query and attaches answers.
func (r *Repository) queryInteractions(ctx context.Context, query string, args ...any) ([]entities.Interaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying interactions: %w", err)
	}
	defer rows.Close()

	interactions := make([]entities.Interaction, 0, 16)
	for rows.Next() {
		var it entities.Interaction
		var tags string
		if err := rows.Scan(
			&it.ID,
			&it.PersonID,
			&it.EntryDate,
			&it.PeriodStart,
			&it.PeriodEnd,
			&it.Category,
			&it.Channel,
			&tags,
			&it.Content,
			&it.Feeling,
			&it.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning interaction: %w", err)
		}
		it.Tags = entities.SplitGroups(tags)
		interactions = append(interactions, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachAnswers(ctx, interactions); err != nil {
		return nil, err
	}
	return interactions, nil
}

// attachAnswers loads the answers for the given interactions in one query.
func (r *Repository) attachAnswers(ctx context.Context, interactions []entities.Interaction) error {
	if len(interactions) == 0 {
		return nil
	}

	index := make(map[string]int, len(interactions))
	placeholders := make([]string, len(interactions))
	args := make([]any, len(interactions))
	for i := range interactions {
		index[interactions[i].ID] = i
		placeholders[i] = "?"
		args[i] = interactions[i].ID
	}

	query := fmt.Sprintf(`
		SELECT id, interaction_id, question_id, value
		FROM interaction_answers
		WHERE interaction_id IN (%s)
		ORDER BY id
	`, strings.Join(placeholders, ","))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("querying answers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a entities.InteractionAnswer
		if err := rows.Scan(&a.ID, &a.InteractionID, &a.QuestionID, &a.Value); err != nil {
			return fmt.Errorf("scanning answer: %w", err)
		}
		if i, ok := index[a.InteractionID]; ok {
			interactions[i].Answers = append(interactions[i].Answers, a)
		}
	}
	return rows.Err()
}

// LastContactDates returns the newest interaction entry date per person.
// Aggregated in Go: MAX() strips the column type the driver needs to hand
// back a time.Time.
func (r *Repository) LastContactDates(ctx context.Context) (map[string]time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT person_id, entry_date FROM interactions`)
	if err != nil {
		return nil, fmt.Errorf("querying contact dates: %w", err)
	}
	defer rows.Close()

	last := make(map[string]time.Time)
	for rows.Next() {
		var personID string
		var entryDate time.Time
		if err := rows.Scan(&personID, &entryDate); err != nil {
			return nil, fmt.Errorf("scanning contact date: %w", err)
		}
		if cur, ok := last[personID]; !ok || entryDate.After(cur) {
			last[personID] = entryDate
		}
	}
	return last, rows.Err()
}

// ListAnswersForPerson returns every answer across the person's interactions.
func (r *Repository) ListAnswersForPerson(ctx context.Context, personID string) ([]entities.InteractionAnswer, error) {
	query := `
		SELECT a.id, a.interaction_id, a.question_id, a.value
		FROM interaction_answers a
		JOIN interactions i ON i.id = a.interaction_id
		WHERE i.person_id = ?
		ORDER BY a.id
	`
	rows, err := r.db.QueryContext(ctx, query, personID)
	if err != nil {
		return nil, fmt.Errorf("querying answers: %w", err)
	}
	defer rows.Close()

	var answers []entities.InteractionAnswer
	for rows.Next() {
		var a entities.InteractionAnswer
		if err := rows.Scan(&a.ID, &a.InteractionID, &a.QuestionID, &a.Value); err != nil {
			return nil, fmt.Errorf("scanning answer: %w", err)
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

// SaveHistory inserts a life-event entry.
func (r *Repository) SaveHistory(ctx context.Context, h *entities.PersonHistory) error {
	query := `
		INSERT INTO person_history (id, person_id, date_year, date_month, date_day, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		h.ID,
		h.PersonID,
		h.Date.Year,
		h.Date.Month,
		h.Date.Day,
		h.Content,
		h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}

// ListHistoryForPerson returns the person's life events, oldest first.
func (r *Repository) ListHistoryForPerson(ctx context.Context, personID string) ([]entities.PersonHistory, error) {
	query := `
		SELECT id, person_id, date_year, date_month, date_day, content, created_at
		FROM person_history
		WHERE person_id = ?
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, personID)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	events := make([]entities.PersonHistory, 0, 16)
	for rows.Next() {
		var h entities.PersonHistory
		if err := rows.Scan(
			&h.ID,
			&h.PersonID,
			&h.Date.Year,
			&h.Date.Month,
			&h.Date.Day,
			&h.Content,
			&h.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		events = append(events, h)
	}
	return events, rows.Err()
}

// DeleteHistory removes a life-event entry by id.
func (r *Repository) DeleteHistory(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM person_history WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting history: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("history %s: %w", id, entities.ErrNotFound)
	}
	return nil
}

// SaveProfilingNote inserts a personality-analysis note.
func (r *Repository) SaveProfilingNote(ctx context.Context, n *entities.ProfilingNote) error {
	query := `
		INSERT INTO profiling_notes (id, person_id, framework, result, confidence, evidence, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		n.PersonID,
		n.Framework,
		n.Result,
		string(n.Confidence),
		n.Evidence,
		n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving profiling note: %w", err)
	}
	return nil
}

// ListProfilingNotesForPerson returns the person's analysis notes, oldest first.
func (r *Repository) ListProfilingNotesForPerson(ctx context.Context, personID string) ([]entities.ProfilingNote, error) {
	query := `
		SELECT id, person_id, framework, result, confidence, evidence, created_at
		FROM profiling_notes
		WHERE person_id = ?
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, personID)
	if err != nil {
		return nil, fmt.Errorf("querying profiling notes: %w", err)
	}
	defer rows.Close()

	notes := make([]entities.ProfilingNote, 0, 16)
	for rows.Next() {
		var n entities.ProfilingNote
		var confidence string
		if err := rows.Scan(
			&n.ID,
			&n.PersonID,
			&n.Framework,
			&n.Result,
			&confidence,
			&n.Evidence,
			&n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning profiling note: %w", err)
		}
		n.Confidence = entities.Confidence(confidence)
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// DeleteProfilingNote removes an analysis note by id.
func (r *Repository) DeleteProfilingNote(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM profiling_notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting profiling note: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("profiling note %s: %w", id, entities.ErrNotFound)
	}
	return nil
}

// compile-time interface check
var _ ports.Store = (*Repository)(nil)
