package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/ports"
)

// FilterField names a derived person attribute a clause can test.
type FilterField string

const (
	FieldName        FilterField = "name"
	FieldGroup       FilterField = "group"
	FieldStatus      FilterField = "status"
	FieldGender      FilterField = "gender"
	FieldAge         FilterField = "age"
	FieldLastContact FilterField = "last_contact"
)

// FilterOp is a clause operator.
type FilterOp string

const (
	OpContains FilterOp = "contains"
	OpEquals   FilterOp = "equals"
	OpAtLeast  FilterOp = "at_least"
	OpAtMost   FilterOp = "at_most"
)

// MaxFilterClauses bounds how many clauses one listing may combine.
const MaxFilterClauses = 4

// FilterClause tests one derived attribute against a value.
type FilterClause struct {
	Field FilterField
	Op    FilterOp
	Value string
}

// SortDirection orders a filtered listing.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortSpec picks the ordering applied after filtering. An empty field keeps
// the directory collation order.
type SortSpec struct {
	Field     FilterField
	Direction SortDirection
}

// FilterService evaluates attribute filters over the person directory. It is
// a pure read component; clauses compose with logical AND, and a clause on an
// undefined attribute value never matches.
type FilterService struct {
	store ports.Store
	// now is swappable for deterministic age tests.
	now func() time.Time
}

// NewFilterService creates a new FilterService.
func NewFilterService(store ports.Store) *FilterService {
	return &FilterService{store: store, now: time.Now}
}

// List returns the people passing every clause, ordered per the sort spec.
func (s *FilterService) List(ctx context.Context, clauses []FilterClause, sortBy SortSpec) ([]*entities.Person, error) {
	if len(clauses) > MaxFilterClauses {
		return nil, &entities.ValidationError{
			Field:  "filter",
			Reason: fmt.Sprintf("at most %d clauses, got %d", MaxFilterClauses, len(clauses)),
		}
	}
	for _, c := range clauses {
		if err := validateClause(c); err != nil {
			return nil, err
		}
	}

	people, err := s.store.ListPeople(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	lastContact, err := s.store.LastContactDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading last-contact dates: %w", err)
	}

	ref := s.now()
	matched := make([]*entities.Person, 0, len(people))
	for _, p := range people {
		if s.matchesAll(p, clauses, lastContact, ref) {
			matched = append(matched, p)
		}
	}

	s.sortPeople(matched, sortBy, lastContact, ref)
	return matched, nil
}

func validateClause(c FilterClause) error {
	switch c.Field {
	case FieldName, FieldGroup, FieldStatus, FieldGender, FieldAge, FieldLastContact:
	default:
		return &entities.ValidationError{Field: "filter", Reason: fmt.Sprintf("unknown field %q", c.Field)}
	}
	switch c.Op {
	case OpContains, OpEquals, OpAtLeast, OpAtMost:
	default:
		return &entities.ValidationError{Field: "filter", Reason: fmt.Sprintf("unknown operator %q", c.Op)}
	}
	return nil
}

func (s *FilterService) matchesAll(p *entities.Person, clauses []FilterClause, lastContact map[string]time.Time, ref time.Time) bool {
	for _, c := range clauses {
		if !s.matches(p, c, lastContact, ref) {
			return false
		}
	}
	return true
}

func (s *FilterService) matches(p *entities.Person, c FilterClause, lastContact map[string]time.Time, ref time.Time) bool {
	switch c.Field {
	case FieldName:
		return matchName(p, c)
	case FieldGroup:
		// Group membership is exact element match, never substring: a
		// person tagged "homework" does not match group "work".
		return p.InGroup(c.Value)
	case FieldStatus:
		return matchString(p.Status, c)
	case FieldGender:
		return matchString(p.Gender, c)
	case FieldAge:
		age, ok := p.AgeAt(ref)
		if !ok {
			return false
		}
		return matchNumber(float64(age), c)
	case FieldLastContact:
		last, ok := lastContact[p.ID]
		if !ok {
			return false
		}
		return matchDate(last, c)
	}
	return false
}

// matchName tests the clause against the person's names; contains also
// covers the kana readings and the nickname, the way the directory search did.
func matchName(p *entities.Person, c FilterClause) bool {
	switch c.Op {
	case OpEquals:
		return p.DisplayName() == c.Value
	case OpContains:
		needle := strings.ToLower(c.Value)
		for _, hay := range []string{p.DisplayName(), p.FamilyNameKana, p.GivenNameKana, p.Nickname} {
			if hay != "" && strings.Contains(strings.ToLower(hay), needle) {
				return true
			}
		}
		return false
	case OpAtLeast:
		return p.DisplayName() >= c.Value
	case OpAtMost:
		return p.DisplayName() <= c.Value
	}
	return false
}

func matchString(value string, c FilterClause) bool {
	if value == "" {
		return false
	}
	switch c.Op {
	case OpContains:
		return strings.Contains(strings.ToLower(value), strings.ToLower(c.Value))
	case OpEquals:
		return value == c.Value
	case OpAtLeast:
		return value >= c.Value
	case OpAtMost:
		return value <= c.Value
	}
	return false
}

// matchNumber compares a numeric attribute. An unparseable clause value is
// not an error; the clause simply never matches.
func matchNumber(value float64, c FilterClause) bool {
	switch c.Op {
	case OpContains:
		return strings.Contains(strconv.FormatFloat(value, 'f', -1, 64), c.Value)
	case OpEquals, OpAtLeast, OpAtMost:
		want, err := strconv.ParseFloat(strings.TrimSpace(c.Value), 64)
		if err != nil {
			return false
		}
		switch c.Op {
		case OpEquals:
			return value == want
		case OpAtLeast:
			return value >= want
		case OpAtMost:
			return value <= want
		}
	}
	return false
}

// matchDate compares against the ISO date form (2006-01-02). Unparseable
// clause values never match, like malformed numbers.
func matchDate(value time.Time, c FilterClause) bool {
	iso := value.Format("2006-01-02")
	switch c.Op {
	case OpContains:
		return strings.Contains(iso, c.Value)
	case OpEquals, OpAtLeast, OpAtMost:
		want, err := time.Parse("2006-01-02", strings.TrimSpace(c.Value))
		if err != nil {
			return false
		}
		day := time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
		switch c.Op {
		case OpEquals:
			return day.Equal(want)
		case OpAtLeast:
			return !day.Before(want)
		case OpAtMost:
			return !day.After(want)
		}
	}
	return false
}

// sortKey extracts the comparable value for one sort field. ok is false when
// the person lacks the attribute; such people always sort last, regardless of
// direction.
func sortKey(p *entities.Person, field FilterField, lastContact map[string]time.Time, ref time.Time) (string, bool) {
	switch field {
	case FieldStatus:
		return p.Status, true
	case FieldGender:
		return p.Gender, true
	case FieldGroup:
		return entities.JoinGroups(p.Groups), true
	case FieldAge:
		age, ok := p.AgeAt(ref)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%06d", age), true
	case FieldLastContact:
		last, ok := lastContact[p.ID]
		if !ok {
			return "", false
		}
		return last.UTC().Format(time.RFC3339), true
	}
	return "", true
}

// sortPeople orders the filtered subset. People lacking the sort attribute
// sort after those that have it even in descending order.
func (s *FilterService) sortPeople(people []*entities.Person, spec SortSpec, lastContact map[string]time.Time, ref time.Time) {
	if spec.Field == "" {
		return // ListPeople already applied directory order
	}

	sort.SliceStable(people, func(i, j int) bool {
		if spec.Field == FieldName {
			if spec.Direction == SortDesc {
				return people[j].LessThan(people[i])
			}
			return people[i].LessThan(people[j])
		}

		keyI, okI := sortKey(people[i], spec.Field, lastContact, ref)
		keyJ, okJ := sortKey(people[j], spec.Field, lastContact, ref)
		if okI != okJ {
			return okI
		}
		if spec.Direction == SortDesc {
			return keyJ < keyI
		}
		return keyI < keyJ
	})
}
