package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/ports"
	"github.com/ersonp/kizuna-core/internal/domain/services"
)

// PersonHandler handles person directory operations.
type PersonHandler struct {
	people        *services.PersonService
	filter        *services.FilterService
	relationships *services.RelationshipService
	history       *services.HistoryService
	profiling     *services.ProfilingService
}

// NewPersonHandler creates a new PersonHandler.
func NewPersonHandler(
	people *services.PersonService,
	filter *services.FilterService,
	relationships *services.RelationshipService,
	history *services.HistoryService,
	profiling *services.ProfilingService,
) *PersonHandler {
	return &PersonHandler{
		people:        people,
		filter:        filter,
		relationships: relationships,
		history:       history,
		profiling:     profiling,
	}
}

// AddInput carries raw CLI field values for a new person.
type AddInput struct {
	FamilyName     string
	GivenName      string
	FamilyNameKana string
	GivenNameKana  string
	Nickname       string
	Gender         string
	BloodType      string
	Status         string
	BirthDate      string // "2006", "2006-01" or "2006-01-02"
	FirstMet       string
	Groups         string // comma-separated labels
	Notes          string
	IsSelf         bool
}

// HandleAdd parses the raw input and registers a new person.
func (h *PersonHandler) HandleAdd(ctx context.Context, in AddInput) (*entities.Person, error) {
	birth, err := entities.ParsePartialDate(in.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("birth date: %w", err)
	}
	firstMet, err := entities.ParsePartialDate(in.FirstMet)
	if err != nil {
		return nil, fmt.Errorf("first met: %w", err)
	}

	return h.people.Create(ctx, &entities.Person{
		FamilyName:     strings.TrimSpace(in.FamilyName),
		GivenName:      strings.TrimSpace(in.GivenName),
		FamilyNameKana: strings.TrimSpace(in.FamilyNameKana),
		GivenNameKana:  strings.TrimSpace(in.GivenNameKana),
		Nickname:       strings.TrimSpace(in.Nickname),
		Gender:         strings.TrimSpace(in.Gender),
		BloodType:      strings.TrimSpace(in.BloodType),
		Status:         strings.TrimSpace(in.Status),
		BirthDate:      birth,
		FirstMet:       firstMet,
		Groups:         entities.SplitGroups(in.Groups),
		Notes:          in.Notes,
		IsSelf:         in.IsSelf,
	})
}

// EditInput carries raw CLI field values for a partial edit. Nil fields are
// left untouched; an empty string clears the field.
type EditInput struct {
	FamilyName     *string
	GivenName      *string
	FamilyNameKana *string
	GivenNameKana  *string
	Nickname       *string
	Gender         *string
	BloodType      *string
	Status         *string
	BirthDate      *string
	FirstMet       *string
	Groups         *string
	Notes          *string
	Strategy       *string
	Prediction     *string
	IsSelf         *bool
}

// HandleEdit resolves the reference, parses the raw input and applies the
// partial update.
func (h *PersonHandler) HandleEdit(ctx context.Context, ref string, in EditInput) (*entities.Person, error) {
	p, err := resolvePerson(ctx, h.people, ref)
	if err != nil {
		return nil, err
	}

	patch := ports.PersonPatch{
		FamilyName:     in.FamilyName,
		GivenName:      in.GivenName,
		FamilyNameKana: in.FamilyNameKana,
		GivenNameKana:  in.GivenNameKana,
		Nickname:       in.Nickname,
		Gender:         in.Gender,
		BloodType:      in.BloodType,
		Status:         in.Status,
		Notes:          in.Notes,
		Strategy:       in.Strategy,
		Prediction:     in.Prediction,
		IsSelf:         in.IsSelf,
	}
	if in.BirthDate != nil {
		birth, err := entities.ParsePartialDate(*in.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("birth date: %w", err)
		}
		patch.BirthDate = &birth
	}
	if in.FirstMet != nil {
		firstMet, err := entities.ParsePartialDate(*in.FirstMet)
		if err != nil {
			return nil, fmt.Errorf("first met: %w", err)
		}
		patch.FirstMet = &firstMet
	}
	if in.Groups != nil {
		groups := entities.SplitGroups(*in.Groups)
		patch.Groups = &groups
	}

	return h.people.Update(ctx, p.ID, patch)
}

// PersonDetail is the assembled profile card for one person.
type PersonDetail struct {
	Person        *entities.Person                `json:"person"`
	Age           *int                            `json:"age,omitempty"`
	Relationships []entities.OrientedRelationship `json:"relationships,omitempty"`
	History       []entities.PersonHistory        `json:"history,omitempty"`
	Notes         []entities.ProfilingNote        `json:"profiling_notes,omitempty"`
	Completion    []entities.CategoryCompletion   `json:"completion,omitempty"`
}

// HandleShow resolves the reference and assembles the full profile card.
func (h *PersonHandler) HandleShow(ctx context.Context, ref string) (*PersonDetail, error) {
	p, err := resolvePerson(ctx, h.people, ref)
	if err != nil {
		return nil, err
	}

	detail := &PersonDetail{Person: p}
	if age, ok := p.AgeAt(time.Now()); ok {
		detail.Age = &age
	}

	if detail.Relationships, err = h.relationships.ListForPerson(ctx, p.ID); err != nil {
		return nil, err
	}
	if detail.History, err = h.history.ListForPerson(ctx, p.ID); err != nil {
		return nil, err
	}
	if detail.Notes, err = h.profiling.ListNotes(ctx, p.ID); err != nil {
		return nil, err
	}
	if detail.Completion, err = h.profiling.CompletionByCategory(ctx, p.ID); err != nil {
		return nil, err
	}
	return detail, nil
}

// HandleList returns people matching the --where expressions, ordered per the
// --sort expression.
func (h *PersonHandler) HandleList(ctx context.Context, whereExprs []string, sortExpr string) ([]*entities.Person, error) {
	clauses, err := ParseWhere(whereExprs)
	if err != nil {
		return nil, err
	}
	sortBy, err := ParseSort(sortExpr)
	if err != nil {
		return nil, err
	}
	return h.filter.List(ctx, clauses, sortBy)
}

// HandleRemove resolves the reference and deletes the person with everything
// they own.
func (h *PersonHandler) HandleRemove(ctx context.Context, ref string) (*entities.Person, error) {
	p, err := resolvePerson(ctx, h.people, ref)
	if err != nil {
		return nil, err
	}
	if err := h.people.Delete(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseWhere parses --where expressions like "age>=30", "group=work" or
// "name~sato" into filter clauses. Operators, longest first: >=, <=, ~, =.
func ParseWhere(exprs []string) ([]services.FilterClause, error) {
	clauses := make([]services.FilterClause, 0, len(exprs))
	for _, expr := range exprs {
		clause, err := parseWhereExpr(expr)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}
	return clauses, nil
}

func parseWhereExpr(expr string) (services.FilterClause, error) {
	ops := []struct {
		token string
		op    services.FilterOp
	}{
		{">=", services.OpAtLeast},
		{"<=", services.OpAtMost},
		{"~", services.OpContains},
		{"=", services.OpEquals},
	}
	for _, candidate := range ops {
		field, value, found := strings.Cut(expr, candidate.token)
		if !found {
			continue
		}
		return services.FilterClause{
			Field: services.FilterField(strings.TrimSpace(field)),
			Op:    candidate.op,
			Value: strings.TrimSpace(value),
		}, nil
	}
	return services.FilterClause{}, fmt.Errorf("invalid filter %q (expected field=value, field~value, field>=value or field<=value)", expr)
}

// ParseSort parses a --sort expression like "age" or "age:desc".
func ParseSort(expr string) (services.SortSpec, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return services.SortSpec{}, nil
	}

	field, dir, found := strings.Cut(expr, ":")
	spec := services.SortSpec{
		Field:     services.FilterField(strings.TrimSpace(field)),
		Direction: services.SortAsc,
	}
	if found {
		switch strings.TrimSpace(dir) {
		case "asc":
		case "desc":
			spec.Direction = services.SortDesc
		default:
			return services.SortSpec{}, fmt.Errorf("invalid sort direction %q (expected asc or desc)", dir)
		}
	}
	return spec, nil
}
