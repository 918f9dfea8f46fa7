package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/services"
)

// RelationshipHandler handles relationship graph operations.
type RelationshipHandler struct {
	people        *services.PersonService
	relationships *services.RelationshipService
}

// NewRelationshipHandler creates a new RelationshipHandler.
func NewRelationshipHandler(people *services.PersonService, relationships *services.RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{
		people:        people,
		relationships: relationships,
	}
}

// RelateInput carries the caller-facing edge fields: positions are read in
// from→to direction of the command arguments.
type RelateInput struct {
	Type        string
	Quality     string
	PositionOut string // from's role toward to, e.g. "senior"
	PositionIn  string // to's role toward from, e.g. "junior"
	Caution     bool
}

// HandleRelate resolves both references and creates or overwrites the single
// edge between them.
func (h *RelationshipHandler) HandleRelate(ctx context.Context, fromRef, toRef string, in RelateInput) (*entities.Relationship, error) {
	from, err := resolvePerson(ctx, h.people, fromRef)
	if err != nil {
		return nil, err
	}
	to, err := resolvePerson(ctx, h.people, toRef)
	if err != nil {
		return nil, err
	}

	return h.relationships.Upsert(ctx, services.UpsertInput{
		AID:        from.ID,
		BID:        to.ID,
		Type:       in.Type,
		Quality:    entities.Quality(in.Quality),
		PositionAB: in.PositionOut,
		PositionBA: in.PositionIn,
		Caution:    in.Caution,
	})
}

// RelationInfo pairs an oriented edge with the resolved other person.
type RelationInfo struct {
	entities.OrientedRelationship
	Other *entities.Person `json:"other"`
}

// HandleRelations returns the person's edges from their perspective, with the
// opposite endpoint resolved for display.
func (h *RelationshipHandler) HandleRelations(ctx context.Context, ref string) ([]RelationInfo, error) {
	p, err := resolvePerson(ctx, h.people, ref)
	if err != nil {
		return nil, err
	}

	oriented, err := h.relationships.ListForPerson(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	infos := make([]RelationInfo, 0, len(oriented))
	for _, o := range oriented {
		other, err := h.people.Get(ctx, o.OtherID)
		if err != nil {
			return nil, fmt.Errorf("resolving endpoint %s: %w", o.OtherID, err)
		}
		infos = append(infos, RelationInfo{OrientedRelationship: o, Other: other})
	}
	return infos, nil
}

// HandleBetween returns the edge between two people oriented from the first.
func (h *RelationshipHandler) HandleBetween(ctx context.Context, aRef, bRef string) (*entities.OrientedRelationship, error) {
	a, err := resolvePerson(ctx, h.people, aRef)
	if err != nil {
		return nil, err
	}
	b, err := resolvePerson(ctx, h.people, bRef)
	if err != nil {
		return nil, err
	}
	return h.relationships.Between(ctx, a.ID, b.ID)
}

// HandleUnrelate removes the edge between two people.
func (h *RelationshipHandler) HandleUnrelate(ctx context.Context, aRef, bRef string) error {
	rel, err := h.HandleBetween(ctx, aRef, bRef)
	if err != nil {
		return err
	}
	return h.relationships.Delete(ctx, rel.ID)
}
