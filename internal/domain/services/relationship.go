package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/ports"
	"github.com/google/uuid"
)

// RelationshipService maintains the undirected relationship graph. It is the
// only component besides the person directory that writes to the store.
type RelationshipService struct {
	store ports.Store
}

// NewRelationshipService creates a new RelationshipService.
func NewRelationshipService(store ports.Store) *RelationshipService {
	return &RelationshipService{store: store}
}

// UpsertInput carries the caller's view of an edge: positions are relative to
// the (AID, BID) order of this call, not to any stored row.
type UpsertInput struct {
	AID        string
	BID        string
	Type       string
	Quality    entities.Quality
	PositionAB string
	PositionBA string
	Caution    bool
}

// Upsert creates or overwrites the unique edge for the unordered pair
// {AID, BID}. Edges are stored canonically with the smaller id as person A,
// so an edit may arrive with either endpoint order: when the call order is
// reversed relative to canonical order the two positions swap before the
// write, which keeps "A's stance toward B" correct no matter which way a
// later edit passes the pair.
func (s *RelationshipService) Upsert(ctx context.Context, in UpsertInput) (*entities.Relationship, error) {
	if in.AID == in.BID {
		return nil, fmt.Errorf("%w (id %s)", entities.ErrInvalidEdge, in.AID)
	}
	if in.Quality == "" {
		in.Quality = entities.QualityNeutral
	}
	if !entities.ValidQuality(in.Quality) {
		return nil, &entities.ValidationError{Field: "quality", Reason: fmt.Sprintf("unknown quality %q", in.Quality)}
	}
	for _, id := range []string{in.AID, in.BID} {
		if _, err := s.store.FindPersonByID(ctx, id); err != nil {
			return nil, fmt.Errorf("looking up person %s: %w", id, err)
		}
	}

	canonA, canonB := entities.CanonicalPair(in.AID, in.BID)
	posAB, posBA := in.PositionAB, in.PositionBA
	if canonA != in.AID {
		posAB, posBA = posBA, posAB
	}

	rel := &entities.Relationship{
		PersonAID:  canonA,
		PersonBID:  canonB,
		Type:       in.Type,
		Quality:    in.Quality,
		PositionAB: posAB,
		PositionBA: posBA,
		Caution:    in.Caution,
	}

	existing, err := s.store.FindRelationshipBetween(ctx, canonA, canonB)
	switch {
	case errors.Is(err, entities.ErrNotFound):
		rel.ID = uuid.New().String()
		rel.CreatedAt = time.Now()
	case err != nil:
		return nil, fmt.Errorf("looking up existing edge: %w", err)
	default:
		rel.ID = existing.ID
		rel.CreatedAt = existing.CreatedAt
	}

	if err := s.store.SaveRelationship(ctx, rel); err != nil {
		return nil, fmt.Errorf("saving relationship: %w", err)
	}
	return rel, nil
}

// ListForPerson returns the person's edges oriented from their perspective.
func (s *RelationshipService) ListForPerson(ctx context.Context, personID string) ([]entities.OrientedRelationship, error) {
	rels, err := s.store.ListRelationshipsForPerson(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("listing relationships: %w", err)
	}

	oriented := make([]entities.OrientedRelationship, 0, len(rels))
	for i := range rels {
		if o, ok := rels[i].Oriented(personID); ok {
			oriented = append(oriented, o)
		}
	}
	return oriented, nil
}

// ListAll returns every edge in storage order.
func (s *RelationshipService) ListAll(ctx context.Context) ([]entities.Relationship, error) {
	return s.store.ListRelationships(ctx)
}

// Between returns the unique edge for the unordered pair, oriented from aID.
func (s *RelationshipService) Between(ctx context.Context, aID, bID string) (*entities.OrientedRelationship, error) {
	rel, err := s.store.FindRelationshipBetween(ctx, aID, bID)
	if err != nil {
		return nil, err
	}
	o, ok := rel.Oriented(aID)
	if !ok {
		return nil, entities.ErrNotFound
	}
	return &o, nil
}

// Delete removes an edge by id.
func (s *RelationshipService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteRelationship(ctx, id); err != nil {
		return fmt.Errorf("deleting relationship: %w", err)
	}
	return nil
}
