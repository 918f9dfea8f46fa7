// Package services contains the domain logic of the relationship engine.
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

// PersonService manages the person directory.
type PersonService struct {
	store ports.Store
}

// NewPersonService creates a new PersonService.
func NewPersonService(store ports.Store) *PersonService {
	return &PersonService{store: store}
}

// Create validates and registers a new person, returning the stored record.
// Validation runs before any write: both name fields are required, and at
// most one person in the store may be marked as self.
func (s *PersonService) Create(ctx context.Context, p *entities.Person) (*entities.Person, error) {
	if p.FamilyName == "" {
		return nil, &entities.ValidationError{Field: "family_name", Reason: "required"}
	}
	if p.GivenName == "" {
		return nil, &entities.ValidationError{Field: "given_name", Reason: "required"}
	}
	if p.IsSelf {
		if err := s.ensureNoOtherSelf(ctx, ""); err != nil {
			return nil, err
		}
	}

	p.ID = uuid.New().String()
	p.Groups = entities.NormalizeGroups(p.Groups)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	if err := s.store.SavePerson(ctx, p); err != nil {
		return nil, fmt.Errorf("saving person: %w", err)
	}
	return p, nil
}

// Update applies a partial update; only supplied fields change.
func (s *PersonService) Update(ctx context.Context, id string, patch ports.PersonPatch) (*entities.Person, error) {
	if patch.FamilyName != nil && *patch.FamilyName == "" {
		return nil, &entities.ValidationError{Field: "family_name", Reason: "cannot be cleared"}
	}
	if patch.GivenName != nil && *patch.GivenName == "" {
		return nil, &entities.ValidationError{Field: "given_name", Reason: "cannot be cleared"}
	}
	if patch.IsSelf != nil && *patch.IsSelf {
		if err := s.ensureNoOtherSelf(ctx, id); err != nil {
			return nil, err
		}
	}
	if patch.Groups != nil {
		normalized := entities.NormalizeGroups(*patch.Groups)
		patch.Groups = &normalized
	}

	p, err := s.store.UpdatePerson(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("updating person: %w", err)
	}
	return p, nil
}

// Get returns the person with the given id.
func (s *PersonService) Get(ctx context.Context, id string) (*entities.Person, error) {
	return s.store.FindPersonByID(ctx, id)
}

// List returns everyone in directory order.
func (s *PersonService) List(ctx context.Context) ([]*entities.Person, error) {
	return s.store.ListPeople(ctx)
}

// Delete removes a person and everything they own: interactions with their
// answers, history, profiling notes and every relationship edge touching them.
func (s *PersonService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeletePerson(ctx, id); err != nil {
		return fmt.Errorf("deleting person: %w", err)
	}
	return nil
}

// ensureNoOtherSelf rejects marking a person as self when a different person
// already carries the marker.
func (s *PersonService) ensureNoOtherSelf(ctx context.Context, id string) error {
	existing, err := s.store.FindSelf(ctx)
	if errors.Is(err, entities.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("looking up self: %w", err)
	}
	if existing.ID != id {
		return &entities.ValidationError{
			Field:  "is_self",
			Reason: fmt.Sprintf("%s is already marked as self", existing.DisplayName()),
		}
	}
	return nil
}
