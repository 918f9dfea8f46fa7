// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/services"
)

// resolvePerson turns a CLI person reference into a record. A reference is
// tried as an id first, then matched case-insensitively against display
// names, kana readings and nicknames. An ambiguous name is an error rather
// than a guess.
func resolvePerson(ctx context.Context, people *services.PersonService, ref string) (*entities.Person, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, &entities.ValidationError{Field: "person", Reason: "required"}
	}

	p, err := people.Get(ctx, ref)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, entities.ErrNotFound) {
		return nil, err
	}

	all, err := people.List(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(ref)
	var matches []*entities.Person
	for _, candidate := range all {
		if personMatches(candidate, needle) {
			matches = append(matches, candidate)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no person matching %q: %w", ref, entities.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = fmt.Sprintf("%s (%s)", m.DisplayName(), m.ID)
		}
		return nil, fmt.Errorf("%q is ambiguous: %s", ref, strings.Join(names, ", "))
	}
}

func personMatches(p *entities.Person, needle string) bool {
	for _, s := range []string{
		p.DisplayName(),
		p.FamilyName,
		p.GivenName,
		p.FamilyNameKana + " " + p.GivenNameKana,
		p.Nickname,
	} {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" && strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
