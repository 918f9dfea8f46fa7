// Package entities contains core domain data structures.
package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PartialDate is a calendar date with partial knowledge: any component may be
// zero, meaning unknown. A known month or day without a known year is not
// meaningful and is treated as unknown.
type PartialDate struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`
	Day   int `json:"day,omitempty"`
}

// IsZero reports whether no component of the date is known.
func (d PartialDate) IsZero() bool {
	return d.Year == 0
}

// String renders the known components, e.g. "1990", "1990-06" or "1990-06-15".
func (d PartialDate) String() string {
	switch {
	case d.Year == 0:
		return ""
	case d.Month == 0:
		return fmt.Sprintf("%04d", d.Year)
	case d.Day == 0:
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	default:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
}

// ParsePartialDate parses "2006", "2006-01" or "2006-01-02" forms. An empty
// string parses to the zero date.
func ParsePartialDate(s string) (PartialDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PartialDate{}, nil
	}

	var d PartialDate
	parts := strings.Split(s, "-")
	if len(parts) > 3 {
		return PartialDate{}, fmt.Errorf("invalid date %q", s)
	}
	targets := []*int{&d.Year, &d.Month, &d.Day}
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return PartialDate{}, fmt.Errorf("invalid date %q", s)
		}
		*targets[i] = n
	}
	if d.Month > 12 || d.Day > 31 {
		return PartialDate{}, fmt.Errorf("invalid date %q", s)
	}
	return d, nil
}

// AgeAt computes the age in whole years at the reference date. When only the
// year is known the result is the plain year difference. Returns false when
// the year is unknown.
func (d PartialDate) AgeAt(ref time.Time) (int, bool) {
	if d.Year == 0 {
		return 0, false
	}
	age := ref.Year() - d.Year
	if d.Month != 0 && d.Day != 0 {
		if int(ref.Month()) < d.Month || (int(ref.Month()) == d.Month && ref.Day() < d.Day) {
			age--
		}
	}
	return age, true
}

// Person is someone the user tracks. Exactly one person may carry IsSelf.
type Person struct {
	ID             string      `json:"id"`
	FamilyName     string      `json:"family_name"`
	GivenName      string      `json:"given_name"`
	FamilyNameKana string      `json:"family_name_kana,omitempty"`
	GivenNameKana  string      `json:"given_name_kana,omitempty"`
	Nickname       string      `json:"nickname,omitempty"`
	Gender         string      `json:"gender,omitempty"`
	BloodType      string      `json:"blood_type,omitempty"`
	Status         string      `json:"status,omitempty"`
	BirthDate      PartialDate `json:"birth_date,omitzero"`
	// LegacyBirthDate carries the old single-column birth date from imports
	// predating partial dates. Used only as an age fallback.
	LegacyBirthDate *time.Time  `json:"legacy_birth_date,omitempty"`
	FirstMet        PartialDate `json:"first_met,omitzero"`
	Groups          []string    `json:"groups,omitempty"`
	AvatarPath      string      `json:"avatar_path,omitempty"`
	IsSelf          bool        `json:"is_self,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	Strategy        string      `json:"strategy,omitempty"`
	Prediction      string      `json:"prediction,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// DisplayName returns "FamilyName GivenName".
func (p *Person) DisplayName() string {
	return strings.TrimSpace(p.FamilyName + " " + p.GivenName)
}

// AgeAt computes the person's age at the reference date, preferring the
// partial birth date and falling back to the legacy single-column date.
func (p *Person) AgeAt(ref time.Time) (int, bool) {
	if !p.BirthDate.IsZero() {
		return p.BirthDate.AgeAt(ref)
	}
	if p.LegacyBirthDate != nil {
		b := *p.LegacyBirthDate
		return PartialDate{Year: b.Year(), Month: int(b.Month()), Day: b.Day()}.AgeAt(ref)
	}
	return 0, false
}

// InGroup reports whether the person belongs to the given group label.
// Membership is exact element match on the trimmed label, never substring.
func (p *Person) InGroup(group string) bool {
	group = strings.TrimSpace(group)
	if group == "" {
		return false
	}
	for _, g := range p.Groups {
		if strings.TrimSpace(g) == group {
			return true
		}
	}
	return false
}

// NormalizeGroups trims each label and drops empties, preserving order.
func NormalizeGroups(groups []string) []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		g = strings.TrimSpace(g)
		if g != "" {
			out = append(out, g)
		}
	}
	return out
}

// SplitGroups parses a comma-separated label list into normalized groups.
func SplitGroups(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return NormalizeGroups(strings.Split(s, ","))
}

// JoinGroups renders groups back to the comma-separated storage form.
func JoinGroups(groups []string) string {
	return strings.Join(NormalizeGroups(groups), ",")
}

// SortKey returns the collation key for person listings: kana names first,
// people without kana after, ties broken by the raw name.
func (p *Person) SortKey() []string {
	hasKana := "1"
	if p.FamilyNameKana != "" || p.GivenNameKana != "" {
		hasKana = "0"
	}
	return []string{hasKana, p.FamilyNameKana, p.GivenNameKana, p.FamilyName, p.GivenName}
}

// LessThan orders people per the directory collation rule.
func (p *Person) LessThan(other *Person) bool {
	a, b := p.SortKey(), other.SortKey()
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
