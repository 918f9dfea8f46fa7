package entities

import "time"

// Quality rates how a relationship is going.
type Quality string

const (
	QualityGood        Quality = "good"
	QualityNeutral     Quality = "neutral"
	QualityBad         Quality = "bad"
	QualityComplicated Quality = "complicated"
)

// ValidQuality reports whether q is one of the closed quality set.
func ValidQuality(q Quality) bool {
	switch q {
	case QualityGood, QualityNeutral, QualityBad, QualityComplicated:
		return true
	}
	return false
}

// Relationship is an undirected edge between two people. Storage is
// canonical: PersonAID is always the smaller of the two ids, so at most one
// row can exist per unordered pair. The two position fields are relative to
// the stored a/b order; use Oriented to read them from either side.
type Relationship struct {
	ID         string    `json:"id"`
	PersonAID  string    `json:"person_a_id"`
	PersonBID  string    `json:"person_b_id"`
	Type       string    `json:"type"`
	Quality    Quality   `json:"quality"`
	PositionAB string    `json:"position_a_to_b,omitempty"`
	PositionBA string    `json:"position_b_to_a,omitempty"`
	Caution    bool      `json:"caution,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CanonicalPair orders two person ids into storage order.
func CanonicalPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// Involves reports whether the edge touches the given person.
func (r *Relationship) Involves(personID string) bool {
	return r.PersonAID == personID || r.PersonBID == personID
}

// OrientedRelationship is a relationship as seen from one endpoint.
type OrientedRelationship struct {
	Relationship
	// OtherID is the endpoint opposite the requested person.
	OtherID string `json:"other_id"`
	// PositionOut is the requested person's role toward the other.
	PositionOut string `json:"position_out,omitempty"`
	// PositionIn is the other person's role toward the requested person.
	PositionIn string `json:"position_in,omitempty"`
}

// Oriented re-derives the caller-facing direction of the edge from the given
// person's perspective. Returns false when the person is not an endpoint.
func (r *Relationship) Oriented(fromID string) (OrientedRelationship, bool) {
	switch fromID {
	case r.PersonAID:
		return OrientedRelationship{
			Relationship: *r,
			OtherID:      r.PersonBID,
			PositionOut:  r.PositionAB,
			PositionIn:   r.PositionBA,
		}, true
	case r.PersonBID:
		return OrientedRelationship{
			Relationship: *r,
			OtherID:      r.PersonAID,
			PositionOut:  r.PositionBA,
			PositionIn:   r.PositionAB,
		}, true
	}
	return OrientedRelationship{}, false
}
