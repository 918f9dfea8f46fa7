package services

import (
	"context"
	"fmt"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/ports"
)

// GraphMode selects which slice of the relationship graph to derive.
type GraphMode string

const (
	GraphModeGlobal GraphMode = "global"
	GraphModeGroup  GraphMode = "group"
	GraphModeEgo    GraphMode = "ego"
)

// NodeClass is the display class of a graph node.
type NodeClass string

const (
	NodeClassDefault  NodeClass = "default"
	NodeClassCentered NodeClass = "centered"
	NodeClassSelf     NodeClass = "self"
)

// EdgeClass is the display class of a graph edge.
type EdgeClass string

const (
	EdgeClassPositive EdgeClass = "positive"
	EdgeClassNegative EdgeClass = "negative"
	EdgeClassNeutral  EdgeClass = "neutral"
	EdgeClassCaution  EdgeClass = "caution"
)

// GraphNode is one person prepared for the rendering widget.
type GraphNode struct {
	ID    string    `json:"id"`
	Label string    `json:"label"`
	Class NodeClass `json:"class"`
}

// GraphEdge is one relationship prepared for the rendering widget.
type GraphEdge struct {
	ID    string    `json:"id"`
	From  string    `json:"from"`
	To    string    `json:"to"`
	Label string    `json:"label,omitempty"`
	Class EdgeClass `json:"class"`
}

// GraphView is the derived node/edge subset for one display mode.
type GraphView struct {
	Mode  GraphMode   `json:"mode"`
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// GraphService derives graph views from snapshots of the store. It is a pure
// read component.
type GraphService struct {
	store ports.Store
}

// NewGraphService creates a new GraphService.
func NewGraphService(store ports.Store) *GraphService {
	return &GraphService{store: store}
}

// Global returns the whole graph: every person, every edge.
func (s *GraphService) Global(ctx context.Context) (*GraphView, error) {
	people, rels, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.build(GraphModeGlobal, people, rels, ""), nil
}

// Group returns the subgraph of people belonging to the given group label,
// with only the edges whose both endpoints are in the group.
func (s *GraphService) Group(ctx context.Context, group string) (*GraphView, error) {
	people, rels, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	members := make([]*entities.Person, 0, len(people))
	for _, p := range people {
		if p.InGroup(group) {
			members = append(members, p)
		}
	}
	return s.build(GraphModeGroup, members, rels, ""), nil
}

// Ego returns the depth-1 subgraph around the center: the center itself, its
// direct neighbors, and every edge among that node set. The center is always
// included even with zero relationships.
func (s *GraphService) Ego(ctx context.Context, centerID string) (*GraphView, error) {
	if _, err := s.store.FindPersonByID(ctx, centerID); err != nil {
		return nil, fmt.Errorf("looking up center: %w", err)
	}

	people, rels, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	included := map[string]bool{centerID: true}
	for i := range rels {
		if rels[i].Involves(centerID) {
			included[rels[i].PersonAID] = true
			included[rels[i].PersonBID] = true
		}
	}

	nodes := make([]*entities.Person, 0, len(included))
	for _, p := range people {
		if included[p.ID] {
			nodes = append(nodes, p)
		}
	}
	return s.build(GraphModeEgo, nodes, rels, centerID), nil
}

// build assembles the view from the selected node set: edges are kept only
// when both endpoints made it in, and display classes are derived here.
func (s *GraphService) build(mode GraphMode, people []*entities.Person, rels []entities.Relationship, centerID string) *GraphView {
	view := &GraphView{
		Mode:  mode,
		Nodes: make([]GraphNode, 0, len(people)),
		Edges: make([]GraphEdge, 0, len(rels)),
	}

	included := make(map[string]bool, len(people))
	for _, p := range people {
		included[p.ID] = true
		view.Nodes = append(view.Nodes, GraphNode{
			ID:    p.ID,
			Label: p.DisplayName(),
			Class: classifyNode(p, centerID),
		})
	}

	for i := range rels {
		r := &rels[i]
		if !included[r.PersonAID] || !included[r.PersonBID] {
			continue
		}
		view.Edges = append(view.Edges, GraphEdge{
			ID:    r.ID,
			From:  r.PersonAID,
			To:    r.PersonBID,
			Label: r.Type,
			Class: classifyEdge(r),
		})
	}
	return view
}

// classifyNode picks the node display class. Self wins over centered.
func classifyNode(p *entities.Person, centerID string) NodeClass {
	switch {
	case p.IsSelf:
		return NodeClassSelf
	case p.ID == centerID:
		return NodeClassCentered
	default:
		return NodeClassDefault
	}
}

// classifyEdge maps quality to a display class; caution overrides quality.
func classifyEdge(r *entities.Relationship) EdgeClass {
	if r.Caution {
		return EdgeClassCaution
	}
	switch r.Quality {
	case entities.QualityGood:
		return EdgeClassPositive
	case entities.QualityBad:
		return EdgeClassNegative
	default:
		return EdgeClassNeutral
	}
}

// snapshot reads the full person and relationship sets in one place.
func (s *GraphService) snapshot(ctx context.Context) ([]*entities.Person, []entities.Relationship, error) {
	people, err := s.store.ListPeople(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing people: %w", err)
	}
	rels, err := s.store.ListRelationships(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing relationships: %w", err)
	}
	return people, rels, nil
}
