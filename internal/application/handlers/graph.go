package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/services"
)

// GraphHandler handles relationship graph view requests.
type GraphHandler struct {
	people *services.PersonService
	graph  *services.GraphService
}

// NewGraphHandler creates a new GraphHandler.
func NewGraphHandler(people *services.PersonService, graph *services.GraphService) *GraphHandler {
	return &GraphHandler{people: people, graph: graph}
}

// GraphOptions selects the view mode and its parameter.
type GraphOptions struct {
	Mode   string // global, group or ego
	Group  string // group mode: the group label
	Center string // ego mode: the center person reference
}

// HandleGraph derives the requested graph view.
func (h *GraphHandler) HandleGraph(ctx context.Context, opts GraphOptions) (*services.GraphView, error) {
	mode := services.GraphMode(strings.TrimSpace(opts.Mode))
	if mode == "" {
		mode = services.GraphModeGlobal
	}

	switch mode {
	case services.GraphModeGlobal:
		return h.graph.Global(ctx)
	case services.GraphModeGroup:
		if strings.TrimSpace(opts.Group) == "" {
			return nil, &entities.ValidationError{Field: "group", Reason: "required for group mode"}
		}
		return h.graph.Group(ctx, opts.Group)
	case services.GraphModeEgo:
		center, err := resolvePerson(ctx, h.people, opts.Center)
		if err != nil {
			return nil, err
		}
		return h.graph.Ego(ctx, center.ID)
	default:
		return nil, fmt.Errorf("unknown graph mode %q (valid: global, group, ego)", opts.Mode)
	}
}
