package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/kizuna-core/internal/application/handlers"
	"github.com/ersonp/kizuna-core/internal/domain/services"
)

func newGraphCmd() *cobra.Command {
	var (
		opts   handlers.GraphOptions
		format string
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the relationship graph",
		Long: `Derives a view of the relationship graph. Modes:
  global - everyone and every relationship
  group  - only members of --group and the relationships among them
  ego    - --center, their direct contacts and the relationships among them

Examples:
  kizuna graph
  kizuna graph --mode group --group work
  kizuna graph --mode ego --center 佐藤 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd, opts, format)
		},
	}

	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "global", "View mode (global, group, ego)")
	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Group label (group mode)")
	cmd.Flags().StringVarP(&opts.Center, "center", "c", "", "Center person (ego mode)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json)")

	return cmd
}

func runGraph(cmd *cobra.Command, opts handlers.GraphOptions, format string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		view, err := d.Graph.HandleGraph(ctx, opts)
		if err != nil {
			return fmt.Errorf("building graph: %w", err)
		}

		switch format {
		case "json":
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(view)
		case "text":
			displayGraph(view)
			return nil
		default:
			return fmt.Errorf("invalid format %q (valid: text, json)", format)
		}
	})
}

func displayGraph(view *services.GraphView) {
	fmt.Printf("Graph (%s): %d nodes, %d edges\n\n", view.Mode, len(view.Nodes), len(view.Edges))

	labels := make(map[string]string, len(view.Nodes))
	for _, n := range view.Nodes {
		labels[n.ID] = n.Label
		switch n.Class {
		case services.NodeClassSelf:
			fmt.Printf("  * %s (you)\n", n.Label)
		case services.NodeClassCentered:
			fmt.Printf("  * %s (center)\n", n.Label)
		default:
			fmt.Printf("  - %s\n", n.Label)
		}
	}

	if len(view.Edges) == 0 {
		return
	}
	fmt.Println()
	for _, e := range view.Edges {
		line := fmt.Sprintf("  %s -[%s]- %s", labels[e.From], e.Label, labels[e.To])
		if e.Class != services.EdgeClassNeutral {
			line += fmt.Sprintf(" (%s)", e.Class)
		}
		fmt.Println(line)
	}
}
