package dag

import (
	"fmt"
	"io"

	graphlib "github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
)

// WriteDOT renders the graph in Graphviz DOT format. Edges point from a node
// to the nodes it depends on. Nodes listed in highlight are drawn filled.
func (g *Graph) WriteDOT(w io.Writer, highlight ...string) error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	marked := make(map[string]bool, len(highlight))
	for _, id := range highlight {
		marked[id] = true
	}

	out := graphlib.New(graphlib.StringHash, graphlib.Directed())
	for _, id := range g.order {
		opts := []func(*graphlib.VertexProperties){graphlib.VertexAttribute("shape", "box")}
		if marked[id] {
			opts = append(opts,
				graphlib.VertexAttribute("style", "filled"),
				graphlib.VertexAttribute("fillcolor", "lightcoral"))
		}
		if err := out.AddVertex(id, opts...); err != nil {
			return fmt.Errorf("failed to add vertex %s: %w", id, err)
		}
	}
	for _, id := range g.order {
		for _, dep := range g.nodes[id].deps.ids {
			if err := out.AddEdge(id, dep); err != nil {
				return fmt.Errorf("failed to add edge %s -> %s: %w", id, dep, err)
			}
		}
	}

	if err := draw.DOT(out, w); err != nil {
		return fmt.Errorf("failed to render DOT: %w", err)
	}
	return nil
}
