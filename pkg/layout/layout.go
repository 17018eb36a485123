package layout

import (
	"math/rand/v2"
	"time"

	"github.com/ritzau/folia-viewer/pkg/graph"
	"github.com/ritzau/folia-viewer/pkg/logging"
	"github.com/ritzau/folia-viewer/pkg/model"
)

// Result is a complete initial placement of a graph.
type Result struct {
	Positions  Positions
	Components []graph.Component
	Boxes      []Box

	Iterations      int // summed over all components
	CollisionPasses int
	Duration        time.Duration
}

// Run lays out g: components are packed one per box, solved independently,
// and then separated by a collision pass over the whole graph. Every node of
// g has a position in the result.
func Run(g *model.Graph, cfg Config, rng *rand.Rand) *Result {
	start := time.Now()

	components := graph.Components(g)
	boxes := Pack(len(components), cfg)
	positions := make(Positions, len(g.Nodes))

	componentOf := make(map[string]int, len(g.Nodes))
	for ci, c := range components {
		for _, id := range c.NodeIDs {
			componentOf[id] = ci
		}
	}
	linksOf := make([][]*model.Link, len(components))
	for _, l := range g.Edges {
		ci, ok := componentOf[l.Source]
		if !ok {
			continue
		}
		linksOf[ci] = append(linksOf[ci], l)
	}

	result := &Result{
		Positions:  positions,
		Components: components,
		Boxes:      boxes,
	}

	for ci, c := range components {
		nodes := make([]*model.Node, len(c.NodeIDs))
		for i, id := range c.NodeIDs {
			nodes[i] = g.Node(id)
		}
		Seed(nodes, boxes[ci], positions, cfg, rng)
		result.Iterations += Solve(c.NodeIDs, linksOf[ci], positions, cfg)
	}

	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	result.CollisionPasses = ResolveCollisions(ids, positions, cfg, nil)
	result.Duration = time.Since(start)

	logging.Debug("layout complete",
		"nodes", len(g.Nodes),
		"links", len(g.Edges),
		"components", len(components),
		"iterations", result.Iterations,
		"collisionPasses", result.CollisionPasses,
		"durationMs", result.Duration.Milliseconds())

	return result
}
