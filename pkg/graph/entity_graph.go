// Package graph decomposes a render graph into connected components so each
// cluster can be laid out in its own box.
package graph

import (
	"slices"

	"github.com/ritzau/folia-viewer/pkg/model"
	gonumgraph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// EntityGraph is the undirected view of a model.Graph used for connectivity.
// Gonum node IDs are the nodes' provider-order indices.
type EntityGraph struct {
	graph *simple.UndirectedGraph
	ids   []string         // gonum ID -> node ID
	index map[string]int64 // node ID -> gonum ID
}

// NewEntityGraph builds the undirected adjacency of g. Direction is ignored
// and self-relations carry no connectivity, so they are left out.
func NewEntityGraph(g *model.Graph) *EntityGraph {
	eg := &EntityGraph{
		graph: simple.NewUndirectedGraph(),
		ids:   make([]string, 0, len(g.Nodes)),
		index: make(map[string]int64, len(g.Nodes)),
	}

	for i, n := range g.Nodes {
		id := int64(i)
		eg.ids = append(eg.ids, n.ID)
		eg.index[n.ID] = id
		eg.graph.AddNode(simple.Node(id))
	}

	for _, l := range g.Edges {
		from, okFrom := eg.index[l.Source]
		to, okTo := eg.index[l.Target]
		if !okFrom || !okTo || from == to {
			continue
		}
		if eg.graph.HasEdgeBetween(from, to) {
			continue
		}
		eg.graph.SetEdge(eg.graph.NewEdge(simple.Node(from), simple.Node(to)))
	}

	return eg
}

// NodeCount returns the number of nodes.
func (eg *EntityGraph) NodeCount() int {
	return len(eg.ids)
}

// Neighbors returns the node IDs adjacent to id in ascending provider order.
func (eg *EntityGraph) Neighbors(id string) []string {
	gid, ok := eg.index[id]
	if !ok {
		return nil
	}

	var neighbors []int64
	it := eg.graph.From(gid)
	for it.Next() {
		neighbors = append(neighbors, it.Node().ID())
	}
	slices.Sort(neighbors)

	result := make([]string, len(neighbors))
	for i, n := range neighbors {
		result[i] = eg.ids[n]
	}
	return result
}

// Component is a maximal set of mutually reachable nodes.
type Component struct {
	NodeIDs []string
}

// Size returns the number of member nodes.
func (c Component) Size() int {
	return len(c.NodeIDs)
}

// Components partitions the graph into connected components. Components come
// out in discovery order, a breadth-first walk started from each unvisited
// node in provider order. Members are listed in provider order.
func (eg *EntityGraph) Components() []Component {
	var components []Component

	bf := traverse.BreadthFirst{}
	for start := range eg.ids {
		startNode := simple.Node(int64(start))
		if bf.Visited(startNode) {
			continue
		}

		var members []int64
		bf.Visit = func(n gonumgraph.Node) {
			members = append(members, n.ID())
		}
		bf.Walk(eg.graph, startNode, nil)

		slices.Sort(members)
		c := Component{NodeIDs: make([]string, len(members))}
		for i, m := range members {
			c.NodeIDs[i] = eg.ids[m]
		}
		components = append(components, c)
	}

	return components
}

// Components is shorthand for NewEntityGraph(g).Components().
func Components(g *model.Graph) []Component {
	return NewEntityGraph(g).Components()
}
