package model

import (
	"strconv"
	"strings"
)

// Graph is the render model built from one provider response. Nodes keep
// provider order; Edges hold one outgoing line per directed (source, target)
// pair whose endpoints both exist.
type Graph struct {
	Type  GraphType
	Nodes []*Node
	Edges []*Link

	// Skipped counts edge records dropped because an endpoint was missing.
	Skipped int

	index map[string]int
}

// Link is a drawn edge: a deduplicated outgoing relation between two nodes.
type Link struct {
	ID     string   `json:"id"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Types  []string `json:"types"`
}

// Label joins the relation types carried by the link.
func (l *Link) Label() string {
	return strings.Join(l.Types, ", ")
}

// LinkID is the canonical identifier of the line drawn from source to target.
// The source length prefix keeps IDs containing "->" unambiguous.
func LinkID(source, target string) string {
	return strconv.Itoa(len(source)) + ":" + source + "->" + target
}

type linkKey struct{ source, target string }

// Build turns a provider response into a Graph. Only outgoing records are
// drawn, so the incoming twin of a relation never produces a second line.
// Duplicate node IDs keep their first occurrence.
func Build(data *GraphData, graphType GraphType) *Graph {
	g := &Graph{
		Type:  graphType,
		index: make(map[string]int),
	}
	if data == nil {
		return g
	}

	for i := range data.Nodes {
		n := data.Nodes[i]
		if n.ID == "" {
			continue
		}
		if _, exists := g.index[n.ID]; exists {
			continue
		}
		g.index[n.ID] = len(g.Nodes)
		g.Nodes = append(g.Nodes, &n)
	}

	links := make(map[linkKey]*Link)
	for _, e := range data.Edges {
		if e.Direction != DirectionOutgoing {
			continue
		}
		if !g.HasNode(e.Source) || !g.HasNode(e.Target) {
			g.Skipped++
			continue
		}

		key := linkKey{e.Source, e.Target}
		if l, ok := links[key]; ok {
			if e.Type != "" && !containsString(l.Types, e.Type) {
				l.Types = append(l.Types, e.Type)
			}
			continue
		}

		l := &Link{ID: LinkID(e.Source, e.Target), Source: e.Source, Target: e.Target}
		if e.Type != "" {
			l.Types = []string{e.Type}
		}
		links[key] = l
		g.Edges = append(g.Edges, l)
	}

	return g
}

// HasNode reports whether id is part of the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.Nodes[i]
}

// Index returns the provider-order position of id, or -1.
func (g *Graph) Index(id string) int {
	i, ok := g.index[id]
	if !ok {
		return -1
	}
	return i
}

// IncidentLinks maps every node ID to the links touching it.
func (g *Graph) IncidentLinks() map[string][]*Link {
	incident := make(map[string][]*Link, len(g.Nodes))
	for _, l := range g.Edges {
		incident[l.Source] = append(incident[l.Source], l)
		if l.Target != l.Source {
			incident[l.Target] = append(incident[l.Target], l)
		}
	}
	return incident
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
