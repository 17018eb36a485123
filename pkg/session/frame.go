package session

import (
	"github.com/ritzau/folia-viewer/pkg/geometry"
	"github.com/ritzau/folia-viewer/pkg/model"
)

// Frame is a complete snapshot of what a session draws.
type Frame struct {
	SessionID string            `json:"sessionId"`
	GraphType model.GraphType   `json:"graphType"`
	Viewport  geometry.Viewport `json:"viewport"`
	NodeSize  float64           `json:"nodeSize"`
	Nodes     []FrameNode       `json:"nodes"`
	Edges     []FrameEdge       `json:"edges"`
	Skipped   int               `json:"skipped"`
}

// FrameNode is a drawn node.
type FrameNode struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	FullTitle  string           `json:"fullTitle"`
	EntityType model.EntityType `json:"entityType"`
	SmallText  bool             `json:"smallText,omitempty"`
	X          float64          `json:"x"`
	Y          float64          `json:"y"`
}

// FrameEdge is a drawn edge.
type FrameEdge struct {
	ID     string            `json:"id"`
	Source string            `json:"source"`
	Target string            `json:"target"`
	Label  string            `json:"label"`
	Style  model.EdgeStyle   `json:"style,omitempty"`
	Line   geometry.EdgeLine `json:"line"`
}

// Frame snapshots the session.
func (s *GraphSession) Frame() Frame {
	f := Frame{
		SessionID: s.id,
		GraphType: s.graph.Type,
		Viewport:  s.viewport,
		NodeSize:  s.opts.Layout.NodeSize,
		Nodes:     make([]FrameNode, 0, len(s.graph.Nodes)),
		Edges:     make([]FrameEdge, 0, len(s.graph.Edges)),
		Skipped:   s.graph.Skipped,
	}

	for _, n := range s.graph.Nodes {
		p := s.positions[n.ID]
		f.Nodes = append(f.Nodes, FrameNode{
			ID:         n.ID,
			Title:      n.TruncatedTitle(),
			FullTitle:  n.DisplayTitle(),
			EntityType: n.EntityType,
			SmallText:  n.SmallText(),
			X:          p.X,
			Y:          p.Y,
		})
	}
	for _, l := range s.graph.Edges {
		f.Edges = append(f.Edges, FrameEdge{
			ID:     l.ID,
			Source: l.Source,
			Target: l.Target,
			Label:  l.Label(),
			Style:  model.StyleFor(s.graph.Type, l),
			Line:   s.EdgeLine(l),
		})
	}
	return f
}
