// Package session holds the live state of one displayed graph: node
// positions, the viewport transform, and the pointer interaction state
// machine. A GraphSession is not safe for concurrent use; its owner must
// serialize calls.
package session

import (
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/ritzau/folia-viewer/pkg/geometry"
	"github.com/ritzau/folia-viewer/pkg/layout"
	"github.com/ritzau/folia-viewer/pkg/logging"
	"github.com/ritzau/folia-viewer/pkg/metrics"
	"github.com/ritzau/folia-viewer/pkg/model"
	"gonum.org/v1/gonum/spatial/r2"
)

// Options configures a new session.
type Options struct {
	Layout   layout.Config
	Viewport geometry.ViewportConfig
	// Rand drives layout seeding. Nil derives one from Layout.Seed.
	Rand *rand.Rand
}

// DefaultOptions returns the stock layout and viewport settings.
func DefaultOptions() Options {
	return Options{
		Layout:   layout.DefaultConfig(),
		Viewport: geometry.DefaultViewportConfig(),
	}
}

// GraphSession owns the position map, the viewport and the interaction
// state for one graph. Positions are written by the initial layout, by
// collision passes and by node drags, and nowhere else.
type GraphSession struct {
	id       string
	graph    *model.Graph
	layout   *layout.Result
	opts     Options
	renderer Renderer

	positions layout.Positions
	incident  map[string][]*model.Link
	viewport  geometry.Viewport

	mode       Mode
	panAnchor  r2.Vec // pointer minus pan at pointer-down
	dragID     string
	dragOffset r2.Vec // pointer model position minus node position
}

// New lays out g and draws it on renderer with a reset viewport.
func New(g *model.Graph, renderer Renderer, opts Options) *GraphSession {
	if renderer == nil {
		renderer = NopRenderer{}
	}
	rng := opts.Rand
	if rng == nil {
		rng = layout.NewRand(opts.Layout.Seed)
	}

	result := layout.Run(g, opts.Layout, rng)

	s := &GraphSession{
		id:        uuid.New().String(),
		graph:     g,
		layout:    result,
		opts:      opts,
		renderer:  renderer,
		positions: result.Positions,
		incident:  g.IncidentLinks(),
		viewport:  geometry.NewViewport(opts.Viewport),
	}
	s.RenderAll()

	logging.Debug("session created",
		"sessionID", s.id,
		"nodes", len(g.Nodes),
		"links", len(g.Edges),
		"skipped", g.Skipped)
	return s
}

// ID identifies the session; a new fetch always yields a new ID.
func (s *GraphSession) ID() string { return s.id }

// Graph returns the displayed graph.
func (s *GraphSession) Graph() *model.Graph { return s.graph }

// LayoutResult returns statistics of the initial layout.
func (s *GraphSession) LayoutResult() *layout.Result { return s.layout }

// Viewport returns the current transform.
func (s *GraphSession) Viewport() geometry.Viewport { return s.viewport }

// Mode returns the interaction state.
func (s *GraphSession) Mode() Mode { return s.mode }

// Position returns the model position of a node.
func (s *GraphSession) Position(id string) (r2.Vec, bool) {
	p, ok := s.positions[id]
	return p, ok
}

// EdgeLine computes the current geometry of a link.
func (s *GraphSession) EdgeLine(l *model.Link) geometry.EdgeLine {
	return geometry.NewEdgeLine(s.positions[l.Source], s.positions[l.Target], s.opts.Layout.NodeRadius())
}

// RenderAll redraws every node and edge and the viewport.
func (s *GraphSession) RenderAll() {
	s.renderer.SetViewport(s.viewport)
	for _, n := range s.graph.Nodes {
		s.renderer.PlaceNode(n.ID, s.positions[n.ID])
	}
	for _, l := range s.graph.Edges {
		s.renderer.PlaceEdge(l.ID, s.EdgeLine(l))
	}
}

// NodeAt hit-tests a screen point against the drawn node circles. Later
// nodes are drawn on top and win.
func (s *GraphSession) NodeAt(screen r2.Vec) (string, bool) {
	p := s.viewport.ToModel(screen)
	radius := s.opts.Layout.NodeRadius()
	for i := len(s.graph.Nodes) - 1; i >= 0; i-- {
		id := s.graph.Nodes[i].ID
		if r2.Norm(r2.Sub(p, s.positions[id])) <= radius {
			return id, true
		}
	}
	return "", false
}

// Tidy re-runs the collision pass on the current positions, redrawing each
// moved node and its edges after every pass. It returns the number of
// passes that moved something.
func (s *GraphSession) Tidy() int {
	ids := make([]string, len(s.graph.Nodes))
	for i, n := range s.graph.Nodes {
		ids[i] = n.ID
	}

	passes := layout.ResolveCollisions(ids, s.positions, s.opts.Layout, func(moved []string) {
		for _, id := range moved {
			s.renderer.PlaceNode(id, s.positions[id])
		}
		s.refreshEdges(moved)
	})
	metrics.InteractionTotal.WithLabelValues("tidy").Inc()
	return passes
}

// refreshEdges redraws every edge touching one of ids, once each.
func (s *GraphSession) refreshEdges(ids []string) {
	done := make(map[string]bool)
	for _, id := range ids {
		for _, l := range s.incident[id] {
			if done[l.ID] {
				continue
			}
			done[l.ID] = true
			s.renderer.PlaceEdge(l.ID, s.EdgeLine(l))
		}
	}
}
