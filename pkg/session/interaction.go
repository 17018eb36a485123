package session

import (
	"github.com/ritzau/folia-viewer/pkg/logging"
	"github.com/ritzau/folia-viewer/pkg/metrics"
	"gonum.org/v1/gonum/spatial/r2"
)

// Mode is the pointer interaction state. Panning and dragging are mutually
// exclusive and both end on pointer-up.
type Mode int

const (
	ModeIdle Mode = iota
	ModePanning
	ModeDragging
)

func (m Mode) String() string {
	switch m {
	case ModePanning:
		return "panning"
	case ModeDragging:
		return "dragging"
	default:
		return "idle"
	}
}

// PointerDown starts a drag when p (canvas coordinates) is over a node and
// a pan otherwise. A press while another gesture is active ends that
// gesture first.
func (s *GraphSession) PointerDown(p r2.Vec) Mode {
	if s.mode != ModeIdle {
		s.PointerUp()
	}

	if id, ok := s.NodeAt(p); ok {
		s.mode = ModeDragging
		s.dragID = id
		s.dragOffset = r2.Sub(s.viewport.ToModel(p), s.positions[id])
		logging.Trace("drag started", "sessionID", s.id, "node", id)
		return s.mode
	}

	s.mode = ModePanning
	s.panAnchor = r2.Sub(p, s.viewport.Pan())
	logging.Trace("pan started", "sessionID", s.id)
	return s.mode
}

// PointerMove continues the active gesture. Panning moves the viewport so
// the grabbed canvas point follows the pointer. Dragging moves the node so
// the grabbed point of the node follows the pointer, then redraws the node
// and only its incident edges. It reports whether anything changed.
func (s *GraphSession) PointerMove(p r2.Vec) bool {
	switch s.mode {
	case ModePanning:
		s.viewport = s.viewport.PanTo(r2.Sub(p, s.panAnchor))
		s.renderer.SetViewport(s.viewport)
		return true

	case ModeDragging:
		pos := r2.Sub(s.viewport.ToModel(p), s.dragOffset)
		s.positions[s.dragID] = pos
		s.renderer.PlaceNode(s.dragID, pos)
		s.refreshEdges([]string{s.dragID})
		return true

	default:
		return false
	}
}

// PointerUp ends the active gesture and returns the mode that ended.
func (s *GraphSession) PointerUp() Mode {
	ended := s.mode
	switch ended {
	case ModePanning:
		metrics.InteractionTotal.WithLabelValues("pan").Inc()
	case ModeDragging:
		metrics.InteractionTotal.WithLabelValues("drag").Inc()
		logging.Trace("drag ended", "sessionID", s.id, "node", s.dragID)
	}

	s.mode = ModeIdle
	s.dragID = ""
	s.dragOffset = r2.Vec{}
	s.panAnchor = r2.Vec{}
	return ended
}

// Wheel zooms one step around the canvas point p: in for negative deltaY,
// out for positive. The model point under p stays put. Wheel input during
// a pan or drag, and deltaY of zero, are ignored. It reports whether the
// viewport changed.
func (s *GraphSession) Wheel(p r2.Vec, deltaY float64) bool {
	if s.mode != ModeIdle || deltaY == 0 {
		return false
	}

	next := s.viewport.ZoomAt(p, deltaY < 0, s.opts.Viewport)
	if next == s.viewport {
		return false
	}
	s.viewport = next
	s.renderer.SetViewport(s.viewport)
	metrics.InteractionTotal.WithLabelValues("zoom").Inc()
	return true
}
