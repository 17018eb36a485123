package viewer

import (
	"fmt"

	"github.com/ritzau/folia-viewer/pkg/logging"
	"github.com/ritzau/folia-viewer/pkg/pubsub"
	"github.com/ritzau/folia-viewer/pkg/session"
	"gonum.org/v1/gonum/spatial/r2"
)

// Input event kinds.
const (
	InputDown  = "down"
	InputMove  = "move"
	InputUp    = "up"
	InputWheel = "wheel"
)

// InputEvent is a pointer or wheel event in canvas coordinates.
type InputEvent struct {
	Kind   string  `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	DeltaY float64 `json:"deltaY,omitempty"`
}

// InputResult is what an event changed.
type InputResult struct {
	SessionID string        `json:"sessionId"`
	Mode      string        `json:"mode"`
	Patch     session.Patch `json:"patch"`
}

// PatchEvent is the payload published on the patch topic.
type PatchEvent struct {
	SessionID string        `json:"sessionId"`
	Patch     session.Patch `json:"patch"`
}

// Input applies one event to the current session and returns the drawing
// changes it caused. Non-empty patches are also published.
func (v *Viewer) Input(ev InputEvent) (*InputResult, error) {
	p := r2.Vec{X: ev.X, Y: ev.Y}

	var apply func(s *session.GraphSession)
	switch ev.Kind {
	case InputDown:
		apply = func(s *session.GraphSession) { s.PointerDown(p) }
	case InputMove:
		apply = func(s *session.GraphSession) { s.PointerMove(p) }
	case InputUp:
		apply = func(s *session.GraphSession) { s.PointerUp() }
	case InputWheel:
		apply = func(s *session.GraphSession) { s.Wheel(p, ev.DeltaY) }
	default:
		return nil, fmt.Errorf("unknown input kind %q", ev.Kind)
	}

	return v.interact(ev.Kind, apply)
}

// Tidy re-runs collision resolution on the current positions.
func (v *Viewer) Tidy() (*InputResult, error) {
	return v.interact("tidy", func(s *session.GraphSession) {
		passes := s.Tidy()
		logging.Debug("tidy complete", "sessionID", s.ID(), "passes", passes)
	})
}

func (v *Viewer) interact(kind string, apply func(s *session.GraphSession)) (*InputResult, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.session == nil {
		return nil, ErrNoSession
	}

	apply(v.session)
	patch := v.patches.Flush()
	if !patch.Empty() {
		v.publish(pubsub.TopicPatch, kind, PatchEvent{SessionID: v.session.ID(), Patch: patch})
	}

	return &InputResult{
		SessionID: v.session.ID(),
		Mode:      v.session.Mode().String(),
		Patch:     patch,
	}, nil
}
