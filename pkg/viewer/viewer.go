// Package viewer owns the displayed graph session. It turns provider
// responses into sessions, discards responses that lost the race to a newer
// request, and serializes all interaction on one lock.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ritzau/folia-viewer/pkg/layout"
	"github.com/ritzau/folia-viewer/pkg/logging"
	"github.com/ritzau/folia-viewer/pkg/metrics"
	"github.com/ritzau/folia-viewer/pkg/model"
	"github.com/ritzau/folia-viewer/pkg/provider"
	"github.com/ritzau/folia-viewer/pkg/pubsub"
	"github.com/ritzau/folia-viewer/pkg/session"
)

var (
	// ErrSuperseded is returned by Load when a newer request was issued
	// before this one's response arrived. The response is discarded.
	ErrSuperseded = errors.New("graph request superseded by a newer one")

	// ErrNoSession is returned by interaction calls when no graph is shown.
	ErrNoSession = errors.New("no graph loaded")

	// ErrNothingToReload is returned by Reload before the first Load.
	ErrNothingToReload = errors.New("no previous graph request to reload")
)

// Load states.
const (
	StateIdle    = "idle"
	StateLoading = "loading"
	StateReady   = "ready"
	StateEmpty   = "empty"
	StateError   = "error"
)

// Viewer is safe for concurrent use.
type Viewer struct {
	provider  provider.Provider
	publisher pubsub.Publisher
	opts      session.Options

	generation atomic.Uint64

	mu      sync.Mutex
	session *session.GraphSession
	patches *session.PatchRenderer
	status  pubsub.GraphStatus
	lastReq *provider.Request
}

// New returns a viewer fetching from p. publisher may be nil.
func New(p provider.Provider, publisher pubsub.Publisher, opts session.Options) *Viewer {
	return &Viewer{
		provider:  p,
		publisher: publisher,
		opts:      opts,
		status:    pubsub.GraphStatus{State: StateIdle, Message: "No graph requested yet"},
	}
}

// Result describes the outcome of a load. Frame and Layout are nil unless
// State is ready.
type Result struct {
	Status pubsub.GraphStatus `json:"status"`
	Frame  *session.Frame     `json:"frame,omitempty"`
	Layout *layout.Result     `json:"-"`
}

// Load fetches the graph for req and, if no newer Load was started in the
// meantime, replaces the current session with a freshly laid out one. An
// empty result clears the session without error. A fetch failure clears
// the session and is returned wrapped; nothing is laid out.
func (v *Viewer) Load(ctx context.Context, req provider.Request) (*Result, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		metrics.FetchTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return nil, err
	}

	gen := v.generation.Add(1)

	v.mu.Lock()
	v.lastReq = &req
	v.setStatus(pubsub.GraphStatus{
		State:      StateLoading,
		Message:    "Loading graph...",
		Generation: gen,
	})
	v.mu.Unlock()

	logging.InfoContext(ctx, "loading graph", "generation", gen, "graphType", req.GraphType, "projects", len(req.Projects))

	start := time.Now()
	data, err := v.provider.Fetch(ctx, req)
	metrics.FetchDuration.Observe(time.Since(start).Seconds())

	v.mu.Lock()
	defer v.mu.Unlock()

	if latest := v.generation.Load(); gen != latest {
		metrics.FetchTotal.WithLabelValues(metrics.ResultSuperseded).Inc()
		logging.DebugContext(ctx, "discarding stale graph response", "generation", gen, "latest", latest)
		return nil, ErrSuperseded
	}

	if err != nil {
		metrics.FetchTotal.WithLabelValues(metrics.ResultError).Inc()
		logging.ErrorContext(ctx, "graph fetch failed", "generation", gen, "error", err)
		v.session, v.patches = nil, nil
		v.setStatus(pubsub.GraphStatus{
			State:      StateError,
			Message:    fmt.Sprintf("Error loading graph: %v", err),
			Generation: gen,
		})
		return &Result{Status: v.status}, fmt.Errorf("failed to fetch graph: %w", err)
	}

	g := model.Build(data, req.GraphType)
	if g.Skipped > 0 {
		metrics.SkippedEdges.Add(float64(g.Skipped))
		logging.WarnContext(ctx, "skipped edges with missing endpoints", "count", g.Skipped)
	}

	if len(g.Nodes) == 0 {
		metrics.FetchTotal.WithLabelValues(metrics.ResultEmpty).Inc()
		logging.InfoContext(ctx, "graph is empty", "generation", gen)
		v.session, v.patches = nil, nil
		v.setStatus(pubsub.GraphStatus{
			State:      StateEmpty,
			Message:    "No graph data found for the selected criteria.",
			Generation: gen,
		})
		return &Result{Status: v.status}, nil
	}

	patches := session.NewPatchRenderer()
	s := session.New(g, patches, v.opts)
	patches.Flush() // the frame below carries the initial drawing

	lr := s.LayoutResult()
	metrics.LayoutDuration.Observe(lr.Duration.Seconds())
	metrics.GraphNodes.Observe(float64(len(g.Nodes)))
	metrics.FetchTotal.WithLabelValues(metrics.ResultReady).Inc()

	v.session, v.patches = s, patches
	frame := s.Frame()
	v.setStatus(pubsub.GraphStatus{
		State:      StateReady,
		Message:    fmt.Sprintf("Showing %d nodes and %d edges", len(g.Nodes), len(g.Edges)),
		Generation: gen,
		SessionID:  s.ID(),
		Nodes:      len(g.Nodes),
		Edges:      len(g.Edges),
	})
	v.publish(pubsub.TopicFrame, "frame", frame)

	logging.InfoContext(ctx, "graph ready",
		"generation", gen,
		"sessionID", s.ID(),
		"nodes", len(g.Nodes),
		"edges", len(g.Edges),
		"components", len(lr.Components),
		"durationMs", lr.Duration.Milliseconds())

	return &Result{Status: v.status, Frame: &frame, Layout: lr}, nil
}

// Reload repeats the most recent request.
func (v *Viewer) Reload(ctx context.Context) (*Result, error) {
	v.mu.Lock()
	last := v.lastReq
	v.mu.Unlock()

	if last == nil {
		return nil, ErrNothingToReload
	}
	return v.Load(ctx, *last)
}

// Status returns the current load status.
func (v *Viewer) Status() pubsub.GraphStatus {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

// Ready reports whether no load is in flight.
func (v *Viewer) Ready() bool {
	return v.Status().State != StateLoading
}

// Frame snapshots the current session.
func (v *Viewer) Frame() (*session.Frame, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.session == nil {
		return nil, ErrNoSession
	}
	f := v.session.Frame()
	return &f, nil
}

// setStatus must be called with mu held.
func (v *Viewer) setStatus(st pubsub.GraphStatus) {
	v.status = st
	v.publish(pubsub.TopicStatus, st.State, st)
}

func (v *Viewer) publish(topic, eventType string, data any) {
	if v.publisher == nil {
		return
	}
	if err := v.publisher.Publish(topic, eventType, data); err != nil {
		logging.Warn("failed to publish event", "topic", topic, "type", eventType, "error", err)
	}
}
