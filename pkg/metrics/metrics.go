// Package metrics declares the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch results.
const (
	ResultReady      = "ready"
	ResultEmpty      = "empty"
	ResultError      = "error"
	ResultSuperseded = "superseded"
	ResultInvalid    = "invalid"
)

var (
	// FetchTotal counts provider fetches by outcome.
	// Labels: "ready", "empty", "error", "superseded", "invalid"
	FetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folia_viewer_fetch_total",
		Help: "Graph fetches by outcome",
	}, []string{"result"})

	FetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "folia_viewer_fetch_duration_seconds",
		Help:    "Time spent waiting on the graph data provider",
		Buckets: prometheus.DefBuckets,
	})

	LayoutDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "folia_viewer_layout_duration_seconds",
		Help:    "Initial layout duration including collision resolution",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})

	GraphNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "folia_viewer_graph_nodes",
		Help:    "Nodes per laid out graph",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
	})

	SkippedEdges = promauto.NewCounter(prometheus.CounterOpts{
		Name: "folia_viewer_skipped_edges_total",
		Help: "Edge records dropped because an endpoint was missing",
	})

	// InteractionTotal counts applied input events.
	// Labels: "pan", "drag", "zoom", "tidy"
	InteractionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folia_viewer_interactions_total",
		Help: "Viewport and node interactions applied to the session",
	}, []string{"kind"})
)
