package pubsub

import (
	"context"
	"encoding/json"
)

// Topics published by the viewer.
const (
	TopicStatus = "graph_status" // load lifecycle, last event replayed
	TopicFrame  = "graph_frame"  // full snapshot per new session, last event replayed
	TopicPatch  = "graph_patch"  // incremental drawing changes, not buffered
)

// Event represents a pub/sub event
type Event struct {
	Topic   string          `json:"topic"`   // Subscription topic (e.g., "graph_status", "graph_patch")
	Type    string          `json:"type"`    // Event type (e.g., "loading", "ready", "drag")
	Data    json.RawMessage `json:"data"`    // Event payload
	Version int             `json:"version"` // Version number for ordering
}

// Subscription represents a client subscription to a topic
type Subscription interface {
	// Topic returns the subscription topic
	Topic() string

	// Events returns a channel for receiving events
	Events() <-chan Event

	// Close closes the subscription
	Close() error
}

// Publisher manages pub/sub subscriptions and event publishing
type Publisher interface {
	// Subscribe creates a new subscription to a topic
	// Context cancellation will close the subscription
	Subscribe(ctx context.Context, topic string) (Subscription, error)

	// Publish sends an event to all subscribers of a topic
	Publish(topic string, eventType string, data interface{}) error

	// Close shuts down the publisher and all subscriptions
	Close() error
}

// GraphStatus describes where the current load stands.
type GraphStatus struct {
	State      string `json:"state"`   // idle, loading, ready, empty, error
	Message    string `json:"message"` // Human-readable status message
	Generation uint64 `json:"generation"`
	SessionID  string `json:"sessionId,omitempty"`
	Nodes      int    `json:"nodes,omitempty"`
	Edges      int    `json:"edges,omitempty"`
}
