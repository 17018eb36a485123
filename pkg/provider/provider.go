// Package provider defines the graph data provider contract and its HTTP
// and file implementations. Providers make exactly one attempt per fetch.
package provider

import (
	"context"

	"github.com/ritzau/folia-viewer/pkg/model"
)

// Provider returns the nodes and edges matching a request.
type Provider interface {
	Fetch(ctx context.Context, req Request) (*model.GraphData, error)
}

// Func adapts a function to the Provider interface.
type Func func(ctx context.Context, req Request) (*model.GraphData, error)

// Fetch calls f.
func (f Func) Fetch(ctx context.Context, req Request) (*model.GraphData, error) {
	return f(ctx, req)
}
