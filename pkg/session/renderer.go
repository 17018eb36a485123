package session

import (
	"github.com/ritzau/folia-viewer/pkg/geometry"
	"gonum.org/v1/gonum/spatial/r2"
)

// Renderer is the drawing surface a session writes to. Nodes are drawn
// centered on their model position; edges are drawn along the given line
// with their label at its midpoint. All coordinates are model space; the
// viewport transform is applied to the whole surface.
type Renderer interface {
	PlaceNode(id string, pos r2.Vec)
	PlaceEdge(id string, line geometry.EdgeLine)
	SetViewport(vp geometry.Viewport)
}

// NopRenderer discards all drawing calls.
type NopRenderer struct{}

func (NopRenderer) PlaceNode(string, r2.Vec)            {}
func (NopRenderer) PlaceEdge(string, geometry.EdgeLine) {}
func (NopRenderer) SetViewport(geometry.Viewport)       {}

// NodePlacement is a node position update.
type NodePlacement struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// EdgePlacement is an edge geometry update.
type EdgePlacement struct {
	ID   string            `json:"id"`
	Line geometry.EdgeLine `json:"line"`
}

// Patch is the set of drawing changes since the last flush. Repeated
// placements of the same element keep only the latest one.
type Patch struct {
	Viewport *geometry.Viewport `json:"viewport,omitempty"`
	Nodes    []NodePlacement    `json:"nodes,omitempty"`
	Edges    []EdgePlacement    `json:"edges,omitempty"`
}

// Empty reports whether the patch carries no changes.
func (p Patch) Empty() bool {
	return p.Viewport == nil && len(p.Nodes) == 0 && len(p.Edges) == 0
}

// PatchRenderer records drawing calls into a Patch for remote clients.
// It is not safe for concurrent use.
type PatchRenderer struct {
	patch     Patch
	nodeIndex map[string]int
	edgeIndex map[string]int
}

// NewPatchRenderer returns an empty recorder.
func NewPatchRenderer() *PatchRenderer {
	return &PatchRenderer{
		nodeIndex: make(map[string]int),
		edgeIndex: make(map[string]int),
	}
}

func (r *PatchRenderer) PlaceNode(id string, pos r2.Vec) {
	p := NodePlacement{ID: id, X: pos.X, Y: pos.Y}
	if i, ok := r.nodeIndex[id]; ok {
		r.patch.Nodes[i] = p
		return
	}
	r.nodeIndex[id] = len(r.patch.Nodes)
	r.patch.Nodes = append(r.patch.Nodes, p)
}

func (r *PatchRenderer) PlaceEdge(id string, line geometry.EdgeLine) {
	p := EdgePlacement{ID: id, Line: line}
	if i, ok := r.edgeIndex[id]; ok {
		r.patch.Edges[i] = p
		return
	}
	r.edgeIndex[id] = len(r.patch.Edges)
	r.patch.Edges = append(r.patch.Edges, p)
}

func (r *PatchRenderer) SetViewport(vp geometry.Viewport) {
	r.patch.Viewport = &vp
}

// Flush returns the accumulated patch and starts a new one.
func (r *PatchRenderer) Flush() Patch {
	p := r.patch
	r.patch = Patch{}
	clear(r.nodeIndex)
	clear(r.edgeIndex)
	return p
}
