package layout

import (
	"math/rand/v2"

	"github.com/ritzau/folia-viewer/pkg/model"
	"gonum.org/v1/gonum/spatial/r2"
)

// Positions maps node IDs to model coordinates.
type Positions map[string]r2.Vec

// NewRand returns the layout RNG for seed, or a randomly seeded one for zero.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Seed writes starting positions for nodes into positions. Known entity types
// start in their lane's column with horizontal jitter; other types start
// anywhere across the box. Vertical placement is uniform over the box.
func Seed(nodes []*model.Node, box Box, positions Positions, cfg Config, rng *rand.Rand) {
	lanes := make(map[model.EntityType]int, len(cfg.Lanes))
	for i, t := range cfg.Lanes {
		if _, dup := lanes[t]; !dup {
			lanes[t] = i
		}
	}
	laneWidth := box.Width / float64(len(cfg.Lanes))

	for _, n := range nodes {
		var x float64
		if lane, ok := lanes[n.EntityType]; ok {
			center := box.X + (float64(lane)+0.5)*laneWidth
			x = center + (rng.Float64()-0.5)*laneWidth*cfg.LaneJitter
		} else {
			x = box.X + rng.Float64()*box.Width
		}
		y := box.Y + rng.Float64()*box.Height
		positions[n.ID] = r2.Vec{X: x, Y: y}
	}
}
