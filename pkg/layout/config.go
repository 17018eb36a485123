// Package layout places graph nodes in the plane: components are packed into
// a grid of boxes, each box is relaxed with a force-directed simulation seeded
// from entity-type lanes, and a final pass pushes overlapping nodes apart.
package layout

import (
	"fmt"

	"github.com/ritzau/folia-viewer/pkg/model"
)

// Config holds the layout constants. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	BoxWidth  float64 `koanf:"box_width"`
	BoxHeight float64 `koanf:"box_height"`

	Iterations       int     `koanf:"iterations"`
	Attraction       float64 `koanf:"attraction"`
	Repulsion        float64 `koanf:"repulsion"`
	IdealLength      float64 `koanf:"ideal_length"`
	TemperatureRatio float64 `koanf:"temperature_ratio"`
	// ConvergenceEpsilon stops a component early once no node moved further
	// than this in an iteration. Zero disables the check.
	ConvergenceEpsilon float64 `koanf:"convergence_epsilon"`

	NodeSize        float64 `koanf:"node_size"`
	Margin          float64 `koanf:"margin"`
	CollisionPasses int     `koanf:"collision_passes"`

	LaneJitter float64            `koanf:"lane_jitter"`
	Lanes      []model.EntityType `koanf:"lanes"`

	// Seed feeds the layout RNG. Zero picks a fresh seed per layout.
	Seed uint64 `koanf:"seed"`
}

// DefaultLanes is the left-to-right order of the entity-type columns used to
// seed positions, following the catalog hierarchy.
var DefaultLanes = []model.EntityType{
	model.EntityPerson,
	model.EntityWork,
	model.EntityExpression,
	model.EntityManifestation,
	model.EntityManifestationVolume,
	model.EntityItem,
	model.EntityPageSummary,
	model.EntityPage,
}

// DefaultConfig returns the stock layout constants.
func DefaultConfig() Config {
	return Config{
		BoxWidth:         1000,
		BoxHeight:        700,
		Iterations:       300,
		Attraction:       0.02,
		Repulsion:        20000,
		IdealLength:      150,
		TemperatureRatio: 0.1,
		NodeSize:         80,
		Margin:           40,
		CollisionPasses:  15,
		LaneJitter:       0.8,
		Lanes:            append([]model.EntityType(nil), DefaultLanes...),
	}
}

// MinSeparation is the center distance below which two nodes collide.
func (c Config) MinSeparation() float64 {
	return c.NodeSize + c.Margin
}

// NodeRadius is half the drawn node diameter.
func (c Config) NodeRadius() float64 {
	return c.NodeSize / 2
}

// Validate rejects constants the solver cannot work with.
func (c Config) Validate() error {
	if c.BoxWidth <= 0 || c.BoxHeight <= 0 {
		return fmt.Errorf("box size must be positive, got %gx%g", c.BoxWidth, c.BoxHeight)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("iterations must not be negative, got %d", c.Iterations)
	}
	if c.CollisionPasses < 0 {
		return fmt.Errorf("collision passes must not be negative, got %d", c.CollisionPasses)
	}
	if c.NodeSize <= 0 {
		return fmt.Errorf("node size must be positive, got %g", c.NodeSize)
	}
	if c.Margin < 0 {
		return fmt.Errorf("margin must not be negative, got %g", c.Margin)
	}
	if c.Attraction < 0 || c.Repulsion < 0 {
		return fmt.Errorf("force constants must not be negative")
	}
	if c.TemperatureRatio <= 0 {
		return fmt.Errorf("temperature ratio must be positive, got %g", c.TemperatureRatio)
	}
	if c.LaneJitter < 0 || c.LaneJitter > 1 {
		return fmt.Errorf("lane jitter must be within [0, 1], got %g", c.LaneJitter)
	}
	if len(c.Lanes) == 0 {
		return fmt.Errorf("at least one lane is required")
	}
	return nil
}
