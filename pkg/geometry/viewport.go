package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// ViewportConfig bounds and seeds the viewport transform.
type ViewportConfig struct {
	InitialScale float64 `koanf:"initial_scale"`
	MinScale     float64 `koanf:"min_scale"`
	MaxScale     float64 `koanf:"max_scale"`
	ZoomFactor   float64 `koanf:"zoom_factor"`
}

// DefaultViewportConfig returns the stock zoom limits.
func DefaultViewportConfig() ViewportConfig {
	return ViewportConfig{
		InitialScale: 0.5,
		MinScale:     0.1,
		MaxScale:     5,
		ZoomFactor:   1.1,
	}
}

// Validate reports limits that would make the transform degenerate.
func (c ViewportConfig) Validate() error {
	if c.MinScale <= 0 {
		return fmt.Errorf("min scale must be positive, got %g", c.MinScale)
	}
	if c.MaxScale < c.MinScale {
		return fmt.Errorf("max scale %g below min scale %g", c.MaxScale, c.MinScale)
	}
	if c.InitialScale < c.MinScale || c.InitialScale > c.MaxScale {
		return fmt.Errorf("initial scale %g outside [%g, %g]", c.InitialScale, c.MinScale, c.MaxScale)
	}
	if c.ZoomFactor <= 1 {
		return fmt.Errorf("zoom factor must be greater than 1, got %g", c.ZoomFactor)
	}
	return nil
}

// Clamp limits scale to [MinScale, MaxScale].
func (c ViewportConfig) Clamp(scale float64) float64 {
	return min(max(scale, c.MinScale), c.MaxScale)
}

// Viewport maps model coordinates to screen coordinates:
// screen = model*Scale + Pan.
type Viewport struct {
	PanX  float64 `json:"panX"`
	PanY  float64 `json:"panY"`
	Scale float64 `json:"scale"`
}

// NewViewport returns the reset transform for a fresh session.
func NewViewport(cfg ViewportConfig) Viewport {
	return Viewport{Scale: cfg.Clamp(cfg.InitialScale)}
}

// Pan returns the translation as a vector.
func (v Viewport) Pan() r2.Vec {
	return r2.Vec{X: v.PanX, Y: v.PanY}
}

// ToModel inverts the transform for a screen point.
func (v Viewport) ToModel(screen r2.Vec) r2.Vec {
	return r2.Scale(1/v.Scale, r2.Sub(screen, v.Pan()))
}

// ToScreen applies the transform to a model point.
func (v Viewport) ToScreen(model r2.Vec) r2.Vec {
	return r2.Add(r2.Scale(v.Scale, model), v.Pan())
}

// PanTo returns the viewport translated so that pan equals p.
func (v Viewport) PanTo(p r2.Vec) Viewport {
	v.PanX, v.PanY = p.X, p.Y
	return v
}

// ZoomAt scales by the configured factor (in when zoomIn, out otherwise),
// clamped, while keeping the model point under cursor fixed on screen.
func (v Viewport) ZoomAt(cursor r2.Vec, zoomIn bool, cfg ViewportConfig) Viewport {
	next := v.Scale
	if zoomIn {
		next *= cfg.ZoomFactor
	} else {
		next /= cfg.ZoomFactor
	}
	next = cfg.Clamp(next)
	if next == v.Scale {
		return v
	}

	// pan' = cursor - (cursor - pan) * (next/scale)
	pan := r2.Sub(cursor, r2.Scale(next/v.Scale, r2.Sub(cursor, v.Pan())))
	return Viewport{PanX: pan.X, PanY: pan.Y, Scale: next}
}
