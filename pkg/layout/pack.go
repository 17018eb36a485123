package layout

import "math"

// Box is the region a component is laid out in.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Pack assigns n fixed-size boxes on a near-square grid, row by row.
func Pack(n int, cfg Config) []Box {
	if n <= 0 {
		return nil
	}

	cols := int(math.Ceil(math.Sqrt(float64(n))))
	boxes := make([]Box, n)
	for i := range boxes {
		row, col := i/cols, i%cols
		boxes[i] = Box{
			X:      float64(col) * cfg.BoxWidth,
			Y:      float64(row) * cfg.BoxHeight,
			Width:  cfg.BoxWidth,
			Height: cfg.BoxHeight,
		}
	}
	return boxes
}
