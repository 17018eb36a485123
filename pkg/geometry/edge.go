// Package geometry holds the 2D math shared by layout and interaction:
// edge line placement between node circles and the pan/zoom viewport.
package geometry

import (
	"encoding/json"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// MinDistance is the floor applied to every distance used as a divisor.
const MinDistance = 1.0

// EdgeLine is the drawable segment between two node circles.
type EdgeLine struct {
	Start    r2.Vec
	End      r2.Vec
	Length   float64
	Angle    float64 // radians, measured from +x toward +y
	Midpoint r2.Vec
}

// Point is the wire form of a position, matching the lowercase x/y used for
// node placements.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PointOf converts a model vector to its wire form.
func PointOf(v r2.Vec) Point {
	return Point{X: v.X, Y: v.Y}
}

// Vec converts back to a model vector.
func (p Point) Vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

type edgeLineJSON struct {
	Start    Point   `json:"start"`
	End      Point   `json:"end"`
	Length   float64 `json:"length"`
	Angle    float64 `json:"angle"`
	Midpoint Point   `json:"midpoint"`
}

// MarshalJSON writes the endpoints and midpoint as x/y points.
func (l EdgeLine) MarshalJSON() ([]byte, error) {
	return json.Marshal(edgeLineJSON{
		Start:    PointOf(l.Start),
		End:      PointOf(l.End),
		Length:   l.Length,
		Angle:    l.Angle,
		Midpoint: PointOf(l.Midpoint),
	})
}

// UnmarshalJSON reads the form written by MarshalJSON.
func (l *EdgeLine) UnmarshalJSON(data []byte) error {
	var w edgeLineJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*l = EdgeLine{
		Start:    w.Start.Vec(),
		End:      w.End.Vec(),
		Length:   w.Length,
		Angle:    w.Angle,
		Midpoint: w.Midpoint.Vec(),
	}
	return nil
}

// AngleDegrees returns the rotation in degrees, as CSS transforms expect it.
func (l EdgeLine) AngleDegrees() float64 {
	return l.Angle * 180 / math.Pi
}

// NewEdgeLine computes the segment from src to dst with both endpoints pulled
// inward by radius so the line meets the circle boundaries instead of the
// centers. Overlapping circles produce a zero-length line.
func NewEdgeLine(src, dst r2.Vec, radius float64) EdgeLine {
	delta := r2.Sub(dst, src)
	dist := r2.Norm(delta)

	var dir r2.Vec
	if dist > 0 {
		dir = r2.Scale(1/math.Max(dist, MinDistance), delta)
	}

	start := r2.Add(src, r2.Scale(radius, dir))
	end := r2.Sub(dst, r2.Scale(radius, dir))
	length := math.Max(0, dist-2*radius)
	if length == 0 {
		// Collapse onto the midpoint rather than drawing a reversed segment.
		mid := r2.Scale(0.5, r2.Add(src, dst))
		start, end = mid, mid
	}

	return EdgeLine{
		Start:    start,
		End:      end,
		Length:   length,
		Angle:    math.Atan2(delta.Y, delta.X),
		Midpoint: r2.Scale(0.5, r2.Add(start, end)),
	}
}

// Distance returns |a-b| floored at MinDistance.
func Distance(a, b r2.Vec) float64 {
	return math.Max(r2.Norm(r2.Sub(a, b)), MinDistance)
}
