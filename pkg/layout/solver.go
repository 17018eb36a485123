package layout

import (
	"math"

	"github.com/ritzau/folia-viewer/pkg/geometry"
	"github.com/ritzau/folia-viewer/pkg/model"
	"gonum.org/v1/gonum/spatial/r2"
)

// Solve relaxes the nodes in ids with a force-directed simulation, starting
// from their entries in positions and writing the result back. Every pair of
// nodes repels with Repulsion/d², every link pulls its endpoints toward
// IdealLength, and each step is capped by a temperature that cools linearly
// to zero. It returns the number of iterations run.
func Solve(ids []string, links []*model.Link, positions Positions, cfg Config) int {
	n := len(ids)
	if n == 0 {
		return 0
	}

	index := make(map[string]int, n)
	pos := make([]r2.Vec, n)
	for i, id := range ids {
		index[id] = i
		pos[i] = positions[id]
	}

	type spring struct{ from, to int }
	springs := make([]spring, 0, len(links))
	for _, l := range links {
		from, okFrom := index[l.Source]
		to, okTo := index[l.Target]
		if !okFrom || !okTo || from == to {
			continue
		}
		springs = append(springs, spring{from, to})
	}

	t0 := cfg.BoxWidth * cfg.TemperatureRatio
	disp := make([]r2.Vec, n)

	iter := 0
	for ; iter < cfg.Iterations; iter++ {
		temperature := t0 * (1 - float64(iter)/float64(cfg.Iterations))
		clear(disp)

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				delta := r2.Sub(pos[i], pos[j])
				d := math.Max(r2.Norm(delta), geometry.MinDistance)
				push := r2.Scale(cfg.Repulsion/(d*d)/d, delta)
				disp[i] = r2.Add(disp[i], push)
				disp[j] = r2.Sub(disp[j], push)
			}
		}

		for _, s := range springs {
			delta := r2.Sub(pos[s.from], pos[s.to])
			d := math.Max(r2.Norm(delta), geometry.MinDistance)
			pull := r2.Scale(cfg.Attraction*(d-cfg.IdealLength)/d, delta)
			disp[s.from] = r2.Sub(disp[s.from], pull)
			disp[s.to] = r2.Add(disp[s.to], pull)
		}

		var largest float64
		for i := range pos {
			mag := r2.Norm(disp[i])
			if mag == 0 {
				continue
			}
			step := math.Min(mag, temperature)
			pos[i] = r2.Add(pos[i], r2.Scale(step/mag, disp[i]))
			largest = math.Max(largest, step)
		}

		if cfg.ConvergenceEpsilon > 0 && largest < cfg.ConvergenceEpsilon {
			iter++
			break
		}
	}

	for i, id := range ids {
		positions[id] = pos[i]
	}
	return iter
}
