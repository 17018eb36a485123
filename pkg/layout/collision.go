package layout

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// ResolveCollisions runs up to CollisionPasses sweeps over every pair in ids,
// pushing both nodes of an overlapping pair apart by half the overlap each so
// their centers end up MinSeparation apart. Nodes sharing a position are
// split along the x axis. onPass, when set, receives the nodes moved by each
// sweep in ids order. Sweeping stops early once a pass moves nothing; the
// number of passes that moved nodes is returned.
//
// A bounded number of sweeps does not guarantee separation for dense piles.
func ResolveCollisions(ids []string, positions Positions, cfg Config, onPass func(moved []string)) int {
	minDist := cfg.MinSeparation()
	pos := make([]r2.Vec, len(ids))
	for i, id := range ids {
		pos[i] = positions[id]
	}

	passes := 0
	moved := make([]bool, len(ids))
	for pass := 0; pass < cfg.CollisionPasses; pass++ {
		clear(moved)
		changed := false

		for j := range pos {
			for k := j + 1; k < len(pos); k++ {
				delta := r2.Sub(pos[j], pos[k])
				dist := r2.Norm(delta)
				if dist >= minDist {
					continue
				}

				dir := r2.Vec{X: 1}
				if dist > 0 {
					dir = r2.Scale(1/dist, delta)
				}
				shift := r2.Scale((minDist-dist)/2, dir)
				pos[j] = r2.Add(pos[j], shift)
				pos[k] = r2.Sub(pos[k], shift)
				moved[j], moved[k] = true, true
				changed = true
			}
		}

		if !changed {
			break
		}
		passes++

		var movedIDs []string
		for i, id := range ids {
			if moved[i] {
				positions[id] = pos[i]
				movedIDs = append(movedIDs, id)
			}
		}
		if onPass != nil {
			onPass(movedIDs)
		}
	}

	return passes
}
