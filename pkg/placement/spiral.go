package placement

import (
	"iter"
	"slices"

	"github.com/matzehuels/tagplacer/pkg/errors"
	"github.com/matzehuels/tagplacer/pkg/geom"
)

// directions is the fixed leg rotation: right, down, left, up.
var directions = [4][2]int{{1, 0}, {0, -1}, {-1, 0}, {0, 1}}

// Spiral returns a sequence of exactly count candidate positions around anchor.
//
// The first candidate is the anchor itself. Each subsequent candidate moves one
// step along the current leg direction. Directions rotate right, down, left, up
// after every leg, and the leg length starts at one step and grows by one after
// every second leg, so with anchor (0,0) and step 1 the first nine candidates are
//
//	(0,0) (1,0) (1,-1) (0,-1) (-1,-1) (-1,0) (-1,1) (0,1) (1,1)
//
// Positions are computed from integer lattice offsets, so candidates never drift
// and never repeat. Z is copied from the anchor. The sequence may be consumed any
// number of times; each pass yields the same points. Stopping early stops
// generation.
func Spiral(anchor geom.Point, step float64, count int) (iter.Seq[geom.Point], error) {
	if err := errors.ValidatePositive("step size", step); err != nil {
		return nil, err
	}
	if err := errors.ValidateCount("candidate count", count); err != nil {
		return nil, err
	}
	if !anchor.IsFinite() {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "anchor %v must be finite", anchor)
	}

	return func(yield func(geom.Point) bool) {
		if !yield(anchor) {
			return
		}

		var (
			i, j   int // lattice offset from the anchor
			dir    int
			legLen = 1
			legs   int
			moved  int
		)
		for n := 1; n < count; n++ {
			d := directions[dir]
			i += d[0]
			j += d[1]
			if !yield(lattice(anchor, step, i, j)) {
				return
			}

			moved++
			if moved == legLen {
				moved = 0
				dir = (dir + 1) % len(directions)
				legs++
				if legs%2 == 0 {
					legLen++
				}
			}
		}
	}, nil
}

// Candidates materializes [Spiral] into a slice.
func Candidates(anchor geom.Point, step float64, count int) ([]geom.Point, error) {
	seq, err := Spiral(anchor, step, count)
	if err != nil {
		return nil, err
	}
	return slices.Collect(seq), nil
}

func lattice(anchor geom.Point, step float64, i, j int) geom.Point {
	return geom.Point{
		X: anchor.X + float64(i)*step,
		Y: anchor.Y + float64(j)*step,
		Z: anchor.Z,
	}
}
