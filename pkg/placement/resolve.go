package placement

import (
	"iter"
	"math"
	"slices"

	"github.com/matzehuels/tagplacer/pkg/errors"
	"github.com/matzehuels/tagplacer/pkg/geom"
)

// Outcome describes how a resolution finished.
type Outcome int

const (
	// OutcomeNoObstacles means there was nothing to avoid.
	OutcomeNoObstacles Outcome = iota
	// OutcomeNoViolation means every candidate kept clearance.
	OutcomeNoViolation
	// OutcomeCorrected means a violating candidate was pushed clear.
	OutcomeCorrected
)

var outcomeNames = map[Outcome]string{
	OutcomeNoObstacles: "no_obstacles",
	OutcomeNoViolation: "no_violation",
	OutcomeCorrected:   "corrected",
}

// String returns the snake_case name used in reports.
func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(b []byte) error {
	for k, v := range outcomeNames {
		if v == string(b) {
			*o = k
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidInput, "unknown outcome %q", b)
}

// Correction is the result of [Resolve].
//
// Candidate, Obstacle and their indices identify the violation and are only
// meaningful when Outcome is [OutcomeCorrected]; otherwise the indices are -1.
type Correction struct {
	Outcome        Outcome    `json:"outcome"`
	Point          geom.Point `json:"point"`
	Candidate      geom.Point `json:"candidate"`
	CandidateIndex int        `json:"candidate_index"`
	Obstacle       geom.Point `json:"obstacle"`
	ObstacleIndex  int        `json:"obstacle_index"`
	Distance       float64    `json:"distance"`
	Inspected      int        `json:"inspected"`
}

// Corrected reports whether a corrected point was produced.
func (c Correction) Corrected() bool {
	return c.Outcome == OutcomeCorrected
}

// PointOr returns the corrected point, or fallback when no correction was needed.
func (c Correction) PointOr(fallback geom.Point) geom.Point {
	if c.Corrected() {
		return c.Point
	}
	return fallback
}

// Nearest returns the index of the obstacle closest to p and its distance.
// Ties keep the earliest obstacle. ok is false when obstacles is empty.
func Nearest(p geom.Point, obstacles []geom.Point) (index int, distance float64, ok bool) {
	index = -1
	distance = math.MaxFloat64
	for i, o := range obstacles {
		if d := o.Distance(p); d < distance {
			index, distance = i, d
		}
	}
	return index, distance, index >= 0
}

// Resolve scans candidates in order and corrects the first one lying closer than
// clearance to its nearest obstacle.
//
// The corrected point is the obstacle moved by clearance along the direction from
// the obstacle to the candidate, with Z taken from the candidate. Scanning stops
// at that candidate: no further candidates are pulled from the sequence, and the
// corrected point is not checked against the other obstacles.
//
// An empty obstacle set yields [OutcomeNoObstacles] without consuming any
// candidate. A candidate coinciding with its nearest obstacle in plan yields a
// DEGENERATE_GEOMETRY error. obstacles is never modified.
func Resolve(candidates iter.Seq[geom.Point], obstacles []geom.Point, clearance float64) (Correction, error) {
	c := Correction{CandidateIndex: -1, ObstacleIndex: -1}
	if err := errors.ValidatePositive("clearance", clearance); err != nil {
		return c, err
	}
	if len(obstacles) == 0 {
		c.Outcome = OutcomeNoObstacles
		return c, nil
	}

	c.Outcome = OutcomeNoViolation
	if candidates == nil {
		return c, nil
	}

	i := -1
	for p := range candidates {
		i++
		c.Inspected++

		idx, dist, ok := Nearest(p, obstacles)
		if !ok || dist >= clearance {
			continue
		}

		obstacle := obstacles[idx]
		dir, ok := p.Sub(obstacle).Unit()
		if !ok {
			return c, errors.New(errors.ErrCodeDegenerateGeometry,
				"candidate %d at %v coincides with obstacle %d; push direction is undefined", i, p, idx)
		}

		corrected := obstacle.Add(dir.Scale(clearance))
		corrected.Z = p.Z

		c.Outcome = OutcomeCorrected
		c.Point = corrected
		c.Candidate = p
		c.CandidateIndex = i
		c.Obstacle = obstacle
		c.ObstacleIndex = idx
		c.Distance = dist
		return c, nil
	}
	return c, nil
}

// ResolvePoints is [Resolve] over a materialized candidate list.
func ResolvePoints(candidates, obstacles []geom.Point, clearance float64) (Correction, error) {
	return Resolve(slices.Values(candidates), obstacles, clearance)
}
