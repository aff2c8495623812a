package placement

import (
	"encoding/json"
	"iter"
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/tagplacer/pkg/errors"
	"github.com/matzehuels/tagplacer/pkg/geom"
)

const eps = 1e-9

// counting wraps a sequence and records how many points were pulled from it.
func counting(seq iter.Seq[geom.Point], n *int) iter.Seq[geom.Point] {
	return func(yield func(geom.Point) bool) {
		for p := range seq {
			*n++
			if !yield(p) {
				return
			}
		}
	}
}

func TestNearest(t *testing.T) {
	obstacles := []geom.Point{{X: 10}, {X: 3}, {X: -2}}
	idx, dist, ok := Nearest(geom.Point{}, obstacles)
	if !ok || idx != 2 || dist != 2 {
		t.Errorf("Nearest = (%d, %v, %v), want (2, 2, true)", idx, dist, ok)
	}

	if _, _, ok := Nearest(geom.Point{}, nil); ok {
		t.Error("Nearest on empty obstacles should report ok=false")
	}
}

func TestNearestTieKeepsFirst(t *testing.T) {
	obstacles := []geom.Point{{X: 1}, {X: -1}, {Y: 1}, {X: 1}}
	idx, _, _ := Nearest(geom.Point{}, obstacles)
	if idx != 0 {
		t.Errorf("Nearest tie index = %d, want 0", idx)
	}

	idx, _, _ = Nearest(geom.Point{}, obstacles[1:])
	if idx != 0 {
		t.Errorf("Nearest tie index on shifted set = %d, want 0", idx)
	}
}

func TestResolveEndToEnd(t *testing.T) {
	anchor := geom.Point{X: 10}
	obstacles := []geom.Point{{X: 12}}

	seq, err := Spiral(anchor, 5, 50)
	if err != nil {
		t.Fatalf("Spiral error: %v", err)
	}
	c, err := Resolve(seq, obstacles, 5)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	if !c.Corrected() {
		t.Fatalf("Outcome = %v, want corrected", c.Outcome)
	}
	if !c.Point.Near(geom.Point{X: 7}, eps) {
		t.Errorf("Point = %v, want (7, 0, 0)", c.Point)
	}
	if c.CandidateIndex != 0 || c.ObstacleIndex != 0 {
		t.Errorf("indices = (%d, %d), want (0, 0)", c.CandidateIndex, c.ObstacleIndex)
	}
	if c.Distance != 2 {
		t.Errorf("Distance = %v, want 2", c.Distance)
	}
}

func TestResolveExactClearance(t *testing.T) {
	obstacles := []geom.Point{{X: 2.2, Y: -1.2}, {X: 40, Y: 40}}
	for _, clearance := range []float64{0.5, 2, 5, 7.25} {
		c, err := DefaultPlacer().withClearance(clearance).Place(geom.Point{X: 2, Y: -1}, obstacles)
		if err != nil {
			t.Fatalf("Place error: %v", err)
		}
		if !c.Corrected() {
			t.Fatalf("clearance %v: expected a correction", clearance)
		}
		if d := c.Point.Distance(c.Obstacle); math.Abs(d-clearance) > eps {
			t.Errorf("clearance %v: distance to triggering obstacle = %v", clearance, d)
		}
	}
}

func (p Placer) withClearance(c float64) Placer {
	p.Clearance = c
	return p
}

func TestResolveNoObstacles(t *testing.T) {
	seq, _ := Spiral(geom.Point{}, 1, 10)
	pulled := 0
	c, err := Resolve(counting(seq, &pulled), nil, 5)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if c.Outcome != OutcomeNoObstacles {
		t.Errorf("Outcome = %v, want no_obstacles", c.Outcome)
	}
	if pulled != 0 {
		t.Errorf("pulled %d candidates, want 0", pulled)
	}
	anchor := geom.Point{X: 4}
	if got := c.PointOr(anchor); !got.Equal(anchor) {
		t.Errorf("PointOr = %v, want anchor", got)
	}
}

func TestResolveNoViolation(t *testing.T) {
	obstacles := []geom.Point{{X: 1000}, {Y: -1000}}
	seq, _ := Spiral(geom.Point{}, 1, 25)
	pulled := 0
	c, err := Resolve(counting(seq, &pulled), obstacles, 5)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if c.Outcome != OutcomeNoViolation {
		t.Errorf("Outcome = %v, want no_violation", c.Outcome)
	}
	if pulled != 25 || c.Inspected != 25 {
		t.Errorf("pulled %d / inspected %d, want 25", pulled, c.Inspected)
	}
	if c.CandidateIndex != -1 || c.ObstacleIndex != -1 {
		t.Errorf("indices = (%d, %d), want -1", c.CandidateIndex, c.ObstacleIndex)
	}
}

func TestResolveBoundaryIsNotViolation(t *testing.T) {
	c, err := ResolvePoints([]geom.Point{{}}, []geom.Point{{X: 5}}, 5)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if c.Corrected() {
		t.Error("a candidate exactly at clearance distance should not be corrected")
	}
}

func TestResolveFirstViolationOnly(t *testing.T) {
	// Candidates 0..5 for anchor (0,0), step 1: (0,0) (1,0) (1,-1) (0,-1) (-1,-1) (-1,0).
	// Obstacle A sits next to candidate 3, obstacle B next to candidate 5.
	a := geom.Point{Y: -1.2}
	b := geom.Point{X: -1.3}
	obstacles := []geom.Point{a, b}

	seq, _ := Spiral(geom.Point{}, 1, 50)
	pulled := 0
	c, err := Resolve(counting(seq, &pulled), obstacles, 0.5)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	if c.CandidateIndex != 3 || c.ObstacleIndex != 0 {
		t.Fatalf("violation at (candidate %d, obstacle %d), want (3, 0)", c.CandidateIndex, c.ObstacleIndex)
	}
	if !c.Obstacle.Equal(a) {
		t.Errorf("Obstacle = %v, want %v", c.Obstacle, a)
	}
	if !c.Point.Near(geom.Point{Y: -0.7}, eps) {
		t.Errorf("Point = %v, want (0, -0.7, 0)", c.Point)
	}
	if pulled != 4 || c.Inspected != 4 {
		t.Errorf("pulled %d / inspected %d candidates, want 4", pulled, c.Inspected)
	}
}

func TestResolveDoesNotRecheckOtherObstacles(t *testing.T) {
	// The push away from the first obstacle lands right on top of the second.
	obstacles := []geom.Point{{X: 1}, {X: -4}}
	c, err := ResolvePoints([]geom.Point{{}}, obstacles, 5)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if !c.Point.Near(geom.Point{X: -4}, eps) {
		t.Fatalf("Point = %v, want (-4, 0, 0)", c.Point)
	}
	if d := c.Point.Distance(obstacles[1]); d >= 5 {
		t.Errorf("expected the single-shot push to leave obstacle 1 within clearance, got %v", d)
	}
}

func TestResolveTieBreak(t *testing.T) {
	c, err := ResolvePoints([]geom.Point{{}}, []geom.Point{{X: 1}, {X: -1}}, 2)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if c.ObstacleIndex != 0 || !c.Point.Near(geom.Point{X: -1}, eps) {
		t.Errorf("got obstacle %d point %v, want obstacle 0 point (-1,0,0)", c.ObstacleIndex, c.Point)
	}

	c, _ = ResolvePoints([]geom.Point{{}}, []geom.Point{{X: -1}, {X: 1}}, 2)
	if c.ObstacleIndex != 0 || !c.Point.Near(geom.Point{X: 1}, eps) {
		t.Errorf("reversed: got obstacle %d point %v, want obstacle 0 point (1,0,0)", c.ObstacleIndex, c.Point)
	}
}

func TestResolveDegenerate(t *testing.T) {
	_, err := ResolvePoints([]geom.Point{{X: 2, Y: 2}}, []geom.Point{{X: 2, Y: 2}}, 5)
	if !errors.Is(err, errors.ErrCodeDegenerateGeometry) {
		t.Errorf("error = %v, want DEGENERATE_GEOMETRY", err)
	}

	// Coincident in plan but at a different elevation is still degenerate.
	_, err = ResolvePoints([]geom.Point{{X: 2, Y: 2, Z: 0}}, []geom.Point{{X: 2, Y: 2, Z: 9}}, 5)
	if !errors.Is(err, errors.ErrCodeDegenerateGeometry) {
		t.Errorf("error = %v, want DEGENERATE_GEOMETRY", err)
	}
}

func TestResolveCarriesCandidateZ(t *testing.T) {
	c, err := ResolvePoints([]geom.Point{{X: 1, Z: 3}}, []geom.Point{{Z: -8}}, 2)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if !c.Point.Near(geom.Point{X: 2, Z: 3}, eps) {
		t.Errorf("Point = %v, want (2, 0, 3)", c.Point)
	}
}

func TestResolveDoesNotMutateObstacles(t *testing.T) {
	obstacles := []geom.Point{{X: 1}, {X: 2, Y: 2}, {X: 1}}
	before := slices.Clone(obstacles)
	seq, _ := Spiral(geom.Point{}, 1, 20)
	if _, err := Resolve(seq, obstacles, 3); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if !slices.Equal(before, obstacles) {
		t.Errorf("obstacles mutated: %v -> %v", before, obstacles)
	}
}

func TestResolveInvalidClearance(t *testing.T) {
	for _, c := range []float64{0, -1, math.NaN()} {
		if _, err := ResolvePoints([]geom.Point{{}}, []geom.Point{{X: 1}}, c); !errors.Is(err, errors.ErrCodeInvalidArgument) {
			t.Errorf("clearance %v: error = %v, want INVALID_ARGUMENT", c, err)
		}
	}
}

func TestResolveNilSequence(t *testing.T) {
	c, err := Resolve(nil, []geom.Point{{X: 1}}, 5)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if c.Outcome != OutcomeNoViolation {
		t.Errorf("Outcome = %v, want no_violation", c.Outcome)
	}
}

func TestOutcomeJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		O Outcome `json:"o"`
	}{OutcomeCorrected})
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != `{"o":"corrected"}` {
		t.Errorf("Marshal = %s", data)
	}

	var o Outcome
	if err := o.UnmarshalText([]byte("no_violation")); err != nil || o != OutcomeNoViolation {
		t.Errorf("UnmarshalText = %v, %v", o, err)
	}
	if err := o.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("UnmarshalText should reject unknown outcomes")
	}
}
