// Package placement positions a tag next to a point feature so that it keeps a
// minimum clearance from every nearby feature.
//
// Placement has two stages, both pure functions that are safe to call from any
// number of goroutines at once:
//
//  1. [Spiral] produces candidate positions around an anchor, walking outward on a
//     square spiral: right, down, left, up, with the leg length growing by one step
//     after every second leg.
//  2. [Resolve] walks the candidates in order, finds the nearest obstacle to each,
//     and for the first candidate closer than the clearance pushes it directly away
//     from that obstacle so that it sits exactly the clearance distance from it.
//
// [Placer] bundles step size, clearance, and candidate budget so callers do not
// need to thread them through separately.
//
// # Single-shot correction
//
// Resolution stops at the first violating candidate. The corrected point is
// guaranteed to be exactly the clearance distance from the obstacle that triggered
// the correction; it is not re-checked against any other obstacle and may still sit
// closer than the clearance to one of them. Callers that need every obstacle cleared
// must verify the result themselves.
//
// # Outcomes
//
// A [Correction] reports one of three outcomes:
//   - [OutcomeCorrected]: a candidate violated clearance and a corrected point exists
//   - [OutcomeNoViolation]: no candidate violated clearance; keep the anchor
//   - [OutcomeNoObstacles]: there was nothing to avoid; keep the anchor
//
// Invalid parameters are reported as INVALID_ARGUMENT errors. A candidate lying
// exactly on its nearest obstacle has no push direction and is reported as a
// DEGENERATE_GEOMETRY error rather than resolved in an arbitrary direction.
//
// # Example
//
//	p := placement.DefaultPlacer() // step 5, clearance 5, 50 candidates
//	c, err := p.Place(anchor, obstacles)
//	if err != nil {
//	    return err
//	}
//	head := c.PointOr(anchor)
package placement
