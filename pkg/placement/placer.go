package placement

import (
	"github.com/matzehuels/tagplacer/pkg/errors"
	"github.com/matzehuels/tagplacer/pkg/geom"
)

// Values observed in production drawings, in document length units.
const (
	DefaultStep      = 5.0
	DefaultClearance = 5.0
	DefaultCount     = 50
)

// Placer runs [Spiral] and [Resolve] with a fixed set of parameters.
// The zero value is invalid; use [DefaultPlacer] or fill every field.
// A Placer holds no state and may be shared between goroutines.
type Placer struct {
	Step      float64 `json:"step" toml:"step"`
	Clearance float64 `json:"clearance" toml:"clearance"`
	Count     int     `json:"count" toml:"count"`
}

// DefaultPlacer returns a Placer using the default step, clearance and count.
func DefaultPlacer() Placer {
	return Placer{Step: DefaultStep, Clearance: DefaultClearance, Count: DefaultCount}
}

// Validate checks that every parameter is positive.
func (p Placer) Validate() error {
	if err := errors.ValidatePositive("step size", p.Step); err != nil {
		return err
	}
	if err := errors.ValidatePositive("clearance", p.Clearance); err != nil {
		return err
	}
	return errors.ValidateCount("candidate count", p.Count)
}

// Place generates candidates around anchor and resolves them against obstacles.
func (p Placer) Place(anchor geom.Point, obstacles []geom.Point) (Correction, error) {
	if err := p.Validate(); err != nil {
		return Correction{CandidateIndex: -1, ObstacleIndex: -1}, err
	}
	seq, err := Spiral(anchor, p.Step, p.Count)
	if err != nil {
		return Correction{CandidateIndex: -1, ObstacleIndex: -1}, err
	}
	return Resolve(seq, obstacles, p.Clearance)
}
