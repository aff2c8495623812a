package placement

import (
	"math"
	"testing"

	"github.com/matzehuels/tagplacer/pkg/errors"
	"github.com/matzehuels/tagplacer/pkg/geom"
)

func TestPlacerValidate(t *testing.T) {
	tests := []struct {
		name    string
		placer  Placer
		wantErr bool
	}{
		{"default", DefaultPlacer(), false},
		{"zero value", Placer{}, true},
		{"negative step", Placer{Step: -1, Clearance: 5, Count: 50}, true},
		{"nan step", Placer{Step: math.NaN(), Clearance: 5, Count: 50}, true},
		{"zero clearance", Placer{Step: 5, Clearance: 0, Count: 50}, true},
		{"inf clearance", Placer{Step: 5, Clearance: math.Inf(1), Count: 50}, true},
		{"zero count", Placer{Step: 5, Clearance: 5, Count: 0}, true},
		{"single candidate", Placer{Step: 5, Clearance: 5, Count: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.placer.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidArgument) {
				t.Errorf("error code = %s, want INVALID_ARGUMENT", errors.GetCode(err))
			}
		})
	}
}

func TestPlacerPlace(t *testing.T) {
	p := DefaultPlacer()

	c, err := p.Place(geom.Point{X: 1, Z: 4}, []geom.Point{{X: 0}, {X: 100}})
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}
	if !c.Corrected() || c.CandidateIndex != 0 || c.ObstacleIndex != 0 {
		t.Fatalf("Place = %+v, want correction of the anchor against obstacle 0", c)
	}
	if want := (geom.Point{X: 5, Z: 4}); !c.Point.Near(want, eps) {
		t.Errorf("Point = %v, want %v", c.Point, want)
	}
}

func TestPlacerPlaceInvalid(t *testing.T) {
	c, err := Placer{Step: 5, Clearance: 5}.Place(geom.Point{}, []geom.Point{{X: 1}})
	if !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Fatalf("err = %v, want INVALID_ARGUMENT", err)
	}
	if c.CandidateIndex != -1 || c.ObstacleIndex != -1 {
		t.Errorf("indices = %d, %d, want -1, -1", c.CandidateIndex, c.ObstacleIndex)
	}
}
