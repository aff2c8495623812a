package placement_test

import (
	"fmt"

	"github.com/matzehuels/tagplacer/pkg/geom"
	"github.com/matzehuels/tagplacer/pkg/placement"
)

func ExampleSpiral() {
	seq, err := placement.Spiral(geom.Point{}, 1, 9)
	if err != nil {
		panic(err)
	}
	for p := range seq {
		fmt.Printf("(%g,%g) ", p.X, p.Y)
	}
	fmt.Println()
	// Output: (0,0) (1,0) (1,-1) (0,-1) (-1,-1) (-1,0) (-1,1) (0,1) (1,1)
}

func ExamplePlacer_Place() {
	anchor := geom.Point{X: 10}
	windows := []geom.Point{{X: 12}}

	c, err := placement.DefaultPlacer().Place(anchor, windows)
	if err != nil {
		panic(err)
	}
	fmt.Println(c.Outcome, c.PointOr(anchor))
	// Output: corrected (7, 0, 0)
}

func ExampleResolve_noViolation() {
	seq, _ := placement.Spiral(geom.Point{}, 5, 50)
	c, _ := placement.Resolve(seq, []geom.Point{{X: 500, Y: 500}}, 5)
	fmt.Println(c.Outcome, c.Inspected)
	// Output: no_violation 50
}
