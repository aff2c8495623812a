package geom

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/tagplacer/pkg/errors"
)

// BoundingBox is an axis-aligned box given by its minimum and maximum corners.
type BoundingBox struct {
	Min Point `json:"min" yaml:"min"`
	Max Point `json:"max" yaml:"max"`
}

// Centered returns a box of width w and height h centered on c in plan.
// The box has no depth: both corners share c.Z.
func Centered(c Point, w, h float64) BoundingBox {
	return BoundingBox{
		Min: Point{X: c.X - w/2, Y: c.Y - h/2, Z: c.Z},
		Max: Point{X: c.X + w/2, Y: c.Y + h/2, Z: c.Z},
	}
}

// RightEdgeMidpoint returns (Max.X, mid Y, Max.Z), the anchor used for placement.
func (b BoundingBox) RightEdgeMidpoint() Point {
	return Point{X: b.Max.X, Y: (b.Max.Y + b.Min.Y) / 2, Z: b.Max.Z}
}

// Translate returns the box moved by d.
func (b BoundingBox) Translate(d Point) BoundingBox {
	return BoundingBox{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Width returns the X extent of the box.
func (b BoundingBox) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the Y extent of the box.
func (b BoundingBox) Height() float64 { return b.Max.Y - b.Min.Y }

// Rect is a planar selection region. Use [NewRect] to build one from two corners.
type Rect struct {
	MinX float64 `json:"min_x" yaml:"min_x"`
	MinY float64 `json:"min_y" yaml:"min_y"`
	MaxX float64 `json:"max_x" yaml:"max_x"`
	MaxY float64 `json:"max_y" yaml:"max_y"`
}

// NewRect returns the rectangle spanned by two opposite corners in any order.
func NewRect(x1, y1, x2, y2 float64) Rect {
	return Rect{
		MinX: math.Min(x1, x2),
		MinY: math.Min(y1, y2),
		MaxX: math.Max(x1, x2),
		MaxY: math.Max(y1, y2),
	}
}

// ParseRect parses "x1,y1,x2,y2" into a Rect.
func ParseRect(s string) (Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Rect{}, errors.New(errors.ErrCodeInvalidRegion, "region %q must have four comma-separated numbers", s)
	}
	var v [4]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return Rect{}, errors.New(errors.ErrCodeInvalidRegion, "region %q: invalid number %q", s, part)
		}
		v[i] = f
	}
	return NewRect(v[0], v[1], v[2], v[3]), nil
}

// ParsePoint parses "x,y" or "x,y,z" into a Point.
func ParsePoint(s string) (Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return Point{}, errors.New(errors.ErrCodeInvalidInput, "point %q must be x,y or x,y,z", s)
	}
	var v [3]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return Point{}, errors.New(errors.ErrCodeInvalidInput, "point %q: invalid number %q", s, part)
		}
		v[i] = f
	}
	return Point{X: v[0], Y: v[1], Z: v[2]}, nil
}

// Valid reports whether r has finite, ordered bounds.
func (r Rect) Valid() bool {
	for _, v := range []float64{r.MinX, r.MinY, r.MaxX, r.MaxY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.MinX <= r.MaxX && r.MinY <= r.MaxY
}

// String formats r as "x1,y1,x2,y2", the form ParseRect reads.
func (r Rect) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", r.MinX, r.MinY, r.MaxX, r.MaxY)
}

// Contains reports whether p lies inside r in plan, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}
