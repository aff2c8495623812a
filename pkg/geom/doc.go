// Package geom provides the small vector and box types used by tag placement.
//
// Points carry three coordinates because host documents are three-dimensional,
// but every distance and direction in this package is planar: only X and Y take
// part, and Z is carried through unchanged. Drawing views are planar, so two
// features at different elevations that coincide in plan still overlap on the
// sheet.
//
// # Points
//
//	a := geom.Point{X: 10}
//	b := geom.Point{X: 12}
//	a.Distance(b)      // 2
//	u, ok := a.Sub(b).Unit() // (-1, 0, 0), true
//
// # Boxes
//
// [BoundingBox] describes the extent of a placed tag. Its
// [BoundingBox.RightEdgeMidpoint] is the anchor from which placement candidates
// are generated.
//
// [Rect] is a planar selection region, the equivalent of dragging a selection
// rectangle over a drawing.
package geom
