// Package scene models the parts of a host drawing that tag placement reads and
// writes: point features such as windows, the tag families available for
// annotating them, and the tags themselves.
//
// A [Scene] is plain data. Query helpers never modify it; [Scene.Clone] gives
// callers an independent copy to update.
//
// # Selecting targets
//
//	windows := s.FeaturesIn("windows")
//	picked := scene.Select(windows, geom.NewRect(0, 0, 50, 30))
//	obstacles := scene.Locations(picked)
//
// # Choosing a tag style
//
//	families := s.MatchFamilies("window_tags", scene.DefaultFamilyPatterns...)
//	symbol, err := families[0].FirstSymbol()
//
// # Tags
//
// A tag is anchored on the midpoint of the right edge of its bounding box (see
// [Tag.Anchor]). [Tag.MoveHead] relocates the head, carries the box along, and
// switches the leader to [LeaderFree] so it no longer snaps to the feature.
package scene
