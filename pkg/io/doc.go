// Package io provides JSON and YAML import and export for scenes.
//
// # Overview
//
// A scene document lists the point features of a drawing, the tag families that
// can annotate them, and any tags already placed. The same structure is accepted
// as JSON or YAML:
//
//	{
//	  "name": "level 1",
//	  "features": [
//	    {"id": "w1", "category": "windows", "location": {"x": 0, "y": 0, "z": 0}},
//	    {"id": "w2", "category": "windows", "location": {"x": 3, "y": 0, "z": 0}}
//	  ],
//	  "families": [
//	    {"name": "Window Tag", "category": "window_tags", "symbols": ["Standard"]}
//	  ],
//	  "tags": [
//	    {
//	      "id": "t1", "feature_id": "w1",
//	      "head": {"x": 0, "y": 0},
//	      "bbox": {"min": {"x": -2, "y": -1}, "max": {"x": 2, "y": 1}}
//	    }
//	  ]
//	}
//
// # Validation
//
// Every document is checked against an embedded JSON Schema before it is
// decoded, so structural problems are reported together and by path (for
// example "features.1.location: y is required") rather than one at a time.
// After decoding, [scene.Scene.Validate] checks references between tags and
// features.
//
// # Import
//
// Use [ImportScene] to read a file (the format follows the extension), or
// [ReadJSON] / [ReadYAML] to read from any io.Reader:
//
//	s, err := io.ImportScene("level1.yaml")
//
// # Export
//
// [WriteJSON] and [ExportScene] write scenes as indented JSON that
// [ReadJSON] accepts again. [WriteIndented] writes any value, such as a
// placement report, in the same style.
package io
