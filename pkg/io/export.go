package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/tagplacer/pkg/scene"
)

// WriteJSON encodes s as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(s *scene.Scene, w io.Writer) error {
	return WriteIndented(s, w)
}

// WriteIndented encodes v as two-space indented JSON.
func WriteIndented(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportScene writes s to a JSON file at path.
func ExportScene(s *scene.Scene, path string) error {
	return exportFile(path, func(w io.Writer) error { return WriteJSON(s, w) })
}

// ExportIndented writes v to a JSON file at path.
func ExportIndented(v any, path string) error {
	return exportFile(path, func(w io.Writer) error { return WriteIndented(v, w) })
}

func exportFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
