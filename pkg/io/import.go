package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/tagplacer/pkg/errors"
	"github.com/matzehuels/tagplacer/pkg/scene"
)

// ReadJSON decodes a JSON scene from r.
//
// The document is validated against the scene schema first, then decoded, then
// checked with [scene.Scene.Validate]. Schema violations are INVALID_INPUT
// errors listing every problem; unparseable input is INVALID_FORMAT.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*scene.Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if err := validate(gojsonschema.NewBytesLoader(data)); err != nil {
		return nil, err
	}

	var s scene.Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode scene")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ReadYAML decodes a YAML scene from r, with the same checks as [ReadJSON].
func ReadYAML(r io.Reader) (*scene.Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode scene")
	}
	if doc == nil {
		doc = map[string]any{}
	}
	if err := validate(gojsonschema.NewGoLoader(doc)); err != nil {
		return nil, err
	}

	var s scene.Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode scene")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ImportScene reads the scene file at path. Files ending in .yaml or .yml are
// read as YAML, .json as JSON; anything else is an INVALID_FORMAT error.
func ImportScene(path string) (*scene.Scene, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}

	var read func(io.Reader) (*scene.Scene, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		read = ReadJSON
	case ".yaml", ".yml":
		read = ReadYAML
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported scene format %q (use .json, .yaml or .yml)", filepath.Ext(path))
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	s, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
