package io

import (
	_ "embed"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/matzehuels/tagplacer/pkg/errors"
)

//go:embed scene.schema.json
var sceneSchema []byte

var sceneSchemaLoader = gojsonschema.NewBytesLoader(sceneSchema)

// SceneSchema returns the JSON Schema scene documents are validated against.
func SceneSchema() []byte {
	return append([]byte(nil), sceneSchema...)
}

// validate checks doc against the scene schema and reports every violation.
func validate(doc gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(sceneSchemaLoader, doc)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "malformed scene document")
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return errors.New(errors.ErrCodeInvalidInput, "scene does not match schema: %s", strings.Join(msgs, "; "))
	}
	return nil
}
