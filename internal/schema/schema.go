// Package schema validates decoded configuration files against a JSON
// Schema describing the Zuul dialect. A default schema is embedded in the
// binary; a project may override it with its own schema file.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed zuul-schema.json
var defaultSchema []byte

const schemaURL = "zuul-schema.json"

// Finding is a single schema violation produced for one file.
type Finding struct {
	Message      string
	InstancePath string
	SchemaPath   string
}

// Validator validates file contents against a compiled schema.
type Validator struct {
	schema *jsonschema.Schema
}

// Load compiles the schema at path, or the embedded default schema when
// path is empty. Zuul's schema predates the 2020-12 draft, so compilation
// pins draft 2019-09.
func Load(path string) (*Validator, error) {
	data := defaultSchema
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read schema %s: %w", path, err)
		}
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2019
	if err := compiler.AddResource(schemaURL, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	sch, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return &Validator{schema: sch}, nil
}

// Validate checks one file's decoded document list against the schema and
// returns every leaf violation. A document set that conforms yields nil.
func (v *Validator) Validate(docs []any) []Finding {
	instance, err := normalize(docs)
	if err != nil {
		return []Finding{{Message: err.Error()}}
	}

	err = v.schema.Validate(instance)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []Finding{{Message: err.Error()}}
	}

	var findings []Finding
	collectLeaves(ve, &findings)
	return findings
}

// normalize round-trips YAML-decoded values through JSON so the validator
// sees the value types it expects.
func normalize(docs []any) (any, error) {
	if docs == nil {
		docs = []any{}
	}
	data, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("cannot validate document: %w", err)
	}
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return nil, fmt.Errorf("cannot validate document: %w", err)
	}
	return instance, nil
}

// collectLeaves flattens a validation error tree into its leaf causes,
// which carry the specific messages worth reporting.
func collectLeaves(ve *jsonschema.ValidationError, out *[]Finding) {
	if len(ve.Causes) == 0 {
		*out = append(*out, Finding{
			Message:      ve.Message,
			InstancePath: ve.InstanceLocation,
			SchemaPath:   ve.KeywordLocation,
		})
		return
	}
	for _, cause := range ve.Causes {
		collectLeaves(cause, out)
	}
}
