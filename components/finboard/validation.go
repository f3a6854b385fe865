package finboard

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ControlValidator checks raw control payloads before they reach a session.
// Validation covers shape only; unknown companies or groups pass through and
// simply produce empty views downstream.
type ControlValidator interface {
	Validate(payload map[string]any) error
}

const controlsSchemaName = "controls.json"

const controlsSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["company", "metric_group", "year_min", "year_max"],
	"additionalProperties": false,
	"properties": {
		"company": {"type": "string", "minLength": 1},
		"metric_group": {"type": "string", "minLength": 1},
		"year_min": {"type": "integer"},
		"year_max": {"type": "integer"}
	}
}`

// JSONSchemaValidator validates control payloads against the controls
// schema, compiled once on first use.
type JSONSchemaValidator struct {
	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{}
}

// Validate ensures the payload carries all four controls with the right
// types and nothing else.
func (v *JSONSchemaValidator) Validate(payload map[string]any) error {
	schema, err := v.schema()
	if err != nil {
		return err
	}
	normalized := map[string]any{}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("finboard: marshal controls payload: %w", err)
		}
		if err := json.Unmarshal(data, &normalized); err != nil {
			return fmt.Errorf("finboard: normalize controls payload: %w", err)
		}
	}
	if err := schema.Validate(normalized); err != nil {
		return fmt.Errorf("finboard: controls payload failed validation: %w", err)
	}
	return nil
}

func (v *JSONSchemaValidator) schema() (*jsonschema.Schema, error) {
	v.once.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(controlsSchemaName, strings.NewReader(controlsSchema)); err != nil {
			v.err = fmt.Errorf("finboard: load controls schema: %w", err)
			return
		}
		v.compiled, v.err = compiler.Compile(controlsSchemaName)
		if v.err != nil {
			v.err = fmt.Errorf("finboard: compile controls schema: %w", v.err)
		}
	})
	return v.compiled, v.err
}

type noopControlValidator struct{}

func (noopControlValidator) Validate(map[string]any) error { return nil }
