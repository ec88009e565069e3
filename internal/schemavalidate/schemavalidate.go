// Package schemavalidate compiles JSON schemas built from tool parameter
// lists and validates decoded tool-call arguments against them, giving the
// orchestrator a precise reason ("missing required field X", "field Y must
// be a number") instead of a bare JSON-decode failure.
package schemavalidate

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Param mirrors the shape of a scenario.ToolParameter without importing the
// scenario package, keeping this package dependency-free in that direction.
type Param struct {
	Name        string
	Type        string // "string", "number", "integer", "boolean", "object", "array"
	Description string
	Required    bool
}

// Compile builds a draft 2020-12 object schema from a tool's parameter list.
func Compile(toolName string, params []Param) (*jsonschema.Schema, error) {
	schemaDoc := map[string]any{
		"$schema":    "https://json-schema.org/draft/2020-12/schema",
		"type":       "object",
		"properties": map[string]any{},
	}
	props := schemaDoc["properties"].(map[string]any)
	var required []string
	for _, p := range params {
		prop := map[string]any{}
		if p.Type != "" {
			prop["type"] = p.Type
		}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		props[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}
	if len(required) > 0 {
		schemaDoc["required"] = required
	}

	raw, err := json.Marshal(schemaDoc)
	if err != nil {
		return nil, fmt.Errorf("schemavalidate: marshal schema for %q: %w", toolName, err)
	}
	var unmarshalled any
	if err := json.Unmarshal(raw, &unmarshalled); err != nil {
		return nil, fmt.Errorf("schemavalidate: reparse schema for %q: %w", toolName, err)
	}

	compiler := jsonschema.NewCompiler()
	resourceName := "crisisbench://tools/" + toolName
	if err := compiler.AddResource(resourceName, unmarshalled); err != nil {
		return nil, fmt.Errorf("schemavalidate: add resource for %q: %w", toolName, err)
	}
	schema, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, fmt.Errorf("schemavalidate: compile schema for %q: %w", toolName, err)
	}
	return schema, nil
}

// Validate checks decoded tool-call arguments against a compiled schema and
// returns a short, human-readable description of the first validation issue
// encountered, or "" if args is valid.
func Validate(schema *jsonschema.Schema, args map[string]any) string {
	if schema == nil {
		return ""
	}
	if err := schema.Validate(args); err != nil {
		return err.Error()
	}
	return ""
}
