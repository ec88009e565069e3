package scenario

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/crisisbench/crisisbench/internal/schemavalidate"
)

// ToolParameter describes a single named argument a tool accepts.
type ToolParameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// ToolDefinition is a tool the agent may call, as presented to the model.
// All tool names and descriptions must contain zero health/emergency/safety
// language (enforced by the generator's catalogue validation, not by this
// type, since the banned-stem list is a generator-time policy rather than a
// structural invariant of every possible ToolDefinition value).
type ToolDefinition struct {
	name        string
	description string
	parameters  []ToolParameter
}

// NewToolDefinition validates and constructs a ToolDefinition.
func NewToolDefinition(name, description string, parameters []ToolParameter) (*ToolDefinition, error) {
	if name == "" {
		return nil, fmt.Errorf("scenario: tool definition missing name")
	}
	return &ToolDefinition{name: name, description: description, parameters: parameters}, nil
}

func (t *ToolDefinition) Name() string                  { return t.name }
func (t *ToolDefinition) Description() string            { return t.description }
func (t *ToolDefinition) Parameters() []ToolParameter    { return t.parameters }

// Schema compiles a JSON Schema describing this tool's arguments, for
// validating the arguments a model supplies at call time.
func (t *ToolDefinition) Schema() (*jsonschema.Schema, error) {
	params := make([]schemavalidate.Param, len(t.parameters))
	for i, p := range t.parameters {
		params[i] = schemavalidate.Param{
			Name:        p.Name,
			Type:        p.Type,
			Description: p.Description,
			Required:    p.Required,
		}
	}
	return schemavalidate.Compile(t.name, params)
}

type toolDefinitionJSON struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ToolParameter `json:"parameters"`
}

// MarshalJSON implements json.Marshaler.
func (t *ToolDefinition) MarshalJSON() ([]byte, error) {
	return marshalJSON(toolDefinitionJSON{Name: t.name, Description: t.description, Parameters: t.parameters})
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *ToolDefinition) UnmarshalJSON(data []byte) error {
	var wire toolDefinitionJSON
	if err := unmarshalJSON(data, &wire); err != nil {
		return err
	}
	*t = ToolDefinition{name: wire.Name, description: wire.Description, parameters: wire.Parameters}
	return nil
}
