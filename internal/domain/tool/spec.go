package tool

import (
	"errors"
	"fmt"
	"strings"

	"github.com/janhq/jan-assistant/internal/domain/llm"
)

// Parameter types understood by the model-facing schema.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeArray   = "array"
)

// ErrInvalidSpec is returned when a Spec cannot be registered.
var ErrInvalidSpec = errors.New("invalid tool spec")

// Param declares one named argument of a tool.
type Param struct {
	Name        string
	Type        string
	Description string
	Required    bool
	// Default is substituted when an optional argument is omitted.
	Default any
	// Items is the element type for array parameters.
	Items string
	Enum  []string
}

// Spec describes a callable tool: its model-facing name and schema plus the
// verb phrase used in error results ("Error <Action>: ...").
type Spec struct {
	Name        string
	Description string
	Action      string
	Params      []Param
}

// RequiredNames lists the required parameter names in declaration order.
func (s Spec) RequiredNames() []string {
	required := make([]string, 0, len(s.Params))
	for _, p := range s.Params {
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return required
}

// InputSchema renders the JSON-schema-like object presented to the model.
func (s Spec) InputSchema() map[string]any {
	properties := make(map[string]any, len(s.Params))
	for _, p := range s.Params {
		prop := map[string]any{
			"type":        p.Type,
			"description": p.Description,
		}
		if p.Type == TypeArray {
			items := p.Items
			if items == "" {
				items = TypeString
			}
			prop["items"] = map[string]any{"type": items}
		}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		if p.Default != nil {
			prop["default"] = p.Default
		}
		properties[p.Name] = prop
	}
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   s.RequiredNames(),
	}
}

// Definition converts the spec into the model boundary type.
func (s Spec) Definition() llm.ToolDefinition {
	return llm.ToolDefinition{
		Name:        s.Name,
		Description: s.Description,
		InputSchema: s.InputSchema(),
	}
}

func (s Spec) validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidSpec)
	}
	seen := make(map[string]struct{}, len(s.Params))
	for _, p := range s.Params {
		if p.Name == "" {
			return fmt.Errorf("%w: %s has an unnamed parameter", ErrInvalidSpec, s.Name)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("%w: %s declares %q twice", ErrInvalidSpec, s.Name, p.Name)
		}
		seen[p.Name] = struct{}{}
		if p.Required && p.Default != nil {
			return fmt.Errorf("%w: %s.%s is required but declares a default", ErrInvalidSpec, s.Name, p.Name)
		}
	}
	return nil
}

func (s Spec) action() string {
	if s.Action != "" {
		return s.Action
	}
	return "executing " + s.Name
}
