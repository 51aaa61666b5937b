// Package schema provides declarative shape and constraint descriptors for
// flow inputs and outputs, plus the recursive validator that checks untyped
// value trees against them.
//
// Descriptors are built once at startup and never mutated afterwards, so they
// are safe for concurrent use by any number of invocations.
package schema

import (
	"fmt"
	"regexp"
)

// Kind identifies the primitive shape of a schema node.
type Kind string

const (
	// KindString matches string values.
	KindString Kind = "string"
	// KindNumber matches numeric values.
	KindNumber Kind = "number"
	// KindBool matches boolean values.
	KindBool Kind = "boolean"
	// KindEnum matches one of a fixed set of string members (case-sensitive).
	KindEnum Kind = "enum"
	// KindList matches a list whose elements all conform to Elem.
	KindList Kind = "list"
	// KindObject matches a map with the declared Fields.
	KindObject Kind = "object"
)

// Schema describes the required shape and constraints of a value. A Schema is
// a tree: object nodes carry Fields, list nodes carry Elem.
type Schema struct {
	Kind        Kind
	Description string
	Required    bool
	Default     any

	// String constraints
	MinLength int
	Format    string
	pattern   *regexp.Regexp

	// Number constraints
	Minimum *float64
	Maximum *float64

	// Enum members
	Members []string

	// Object fields
	Fields map[string]*Schema

	// List element schema and minimum count
	Elem     *Schema
	MinItems int
}

// String creates a string schema node.
func String(description string) *Schema {
	return &Schema{Kind: KindString, Description: description}
}

// Number creates a numeric schema node.
func Number(description string) *Schema {
	return &Schema{Kind: KindNumber, Description: description}
}

// Bool creates a boolean schema node.
func Bool(description string) *Schema {
	return &Schema{Kind: KindBool, Description: description}
}

// Enum creates an enum schema node with the given members.
func Enum(description string, members ...string) *Schema {
	return &Schema{Kind: KindEnum, Description: description, Members: members}
}

// List creates a list schema node with the given element schema.
func List(description string, elem *Schema) *Schema {
	return &Schema{Kind: KindList, Description: description, Elem: elem}
}

// Object creates an object schema node with the given fields.
func Object(description string, fields map[string]*Schema) *Schema {
	return &Schema{Kind: KindObject, Description: description, Fields: fields}
}

// Require marks the node as required and returns it for chaining during
// startup construction.
func (s *Schema) Require() *Schema {
	s.Required = true
	return s
}

// WithDefault sets the value applied when an optional field is absent.
func (s *Schema) WithDefault(v any) *Schema {
	s.Default = v
	return s
}

// WithMinLength sets the minimum string length constraint.
func (s *Schema) WithMinLength(n int) *Schema {
	s.MinLength = n
	return s
}

// WithFormat sets a regular expression format constraint. The expression is
// compiled here, at startup, so an invalid pattern fails fast rather than on
// the first invocation.
func (s *Schema) WithFormat(expr string) *Schema {
	s.Format = expr
	s.pattern = regexp.MustCompile(expr)
	return s
}

// WithBounds sets inclusive numeric bounds.
func (s *Schema) WithBounds(min, max float64) *Schema {
	s.Minimum = &min
	s.Maximum = &max
	return s
}

// WithMinItems sets the minimum element count for a list node.
func (s *Schema) WithMinItems(n int) *Schema {
	s.MinItems = n
	return s
}

// JSONSchema renders the descriptor as a JSON Schema map, used to instruct
// the provider to emit structured output shaped like a flow's output schema.
func (s *Schema) JSONSchema() map[string]any {
	out := map[string]any{}
	if s.Description != "" {
		out["description"] = s.Description
	}
	switch s.Kind {
	case KindString:
		out["type"] = "string"
		if s.MinLength > 0 {
			out["minLength"] = s.MinLength
		}
		if s.Format != "" {
			out["pattern"] = s.Format
		}
	case KindNumber:
		out["type"] = "number"
		if s.Minimum != nil {
			out["minimum"] = *s.Minimum
		}
		if s.Maximum != nil {
			out["maximum"] = *s.Maximum
		}
	case KindBool:
		out["type"] = "boolean"
	case KindEnum:
		out["type"] = "string"
		members := make([]any, len(s.Members))
		for i, m := range s.Members {
			members[i] = m
		}
		out["enum"] = members
	case KindList:
		out["type"] = "array"
		if s.Elem != nil {
			out["items"] = s.Elem.JSONSchema()
		}
		if s.MinItems > 0 {
			out["minItems"] = s.MinItems
		}
	case KindObject:
		out["type"] = "object"
		props := map[string]any{}
		required := []string{}
		for name, field := range s.Fields {
			props[name] = field.JSONSchema()
			if field.Required {
				required = append(required, name)
			}
		}
		out["properties"] = props
		if len(required) > 0 {
			out["required"] = required
		}
		out["additionalProperties"] = false
	}
	return out
}

// joinPath appends a field name to a dotted path.
func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// indexPath appends a list index to a path.
func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
