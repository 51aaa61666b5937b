package schema

import (
	"encoding/json"
	"fmt"
)

// FieldError reports a single constraint violation, including the dotted
// path of the offending field.
type FieldError struct {
	Path       string
	Constraint string
	Message    string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	path := e.Path
	if path == "" {
		path = "(root)"
	}
	return fmt.Sprintf("field %s: %s", path, e.Message)
}

// Validate checks a value tree against the schema and returns the value with
// declared defaults applied for absent optional fields. The input value is
// never mutated; object and list nodes are shallow-copied before defaults are
// written. Unknown object fields are ignored by validation and preserved in
// the returned value.
func Validate(s *Schema, value any) (any, error) {
	return validate("", s, value)
}

func validate(path string, s *Schema, value any) (any, error) {
	switch s.Kind {
	case KindString:
		str, ok := value.(string)
		if !ok {
			return nil, &FieldError{Path: path, Constraint: "type", Message: fmt.Sprintf("expected string, got %T", value)}
		}
		if len(str) < s.MinLength {
			return nil, &FieldError{Path: path, Constraint: "minLength", Message: fmt.Sprintf("length %d is below minimum %d", len(str), s.MinLength)}
		}
		if s.pattern != nil && !s.pattern.MatchString(str) {
			return nil, &FieldError{Path: path, Constraint: "format", Message: fmt.Sprintf("value does not match format %q", s.Format)}
		}
		return str, nil

	case KindNumber:
		num, ok := toNumber(value)
		if !ok {
			return nil, &FieldError{Path: path, Constraint: "type", Message: fmt.Sprintf("expected number, got %T", value)}
		}
		if s.Minimum != nil && num < *s.Minimum {
			return nil, &FieldError{Path: path, Constraint: "minimum", Message: fmt.Sprintf("value %v is below minimum %v", num, *s.Minimum)}
		}
		if s.Maximum != nil && num > *s.Maximum {
			return nil, &FieldError{Path: path, Constraint: "maximum", Message: fmt.Sprintf("value %v is above maximum %v", num, *s.Maximum)}
		}
		return num, nil

	case KindBool:
		b, ok := value.(bool)
		if !ok {
			return nil, &FieldError{Path: path, Constraint: "type", Message: fmt.Sprintf("expected boolean, got %T", value)}
		}
		return b, nil

	case KindEnum:
		str, ok := value.(string)
		if !ok {
			return nil, &FieldError{Path: path, Constraint: "type", Message: fmt.Sprintf("expected string, got %T", value)}
		}
		for _, m := range s.Members {
			if str == m {
				return str, nil
			}
		}
		return nil, &FieldError{Path: path, Constraint: "enum", Message: fmt.Sprintf("value %q is not a member of %v", str, s.Members)}

	case KindList:
		list, ok := value.([]any)
		if !ok {
			return nil, &FieldError{Path: path, Constraint: "type", Message: fmt.Sprintf("expected list, got %T", value)}
		}
		if len(list) < s.MinItems {
			return nil, &FieldError{Path: path, Constraint: "minItems", Message: fmt.Sprintf("list has %d elements, minimum is %d", len(list), s.MinItems)}
		}
		out := make([]any, len(list))
		for i, elem := range list {
			validated, err := validate(indexPath(path, i), s.Elem, elem)
			if err != nil {
				return nil, err
			}
			out[i] = validated
		}
		return out, nil

	case KindObject:
		obj, ok := value.(map[string]any)
		if !ok {
			return nil, &FieldError{Path: path, Constraint: "type", Message: fmt.Sprintf("expected object, got %T", value)}
		}
		out := make(map[string]any, len(obj))
		for k, v := range obj {
			out[k] = v
		}
		for name, field := range s.Fields {
			raw, present := obj[name]
			if !present {
				if field.Required {
					return nil, &FieldError{Path: joinPath(path, name), Constraint: "required", Message: "required field is missing"}
				}
				if field.Default != nil {
					out[name] = field.Default
				}
				continue
			}
			validated, err := validate(joinPath(path, name), field, raw)
			if err != nil {
				return nil, err
			}
			out[name] = validated
		}
		return out, nil

	default:
		return nil, &FieldError{Path: path, Constraint: "kind", Message: fmt.Sprintf("unknown schema kind %q", s.Kind)}
	}
}

// toNumber normalizes the numeric representations that reach the validator:
// float64 from JSON decoding, plus the integer types callers hand in directly.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
