package dsl

import (
	"context"
	"encoding/json"
	"reflect"
	"strconv"

	modeldict "github.com/modeldict/modeldict-go"
	"github.com/modeldict/modeldict-go/i18n"
	js "github.com/modeldict/modeldict-go/jsonschema"
)

// Type adapts a field's validation engine to the any-typed surface the record
// consumes. It keeps parse/validate/export as composable hooks so refinements
// like Min or Nullable wrap the previous behavior.
type Type struct {
	parse    func(context.Context, any) (any, error)
	validate func(context.Context, any) error
	schema   func() (*js.Schema, error)
}

var _ modeldict.FieldType = Type{}

// Parse transforms an unknown input into the field's canonical value.
func (t Type) Parse(ctx context.Context, v any) (any, error) {
	if t.parse == nil {
		return v, nil
	}
	return t.parse(ctx, v)
}

// ValidateValue verifies a value already in canonical form.
func (t Type) ValidateValue(ctx context.Context, v any) error {
	if t.validate != nil {
		return t.validate(ctx, v)
	}
	if t.parse == nil {
		return nil
	}
	_, err := t.parse(ctx, v)
	return err
}

// JSONSchema projects the field type into a JSON Schema representation.
func (t Type) JSONSchema() (*js.Schema, error) {
	if t.schema == nil {
		return &js.Schema{}, nil
	}
	return t.schema()
}

// Nullable wraps the type to accept nil for both parse and validate.
// nil is a real value here, distinct from the Unset sentinel.
func (t Type) Nullable() Type {
	prevParse := t.parse
	prevValidate := t.validate
	prevJSON := t.schema
	out := t
	out.parse = func(ctx context.Context, v any) (any, error) {
		if v == nil {
			return nil, nil
		}
		if prevParse == nil {
			return v, nil
		}
		return prevParse(ctx, v)
	}
	out.validate = func(ctx context.Context, v any) error {
		if v == nil {
			return nil
		}
		if prevValidate != nil {
			return prevValidate(ctx, v)
		}
		if prevParse == nil {
			return nil
		}
		_, err := prevParse(ctx, v)
		return err
	}
	out.schema = func() (*js.Schema, error) {
		s := &js.Schema{}
		if prevJSON != nil {
			ps, err := prevJSON()
			if err != nil {
				return nil, err
			}
			if ps != nil {
				s = ps
			}
		}
		s.Nullable = true
		return s, nil
	}
	return out
}

// Min sets a numeric minimum (inclusive) constraint at runtime and in JSON Schema.
// Non-numeric values are ignored by this guard (type errors are handled elsewhere).
func (t Type) Min(n float64) Type {
	prevParse := t.parse
	prevValidate := t.validate
	prevJSON := t.schema
	out := t
	out.parse = func(ctx context.Context, v any) (any, error) {
		val := v
		if prevParse != nil {
			var err error
			val, err = prevParse(ctx, v)
			if err != nil {
				return nil, err
			}
		}
		if err := minCheck(val, n); err != nil {
			return nil, err
		}
		return val, nil
	}
	out.validate = func(ctx context.Context, v any) error {
		if prevValidate != nil {
			if err := prevValidate(ctx, v); err != nil {
				return err
			}
		}
		return minCheck(v, n)
	}
	out.schema = func() (*js.Schema, error) {
		s := &js.Schema{}
		if prevJSON != nil {
			ps, err := prevJSON()
			if err != nil {
				return nil, err
			}
			if ps != nil {
				s = ps
			}
		}
		s.Minimum = jsPtrFloat(n)
		if s.Type == "" {
			s.Type = "number"
		}
		return s, nil
	}
	return out
}

// Max sets a numeric maximum (inclusive) constraint at runtime and in JSON Schema.
func (t Type) Max(n float64) Type {
	prevParse := t.parse
	prevValidate := t.validate
	prevJSON := t.schema
	out := t
	out.parse = func(ctx context.Context, v any) (any, error) {
		val := v
		if prevParse != nil {
			var err error
			val, err = prevParse(ctx, v)
			if err != nil {
				return nil, err
			}
		}
		if err := maxCheck(val, n); err != nil {
			return nil, err
		}
		return val, nil
	}
	out.validate = func(ctx context.Context, v any) error {
		if prevValidate != nil {
			if err := prevValidate(ctx, v); err != nil {
				return err
			}
		}
		return maxCheck(v, n)
	}
	out.schema = func() (*js.Schema, error) {
		s := &js.Schema{}
		if prevJSON != nil {
			ps, err := prevJSON()
			if err != nil {
				return nil, err
			}
			if ps != nil {
				s = ps
			}
		}
		s.Maximum = jsPtrFloat(n)
		if s.Type == "" {
			s.Type = "number"
		}
		return s, nil
	}
	return out
}

// ---- helpers ----

func jsPtrFloat(v float64) *float64 { return &v }

func minCheck(v any, min float64) error {
	f, ok := asFloat(v)
	if !ok {
		return nil
	}
	if f < min {
		return modeldict.Issues{{Path: "/", Code: modeldict.CodeTooSmall, Message: i18n.T(modeldict.CodeTooSmall, nil)}}
	}
	return nil
}

func maxCheck(v any, max float64) error {
	f, ok := asFloat(v)
	if !ok {
		return nil
	}
	if f > max {
		return modeldict.Issues{{Path: "/", Code: modeldict.CodeTooBig, Message: i18n.T(modeldict.CodeTooBig, nil)}}
	}
	return nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case int:
		return float64(n), true
	case int8, int16, int32, int64:
		return float64(reflect.ValueOf(n).Int()), true
	case uint, uint8, uint16, uint32, uint64:
		return float64(reflect.ValueOf(n).Uint()), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		if f, err := strconv.ParseFloat(string(n), 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}
