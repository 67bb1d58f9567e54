package dsl

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"time"

	modeldict "github.com/modeldict/modeldict-go"
	"github.com/modeldict/modeldict-go/i18n"
	js "github.com/modeldict/modeldict-go/jsonschema"
)

func invalidType(hint string) modeldict.Issues {
	return modeldict.Issues{{Path: "/", Code: modeldict.CodeInvalidType, Message: i18n.T(modeldict.CodeInvalidType, nil), Hint: hint}}
}

// String returns the string field type. Inputs must already be strings; no
// stringification of other types is attempted.
func String() Type {
	return Type{
		parse: func(ctx context.Context, v any) (any, error) {
			s, ok := v.(string)
			if !ok {
				return nil, invalidType("expected string")
			}
			return s, nil
		},
		validate: func(ctx context.Context, v any) error {
			if _, ok := v.(string); !ok {
				return invalidType("expected string")
			}
			return nil
		},
		schema: func() (*js.Schema, error) { return &js.Schema{Type: "string"}, nil },
	}
}

// Bool returns the bool field type.
func Bool() Type {
	return Type{
		parse: func(ctx context.Context, v any) (any, error) {
			b, ok := v.(bool)
			if !ok {
				return nil, invalidType("expected bool")
			}
			return b, nil
		},
		validate: func(ctx context.Context, v any) error {
			if _, ok := v.(bool); !ok {
				return invalidType("expected bool")
			}
			return nil
		},
		schema: func() (*js.Schema, error) { return &js.Schema{Type: "boolean"}, nil },
	}
}

// Int returns the integer field type with int64 as the canonical value.
// Integral floats and json.Number values coerce; anything else is rejected.
func Int() Type {
	return Type{
		parse: func(ctx context.Context, v any) (any, error) {
			n, err := coerceInt64(v)
			if err != nil {
				return nil, err
			}
			return n, nil
		},
		validate: func(ctx context.Context, v any) error {
			_, err := coerceInt64(v)
			return err
		},
		schema: func() (*js.Schema, error) { return &js.Schema{Type: "integer"}, nil },
	}
}

// Float returns the float field type with float64 as the canonical value.
func Float() Type {
	return Type{
		parse: func(ctx context.Context, v any) (any, error) {
			switch n := v.(type) {
			case float64:
				return n, nil
			case float32:
				return float64(n), nil
			case int:
				return float64(n), nil
			case int64:
				return float64(n), nil
			case json.Number:
				f, err := strconv.ParseFloat(string(n), 64)
				if err != nil {
					return nil, invalidType("expected number")
				}
				return f, nil
			default:
				return nil, invalidType("expected number")
			}
		},
		validate: func(ctx context.Context, v any) error {
			if _, ok := v.(float64); !ok {
				return invalidType("expected float64")
			}
			return nil
		},
		schema: func() (*js.Schema, error) { return &js.Schema{Type: "number"}, nil },
	}
}

// NumberJSON returns the field type preserving numbers as json.Number.
func NumberJSON() Type {
	return Type{
		parse: func(ctx context.Context, v any) (any, error) {
			switch n := v.(type) {
			case json.Number:
				return n, nil
			case float64:
				return json.Number(strconv.FormatFloat(n, 'g', -1, 64)), nil
			case int:
				return json.Number(strconv.Itoa(n)), nil
			case int64:
				return json.Number(strconv.FormatInt(n, 10)), nil
			default:
				return nil, invalidType("expected number")
			}
		},
		validate: func(ctx context.Context, v any) error {
			if _, ok := v.(json.Number); !ok {
				return invalidType("expected json.Number")
			}
			return nil
		},
		schema: func() (*js.Schema, error) { return &js.Schema{Type: "number"}, nil },
	}
}

// TimeRFC3339 returns the field type converting RFC3339 strings to time.Time.
// Existing time.Time values pass through.
func TimeRFC3339() Type {
	return Type{
		parse: func(ctx context.Context, v any) (any, error) {
			switch t := v.(type) {
			case time.Time:
				return t, nil
			case string:
				parsed, err := parseRFC3339(t)
				if err != nil {
					return nil, modeldict.Issues{{Path: "/", Code: modeldict.CodeInvalidFormat, Message: "invalid RFC3339 time", Cause: err}}
				}
				return parsed, nil
			default:
				return nil, invalidType("expected RFC3339 string or time.Time")
			}
		},
		validate: func(ctx context.Context, v any) error {
			if _, ok := v.(time.Time); !ok {
				return invalidType("expected time.Time")
			}
			return nil
		},
		schema: func() (*js.Schema, error) { return &js.Schema{Type: "string", Format: "date-time"}, nil },
	}
}

// Any returns the unconstrained field type: every value passes as-is.
func Any() Type {
	return Type{
		schema: func() (*js.Schema, error) { return &js.Schema{}, nil },
	}
}

func coerceInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, invalidType("integer overflow")
		}
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, invalidType("integer overflow")
		}
		return int64(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.IsNaN(n) {
			return 0, invalidType("expected integer")
		}
		return int64(n), nil
	case json.Number:
		i, err := strconv.ParseInt(string(n), 10, 64)
		if err != nil {
			return 0, invalidType("expected integer")
		}
		return i, nil
	default:
		return 0, invalidType("expected integer")
	}
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}
