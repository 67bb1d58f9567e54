package modeldict

import (
	"context"

	"github.com/modeldict/modeldict-go/i18n"
	js "github.com/modeldict/modeldict-go/jsonschema"
)

// FieldType surfaces the two pillars the mapping adapter needs from a field's
// validation engine: coercing construction and typed-value validation.
// Implementations live in the dsl package.
type FieldType interface {
	// Parse transforms an unknown input into the field's canonical value
	// (Coerce -> Validate). It returns an error when validation fails.
	Parse(ctx context.Context, v any) (any, error)
	// ValidateValue verifies a value already in canonical form.
	ValidateValue(ctx context.Context, v any) error
}

// jsonSchemer is the optional hook a FieldType may implement to participate in
// JSON Schema export.
type jsonSchemer interface {
	JSONSchema() (*js.Schema, error)
}

// Field is a single declared field of a Schema.
type Field struct {
	Name     string
	Type     FieldType
	Required bool
	// Default is applied when the field is missing at construction. It may be
	// the Unset sentinel, declaring the field optional-and-absent. Defaults are
	// already in canonical form (the dsl builder parses them at build time).
	Default    any
	HasDefault bool
}

// Schema is an immutable set of declared fields in declaration order, plus the
// record-level policies. Build one with dsl.Model().
type Schema struct {
	fields []Field
	index  map[string]int
	extra  ExtraPolicy
	frozen bool
}

// NewSchema validates the field list and returns a Schema. Declaration order
// is preserved; it determines key enumeration order of records.
func NewSchema(fields []Field, extra ExtraPolicy, frozen bool) (*Schema, error) {
	idx := make(map[string]int, len(fields))
	var iss Issues
	for i, f := range fields {
		if f.Name == "" {
			iss = AppendIssues(iss, Issue{Path: "/", Code: CodeParseError, Message: "field with empty name"})
			continue
		}
		if _, dup := idx[f.Name]; dup {
			iss = AppendIssues(iss, Issue{Path: "/" + f.Name, Code: CodeParseError, Message: "duplicate field declaration"})
			continue
		}
		if f.Required && f.HasDefault {
			iss = AppendIssues(iss, Issue{Path: "/" + f.Name, Code: CodeParseError, Message: "required field cannot carry a default"})
			continue
		}
		idx[f.Name] = i
	}
	if len(iss) > 0 {
		return nil, iss
	}
	fs := make([]Field, len(fields))
	copy(fs, fields)
	return &Schema{fields: fs, index: idx, extra: extra, frozen: frozen}, nil
}

// MustSchema is like NewSchema but panics on error.
func MustSchema(fields []Field, extra ExtraPolicy, frozen bool) *Schema {
	s, err := NewSchema(fields, extra, frozen)
	if err != nil {
		panic(err)
	}
	return s
}

// Fields returns the declared fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Lookup returns the declared field by name.
func (s *Schema) Lookup(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Extra returns the policy for keys outside the declared schema.
func (s *Schema) Extra() ExtraPolicy { return s.extra }

// Frozen reports whether records of this schema reject mutation.
func (s *Schema) Frozen() bool { return s.frozen }

// JSONSchema projects the schema into a JSON Schema representation. Fields
// whose type does not expose an export hook map to the empty schema.
func (s *Schema) JSONSchema() (*js.Schema, error) {
	props := make(map[string]*js.Schema, len(s.fields))
	var req []string
	for _, f := range s.fields {
		ps := &js.Schema{}
		if j, ok := f.Type.(jsonSchemer); ok {
			fs, err := j.JSONSchema()
			if err != nil {
				return nil, err
			}
			if fs != nil {
				ps = fs
			}
		}
		if f.HasDefault && !IsUnset(f.Default) {
			ps.Default = f.Default
		}
		props[f.Name] = ps
		if f.Required {
			req = append(req, f.Name)
		}
	}
	var additional any
	switch s.extra {
	case ExtraForbid:
		additional = false
	default:
		// ExtraAllow keeps dynamic fields; ExtraIgnore accepts then discards
		// them, so JSON Schema marks them as accepted either way.
		additional = true
	}
	return &js.Schema{Type: "object", Properties: props, Required: req, AdditionalProperties: additional}, nil
}

// parseField routes a candidate value through the field's validation engine.
// Untyped fields store the value as-is.
func parseField(ctx context.Context, f Field, v any) (any, error) {
	if f.Type == nil {
		return v, nil
	}
	parsed, err := f.Type.Parse(ctx, v)
	if err != nil {
		return nil, rebaseIssues(f.Name, err)
	}
	return parsed, nil
}

func requiredIssue(name string) Issue {
	return Issue{Path: "/" + name, Code: CodeRequired, Message: i18n.T(CodeRequired, nil), Hint: "required field missing"}
}
