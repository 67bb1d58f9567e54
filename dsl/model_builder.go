package dsl

import (
	"context"

	modeldict "github.com/modeldict/modeldict-go"
)

type fieldDecl struct {
	name       string
	typ        modeldict.FieldType
	required   bool
	hasDefault bool
	rawDefault any
}

// ModelBuilder accumulates field declarations in order. Fields are optional
// and absent by default; mark them Required or give them a Default.
type ModelBuilder struct {
	fields []fieldDecl
	extra  modeldict.ExtraPolicy
	frozen bool
}

// FieldStep scopes per-field refinements after a Field call.
type FieldStep struct {
	b   *ModelBuilder
	idx int
}

// Model creates a new builder with safe defaults (ExtraAllow, mutable).
func Model() *ModelBuilder {
	return &ModelBuilder{extra: modeldict.ExtraAllow}
}

// Field declares a field with its type. Declaration order is key order.
func (b *ModelBuilder) Field(name string, t modeldict.FieldType) *FieldStep {
	b.fields = append(b.fields, fieldDecl{name: name, typ: t})
	return &FieldStep{b: b, idx: len(b.fields) - 1}
}

// Required marks the field as required and returns the builder.
func (f *FieldStep) Required() *ModelBuilder {
	f.b.fields[f.idx].required = true
	return f.b
}

// Optional declares the field with the Unset default: present in the schema,
// absent from the mapping view until assigned.
func (f *FieldStep) Optional() *ModelBuilder {
	f.b.fields[f.idx].hasDefault = true
	f.b.fields[f.idx].rawDefault = modeldict.Unset
	return f.b
}

// Default sets the field's default, applied when construction input omits the
// key. The default is parsed through the field type at Build time.
func (f *FieldStep) Default(v any) *ModelBuilder {
	f.b.fields[f.idx].hasDefault = true
	f.b.fields[f.idx].rawDefault = v
	return f.b
}

// Field chains to the next declaration.
func (f *FieldStep) Field(name string, t modeldict.FieldType) *FieldStep {
	return f.b.Field(name, t)
}

func (f *FieldStep) ExtraAllow() *ModelBuilder         { return f.b.ExtraAllow() }
func (f *FieldStep) ExtraIgnore() *ModelBuilder        { return f.b.ExtraIgnore() }
func (f *FieldStep) ExtraForbid() *ModelBuilder        { return f.b.ExtraForbid() }
func (f *FieldStep) Frozen() *ModelBuilder             { return f.b.Frozen() }
func (f *FieldStep) Build() (*modeldict.Schema, error) { return f.b.Build() }
func (f *FieldStep) MustBuild() *modeldict.Schema      { return f.b.MustBuild() }

func (f *FieldStep) Require(names ...string) *ModelBuilder { return f.b.Require(names...) }

// Require marks one or more previously declared fields as required.
func (b *ModelBuilder) Require(names ...string) *ModelBuilder {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	for i := range b.fields {
		if _, ok := set[b.fields[i].name]; ok {
			b.fields[i].required = true
		}
	}
	return b
}

// ExtraAllow permits dynamic fields via item assignment (the default).
func (b *ModelBuilder) ExtraAllow() *ModelBuilder {
	b.extra = modeldict.ExtraAllow
	return b
}

// ExtraIgnore drops unknown keys at construction and rejects dynamic assignment.
func (b *ModelBuilder) ExtraIgnore() *ModelBuilder {
	b.extra = modeldict.ExtraIgnore
	return b
}

// ExtraForbid rejects unknown keys everywhere.
func (b *ModelBuilder) ExtraForbid() *ModelBuilder {
	b.extra = modeldict.ExtraForbid
	return b
}

// Frozen makes every record of this schema reject mutation.
func (b *ModelBuilder) Frozen() *ModelBuilder {
	b.frozen = true
	return b
}

// Build resolves defaults through their field types and returns the Schema.
func (b *ModelBuilder) Build() (*modeldict.Schema, error) {
	ctx := context.Background()
	fields := make([]modeldict.Field, 0, len(b.fields))
	var iss modeldict.Issues
	for _, fd := range b.fields {
		f := modeldict.Field{Name: fd.name, Type: fd.typ, Required: fd.required, HasDefault: fd.hasDefault}
		if fd.hasDefault {
			f.Default = fd.rawDefault
			if !modeldict.IsUnset(fd.rawDefault) && fd.typ != nil {
				parsed, err := fd.typ.Parse(ctx, fd.rawDefault)
				if err != nil {
					if child, ok := modeldict.AsIssues(err); ok {
						for _, it := range child {
							it.Path = "/" + fd.name
							it.Hint = "invalid default"
							iss = modeldict.AppendIssues(iss, it)
						}
					} else {
						iss = modeldict.AppendIssues(iss, modeldict.Issue{Path: "/" + fd.name, Code: modeldict.CodeParseError, Message: "invalid default", Cause: err})
					}
					continue
				}
				f.Default = parsed
			}
		}
		fields = append(fields, f)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return modeldict.NewSchema(fields, b.extra, b.frozen)
}

// MustBuild is like Build but panics on error.
func (b *ModelBuilder) MustBuild() *modeldict.Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
