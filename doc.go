package modeldict

// Package modeldict augments schema-validated records with the read/write
// semantics of an associative container:
//
// - Declared fields are fixed by a Schema, validated/coerced on every write,
//   and toggled present/absent via the Unset sentinel.
// - Dynamic fields are free-form entries kept in insertion order, governed by
//   the schema's ExtraPolicy.
// - A stable error model via Issues (JSON Pointer, code, message).
//
// Design policy:
// - Keep only public APIs in the root package; the schema builder lives under dsl/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s := dsl.Model().
//		Field("id", dsl.Int()).Required().
//		Field("name", dsl.String()).Default("Jane Doe").
//		Field("email", dsl.String()).Optional().
//		MustBuild()
//
//	r, err := modeldict.New(ctx, s, map[string]any{"id": 42})
//	r.Has("email")            // false: declared but Unset
//	_ = r.Set(ctx, "email", "j@example.com")
//	out, err := r.MarshalJSON()
