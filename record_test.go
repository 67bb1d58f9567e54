package modeldict_test

import (
	"context"
	"testing"

	modeldict "github.com/modeldict/modeldict-go"
	g "github.com/modeldict/modeldict-go/dsl"
)

func userSchema(t *testing.T) *modeldict.Schema {
	t.Helper()
	s, err := g.Model().
		Field("id", g.Int()).Required().
		Field("name", g.String()).Default("Jane Doe").
		Field("email", g.String()).Optional().
		Build()
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}
	return s
}

func TestNew_DefaultsAndUnset(t *testing.T) {
	ctx := context.Background()
	r, err := modeldict.New(ctx, userSchema(t), map[string]any{"id": 42})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// non-sentinel default: present right after construction
	if !r.Has("name") {
		t.Fatalf("defaulted field should be present")
	}
	if v, err := r.Get("name"); err != nil || v != "Jane Doe" {
		t.Fatalf("get name: %v %v", v, err)
	}

	// sentinel default: declared but absent
	if r.Has("email") {
		t.Fatalf("Unset-defaulted field must be absent")
	}
	if _, err := r.Get("email"); !modeldict.HasCode(err, modeldict.CodeMissingKey) {
		t.Fatalf("expected missing_key, got %v", err)
	}
	if d := r.GetOr("email", "fallback"); d != "fallback" {
		t.Fatalf("GetOr should return the default, got %v", d)
	}
}

func TestNew_RequiredMissing(t *testing.T) {
	ctx := context.Background()
	_, err := modeldict.New(ctx, userSchema(t), map[string]any{})
	if !modeldict.HasCode(err, modeldict.CodeRequired) {
		t.Fatalf("expected required issue, got %v", err)
	}

	// supplying the sentinel does not satisfy a required field
	_, err = modeldict.New(ctx, userSchema(t), map[string]any{"id": modeldict.Unset})
	if !modeldict.HasCode(err, modeldict.CodeRequired) {
		t.Fatalf("expected required issue for Unset input, got %v", err)
	}
}

func TestNew_CollectsAllIssues(t *testing.T) {
	ctx := context.Background()
	s := g.Model().
		Field("a", g.Int()).Required().
		Field("b", g.String()).Required().
		MustBuild()

	_, err := modeldict.New(ctx, s, map[string]any{"a": "not-an-int"})
	iss, ok := modeldict.AsIssues(err)
	if !ok || len(iss) != 2 {
		t.Fatalf("expected 2 issues (invalid a, missing b), got %v", err)
	}
}

func TestNew_ExtraPolicies(t *testing.T) {
	ctx := context.Background()

	allow := g.Model().Field("key", g.String()).Required().MustBuild()
	r, err := modeldict.New(ctx, allow, map[string]any{"key": "value", "key2": "value2"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !r.Has("key2") || r.Len() != 2 {
		t.Fatalf("ExtraAllow should keep dynamic fields: %v", r.Keys())
	}

	ignore := g.Model().Field("key", g.String()).Required().ExtraIgnore().MustBuild()
	r, err = modeldict.New(ctx, ignore, map[string]any{"key": "value", "key2": "value2"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if r.Has("key2") || r.Len() != 1 {
		t.Fatalf("ExtraIgnore should drop unknown keys: %v", r.Keys())
	}

	forbid := g.Model().Field("key", g.String()).Required().ExtraForbid().MustBuild()
	_, err = modeldict.New(ctx, forbid, map[string]any{"key": "value", "key2": "value2"})
	if !modeldict.HasCode(err, modeldict.CodeUnknownKey) {
		t.Fatalf("ExtraForbid should reject unknown keys, got %v", err)
	}
}

func TestFromKeys(t *testing.T) {
	ctx := context.Background()
	s := g.Model().Field("key", g.String()).Field("key2", g.String()).MustBuild()

	r, err := modeldict.FromKeys(ctx, s, []string{"key", "key2"}, "value")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("len = %d, want 2", r.Len())
	}
	for k, v := range r.All() {
		if v != "value" {
			t.Fatalf("key %q = %v, want value", k, v)
		}
	}
}

func TestEqual_MappingViewOnly(t *testing.T) {
	ctx := context.Background()
	declared := g.Model().Field("a", g.Int()).Required().MustBuild()
	open := g.Model().MustBuild()

	m1, err := modeldict.New(ctx, declared, map[string]any{"a": 42})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	m2, err := modeldict.New(ctx, open, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := m2.Set(ctx, "a", int64(42)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !modeldict.Equal(m1, m2) {
		t.Fatalf("declared vs dynamic with same mapping view should be equal")
	}

	// an Unset optional on one side must not break equality either way
	withUnset := g.Model().Field("a", g.Int()).Required().Field("opt", g.String()).Optional().MustBuild()
	m3, err := modeldict.New(ctx, withUnset, map[string]any{"a": 42})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !modeldict.Equal(m1, m3) {
		t.Fatalf("absent optional field should be invisible to equality")
	}
}

func TestPresence_Flags(t *testing.T) {
	ctx := context.Background()
	s := g.Model().
		Field("given", g.String()).Optional().
		Field("defaulted", g.Bool()).Default(true).
		Field("absent", g.String()).Optional().
		MustBuild()

	r, err := modeldict.New(ctx, s, map[string]any{"given": "x"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	pm := r.Presence()
	if pm["/given"]&modeldict.PresenceSeen == 0 {
		t.Fatalf("given should be seen: %v", pm)
	}
	if pm["/defaulted"]&modeldict.PresenceDefaultApplied == 0 {
		t.Fatalf("defaulted should carry default-applied: %v", pm)
	}
	if _, ok := pm["/absent"]; ok {
		t.Fatalf("absent field should carry no flags: %v", pm)
	}
}
