package modeldict_test

import (
	"context"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	modeldict "github.com/modeldict/modeldict-go"
)

func TestToMap_AbsentPolicies(t *testing.T) {
	ctx := context.Background()
	r, err := modeldict.New(ctx, userSchema(t), map[string]any{"id": 42})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	if err := r.Set(ctx, "session_id", "abc"); err != nil {
		t.Fatalf("set: %v", err)
	}

	got := r.ToMap() // AbsentNull is the default
	want := map[string]any{"id": int64(42), "name": "Jane Doe", "email": nil, "session_id": "abc"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ToMap mismatch (-want +got):\n%s", diff)
	}

	got = r.ToMap(modeldict.EncodeOpt{Absent: modeldict.AbsentOmit})
	want = map[string]any{"id": int64(42), "name": "Jane Doe", "session_id": "abc"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ToMap(AbsentOmit) mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalJSON_NeverEmitsSentinel(t *testing.T) {
	ctx := context.Background()
	r, err := modeldict.New(ctx, userSchema(t), map[string]any{"id": 42})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}

	data, err := gojson.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// absent declared field appears as null, never as the sentinel
	want := `{"email":null,"id":42,"name":"Jane Doe"}`
	if string(data) != want {
		t.Fatalf("json = %s, want %s", data, want)
	}

	data, err = r.EncodeJSON(modeldict.EncodeOpt{Absent: modeldict.AbsentOmit})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want = `{"id":42,"name":"Jane Doe"}`
	if string(data) != want {
		t.Fatalf("json(AbsentOmit) = %s, want %s", data, want)
	}
}

func TestMarshalYAML_RoundTrip(t *testing.T) {
	ctx := context.Background()
	r, err := modeldict.New(ctx, userSchema(t), map[string]any{"id": 42, "email": "j@example.com"})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		t.Fatalf("yaml marshal: %v", err)
	}
	var back map[string]any
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("yaml unmarshal: %v", err)
	}
	want := map[string]any{"id": 42, "name": "Jane Doe", "email": "j@example.com"}
	if diff := cmp.Diff(want, back); diff != "" {
		t.Fatalf("yaml round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONRoundTrip_ThroughParse(t *testing.T) {
	ctx := context.Background()
	s := userSchema(t)
	r, err := modeldict.New(ctx, s, map[string]any{"id": 7, "email": "a@b.c"})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	if err := r.Set(ctx, "extra", "x"); err != nil {
		t.Fatalf("set: %v", err)
	}

	data, err := r.EncodeJSON(modeldict.EncodeOpt{Absent: modeldict.AbsentOmit})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := modeldict.ParseJSON(ctx, s, data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !modeldict.Equal(r, back) {
		t.Fatalf("round trip lost data:\n  in:  %v\n  out: %v", r.ToMap(), back.ToMap())
	}
}
