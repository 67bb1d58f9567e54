package modeldict_test

import (
	"fmt"
	"testing"

	modeldict "github.com/modeldict/modeldict-go"
)

func TestUnset_IdentityNotEquality(t *testing.T) {
	if !modeldict.IsUnset(modeldict.Unset) {
		t.Fatalf("Unset must satisfy IsUnset")
	}
	if modeldict.IsUnset(nil) {
		t.Fatalf("nil must not count as Unset; nil is a real value")
	}
	if modeldict.IsUnset("") || modeldict.IsUnset(0) || modeldict.IsUnset(false) {
		t.Fatalf("zero values must not count as Unset")
	}

	// the sentinel is a singleton: copying the interface keeps identity
	v := modeldict.Unset
	if !modeldict.IsUnset(v) {
		t.Fatalf("copied interface value lost identity")
	}
}

func TestUnset_StringerDoesNotLeakInternals(t *testing.T) {
	if s := fmt.Sprint(modeldict.Unset); s != "<unset>" {
		t.Fatalf("unexpected Unset rendering: %q", s)
	}
}
