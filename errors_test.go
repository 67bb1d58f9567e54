package modeldict_test

import (
	"fmt"
	"testing"

	modeldict "github.com/modeldict/modeldict-go"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := modeldict.Issues{
		{Path: "/a", Code: modeldict.CodeRequired},
		{Path: "/b", Code: modeldict.CodeInvalidType},
		{Path: "/c", Code: modeldict.CodeUnknownKey},
		{Path: "/d", Code: modeldict.CodeTooBig},
	}
	got := iss.Error()
	want := "required at /a; invalid_type at /b; unknown_key at /c; ... (total 4)"
	if got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestAsIssues_Wrapped(t *testing.T) {
	inner := modeldict.Issues{{Path: "/x", Code: modeldict.CodeMissingKey, Params: map[string]any{"key": "x"}}}
	wrapped := fmt.Errorf("op failed: %w", inner)

	iss, ok := modeldict.AsIssues(wrapped)
	if !ok || len(iss) != 1 {
		t.Fatalf("AsIssues through wrapping failed: %v", wrapped)
	}
	if !modeldict.HasCode(wrapped, modeldict.CodeMissingKey) {
		t.Fatalf("HasCode through wrapping failed")
	}
	if k, ok := modeldict.MissingKey(wrapped); !ok || k != "x" {
		t.Fatalf("MissingKey = %q, %v", k, ok)
	}
}

func TestHasCode_NonIssuesError(t *testing.T) {
	if modeldict.HasCode(fmt.Errorf("plain"), modeldict.CodeMissingKey) {
		t.Fatalf("plain errors carry no codes")
	}
	if modeldict.HasCode(nil, modeldict.CodeMissingKey) {
		t.Fatalf("nil carries no codes")
	}
}
