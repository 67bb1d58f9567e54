package modeldict

import (
	"context"
	"reflect"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is an instance of a Schema that also behaves like an associative
// container. Declared fields live in fixed slots and route every write through
// their validation engine; dynamic fields are free-form entries kept in
// insertion order. A declared field whose slot holds the Unset sentinel is
// absent from the mapping view without losing its schema slot.
//
// Records are not safe for concurrent use; callers sharing one across
// goroutines must synchronize externally.
type Record struct {
	schema *Schema
	values []any // by field index; Unset when absent
	pres   []Presence
	extras *orderedmap.OrderedMap[string, any]
}

// New constructs a Record from data, validating and coercing every declared
// field and applying defaults. Unknown keys follow the schema's ExtraPolicy;
// they are processed in sorted order for deterministic results. All issues are
// collected rather than stopping at the first.
func New(ctx context.Context, s *Schema, data map[string]any) (*Record, error) {
	r := &Record{
		schema: s,
		values: make([]any, len(s.fields)),
		pres:   make([]Presence, len(s.fields)),
		extras: orderedmap.New[string, any](),
	}
	var iss Issues
	for i, f := range s.fields {
		v, given := data[f.Name]
		if given && !IsUnset(v) {
			r.pres[i] = PresenceSeen
			if v == nil {
				r.pres[i] |= PresenceWasNull
			}
			parsed, err := parseField(ctx, f, v)
			if err != nil {
				iss = AppendIssues(iss, mustIssues(err)...)
				r.values[i] = Unset
				continue
			}
			r.values[i] = parsed
			continue
		}
		// missing, or explicitly given as Unset
		switch {
		case f.Required:
			iss = AppendIssues(iss, requiredIssue(f.Name))
			r.values[i] = Unset
		case f.HasDefault && !IsUnset(f.Default):
			r.pres[i] = PresenceDefaultApplied
			r.values[i] = f.Default
		default:
			r.values[i] = Unset
		}
	}

	unknown := make([]string, 0, len(data))
	for k := range data {
		if _, ok := s.index[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		switch s.extra {
		case ExtraForbid:
			iss = AppendIssues(iss, unknownKeyIssue(k))
		case ExtraIgnore:
			// drop
		case ExtraAllow:
			r.extras.Set(k, data[k])
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return r, nil
}

// FromKeys constructs a Record assigning value to every key, declared or not.
func FromKeys(ctx context.Context, s *Schema, keys []string, value any) (*Record, error) {
	data := make(map[string]any, len(keys))
	for _, k := range keys {
		data[k] = value
	}
	return New(ctx, s, data)
}

// Schema returns the schema this record was built from.
func (r *Record) Schema() *Schema { return r.schema }

// Equal reports whether two records expose the same mapping view: same present
// keys, deeply equal values. The declared/dynamic distinction is invisible, so
// a declared field on one side may match a dynamic field on the other.
func Equal(a, b *Record) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Len() != b.Len() {
		return false
	}
	for k, v := range a.All() {
		w, err := b.Get(k)
		if err != nil || !reflect.DeepEqual(v, w) {
			return false
		}
	}
	return true
}

// mustIssues is used where err is known to be Issues already.
func mustIssues(err error) Issues {
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	return Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
}
