package modeldict

import (
	"context"
	"iter"
	"sort"
)

// This file implements the associative-container view of a Record.
//
// Divergences from a plain map, all deliberate:
//   - Deleting a declared field resets it to Unset; its schema slot survives
//     and a later Set makes it present again. Deleting a dynamic field removes
//     it entirely.
//   - Clear makes declared fields absent (not reset to their defaults) and
//     removes every dynamic field.
//   - Update applies pairs in order with no rollback: writes performed before
//     a validation failure stay applied, matching direct field assignment.

// Pair is a single key/value entry, used by Items and UpdatePairs.
type Pair struct {
	Key   string
	Value any
}

// Has reports whether key is present: a declared field whose value is not
// Unset, or an existing dynamic field.
func (r *Record) Has(key string) bool {
	if i, ok := r.schema.index[key]; ok {
		return !IsUnset(r.values[i])
	}
	_, ok := r.extras.Get(key)
	return ok
}

// Len counts the present keys.
func (r *Record) Len() int {
	n := r.extras.Len()
	for _, v := range r.values {
		if !IsUnset(v) {
			n++
		}
	}
	return n
}

// Keys returns the present keys: declared fields in declaration order, then
// dynamic fields in insertion order.
func (r *Record) Keys() []string {
	out := make([]string, 0, len(r.values)+r.extras.Len())
	for i, f := range r.schema.fields {
		if !IsUnset(r.values[i]) {
			out = append(out, f.Name)
		}
	}
	for p := r.extras.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

// Values returns the present values in Keys order.
func (r *Record) Values() []any {
	out := make([]any, 0, len(r.values)+r.extras.Len())
	for _, v := range r.values {
		if !IsUnset(v) {
			out = append(out, v)
		}
	}
	for p := r.extras.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Value)
	}
	return out
}

// Items returns the present entries in Keys order.
func (r *Record) Items() []Pair {
	out := make([]Pair, 0, len(r.values)+r.extras.Len())
	for i, f := range r.schema.fields {
		if !IsUnset(r.values[i]) {
			out = append(out, Pair{Key: f.Name, Value: r.values[i]})
		}
	}
	for p := r.extras.Oldest(); p != nil; p = p.Next() {
		out = append(out, Pair{Key: p.Key, Value: p.Value})
	}
	return out
}

// All iterates over the present entries in Keys order. The sequence is lazy
// and restartable; presence is re-evaluated as iteration proceeds, so mutating
// the record mid-iteration gives unspecified results, as with any map.
func (r *Record) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for i, f := range r.schema.fields {
			if IsUnset(r.values[i]) {
				continue
			}
			if !yield(f.Name, r.values[i]) {
				return
			}
		}
		for p := r.extras.Oldest(); p != nil; p = p.Next() {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Get returns the value for a present key, or a missing_key error carrying the
// key. Declared-but-absent counts as missing.
func (r *Record) Get(key string) (any, error) {
	if i, ok := r.schema.index[key]; ok {
		if IsUnset(r.values[i]) {
			return nil, missingKeyIssue(key)
		}
		return r.values[i], nil
	}
	if v, ok := r.extras.Get(key); ok {
		return v, nil
	}
	return nil, missingKeyIssue(key)
}

// GetOr returns the value for key, or def when absent. It never fails.
func (r *Record) GetOr(key string, def any) any {
	if v, err := r.Get(key); err == nil {
		return v
	}
	return def
}

// Set assigns value to key. Declared fields route through their validation
// engine; assigning Unset makes the field absent again. Unknown keys become
// dynamic fields when the schema's ExtraPolicy allows them.
func (r *Record) Set(ctx context.Context, key string, value any) error {
	if r.schema.frozen {
		return frozenIssue(key)
	}
	if i, ok := r.schema.index[key]; ok {
		return r.setDeclared(ctx, i, value)
	}
	if r.schema.extra != ExtraAllow {
		return Issues{unknownKeyIssue(key)}
	}
	r.extras.Set(key, value)
	return nil
}

func (r *Record) setDeclared(ctx context.Context, i int, value any) error {
	f := r.schema.fields[i]
	if IsUnset(value) {
		r.values[i] = Unset
		r.pres[i] = 0
		return nil
	}
	parsed, err := parseField(ctx, f, value)
	if err != nil {
		return err
	}
	r.values[i] = parsed
	r.pres[i] = PresenceSeen
	if value == nil {
		r.pres[i] |= PresenceWasNull
	}
	return nil
}

// Delete removes key from the mapping view. A present declared field is reset
// to Unset (its slot survives); a dynamic field is removed entirely. Absent
// keys fail with missing_key.
func (r *Record) Delete(key string) error {
	if r.schema.frozen {
		return frozenIssue(key)
	}
	if i, ok := r.schema.index[key]; ok {
		if IsUnset(r.values[i]) {
			return missingKeyIssue(key)
		}
		r.values[i] = Unset
		r.pres[i] = 0
		return nil
	}
	if _, ok := r.extras.Delete(key); !ok {
		return missingKeyIssue(key)
	}
	return nil
}

// Pop reads and deletes key, returning its value. Absent keys fail with
// missing_key; use PopOr to substitute a default instead.
func (r *Record) Pop(key string) (any, error) {
	if r.schema.frozen {
		return nil, frozenIssue(key)
	}
	v, err := r.Get(key)
	if err != nil {
		return nil, err
	}
	if err := r.Delete(key); err != nil {
		return nil, err
	}
	return v, nil
}

// PopOr is Pop with a default: absent keys return def instead of failing.
// The only possible error is mutating a frozen record.
func (r *Record) PopOr(key string, def any) (any, error) {
	v, err := r.Pop(key)
	if err != nil {
		if HasCode(err, CodeFrozen) {
			return nil, err
		}
		return def, nil
	}
	return v, nil
}

// PopItem removes and returns the most recently inserted dynamic field.
// It fails with missing_key when only declared fields remain.
func (r *Record) PopItem() (Pair, error) {
	if r.schema.frozen {
		return Pair{}, frozenIssue("")
	}
	p := r.extras.Newest()
	if p == nil {
		return Pair{}, Issues{{
			Path:    "/",
			Code:    CodeMissingKey,
			Message: "popitem: record is empty or all entries are declared fields",
		}}
	}
	out := Pair{Key: p.Key, Value: p.Value}
	r.extras.Delete(p.Key)
	return out, nil
}

// SetDefault returns the value for key when present; otherwise it assigns def
// (validated like Set for declared fields) and returns the stored value.
func (r *Record) SetDefault(ctx context.Context, key string, def any) (any, error) {
	if r.schema.frozen {
		return nil, frozenIssue(key)
	}
	if v, err := r.Get(key); err == nil {
		return v, nil
	}
	if err := r.Set(ctx, key, def); err != nil {
		return nil, err
	}
	return r.Get(key)
}

// Update applies every pair from values via Set. Go maps carry no order, so
// keys are applied in sorted order for determinism; use UpdatePairs when the
// caller's order matters. Update is NOT atomic: on a validation failure the
// writes already applied stay applied, matching direct field assignment.
func (r *Record) Update(ctx context.Context, values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := r.Set(ctx, k, values[k]); err != nil {
			return err
		}
	}
	return nil
}

// UpdatePairs applies pairs in the order given; the last write wins for a
// duplicate key. Like Update it is not atomic across pairs.
func (r *Record) UpdatePairs(ctx context.Context, pairs []Pair) error {
	for _, p := range pairs {
		if err := r.Set(ctx, p.Key, p.Value); err != nil {
			return err
		}
	}
	return nil
}

// Clear empties the mapping view: every present declared field becomes absent
// (Unset, not its original default) and every dynamic field is removed.
// Calling Clear twice is the same as calling it once.
func (r *Record) Clear() error {
	if r.schema.frozen {
		return frozenIssue("")
	}
	for i := range r.values {
		r.values[i] = Unset
		r.pres[i] = 0
	}
	for r.extras.Len() > 0 {
		p := r.extras.Oldest()
		r.extras.Delete(p.Key)
	}
	return nil
}

// SetUnset clears a declared field to absent without the missing_key check
// Delete performs. It fails for keys outside the schema.
func (r *Record) SetUnset(ctx context.Context, key string) error {
	if _, ok := r.schema.index[key]; !ok {
		return missingKeyIssue(key)
	}
	return r.Set(ctx, key, Unset)
}
