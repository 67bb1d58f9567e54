package modeldict

import (
	gojson "github.com/goccy/go-json"
)

// ToMap converts the record to a plain keyed structure. Every declared field
// appears (absent ones per the AbsentPolicy, default AbsentNull), followed by
// every present dynamic field. The Unset sentinel itself never appears in the
// output.
func (r *Record) ToMap(opts ...EncodeOpt) map[string]any {
	var opt EncodeOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	out := make(map[string]any, len(r.values)+r.extras.Len())
	for i, f := range r.schema.fields {
		if IsUnset(r.values[i]) {
			if opt.Absent == AbsentNull {
				out[f.Name] = nil
			}
			continue
		}
		out[f.Name] = r.values[i]
	}
	for p := r.extras.Oldest(); p != nil; p = p.Next() {
		out[p.Key] = p.Value
	}
	return out
}

// MarshalJSON encodes the record with the default absent policy (AbsentNull).
func (r *Record) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(r.ToMap())
}

// EncodeJSON encodes the record with an explicit absent policy.
func (r *Record) EncodeJSON(opt EncodeOpt) ([]byte, error) {
	return gojson.Marshal(r.ToMap(opt))
}

// MarshalYAML implements yaml.Marshaler over the same structured output.
func (r *Record) MarshalYAML() (any, error) {
	return r.ToMap(), nil
}
