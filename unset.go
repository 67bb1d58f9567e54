package modeldict

// unsetSentinel backs the Unset singleton. The struct carries a field so the
// pointer is guaranteed unique; identity, not structural equality, is what
// makes the sentinel distinguishable from every user value including nil.
type unsetSentinel struct{ _ byte }

func (*unsetSentinel) String() string { return "<unset>" }

// Unset marks a declared field as "declared but not currently set". Use it as
// a field default in schema declarations (dsl.Model().Field(...).Optional()
// stores it for you) and compare with IsUnset rather than ==nil: nil is a
// legitimate user value, Unset is not.
var Unset any = &unsetSentinel{}

// IsUnset reports whether v is the Unset sentinel itself.
func IsUnset(v any) bool { return v == Unset }
