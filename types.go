package modeldict

// ExtraPolicy controls how keys outside the declared schema are handled.
type ExtraPolicy int

const (
	ExtraAllow  ExtraPolicy = iota // Accept dynamic fields via item assignment.
	ExtraIgnore                    // Drop unknown keys at construction; reject item assignment.
	ExtraForbid                    // Reject unknown keys everywhere with an error.
)

// AbsentPolicy dictates how declared-but-absent fields appear in structured
// output. The Unset sentinel itself is never emitted.
type AbsentPolicy int

const (
	AbsentNull AbsentPolicy = iota // Emit the field with a null value.
	AbsentOmit                     // Leave the field out entirely.
)

// EncodeOpt bundles serialization options.
type EncodeOpt struct {
	Absent AbsentPolicy
}
