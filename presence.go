package modeldict

// Presence is the bit flag tracked per declared field.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // Field was supplied by the caller.
	PresenceWasNull                             // Supplied value was nil.
	PresenceDefaultApplied                      // Default value was applied at construction.
)

// PresenceMap maps JSON Pointers ("/field") to Presence flags.
type PresenceMap map[string]Presence

// Presence returns a snapshot of presence metadata for declared fields.
// Dynamic fields carry no flags; their presence and existence coincide.
func (r *Record) Presence() PresenceMap {
	pm := make(PresenceMap, len(r.pres)+1)
	pm["/"] = PresenceSeen
	for i, f := range r.schema.fields {
		if r.pres[i] != 0 {
			pm["/"+f.Name] = r.pres[i]
		}
	}
	return pm
}
