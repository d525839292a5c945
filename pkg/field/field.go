// Package field models the field metadata supplied by the host alongside
// row data. Hosts describe each column of a flat row with a descriptor
// carrying a stable logical identifier; this package resolves those
// descriptors into an immutable identifier → position map used by the
// row normalizer.
package field

// ID is a logical field identifier as supplied by the host.
type ID string

// The six logical fields a result sheet can carry. Hosts are expected to
// bind one descriptor per identifier, but nothing is enforced: a missing
// identifier simply yields blank cells downstream.
const (
	Race     ID = "RACE"
	Heat     ID = "HEAT"
	Lane     ID = "LANE"
	Name     ID = "NAME"
	AgeGroup ID = "AGEGROUP"
	Academy  ID = "ACADEMY"
)

// All lists the known identifiers in canonical dimension order
// (race, heat, lane, name, agegroup, academy).
var All = []ID{Race, Heat, Lane, Name, AgeGroup, Academy}

// Known reports whether id is one of the six logical identifiers.
func Known(id ID) bool {
	switch id {
	case Race, Heat, Lane, Name, AgeGroup, Academy:
		return true
	}
	return false
}

// Descriptor is one entry of the host-supplied field metadata. Only the
// identifier participates in mapping; the label is display metadata.
type Descriptor struct {
	ID    ID     `json:"id"`
	Label string `json:"label,omitempty"`
}

// Map resolves logical identifiers to positions in a raw row. A Map is
// built once per draw from the host's descriptor list and is immutable
// afterwards.
type Map struct {
	pos map[ID]int
}

// NewMap builds a Map from the host's descriptor list. The position of
// each descriptor in the list is the position of its value in every raw
// row. Unknown identifiers are ignored; if an identifier appears more
// than once, the first occurrence wins. Descriptors for fewer than all
// six identifiers are accepted — lookups for the absent ones report
// not-found rather than failing.
func NewMap(descriptors []Descriptor) Map {
	pos := make(map[ID]int, len(All))
	for i, d := range descriptors {
		if !Known(d.ID) {
			continue
		}
		if _, dup := pos[d.ID]; dup {
			continue
		}
		pos[d.ID] = i
	}
	return Map{pos: pos}
}

// Position returns the row position bound to id and whether a binding
// exists.
func (m Map) Position(id ID) (int, bool) {
	p, ok := m.pos[id]
	return p, ok
}

// Len returns the number of bound identifiers.
func (m Map) Len() int { return len(m.pos) }

// Value extracts the cell bound to id from a raw row. It returns the
// empty string when the identifier is unbound or the row is too short;
// missing values are display blanks, never errors.
func (m Map) Value(row []string, id ID) string {
	p, ok := m.pos[id]
	if !ok || p < 0 || p >= len(row) {
		return ""
	}
	return row[p]
}
