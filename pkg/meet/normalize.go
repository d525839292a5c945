package meet

import "github.com/oadl/heatsheet/pkg/field"

// dimensionOrder is the fixed column order of pre-split dimension rows:
// race, heat, lane, name, agegroup, academy. Hosts that send dimension
// rows commit to this order; hosts that send flat rows describe their
// order with field descriptors instead.
var dimensionOrder = func() field.Map {
	descriptors := make([]field.Descriptor, len(field.All))
	for i, id := range field.All {
		descriptors[i] = field.Descriptor{ID: id}
	}
	return field.NewMap(descriptors)
}()

// NormalizeFlat adapts flat value rows indexed by a field map into the
// canonical entry sequence. This is the canonical internal shape: the
// dimension-row adapter below reduces to it with an identity map.
//
// The transformation is pure and never fails. Cells bound to an unbound
// identifier, or beyond the end of a short row, come back as empty
// strings and render as blank cells.
func NormalizeFlat(rows [][]string, fields field.Map) []Entry {
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{
			Race: fields.Value(row, field.Race),
			Heat: fields.Value(row, field.Heat),
			Swimmer: Swimmer{
				Lane:     fields.Value(row, field.Lane),
				Name:     fields.Value(row, field.Name),
				AgeGroup: fields.Value(row, field.AgeGroup),
				Academy:  fields.Value(row, field.Academy),
			},
		})
	}
	return entries
}

// NormalizeDimensions adapts rows pre-split into the fixed dimension
// order (race, heat, lane, name, agegroup, academy). Short rows are
// padded with blanks via the same lookup leniency as NormalizeFlat.
func NormalizeDimensions(rows [][]string) []Entry {
	return NormalizeFlat(rows, dimensionOrder)
}
