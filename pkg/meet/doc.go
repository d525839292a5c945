// Package meet implements the reshaping core of heatsheet: normalizing
// host-supplied flat rows into swimmer entries and folding those entries
// into the ordered race → heat → swimmer grouping that drives rendering.
//
// # Architecture
//
// The package has two stages:
//
//  1. Normalize: adapt a raw row set (either fixed-order dimension rows
//     or flat rows paired with a field map) into a sequence of
//     (race, heat, swimmer) entries, in input order.
//  2. Group: fold the entry sequence into a Grouping — an ordered,
//     two-level mapping from race name to heat name to swimmers.
//
// Both stages are pure and total. Missing identifiers and missing cell
// values flow through as empty strings; empty race or heat names are
// legitimate group keys. Order is semantically meaningful everywhere:
// races, heats, and swimmers appear in first-seen input order, and
// identical input always produces an identical Grouping.
//
// # Usage
//
//	entries := meet.NormalizeFlat(rows, fields)
//	grouping := meet.Group(entries)
//	for _, race := range grouping.Races() {
//	    for _, heat := range race.Heats() {
//	        _ = heat.Swimmers
//	    }
//	}
package meet
