// Package render turns a race → heat → swimmer grouping into a display
// tree: one section per race, one sub-table per heat, one row per
// swimmer, plus the two terminal alternatives (empty state, error
// state). The tree is a plain value; sinks in the sink subpackage
// serialize it for a concrete surface (HTML container, terminal, JSON).
//
// Every build is a full rebuild. The tree mirrors grouping order
// exactly, so identical input yields a byte-identical serialization
// from every sink.
package render
