// Package sink serializes display trees for concrete output surfaces.
//
// Three sinks are provided:
//
//   - RenderHTML: markup for a DOM-like host container, with escaping
//   - RenderText: terminal output built on lipgloss tables
//   - RenderJSON: machine-readable tree for API consumers
//
// All sinks are deterministic: the same tree always serializes to the
// same bytes. Sinks never fail; the error path of a draw is represented
// in the tree itself, not in the serialization.
package sink
