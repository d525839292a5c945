package sink

import (
	"encoding/json"

	"github.com/oadl/heatsheet/pkg/render"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	indent bool
}

// WithIndent pretty-prints the JSON output.
func WithIndent() JSONOption {
	return func(r *jsonRenderer) { r.indent = true }
}

// RenderJSON serializes a display tree as JSON. The encoding is stable:
// sections and rows appear in tree order, so identical trees produce
// identical bytes.
func RenderJSON(t *render.Tree, opts ...JSONOption) []byte {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var (
		data []byte
		err  error
	)
	if r.indent {
		data, err = json.MarshalIndent(t, "", "  ")
	} else {
		data, err = json.Marshal(t)
	}
	if err != nil {
		// A Tree contains only strings, bools, and slices; encoding
		// cannot fail. Keep the sink total regardless.
		return []byte(`{"state":"error","message":"encode tree"}`)
	}
	return data
}
