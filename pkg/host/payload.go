package host

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/oadl/heatsheet/pkg/field"
	"github.com/oadl/heatsheet/pkg/meet"
)

// Shape identifies which wire shape a payload arrived in.
type Shape string

const (
	// ShapeDimensions is rows pre-split into the fixed-order six-value
	// dimension sequence.
	ShapeDimensions Shape = "dimensions"
	// ShapeFlat is flat value rows paired with field descriptors.
	ShapeFlat Shape = "flat"
)

// Payload is a decoded host message. Whatever the wire shape, rows are
// held as flat display-string tuples; Entries applies the matching
// normalizer adapter. Cell values are opaque display strings — numbers,
// booleans, and nulls coerce at the decode boundary and nothing is
// validated beyond JSON well-formedness.
type Payload struct {
	Shape  Shape
	Rows   [][]string
	Fields []field.Descriptor
}

// wireRow accepts both row forms: a bare JSON array of cells, or an
// object carrying a fixed-order "dimensions" array.
type wireRow struct {
	cells []string
	split bool
}

func (r *wireRow) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var obj struct {
			Dimensions []json.RawMessage `json:"dimensions"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		cells, err := decodeCells(obj.Dimensions)
		if err != nil {
			return err
		}
		r.cells = cells
		r.split = true
		return nil
	}

	var arr []json.RawMessage
	if err := json.Unmarshal(trimmed, &arr); err != nil {
		return err
	}
	cells, err := decodeCells(arr)
	if err != nil {
		return err
	}
	r.cells = cells
	return nil
}

// decodeCells coerces raw JSON scalars into display strings. Null and
// absent values become blanks; numbers keep their literal form (a lane
// sent as 1 renders as "1", not "1.000000").
func decodeCells(raw []json.RawMessage) ([]string, error) {
	cells := make([]string, len(raw))
	for i, r := range raw {
		s, err := coerceScalar(r)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		cells[i] = s
	}
	return cells, nil
}

func coerceScalar(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return "", err
		}
		return fmt.Sprintf("%t", b), nil
	case '{', '[':
		return "", fmt.Errorf("unsupported cell value %s", trimmed)
	default:
		// Numbers keep their wire text verbatim.
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return "", err
		}
		return n.String(), nil
	}
}

// DecodePayload decodes a host message. The shape is detected from the
// rows themselves: any row carrying a "dimensions" object marks the
// payload as dimension-shaped; otherwise rows are flat and the field
// descriptor list (possibly incomplete, possibly absent) describes
// their order. A payload with zero rows is valid and draws the empty
// state.
func DecodePayload(data []byte) (*Payload, error) {
	var wire struct {
		Rows   []wireRow          `json:"rows"`
		Fields []field.Descriptor `json:"fields"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	p := &Payload{Shape: ShapeFlat, Fields: wire.Fields}
	for _, row := range wire.Rows {
		if row.split {
			p.Shape = ShapeDimensions
		}
		p.Rows = append(p.Rows, row.cells)
	}
	return p, nil
}

// Entries normalizes the payload through the adapter matching its wire
// shape, yielding the canonical entry sequence in input order.
func (p *Payload) Entries() []meet.Entry {
	if p.Shape == ShapeDimensions {
		return meet.NormalizeDimensions(p.Rows)
	}
	return meet.NormalizeFlat(p.Rows, field.NewMap(p.Fields))
}
