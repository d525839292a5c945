package sink

import (
	"bytes"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/oadl/heatsheet/pkg/render"
)

var (
	textTitleStyle  = lipgloss.NewStyle().Bold(true)
	textHeatStyle   = lipgloss.NewStyle().Faint(true)
	textHeaderStyle = lipgloss.NewStyle().Bold(true).Faint(true)
	textAltStyle    = lipgloss.NewStyle().Faint(true)
	textErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))
	textPlainStyle  = lipgloss.NewStyle()
)

// TextOption configures terminal rendering via [RenderText].
type TextOption func(*textRenderer)

type textRenderer struct {
	plain bool
}

// WithPlain disables striping and color styling, for non-TTY output.
func WithPlain() TextOption {
	return func(r *textRenderer) { r.plain = true }
}

// RenderText serializes a display tree for a terminal: one lipgloss
// table per heat under its race and heat titles. Striping follows the
// tree's cosmetic row parity.
func RenderText(t *render.Tree, opts ...TextOption) []byte {
	r := textRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	switch t.State {
	case render.StateEmpty:
		buf.WriteString(t.Message)
		buf.WriteString("\n")
	case render.StateError:
		if r.plain {
			buf.WriteString(t.Message)
		} else {
			buf.WriteString(textErrorStyle.Render(t.Message))
		}
		buf.WriteString("\n")
	default:
		for i, race := range t.Races {
			if i > 0 {
				buf.WriteString("\n")
			}
			r.renderRace(&buf, race)
		}
	}
	return buf.Bytes()
}

func (r *textRenderer) renderRace(buf *bytes.Buffer, race render.RaceSection) {
	if r.plain {
		buf.WriteString(race.Title)
	} else {
		buf.WriteString(textTitleStyle.Render(race.Title))
	}
	buf.WriteString("\n")

	for _, heat := range race.Heats {
		if r.plain {
			buf.WriteString(heat.Title)
		} else {
			buf.WriteString(textHeatStyle.Render(heat.Title))
		}
		buf.WriteString("\n")
		buf.WriteString(r.renderHeatTable(heat))
		buf.WriteString("\n")
	}
}

func (r *textRenderer) renderHeatTable(heat render.HeatSection) string {
	rows := make([][]string, len(heat.Rows))
	for i, row := range heat.Rows {
		rows[i] = row.Cells[:]
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(render.Header[:]...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if r.plain {
				return textPlainStyle
			}
			if row == -1 {
				return textHeaderStyle
			}
			if row >= 0 && row < len(heat.Rows) && heat.Rows[row].Alt {
				return textAltStyle
			}
			return textPlainStyle
		})

	return t.Render()
}
