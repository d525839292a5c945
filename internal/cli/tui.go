package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/oadl/heatsheet/pkg/render"
)

var (
	previewTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	previewHeatStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	previewDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	previewHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	previewAltStyle    = lipgloss.NewStyle().Foreground(colorGray)
	previewRowStyle    = lipgloss.NewStyle().Foreground(colorWhite)
	previewErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// PreviewModel - Interactive race/heat browsing
// =============================================================================

// PreviewModel is the bubbletea model for browsing a drawn tree one
// heat at a time. Left/right move between races, up/down between heats.
type PreviewModel struct {
	Tree *render.Tree
	Race int
	Heat int
}

// NewPreviewModel creates a preview model positioned on the first heat.
func NewPreviewModel(tree *render.Tree) PreviewModel {
	return PreviewModel{Tree: tree}
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		if m.Race > 0 {
			m.Race--
			m.Heat = 0
		}
	case "right", "l":
		if m.Race < len(m.Tree.Races)-1 {
			m.Race++
			m.Heat = 0
		}
	case "up", "k":
		if m.Heat > 0 {
			m.Heat--
		}
	case "down", "j":
		if m.Race < len(m.Tree.Races) && m.Heat < len(m.Tree.Races[m.Race].Heats)-1 {
			m.Heat++
		}
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	switch m.Tree.State {
	case render.StateEmpty:
		b.WriteString(previewDimStyle.Render(m.Tree.Message))
		b.WriteString("\n\n")
		b.WriteString(previewDimStyle.Render("q quit"))
		return b.String()
	case render.StateError:
		b.WriteString(previewErrorStyle.Render("Draw failed: " + m.Tree.Message))
		b.WriteString("\n\n")
		b.WriteString(previewDimStyle.Render("q quit"))
		return b.String()
	}

	race := m.Tree.Races[m.Race]
	heat := race.Heats[m.Heat]

	b.WriteString(previewTitleStyle.Render(race.Title))
	b.WriteString("\n")
	b.WriteString(previewHeatStyle.Render(heat.Title))
	b.WriteString("\n")
	b.WriteString(previewDimStyle.Render("←/→ race  ↑/↓ heat  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, len(heat.Rows))
	for i, row := range heat.Rows {
		rows[i] = row.Cells[:]
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(render.Header[:]...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return previewHeaderStyle
			}
			if row < len(heat.Rows) && heat.Rows[row].Alt {
				return previewAltStyle
			}
			return previewRowStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(previewDimStyle.Render(fmt.Sprintf("  race [%d/%d] · heat [%d/%d]",
		m.Race+1, len(m.Tree.Races), m.Heat+1, len(race.Heats))))

	return b.String()
}
