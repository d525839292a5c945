package render

import "github.com/oadl/heatsheet/pkg/meet"

// State identifies which of the three terminal outputs a tree is.
type State string

const (
	// StatePopulated is a tree with at least one race section.
	StatePopulated State = "populated"
	// StateEmpty is the fixed no-data message and nothing else.
	StateEmpty State = "empty"
	// StateError is a single node carrying a failure's message text.
	StateError State = "error"
)

// EmptyMessage is the fixed human-readable empty-state text shown when a
// draw receives zero input rows.
const EmptyMessage = "No data available. Please ensure dimensions are added to the visualization."

// Header is the fixed four-column table header, in render order.
var Header = [4]string{"Lane", "Name", "Age Group", "Academy"}

// Tree is the display tree for one draw. Exactly one of the three
// states applies: a populated tree carries race sections, the other two
// carry only Message.
type Tree struct {
	State   State         `json:"state"`
	Message string        `json:"message,omitempty"`
	Races   []RaceSection `json:"races,omitempty"`
}

// RaceSection is one race: a title label plus its heats, in grouping
// order.
type RaceSection struct {
	Title string        `json:"title"`
	Heats []HeatSection `json:"heats"`
}

// HeatSection is one heat: a title label plus its swimmer table.
type HeatSection struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

// Row is one swimmer's four cells, verbatim from the record. Alt marks
// odd-indexed rows for cosmetic striping; it carries no data semantics
// and sinks are free to ignore it.
type Row struct {
	Cells [4]string `json:"cells"`
	Alt   bool      `json:"alt,omitempty"`
}

// Build renders a grouping into a display tree. An empty grouping
// produces the empty state; otherwise one section per race and one
// sub-table per heat, all in grouping order, with cell values taken
// verbatim from the swimmer records.
func Build(g *meet.Grouping) *Tree {
	if g == nil || g.Empty() {
		return &Tree{State: StateEmpty, Message: EmptyMessage}
	}

	tree := &Tree{State: StatePopulated}
	for _, race := range g.Races() {
		section := RaceSection{Title: race.Name}
		for _, heat := range race.Heats() {
			sub := HeatSection{Title: heat.Name}
			for i, s := range heat.Swimmers {
				sub.Rows = append(sub.Rows, Row{
					Cells: [4]string{s.Lane, s.Name, s.AgeGroup, s.Academy},
					Alt:   i%2 == 1,
				})
			}
			section.Heats = append(section.Heats, sub)
		}
		tree.Races = append(tree.Races, section)
	}
	return tree
}

// Error builds the error-state tree for a failed draw. The message text
// of err is surfaced verbatim; nothing else is emitted.
func Error(err error) *Tree {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return &Tree{State: StateError, Message: msg}
}
