package render

import (
	"errors"
	"testing"

	"github.com/oadl/heatsheet/pkg/meet"
)

func TestBuildEmptyGrouping(t *testing.T) {
	for _, g := range []*meet.Grouping{nil, meet.Group(nil)} {
		tree := Build(g)
		if tree.State != StateEmpty {
			t.Errorf("State = %s, want %s", tree.State, StateEmpty)
		}
		if tree.Message != EmptyMessage {
			t.Errorf("Message = %q, want fixed empty-state text", tree.Message)
		}
		if len(tree.Races) != 0 {
			t.Errorf("empty tree has %d race sections, want 0", len(tree.Races))
		}
	}
}

func TestBuildWorkedExample(t *testing.T) {
	g := meet.Group([]meet.Entry{
		{Race: "100m Freestyle", Heat: "Heat 1", Swimmer: meet.Swimmer{Lane: "1", Name: "A. Smith", AgeGroup: "U12", Academy: "Delta"}},
		{Race: "100m Freestyle", Heat: "Heat 1", Swimmer: meet.Swimmer{Lane: "2", Name: "B. Jones", AgeGroup: "U12", Academy: "Echo"}},
		{Race: "100m Freestyle", Heat: "Heat 2", Swimmer: meet.Swimmer{Lane: "1", Name: "C. Lee", AgeGroup: "U14", Academy: "Delta"}},
	})

	tree := Build(g)
	if tree.State != StatePopulated {
		t.Fatalf("State = %s, want %s", tree.State, StatePopulated)
	}
	if len(tree.Races) != 1 {
		t.Fatalf("race sections = %d, want 1", len(tree.Races))
	}
	race := tree.Races[0]
	if race.Title != "100m Freestyle" {
		t.Errorf("race title = %q", race.Title)
	}
	if len(race.Heats) != 2 {
		t.Fatalf("heat sections = %d, want 2", len(race.Heats))
	}
	if race.Heats[0].Title != "Heat 1" || race.Heats[1].Title != "Heat 2" {
		t.Errorf("heat order = %q, %q", race.Heats[0].Title, race.Heats[1].Title)
	}
	if len(race.Heats[0].Rows) != 2 || len(race.Heats[1].Rows) != 1 {
		t.Errorf("row counts = %d, %d; want 2, 1", len(race.Heats[0].Rows), len(race.Heats[1].Rows))
	}

	// Round-trip: record values appear verbatim, in column order.
	want := [4]string{"2", "B. Jones", "U12", "Echo"}
	if race.Heats[0].Rows[1].Cells != want {
		t.Errorf("cells = %v, want %v", race.Heats[0].Rows[1].Cells, want)
	}
}

func TestBuildStriping(t *testing.T) {
	g := meet.Group([]meet.Entry{
		{Race: "r", Heat: "h", Swimmer: meet.Swimmer{Name: "a"}},
		{Race: "r", Heat: "h", Swimmer: meet.Swimmer{Name: "b"}},
		{Race: "r", Heat: "h", Swimmer: meet.Swimmer{Name: "c"}},
	})

	rows := Build(g).Races[0].Heats[0].Rows
	for i, row := range rows {
		if row.Alt != (i%2 == 1) {
			t.Errorf("row %d Alt = %v", i, row.Alt)
		}
	}
}

func TestBuildBlankCells(t *testing.T) {
	g := meet.Group([]meet.Entry{
		{Race: "100m", Heat: "H1", Swimmer: meet.Swimmer{Lane: "3", Name: "D. Kim"}},
	})

	row := Build(g).Races[0].Heats[0].Rows[0]
	if row.Cells[2] != "" || row.Cells[3] != "" {
		t.Errorf("missing values should render blank, got %v", row.Cells)
	}
	if row.Cells[0] != "3" || row.Cells[1] != "D. Kim" {
		t.Errorf("present values lost: %v", row.Cells)
	}
}

func TestErrorTree(t *testing.T) {
	tree := Error(errors.New("decode payload: unexpected EOF"))
	if tree.State != StateError {
		t.Errorf("State = %s, want %s", tree.State, StateError)
	}
	if tree.Message != "decode payload: unexpected EOF" {
		t.Errorf("Message = %q, want the failure text", tree.Message)
	}

	if got := Error(nil); got.Message == "" {
		t.Error("Error(nil) should still carry a message")
	}
}
