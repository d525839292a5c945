package field

import "testing"

func TestNewMapPositions(t *testing.T) {
	m := NewMap([]Descriptor{
		{ID: Race}, {ID: Heat}, {ID: Lane}, {ID: Name}, {ID: AgeGroup}, {ID: Academy},
	})

	tests := []struct {
		id   ID
		want int
	}{
		{Race, 0},
		{Heat, 1},
		{Lane, 2},
		{Name, 3},
		{AgeGroup, 4},
		{Academy, 5},
	}

	for _, tt := range tests {
		got, ok := m.Position(tt.id)
		if !ok || got != tt.want {
			t.Errorf("Position(%s) = %d, %v; want %d, true", tt.id, got, ok, tt.want)
		}
	}
}

func TestNewMapMissingIdentifier(t *testing.T) {
	// Academy descriptor absent: lookups must report not-found, not fail.
	m := NewMap([]Descriptor{{ID: Race}, {ID: Heat}, {ID: Lane}, {ID: Name}, {ID: AgeGroup}})

	if _, ok := m.Position(Academy); ok {
		t.Error("Position(Academy) should report not-found for unbound identifier")
	}
	if got := m.Value([]string{"100m", "H1", "3", "A. Smith", "U12"}, Academy); got != "" {
		t.Errorf("Value for unbound identifier = %q, want empty", got)
	}
}

func TestNewMapIgnoresUnknownAndDuplicates(t *testing.T) {
	m := NewMap([]Descriptor{
		{ID: Race},
		{ID: "METRIC"}, // unknown identifiers are skipped, positions still advance
		{ID: Heat},
		{ID: Race}, // duplicate: first occurrence wins
	})

	if got, _ := m.Position(Race); got != 0 {
		t.Errorf("Position(Race) = %d, want 0", got)
	}
	if got, _ := m.Position(Heat); got != 2 {
		t.Errorf("Position(Heat) = %d, want 2", got)
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestValueShortRow(t *testing.T) {
	m := NewMap([]Descriptor{{ID: Race}, {ID: Heat}, {ID: Lane}})

	// Row shorter than the bound position yields a blank, not a panic.
	if got := m.Value([]string{"100m"}, Lane); got != "" {
		t.Errorf("Value on short row = %q, want empty", got)
	}
	if got := m.Value([]string{"100m", "H1", "4"}, Lane); got != "4" {
		t.Errorf("Value = %q, want %q", got, "4")
	}
}

func TestKnown(t *testing.T) {
	for _, id := range All {
		if !Known(id) {
			t.Errorf("Known(%s) = false, want true", id)
		}
	}
	if Known("SPLIT_TIME") {
		t.Error("Known(SPLIT_TIME) = true, want false")
	}
}
