package meet

// Grouping is the two-level ordered fold of an entry sequence: race name
// → heat name → swimmers, all in first-seen input order. A Grouping is
// built fresh for every draw and never shared or mutated afterwards.
type Grouping struct {
	order []string
	races map[string]*RaceGroup
}

// RaceGroup holds one race's heats in first-seen order.
type RaceGroup struct {
	Name  string
	order []string
	heats map[string]*HeatGroup
}

// HeatGroup holds one heat's swimmers in input order.
type HeatGroup struct {
	Name     string
	Swimmers []Swimmer
}

// Group folds entries into a Grouping with a single pass over the input.
// Race and heat buckets are created lazily on first occurrence, appended
// to the end of their ordered level, and never merged or split. Empty
// race or heat names are valid keys and group like any other value.
//
// Group is deterministic: iteration order depends only on the entry
// sequence, never on map ordering.
func Group(entries []Entry) *Grouping {
	g := &Grouping{races: make(map[string]*RaceGroup)}
	for _, e := range entries {
		race, ok := g.races[e.Race]
		if !ok {
			race = &RaceGroup{Name: e.Race, heats: make(map[string]*HeatGroup)}
			g.races[e.Race] = race
			g.order = append(g.order, e.Race)
		}
		heat, ok := race.heats[e.Heat]
		if !ok {
			heat = &HeatGroup{Name: e.Heat}
			race.heats[e.Heat] = heat
			race.order = append(race.order, e.Heat)
		}
		heat.Swimmers = append(heat.Swimmers, e.Swimmer)
	}
	return g
}

// Empty reports whether the grouping holds no races (zero input rows).
func (g *Grouping) Empty() bool { return len(g.order) == 0 }

// RaceCount returns the number of distinct races.
func (g *Grouping) RaceCount() int { return len(g.order) }

// Races returns the race groups in first-seen order.
func (g *Grouping) Races() []*RaceGroup {
	races := make([]*RaceGroup, len(g.order))
	for i, name := range g.order {
		races[i] = g.races[name]
	}
	return races
}

// Race returns the group for the given race name, or nil.
func (g *Grouping) Race(name string) *RaceGroup { return g.races[name] }

// SwimmerCount returns the total number of swimmers across all heats.
func (g *Grouping) SwimmerCount() int {
	n := 0
	for _, race := range g.races {
		for _, heat := range race.heats {
			n += len(heat.Swimmers)
		}
	}
	return n
}

// HeatCount returns the number of distinct heats in the race.
func (r *RaceGroup) HeatCount() int { return len(r.order) }

// Heats returns the heat groups in first-seen order.
func (r *RaceGroup) Heats() []*HeatGroup {
	heats := make([]*HeatGroup, len(r.order))
	for i, name := range r.order {
		heats[i] = r.heats[name]
	}
	return heats
}

// Heat returns the group for the given heat name, or nil.
func (r *RaceGroup) Heat(name string) *HeatGroup { return r.heats[name] }
