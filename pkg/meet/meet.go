package meet

// Swimmer is one result row's leaf attributes. All values are opaque
// display strings: no semantic validation is performed, and a missing
// value is simply the empty string.
type Swimmer struct {
	Lane     string `json:"lane"`
	Name     string `json:"name"`
	AgeGroup string `json:"age_group"`
	Academy  string `json:"academy"`
}

// Entry is one normalized input row: a swimmer tagged with the race and
// heat it belongs to. Entries preserve input order, which is the order
// everything downstream renders in.
type Entry struct {
	Race    string
	Heat    string
	Swimmer Swimmer
}
