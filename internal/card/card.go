package card

import "strings"

// Record is the raw field bag collected for one catalog block
type Record struct {
	Name       string
	AKA        []string // One entry per alias, AKA lines may recur
	Expansion  string   // Raw bracketed expansion list
	Cost       string
	Group      string
	Capacity   string
	Life       string
	Level      string
	Discipline string
	Virtue     string
	Clan       string
	Creed      string
	CardType   string // Slash-separated list
	Title      string
	Sect       string
	Keywords   string // Comma-separated list
	Artist     string
	Text       string
	BurnOption bool

	textStarted bool
}

// HasName reports whether the record has seen its Name line.
func (r *Record) HasName() bool {
	return r.Name != ""
}

// TextStarted reports whether any free text has been collected.
func (r *Record) TextStarted() bool {
	return r.textStarted
}

// AppendText adds one wrapped line of card text, joined by a single space.
func (r *Record) AppendText(line string) {
	line = strings.TrimSpace(line)
	r.textStarted = true
	if line == "" {
		return
	}
	if r.Text == "" {
		r.Text = line
		return
	}
	r.Text += " " + line
}

// Set stores a tagged value. It returns false for tags the record does not carry.
func (r *Record) Set(tag, value string) bool {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "cost":
		r.Cost = value
	case "group":
		r.Group = value
	case "capacity":
		r.Capacity = value
	case "life":
		r.Life = value
	case "level":
		r.Level = value
	case "discipline", "disciplines":
		r.Discipline = value
	case "virtue", "virtues":
		r.Virtue = value
	case "clan":
		r.Clan = value
	case "creed":
		r.Creed = value
	case "cardtype", "type":
		r.CardType = value
	case "title":
		r.Title = value
	case "sect":
		r.Sect = value
	case "keywords", "keyword":
		r.Keywords = value
	case "artist", "artists":
		r.Artist = value
	case "aka":
		r.AKA = append(r.AKA, value)
	default:
		return false
	}
	return true
}

// Level of a discipline held by a crypt card
type Level string

const (
	Inferior Level = "inferior"
	Superior Level = "superior"
)

// Discipline is a discipline at a given level
type Discipline struct {
	Name  string
	Level Level
}

// Printing is one expansion and rarity combination
type Printing struct {
	Expansion string
	Rarity    string
}

// Card is the normalized form of a Record, ready for assembly
type Card struct {
	Name          string // Display name, advanced suffix already expanded
	CanonicalName string
	Text          string
	SearchText    string

	Cost     *int
	CostType string
	Group    *int
	Capacity *int
	Life     *int
	Level    string

	Disciplines []Discipline
	Virtues     []string
	Clans       []string
	Creeds      []string
	Types       []string
	Titles      []string
	Sects       []string
	Artists     []string
	Keywords    []string
	Aliases     []string
	Printings   []Printing

	BurnOption bool
}

// Expansions returns the distinct expansions of the card's printings, in order.
func (c *Card) Expansions() []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range c.Printings {
		if seen[p.Expansion] {
			continue
		}
		seen[p.Expansion] = true
		out = append(out, p.Expansion)
	}
	return out
}

// HasKeyword reports whether keyword has already been attached.
func (c *Card) HasKeyword(keyword string) bool {
	for _, k := range c.Keywords {
		if k == keyword {
			return true
		}
	}
	return false
}

// AddKeyword attaches keyword unless it is already present.
func (c *Card) AddKeyword(keyword string) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" || c.HasKeyword(keyword) {
		return
	}
	c.Keywords = append(c.Keywords, keyword)
}

// CanonicalName lower-cases name and collapses runs of whitespace.
func CanonicalName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
