package lookup

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Domain names one abbreviation table
type Domain string

const (
	Clans       Domain = "clans"
	Creeds      Domain = "creeds"
	Disciplines Domain = "disciplines"
	Expansions  Domain = "expansions"
	Rarities    Domain = "rarities"
	Sects       Domain = "sects"
	Titles      Domain = "titles"
	Virtues     Domain = "virtues"
	CardTypes   Domain = "cardtypes"
)

// Strategy decides what happens to a token missing from a table
type Strategy int

const (
	// Closed domains only accept known members.
	Closed Strategy = iota
	// PassThrough domains accept unknown tokens verbatim.
	PassThrough
)

type table struct {
	strategy Strategy
	entries  map[string]string // lower-cased alias -> canonical name
}

// Tables holds every canonical lookup table
type Tables struct {
	tables map[Domain]*table
}

// New returns empty tables with the standard strategy per domain.
func New() *Tables {
	t := &Tables{tables: make(map[Domain]*table)}
	for _, d := range AllDomains() {
		strategy := Closed
		if d == Expansions {
			strategy = PassThrough
		}
		t.tables[d] = &table{strategy: strategy, entries: make(map[string]string)}
	}
	return t
}

// AllDomains lists the domains in a stable order.
func AllDomains() []Domain {
	return []Domain{Clans, Creeds, Disciplines, Expansions, Rarities, Sects, Titles, Virtues, CardTypes}
}

// Default returns the built-in tables.
func Default() *Tables {
	t := New()
	for d, entries := range defaultTables {
		for canonical, aliases := range entries {
			t.Add(d, canonical, canonical)
			for _, alias := range aliases {
				t.Add(d, alias, canonical)
			}
		}
	}
	return t
}

// Load returns the built-in tables extended with the aliases in a TOML file.
// An empty path returns the built-in tables.
func Load(path string) (*Tables, error) {
	t := Default()
	if path == "" {
		return t, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("tables file not found: %s", path)
	}

	var cfg TablesConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing tables file: %w", err)
	}

	if err := t.Merge(cfg); err != nil {
		return nil, err
	}
	return t, nil
}

// Merge adds every alias of cfg to the tables.
func (t *Tables) Merge(cfg TablesConfig) error {
	for name, aliases := range cfg.Aliases {
		d := Domain(strings.ToLower(name))
		if _, ok := t.tables[d]; !ok {
			return fmt.Errorf("unknown lookup domain: %s", name)
		}
		for alias, canonical := range aliases {
			t.Add(d, canonical, canonical)
			t.Add(d, alias, canonical)
		}
	}
	return nil
}

// Add registers alias as a spelling of canonical in domain d.
func (t *Tables) Add(d Domain, alias, canonical string) {
	tbl, ok := t.tables[d]
	if !ok {
		return
	}
	key := normalizeKey(alias)
	if key == "" {
		return
	}
	tbl.entries[key] = strings.TrimSpace(canonical)
}

// Resolve maps token to its canonical name in domain d. Closed domains
// report false for unknown tokens; pass-through domains return the token.
func (t *Tables) Resolve(d Domain, token string) (string, bool) {
	tbl, ok := t.tables[d]
	if !ok {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	if canonical, ok := tbl.entries[normalizeKey(token)]; ok {
		return canonical, true
	}
	if tbl.strategy == PassThrough {
		return token, true
	}
	return "", false
}

// Canonical lists the distinct canonical names of domain d, sorted.
func (t *Tables) Canonical(d Domain) []string {
	tbl, ok := t.tables[d]
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	for _, canonical := range tbl.entries {
		if !seen[canonical] {
			seen[canonical] = true
			names = append(names, canonical)
		}
	}
	sort.Strings(names)
	return names
}

// Strategy returns the resolution strategy of domain d.
func (t *Tables) Strategy(d Domain) Strategy {
	if tbl, ok := t.tables[d]; ok {
		return tbl.strategy
	}
	return Closed
}

func normalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// TablesConfig is the TOML layout of a tables override file:
//
//	[aliases.expansions]
//	"KoT" = "Keepers of Tradition"
type TablesConfig struct {
	Aliases map[string]map[string]string `toml:"aliases"`
}
