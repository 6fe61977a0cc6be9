// Package normalize converts raw catalog records into typed cards and infers
// the keywords the catalog only states in prose.
package normalize

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/arcanaland/librarian/internal/card"
	"github.com/arcanaland/librarian/internal/log"
	"github.com/arcanaland/librarian/internal/lookup"
)

// ErrMissingName is returned for a record without a Name line.
var ErrMissingName = errors.New("record has no name")

const (
	advancedLevel  = "advanced"
	advancedSuffix = " (Advanced)"
	noneSentinel   = "-none-"
	reflexMarker   = "[REFLEX]"
)

var (
	shortAdvancedSuffixes = []string{"(ADV)", "(Adv)"}
	clarificationMarkers  = strings.NewReplacer("{", "", "}", "")
	leadingInt            = regexp.MustCompile(`^\s*(-?\d+)`)
)

// WarnFunc receives tolerated problems found while normalizing a card.
type WarnFunc func(cardName, msg string)

// Normalizer turns card.Records into card.Cards
type Normalizer struct {
	tables *lookup.Tables
	warn   WarnFunc
}

// New creates a normalizer resolving names through tables.
func New(tables *lookup.Tables) *Normalizer {
	if tables == nil {
		tables = lookup.Default()
	}
	return &Normalizer{
		tables: tables,
		warn: func(cardName, msg string) {
			log.Warn(msg, "card", cardName)
		},
	}
}

// SetWarnFunc replaces the default warning handler, which logs.
func (n *Normalizer) SetWarnFunc(fn WarnFunc) {
	if fn != nil {
		n.warn = fn
	}
}

// WithWarnFunc returns a copy of n that reports warnings to fn. The receiver
// keeps its own handler.
func (n *Normalizer) WithWarnFunc(fn WarnFunc) *Normalizer {
	cp := *n
	cp.SetWarnFunc(fn)
	return &cp
}

// Tables returns the lookup tables in use.
func (n *Normalizer) Tables() *lookup.Tables {
	return n.tables
}

// Normalize converts one flushed record.
func (n *Normalizer) Normalize(rec *card.Record) (*card.Card, error) {
	if rec == nil || !rec.HasName() {
		return nil, ErrMissingName
	}

	c := &card.Card{
		Text:       rec.Text,
		SearchText: SearchText(rec.Text),
		BurnOption: rec.BurnOption,
	}
	n.normalizeName(c, rec)

	c.Cost, c.CostType = n.parseCost(c.Name, rec.Cost)
	c.Group = n.parseGroup(c.Name, rec.Group)
	c.Capacity = parseLeadingInt(rec.Capacity)
	c.Life = parseLeadingInt(rec.Life)

	c.Types = n.resolveList(c.Name, lookup.CardTypes, splitList(rec.CardType, "/"))
	if strings.Contains(rec.Text, reflexMarker) && !contains(c.Types, "Reflex") {
		c.Types = append(c.Types, "Reflex")
	}
	c.Clans = n.resolveList(c.Name, lookup.Clans, splitList(rec.Clan, "/"))
	c.Creeds = n.resolveList(c.Name, lookup.Creeds, splitList(rec.Creed, "/"))
	c.Virtues = n.resolveList(c.Name, lookup.Virtues, splitTokens(rec.Virtue))
	c.Disciplines = n.parseDisciplines(c.Name, rec.Discipline)
	c.Titles = n.resolveList(c.Name, lookup.Titles, splitList(rec.Title, "/"))
	c.Sects = n.resolveList(c.Name, lookup.Sects, splitList(rec.Sect, "/"))
	c.Artists = splitList(rec.Artist, ";")

	for _, keyword := range splitList(rec.Keywords, ",") {
		c.AddKeyword(strings.ToLower(keyword))
	}

	c.Printings = n.parsePrintings(c.Name, rec.Expansion)

	n.inferKeywords(c)
	return c, nil
}

// normalizeName expands the advanced suffix, sets the level and collects aliases.
func (n *Normalizer) normalizeName(c *card.Card, rec *card.Record) {
	name := strings.TrimSpace(rec.Name)
	level := strings.ToLower(strings.TrimSpace(rec.Level))

	base, advanced := "", false
	for _, suffix := range shortAdvancedSuffixes {
		if strings.HasSuffix(name, suffix) {
			base = strings.TrimSpace(strings.TrimSuffix(name, suffix))
			advanced = true
			break
		}
	}
	if !advanced && level == advancedLevel {
		base = strings.TrimSpace(strings.TrimSuffix(name, strings.TrimSpace(advancedSuffix)))
		advanced = true
	}
	if advanced {
		name = base + advancedSuffix
		level = advancedLevel
	}

	c.Name = name
	c.CanonicalName = card.CanonicalName(name)
	c.Level = level

	for _, alias := range rec.AKA {
		c.Aliases = addAlias(c.Aliases, alias, c.CanonicalName)
	}
	if advanced {
		for _, suffix := range shortAdvancedSuffixes {
			c.Aliases = addAlias(c.Aliases, base+" "+suffix, c.CanonicalName)
		}
	}
}

func addAlias(aliases []string, alias, canonical string) []string {
	alias = strings.TrimSpace(alias)
	if alias == "" || card.CanonicalName(alias) == canonical || contains(aliases, alias) {
		return aliases
	}
	return append(aliases, alias)
}

// parseCost handles "2 pool", "1 blood" and the "X pool" sentinel.
func (n *Normalizer) parseCost(name, raw string) (*int, string) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil, ""
	}

	var costType string
	if len(fields) > 1 {
		costType = strings.ToLower(strings.Trim(fields[1], ".,"))
	}

	if strings.EqualFold(fields[0], "X") {
		return intPtr(-1), costType
	}
	v, err := strconv.Atoi(fields[0])
	if err != nil {
		n.warn(name, "unparsable cost "+strconv.Quote(raw))
		return nil, costType
	}
	return &v, costType
}

func (n *Normalizer) parseGroup(name, raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if raw == "*" || strings.EqualFold(raw, "any") {
		return intPtr(-1)
	}
	v := parseLeadingInt(raw)
	if v == nil {
		n.warn(name, "unparsable group "+strconv.Quote(raw))
	}
	return v
}

// parseLeadingInt reads the integer at the start of s, ignoring trailing units.
func parseLeadingInt(s string) *int {
	m := leadingInt.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &v
}

// parseDisciplines reads space or slash separated tokens. Upper-case tokens
// are superior.
func (n *Normalizer) parseDisciplines(name, raw string) []card.Discipline {
	var out []card.Discipline
	for _, token := range splitTokens(raw) {
		if d, ok := n.discipline(name, token); ok {
			out = appendDiscipline(out, d)
		}
	}
	return out
}

func (n *Normalizer) discipline(name, token string) (card.Discipline, bool) {
	canonical, ok := n.tables.Resolve(lookup.Disciplines, token)
	if !ok {
		n.warn(name, "unknown discipline "+strconv.Quote(token))
		return card.Discipline{}, false
	}
	level := card.Inferior
	if isUpper(token) {
		level = card.Superior
	}
	return card.Discipline{Name: canonical, Level: level}, true
}

func appendDiscipline(list []card.Discipline, d card.Discipline) []card.Discipline {
	for _, existing := range list {
		if existing == d {
			return list
		}
	}
	return append(list, d)
}

func (n *Normalizer) resolveList(name string, d lookup.Domain, tokens []string) []string {
	var out []string
	for _, token := range tokens {
		canonical, ok := n.tables.Resolve(d, token)
		if !ok {
			n.warn(name, "unknown "+strings.TrimSuffix(string(d), "s")+" "+strconv.Quote(token))
			continue
		}
		if !contains(out, canonical) {
			out = append(out, canonical)
		}
	}
	return out
}

// splitList splits on sep, trims, strips clarification markers and drops
// empty and "-none-" entries.
func splitList(raw, sep string) []string {
	var out []string
	for _, part := range strings.Split(raw, sep) {
		part = strings.TrimSpace(clarificationMarkers.Replace(part))
		if part == "" || part == noneSentinel {
			continue
		}
		out = append(out, part)
	}
	return out
}

// splitTokens splits on whitespace and then on '/'.
func splitTokens(raw string) []string {
	var out []string
	for _, field := range strings.Fields(raw) {
		out = append(out, splitList(field, "/")...)
	}
	return out
}

func isUpper(s string) bool {
	return s == strings.ToUpper(s) && s != strings.ToLower(s)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func intPtr(v int) *int {
	return &v
}
