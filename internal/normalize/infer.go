package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/arcanaland/librarian/internal/card"
	"github.com/arcanaland/librarian/internal/lookup"
)

const (
	mergedMarker = "[MERGED]"
	flightMarker = "[FLIGHT]"
)

type category int

const (
	categoryGeneric category = iota
	categoryVampire
	categoryImbued
	categoryAlly
	categoryRetainer
	categoryEquipment
	categoryMaster
	categoryEvent
)

var categoryByType = map[string]category{
	"Vampire":   categoryVampire,
	"Imbued":    categoryImbued,
	"Ally":      categoryAlly,
	"Retainer":  categoryRetainer,
	"Equipment": categoryEquipment,
	"Master":    categoryMaster,
	"Event":     categoryEvent,
}

// rule attaches keyword when trigger occurs in the card text.
type rule struct {
	keyword string
	trigger string
}

var (
	cryptStats    = []string{"bleed", "strength", "stealth", "intercept"}
	cryptDefaults = map[string]int{"bleed": 1, "strength": 1, "stealth": 0, "intercept": 0}
	statModifier  = regexp.MustCompile(`([+-])(\d+) (bleed|strength|stealth|intercept)\b`)
)

// cryptRules are tested against the text before any merged section.
var cryptRules = []rule{
	{"black hand", "Black Hand"},
	{"seraph", "Seraph"},
	{"infernal", "Infernal"},
	{"red list", "Red List"},
	{"scarce", "Scarce"},
	{"sterile", "Sterile"},
	{"blood cursed", "Blood Cursed"},
	{"slave", "Tremere slave"},
	{"slave", "Tremere antitribu slave"},
}

// cryptFullTextRules are tested against the whole text.
var cryptFullTextRules = []rule{
	{"advanced", "Advanced"},
}

var (
	allyLife      = regexp.MustCompile(`(?:(Unique) (?:\w+ )??)?(\w+) (?:ally |retainer )?with (\d+) life`)
	strengthBleed = regexp.MustCompile(`(\d+) strength,? (\d+) bleed`)
	bleedStrength = regexp.MustCompile(`(\d+) bleed,? (\d+) strength`)
)

var equipmentRules = []rule{
	{"unique", "Unique"},
	{"location", "location"},
	{"vehicle", "vehicle"},
	{"melee weapon", "melee weapon"},
	{"gun", "gun"},
	{"electronic equipment", "electronic equipment"},
	{"haven", "haven"},
}

var masterRules = []rule{
	{"trifle", "Trifle"},
	{"unique", "Unique"},
	{"location", "location"},
	{"archetype", "Archetype"},
	{"watchtower", "Watchtower"},
	{"out-of-turn", "Out-of-turn"},
	{"boon", "Boon"},
	{"investment", "Investment"},
}

var eventRules = []rule{
	{"gehenna", "Gehenna"},
	{"inconnu", "Inconnu"},
	{"transient", "Transient"},
	{"government", "Government"},
}

var genericRules = []rule{
	{"unique", "Unique"},
	{"frenzy", "Frenzy"},
	{"ranged", "ranged"},
}

// sharedRules apply to every card.
var sharedRules = []rule{
	{"red list", "Red List"},
}

// sectTriggers are searched in order; the trigger is also the canonical sect.
var sectTriggers = []string{"Camarilla", "Sabbat", "Laibon", "Anarch", "Independent"}

// titleRule maps a trigger in the sect header to a title. A clan-qualified
// trigger only matches when the preceding word names a clan.
type titleRule struct {
	title         string
	trigger       string
	clanQualified bool
}

var titleRules = map[string][]titleRule{
	"Camarilla": {
		{title: "Inner Circle", trigger: "Inner Circle"},
		{title: "Imperator", trigger: "Imperator"},
		{title: "Justicar", trigger: "Justicar", clanQualified: true},
		{title: "Prince", trigger: "Prince of"},
		{title: "Primogen", trigger: "primogen"},
	},
	"Sabbat": {
		{title: "Cardinal", trigger: "Cardinal"},
		{title: "Regent", trigger: "Regent"},
		{title: "Priscus", trigger: "Priscus"},
		{title: "Archbishop", trigger: "Archbishop of"},
		{title: "Bishop", trigger: "bishop"},
		{title: "Abbot", trigger: "Abbot"},
	},
	"Anarch": {
		{title: "Baron", trigger: "Baron of"},
	},
	"Laibon": {
		{title: "Magaji", trigger: "Magaji"},
		{title: "Kholo", trigger: "Kholo"},
	},
}

var (
	votePattern       = regexp.MustCompile(`(\d+) votes?\b`)
	mergedVotePattern = regexp.MustCompile(`\+(\d+) votes?\b`)
)

var voteTitles = map[int]string{
	1: "Independent with 1 vote",
	2: "Independent with 2 votes",
	3: "Independent with 3 votes",
}

func categories(types []string) []category {
	var out []category
	seen := make(map[category]bool)
	for _, t := range types {
		cat, ok := categoryByType[t]
		if !ok {
			cat = categoryGeneric
		}
		if !seen[cat] {
			seen[cat] = true
			out = append(out, cat)
		}
	}
	if len(out) == 0 {
		out = append(out, categoryGeneric)
	}
	return out
}

// inferKeywords dispatches on the card categories.
func (n *Normalizer) inferKeywords(c *card.Card) {
	text := clarificationMarkers.Replace(c.Text)
	restricted, _, _ := strings.Cut(text, mergedMarker)

	cats := categories(c.Types)
	crypt := false
	for _, cat := range cats {
		if cat == categoryVampire || cat == categoryImbued {
			crypt = true
		}
	}

	if crypt {
		inferCryptStats(c, restricted)
		applyRules(c, restricted, cryptRules)
		applyRules(c, text, cryptFullTextRules)
		n.detectFlight(c, text)
	}

	for _, cat := range cats {
		switch cat {
		case categoryVampire:
			n.inferSect(c, text, restricted)
		case categoryImbued:
			c.AddKeyword("mortal")
		case categoryAlly, categoryRetainer:
			inferLife(c, text)
		case categoryEquipment:
			applyRules(c, text, equipmentRules)
		case categoryMaster:
			applyRules(c, text, masterRules)
		case categoryEvent:
			applyRules(c, text, eventRules)
		case categoryGeneric:
			if !crypt {
				applyRules(c, text, genericRules)
			}
		}
	}

	applyRules(c, text, sharedRules)
}

func applyRules(c *card.Card, text string, rules []rule) {
	for _, r := range rules {
		if strings.Contains(text, r.trigger) {
			c.AddKeyword(r.keyword)
		}
	}
}

// inferCryptStats emits "<n> bleed", "<n> strength", "<n> stealth" and
// "<n> intercept" from defaults, overrides and text modifiers.
func inferCryptStats(c *card.Card, restricted string) {
	stats := make(map[string]int, len(cryptDefaults))
	for stat, v := range cryptDefaults {
		stats[stat] = v
	}
	for stat, v := range cryptStatOverrides[c.CanonicalName] {
		stats[stat] = v
	}

	for _, m := range statModifier.FindAllStringSubmatch(restricted, -1) {
		v, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		if m[1] == "-" {
			v = -v
		}
		stats[m[3]] += v
	}

	for _, stat := range cryptStats {
		c.AddKeyword(fmt.Sprintf("%d %s", stats[stat], stat))
	}
}

func (n *Normalizer) detectFlight(c *card.Card, text string) {
	segments := strings.Split(text, ":")
	last := strings.TrimRight(strings.TrimSpace(segments[len(segments)-1]), ".")
	if !strings.HasSuffix(last, flightMarker) {
		return
	}
	if d, ok := n.discipline(c.Name, "FLIGHT"); ok {
		c.Disciplines = appendDiscipline(c.Disciplines, d)
	}
}

// sectHeader returns the part of the text that names sect and title.
func sectHeader(restricted string) string {
	segments := strings.Split(restricted, ":")
	header := segments[0]
	if len(segments) == 1 || findSect(header) != "" || len(strings.Fields(header)) > 3 {
		return header
	}
	second, _, _ := strings.Cut(segments[1], ".")
	return header + " " + second
}

func findSect(header string) string {
	for _, sect := range sectTriggers {
		if strings.Contains(header, sect) {
			return sect
		}
	}
	return ""
}

func (n *Normalizer) inferSect(c *card.Card, text, restricted string) {
	header := sectHeader(restricted)
	sect := findSect(header)
	if sect == "" {
		return
	}
	n.addResolved(c, lookup.Sects, sect, &c.Sects)

	if sect == "Independent" {
		n.inferVoteTitle(c, text)
		return
	}
	for _, r := range titleRules[sect] {
		if n.titleMatches(header, r) {
			n.addResolved(c, lookup.Titles, r.title, &c.Titles)
			return
		}
	}
}

func (n *Normalizer) titleMatches(header string, r titleRule) bool {
	if !r.clanQualified {
		return strings.Contains(header, r.trigger)
	}
	fields := strings.Fields(header)
	for i := 1; i < len(fields); i++ {
		if strings.TrimRight(fields[i], ".,") != r.trigger {
			continue
		}
		if _, ok := n.tables.Resolve(lookup.Clans, fields[i-1]); ok {
			return true
		}
		if i > 1 {
			if _, ok := n.tables.Resolve(lookup.Clans, fields[i-2]+" "+fields[i-1]); ok {
				return true
			}
		}
	}
	return false
}

// inferVoteTitle reads "<n> vote(s)" from the text. A merged section either
// adds "+<n> vote(s)" or restates the total, which replaces the count.
func (n *Normalizer) inferVoteTitle(c *card.Card, text string) {
	before, merged, hasMerged := strings.Cut(text, mergedMarker)

	votes := 0
	if m := votePattern.FindStringSubmatch(before); m != nil {
		votes, _ = strconv.Atoi(m[1])
	}
	if hasMerged {
		if m := mergedVotePattern.FindStringSubmatch(merged); m != nil {
			extra, _ := strconv.Atoi(m[1])
			votes += extra
		} else if m := votePattern.FindStringSubmatch(merged); m != nil {
			votes, _ = strconv.Atoi(m[1])
		}
	}

	if votes == 0 {
		return
	}
	title, ok := voteTitles[votes]
	if !ok {
		n.warn(c.Name, fmt.Sprintf("unsupported vote count %d", votes))
		return
	}
	n.addResolved(c, lookup.Titles, title, &c.Titles)
}

func (n *Normalizer) addResolved(c *card.Card, d lookup.Domain, name string, list *[]string) {
	canonical, ok := n.tables.Resolve(d, name)
	if !ok {
		n.warn(c.Name, "unknown "+strings.TrimSuffix(string(d), "s")+" "+strconv.Quote(name))
		return
	}
	if !contains(*list, canonical) {
		*list = append(*list, canonical)
	}
}

// inferLife reads "(Unique )<type> with <n> life" and the strength and bleed
// sentence of allies and retainers.
func inferLife(c *card.Card, text string) {
	if m := allyLife.FindStringSubmatch(text); m != nil {
		if m[1] != "" {
			c.AddKeyword("unique")
		}
		c.AddKeyword(strings.ToLower(m[2]))
		if c.Life == nil {
			if life, err := strconv.Atoi(m[3]); err == nil {
				c.Life = &life
			}
		}
	}

	if m := strengthBleed.FindStringSubmatch(text); m != nil {
		c.AddKeyword(m[1] + " strength")
		c.AddKeyword(m[2] + " bleed")
	} else if m := bleedStrength.FindStringSubmatch(text); m != nil {
		c.AddKeyword(m[2] + " strength")
		c.AddKeyword(m[1] + " bleed")
	}

	for _, keyword := range allyExceptions[c.CanonicalName] {
		c.AddKeyword(keyword)
	}
}
