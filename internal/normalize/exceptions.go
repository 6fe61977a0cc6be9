package normalize

// cryptStatOverrides replaces the default crypt stats of cards whose text
// states them irregularly. Keys are canonical names.
var cryptStatOverrides = map[string]map[string]int{
	"anarch convert":     {"bleed": 0},
	"baron dieudonne":    {"strength": 2},
	"khabar the hive":    {"bleed": 0, "strength": 0},
	"lord of lost souls": {"bleed": 0},
	"nakhthorheb":        {"strength": 2},
	"the unnamed":        {"bleed": 0},
	"tupdog":             {"bleed": 0},
}

// allyExceptions holds keywords for allies and retainers that do not follow
// the "<type> with <n> life" template. Keys are canonical names.
var allyExceptions = map[string][]string{
	"carlton van wyk":        {"unique", "hunter", "1 strength", "0 bleed"},
	"ghoul escort":           {"ghoul", "1 strength", "0 bleed"},
	"gypsies":                {"unique", "mortal", "1 strength", "1 bleed"},
	"high top":               {"unique", "werewolf", "1 strength", "1 bleed"},
	"mr. winthrop":           {"unique", "mortal", "1 strength", "1 bleed"},
	"muddled vampire hunter": {"mortal", "hunter", "1 strength", "0 bleed"},
	"ossian":                 {"unique", "werewolf", "2 strength", "0 bleed"},
}
