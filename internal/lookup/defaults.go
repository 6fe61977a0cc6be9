package lookup

// defaultTables maps each domain to canonical names and their abbreviations.
var defaultTables = map[Domain]map[string][]string{
	Clans: {
		"Abomination":           {"Abom"},
		"Ahrimane":              {"Ahrimanes"},
		"Akunanse":              {"Akun"},
		"Assamite":              {"Assam", "Banu Haqim"},
		"Baali":                 nil,
		"Blood Brother":         {"Blood Brothers"},
		"Brujah":                {"Bru"},
		"Brujah antitribu":      {"!Brujah", "Bru antitribu"},
		"Caitiff":               {"Cait"},
		"Daughter of Cacophony": {"Daughters of Cacophony", "DoC"},
		"Follower of Set":       {"Set", "Followers of Set", "Ministry", "The Ministry"},
		"Gangrel":               {"Gang"},
		"Gangrel antitribu":     {"!Gangrel"},
		"Gargoyle":              {"Gargoyles"},
		"Giovanni":              {"Gio", "Hecata"},
		"Guruhi":                nil,
		"Harbinger of Skulls":   {"Harbingers of Skulls"},
		"Ishtarri":              nil,
		"Kiasyd":                nil,
		"Lasombra":              {"Lasom"},
		"Malkavian":             {"Malk"},
		"Malkavian antitribu":   {"!Malkavian", "Malk antitribu"},
		"Nagaraja":              nil,
		"Nosferatu":             {"Nos"},
		"Nosferatu antitribu":   {"!Nosferatu", "Nos antitribu"},
		"Osebo":                 nil,
		"Pander":                nil,
		"Ravnos":                {"Rav"},
		"Salubri":               nil,
		"Salubri antitribu":     {"!Salubri"},
		"Samedi":                nil,
		"Toreador":              {"Tor"},
		"Toreador antitribu":    {"!Toreador", "Tor antitribu"},
		"Tremere":               {"Trem"},
		"Tremere antitribu":     {"!Tremere", "Trem antitribu"},
		"True Brujah":           nil,
		"Tzimisce":              {"Tzi"},
		"Ventrue":               {"Ven"},
		"Ventrue antitribu":     {"!Ventrue", "Ven antitribu"},
	},
	Creeds: {
		"Avenger":   nil,
		"Defender":  nil,
		"Innocent":  nil,
		"Judge":     nil,
		"Martyr":    nil,
		"Redeemer":  nil,
		"Visionary": nil,
	},
	Disciplines: {
		"Abombwe":       {"abo"},
		"Animalism":     {"ani"},
		"Auspex":        {"aus"},
		"Celerity":      {"cel"},
		"Chimerstry":    {"chi"},
		"Daimoinon":     {"dai"},
		"Dementation":   {"dem"},
		"Dominate":      {"dom"},
		"Flight":        {"fli"},
		"Fortitude":     {"for"},
		"Maleficia":     {"mal"},
		"Melpominee":    {"mel"},
		"Mytherceria":   {"myt"},
		"Necromancy":    {"nec"},
		"Obeah":         {"obe"},
		"Obfuscate":     {"obf"},
		"Oblivion":      {"obl"},
		"Obtenebration": {"obt"},
		"Potence":       {"pot"},
		"Presence":      {"pre"},
		"Protean":       {"pro"},
		"Quietus":       {"qui"},
		"Sanguinus":     {"san"},
		"Serpentis":     {"ser"},
		"Spiritus":      {"spi"},
		"Striga":        {"str"},
		"Temporis":      {"tem"},
		"Thanatosis":    {"thn"},
		"Thaumaturgy":   {"tha"},
		"Valeren":       {"val"},
		"Vicissitude":   {"vic"},
		"Visceratika":   {"vis"},
	},
	Expansions: {
		"Jyhad":                         nil,
		"Vampire: The Eternal Struggle": {"VTES"},
		"Dark Sovereigns":               {"DS"},
		"Ancient Hearts":                {"AH"},
		"Sabbat":                        nil,
		"Sabbat War":                    {"SW"},
		"Final Nights":                  {"FN"},
		"Bloodlines":                    {"BL"},
		"Camarilla Edition":             {"CE"},
		"Anarchs":                       nil,
		"Black Hand":                    {"BH"},
		"Gehenna":                       nil,
		"Tenth Anniversary":             {"Tenth"},
		"Kindred Most Wanted":           {"KMW"},
		"Legacies of Blood":             {"LoB"},
		"Nights of Reckoning":           {"NoR"},
		"Third Edition":                 {"Third"},
		"Sword of Caine":                {"SoC"},
		"Lords of the Night":            {"LotN"},
		"Blood Shadowed Court":          {"BSC"},
		"Twilight Rebellion":            {"TR"},
		"Keepers of Tradition":          {"KoT"},
		"Ebony Kingdom":                 {"EK"},
		"Heirs to the Blood":            {"HttB"},
		"Danse Macabre":                 {"DM"},
		"The Unaligned":                 {"TU"},
		"Anthology":                     nil,
		"Anthology I Reprint Set":       nil,
		"Print on Demand":               {"POD"},
		"Lost Kindred":                  {"LK"},
		"Sabbat Preconstructed":         {"SP"},
		"Fifth Edition":                 {"V5"},
	},
	Rarities: {
		"Common":          {"C"},
		"Uncommon":        {"U"},
		"Rare":            {"R"},
		"Vampire":         {"V"},
		"Precon":          {"P", "PB"},
		"Anthology":       {"A"},
		"Demo":            nil,
		"Storyline":       {"Storyline Reward"},
		"Promo":           nil,
		"LARP":            nil,
		"Kickstarter":     {"KS"},
		"DriveThruCards":  {"DTC"},
		"Print on Demand": {"POD"},
		"PDF":             nil,
		"Not Applicable":  {"NA"},
	},
	Sects: {
		"Camarilla":   {"Cam"},
		"Sabbat":      nil,
		"Laibon":      nil,
		"Anarch":      {"Anarchs"},
		"Independent": {"Ind"},
	},
	Titles: {
		"Primogen":                 nil,
		"Prince":                   nil,
		"Justicar":                 nil,
		"Inner Circle":             nil,
		"Imperator":                nil,
		"Bishop":                   nil,
		"Archbishop":               nil,
		"Priscus":                  nil,
		"Cardinal":                 nil,
		"Regent":                   nil,
		"Abbot":                    nil,
		"Baron":                    nil,
		"Magaji":                   nil,
		"Kholo":                    nil,
		"Independent with 1 vote":  {"1 vote"},
		"Independent with 2 votes": {"2 votes"},
		"Independent with 3 votes": {"3 votes"},
	},
	Virtues: {
		"Defense":    {"def"},
		"Innocence":  {"inn"},
		"Judgment":   {"jud"},
		"Martyrdom":  {"mar"},
		"Redemption": {"red"},
		"Vengeance":  {"ven"},
		"Vision":     {"vis"},
	},
	CardTypes: {
		"Action":           nil,
		"Action Modifier":  {"Action Mod"},
		"Ally":             nil,
		"Combat":           nil,
		"Conviction":       nil,
		"Equipment":        nil,
		"Event":            nil,
		"Imbued":           nil,
		"Master":           nil,
		"Political Action": {"Political"},
		"Power":            nil,
		"Reaction":         nil,
		"Reflex":           nil,
		"Retainer":         nil,
		"Vampire":          nil,
	},
}
