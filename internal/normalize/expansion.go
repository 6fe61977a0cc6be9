package normalize

import (
	"strconv"
	"strings"

	"github.com/arcanaland/librarian/internal/card"
	"github.com/arcanaland/librarian/internal/lookup"
)

const (
	anthologyExpansion = "Anthology"
	anthologyReprint   = "Anthology I Reprint Set"
	printOnDemand      = "Print on Demand"
	promoPrefix        = "Promo-"
	promoRarity        = "Promo"
	precon             = "Precon"
	defaultRarity      = "NA"
	larpRarity         = "LARP"
)

// printOnDemandCodes are rarity codes redirected to the print on demand
// pseudo-expansion whatever expansion they are listed under.
var printOnDemandCodes = map[string]bool{
	"DTC": true,
	"POD": true,
	"PDF": true,
}

// parsePrintings decomposes "[Jyhad:C, VTES:C2/PB]" into expansion and rarity pairs.
func (n *Normalizer) parsePrintings(name, raw string) []card.Printing {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(strings.TrimPrefix(raw, "["), "]")

	var out []card.Printing
	for _, pair := range splitList(raw, ",") {
		expansion, rarities, found := strings.Cut(pair, ":")
		expansion = strings.TrimSpace(expansion)
		if expansion == "" {
			n.warn(name, "empty expansion in "+strconv.Quote(pair))
			continue
		}
		if !found || strings.TrimSpace(rarities) == "" {
			rarities = defaultRarity
		}

		for _, code := range splitList(rarities, "/") {
			for _, p := range n.printing(name, expansion, code) {
				out = appendPrinting(out, p)
			}
		}
	}
	return out
}

// printing resolves one expansion and rarity code. It can yield a second
// printing for anthology reprints.
func (n *Normalizer) printing(name, expansion, code string) []card.Printing {
	if strings.HasPrefix(code, promoPrefix) {
		return []card.Printing{{Expansion: code, Rarity: promoRarity}}
	}

	code = strings.TrimRight(code, "0123456789")
	if code == "" {
		code = defaultRarity
	}

	rarity, ok := n.tables.Resolve(lookup.Rarities, code)
	if !ok {
		if strings.HasPrefix(strings.ToUpper(code), "P") {
			rarity = precon
		} else {
			n.warn(name, "unknown rarity "+strconv.Quote(code))
			rarity = code
		}
	}

	if printOnDemandCodes[strings.ToUpper(code)] {
		return []card.Printing{{Expansion: printOnDemand, Rarity: rarity}}
	}

	canonical, _ := n.tables.Resolve(lookup.Expansions, expansion)
	out := []card.Printing{{Expansion: canonical, Rarity: rarity}}
	if canonical == anthologyExpansion && !strings.EqualFold(code, larpRarity) {
		out = append(out, card.Printing{Expansion: anthologyReprint, Rarity: rarity})
	}
	return out
}

func appendPrinting(list []card.Printing, p card.Printing) []card.Printing {
	for _, existing := range list {
		if existing == p {
			return list
		}
	}
	return append(list, p)
}
