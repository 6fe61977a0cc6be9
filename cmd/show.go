package cmd

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/librarian/internal/card"
	"github.com/arcanaland/librarian/internal/store"
)

// suggestionThreshold is the minimum Jaro-Winkler similarity for a name to
// be offered as a suggestion.
const suggestionThreshold = 0.85

var showCmd = &cobra.Command{
	Use:   "show [card name]",
	Short: "Display information about a stored card",
	Long: `Show displays everything the card database knows about a card.
The name is matched case-insensitively and may be any alias of the card.

Examples:
  librarian show Anson
  librarian show "kemintiri (adv)"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		ctx := cmd.Context()

		db, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		v, err := db.Card(ctx, name)
		if errors.Is(err, store.ErrNotFound) {
			names, nerr := db.CardNames(ctx)
			if nerr != nil {
				return nerr
			}
			if s := suggest(name, names, 5); len(s) > 0 {
				return fmt.Errorf("card not found: %s (did you mean %s?)", name, strings.Join(s, ", "))
			}
			return fmt.Errorf("card not found: %s", name)
		}
		if err != nil {
			return fmt.Errorf("error getting card: %v", err)
		}

		displayCard(v)
		return nil
	},
}

// suggest returns up to limit names similar to query, best match first.
func suggest(query string, names []string, limit int) []string {
	type scored struct {
		name  string
		score float64
	}
	q := card.CanonicalName(query)
	var matches []scored
	for _, n := range names {
		score := matchr.JaroWinkler(q, card.CanonicalName(n), false)
		if score >= suggestionThreshold {
			matches = append(matches, scored{n, score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	var result []string
	for i := 0; i < len(matches) && i < limit; i++ {
		result = append(result, matches[i].name)
	}
	return result
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		if len(currentLine) == 0 {
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}

func formatDisciplines(ds []card.Discipline) string {
	parts := make([]string, 0, len(ds))
	for _, d := range ds {
		if d.Level == card.Superior {
			parts = append(parts, strings.ToUpper(d.Name))
		} else {
			parts = append(parts, d.Name)
		}
	}
	return strings.Join(parts, " ")
}

func formatPrintings(ps []card.Printing) string {
	parts := make([]string, 0, len(ps))
	for _, p := range ps {
		if p.Rarity == "" {
			parts = append(parts, p.Expansion)
			continue
		}
		parts = append(parts, p.Expansion+":"+p.Rarity)
	}
	return strings.Join(parts, ", ")
}

func formatCost(v *store.CardView) string {
	if v.Cost == nil {
		return ""
	}
	cost := strconv.Itoa(*v.Cost)
	if *v.Cost < 0 {
		cost = "X"
	}
	return strings.TrimSpace(cost + " " + v.CostType)
}

func formatInt(i *int) string {
	if i == nil {
		return ""
	}
	if *i < 0 {
		return "any"
	}
	return strconv.Itoa(*i)
}

// displayCard prints the card, one labeled field per line
func displayCard(v *store.CardView) {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	field := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Println("  " + color.CyanString("%-12s", label+":") + color.HiWhiteString("%s", value))
	}

	fmt.Println()
	field("Card", v.Name)
	field("Aliases", store.JoinLinked(v.Aliases))
	field("Type", store.JoinLinked(v.Linked(store.KindCardType)))
	field("Clan", store.JoinLinked(v.Linked(store.KindClan)))
	field("Creed", store.JoinLinked(v.Linked(store.KindCreed)))
	field("Sect", store.JoinLinked(v.Linked(store.KindSect)))
	field("Title", store.JoinLinked(v.Linked(store.KindTitle)))
	field("Level", v.Level)
	field("Group", formatInt(v.Group))
	field("Capacity", formatInt(v.Capacity))
	field("Life", formatInt(v.Life))
	field("Cost", formatCost(v))
	field("Disciplines", formatDisciplines(v.Disciplines))
	field("Virtues", store.JoinLinked(v.Linked(store.KindVirtue)))
	field("Keywords", store.JoinLinked(v.Linked(store.KindKeyword)))
	field("Printings", formatPrintings(v.Printings))
	field("Artists", store.JoinLinked(v.Linked(store.KindArtist)))
	if v.BurnOption {
		field("Burn option", "yes")
	}

	if v.Text != "" {
		fmt.Println()
		fmt.Println("  " + color.CyanString("Text:"))
		for _, paragraph := range strings.Split(v.Text, "\n") {
			for _, line := range wrapText(paragraph, width-4) {
				fmt.Println("    " + line)
			}
		}
	}
	fmt.Println()
}
