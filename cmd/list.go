package cmd

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/arcanaland/librarian/internal/store"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored cards",
	Long: `List prints the stored cards as a table, ordered by name. Filters combine,
so --clan Toreador --type Vampire lists Toreador vampires only.

Examples:
  librarian list --type Master
  librarian list --clan Brujah --expansion Jyhad
  librarian list --stats`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		if stats, _ := cmd.Flags().GetBool("stats"); stats {
			counts, err := db.Counts(ctx)
			if err != nil {
				return err
			}
			renderCounts(cmd, counts)
			return nil
		}

		var filters []store.Filter
		for flag, kind := range map[string]store.Kind{
			"clan":      store.KindClan,
			"type":      store.KindCardType,
			"keyword":   store.KindKeyword,
			"expansion": store.KindExpansion,
			"sect":      store.KindSect,
			"artist":    store.KindArtist,
		} {
			if value, _ := cmd.Flags().GetString(flag); value != "" {
				filters = append(filters, store.Filter{Kind: kind, Name: value})
			}
		}

		cards, err := db.Cards(ctx, filters...)
		if err != nil {
			return err
		}
		if len(cards) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No cards found.")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Name", "Type", "Clan", "Cost", "Capacity"})
		for _, c := range cards {
			cost := ""
			if c.Cost != nil {
				cost = formatCost(&store.CardView{Cost: c.Cost, CostType: c.CostType})
			}
			t.AppendRow(table.Row{c.Name, c.Types, c.Clans, cost, formatInt(c.Capacity)})
		}
		t.AppendFooter(table.Row{fmt.Sprintf("%d cards", len(cards))})
		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	},
}

func renderCounts(cmd *cobra.Command, c store.Counts) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Table", "Rows"})
	t.AppendRow(table.Row{"cards", c.Cards})
	t.AppendRow(table.Row{"aliases", c.Aliases})
	t.AppendRow(table.Row{"physical cards", c.PhysicalCards})
	t.AppendSeparator()

	kinds := make([]string, 0, len(c.Entities))
	for k := range c.Entities {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		t.AppendRow(table.Row{k, c.Entities[store.Kind(k)]})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func init() {
	listCmd.Flags().String("clan", "", "only cards of this clan")
	listCmd.Flags().String("type", "", "only cards of this card type")
	listCmd.Flags().String("keyword", "", "only cards with this keyword")
	listCmd.Flags().String("expansion", "", "only cards printed in this expansion")
	listCmd.Flags().String("sect", "", "only cards of this sect")
	listCmd.Flags().String("artist", "", "only cards by this artist")
	listCmd.Flags().Bool("stats", false, "print row counts instead of cards")
}
