// Package assemble commits normalized cards through a store.Store.
package assemble

import (
	"context"
	"fmt"

	"github.com/arcanaland/librarian/internal/card"
	"github.com/arcanaland/librarian/internal/store"
)

// Assembler maps a card.Card onto persistent entities
type Assembler struct {
	store store.Store
}

// New creates an assembler writing to s.
func New(s store.Store) *Assembler {
	return &Assembler{store: s}
}

// Assemble commits c. Running it again for the same card creates nothing new.
func (a *Assembler) Assemble(ctx context.Context, c *card.Card) error {
	ref, err := a.store.ResolveOrCreateCard(ctx, c.Name, c.CanonicalName)
	if err != nil {
		return err
	}

	err = a.store.SetAttributes(ctx, ref, store.Attributes{
		Cost:       c.Cost,
		CostType:   c.CostType,
		Group:      c.Group,
		Capacity:   c.Capacity,
		Life:       c.Life,
		Level:      c.Level,
		BurnOption: c.BurnOption,
	})
	if err != nil {
		return err
	}

	for _, alias := range c.Aliases {
		if err := a.store.RegisterAlias(ctx, alias, c.CanonicalName); err != nil {
			return err
		}
	}

	links := []struct {
		kind  store.Kind
		names []string
	}{
		{store.KindKeyword, c.Keywords},
		{store.KindVirtue, c.Virtues},
		{store.KindClan, c.Clans},
		{store.KindCreed, c.Creeds},
		{store.KindCardType, c.Types},
		{store.KindTitle, c.Titles},
		{store.KindSect, c.Sects},
		{store.KindArtist, c.Artists},
	}
	for _, l := range links {
		for _, name := range l.names {
			if err := a.link(ctx, ref, l.kind, name); err != nil {
				return err
			}
		}
	}

	for _, d := range c.Disciplines {
		if err := a.linkDiscipline(ctx, ref, d); err != nil {
			return err
		}
	}

	if err := a.linkPrintings(ctx, ref, c.Printings); err != nil {
		return err
	}

	return a.store.SetText(ctx, ref, c.Text, c.SearchText)
}

func (a *Assembler) link(ctx context.Context, ref store.CardRef, kind store.Kind, name string) error {
	entity, err := a.store.ResolveOrCreate(ctx, kind, name)
	if err != nil {
		return err
	}
	return a.store.Link(ctx, ref, entity)
}

func (a *Assembler) linkDiscipline(ctx context.Context, ref store.CardRef, d card.Discipline) error {
	discipline, err := a.store.ResolveOrCreate(ctx, store.KindDiscipline, d.Name)
	if err != nil {
		return err
	}
	pair, err := a.store.ResolveOrCreateDisciplinePair(ctx, discipline, d.Level)
	if err != nil {
		return err
	}
	return a.store.Link(ctx, ref, pair)
}

// linkPrintings links every expansion and rarity pair, then creates the
// unspecified printing and one physical card per distinct expansion.
func (a *Assembler) linkPrintings(ctx context.Context, ref store.CardRef, printings []card.Printing) error {
	expansions := make(map[string]store.EntityRef)
	var order []string

	for _, p := range printings {
		expansion, err := a.store.ResolveOrCreate(ctx, store.KindExpansion, p.Expansion)
		if err != nil {
			return err
		}
		rarity, err := a.store.ResolveOrCreate(ctx, store.KindRarity, p.Rarity)
		if err != nil {
			return err
		}
		pair, err := a.store.ResolveOrCreateRarityPair(ctx, expansion, rarity)
		if err != nil {
			return err
		}
		if err := a.store.Link(ctx, ref, pair); err != nil {
			return err
		}
		if _, seen := expansions[p.Expansion]; !seen {
			expansions[p.Expansion] = expansion
			order = append(order, p.Expansion)
		}
	}

	if err := a.store.CreatePhysicalCard(ctx, ref, nil); err != nil {
		return fmt.Errorf("unspecified printing of %q: %w", ref.Name, err)
	}
	for _, name := range order {
		expansion := expansions[name]
		if err := a.store.CreatePhysicalCard(ctx, ref, &expansion); err != nil {
			return err
		}
	}
	return nil
}
