package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/arcanaland/librarian/internal/card"
)

// CardView is an abstract card with every link resolved
type CardView struct {
	ID            int64
	Name          string
	CanonicalName string
	Text          string
	SearchText    string
	Cost          *int
	CostType      string
	Group         *int
	Capacity      *int
	Life          *int
	Level         string
	BurnOption    bool

	Disciplines   []card.Discipline
	Printings     []card.Printing
	Links         map[Kind][]string
	Aliases       []string
	PhysicalCards int
}

// Linked returns the names linked to the card for kind.
func (v *CardView) Linked(kind Kind) []string {
	return v.Links[kind]
}

// CardSummary is one row of a card listing
type CardSummary struct {
	Name     string
	Types    string
	Clans    string
	Cost     *int
	CostType string
	Capacity *int
}

// Filter restricts a listing to cards linked to a named entity. Expansion
// filters match printed expansions.
type Filter struct {
	Kind Kind
	Name string
}

// Counts summarizes the database contents
type Counts struct {
	Cards         int
	Aliases       int
	PhysicalCards int
	Entities      map[Kind]int
}

// Card looks a card up by name or alias, case-insensitively.
func (d *DB) Card(ctx context.Context, name string) (*CardView, error) {
	canonical, err := d.resolveAlias(ctx, card.CanonicalName(name))
	if err != nil {
		return nil, err
	}

	query, args, err := d.sq.
		Select("id", "name", "canonical_name", "text", "search_text", "cost", "cost_type",
			"grp", "capacity", "life", "level", "burn_option").
		From("abstract_cards").
		Where(squirrel.Eq{"canonical_name": canonical}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var (
		v                           CardView
		cost, group, capacity, life sql.NullInt64
		burn                        int
	)
	err = d.db.QueryRowContext(ctx, query, args...).Scan(
		&v.ID, &v.Name, &v.CanonicalName, &v.Text, &v.SearchText, &cost, &v.CostType,
		&group, &capacity, &life, &v.Level, &burn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("card %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load card %q: %w", name, err)
	}
	v.Cost = intFromNull(cost)
	v.Group = intFromNull(group)
	v.Capacity = intFromNull(capacity)
	v.Life = intFromNull(life)
	v.BurnOption = burn != 0

	if err := d.loadLinks(ctx, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (d *DB) resolveAlias(ctx context.Context, canonical string) (string, error) {
	query, args, err := d.sq.Select("canonical_name").From("aliases").
		Where(squirrel.Eq{"alias": canonical}).ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build query: %w", err)
	}
	var target string
	err = d.db.QueryRowContext(ctx, query, args...).Scan(&target)
	if errors.Is(err, sql.ErrNoRows) {
		return canonical, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve alias %q: %w", canonical, err)
	}
	return target, nil
}

func (d *DB) loadLinks(ctx context.Context, v *CardView) error {
	v.Links = make(map[Kind][]string)
	err := d.each(ctx, d.sq.Select("l.kind", "e.name").
		From("card_links l").
		Join("entities e ON e.id = l.ref_id").
		Where(squirrel.Eq{"l.card_id": v.ID}).
		Where(squirrel.NotEq{"l.kind": []string{string(KindDisciplinePair), string(KindRarityPair)}}).
		OrderBy("l.rowid"),
		func(rows *sql.Rows) error {
			var kind, name string
			if err := rows.Scan(&kind, &name); err != nil {
				return err
			}
			v.Links[Kind(kind)] = append(v.Links[Kind(kind)], name)
			return nil
		})
	if err != nil {
		return fmt.Errorf("failed to load links: %w", err)
	}

	err = d.each(ctx, d.sq.Select("e.name", "p.level").
		From("card_links l").
		Join("discipline_pairs p ON p.id = l.ref_id").
		Join("entities e ON e.id = p.discipline_id").
		Where(squirrel.Eq{"l.card_id": v.ID, "l.kind": string(KindDisciplinePair)}).
		OrderBy("l.rowid"),
		func(rows *sql.Rows) error {
			var dis card.Discipline
			var level string
			if err := rows.Scan(&dis.Name, &level); err != nil {
				return err
			}
			dis.Level = card.Level(level)
			v.Disciplines = append(v.Disciplines, dis)
			return nil
		})
	if err != nil {
		return fmt.Errorf("failed to load disciplines: %w", err)
	}

	err = d.each(ctx, d.sq.Select("x.name", "r.name").
		From("card_links l").
		Join("rarity_pairs p ON p.id = l.ref_id").
		Join("entities x ON x.id = p.expansion_id").
		Join("entities r ON r.id = p.rarity_id").
		Where(squirrel.Eq{"l.card_id": v.ID, "l.kind": string(KindRarityPair)}).
		OrderBy("l.rowid"),
		func(rows *sql.Rows) error {
			var p card.Printing
			if err := rows.Scan(&p.Expansion, &p.Rarity); err != nil {
				return err
			}
			v.Printings = append(v.Printings, p)
			return nil
		})
	if err != nil {
		return fmt.Errorf("failed to load printings: %w", err)
	}

	err = d.each(ctx, d.sq.Select("display").From("aliases").
		Where(squirrel.Eq{"canonical_name": v.CanonicalName}).
		OrderBy("display"),
		func(rows *sql.Rows) error {
			var alias string
			if err := rows.Scan(&alias); err != nil {
				return err
			}
			v.Aliases = append(v.Aliases, alias)
			return nil
		})
	if err != nil {
		return fmt.Errorf("failed to load aliases: %w", err)
	}

	query, args, err := d.sq.Select("COUNT(*)").From("physical_cards").
		Where(squirrel.Eq{"card_id": v.ID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(&v.PhysicalCards); err != nil {
		return fmt.Errorf("failed to count physical cards: %w", err)
	}
	return nil
}

// Cards lists the cards matching every filter, ordered by name.
func (d *DB) Cards(ctx context.Context, filters ...Filter) ([]CardSummary, error) {
	b := d.sq.Select(
		"c.name",
		linkedNames(KindCardType),
		linkedNames(KindClan),
		"c.cost", "c.cost_type", "c.capacity").
		From("abstract_cards c").
		OrderBy("c.canonical_name")

	for _, f := range filters {
		if f.Kind == KindExpansion {
			b = b.Where(squirrel.Expr(
				"EXISTS (SELECT 1 FROM physical_cards p JOIN entities e ON e.id = p.expansion_id "+
					"WHERE p.card_id = c.id AND e.name = ? COLLATE NOCASE)", f.Name))
			continue
		}
		b = b.Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM card_links l JOIN entities e ON e.id = l.ref_id "+
				"WHERE l.card_id = c.id AND l.kind = ? AND e.name = ? COLLATE NOCASE)", string(f.Kind), f.Name))
	}

	var out []CardSummary
	err := d.each(ctx, b, func(rows *sql.Rows) error {
		var (
			s              CardSummary
			types, clans   sql.NullString
			cost, capacity sql.NullInt64
		)
		if err := rows.Scan(&s.Name, &types, &clans, &cost, &s.CostType, &capacity); err != nil {
			return err
		}
		s.Types = types.String
		s.Clans = clans.String
		s.Cost = intFromNull(cost)
		s.Capacity = intFromNull(capacity)
		out = append(out, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return out, nil
}

func linkedNames(kind Kind) string {
	return fmt.Sprintf("(SELECT group_concat(e.name, '/') FROM card_links l JOIN entities e ON e.id = l.ref_id "+
		"WHERE l.card_id = c.id AND l.kind = '%s')", kind)
}

// CardNames returns every card name and alias, sorted.
func (d *DB) CardNames(ctx context.Context) ([]string, error) {
	rows, err := d.db.QueryContext(ctx,
		"SELECT name FROM abstract_cards UNION SELECT display FROM aliases ORDER BY 1")
	if err != nil {
		return nil, fmt.Errorf("failed to list card names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan card name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Counts returns row counts per table and entity kind.
func (d *DB) Counts(ctx context.Context) (Counts, error) {
	c := Counts{Entities: make(map[Kind]int)}
	for table, dst := range map[string]*int{
		"abstract_cards": &c.Cards,
		"aliases":        &c.Aliases,
		"physical_cards": &c.PhysicalCards,
	} {
		if err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(dst); err != nil {
			return c, fmt.Errorf("failed to count %s: %w", table, err)
		}
	}

	err := d.each(ctx, d.sq.Select("kind", "COUNT(*)").From("entities").GroupBy("kind"),
		func(rows *sql.Rows) error {
			var kind string
			var n int
			if err := rows.Scan(&kind, &n); err != nil {
				return err
			}
			c.Entities[Kind(kind)] = n
			return nil
		})
	if err != nil {
		return c, fmt.Errorf("failed to count entities: %w", err)
	}
	return c, nil
}

// each runs a query and calls fn for every row.
func (d *DB) each(ctx context.Context, b squirrel.Sqlizer, fn func(*sql.Rows) error) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func intFromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

// JoinLinked formats linked names for display.
func JoinLinked(names []string) string {
	return strings.Join(names, ", ")
}
