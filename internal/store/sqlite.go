package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"github.com/arcanaland/librarian/internal/card"
	"github.com/arcanaland/librarian/internal/log"
)

//go:embed schema.sql
var Schema string

// DB is the SQLite card database
type DB struct {
	db   *sql.DB
	path string
	sq   squirrel.StatementBuilderType
}

// Open opens (creating if needed) the database at path and applies the schema.
// Use ":memory:" for a private in-memory database.
func Open(ctx context.Context, path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	log.Debug("database opened", "path", path)
	return &DB{db: db, path: path, sq: squirrel.StatementBuilder}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	if err := d.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// Path returns the path the database was opened with.
func (d *DB) Path() string {
	return d.path
}

// WithTx runs fn inside one transaction. The transaction is rolled back when
// fn returns an error and committed otherwise.
func (d *DB) WithTx(ctx context.Context, fn func(Store) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(newTxStore(tx, d.sq)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type cacheKey struct {
	kind Kind
	name string
}

// txStore implements Store on one transaction. Resolved entities are cached
// for the life of the transaction; the cache only grows.
type txStore struct {
	tx    *sql.Tx
	sq    squirrel.StatementBuilderType
	cache map[cacheKey]int64
	cards map[string]int64
}

func newTxStore(tx *sql.Tx, sq squirrel.StatementBuilderType) *txStore {
	return &txStore{
		tx:    tx,
		sq:    sq,
		cache: make(map[cacheKey]int64),
		cards: make(map[string]int64),
	}
}

func (s *txStore) exec(ctx context.Context, b squirrel.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	if _, err := s.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to execute %q: %w", query, err)
	}
	return nil
}

func (s *txStore) queryID(ctx context.Context, b squirrel.SelectBuilder) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}
	var id int64
	if err := s.tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to query %q: %w", query, err)
	}
	return id, nil
}

// insertAndSelect runs an INSERT OR IGNORE and reads back the row id.
func (s *txStore) insertAndSelect(ctx context.Context, ins squirrel.InsertBuilder, sel squirrel.SelectBuilder) (int64, error) {
	if err := s.exec(ctx, ins.Options("OR IGNORE")); err != nil {
		return 0, err
	}
	return s.queryID(ctx, sel)
}

func (s *txStore) ResolveOrCreateCard(ctx context.Context, name, canonical string) (CardRef, error) {
	if id, ok := s.cards[canonical]; ok {
		return CardRef{ID: id, Name: name}, nil
	}

	id, err := s.insertAndSelect(ctx,
		s.sq.Insert("abstract_cards").Columns("name", "canonical_name").Values(name, canonical),
		s.sq.Select("id").From("abstract_cards").Where(squirrel.Eq{"canonical_name": canonical}),
	)
	if err != nil {
		return CardRef{}, fmt.Errorf("resolve card %q: %w", name, err)
	}
	s.cards[canonical] = id
	return CardRef{ID: id, Name: name}, nil
}

func (s *txStore) SetAttributes(ctx context.Context, c CardRef, attrs Attributes) error {
	burn := 0
	if attrs.BurnOption {
		burn = 1
	}
	err := s.exec(ctx, s.sq.Update("abstract_cards").
		SetMap(map[string]interface{}{
			"name":        c.Name,
			"cost":        nullable(attrs.Cost),
			"cost_type":   attrs.CostType,
			"grp":         nullable(attrs.Group),
			"capacity":    nullable(attrs.Capacity),
			"life":        nullable(attrs.Life),
			"level":       attrs.Level,
			"burn_option": burn,
		}).
		Where(squirrel.Eq{"id": c.ID}))
	if err != nil {
		return fmt.Errorf("set attributes of %q: %w", c.Name, err)
	}
	return nil
}

func (s *txStore) ResolveOrCreate(ctx context.Context, kind Kind, name string) (EntityRef, error) {
	key := cacheKey{kind: kind, name: name}
	if id, ok := s.cache[key]; ok {
		return EntityRef{Kind: kind, ID: id, Name: name}, nil
	}

	id, err := s.insertAndSelect(ctx,
		s.sq.Insert("entities").Columns("kind", "name").Values(string(kind), name),
		s.sq.Select("id").From("entities").Where(squirrel.Eq{"kind": string(kind), "name": name}),
	)
	if err != nil {
		return EntityRef{}, fmt.Errorf("resolve %s %q: %w", kind, name, err)
	}
	s.cache[key] = id
	return EntityRef{Kind: kind, ID: id, Name: name}, nil
}

func (s *txStore) ResolveOrCreateDisciplinePair(ctx context.Context, discipline EntityRef, level card.Level) (EntityRef, error) {
	name := fmt.Sprintf("%s:%s", discipline.Name, level)
	key := cacheKey{kind: KindDisciplinePair, name: name}
	if id, ok := s.cache[key]; ok {
		return EntityRef{Kind: KindDisciplinePair, ID: id, Name: name}, nil
	}

	id, err := s.insertAndSelect(ctx,
		s.sq.Insert("discipline_pairs").Columns("discipline_id", "level").Values(discipline.ID, string(level)),
		s.sq.Select("id").From("discipline_pairs").Where(squirrel.Eq{"discipline_id": discipline.ID, "level": string(level)}),
	)
	if err != nil {
		return EntityRef{}, fmt.Errorf("resolve discipline pair %q: %w", name, err)
	}
	s.cache[key] = id
	return EntityRef{Kind: KindDisciplinePair, ID: id, Name: name}, nil
}

func (s *txStore) ResolveOrCreateRarityPair(ctx context.Context, expansion, rarity EntityRef) (EntityRef, error) {
	name := fmt.Sprintf("%s:%s", expansion.Name, rarity.Name)
	key := cacheKey{kind: KindRarityPair, name: name}
	if id, ok := s.cache[key]; ok {
		return EntityRef{Kind: KindRarityPair, ID: id, Name: name}, nil
	}

	id, err := s.insertAndSelect(ctx,
		s.sq.Insert("rarity_pairs").Columns("expansion_id", "rarity_id").Values(expansion.ID, rarity.ID),
		s.sq.Select("id").From("rarity_pairs").Where(squirrel.Eq{"expansion_id": expansion.ID, "rarity_id": rarity.ID}),
	)
	if err != nil {
		return EntityRef{}, fmt.Errorf("resolve rarity pair %q: %w", name, err)
	}
	s.cache[key] = id
	return EntityRef{Kind: KindRarityPair, ID: id, Name: name}, nil
}

func (s *txStore) Link(ctx context.Context, c CardRef, ref EntityRef) error {
	err := s.exec(ctx, s.sq.Insert("card_links").
		Options("OR IGNORE").
		Columns("card_id", "kind", "ref_id").
		Values(c.ID, string(ref.Kind), ref.ID))
	if err != nil {
		return fmt.Errorf("link %s %q to %q: %w", ref.Kind, ref.Name, c.Name, err)
	}
	return nil
}

func (s *txStore) RegisterAlias(ctx context.Context, alias, canonical string) error {
	err := s.exec(ctx, s.sq.Insert("aliases").
		Options("OR IGNORE").
		Columns("alias", "display", "canonical_name").
		Values(card.CanonicalName(alias), alias, canonical))
	if err != nil {
		return fmt.Errorf("register alias %q: %w", alias, err)
	}
	return nil
}

func (s *txStore) CreatePhysicalCard(ctx context.Context, c CardRef, printing *EntityRef) error {
	var expansionID int64
	if printing != nil {
		expansionID = printing.ID
	}
	err := s.exec(ctx, s.sq.Insert("physical_cards").
		Options("OR IGNORE").
		Columns("card_id", "expansion_id").
		Values(c.ID, expansionID))
	if err != nil {
		return fmt.Errorf("create physical card for %q: %w", c.Name, err)
	}
	return nil
}

func (s *txStore) SetText(ctx context.Context, c CardRef, raw, search string) error {
	err := s.exec(ctx, s.sq.Update("abstract_cards").
		Set("text", raw).
		Set("search_text", search).
		Where(squirrel.Eq{"id": c.ID}))
	if err != nil {
		return fmt.Errorf("set text of %q: %w", c.Name, err)
	}
	return nil
}

func nullable(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
