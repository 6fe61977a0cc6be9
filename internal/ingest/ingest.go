// Package ingest drives a catalog through the parser, the normalizer and the
// assembler.
package ingest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/arcanaland/librarian/internal/assemble"
	"github.com/arcanaland/librarian/internal/card"
	"github.com/arcanaland/librarian/internal/log"
	"github.com/arcanaland/librarian/internal/normalize"
	"github.com/arcanaland/librarian/internal/parser"
	"github.com/arcanaland/librarian/internal/store"
)

// Stats summarizes one ingestion run
type Stats struct {
	RunID    string
	Cards    int
	Aliases  int
	Warnings int
	Duration time.Duration
}

// ProgressFunc is called after each committed card.
type ProgressFunc func(n int, name string)

// Ingester runs one catalog into a store
type Ingester struct {
	normalizer *normalize.Normalizer
	assembler  *assemble.Assembler
	progress   ProgressFunc
}

// New creates an ingester. A nil store runs parse and normalize only.
func New(n *normalize.Normalizer, s store.Store) *Ingester {
	ing := &Ingester{normalizer: n}
	if s != nil {
		ing.assembler = assemble.New(s)
	}
	return ing
}

// OnProgress registers a progress callback.
func (ing *Ingester) OnProgress(fn ProgressFunc) {
	ing.progress = fn
}

// Run reads the whole catalog from r. Any fatal error stops the run and is
// returned with the statistics gathered so far; the caller decides whether to
// roll back.
func (ing *Ingester) Run(ctx context.Context, r io.Reader) (Stats, error) {
	stats := Stats{RunID: uuid.NewString()}
	start := time.Now()
	logger := log.Slog().With("run", stats.RunID)

	normalizer := ing.normalizer.WithWarnFunc(func(cardName, msg string) {
		stats.Warnings++
		logger.Warn(msg, "card", cardName)
	})

	p := parser.New(func(rec *card.Record) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		c, err := normalizer.Normalize(rec)
		if err != nil {
			return fmt.Errorf("normalize %q: %w", rec.Name, err)
		}
		if ing.assembler != nil {
			if err := ing.assembler.Assemble(ctx, c); err != nil {
				return fmt.Errorf("assemble %q: %w", c.Name, err)
			}
		}

		stats.Cards++
		stats.Aliases += len(c.Aliases)
		logger.Info("card committed", "card", c.Name, "n", stats.Cards)
		if ing.progress != nil {
			ing.progress(stats.Cards, c.Name)
		}
		return nil
	})
	p.SetWarnFunc(func(line int, msg string) {
		stats.Warnings++
		logger.Warn(msg, "line", line)
	})

	err := p.Parse(r)
	stats.Duration = time.Since(start)
	if err != nil {
		logger.Error("ingestion failed", "error", err, "cards", stats.Cards)
		return stats, err
	}

	logger.Info("ingestion complete",
		"cards", stats.Cards,
		"aliases", stats.Aliases,
		"warnings", stats.Warnings,
		"duration", stats.Duration)
	return stats, nil
}
