// Package store persists assembled cards.
package store

import (
	"context"
	"errors"

	"github.com/arcanaland/librarian/internal/card"
)

// ErrNotFound is returned when a card or alias does not exist.
var ErrNotFound = errors.New("not found")

// Kind names a family of canonical entities
type Kind string

const (
	KindDiscipline     Kind = "discipline"
	KindVirtue         Kind = "virtue"
	KindClan           Kind = "clan"
	KindCreed          Kind = "creed"
	KindSect           Kind = "sect"
	KindTitle          Kind = "title"
	KindCardType       Kind = "cardtype"
	KindKeyword        Kind = "keyword"
	KindArtist         Kind = "artist"
	KindExpansion      Kind = "expansion"
	KindRarity         Kind = "rarity"
	KindDisciplinePair Kind = "discipline_pair"
	KindRarityPair     Kind = "rarity_pair"
)

// EntityKinds lists the kinds stored in the entities table.
func EntityKinds() []Kind {
	return []Kind{
		KindDiscipline, KindVirtue, KindClan, KindCreed, KindSect, KindTitle,
		KindCardType, KindKeyword, KindArtist, KindExpansion, KindRarity,
	}
}

// EntityRef identifies a canonical entity or pair
type EntityRef struct {
	Kind Kind
	ID   int64
	Name string
}

// CardRef identifies an abstract card
type CardRef struct {
	ID   int64
	Name string
}

// Attributes are the scalar columns of an abstract card
type Attributes struct {
	Cost       *int
	CostType   string
	Group      *int
	Capacity   *int
	Life       *int
	Level      string
	BurnOption bool
}

// Store creates and links the persistent entities of a card. All operations
// are idempotent.
type Store interface {
	ResolveOrCreateCard(ctx context.Context, name, canonical string) (CardRef, error)
	SetAttributes(ctx context.Context, c CardRef, attrs Attributes) error
	ResolveOrCreate(ctx context.Context, kind Kind, name string) (EntityRef, error)
	ResolveOrCreateDisciplinePair(ctx context.Context, discipline EntityRef, level card.Level) (EntityRef, error)
	ResolveOrCreateRarityPair(ctx context.Context, expansion, rarity EntityRef) (EntityRef, error)
	Link(ctx context.Context, c CardRef, ref EntityRef) error
	RegisterAlias(ctx context.Context, alias, canonical string) error
	CreatePhysicalCard(ctx context.Context, c CardRef, printing *EntityRef) error
	SetText(ctx context.Context, c CardRef, raw, search string) error
}
