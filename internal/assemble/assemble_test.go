package assemble

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/librarian/internal/card"
	"github.com/arcanaland/librarian/internal/store"
)

// recordingStore is an in-memory store.Store that keeps every call.
type recordingStore struct {
	nextID   int64
	cards    map[string]store.CardRef
	entities map[string]store.EntityRef
	links    map[string]bool
	aliases  map[string]string
	physical []string
	texts    map[int64][2]string
	attrs    map[int64]store.Attributes
	failOn   store.Kind
}

func newRecordingStore() *recordingStore {
	return &recordingStore{
		cards:    make(map[string]store.CardRef),
		entities: make(map[string]store.EntityRef),
		links:    make(map[string]bool),
		aliases:  make(map[string]string),
		texts:    make(map[int64][2]string),
		attrs:    make(map[int64]store.Attributes),
	}
}

func (s *recordingStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *recordingStore) ResolveOrCreateCard(_ context.Context, name, canonical string) (store.CardRef, error) {
	if ref, ok := s.cards[canonical]; ok {
		return ref, nil
	}
	ref := store.CardRef{ID: s.id(), Name: name}
	s.cards[canonical] = ref
	return ref, nil
}

func (s *recordingStore) SetAttributes(_ context.Context, c store.CardRef, attrs store.Attributes) error {
	s.attrs[c.ID] = attrs
	return nil
}

func (s *recordingStore) entity(kind store.Kind, name string) (store.EntityRef, error) {
	if kind == s.failOn {
		return store.EntityRef{}, errors.New("boom")
	}
	key := string(kind) + "/" + name
	if ref, ok := s.entities[key]; ok {
		return ref, nil
	}
	ref := store.EntityRef{Kind: kind, ID: s.id(), Name: name}
	s.entities[key] = ref
	return ref, nil
}

func (s *recordingStore) ResolveOrCreate(_ context.Context, kind store.Kind, name string) (store.EntityRef, error) {
	return s.entity(kind, name)
}

func (s *recordingStore) ResolveOrCreateDisciplinePair(_ context.Context, d store.EntityRef, level card.Level) (store.EntityRef, error) {
	return s.entity(store.KindDisciplinePair, d.Name+":"+string(level))
}

func (s *recordingStore) ResolveOrCreateRarityPair(_ context.Context, e, r store.EntityRef) (store.EntityRef, error) {
	return s.entity(store.KindRarityPair, e.Name+":"+r.Name)
}

func (s *recordingStore) Link(_ context.Context, c store.CardRef, ref store.EntityRef) error {
	s.links[fmt.Sprintf("%s|%s|%s", c.Name, ref.Kind, ref.Name)] = true
	return nil
}

func (s *recordingStore) RegisterAlias(_ context.Context, alias, canonical string) error {
	s.aliases[alias] = canonical
	return nil
}

func (s *recordingStore) CreatePhysicalCard(_ context.Context, c store.CardRef, printing *store.EntityRef) error {
	expansion := "<unspecified>"
	if printing != nil {
		expansion = printing.Name
	}
	s.physical = append(s.physical, c.Name+"|"+expansion)
	return nil
}

func (s *recordingStore) SetText(_ context.Context, c store.CardRef, raw, search string) error {
	s.texts[c.ID] = [2]string{raw, search}
	return nil
}

func intPtr(v int) *int { return &v }

func testCard() *card.Card {
	return &card.Card{
		Name:          "Aabbt Kindred",
		CanonicalName: "aabbt kindred",
		Text:          "Independent: {Aabbt} Kindred.",
		SearchText:    "independent: aabbt kindred.",
		Capacity:      intPtr(4),
		Group:         intPtr(4),
		Disciplines: []card.Discipline{
			{Name: "Fortitude", Level: card.Inferior},
			{Name: "Serpentis", Level: card.Superior},
		},
		Clans:    []string{"Follower of Set"},
		Types:    []string{"Vampire"},
		Sects:    []string{"Independent"},
		Keywords: []string{"1 bleed", "1 strength"},
		Artists:  []string{"Lawrence Snelly"},
		Aliases:  []string{"Aabbt"},
		Printings: []card.Printing{
			{Expansion: "Final Nights", Rarity: "Precon"},
			{Expansion: "Final Nights", Rarity: "Uncommon"},
			{Expansion: "Anthology", Rarity: "Anthology"},
		},
	}
}

func TestAssembleLinksEverything(t *testing.T) {
	s := newRecordingStore()
	require.NoError(t, New(s).Assemble(context.Background(), testCard()))

	require.Len(t, s.cards, 1)
	ref := s.cards["aabbt kindred"]
	assert.Equal(t, "Aabbt Kindred", ref.Name)
	assert.Equal(t, 4, *s.attrs[ref.ID].Capacity)

	for _, link := range []string{
		"Aabbt Kindred|keyword|1 bleed",
		"Aabbt Kindred|keyword|1 strength",
		"Aabbt Kindred|clan|Follower of Set",
		"Aabbt Kindred|cardtype|Vampire",
		"Aabbt Kindred|sect|Independent",
		"Aabbt Kindred|artist|Lawrence Snelly",
		"Aabbt Kindred|discipline_pair|Fortitude:inferior",
		"Aabbt Kindred|discipline_pair|Serpentis:superior",
		"Aabbt Kindred|rarity_pair|Final Nights:Precon",
		"Aabbt Kindred|rarity_pair|Final Nights:Uncommon",
		"Aabbt Kindred|rarity_pair|Anthology:Anthology",
	} {
		assert.True(t, s.links[link], link)
	}
	assert.Len(t, s.links, 11)

	assert.Equal(t, map[string]string{"Aabbt": "aabbt kindred"}, s.aliases)
	assert.Equal(t, []string{
		"Aabbt Kindred|<unspecified>",
		"Aabbt Kindred|Final Nights",
		"Aabbt Kindred|Anthology",
	}, s.physical)
	assert.Equal(t, [2]string{"Independent: {Aabbt} Kindred.", "independent: aabbt kindred."}, s.texts[ref.ID])
}

func TestAssembleWithoutPrintings(t *testing.T) {
	s := newRecordingStore()
	require.NoError(t, New(s).Assemble(context.Background(), &card.Card{Name: "Lonely", CanonicalName: "lonely"}))
	assert.Equal(t, []string{"Lonely|<unspecified>"}, s.physical)
}

func TestAssemblePropagatesStoreErrors(t *testing.T) {
	s := newRecordingStore()
	s.failOn = store.KindClan
	err := New(s).Assemble(context.Background(), testCard())
	assert.EqualError(t, err, "boom")
}

func TestAssembleIdempotentInSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := store.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	for i := 0; i < 2; i++ {
		err := db.WithTx(ctx, func(s store.Store) error {
			return New(s).Assemble(ctx, testCard())
		})
		require.NoError(t, err)
	}

	counts, err := db.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Cards)
	assert.Equal(t, 1, counts.Aliases)
	assert.Equal(t, 3, counts.PhysicalCards)
	assert.Equal(t, 2, counts.Entities[store.KindKeyword])
	assert.Equal(t, 2, counts.Entities[store.KindExpansion])

	view, err := db.Card(ctx, "aabbt")
	require.NoError(t, err)
	assert.Equal(t, "Aabbt Kindred", view.Name)
	assert.Equal(t, []string{"1 bleed", "1 strength"}, view.Linked(store.KindKeyword))
	assert.Len(t, view.Disciplines, 2)
	assert.Len(t, view.Printings, 3)
}
