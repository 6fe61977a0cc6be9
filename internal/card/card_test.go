package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordSet(t *testing.T) {
	var r Record
	assert.True(t, r.Set("Cost", "2 pool"))
	assert.True(t, r.Set("cardtype", "Master"))
	assert.True(t, r.Set("AKA", "One"))
	assert.True(t, r.Set("aka", "Two"))
	assert.False(t, r.Set("Flavor", "text"))

	assert.Equal(t, "2 pool", r.Cost)
	assert.Equal(t, "Master", r.CardType)
	assert.Equal(t, []string{"One", "Two"}, r.AKA)
}

func TestRecordAppendText(t *testing.T) {
	var r Record
	assert.False(t, r.TextStarted())

	r.AppendText("  Camarilla Prince of Paris:  ")
	r.AppendText("+1 bleed.")
	assert.True(t, r.TextStarted())
	assert.Equal(t, "Camarilla Prince of Paris: +1 bleed.", r.Text)
}

func TestCardKeywordsAreUnique(t *testing.T) {
	var c Card
	c.AddKeyword("1 bleed")
	c.AddKeyword("1 bleed")
	c.AddKeyword(" ")
	assert.Equal(t, []string{"1 bleed"}, c.Keywords)
}

func TestCardExpansions(t *testing.T) {
	c := Card{Printings: []Printing{
		{Expansion: "Jyhad", Rarity: "Common"},
		{Expansion: "Jyhad", Rarity: "Rare"},
		{Expansion: "Vampire: The Eternal Struggle", Rarity: "Common"},
	}}
	assert.Equal(t, []string{"Jyhad", "Vampire: The Eternal Struggle"}, c.Expansions())
}

func TestCanonicalName(t *testing.T) {
	assert.Equal(t, "theo bell (advanced)", CanonicalName("  Theo   Bell (Advanced) "))
}
