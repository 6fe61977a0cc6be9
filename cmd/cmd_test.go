package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/librarian/internal/card"
	"github.com/arcanaland/librarian/internal/store"
)

const testCatalog = `Name: Anson
[Jyhad:V, VTES:V]
Cardtype: Vampire
Clan: Toreador
Group: 1
Capacity: 8
Discipline: aus cel dom PRE
Independent: Anson has 1 vote (titled).
Artist: Richard Thomas

Name: Dreams of the Sphinx
[Jyhad:C]
Cardtype: Master
Cost: 2 pool
Master: Unique location.
Artist: Mark Tedin

`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetArgs(nil)
	})
	err := RootCmd.Execute()
	return out.String(), err
}

func TestIngestAndList(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))

	catalogPath := filepath.Join(dir, "cardlist.txt")
	require.NoError(t, os.WriteFile(catalogPath, []byte(testCatalog), 0644))
	dbPath := filepath.Join(dir, "cards.db")

	out, err := execute(t, "ingest", "--quiet", "--db", dbPath, catalogPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Ingest Results:")
	assert.Contains(t, out, "cards committed to "+dbPath)

	out, err = execute(t, "list", "--db", dbPath, "--type", "Vampire")
	require.NoError(t, err)
	assert.Contains(t, out, "Anson")
	assert.NotContains(t, out, "Dreams of the Sphinx")
	assert.Contains(t, strings.ToUpper(out), "1 CARDS")
}

func TestIngestMissingCatalog(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))

	_, err := execute(t, "ingest", "--quiet", filepath.Join(dir, "missing.txt"))
	assert.ErrorContains(t, err, "catalog not found")
}

func TestSuggest(t *testing.T) {
	names := []string{"Anson", "Anarch Convert", "Dreams of the Sphinx", "Kemintiri (Advanced)"}

	assert.Equal(t, []string{"Anson"}, suggest("Ansom", names, 5))
	assert.Equal(t, []string{"Dreams of the Sphinx"}, suggest("dreams of the sphynx", names, 5))
	assert.Empty(t, suggest("Zzyzx", names, 5))
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six seven", 14)
	assert.Equal(t, []string{"one two three", "four five six", "seven"}, lines)
	assert.Equal(t, []string{""}, wrapText("   ", 20))
}

func TestFormatting(t *testing.T) {
	x := -1
	two := 2
	assert.Equal(t, "X pool", formatCost(&store.CardView{Cost: &x, CostType: "pool"}))
	assert.Equal(t, "2 blood", formatCost(&store.CardView{Cost: &two, CostType: "blood"}))
	assert.Equal(t, "", formatCost(&store.CardView{}))
	assert.Equal(t, "any", formatInt(&x))
	assert.Equal(t, "", formatInt(nil))

	assert.Equal(t, "aus PRE", formatDisciplines([]card.Discipline{
		{Name: "aus", Level: card.Inferior},
		{Name: "pre", Level: card.Superior},
	}))
	assert.Equal(t, "Jyhad:C, Anarchs", formatPrintings([]card.Printing{
		{Expansion: "Jyhad", Rarity: "C"},
		{Expansion: "Anarchs"},
	}))
}
