package parser

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/librarian/internal/card"
	"github.com/arcanaland/librarian/internal/lookup"
	"github.com/arcanaland/librarian/internal/normalize"
)

func parseAll(t *testing.T, input string) ([]*card.Record, []string, error) {
	t.Helper()
	var records []*card.Record
	var warnings []string
	p := New(func(rec *card.Record) error {
		records = append(records, rec)
		return nil
	})
	p.SetWarnFunc(func(line int, msg string) {
		warnings = append(warnings, msg)
	})
	err := p.Parse(strings.NewReader(input))
	return records, warnings, err
}

const vampireBlock = `Name: Aabbt Kindred
[FN:PG2]
Cardtype: Vampire
Clan: Follower of Set
Group: 4
Capacity: 4
Discipline: for pre ser
Independent: Aabbt Kindred cannot perform directed actions unless
Archon Investigation is in play.
Artist: Lawrence Snelly

`

func TestParseSingleCard(t *testing.T) {
	records, warnings, err := parseAll(t, vampireBlock)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Aabbt Kindred", rec.Name)
	assert.Equal(t, "[FN:PG2]", rec.Expansion)
	assert.Equal(t, "Vampire", rec.CardType)
	assert.Equal(t, "Follower of Set", rec.Clan)
	assert.Equal(t, "4", rec.Group)
	assert.Equal(t, "4", rec.Capacity)
	assert.Equal(t, "for pre ser", rec.Discipline)
	assert.Equal(t, "Independent: Aabbt Kindred cannot perform directed actions unless Archon Investigation is in play.", rec.Text)
	assert.Equal(t, "Lawrence Snelly", rec.Artist)
}

func TestParseMultipleCards(t *testing.T) {
	input := `Name: Dreams of the Sphinx
[Jyhad:C, VTES:C2]
Cardtype: Master
Cost: 2 pool
Master: Unique location.
Artist: Mark Tedin

Name: Kine Resources Contested
[Jyhad:U]
Cardtype: Political Action
Requires a justicar or Inner Circle member.

`
	records, _, err := parseAll(t, input)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Dreams of the Sphinx", records[0].Name)
	assert.Equal(t, "[Jyhad:C, VTES:C2]", records[0].Expansion)
	assert.Equal(t, "2 pool", records[0].Cost)
	assert.Equal(t, "Master: Unique location.", records[0].Text)

	assert.Equal(t, "Kine Resources Contested", records[1].Name)
	assert.Equal(t, "Political Action", records[1].CardType)
}

func TestParseStripsByteOrderMark(t *testing.T) {
	records, _, err := parseAll(t, "\ufeff"+vampireBlock)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Aabbt Kindred", records[0].Name)
}

func TestParseHandlesCRLF(t *testing.T) {
	records, _, err := parseAll(t, strings.ReplaceAll(vampireBlock, "\n", "\r\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "[FN:PG2]", records[0].Expansion)
}

func TestParseInterleavedAliasAndExpansion(t *testing.T) {
	input := `Name: Ambrogino Giovanni
AKA: Ambrogino; Ambrogino G.
[LoB:U]
AKA: {The} Alchemist
Cardtype: Vampire
`
	records, _, err := parseAll(t, input)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"Ambrogino", "Ambrogino G.", "The Alchemist"}, records[0].AKA)
	assert.Equal(t, "[LoB:U]", records[0].Expansion)
	assert.Equal(t, "Vampire", records[0].CardType)
}

func TestParseMalformedExpansion(t *testing.T) {
	input := `Name: Broken Card
Cardtype: Master
`
	records, _, err := parseAll(t, input)
	require.Error(t, err)
	assert.Empty(t, records)

	var ferr *FormatError
	require.True(t, errors.As(err, &ferr))
	assert.ErrorIs(t, err, ErrMalformedExpansion)
	assert.Equal(t, 2, ferr.Line)
	assert.Equal(t, "Cardtype: Master", ferr.Text)
}

func TestParseTruncatedText(t *testing.T) {
	input := `Name: Dreams of the Sphinx
[Jyhad:C]
Cardtype: Master
Master: Unique location.`
	records, _, err := parseAll(t, input)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTruncated)
	assert.Empty(t, records)
}

func TestParseTruncatedAfterName(t *testing.T) {
	_, _, err := parseAll(t, "Name: Lonely Name")
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestParseEndsInCard(t *testing.T) {
	input := `Name: Dreams of the Sphinx
[Jyhad:C]
Cardtype: Master`
	records, _, err := parseAll(t, input)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Master", records[0].CardType)
}

func TestParseBurnOption(t *testing.T) {
	input := `Name: Arcane Library
[AH:C2]
Cardtype: Master
Burn Option:
Master: archaic.

`
	records, _, err := parseAll(t, input)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].BurnOption)
	assert.Equal(t, "Master: archaic.", records[0].Text)
}

func TestParseTextStartLabels(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"sect label", "Camarilla: Prince of Paris."},
		{"advanced label", "Advanced, Sabbat: Archbishop of Montreal."},
		{"label with space", "Black Hand: Once each turn."},
		{"clarified label", "{Trifle}: Do not replace."},
		{"no colon", "+1 stealth action."},
		{"weapon label", "Weapon: gun."},
		{"vehicle label", "Vehicle: +1 stealth."},
		{"haven label", "Haven: Unique location."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "Name: Test Card\n[Jyhad:C]\nCardtype: Vampire\n" + tt.line + "\n\n"
			records, warnings, err := parseAll(t, input)
			require.NoError(t, err)
			assert.Empty(t, warnings)
			require.Len(t, records, 1)
			assert.Equal(t, tt.line, records[0].Text)
		})
	}
}

func TestParseEquipmentText(t *testing.T) {
	input := `Name: .44 Magnum
[Jyhad:C]
Cardtype: Equipment
Cost: 2 pool
Weapon: gun.
Strike: 2R damage, with 1 optional maneuver each combat.
Artist: Mark Tedin

`
	records, warnings, err := parseAll(t, input)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Weapon: gun. Strike: 2R damage, with 1 optional maneuver each combat.", rec.Text)
	assert.Equal(t, "2 pool", rec.Cost)
	assert.Equal(t, "Mark Tedin", rec.Artist)

	c, err := normalize.New(lookup.Default()).Normalize(rec)
	require.NoError(t, err)
	assert.Contains(t, c.Keywords, "gun")
}

func TestParseNameWithoutBlankLine(t *testing.T) {
	input := `Name: First Card
[Jyhad:C]
Cardtype: Master
Cost: 1 pool
Name: Second Card
[Jyhad:U]
Cardtype: Master

`
	records, warnings, err := parseAll(t, input)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, records, 2)

	assert.Equal(t, "First Card", records[0].Name)
	assert.Equal(t, "[Jyhad:C]", records[0].Expansion)
	assert.Equal(t, "1 pool", records[0].Cost)
	assert.Equal(t, "Second Card", records[1].Name)
	assert.Equal(t, "[Jyhad:U]", records[1].Expansion)
	assert.Empty(t, records[1].Cost)
}

func TestParseUnknownTagWarns(t *testing.T) {
	input := `Name: Odd Card
[Jyhad:C]
Flavor: spooky
Cardtype: Master
`
	records, warnings, err := parseAll(t, input)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Flavor")
	assert.Equal(t, "Master", records[0].CardType)
}

func TestParseStripsClarificationMarkers(t *testing.T) {
	input := `Name: {The} Ankou
[KMW:R]
Cardtype: Vampire
Clan: {Nosferatu}
`
	records, _, err := parseAll(t, input)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "The Ankou", records[0].Name)
	assert.Equal(t, "Nosferatu", records[0].Clan)
}

func TestParseIgnoresPreamble(t *testing.T) {
	input := "Vampire: The Eternal Struggle card list\n\n" + vampireBlock
	records, _, err := parseAll(t, input)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Aabbt Kindred", records[0].Name)
}

func TestParseTagAfterBlankLine(t *testing.T) {
	input := `Name: Spaced Card
[Jyhad:C]

Cardtype: Master
Master: trifle.

`
	records, _, err := parseAll(t, input)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Master", records[0].CardType)
}

func TestParseSinkErrorAborts(t *testing.T) {
	sinkErr := errors.New("store down")
	p := New(func(rec *card.Record) error { return sinkErr })
	err := p.Parse(strings.NewReader(vampireBlock + vampireBlock))
	assert.ErrorIs(t, err, sinkErr)
	assert.Equal(t, 1, p.Cards())
}

func TestParseRecordsAreNotReused(t *testing.T) {
	records, _, err := parseAll(t, vampireBlock+vampireBlock)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.NotSame(t, records[0], records[1])
}

func TestLineSourceTerminator(t *testing.T) {
	src := NewLineSource(strings.NewReader("a\nb"))

	line, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, Line{Text: "a", Number: 1}, line)

	line, err = src.Next()
	require.NoError(t, err)
	assert.Equal(t, Line{Text: "b", Number: 2}, line)

	line, err = src.Next()
	require.NoError(t, err)
	assert.True(t, line.EOF)
	assert.Equal(t, 3, line.Number)

	_, err = src.Next()
	assert.Equal(t, io.EOF, err)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "waiting", StateWaiting.String())
	assert.Equal(t, "in-card-text", StateInCardText.String())
	assert.Equal(t, "state(9)", State(9).String())
}
