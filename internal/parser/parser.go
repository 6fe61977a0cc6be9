// Package parser turns a legacy plain-text card catalog into raw card records.
// It is a line-driven state machine: one line, one transition. Complete
// records are handed to a Sink as soon as the next card starts or the input
// ends.
package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/arcanaland/librarian/internal/card"
	"github.com/arcanaland/librarian/internal/log"
)

// State is the current parsing context
type State int

const (
	StateWaiting State = iota
	StateInCard
	StateInExpansion
	StateInCardText
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateInCard:
		return "in-card"
	case StateInExpansion:
		return "in-expansion"
	case StateInCardText:
		return "in-card-text"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// flushable reports whether input may legally end in this state.
func (s State) flushable() bool {
	return s == StateWaiting || s == StateInCard
}

const (
	nameMarker       = "name"
	akaMarker        = "aka"
	artistMarker     = "artist"
	burnOptionMarker = "Burn Option:"
)

// textLabels are "Label:" prefixes that open the free text instead of a field.
var textLabels = map[string]bool{
	"advanced":    true,
	"anarch":      true,
	"camarilla":   true,
	"haven":       true,
	"imbued":      true,
	"independent": true,
	"laibon":      true,
	"location":    true,
	"master":      true,
	"sabbat":      true,
	"strike":      true,
	"trifle":      true,
	"unique":      true,
	"vehicle":     true,
	"weapon":      true,
}

var clarificationMarkers = strings.NewReplacer("{", "", "}", "")

// Sink receives each complete record. Returning an error aborts the parse.
type Sink func(rec *card.Record) error

// WarnFunc receives tolerated format problems.
type WarnFunc func(line int, msg string)

// Parser implements the catalog state machine
type Parser struct {
	state   State
	current *card.Record
	sink    Sink
	warn    WarnFunc
	cards   int
	line    int
}

// New creates a parser that hands every complete record to sink.
func New(sink Sink) *Parser {
	return &Parser{
		state:   StateWaiting,
		current: &card.Record{},
		sink:    sink,
		warn: func(line int, msg string) {
			log.Warn(msg, "line", line)
		},
	}
}

// SetWarnFunc replaces the default warning handler, which logs.
func (p *Parser) SetWarnFunc(fn WarnFunc) {
	if fn != nil {
		p.warn = fn
	}
}

// State returns the current state.
func (p *Parser) State() State {
	return p.state
}

// Cards returns the number of records flushed so far.
func (p *Parser) Cards() int {
	return p.cards
}

// Parse consumes the whole catalog from r.
func (p *Parser) Parse(r io.Reader) error {
	src := NewLineSource(r)
	for {
		line, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read catalog: %w", err)
		}
		if err := p.Feed(line); err != nil {
			return err
		}
	}
	return p.Finish()
}

// Feed drives one transition.
func (p *Parser) Feed(line Line) error {
	p.line = line.Number
	switch p.state {
	case StateWaiting:
		return p.waiting(line)
	case StateInCard:
		return p.inCard(line)
	case StateInExpansion:
		return p.inExpansion(line)
	case StateInCardText:
		return p.inCardText(line)
	default:
		return fmt.Errorf("parser in unknown state %v", p.state)
	}
}

// Finish checks the final state and flushes the last record.
func (p *Parser) Finish() error {
	if !p.state.flushable() {
		return &FormatError{Line: p.line, Err: ErrTruncated}
	}
	p.state = StateWaiting
	return p.flush()
}

func (p *Parser) waiting(line Line) error {
	text := strings.TrimSpace(line.Text)
	if text == "" {
		return nil
	}
	if value, ok := markerValue(text, nameMarker); ok {
		return p.startCard(value)
	}
	if p.current.HasName() && !p.current.TextStarted() {
		return p.inCard(line)
	}
	log.Debug("ignoring line outside a card", "line", line.Number, "text", text)
	return nil
}

func (p *Parser) inExpansion(line Line) error {
	text := strings.TrimSpace(line.Text)
	switch {
	case line.EOF:
		return &FormatError{Line: line.Number, Err: ErrTruncated}
	case isExpansionList(text):
		p.addExpansion(text)
		p.state = StateInCard
		return nil
	}
	if value, ok := markerValue(text, akaMarker); ok {
		p.addAliases(value)
		return nil
	}
	return &FormatError{Line: line.Number, Text: text, Err: ErrMalformedExpansion}
}

func (p *Parser) inCard(line Line) error {
	text := strings.TrimSpace(line.Text)
	if text == "" || line.EOF {
		p.state = StateWaiting
		return nil
	}
	if text == burnOptionMarker {
		p.current.BurnOption = true
		return nil
	}
	if isExpansionList(text) {
		p.addExpansion(text)
		return nil
	}

	tag, value, ok := splitTag(text)
	if !ok || isTextLabel(tag) {
		p.state = StateInCardText
		p.current.AppendText(line.Text)
		return nil
	}

	switch strings.ToLower(tag) {
	case nameMarker:
		return p.startCard(value)
	case akaMarker:
		p.addAliases(value)
		return nil
	}

	if !p.current.Set(tag, clarificationMarkers.Replace(value)) {
		p.warn(line.Number, fmt.Sprintf("unknown tag %q on card %q", tag, p.current.Name))
	}
	p.state = StateInCard
	return nil
}

func (p *Parser) inCardText(line Line) error {
	if line.EOF {
		// Only a real blank line or an Artist line closes the text.
		return nil
	}
	text := strings.TrimSpace(line.Text)
	if _, ok := markerValue(text, artistMarker); ok || text == "" {
		p.state = StateInCard
		return p.inCard(line)
	}
	p.current.AppendText(line.Text)
	return nil
}

func (p *Parser) startCard(name string) error {
	if err := p.flush(); err != nil {
		return err
	}
	p.current.Name = clarificationMarkers.Replace(name)
	p.state = StateInExpansion
	return nil
}

// flush hands the current record to the sink and starts a fresh one.
func (p *Parser) flush() error {
	rec := p.current
	p.current = &card.Record{}
	if !rec.HasName() {
		return nil
	}
	p.cards++
	log.Debug("card flushed", "name", rec.Name, "line", p.line)
	return p.sink(rec)
}

func (p *Parser) addExpansion(text string) {
	if p.current.Expansion == "" {
		p.current.Expansion = text
		return
	}
	// Repeated blocks are merged into one list.
	p.current.Expansion = strings.TrimSuffix(p.current.Expansion, "]") + ", " + strings.TrimPrefix(text, "[")
}

func (p *Parser) addAliases(value string) {
	for _, alias := range strings.Split(value, ";") {
		alias = strings.TrimSpace(clarificationMarkers.Replace(alias))
		if alias != "" {
			p.current.AKA = append(p.current.AKA, alias)
		}
	}
}

func isExpansionList(text string) bool {
	return len(text) >= 2 && strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]")
}

// splitTag splits "Tag: value". Lines without a leading label are not tags.
func splitTag(text string) (string, string, bool) {
	idx := strings.Index(text, ":")
	if idx <= 0 {
		return "", "", false
	}
	return strings.TrimSpace(text[:idx]), strings.TrimSpace(text[idx+1:]), true
}

func isTextLabel(tag string) bool {
	if strings.ContainsAny(tag, " {}[]") {
		return true
	}
	return textLabels[strings.ToLower(tag)]
}

// markerValue returns the value of a "Marker: value" line when text carries marker.
func markerValue(text, marker string) (string, bool) {
	tag, value, ok := splitTag(text)
	if !ok || !strings.EqualFold(tag, marker) {
		return "", false
	}
	return value, true
}
