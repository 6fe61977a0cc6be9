package validator

import (
	"errors"
	"fmt"
	"os"

	"github.com/arcanaland/librarian/internal/card"
	"github.com/arcanaland/librarian/internal/lookup"
	"github.com/arcanaland/librarian/internal/normalize"
	"github.com/arcanaland/librarian/internal/parser"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
	Cards    int
}

// Valid reports whether no errors were found.
func (r ValidationResults) Valid() bool {
	return len(r.Errors) == 0
}

type Validator struct {
	CatalogPath string
	Tables      *lookup.Tables
	Results     ValidationResults

	names   map[string]string // canonical name -> display name
	aliases map[string]string // canonical alias -> owning card
}

func NewValidator(catalogPath string, tables *lookup.Tables) *Validator {
	if tables == nil {
		tables = lookup.Default()
	}
	return &Validator{
		CatalogPath: catalogPath,
		Tables:      tables,
		Results:     ValidationResults{},
		names:       make(map[string]string),
		aliases:     make(map[string]string),
	}
}

// Validate parses and normalizes the whole catalog without storing anything.
// Format errors end up in Results.Errors; the returned error is reserved for
// problems opening the catalog.
func (v *Validator) Validate() (ValidationResults, error) {
	f, err := os.Open(v.CatalogPath)
	if errors.Is(err, os.ErrNotExist) {
		return v.Results, fmt.Errorf("catalog not found: %s", v.CatalogPath)
	}
	if err != nil {
		return v.Results, fmt.Errorf("error opening catalog: %w", err)
	}
	defer f.Close()

	n := normalize.New(v.Tables)
	n.SetWarnFunc(func(cardName, msg string) {
		v.warn("%s: %s", cardName, msg)
	})

	p := parser.New(func(rec *card.Record) error {
		c, err := n.Normalize(rec)
		if err != nil {
			return err
		}
		v.Results.Cards++
		v.validateCard(c)
		return nil
	})
	p.SetWarnFunc(func(line int, msg string) {
		v.warn("line %d: %s", line, msg)
	})

	if err := p.Parse(f); err != nil {
		var ferr *parser.FormatError
		if !errors.As(err, &ferr) {
			return v.Results, err
		}
		v.Results.Errors = append(v.Results.Errors, ferr.Error())
	}

	v.validateAliases()
	return v.Results, nil
}

func (v *Validator) validateCard(c *card.Card) {
	if previous, ok := v.names[c.CanonicalName]; ok {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("duplicate card name: %s (already defined as %s)", c.Name, previous))
	} else {
		v.names[c.CanonicalName] = c.Name
	}

	if len(c.Types) == 0 {
		v.warn("%s: no card type", c.Name)
	}
	if len(c.Printings) == 0 {
		v.warn("%s: no expansion listed", c.Name)
	}

	for _, t := range c.Types {
		switch t {
		case "Vampire":
			if c.Capacity == nil {
				v.warn("%s: vampire without capacity", c.Name)
			}
			if len(c.Clans) == 0 {
				v.warn("%s: vampire without clan", c.Name)
			}
		case "Imbued":
			if c.Life == nil {
				v.warn("%s: imbued without life", c.Name)
			}
			if len(c.Creeds) == 0 {
				v.warn("%s: imbued without creed", c.Name)
			}
		}
	}

	for _, alias := range c.Aliases {
		key := card.CanonicalName(alias)
		if owner, ok := v.aliases[key]; ok && owner != c.Name {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("alias %q used by both %s and %s", alias, owner, c.Name))
			continue
		}
		v.aliases[key] = c.Name
	}
}

// validateAliases reports aliases that shadow a real card name.
func (v *Validator) validateAliases() {
	for alias, owner := range v.aliases {
		if name, ok := v.names[alias]; ok && name != owner {
			v.warn("alias of %s shadows card %s", owner, name)
		}
	}
}

func (v *Validator) warn(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}
