// Package catalog provides the ordered, read-only collection of
// challenge definitions and selector-based lookup. Definitions
// come from builtin banks and optional bank files; after
// construction the catalog never changes.
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"digital.vasic.exercises/pkg/challenge"
)

// NotFoundError reports a selector that resolved to no challenge.
type NotFoundError struct {
	Selector string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("challenge not found: %s", e.Selector)
}

// Catalog is an ordered collection of challenge definitions.
// Listing order is registration order, and 1-based index
// selectors resolve against that same order.
type Catalog struct {
	ordered []challenge.Definition
	byID    map[challenge.ID]int
}

// New builds a catalog from the given definitions. Every
// definition is validated and ids must be unique.
func New(defs ...challenge.Definition) (*Catalog, error) {
	c := &Catalog{
		byID: make(map[challenge.ID]int, len(defs)),
	}
	for i := range defs {
		if err := c.add(defs[i]); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// add appends one validated definition.
func (c *Catalog) add(def challenge.Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	if _, exists := c.byID[def.ID]; exists {
		return fmt.Errorf(
			"duplicate challenge id: %s", def.ID,
		)
	}
	c.byID[def.ID] = len(c.ordered)
	c.ordered = append(c.ordered, def)
	return nil
}

// List returns summaries of every challenge in catalog order.
func (c *Catalog) List() []challenge.Summary {
	out := make([]challenge.Summary, 0, len(c.ordered))
	for i := range c.ordered {
		out = append(out, c.ordered[i].Summary())
	}
	return out
}

// Get resolves a selector to a definition. A selector is either a
// 1-based catalog index or a challenge id. Failure to resolve is
// a *NotFoundError.
func (c *Catalog) Get(
	selector string,
) (*challenge.Definition, error) {
	sel := strings.TrimSpace(selector)
	if sel == "" {
		return nil, &NotFoundError{Selector: selector}
	}

	if n, err := strconv.Atoi(sel); err == nil {
		if n < 1 || n > len(c.ordered) {
			return nil, &NotFoundError{Selector: sel}
		}
		return &c.ordered[n-1], nil
	}

	i, ok := c.byID[challenge.ID(sel)]
	if !ok {
		return nil, &NotFoundError{Selector: sel}
	}
	return &c.ordered[i], nil
}

// ByDifficulty returns summaries of challenges matching the given
// grade, preserving catalog order.
func (c *Catalog) ByDifficulty(
	level challenge.Difficulty,
) []challenge.Summary {
	var out []challenge.Summary
	for i := range c.ordered {
		if c.ordered[i].Difficulty == level {
			out = append(out, c.ordered[i].Summary())
		}
	}
	return out
}

// Len returns the number of challenges in the catalog.
func (c *Catalog) Len() int { return len(c.ordered) }
