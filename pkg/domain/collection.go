package domain

import (
	"slices"
	"strings"
)

// FlibberCollection is an ordered, append-only list of flibbers. Foo and Bar
// each own one and forward their Flibber calls to it.
type FlibberCollection struct {
	rng      Rand
	flibbers []Flibber
}

// NewFlibberCollection returns an empty collection drawing from r.
func NewFlibberCollection(r Rand) *FlibberCollection {
	return &FlibberCollection{rng: orDefault(r)}
}

// Append draws a new flibber and adds it to the end of the collection.
func (c *FlibberCollection) Append() {
	c.flibbers = append(c.flibbers, NewFlibber(c.rng))
}

// Len reports the number of flibbers collected so far.
func (c *FlibberCollection) Len() int { return len(c.flibbers) }

// Flibbers returns a copy of the collected flibbers in insertion order.
func (c *FlibberCollection) Flibbers() []Flibber {
	return slices.Clone(c.flibbers)
}

// Render returns the empty string for an empty collection. Otherwise it emits a
// "flibbers:" header at indent followed by one "key: value" line per entry,
// one level deeper.
func (c *FlibberCollection) Render(indent uint8) string {
	if len(c.flibbers) == 0 {
		return ""
	}
	tab := Indent(indent)
	var b strings.Builder
	b.WriteString(tab)
	b.WriteString("flibbers:\n")
	for _, f := range c.flibbers {
		renderField(&b, tab+"\t", f.Key, f.Value)
	}
	return b.String()
}
