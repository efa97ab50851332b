package domain

import (
	"strconv"
	"strings"
)

// Foo carries an unbounded wibble counter and a zorble letter cycling a..z.
type Foo struct {
	wibble   int
	zorble   byte
	flibbers *FlibberCollection
}

// NewFoo returns a Foo with the given wibble, zorble 'a', and no flibbers.
func NewFoo(wibble int, r Rand) *Foo {
	return &Foo{
		wibble:   wibble,
		zorble:   'a',
		flibbers: NewFlibberCollection(r),
	}
}

// Wibble increments the wibble counter.
func (f *Foo) Wibble() { f.wibble++ }

// Unwibble decrements the wibble counter. It may go negative.
func (f *Foo) Unwibble() { f.wibble-- }

// Zorble advances the letter, wrapping from 'z' back to 'a'.
func (f *Foo) Zorble() {
	f.zorble = 'a' + (f.zorble-'a'+1)%('z'-'a'+1)
}

// Flibber appends a random flibber to the owned collection.
func (f *Foo) Flibber() { f.flibbers.Append() }

// WibbleCount returns the current wibble.
func (f *Foo) WibbleCount() int { return f.wibble }

// ZorbleLetter returns the current zorble, always in 'a'..'z'.
func (f *Foo) ZorbleLetter() byte { return f.zorble }

// Flibbers returns a copy of the owned flibbers in insertion order.
func (f *Foo) Flibbers() []Flibber { return f.flibbers.Flibbers() }

// Render emits the wibble and zorble lines followed by the flibbers block.
func (f *Foo) Render(indent uint8) string {
	tab := Indent(indent)
	var b strings.Builder
	renderField(&b, tab, "wibble", strconv.Itoa(f.wibble))
	renderField(&b, tab, "zorble", string(f.zorble))
	b.WriteString(f.flibbers.Render(indent))
	return b.String()
}
