package domain

import (
	"strconv"
	"strings"
)

// DefaultSplinx is the splinx a Bar reports before Splinx is first called.
const DefaultSplinx = "Emptio"

// Splinxes lists the values Bar.Splinx chooses from.
var Splinxes = [...]string{
	"Splinxle",
	"Sploinx",
	"Splinxy",
	"Splintz",
	"Splinxer",
	"Splainx",
}

// YibbleRule computes the next yibble from the current one.
type YibbleRule func(uint64) uint64

// YibbleDoubling increments then doubles: 0, 2, 6, 14, ...
func YibbleDoubling(y uint64) uint64 { return (y + 1) * 2 }

// YibbleIncrement adds one.
func YibbleIncrement(y uint64) uint64 { return y + 1 }

// BarOption customises a Bar at construction.
type BarOption func(*Bar)

// WithYibbleRule replaces the default YibbleDoubling rule. A nil rule is ignored.
func WithYibbleRule(rule YibbleRule) BarOption {
	return func(b *Bar) {
		if rule != nil {
			b.rule = rule
		}
	}
}

// Bar carries a splinx name, an unsigned yibble counter, and a flibber collection.
type Bar struct {
	rng      Rand
	splinx   string
	yibble   uint64
	rule     YibbleRule
	flibbers *FlibberCollection
}

// NewBar returns a Bar with splinx DefaultSplinx and yibble 0.
func NewBar(r Rand, opts ...BarOption) *Bar {
	r = orDefault(r)
	b := &Bar{
		rng:      r,
		splinx:   DefaultSplinx,
		rule:     YibbleDoubling,
		flibbers: NewFlibberCollection(r),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Splinx assigns a splinx drawn uniformly from Splinxes.
func (b *Bar) Splinx() { b.splinx = pick(b.rng, Splinxes[:]) }

// Yibble advances the yibble counter by the configured rule. Overflow wraps.
func (b *Bar) Yibble() { b.yibble = b.rule(b.yibble) }

// Flibber appends a random flibber to the owned collection.
func (b *Bar) Flibber() { b.flibbers.Append() }

// SplinxName returns the current splinx.
func (b *Bar) SplinxName() string { return b.splinx }

// YibbleCount returns the current yibble.
func (b *Bar) YibbleCount() uint64 { return b.yibble }

// Flibbers returns a copy of the owned flibbers in insertion order.
func (b *Bar) Flibbers() []Flibber { return b.flibbers.Flibbers() }

// Render emits the splinx and yibble lines followed by the flibbers block.
func (b *Bar) Render(indent uint8) string {
	tab := Indent(indent)
	var sb strings.Builder
	renderField(&sb, tab, "splinx", b.splinx)
	renderField(&sb, tab, "yibble", strconv.FormatUint(b.yibble, 10))
	sb.WriteString(b.flibbers.Render(indent))
	return sb.String()
}
