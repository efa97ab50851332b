// Package domain defines the flibber entities, the fixed lookup tables they
// draw from, and the indentation rules used to render them as text.
package domain

import "math/rand/v2"

// Rand is the random source consumed by flibber and splinx selection.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand returns the process-wide random source used when a constructor
// is handed a nil Rand.
func DefaultRand() Rand { return globalRand{} }

func orDefault(r Rand) Rand {
	if r == nil {
		return DefaultRand()
	}
	return r
}

// FlibberKeys lists every key a Flibber may carry.
var FlibberKeys = [...]string{
	"Kez",
	"Kex",
	"Kye",
	"Koy",
	"Keem",
	"Kyez",
	"Keh",
	"Kiy",
	"Kae",
	"Kwey",
}

// FlibberValues lists every value a Flibber may carry. "Vyluxe" appears twice
// and is therefore drawn twice as often.
var FlibberValues = [...]string{
	"Vylue",
	"Vaulue",
	"Vellue",
	"Vyluxe",
	"Velluxe",
	"Vylise",
	"Vellise",
	"Vylume",
	"Vellume",
	"Vyluxe",
}

// Flibber is a key/value pair drawn from FlibberKeys and FlibberValues.
type Flibber struct {
	Key   string
	Value string
}

// NewFlibber draws a key and then a value from r.
func NewFlibber(r Rand) Flibber {
	r = orDefault(r)
	return Flibber{
		Key:   pick(r, FlibberKeys[:]),
		Value: pick(r, FlibberValues[:]),
	}
}

// pick never indexes out of range, even for a source returning values outside [0, n).
func pick(r Rand, table []string) string {
	n := len(table)
	i := r.IntN(n) % n
	if i < 0 {
		i += n
	}
	return table[i]
}
