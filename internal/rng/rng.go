// Package rng provides the seeded random number generator used for every
// stochastic outcome in the simulation (drop rolls, loot quantities).
//
// Two algorithms live here on purpose. Generator is Mulberry32 and produces
// the rolls. AdvanceSeed is a linear congruential step that evolves the seed
// stored in the game state once per tick. Drawing numbers from a Generator
// never changes the stored seed; only AdvanceSeed does.
package rng

// Generator is a Mulberry32 pseudo-random generator over a 32-bit state.
// The zero value is a valid generator seeded with 0.
type Generator struct {
	state uint32
}

// New creates a generator from a seed.
func New(seed uint32) *Generator {
	return &Generator{state: seed}
}

// Float returns the next value in [0, 1) and advances the generator.
func (g *Generator) Float() float64 {
	g.state += 0x6D2B79F5
	a := g.state
	t := (a ^ (a >> 15)) * (1 | a)
	t = (t + (t^(t>>7))*(61|t)) ^ t
	return float64(t^(t>>14)) / 4294967296.0
}

// Int returns an integer in [min, maxExclusive).
// When maxExclusive <= min it returns min without consuming a roll.
func (g *Generator) Int(min, maxExclusive int) int {
	if maxExclusive <= min {
		return min
	}
	return min + int(g.Float()*float64(maxExclusive-min))
}

// Range returns a float in [min, max).
func (g *Generator) Range(min, max float64) float64 {
	return min + g.Float()*(max-min)
}

// Chance rolls once and reports whether the roll landed under p.
// p <= 0 never succeeds and p >= 1 always does, but both still consume a roll
// so the sequence stays aligned regardless of the probabilities involved.
func (g *Generator) Chance(p float64) bool {
	return g.Float() < p
}

// State returns the generator's internal state.
func (g *Generator) State() uint32 {
	return g.state
}

// LCG constants (Numerical Recipes).
const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
)

// AdvanceSeed evolves a stored seed by one step.
func AdvanceSeed(seed uint32) uint32 {
	return seed*lcgMultiplier + lcgIncrement
}
