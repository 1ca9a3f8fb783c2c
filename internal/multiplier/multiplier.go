// Package multiplier composes named bonuses into effective multipliers.
//
// A multiplier applies to a query when its target equals the queried target
// or is the universal all_skills target. Matching multipliers combine as
// (1 + sum of additive values) * product of multiplicative values.
package multiplier

import (
	"slices"

	"github.com/Slepzs/oizys-keres/internal/core"
)

// Effective returns the combined multiplier for target, 1.0 when nothing matches.
func Effective(state core.GameState, target string) float64 {
	additive := 0.0
	product := 1.0
	for _, m := range state.Multipliers {
		if m.Target != target && m.Target != core.TargetAllSkills {
			continue
		}
		switch m.Type {
		case core.Additive:
			additive += m.Value
		case core.Multiplicative:
			product *= m.Value
		}
	}
	return (1 + additive) * product
}

// SkillXP returns the XP multiplier for a skill: the skill's own effective
// multiplier times the global xp multiplier.
func SkillXP(state core.GameState, skillID string) float64 {
	return Effective(state, skillID) * Effective(state, core.TargetXP)
}

// Add returns a copy of state with m inserted, replacing any multiplier with
// the same ID in place.
func Add(state core.GameState, m core.Multiplier) core.GameState {
	next := state.Clone()
	Upsert(&next, m)
	return next
}

// Remove returns a copy of state without the multiplier id.
func Remove(state core.GameState, id string) core.GameState {
	next := state.Clone()
	Delete(&next, id)
	return next
}

// Upsert inserts or replaces m on a state the caller already owns.
func Upsert(state *core.GameState, m core.Multiplier) {
	if i := slices.IndexFunc(state.Multipliers, func(x core.Multiplier) bool { return x.ID == m.ID }); i >= 0 {
		state.Multipliers[i] = m
		return
	}
	state.Multipliers = append(state.Multipliers, m)
}

// Delete removes id from a state the caller already owns.
func Delete(state *core.GameState, id string) {
	state.Multipliers = slices.DeleteFunc(state.Multipliers, func(x core.Multiplier) bool { return x.ID == id })
}

// Find returns the multiplier with id.
func Find(state core.GameState, id string) (core.Multiplier, bool) {
	i := slices.IndexFunc(state.Multipliers, func(x core.Multiplier) bool { return x.ID == id })
	if i < 0 {
		return core.Multiplier{}, false
	}
	return state.Multipliers[i], true
}
