package sim

import (
	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/rng"
)

// Ticks converts elapsed milliseconds into ticks.
func (e *Engine) Ticks(deltaMs int64) float64 {
	if e.Balance.Tick.IntervalMs <= 0 {
		return 0
	}
	return float64(deltaMs) / float64(e.Balance.Tick.IntervalMs)
}

// ProcessTick advances the whole simulation by deltaMs. The active skill runs
// first, then automated skills in definition order at the automation rate,
// then combat, then crafting automation. The seed is advanced exactly once.
func (e *Engine) ProcessTick(state core.GameState, deltaMs int64) TickResult {
	if deltaMs <= 0 {
		return TickResult{State: state}
	}
	now := state.LastTickAt + deltaMs
	ticks := e.Ticks(deltaMs)

	cur := state
	var out TickResult
	apply := func(r TickResult) {
		cur = r.State
		out.Events = append(out.Events, r.Events...)
	}

	if cur.ActiveSkill != "" {
		apply(e.ProcessSkillTick(cur, cur.ActiveSkill, ticks))
	}
	rate := e.Balance.Skills.AutomationRate
	for _, def := range e.Catalog.Skills {
		if def.ID == cur.ActiveSkill || rate <= 0 {
			continue
		}
		if sk := cur.Skills[def.ID]; sk.AutomationUnlocked && sk.AutomationEnabled {
			apply(e.ProcessSkillTick(cur, def.ID, ticks*rate))
		}
	}
	apply(e.ProcessCombatTick(cur, now, ticks))
	apply(e.ProcessCraftingAutomationTick(cur, ticks))

	// Only scalar fields change here, so the value copy is enough.
	cur.Seed = rng.AdvanceSeed(cur.Seed)
	cur.LastTickAt = now
	cur.LastActiveAt = now
	out.State = cur
	return out
}
