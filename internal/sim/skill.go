package sim

import (
	"math"

	"github.com/Slepzs/oizys-keres/internal/content"
	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/event"
	"github.com/Slepzs/oizys-keres/internal/ledger"
	"github.com/Slepzs/oizys-keres/internal/multiplier"
	"github.com/Slepzs/oizys-keres/internal/rng"
)

// ActionParams are the per-action numbers of a skill after variant
// substitution.
type ActionParams struct {
	ResourceID        string
	TicksPerAction    float64
	XPPerAction       float64
	ResourcePerAction float64
}

// ResolveParams resolves the parameters a skill currently works with. The
// active variant replaces the base values once the skill's level meets the
// variant's requirement; otherwise the base definition applies.
func ResolveParams(def content.SkillDef, sk core.SkillState) ActionParams {
	p := ActionParams{
		ResourceID:        def.ResourceID,
		TicksPerAction:    def.TicksPerAction,
		XPPerAction:       def.XPPerAction,
		ResourcePerAction: def.ResourcePerAction,
	}
	if sk.ActiveVariant == "" {
		return p
	}
	v, ok := def.Variant(sk.ActiveVariant)
	if !ok || sk.Level < v.RequiredLevel {
		return p
	}
	if v.ResourceID != "" {
		p.ResourceID = v.ResourceID
	}
	if v.TicksPerAction > 0 {
		p.TicksPerAction = v.TicksPerAction
	}
	if v.XPPerAction > 0 {
		p.XPPerAction = v.XPPerAction
	}
	if v.ResourcePerAction > 0 {
		p.ResourcePerAction = v.ResourcePerAction
	}
	return p
}

// EffectiveTicksPerAction returns the tick cost of one action of skillID at
// the skill's current level, or 0 when the skill cannot be processed.
func (e *Engine) EffectiveTicksPerAction(state core.GameState, skillID string) float64 {
	def, ok := e.Catalog.Skill(skillID)
	if !ok || def.Kind != content.KindGathering {
		return 0
	}
	sk := skillState(state, skillID)
	p := ResolveParams(def, sk)
	if p.TicksPerAction <= 0 {
		return 0
	}
	return p.TicksPerAction / ledger.SpeedMultiplier(e.Balance.Skills, sk.Level)
}

// accumulate adds ticks to carried progress and splits the total into whole
// actions and a remainder in [0, per).
func accumulate(progress, ticks, per float64) (int, float64) {
	total := progress + max(0, ticks)
	actions := int(math.Floor(total / per))
	rem := total - float64(actions)*per
	if rem < 0 {
		rem = 0
	}
	for rem >= per {
		actions++
		rem -= per
	}
	return actions, rem
}

// rescaleProgress converts a remainder measured against the old action cost
// into the same fraction of the new cost, keeping it in [0, after).
func rescaleProgress(rem, before, after float64) float64 {
	p := rem * after / before
	if p >= after {
		p = math.Nextafter(after, 0)
	}
	return max(0, p)
}

// ProcessSkillTick advances a gathering skill by ticks. Partial progress is
// carried in the skill's TickProgress. Unknown skills and crafting skills
// return the state unchanged.
func (e *Engine) ProcessSkillTick(state core.GameState, skillID string, ticks float64) TickResult {
	def, ok := e.Catalog.Skill(skillID)
	if !ok || def.Kind != content.KindGathering {
		return TickResult{State: state}
	}
	per := e.EffectiveTicksPerAction(state, skillID)
	if per <= 0 {
		return TickResult{State: state}
	}

	next := state.Clone()
	sk := skillState(next, skillID)
	params := ResolveParams(def, sk)
	level := sk.Level

	actions, rem := accumulate(sk.TickProgress, ticks, per)
	sk.TickProgress = rem
	next.Skills[skillID] = sk
	if actions == 0 {
		return TickResult{State: next}
	}

	xp := int(math.Floor(params.XPPerAction * float64(actions) * multiplier.SkillXP(next, skillID)))
	amount := int(math.Floor(params.ResourcePerAction * ledger.EfficiencyMultiplier(e.Balance.Skills, level) * float64(actions)))
	added := 0
	if params.ResourceID != "" {
		added = next.AddResource(params.ResourceID, amount)
	}

	events := []event.Event{event.SkillActionsCompleted{
		SkillID:    skillID,
		Actions:    actions,
		XP:         xp,
		ResourceID: params.ResourceID,
		Resource:   added,
	}}
	events = e.grantSkillXP(&next, def, xp, events)
	if after := e.EffectiveTicksPerAction(next, skillID); after > 0 && after != per {
		sk := next.Skills[skillID]
		sk.TickProgress = rescaleProgress(rem, per, after)
		next.Skills[skillID] = sk
	}
	events = e.rollSkillDrops(&next, def, level, actions, events)

	return TickResult{State: next, Events: events}
}

// rollSkillDrops rolls the skill's drop table once per entry per action from a
// generator built from the current seed. A full bag skips the rolls. Every
// skill processed in one tick starts from the same seed.
func (e *Engine) rollSkillDrops(next *core.GameState, def content.SkillDef, level, actions int, events []event.Event) []event.Event {
	if len(def.Drops) == 0 {
		return events
	}
	if next.Inventory.Full() {
		return append(events, event.ActionsPausedBagFull{Source: def.ID})
	}
	return RollDrops(next, rng.New(next.Seed), def.Drops, level, actions, def.ID, events)
}

// RollDrops rolls drops once per entry per action into the bag of an owned
// state. Entries above level are skipped and chances are scaled by the drops
// multiplier, capped at 1. Rolling stops with ACTIONS_PAUSED_BAG_FULL as soon
// as an item no longer fits.
func RollDrops(next *core.GameState, g *rng.Generator, drops []content.DropEntry, level, actions int, source string, events []event.Event) []event.Event {
	bonus := multiplier.Effective(*next, core.TargetDrops)
	for range actions {
		for _, d := range drops {
			if level < d.MinLevel {
				continue
			}
			if !g.Chance(math.Min(1, d.Chance*bonus)) {
				continue
			}
			qty := RollQuantity(g, d)
			if !next.Inventory.Add(d.ItemID, qty) {
				return append(events, event.ActionsPausedBagFull{Source: source})
			}
			events = append(events, event.ItemDropped{ItemID: d.ItemID, Quantity: qty, Source: source})
		}
	}
	return events
}

// RollQuantity picks a drop quantity in [MinQty, MaxQty], at least 1.
func RollQuantity(g *rng.Generator, d content.DropEntry) int {
	lo := max(1, d.MinQty)
	hi := max(lo, d.MaxQty)
	if hi == lo {
		return lo
	}
	return g.Int(lo, hi+1)
}
