package sim

import (
	"github.com/Slepzs/oizys-keres/internal/content"
	"github.com/Slepzs/oizys-keres/internal/core"
)

// SetActiveSkill focuses a gathering skill. An empty id leaves the player idle.
func (e *Engine) SetActiveSkill(state core.GameState, skillID string) Result {
	if skillID != "" {
		def, found := e.Catalog.Skill(skillID)
		if !found {
			return failf(state, ErrUnknownSkill, skillID)
		}
		if def.Kind != content.KindGathering {
			return failf(state, ErrNotGathering, skillID)
		}
	}
	next := state.Clone()
	next.ActiveSkill = skillID
	return succeed(next)
}

// SetAutomation turns background automation of a skill on or off. Enabling
// requires the skill to have unlocked automation.
func (e *Engine) SetAutomation(state core.GameState, skillID string, enabled bool) Result {
	if _, found := e.Catalog.Skill(skillID); !found {
		return failf(state, ErrUnknownSkill, skillID)
	}
	sk := skillState(state, skillID)
	if enabled && !sk.AutomationUnlocked {
		return failf(state, ErrAutomationLocked, skillID)
	}
	next := state.Clone()
	sk.AutomationEnabled = enabled
	next.Skills[skillID] = sk
	return succeed(next)
}

// SetVariant selects the node a gathering skill works. An empty id returns to
// the base definition. Switching discards carried tick progress.
func (e *Engine) SetVariant(state core.GameState, skillID, variantID string) Result {
	def, found := e.Catalog.Skill(skillID)
	if !found {
		return failf(state, ErrUnknownSkill, skillID)
	}
	sk := skillState(state, skillID)
	if variantID != "" {
		v, found := def.Variant(variantID)
		if !found {
			return failf(state, ErrUnknownVariant, variantID)
		}
		if sk.Level < v.RequiredLevel {
			return failf(state, ErrSkillLevelTooLow, variantID)
		}
	}
	next := state.Clone()
	if sk.ActiveVariant != variantID {
		sk.TickProgress = 0
	}
	sk.ActiveVariant = variantID
	next.Skills[skillID] = sk
	return succeed(next)
}
