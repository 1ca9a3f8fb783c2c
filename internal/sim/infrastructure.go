package sim

import (
	"fmt"

	"github.com/Slepzs/oizys-keres/internal/content"
	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/event"
	"github.com/Slepzs/oizys-keres/internal/multiplier"
)

// UpgradeCost returns what raising building def to level costs.
func UpgradeCost(def content.InfrastructureDef, level int) []content.Ingredient {
	cost := make([]content.Ingredient, 0, len(def.BaseCost))
	for _, in := range def.BaseCost {
		in.Quantity *= level
		cost = append(cost, in)
	}
	return cost
}

// UpgradeInfrastructure pays for and applies the next level of a building.
// The new level raises resource caps and replaces the building's multiplier.
func (e *Engine) UpgradeInfrastructure(state core.GameState, id string) Result {
	def, found := e.Catalog.Building(id)
	if !found {
		return failf(state, ErrUnknownInfrastructure, id)
	}
	level := state.Infrastructure[id]
	if def.MaxLevel > 0 && level >= def.MaxLevel {
		return failf(state, ErrAtMaxLevel, id)
	}
	target := level + 1
	cost := UpgradeCost(def, target)
	for _, in := range cost {
		if !hasIngredient(state, in, in.Quantity) {
			return fail(state, fmt.Errorf("%w: %s level %d needs %d %s%s", ErrInsufficientResources, id, target, in.Quantity, in.Resource, in.Item))
		}
	}

	next := state.Clone()
	for _, in := range cost {
		if in.Resource != "" {
			next.SpendResource(in.Resource, in.Quantity)
		} else {
			next.Inventory.Remove(in.Item, in.Quantity)
		}
	}
	next.Infrastructure[id] = target
	for _, cb := range def.CapBonus {
		next.RaiseResourceCap(cb.Resource, cb.PerLevel)
	}
	if def.Bonus != nil {
		multiplier.Upsert(&next, def.Bonus.Multiplier("infra:"+id, "infrastructure", float64(target)))
	}
	return succeed(next, event.InfrastructureUpgraded{InfrastructureID: id, NewLevel: target})
}
