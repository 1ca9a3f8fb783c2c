package sim

import (
	"fmt"
	"math"

	"github.com/Slepzs/oizys-keres/internal/content"
	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/event"
	"github.com/Slepzs/oizys-keres/internal/ledger"
	"github.com/Slepzs/oizys-keres/internal/multiplier"
)

// Craft performs one manual craft of recipeID.
func (e *Engine) Craft(state core.GameState, recipeID string) Result {
	recipe, found := e.Catalog.Recipe(recipeID)
	if !found {
		return failf(state, ErrUnknownRecipe, recipeID)
	}
	if err := e.canCraft(state, recipe); err != nil {
		return fail(state, err)
	}
	next := state.Clone()
	events := e.craft(&next, recipe, false, nil)
	return succeed(next, events...)
}

// hasIngredient reports whether s holds in.
func hasIngredient(s core.GameState, in content.Ingredient, qty int) bool {
	if in.Resource != "" {
		return s.ResourceAmount(in.Resource) >= qty
	}
	return s.Inventory.Count(in.Item) >= qty
}

// canCraft checks every requirement of recipe without changing anything.
func (e *Engine) canCraft(s core.GameState, recipe content.RecipeDef) error {
	if skillLevel(s, recipe.SkillID) < recipe.RequiredLevel {
		return fmt.Errorf("%w: %s needs %s %d", ErrSkillLevelTooLow, recipe.ID, recipe.SkillID, recipe.RequiredLevel)
	}
	if req := recipe.Infrastructure; req != nil && s.Infrastructure[req.ID] < req.Level {
		return fmt.Errorf("%w: %s needs %s %d", ErrInfrastructureMissing, recipe.ID, req.ID, req.Level)
	}
	for _, in := range recipe.Inputs {
		if !hasIngredient(s, in, in.Quantity) {
			return fmt.Errorf("%w: %s needs %d %s%s", ErrInsufficientResources, recipe.ID, in.Quantity, in.Resource, in.Item)
		}
	}
	out := recipe.Output
	if out.Resource != "" && s.ResourceRoom(out.Resource) < out.Quantity {
		return fmt.Errorf("%w: %s", ErrResourceCapReached, out.Resource)
	}
	if out.Item != "" && !s.Inventory.CanAdd(out.Item) {
		return fmt.Errorf("%w: %s", ErrBagFull, out.Item)
	}
	return nil
}

// craft consumes inputs, adds the output and grants XP on an owned state.
// The caller has already checked canCraft.
func (e *Engine) craft(next *core.GameState, recipe content.RecipeDef, automated bool, events []event.Event) []event.Event {
	for _, in := range recipe.Inputs {
		if in.Resource != "" {
			next.SpendResource(in.Resource, in.Quantity)
		} else {
			next.Inventory.Remove(in.Item, in.Quantity)
		}
	}
	out := recipe.Output
	if out.Resource != "" {
		next.AddResource(out.Resource, out.Quantity)
	} else {
		next.Inventory.Add(out.Item, out.Quantity)
	}

	events = append(events, event.ItemCrafted{
		RecipeID:   recipe.ID,
		ResourceID: out.Resource,
		ItemID:     out.Item,
		Quantity:   out.Quantity,
		Automated:  automated,
	})
	if def, found := e.Catalog.Skill(recipe.SkillID); found {
		xp := int(math.Floor(float64(recipe.XP) * multiplier.SkillXP(*next, recipe.SkillID)))
		events = e.grantSkillXP(next, def, xp, events)
	}
	return events
}

// EffectiveTicksPerCraft returns the tick cost of one automated craft interval.
func (e *Engine) EffectiveTicksPerCraft(state core.GameState, recipe content.RecipeDef) float64 {
	if recipe.TicksPerCraft <= 0 {
		return 0
	}
	return recipe.TicksPerCraft / ledger.SpeedMultiplier(e.Balance.Skills, skillLevel(state, recipe.SkillID))
}

// ProcessCraftingAutomationTick advances the crafting loop by ticks. Each
// completed interval attempts Quantity crafts. The first failed attempt halts
// the loop and zeroes carried progress; crafts already made in the call are
// kept. Automation stays enabled and resumes once the craft succeeds again.
// CRAFTING_AUTOMATION_STOPPED is emitted once per stall. An unknown recipe
// disables automation.
func (e *Engine) ProcessCraftingAutomationTick(state core.GameState, ticks float64) TickResult {
	auto := state.CraftingAutomation
	if !auto.Enabled || auto.RecipeID == "" {
		return TickResult{State: state}
	}

	next := state.Clone()
	recipe, found := e.Catalog.Recipe(auto.RecipeID)
	if !found {
		next.CraftingAutomation.Enabled = false
		return stopAutomation(next, auto.RecipeID, fmt.Errorf("%w: %s", ErrUnknownRecipe, auto.RecipeID), nil)
	}
	per := e.EffectiveTicksPerCraft(next, recipe)
	if per <= 0 {
		next.CraftingAutomation.Enabled = false
		return stopAutomation(next, recipe.ID, fmt.Errorf("%w: %s", ErrUnknownRecipe, recipe.ID), nil)
	}

	intervals, rem := accumulate(auto.TickProgress, ticks, per)
	next.CraftingAutomation.TickProgress = rem

	var events []event.Event
	batch := max(1, auto.Quantity)
	for range intervals {
		for range batch {
			if err := e.canCraft(next, recipe); err != nil {
				return stopAutomation(next, recipe.ID, err, events)
			}
			events = e.craft(&next, recipe, true, events)
			next.CraftingAutomation.Stalled = false
		}
	}
	if after := e.EffectiveTicksPerCraft(next, recipe); after > 0 && after != per {
		next.CraftingAutomation.TickProgress = rescaleProgress(rem, per, after)
	}
	return TickResult{State: next, Events: events}
}

func stopAutomation(next core.GameState, recipeID string, err error, events []event.Event) TickResult {
	next.CraftingAutomation.TickProgress = 0
	if !next.CraftingAutomation.Stalled {
		next.CraftingAutomation.Stalled = true
		events = append(events, event.CraftingAutomationStopped{RecipeID: recipeID, Reason: err.Error()})
	}
	return TickResult{State: next, Events: events}
}

// SetCraftingAutomation configures the crafting loop. Changing the recipe
// discards carried progress.
func (e *Engine) SetCraftingAutomation(state core.GameState, recipeID string, quantity int, enabled bool) Result {
	if _, found := e.Catalog.Recipe(recipeID); !found {
		return failf(state, ErrUnknownRecipe, recipeID)
	}
	next := state.Clone()
	if next.CraftingAutomation.RecipeID != recipeID {
		next.CraftingAutomation.TickProgress = 0
	}
	next.CraftingAutomation.RecipeID = recipeID
	next.CraftingAutomation.Quantity = max(1, quantity)
	next.CraftingAutomation.Enabled = enabled
	next.CraftingAutomation.Stalled = false
	return succeed(next)
}
