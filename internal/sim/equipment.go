package sim

import (
	"fmt"

	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/multiplier"
)

func equipMultiplierID(slot string) string { return "equip:" + slot }

// Equip moves itemID from the bag into its slot. An item already in the slot
// goes back to the bag.
func (e *Engine) Equip(state core.GameState, itemID string) Result {
	item, found := e.Catalog.Item(itemID)
	if !found {
		return failf(state, ErrUnknownItem, itemID)
	}
	if item.Slot == "" {
		return failf(state, ErrNotEquippable, itemID)
	}
	if state.Inventory.Count(itemID) < 1 {
		return failf(state, ErrInsufficientResources, itemID)
	}

	next := state.Clone()
	next.Inventory.Remove(itemID, 1)
	if old, worn := next.Equipment[item.Slot]; worn {
		if !next.Inventory.Add(old, 1) {
			return fail(state, fmt.Errorf("%w: no room for %s", ErrBagFull, old))
		}
	}
	next.Equipment[item.Slot] = itemID

	id := equipMultiplierID(item.Slot)
	if item.Bonus != nil {
		multiplier.Upsert(&next, item.Bonus.Multiplier(id, "equipment", 1))
	} else {
		multiplier.Delete(&next, id)
	}
	return succeed(next)
}

// Unequip returns the item in slot to the bag.
func (e *Engine) Unequip(state core.GameState, slot string) Result {
	itemID, worn := state.Equipment[slot]
	if !worn {
		return failf(state, ErrNothingEquipped, slot)
	}
	if !state.Inventory.CanAdd(itemID) {
		return failf(state, ErrBagFull, itemID)
	}
	next := state.Clone()
	next.Inventory.Add(itemID, 1)
	delete(next.Equipment, slot)
	multiplier.Delete(&next, equipMultiplierID(slot))
	return succeed(next)
}
