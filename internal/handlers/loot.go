package handlers

import (
	"github.com/Slepzs/oizys-keres/internal/bus"
	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/event"
	"github.com/Slepzs/oizys-keres/internal/rng"
	"github.com/Slepzs/oizys-keres/internal/sim"
)

type lootHandler struct {
	engine *sim.Engine
}

// lootSeed derives the generator seed for one kill. Several kills can share a
// tick, so the kill timestamp is folded into the state seed.
func lootSeed(seed uint32, at int64) uint32 {
	return seed ^ uint32(at) ^ uint32(at>>32)
}

// handle rolls the defeated enemy's drop table into the bag.
func (h *lootHandler) handle(ev event.Event, state core.GameState, _ bus.Context) (core.GameState, []event.Event) {
	kill, ok := ev.(event.CombatEnemyKilled)
	if !ok {
		return state, nil
	}
	enemy, ok := h.engine.Catalog.Enemy(kill.EnemyID)
	if !ok || len(enemy.Drops) == 0 {
		return state, nil
	}
	if state.Inventory.Full() {
		return state, []event.Event{event.ActionsPausedBagFull{Source: enemy.ID}}
	}

	next := state.Clone()
	g := rng.New(lootSeed(next.Seed, kill.At))
	out := sim.RollDrops(&next, g, enemy.Drops, h.engine.CombatLevel(next), 1, enemy.ID, nil)
	return next, out
}
