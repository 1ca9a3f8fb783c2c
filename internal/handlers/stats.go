package handlers

import (
	"github.com/Slepzs/oizys-keres/internal/bus"
	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/event"
)

// handleStats maintains the lifetime counters quests and achievements read.
func handleStats(ev event.Event, state core.GameState, _ bus.Context) (core.GameState, []event.Event) {
	next := state.Clone()
	switch ev := ev.(type) {
	case event.SkillActionsCompleted:
		next.Stats.ActionsCompleted += ev.Actions
	case event.CombatEnemyKilled:
		next.Stats.EnemiesKilled++
	case event.ItemCrafted:
		next.Stats.ItemsCrafted++
	case event.ItemDropped:
		next.Stats.ItemsDropped += ev.Quantity
	default:
		return state, nil
	}
	return next, nil
}
