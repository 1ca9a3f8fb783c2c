// Package handlers wires the game's side-effect subsystems onto an event
// bus: loot rolls, lifetime stats, quests, achievements and notifications.
// The simulation never calls these directly; they only see bus events.
package handlers

import (
	"github.com/Slepzs/oizys-keres/internal/bus"
	"github.com/Slepzs/oizys-keres/internal/event"
	"github.com/Slepzs/oizys-keres/internal/sim"
)

// Key is the registration key for the core handler set.
const Key = "core-handlers"

// Handler priorities. Quests must update their counters before achievements
// read them, and notifications observe everything else's results.
const (
	PriorityLoot          = 25
	PriorityStats         = 40
	PriorityQuests        = 50
	PriorityAchievements  = 100
	PriorityNotifications = 200
)

// Register subscribes every core handler to b. It is idempotent: a bus that
// already has the core handlers is left alone and Register reports false.
func Register(b *bus.Bus, engine *sim.Engine) bool {
	return b.Register(Key, func(b *bus.Bus) {
		loot := &lootHandler{engine: engine}
		b.On(event.TypeCombatEnemyKilled, loot.handle, PriorityLoot)

		for _, t := range []event.Type{
			event.TypeSkillActionsCompleted,
			event.TypeCombatEnemyKilled,
			event.TypeItemCrafted,
			event.TypeItemDropped,
		} {
			b.On(t, handleStats, PriorityStats)
		}

		quests := &questHandler{engine: engine}
		for _, t := range []event.Type{
			event.TypeCombatEnemyKilled,
			event.TypeSkillActionsCompleted,
			event.TypeItemCrafted,
			event.TypeSkillLevelUp,
			event.TypeCombatSkillLevelUp,
			event.TypeQuestCompleted,
		} {
			b.On(t, quests.handle, PriorityQuests)
		}

		achievements := &achievementHandler{engine: engine}
		for _, t := range []event.Type{
			event.TypeQuestCompleted,
			event.TypeCombatEnemyKilled,
			event.TypeSkillLevelUp,
			event.TypeCombatSkillLevelUp,
			event.TypeItemCrafted,
			event.TypeCombatPlayerDied,
		} {
			b.On(t, achievements.handle, PriorityAchievements)
		}

		notes := &notificationHandler{cfg: engine.Balance.Notifications}
		for _, t := range notifiedTypes {
			b.On(t, notes.handle, PriorityNotifications)
		}
	})
}
