package handlers

import (
	"github.com/Slepzs/oizys-keres/internal/bus"
	"github.com/Slepzs/oizys-keres/internal/content"
	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/event"
	"github.com/Slepzs/oizys-keres/internal/multiplier"
	"github.com/Slepzs/oizys-keres/internal/sim"
)

type achievementHandler struct {
	engine *sim.Engine
}

// handle unlocks every achievement whose condition the state now meets.
func (h *achievementHandler) handle(_ event.Event, state core.GameState, _ bus.Context) (core.GameState, []event.Event) {
	var next core.GameState
	var out []event.Event

	for _, a := range h.engine.Catalog.Achievements {
		if state.Achievements[a.ID] || !Met(state, a.Condition) {
			continue
		}
		if out == nil {
			next = state.Clone()
		}
		next.Achievements[a.ID] = true
		next.Stats.AchievementsUnlocked++
		if a.Reward != nil {
			multiplier.Upsert(&next, a.Reward.Multiplier("achievement:"+a.ID, "achievement", 1))
		}
		out = append(out, event.AchievementUnlocked{AchievementID: a.ID})
	}

	if out == nil {
		return state, nil
	}
	return next, out
}

// Met reports whether s satisfies c.
func Met(s core.GameState, c content.Condition) bool {
	var have int
	switch c.Kind {
	case content.ConditionQuestsCompleted:
		have = s.Stats.QuestsCompleted
	case content.ConditionEnemiesKilled:
		have = s.Stats.EnemiesKilled
	case content.ConditionSkillLevel:
		have = levelOf(s, c.Target)
	case content.ConditionTotalLevel:
		have = s.TotalSkillLevel()
	case content.ConditionItemsCrafted:
		have = s.Stats.ItemsCrafted
	case content.ConditionDeaths:
		have = s.Player.Deaths
	default:
		return false
	}
	return have >= c.Value
}
