package handlers

import (
	"github.com/Slepzs/oizys-keres/internal/bus"
	"github.com/Slepzs/oizys-keres/internal/content"
	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/event"
	"github.com/Slepzs/oizys-keres/internal/multiplier"
	"github.com/Slepzs/oizys-keres/internal/sim"
)

type questHandler struct {
	engine *sim.Engine
}

// handle advances every open quest whose objective the event counts toward.
// Quests are visited in definition order; a quest finished here can unlock a
// later one for the same event.
func (h *questHandler) handle(ev event.Event, state core.GameState, _ bus.Context) (core.GameState, []event.Event) {
	next := state.Clone()
	var out []event.Event
	changed := false

	for _, q := range h.engine.Catalog.Quests {
		qp := next.Quests[q.ID]
		if qp.Completed || !prerequisitesMet(next, q) {
			continue
		}
		progress, counts := objectiveProgress(next, q.Objective, ev, qp.Progress)
		if !counts || progress <= qp.Progress {
			continue
		}
		changed = true
		qp.Progress = min(progress, q.Objective.Count)
		out = append(out, event.QuestProgress{QuestID: q.ID, Progress: qp.Progress, Target: q.Objective.Count})

		if qp.Progress >= q.Objective.Count {
			qp.Completed = true
			next.Quests[q.ID] = qp
			next.Stats.QuestsCompleted++
			next, out = h.reward(next, q, out)
			out = append(out, event.QuestCompleted{QuestID: q.ID})
			continue
		}
		next.Quests[q.ID] = qp
	}

	if !changed {
		return state, nil
	}
	return next, out
}

func prerequisitesMet(s core.GameState, q content.QuestDef) bool {
	for _, id := range q.Requires {
		if !s.Quests[id].Completed {
			return false
		}
	}
	return true
}

// levelOf returns the level of a gathering, crafting or combat skill.
func levelOf(s core.GameState, id string) int {
	if sk, ok := s.Skills[id]; ok {
		return max(1, sk.Level)
	}
	return s.CombatSkillLevel(id)
}

// objectiveProgress returns the objective's new counter and whether ev
// counts toward it at all.
func objectiveProgress(s core.GameState, obj content.Objective, ev event.Event, current int) (int, bool) {
	switch obj.Kind {
	case content.ObjectiveKill:
		if k, ok := ev.(event.CombatEnemyKilled); ok && (obj.Target == "" || obj.Target == k.EnemyID) {
			return current + 1, true
		}
	case content.ObjectiveGather:
		if a, ok := ev.(event.SkillActionsCompleted); ok && a.ResourceID == obj.Target && a.Resource > 0 {
			return current + a.Resource, true
		}
	case content.ObjectiveCraft:
		if c, ok := ev.(event.ItemCrafted); ok && (obj.Target == "" || obj.Target == c.RecipeID) {
			return current + 1, true
		}
	case content.ObjectiveLevel:
		return levelOf(s, obj.Target), true
	}
	return current, false
}

// reward grants a completed quest's reward.
func (h *questHandler) reward(next core.GameState, q content.QuestDef, out []event.Event) (core.GameState, []event.Event) {
	r := q.Reward
	source := "quest:" + q.ID
	for _, in := range r.Resources {
		if added := next.AddResource(in.Resource, in.Quantity); added > 0 {
			out = append(out, event.ResourceGained{ResourceID: in.Resource, Amount: added, Source: source})
		}
	}
	for _, in := range r.Items {
		if !next.Inventory.Add(in.Item, in.Quantity) {
			out = append(out, event.ActionsPausedBagFull{Source: source})
			continue
		}
		out = append(out, event.ItemDropped{ItemID: in.Item, Quantity: in.Quantity, Source: source})
	}
	if r.Multiplier != nil {
		multiplier.Upsert(&next, r.Multiplier.Multiplier(source, "quest", 1))
	}
	if r.PlayerXP > 0 {
		res := h.engine.GrantPlayerXP(next, r.PlayerXP)
		next = res.State
		out = append(out, res.Events...)
	}
	return next, out
}
