package handlers

import (
	"fmt"
	"slices"

	"github.com/Slepzs/oizys-keres/internal/bus"
	"github.com/Slepzs/oizys-keres/internal/config"
	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/event"
)

// notifiedTypes are the events the player is told about.
var notifiedTypes = []event.Type{
	event.TypeSkillLevelUp,
	event.TypePlayerLevelUp,
	event.TypeCombatSkillLevelUp,
	event.TypeAutomationUnlocked,
	event.TypeActionsPausedBagFull,
	event.TypeCombatPlayerDied,
	event.TypeCraftingAutomationStopped,
	event.TypeInfrastructureUpgraded,
	event.TypeQuestCompleted,
	event.TypeAchievementUnlocked,
	event.TypeOfflineProgressApplied,
}

type notificationHandler struct {
	cfg config.NotificationConfig
}

// handle appends a notification expiring TTL after the dispatch time.
// Expired entries are dropped first, and a message already on screen is not
// repeated.
func (h *notificationHandler) handle(ev event.Event, state core.GameState, ctx bus.Context) (core.GameState, []event.Event) {
	msg := event.Describe(ev)
	kind := string(ev.Type())
	for _, n := range Active(state, ctx.Now) {
		if n.Kind == kind && n.Message == msg {
			return state, nil
		}
	}

	next := Prune(state, ctx.Now)
	seq := 0
	for _, n := range next.Notifications {
		if n.CreatedAt == ctx.Now {
			seq++
		}
	}
	next.Notifications = append(next.Notifications, core.Notification{
		ID:        fmt.Sprintf("%d.%d", ctx.Now, seq),
		Kind:      kind,
		Message:   msg,
		CreatedAt: ctx.Now,
		ExpiresAt: ctx.Now + h.cfg.TTLMs,
	})
	if h.cfg.Max > 0 && len(next.Notifications) > h.cfg.Max {
		next.Notifications = slices.Clone(next.Notifications[len(next.Notifications)-h.cfg.Max:])
	}
	return next, nil
}

// Active returns the notifications still visible at now.
func Active(state core.GameState, now int64) []core.Notification {
	var out []core.Notification
	for _, n := range state.Notifications {
		if n.ExpiresAt > now {
			out = append(out, n)
		}
	}
	return out
}

// Prune returns a copy of state without notifications expired at now.
func Prune(state core.GameState, now int64) core.GameState {
	next := state.Clone()
	next.Notifications = slices.DeleteFunc(next.Notifications, func(n core.Notification) bool { return n.ExpiresAt <= now })
	return next
}
