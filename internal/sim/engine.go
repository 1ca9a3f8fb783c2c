// Package sim is the deterministic simulation engine. It converts elapsed
// time into skill actions, combat exchanges and crafts, and exposes the
// player commands that change a game state.
//
// Every function takes a core.GameState by value and returns a new one. The
// input state is never modified. Failures the player can cause are returned
// as Result values carrying a sentinel error; unknown ids never panic.
package sim

import (
	"errors"
	"fmt"

	"github.com/Slepzs/oizys-keres/internal/config"
	"github.com/Slepzs/oizys-keres/internal/content"
	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/event"
	"github.com/Slepzs/oizys-keres/internal/ledger"
)

// Command failures. Compare with errors.Is.
var (
	ErrUnknownSkill          = errors.New("unknown skill")
	ErrUnknownVariant        = errors.New("unknown variant")
	ErrUnknownRecipe         = errors.New("unknown recipe")
	ErrUnknownItem           = errors.New("unknown item")
	ErrUnknownZone           = errors.New("unknown zone")
	ErrUnknownEnemy          = errors.New("unknown enemy")
	ErrUnknownInfrastructure = errors.New("unknown infrastructure")
	ErrSkillLevelTooLow      = errors.New("skill level too low")
	ErrCombatLevelTooLow     = errors.New("combat level too low")
	ErrInfrastructureMissing = errors.New("infrastructure level too low")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrResourceCapReached    = errors.New("resource cap reached")
	ErrBagFull               = errors.New("bag full")
	ErrAtMaxLevel            = errors.New("already at max level")
	ErrNotEquippable         = errors.New("item cannot be equipped")
	ErrNothingEquipped       = errors.New("nothing equipped in slot")
	ErrAlreadyInCombat       = errors.New("already in combat")
	ErrNotInCombat           = errors.New("not in combat")
	ErrNoEligibleEnemy       = errors.New("no eligible enemy")
	ErrAutomationLocked      = errors.New("automation not unlocked")
	ErrNotGathering          = errors.New("skill is not a gathering skill")
)

// TickResult is the output of a processor: the next state and the events
// produced, in order.
type TickResult struct {
	State  core.GameState
	Events []event.Event
}

// Result is the output of a player command. On failure State is the input
// state, Events is empty and Err says why.
type Result struct {
	State   core.GameState
	Events  []event.Event
	Success bool
	Err     error
}

func succeed(state core.GameState, events ...event.Event) Result {
	return Result{State: state, Events: events, Success: true}
}

func fail(state core.GameState, err error) Result {
	return Result{State: state, Err: err}
}

func failf(state core.GameState, sentinel error, id string) Result {
	return fail(state, fmt.Errorf("%w: %s", sentinel, id))
}

// Engine binds the definition tables and balance constants the processors read.
// An Engine holds no game state and is safe for concurrent use.
type Engine struct {
	Catalog *content.Catalog
	Balance config.Balance
}

// New creates an engine. The catalog must already be indexed.
func New(catalog *content.Catalog, balance config.Balance) *Engine {
	return &Engine{Catalog: catalog, Balance: balance}
}

// skillLevel returns a skill's level, defaulting to 1 for untrained skills.
func skillLevel(s core.GameState, id string) int {
	if sk, ok := s.Skills[id]; ok && sk.Level > 0 {
		return sk.Level
	}
	return 1
}

// skillState returns a skill's state with its level defaulted.
func skillState(s core.GameState, id string) core.SkillState {
	sk := s.Skills[id]
	if sk.Level < 1 {
		sk.Level = 1
	}
	return sk
}

// grantPlayerXP applies XP to the player on an owned state and appends a
// level-up event when one happens.
func (e *Engine) grantPlayerXP(next *core.GameState, amount int, events []event.Event) []event.Event {
	if amount <= 0 {
		return events
	}
	res := ledger.AddPlayerXP(e.Balance.XP, next.Player.Level, next.Player.XP, amount)
	next.Player.Level = res.NewLevel
	next.Player.XP = res.NewXP
	if res.LeveledUp {
		events = append(events, event.PlayerLevelUp{NewLevel: res.NewLevel, LevelsGained: res.LevelsGained})
	}
	return events
}

// GrantPlayerXP returns a copy of state with amount of player XP applied.
func (e *Engine) GrantPlayerXP(state core.GameState, amount int) TickResult {
	if amount <= 0 {
		return TickResult{State: state}
	}
	next := state.Clone()
	events := e.grantPlayerXP(&next, amount, nil)
	return TickResult{State: next, Events: events}
}

// grantSkillXP applies XP to a gathering or crafting skill on an owned state,
// mirrors the player share and reports level and automation milestones.
func (e *Engine) grantSkillXP(next *core.GameState, def content.SkillDef, amount int, events []event.Event) []event.Event {
	if amount <= 0 {
		return events
	}
	sk := skillState(*next, def.ID)
	res := ledger.AddSkillXP(e.Balance.XP, sk.Level, sk.XP, amount)
	sk.Level = res.NewLevel
	sk.XP = res.NewXP
	if res.LeveledUp {
		events = append(events, event.SkillLevelUp{SkillID: def.ID, NewLevel: res.NewLevel, LevelsGained: res.LevelsGained})
	}
	if !sk.AutomationUnlocked && def.AutomationUnlockLevel > 0 && sk.Level >= def.AutomationUnlockLevel {
		sk.AutomationUnlocked = true
		events = append(events, event.AutomationUnlocked{SkillID: def.ID})
	}
	next.Skills[def.ID] = sk

	return e.grantPlayerXP(next, ledger.PlayerShare(e.Balance.XP, amount), events)
}
