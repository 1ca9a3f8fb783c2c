package sim

import (
	"github.com/Slepzs/oizys-keres/internal/config"
	"github.com/Slepzs/oizys-keres/internal/content"
	"github.com/Slepzs/oizys-keres/internal/core"
)

// NewGame builds a fresh save: every skill at level 1, resources empty at
// their caps, full HP, clocks set to now.
func NewGame(catalog *content.Catalog, balance config.Balance, seed uint32, now int64) core.GameState {
	s := core.GameState{
		Player:         core.Player{Level: 1},
		Skills:         make(map[string]core.SkillState, len(catalog.Skills)),
		CombatSkills:   make(map[string]core.SkillState, len(catalog.CombatSkills)),
		Resources:      make(map[string]core.Resource, len(catalog.Resources)),
		Inventory:      core.Bag{Slots: balance.NewGame.BagSlots},
		Equipment:      make(map[string]string),
		Infrastructure: make(map[string]int),
		Quests:         make(map[string]core.QuestProgress),
		Achievements:   make(map[string]bool),
		Combat: core.CombatSettings{
			TrainingMode:   balance.Combat.DefaultTrainingMode,
			AutoFight:      balance.Combat.DefaultAutoFight,
			PreferredEnemy: make(map[string]string),
		},
		CraftingAutomation: core.CraftingAutomation{Quantity: 1},
		LastTickAt:         now,
		LastActiveAt:       now,
		Seed:               seed,
	}
	if s.Combat.TrainingMode == "" {
		s.Combat.TrainingMode = core.TrainingBalanced
	}
	for _, d := range catalog.Skills {
		s.Skills[d.ID] = core.SkillState{Level: 1}
	}
	for _, d := range catalog.CombatSkills {
		s.CombatSkills[d.ID] = core.SkillState{Level: 1}
	}
	for _, d := range catalog.Resources {
		s.Resources[d.ID] = core.Resource{Cap: d.Cap}
	}
	if def, ok := catalog.Skill(balance.NewGame.ActiveSkill); ok && def.Kind == content.KindGathering {
		s.ActiveSkill = def.ID
	}

	e := Engine{Catalog: catalog, Balance: balance}
	s.Player.MaxHP = e.MaxHP(s)
	s.Player.CurrentHP = s.Player.MaxHP
	return s
}

// NewGame builds a fresh save with the engine's tables.
func (e *Engine) NewGame(seed uint32, now int64) core.GameState {
	return NewGame(e.Catalog, e.Balance, seed, now)
}
