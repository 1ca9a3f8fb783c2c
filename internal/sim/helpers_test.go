package sim

import (
	"testing"

	"github.com/Slepzs/oizys-keres/internal/config"
	"github.com/Slepzs/oizys-keres/internal/content"
	"github.com/Slepzs/oizys-keres/internal/core"
)

// testCatalog is a small hand-built table set with round numbers.
func testCatalog(t *testing.T) *content.Catalog {
	t.Helper()
	c := &content.Catalog{
		Skills: []content.SkillDef{
			{
				ID: "mining", Kind: content.KindGathering, ResourceID: "ore",
				TicksPerAction: 10, XPPerAction: 10, ResourcePerAction: 1,
				AutomationUnlockLevel: 2,
				Drops:                 []content.DropEntry{{ItemID: "gem", Chance: 1, MinQty: 1, MaxQty: 1}},
				Variants: []content.VariantDef{
					{ID: "deep", RequiredLevel: 3, ResourceID: "deep_ore", TicksPerAction: 20, XPPerAction: 30},
				},
			},
			{ID: "logging", Kind: content.KindGathering, ResourceID: "wood", TicksPerAction: 4, XPPerAction: 5, ResourcePerAction: 1},
			{ID: "smithing", Kind: content.KindCrafting},
		},
		CombatSkills: []content.CombatSkillDef{{ID: "attack"}, {ID: "strength"}, {ID: "defense"}},
		Resources: []content.ResourceDef{
			{ID: "ore", Cap: 100},
			{ID: "deep_ore", Cap: 100},
			{ID: "wood", Cap: 1000},
			{ID: "bar", Cap: 5},
		},
		Items: []content.ItemDef{
			{ID: "gem"},
			{ID: "pebble"},
			{ID: "sword", Slot: SlotWeapon, Offense: 2, AttackIntervalMs: 500},
			{ID: "charm", Slot: "trinket", Bonus: &content.MultiplierDef{Target: core.TargetDrops, Type: "additive", Value: 1}},
		},
		Enemies: []content.EnemyDef{
			{ID: "dummy", HP: 10, AttackIntervalMs: 1_000_000, XP: 9, RequiredCombatLevel: 1},
			{ID: "brute", HP: 100, Offense: 50, AttackIntervalMs: 100, RequiredCombatLevel: 1},
			{ID: "elite", HP: 50, AttackIntervalMs: 1000, XP: 50, RequiredCombatLevel: 5},
		},
		Zones: []content.ZoneDef{
			{ID: "arena", RequiredCombatLevel: 1, Enemies: []string{"dummy", "brute", "elite"}},
		},
		Recipes: []content.RecipeDef{{
			ID: "smelt", SkillID: "smithing", RequiredLevel: 1, TicksPerCraft: 10, XP: 10,
			Inputs:         []content.Ingredient{{Resource: "ore", Quantity: 2}},
			Output:         content.Ingredient{Resource: "bar", Quantity: 1},
			Infrastructure: &content.Requirement{ID: "forge", Level: 1},
		}},
		Infrastructure: []content.InfrastructureDef{{
			ID: "forge", MaxLevel: 2,
			BaseCost: []content.Ingredient{{Resource: "wood", Quantity: 10}},
			CapBonus: []content.CapBonus{{Resource: "bar", PerLevel: 5}},
			Bonus:    &content.MultiplierDef{Target: "smithing", Type: "additive", Value: 0.1},
		}},
	}
	c.Index()
	if err := c.Validate(); err != nil {
		t.Fatalf("test catalog invalid: %v", err)
	}
	return c
}

// testBalance gives short curves and a 4-damage player hit.
func testBalance() config.Balance {
	b := config.DefaultBalance()
	b.XP.Skill = config.CurveConfig{Base: 100, Growth: 1.1, MaxLevel: 10}
	b.XP.Combat = config.CurveConfig{Base: 100, Growth: 1.1, MaxLevel: 10}
	b.Combat.BaseOffense = 3
	b.Combat.PlayerAttackIntervalMs = 1000
	b.Combat.HPRegenPerTick = 0
	b.Combat.DefaultAutoFight = false
	b.Offline.MaxMs = 10 * 60 * 1000
	b.Offline.ChunkMs = 60 * 1000
	return b
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	return New(testCatalog(t), testBalance())
}

func newState(e *Engine) core.GameState {
	return e.NewGame(42, 0)
}
