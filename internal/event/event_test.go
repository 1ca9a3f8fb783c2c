package event

import (
	"strings"
	"testing"
)

// all lists one value of every event type.
var all = []Event{
	SkillActionsCompleted{SkillID: "mining"},
	SkillLevelUp{SkillID: "mining", NewLevel: 2},
	PlayerLevelUp{NewLevel: 2},
	AutomationUnlocked{SkillID: "mining"},
	ResourceGained{ResourceID: "wood"},
	ItemDropped{ItemID: "gem"},
	ActionsPausedBagFull{Source: "mining"},
	CombatStarted{EnemyID: "rat"},
	CombatEnemyKilled{EnemyID: "rat"},
	CombatPlayerDied{EnemyID: "rat"},
	CombatEnded{Reason: EndFled},
	CombatSkillLevelUp{SkillID: "attack"},
	ItemCrafted{RecipeID: "r", ItemID: "sword"},
	CraftingAutomationStopped{RecipeID: "r"},
	InfrastructureUpgraded{InfrastructureID: "forge"},
	QuestProgress{QuestID: "q"},
	QuestCompleted{QuestID: "q"},
	AchievementUnlocked{AchievementID: "a"},
	OfflineProgressApplied{CappedMs: 10},
}

func TestTypesAreDistinct(t *testing.T) {
	seen := make(map[Type]bool)
	for _, e := range all {
		if seen[e.Type()] {
			t.Errorf("duplicate event type %s", e.Type())
		}
		seen[e.Type()] = true
	}
}

func TestDescribeCoversEveryType(t *testing.T) {
	for _, e := range all {
		got := Describe(e)
		if got == "" || got == string(e.Type()) {
			t.Errorf("Describe(%T) fell through to the default case: %q", e, got)
		}
	}
}

func TestDescribeCraftedResource(t *testing.T) {
	got := Describe(ItemCrafted{ResourceID: "bronze_bar", Quantity: 2})
	if !strings.Contains(got, "bronze_bar") {
		t.Errorf("Describe = %q, want resource name", got)
	}
}
