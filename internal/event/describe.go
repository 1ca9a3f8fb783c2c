package event

import "fmt"

// Describe returns a short human-readable line for an event.
func Describe(e Event) string {
	switch e := e.(type) {
	case SkillActionsCompleted:
		return fmt.Sprintf("%s: %d actions, +%d xp, +%d %s", e.SkillID, e.Actions, e.XP, e.Resource, e.ResourceID)
	case SkillLevelUp:
		return fmt.Sprintf("%s reached level %d", e.SkillID, e.NewLevel)
	case PlayerLevelUp:
		return fmt.Sprintf("You reached level %d", e.NewLevel)
	case AutomationUnlocked:
		return fmt.Sprintf("Automation unlocked for %s", e.SkillID)
	case ResourceGained:
		return fmt.Sprintf("+%d %s from %s", e.Amount, e.ResourceID, e.Source)
	case ItemDropped:
		return fmt.Sprintf("Found %d x %s (%s)", e.Quantity, e.ItemID, e.Source)
	case ActionsPausedBagFull:
		return fmt.Sprintf("Bag full: %s drops paused", e.Source)
	case CombatStarted:
		return fmt.Sprintf("Fighting %s in %s", e.EnemyID, e.ZoneID)
	case CombatEnemyKilled:
		return fmt.Sprintf("Defeated %s (+%d xp)", e.EnemyID, e.XP)
	case CombatPlayerDied:
		return fmt.Sprintf("You were defeated by %s", e.EnemyID)
	case CombatEnded:
		return fmt.Sprintf("Combat ended: %s", e.Reason)
	case CombatSkillLevelUp:
		return fmt.Sprintf("%s reached level %d", e.SkillID, e.NewLevel)
	case ItemCrafted:
		out := e.ItemID
		if out == "" {
			out = e.ResourceID
		}
		return fmt.Sprintf("Crafted %d x %s", e.Quantity, out)
	case CraftingAutomationStopped:
		return fmt.Sprintf("Crafting %s stopped: %s", e.RecipeID, e.Reason)
	case InfrastructureUpgraded:
		return fmt.Sprintf("%s upgraded to level %d", e.InfrastructureID, e.NewLevel)
	case QuestProgress:
		return fmt.Sprintf("Quest %s: %d/%d", e.QuestID, e.Progress, e.Target)
	case QuestCompleted:
		return fmt.Sprintf("Quest complete: %s", e.QuestID)
	case AchievementUnlocked:
		return fmt.Sprintf("Achievement unlocked: %s", e.AchievementID)
	case OfflineProgressApplied:
		return fmt.Sprintf("Caught up %d ms offline", e.CappedMs)
	default:
		return string(e.Type())
	}
}
