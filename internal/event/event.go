// Package event defines the closed set of game events the simulation emits.
// Events are transient: they are handed to the event bus and never stored in
// the game state.
package event

// Type identifies an event kind for bus routing.
type Type string

const (
	TypeSkillActionsCompleted     Type = "SKILL_ACTIONS_COMPLETED"
	TypeSkillLevelUp              Type = "SKILL_LEVEL_UP"
	TypePlayerLevelUp             Type = "PLAYER_LEVEL_UP"
	TypeAutomationUnlocked        Type = "AUTOMATION_UNLOCKED"
	TypeResourceGained            Type = "RESOURCE_GAINED"
	TypeItemDropped               Type = "ITEM_DROPPED"
	TypeActionsPausedBagFull      Type = "ACTIONS_PAUSED_BAG_FULL"
	TypeCombatStarted             Type = "COMBAT_STARTED"
	TypeCombatEnemyKilled         Type = "COMBAT_ENEMY_KILLED"
	TypeCombatPlayerDied          Type = "COMBAT_PLAYER_DIED"
	TypeCombatEnded               Type = "COMBAT_ENDED"
	TypeCombatSkillLevelUp        Type = "COMBAT_SKILL_LEVEL_UP"
	TypeItemCrafted               Type = "ITEM_CRAFTED"
	TypeCraftingAutomationStopped Type = "CRAFTING_AUTOMATION_STOPPED"
	TypeInfrastructureUpgraded    Type = "INFRASTRUCTURE_UPGRADED"
	TypeQuestProgress             Type = "QUEST_PROGRESS"
	TypeQuestCompleted            Type = "QUEST_COMPLETED"
	TypeAchievementUnlocked       Type = "ACHIEVEMENT_UNLOCKED"
	TypeOfflineProgressApplied    Type = "OFFLINE_PROGRESS_APPLIED"
)

// Event is implemented only by the types in this package.
type Event interface {
	Type() Type
	gameEvent()
}

// SkillActionsCompleted reports a batch of completed skill actions.
type SkillActionsCompleted struct {
	SkillID    string
	Actions    int
	XP         int
	ResourceID string
	Resource   int // Amount actually added to the ledger
}

// SkillLevelUp is emitted when a gathering or crafting skill levels.
type SkillLevelUp struct {
	SkillID      string
	NewLevel     int
	LevelsGained int
}

// PlayerLevelUp is emitted when the player's overall level rises.
type PlayerLevelUp struct {
	NewLevel     int
	LevelsGained int
}

// AutomationUnlocked is emitted once per skill when automation becomes available.
type AutomationUnlocked struct {
	SkillID string
}

// ResourceGained reports resources added outside a skill action (rewards).
type ResourceGained struct {
	ResourceID string
	Amount     int
	Source     string
}

// ItemDropped reports an item placed in the bag.
type ItemDropped struct {
	ItemID   string
	Quantity int
	Source   string // Skill or enemy id
}

// ActionsPausedBagFull is emitted instead of drop rolls when the bag is full.
type ActionsPausedBagFull struct {
	Source string // Skill or enemy id
}

// CombatStarted is emitted when an encounter begins, including auto-fight
// continuations.
type CombatStarted struct {
	ZoneID  string
	EnemyID string
	At      int64
}

// CombatEnemyKilled is emitted exactly once per defeated enemy.
type CombatEnemyKilled struct {
	ZoneID  string
	EnemyID string
	XP      int
	At      int64
}

// CombatPlayerDied is emitted when the player's HP reaches zero.
type CombatPlayerDied struct {
	ZoneID  string
	EnemyID string
	At      int64
}

// EndReason says why an encounter stopped.
type EndReason string

const (
	EndEnemyDefeated EndReason = "enemy_defeated"
	EndPlayerDied    EndReason = "player_died"
	EndFled          EndReason = "fled"
	EndUnknownEnemy  EndReason = "unknown_enemy"
	EndNoEnemy       EndReason = "no_eligible_enemy"
)

// CombatEnded is emitted when the session is destroyed.
type CombatEnded struct {
	ZoneID string
	Reason EndReason
	At     int64
}

// CombatSkillLevelUp is emitted when a combat skill levels.
type CombatSkillLevelUp struct {
	SkillID      string
	NewLevel     int
	LevelsGained int
}

// ItemCrafted reports one successful craft.
type ItemCrafted struct {
	RecipeID   string
	ResourceID string
	ItemID     string
	Quantity   int
	Automated  bool
}

// CraftingAutomationStopped is emitted when automation halts on a failed craft.
type CraftingAutomationStopped struct {
	RecipeID string
	Reason   string
}

// InfrastructureUpgraded reports a building level change.
type InfrastructureUpgraded struct {
	InfrastructureID string
	NewLevel         int
}

// QuestProgress reports a quest counter change.
type QuestProgress struct {
	QuestID  string
	Progress int
	Target   int
}

// QuestCompleted is emitted once per quest.
type QuestCompleted struct {
	QuestID string
}

// AchievementUnlocked is emitted once per achievement.
type AchievementUnlocked struct {
	AchievementID string
}

// OfflineProgressApplied summarizes a catch-up replay.
type OfflineProgressApplied struct {
	ElapsedMs int64
	CappedMs  int64
	WasCapped bool
}

func (SkillActionsCompleted) Type() Type     { return TypeSkillActionsCompleted }
func (SkillLevelUp) Type() Type              { return TypeSkillLevelUp }
func (PlayerLevelUp) Type() Type             { return TypePlayerLevelUp }
func (AutomationUnlocked) Type() Type        { return TypeAutomationUnlocked }
func (ResourceGained) Type() Type            { return TypeResourceGained }
func (ItemDropped) Type() Type               { return TypeItemDropped }
func (ActionsPausedBagFull) Type() Type      { return TypeActionsPausedBagFull }
func (CombatStarted) Type() Type             { return TypeCombatStarted }
func (CombatEnemyKilled) Type() Type         { return TypeCombatEnemyKilled }
func (CombatPlayerDied) Type() Type          { return TypeCombatPlayerDied }
func (CombatEnded) Type() Type               { return TypeCombatEnded }
func (CombatSkillLevelUp) Type() Type        { return TypeCombatSkillLevelUp }
func (ItemCrafted) Type() Type               { return TypeItemCrafted }
func (CraftingAutomationStopped) Type() Type { return TypeCraftingAutomationStopped }
func (InfrastructureUpgraded) Type() Type    { return TypeInfrastructureUpgraded }
func (QuestProgress) Type() Type             { return TypeQuestProgress }
func (QuestCompleted) Type() Type            { return TypeQuestCompleted }
func (AchievementUnlocked) Type() Type       { return TypeAchievementUnlocked }
func (OfflineProgressApplied) Type() Type    { return TypeOfflineProgressApplied }

func (SkillActionsCompleted) gameEvent()     {}
func (SkillLevelUp) gameEvent()              {}
func (PlayerLevelUp) gameEvent()             {}
func (AutomationUnlocked) gameEvent()        {}
func (ResourceGained) gameEvent()            {}
func (ItemDropped) gameEvent()               {}
func (ActionsPausedBagFull) gameEvent()      {}
func (CombatStarted) gameEvent()             {}
func (CombatEnemyKilled) gameEvent()         {}
func (CombatPlayerDied) gameEvent()          {}
func (CombatEnded) gameEvent()               {}
func (CombatSkillLevelUp) gameEvent()        {}
func (ItemCrafted) gameEvent()               {}
func (CraftingAutomationStopped) gameEvent() {}
func (InfrastructureUpgraded) gameEvent()    {}
func (QuestProgress) gameEvent()             {}
func (QuestCompleted) gameEvent()            {}
func (AchievementUnlocked) gameEvent()       {}
func (OfflineProgressApplied) gameEvent()    {}
