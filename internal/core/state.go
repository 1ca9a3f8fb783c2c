// Package core provides the game state value types shared by every part of
// the simulation. It contains no external dependencies so the simulation
// stays pure and testable.
package core

// MultiplierType selects how a multiplier combines with others on the same target.
type MultiplierType string

const (
	Additive       MultiplierType = "additive"
	Multiplicative MultiplierType = "multiplicative"
)

// Well-known multiplier targets besides skill ids.
const (
	TargetAllSkills     = "all_skills"
	TargetXP            = "xp"
	TargetDrops         = "drops"
	TargetCombatOffense = "combat_offense"
	TargetCombatDefense = "combat_defense"
)

// TrainingBalanced splits combat XP evenly across combat skills.
// Any other training mode is the id of the combat skill that receives all XP.
const TrainingBalanced = "balanced"

// GameState is the complete, serializable simulation snapshot.
// Processors never mutate a GameState they receive; they Clone it and return
// the copy.
type GameState struct {
	Player Player `json:"player"`

	Skills       map[string]SkillState `json:"skills"`
	ActiveSkill  string                `json:"activeSkill,omitempty"`
	CombatSkills map[string]SkillState `json:"combatSkills"`

	Resources map[string]Resource `json:"resources"`
	Inventory Bag                 `json:"inventory"`
	Equipment map[string]string   `json:"equipment"` // slot -> item id

	Combat       CombatSettings `json:"combat"`
	ActiveCombat *ActiveCombat  `json:"activeCombat,omitempty"`

	Multipliers []Multiplier `json:"multipliers"`

	Infrastructure     map[string]int     `json:"infrastructure"`
	CraftingAutomation CraftingAutomation `json:"craftingAutomation"`

	Quests        map[string]QuestProgress `json:"quests"`
	Achievements  map[string]bool          `json:"achievements"`
	Notifications []Notification           `json:"notifications"`
	Stats         Stats                    `json:"stats"`

	LastTickAt   int64  `json:"lastTickAt"`   // unix ms of the last processed tick
	LastActiveAt int64  `json:"lastActiveAt"` // unix ms the player was last present
	Seed         uint32 `json:"seed"`
}

// Player holds the character's vitals and overall level.
type Player struct {
	Level         int     `json:"level"`
	XP            int     `json:"xp"`
	CurrentHP     int     `json:"currentHp"`
	MaxHP         int     `json:"maxHp"`
	Deaths        int     `json:"deaths"`
	RegenProgress float64 `json:"regenProgress"` // fractional HP carried between ticks
}

// SkillState is the per-skill progress record.
// TickProgress carries fractional ticks between calls and is always below the
// skill's effective ticks per action after processing.
type SkillState struct {
	Level              int     `json:"level"`
	XP                 int     `json:"xp"`
	AutomationUnlocked bool    `json:"automationUnlocked"`
	AutomationEnabled  bool    `json:"automationEnabled"`
	TickProgress       float64 `json:"tickProgress"`
	ActiveVariant      string  `json:"activeVariant,omitempty"`
}

// Resource is a capped accumulator. A zero Cap means uncapped.
type Resource struct {
	Amount int `json:"amount"`
	Cap    int `json:"cap"`
}

// CombatSettings are the player's standing combat choices.
type CombatSettings struct {
	ZoneID         string            `json:"zoneId,omitempty"`
	TrainingMode   string            `json:"trainingMode"`
	AutoFight      bool              `json:"autoFight"`
	PreferredEnemy map[string]string `json:"preferredEnemy"` // zone id -> enemy id
}

// ActiveCombat is a live encounter. Attack timestamps are absolute unix ms on
// the same clock as GameState.LastTickAt.
type ActiveCombat struct {
	ZoneID             string `json:"zoneId"`
	EnemyID            string `json:"enemyId"`
	EnemyCurrentHP     int    `json:"enemyCurrentHp"`
	PlayerNextAttackAt int64  `json:"playerNextAttackAt"`
	EnemyNextAttackAt  int64  `json:"enemyNextAttackAt"`
}

// Multiplier is one named bonus. Multipliers are keyed by ID.
type Multiplier struct {
	ID     string         `json:"id"`
	Source string         `json:"source"`
	Target string         `json:"target"`
	Type   MultiplierType `json:"type"`
	Value  float64        `json:"value"`
}

// CraftingAutomation configures the repeating craft loop.
type CraftingAutomation struct {
	RecipeID     string  `json:"recipeId,omitempty"`
	Quantity     int     `json:"quantity"` // crafts attempted per completed interval
	Enabled      bool    `json:"enabled"`
	Stalled      bool    `json:"stalled"` // last attempt failed; cleared by the next craft
	TickProgress float64 `json:"tickProgress"`
}

// QuestProgress tracks one quest's objective counter.
type QuestProgress struct {
	Progress  int  `json:"progress"`
	Completed bool `json:"completed"`
}

// Notification is a user-facing message. It is visible until ExpiresAt.
type Notification struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	CreatedAt int64  `json:"createdAt"`
	ExpiresAt int64  `json:"expiresAt"`
}

// Stats are lifetime counters read by quests and achievements.
type Stats struct {
	EnemiesKilled        int `json:"enemiesKilled"`
	ActionsCompleted     int `json:"actionsCompleted"`
	ItemsCrafted         int `json:"itemsCrafted"`
	ItemsDropped         int `json:"itemsDropped"`
	QuestsCompleted      int `json:"questsCompleted"`
	AchievementsUnlocked int `json:"achievementsUnlocked"`
}

// Skill returns the state of a gathering/crafting skill and whether it exists.
func (s GameState) Skill(id string) (SkillState, bool) {
	sk, ok := s.Skills[id]
	return sk, ok
}

// CombatSkillLevel returns a combat skill's level, defaulting to 1.
func (s GameState) CombatSkillLevel(id string) int {
	if sk, ok := s.CombatSkills[id]; ok && sk.Level > 0 {
		return sk.Level
	}
	return 1
}

// TotalSkillLevel sums every skill and combat skill level.
func (s GameState) TotalSkillLevel() int {
	total := 0
	for _, sk := range s.Skills {
		total += sk.Level
	}
	for _, sk := range s.CombatSkills {
		total += sk.Level
	}
	return total
}

// InCombat reports whether an encounter is live.
func (s GameState) InCombat() bool {
	return s.ActiveCombat != nil
}
