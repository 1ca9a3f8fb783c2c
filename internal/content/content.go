// Package content holds the static, immutable definition tables the
// simulation reads: skills, items, resources, enemies, zones, recipes,
// infrastructure, quests and achievements. Tables are authored as YAML and
// indexed by string id. Lookups against unknown ids report !ok and never panic.
package content

// SkillKind distinguishes skills the tick processor trains directly from
// skills that only advance through crafting.
type SkillKind string

const (
	KindGathering SkillKind = "gathering"
	KindCrafting  SkillKind = "crafting"
)

// Catalog is the full set of definition tables.
// Slices keep authoring order, which several rules depend on (automated
// skill processing, balanced XP remainder, default enemy selection).
type Catalog struct {
	Skills         []SkillDef          `yaml:"skills"`
	CombatSkills   []CombatSkillDef    `yaml:"combat_skills"`
	Resources      []ResourceDef       `yaml:"resources"`
	Items          []ItemDef           `yaml:"items"`
	Enemies        []EnemyDef          `yaml:"enemies"`
	Zones          []ZoneDef           `yaml:"zones"`
	Recipes        []RecipeDef         `yaml:"recipes"`
	Infrastructure []InfrastructureDef `yaml:"infrastructure"`
	Quests         []QuestDef          `yaml:"quests"`
	Achievements   []AchievementDef    `yaml:"achievements"`

	skills         map[string]int
	combatSkills   map[string]int
	resources      map[string]int
	items          map[string]int
	enemies        map[string]int
	zones          map[string]int
	recipes        map[string]int
	infrastructure map[string]int
	quests         map[string]int
	achievements   map[string]int
}

// SkillDef defines a gathering or crafting skill.
type SkillDef struct {
	ID                    string       `yaml:"id"`
	Name                  string       `yaml:"name"`
	Kind                  SkillKind    `yaml:"kind"`
	ResourceID            string       `yaml:"resource"`
	TicksPerAction        float64      `yaml:"ticks_per_action"`
	XPPerAction           float64      `yaml:"xp_per_action"`
	ResourcePerAction     float64      `yaml:"resource_per_action"`
	AutomationUnlockLevel int          `yaml:"automation_unlock_level"`
	Drops                 []DropEntry  `yaml:"drops"`
	Variants              []VariantDef `yaml:"variants"`
}

// VariantDef is a tiered node of a gathering skill. Its parameters replace the
// skill's once the player's level meets RequiredLevel. Zero fields inherit the
// skill's value.
type VariantDef struct {
	ID                string  `yaml:"id"`
	Name              string  `yaml:"name"`
	RequiredLevel     int     `yaml:"required_level"`
	ResourceID        string  `yaml:"resource"`
	TicksPerAction    float64 `yaml:"ticks_per_action"`
	XPPerAction       float64 `yaml:"xp_per_action"`
	ResourcePerAction float64 `yaml:"resource_per_action"`
}

// DropEntry is one roll of a drop table.
type DropEntry struct {
	ItemID   string  `yaml:"item"`
	Chance   float64 `yaml:"chance"`
	MinQty   int     `yaml:"min"`
	MaxQty   int     `yaml:"max"`
	MinLevel int     `yaml:"min_level"`
}

// CombatSkillDef names a combat skill. Order is the balanced-split order.
type CombatSkillDef struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// ResourceDef defines a capped resource ledger.
type ResourceDef struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Cap  int    `yaml:"cap"` // 0 is uncapped
}

// MultiplierDef is a bonus granted by an item, building, quest or achievement.
type MultiplierDef struct {
	Target string  `yaml:"target"`
	Type   string  `yaml:"type"`
	Value  float64 `yaml:"value"`
}

// ItemDef defines an item. Items with a Slot can be equipped.
type ItemDef struct {
	ID               string         `yaml:"id"`
	Name             string         `yaml:"name"`
	Slot             string         `yaml:"slot"`
	Offense          int            `yaml:"offense"`
	Defense          int            `yaml:"defense"`
	AttackIntervalMs int64          `yaml:"attack_interval_ms"`
	Bonus            *MultiplierDef `yaml:"bonus"`
}

// EnemyDef defines an enemy.
type EnemyDef struct {
	ID                  string      `yaml:"id"`
	Name                string      `yaml:"name"`
	HP                  int         `yaml:"hp"`
	Offense             int         `yaml:"offense"`
	Defense             int         `yaml:"defense"`
	AttackIntervalMs    int64       `yaml:"attack_interval_ms"`
	XP                  int         `yaml:"xp"`
	RequiredCombatLevel int         `yaml:"required_combat_level"`
	Drops               []DropEntry `yaml:"drops"`
}

// ZoneDef groups enemies. Enemy order is the default selection order.
type ZoneDef struct {
	ID                  string   `yaml:"id"`
	Name                string   `yaml:"name"`
	RequiredCombatLevel int      `yaml:"required_combat_level"`
	Enemies             []string `yaml:"enemies"`
}

// Ingredient is a quantity of a resource or an item.
type Ingredient struct {
	Resource string `yaml:"resource"`
	Item     string `yaml:"item"`
	Quantity int    `yaml:"quantity"`
}

// Requirement is a minimum infrastructure level.
type Requirement struct {
	ID    string `yaml:"id"`
	Level int    `yaml:"level"`
}

// RecipeDef defines a craft.
type RecipeDef struct {
	ID             string       `yaml:"id"`
	Name           string       `yaml:"name"`
	SkillID        string       `yaml:"skill"`
	RequiredLevel  int          `yaml:"required_level"`
	TicksPerCraft  float64      `yaml:"ticks_per_craft"`
	XP             int          `yaml:"xp"`
	Inputs         []Ingredient `yaml:"inputs"`
	Output         Ingredient   `yaml:"output"`
	Infrastructure *Requirement `yaml:"infrastructure"`
}

// CapBonus raises a resource cap per infrastructure level.
type CapBonus struct {
	Resource string `yaml:"resource"`
	PerLevel int    `yaml:"per_level"`
}

// InfrastructureDef defines an upgradable building.
// Upgrading to level L costs each BaseCost quantity times L.
type InfrastructureDef struct {
	ID       string         `yaml:"id"`
	Name     string         `yaml:"name"`
	MaxLevel int            `yaml:"max_level"`
	BaseCost []Ingredient   `yaml:"base_cost"`
	CapBonus []CapBonus     `yaml:"cap_bonus"`
	Bonus    *MultiplierDef `yaml:"bonus"` // Value is per level
}

// ObjectiveKind enumerates quest objective types.
type ObjectiveKind string

const (
	ObjectiveKill   ObjectiveKind = "kill"   // Target enemy id, empty for any
	ObjectiveGather ObjectiveKind = "gather" // Target resource id
	ObjectiveCraft  ObjectiveKind = "craft"  // Target recipe id, empty for any
	ObjectiveLevel  ObjectiveKind = "level"  // Target skill id reaches Count
)

// Objective is what a quest counts.
type Objective struct {
	Kind   ObjectiveKind `yaml:"kind"`
	Target string        `yaml:"target"`
	Count  int           `yaml:"count"`
}

// Reward is granted once when a quest completes.
type Reward struct {
	PlayerXP   int            `yaml:"player_xp"`
	Resources  []Ingredient   `yaml:"resources"`
	Items      []Ingredient   `yaml:"items"`
	Multiplier *MultiplierDef `yaml:"multiplier"`
}

// QuestDef defines a quest. A quest only progresses once every quest in
// Requires is completed.
type QuestDef struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	Objective Objective `yaml:"objective"`
	Reward    Reward    `yaml:"reward"`
	Requires  []string  `yaml:"requires"`
}

// ConditionKind enumerates achievement condition types.
type ConditionKind string

const (
	ConditionQuestsCompleted ConditionKind = "quests_completed"
	ConditionEnemiesKilled   ConditionKind = "enemies_killed"
	ConditionSkillLevel      ConditionKind = "skill_level" // Target skill id
	ConditionTotalLevel      ConditionKind = "total_level"
	ConditionItemsCrafted    ConditionKind = "items_crafted"
	ConditionDeaths          ConditionKind = "deaths"
)

// Condition is an achievement threshold.
type Condition struct {
	Kind   ConditionKind `yaml:"kind"`
	Target string        `yaml:"target"`
	Value  int           `yaml:"value"`
}

// AchievementDef defines an achievement.
type AchievementDef struct {
	ID        string         `yaml:"id"`
	Name      string         `yaml:"name"`
	Condition Condition      `yaml:"condition"`
	Reward    *MultiplierDef `yaml:"reward"`
}
