// Package config provides YAML-based balance configuration and environment
// settings for the simulation and its command line.
package config

// Balance holds every tunable constant the simulation reads.
type Balance struct {
	Tick          TickConfig         `yaml:"tick"`
	Offline       OfflineConfig      `yaml:"offline"`
	Combat        CombatConfig       `yaml:"combat"`
	XP            XPConfig           `yaml:"xp"`
	Skills        SkillsConfig       `yaml:"skills"`
	Notifications NotificationConfig `yaml:"notifications"`
	Bus           BusConfig          `yaml:"bus"`
	NewGame       NewGameConfig      `yaml:"new_game"`
}

// TickConfig defines the fixed time quantum.
type TickConfig struct {
	IntervalMs int64 `yaml:"interval_ms"` // Wall-clock ms per tick
}

// OfflineConfig bounds offline catch-up.
type OfflineConfig struct {
	MaxMs   int64 `yaml:"max_ms"`   // Longest offline window credited
	ChunkMs int64 `yaml:"chunk_ms"` // Replay step size, larger than the live tick
}

// CombatConfig defines combat constants.
type CombatConfig struct {
	MaxSteps               int     `yaml:"max_steps"`                 // Attack resolutions per call
	BaseHP                 int     `yaml:"base_hp"`
	HPPerDefenseLevel      int     `yaml:"hp_per_defense_level"`
	BaseOffense            int     `yaml:"base_offense"`
	PlayerAttackIntervalMs int64   `yaml:"player_attack_interval_ms"`
	HPRegenPerTick         float64 `yaml:"hp_regen_per_tick"`         // Out of combat only
	OffenseSkill           string  `yaml:"offense_skill"`
	DefenseSkill           string  `yaml:"defense_skill"`
	AccuracySkill          string  `yaml:"accuracy_skill"`
	AccuracyOffenseDivisor int     `yaml:"accuracy_offense_divisor"`  // accuracy level / divisor adds offense
	DefaultAutoFight       bool    `yaml:"default_auto_fight"`
	DefaultTrainingMode    string  `yaml:"default_training_mode"`
}

// CurveConfig is an exponential leveling curve.
// Cost of level L -> L+1 is floor(Base * Growth^(L-1)).
type CurveConfig struct {
	Base     float64 `yaml:"base"`
	Growth   float64 `yaml:"growth"`
	MaxLevel int     `yaml:"max_level"`
}

// XPConfig holds the leveling curves.
type XPConfig struct {
	Skill       CurveConfig `yaml:"skill"`
	Combat      CurveConfig `yaml:"combat"`
	Player      CurveConfig `yaml:"player"`
	PlayerShare float64     `yaml:"player_share"` // Fraction of skill XP mirrored to the player
}

// SkillsConfig defines level scaling for gathering and crafting.
type SkillsConfig struct {
	SpeedPerLevel      float64 `yaml:"speed_per_level"`
	EfficiencyPerLevel float64 `yaml:"efficiency_per_level"`
	AutomationRate     float64 `yaml:"automation_rate"` // Tick share for background automation
}

// NotificationConfig controls notification lifetime.
type NotificationConfig struct {
	TTLMs int64 `yaml:"ttl_ms"`
	Max   int   `yaml:"max"`
}

// BusConfig bounds a single dispatch cascade.
type BusConfig struct {
	MaxEvents int `yaml:"max_events"`
}

// NewGameConfig seeds a fresh save.
type NewGameConfig struct {
	BagSlots    int    `yaml:"bag_slots"`
	ActiveSkill string `yaml:"active_skill"`
}
