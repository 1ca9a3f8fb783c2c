package config

import (
	_ "embed"
)

//go:embed defaults/balance.yaml
var defaultBalanceYAML []byte

// DefaultBalance returns the hardcoded balance used when no YAML can be read.
func DefaultBalance() Balance {
	return Balance{
		Tick: TickConfig{
			IntervalMs: 100,
		},
		Offline: OfflineConfig{
			MaxMs:   12 * 60 * 60 * 1000,
			ChunkMs: 60 * 1000,
		},
		Combat: CombatConfig{
			MaxSteps:               10000,
			BaseHP:                 10,
			HPPerDefenseLevel:      5,
			BaseOffense:            1,
			PlayerAttackIntervalMs: 2400,
			HPRegenPerTick:         0.05,
			OffenseSkill:           "strength",
			DefenseSkill:           "defense",
			AccuracySkill:          "attack",
			AccuracyOffenseDivisor: 2,
			DefaultAutoFight:       true,
			DefaultTrainingMode:    "balanced",
		},
		XP: XPConfig{
			Skill:       CurveConfig{Base: 100, Growth: 1.1, MaxLevel: 99},
			Combat:      CurveConfig{Base: 100, Growth: 1.1, MaxLevel: 99},
			Player:      CurveConfig{Base: 250, Growth: 1.12, MaxLevel: 100},
			PlayerShare: 0.1,
		},
		Skills: SkillsConfig{
			SpeedPerLevel:      0.01,
			EfficiencyPerLevel: 0.02,
			AutomationRate:     0.5,
		},
		Notifications: NotificationConfig{
			TTLMs: 8000,
			Max:   50,
		},
		Bus: BusConfig{
			MaxEvents: 10000,
		},
		NewGame: NewGameConfig{
			BagSlots:    24,
			ActiveSkill: "woodcutting",
		},
	}
}

// DefaultBalanceYAML returns the embedded default balance file.
func DefaultBalanceYAML() []byte {
	return defaultBalanceYAML
}
