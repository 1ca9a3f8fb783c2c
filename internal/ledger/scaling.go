package ledger

import "github.com/Slepzs/oizys-keres/internal/config"

// SpeedMultiplier divides a skill's base ticks per action.
func SpeedMultiplier(cfg config.SkillsConfig, level int) float64 {
	return 1 + float64(max(0, level-1))*cfg.SpeedPerLevel
}

// EfficiencyMultiplier scales a skill's resource yield per action.
func EfficiencyMultiplier(cfg config.SkillsConfig, level int) float64 {
	return 1 + float64(max(0, level-1))*cfg.EfficiencyPerLevel
}
