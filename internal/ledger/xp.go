// Package ledger implements leveling arithmetic: XP curves, multi-level
// application of gained XP, and the level-scaled speed and efficiency factors
// that skills use.
package ledger

import (
	"math"

	"github.com/Slepzs/oizys-keres/internal/config"
)

// Result describes the outcome of applying XP.
type Result struct {
	NewXP        int
	NewLevel     int
	LeveledUp    bool
	LevelsGained int
}

// XPForLevel returns the XP needed to advance from level to level+1.
func XPForLevel(curve config.CurveConfig, level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(curve.Base * math.Pow(curve.Growth, float64(level-1))))
}

// AddXP applies gained XP at the given level, crossing as many level
// boundaries as the XP pays for. Reaching the curve's max level clamps the
// level and discards leftover XP.
func AddXP(curve config.CurveConfig, level, xp, gained int) Result {
	if level < 1 {
		level = 1
	}
	start := level
	if curve.MaxLevel > 0 && level >= curve.MaxLevel {
		return Result{NewXP: 0, NewLevel: curve.MaxLevel}
	}

	xp += max(0, gained)
	for {
		cost := XPForLevel(curve, level)
		if cost <= 0 || xp < cost {
			break
		}
		xp -= cost
		level++
		if curve.MaxLevel > 0 && level >= curve.MaxLevel {
			level = curve.MaxLevel
			xp = 0
			break
		}
	}

	return Result{
		NewXP:        xp,
		NewLevel:     level,
		LeveledUp:    level > start,
		LevelsGained: level - start,
	}
}

// AddSkillXP applies XP on the gathering/crafting skill curve.
func AddSkillXP(cfg config.XPConfig, level, xp, gained int) Result {
	return AddXP(cfg.Skill, level, xp, gained)
}

// AddCombatXP applies XP on the combat skill curve.
func AddCombatXP(cfg config.XPConfig, level, xp, gained int) Result {
	return AddXP(cfg.Combat, level, xp, gained)
}

// AddPlayerXP applies XP on the player curve.
func AddPlayerXP(cfg config.XPConfig, level, xp, gained int) Result {
	return AddXP(cfg.Player, level, xp, gained)
}

// Progress returns how far xp is toward the next level, in [0, 1].
func Progress(curve config.CurveConfig, level, xp int) float64 {
	if curve.MaxLevel > 0 && level >= curve.MaxLevel {
		return 1
	}
	cost := XPForLevel(curve, level)
	if cost <= 0 {
		return 0
	}
	return math.Min(1, float64(xp)/float64(cost))
}

// PlayerShare returns the part of gained skill XP mirrored to the player.
func PlayerShare(cfg config.XPConfig, gained int) int {
	return int(math.Floor(float64(gained) * cfg.PlayerShare))
}
