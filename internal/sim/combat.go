package sim

import (
	"math"
	"slices"

	"github.com/Slepzs/oizys-keres/internal/content"
	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/event"
	"github.com/Slepzs/oizys-keres/internal/ledger"
	"github.com/Slepzs/oizys-keres/internal/multiplier"
)

// SlotWeapon is the equipment slot whose item sets the attack interval.
const SlotWeapon = "weapon"

// Damage returns the damage of one hit. It is never below 1.
func Damage(offense, defense int) int {
	return max(1, offense-defense)
}

// CombatLevel is the floored average of the combat skill levels.
func (e *Engine) CombatLevel(s core.GameState) int {
	if len(e.Catalog.CombatSkills) == 0 {
		return 1
	}
	total := 0
	for _, cs := range e.Catalog.CombatSkills {
		total += s.CombatSkillLevel(cs.ID)
	}
	return max(1, total/len(e.Catalog.CombatSkills))
}

// MaxHP derives the player's maximum HP from the defense skill.
func (e *Engine) MaxHP(s core.GameState) int {
	cfg := e.Balance.Combat
	return cfg.BaseHP + s.CombatSkillLevel(cfg.DefenseSkill)*cfg.HPPerDefenseLevel
}

// equipmentStats sums flat offense and defense from equipped items.
func (e *Engine) equipmentStats(s core.GameState) (offense, defense int) {
	for _, id := range s.Equipment {
		if it, ok := e.Catalog.Item(id); ok {
			offense += it.Offense
			defense += it.Defense
		}
	}
	return offense, defense
}

// PlayerOffense is the player's effective offense.
func (e *Engine) PlayerOffense(s core.GameState) int {
	cfg := e.Balance.Combat
	equip, _ := e.equipmentStats(s)
	base := cfg.BaseOffense + s.CombatSkillLevel(cfg.OffenseSkill) + equip
	if cfg.AccuracyOffenseDivisor > 0 {
		base += s.CombatSkillLevel(cfg.AccuracySkill) / cfg.AccuracyOffenseDivisor
	}
	return int(math.Floor(float64(base) * multiplier.Effective(s, core.TargetCombatOffense)))
}

// PlayerDefense is the player's effective defense.
func (e *Engine) PlayerDefense(s core.GameState) int {
	_, equip := e.equipmentStats(s)
	base := s.CombatSkillLevel(e.Balance.Combat.DefenseSkill) + equip
	return int(math.Floor(float64(base) * multiplier.Effective(s, core.TargetCombatDefense)))
}

// PlayerAttackInterval is the time between player attacks in ms. An equipped
// weapon with its own interval overrides the default.
func (e *Engine) PlayerAttackInterval(s core.GameState) int64 {
	if id, ok := s.Equipment[SlotWeapon]; ok {
		if it, ok := e.Catalog.Item(id); ok && it.AttackIntervalMs > 0 {
			return it.AttackIntervalMs
		}
	}
	return max(1, e.Balance.Combat.PlayerAttackIntervalMs)
}

// eligible reports whether the player may fight enemy.
func (e *Engine) eligible(s core.GameState, enemy content.EnemyDef) bool {
	return e.CombatLevel(s) >= enemy.RequiredCombatLevel
}

// SelectEnemy picks the enemy to fight in a zone: the zone's preferred enemy
// when it is still eligible, otherwise the first enemy in zone order the
// player's combat level qualifies for.
func (e *Engine) SelectEnemy(s core.GameState, zoneID string) (string, bool) {
	zone, ok := e.Catalog.Zone(zoneID)
	if !ok {
		return "", false
	}
	if pref := s.Combat.PreferredEnemy[zoneID]; pref != "" && slices.Contains(zone.Enemies, pref) {
		if enemy, ok := e.Catalog.Enemy(pref); ok && e.eligible(s, enemy) {
			return pref, true
		}
	}
	for _, id := range zone.Enemies {
		if enemy, ok := e.Catalog.Enemy(id); ok && e.eligible(s, enemy) {
			return id, true
		}
	}
	return "", false
}

// encounter creates a fresh session against enemy with both attack clocks
// anchored at now.
func (e *Engine) encounter(s core.GameState, zoneID string, enemy content.EnemyDef, now int64) *core.ActiveCombat {
	return &core.ActiveCombat{
		ZoneID:             zoneID,
		EnemyID:            enemy.ID,
		EnemyCurrentHP:     enemy.HP,
		PlayerNextAttackAt: now + e.PlayerAttackInterval(s),
		EnemyNextAttackAt:  now + max(1, enemy.AttackIntervalMs),
	}
}

// ProcessCombatTick resolves every attack due by now, bounded by the step
// cap. Outside combat it regenerates HP for the elapsed ticks.
func (e *Engine) ProcessCombatTick(state core.GameState, now int64, ticks float64) TickResult {
	if state.ActiveCombat == nil {
		return e.regenerate(state, ticks)
	}

	next := state.Clone()
	ac := next.ActiveCombat
	enemy, found := e.Catalog.Enemy(ac.EnemyID)
	if _, zoneFound := e.Catalog.Zone(ac.ZoneID); !found || !zoneFound {
		next.ActiveCombat = nil
		return TickResult{State: next, Events: []event.Event{
			event.CombatEnded{ZoneID: ac.ZoneID, Reason: event.EndUnknownEnemy, At: now},
		}}
	}

	var events []event.Event
	for step := 0; step < e.Balance.Combat.MaxSteps && next.ActiveCombat != nil; step++ {
		ac = next.ActiveCombat
		at := min(ac.PlayerNextAttackAt, ac.EnemyNextAttackAt)
		if at > now {
			break
		}

		if ac.PlayerNextAttackAt <= ac.EnemyNextAttackAt {
			ac.EnemyCurrentHP -= Damage(e.PlayerOffense(next), enemy.Defense)
			ac.PlayerNextAttackAt += e.PlayerAttackInterval(next)
			if ac.EnemyCurrentHP <= 0 {
				events = e.enemyKilled(&next, enemy, at, events)
				if next.ActiveCombat != nil {
					enemy, _ = e.Catalog.Enemy(next.ActiveCombat.EnemyID)
				}
			}
			continue
		}

		next.Player.CurrentHP -= Damage(enemy.Offense, e.PlayerDefense(next))
		ac.EnemyNextAttackAt += max(1, enemy.AttackIntervalMs)
		if next.Player.CurrentHP <= 0 {
			events = e.playerDied(&next, enemy, at, events)
		}
	}

	return TickResult{State: next, Events: events}
}

// enemyKilled awards the kill and either ends the session or queues the next
// enemy when auto-fight is on.
func (e *Engine) enemyKilled(next *core.GameState, enemy content.EnemyDef, at int64, events []event.Event) []event.Event {
	zoneID := next.ActiveCombat.ZoneID
	events = append(events, event.CombatEnemyKilled{ZoneID: zoneID, EnemyID: enemy.ID, XP: enemy.XP, At: at})

	events = e.distributeCombatXP(next, enemy.XP, events)
	events = e.grantPlayerXP(next, ledger.PlayerShare(e.Balance.XP, enemy.XP), events)

	next.Player.MaxHP = e.MaxHP(*next)
	next.Player.CurrentHP = min(next.Player.CurrentHP, next.Player.MaxHP)

	if !next.Combat.AutoFight {
		next.ActiveCombat = nil
		return append(events, event.CombatEnded{ZoneID: zoneID, Reason: event.EndEnemyDefeated, At: at})
	}

	nextID, ok := e.SelectEnemy(*next, zoneID)
	if !ok {
		next.ActiveCombat = nil
		return append(events, event.CombatEnded{ZoneID: zoneID, Reason: event.EndNoEnemy, At: at})
	}
	nextEnemy, _ := e.Catalog.Enemy(nextID)
	next.ActiveCombat = e.encounter(*next, zoneID, nextEnemy, at)
	return append(events, event.CombatStarted{ZoneID: zoneID, EnemyID: nextID, At: at})
}

// playerDied heals the player and ends the session.
func (e *Engine) playerDied(next *core.GameState, enemy content.EnemyDef, at int64, events []event.Event) []event.Event {
	zoneID := next.ActiveCombat.ZoneID
	next.Player.Deaths++
	next.Player.MaxHP = e.MaxHP(*next)
	next.Player.CurrentHP = next.Player.MaxHP
	next.Player.RegenProgress = 0
	next.ActiveCombat = nil
	return append(events,
		event.CombatPlayerDied{ZoneID: zoneID, EnemyID: enemy.ID, At: at},
		event.CombatEnded{ZoneID: zoneID, Reason: event.EndPlayerDied, At: at},
	)
}

// distributeCombatXP splits xp across combat skills by training mode.
// Balanced mode gives every skill an equal share and hands the remainder out
// one point per skill in definition order. A mode naming a combat skill gives
// that skill everything.
func (e *Engine) distributeCombatXP(next *core.GameState, xp int, events []event.Event) []event.Event {
	skills := e.Catalog.CombatSkills
	if xp <= 0 || len(skills) == 0 {
		return events
	}

	shares := make([]int, len(skills))
	target := slices.IndexFunc(skills, func(cs content.CombatSkillDef) bool { return cs.ID == next.Combat.TrainingMode })
	if target >= 0 {
		shares[target] = xp
	} else {
		each, rem := xp/len(skills), xp%len(skills)
		for i := range shares {
			shares[i] = each
			if i < rem {
				shares[i]++
			}
		}
	}

	for i, cs := range skills {
		if shares[i] == 0 {
			continue
		}
		sk := next.CombatSkills[cs.ID]
		res := ledger.AddCombatXP(e.Balance.XP, max(1, sk.Level), sk.XP, shares[i])
		sk.Level = res.NewLevel
		sk.XP = res.NewXP
		next.CombatSkills[cs.ID] = sk
		if res.LeveledUp {
			events = append(events, event.CombatSkillLevelUp{SkillID: cs.ID, NewLevel: res.NewLevel, LevelsGained: res.LevelsGained})
		}
	}
	return events
}

// regenerate heals the player out of combat, carrying fractional HP.
func (e *Engine) regenerate(state core.GameState, ticks float64) TickResult {
	rate := e.Balance.Combat.HPRegenPerTick
	if rate <= 0 || ticks <= 0 || state.Player.CurrentHP >= state.Player.MaxHP {
		return TickResult{State: state}
	}
	next := state.Clone()
	total := next.Player.RegenProgress + rate*ticks
	heal := math.Floor(total)
	next.Player.CurrentHP = min(next.Player.MaxHP, next.Player.CurrentHP+int(heal))
	next.Player.RegenProgress = total - heal
	if next.Player.CurrentHP == next.Player.MaxHP {
		next.Player.RegenProgress = 0
	}
	return TickResult{State: next}
}

// StartCombat begins an encounter in zoneID. An empty enemyID selects the
// default enemy; an explicit one also becomes the zone's preferred enemy.
func (e *Engine) StartCombat(state core.GameState, zoneID, enemyID string, now int64) Result {
	if state.ActiveCombat != nil {
		return fail(state, ErrAlreadyInCombat)
	}
	zone, ok := e.Catalog.Zone(zoneID)
	if !ok {
		return failf(state, ErrUnknownZone, zoneID)
	}
	if e.CombatLevel(state) < zone.RequiredCombatLevel {
		return failf(state, ErrCombatLevelTooLow, zoneID)
	}

	explicit := enemyID != ""
	if !explicit {
		if enemyID, ok = e.SelectEnemy(state, zoneID); !ok {
			return failf(state, ErrNoEligibleEnemy, zoneID)
		}
	}
	enemy, ok := e.Catalog.Enemy(enemyID)
	if !ok || !slices.Contains(zone.Enemies, enemyID) {
		return failf(state, ErrUnknownEnemy, enemyID)
	}
	if !e.eligible(state, enemy) {
		return failf(state, ErrCombatLevelTooLow, enemyID)
	}

	next := state.Clone()
	next.Combat.ZoneID = zoneID
	if explicit {
		next.Combat.PreferredEnemy[zoneID] = enemyID
	}
	next.Player.MaxHP = e.MaxHP(next)
	next.Player.CurrentHP = min(max(1, next.Player.CurrentHP), next.Player.MaxHP)
	next.ActiveCombat = e.encounter(next, zoneID, enemy, now)
	return succeed(next, event.CombatStarted{ZoneID: zoneID, EnemyID: enemyID, At: now})
}

// Flee ends the active encounter. The zone's preferred enemy is kept.
func (e *Engine) Flee(state core.GameState, now int64) Result {
	if state.ActiveCombat == nil {
		return fail(state, ErrNotInCombat)
	}
	next := state.Clone()
	zoneID := next.ActiveCombat.ZoneID
	next.ActiveCombat = nil
	return succeed(next, event.CombatEnded{ZoneID: zoneID, Reason: event.EndFled, At: now})
}

// SetTrainingMode selects how combat XP is split: balanced or a combat skill id.
func (e *Engine) SetTrainingMode(state core.GameState, mode string) Result {
	if _, known := e.Catalog.CombatSkill(mode); mode != core.TrainingBalanced && !known {
		return failf(state, ErrUnknownSkill, mode)
	}
	next := state.Clone()
	next.Combat.TrainingMode = mode
	return succeed(next)
}

// SetAutoFight toggles continuing into the next enemy after a kill.
func (e *Engine) SetAutoFight(state core.GameState, on bool) Result {
	next := state.Clone()
	next.Combat.AutoFight = on
	return succeed(next)
}

// SetPreferredEnemy records the enemy auto-fight picks in a zone. An empty
// enemyID clears the preference.
func (e *Engine) SetPreferredEnemy(state core.GameState, zoneID, enemyID string) Result {
	zone, found := e.Catalog.Zone(zoneID)
	if !found {
		return failf(state, ErrUnknownZone, zoneID)
	}
	next := state.Clone()
	if enemyID == "" {
		delete(next.Combat.PreferredEnemy, zoneID)
		return succeed(next)
	}
	if _, found := e.Catalog.Enemy(enemyID); !found || !slices.Contains(zone.Enemies, enemyID) {
		return failf(state, ErrUnknownEnemy, enemyID)
	}
	next.Combat.PreferredEnemy[zoneID] = enemyID
	return succeed(next)
}
