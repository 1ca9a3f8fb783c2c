package core

import "maps"

// Clone returns a deep copy of the state. Every map, slice and pointer is
// duplicated so the copy can be modified without affecting the original.
func (s GameState) Clone() GameState {
	c := s

	c.Skills = maps.Clone(s.Skills)
	c.CombatSkills = maps.Clone(s.CombatSkills)
	c.Resources = maps.Clone(s.Resources)
	c.Inventory = s.Inventory.Clone()
	c.Equipment = maps.Clone(s.Equipment)

	c.Combat.PreferredEnemy = maps.Clone(s.Combat.PreferredEnemy)
	if s.ActiveCombat != nil {
		ac := *s.ActiveCombat
		c.ActiveCombat = &ac
	}

	if s.Multipliers != nil {
		c.Multipliers = append([]Multiplier(nil), s.Multipliers...)
	}

	c.Infrastructure = maps.Clone(s.Infrastructure)
	c.Quests = maps.Clone(s.Quests)
	c.Achievements = maps.Clone(s.Achievements)
	if s.Notifications != nil {
		c.Notifications = append([]Notification(nil), s.Notifications...)
	}

	c.ensureMaps()
	return c
}

// ensureMaps allocates any nil map so processors can write without checks.
func (s *GameState) ensureMaps() {
	if s.Skills == nil {
		s.Skills = make(map[string]SkillState)
	}
	if s.CombatSkills == nil {
		s.CombatSkills = make(map[string]SkillState)
	}
	if s.Resources == nil {
		s.Resources = make(map[string]Resource)
	}
	if s.Equipment == nil {
		s.Equipment = make(map[string]string)
	}
	if s.Combat.PreferredEnemy == nil {
		s.Combat.PreferredEnemy = make(map[string]string)
	}
	if s.Infrastructure == nil {
		s.Infrastructure = make(map[string]int)
	}
	if s.Quests == nil {
		s.Quests = make(map[string]QuestProgress)
	}
	if s.Achievements == nil {
		s.Achievements = make(map[string]bool)
	}
}
