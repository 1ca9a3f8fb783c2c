package content

import (
	"errors"
	"fmt"
	"math"

	"github.com/Slepzs/oizys-keres/internal/core"
)

// Index builds the id lookup tables. It must be called after the slices are
// populated and before any lookup; Load does this for you.
func (c *Catalog) Index() {
	c.skills = indexBy(c.Skills, func(d SkillDef) string { return d.ID })
	c.combatSkills = indexBy(c.CombatSkills, func(d CombatSkillDef) string { return d.ID })
	c.resources = indexBy(c.Resources, func(d ResourceDef) string { return d.ID })
	c.items = indexBy(c.Items, func(d ItemDef) string { return d.ID })
	c.enemies = indexBy(c.Enemies, func(d EnemyDef) string { return d.ID })
	c.zones = indexBy(c.Zones, func(d ZoneDef) string { return d.ID })
	c.recipes = indexBy(c.Recipes, func(d RecipeDef) string { return d.ID })
	c.infrastructure = indexBy(c.Infrastructure, func(d InfrastructureDef) string { return d.ID })
	c.quests = indexBy(c.Quests, func(d QuestDef) string { return d.ID })
	c.achievements = indexBy(c.Achievements, func(d AchievementDef) string { return d.ID })
}

func indexBy[T any](defs []T, id func(T) string) map[string]int {
	m := make(map[string]int, len(defs))
	for i, d := range defs {
		m[id(d)] = i
	}
	return m
}

func lookup[T any](defs []T, index map[string]int, id string) (T, bool) {
	var zero T
	i, ok := index[id]
	if !ok || i >= len(defs) {
		return zero, false
	}
	return defs[i], true
}

// Skill returns a skill definition.
func (c *Catalog) Skill(id string) (SkillDef, bool) { return lookup(c.Skills, c.skills, id) }

// CombatSkill returns a combat skill definition.
func (c *Catalog) CombatSkill(id string) (CombatSkillDef, bool) {
	return lookup(c.CombatSkills, c.combatSkills, id)
}

// Resource returns a resource definition.
func (c *Catalog) Resource(id string) (ResourceDef, bool) { return lookup(c.Resources, c.resources, id) }

// Item returns an item definition.
func (c *Catalog) Item(id string) (ItemDef, bool) { return lookup(c.Items, c.items, id) }

// Enemy returns an enemy definition.
func (c *Catalog) Enemy(id string) (EnemyDef, bool) { return lookup(c.Enemies, c.enemies, id) }

// Zone returns a zone definition.
func (c *Catalog) Zone(id string) (ZoneDef, bool) { return lookup(c.Zones, c.zones, id) }

// Recipe returns a recipe definition.
func (c *Catalog) Recipe(id string) (RecipeDef, bool) { return lookup(c.Recipes, c.recipes, id) }

// Building returns an infrastructure definition.
func (c *Catalog) Building(id string) (InfrastructureDef, bool) {
	return lookup(c.Infrastructure, c.infrastructure, id)
}

// Quest returns a quest definition.
func (c *Catalog) Quest(id string) (QuestDef, bool) { return lookup(c.Quests, c.quests, id) }

// Achievement returns an achievement definition.
func (c *Catalog) Achievement(id string) (AchievementDef, bool) {
	return lookup(c.Achievements, c.achievements, id)
}

// Variant returns the named variant of a skill.
func (d SkillDef) Variant(id string) (VariantDef, bool) {
	for _, v := range d.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return VariantDef{}, false
}

// Multiplier converts a definition into a state multiplier with the given
// identity. scale multiplies the value (levels of a building, for example).
func (m MultiplierDef) Multiplier(id, source string, scale float64) core.Multiplier {
	typ := core.MultiplierType(m.Type)
	value := m.Value * scale
	if typ == core.Multiplicative {
		// A multiplicative bonus of x per level compounds.
		value = math.Pow(m.Value, scale)
	}
	return core.Multiplier{ID: id, Source: source, Target: m.Target, Type: typ, Value: value}
}

// Validate checks referential integrity across the tables. Every problem is
// reported, joined into one error.
func (c *Catalog) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("content: "+format, args...))
	}

	checkDrops := func(owner string, drops []DropEntry) {
		for _, d := range drops {
			if _, ok := c.Item(d.ItemID); !ok {
				bad("%s drops unknown item %q", owner, d.ItemID)
			}
			if d.MaxQty < d.MinQty {
				bad("%s drop %q has max %d below min %d", owner, d.ItemID, d.MaxQty, d.MinQty)
			}
		}
	}
	checkIngredient := func(owner string, in Ingredient) {
		switch {
		case in.Resource != "" && in.Item != "":
			bad("%s ingredient names both resource %q and item %q", owner, in.Resource, in.Item)
		case in.Resource != "":
			if _, ok := c.Resource(in.Resource); !ok {
				bad("%s uses unknown resource %q", owner, in.Resource)
			}
		case in.Item != "":
			if _, ok := c.Item(in.Item); !ok {
				bad("%s uses unknown item %q", owner, in.Item)
			}
		default:
			bad("%s has an empty ingredient", owner)
		}
	}
	checkMultiplier := func(owner string, m *MultiplierDef) {
		if m == nil {
			return
		}
		if t := core.MultiplierType(m.Type); t != core.Additive && t != core.Multiplicative {
			bad("%s multiplier has unknown type %q", owner, m.Type)
		}
	}

	for _, s := range c.Skills {
		owner := "skill " + s.ID
		if s.Kind == KindGathering {
			if s.TicksPerAction <= 0 {
				bad("%s needs positive ticks_per_action", owner)
			}
			if _, ok := c.Resource(s.ResourceID); s.ResourceID != "" && !ok {
				bad("%s yields unknown resource %q", owner, s.ResourceID)
			}
		}
		checkDrops(owner, s.Drops)
		for _, v := range s.Variants {
			if _, ok := c.Resource(v.ResourceID); v.ResourceID != "" && !ok {
				bad("%s variant %s yields unknown resource %q", owner, v.ID, v.ResourceID)
			}
		}
	}
	for _, it := range c.Items {
		checkMultiplier("item "+it.ID, it.Bonus)
	}
	for _, e := range c.Enemies {
		if e.HP <= 0 || e.AttackIntervalMs <= 0 {
			bad("enemy %s needs positive hp and attack_interval_ms", e.ID)
		}
		checkDrops("enemy "+e.ID, e.Drops)
	}
	for _, z := range c.Zones {
		for _, id := range z.Enemies {
			if _, ok := c.Enemy(id); !ok {
				bad("zone %s lists unknown enemy %q", z.ID, id)
			}
		}
	}
	for _, r := range c.Recipes {
		owner := "recipe " + r.ID
		if _, ok := c.Skill(r.SkillID); !ok {
			bad("%s uses unknown skill %q", owner, r.SkillID)
		}
		if r.TicksPerCraft <= 0 {
			bad("%s needs positive ticks_per_craft", owner)
		}
		for _, in := range r.Inputs {
			checkIngredient(owner, in)
		}
		checkIngredient(owner+" output", r.Output)
		if r.Infrastructure != nil {
			if _, ok := c.Building(r.Infrastructure.ID); !ok {
				bad("%s requires unknown infrastructure %q", owner, r.Infrastructure.ID)
			}
		}
	}
	for _, b := range c.Infrastructure {
		owner := "infrastructure " + b.ID
		for _, in := range b.BaseCost {
			checkIngredient(owner, in)
		}
		checkMultiplier(owner, b.Bonus)
	}
	for _, q := range c.Quests {
		owner := "quest " + q.ID
		for _, req := range q.Requires {
			if _, ok := c.Quest(req); !ok {
				bad("%s requires unknown quest %q", owner, req)
			}
		}
		for _, in := range q.Reward.Resources {
			checkIngredient(owner+" reward", in)
		}
		for _, in := range q.Reward.Items {
			checkIngredient(owner+" reward", in)
		}
		checkMultiplier(owner, q.Reward.Multiplier)
	}
	for _, a := range c.Achievements {
		checkMultiplier("achievement "+a.ID, a.Reward)
	}

	return errors.Join(errs...)
}
