package sim

import (
	"math"
	"testing"

	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/event"
)

func countEvents(events []event.Event, typ event.Type) int {
	n := 0
	for _, ev := range events {
		if ev.Type() == typ {
			n++
		}
	}
	return n
}

func TestTickProgressStaysBelowActionCost(t *testing.T) {
	e := testEngine(t)
	s := newState(e)

	for _, ticks := range []float64{0, 0.5, 3.99, 4, 9.75, 25.5, 1000, 0} {
		s = e.ProcessSkillTick(s, "logging", ticks).State
		per := e.EffectiveTicksPerAction(s, "logging")
		p := s.Skills["logging"].TickProgress
		if p < 0 || p >= per {
			t.Fatalf("after %v ticks: TickProgress = %v, want [0, %v)", ticks, p, per)
		}
	}
}

func TestTickProgressBoundHoldsAcrossLevelUps(t *testing.T) {
	e := testEngine(t)

	tests := []struct {
		name  string
		ticks []float64
	}{
		{"single crossing", []float64{109.95}},
		{"repeated crossings", []float64{109.95, 99.99, 250.5, 1000.7, 5000.3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newState(e)
			for _, ticks := range tt.ticks {
				s = e.ProcessSkillTick(s, "mining", ticks).State
				per := e.EffectiveTicksPerAction(s, "mining")
				p := s.Skills["mining"].TickProgress
				if p < 0 || p >= per {
					t.Fatalf("after %v ticks at level %d: TickProgress = %v, want [0, %v)", ticks, s.Skills["mining"].Level, p, per)
				}
			}
		})
	}
}

func TestLevelUpKeepsProgressFraction(t *testing.T) {
	e := testEngine(t)
	// 10 actions of 10 XP reach level 2 with 9.95 of a 10-tick action carried.
	s := e.ProcessSkillTick(newState(e), "mining", 109.95).State

	sk := s.Skills["mining"]
	if sk.Level != 2 {
		t.Fatalf("level = %d, want 2", sk.Level)
	}
	per := e.EffectiveTicksPerAction(s, "mining")
	if got, want := sk.TickProgress/per, 0.995; math.Abs(got-want) > 1e-9 {
		t.Errorf("carried fraction = %v, want %v", got, want)
	}
}

func TestPartialProgressIsCarried(t *testing.T) {
	e := testEngine(t)
	s := newState(e)

	r := e.ProcessSkillTick(s, "logging", 3)
	if len(r.Events) != 0 {
		t.Fatalf("events = %v, want none", r.Events)
	}
	if got := r.State.Skills["logging"].TickProgress; got != 3 {
		t.Fatalf("TickProgress = %v, want 3", got)
	}
	r = e.ProcessSkillTick(r.State, "logging", 1)
	if got := r.State.ResourceAmount("wood"); got != 1 {
		t.Errorf("wood = %d, want 1", got)
	}
}

func TestSkillChunkInvariance(t *testing.T) {
	e := testEngine(t)

	one := e.ProcessSkillTick(newState(e), "logging", 70).State

	tests := []struct {
		name  string
		step  float64
		count int
	}{
		{"halves", 0.5, 140},
		{"sevens", 7, 10},
		{"thirty-fives", 35, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newState(e)
			for range tt.count {
				s = e.ProcessSkillTick(s, "logging", tt.step).State
			}
			got, want := s.Skills["logging"], one.Skills["logging"]
			if got.Level != want.Level || got.XP != want.XP {
				t.Errorf("level/xp = %d/%d, want %d/%d", got.Level, got.XP, want.Level, want.XP)
			}
			if s.ResourceAmount("wood") != one.ResourceAmount("wood") {
				t.Errorf("wood = %d, want %d", s.ResourceAmount("wood"), one.ResourceAmount("wood"))
			}
			if got.TickProgress != want.TickProgress {
				t.Errorf("TickProgress = %v, want %v", got.TickProgress, want.TickProgress)
			}
		})
	}
	if one.Skills["logging"].XP != 85 || one.ResourceAmount("wood") != 17 {
		t.Errorf("single call: xp %d wood %d, want 85 and 17", one.Skills["logging"].XP, one.ResourceAmount("wood"))
	}
}

func TestSkillLevelUpExactCost(t *testing.T) {
	e := testEngine(t)
	// 20 actions of 5 XP is exactly the 100 XP cost of level 2.
	r := e.ProcessSkillTick(newState(e), "logging", 80)

	sk := r.State.Skills["logging"]
	if sk.Level != 2 || sk.XP != 0 {
		t.Errorf("level %d xp %d, want 2 and 0", sk.Level, sk.XP)
	}
	var up event.SkillLevelUp
	for _, ev := range r.Events {
		if lu, ok := ev.(event.SkillLevelUp); ok {
			up = lu
		}
	}
	if up.NewLevel != 2 || up.LevelsGained != 1 {
		t.Errorf("level up event = %+v", up)
	}
	if r.State.Player.XP != 10 {
		t.Errorf("player XP = %d, want 10", r.State.Player.XP)
	}
}

func TestAutomationUnlockedOnce(t *testing.T) {
	e := testEngine(t)
	s := newState(e)

	r := e.ProcessSkillTick(s, "mining", 100)
	if n := countEvents(r.Events, event.TypeAutomationUnlocked); n != 1 {
		t.Fatalf("AUTOMATION_UNLOCKED count = %d, want 1", n)
	}
	if !r.State.Skills["mining"].AutomationUnlocked {
		t.Fatal("AutomationUnlocked not set")
	}
	r = e.ProcessSkillTick(r.State, "mining", 200)
	if n := countEvents(r.Events, event.TypeAutomationUnlocked); n != 0 {
		t.Errorf("AUTOMATION_UNLOCKED repeated %d times", n)
	}
}

func TestSkillDropsAndBagFull(t *testing.T) {
	e := testEngine(t)

	s := newState(e)
	r := e.ProcessSkillTick(s, "mining", 30)
	if got := r.State.Inventory.Count("gem"); got != 3 {
		t.Errorf("gems = %d, want 3", got)
	}
	if n := countEvents(r.Events, event.TypeItemDropped); n != 3 {
		t.Errorf("ITEM_DROPPED count = %d, want 3", n)
	}

	full := newState(e)
	full.Inventory = core.Bag{Slots: 1, Items: []core.ItemStack{{ItemID: "pebble", Quantity: 1}}}
	r = e.ProcessSkillTick(full, "mining", 30)
	if n := countEvents(r.Events, event.TypeActionsPausedBagFull); n != 1 {
		t.Errorf("ACTIONS_PAUSED_BAG_FULL count = %d, want 1", n)
	}
	if countEvents(r.Events, event.TypeItemDropped) != 0 || r.State.Inventory.Count("gem") != 0 {
		t.Error("drops added to a full bag")
	}
	if r.State.ResourceAmount("ore") != 3 {
		t.Errorf("ore = %d, want 3 even with a full bag", r.State.ResourceAmount("ore"))
	}
}

func TestSkillDropsDeterministic(t *testing.T) {
	e := testEngine(t)
	e.Catalog.Skills[0].Drops[0].Chance = 0.3
	e.Catalog.Skills[0].Drops[0].MaxQty = 4

	run := func() int {
		s := newState(e)
		for range 20 {
			s = e.ProcessTick(s, 1000).State
			s = e.ProcessSkillTick(s, "mining", 10).State
		}
		return s.Inventory.Count("gem")
	}
	if a, b := run(), run(); a != b {
		t.Errorf("same seed gave %d and %d gems", a, b)
	}
}

func TestVariantRequiresLevel(t *testing.T) {
	e := testEngine(t)
	s := newState(e)

	low := s.Clone()
	low.Skills["mining"] = core.SkillState{Level: 2, ActiveVariant: "deep"}
	r := e.ProcessSkillTick(low, "mining", 100)
	if r.State.ResourceAmount("deep_ore") != 0 || r.State.ResourceAmount("ore") == 0 {
		t.Errorf("below requirement: ore %d deep %d", r.State.ResourceAmount("ore"), r.State.ResourceAmount("deep_ore"))
	}

	high := s.Clone()
	high.Skills["mining"] = core.SkillState{Level: 3, ActiveVariant: "deep"}
	if per := e.EffectiveTicksPerAction(high, "mining"); per <= 10 {
		t.Fatalf("variant ticks per action = %v, want the variant's slower cost", per)
	}
	r = e.ProcessSkillTick(high, "mining", 100)
	if r.State.ResourceAmount("deep_ore") == 0 || r.State.ResourceAmount("ore") != 0 {
		t.Errorf("at requirement: ore %d deep %d", r.State.ResourceAmount("ore"), r.State.ResourceAmount("deep_ore"))
	}
}

func TestUnknownAndCraftingSkillsAreNoOps(t *testing.T) {
	e := testEngine(t)
	s := newState(e)
	for _, id := range []string{"missing", "smithing"} {
		r := e.ProcessSkillTick(s, id, 100)
		if len(r.Events) != 0 {
			t.Errorf("%s: events = %v", id, r.Events)
		}
		if _, ok := r.State.Skills["missing"]; ok {
			t.Errorf("%s: created a skill entry", id)
		}
	}
}

func TestSkillTickLeavesInputUntouched(t *testing.T) {
	e := testEngine(t)
	s := newState(e)
	_ = e.ProcessSkillTick(s, "mining", 100)
	if s.Skills["mining"].XP != 0 || s.ResourceAmount("ore") != 0 || s.Inventory.Count("gem") != 0 {
		t.Error("ProcessSkillTick modified its input")
	}
}
