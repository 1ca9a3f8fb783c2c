package sim

import (
	"errors"
	"testing"

	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/event"
	"github.com/Slepzs/oizys-keres/internal/multiplier"
)

func withResource(s core.GameState, id string, amount int) core.GameState {
	next := s.Clone()
	r := next.Resources[id]
	r.Amount = amount
	next.Resources[id] = r
	return next
}

func TestCraftRequirements(t *testing.T) {
	e := testEngine(t)
	s := withResource(newState(e), "ore", 4)

	tests := []struct {
		name  string
		state func() core.GameState
		id    string
		want  error
	}{
		{"unknown recipe", func() core.GameState { return s }, "nope", ErrUnknownRecipe},
		{"no forge", func() core.GameState { return s }, "smelt", ErrInfrastructureMissing},
		{"no ore", func() core.GameState {
			n := withResource(s, "ore", 1)
			n.Infrastructure["forge"] = 1
			return n
		}, "smelt", ErrInsufficientResources},
		{"bar cap", func() core.GameState {
			n := withResource(s, "bar", 5)
			n.Infrastructure["forge"] = 1
			return n
		}, "smelt", ErrResourceCapReached},
		{"skill level", func() core.GameState {
			n := s.Clone()
			n.Infrastructure["forge"] = 1
			e.Catalog.Recipes[0].RequiredLevel = 5
			return n
		}, "smelt", ErrSkillLevelTooLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() { e.Catalog.Recipes[0].RequiredLevel = 1 }()
			in := tt.state()
			r := e.Craft(in, tt.id)
			if r.Success || !errors.Is(r.Err, tt.want) {
				t.Fatalf("Craft err = %v, want %v", r.Err, tt.want)
			}
			if r.State.ResourceAmount("ore") != in.ResourceAmount("ore") || len(r.Events) != 0 {
				t.Error("failed craft changed state or emitted events")
			}
		})
	}
}

func TestCraftSuccess(t *testing.T) {
	e := testEngine(t)
	s := withResource(newState(e), "ore", 4)
	s.Infrastructure["forge"] = 1

	r := e.Craft(s, "smelt")
	if !r.Success {
		t.Fatalf("Craft: %v", r.Err)
	}
	if r.State.ResourceAmount("ore") != 2 || r.State.ResourceAmount("bar") != 1 {
		t.Errorf("ore %d bar %d", r.State.ResourceAmount("ore"), r.State.ResourceAmount("bar"))
	}
	if r.State.Skills["smithing"].XP != 10 {
		t.Errorf("smithing XP = %d, want 10", r.State.Skills["smithing"].XP)
	}
	if ev, ok := r.Events[0].(event.ItemCrafted); !ok || ev.ResourceID != "bar" || ev.Automated {
		t.Errorf("first event = %#v", r.Events[0])
	}
	if s.ResourceAmount("ore") != 4 {
		t.Error("Craft modified its input")
	}
}

func TestCraftingAutomationFailsClosed(t *testing.T) {
	e := testEngine(t)
	s := withResource(newState(e), "ore", 4)
	s.Infrastructure["forge"] = 1
	res := e.SetCraftingAutomation(s, "smelt", 1, true)
	if !res.Success {
		t.Fatalf("SetCraftingAutomation: %v", res.Err)
	}

	r := e.ProcessCraftingAutomationTick(res.State, 35)
	if n := countEvents(r.Events, event.TypeItemCrafted); n != 2 {
		t.Errorf("crafts = %d, want 2", n)
	}
	if n := countEvents(r.Events, event.TypeCraftingAutomationStopped); n != 1 {
		t.Errorf("stop events = %d, want 1", n)
	}
	auto := r.State.CraftingAutomation
	if !auto.Enabled || !auto.Stalled || auto.TickProgress != 0 {
		t.Errorf("automation after failure = %+v", auto)
	}
	if r.State.ResourceAmount("ore") != 0 || r.State.ResourceAmount("bar") != 2 {
		t.Errorf("ore %d bar %d", r.State.ResourceAmount("ore"), r.State.ResourceAmount("bar"))
	}
}

func TestStalledAutomationResumesAfterRestock(t *testing.T) {
	e := testEngine(t)
	s := withResource(newState(e), "ore", 2)
	s.Infrastructure["forge"] = 1
	s = e.SetCraftingAutomation(s, "smelt", 1, true).State

	r := e.ProcessCraftingAutomationTick(s, 20)
	if n := countEvents(r.Events, event.TypeCraftingAutomationStopped); n != 1 {
		t.Fatalf("stop events = %d, want 1", n)
	}

	// Still starved: the loop keeps halting without repeating the stop event.
	r = e.ProcessCraftingAutomationTick(r.State, 25)
	if len(r.Events) != 0 {
		t.Errorf("events while stalled = %v, want none", r.Events)
	}
	if auto := r.State.CraftingAutomation; !auto.Enabled || auto.TickProgress != 0 {
		t.Errorf("automation while stalled = %+v", auto)
	}

	restocked := withResource(r.State, "ore", 2)
	r = e.ProcessCraftingAutomationTick(restocked, 10)
	if n := countEvents(r.Events, event.TypeItemCrafted); n != 1 {
		t.Fatalf("crafts after restock = %d, want 1", n)
	}
	if r.State.CraftingAutomation.Stalled {
		t.Error("Stalled still set after a successful craft")
	}
	if got := r.State.ResourceAmount("bar"); got != 2 {
		t.Errorf("bar = %d, want 2", got)
	}
}

func TestUnknownAutomationRecipeDisables(t *testing.T) {
	e := testEngine(t)
	s := newState(e)
	s.CraftingAutomation = core.CraftingAutomation{RecipeID: "missing", Quantity: 1, Enabled: true}

	r := e.ProcessCraftingAutomationTick(s, 10)
	if r.State.CraftingAutomation.Enabled {
		t.Error("automation left enabled for an unknown recipe")
	}
	if n := countEvents(r.Events, event.TypeCraftingAutomationStopped); n != 1 {
		t.Errorf("stop events = %d, want 1", n)
	}
}

func TestCraftingAutomationCarriesProgress(t *testing.T) {
	e := testEngine(t)
	s := withResource(newState(e), "ore", 20)
	s.Infrastructure["forge"] = 1
	s = e.SetCraftingAutomation(s, "smelt", 2, true).State

	r := e.ProcessCraftingAutomationTick(s, 5)
	if len(r.Events) != 0 || r.State.CraftingAutomation.TickProgress != 5 {
		t.Fatalf("events %v progress %v", r.Events, r.State.CraftingAutomation.TickProgress)
	}
	r = e.ProcessCraftingAutomationTick(r.State, 5)
	if n := countEvents(r.Events, event.TypeItemCrafted); n != 2 {
		t.Errorf("batch crafts = %d, want 2", n)
	}
	if !r.State.CraftingAutomation.Enabled {
		t.Error("automation stopped without a failure")
	}
}

func TestDisabledAutomationIsNoOp(t *testing.T) {
	e := testEngine(t)
	s := newState(e)
	r := e.ProcessCraftingAutomationTick(s, 100)
	if len(r.Events) != 0 {
		t.Errorf("events = %v", r.Events)
	}
}

func TestUpgradeInfrastructure(t *testing.T) {
	e := testEngine(t)
	s := withResource(newState(e), "wood", 30)

	r := e.UpgradeInfrastructure(s, "forge")
	if !r.Success {
		t.Fatalf("first upgrade: %v", r.Err)
	}
	if r.State.Infrastructure["forge"] != 1 || r.State.ResourceAmount("wood") != 20 || r.State.Resources["bar"].Cap != 10 {
		t.Errorf("after level 1: forge %d wood %d bar cap %d",
			r.State.Infrastructure["forge"], r.State.ResourceAmount("wood"), r.State.Resources["bar"].Cap)
	}

	r = e.UpgradeInfrastructure(r.State, "forge")
	if !r.Success {
		t.Fatalf("second upgrade: %v", r.Err)
	}
	if r.State.ResourceAmount("wood") != 0 || r.State.Resources["bar"].Cap != 15 {
		t.Errorf("after level 2: wood %d bar cap %d", r.State.ResourceAmount("wood"), r.State.Resources["bar"].Cap)
	}
	m, found := multiplier.Find(r.State, "infra:forge")
	if !found || m.Value != 0.2 || m.Target != "smithing" {
		t.Errorf("infra multiplier = %+v, %v", m, found)
	}

	if capped := e.UpgradeInfrastructure(withResource(r.State, "wood", 100), "forge"); !errors.Is(capped.Err, ErrAtMaxLevel) {
		t.Errorf("max level: %v", capped.Err)
	}
	if poor := e.UpgradeInfrastructure(newState(e), "forge"); !errors.Is(poor.Err, ErrInsufficientResources) {
		t.Errorf("no wood: %v", poor.Err)
	}
	if unknown := e.UpgradeInfrastructure(s, "castle"); !errors.Is(unknown.Err, ErrUnknownInfrastructure) {
		t.Errorf("unknown: %v", unknown.Err)
	}
}

func TestEquipAndUnequip(t *testing.T) {
	e := testEngine(t)
	s := newState(e)
	s.Inventory.Add("sword", 1)
	s.Inventory.Add("charm", 1)
	s.Inventory.Add("gem", 1)

	r := e.Equip(s, "sword")
	if !r.Success {
		t.Fatalf("Equip sword: %v", r.Err)
	}
	if e.PlayerOffense(r.State) != 6 || e.PlayerAttackInterval(r.State) != 500 {
		t.Errorf("offense %d interval %d", e.PlayerOffense(r.State), e.PlayerAttackInterval(r.State))
	}
	if r.State.Inventory.Count("sword") != 0 {
		t.Error("sword still in bag")
	}

	r = e.Equip(r.State, "charm")
	if got := multiplier.Effective(r.State, core.TargetDrops); got != 2 {
		t.Errorf("drops multiplier = %v, want 2", got)
	}
	r = e.Unequip(r.State, "trinket")
	if !r.Success || r.State.Inventory.Count("charm") != 1 {
		t.Fatalf("Unequip: %v", r.Err)
	}
	if _, found := multiplier.Find(r.State, "equip:trinket"); found {
		t.Error("equipment multiplier left behind")
	}

	if bad := e.Equip(s, "gem"); !errors.Is(bad.Err, ErrNotEquippable) {
		t.Errorf("gem: %v", bad.Err)
	}
	if bad := e.Equip(newState(e), "sword"); !errors.Is(bad.Err, ErrInsufficientResources) {
		t.Errorf("unowned: %v", bad.Err)
	}
	if bad := e.Unequip(s, "head"); !errors.Is(bad.Err, ErrNothingEquipped) {
		t.Errorf("empty slot: %v", bad.Err)
	}
}

func TestSkillCommands(t *testing.T) {
	e := testEngine(t)
	s := newState(e)

	if r := e.SetActiveSkill(s, "smithing"); !errors.Is(r.Err, ErrNotGathering) {
		t.Errorf("crafting skill active: %v", r.Err)
	}
	if r := e.SetActiveSkill(s, "mining"); !r.Success || r.State.ActiveSkill != "mining" {
		t.Errorf("SetActiveSkill: %v", r.Err)
	}
	if r := e.SetAutomation(s, "mining", true); !errors.Is(r.Err, ErrAutomationLocked) {
		t.Errorf("locked automation: %v", r.Err)
	}
	if r := e.SetVariant(s, "mining", "deep"); !errors.Is(r.Err, ErrSkillLevelTooLow) {
		t.Errorf("locked variant: %v", r.Err)
	}
	if r := e.SetVariant(s, "mining", "shallow"); !errors.Is(r.Err, ErrUnknownVariant) {
		t.Errorf("unknown variant: %v", r.Err)
	}

	s.Skills["mining"] = core.SkillState{Level: 3, AutomationUnlocked: true, TickProgress: 4}
	r := e.SetVariant(s, "mining", "deep")
	if !r.Success || r.State.Skills["mining"].ActiveVariant != "deep" || r.State.Skills["mining"].TickProgress != 0 {
		t.Errorf("SetVariant: %+v %v", r.State.Skills["mining"], r.Err)
	}
	r = e.SetAutomation(r.State, "mining", true)
	if !r.Success || !r.State.Skills["mining"].AutomationEnabled {
		t.Errorf("SetAutomation: %v", r.Err)
	}
}
