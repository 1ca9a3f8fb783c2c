package sim

import (
	"reflect"
	"testing"

	"github.com/Slepzs/oizys-keres/internal/config"
	"github.com/Slepzs/oizys-keres/internal/content"
	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/event"
	"github.com/Slepzs/oizys-keres/internal/rng"
)

func TestProcessTickAdvancesSeedOnceAndClocks(t *testing.T) {
	e := testEngine(t)
	s := newState(e)
	s.ActiveSkill = "logging"

	r := e.ProcessTick(s, 1000)
	if r.State.Seed != rng.AdvanceSeed(s.Seed) {
		t.Errorf("Seed = %d, want one advance of %d", r.State.Seed, s.Seed)
	}
	if r.State.LastTickAt != 1000 || r.State.LastActiveAt != 1000 {
		t.Errorf("clocks = %d/%d", r.State.LastTickAt, r.State.LastActiveAt)
	}
	if got := r.State.ResourceAmount("wood"); got != 2 {
		t.Errorf("wood = %d, want 2 from 10 ticks", got)
	}
}

func TestProcessTickRunsAutomatedSkillsAtReducedRate(t *testing.T) {
	e := testEngine(t)
	s := newState(e)
	s.ActiveSkill = "logging"
	s.Skills["mining"] = core.SkillState{Level: 1, AutomationUnlocked: true, AutomationEnabled: true}

	r := e.ProcessTick(s, 1000)
	if got := r.State.Skills["mining"].TickProgress; got != 5 {
		t.Errorf("mining TickProgress = %v, want 5 (half of 10 ticks)", got)
	}
}

func TestProcessTickZeroDeltaIsNoOp(t *testing.T) {
	e := testEngine(t)
	s := newState(e)
	r := e.ProcessTick(s, 0)
	if r.State.Seed != s.Seed || r.State.LastTickAt != s.LastTickAt || len(r.Events) != 0 {
		t.Error("zero delta changed state")
	}
}

func TestSkillsRunBeforeCombat(t *testing.T) {
	e := testEngine(t)
	s := newState(e)
	s.ActiveSkill = "logging"
	s = inCombat(s, "dummy", 1, 500, 1_000_000)

	r := e.ProcessTick(s, 1000)
	first, last := -1, -1
	for i, ev := range r.Events {
		switch ev.Type() {
		case event.TypeSkillActionsCompleted:
			first = i
		case event.TypeCombatEnemyKilled:
			last = i
		}
	}
	if first < 0 || last < 0 || first > last {
		t.Errorf("event order = %v", r.Events)
	}
}

func TestOfflineCap(t *testing.T) {
	e := testEngine(t)
	s := newState(e)
	limit := e.Balance.Offline.MaxMs
	now := limit + 5000

	r := e.ProcessOfflineProgress(s, now)
	if !r.WasCapped || r.CappedMs != limit || r.ElapsedMs != now {
		t.Errorf("capped=%v cappedMs=%d elapsed=%d", r.WasCapped, r.CappedMs, r.ElapsedMs)
	}
	if r.State.LastActiveAt != now || r.State.LastTickAt != now {
		t.Errorf("clocks = %d/%d, want %d", r.State.LastTickAt, r.State.LastActiveAt, now)
	}
	last, ok := r.Events[len(r.Events)-1].(event.OfflineProgressApplied)
	if !ok || last.CappedMs != limit {
		t.Errorf("last event = %#v", r.Events[len(r.Events)-1])
	}
}

func TestOfflineMatchesLivePlayAtChunkCadence(t *testing.T) {
	e := testEngine(t)
	s := newState(e)
	s.ActiveSkill = "mining"
	chunk := e.Balance.Offline.ChunkMs

	live := s
	for range 3 {
		live = e.ProcessTick(live, chunk).State
	}
	off := e.ProcessOfflineProgress(s, 3*chunk)
	if off.WasCapped {
		t.Fatal("unexpected cap")
	}
	if !reflect.DeepEqual(live, off.State) {
		t.Errorf("offline state differs from live:\nlive %+v\noff  %+v", live, off.State)
	}
}

func TestOfflineNothingElapsed(t *testing.T) {
	e := testEngine(t)
	s := newState(e)
	s.LastActiveAt = 5000
	r := e.ProcessOfflineProgress(s, 4000)
	if len(r.Events) != 0 || r.WasCapped || r.CappedMs != 0 || r.State.LastActiveAt != 5000 {
		t.Errorf("result = %+v", r)
	}
}

func TestOfflineCapShiftsCombatClocks(t *testing.T) {
	e := testEngine(t)
	s := inCombat(newState(e), "dummy", 10, 1000, 1_000_000_000)
	skip := int64(100_000)

	r := e.ProcessOfflineProgress(s, e.Balance.Offline.MaxMs+skip)
	var kill event.CombatEnemyKilled
	for _, ev := range r.Events {
		if k, ok := ev.(event.CombatEnemyKilled); ok {
			kill = k
		}
	}
	// Three hits starting from the shifted first attack.
	if want := 1000 + skip + 2000; kill.At != want {
		t.Errorf("kill at %d, want %d", kill.At, want)
	}
	if r.State.ActiveCombat != nil {
		t.Error("combat still active")
	}
}

func TestNewGameFromDefaults(t *testing.T) {
	cat := content.Default()
	bal := config.DefaultBalance()
	s := NewGame(cat, bal, 7, 1234)

	if s.Player.Level != 1 || s.Player.MaxHP != 15 || s.Player.CurrentHP != 15 {
		t.Errorf("player = %+v", s.Player)
	}
	if s.ActiveSkill != bal.NewGame.ActiveSkill || s.Inventory.Slots != bal.NewGame.BagSlots {
		t.Errorf("active %q slots %d", s.ActiveSkill, s.Inventory.Slots)
	}
	for _, d := range cat.Skills {
		if s.Skills[d.ID].Level != 1 {
			t.Errorf("skill %s level %d", d.ID, s.Skills[d.ID].Level)
		}
	}
	if s.Resources["wood"].Cap != 500 || s.Seed != 7 || s.LastActiveAt != 1234 {
		t.Errorf("wood %+v seed %d active %d", s.Resources["wood"], s.Seed, s.LastActiveAt)
	}
}

func TestFullSimulationDeterministic(t *testing.T) {
	e := New(content.Default(), config.DefaultBalance())

	run := func() core.GameState {
		s := e.NewGame(99, 0)
		s = e.StartCombat(s, "farmland", "", 0).State
		for range 600 {
			s = e.ProcessTick(s, 1000).State
		}
		return s
	}
	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("identical runs diverged")
	}
	if a.Skills["woodcutting"].XP == 0 && a.Skills["woodcutting"].Level == 1 {
		t.Error("woodcutting made no progress in ten minutes")
	}
}
