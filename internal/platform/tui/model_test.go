package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Slepzs/oizys-keres/internal/config"
	"github.com/Slepzs/oizys-keres/internal/content"
	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/session"
	"github.com/Slepzs/oizys-keres/internal/sim"
	"github.com/Slepzs/oizys-keres/internal/storage"
)

const t0 = int64(1_700_000_000_000)

func newTestModel(t *testing.T) Model {
	t.Helper()
	engine := sim.New(content.Default(), config.DefaultBalance())
	sess := session.New(engine, nil, session.Options{Seed: 1})
	if _, err := sess.Load(t0); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	return NewModel(sess, core.DefaultConfig(), sim.OfflineResult{})
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		if m, ok = next.(Model); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTabsCycle(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < int(tabCount); i++ {
		m = press(t, m, keyTab)
	}
	if m.tab != tabSkills {
		t.Errorf("tab after full cycle = %d", m.tab)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.tab != tabLog {
		t.Errorf("shift+tab from first tab = %d", m.tab)
	}
}

func TestSelectSkillTrainsIt(t *testing.T) {
	m := newTestModel(t)
	// woodcutting is active; the second skill is mining.
	m = press(t, m, keyDown, keyEnter)
	if got := m.sess.State().ActiveSkill; got != "mining" {
		t.Errorf("ActiveSkill = %q, want mining", got)
	}
	m = press(t, m, keyEnter)
	if got := m.sess.State().ActiveSkill; got != "" {
		t.Errorf("second select should idle, ActiveSkill = %q", got)
	}
}

func TestFailedCommandShowsError(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("a")) // woodcutting automation is locked at level 1
	if !strings.Contains(m.status, "automation") {
		t.Errorf("status = %q", m.status)
	}
}

func TestCombatKeys(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, keyTab, keyEnter)
	if !m.sess.State().InCombat() {
		t.Fatal("enter on farmland did not start combat")
	}
	m = press(t, m, runes("x"))
	if m.sess.State().InCombat() {
		t.Error("x did not flee")
	}

	auto := m.sess.State().Combat.AutoFight
	m = press(t, m, runes("f"))
	if m.sess.State().Combat.AutoFight == auto {
		t.Error("f did not toggle auto-fight")
	}

	m = press(t, m, runes("m"))
	if got := m.sess.State().Combat.TrainingMode; got != "attack" {
		t.Errorf("training mode after balanced = %q, want attack", got)
	}
}

func TestTickAdvancesSession(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(TickMsg(time.UnixMilli(t0 + 10_000)))
	m = next.(Model)
	if cmd == nil {
		t.Error("tick did not schedule the next tick")
	}
	if m.state.LastTickAt != t0+10_000 {
		t.Errorf("LastTickAt = %d", m.state.LastTickAt)
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < int(tabCount); i++ {
		if v := m.View(); !strings.Contains(v, tabNames[m.tab]) {
			t.Errorf("view for tab %s missing its name", tabNames[m.tab])
		}
		m = press(t, m, keyTab)
	}
}

func TestWelcomeBack(t *testing.T) {
	if got := welcomeBack(sim.OfflineResult{ElapsedMs: 1000}); got != "" {
		t.Errorf("short absence = %q", got)
	}
	got := welcomeBack(sim.OfflineResult{ElapsedMs: 2 * 3600 * 1000, CappedMs: 3600 * 1000, WasCapped: true})
	if !strings.Contains(got, "2 hours") || !strings.Contains(got, "1 hour") {
		t.Errorf("capped absence = %q", got)
	}
}

func TestMenuOffersNewSlot(t *testing.T) {
	saves := []storage.SaveInfo{{Slot: "slot-1"}, {Slot: "main"}}
	m := NewMenuModel(saves, core.DefaultConfig())
	if len(m.items) != 3 {
		t.Fatalf("items = %d, want 3", len(m.items))
	}
	last := m.items[2]
	if !last.New || last.Slot != "slot-2" {
		t.Errorf("new entry = %+v", last)
	}
}
