package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Slepzs/oizys-keres/internal/content"
	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/event"
	"github.com/Slepzs/oizys-keres/internal/session"
	"github.com/Slepzs/oizys-keres/internal/sim"
)

type tab int

const (
	tabSkills tab = iota
	tabCombat
	tabCrafting
	tabBuildings
	tabInventory
	tabQuests
	tabLog
	tabCount
)

var tabNames = [tabCount]string{"Skills", "Combat", "Crafting", "Buildings", "Inventory", "Quests", "Log"}

// Model is the Bubble Tea model for a live game session.
type Model struct {
	sess     *session.Session
	catalog  *content.Catalog
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	items    table.Model
	itemIDs  []string
	tab      tab
	cursor   int
	state    core.GameState
	status   string
	quitting bool
}

// NewModel creates a view over sess. offline is the catch-up the session
// applied when it was loaded and is shown as a welcome-back line.
func NewModel(sess *session.Session, cfg core.RuntimeConfig, offline sim.OfflineResult) Model {
	h := help.New()
	h.ShowAll = false

	m := Model{
		sess:    sess,
		catalog: sess.Engine().Catalog,
		config:  cfg,
		keys:    DefaultKeyMap(),
		help:    h,
		state:   sess.State(),
		status:  welcomeBack(offline),
	}
	m.items = m.createTable()
	m.updateTableRows()
	return m
}

// Init starts the tick loop and autosave timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.config.TickRate), autosaveCmd(m.config.Autosave))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.items = m.createTable()
		m.updateTableRows()
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case saveMsg:
		return m, tea.Batch(saveCmd(m.sess.Save), autosaveCmd(m.config.Autosave))

	case savedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
		}
		return m, nil
	}

	return m, nil
}

// handleTick advances the session to the tick's wall-clock time.
func (m Model) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	m.sess.Advance(t.UnixMilli())
	m.state = m.sess.State()
	m.updateTableRows()
	return m, tickCmd(m.config.TickRate)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Quit):
		if err := m.sess.Save(); err != nil {
			m.status = "save failed: " + err.Error()
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Save):
		m.status = "saving..."
		return m, saveCmd(m.sess.Save)

	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % tabCount
		m.cursor = 0

	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount
		m.cursor = 0

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		if m.tab == tabInventory {
			m.items, cmd = m.items.Update(msg)
			return m, cmd
		}
		m.moveCursor(key.Matches(msg, m.keys.Down))

	case key.Matches(msg, m.keys.Select):
		m.run(m.primaryCommand())

	case key.Matches(msg, m.keys.Automate):
		m.run(m.automateCommand())

	case key.Matches(msg, m.keys.Variant):
		m.run(m.variantCommand())

	case key.Matches(msg, m.keys.Flee):
		m.run(m.fleeCommand())

	case key.Matches(msg, m.keys.AutoFight):
		on := !m.state.Combat.AutoFight
		m.run(func(e *sim.Engine, st core.GameState) sim.Result { return e.SetAutoFight(st, on) })

	case key.Matches(msg, m.keys.Training):
		mode := m.nextTrainingMode()
		m.run(func(e *sim.Engine, st core.GameState) sim.Result { return e.SetTrainingMode(st, mode) })
	}

	return m, nil
}

func (m *Model) moveCursor(down bool) {
	n := m.rowCount()
	if n == 0 {
		return
	}
	if down {
		m.cursor = min(m.cursor+1, n-1)
	} else {
		m.cursor = max(m.cursor-1, 0)
	}
}

func (m Model) rowCount() int {
	switch m.tab {
	case tabSkills:
		return len(m.catalog.Skills)
	case tabCombat:
		return len(m.catalog.Zones)
	case tabCrafting:
		return len(m.catalog.Recipes)
	case tabBuildings:
		return len(m.catalog.Infrastructure)
	case tabQuests:
		return len(m.catalog.Quests)
	}
	return 0
}

// run executes cmd and reports its outcome on the status line.
func (m *Model) run(cmd session.Command) {
	if cmd == nil {
		return
	}
	res := m.sess.Do(cmd)
	m.state = m.sess.State()
	m.updateTableRows()
	switch {
	case !res.Success:
		m.status = "✗ " + res.Err.Error()
	case len(res.Events) > 0:
		m.status = event.Describe(res.Events[0])
	default:
		m.status = "ok"
	}
}

func (m Model) primaryCommand() session.Command {
	if m.tab != tabInventory && m.cursor >= m.rowCount() {
		return nil
	}
	switch m.tab {
	case tabSkills:
		def := m.catalog.Skills[m.cursor]
		if def.Kind != content.KindGathering {
			return nil
		}
		id := def.ID
		if m.state.ActiveSkill == id {
			id = ""
		}
		return func(e *sim.Engine, st core.GameState) sim.Result { return e.SetActiveSkill(st, id) }

	case tabCombat:
		zone := m.catalog.Zones[m.cursor].ID
		return func(e *sim.Engine, st core.GameState) sim.Result {
			return e.StartCombat(st, zone, "", st.LastTickAt)
		}

	case tabCrafting:
		recipe := m.catalog.Recipes[m.cursor].ID
		return func(e *sim.Engine, st core.GameState) sim.Result { return e.Craft(st, recipe) }

	case tabBuildings:
		id := m.catalog.Infrastructure[m.cursor].ID
		return func(e *sim.Engine, st core.GameState) sim.Result { return e.UpgradeInfrastructure(st, id) }

	case tabInventory:
		item, ok := m.selectedItem()
		if !ok {
			return nil
		}
		return func(e *sim.Engine, st core.GameState) sim.Result { return e.Equip(st, item) }
	}
	return nil
}

func (m Model) automateCommand() session.Command {
	if m.cursor >= m.rowCount() {
		return nil
	}
	switch m.tab {
	case tabSkills:
		id := m.catalog.Skills[m.cursor].ID
		on := !m.state.Skills[id].AutomationEnabled
		return func(e *sim.Engine, st core.GameState) sim.Result { return e.SetAutomation(st, id, on) }

	case tabCrafting:
		recipe := m.catalog.Recipes[m.cursor].ID
		ca := m.state.CraftingAutomation
		on := !(ca.Enabled && ca.RecipeID == recipe)
		return func(e *sim.Engine, st core.GameState) sim.Result {
			return e.SetCraftingAutomation(st, recipe, ca.Quantity, on)
		}
	}
	return nil
}

// variantCommand cycles the selected skill through the base node and every
// variant its level allows.
func (m Model) variantCommand() session.Command {
	if m.tab != tabSkills || m.cursor >= m.rowCount() {
		return nil
	}
	def := m.catalog.Skills[m.cursor]
	sk := m.state.Skills[def.ID]
	options := []string{""}
	for _, v := range def.Variants {
		if sk.Level >= v.RequiredLevel {
			options = append(options, v.ID)
		}
	}
	next := options[0]
	for i, id := range options {
		if id == sk.ActiveVariant {
			next = options[(i+1)%len(options)]
		}
	}
	return func(e *sim.Engine, st core.GameState) sim.Result { return e.SetVariant(st, def.ID, next) }
}

func (m Model) fleeCommand() session.Command {
	switch m.tab {
	case tabCombat:
		return func(e *sim.Engine, st core.GameState) sim.Result { return e.Flee(st, st.LastTickAt) }

	case tabInventory:
		item, ok := m.selectedItem()
		if !ok {
			return nil
		}
		def, ok := m.catalog.Item(item)
		if !ok || def.Slot == "" || m.state.Equipment[def.Slot] != item {
			return nil
		}
		return func(e *sim.Engine, st core.GameState) sim.Result { return e.Unequip(st, def.Slot) }
	}
	return nil
}

// nextTrainingMode cycles balanced, then each combat skill.
func (m Model) nextTrainingMode() string {
	modes := []string{core.TrainingBalanced}
	for _, cs := range m.catalog.CombatSkills {
		modes = append(modes, cs.ID)
	}
	for i, mode := range modes {
		if mode == m.state.Combat.TrainingMode {
			return modes[(i+1)%len(modes)]
		}
	}
	return core.TrainingBalanced
}

func (m Model) selectedItem() (string, bool) {
	i := m.items.Cursor()
	if i < 0 || i >= len(m.itemIDs) {
		return "", false
	}
	return m.itemIDs[i], true
}

// createTable creates the inventory table sized to the window.
func (m Model) createTable() table.Model {
	columns := []table.Column{
		{Title: "Item", Width: 24},
		{Title: "Qty", Width: 8},
		{Title: "Slot", Width: 10},
		{Title: "Stats", Width: 24},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(5, m.config.ScreenH-14)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).Foreground(accent)
	s.Selected = s.Selected.Foreground(highlight).Bold(true)
	t.SetStyles(s)
	return t
}

// updateTableRows refreshes the inventory table from the current state.
func (m *Model) updateTableRows() {
	rows := make([]table.Row, 0, len(m.state.Inventory.Items))
	m.itemIDs = make([]string, 0, len(rows))
	for _, stack := range m.state.Inventory.Items {
		def, _ := m.catalog.Item(stack.ItemID)
		name := def.Name
		if name == "" {
			name = stack.ItemID
		}
		slot := def.Slot
		if slot != "" && m.state.Equipment[slot] == stack.ItemID {
			slot += " *"
		}
		rows = append(rows, table.Row{name, fmt.Sprint(stack.Quantity), slot, itemStats(def)})
		m.itemIDs = append(m.itemIDs, stack.ItemID)
	}
	m.items.SetRows(rows)
}

// Run starts the Bubble Tea program for sess.
func Run(sess *session.Session, cfg core.RuntimeConfig, offline sim.OfflineResult) error {
	model := NewModel(sess, cfg, offline)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
