package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/storage"
)

// MenuItem represents a selectable save slot in the menu.
type MenuItem struct {
	Slot  string
	Title string
	New   bool
}

// MenuModel is the Bubble Tea model for the save slot picker.
type MenuModel struct {
	items    []MenuItem
	cursor   int
	width    int
	height   int
	config   core.RuntimeConfig
	keys     KeyMap
	quitting bool
	selected *MenuItem
}

// NewMenuModel creates a picker over saves with a trailing new-game entry.
func NewMenuModel(saves []storage.SaveInfo, cfg core.RuntimeConfig) MenuModel {
	items := make([]MenuItem, 0, len(saves)+1)
	taken := make([]string, 0, len(saves))
	for _, s := range saves {
		title := fmt.Sprintf("%-16s Lv %-3d total %-4d %s",
			s.Slot, s.PlayerLevel, s.TotalLevel, humanize.Time(s.Updated()))
		items = append(items, MenuItem{Slot: s.Slot, Title: title})
		taken = append(taken, s.Slot)
	}
	slot := freeSlot(taken)
	items = append(items, MenuItem{Slot: slot, Title: "+ New game (" + slot + ")", New: true})

	return MenuModel{
		items:  items,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
		keys:   DefaultKeyMap(),
	}
}

// freeSlot returns the first "slot-N" name not in taken.
func freeSlot(taken []string) string {
	for n := 1; ; n++ {
		name := fmt.Sprintf("slot-%d", n)
		if !slices.Contains(taken, name) {
			return name
		}
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		selected := m.items[m.cursor]
		m.selected = &selected
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  O I Z Y S  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Choose a save", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Title, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Q: Quit"
	b.WriteString(centerText(mutedStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Slot   string
	New    bool
	Config core.RuntimeConfig
	Quit   bool
}

// RunMenu runs the slot picker and returns the selection.
func RunMenu(saves []storage.SaveInfo, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(saves, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.quitting || m.selected == nil {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	cfg = m.config
	cfg.Slot = m.selected.Slot
	return MenuResult{Slot: m.selected.Slot, New: m.selected.New, Config: cfg}, nil
}
