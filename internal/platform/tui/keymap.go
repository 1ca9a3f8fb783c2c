package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the game view.
type KeyMap struct {
	NextTab   key.Binding
	PrevTab   key.Binding
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Automate  key.Binding
	Variant   key.Binding
	Flee      key.Binding
	AutoFight key.Binding
	Training  key.Binding
	Save      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Up, k.Down, k.Select, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Up, k.Down, k.Select},
		{k.Automate, k.Variant, k.Flee, k.AutoFight, k.Training},
		{k.Save, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev tab"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "train/fight/craft/build/equip"),
		),
		Automate: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle automation"),
		),
		Variant: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "next variant"),
		),
		Flee: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "flee/unequip"),
		),
		AutoFight: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "toggle auto-fight"),
		),
		Training: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "training mode"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "save & quit"),
		),
	}
}
