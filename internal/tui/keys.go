package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Language key.Binding
	Theme    key.Binding
	Manager  key.Binding
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Run      key.Binding
	Quit     key.Binding
}

// newKeyMap builds the bindings with help text in the current locale.
func newKeyMap(t func(string) string) keyMap {
	return keyMap{
		Next:     key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab", t("menu.next"))),
		Prev:     key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab", t("menu.prev"))),
		Language: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", t("menu.language"))),
		Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", t("menu.theme"))),
		Manager:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", t("menu.plugins"))),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", t("menu.toggle"))),
		Run:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", t("menu.run"))),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", t("menu.quit"))),
	}
}

// shellKeys is the help set for the plugin tabs.
type shellKeys keyMap

func (k shellKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Language, k.Theme, k.Manager, k.Run, k.Quit}
}

func (k shellKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev}, {k.Language, k.Theme, k.Manager}, {k.Run, k.Quit}}
}

// managerKeys is the help set for the plugin manager.
type managerKeys keyMap

func (k managerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Manager, k.Quit}
}

func (k managerKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
