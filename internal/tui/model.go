// Package tui is the terminal shell: one tab per visible plugin, a status bar and
// a plugin manager overlay.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/workbench/internal/host"
	"github.com/alexisbeaulieu97/workbench/internal/theme"
)

// Runner is implemented by surfaces that can redo their last action.
type Runner interface {
	Rerun(ctx context.Context) error
}

// Model is the bubbletea state of the shell.
type Model struct {
	host Host

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	styles  theme.Styles

	tabs   []host.PluginView
	active int

	manager bool
	entries []host.PluginView
	cursor  int

	running  bool
	errMsg   string
	quitting bool

	width  int
	height int
}

// NewModel builds the shell over h.
func NewModel(h Host) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{
		host:    h,
		help:    help.New(),
		spinner: s,
		width:   80,
		height:  24,
	}
	m.refresh()
	return m
}

// Init starts no background work.
func (m Model) Init() tea.Cmd {
	return nil
}

// refresh re-reads plugins, strings and styles from the host.
func (m *Model) refresh() {
	m.keys = newKeyMap(m.host.T)
	m.styles = m.host.Styles()
	m.spinner.Style = m.styles.Muted

	activeID := ""
	if m.active < len(m.tabs) {
		activeID = m.tabs[m.active].ID
	}
	m.tabs = m.host.Plugins()
	m.active = 0
	for i, tab := range m.tabs {
		if tab.ID == activeID {
			m.active = i
		}
	}

	m.entries = m.host.AllPlugins()
	if m.cursor >= len(m.entries) {
		m.cursor = max(0, len(m.entries)-1)
	}
}

// ActiveTab returns the selected plugin, if any.
func (m Model) ActiveTab() (host.PluginView, bool) {
	if len(m.tabs) == 0 {
		return host.PluginView{}, false
	}
	return m.tabs[m.active], true
}

// InManager reports whether the plugin manager is open.
func (m Model) InManager() bool {
	return m.manager
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}
