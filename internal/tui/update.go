package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles bubbletea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case runFinishedMsg:
		m.running = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		} else {
			m.errMsg = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Manager):
		m.manager = !m.manager
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Language):
		m.report(m.host.CycleLocale())
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		m.report(m.host.ToggleTheme())
		m.refresh()
		return m, nil
	}

	if m.manager {
		return m.handleManagerKey(msg)
	}
	return m.handleShellKey(msg)
}

func (m Model) handleShellKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Next):
		if len(m.tabs) > 0 {
			m.active = (m.active + 1) % len(m.tabs)
		}
	case key.Matches(msg, m.keys.Prev):
		if len(m.tabs) > 0 {
			m.active = (m.active - 1 + len(m.tabs)) % len(m.tabs)
		}
	case key.Matches(msg, m.keys.Run):
		tab, ok := m.ActiveTab()
		if !ok || m.running {
			return m, nil
		}
		runner, ok := tab.Handle.(Runner)
		if !ok {
			return m, nil
		}
		m.running = true
		return m, tea.Batch(rerunCmd(tab.ID, runner), m.spinner.Tick)
	}
	return m, nil
}

func (m Model) handleManagerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if m.cursor < len(m.entries) {
			entry := m.entries[m.cursor]
			m.report(m.host.SetPluginEnabled(entry.ID, !entry.Enabled))
			m.refresh()
		}
	}
	return m, nil
}

func (m *Model) report(err error) {
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
}
