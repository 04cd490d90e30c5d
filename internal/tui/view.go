package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the shell.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader()}
	if m.manager {
		sections = append(sections, m.renderManager())
	} else {
		sections = append(sections, m.renderBody())
	}
	if m.errMsg != "" {
		sections = append(sections, m.styles.Failure.Render(m.errMsg))
	}
	sections = append(sections, m.renderStatus(), m.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.styles.Title.Render(m.host.T("app.title"))
	if len(m.tabs) == 0 || m.manager {
		return title
	}

	tabs := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.active {
			tabs = append(tabs, m.styles.ActiveTab.Render(tab.Name))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(tab.Name))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m Model) renderBody() string {
	tab, ok := m.ActiveTab()
	if !ok {
		return m.styles.Muted.Render(m.host.T("shell.no_plugins"))
	}

	inner := max(20, m.width-4)
	var body string
	if surface, ok := tab.Handle.(Surface); ok {
		body = surface.View(inner)
	} else {
		body = m.styles.Muted.Render(m.host.T("shell.placeholder"))
	}
	if m.running {
		body = m.spinner.View() + " " + body
	}
	return m.styles.Panel.Width(inner).Render(body)
}

func (m Model) renderManager() string {
	lines := []string{m.styles.Section.Render(m.host.T("manager.title"))}
	if len(m.entries) == 0 {
		lines = append(lines, m.styles.Muted.Render(m.host.T("manager.empty")))
	}
	for i, entry := range m.entries {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		flag := m.styles.Success.Render(m.host.T("manager.enabled"))
		if !entry.Enabled {
			flag = m.styles.Warning.Render(m.host.T("manager.disabled"))
		}
		line := fmt.Sprintf("%s%s v%s  %s  %s", cursor, entry.Name, entry.Version, flag,
			m.styles.Muted.Render(m.host.T("state."+entry.State.String())))
		if i == m.cursor {
			line = m.styles.Selected.Render(line)
		}
		lines = append(lines, line)
		if entry.Description != "" {
			lines = append(lines, "    "+m.styles.Muted.Render(entry.Description))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatus() string {
	parts := []string{
		m.host.T("status.ready"),
		m.host.Tf("status.plugins", len(m.tabs)),
		m.host.Tf("status.locale", m.host.CurrentLocale().DisplayName()),
		m.host.Tf("status.theme", m.host.ThemeName()),
	}
	return m.styles.StatusBar.Render(strings.Join(parts, " · "))
}

func (m Model) renderHelp() string {
	if m.manager {
		return m.help.View(managerKeys(m.keys))
	}
	return m.help.View(shellKeys(m.keys))
}
