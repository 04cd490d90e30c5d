package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// runFinishedMsg reports the end of a surface rerun.
type runFinishedMsg struct {
	id  string
	err error
}

func rerunCmd(id string, r Runner) tea.Cmd {
	return func() tea.Msg {
		return runFinishedMsg{id: id, err: r.Rerun(context.Background())}
	}
}
