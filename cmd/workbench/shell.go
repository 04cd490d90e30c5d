package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/workbench/internal/tui"
)

func runShell(cmd *cobra.Command, flags *rootFlags) error {
	app, err := openApp(cmd, flags)
	if err != nil {
		return err
	}
	defer app.Close()

	if !isTerminal(cmd.OutOrStdout()) {
		return renderPluginTable(cmd, app, false)
	}

	app.Logger.Debug("launching shell")
	program := tea.NewProgram(tui.NewModel(app.Host), tea.WithAltScreen(), tea.WithOutput(cmd.OutOrStdout()))
	if _, err := program.Run(); err != nil {
		return newCommandError("run the shell", "terminal UI", err, "Run a subcommand instead, for example 'workbench plugins list'.")
	}
	return nil
}

func isTerminal(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
