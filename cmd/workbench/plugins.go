package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type pluginsListOptions struct {
	jsonOutput bool
}

func newPluginsCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "Inspect and toggle plugins",
	}
	cmd.AddCommand(newPluginsListCmd(flags))
	cmd.AddCommand(newPluginsToggleCmd(flags, "enable", true))
	cmd.AddCommand(newPluginsToggleCmd(flags, "disable", false))
	return cmd
}

func newPluginsListCmd(flags *rootFlags) *cobra.Command {
	opts := &pluginsListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List resident plugins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()
			return renderPluginTable(cmd, app, opts.jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

type pluginJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Author      string `json:"author,omitempty"`
	State       string `json:"state"`
	Enabled     bool   `json:"enabled"`
}

type pluginsJSONPayload struct {
	Version string       `json:"version"`
	Locale  string       `json:"locale"`
	Count   int          `json:"count"`
	Plugins []pluginJSON `json:"plugins"`
}

func renderPluginTable(cmd *cobra.Command, app *AppContext, jsonOutput bool) error {
	views := app.Host.AllPlugins()

	if jsonOutput {
		payload := pluginsJSONPayload{
			Version: "1.0",
			Locale:  app.Host.CurrentLocale().String(),
			Count:   len(views),
			Plugins: make([]pluginJSON, len(views)),
		}
		for i, v := range views {
			payload.Plugins[i] = pluginJSON{
				ID:          v.ID,
				Name:        v.Name,
				Version:     v.Version,
				Description: v.Description,
				Author:      v.Author,
				State:       v.State.String(),
				Enabled:     v.Enabled,
			}
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	out := cmd.OutOrStdout()
	if len(views) == 0 {
		fmt.Fprintln(out, app.Host.T("manager.empty"))
		return nil
	}

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tNAME\tVERSION\tSTATE")
	for _, v := range views {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", v.ID, v.Name, v.Version, app.Host.T("state."+v.State.String()))
	}
	return writer.Flush()
}

func newPluginsToggleCmd(flags *rootFlags, verb string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <id>",
		Short: fmt.Sprintf("%s a plugin", capitalize(verb)),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()

			id := args[0]
			if err := app.Host.SetPluginEnabled(id, enabled); err != nil {
				return newCommandError(verb+" plugin", id, err, "Run 'workbench plugins list' to see plugin ids.")
			}
			state := app.Host.T("manager.disabled")
			if enabled {
				state = app.Host.T("manager.enabled")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", id, state)
			return nil
		},
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
