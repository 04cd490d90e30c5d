package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newThemeCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the color theme",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the active theme and the available palettes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, app.Host.Tf("status.theme", app.Host.ThemeName()))
			fmt.Fprintln(out, strings.Join(app.Host.ThemeNames(), ", "))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <dark|light|name>",
		Short: "Apply and remember a palette",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Host.ApplyNamedTheme(args[0]); err != nil {
				return newCommandError("set theme", args[0], err, "Run 'workbench theme show' to see available palettes.")
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.Host.Tf("status.theme", app.Host.ThemeName()))
			return nil
		},
	})

	return cmd
}
