package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newLocaleCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locale",
		Short: "Show or change the interface language",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List supported languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()

			current := app.Host.CurrentLocale()
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, l := range app.Host.Locales() {
				marker := " "
				if l.Equal(current) {
					marker = "*"
				}
				fmt.Fprintf(writer, "%s\t%s\t%s\n", marker, l, l.DisplayName())
			}
			return writer.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <tag>",
		Short: "Switch the interface language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Host.SwitchLocale(args[0]); err != nil {
				return newCommandError("set locale", args[0], err, "Run 'workbench locale list' to see supported languages.")
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.Host.Tf("status.locale", app.Host.CurrentLocale().DisplayName()))
			return nil
		},
	})

	return cmd
}
