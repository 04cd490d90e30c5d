package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "workbench",
		Short:         "Workbench hosts developer tool plugins in one localized shell",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, flags)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to the configuration file")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newPluginsCmd(flags))
	cmd.AddCommand(newLocaleCmd(flags))
	cmd.AddCommand(newThemeCmd(flags))
	cmd.AddCommand(newCountCmd(flags))
	cmd.AddCommand(newFormatCmd(flags))
	cmd.AddCommand(newRenameCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
