package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/workbench/internal/plugins/renamer"
)

type renameOptions struct {
	apply      bool
	extensions []string
	showDiff   bool
}

func newRenameCmd(flags *rootFlags) *cobra.Command {
	opts := &renameOptions{}

	cmd := &cobra.Command{
		Use:   "rename <root> <from> <to>",
		Short: "Rename a dotted package and move its files",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRename(cmd, flags, opts, args[0], args[1], args[2])
		},
	}

	cmd.Flags().BoolVar(&opts.apply, "apply", false, "Write the changes instead of previewing them")
	cmd.Flags().StringSliceVar(&opts.extensions, "ext", nil, "File extensions to scan")
	cmd.Flags().BoolVar(&opts.showDiff, "diff", false, "Print the diff of every rewritten file")
	return cmd
}

func runRename(cmd *cobra.Command, flags *rootFlags, opts *renameOptions, root, from, to string) error {
	app, err := openApp(cmd, flags)
	if err != nil {
		return err
	}
	defer app.Close()

	panel, viaPlugin := pluginHandle[*renamer.Panel](app, renamer.ID)
	var plan *renamer.Plan
	if viaPlugin {
		plan, err = panel.Plan(root, from, to, opts.extensions)
	} else {
		plan, err = renamer.Prepare(root, from, to, opts.extensions)
	}
	if err != nil {
		return newCommandError("plan rename", from+" -> "+to, err, "Use dotted package names such as com.example.app.")
	}

	out := cmd.OutOrStdout()
	if len(plan.Changes) == 0 {
		fmt.Fprintln(out, app.Host.T("renamer.none"))
		return nil
	}

	fmt.Fprintln(out, app.Host.Tf("renamer.changes", len(plan.Changes)))
	for _, c := range plan.Changes {
		oldRel, _ := filepath.Rel(root, c.OldPath)
		if c.Moved() {
			newRel, _ := filepath.Rel(root, c.NewPath)
			fmt.Fprintf(out, "  %s -> %s\n", oldRel, newRel)
		} else {
			fmt.Fprintf(out, "  %s\n", oldRel)
		}
		if opts.showDiff && c.Diff != "" {
			fmt.Fprint(out, c.Diff)
		}
	}

	if !opts.apply {
		return nil
	}
	if viaPlugin {
		err = panel.Apply()
	} else {
		err = renamer.Apply(plan)
	}
	if err != nil {
		return newCommandError("apply rename", from+" -> "+to, err, "Resolve the conflicting files and run the rename again.")
	}
	return nil
}
