package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/workbench/internal/plugins/formatter"
)

type formatOptions struct {
	write     bool
	tabWidth  int
	maxBlank  int
	noExpand  bool
	encoding  string
	quietDiff bool
}

func newFormatCmd(flags *rootFlags) *cobra.Command {
	opts := &formatOptions{}

	cmd := &cobra.Command{
		Use:   "format <file>",
		Short: "Normalize whitespace in a source file",
		Long:  "Preview (default) or apply whitespace normalization: line endings, trailing spaces, leading tabs and blank-line runs.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, flags, opts, args[0])
		},
	}

	defaults := formatter.DefaultOptions()
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "Write the formatted file back")
	cmd.Flags().IntVar(&opts.tabWidth, "tab-width", defaults.TabWidth, "Spaces per leading tab")
	cmd.Flags().IntVar(&opts.maxBlank, "max-blank", defaults.MaxBlankLines, "Longest allowed run of blank lines")
	cmd.Flags().BoolVar(&opts.noExpand, "keep-tabs", false, "Leave leading tabs alone")
	cmd.Flags().StringVar(&opts.encoding, "encoding", "", "File encoding (utf-8, latin-1, windows-1252, utf-16)")
	cmd.Flags().BoolVarP(&opts.quietDiff, "quiet", "q", false, "Do not print the diff")
	return cmd
}

func runFormat(cmd *cobra.Command, flags *rootFlags, opts *formatOptions, path string) error {
	app, err := openApp(cmd, flags)
	if err != nil {
		return err
	}
	defer app.Close()

	formatOpts := formatter.Options{
		TabWidth:      opts.tabWidth,
		ExpandTabs:    !opts.noExpand,
		MaxBlankLines: opts.maxBlank,
		Encoding:      opts.encoding,
	}

	var result *formatter.Result
	if panel, ok := pluginHandle[*formatter.Panel](app, formatter.ID); ok {
		if err := panel.SaveOptions(formatOpts); err != nil {
			return newCommandError("format", path, err, "Check the formatting flags.")
		}
		result, err = panel.FormatFile(path, opts.write)
	} else {
		result, err = formatter.FormatFile(path, formatOpts, opts.write)
	}
	if err != nil {
		return newCommandError("format", path, err, "Pass a readable text file.")
	}

	out := cmd.OutOrStdout()
	if !result.Changed {
		fmt.Fprintf(out, "%s: %s\n", path, app.Host.T("formatter.unchanged"))
		return nil
	}
	if !opts.quietDiff {
		fmt.Fprint(out, result.Diff)
	}
	fmt.Fprintf(out, "%s: %s\n", path, app.Host.Tf("formatter.changed", result.Lines))
	return nil
}
