package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/workbench/internal/plugins/counter"
)

type countOptions struct {
	extensions []string
	excludes   []string
	blank      bool
	comments   bool
	gitignore  bool
	jsonOutput bool
	files      bool
	template   string
}

func newCountCmd(flags *rootFlags) *cobra.Command {
	opts := &countOptions{}

	cmd := &cobra.Command{
		Use:   "count <dir>",
		Short: "Count code, comment, blank and TODO lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(cmd, flags, opts, args[0])
		},
	}

	cmd.Flags().StringSliceVar(&opts.extensions, "ext", nil, "File extensions to include (default from configuration)")
	cmd.Flags().StringSliceVar(&opts.excludes, "exclude", nil, "Directory names to skip (default from configuration)")
	cmd.Flags().BoolVar(&opts.blank, "blank", true, "Include blank lines in the effective total")
	cmd.Flags().BoolVar(&opts.comments, "comments", true, "Include comment lines in the effective total")
	cmd.Flags().BoolVar(&opts.gitignore, "gitignore", false, "Honour the root .gitignore")
	cmd.Flags().BoolVar(&opts.files, "files", false, "List every counted file")
	cmd.Flags().StringVar(&opts.template, "template", "", "Start from a file-type template, e.g. \"Java Web\" or Python")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

func runCount(cmd *cobra.Command, flags *rootFlags, opts *countOptions, root string) error {
	app, err := openApp(cmd, flags)
	if err != nil {
		return err
	}
	defer app.Close()

	countOpts := counter.Options{
		Root:             root,
		Extensions:       opts.extensions,
		ExcludeDirs:      opts.excludes,
		IncludeBlank:     opts.blank,
		IncludeComments:  opts.comments,
		RespectGitignore: opts.gitignore,
		Workers:          app.Config.Counter.Workers,
	}
	panel, viaPlugin := pluginHandle[*counter.Panel](app, counter.ID)
	if opts.template != "" {
		var base counter.Options
		if viaPlugin {
			base, err = panel.ApplyTemplate(opts.template)
		} else if tmpl, ok := counter.LookupTemplate(opts.template); ok {
			base = tmpl.Apply(base)
		} else {
			err = fmt.Errorf("unknown template %q", opts.template)
		}
		if err != nil {
			return newCommandError("apply template", opts.template, err, "Use one of the built-in templates such as \"Java Web\", Frontend or Python.")
		}
		if len(countOpts.Extensions) == 0 {
			countOpts.Extensions = base.Extensions
		}
		if len(countOpts.ExcludeDirs) == 0 {
			countOpts.ExcludeDirs = base.ExcludeDirs
		}
	}
	if len(countOpts.Extensions) == 0 {
		countOpts.Extensions = app.Config.Counter.Extensions
	}
	if len(countOpts.ExcludeDirs) == 0 {
		countOpts.ExcludeDirs = app.Config.Counter.ExcludeDirs
	}

	var report *counter.Report
	if viaPlugin {
		report, err = panel.Run(cmd.Context(), countOpts)
	} else {
		report, err = counter.New(app.Logger).Count(cmd.Context(), countOpts)
	}
	if err != nil {
		return newCommandError("count lines", root, err, "Pass an existing directory.")
	}

	if opts.jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}

	t := app.Host.T
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
	if opts.files {
		for _, f := range report.Files {
			fmt.Fprintf(writer, "%d\t%d\t%d\t%d\t%s\t\n", f.Code, f.Comment, f.Blank, f.Lines, f.Path)
		}
		fmt.Fprintln(writer, "\t\t\t\t\t")
	}
	fmt.Fprintf(writer, "%s\t%d\t\n", t("counter.files"), len(report.Files))
	fmt.Fprintf(writer, "%s\t%d\t\n", t("counter.code"), report.Total.Code)
	fmt.Fprintf(writer, "%s\t%d\t\n", t("counter.comment"), report.Total.Comment)
	fmt.Fprintf(writer, "%s\t%d\t\n", t("counter.blank"), report.Total.Blank)
	fmt.Fprintf(writer, "%s\t%d\t\n", t("counter.todo"), report.Total.Todo)
	fmt.Fprintf(writer, "%s\t%d\t\n", t("counter.total"), report.Total.Lines)
	return writer.Flush()
}

// pluginHandle returns the UI handle of an enabled, initialized plugin as T.
func pluginHandle[T any](app *AppContext, id string) (T, bool) {
	var zero T
	for _, view := range app.Host.Plugins() {
		if view.ID != id {
			continue
		}
		handle, ok := view.Handle.(T)
		return handle, ok
	}
	return zero, false
}
