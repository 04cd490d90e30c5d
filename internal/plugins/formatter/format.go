// Package formatter implements the whitespace formatter plugin.
package formatter

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/alexisbeaulieu97/workbench/internal/fsutil"
)

// Options controls Format.
type Options struct {
	TabWidth      int    `json:"tab_width"`
	ExpandTabs    bool   `json:"expand_tabs"`
	MaxBlankLines int    `json:"max_blank_lines"`
	Encoding      string `json:"encoding,omitempty"`
}

// DefaultOptions expands tabs to four spaces and keeps at most one blank line.
func DefaultOptions() Options {
	return Options{TabWidth: 4, ExpandTabs: true, MaxBlankLines: 1}
}

// Validate rejects options Format cannot honour.
func (o Options) Validate() error {
	if o.TabWidth < 1 || o.TabWidth > 16 {
		return fmt.Errorf("tab width must be between 1 and 16, got %d", o.TabWidth)
	}
	if o.MaxBlankLines < 0 {
		return fmt.Errorf("max blank lines must not be negative, got %d", o.MaxBlankLines)
	}
	if !fsutil.KnownEncoding(o.Encoding) {
		return fmt.Errorf("unknown encoding %q", o.Encoding)
	}
	return nil
}

// Format normalizes line endings to "\n", trims trailing whitespace, expands leading
// tabs, collapses long runs of blank lines and ensures a single trailing newline.
// Empty input stays empty.
func Format(src string, opts Options) string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")

	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines))
	blankRun := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\f\v")
		if opts.ExpandTabs {
			line = expandLeadingTabs(line, opts.TabWidth)
		}
		if line == "" {
			blankRun++
			if blankRun > opts.MaxBlankLines {
				continue
			}
		} else {
			blankRun = 0
		}
		out = append(out, line)
	}

	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}

func expandLeadingTabs(line string, width int) string {
	if width <= 0 {
		return line
	}
	col := 0
	i := 0
	for ; i < len(line); i++ {
		switch line[i] {
		case ' ':
			col++
		case '\t':
			col += width - col%width
		default:
			return strings.Repeat(" ", col) + line[i:]
		}
	}
	return strings.Repeat(" ", col)
}

// Preview returns the unified diff between src and its formatted form, or "" when
// src is already formatted.
func Preview(name, src string, opts Options) (string, error) {
	formatted := Format(src, opts)
	if formatted == src {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(src),
		B:        difflib.SplitLines(formatted),
		FromFile: name,
		ToFile:   name + " (formatted)",
		Context:  3,
	})
}

// Result describes one formatted file.
type Result struct {
	Path    string `json:"path"`
	Changed bool   `json:"changed"`
	Lines   int    `json:"changed_lines"`
	Diff    string `json:"diff,omitempty"`
	Written bool   `json:"written"`
}

// FormatFile formats path in its configured encoding. With write set, a changed file
// is replaced atomically and keeps its permissions.
func FormatFile(path string, opts Options, write bool) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	file, err := fsutil.ReadText(path, opts.Encoding)
	if err != nil {
		return nil, err
	}

	diff, err := Preview(path, file.Content, opts)
	if err != nil {
		return nil, fmt.Errorf("diff %s: %w", path, err)
	}
	result := &Result{Path: path, Changed: diff != "", Diff: diff, Lines: changedLines(diff)}
	if !result.Changed || !write {
		return result, nil
	}
	if err := file.Write(Format(file.Content, opts)); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	result.Written = true
	return result, nil
}

// changedLines counts the removed lines of a unified diff.
func changedLines(diff string) int {
	n := 0
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---") {
			n++
		}
	}
	return n
}
