package counter

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/workbench/internal/plugin"
	"github.com/alexisbeaulieu97/workbench/internal/theme"
)

const (
	settingRoot            = "root"
	settingExtensions      = "extensions"
	settingExcludes        = "excludes"
	settingIncludeBlank    = "include_blank"
	settingIncludeComments = "include_comments"
	settingGitignore       = "gitignore"
	settingTemplate        = "template"
	settingRecentRoots     = "recent_roots"

	// MaxRecentRoots caps the remembered folder history.
	MaxRecentRoots = 10
)

// DefaultExtensions and DefaultExcludes seed a panel with no saved settings.
var (
	DefaultExtensions = []string{".java", ".go", ".py", ".js", ".ts", ".xml", ".html"}
	DefaultExcludes   = []string{".git", ".idea", "target", "build", "node_modules"}
)

// Panel is the counter's terminal surface. It remembers the last options in the
// plugin's settings and renders the last report.
type Panel struct {
	mu      sync.RWMutex
	caps    *plugin.Capabilities
	counter *Counter
	styles  theme.Styles
	labels  map[string]string
	report  *Report
	lastErr error
}

func newPanel(caps *plugin.Capabilities, counter *Counter) *Panel {
	p := &Panel{caps: caps, counter: counter}
	p.Refresh()
	return p
}

// Refresh re-reads labels and styles from the current locale and theme.
func (p *Panel) Refresh() {
	styles := theme.NewStyles(theme.LightPalette())
	if svc := p.caps.Theme(); svc != nil {
		styles = svc.Styles()
	}
	labels := make(map[string]string)
	for _, key := range []string{"name", "root", "extensions", "excludes", "files", "total", "code", "comment", "blank", "todo", "no_data", "template", "recent"} {
		labels[key] = p.caps.GetString("counter." + key)
	}

	p.mu.Lock()
	p.styles = styles
	p.labels = labels
	p.mu.Unlock()
}

// Options returns the saved options, falling back to the defaults.
func (p *Panel) Options() Options {
	s := p.caps.Settings()
	return Options{
		Root:             s.Get(settingRoot, "."),
		Extensions:       splitList(s.Get(settingExtensions, ""), DefaultExtensions),
		ExcludeDirs:      splitList(s.Get(settingExcludes, ""), DefaultExcludes),
		IncludeBlank:     s.GetBool(settingIncludeBlank, true),
		IncludeComments:  s.GetBool(settingIncludeComments, true),
		RespectGitignore: s.GetBool(settingGitignore, false),
	}
}

// Run counts with opts, saves them as the new defaults and keeps the report.
func (p *Panel) Run(ctx context.Context, opts Options) (*Report, error) {
	report, err := p.counter.Count(ctx, opts)

	p.mu.Lock()
	p.lastErr = err
	if err == nil {
		p.report = report
	}
	p.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s := p.caps.Settings()
	saves := []error{
		p.addRecentRoot(opts.Root),
		s.Put(settingRoot, opts.Root),
		s.Put(settingExtensions, strings.Join(NormalizeExtensions(opts.Extensions), ",")),
		s.Put(settingExcludes, strings.Join(opts.ExcludeDirs, ",")),
		s.PutBool(settingIncludeBlank, opts.IncludeBlank),
		s.PutBool(settingIncludeComments, opts.IncludeComments),
		s.PutBool(settingGitignore, opts.RespectGitignore),
	}
	for _, saveErr := range saves {
		if saveErr != nil {
			p.caps.Logger().Error(saveErr, "could not save counter settings")
			break
		}
	}
	return report, nil
}

// RecentRoots returns the counted folders, most recent first.
func (p *Panel) RecentRoots() []string {
	return splitLines(p.caps.Settings().Get(settingRecentRoots, ""))
}

// addRecentRoot moves root to the front of the history, dropping a case-insensitive
// duplicate and anything past MaxRecentRoots.
func (p *Panel) addRecentRoot(root string) error {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil
	}
	roots := []string{root}
	for _, existing := range p.RecentRoots() {
		if len(roots) == MaxRecentRoots {
			break
		}
		if !strings.EqualFold(existing, root) {
			roots = append(roots, existing)
		}
	}
	return p.caps.Settings().Put(settingRecentRoots, strings.Join(roots, "\n"))
}

// Template returns the name of the last applied template, or "" when none was.
func (p *Panel) Template() string {
	return p.caps.Settings().Get(settingTemplate, "")
}

// ApplyTemplate saves the named template's extensions and exclusions as the panel
// options. The Custom template keeps the current extensions.
func (p *Panel) ApplyTemplate(name string) (Options, error) {
	tmpl, ok := LookupTemplate(name)
	if !ok {
		return Options{}, fmt.Errorf("unknown template %q", name)
	}

	current := p.Options()
	opts := tmpl.Apply(current)
	if tmpl.Name == CustomTemplate {
		opts.Extensions = current.Extensions
	}

	s := p.caps.Settings()
	for _, err := range []error{
		s.Put(settingTemplate, tmpl.Name),
		s.Put(settingExtensions, strings.Join(NormalizeExtensions(opts.Extensions), ",")),
		s.Put(settingExcludes, strings.Join(opts.ExcludeDirs, ",")),
	} {
		if err != nil {
			return Options{}, err
		}
	}
	return opts, nil
}

// Rerun counts again with the saved options.
func (p *Panel) Rerun(ctx context.Context) error {
	_, err := p.Run(ctx, p.Options())
	return err
}

// Report returns the last successful report, or nil.
func (p *Panel) Report() *Report {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.report
}

// View renders the settings and the last report within width columns.
func (p *Panel) View(width int) string {
	opts := p.Options()

	p.mu.RLock()
	defer p.mu.RUnlock()
	st, l := p.styles, p.labels

	var b strings.Builder
	b.WriteString(st.Title.Render(l["name"]))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s: %s\n", st.Muted.Render(l["root"]), opts.Root)
	if name := p.Template(); name != "" {
		fmt.Fprintf(&b, "%s: %s\n", st.Muted.Render(l["template"]), name)
	}
	fmt.Fprintf(&b, "%s: %s\n", st.Muted.Render(l["extensions"]), strings.Join(NormalizeExtensions(opts.Extensions), " "))
	fmt.Fprintf(&b, "%s: %s\n", st.Muted.Render(l["excludes"]), strings.Join(opts.ExcludeDirs, " "))

	if p.lastErr != nil {
		b.WriteString(st.Failure.Render(p.lastErr.Error()))
		b.WriteString("\n")
	}
	if p.report == nil {
		b.WriteString(st.Muted.Render(l["no_data"]))
		return lipgloss.NewStyle().MaxWidth(width).Render(b.String())
	}

	b.WriteString(st.Section.Render(l["total"]))
	b.WriteString("\n")
	total := p.report.Total
	rows := [][2]string{
		{l["files"], strconv.Itoa(len(p.report.Files))},
		{l["total"], strconv.FormatInt(total.Lines, 10)},
		{l["code"], strconv.FormatInt(total.Code, 10)},
		{l["comment"], strconv.FormatInt(total.Comment, 10)},
		{l["blank"], strconv.FormatInt(total.Blank, 10)},
		{l["todo"], strconv.FormatInt(total.Todo, 10)},
	}
	labelWidth := 0
	for _, row := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(row[0]))
	}
	for _, row := range rows {
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(row[0]))
		fmt.Fprintf(&b, "  %s%s  %s\n", row[0], pad, st.Body.Render(row[1]))
	}

	if recent := p.RecentRoots(); len(recent) > 1 {
		fmt.Fprintf(&b, "%s: %s\n", st.Muted.Render(l["recent"]), strings.Join(recent[1:], ", "))
	}

	if len(p.report.ByExtension) > 0 {
		b.WriteString("\n")
		for _, ext := range p.report.ByExtension {
			fmt.Fprintf(&b, "  %-8s %5d %s  %8d\n", ext.Ext, ext.Files, st.Muted.Render(l["files"]), ext.Stat.Lines)
		}
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(strings.TrimRight(b.String(), "\n"))
}

func splitList(raw string, def []string) []string {
	if strings.TrimSpace(raw) == "" {
		return append([]string(nil), def...)
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func splitLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
