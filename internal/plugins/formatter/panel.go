package formatter

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/workbench/internal/plugin"
	"github.com/alexisbeaulieu97/workbench/internal/theme"
)

const previewLines = 20

// Panel shows the formatter options and the last preview.
type Panel struct {
	mu     sync.RWMutex
	caps   *plugin.Capabilities
	styles theme.Styles
	last   *Result
}

func newPanel(caps *plugin.Capabilities) *Panel {
	p := &Panel{caps: caps}
	p.Refresh()
	return p
}

func (p *Panel) Refresh() {
	styles := theme.NewStyles(theme.LightPalette())
	if svc := p.caps.Theme(); svc != nil {
		styles = svc.Styles()
	}
	p.mu.Lock()
	p.styles = styles
	p.mu.Unlock()
}

// Options returns the saved options, falling back to DefaultOptions.
func (p *Panel) Options() Options {
	def := DefaultOptions()
	s := p.caps.Settings()
	return Options{
		TabWidth:      atoi(s.Get("tab_width", ""), def.TabWidth),
		ExpandTabs:    s.GetBool("expand_tabs", def.ExpandTabs),
		MaxBlankLines: atoi(s.Get("max_blank_lines", ""), def.MaxBlankLines),
		Encoding:      s.Get("encoding", def.Encoding),
	}
}

// SaveOptions validates and stores opts.
func (p *Panel) SaveOptions(opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	s := p.caps.Settings()
	for _, err := range []error{
		s.Put("tab_width", strconv.Itoa(opts.TabWidth)),
		s.PutBool("expand_tabs", opts.ExpandTabs),
		s.Put("max_blank_lines", strconv.Itoa(opts.MaxBlankLines)),
		s.Put("encoding", opts.Encoding),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatFile formats path with the saved options and keeps the result for View.
func (p *Panel) FormatFile(path string, write bool) (*Result, error) {
	result, err := FormatFile(path, p.Options(), write)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	p.last = result
	p.mu.Unlock()
	return result, nil
}

// Last returns the most recent result, or nil.
func (p *Panel) Last() *Result {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}

func (p *Panel) View(width int) string {
	opts := p.Options()

	p.mu.RLock()
	st, last := p.styles, p.last
	p.mu.RUnlock()

	var b strings.Builder
	b.WriteString(st.Title.Render(p.caps.GetString("formatter.name")))
	b.WriteString("\n")
	b.WriteString(st.Muted.Render(p.caps.GetStringf("formatter.options", opts.TabWidth, opts.MaxBlankLines)))
	b.WriteString("\n")

	switch {
	case last == nil:
	case !last.Changed:
		b.WriteString(st.Success.Render(last.Path + ": " + p.caps.GetString("formatter.unchanged")))
		b.WriteString("\n")
	default:
		b.WriteString(st.Warning.Render(last.Path + ": " + p.caps.GetStringf("formatter.changed", last.Lines)))
		b.WriteString("\n")
		lines := strings.Split(strings.TrimRight(last.Diff, "\n"), "\n")
		if len(lines) > previewLines {
			lines = append(lines[:previewLines], "...")
		}
		for _, line := range lines {
			style := st.Body
			switch {
			case strings.HasPrefix(line, "+"):
				style = st.Success
			case strings.HasPrefix(line, "-"):
				style = st.Failure
			}
			b.WriteString(style.Render(line))
			b.WriteString("\n")
		}
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(strings.TrimRight(b.String(), "\n"))
}

func atoi(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return n
}
