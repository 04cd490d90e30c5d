package renamer

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/workbench/internal/plugin"
	"github.com/alexisbeaulieu97/workbench/internal/theme"
)

// Panel keeps the last plan and renders it. Labels and styles are read on every
// View, so the panel needs no locale or theme hooks.
type Panel struct {
	mu   sync.RWMutex
	caps *plugin.Capabilities
	plan *Plan
}

// Plan computes a rename plan, remembers the inputs and keeps the plan for View.
func (p *Panel) Plan(root, from, to string, exts []string) (*Plan, error) {
	plan, err := Prepare(root, from, to, exts)
	if err != nil {
		return nil, err
	}

	s := p.caps.Settings()
	for key, value := range map[string]string{"root": root, "from": from, "to": to} {
		if err := s.Put(key, value); err != nil {
			p.caps.Logger().Error(err, "could not save renamer settings")
		}
	}

	p.mu.Lock()
	p.plan = plan
	p.mu.Unlock()
	return plan, nil
}

// Apply applies the last plan and clears it.
func (p *Panel) Apply() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.plan == nil {
		return fmt.Errorf("no rename has been planned")
	}
	if err := Apply(p.plan); err != nil {
		return err
	}
	p.plan = nil
	return nil
}

// Current returns the pending plan, or nil.
func (p *Panel) Current() *Plan {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.plan
}

// Last returns the saved root, source and target packages.
func (p *Panel) Last() (root, from, to string) {
	s := p.caps.Settings()
	return s.Get("root", "."), s.Get("from", ""), s.Get("to", "")
}

func (p *Panel) View(width int) string {
	st := theme.NewStyles(theme.LightPalette())
	if svc := p.caps.Theme(); svc != nil {
		st = svc.Styles()
	}
	_, from, to := p.Last()
	plan := p.Current()

	var b strings.Builder
	b.WriteString(st.Title.Render(p.caps.GetString("renamer.name")))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s: %s\n", st.Muted.Render(p.caps.GetString("renamer.from")), from)
	fmt.Fprintf(&b, "%s: %s\n", st.Muted.Render(p.caps.GetString("renamer.to")), to)

	if plan == nil || len(plan.Changes) == 0 {
		b.WriteString(st.Muted.Render(p.caps.GetString("renamer.none")))
		return lipgloss.NewStyle().MaxWidth(width).Render(b.String())
	}

	b.WriteString(st.Warning.Render(p.caps.GetStringf("renamer.changes", len(plan.Changes))))
	for _, c := range plan.Changes {
		b.WriteString("\n  ")
		if c.Moved() {
			fmt.Fprintf(&b, "%s -> %s", relative(plan.Root, c.OldPath), relative(plan.Root, c.NewPath))
		} else {
			b.WriteString(relative(plan.Root, c.OldPath))
		}
		if c.Replacements > 0 {
			b.WriteString(st.Muted.Render(fmt.Sprintf(" (%d)", c.Replacements)))
		}
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(b.String())
}

func relative(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
