// Package theme tracks the active colour palette and broadcasts palette swaps to
// subscribers.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Built-in palette names.
const (
	Light = "light"
	Dark  = "dark"
)

// Palette describes the semantic colour slots the shell and plugin panels render with.
type Palette struct {
	Name string
	Dark bool

	Background lipgloss.Color
	Surface    lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Border     lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Danger     lipgloss.Color
}

// Validate reports palettes that cannot be registered.
func (p Palette) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("palette name is required")
	}
	if p.Foreground == "" || p.Accent == "" {
		return fmt.Errorf("palette %q must define foreground and accent colours", p.Name)
	}
	return nil
}

// LightPalette returns the built-in light palette.
func LightPalette() Palette {
	return Palette{
		Name:       Light,
		Dark:       false,
		Background: lipgloss.Color("#f9fafb"),
		Surface:    lipgloss.Color("#e2e8f0"),
		Foreground: lipgloss.Color("#111827"),
		Muted:      lipgloss.Color("#64748b"),
		Accent:     lipgloss.Color("#2563eb"),
		Border:     lipgloss.Color("#cbd5e1"),
		Success:    lipgloss.Color("#16a34a"),
		Warning:    lipgloss.Color("#ca8a04"),
		Danger:     lipgloss.Color("#dc2626"),
	}
}

// DarkPalette returns the built-in dark palette.
func DarkPalette() Palette {
	return Palette{
		Name:       Dark,
		Dark:       true,
		Background: lipgloss.Color("#111827"),
		Surface:    lipgloss.Color("#1f2937"),
		Foreground: lipgloss.Color("#f9fafb"),
		Muted:      lipgloss.Color("#94a3b8"),
		Accent:     lipgloss.Color("#60a5fa"),
		Border:     lipgloss.Color("#334155"),
		Success:    lipgloss.Color("#4ade80"),
		Warning:    lipgloss.Color("#facc15"),
		Danger:     lipgloss.Color("#f87171"),
	}
}
