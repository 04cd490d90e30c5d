package theme

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Applier performs the actual palette swap on the rendering backend.
type Applier interface {
	Apply(Palette) error
}

// RendererApplier points a lipgloss renderer at the palette's background.
type RendererApplier struct {
	mu       sync.Mutex
	renderer *lipgloss.Renderer
	active   string
}

// NewRendererApplier wraps r; a nil renderer uses the lipgloss default renderer.
func NewRendererApplier(r *lipgloss.Renderer) *RendererApplier {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &RendererApplier{renderer: r}
}

// Apply switches the renderer's dark-background flag.
func (a *RendererApplier) Apply(p Palette) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.renderer.SetHasDarkBackground(p.Dark)
	a.active = p.Name
	return nil
}

// Active returns the name of the last applied palette.
func (a *RendererApplier) Active() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

// Renderer exposes the renderer styles should be created from.
func (a *RendererApplier) Renderer() *lipgloss.Renderer {
	return a.renderer
}

// ApplierFunc adapts a function to Applier.
type ApplierFunc func(Palette) error

// Apply calls f.
func (f ApplierFunc) Apply(p Palette) error {
	return f(p)
}
