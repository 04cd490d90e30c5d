package plugin

import (
	"sync"

	"github.com/alexisbeaulieu97/workbench/internal/locale"
)

// Base tracks the capabilities and initialized flag for plugins that embed it.
// Embedders provide Describe and override the hooks they care about.
type Base struct {
	mu   sync.RWMutex
	caps *Capabilities
}

// Initialize keeps caps.
func (b *Base) Initialize(caps *Capabilities) error {
	b.Attach(caps)
	return nil
}

// Attach stores caps; embedders that override Initialize call it on success.
func (b *Base) Attach(caps *Capabilities) {
	b.mu.Lock()
	b.caps = caps
	b.mu.Unlock()
}

// Shutdown drops the capabilities.
func (b *Base) Shutdown() {
	b.mu.Lock()
	b.caps = nil
	b.mu.Unlock()
}

func (b *Base) IsInitialized() bool {
	return b.Capabilities() != nil
}

// Capabilities returns the attached context, or nil before initialization.
func (b *Base) Capabilities() *Capabilities {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.caps
}

func (b *Base) UIHandle() any { return nil }

func (b *Base) OnLocaleChanged(locale.Locale) {}

func (b *Base) OnThemeChanged(bool) {}

// Localize replaces the descriptor's name and description with their translations
// once the plugin is initialized. Before that, d is returned unchanged.
func (b *Base) Localize(d Descriptor, nameKey, descriptionKey string) Descriptor {
	caps := b.Capabilities()
	if caps == nil {
		return d
	}
	if caps.HasKey(nameKey) {
		d.Name = caps.GetString(nameKey)
	}
	if caps.HasKey(descriptionKey) {
		d.Description = caps.GetString(descriptionKey)
	}
	return d
}
