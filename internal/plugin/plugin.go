package plugin

import "github.com/alexisbeaulieu97/workbench/internal/locale"

// Plugin is the contract every workbench plugin satisfies.
//
// The registry calls Initialize once per load and Shutdown on unload. The host calls
// OnLocaleChanged and OnThemeChanged after the corresponding broadcast; hooks must be
// idempotent and must not change the locale or theme themselves.
type Plugin interface {
	// Describe returns the plugin's identity. Name and Description may be
	// re-localized once the plugin is initialized; ID never changes.
	Describe() Descriptor

	Initialize(caps *Capabilities) error
	Shutdown()
	IsInitialized() bool

	// UIHandle returns the plugin's surface for the presentation layer. The host
	// treats it as opaque.
	UIHandle() any

	OnLocaleChanged(l locale.Locale)
	OnThemeChanged(dark bool)
}

// Factory constructs one plugin instance. Name identifies the factory in logs and
// error events before a descriptor is available.
type Factory struct {
	Name string
	New  func() (Plugin, error)
}

// Discovery produces the factories to load, in discovery order.
type Discovery func() []Factory

// Static returns a discovery strategy over a fixed list of factories.
func Static(factories ...Factory) Discovery {
	list := append([]Factory(nil), factories...)
	return func() []Factory {
		return append([]Factory(nil), list...)
	}
}
