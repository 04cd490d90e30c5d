package host

import (
	"fmt"
	"slices"

	"github.com/alexisbeaulieu97/workbench/internal/event"
	"github.com/alexisbeaulieu97/workbench/internal/locale"
	"github.com/alexisbeaulieu97/workbench/internal/plugin"
	"github.com/alexisbeaulieu97/workbench/internal/prefs"
	"github.com/alexisbeaulieu97/workbench/internal/theme"
	workbencherrors "github.com/alexisbeaulieu97/workbench/pkg/errors"
)

// PluginView is what the presentation layer shows for one plugin.
type PluginView struct {
	ID          string
	Name        string
	Description string
	Version     string
	Author      string
	State       plugin.State
	Enabled     bool
	Initialized bool
	Handle      any
}

// Plugins returns the visible plugins: enabled ones, in list order.
func (h *Host) Plugins() []PluginView {
	var views []PluginView
	for _, view := range h.AllPlugins() {
		if view.Enabled {
			views = append(views, view)
		}
	}
	return views
}

// AllPlugins returns every resident plugin, including disabled ones.
func (h *Host) AllPlugins() []PluginView {
	statuses := h.registry.Snapshot()
	views := make([]PluginView, 0, len(statuses))
	for _, status := range statuses {
		desc := status.Descriptor
		var handle any
		p := status.Plugin
		_ = event.Recover(func() error {
			desc = p.Describe()
			if status.Enabled && status.Initialized {
				handle = p.UIHandle()
			}
			return nil
		})
		views = append(views, PluginView{
			ID:          status.ID,
			Name:        desc.Name,
			Description: desc.Description,
			Version:     desc.Version,
			Author:      desc.Author,
			State:       status.State,
			Enabled:     status.Enabled,
			Initialized: status.Initialized,
			Handle:      handle,
		})
	}
	return views
}

// SetPluginEnabled persists the flag. Enabling also initializes the plugin and brings
// it up to date with the current locale and theme; disabling keeps it resident but
// hidden and skipped by broadcasts.
func (h *Host) SetPluginEnabled(id string, enabled bool) error {
	if _, err := h.registry.Get(id); err != nil {
		return err
	}
	if err := h.registry.SetEnabled(id, enabled); err != nil {
		return err
	}
	if !enabled {
		return nil
	}

	wasInitialized := h.registry.Capabilities(id) != nil
	if err := h.registry.InitializeID(id); err != nil {
		return err
	}
	if wasInitialized {
		p, err := h.registry.Get(id)
		if err != nil {
			return err
		}
		current := h.locale.Current()
		dark := h.theme.IsDark()
		h.callHook(id, "locale", func() { p.OnLocaleChanged(current) })
		h.callHook(id, "theme", func() { p.OnThemeChanged(dark) })
	}
	return nil
}

// Locales returns the supported locales.
func (h *Host) Locales() []locale.Locale { return h.locale.Supported() }

// CurrentLocale returns the active locale.
func (h *Host) CurrentLocale() locale.Locale { return h.locale.Current() }

// SwitchLocale persists tag and makes it current. The tag must match a supported
// locale; the matching supported entry is what gets applied.
func (h *Host) SwitchLocale(tag string) error {
	requested, err := locale.Parse(tag)
	if err != nil {
		return err
	}
	target, ok := h.locale.IsSupported(requested)
	if !ok {
		return fmt.Errorf("locale %s is not supported", requested)
	}
	if err := h.store.PutString(prefs.KeyLocale, target.String()); err != nil {
		return fmt.Errorf("persist locale: %w", err)
	}
	h.locale.SetCurrent(target)
	return nil
}

// CycleLocale switches to the supported locale after the current one.
func (h *Host) CycleLocale() error {
	supported := h.locale.Supported()
	if len(supported) == 0 {
		return nil
	}

	current := h.locale.Current()
	idx := -1
	for i, l := range supported {
		if l.Equal(current) {
			idx = i
			break
		}
	}
	if idx < 0 {
		for i, l := range supported {
			if current.Matches(l) {
				idx = i
				break
			}
		}
	}
	next := supported[(idx+1)%len(supported)]
	return h.SwitchLocale(next.String())
}

// IsDark reports whether the active palette is dark.
func (h *Host) IsDark() bool { return h.theme.IsDark() }

// ThemeName returns the active palette name.
func (h *Host) ThemeName() string { return h.theme.Current().Name }

// ThemeNames lists the registered palettes.
func (h *Host) ThemeNames() []string { return h.theme.Names() }

// ApplyTheme applies the built-in dark or light palette and persists the choice.
func (h *Host) ApplyTheme(dark bool) error {
	name := theme.Light
	if dark {
		name = theme.Dark
	}
	return h.ApplyNamedTheme(name)
}

// ApplyNamedTheme applies a registered palette and, once it is active, persists it.
// Unknown names and failed swaps leave the saved preference untouched.
func (h *Host) ApplyNamedTheme(name string) error {
	if !slices.Contains(h.theme.Names(), name) {
		return workbencherrors.NewThemeError(name, fmt.Errorf("unknown palette"))
	}
	if err := h.theme.ApplyNamed(name); err != nil {
		return err
	}
	if err := h.store.PutString(prefs.KeyThemeName, name); err != nil {
		return fmt.Errorf("persist theme: %w", err)
	}
	if name == theme.Light || name == theme.Dark {
		if err := h.store.PutBool(prefs.KeyThemeDark, name == theme.Dark); err != nil {
			return fmt.Errorf("persist theme: %w", err)
		}
	}
	return nil
}

// ToggleTheme flips between the dark and light palettes.
func (h *Host) ToggleTheme() error {
	return h.ApplyTheme(!h.theme.IsDark())
}

// Styles returns the styles of the active palette.
func (h *Host) Styles() theme.Styles { return h.theme.Styles() }

// T translates a host string for the current locale.
func (h *Host) T(key string) string {
	return h.catalog.Translate(h.locale.Current(), key)
}

// Tf translates and formats a host string.
func (h *Host) Tf(key string, args ...any) string {
	return h.catalog.Translatef(h.locale.Current(), key, args...)
}
