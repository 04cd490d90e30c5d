// Package plugintest loads catalog plugins against real services for tests.
package plugintest

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/workbench/internal/i18n"
	"github.com/alexisbeaulieu97/workbench/internal/locale"
	"github.com/alexisbeaulieu97/workbench/internal/plugin"
	"github.com/alexisbeaulieu97/workbench/internal/prefs"
	"github.com/alexisbeaulieu97/workbench/internal/theme"
)

// Harness bundles the services a plugin sees.
type Harness struct {
	Registry *plugin.Registry
	Locale   *locale.Service
	Theme    *theme.Service
	Store    *prefs.Memory
	Catalog  *i18n.Catalog
	Plugin   plugin.Plugin
}

// Load loads and initializes one catalog implementation with English strings and the
// light palette. The implementation's package must be linked into the test binary.
func Load(t testing.TB, implementation string) *Harness {
	t.Helper()

	store := prefs.NewMemory()
	catalog := i18n.NewCatalog(i18n.NewFSSource(i18n.Embedded(), nil), i18n.DefaultBundle, nil)
	localeSvc := locale.NewService(locale.English, nil, nil)
	localeSvc.Subscribe(catalog)
	themeSvc := theme.NewService(theme.NewRendererApplier(lipgloss.NewRenderer(io.Discard)), nil)

	reg := plugin.NewRegistry(plugin.Options{
		Discovery:   plugin.FromCatalog(implementation),
		Locale:      localeSvc,
		Theme:       themeSvc,
		Preferences: store,
		Translator:  catalog,
		HostVersion: "1.0.0",
	})
	reg.LoadAll()
	require.Len(t, reg.List(), 1, "plugin %s did not load", implementation)
	require.Empty(t, reg.InitializeEnabled())

	h := &Harness{
		Registry: reg,
		Locale:   localeSvc,
		Theme:    themeSvc,
		Store:    store,
		Catalog:  catalog,
		Plugin:   reg.List()[0],
	}
	t.Cleanup(reg.UnloadAll)
	return h
}

// SwitchLocale changes the locale and runs the plugin's hook the way the host does.
func (h *Harness) SwitchLocale(tag string) {
	l := locale.MustParse(tag)
	h.Locale.SetCurrent(l)
	h.Plugin.OnLocaleChanged(l)
}

// SwitchTheme applies a palette and runs the plugin's hook.
func (h *Harness) SwitchTheme(dark bool) error {
	if err := h.Theme.Apply(dark); err != nil {
		return err
	}
	h.Plugin.OnThemeChanged(dark)
	return nil
}
