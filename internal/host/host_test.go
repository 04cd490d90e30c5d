package host

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/workbench/internal/config"
	"github.com/alexisbeaulieu97/workbench/internal/locale"
	"github.com/alexisbeaulieu97/workbench/internal/plugin"
	"github.com/alexisbeaulieu97/workbench/internal/prefs"
	"github.com/alexisbeaulieu97/workbench/internal/theme"
	workbencherrors "github.com/alexisbeaulieu97/workbench/pkg/errors"
)

type fakePlugin struct {
	plugin.Base

	id         string
	hookPanics bool

	mu    sync.Mutex
	calls []string
}

func (f *fakePlugin) Describe() plugin.Descriptor {
	return f.Localize(plugin.Descriptor{ID: f.id, Name: "Fake " + f.id, Version: "1.0.0"}, "app.title", "")
}

func (f *fakePlugin) UIHandle() any { return "panel:" + f.id }

func (f *fakePlugin) OnLocaleChanged(l locale.Locale) {
	f.record("locale:" + l.String())
	if f.hookPanics {
		panic("locale hook exploded")
	}
}

func (f *fakePlugin) OnThemeChanged(dark bool) {
	if dark {
		f.record("theme:dark")
	} else {
		f.record("theme:light")
	}
	if f.hookPanics {
		panic("theme hook exploded")
	}
}

func (f *fakePlugin) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakePlugin) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func factory(p *fakePlugin) plugin.Factory {
	return plugin.Factory{Name: p.id, New: func() (plugin.Plugin, error) { return p, nil }}
}

type fixture struct {
	host     *Host
	store    *prefs.Memory
	applied  []string
	applyErr error
}

func newFixture(t *testing.T, store *prefs.Memory, system string, plugins ...*fakePlugin) *fixture {
	t.Helper()

	factories := make([]plugin.Factory, 0, len(plugins))
	for _, p := range plugins {
		factories = append(factories, factory(p))
	}
	if store == nil {
		store = prefs.NewMemory()
	}

	fx := &fixture{store: store}
	h, err := New(Options{
		Config:    config.Defaults(),
		Store:     store,
		Discovery: plugin.Static(factories...),
		Applier: theme.ApplierFunc(func(p theme.Palette) error {
			if fx.applyErr != nil {
				return fx.applyErr
			}
			fx.applied = append(fx.applied, p.Name)
			return nil
		}),
		SystemLocale: func() locale.Locale {
			if system == "" {
				return locale.Locale{}
			}
			return locale.MustParse(system)
		},
		Version: "1.0.0",
	})
	require.NoError(t, err)
	fx.host = h
	t.Cleanup(func() { _ = h.Shutdown() })
	return fx
}

func TestStartLoadsAndInitializesEnabledPlugins(t *testing.T) {
	t.Parallel()

	store := prefs.NewMemory()
	require.NoError(t, store.PutBool(prefs.EnabledKey("com.example.b"), false))

	a := &fakePlugin{id: "com.example.a"}
	b := &fakePlugin{id: "com.example.b"}
	fx := newFixture(t, store, "", a, b)
	fx.host.Start()
	fx.host.Start()

	assert.True(t, a.IsInitialized())
	assert.False(t, b.IsInitialized())

	all := fx.host.AllPlugins()
	require.Len(t, all, 2)
	assert.Equal(t, plugin.StateInitialized, all[0].State)
	assert.Equal(t, plugin.StateDisabled, all[1].State)

	visible := fx.host.Plugins()
	require.Len(t, visible, 1)
	assert.Equal(t, "com.example.a", visible[0].ID)
	assert.Equal(t, "Developer Workbench", visible[0].Name, "name localized through the host catalog")
	assert.Equal(t, "panel:com.example.a", visible[0].Handle)
}

func TestInitialLocaleResolution(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, nil, "fr_CA.UTF-8")
	assert.Equal(t, "fr", fx.host.CurrentLocale().String(), "system language matched against supported")

	saved := prefs.NewMemory()
	require.NoError(t, saved.PutString(prefs.KeyLocale, "ja"))
	fx = newFixture(t, saved, "fr")
	assert.Equal(t, "ja", fx.host.CurrentLocale().String(), "saved preference wins")

	fx = newFixture(t, nil, "")
	assert.Equal(t, "en", fx.host.CurrentLocale().String())
}

func TestSwitchLocaleBroadcastsToLivePlugins(t *testing.T) {
	t.Parallel()

	a := &fakePlugin{id: "com.example.a"}
	b := &fakePlugin{id: "com.example.b", hookPanics: true}
	c := &fakePlugin{id: "com.example.c"}
	fx := newFixture(t, nil, "en", a, b, c)
	fx.host.Start()
	require.NoError(t, fx.host.SetPluginEnabled("com.example.c", false))

	require.NoError(t, fx.host.SwitchLocale("de"))

	assert.Equal(t, "de", fx.host.CurrentLocale().String())
	assert.Equal(t, "de", fx.store.GetString(prefs.KeyLocale, ""))
	assert.Contains(t, a.Calls(), "locale:de")
	assert.Contains(t, b.Calls(), "locale:de", "panicking plugin was still called")
	assert.NotContains(t, c.Calls(), "locale:de", "disabled plugins are skipped")
	assert.Equal(t, "Entwickler-Werkbank", fx.host.T("app.title"))

	require.NoError(t, fx.host.SwitchLocale("de"))
	assert.Len(t, a.Calls(), 1, "same locale does not broadcast again")
}

func TestSwitchLocaleRejectsUnsupported(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, nil, "en")
	fx.host.Start()

	require.Error(t, fx.host.SwitchLocale("ko"))
	require.Error(t, fx.host.SwitchLocale("not a tag!"))
	assert.Equal(t, "en", fx.host.CurrentLocale().String())
	assert.Empty(t, fx.store.GetString(prefs.KeyLocale, ""))

	require.NoError(t, fx.host.SwitchLocale("zh_TW"))
	assert.Equal(t, "zh-TW", fx.host.CurrentLocale().String())
}

func TestCycleLocaleWraps(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, nil, "en")
	fx.host.Start()

	supported := fx.host.Locales()
	for i := 1; i <= len(supported); i++ {
		require.NoError(t, fx.host.CycleLocale())
		assert.Equal(t, supported[i%len(supported)].String(), fx.host.CurrentLocale().String())
	}
}

func TestThemeRestoredFromPreferences(t *testing.T) {
	t.Parallel()

	store := prefs.NewMemory()
	require.NoError(t, store.PutBool(prefs.KeyThemeDark, true))
	fx := newFixture(t, store, "en")
	fx.host.Start()

	assert.True(t, fx.host.IsDark())
	assert.Equal(t, []string{theme.Dark}, fx.applied)
}

func TestUnknownSavedThemeKeepsLight(t *testing.T) {
	t.Parallel()

	store := prefs.NewMemory()
	require.NoError(t, store.PutString(prefs.KeyThemeName, "solarized"))
	fx := newFixture(t, store, "en")
	fx.host.Start()

	assert.False(t, fx.host.IsDark())
	assert.Equal(t, theme.Light, fx.host.ThemeName())
}

func TestToggleThemePersistsAndBroadcasts(t *testing.T) {
	t.Parallel()

	a := &fakePlugin{id: "com.example.a"}
	b := &fakePlugin{id: "com.example.b", hookPanics: true}
	fx := newFixture(t, nil, "en", a, b)
	fx.host.Start()

	require.NoError(t, fx.host.ToggleTheme())
	assert.True(t, fx.host.IsDark())
	assert.True(t, fx.store.GetBool(prefs.KeyThemeDark, false))
	assert.Equal(t, theme.Dark, fx.store.GetString(prefs.KeyThemeName, ""))
	assert.Contains(t, a.Calls(), "theme:dark")
	assert.Contains(t, b.Calls(), "theme:dark")

	require.NoError(t, fx.host.ApplyTheme(false))
	assert.Equal(t, "theme:light", a.Calls()[len(a.Calls())-1])
}

func TestReenablingRefreshesPlugin(t *testing.T) {
	t.Parallel()

	a := &fakePlugin{id: "com.example.a"}
	fx := newFixture(t, nil, "en", a)
	fx.host.Start()

	require.NoError(t, fx.host.SetPluginEnabled("com.example.a", false))
	require.NoError(t, fx.host.SwitchLocale("ja"))
	assert.Empty(t, a.Calls())

	require.NoError(t, fx.host.SetPluginEnabled("com.example.a", true))
	assert.Equal(t, []string{"locale:ja", "theme:light"}, a.Calls())

	var notFound plugin.ErrPluginNotFound
	require.True(t, errors.As(fx.host.SetPluginEnabled("com.example.zzz", true), &notFound))
}

func TestEnablingInitializesDisabledPlugin(t *testing.T) {
	t.Parallel()

	store := prefs.NewMemory()
	require.NoError(t, store.PutBool(prefs.EnabledKey("com.example.a"), false))
	a := &fakePlugin{id: "com.example.a"}
	fx := newFixture(t, store, "en", a)
	fx.host.Start()
	require.False(t, a.IsInitialized())

	require.NoError(t, fx.host.SetPluginEnabled("com.example.a", true))
	assert.True(t, a.IsInitialized())
	assert.Empty(t, a.Calls(), "fresh initialization reads the current state directly")
}

func TestShutdownUnloadsAndDetaches(t *testing.T) {
	t.Parallel()

	a := &fakePlugin{id: "com.example.a"}
	fx := newFixture(t, nil, "en", a)
	fx.host.Start()
	require.Equal(t, 2, fx.host.LocaleService().ListenerCount())

	require.NoError(t, fx.host.Shutdown())
	require.NoError(t, fx.host.Shutdown())

	assert.False(t, a.IsInitialized())
	assert.Empty(t, fx.host.Registry().List())
	assert.Equal(t, 0, fx.host.LocaleService().ListenerCount())
	assert.Equal(t, 0, fx.host.ThemeService().ListenerCount())
}

func TestTfFormatsHostStrings(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, nil, "en")
	assert.Equal(t, "3 plugins loaded", fx.host.Tf("status.plugins", 3))
	assert.Equal(t, "no.such.key", fx.host.T("no.such.key"))
}

func TestUnknownThemeIsNotPersisted(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, nil, "en")
	fx.host.Start()

	require.Error(t, fx.host.ApplyNamedTheme("solarized"))
	assert.Empty(t, fx.store.GetString(prefs.KeyThemeName, ""))
	assert.Equal(t, theme.Light, fx.host.ThemeName())
}

func TestFailedThemeSwapIsNotPersisted(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, nil, "en")
	fx.host.Start()
	fx.applyErr = errors.New("terminal refused palette")

	err := fx.host.ApplyTheme(true)
	var themeErr *workbencherrors.ThemeError
	require.ErrorAs(t, err, &themeErr)
	assert.False(t, fx.host.IsDark())
	assert.Empty(t, fx.store.GetString(prefs.KeyThemeName, ""))
	assert.False(t, fx.store.GetBool(prefs.KeyThemeDark, false))

	fx.applyErr = nil
	require.NoError(t, fx.host.ApplyTheme(true))
	assert.Equal(t, theme.Dark, fx.store.GetString(prefs.KeyThemeName, ""))
	assert.True(t, fx.store.GetBool(prefs.KeyThemeDark, false))
}
