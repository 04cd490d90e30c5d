// Package host wires the shared services, the string catalog and the plugin registry
// together and exposes the operations the presentation layer drives.
package host

import (
	"fmt"
	"os"
	"sync"

	"github.com/alexisbeaulieu97/workbench/internal/config"
	"github.com/alexisbeaulieu97/workbench/internal/i18n"
	"github.com/alexisbeaulieu97/workbench/internal/locale"
	"github.com/alexisbeaulieu97/workbench/internal/logger"
	"github.com/alexisbeaulieu97/workbench/internal/plugin"
	"github.com/alexisbeaulieu97/workbench/internal/prefs"
	"github.com/alexisbeaulieu97/workbench/internal/theme"
)

// Options configures a Host. Only Config is required.
type Options struct {
	Config *config.Config
	Logger *logger.Logger

	// Store overrides the preference backend selected by Config.
	Store prefs.Store
	// Discovery overrides the catalog lookup of Config.Plugins.
	Discovery plugin.Discovery
	// Applier overrides the lipgloss renderer applier.
	Applier theme.Applier
	// SystemLocale overrides locale.SystemLocale.
	SystemLocale func() locale.Locale
	// Version is the running binary's version, used when Config.HostVersion is empty.
	Version string
}

// Host owns every long-lived service of the workbench.
type Host struct {
	cfg      *config.Config
	logger   *logger.Logger
	store    prefs.Store
	locale   *locale.Service
	theme    *theme.Service
	catalog  *i18n.Catalog
	registry *plugin.Registry

	localeHook *locale.ListenerFunc
	themeHook  *theme.ListenerFunc
	lifecycle  *plugin.ListenerFuncs

	startOnce    sync.Once
	shutdownOnce sync.Once
	shutdownErr  error
}

// New builds the services. Plugins are not loaded until Start.
func New(opts Options) (*Host, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Defaults()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	store := opts.Store
	if store == nil {
		opened, err := prefs.Open(cfg.Preferences.Backend, cfg.Preferences.Path)
		if err != nil {
			return nil, fmt.Errorf("open preferences: %w", err)
		}
		store = opened
	}

	supported, err := locale.ParseAll(cfg.Locales)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("supported locales: %w", err)
	}
	systemLocale := opts.SystemLocale
	if systemLocale == nil {
		systemLocale = locale.SystemLocale
	}
	initial := locale.ResolveInitial(store.GetString(prefs.KeyLocale, ""), systemLocale(), supported)

	var source i18n.Source = i18n.NewFSSource(i18n.Embedded(), log)
	if cfg.I18n.Dir != "" {
		source = i18n.Overlay{Base: source, Override: i18n.NewFSSource(os.DirFS(cfg.I18n.Dir), log)}
	}
	catalog := i18n.NewCatalog(source, cfg.I18n.Bundle, log)

	localeSvc := locale.NewService(initial, supported, log)
	themeSvc := theme.NewService(opts.Applier, log)

	hostVersion := cfg.HostVersion
	if hostVersion == "" {
		hostVersion = opts.Version
	}

	discovery := opts.Discovery
	if discovery == nil {
		discovery = plugin.FromCatalog(cfg.Plugins...)
	}

	h := &Host{
		cfg:     cfg,
		logger:  log.Component("host"),
		store:   store,
		locale:  localeSvc,
		theme:   themeSvc,
		catalog: catalog,
	}
	h.registry = plugin.NewRegistry(plugin.Options{
		Discovery:   discovery,
		Locale:      localeSvc,
		Theme:       themeSvc,
		Preferences: store,
		Translator:  catalog,
		Logger:      log,
		HostVersion: hostVersion,
	})
	return h, nil
}

// Start subscribes the host's listeners, restores the saved theme, then loads and
// initializes the enabled plugins. Calling Start again does nothing.
func (h *Host) Start() {
	h.startOnce.Do(func() {
		// the catalog must drop its cache before any plugin re-reads strings
		h.locale.Subscribe(h.catalog)
		h.localeHook = h.locale.SubscribeFunc(h.broadcastLocale)
		h.themeHook = h.theme.SubscribeFunc(h.broadcastTheme)

		h.lifecycle = &plugin.ListenerFuncs{
			OnError: func(id string, err error) {
				h.logger.WithFields(map[string]any{"plugin": id}).Error(err, "plugin lifecycle failure")
			},
		}
		h.registry.AddLifecycleListener(h.lifecycle)

		h.restoreTheme()

		h.registry.LoadAll()
		for _, err := range h.registry.InitializeEnabled() {
			h.logger.Error(err, "plugin could not be initialized")
		}

		h.logger.WithFields(map[string]any{
			"locale":  h.locale.Current().String(),
			"theme":   h.theme.Current().Name,
			"plugins": len(h.registry.List()),
		}).Info("workbench started")
	})
}

func (h *Host) restoreTheme() {
	var err error
	switch {
	case h.store.GetString(prefs.KeyThemeName, "") != "":
		err = h.theme.ApplyNamed(h.store.GetString(prefs.KeyThemeName, ""))
	case h.store.GetString(prefs.KeyThemeDark, "") != "":
		err = h.theme.Apply(h.store.GetBool(prefs.KeyThemeDark, false))
	default:
		err = h.theme.ApplyNamed(h.cfg.Theme.Default)
	}
	if err != nil {
		h.logger.Error(err, "saved theme could not be applied; keeping the light palette")
	}
}

// Shutdown unloads every plugin, detaches the host listeners and closes the
// preference store.
func (h *Host) Shutdown() error {
	h.shutdownOnce.Do(func() {
		h.registry.UnloadAll()
		h.registry.RemoveLifecycleListener(h.lifecycle)
		h.locale.Unsubscribe(h.localeHook)
		h.locale.Unsubscribe(h.catalog)
		h.theme.Unsubscribe(h.themeHook)
		h.shutdownErr = h.store.Close()
		h.logger.Debug("workbench stopped")
	})
	return h.shutdownErr
}

// Config returns the host configuration.
func (h *Host) Config() *config.Config { return h.cfg }

// Registry exposes the plugin registry.
func (h *Host) Registry() *plugin.Registry { return h.registry }

// Preferences exposes the preference store.
func (h *Host) Preferences() prefs.Store { return h.store }

// LocaleService exposes the locale service.
func (h *Host) LocaleService() *locale.Service { return h.locale }

// ThemeService exposes the theme service.
func (h *Host) ThemeService() *theme.Service { return h.theme }

// Catalog exposes the host string catalog.
func (h *Host) Catalog() *i18n.Catalog { return h.catalog }
