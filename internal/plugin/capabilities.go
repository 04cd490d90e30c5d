package plugin

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/workbench/internal/event"
	"github.com/alexisbeaulieu97/workbench/internal/locale"
	"github.com/alexisbeaulieu97/workbench/internal/logger"
	"github.com/alexisbeaulieu97/workbench/internal/prefs"
	"github.com/alexisbeaulieu97/workbench/internal/theme"
)

// Translator resolves localized strings.
type Translator interface {
	Lookup(l locale.Locale, key string) (string, bool)
}

// Settings is a plugin's private preference namespace.
type Settings interface {
	Get(key, def string) string
	Put(key, value string) error
	GetBool(key string, def bool) bool
	PutBool(key string, value bool) error
}

type scopedSettings struct {
	scope *prefs.Scoped
}

func (s scopedSettings) Get(key, def string) string { return s.scope.GetString(key, def) }
func (s scopedSettings) Put(key, value string) error { return s.scope.PutString(key, value) }
func (s scopedSettings) GetBool(key string, def bool) bool { return s.scope.GetBool(key, def) }
func (s scopedSettings) PutBool(key string, value bool) error { return s.scope.PutBool(key, value) }

// Capabilities is the facade handed to a plugin at initialization. It is immutable
// and holds non-owning references to the shared services.
type Capabilities struct {
	pluginID   string
	instanceID uuid.UUID
	settings   Settings
	translator Translator
	locale     *locale.Service
	theme      *theme.Service
	registry   *Registry
	logger     *logger.Logger
}

// PluginID returns the id of the plugin this context belongs to.
func (c *Capabilities) PluginID() string { return c.pluginID }

// InstanceID distinguishes contexts built for the same plugin across reloads.
func (c *Capabilities) InstanceID() uuid.UUID { return c.instanceID }

// Settings returns the plugin's scoped settings.
func (c *Capabilities) Settings() Settings { return c.settings }

func (c *Capabilities) Locale() *locale.Service { return c.locale }

func (c *Capabilities) Theme() *theme.Service { return c.theme }

func (c *Capabilities) Registry() *Registry { return c.registry }

// Logger returns a logger tagged with the plugin id.
func (c *Capabilities) Logger() *logger.Logger { return c.logger }

// GetString resolves key against the locale that is current at call time. The key is
// returned verbatim when no translation exists or lookup fails.
func (c *Capabilities) GetString(key string) string {
	if value, ok := c.lookup(key); ok {
		return value
	}
	return key
}

// GetStringf is GetString followed by fmt.Sprintf when args are given.
func (c *Capabilities) GetStringf(key string, args ...any) string {
	format := c.GetString(key)
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// HasKey reports whether key resolves for the current locale.
func (c *Capabilities) HasKey(key string) bool {
	_, ok := c.lookup(key)
	return ok
}

func (c *Capabilities) lookup(key string) (value string, ok bool) {
	if c == nil || c.translator == nil {
		return "", false
	}

	current := locale.English
	if c.locale != nil {
		current = c.locale.Current()
	}

	err := event.Recover(func() error {
		value, ok = c.translator.Lookup(current, key)
		return nil
	})
	if err != nil {
		c.logger.WithFields(map[string]any{"key": key}).Error(err, "string lookup failed")
		return "", false
	}
	return value, ok
}
