package i18n

import (
	"fmt"
	"sync"

	"github.com/alexisbeaulieu97/workbench/internal/event"
	"github.com/alexisbeaulieu97/workbench/internal/locale"
	"github.com/alexisbeaulieu97/workbench/internal/logger"
)

// Catalog caches merged bundles per locale. It is a locale listener: every locale
// change drops the cache.
type Catalog struct {
	mu     sync.RWMutex
	source Source
	bundle string
	cache  map[string]map[string]string
	logger *logger.Logger
}

// NewCatalog creates a catalog over source for the named bundle.
func NewCatalog(source Source, bundle string, log *logger.Logger) *Catalog {
	if bundle == "" {
		bundle = DefaultBundle
	}
	return &Catalog{
		source: source,
		bundle: bundle,
		cache:  make(map[string]map[string]string),
		logger: log.Component("i18n"),
	}
}

// Lookup resolves key for l. The second result is false when no bundle in the
// fallback chain defines the key.
func (c *Catalog) Lookup(l locale.Locale, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	values := c.bundleFor(l)
	value, ok := values[key]
	return value, ok
}

// Translate returns the localized value of key, or key itself when it is missing.
func (c *Catalog) Translate(l locale.Locale, key string) string {
	var value string
	var ok bool
	err := event.Recover(func() error {
		value, ok = c.Lookup(l, key)
		return nil
	})
	if err != nil {
		c.logger.WithFields(map[string]any{"key": key}).Error(err, "string lookup failed")
		return key
	}
	if !ok {
		return key
	}
	return value
}

// Translatef formats the translated key with args.
func (c *Catalog) Translatef(l locale.Locale, key string, args ...any) string {
	format := c.Translate(l, key)
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// LocaleChanged drops every cached bundle.
func (c *Catalog) LocaleChanged(locale.Locale) error {
	c.Invalidate()
	return nil
}

// Invalidate clears the cache.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	c.cache = make(map[string]map[string]string)
	c.mu.Unlock()
}

// Cached reports how many locales are currently cached.
func (c *Catalog) Cached() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

func (c *Catalog) bundleFor(l locale.Locale) map[string]string {
	tag := l.String()

	c.mu.RLock()
	values, ok := c.cache[tag]
	c.mu.RUnlock()
	if ok {
		return values
	}

	if c.source == nil {
		return nil
	}
	values = c.source.Load(c.bundle, l)

	c.mu.Lock()
	c.cache[tag] = values
	c.mu.Unlock()
	return values
}
