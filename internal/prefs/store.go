// Package prefs persists host and plugin preferences as string key/value pairs.
package prefs

import (
	"strconv"
	"strings"
)

// Store is a flat key/value preference store. Reads never fail; a missing or
// unreadable value yields the supplied default.
type Store interface {
	GetString(key, def string) string
	PutString(key, value string) error
	GetBool(key string, def bool) bool
	PutBool(key string, value bool) error
	Close() error
}

// Well-known keys.
const (
	KeyThemeDark = "app.theme.dark"
	KeyThemeName = "app.theme.name"
	KeyLocale    = "app.locale"
)

// EnabledKey is the key of a plugin's enabled flag.
func EnabledKey(pluginID string) string {
	return "plugin." + pluginID + ".enabled"
}

// PluginPrefix is the prefix of a plugin's private settings. The separator cannot
// appear in a plugin id, so no private key can alias an enabled flag.
func PluginPrefix(pluginID string) string {
	return "plugin." + pluginID + "/"
}

func formatBool(v bool) string {
	return strconv.FormatBool(v)
}

func parseBool(raw string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true":
		return true
	case "false":
		return false
	default:
		return def
	}
}
