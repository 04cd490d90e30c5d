package tui

import (
	"github.com/alexisbeaulieu97/workbench/internal/host"
	"github.com/alexisbeaulieu97/workbench/internal/locale"
	"github.com/alexisbeaulieu97/workbench/internal/theme"
)

// Host is the part of the workbench host the shell drives.
type Host interface {
	Plugins() []host.PluginView
	AllPlugins() []host.PluginView
	SetPluginEnabled(id string, enabled bool) error
	CycleLocale() error
	CurrentLocale() locale.Locale
	ToggleTheme() error
	ThemeName() string
	Styles() theme.Styles
	T(key string) string
	Tf(key string, args ...any) string
}

// Surface is a plugin UI handle the shell knows how to draw.
type Surface interface {
	View(width int) string
}
