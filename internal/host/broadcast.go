package host

import (
	"github.com/alexisbeaulieu97/workbench/internal/event"
	"github.com/alexisbeaulieu97/workbench/internal/locale"
	"github.com/alexisbeaulieu97/workbench/internal/plugin"
)

// livePlugins returns the enabled, initialized plugins in list order.
func (h *Host) livePlugins() []plugin.Status {
	var live []plugin.Status
	for _, status := range h.registry.Snapshot() {
		if status.Enabled && status.Initialized {
			live = append(live, status)
		}
	}
	return live
}

func (h *Host) broadcastLocale(l locale.Locale) error {
	for _, status := range h.livePlugins() {
		p := status.Plugin
		h.callHook(status.ID, "locale", func() { p.OnLocaleChanged(l) })
	}
	return nil
}

func (h *Host) broadcastTheme(dark bool) error {
	for _, status := range h.livePlugins() {
		p := status.Plugin
		h.callHook(status.ID, "theme", func() { p.OnThemeChanged(dark) })
	}
	return nil
}

// callHook runs a plugin hook; a panicking plugin is logged and skipped.
func (h *Host) callHook(id, hook string, fn func()) {
	err := event.Recover(func() error {
		fn()
		return nil
	})
	if err != nil {
		h.logger.WithFields(map[string]any{"plugin": id, "hook": hook}).Error(err, "plugin hook failed")
	}
}
