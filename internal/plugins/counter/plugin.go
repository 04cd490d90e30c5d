package counter

import (
	"github.com/alexisbeaulieu97/workbench/internal/locale"
	"github.com/alexisbeaulieu97/workbench/internal/plugin"
)

const (
	ID             = "com.github.tools.code-counter"
	Version        = "1.1.0"
	Implementation = "github.com/alexisbeaulieu97/workbench/internal/plugins/counter.Plugin"
)

func init() {
	plugin.MustRegister(Implementation, func() (plugin.Plugin, error) {
		return NewPlugin(), nil
	})
}

// Plugin exposes the line counter to the host.
type Plugin struct {
	plugin.Base
	panel *Panel
}

func NewPlugin() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Describe() plugin.Descriptor {
	return p.Localize(plugin.Descriptor{
		ID:             ID,
		Name:           "Code Counter",
		Version:        Version,
		Description:    "Counts code, comment, blank and TODO lines in a source tree.",
		Author:         "Spark Wan",
		Implementation: Implementation,
		MinHostVersion: "1.0.0",
	}, "counter.name", "counter.description")
}

func (p *Plugin) Initialize(caps *plugin.Capabilities) error {
	p.panel = newPanel(caps, New(caps.Logger()))
	p.Attach(caps)
	return nil
}

func (p *Plugin) Shutdown() {
	p.panel = nil
	p.Base.Shutdown()
}

// UIHandle returns the *Panel, or nil before initialization.
func (p *Plugin) UIHandle() any {
	if p.panel == nil {
		return nil
	}
	return p.panel
}

func (p *Plugin) OnLocaleChanged(locale.Locale) {
	if p.panel != nil {
		p.panel.Refresh()
	}
}

func (p *Plugin) OnThemeChanged(bool) {
	if p.panel != nil {
		p.panel.Refresh()
	}
}
