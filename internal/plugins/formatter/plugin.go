package formatter

import (
	"github.com/alexisbeaulieu97/workbench/internal/locale"
	"github.com/alexisbeaulieu97/workbench/internal/plugin"
)

const (
	ID             = "com.github.tools.code-formatter"
	Version        = "1.0.0"
	Implementation = "github.com/alexisbeaulieu97/workbench/internal/plugins/formatter.Plugin"
)

func init() {
	plugin.MustRegister(Implementation, func() (plugin.Plugin, error) {
		return NewPlugin(), nil
	})
}

// Plugin exposes the formatter to the host.
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
		Name:           "Code Formatter",
		Version:        Version,
		Description:    "Normalizes whitespace, indentation and line endings.",
		Author:         "Spark Wan",
		Implementation: Implementation,
	}, "formatter.name", "formatter.description")
}

func (p *Plugin) Initialize(caps *plugin.Capabilities) error {
	p.panel = newPanel(caps)
	p.Attach(caps)
	return nil
}

func (p *Plugin) Shutdown() {
	p.panel = nil
	p.Base.Shutdown()
}

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
