package renamer

import (
	"github.com/alexisbeaulieu97/workbench/internal/plugin"
)

const (
	ID             = "com.github.tools.package-rename"
	Version        = "1.0.0"
	Implementation = "github.com/alexisbeaulieu97/workbench/internal/plugins/renamer.Plugin"
)

func init() {
	plugin.MustRegister(Implementation, func() (plugin.Plugin, error) {
		return NewPlugin(), nil
	})
}

// Plugin exposes the package renamer to the host.
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
		Name:           "Package Renamer",
		Version:        Version,
		Description:    "Renames a package and moves its files.",
		Author:         "Spark Wan",
		Implementation: Implementation,
	}, "renamer.name", "renamer.description")
}

func (p *Plugin) Initialize(caps *plugin.Capabilities) error {
	p.panel = &Panel{caps: caps}
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
