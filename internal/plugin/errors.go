package plugin

import "fmt"

// ErrPluginNotFound is returned when no resident plugin has the requested id.
type ErrPluginNotFound struct {
	ID string
}

func (e ErrPluginNotFound) Error() string {
	return fmt.Sprintf("plugin '%s' not found in registry", e.ID)
}

// ErrDuplicatePlugin is returned when a second plugin claims a resident id.
type ErrDuplicatePlugin struct {
	ID string
}

func (e ErrDuplicatePlugin) Error() string {
	return fmt.Sprintf("plugin '%s' is already loaded\nHint: plugin ids must be unique across the configured implementations", e.ID)
}

// ErrIncompatibleHost is returned when a plugin requires a newer host.
type ErrIncompatibleHost struct {
	ID       string
	Required string
	Host     string
}

func (e ErrIncompatibleHost) Error() string {
	return fmt.Sprintf(
		"plugin '%s' requires host %s or newer (running %s)\nHint: upgrade workbench or use an older plugin release",
		e.ID,
		e.Required,
		e.Host,
	)
}

// ErrUnknownImplementation is returned when a configured implementation name was never
// registered.
type ErrUnknownImplementation struct {
	Name string
}

func (e ErrUnknownImplementation) Error() string {
	return fmt.Sprintf("no plugin implementation registered as '%s'\nHint: ensure the plugin package is imported by the binary", e.Name)
}
