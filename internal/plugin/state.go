package plugin

// State is the lifecycle position of a plugin as seen by the registry.
type State int

const (
	StateDiscovered State = iota
	StateLoaded
	StateInitialized
	StateDisabled
	StateUnloaded
)

func (s State) String() string {
	switch s {
	case StateDiscovered:
		return "discovered"
	case StateLoaded:
		return "loaded"
	case StateInitialized:
		return "initialized"
	case StateDisabled:
		return "disabled"
	case StateUnloaded:
		return "unloaded"
	default:
		return "unknown"
	}
}

// record is the registry's bookkeeping for one resident plugin. initialized implies
// caps was built once and handed to the plugin once.
type record struct {
	factory     string
	descriptor  Descriptor
	plugin      Plugin
	enabled     bool
	initialized bool
	caps        *Capabilities
}

func (r *record) state() State {
	switch {
	case !r.enabled:
		return StateDisabled
	case r.initialized:
		return StateInitialized
	default:
		return StateLoaded
	}
}

// Status is a presentation snapshot of one resident plugin.
type Status struct {
	ID          string
	Descriptor  Descriptor
	State       State
	Enabled     bool
	Initialized bool
	Plugin      Plugin
}
