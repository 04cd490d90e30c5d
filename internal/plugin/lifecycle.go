package plugin

// LifecycleListener observes registry lifecycle events. Listener failures are logged
// and never reach the registry caller.
type LifecycleListener interface {
	PluginLoaded(d Descriptor)
	PluginInitialized(d Descriptor)
	PluginUnloaded(d Descriptor)
	// PluginFailed reports a load, initialize or shutdown failure. id is the
	// factory name when the plugin failed before it could describe itself.
	PluginFailed(id string, err error)
}

// ListenerFuncs adapts optional callbacks to LifecycleListener. Register a pointer.
type ListenerFuncs struct {
	OnLoaded      func(Descriptor)
	OnInitialized func(Descriptor)
	OnUnloaded    func(Descriptor)
	OnError       func(id string, err error)
}

func (f *ListenerFuncs) PluginLoaded(d Descriptor) {
	if f.OnLoaded != nil {
		f.OnLoaded(d)
	}
}

func (f *ListenerFuncs) PluginInitialized(d Descriptor) {
	if f.OnInitialized != nil {
		f.OnInitialized(d)
	}
}

func (f *ListenerFuncs) PluginUnloaded(d Descriptor) {
	if f.OnUnloaded != nil {
		f.OnUnloaded(d)
	}
}

func (f *ListenerFuncs) PluginFailed(id string, err error) {
	if f.OnError != nil {
		f.OnError(id, err)
	}
}
