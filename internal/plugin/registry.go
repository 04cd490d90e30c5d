package plugin

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/workbench/internal/event"
	"github.com/alexisbeaulieu97/workbench/internal/locale"
	"github.com/alexisbeaulieu97/workbench/internal/logger"
	"github.com/alexisbeaulieu97/workbench/internal/prefs"
	"github.com/alexisbeaulieu97/workbench/internal/theme"
	workbencherrors "github.com/alexisbeaulieu97/workbench/pkg/errors"
)

// Options wires a Registry to the shared services.
type Options struct {
	Discovery   Discovery
	Locale      *locale.Service
	Theme       *theme.Service
	Preferences prefs.Store
	Translator  Translator
	Logger      *logger.Logger
	HostVersion string
}

// Registry discovers, loads, initializes and unloads plugins.
type Registry struct {
	mu       sync.RWMutex
	order    []string
	records  map[string]*record
	unloaded map[string]bool

	discovery   Discovery
	locale      *locale.Service
	theme       *theme.Service
	prefs       prefs.Store
	translator  Translator
	hostVersion string

	listeners *event.Hub[LifecycleListener]
	logger    *logger.Logger
}

// NewRegistry returns an empty registry. A nil preference store falls back to an
// in-memory store.
func NewRegistry(opts Options) *Registry {
	store := opts.Preferences
	if store == nil {
		store = prefs.NewMemory()
	}
	discovery := opts.Discovery
	if discovery == nil {
		discovery = Static()
	}
	log := opts.Logger.Component("registry")

	return &Registry{
		records:     make(map[string]*record),
		unloaded:    make(map[string]bool),
		discovery:   discovery,
		locale:      opts.Locale,
		theme:       opts.Theme,
		prefs:       store,
		translator:  opts.Translator,
		hostVersion: opts.HostVersion,
		listeners:   event.NewHub[LifecycleListener](log),
		logger:      log,
	}
}

// LoadAll runs discovery and loads every factory. Failures are logged and reported
// to lifecycle listeners; loading continues with the next factory.
func (r *Registry) LoadAll() {
	factories := r.discovery()
	for _, f := range factories {
		if _, err := r.Load(f); err != nil {
			r.logger.WithFields(map[string]any{"factory": f.Name}).Error(err, "plugin skipped")
		}
	}
	r.logger.WithFields(map[string]any{
		"discovered": len(factories),
		"loaded":     len(r.List()),
	}).Info("plugins loaded")
}

// Load constructs one plugin and adds it to the registry. It is also the way to
// re-add a plugin after Unload: the new record starts uninitialized.
func (r *Registry) Load(f Factory) (Plugin, error) {
	p, desc, err := r.construct(f)
	if err != nil {
		return nil, r.fail(f.Name, workbencherrors.NewPluginOpError(f.Name, "load", err))
	}

	name := f.Name
	if name == "" {
		name = desc.ID
	}

	if err := desc.Validate(); err != nil {
		return nil, r.fail(name, workbencherrors.NewPluginOpError(desc.ID, "load", err))
	}
	if err := CheckHostCompatibility(desc, r.hostVersion); err != nil {
		return nil, r.fail(name, workbencherrors.NewPluginOpError(desc.ID, "load", err))
	}

	enabled := r.prefs.GetBool(prefs.EnabledKey(desc.ID), true)

	r.mu.Lock()
	if _, exists := r.records[desc.ID]; exists {
		r.mu.Unlock()
		return nil, r.fail(name, workbencherrors.NewPluginOpError(desc.ID, "load", ErrDuplicatePlugin{ID: desc.ID}))
	}
	r.records[desc.ID] = &record{
		factory:    name,
		descriptor: desc,
		plugin:     p,
		enabled:    enabled,
	}
	r.order = append(r.order, desc.ID)
	delete(r.unloaded, desc.ID)
	r.mu.Unlock()

	r.logger.WithFields(map[string]any{"plugin": desc.ID, "version": desc.Version}).Debug("plugin loaded")
	r.listeners.Notify("lifecycle.loaded", func(l LifecycleListener) error {
		l.PluginLoaded(desc)
		return nil
	})
	return p, nil
}

func (r *Registry) construct(f Factory) (Plugin, Descriptor, error) {
	if f.New == nil {
		return nil, Descriptor{}, fmt.Errorf("factory has no constructor")
	}

	var p Plugin
	var desc Descriptor
	err := event.Recover(func() error {
		var err error
		p, err = f.New()
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("constructor returned no plugin")
		}
		desc = p.Describe()
		return nil
	})
	if err != nil {
		return nil, Descriptor{}, err
	}
	return p, desc, nil
}

// describe asks p for its current descriptor, falling back to the one captured at
// load time when the plugin misbehaves.
func describe(p Plugin, fallback Descriptor) Descriptor {
	desc := fallback
	_ = event.Recover(func() error {
		desc = p.Describe()
		return nil
	})
	return desc
}

// List returns the resident plugins in discovery order.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Plugin, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.records[id].plugin)
	}
	return out
}

// Get returns the resident plugin with id.
func (r *Registry) Get(id string) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, ErrPluginNotFound{ID: id}
	}
	return rec.plugin, nil
}

// Descriptor returns the descriptor captured when id was loaded.
func (r *Registry) Descriptor(id string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return Descriptor{}, ErrPluginNotFound{ID: id}
	}
	return rec.descriptor, nil
}

// State reports where id is in its lifecycle. Ids that were never loaded report
// StateDiscovered.
func (r *Registry) State(id string) State {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rec, ok := r.records[id]; ok {
		return rec.state()
	}
	if r.unloaded[id] {
		return StateUnloaded
	}
	return StateDiscovered
}

// Snapshot returns the status of every resident plugin in discovery order.
func (r *Registry) Snapshot() []Status {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Status, 0, len(r.order))
	for _, id := range r.order {
		rec := r.records[id]
		out = append(out, Status{
			ID:          id,
			Descriptor:  rec.descriptor,
			State:       rec.state(),
			Enabled:     rec.enabled,
			Initialized: rec.initialized,
			Plugin:      rec.plugin,
		})
	}
	return out
}

// Initialize builds p's capabilities and hands them over. A plugin that is already
// initialized is left alone. On failure the record is untouched and the
// capabilities are discarded. p must be the instance currently resident under its
// id; a handle kept from before an Unload reports ErrPluginNotFound.
func (r *Registry) Initialize(p Plugin) error {
	if p == nil {
		return ErrPluginNotFound{}
	}
	return r.initialize(describe(p, Descriptor{}).ID, p)
}

// InitializeID is Initialize for whichever instance is resident under id.
func (r *Registry) InitializeID(id string) error {
	return r.initialize(id, nil)
}

func (r *Registry) initialize(id string, want Plugin) error {
	r.mu.RLock()
	rec, ok := r.records[id]
	var initialized bool
	if ok {
		initialized = rec.initialized
	}
	r.mu.RUnlock()

	if !ok || (want != nil && !samePlugin(rec.plugin, want)) {
		return ErrPluginNotFound{ID: id}
	}
	if initialized {
		return nil
	}

	caps := r.newCapabilities(id)
	err := event.Recover(func() error { return rec.plugin.Initialize(caps) })
	if err != nil {
		wrapped := workbencherrors.NewPluginOpError(id, "initialize", err)
		r.logger.WithFields(map[string]any{"plugin": id}).Error(err, "plugin initialization failed")
		return r.fail(id, wrapped)
	}

	r.mu.Lock()
	current, stillResident := r.records[id]
	stillResident = stillResident && current == rec
	if stillResident {
		rec.initialized = true
		rec.caps = caps
	}
	r.mu.Unlock()

	if !stillResident {
		r.logger.WithFields(map[string]any{"plugin": id}).Warn("plugin unloaded during initialization")
		_ = event.Recover(func() error {
			rec.plugin.Shutdown()
			return nil
		})
		return ErrPluginNotFound{ID: id}
	}

	desc := describe(rec.plugin, rec.descriptor)
	r.logger.WithFields(map[string]any{"plugin": id, "instance": caps.InstanceID().String()}).Debug("plugin initialized")
	r.listeners.Notify("lifecycle.initialized", func(l LifecycleListener) error {
		l.PluginInitialized(desc)
		return nil
	})
	return nil
}

// samePlugin compares plugin identities without panicking on non-comparable
// dynamic types.
func samePlugin(a, b Plugin) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// InitializeEnabled initializes every enabled plugin in discovery order and returns
// the failures.
func (r *Registry) InitializeEnabled() []error {
	var failures []error
	for _, status := range r.Snapshot() {
		if !status.Enabled || status.Initialized {
			continue
		}
		if err := r.InitializeID(status.ID); err != nil {
			failures = append(failures, err)
		}
	}
	return failures
}

// Capabilities returns the context handed to id, or nil when id is not initialized.
func (r *Registry) Capabilities(id string) *Capabilities {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rec, ok := r.records[id]; ok {
		return rec.caps
	}
	return nil
}

// Unload shuts id down and removes it. Unknown ids are ignored.
func (r *Registry) Unload(id string) {
	r.mu.Lock()
	rec, ok := r.records[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(r.records, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	r.unloaded[id] = true
	rec.caps = nil
	rec.initialized = false
	r.mu.Unlock()

	if err := event.Recover(func() error {
		rec.plugin.Shutdown()
		return nil
	}); err != nil {
		r.logger.WithFields(map[string]any{"plugin": id}).Error(err, "plugin shutdown failed")
		_ = r.fail(id, workbencherrors.NewPluginOpError(id, "shutdown", err))
	}

	desc := rec.descriptor
	r.logger.WithFields(map[string]any{"plugin": id}).Debug("plugin unloaded")
	r.listeners.Notify("lifecycle.unloaded", func(l LifecycleListener) error {
		l.PluginUnloaded(desc)
		return nil
	})
}

// UnloadAll unloads every plugin in reverse discovery order.
func (r *Registry) UnloadAll() {
	r.mu.RLock()
	ids := append([]string(nil), r.order...)
	r.mu.RUnlock()

	for i := len(ids) - 1; i >= 0; i-- {
		r.Unload(ids[i])
	}
}

// SetEnabled persists the enabled flag for id. It never initializes or unloads.
func (r *Registry) SetEnabled(id string, enabled bool) error {
	if err := r.prefs.PutBool(prefs.EnabledKey(id), enabled); err != nil {
		return fmt.Errorf("persist enabled flag for %s: %w", id, err)
	}

	r.mu.Lock()
	if rec, ok := r.records[id]; ok {
		rec.enabled = enabled
	}
	r.mu.Unlock()
	return nil
}

// IsEnabled reports the persisted flag for id; ids that were never set are enabled.
func (r *Registry) IsEnabled(id string) bool {
	return r.prefs.GetBool(prefs.EnabledKey(id), true)
}

// AddLifecycleListener subscribes l once.
func (r *Registry) AddLifecycleListener(l LifecycleListener) {
	if l == nil {
		return
	}
	r.listeners.Subscribe(l)
}

// RemoveLifecycleListener unsubscribes l; unknown listeners are ignored.
func (r *Registry) RemoveLifecycleListener(l LifecycleListener) {
	if l == nil {
		return
	}
	r.listeners.Unsubscribe(l)
}

func (r *Registry) newCapabilities(id string) *Capabilities {
	return &Capabilities{
		pluginID:   id,
		instanceID: uuid.New(),
		settings:   scopedSettings{scope: prefs.Scope(r.prefs, prefs.PluginPrefix(id))},
		translator: r.translator,
		locale:     r.locale,
		theme:      r.theme,
		registry:   r,
		logger:     r.logger.WithFields(map[string]any{"plugin": id}),
	}
}

func (r *Registry) fail(id string, err error) error {
	r.listeners.Notify("lifecycle.error", func(l LifecycleListener) error {
		l.PluginFailed(id, err)
		return nil
	})
	return err
}
