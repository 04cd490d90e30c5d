package plugin

import (
	"sync"

	"github.com/alexisbeaulieu97/workbench/internal/locale"
)

type MockPluginOption func(*MockPlugin)

// MockPlugin records every call the registry and host make on it.
type MockPlugin struct {
	Base

	mu           sync.Mutex
	descriptor   Descriptor
	calls        []string
	initErr      error
	initPanic    bool
	shutdownBomb bool
	received     []*Capabilities
	onInit       func(*Capabilities)
}

func NewMockPlugin(id string, opts ...MockPluginOption) *MockPlugin {
	mp := &MockPlugin{
		descriptor: Descriptor{
			ID:          id,
			Name:        "Mock " + id,
			Version:     "1.0.0",
			Description: "test double",
		},
	}
	for _, opt := range opts {
		opt(mp)
	}
	return mp
}

func WithInitError(err error) MockPluginOption {
	return func(mp *MockPlugin) { mp.initErr = err }
}

func WithInitPanic() MockPluginOption {
	return func(mp *MockPlugin) { mp.initPanic = true }
}

func WithShutdownPanic() MockPluginOption {
	return func(mp *MockPlugin) { mp.shutdownBomb = true }
}

func WithMinHost(version string) MockPluginOption {
	return func(mp *MockPlugin) { mp.descriptor.MinHostVersion = version }
}

// WithInitHook runs fn inside Initialize, before the plugin attaches caps.
func WithInitHook(fn func(*Capabilities)) MockPluginOption {
	return func(mp *MockPlugin) { mp.onInit = fn }
}

func WithVersion(version string) MockPluginOption {
	return func(mp *MockPlugin) { mp.descriptor.Version = version }
}

func (m *MockPlugin) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *MockPlugin) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockPlugin) Describe() Descriptor {
	return m.Localize(m.descriptor, "mock.name", "mock.description")
}

func (m *MockPlugin) Initialize(caps *Capabilities) error {
	m.record("initialize")
	m.mu.Lock()
	m.received = append(m.received, caps)
	m.mu.Unlock()

	if m.onInit != nil {
		m.onInit(caps)
	}
	if m.initPanic {
		panic("initialize exploded")
	}
	if m.initErr != nil {
		return m.initErr
	}
	m.Attach(caps)
	return nil
}

func (m *MockPlugin) Shutdown() {
	m.record("shutdown")
	m.Base.Shutdown()
	if m.shutdownBomb {
		panic("shutdown exploded")
	}
}

func (m *MockPlugin) OnLocaleChanged(l locale.Locale) {
	m.record("locale:" + l.String())
}

func (m *MockPlugin) OnThemeChanged(dark bool) {
	if dark {
		m.record("theme:dark")
		return
	}
	m.record("theme:light")
}

func factoryFor(p Plugin) Factory {
	return Factory{
		Name: "factory:" + p.Describe().ID,
		New:  func() (Plugin, error) { return p, nil },
	}
}

// eventLog collects lifecycle events as "<kind>:<id>" strings.
type eventLog struct {
	mu     sync.Mutex
	events []string
	errs   []error
}

func (e *eventLog) listener() *ListenerFuncs {
	add := func(s string) {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.events = append(e.events, s)
	}
	return &ListenerFuncs{
		OnLoaded:      func(d Descriptor) { add("loaded:" + d.ID) },
		OnInitialized: func(d Descriptor) { add("initialized:" + d.ID) },
		OnUnloaded:    func(d Descriptor) { add("unloaded:" + d.ID) },
		OnError: func(id string, err error) {
			add("error:" + id)
			e.mu.Lock()
			e.errs = append(e.errs, err)
			e.mu.Unlock()
		},
	}
}

func (e *eventLog) snapshot() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.events...)
}

func (e *eventLog) count(event string) int {
	n := 0
	for _, ev := range e.snapshot() {
		if ev == event {
			n++
		}
	}
	return n
}
