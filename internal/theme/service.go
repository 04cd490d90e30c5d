package theme

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/alexisbeaulieu97/workbench/internal/event"
	"github.com/alexisbeaulieu97/workbench/internal/logger"
	workbencherrors "github.com/alexisbeaulieu97/workbench/pkg/errors"
)

// ErrApplyDuringBroadcast is returned when a listener asks for a palette while the
// service is still notifying listeners of the previous swap.
var ErrApplyDuringBroadcast = errors.New("theme change requested during theme broadcast")

// Listener is notified after every successful palette swap.
type Listener interface {
	ThemeChanged(dark bool) error
}

// ListenerFunc adapts a function to Listener. Subscribe the pointer.
type ListenerFunc func(dark bool) error

// ThemeChanged calls f.
func (f *ListenerFunc) ThemeChanged(dark bool) error {
	return (*f)(dark)
}

// Service coordinates access to the active palette.
type Service struct {
	mu       sync.RWMutex
	current  Palette
	palettes map[string]Palette
	applier  Applier

	listeners    *event.Hub[Listener]
	broadcasting atomic.Bool
	logger       *logger.Logger
}

// NewService starts on the light palette without invoking the applier. A nil applier
// uses a RendererApplier over the default lipgloss renderer.
func NewService(applier Applier, log *logger.Logger) *Service {
	if applier == nil {
		applier = NewRendererApplier(nil)
	}
	log = log.Component("theme")

	light := LightPalette()
	dark := DarkPalette()
	return &Service{
		current:   light,
		palettes:  map[string]Palette{light.Name: light, dark.Name: dark},
		applier:   applier,
		listeners: event.NewHub[Listener](log),
		logger:    log,
	}
}

// Register adds or replaces a named palette.
func (s *Service) Register(p Palette) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.palettes[p.Name] = p
	return nil
}

// Names returns the registered palette names, sorted.
func (s *Service) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.palettes))
	for name := range s.palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Current returns the active palette.
func (s *Service) Current() Palette {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// IsDark reports whether the active palette is dark.
func (s *Service) IsDark() bool {
	return s.Current().Dark
}

// Apply swaps to the built-in dark or light palette. Subscribers are notified on
// every successful swap, including when the palette did not change.
func (s *Service) Apply(dark bool) error {
	name := Light
	if dark {
		name = Dark
	}
	return s.ApplyNamed(name)
}

// ApplyNamed swaps to a registered palette. When the swap fails the previous palette
// stays active and nobody is notified. Calls made from a listener are rejected with
// ErrApplyDuringBroadcast.
func (s *Service) ApplyNamed(name string) error {
	if s.broadcasting.Load() {
		s.logger.WithFields(map[string]any{"theme": name}).
			Warn("theme change requested during theme broadcast; ignored")
		return workbencherrors.NewThemeError(name, ErrApplyDuringBroadcast)
	}

	s.mu.RLock()
	next, ok := s.palettes[name]
	s.mu.RUnlock()
	if !ok {
		return workbencherrors.NewThemeError(name, fmt.Errorf("unknown palette"))
	}

	if err := event.Recover(func() error { return s.applier.Apply(next) }); err != nil {
		s.logger.WithFields(map[string]any{"theme": name}).Error(err, "palette swap failed")
		return workbencherrors.NewThemeError(name, err)
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	s.broadcasting.Store(true)
	defer s.broadcasting.Store(false)

	s.logger.WithFields(map[string]any{"theme": name, "dark": next.Dark}).Debug("theme applied")
	s.listeners.Notify("theme", func(l Listener) error {
		return l.ThemeChanged(next.Dark)
	})
	return nil
}

// Subscribe registers l once.
func (s *Service) Subscribe(l Listener) {
	if l == nil {
		return
	}
	s.listeners.Subscribe(l)
}

// Unsubscribe removes l; unknown listeners are ignored.
func (s *Service) Unsubscribe(l Listener) {
	if l == nil {
		return
	}
	s.listeners.Unsubscribe(l)
}

// SubscribeFunc subscribes fn and returns its handle.
func (s *Service) SubscribeFunc(fn func(dark bool) error) *ListenerFunc {
	f := ListenerFunc(fn)
	handle := &f
	s.Subscribe(handle)
	return handle
}

// ListenerCount reports how many listeners are subscribed.
func (s *Service) ListenerCount() int {
	return s.listeners.Len()
}
