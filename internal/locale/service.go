package locale

import (
	"sync"
	"sync/atomic"

	"github.com/alexisbeaulieu97/workbench/internal/event"
	"github.com/alexisbeaulieu97/workbench/internal/logger"
)

// Listener is notified after the current locale changes.
type Listener interface {
	LocaleChanged(Locale) error
}

// ListenerFunc adapts a function to Listener. Use a pointer so the adapter can be
// unsubscribed again.
type ListenerFunc func(Locale) error

// LocaleChanged calls f.
func (f *ListenerFunc) LocaleChanged(l Locale) error {
	return (*f)(l)
}

// Service holds the current locale and the fixed supported list.
type Service struct {
	mu        sync.RWMutex
	current   Locale
	supported []Locale

	listeners    *event.Hub[Listener]
	broadcasting atomic.Bool
	logger       *logger.Logger
}

// NewService creates a service with the supported list in canonical order. An empty
// supported list falls back to Default. The initial locale is not required to be in
// the supported list.
func NewService(initial Locale, supported []Locale, log *logger.Logger) *Service {
	if len(supported) == 0 {
		supported = Default()
	}
	if initial.IsZero() {
		initial = English
	}
	log = log.Component("locale")

	return &Service{
		current:   initial,
		supported: append([]Locale(nil), supported...),
		listeners: event.NewHub[Listener](log),
		logger:    log,
	}
}

// Current returns the active locale.
func (s *Service) Current() Locale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Supported returns a copy of the supported locales.
func (s *Service) Supported() []Locale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Locale(nil), s.supported...)
}

// IsSupported returns the first supported entry that l matches.
func (s *Service) IsSupported(l Locale) (Locale, bool) {
	return FirstMatch(l, s.Supported())
}

// SetCurrent replaces the active locale and notifies every subscriber before it
// returns. Setting the locale that is already active does nothing. Calls made by a
// listener while a broadcast is in flight are ignored.
func (s *Service) SetCurrent(l Locale) {
	if s.broadcasting.Load() {
		s.logger.WithFields(map[string]any{"locale": l.String()}).
			Warn("locale change requested during locale broadcast; ignored")
		return
	}

	s.mu.Lock()
	if s.current.Equal(l) {
		s.mu.Unlock()
		return
	}
	s.current = l
	s.mu.Unlock()

	s.broadcasting.Store(true)
	defer s.broadcasting.Store(false)

	s.logger.WithFields(map[string]any{"locale": l.String()}).Debug("locale changed")
	s.listeners.Notify("locale", func(listener Listener) error {
		return listener.LocaleChanged(l)
	})
}

// Subscribe registers l. Subscribing the same listener twice has no effect.
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

// SubscribeFunc subscribes fn and returns the handle needed to unsubscribe it.
func (s *Service) SubscribeFunc(fn func(Locale) error) *ListenerFunc {
	f := ListenerFunc(fn)
	handle := &f
	s.Subscribe(handle)
	return handle
}

// ListenerCount reports how many listeners are subscribed.
func (s *Service) ListenerCount() int {
	return s.listeners.Len()
}
