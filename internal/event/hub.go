// Package event provides the ordered, fail-isolated listener fan-out shared by the
// locale service, the theme service and the plugin registry.
package event

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/alexisbeaulieu97/workbench/internal/logger"
)

// Hub keeps an ordered set of listeners and delivers broadcasts to them.
//
// Listeners are compared by identity, so L must be a type whose dynamic values are
// comparable (pointers in practice). Delivery iterates over a snapshot taken when the
// broadcast starts: listeners added or removed by a handler only see later broadcasts.
type Hub[L comparable] struct {
	mu        sync.RWMutex
	listeners []L
	logger    *logger.Logger
}

// NewHub creates an empty hub that reports listener failures to log.
func NewHub[L comparable](log *logger.Logger) *Hub[L] {
	return &Hub[L]{logger: log}
}

// Subscribe appends l unless it is already subscribed. It reports whether l was added.
func (h *Hub[L]) Subscribe(l L) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, existing := range h.listeners {
		if existing == l {
			return false
		}
	}
	h.listeners = append(h.listeners, l)
	return true
}

// Unsubscribe removes l. Removing an unknown listener is a no-op.
func (h *Hub[L]) Unsubscribe(l L) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, existing := range h.listeners {
		if existing == l {
			next := make([]L, 0, len(h.listeners)-1)
			next = append(next, h.listeners[:i]...)
			next = append(next, h.listeners[i+1:]...)
			h.listeners = next
			return true
		}
	}
	return false
}

// Len returns the number of subscribed listeners.
func (h *Hub[L]) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}

// Snapshot returns the listeners in subscription order.
func (h *Hub[L]) Snapshot() []L {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]L(nil), h.listeners...)
}

// Notify calls deliver once per listener, in subscription order. A listener that
// returns an error or panics is logged and skipped; delivery always continues.
// The collected failures are returned for callers that want to inspect them.
func (h *Hub[L]) Notify(name string, deliver func(L) error) []error {
	if h == nil || deliver == nil {
		return nil
	}

	var failures []error
	for idx, l := range h.Snapshot() {
		listener := l
		if err := Recover(func() error { return deliver(listener) }); err != nil {
			h.logger.WithFields(map[string]any{
				"broadcast": name,
				"listener":  idx,
			}).Error(err, "listener failed")
			failures = append(failures, err)
		}
	}
	return failures
}

// PanicError reports a recovered panic from a listener or plugin hook.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Recover runs fn and converts a panic into a *PanicError.
func Recover(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn()
}
