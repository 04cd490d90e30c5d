package plugin

import (
	"fmt"
	"sort"
	"sync"

	workbencherrors "github.com/alexisbeaulieu97/workbench/pkg/errors"
)

// Constructor creates a fresh plugin instance.
type Constructor func() (Plugin, error)

var (
	catalogMu sync.RWMutex
	catalog   = make(map[string]Constructor)
)

// Register adds a plugin implementation to the process catalog. Plugin packages call
// it from init.
func Register(implementation string, ctor Constructor) error {
	if ctor == nil {
		return workbencherrors.NewPluginError(implementation, fmt.Errorf("constructor is nil"))
	}

	catalogMu.Lock()
	defer catalogMu.Unlock()

	if _, exists := catalog[implementation]; exists {
		return workbencherrors.NewPluginError(implementation, fmt.Errorf("implementation already registered"))
	}
	catalog[implementation] = ctor
	return nil
}

// MustRegister is Register for init functions.
func MustRegister(implementation string, ctor Constructor) {
	if err := Register(implementation, ctor); err != nil {
		panic(err)
	}
}

// LookupImplementation returns the constructor registered under implementation.
func LookupImplementation(implementation string) (Constructor, error) {
	catalogMu.RLock()
	defer catalogMu.RUnlock()

	ctor, ok := catalog[implementation]
	if !ok {
		return nil, ErrUnknownImplementation{Name: implementation}
	}
	return ctor, nil
}

// Implementations lists the registered implementation names in sorted order.
func Implementations() []string {
	catalogMu.RLock()
	defer catalogMu.RUnlock()

	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FromCatalog resolves implementation names against the process catalog. An unknown
// name still yields a factory; constructing it fails, so the registry reports it like
// any other construction failure.
func FromCatalog(names ...string) Discovery {
	list := append([]string(nil), names...)
	return func() []Factory {
		factories := make([]Factory, 0, len(list))
		for _, name := range list {
			implementation := name
			factories = append(factories, Factory{
				Name: implementation,
				New: func() (Plugin, error) {
					ctor, err := LookupImplementation(implementation)
					if err != nil {
						return nil, err
					}
					return ctor()
				},
			})
		}
		return factories
	}
}
