// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewid

import "sync"

// FirstID is the id issued for the first name allocated in a Registry.
// Zero is never issued so that hosts can treat it as "no id".
const FirstID = 1

// Registry maps symbolic names to integer ids for one document.
// The zero value is not usable; create registries with NewRegistry.
type Registry struct {
	mutex sync.Mutex
	ids   map[string]int
	// names holds allocated names in allocation order. names[i] has
	// id FirstID+i.
	names []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]int)}
}

// Allocate returns the id for name, issuing a fresh id the first time
// a name is seen. Concurrent calls for the same name return the same id.
func (registry *Registry) Allocate(name string) int {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()

	if id, exists := registry.ids[name]; exists {
		return id
	}
	id := FirstID + len(registry.names)
	registry.ids[name] = id
	registry.names = append(registry.names, name)
	return id
}

// Contains reports whether name has been allocated.
func (registry *Registry) Contains(name string) bool {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()

	_, exists := registry.ids[name]
	return exists
}

// Lookup returns the id for name without allocating it.
func (registry *Registry) Lookup(name string) (int, bool) {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()

	id, exists := registry.ids[name]
	return id, exists
}

// Names returns the allocated names in allocation order. The returned
// slice is a copy.
func (registry *Registry) Names() []string {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()

	result := make([]string, len(registry.names))
	copy(result, registry.names)
	return result
}

// Len returns the number of allocated names.
func (registry *Registry) Len() int {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()

	return len(registry.names)
}
