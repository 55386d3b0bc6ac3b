// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"sort"
	"sync"

	"github.com/gogpu/ggui"
)

// RegistryEntry represents a registered surface backend.
type RegistryEntry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	// Built-in priorities:
	//   - 100: OpenGL
	//   - 90: WebGPU
	//   - 10: software
	Priority int

	// Factory creates surface instances.
	Factory Factory

	// Available reports if the backend is usable on this system.
	Available func() bool
}

var globalRegistry = NewRegistry()

// DefaultRegistry returns the registry backends register into from init.
func DefaultRegistry() *Registry { return globalRegistry }

// Registry manages registered surface backends.
//
// Example registration:
//
//	func init() {
//	    surface.Register("vulkan", 100, vulkanFactory, vulkanAvailable)
//	}
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// Register adds a backend to the global registry. A nil available check
// means the backend is always available. Registering an existing name
// replaces the previous entry.
func Register(name string, priority int, factory Factory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered backend names sorted by priority.
func List() []string {
	return globalRegistry.List()
}

// NewSurface creates a surface with the best available backend of the
// global registry.
func NewSurface(h Handles, size ggui.PhysicalSize) (Surface, error) {
	return globalRegistry.NewSurface(h, size)
}

// NewSurfaceByName creates a surface with a specific backend of the global
// registry.
func NewSurfaceByName(name string, h Handles, size ggui.PhysicalSize) (Surface, error) {
	return globalRegistry.NewSurfaceByName(name, h, size)
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if available == nil {
		available = func() bool { return true }
	}
	r.entries[name] = &RegistryEntry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered backend names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// Available returns names of all available backends sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(true)
}

// Get returns a copy of a backend's entry.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	entryCopy := *entry
	return &entryCopy, true
}

// NewSurface tries every available backend in priority order and returns
// the first surface created. When all fail, the last error is returned.
func (r *Registry) NewSurface(h Handles, size ggui.PhysicalSize) (Surface, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	r.mu.RUnlock()

	if len(available) == 0 {
		return nil, ErrNoBackendAvailable
	}

	log := ggui.Logger()
	var lastErr error
	for _, name := range available {
		s, err := r.NewSurfaceByName(name, h, size)
		if err == nil {
			log.Info("surface: backend selected", "name", name)
			return s, nil
		}
		log.Debug("surface: backend failed", "name", name, "err", err)
		lastErr = err
	}
	return nil, lastErr
}

// NewSurfaceByName creates a surface with a specific backend.
func (r *Registry) NewSurfaceByName(name string, h Handles, size ggui.PhysicalSize) (Surface, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if !entry.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}
	return entry.Factory(h, size)
}

// sortedNames returns backend names sorted by priority (highest first),
// ties broken by name. Must be called with the lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	entries := make([]*RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// Errors.
var (
	// ErrNoBackendAvailable is returned when no surface backends are
	// registered or available on the current system.
	ErrNoBackendAvailable = errors.New("surface: no backend available")

	// ErrSurfaceClosed is returned when rendering to a closed surface.
	ErrSurfaceClosed = errors.New("surface: closed")
)

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "surface: backend unavailable: " + e.Name
}

// init registers the built-in software backend.
func init() {
	Register(SoftwareName, 10, func(_ Handles, size ggui.PhysicalSize) (Surface, error) {
		return NewImageSurface(size), nil
	}, nil)
}
