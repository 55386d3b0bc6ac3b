// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package window

import (
	"errors"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/item"
)

var (
	// ErrAdapterGone is returned when a Ref outlived its adapter.
	ErrAdapterGone = errors.New("window: adapter no longer exists")

	// ErrNotAssociated is returned when resolving the zero Ref.
	ErrNotAssociated = errors.New("window: renderer not associated with any window")
)

// Renderer is the part of a frame renderer a window adapter drives.
type Renderer interface {
	Render() error
	Resize(size ggui.PhysicalSize) error
	FreeGraphicsResources(id item.ComponentID) error
	Close() error
}

// Adapter connects a Window to a native window and its renderer.
type Adapter interface {
	Window() *Window
	Renderer() Renderer
	RequestRedraw()
	Show() error
	Hide() error
}

// ID identifies an adapter within a Registry.
type ID uint64

// Registry owns window adapters and hands out non-owning Refs.
type Registry struct {
	next     ID
	adapters map[ID]Adapter
	order    []ID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[ID]Adapter)}
}

// Add registers a and returns a Ref to it.
func (r *Registry) Add(a Adapter) Ref {
	r.next++
	r.adapters[r.next] = a
	r.order = append(r.order, r.next)
	return Ref{reg: r, id: r.next}
}

// Remove unregisters the adapter behind ref. Outstanding Refs to it fail
// to resolve afterwards. It reports whether the adapter was registered.
func (r *Registry) Remove(ref Ref) bool {
	if ref.reg != r {
		return false
	}
	if _, ok := r.adapters[ref.id]; !ok {
		return false
	}
	delete(r.adapters, ref.id)
	for i, id := range r.order {
		if id == ref.id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of registered adapters.
func (r *Registry) Len() int { return len(r.adapters) }

// Adapters returns the registered adapters in registration order.
func (r *Registry) Adapters() []Adapter {
	out := make([]Adapter, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.adapters[id])
	}
	return out
}

// Ref is a non-owning handle to an adapter. The zero Ref is not associated
// with any adapter.
type Ref struct {
	reg *Registry
	id  ID
}

// IsZero reports whether the Ref is unassociated.
func (ref Ref) IsZero() bool { return ref.reg == nil }

// ID returns the adapter ID within its registry.
func (ref Ref) ID() ID { return ref.id }

// Resolve returns the adapter, or ErrNotAssociated / ErrAdapterGone.
func (ref Ref) Resolve() (Adapter, error) {
	if ref.reg == nil {
		return nil, ErrNotAssociated
	}
	a, ok := ref.reg.adapters[ref.id]
	if !ok {
		return nil, ErrAdapterGone
	}
	return a, nil
}
