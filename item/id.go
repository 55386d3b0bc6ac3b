// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package item

import (
	"fmt"
	"sync/atomic"
)

// ComponentID identifies a component instance. IDs are never reused within
// a process, so a destroyed component's ID cannot alias a new one.
type ComponentID uint64

var lastComponentID atomic.Uint64

// NewComponentID returns a fresh, process-unique component ID.
func NewComponentID() ComponentID {
	return ComponentID(lastComponentID.Add(1))
}

// Ref addresses one item inside one component.
type Ref struct {
	Component ComponentID
	Index     int
}

// String returns "component#index".
func (r Ref) String() string {
	return fmt.Sprintf("%d#%d", r.Component, r.Index)
}
