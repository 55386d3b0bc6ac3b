// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package window holds the UI-runtime side of a native window: its size,
// scale factor, background and component roots, plus the Adapter contract
// implemented by platform backends.
//
// Renderers do not own their window adapter. They keep a Ref and resolve it
// through the Registry on every frame; once the adapter has been removed
// from the registry, resolution fails with ErrAdapterGone.
//
// None of the types in this package are safe for concurrent use.
package window
