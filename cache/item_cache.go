// Package cache provides the per-item resource cache used by the frame
// renderer.
//
// Entries are keyed by item.Ref and grouped by component, so destroying a
// component drops exactly its entries. The cache also remembers the scale
// factor its entries were produced under and empties itself when the window's
// scale factor changes.
//
// ItemCache is NOT safe for concurrent use. It belongs to the goroutine that
// renders frames.
package cache

import (
	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/item"
)

// ScaleFactorSource reports the current scale factor of a window.
type ScaleFactorSource interface {
	ScaleFactor() float32
}

// Stats holds cache statistics.
type Stats struct {
	Len       int     // Current number of entries
	Hits      uint64  // Lookups answered from the cache
	Misses    uint64  // Lookups that had to compute a value
	HitRate   float64 // Hits / (Hits + Misses)
	Evictions uint64  // Entries removed by eviction or release
}

type entry[V any] struct {
	value V
	ok    bool
}

// ItemCache maps items to derived resources of type V.
//
// A stored entry is a pair (value, ok). ok == false records that the item
// is known but currently has nothing to render; looking it up is a hit.
type ItemCache[V any] struct {
	components map[item.ComponentID]map[int]entry[V]
	count      int

	scale    float32
	hasScale bool

	hits      uint64
	misses    uint64
	evictions uint64
}

// New creates an empty cache.
func New[V any]() *ItemCache[V] {
	return &ItemCache[V]{components: make(map[item.ComponentID]map[int]entry[V])}
}

// Get returns the entry for ref. found reports whether an entry exists;
// ok is the stored renderability flag.
func (c *ItemCache[V]) Get(ref item.Ref) (v V, ok, found bool) {
	e, found := c.components[ref.Component][ref.Index]
	if found {
		c.hits++
	} else {
		c.misses++
	}
	return e.value, e.ok, found
}

// Set stores an entry for ref, replacing any previous one.
func (c *ItemCache[V]) Set(ref item.Ref, v V, ok bool) {
	m := c.components[ref.Component]
	if m == nil {
		m = make(map[int]entry[V])
		c.components[ref.Component] = m
	}
	if _, exists := m[ref.Index]; !exists {
		c.count++
	}
	m[ref.Index] = entry[V]{value: v, ok: ok}
}

// GetOrUpdate returns the cached entry for ref, computing and storing it
// on a miss.
func (c *ItemCache[V]) GetOrUpdate(ref item.Ref, compute func() (V, bool)) (V, bool) {
	if v, ok, found := c.Get(ref); found {
		return v, ok
	}
	v, ok := compute()
	c.Set(ref, v, ok)
	return v, ok
}

// GetOrRefresh is GetOrUpdate for entries derived from mutable inputs.
// A cached entry for which fresh returns false is released and recomputed.
func (c *ItemCache[V]) GetOrRefresh(ref item.Ref, fresh func(V) bool, compute func() (V, bool)) (V, bool) {
	if v, ok, found := c.Get(ref); found {
		if fresh(v) {
			return v, ok
		}
		c.Release(ref)
	}
	v, ok := compute()
	c.Set(ref, v, ok)
	return v, ok
}

// Release drops the entry for a single item.
func (c *ItemCache[V]) Release(ref item.Ref) {
	m := c.components[ref.Component]
	if _, exists := m[ref.Index]; !exists {
		return
	}
	delete(m, ref.Index)
	if len(m) == 0 {
		delete(c.components, ref.Component)
	}
	c.count--
	c.evictions++
}

// ComponentDestroyed drops every entry belonging to id and leaves all
// other entries in place.
func (c *ItemCache[V]) ComponentDestroyed(id item.ComponentID) {
	m, exists := c.components[id]
	if !exists {
		return
	}
	delete(c.components, id)
	c.count -= len(m)
	c.evictions += uint64(len(m))
}

// ClearAll drops every entry.
func (c *ItemCache[V]) ClearAll() {
	if c.count > 0 {
		ggui.Logger().Debug("cache: clear all", "entries", c.count)
	}
	c.evictions += uint64(c.count)
	c.components = make(map[item.ComponentID]map[int]entry[V])
	c.count = 0
}

// ClearCacheIfScaleFactorChanged empties the cache when src reports a
// scale factor different from the one the entries were produced under,
// then records the new factor. It reports whether the cache was cleared.
//
// The first call only records the factor.
func (c *ItemCache[V]) ClearCacheIfScaleFactorChanged(src ScaleFactorSource) bool {
	s := src.ScaleFactor()
	if !c.hasScale {
		c.scale, c.hasScale = s, true
		return false
	}
	if s == c.scale {
		return false
	}
	ggui.Logger().Debug("cache: scale factor changed", "from", c.scale, "to", s)
	c.scale = s
	c.ClearAll()
	return true
}

// ScaleFactor returns the recorded scale factor, or 0 before the first
// ClearCacheIfScaleFactorChanged.
func (c *ItemCache[V]) ScaleFactor() float32 { return c.scale }

// Len returns the number of entries.
func (c *ItemCache[V]) Len() int { return c.count }

// Stats returns current cache statistics.
func (c *ItemCache[V]) Stats() Stats {
	var hitRate float64
	if total := c.hits + c.misses; total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}
	return Stats{
		Len:       c.count,
		Hits:      c.hits,
		Misses:    c.misses,
		HitRate:   hitRate,
		Evictions: c.evictions,
	}
}

// ResetStats resets all statistics counters to zero.
func (c *ItemCache[V]) ResetStats() {
	c.hits, c.misses, c.evictions = 0, 0, 0
}
