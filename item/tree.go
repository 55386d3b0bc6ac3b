// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package item

// Tree is a simple Component backed by a slice of items.
//
// Example:
//
//	t := item.NewTree()
//	bg := t.Add(-1, &item.Rectangle{Rect: ggui.Rect{Width: 200, Height: 100}})
//	t.Add(bg, &item.Text{Rect: ggui.Rect{Width: 200, Height: 20}, Text: "hello"})
type Tree struct {
	id    ComponentID
	nodes []treeNode
	roots []int
}

type treeNode struct {
	item     Item
	children []int
}

var _ Component = (*Tree)(nil)

// NewTree creates an empty tree with a fresh ComponentID.
func NewTree() *Tree {
	return &Tree{id: NewComponentID()}
}

// Add appends it as the last child of parent and returns its index.
// A negative parent adds a root item.
func (t *Tree) Add(parent int, it Item) int {
	idx := len(t.nodes)
	t.nodes = append(t.nodes, treeNode{item: it})
	if parent < 0 || parent >= idx {
		t.roots = append(t.roots, idx)
	} else {
		t.nodes[parent].children = append(t.nodes[parent].children, idx)
	}
	return idx
}

// Ref returns the cache key of the item at index i.
func (t *Tree) Ref(i int) Ref {
	return Ref{Component: t.id, Index: i}
}

// Len returns the number of items.
func (t *Tree) Len() int { return len(t.nodes) }

func (t *Tree) ID() ComponentID { return t.id }

func (t *Tree) Roots() []int { return t.roots }

func (t *Tree) Item(i int) Item { return t.nodes[i].item }

func (t *Tree) Children(i int) []int { return t.nodes[i].children }
