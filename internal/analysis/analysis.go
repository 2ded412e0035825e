// Package analysis holds the nested statistics an analyzer produces for a
// finished backtest run.
package analysis

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Node is one entry of an Analysis: either a scalar leaf or a nested mapping.
type Node struct {
	value Value
	child *Analysis
}

// IsLeaf reports whether the node holds a scalar.
func (n Node) IsLeaf() bool {
	return n.child == nil
}

func (n Node) Value() Value {
	return n.value
}

// Analysis returns the nested mapping, or nil for leaves.
func (n Node) Analysis() *Analysis {
	return n.child
}

// Analysis is an insertion-ordered mapping of statistic names to values or
// nested analyses. Iteration always follows insertion order.
type Analysis struct {
	entries *orderedmap.OrderedMap[string, Node]
}

func New() *Analysis {
	return &Analysis{
		entries: orderedmap.New[string, Node](),
	}
}

// Set stores a scalar under key, replacing any previous entry in place.
func (a *Analysis) Set(key string, v Value) *Analysis {
	a.entries.Set(key, Node{value: v})
	return a
}

// Child returns the nested analysis stored under key, creating it when the key
// is missing or currently holds a scalar.
func (a *Analysis) Child(key string) *Analysis {
	if n, ok := a.entries.Get(key); ok && n.child != nil {
		return n.child
	}
	child := New()
	a.entries.Set(key, Node{child: child})
	return child
}

func (a *Analysis) Get(key string) (Node, bool) {
	return a.entries.Get(key)
}

// Len returns the number of direct entries.
func (a *Analysis) Len() int {
	return a.entries.Len()
}

// Each calls fn for every direct entry in insertion order, stopping at the
// first error.
func (a *Analysis) Each(fn func(key string, n Node) error) error {
	for pair := a.entries.Oldest(); pair != nil; pair = pair.Next() {
		if err := fn(pair.Key, pair.Value); err != nil {
			return err
		}
	}
	return nil
}

// Leaves counts scalar entries at every depth.
func (a *Analysis) Leaves() int {
	count := 0
	for pair := a.entries.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.IsLeaf() {
			count++
		} else {
			count += pair.Value.child.Leaves()
		}
	}
	return count
}
