// Package memory is the seeded in-process data source used in mock mode and
// as the fallback for empty or failed real reads.
package memory

import (
	"errors"
	"sync"
)

var (
	ErrMissing  = errors.New("memory: no item with that id")
	ErrConflict = errors.New("memory: item conflicts with an existing one")
)

// Collection is an id-keyed arena that remembers insertion order. Mutations
// are last-write-wins.
type Collection[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
	id    func(T) string
	clone func(T) T
}

// NewCollection creates a collection seeded with items. clone is applied on
// every read and write so callers never share slices or maps with the arena.
func NewCollection[T any](id func(T) string, clone func(T) T, seed ...T) *Collection[T] {
	c := &Collection[T]{
		items: make(map[string]T, len(seed)),
		id:    id,
		clone: clone,
	}
	for _, v := range seed {
		c.insertLocked(v)
	}
	return c
}

func (c *Collection[T]) insertLocked(v T) {
	key := c.id(v)
	if _, ok := c.items[key]; !ok {
		c.order = append(c.order, key)
	}
	c.items[key] = c.clone(v)
}

// All returns every item in insertion order.
func (c *Collection[T]) All() []T {
	return c.Where(nil)
}

// Where returns the items accepted by keep, in insertion order. A nil keep
// accepts everything.
func (c *Collection[T]) Where(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.order))
	for _, key := range c.order {
		v := c.items[key]
		if keep == nil || keep(v) {
			out = append(out, c.clone(v))
		}
	}
	return out
}

func (c *Collection[T]) Find(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.clone(v), true
}

func (c *Collection[T]) Insert(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.insertLocked(v)
}

// InsertUnique stores v unless clash reports a conflict with an item already
// in the collection. The check and the insert share one write lock.
func (c *Collection[T]) InsertUnique(v T, clash func(existing T) bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range c.order {
		if clash(c.items[key]) {
			return ErrConflict
		}
	}
	c.insertLocked(v)
	return nil
}

// ModifyUnique is Modify with a conflict check of the result against every
// other item, under the same write lock.
func (c *Collection[T]) ModifyUnique(id string, fn func(T) T, clash func(other, next T) bool) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	cur, ok := c.items[id]
	if !ok {
		return zero, ErrMissing
	}
	next := c.clone(fn(c.clone(cur)))
	for _, key := range c.order {
		if key != id && clash(c.items[key], next) {
			return zero, ErrConflict
		}
	}
	c.items[id] = next
	return c.clone(next), nil
}

// Modify applies fn to the item with id and stores the result.
func (c *Collection[T]) Modify(id string, fn func(T) T) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur, ok := c.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	next := c.clone(fn(c.clone(cur)))
	c.items[id] = next
	return c.clone(next), true
}

// Remove deletes exactly one item.
func (c *Collection[T]) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for i, key := range c.order {
		if key == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
