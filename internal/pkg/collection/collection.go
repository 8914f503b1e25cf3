// Package collection implements the owned, newest-first entity container that
// every content feature is built on.
package collection

// Entity is anything that can live in a Collection.
type Entity interface {
	EntityID() string
}

// Collection is an order-preserving list of entities keyed by id. Index 0 is
// always the most recently added entity. It is not safe for concurrent use;
// the owner serializes access.
type Collection[T Entity] struct {
	items []T
}

// New creates a collection seeded with items, which are kept in the given
// order (newest first).
func New[T Entity](items ...T) *Collection[T] {
	c := &Collection[T]{items: make([]T, 0, len(items))}
	c.items = append(c.items, items...)
	return c
}

// Len returns the number of entities.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// Items returns a copy of the entities, newest first.
func (c *Collection[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Prepend places item at index 0.
func (c *Collection[T]) Prepend(item T) {
	c.items = append(c.items, item)
	copy(c.items[1:], c.items[:len(c.items)-1])
	c.items[0] = item
}

// Append places item at the end. Used for append-only logs such as purchases.
func (c *Collection[T]) Append(item T) {
	c.items = append(c.items, item)
}

// Find returns the entity with the given id.
func (c *Collection[T]) Find(id string) (T, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Contains reports whether an entity with the given id exists.
func (c *Collection[T]) Contains(id string) bool {
	return c.indexOf(id) >= 0
}

// Remove deletes the entity with the given id. Absent ids are a no-op.
func (c *Collection[T]) Remove(id string) (T, bool) {
	i := c.indexOf(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	removed := c.items[i]
	c.items = append(c.items[:i], c.items[i+1:]...)
	return removed, true
}

// Replace swaps the entity with the given id for the result of fn, keeping its
// position. Absent ids are a no-op.
func (c *Collection[T]) Replace(id string, fn func(T) T) (T, bool) {
	i := c.indexOf(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	c.items[i] = fn(c.items[i])
	return c.items[i], true
}

// Filter returns the entities matching keep, newest first.
func (c *Collection[T]) Filter(keep func(T) bool) []T {
	out := make([]T, 0)
	for _, item := range c.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Clear removes every entity.
func (c *Collection[T]) Clear() {
	c.items = c.items[:0]
}

func (c *Collection[T]) indexOf(id string) int {
	for i, item := range c.items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}
