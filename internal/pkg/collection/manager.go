package collection

import (
	"fmt"
	"reflect"
	"time"

	"dario.cat/mergo"
	"github.com/yigit/studyhub/internal/pkg/idgen"
)

// Hooks are side effects run after a successful mutation.
type Hooks[T Entity] struct {
	// OnCreate runs after the entity has been prepended.
	OnCreate func(created T)
	// OnDelete runs after every delete call; removed is false when the id was absent.
	OnDelete func(id string, removed bool)
	// OnUpdate runs after an entity has been replaced in place.
	OnUpdate func(updated T)
}

// Manager is the single sanctioned mutation surface for one collection. It
// assigns identity, keeps newest-first order and fires hooks.
type Manager[T Entity] struct {
	items *Collection[T]
	ids   idgen.Generator
	now   func() time.Time
	hooks Hooks[T]
}

// Option configures a Manager.
type Option[T Entity] func(*Manager[T])

// WithClock overrides the timestamp source.
func WithClock[T Entity](now func() time.Time) Option[T] {
	return func(m *Manager[T]) { m.now = now }
}

// WithHooks installs mutation side effects.
func WithHooks[T Entity](hooks Hooks[T]) Option[T] {
	return func(m *Manager[T]) { m.hooks = hooks }
}

// WithItems seeds the managed collection, newest first.
func WithItems[T Entity](items ...T) Option[T] {
	return func(m *Manager[T]) { m.items = New(items...) }
}

// NewManager creates a manager over an empty collection.
func NewManager[T Entity](ids idgen.Generator, opts ...Option[T]) *Manager[T] {
	m := &Manager[T]{
		items: New[T](),
		ids:   ids,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create builds a new entity with a fresh id and the current time, prepends
// it and runs OnCreate. The caller is trusted; no validation happens here.
func (m *Manager[T]) Create(build func(id string, now time.Time) T) T {
	created := build(m.ids.NewID(), m.now())
	m.items.Prepend(created)
	if m.hooks.OnCreate != nil {
		m.hooks.OnCreate(created)
	}
	return created
}

// Append adds an already built entity to the end of the collection without
// firing hooks. It backs append-only logs.
func (m *Manager[T]) Append(build func(id string, now time.Time) T) T {
	created := build(m.ids.NewID(), m.now())
	m.items.Append(created)
	return created
}

// Delete removes the entity with the given id. Missing ids are silently
// ignored; OnDelete still runs.
func (m *Manager[T]) Delete(id string) bool {
	_, removed := m.items.Remove(id)
	if m.hooks.OnDelete != nil {
		m.hooks.OnDelete(id, removed)
	}
	return removed
}

// Update replaces the entity with the given id by fn's result.
func (m *Manager[T]) Update(id string, fn func(current T) T) (T, bool) {
	updated, ok := m.items.Replace(id, fn)
	if ok && m.hooks.OnUpdate != nil {
		m.hooks.OnUpdate(updated)
	}
	return updated, ok
}

// Merge shallow-merges the non-zero fields of patch into the entity with the
// given id. The id itself is never overwritten.
func (m *Manager[T]) Merge(id string, patch T) (T, bool, error) {
	current, ok := m.items.Find(id)
	if !ok {
		var zero T
		return zero, false, nil
	}
	merged, err := MergePatch(current, patch)
	if err != nil {
		return current, true, err
	}
	if merged.EntityID() != id {
		return current, true, fmt.Errorf("merge patch: id %q cannot be changed", id)
	}
	updated, _ := m.Update(id, func(T) T { return merged })
	return updated, true, nil
}

// MergePatch returns current with the non-zero fields of patch applied. A
// non-nil pointer in patch replaces the pointer in current, even when it
// points at a zero value, so callers can clear optional fields and values
// previously handed out never change underneath their holders.
func MergePatch[T any](current, patch T) (T, error) {
	merged := current
	err := mergo.Merge(&merged, patch,
		mergo.WithOverride,
		mergo.WithoutDereference,
		mergo.WithTransformers(timeTransformer{}),
	)
	if err != nil {
		return current, fmt.Errorf("merge patch: %w", err)
	}
	return merged, nil
}

// Find returns the entity with the given id.
func (m *Manager[T]) Find(id string) (T, bool) {
	return m.items.Find(id)
}

// Items returns a snapshot of the collection, newest first.
func (m *Manager[T]) Items() []T {
	return m.items.Items()
}

// Len returns the number of managed entities.
func (m *Manager[T]) Len() int {
	return m.items.Len()
}

// Filter returns the entities matching keep.
func (m *Manager[T]) Filter(keep func(T) bool) []T {
	return m.items.Filter(keep)
}

// Reset replaces the contents with items, newest first, without firing hooks.
func (m *Manager[T]) Reset(items ...T) {
	m.items = New(items...)
}

// Clear drops every entity without firing hooks.
func (m *Manager[T]) Clear() {
	m.items.Clear()
}

// timeTransformer keeps zero timestamps in a patch from clobbering set ones;
// mergo treats every struct value as non-empty.
type timeTransformer struct{}

func (timeTransformer) Transformer(typ reflect.Type) func(dst, src reflect.Value) error {
	if typ != reflect.TypeOf(time.Time{}) {
		return nil
	}
	return func(dst, src reflect.Value) error {
		if dst.CanSet() && !src.Interface().(time.Time).IsZero() {
			dst.Set(src)
		}
		return nil
	}
}
