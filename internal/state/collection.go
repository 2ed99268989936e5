package state

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/foodfireroad/foodfire/internal/core"
	"github.com/foodfireroad/foodfire/internal/logging"
)

// Keyed is a record with a stable identifier.
type Keyed interface {
	Key() uuid.UUID
}

// Cloner is implemented by records holding slices or pointers. The
// collection clones such records on the way in and out so callers never
// share memory with it.
type Cloner[T any] interface {
	Clone() T
}

func clone[T Keyed](r T) T {
	if c, ok := any(r).(Cloner[T]); ok {
		return c.Clone()
	}
	return r
}

// Collection holds records by id and remembers the order they were added in.
// It is not safe for concurrent use; State guards it.
type Collection[T Keyed] struct {
	items map[uuid.UUID]T
	order []uuid.UUID
}

// NewCollection builds a collection from records, keeping their order.
// Later duplicates of an id are dropped with a warning.
func NewCollection[T Keyed](records []T) *Collection[T] {
	c := &Collection[T]{items: make(map[uuid.UUID]T, len(records))}
	for i, r := range records {
		if err := c.Add(r); err != nil {
			logging.WithField("index", i).Warn("dropping record: %v", err)
		}
	}
	return c
}

// Add appends a record. An id that is already present is rejected.
func (c *Collection[T]) Add(record T) error {
	id := record.Key()
	if _, ok := c.items[id]; ok {
		return fmt.Errorf("%w: %s", core.ErrDuplicateRecord, id)
	}
	c.items[id] = clone(record)
	c.order = append(c.order, id)
	return nil
}

// Update replaces the record with the same id, keeping its position.
func (c *Collection[T]) Update(record T) error {
	id := record.Key()
	if _, ok := c.items[id]; !ok {
		return fmt.Errorf("%w: %s", core.ErrRecordNotFound, id)
	}
	c.items[id] = clone(record)
	return nil
}

// Delete removes the record with id.
func (c *Collection[T]) Delete(id uuid.UUID) error {
	if _, ok := c.items[id]; !ok {
		return fmt.Errorf("%w: %s", core.ErrRecordNotFound, id)
	}
	delete(c.items, id)
	for i, k := range c.order {
		if k == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the record with id
func (c *Collection[T]) Get(id uuid.UUID) (T, bool) {
	r, ok := c.items[id]
	if !ok {
		return r, false
	}
	return clone(r), true
}

// All returns the records in insertion order. Records and the slice are
// copies.
func (c *Collection[T]) All() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, clone(c.items[id]))
	}
	return out
}

// Len returns the number of records
func (c *Collection[T]) Len() int {
	return len(c.order)
}
