// Package console holds the authoritative record collections behind the
// admin views and dispatches the intents those views emit.
package console

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/JaimeStill/portfolio-admin/pkg/form"
	"github.com/JaimeStill/portfolio-admin/pkg/presenter"
)

// Source loads, writes, and deletes one record type.
type Source[T any, D form.Draft] interface {
	form.Store[D]
	List(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, id string) error
}

// Opener builds the form controller for a record, or for a new record when
// record is nil. The controller returned must already hold its draft.
type Opener[T any, D form.Draft] func(record *T) (*form.Controller[D], error)

// Collection owns the record list for one entity and the form currently open
// against it. After every successful write it re-fetches the list.
type Collection[T any, D form.Draft] struct {
	mu     sync.Mutex
	items  []T
	loaded bool
	active *form.Controller[D]
	source Source[T, D]
	open   Opener[T, D]
	key    func(T) string
	logger *slog.Logger
}

// NewCollection creates an empty, unloaded collection.
func NewCollection[T any, D form.Draft](source Source[T, D], open Opener[T, D], key func(T) string, logger *slog.Logger) *Collection[T, D] {
	return &Collection[T, D]{
		source: source,
		open:   open,
		key:    key,
		logger: logger,
	}
}

// Refresh replaces the held list with the server's.
func (c *Collection[T, D]) Refresh(ctx context.Context) error {
	items, err := c.source.List(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.items = items
	c.loaded = true
	c.mu.Unlock()

	c.logger.Debug("collection refreshed", "count", len(items))
	return nil
}

// Items returns a copy of the held list.
func (c *Collection[T, D]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Loaded reports whether Refresh has succeeded at least once.
func (c *Collection[T, D]) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Lookup returns the held record with id.
func (c *Collection[T, D]) Lookup(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range c.items {
		if c.key(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Dispatch handles an intent emitted by the collection's view.
func (c *Collection[T, D]) Dispatch(ctx context.Context, intent presenter.Intent[T]) error {
	switch intent.Kind {
	case presenter.IntentEdit:
		record := intent.Record
		_, err := c.Open(&record)
		return err
	case presenter.IntentDelete:
		return c.Delete(ctx, intent.ID)
	default:
		return fmt.Errorf("unsupported intent: %s", intent.Kind)
	}
}

// Open starts editing record, or a new record when record is nil, replacing
// any form already open.
func (c *Collection[T, D]) Open(record *T) (*form.Controller[D], error) {
	ctrl, err := c.open(record)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.active = ctrl
	c.mu.Unlock()
	return ctrl, nil
}

// Active returns the open form, or nil.
func (c *Collection[T, D]) Active() *form.Controller[D] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Close discards the open form.
func (c *Collection[T, D]) Close() {
	c.mu.Lock()
	active := c.active
	c.active = nil
	c.mu.Unlock()

	if active != nil {
		active.Cancel()
	}
}

// Save submits the open form. On success the form is discarded and the
// collection re-fetched; on failure the form stays open with its draft.
func (c *Collection[T, D]) Save(ctx context.Context) error {
	ctrl := c.Active()
	if ctrl == nil {
		return form.ErrNotEditing
	}

	if err := ctrl.Submit(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	if c.active == ctrl {
		c.active = nil
	}
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// Delete removes the record id remotely and re-fetches the collection.
func (c *Collection[T, D]) Delete(ctx context.Context, id string) error {
	if err := c.source.Delete(ctx, id); err != nil {
		return err
	}
	return c.Refresh(ctx)
}
