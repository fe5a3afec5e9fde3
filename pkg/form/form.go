// Package form implements the edit state machine shared by every entity form.
// A Controller owns one in-flight draft: it validates required fields locally,
// runs pre-write hooks such as attachment uploads, and then issues a create or
// an update depending on whether the draft carries a record identifier.
package form

import (
	"context"
	"log/slog"
	"sync"

	"github.com/JaimeStill/portfolio-admin/pkg/client"
	"github.com/JaimeStill/portfolio-admin/pkg/logging"
)

// DefaultFallback is surfaced when a failure carries no server message.
const DefaultFallback = "Failed to save"

// Draft is an editable copy of a record.
type Draft interface {
	// RecordID returns the identifier of the record being edited,
	// or "" for a record that has not been created yet.
	RecordID() string
}

// Store writes drafts to the remote API.
type Store[D Draft] interface {
	Create(ctx context.Context, draft D) error
	Update(ctx context.Context, id string, draft D) error
}

// Hook runs after validation and before the write. It may modify the draft.
// A non-nil error aborts the submission before any record write.
type Hook[D Draft] func(ctx context.Context, draft *D) error

// State is the controller's position in the edit lifecycle.
type State int

const (
	StateEmpty State = iota
	StateEditing
	StateSubmitting
	StateSaved
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateSaved:
		return "saved"
	default:
		return "unknown"
	}
}

// Option configures a Controller.
type Option[D Draft] func(*Controller[D])

// WithFallback sets the message surfaced for failures without a server message.
func WithFallback[D Draft](msg string) Option[D] {
	return func(c *Controller[D]) { c.fallback = msg }
}

// WithHook appends a pre-write hook.
func WithHook[D Draft](h Hook[D]) Option[D] {
	return func(c *Controller[D]) { c.hooks = append(c.hooks, h) }
}

// OnSave registers the callback notified after a successful write.
func OnSave[D Draft](fn func(D)) Option[D] {
	return func(c *Controller[D]) { c.onSave = fn }
}

// WithLogger sets the controller logger.
func WithLogger[D Draft](l *slog.Logger) Option[D] {
	return func(c *Controller[D]) { c.logger = l }
}

// WithValidator replaces the default tag validator.
func WithValidator[D Draft](v *Validator) Option[D] {
	return func(c *Controller[D]) { c.validator = v }
}

// Controller drives one draft through Empty, Editing, Submitting, and Saved.
type Controller[D Draft] struct {
	mu        sync.Mutex
	state     State
	draft     D
	message   string
	fields    map[string]string
	store     Store[D]
	hooks     []Hook[D]
	fallback  string
	onSave    func(D)
	validator *Validator
	logger    *slog.Logger
}

// New creates a Controller in the Empty state.
func New[D Draft](store Store[D], opts ...Option[D]) *Controller[D] {
	c := &Controller[D]{
		store:    store,
		fallback: DefaultFallback,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.validator == nil {
		c.validator = NewValidator()
	}
	return c
}

// Edit loads draft and enters Editing. Callers build the draft from an
// existing record or from a blank value so no state survives reuse.
func (c *Controller[D]) Edit(draft D) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateSubmitting {
		return ErrSubmitting
	}

	c.draft = draft
	c.state = StateEditing
	c.message = ""
	c.fields = nil
	return nil
}

// Cancel discards the draft and returns to Empty.
func (c *Controller[D]) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero D
	c.draft = zero
	c.state = StateEmpty
	c.message = ""
	c.fields = nil
}

// Update applies fn to the draft while Editing.
func (c *Controller[D]) Update(fn func(*D)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateEditing:
		fn(&c.draft)
		return nil
	case StateSubmitting:
		return ErrSubmitting
	default:
		return ErrNotEditing
	}
}

// Draft returns the current draft value.
func (c *Controller[D]) Draft() D {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// State returns the current lifecycle state.
func (c *Controller[D]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submitting reports whether a submission is outstanding.
func (c *Controller[D]) Submitting() bool {
	return c.State() == StateSubmitting
}

// Creating reports whether a submit would create rather than update.
func (c *Controller[D]) Creating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.RecordID() == ""
}

// Message returns the form-level failure message, or "".
func (c *Controller[D]) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

// FieldError returns the validation message for a field, or "".
func (c *Controller[D]) FieldError(field string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields[field]
}

// Submit validates the draft, runs hooks, and writes it.
// On failure the draft is retained and the controller returns to Editing.
func (c *Controller[D]) Submit(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateSubmitting:
		c.mu.Unlock()
		return ErrSubmitting
	case StateEditing:
	default:
		c.mu.Unlock()
		return ErrNotEditing
	}

	if err := c.validator.Check(c.draft); err != nil {
		if ve, ok := err.(*ValidationError); ok {
			c.fields = ve.Fields
			c.message = ""
		} else {
			c.message = c.fallback
		}
		c.mu.Unlock()
		return err
	}

	c.state = StateSubmitting
	c.message = ""
	c.fields = nil
	draft := c.draft
	c.mu.Unlock()

	err := c.write(ctx, &draft)

	c.mu.Lock()
	c.draft = draft
	if err != nil {
		c.state = StateEditing
		c.message = c.messageFor(err)
		c.mu.Unlock()

		c.logger.Warn("form submission failed", "id", draft.RecordID(), "error", err)
		return err
	}
	c.state = StateSaved
	onSave := c.onSave
	c.mu.Unlock()

	if onSave != nil {
		onSave(draft)
	}
	return nil
}

func (c *Controller[D]) write(ctx context.Context, draft *D) error {
	for _, hook := range c.hooks {
		if err := hook(ctx, draft); err != nil {
			return err
		}
	}

	if id := (*draft).RecordID(); id != "" {
		return c.store.Update(ctx, id, *draft)
	}
	return c.store.Create(ctx, *draft)
}

func (c *Controller[D]) messageFor(err error) string {
	if msg, ok := client.ServerMessage(err); ok {
		return msg
	}
	if msg, ok := LocalMessage(err); ok {
		return msg
	}
	return c.fallback
}

// LocalMessager is implemented by errors whose text is safe to show users.
type LocalMessager interface {
	LocalMessage() string
}

// LocalMessage extracts a user-facing message from err when it carries one.
func LocalMessage(err error) (string, bool) {
	for e := err; e != nil; {
		if lm, ok := e.(LocalMessager); ok {
			return lm.LocalMessage(), true
		}
		u, ok := e.(interface{ Unwrap() error })
		if !ok {
			break
		}
		e = u.Unwrap()
	}
	return "", false
}
