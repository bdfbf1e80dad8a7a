package table

import (
	"context"
	"errors"
	"net/url"
	"slices"
	"time"
)

// ErrFormClosed indicates a submit arrived while the form was not open.
var ErrFormClosed = errors.New("table: form is not open")

// Definition configures one entity kind.
type Definition[T Record] struct {
	Kind     string
	Title    string
	Singular string
	Columns  []Column[T]
	Fields   []Field
	// Build assembles a record from sanitized form values.
	Build func(url.Values, Stamp) T
	// Label names a record in confirmations and flash messages.
	Label func(T) string
	// OnEdit is invoked for the row edit action. Nil means editing is not
	// available.
	OnEdit func(ctx context.Context, rec T) error
}

// Controller owns one store together with its form and deletion gate and
// derives display pages from it. It is not safe for concurrent use; callers
// serialize events.
type Controller[T Record] struct {
	def      Definition[T]
	store    *Store[T]
	form     *Form[T]
	gate     Gate
	pageSize int
	newID    func() string
}

// Option customizes a Controller.
type Option func(*options)

type options struct {
	newID func() string
}

// WithIDGenerator replaces the ULID generator.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

// NewController seeds a store for def.
func NewController[T Record](def Definition[T], pageSize int, seed []T, opts ...Option) (*Controller[T], error) {
	o := options{newID: NewID}
	for _, opt := range opts {
		opt(&o)
	}
	store, err := NewStore(seed...)
	if err != nil {
		return nil, err
	}
	return &Controller[T]{
		def:      def,
		store:    store,
		form:     NewForm(def.Fields, def.Build),
		pageSize: pageSize,
		newID:    o.newID,
	}, nil
}

// Definition returns the entity configuration.
func (c *Controller[T]) Definition() Definition[T] {
	return c.def
}

// Columns returns the visible columns.
func (c *Controller[T]) Columns() []Column[T] {
	return slices.Clone(c.def.Columns)
}

// View projects the store for q.
func (c *Controller[T]) View(q Query) Page[T] {
	return project(c.store.All(), c.def.Columns, q, c.pageSize)
}

// All returns a store snapshot.
func (c *Controller[T]) All() []T {
	return c.store.All()
}

// Record looks up a record by id.
func (c *Controller[T]) Record(id string) (T, bool) {
	return c.store.Get(id)
}

// Form exposes the add form for rendering.
func (c *Controller[T]) Form() *Form[T] {
	return c.form
}

// OpenForm opens the add form.
func (c *Controller[T]) OpenForm() {
	c.form.Open()
}

// CancelForm closes the add form.
func (c *Controller[T]) CancelForm() {
	c.form.Cancel()
}

// Submit hands values to the form and appends the emitted record. A false
// result with a nil error is a validation rejection; the form stays open.
func (c *Controller[T]) Submit(values url.Values, actor string, now time.Time) (T, bool, error) {
	var zero T
	if !c.form.IsOpen() {
		return zero, false, ErrFormClosed
	}
	rec, ok := c.form.Submit(values, Stamp{ID: c.newID(), Actor: actor, Now: now})
	if !ok {
		return zero, false, nil
	}
	if err := c.store.Append(rec); err != nil {
		return rec, false, err
	}
	return rec, true, nil
}

// RequestDelete opens the gate for id, replacing any pending target.
func (c *Controller[T]) RequestDelete(id string) {
	c.gate.RequestDelete(id)
}

// PendingDelete returns the pending target id.
func (c *Controller[T]) PendingDelete() (string, bool) {
	return c.gate.Pending()
}

// ConfirmDelete removes the pending target. It returns the target id and
// whether a record was removed; both are zero when nothing was pending.
func (c *Controller[T]) ConfirmDelete() (string, bool) {
	var removed bool
	id, ok := c.gate.Confirm(func(id string) {
		removed = c.store.RemoveByID(id)
	})
	if !ok {
		return "", false
	}
	return id, removed
}

// CancelDelete drops the pending target.
func (c *Controller[T]) CancelDelete() {
	c.gate.Cancel()
}

// Label names rec for messages.
func (c *Controller[T]) Label(rec T) string {
	if c.def.Label != nil {
		return c.def.Label(rec)
	}
	return rec.RecordID()
}
