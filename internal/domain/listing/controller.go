// Package listing implements the paginated-list/modal-editor pattern every
// admin page shares: current page, page size, and filter drive a list
// request; create/edit go through a modal whose successful submit leaves
// the displayed list consistent without a manual refresh.
package listing

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// Query is the pagination request for one list fetch. Built fresh on every
// reload, never persisted.
type Query struct {
	PageNum  int
	PageSize int
	Filter   string
}

// Page is one page of results plus the server-side total count.
type Page[T any] struct {
	Items []T
	Total int64
}

// Source is the server behind a controller. Implementations live in the
// API binding layer, one per resource type.
type Source[T any, F any] interface {
	List(ctx context.Context, q Query) (Page[T], error)
	Create(ctx context.Context, form F) (T, error)
	Update(ctx context.Context, id uint, form F) (T, error)
	Delete(ctx context.Context, id uint) error
}

// Confirmer answers the delete confirmation prompt. This is the only
// synchronous user decision point in the pattern.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// ErrDeleteCancelled is returned when the user declines the confirmation.
var ErrDeleteCancelled = errors.New("delete cancelled")

// userMessager matches errors that carry user-facing display text, such as
// the gateway's APIError.
type userMessager interface {
	UserMessage() string
}

const defaultPageSize = 10

// Controller drives one paginated list with an attached create/edit modal.
// T is the row type, F the form payload for create/update.
type Controller[T any, F any] struct {
	src     Source[T, F]
	idOf    func(T) uint
	confirm Confirmer
	log     zerolog.Logger

	mu         sync.Mutex
	items      []T
	total      int64
	page       int
	pageSize   int
	filter     string
	loading    bool
	errMsg     string
	seq        uint64
	modal      modalState[T]
	submitting bool
}

// Option customizes a Controller.
type Option[T any, F any] func(*Controller[T, F])

// WithPageSize sets the initial page size.
func WithPageSize[T any, F any](size int) Option[T, F] {
	return func(c *Controller[T, F]) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithFilter sets the initial search filter, like a page mounting with a
// query already in its URL.
func WithFilter[T any, F any](text string) Option[T, F] {
	return func(c *Controller[T, F]) { c.filter = text }
}

// WithConfirmer sets the delete confirmation prompt.
func WithConfirmer[T any, F any](confirm Confirmer) Option[T, F] {
	return func(c *Controller[T, F]) { c.confirm = confirm }
}

// WithLogger sets the controller's logger.
func WithLogger[T any, F any](log zerolog.Logger) Option[T, F] {
	return func(c *Controller[T, F]) { c.log = log }
}

// NewController creates a controller over src. idOf extracts a row's
// identifier; it drives the in-place patch after an edit and the delete
// bookkeeping.
func NewController[T any, F any](src Source[T, F], idOf func(T) uint, opts ...Option[T, F]) *Controller[T, F] {
	c := &Controller[T, F]{
		src:      src,
		idOf:     idOf,
		page:     1,
		pageSize: defaultPageSize,
		log:      zerolog.Nop(),
		confirm:  ConfirmFunc(func(string) bool { return true }),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadPage fetches the current page and replaces items/total wholesale.
// Only the most recently issued request may commit: a stale, slower
// response is dropped so it cannot clobber a later, faster one.
func (c *Controller[T, F]) LoadPage(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.seq++
	seq := c.seq
	q := Query{PageNum: c.page, PageSize: c.pageSize, Filter: c.filter}
	c.mu.Unlock()

	page, err := c.src.List(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		c.log.Debug().Uint64("seq", seq).Uint64("latest", c.seq).Msg("dropping stale list response")
		return nil
	}
	c.loading = false

	if err != nil {
		c.items = nil
		c.total = 0
		c.errMsg = displayMessage(err)
		return err
	}

	c.items = page.Items
	c.total = page.Total
	c.errMsg = ""
	return nil
}

// Search sets the filter text, resets to the first page, and reloads.
func (c *Controller[T, F]) Search(ctx context.Context, text string) error {
	c.mu.Lock()
	c.filter = text
	c.page = 1
	c.mu.Unlock()
	return c.LoadPage(ctx)
}

// ChangePage moves to a new page and/or page size and reloads. A page-size
// change resets to the first page so the view never lands past the end.
func (c *Controller[T, F]) ChangePage(ctx context.Context, page, pageSize int) error {
	c.mu.Lock()
	if pageSize > 0 && pageSize != c.pageSize {
		c.pageSize = pageSize
		c.page = 1
	} else if page > 0 {
		c.page = page
	}
	c.mu.Unlock()
	return c.LoadPage(ctx)
}

// Delete removes a row after confirmation. Deleting the last row of a page
// beyond the first steps back one page so the view never shows an empty
// page while earlier pages have items.
func (c *Controller[T, F]) Delete(ctx context.Context, id uint) error {
	if !c.confirm.Confirm("delete this item?") {
		return ErrDeleteCancelled
	}

	if err := c.src.Delete(ctx, id); err != nil {
		c.mu.Lock()
		c.errMsg = displayMessage(err)
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	if len(c.items) == 1 && c.page > 1 {
		c.page--
	}
	c.mu.Unlock()
	return c.LoadPage(ctx)
}

// Items returns a copy of the currently displayed rows.
func (c *Controller[T, F]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Total returns the server-side total count for the current filter.
func (c *Controller[T, F]) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Page returns the current page number.
func (c *Controller[T, F]) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// PageSize returns the current page size.
func (c *Controller[T, F]) PageSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pageSize
}

// Filter returns the current search filter.
func (c *Controller[T, F]) Filter() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Loading reports whether a list request is in flight.
func (c *Controller[T, F]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// ErrorMessage returns the inline error text for the list view, empty when
// the last operation succeeded.
func (c *Controller[T, F]) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

func displayMessage(err error) string {
	var um userMessager
	if errors.As(err, &um) {
		return um.UserMessage()
	}
	return err.Error()
}
