package listing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ModalMode is the state of the attached create/edit dialog.
type ModalMode int

const (
	ModalClosed ModalMode = iota
	ModalCreating
	ModalEditing
)

func (m ModalMode) String() string {
	switch m {
	case ModalClosed:
		return "closed"
	case ModalCreating:
		return "creating"
	case ModalEditing:
		return "editing"
	default:
		return "unknown"
	}
}

type modalState[T any] struct {
	mode    ModalMode
	editing T
	editID  uint
	errMsg  string
}

// Modal state transition errors.
var (
	ErrModalClosed    = errors.New("no modal is open")
	ErrSubmitInFlight = errors.New("a submit is already in progress")
)

// ValidationError reports client-side form failures. It is produced before
// any network call; field messages map form fields to what is wrong.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "invalid form input: " + strings.Join(parts, "; ")
}

var formValidator = validator.New(validator.WithRequiredStructEnabled())

// ValidateForm checks a form payload against its validate tags. Returns a
// *ValidationError describing the failing fields; no network is involved.
func ValidateForm[F any](form F) error {
	err := formValidator.Struct(form)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("form is not validatable: %w", err)
	}

	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = ruleMessage(fe)
		}
	}
	return &ValidationError{Fields: fields}
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	case "gte":
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "failed rule " + fe.Tag()
	}
}

// OpenCreate opens the modal in create mode with an empty form.
func (c *Controller[T, F]) OpenCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.modal = modalState[T]{mode: ModalCreating, editing: zero}
}

// OpenEdit opens the modal pre-populated with the given row.
func (c *Controller[T, F]) OpenEdit(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modal = modalState[T]{mode: ModalEditing, editing: item, editID: c.idOf(item)}
}

// CloseModal discards the dialog without submitting.
func (c *Controller[T, F]) CloseModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modal = modalState[T]{}
	c.submitting = false
}

// ModalMode returns the current dialog state.
func (c *Controller[T, F]) ModalMode() ModalMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modal.mode
}

// EditingItem returns the row being edited, when the modal is in edit mode.
func (c *Controller[T, F]) EditingItem() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modal.editing, c.modal.mode == ModalEditing
}

// ModalError returns the inline error text shown in the dialog after a
// failed submit.
func (c *Controller[T, F]) ModalError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modal.errMsg
}

// Submit validates the form and issues the create or update request for
// the open modal. Invalid input keeps the modal open and issues no network
// request. On success the modal closes and the list is brought up to date:
// an edited row is patched in place when still displayed, otherwise the
// page is reloaded. On server failure the modal stays open showing the
// error. At most one submit may be in flight per controller.
func (c *Controller[T, F]) Submit(ctx context.Context, form F) error {
	c.mu.Lock()
	if c.modal.mode == ModalClosed {
		c.mu.Unlock()
		return ErrModalClosed
	}
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	if err := ValidateForm(form); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.modal.errMsg = verr.Error()
		}
		c.mu.Unlock()
		return err
	}
	c.submitting = true
	mode := c.modal.mode
	editID := c.modal.editID
	c.mu.Unlock()

	var (
		updated T
		err     error
	)
	if mode == ModalCreating {
		updated, err = c.src.Create(ctx, form)
	} else {
		updated, err = c.src.Update(ctx, editID, form)
	}

	c.mu.Lock()
	c.submitting = false
	if err != nil {
		c.modal.errMsg = displayMessage(err)
		c.mu.Unlock()
		return err
	}
	c.modal = modalState[T]{}

	if mode == ModalEditing {
		if c.patchLocked(editID, updated) {
			c.mu.Unlock()
			return nil
		}
	}
	c.mu.Unlock()

	return c.LoadPage(ctx)
}

// patchLocked replaces the row with the given id in place. Caller holds mu.
func (c *Controller[T, F]) patchLocked(id uint, updated T) bool {
	for i, item := range c.items {
		if c.idOf(item) == id {
			c.items[i] = updated
			return true
		}
	}
	return false
}
