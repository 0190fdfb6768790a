package listing

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestSubmitWithoutOpenModal(t *testing.T) {
	ctl := NewController[note, noteForm](newFakeSource(), noteID)

	err := ctl.Submit(context.Background(), noteForm{Title: "hello"})
	if !errors.Is(err, ErrModalClosed) {
		t.Fatalf("expected ErrModalClosed, got %v", err)
	}
}

func TestCreateSubmitClosesModalAndReloads(t *testing.T) {
	src := newFakeSource("a")
	ctl := NewController[note, noteForm](src, noteID)
	ctx := context.Background()

	if err := ctl.LoadPage(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	ctl.OpenCreate()
	if ctl.ModalMode() != ModalCreating {
		t.Fatalf("expected creating mode, got %v", ctl.ModalMode())
	}

	if err := ctl.Submit(ctx, noteForm{Title: "brand new"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if ctl.ModalMode() != ModalClosed {
		t.Fatal("successful submit must close the modal")
	}

	got := titles(ctl.Items())
	if len(got) != 2 || got[1] != "brand new" {
		t.Fatalf("list must reflect the created row, got %v", got)
	}
	if ctl.Total() != 2 {
		t.Fatalf("expected total 2, got %d", ctl.Total())
	}
}

func TestInvalidFormSubmitsNothing(t *testing.T) {
	src := newFakeSource()
	ctl := NewController[note, noteForm](src, noteID)

	ctl.OpenCreate()
	err := ctl.Submit(context.Background(), noteForm{Title: ""})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if msg, ok := verr.Fields["Title"]; !ok || msg != "is required" {
		t.Fatalf("unexpected field errors %v", verr.Fields)
	}

	if ctl.ModalMode() != ModalCreating {
		t.Fatal("modal must stay open on invalid input")
	}
	if !strings.Contains(ctl.ModalError(), "Title") {
		t.Fatalf("expected modal error to name the field, got %q", ctl.ModalError())
	}
	if _, create, update, _ := src.calls(); create != 0 || update != 0 {
		t.Fatalf("invalid input must not reach the server (create=%d update=%d)", create, update)
	}
}

func TestEditSubmitPatchesRowInPlace(t *testing.T) {
	src := newFakeSource("old title", "other")
	ctl := NewController[note, noteForm](src, noteID)
	ctx := context.Background()

	if err := ctl.LoadPage(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	listsBefore, _, _, _ := src.calls()

	items := ctl.Items()
	ctl.OpenEdit(items[0])
	if got, ok := ctl.EditingItem(); !ok || got.ID != items[0].ID {
		t.Fatalf("unexpected editing item %v (%v)", got, ok)
	}

	if err := ctl.Submit(ctx, noteForm{Title: "new title"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if ctl.ModalMode() != ModalClosed {
		t.Fatal("successful edit must close the modal")
	}

	got := titles(ctl.Items())
	if got[0] != "new title" || got[1] != "other" {
		t.Fatalf("expected in-place patch, got %v", got)
	}

	// The displayed row was patched, so no list refetch happened.
	listsAfter, _, _, _ := src.calls()
	if listsAfter != listsBefore {
		t.Fatalf("expected no reload, list calls went %d -> %d", listsBefore, listsAfter)
	}
}

func TestEditSubmitReloadsWhenRowNotDisplayed(t *testing.T) {
	src := newFakeSource("a", "b", "c")
	ctl := NewController[note, noteForm](src, noteID, WithPageSize[note, noteForm](2))
	ctx := context.Background()

	if err := ctl.LoadPage(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	// Edit a row from page 1, then navigate away before submitting.
	target := ctl.Items()[0]
	ctl.OpenEdit(target)
	if err := ctl.ChangePage(ctx, 2, 0); err != nil {
		t.Fatalf("change page: %v", err)
	}
	listsBefore, _, _, _ := src.calls()

	if err := ctl.Submit(ctx, noteForm{Title: "renamed"}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	listsAfter, _, _, _ := src.calls()
	if listsAfter != listsBefore+1 {
		t.Fatalf("expected a reload when the row is off-page, list calls went %d -> %d", listsBefore, listsAfter)
	}
}

func TestServerFailureKeepsModalOpen(t *testing.T) {
	src := newFakeSource()
	src.createErr = &displayError{msg: "title already in use"}
	ctl := NewController[note, noteForm](src, noteID)

	ctl.OpenCreate()
	if err := ctl.Submit(context.Background(), noteForm{Title: "dup"}); err == nil {
		t.Fatal("expected the server failure to propagate")
	}
	if ctl.ModalMode() != ModalCreating {
		t.Fatal("modal must stay open after a failed submit")
	}
	if ctl.ModalError() != "title already in use" {
		t.Fatalf("unexpected modal error %q", ctl.ModalError())
	}

	// A retry is allowed once the first submit has settled.
	src.mu.Lock()
	src.createErr = nil
	src.mu.Unlock()
	if err := ctl.Submit(context.Background(), noteForm{Title: "dup"}); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if ctl.ModalMode() != ModalClosed {
		t.Fatal("retry success must close the modal")
	}
}

func TestConcurrentSubmitIsRejected(t *testing.T) {
	src := newFakeSource()
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	src.mu.Lock()
	src.onList = func(Query) (Page[note], error) { return Page[note]{}, nil }
	src.mu.Unlock()

	// Block the create call so a second submit arrives mid-flight.
	blockingSrc := &blockingCreateSource{fakeSource: src, started: started, release: release}
	blocked := NewController[note, noteForm](blockingSrc, noteID)
	blocked.OpenCreate()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = blocked.Submit(ctx, noteForm{Title: "first"})
	}()

	<-started
	err := blocked.Submit(ctx, noteForm{Title: "second"})
	if !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight, got %v", err)
	}
	close(release)
	wg.Wait()

	if _, create, _, _ := src.calls(); create != 1 {
		t.Fatalf("expected exactly one create, got %d", create)
	}
}

// blockingCreateSource delays Create until released, for in-flight tests.
type blockingCreateSource struct {
	*fakeSource
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *blockingCreateSource) Create(ctx context.Context, form noteForm) (note, error) {
	s.once.Do(func() { close(s.started) })
	<-s.release
	return s.fakeSource.Create(ctx, form)
}

func TestCloseModalDiscardsState(t *testing.T) {
	ctl := NewController[note, noteForm](newFakeSource("a"), noteID)

	ctl.OpenEdit(note{ID: 1, Title: "a"})
	ctl.CloseModal()
	if ctl.ModalMode() != ModalClosed {
		t.Fatalf("expected closed, got %v", ctl.ModalMode())
	}
	if _, ok := ctl.EditingItem(); ok {
		t.Fatal("closed modal must not report an editing item")
	}

	err := ctl.Submit(context.Background(), noteForm{Title: "a"})
	if !errors.Is(err, ErrModalClosed) {
		t.Fatalf("expected ErrModalClosed after close, got %v", err)
	}
}

func TestValidateFormRuleMessages(t *testing.T) {
	type form struct {
		Name  string `validate:"required,min=2,max=4"`
		Email string `validate:"omitempty,email"`
	}

	err := ValidateForm(form{Name: "abcdef", Email: "nope"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Fields["Name"] != "must be at most 4 characters" {
		t.Fatalf("unexpected Name message %q", verr.Fields["Name"])
	}
	if verr.Fields["Email"] != "must be a valid email address" {
		t.Fatalf("unexpected Email message %q", verr.Fields["Email"])
	}

	if err := ValidateForm(form{Name: "ok"}); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}
}
