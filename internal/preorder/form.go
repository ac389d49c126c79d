package preorder

import (
	"context"
	"errors"
	"sync"

	"aurex-showroom/internal/catalog"
)

// Toast is a notification shown after a submission.
type Toast struct {
	Title       string
	Description string
	Destructive bool
}

const (
	ConfirmedTitle       = "Pre-order Confirmed"
	ConfirmedDescription = "Welcome to the future of driving. Check your email."
	FailedTitle          = "Submission Failed"
)

// Notifier displays toasts.
type Notifier interface {
	Notify(Toast)
}

// Submitter sends a pre-order. *Client implements it.
type Submitter interface {
	Submit(ctx context.Context, in Input) (*Preorder, error)
	Pending() bool
}

// Form is the reservation dialog state.
type Form struct {
	submitter Submitter
	notifier  Notifier

	mu      sync.Mutex
	open    bool
	name    string
	email   string
	variant string
}

func NewForm(submitter Submitter, notifier Notifier) *Form {
	return &Form{
		submitter: submitter,
		notifier:  notifier,
		variant:   catalog.Default().Name,
	}
}

func (f *Form) Open() {
	f.mu.Lock()
	f.open = true
	f.mu.Unlock()
}

// Close hides the dialog. Field values are kept.
func (f *Form) Close() {
	f.mu.Lock()
	f.open = false
	f.mu.Unlock()
}

func (f *Form) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

func (f *Form) SetName(v string) {
	f.mu.Lock()
	f.name = v
	f.mu.Unlock()
}

func (f *Form) SetEmail(v string) {
	f.mu.Lock()
	f.email = v
	f.mu.Unlock()
}

func (f *Form) SetVariant(v string) {
	f.mu.Lock()
	f.variant = v
	f.mu.Unlock()
}

// Input returns the current field values.
func (f *Form) Input() Input {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Input{Name: f.name, Email: f.email, Variant: f.variant}
}

// ButtonLabel is the submit button text.
func (f *Form) ButtonLabel() string {
	if f.submitter.Pending() {
		return "Processing..."
	}
	return "Confirm Reservation"
}

// Submit sends the current fields. On success the form is reset to the
// default variant and closed; on failure it stays open with its values.
func (f *Form) Submit(ctx context.Context) (*Preorder, error) {
	p, err := f.submitter.Submit(ctx, f.Input())
	if err != nil {
		if !errors.Is(err, ErrPending) {
			f.notifier.Notify(Toast{Title: FailedTitle, Description: Message(err), Destructive: true})
		}
		return nil, err
	}

	f.notifier.Notify(Toast{Title: ConfirmedTitle, Description: ConfirmedDescription})
	f.mu.Lock()
	f.open = false
	f.name = ""
	f.email = ""
	f.variant = catalog.Default().Name
	f.mu.Unlock()
	return p, nil
}
