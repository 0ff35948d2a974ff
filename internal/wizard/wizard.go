// Package wizard is the three-step onboarding form state machine:
// client name, then email and details, then attachments and submit.
// Upload and submit effects sit behind small interfaces, so the machine
// itself is pure state and can be driven by any front end (see
// cmd/onboard for the command-line one).
package wizard

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/evergreenwebsolutions/onboarding/internal/models"
	"github.com/evergreenwebsolutions/onboarding/internal/validate"
)

type Step int

const (
	StepName Step = iota + 1
	StepContact
	StepFiles
)

var (
	// ErrUploadInFlight rejects a second upload while one is running;
	// the front end disables the file input off the Uploading flag.
	ErrUploadInFlight = errors.New("wizard: upload already in flight")
	// ErrInvalid means the accumulated form failed validation; the
	// field errors are available via Errors.
	ErrInvalid = errors.New("wizard: submission is invalid")
	// ErrNotReady means Submit was called before the final step.
	ErrNotReady = errors.New("wizard: not at the final step")
	// ErrBadSlot means ReplaceFile targeted a slot that does not exist.
	ErrBadSlot = errors.New("wizard: no file at that slot")
)

// Uploader relays one file through the upload endpoint and returns its
// descriptor.
type Uploader interface {
	Upload(ctx context.Context, name, contentType string, r io.Reader) (models.FileMeta, error)
}

// Submitter posts the completed submission and returns the stored id.
type Submitter interface {
	Submit(ctx context.Context, sub *models.Submission) (uint, error)
}

type Wizard struct {
	mu        sync.Mutex
	uploader  Uploader
	submitter Submitter

	step       Step
	clientName string
	email      string
	details    string
	files      []models.FileMeta

	uploading bool
	done      bool
	failed    bool
	lastErr   error
	id        uint
	errors    validate.FieldErrors
}

func New(up Uploader, sub Submitter) *Wizard {
	return &Wizard{step: StepName, uploader: up, submitter: sub}
}

func (w *Wizard) SetClientName(v string) { w.mu.Lock(); w.clientName = v; w.mu.Unlock() }
func (w *Wizard) SetEmail(v string)      { w.mu.Lock(); w.email = v; w.mu.Unlock() }
func (w *Wizard) SetDetails(v string)    { w.mu.Lock(); w.details = v; w.mu.Unlock() }

func (w *Wizard) Step() Step      { w.mu.Lock(); defer w.mu.Unlock(); return w.step }
func (w *Wizard) Uploading() bool { w.mu.Lock(); defer w.mu.Unlock(); return w.uploading }
func (w *Wizard) Done() bool      { w.mu.Lock(); defer w.mu.Unlock(); return w.done }
func (w *Wizard) Failed() bool    { w.mu.Lock(); defer w.mu.Unlock(); return w.failed }
func (w *Wizard) Err() error      { w.mu.Lock(); defer w.mu.Unlock(); return w.lastErr }
func (w *Wizard) SubmissionID() uint {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.id
}

// Errors returns the inline field errors recorded by the last Next or
// Submit.
func (w *Wizard) Errors() validate.FieldErrors {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errors
}

// Files returns a copy of the attached descriptors in upload order.
func (w *Wizard) Files() []models.FileMeta {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]models.FileMeta, len(w.files))
	copy(out, w.files)
	return out
}

// Next validates the current step's fields and advances only when they
// are clean; invalid fields stay on screen as inline errors. Reports
// whether the step advanced.
func (w *Wizard) Next() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step >= StepFiles {
		return false
	}
	errs := w.stepErrorsLocked(w.step)
	w.errors = errs
	if len(errs) > 0 {
		return false
	}
	w.step++
	return true
}

// Back retreats one step; a no-op on the first.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step > StepName {
		w.step--
	}
}

// Upload runs the uploader and appends the resulting descriptor as a
// new slot. Only one upload may be in flight at a time.
func (w *Wizard) Upload(ctx context.Context, name, contentType string, r io.Reader) error {
	fd, err := w.runUpload(ctx, name, contentType, r)
	if err != nil {
		return err
	}
	w.mu.Lock()
	fd.Position = len(w.files)
	w.files = append(w.files, fd)
	w.mu.Unlock()
	return nil
}

// ReplaceFile uploads into an existing slot, keeping the rest of the
// list intact.
func (w *Wizard) ReplaceFile(ctx context.Context, slot int, name, contentType string, r io.Reader) error {
	w.mu.Lock()
	if slot < 0 || slot >= len(w.files) {
		w.mu.Unlock()
		return ErrBadSlot
	}
	w.mu.Unlock()

	fd, err := w.runUpload(ctx, name, contentType, r)
	if err != nil {
		return err
	}
	w.mu.Lock()
	if slot < len(w.files) {
		fd.Position = slot
		w.files[slot] = fd
	}
	w.mu.Unlock()
	return nil
}

func (w *Wizard) runUpload(ctx context.Context, name, contentType string, r io.Reader) (models.FileMeta, error) {
	w.mu.Lock()
	if w.uploading {
		w.mu.Unlock()
		return models.FileMeta{}, ErrUploadInFlight
	}
	w.uploading = true
	w.mu.Unlock()

	fd, err := w.uploader.Upload(ctx, name, contentType, r)

	w.mu.Lock()
	w.uploading = false
	w.mu.Unlock()

	if err != nil {
		return models.FileMeta{}, err
	}
	return fd, nil
}

// Submit validates the whole accumulated object and posts it. On a
// transport error or non-2xx response the wizard enters the failed
// state with everything intact; Retry returns it to the final step.
func (w *Wizard) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.step != StepFiles || w.done {
		w.mu.Unlock()
		return ErrNotReady
	}
	sub := w.snapshotLocked()
	w.mu.Unlock()

	result := validate.Submission(sub)
	if !result.Valid {
		w.mu.Lock()
		w.errors = result.Errors
		w.mu.Unlock()
		return ErrInvalid
	}

	id, err := w.submitter.Submit(ctx, result.Data)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.failed = true
		w.lastErr = err
		return err
	}
	w.done = true
	w.failed = false
	w.lastErr = nil
	w.id = id
	return nil
}

// Retry clears the failed state so Submit can be attempted again.
func (w *Wizard) Retry() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.failed {
		w.failed = false
		w.lastErr = nil
	}
}

func (w *Wizard) snapshotLocked() models.Submission {
	files := make([]models.FileMeta, len(w.files))
	copy(files, w.files)
	return models.Submission{
		ClientName: w.clientName,
		Email:      w.email,
		Details:    w.details,
		Files:      files,
	}
}

// stepErrorsLocked validates the full accumulated object and keeps only
// the errors belonging to the given step's fields.
func (w *Wizard) stepErrorsLocked(step Step) validate.FieldErrors {
	result := validate.Submission(w.snapshotLocked())
	if result.Valid {
		return nil
	}

	fields := stepFields[step]
	filtered := validate.FieldErrors{}
	for key, msgs := range result.Errors {
		for _, f := range fields {
			if key == f || strings.HasPrefix(key, f+".") {
				filtered[key] = msgs
			}
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return filtered
}

var stepFields = map[Step][]string{
	StepName:    {"clientName"},
	StepContact: {"email", "details"},
	StepFiles:   {"files"},
}
