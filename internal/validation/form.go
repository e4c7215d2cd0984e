package validation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/templui/goalboard/internal/model"
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

const (
	FieldName          = "name"
	FieldDescription   = "description"
	FieldCategory      = "category"
	FieldDeadline      = "deadline"
	FieldTargetAmount  = "targetAmount"
	FieldCurrentAmount = "currentAmount"
	FieldCheckInPerson = "checkInPerson"
	FieldCheckInEmail  = "checkInEmail"
	FieldStatus        = "status"
)

var (
	ErrFormInvalid      = errors.New("form has invalid fields")
	ErrSubmitInProgress = errors.New("submission already in progress")
	ErrFormClosed       = errors.New("form is closed")
	ErrUnknownField     = errors.New("unknown form field")
)

var (
	createFields = []string{
		FieldName, FieldDescription, FieldCategory, FieldDeadline,
		FieldTargetAmount, FieldCheckInPerson, FieldCheckInEmail,
	}
	editFields = []string{
		FieldName, FieldDescription, FieldCategory, FieldDeadline,
		FieldTargetAmount, FieldCurrentAmount, FieldStatus,
	}
)

type FormOption func(*GoalForm)

// WithDelay sets the simulated latency before a submission is committed.
func WithDelay(d time.Duration) FormOption {
	return func(f *GoalForm) {
		f.delay = d
	}
}

// WithFormClock replaces time.Now for the deadline rule.
func WithFormClock(now func() time.Time) FormOption {
	return func(f *GoalForm) {
		f.now = now
	}
}

// GoalForm holds the raw values of the create or edit form. Errors are
// recomputed on every change but only reported for touched fields.
type GoalForm struct {
	mu         sync.Mutex
	mode       Mode
	fields     []string
	values     map[string]string
	initial    map[string]string
	touched    map[string]bool
	errors     map[string]string
	submitting bool
	closed     bool
	delay      time.Duration
	now        func() time.Time
}

func NewCreateForm(opts ...FormOption) *GoalForm {
	f := newForm(ModeCreate, createFields, opts)
	f.values[FieldCategory] = string(model.CategoryPersonal)
	f.revalidate()
	return f
}

// NewEditForm prefills the form from goal. Patch only reports fields that
// differ from these initial values.
func NewEditForm(goal *model.Goal, opts ...FormOption) *GoalForm {
	f := newForm(ModeEdit, editFields, opts)

	f.values[FieldName] = goal.Name
	f.values[FieldDescription] = goal.Description
	f.values[FieldCategory] = string(goal.Category)
	f.values[FieldDeadline] = goal.Deadline.String()
	f.values[FieldTargetAmount] = goal.TargetAmount.String()
	f.values[FieldCurrentAmount] = goal.CurrentAmount.String()
	f.values[FieldStatus] = string(goal.Status)

	for k, v := range f.values {
		f.initial[k] = v
	}

	f.revalidate()
	return f
}

func newForm(mode Mode, fields []string, opts []FormOption) *GoalForm {
	f := &GoalForm{
		mode:    mode,
		fields:  fields,
		values:  make(map[string]string, len(fields)),
		initial: make(map[string]string, len(fields)),
		touched: make(map[string]bool, len(fields)),
		errors:  make(map[string]string),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *GoalForm) Mode() Mode {
	return f.mode
}

// Fields lists the keys this form accepts.
func (f *GoalForm) Fields() []string {
	return slices.Clone(f.fields)
}

// Set stores value for field and marks it touched.
func (f *GoalForm) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.hasField(field) {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if f.closed {
		return ErrFormClosed
	}
	if f.submitting {
		return ErrSubmitInProgress
	}

	f.values[field] = value
	f.touched[field] = true
	f.revalidate()

	return nil
}

func (f *GoalForm) Value(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.values[field]
}

// TouchAll marks every field touched so all errors become visible.
func (f *GoalForm) TouchAll() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.touchAll()
}

func (f *GoalForm) touchAll() {
	for _, field := range f.fields {
		f.touched[field] = true
	}
	f.revalidate()
}

// Errors returns the messages of touched fields keyed by field name.
func (f *GoalForm) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]string, len(f.errors))
	for field, msg := range f.errors {
		if f.touched[field] {
			out[field] = msg
		}
	}
	return out
}

// CanSubmit reports whether the required fields are filled and no rule fails,
// touched or not.
func (f *GoalForm) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.canSubmit()
}

func (f *GoalForm) canSubmit() bool {
	if f.submitting || f.closed || len(f.errors) > 0 {
		return false
	}
	for _, field := range f.required() {
		if strings.TrimSpace(f.values[field]) == "" {
			return false
		}
	}
	return true
}

func (f *GoalForm) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.submitting
}

func (f *GoalForm) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.closed
}

// Submit touches every field and, when the form is valid, waits the
// configured delay and runs commit. A failed commit leaves the form open and
// editable; the error is logged and returned as is.
func (f *GoalForm) Submit(ctx context.Context, commit func(ctx context.Context) error) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrFormClosed
	}
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitInProgress
	}
	f.touchAll()
	if !f.canSubmit() {
		f.mu.Unlock()
		return ErrFormInvalid
	}
	f.submitting = true
	delay := f.delay
	f.mu.Unlock()

	err := wait(ctx, delay)
	if err == nil {
		err = commit(ctx)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.submitting = false
	if err != nil {
		slog.Error("failed to submit goal form", "error", err, "mode", f.mode.String())
		return err
	}

	f.closed = true
	return nil
}

// Draft converts the create form into store input. It assumes the form is valid.
func (f *GoalForm) Draft() model.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()

	target, _ := ParseAmount(f.values[FieldTargetAmount])
	deadline, _ := model.ParseDate(strings.TrimSpace(f.values[FieldDeadline]))
	category := model.Category(f.values[FieldCategory])

	return model.Draft{
		Name:          strings.TrimSpace(f.values[FieldName]),
		Description:   f.values[FieldDescription],
		Type:          string(category),
		Category:      category,
		StartDate:     model.DateOf(f.now()),
		Deadline:      deadline,
		CheckInPerson: strings.TrimSpace(f.values[FieldCheckInPerson]),
		CheckInEmail:  strings.TrimSpace(f.values[FieldCheckInEmail]),
		TargetAmount:  target,
	}
}

// Patch returns the edit form's changes. Only fields whose value differs
// from the prefilled goal are present, so clearing the description clears it
// and an untouched status is left to derivation.
func (f *GoalForm) Patch() model.Patch {
	f.mu.Lock()
	defer f.mu.Unlock()

	var p model.Patch

	if v, ok := f.changed(FieldName); ok {
		name := strings.TrimSpace(v)
		p.Name = &name
	}
	if v, ok := f.changed(FieldDescription); ok {
		p.Description = &v
	}
	if v, ok := f.changed(FieldCategory); ok {
		c := model.Category(v)
		p.Category = &c
	}
	if v, ok := f.changed(FieldDeadline); ok {
		if d, err := model.ParseDate(strings.TrimSpace(v)); err == nil {
			p.Deadline = &d
		}
	}
	if v, ok := f.changed(FieldTargetAmount); ok {
		if amount, err := ParseAmount(v); err == nil {
			p.TargetAmount = &amount
		}
	}
	if v, ok := f.changed(FieldCurrentAmount); ok {
		if amount, err := ParseAmount(v); err == nil {
			p.CurrentAmount = &amount
		}
	}
	if v, ok := f.changed(FieldStatus); ok {
		s := model.Status(v)
		p.Status = &s
	}

	return p
}

// changed compares parsed values where formatting may differ, e.g. "1,000"
// against a stored "1000".
func (f *GoalForm) changed(field string) (string, bool) {
	v := f.values[field]
	old := f.initial[field]

	switch field {
	case FieldTargetAmount, FieldCurrentAmount:
		a, errA := ParseAmount(v)
		b, errB := ParseAmount(old)
		if errA == nil && errB == nil {
			return v, !a.Equal(b)
		}
	}

	return v, v != old
}

func (f *GoalForm) hasField(field string) bool {
	return slices.Contains(f.fields, field)
}

func (f *GoalForm) required() []string {
	if f.mode == ModeEdit {
		return []string{FieldName, FieldTargetAmount, FieldCurrentAmount, FieldDeadline, FieldCategory}
	}
	return []string{FieldName, FieldTargetAmount, FieldDeadline, FieldCategory}
}

func (f *GoalForm) revalidate() {
	errs := make(map[string]string)

	check := func(field string, err error) {
		if err != nil {
			errs[field] = err.Error()
		}
	}

	check(FieldName, ValidateGoalName(f.values[FieldName]))
	check(FieldTargetAmount, ValidateTargetAmount(f.values[FieldTargetAmount]))
	check(FieldDeadline, ValidateDeadline(f.values[FieldDeadline], f.now()))
	check(FieldCategory, ValidateCategory(f.values[FieldCategory]))

	if f.mode == ModeEdit {
		check(FieldCurrentAmount, ValidateCurrentAmount(f.values[FieldCurrentAmount]))
		if s := f.values[FieldStatus]; !model.Status(s).Valid() {
			errs[FieldStatus] = "please select a valid status"
		}
		// An unchanged deadline already in the past does not block edits.
		if _, ok := f.changed(FieldDeadline); !ok {
			delete(errs, FieldDeadline)
		}
	} else {
		check(FieldCheckInEmail, ValidateOptionalEmail(strings.TrimSpace(f.values[FieldCheckInEmail])))
	}

	f.errors = errs
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
