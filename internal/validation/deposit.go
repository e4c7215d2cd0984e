package validation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/templui/goalboard/internal/format"
	"github.com/templui/goalboard/internal/model"
)

// DepositForm is the single-amount "add funds" panel of one goal.
type DepositForm struct {
	mu         sync.Mutex
	goal       *model.Goal
	amount     string
	message    string
	submitting bool
	closed     bool
	delay      time.Duration
}

func NewDepositForm(goal *model.Goal, delay time.Duration) *DepositForm {
	return &DepositForm{
		goal:  goal.Clone(),
		delay: delay,
	}
}

// Set stores the typed amount and clears the previous message.
func (f *DepositForm) Set(amount string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrFormClosed
	}
	if f.submitting {
		return ErrSubmitInProgress
	}

	f.amount = amount
	f.message = ""
	return nil
}

func (f *DepositForm) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.message
}

func (f *DepositForm) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.closed
}

// Submit validates the amount against the goal and calls deposit with the
// parsed value. Any rejection leaves a message on the form. deposit may return
// the goal as the store sees it alongside model.ErrDepositExceedsTarget.
func (f *DepositForm) Submit(ctx context.Context, deposit func(ctx context.Context, amount decimal.Decimal) (*model.Goal, error)) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrFormClosed
	}
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitInProgress
	}

	err := ValidateDepositAmount(f.amount, f.goal)
	if err != nil {
		f.message = err.Error()
		f.mu.Unlock()
		return ErrFormInvalid
	}

	amount, _ := ParseAmount(f.amount)
	f.submitting = true
	delay := f.delay
	f.mu.Unlock()

	var current *model.Goal
	err = wait(ctx, delay)
	if err == nil {
		current, err = deposit(ctx, amount)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.submitting = false
	if errors.Is(err, model.ErrDepositExceedsTarget) {
		if current != nil {
			f.goal = current.Clone()
		}
		slog.Debug("deposit rejected", "goal_id", f.goal.ID, "amount", amount.String())
		f.message = "cannot exceed target amount of " + format.Currency(f.goal.TargetAmount)
		return err
	}
	if err != nil {
		slog.Error("failed to deposit", "error", err, "goal_id", f.goal.ID, "amount", amount.String())
		f.message = "failed to update amount, please try again"
		return err
	}

	f.closed = true
	return nil
}
