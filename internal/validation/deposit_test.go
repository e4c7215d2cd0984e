package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/templui/goalboard/internal/model"
)

func depositGoal() *model.Goal {
	return &model.Goal{
		ID:            "g1",
		TargetAmount:  decimal.NewFromInt(100),
		CurrentAmount: decimal.NewFromInt(90),
	}
}

func TestDepositRejectedOvershoot(t *testing.T) {
	f := NewDepositForm(depositGoal(), 0)
	_ = f.Set("20")

	called := false
	err := f.Submit(context.Background(), func(ctx context.Context, amount decimal.Decimal) (*model.Goal, error) {
		called = true
		return nil, nil
	})
	if !errors.Is(err, ErrFormInvalid) {
		t.Fatalf("Submit err = %v, want ErrFormInvalid", err)
	}
	if called {
		t.Error("deposit ran for an overshooting amount")
	}
	if got := f.Message(); got != "cannot exceed target amount of $100.00" {
		t.Errorf("Message() = %q", got)
	}
	if f.Closed() {
		t.Error("panel closed after rejection")
	}
}

func TestDepositSuccess(t *testing.T) {
	f := NewDepositForm(depositGoal(), 0)
	_ = f.Set("$10")

	var got decimal.Decimal
	err := f.Submit(context.Background(), func(ctx context.Context, amount decimal.Decimal) (*model.Goal, error) {
		got = amount
		return nil, nil
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !got.Equal(decimal.NewFromInt(10)) {
		t.Errorf("deposited %s, want 10", got)
	}
	if !f.Closed() {
		t.Error("panel not closed after deposit")
	}
}

func TestDepositFailureSetsMessage(t *testing.T) {
	f := NewDepositForm(depositGoal(), 0)
	_ = f.Set("5")

	boom := errors.New("write failed")
	err := f.Submit(context.Background(), func(ctx context.Context, amount decimal.Decimal) (*model.Goal, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("Submit err = %v, want %v", err, boom)
	}
	if f.Message() != "failed to update amount, please try again" || f.Closed() {
		t.Errorf("Message=%q Closed=%v", f.Message(), f.Closed())
	}

	_ = f.Set("6")
	if f.Message() != "" {
		t.Errorf("Set should clear the message, got %q", f.Message())
	}
}

func TestDepositEmpty(t *testing.T) {
	f := NewDepositForm(depositGoal(), 0)
	_ = f.Submit(context.Background(), func(ctx context.Context, amount decimal.Decimal) (*model.Goal, error) { return nil, nil })
	if f.Message() != "please enter an amount" {
		t.Errorf("Message() = %q", f.Message())
	}
}

func TestDepositOvershootAfterConcurrentDeposit(t *testing.T) {
	f := NewDepositForm(depositGoal(), 0)
	_ = f.Set("8")

	stored := depositGoal()
	stored.CurrentAmount = decimal.NewFromInt(95)
	stored.TargetAmount = decimal.NewFromInt(100)

	err := f.Submit(context.Background(), func(ctx context.Context, amount decimal.Decimal) (*model.Goal, error) {
		return stored, model.ErrDepositExceedsTarget
	})
	if !errors.Is(err, model.ErrDepositExceedsTarget) {
		t.Fatalf("Submit err = %v, want ErrDepositExceedsTarget", err)
	}
	if got := f.Message(); got != "cannot exceed target amount of $100.00" {
		t.Errorf("Message() = %q", got)
	}
	if f.Closed() {
		t.Error("panel closed after rejection")
	}

	_ = f.Set("5")
	err = f.Submit(context.Background(), func(ctx context.Context, amount decimal.Decimal) (*model.Goal, error) {
		return nil, nil
	})
	if err != nil {
		t.Fatalf("Submit after refresh: %v", err)
	}
}
