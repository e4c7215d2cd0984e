package model

import (
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	GoalStatusTodo       Status = "to-do"
	GoalStatusInProgress Status = "in-progress"
	GoalStatusDone       Status = "done"
)

var Statuses = []Status{GoalStatusTodo, GoalStatusInProgress, GoalStatusDone}

func (s Status) Valid() bool {
	switch s {
	case GoalStatusTodo, GoalStatusInProgress, GoalStatusDone:
		return true
	}
	return false
}

type Category string

const (
	CategoryPersonal  Category = "personal"
	CategoryWork      Category = "work"
	CategoryFinancial Category = "financial"
	CategoryHealth    Category = "health"
	CategoryEducation Category = "education"
	CategoryOther     Category = "other"
)

var Categories = []Category{
	CategoryPersonal,
	CategoryWork,
	CategoryFinancial,
	CategoryHealth,
	CategoryEducation,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

var (
	// DefaultTargetAmount is used when a draft arrives without a target.
	DefaultTargetAmount = decimal.NewFromInt(1000)
	// MaxAmount caps target, current and deposit amounts.
	MaxAmount = decimal.NewFromInt(1_000_000)
)

var (
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrDepositExceedsTarget = errors.New("deposit would exceed target amount")
)

type Goal struct {
	ID            string
	Name          string
	Description   string
	Type          string
	Category      Category
	StartDate     Date
	Deadline      Date
	CheckInPerson string
	CheckInEmail  string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Status        Status
	CreatedAt     time.Time
}

// Clone returns a copy that shares no mutable state with g.
func (g *Goal) Clone() *Goal {
	c := *g
	return &c
}

// DeriveStatus applies the amount-driven lifecycle rules and reports whether
// the status changed. Both rules run in order so that a goal funded from zero
// to its target in one step ends up done.
func (g *Goal) DeriveStatus() bool {
	before := g.Status

	if g.CurrentAmount.IsPositive() && g.Status == GoalStatusTodo {
		g.Status = GoalStatusInProgress
	}

	if g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) && g.Status != GoalStatusDone {
		g.Status = GoalStatusDone
	}

	return g.Status != before
}

// Ratio is current/target, unclamped. Zero when the target is not positive.
func (g *Goal) Ratio() float64 {
	if !g.TargetAmount.IsPositive() {
		return 0
	}
	r, _ := g.CurrentAmount.Div(g.TargetAmount).Float64()
	return r
}

// Progress is the completion percentage clamped to [0, 100].
func (g *Goal) Progress() float64 {
	return math.Min(math.Max(g.Ratio()*100, 0), 100)
}

func (g *Goal) Remaining() decimal.Decimal {
	left := g.TargetAmount.Sub(g.CurrentAmount)
	if left.IsNegative() {
		return decimal.Zero
	}
	return left
}

// DaysRemaining counts whole days until the deadline, rounding partial days up.
// Negative once the deadline has passed.
func (g *Goal) DaysRemaining(now time.Time) int {
	deadline := g.Deadline.Midnight(now.Location())
	days := deadline.Sub(now).Hours() / 24
	return int(math.Ceil(days))
}

func (g *Goal) IsOverdue(now time.Time) bool {
	return g.DaysRemaining(now) < 0
}

func (g *Goal) DueSoon(now time.Time) bool {
	days := g.DaysRemaining(now)
	return days >= 0 && days <= 30
}
