package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/templui/goalboard/internal/model"
	"github.com/templui/goalboard/internal/query"
	"github.com/templui/goalboard/internal/repository"
)

var (
	ErrInvalidAmount        = model.ErrInvalidAmount
	ErrDepositExceedsTarget = model.ErrDepositExceedsTarget
)

// GoalService is the only writer of the goal collection. Every successful
// mutation is followed by a full save of the collection.
type GoalService struct {
	mu    sync.Mutex
	repo  repository.GoalRepository
	goals []*model.Goal
	now   func() time.Time
}

type Option func(*GoalService)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *GoalService) {
		s.now = now
	}
}

// NewGoalService loads the stored collection once.
func NewGoalService(ctx context.Context, repo repository.GoalRepository, opts ...Option) *GoalService {
	s := &GoalService{
		repo: repo,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.goals = repo.Load(ctx)
	slog.Info("goal store ready", "goals", len(s.goals))

	return s
}

func (s *GoalService) Create(ctx context.Context, draft model.Draft) (*model.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	target := draft.TargetAmount
	if target.IsZero() {
		target = model.DefaultTargetAmount
	}

	category := draft.Category
	if category == "" {
		category = model.Category(draft.Type)
	}
	if category == "" {
		category = model.CategoryOther
	}

	start := draft.StartDate
	if start.IsZero() {
		start = model.DateOf(now)
	}

	goal := &model.Goal{
		ID:            uuid.New().String(),
		Name:          draft.Name,
		Description:   draft.Description,
		Type:          draft.Type,
		Category:      category,
		StartDate:     start,
		Deadline:      draft.Deadline,
		CheckInPerson: draft.CheckInPerson,
		CheckInEmail:  draft.CheckInEmail,
		TargetAmount:  target,
		CurrentAmount: decimal.Zero,
		Status:        model.GoalStatusTodo,
		CreatedAt:     now,
	}

	s.goals = append(s.goals, goal)

	err := s.persist(ctx)
	if err != nil {
		return goal.Clone(), err
	}

	slog.Debug("goal created", "goal_id", goal.ID, "target", goal.TargetAmount.String())
	return goal.Clone(), nil
}

// Update merges the present fields of patch into the goal. Changing an
// amount re-derives every goal's status; an explicit Status in the patch
// is kept for the edited goal.
func (s *GoalService) Update(ctx context.Context, goalID string, patch model.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal := s.find(goalID)
	if goal == nil {
		return repository.ErrGoalNotFound
	}

	if patch.IsEmpty() {
		return nil
	}

	patch.Apply(goal)

	if patch.TouchesAmount() {
		skip := ""
		if patch.Status != nil {
			skip = goal.ID
		}
		s.deriveAll(skip)
	}

	return s.persist(ctx)
}

func (s *GoalService) Delete(ctx context.Context, goalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, g := range s.goals {
		if g.ID == goalID {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			return s.persist(ctx)
		}
	}

	return repository.ErrGoalNotFound
}

// SetAmount sets the current amount to an absolute value.
func (s *GoalService) SetAmount(ctx context.Context, goalID string, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setAmount(ctx, goalID, amount)
}

func (s *GoalService) setAmount(ctx context.Context, goalID string, amount decimal.Decimal) error {
	goal := s.find(goalID)
	if goal == nil {
		return repository.ErrGoalNotFound
	}

	goal.CurrentAmount = amount
	s.deriveAll("")

	return s.persist(ctx)
}

// Deposit adds amount to the current amount. A deposit that would take the
// goal past its target is rejected and nothing changes.
func (s *GoalService) Deposit(ctx context.Context, goalID string, amount decimal.Decimal) (*model.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	goal := s.find(goalID)
	if goal == nil {
		return nil, repository.ErrGoalNotFound
	}

	total := goal.CurrentAmount.Add(amount)
	if total.GreaterThan(goal.TargetAmount) {
		return goal.Clone(), ErrDepositExceedsTarget
	}

	err := s.setAmount(ctx, goalID, total)
	return goal.Clone(), err
}

// MarkComplete forces the goal to done regardless of its amounts.
func (s *GoalService) MarkComplete(ctx context.Context, goalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal := s.find(goalID)
	if goal == nil {
		return repository.ErrGoalNotFound
	}

	goal.Status = model.GoalStatusDone

	return s.persist(ctx)
}

func (s *GoalService) ByID(goalID string) (*model.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal := s.find(goalID)
	if goal == nil {
		return nil, repository.ErrGoalNotFound
	}
	return goal.Clone(), nil
}

// Goals returns a copy of the collection in creation order.
func (s *GoalService) Goals() []*model.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

func (s *GoalService) Query(opts query.Options) []*model.Goal {
	return query.Apply(s.Goals(), opts)
}

func (s *GoalService) Board() query.Board {
	return query.Partition(s.Goals())
}

func (s *GoalService) Summary(opts query.Options) query.Summary {
	return query.Count(s.Goals(), opts)
}

// Now is the clock the store stamps goals with.
func (s *GoalService) Now() time.Time {
	return s.now()
}

func (s *GoalService) find(goalID string) *model.Goal {
	for _, g := range s.goals {
		if g.ID == goalID {
			return g
		}
	}
	return nil
}

func (s *GoalService) snapshot() []*model.Goal {
	out := make([]*model.Goal, 0, len(s.goals))
	for _, g := range s.goals {
		out = append(out, g.Clone())
	}
	return out
}

// deriveAll re-runs status derivation over the whole collection.
func (s *GoalService) deriveAll(skipID string) {
	for _, g := range s.goals {
		if g.ID == skipID {
			continue
		}
		before := g.Status
		if g.DeriveStatus() {
			slog.Debug("goal status derived", "goal_id", g.ID, "from", before, "to", g.Status)
		}
	}
}

func (s *GoalService) persist(ctx context.Context) error {
	err := s.repo.Save(ctx, s.goals)
	if err != nil {
		slog.Error("failed to save goals", "error", err, "goals", len(s.goals))
		return fmt.Errorf("failed to save goals: %w", err)
	}
	return nil
}
