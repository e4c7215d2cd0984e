package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/templui/goalboard/internal/model"
	"github.com/templui/goalboard/internal/query"
	"github.com/templui/goalboard/internal/repository"
	"github.com/templui/goalboard/internal/storage"
)

var fixedNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

type fakeGoalRepository struct {
	loadFn func(ctx context.Context) []*model.Goal
	saveFn func(ctx context.Context, goals []*model.Goal) error
	saves  int
}

func (f *fakeGoalRepository) Load(ctx context.Context) []*model.Goal {
	if f.loadFn != nil {
		return f.loadFn(ctx)
	}
	return []*model.Goal{}
}

func (f *fakeGoalRepository) Save(ctx context.Context, goals []*model.Goal) error {
	f.saves++
	if f.saveFn != nil {
		return f.saveFn(ctx, goals)
	}
	return nil
}

func newService(t *testing.T) (*GoalService, *fakeGoalRepository) {
	t.Helper()
	repo := &fakeGoalRepository{}
	return NewGoalService(context.Background(), repo, WithClock(func() time.Time { return fixedNow })), repo
}

func amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func tripDraft() model.Draft {
	return model.Draft{
		Name:         "Save for trip",
		TargetAmount: amount(500),
		Category:     model.CategoryPersonal,
		Deadline:     model.DateOf(fixedNow).AddDays(1),
	}
}

func TestCreateThenFundInOneStep(t *testing.T) {
	ctx := context.Background()
	s, repo := newService(t)

	goal, err := s.Create(ctx, tripDraft())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if goal.Status != model.GoalStatusTodo || !goal.CurrentAmount.IsZero() {
		t.Fatalf("new goal = %s / %s, want to-do / 0", goal.Status, goal.CurrentAmount)
	}
	if goal.ID == "" || !goal.CreatedAt.Equal(fixedNow) {
		t.Errorf("new goal id=%q createdAt=%s", goal.ID, goal.CreatedAt)
	}
	if goal.StartDate != model.DateOf(fixedNow) {
		t.Errorf("StartDate = %s, want today", goal.StartDate)
	}

	err = s.SetAmount(ctx, goal.ID, amount(500))
	if err != nil {
		t.Fatalf("SetAmount: %v", err)
	}

	got, _ := s.ByID(goal.ID)
	if got.Status != model.GoalStatusDone {
		t.Errorf("status after 0 -> full = %s, want done", got.Status)
	}
	if repo.saves != 2 {
		t.Errorf("saves = %d, want one per mutation", repo.saves)
	}
}

func TestCreateDefaults(t *testing.T) {
	s, _ := newService(t)

	goal, err := s.Create(context.Background(), model.Draft{Name: "Read more", Type: "education"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !goal.TargetAmount.Equal(amount(1000)) {
		t.Errorf("TargetAmount = %s, want default 1000", goal.TargetAmount)
	}
	if goal.Category != model.CategoryEducation {
		t.Errorf("Category = %q, want type fallback", goal.Category)
	}

	untyped, _ := s.Create(context.Background(), model.Draft{Name: "Mystery"})
	if untyped.Category != model.CategoryOther {
		t.Errorf("Category = %q, want other", untyped.Category)
	}

	if untyped.ID == goal.ID {
		t.Error("ids must be unique")
	}
}

func TestSetAmountPartialMovesToInProgress(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)
	goal, _ := s.Create(ctx, tripDraft())

	_ = s.SetAmount(ctx, goal.ID, amount(120))

	got, _ := s.ByID(goal.ID)
	if got.Status != model.GoalStatusInProgress {
		t.Errorf("status = %s, want in-progress", got.Status)
	}
}

func TestSetAmountReachingTargetFromAnyStatus(t *testing.T) {
	ctx := context.Background()

	for _, start := range model.Statuses {
		t.Run(string(start), func(t *testing.T) {
			s, _ := newService(t)
			goal, _ := s.Create(ctx, tripDraft())
			st := start
			_ = s.Update(ctx, goal.ID, model.Patch{Status: &st})

			_ = s.SetAmount(ctx, goal.ID, amount(700))

			got, _ := s.ByID(goal.ID)
			if got.Status != model.GoalStatusDone {
				t.Errorf("status = %s, want done", got.Status)
			}
			if !got.CurrentAmount.Equal(amount(700)) {
				t.Errorf("CurrentAmount = %s, store must not clamp", got.CurrentAmount)
			}
		})
	}
}

func TestRederivationScansWholeCollection(t *testing.T) {
	ctx := context.Background()
	stale := &model.Goal{
		ID:            "stale",
		Name:          "Imported",
		TargetAmount:  amount(100),
		CurrentAmount: amount(100),
		Status:        model.GoalStatusTodo,
	}
	repo := &fakeGoalRepository{loadFn: func(ctx context.Context) []*model.Goal {
		return []*model.Goal{stale}
	}}
	s := NewGoalService(ctx, repo, WithClock(func() time.Time { return fixedNow }))

	other, _ := s.Create(ctx, tripDraft())
	_ = s.SetAmount(ctx, other.ID, amount(10))

	got, _ := s.ByID("stale")
	if got.Status != model.GoalStatusDone {
		t.Errorf("untouched goal status = %s, want done after collection-wide derivation", got.Status)
	}
}

func TestUpdateEmptyPatchIsNoop(t *testing.T) {
	ctx := context.Background()
	s, repo := newService(t)
	goal, _ := s.Create(ctx, tripDraft())
	before, _ := s.ByID(goal.ID)
	saves := repo.saves

	err := s.Update(ctx, goal.ID, model.Patch{})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	after, _ := s.ByID(goal.ID)
	if diff := cmp.Diff(before, after, decimalEqual, cmp.AllowUnexported(model.Date{})); diff != "" {
		t.Errorf("empty patch changed goal (-before +after):\n%s", diff)
	}
	if repo.saves != saves {
		t.Errorf("empty patch triggered a save")
	}
}

func TestUpdateAppliesPresentFields(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)
	goal, _ := s.Create(ctx, tripDraft())

	name := "Trip to Porto"
	empty := ""
	current := amount(50)
	err := s.Update(ctx, goal.ID, model.Patch{Name: &name, Description: &empty, CurrentAmount: &current})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, _ := s.ByID(goal.ID)
	if got.Name != name || got.Description != "" {
		t.Errorf("got name=%q description=%q", got.Name, got.Description)
	}
	if got.Status != model.GoalStatusInProgress {
		t.Errorf("status = %s, want derived in-progress", got.Status)
	}
	if got.Category != model.CategoryPersonal {
		t.Errorf("absent field overwritten: category = %q", got.Category)
	}
}

func TestUpdateExplicitStatusOverridesDerivation(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)
	goal, _ := s.Create(ctx, tripDraft())

	full := amount(500)
	todo := model.GoalStatusTodo
	_ = s.Update(ctx, goal.ID, model.Patch{CurrentAmount: &full, Status: &todo})

	got, _ := s.ByID(goal.ID)
	if got.Status != model.GoalStatusTodo {
		t.Errorf("status = %s, want explicit to-do kept", got.Status)
	}
}

func TestUnknownIDIsNotFound(t *testing.T) {
	ctx := context.Background()
	s, repo := newService(t)

	checks := map[string]error{
		"update":   s.Update(ctx, "nope", model.Patch{}),
		"delete":   s.Delete(ctx, "nope"),
		"amount":   s.SetAmount(ctx, "nope", amount(1)),
		"complete": s.MarkComplete(ctx, "nope"),
	}
	_, checks["deposit"] = s.Deposit(ctx, "nope", amount(1))

	for op, err := range checks {
		if !errors.Is(err, repository.ErrGoalNotFound) {
			t.Errorf("%s: err = %v, want ErrGoalNotFound", op, err)
		}
	}
	if repo.saves != 0 {
		t.Errorf("saves = %d, no-op mutations must not write", repo.saves)
	}
}

func TestDepositRejectedWhenExceedingTarget(t *testing.T) {
	ctx := context.Background()
	s, repo := newService(t)
	goal, _ := s.Create(ctx, model.Draft{Name: "Bike", TargetAmount: amount(100)})
	_ = s.SetAmount(ctx, goal.ID, amount(90))
	saves := repo.saves

	_, err := s.Deposit(ctx, goal.ID, amount(20))
	if !errors.Is(err, ErrDepositExceedsTarget) {
		t.Fatalf("err = %v, want ErrDepositExceedsTarget", err)
	}

	got, _ := s.ByID(goal.ID)
	if !got.CurrentAmount.Equal(amount(90)) {
		t.Errorf("CurrentAmount = %s, want 90", got.CurrentAmount)
	}
	if repo.saves != saves {
		t.Error("rejected deposit must not write")
	}
}

func TestDepositFillsGoal(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)
	goal, _ := s.Create(ctx, model.Draft{Name: "Bike", TargetAmount: amount(100)})

	got, err := s.Deposit(ctx, goal.ID, decimal.RequireFromString("40.50"))
	if err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if got.Status != model.GoalStatusInProgress {
		t.Errorf("status = %s, want in-progress", got.Status)
	}

	got, err = s.Deposit(ctx, goal.ID, decimal.RequireFromString("59.50"))
	if err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if got.Status != model.GoalStatusDone || !got.CurrentAmount.Equal(amount(100)) {
		t.Errorf("after exact fill: %s / %s", got.Status, got.CurrentAmount)
	}

	_, err = s.Deposit(ctx, goal.ID, decimal.Zero)
	if !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero deposit err = %v, want ErrInvalidAmount", err)
	}
}

func TestMarkCompleteBypassesAmounts(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)
	goal, _ := s.Create(ctx, tripDraft())

	_ = s.MarkComplete(ctx, goal.ID)

	got, _ := s.ByID(goal.ID)
	if got.Status != model.GoalStatusDone || !got.CurrentAmount.IsZero() {
		t.Errorf("got %s / %s, want done / 0", got.Status, got.CurrentAmount)
	}
}

func TestDeleteNotResurrectedByReload(t *testing.T) {
	ctx := context.Background()
	repo, err := repository.NewGoalRepository(storage.NewMemorySlot())
	if err != nil {
		t.Fatalf("NewGoalRepository: %v", err)
	}
	s := NewGoalService(ctx, repo, WithClock(func() time.Time { return fixedNow }))

	keep, _ := s.Create(ctx, tripDraft())
	drop, _ := s.Create(ctx, model.Draft{Name: "Drop me", TargetAmount: amount(10)})

	if err := s.Delete(ctx, drop.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	reloaded := NewGoalService(ctx, repo)
	if _, err := reloaded.ByID(drop.ID); !errors.Is(err, repository.ErrGoalNotFound) {
		t.Errorf("deleted goal resurrected, err = %v", err)
	}
	if _, err := reloaded.ByID(keep.ID); err != nil {
		t.Errorf("kept goal missing after reload: %v", err)
	}
}

func TestSaveFailureIsReported(t *testing.T) {
	ctx := context.Background()
	s, repo := newService(t)
	repo.saveFn = func(ctx context.Context, goals []*model.Goal) error {
		return errors.New("quota exceeded")
	}

	_, err := s.Create(ctx, tripDraft())
	if err == nil {
		t.Fatal("Create error = nil, want save failure")
	}
	if len(s.Goals()) != 1 {
		t.Errorf("in-memory goal should still exist, got %d", len(s.Goals()))
	}
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)
	goal, _ := s.Create(ctx, tripDraft())

	s.Goals()[0].Name = "mutated"
	goal.Status = model.GoalStatusDone

	got, _ := s.ByID(goal.ID)
	if got.Name != "Save for trip" || got.Status != model.GoalStatusTodo {
		t.Errorf("store state leaked to callers: %+v", got)
	}
}

func TestQueryAndBoard(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)
	a, _ := s.Create(ctx, model.Draft{Name: "A", TargetAmount: amount(300)})
	b, _ := s.Create(ctx, model.Draft{Name: "B", TargetAmount: amount(100)})
	_ = s.SetAmount(ctx, b.ID, amount(50))

	list := s.Query(query.Options{Sort: query.SortAmount})
	if len(list) != 2 || list[0].ID != a.ID {
		t.Errorf("Query order wrong: %v", list)
	}

	board := s.Board()
	if len(board.Todo) != 1 || len(board.InProgress) != 1 || len(board.Done) != 0 {
		t.Errorf("Board = %d/%d/%d", len(board.Todo), len(board.InProgress), len(board.Done))
	}

	sum := s.Summary(query.Options{Status: string(model.GoalStatusTodo)})
	if sum != (query.Summary{Shown: 1, Total: 2}) {
		t.Errorf("Summary = %+v", sum)
	}
}
