package query

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/templui/goalboard/internal/model"
)

func goal(id, name string, target, current int64) *model.Goal {
	return &model.Goal{
		ID:            id,
		Name:          name,
		Category:      model.CategoryPersonal,
		Status:        model.GoalStatusTodo,
		TargetAmount:  decimal.NewFromInt(target),
		CurrentAmount: decimal.NewFromInt(current),
	}
}

func ids(goals []*model.Goal) []string {
	out := make([]string, 0, len(goals))
	for _, g := range goals {
		out = append(out, g.ID)
	}
	return out
}

func TestSortByAmountDescending(t *testing.T) {
	goals := []*model.Goal{
		goal("a", "A", 300, 0),
		goal("b", "B", 100, 0),
		goal("c", "C", 200, 0),
	}

	got := ids(Apply(goals, Options{Sort: SortAmount}))
	want := []string{"a", "c", "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("amount order (-want +got):\n%s", diff)
	}
}

func TestSortOrders(t *testing.T) {
	early := goal("early", "zebra savings", 100, 90)
	early.Deadline = model.NewDate(2026, 1, 1)
	mid := goal("mid", "Apple fund", 100, 10)
	mid.Deadline = model.NewDate(2026, 6, 1)
	late := goal("late", "émigré course", 100, 50)
	late.Deadline = model.NewDate(2027, 1, 1)

	goals := []*model.Goal{late, mid, early}

	tests := []struct {
		sort string
		want []string
	}{
		{SortDeadline, []string{"early", "mid", "late"}},
		{SortProgress, []string{"early", "late", "mid"}},
		{SortName, []string{"mid", "late", "early"}},
		{"color", []string{"late", "mid", "early"}},
		{"", []string{"late", "mid", "early"}},
	}

	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			got := ids(Apply(goals, Options{Sort: tt.sort}))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("sort %q (-want +got):\n%s", tt.sort, diff)
			}
		})
	}

	if diff := cmp.Diff([]string{"late", "mid", "early"}, ids(goals)); diff != "" {
		t.Errorf("Apply reordered its input (-want +got):\n%s", diff)
	}
}

func TestSearchMatchesDescription(t *testing.T) {
	trip := goal("trip", "Summer", 500, 0)
	trip.Description = "Flights to LISBON"
	car := goal("car", "New car", 9000, 0)

	got := ids(Apply([]*model.Goal{trip, car}, Options{Search: "lisbon"}))
	if diff := cmp.Diff([]string{"trip"}, got); diff != "" {
		t.Errorf("search (-want +got):\n%s", diff)
	}

	got = ids(Apply([]*model.Goal{trip, car}, Options{Search: "CAR"}))
	if diff := cmp.Diff([]string{"car"}, got); diff != "" {
		t.Errorf("name search (-want +got):\n%s", diff)
	}
}

func TestCategoryAndStatusFilters(t *testing.T) {
	a := goal("a", "A", 10, 0)
	b := goal("b", "B", 10, 5)
	b.Category = model.CategoryWork
	b.Status = model.GoalStatusInProgress
	c := goal("c", "C", 10, 10)
	c.Category = model.CategoryWork
	c.Status = model.GoalStatusDone
	goals := []*model.Goal{a, b, c}

	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{"all", Options{Category: All, Status: All}, []string{"a", "b", "c"}},
		{"empty means all", Options{}, []string{"a", "b", "c"}},
		{"category", Options{Category: "work", Status: All}, []string{"b", "c"}},
		{"status", Options{Category: All, Status: "done"}, []string{"c"}},
		{"both", Options{Category: "work", Status: "to-do"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Apply(goals, tt.opts))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			if s := Count(goals, tt.opts); s.Shown != len(tt.want) || s.Total != 3 {
				t.Errorf("Count = %+v, want {%d 3}", s, len(tt.want))
			}
		})
	}
}

func TestApplyIdempotent(t *testing.T) {
	goals := []*model.Goal{
		goal("a", "b", 10, 5),
		goal("b", "a", 10, 5),
		goal("c", "c", 30, 0),
	}
	opts := Options{Search: "", Category: All, Status: All, Sort: SortProgress}

	once := Apply(goals, opts)
	twice := Apply(once, opts)
	if diff := cmp.Diff(ids(once), ids(twice)); diff != "" {
		t.Errorf("second pass changed order (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(ids(once), ids(Apply(goals, opts))); diff != "" {
		t.Errorf("repeat on same input changed order:\n%s", diff)
	}
}

func TestPartitionIgnoresFilters(t *testing.T) {
	a := goal("a", "A", 10, 0)
	b := goal("b", "B", 10, 5)
	b.Status = model.GoalStatusInProgress
	c := goal("c", "C", 10, 10)
	c.Status = model.GoalStatusDone
	d := goal("d", "D", 10, 0)

	board := Partition([]*model.Goal{a, b, c, d})

	if diff := cmp.Diff([]string{"a", "d"}, ids(board.Column(model.GoalStatusTodo))); diff != "" {
		t.Errorf("todo column:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b"}, ids(board.InProgress)); diff != "" {
		t.Errorf("in-progress column:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"c"}, ids(board.Done)); diff != "" {
		t.Errorf("done column:\n%s", diff)
	}
}

func TestParseOptions(t *testing.T) {
	got := ParseOptions(url.Values{"search": {"trip"}, "status": {"done"}})
	want := Options{Search: "trip", Category: All, Status: "done", Sort: SortDeadline}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseOptions (-want +got):\n%s", diff)
	}
}
