// Package query projects the goal collection into filtered, ordered views.
// Nothing here mutates its input.
package query

import (
	"net/url"
	"slices"
	"strings"

	"github.com/templui/goalboard/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	SortDeadline = "deadline"
	SortAmount   = "amount"
	SortProgress = "progress"
	SortName     = "name"

	// All disables a category or status filter.
	All = "all"
)

type Options struct {
	Search   string
	Category string
	Status   string
	Sort     string
}

// DefaultOptions matches the dashboard's initial state.
func DefaultOptions() Options {
	return Options{Category: All, Status: All, Sort: SortDeadline}
}

// ParseOptions reads search, category, status and sort from a query string.
// Missing values fall back to DefaultOptions.
func ParseOptions(values url.Values) Options {
	opts := DefaultOptions()
	opts.Search = values.Get("search")
	if v := values.Get("category"); v != "" {
		opts.Category = v
	}
	if v := values.Get("status"); v != "" {
		opts.Status = v
	}
	if v := values.Get("sort"); v != "" {
		opts.Sort = v
	}
	return opts
}

// Apply filters by search text, category and status, then sorts.
// The result is a new slice; unknown sort keys keep the input order.
func Apply(goals []*model.Goal, opts Options) []*model.Goal {
	out := make([]*model.Goal, 0, len(goals))
	for _, g := range goals {
		if matches(g, opts) {
			out = append(out, g)
		}
	}

	sortGoals(out, opts.Sort)
	return out
}

func matches(g *model.Goal, opts Options) bool {
	if opts.Search != "" {
		term := strings.ToLower(opts.Search)
		if !strings.Contains(strings.ToLower(g.Name), term) &&
			!strings.Contains(strings.ToLower(g.Description), term) {
			return false
		}
	}

	if opts.Category != "" && opts.Category != All && string(g.Category) != opts.Category {
		return false
	}

	if opts.Status != "" && opts.Status != All && string(g.Status) != opts.Status {
		return false
	}

	return true
}

func sortGoals(goals []*model.Goal, key string) {
	switch key {
	case SortDeadline:
		slices.SortStableFunc(goals, func(a, b *model.Goal) int {
			return a.Deadline.Compare(b.Deadline)
		})
	case SortAmount:
		slices.SortStableFunc(goals, func(a, b *model.Goal) int {
			return b.TargetAmount.Cmp(a.TargetAmount)
		})
	case SortProgress:
		slices.SortStableFunc(goals, func(a, b *model.Goal) int {
			ra, rb := a.Ratio(), b.Ratio()
			switch {
			case ra > rb:
				return -1
			case ra < rb:
				return 1
			}
			return 0
		})
	case SortName:
		c := collate.New(language.English)
		slices.SortStableFunc(goals, func(a, b *model.Goal) int {
			return c.CompareString(a.Name, b.Name)
		})
	}
}

// Board holds the lifecycle columns.
type Board struct {
	Todo       []*model.Goal
	InProgress []*model.Goal
	Done       []*model.Goal
}

// Partition splits goals by status, keeping input order within each column.
// Goals with an unknown status are left out.
func Partition(goals []*model.Goal) Board {
	board := Board{
		Todo:       []*model.Goal{},
		InProgress: []*model.Goal{},
		Done:       []*model.Goal{},
	}
	for _, g := range goals {
		switch g.Status {
		case model.GoalStatusTodo:
			board.Todo = append(board.Todo, g)
		case model.GoalStatusInProgress:
			board.InProgress = append(board.InProgress, g)
		case model.GoalStatusDone:
			board.Done = append(board.Done, g)
		}
	}
	return board
}

// Column returns the bucket for status.
func (b Board) Column(status model.Status) []*model.Goal {
	switch status {
	case model.GoalStatusTodo:
		return b.Todo
	case model.GoalStatusInProgress:
		return b.InProgress
	case model.GoalStatusDone:
		return b.Done
	}
	return nil
}

// Summary backs the "X of Y goals" line.
type Summary struct {
	Shown int `json:"shown"`
	Total int `json:"total"`
}

func Count(goals []*model.Goal, opts Options) Summary {
	shown := 0
	for _, g := range goals {
		if matches(g, opts) {
			shown++
		}
	}
	return Summary{Shown: shown, Total: len(goals)}
}
