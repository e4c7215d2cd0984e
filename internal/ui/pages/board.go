package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/templui/goalboard/internal/markdown"
	"github.com/templui/goalboard/internal/model"
	"github.com/templui/goalboard/internal/query"
	"github.com/templui/goalboard/internal/ui/components"
)

type BoardProps struct {
	AppName  string
	Board    query.Board
	Goals    []*model.Goal
	Summary  query.Summary
	Options  query.Options
	Now      time.Time
	Markdown *markdown.Parser
}

var sortLabels = []struct {
	value string
	label string
}{
	{query.SortDeadline, "Deadline"},
	{query.SortAmount, "Amount"},
	{query.SortProgress, "Progress"},
	{query.SortName, "Name"},
}

func categoryOptions() []option {
	options := []option{{query.All, "All categories"}}
	for _, c := range model.Categories {
		options = append(options, option{string(c), titleCase(string(c))})
	}
	return options
}

func statusOptions() []option {
	options := []option{{query.All, "All statuses"}}
	for _, s := range model.Statuses {
		options = append(options, option{string(s), components.StatusLabel(s)})
	}
	return options
}

func sortOptions() []option {
	options := make([]option, 0, len(sortLabels))
	for _, s := range sortLabels {
		options = append(options, option{s.value, "Sort by " + s.label})
	}
	return options
}

type option struct {
	value string
	label string
}

// description renders a goal description to HTML, or "" without a parser.
func description(md *markdown.Parser, s string) string {
	if md == nil {
		return ""
	}
	return md.Description(s)
}

func deadlineLabel(g *model.Goal, now time.Time) string {
	days := g.DaysRemaining(now)
	switch {
	case g.IsOverdue(now):
		return "Overdue"
	case days == 0:
		return "Due today"
	case days == 1:
		return "1 day left"
	}
	return fmt.Sprintf("%d days left", days)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
