package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/templui/goalboard/internal/markdown"
	"github.com/templui/goalboard/internal/model"
	"github.com/templui/goalboard/internal/query"
)

func TestBoardRenders(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	goals := []*model.Goal{
		{
			ID:            "g1",
			Name:          "Trip <Lisbon>",
			Description:   "flights **booked**",
			Category:      model.CategoryPersonal,
			Deadline:      model.NewDate(2026, 3, 2),
			TargetAmount:  decimal.NewFromInt(1500),
			CurrentAmount: decimal.NewFromInt(375),
			Status:        model.GoalStatusInProgress,
		},
		{
			ID:            "g2",
			Name:          "Old plan",
			Category:      model.CategoryOther,
			Deadline:      model.NewDate(2026, 1, 1),
			TargetAmount:  decimal.NewFromInt(10),
			CurrentAmount: decimal.Zero,
			Status:        model.GoalStatusTodo,
		},
	}
	opts := query.Options{Category: query.All, Status: query.All, Sort: query.SortName}

	var buf bytes.Buffer
	err := Board(BoardProps{
		AppName:  "Goalboard",
		Board:    query.Partition(goals),
		Goals:    query.Apply(goals, opts),
		Summary:  query.Count(goals, opts),
		Options:  opts,
		Now:      now,
		Markdown: markdown.NewParser(),
	}).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	html := buf.String()
	for _, want := range []string{
		"Trip &lt;Lisbon&gt;",
		"<strong>booked</strong>",
		"$375.00 of $1,500.00 (25.0%)",
		"$1,125.00 to go",
		"Mar 2, 2026 · 1 day left",
		"Overdue",
		"Showing 2 of 2 goals",
		`<option value="name" selected>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(html, "<Lisbon>") {
		t.Error("goal name was not escaped")
	}
}
