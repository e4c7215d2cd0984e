package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/templui/goalboard/internal/ctxkeys"
	"github.com/templui/goalboard/internal/export"
	"github.com/templui/goalboard/internal/markdown"
	"github.com/templui/goalboard/internal/model"
	"github.com/templui/goalboard/internal/query"
	"github.com/templui/goalboard/internal/repository"
	"github.com/templui/goalboard/internal/service"
	"github.com/templui/goalboard/internal/ui"
	"github.com/templui/goalboard/internal/ui/pages"
	"github.com/templui/goalboard/internal/validation"
)

type GoalHandler struct {
	goalService *service.GoalService
	markdown    *markdown.Parser
	submitDelay time.Duration
}

func NewGoalHandler(goalService *service.GoalService, markdown *markdown.Parser, submitDelay time.Duration) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		markdown:    markdown,
		submitDelay: submitDelay,
	}
}

func (h *GoalHandler) BoardPage(w http.ResponseWriter, r *http.Request) {
	opts := query.ParseOptions(r.URL.Query())
	goals := h.goalService.Goals()

	appName := "Goals"
	if cfg := ctxkeys.Config(r.Context()); cfg != nil && cfg.AppName != "" {
		appName = cfg.AppName
	}

	ui.Render(w, r, pages.Board(pages.BoardProps{
		AppName:  appName,
		Board:    query.Partition(goals),
		Goals:    query.Apply(goals, opts),
		Summary:  query.Count(goals, opts),
		Options:  opts,
		Now:      h.goalService.Now(),
		Markdown: h.markdown,
	}))
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := query.ParseOptions(r.URL.Query())
	now := h.goalService.Now()

	goals := h.goalService.Query(opts)
	views := make([]goalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, h.view(g, now))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"goals":   views,
		"summary": h.goalService.Summary(opts),
	})
}

func (h *GoalHandler) Board(w http.ResponseWriter, r *http.Request) {
	board := h.goalService.Board()
	now := h.goalService.Now()

	column := func(goals []*model.Goal) []goalView {
		views := make([]goalView, 0, len(goals))
		for _, g := range goals {
			views = append(views, h.view(g, now))
		}
		return views
	}

	writeJSON(w, http.StatusOK, map[string]any{
		string(model.GoalStatusTodo):       column(board.Todo),
		string(model.GoalStatusInProgress): column(board.InProgress),
		string(model.GoalStatusDone):       column(board.Done),
	})
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	goal, err := h.goalService.ByID(goalID)
	if err != nil {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}

	writeJSON(w, http.StatusOK, h.view(goal, h.goalService.Now()))
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	form := validation.NewCreateForm(
		validation.WithDelay(h.submitDelay),
		validation.WithFormClock(h.goalService.Now),
	)
	if !h.fill(w, r, form) {
		return
	}

	var created *model.Goal
	err := form.Submit(r.Context(), func(ctx context.Context) error {
		goal, err := h.goalService.Create(ctx, form.Draft())
		created = goal
		return err
	})
	if errors.Is(err, validation.ErrFormInvalid) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": form.Errors()})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create goal")
		return
	}

	writeJSON(w, http.StatusCreated, h.view(created, h.goalService.Now()))
}

// Validate runs the create or edit rules over the posted fields without
// committing anything. Posted fields count as touched.
func (h *GoalHandler) Validate(w http.ResponseWriter, r *http.Request) {
	opts := []validation.FormOption{validation.WithFormClock(h.goalService.Now)}

	form := validation.NewCreateForm(opts...)
	if goalID := r.FormValue("id"); goalID != "" {
		goal, err := h.goalService.ByID(goalID)
		if err != nil {
			writeError(w, http.StatusNotFound, "goal not found")
			return
		}
		form = validation.NewEditForm(goal, opts...)
	}
	if !h.fill(w, r, form) {
		return
	}

	formatted := map[string]string{}
	for _, field := range []string{validation.FieldTargetAmount, validation.FieldCurrentAmount} {
		if _, ok := r.PostForm[field]; ok {
			formatted[field] = validation.FormatAmountInput(form.Value(field))
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"errors":    form.Errors(),
		"canSubmit": form.CanSubmit(),
		"formatted": formatted,
	})
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	goal, err := h.goalService.ByID(goalID)
	if err != nil {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}

	form := validation.NewEditForm(goal,
		validation.WithDelay(h.submitDelay),
		validation.WithFormClock(h.goalService.Now),
	)
	if !h.fill(w, r, form) {
		return
	}

	err = form.Submit(r.Context(), func(ctx context.Context) error {
		return h.goalService.Update(ctx, goalID, form.Patch())
	})
	if errors.Is(err, validation.ErrFormInvalid) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": form.Errors()})
		return
	}
	if errors.Is(err, repository.ErrGoalNotFound) {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update goal")
		return
	}

	h.writeGoal(w, goalID)
}

func (h *GoalHandler) SetAmount(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")
	raw := r.FormValue("amount")

	err := validation.ValidateCurrentAmount(raw)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"errors": map[string]string{validation.FieldCurrentAmount: err.Error()},
		})
		return
	}
	amount, _ := validation.ParseAmount(raw)

	err = h.goalService.SetAmount(r.Context(), goalID, amount)
	if errors.Is(err, repository.ErrGoalNotFound) {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update amount")
		return
	}

	h.writeGoal(w, goalID)
}

func (h *GoalHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	goal, err := h.goalService.ByID(goalID)
	if err != nil {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}

	form := validation.NewDepositForm(goal, h.submitDelay)
	_ = form.Set(r.FormValue("amount"))

	err = form.Submit(r.Context(), func(ctx context.Context, amount decimal.Decimal) (*model.Goal, error) {
		return h.goalService.Deposit(ctx, goalID, amount)
	})
	switch {
	case errors.Is(err, validation.ErrFormInvalid):
		writeError(w, http.StatusUnprocessableEntity, form.Message())
		return
	case errors.Is(err, service.ErrDepositExceedsTarget), errors.Is(err, service.ErrInvalidAmount):
		writeError(w, http.StatusUnprocessableEntity, form.Message())
		return
	case errors.Is(err, repository.ErrGoalNotFound):
		writeError(w, http.StatusNotFound, "goal not found")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, form.Message())
		return
	}

	h.writeGoal(w, goalID)
}

func (h *GoalHandler) Complete(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	err := h.goalService.MarkComplete(r.Context(), goalID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to complete goal")
		return
	}

	h.writeGoal(w, goalID)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	err := h.goalService.Delete(r.Context(), goalID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete goal")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *GoalHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unsupported export format")
		return
	}

	goals := h.goalService.Goals()

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", "attachment; filename="+format.Filename())

	err = export.Write(w, format, goals, h.goalService.Now())
	if err != nil {
		slog.Error("failed to export goals", "error", err, "format", string(format))
		http.Error(w, "failed to export goals", http.StatusInternalServerError)
		return
	}
}

// fill copies the posted fields the form knows into it.
func (h *GoalHandler) fill(w http.ResponseWriter, r *http.Request, form *validation.GoalForm) bool {
	err := r.ParseForm()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return false
	}

	for _, field := range form.Fields() {
		values, ok := r.PostForm[field]
		if !ok || len(values) == 0 {
			continue
		}
		err = form.Set(field, values[0])
		if err != nil {
			slog.Error("failed to set form field", "error", err, "field", field)
			writeError(w, http.StatusInternalServerError, "failed to read form")
			return false
		}
	}

	return true
}

func (h *GoalHandler) writeGoal(w http.ResponseWriter, goalID string) {
	goal, err := h.goalService.ByID(goalID)
	if err != nil {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}
	writeJSON(w, http.StatusOK, h.view(goal, h.goalService.Now()))
}

// goalView is a goal plus the values the dashboard derives for display.
type goalView struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	DescriptionHTML string      `json:"descriptionHtml,omitempty"`
	Type            string      `json:"type"`
	Category        string      `json:"category"`
	StartDate       string      `json:"startDate"`
	Deadline        string      `json:"deadline"`
	CheckInPerson   string      `json:"checkInPerson"`
	CheckInEmail    string      `json:"checkInEmail"`
	TargetAmount    json.Number `json:"targetAmount"`
	CurrentAmount   json.Number `json:"currentAmount"`
	Status          string      `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
	Progress        float64     `json:"progress"`
	Remaining       json.Number `json:"remaining"`
	DaysRemaining   int         `json:"daysRemaining"`
	Overdue         bool        `json:"overdue"`
	DueSoon         bool        `json:"dueSoon"`
}

func (h *GoalHandler) view(g *model.Goal, now time.Time) goalView {
	v := goalView{
		ID:            g.ID,
		Name:          g.Name,
		Description:   g.Description,
		Type:          g.Type,
		Category:      string(g.Category),
		StartDate:     g.StartDate.String(),
		Deadline:      g.Deadline.String(),
		CheckInPerson: g.CheckInPerson,
		CheckInEmail:  g.CheckInEmail,
		TargetAmount:  json.Number(g.TargetAmount.String()),
		CurrentAmount: json.Number(g.CurrentAmount.String()),
		Status:        string(g.Status),
		CreatedAt:     g.CreatedAt,
		Progress:      g.Progress(),
		Remaining:     json.Number(g.Remaining().String()),
		DaysRemaining: g.DaysRemaining(now),
		Overdue:       g.IsOverdue(now),
		DueSoon:       g.DueSoon(now),
	}
	if h.markdown != nil {
		v.DescriptionHTML = h.markdown.Description(g.Description)
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to write json response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
