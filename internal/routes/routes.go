package routes

import (
	"net/http"

	"github.com/templui/goalboard/internal/app"
	"github.com/templui/goalboard/internal/handler"
	"github.com/templui/goalboard/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	goal := handler.NewGoalHandler(app.GoalService, app.Markdown, app.Cfg.SubmitDelay)

	mux := http.NewServeMux()

	// Board
	mux.HandleFunc("GET /{$}", goal.BoardPage)

	// Goals API
	mux.HandleFunc("GET /api/goals", goal.List)
	mux.HandleFunc("GET /api/goals/board", goal.Board)
	mux.HandleFunc("GET /api/goals/export", goal.Export)
	mux.HandleFunc("GET /api/goals/{id}", goal.Get)
	mux.HandleFunc("POST /api/goals", goal.Create)
	mux.HandleFunc("POST /api/goals/validate", goal.Validate)
	mux.HandleFunc("PUT /api/goals/{id}", goal.Update)
	mux.HandleFunc("PUT /api/goals/{id}/amount", goal.SetAmount)
	mux.HandleFunc("POST /api/goals/{id}/deposits", goal.Deposit)
	mux.HandleFunc("POST /api/goals/{id}/complete", goal.Complete)
	mux.HandleFunc("DELETE /api/goals/{id}", goal.Delete)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.Config(app.Cfg),
		middleware.WithURLPath,
	)

	return handler
}
