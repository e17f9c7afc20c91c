package routes

import (
	"net/http"
	"strings"

	"github.com/templui/goalnote/internal/app"
	"github.com/templui/goalnote/internal/handler"
	"github.com/templui/goalnote/internal/middleware"
	"github.com/templui/goalnote/internal/storage"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	auth := handler.NewAuthHandler(app.AuthService, app.Validator)
	user := handler.NewUserHandler(app.UserService, app.Validator)
	goal := handler.NewGoalHandler(app.GoalService, app.Validator)
	todo := handler.NewTodoHandler(app.TodoService, app.Validator)
	note := handler.NewNoteHandler(app.NoteService, app.Validator)
	file := handler.NewFileHandler(app.FileService, app.Cfg.FileMaxSize)

	requireAuth := middleware.RequireAuth(app.AuthService)
	rateLimit := middleware.RateLimit(app.AuthLimiter)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Healthz)
	if app.Cfg.MetricsEnabled {
		mux.Handle("GET /metrics", app.Metrics.Handler())
	}

	// Uploaded files, when they live on local disk
	if local, ok := app.Storage.(*storage.LocalStorage); ok && strings.HasPrefix(app.Cfg.MediaURL, "/") {
		prefix := strings.TrimSuffix(app.Cfg.MediaURL, "/") + "/"
		mux.Handle("GET "+prefix, http.StripPrefix(prefix, local.Handler()))
	}

	// Auth (rate limited)
	mux.HandleFunc("POST /auth/login", rateLimit(auth.Login))
	mux.HandleFunc("POST /auth/tokens", auth.Tokens)
	mux.HandleFunc("POST /user", rateLimit(user.Register))

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	mux.HandleFunc("GET /user", requireAuth(user.Me))

	// Goals
	mux.HandleFunc("GET /goals", requireAuth(goal.List))
	mux.HandleFunc("POST /goals", requireAuth(goal.Create))
	mux.HandleFunc("GET /goals/{id}", requireAuth(goal.Get))
	mux.HandleFunc("PATCH /goals/{id}", requireAuth(goal.Update))
	mux.HandleFunc("DELETE /goals/{id}", requireAuth(goal.Delete))

	// Todos
	mux.HandleFunc("GET /todos", requireAuth(todo.List))
	mux.HandleFunc("GET /todos/progress", requireAuth(todo.Progress))
	mux.HandleFunc("POST /todos", requireAuth(todo.Create))
	mux.HandleFunc("GET /todos/{id}", requireAuth(todo.Get))
	mux.HandleFunc("PATCH /todos/{id}", requireAuth(todo.Update))
	mux.HandleFunc("DELETE /todos/{id}", requireAuth(todo.Delete))

	// Notes
	mux.HandleFunc("GET /notes", requireAuth(note.List))
	mux.HandleFunc("POST /notes", requireAuth(note.Create))
	mux.HandleFunc("GET /notes/{id}", requireAuth(note.Get))
	mux.HandleFunc("PATCH /notes/{id}", requireAuth(note.Update))
	mux.HandleFunc("DELETE /notes/{id}", requireAuth(note.Delete))

	// Files
	mux.HandleFunc("GET /files", requireAuth(file.List))
	mux.HandleFunc("POST /files", requireAuth(file.Upload))
	mux.HandleFunc("GET /files/{id}", requireAuth(file.Get))
	mux.HandleFunc("DELETE /files/{id}", requireAuth(file.Delete))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/{path...}", health.NotFound)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg), // Must run before Metrics, it replaces the request
		middleware.RequestLogging,
		middleware.Metrics(app.Metrics), // Last, so it sees the pattern the mux sets
	)

	return handler
}
