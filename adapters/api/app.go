// Package api exposes the analysis engine over HTTP for caller/UI layers.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gofigure/app"
	"gofigure/internal"
)

// App represents the HTTP API application
type App struct {
	router  *chi.Mux
	service *app.AnalysisService
	batch   *app.BatchService
	logger  *internal.Logger
}

// NewApp creates the API application around the analysis services
func NewApp(service *app.AnalysisService, batch *app.BatchService, logger *internal.Logger) *App {
	a := &App{
		router:  chi.NewRouter(),
		service: service,
		batch:   batch,
		logger:  logger,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the API routes
func (a *App) setupRoutes() {
	a.router.Route("/api", func(r chi.Router) {
		r.Get("/catalogs", a.handleCatalogs)

		r.Route("/analyses", func(r chi.Router) {
			r.Post("/", a.handleRunAnalysis)
			r.Get("/", a.handleListAnalyses)
			r.Get("/{id}", a.handleGetAnalysis)
			r.Delete("/{id}", a.handleDeleteAnalysis)
			r.Get("/{id}/report", a.handleReport)
			r.Get("/{id}/export", a.handleExport)
		})

		r.Post("/fits", a.handleRunFit)
		r.Post("/batch", a.handleBatch)
	})
}

// ServeHTTP implements http.Handler
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}
