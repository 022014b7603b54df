package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/glossa-api/internal/api"
	apiMiddleware "github.com/phrazzld/glossa-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	cardHandler := api.NewCardHandler(app.studyService, app.logger)
	syncHandler := api.NewSyncHandler(app.syncService, app.logger)
	extractHandler := api.NewExtractHandler(
		app.extractor, app.studyService, app.taskRunner, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Sync endpoints
			r.Get("/cards", syncHandler.GetCards)
			r.Post("/cards/sync", syncHandler.SyncCards)

			// Study endpoints
			r.Get("/cards/due", cardHandler.GetDueCards)
			r.Post("/cards/{id}/review", cardHandler.SubmitReview)

			// Extraction endpoints
			r.Post("/extracts", extractHandler.CreateExtract)
			r.Post("/extracts/async", extractHandler.CreateExtractAsync)
		})
	})

	// Health check endpoint (public)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
