package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/scry-cards/internal/api"
	apiMiddleware "github.com/phrazzld/scry-cards/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.NewCORSMiddleware())

	jobHandler := api.NewJobHandler(app.jobService, app.pinger(), app.logger)

	r.Get("/", jobHandler.Root)
	r.Get("/health", jobHandler.Health)
	r.Get("/ready", jobHandler.Ready)

	r.Post("/generate-flashcards", jobHandler.CreateJob)
	r.Post("/generate-flashcards-sync", jobHandler.GenerateSync)
	r.Get("/job-status/{jobID}", jobHandler.GetJobStatus)
	r.Get("/job-result/{jobID}", jobHandler.GetJobResult)
	r.Get("/jobs", jobHandler.ListJobs)

	return r
}
