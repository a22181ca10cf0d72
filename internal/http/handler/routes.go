package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"recruitapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal and free of business logic.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.ApplicationService, maxUploadBytes int64) {
	// Health endpoints: readiness checks DB connectivity, liveness does not.
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")
	api.Post("/process-application", ProcessApplication(svc, maxUploadBytes))
	api.Get("/jobs", ListJobs(svc))
	api.Get("/candidates", ListCandidates(svc))
	api.Get("/candidates/:id", GetCandidate(svc))
	api.Get("/analytics", Analytics(svc))
}
