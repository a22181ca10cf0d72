package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"recruitapi/internal/extract"
	"recruitapi/internal/scoring"
	"recruitapi/internal/service"
)

// HealthCheck reports readiness by pinging the database.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness check with no dependencies.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ProcessApplication accepts a multipart application submission and runs the
// intake pipeline synchronously.
//
// @Summary Submit a job application
// @Accept mpfd
// @Produce json
// @Param job_id formData string true "Published job posting ID"
// @Param name formData string true "Candidate full name"
// @Param email formData string true "Candidate email"
// @Param resume formData file true "Resume file (pdf, docx or txt)"
// @Success 200 {object} service.ApplicationOutcome
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 501 {object} errorPayload
// @Router /api/process-application [post]
func ProcessApplication(svc service.ApplicationService, maxUploadBytes int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := service.ApplicationRequest{
			JobID: c.FormValue("job_id"),
			Name:  c.FormValue("name"),
			Email: c.FormValue("email"),
		}

		if fh, err := c.FormFile("resume"); err == nil {
			if fh.Size > maxUploadBytes {
				return writeError(c, fiber.StatusBadRequest, "RESUME_TOO_LARGE", "uploaded file exceeds the size limit")
			}
			f, err := fh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot read uploaded file")
			}
			req.Filename = fh.Filename
			req.Resume = data
		}

		out, err := svc.ProcessApplication(c.UserContext(), req)
		if err != nil {
			return writeApplicationError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(out)
	}
}

// writeApplicationError translates pipeline errors into the externally
// visible status and code taxonomy.
func writeApplicationError(c *fiber.Ctx, err error) error {
	var missing *service.MissingFieldsError
	if errors.As(err, &missing) {
		return writeError(c, fiber.StatusBadRequest, "MISSING_FIELDS", missing.Error())
	}

	if kind, ok := extract.KindOf(err); ok {
		switch kind {
		case extract.KindUnsupportedFormat:
			return writeError(c, fiber.StatusBadRequest, "UNSUPPORTED_FORMAT", "resume must be a pdf, docx or txt file")
		case extract.KindCapabilityUnavailable:
			return writeError(c, fiber.StatusNotImplemented, "CAPABILITY_UNAVAILABLE", "this file format is not supported by the current deployment")
		default:
			return writeError(c, fiber.StatusBadRequest, "EXTRACTION_FAILED", "resume file could not be read")
		}
	}

	if kind, ok := scoring.KindOf(err); ok {
		switch kind {
		case scoring.KindNotConfigured:
			return writeError(c, fiber.StatusInternalServerError, "SCORING_NOT_CONFIGURED", "resume scoring is not configured")
		case scoring.KindInvalidResponseFormat:
			return writeError(c, fiber.StatusInternalServerError, "INVALID_RESPONSE", "scoring service returned an unusable response")
		default:
			return writeError(c, fiber.StatusInternalServerError, "SCORING_UNAVAILABLE", "scoring service is unavailable")
		}
	}

	switch {
	case errors.Is(err, service.ErrJobNotFound):
		return writeError(c, fiber.StatusNotFound, "JOB_NOT_FOUND", "job posting not found")
	case errors.Is(err, service.ErrEmptyResume):
		return writeError(c, fiber.StatusBadRequest, "EMPTY_RESUME", "resume contains no extractable text")
	case errors.Is(err, service.ErrPersistenceFailed):
		return writeError(c, fiber.StatusInternalServerError, "PERSISTENCE_FAILED", "application could not be stored")
	case errors.Is(err, context.DeadlineExceeded):
		return writeError(c, fiber.StatusInternalServerError, "DEADLINE_EXCEEDED", "application processing timed out")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ListJobs returns all published job postings.
//
// @Summary List published job postings
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/jobs [get]
func ListJobs(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		jobs, err := svc.ListJobs(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{
			"message": fmt.Sprintf("%d active job(s) found.", len(jobs)),
			"jobs":    jobs,
		})
	}
}

// ListCandidates returns all stored candidates, newest first.
//
// @Summary List candidates
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/candidates [get]
func ListCandidates(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		candidates, err := svc.ListCandidates(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{
			"message":    "Candidate list retrieved successfully.",
			"candidates": candidates,
		})
	}
}

// GetCandidate returns one candidate by ID.
//
// @Summary Get candidate detail
// @Produce json
// @Param id path string true "Candidate ID"
// @Success 200 {object} model.Candidate
// @Failure 404 {object} errorPayload
// @Router /api/candidates/{id} [get]
func GetCandidate(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		candidate, err := svc.GetCandidate(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return writeError(c, fiber.StatusNotFound, "CANDIDATE_NOT_FOUND", "candidate not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(candidate)
	}
}

// Analytics returns aggregate counts over stored candidates.
//
// @Summary Candidate pipeline analytics
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/analytics [get]
func Analytics(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.Analytics(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{
			"message":          "Analytics data retrieved.",
			"total_candidates": stats.TotalCandidates,
			"shortlisted":      stats.Shortlisted,
			"avg_score":        stats.AvgScore,
		})
	}
}
