package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"recruitapi/internal/config"
	"recruitapi/internal/extract"
	"recruitapi/internal/model"
	"recruitapi/internal/notify"
	"recruitapi/internal/redact"
	"recruitapi/internal/repository"
	"recruitapi/internal/scoring"
	"recruitapi/internal/storage"
)

// ShortlistQueue accepts notifications for asynchronous delivery.
type ShortlistQueue interface {
	Enqueue(n notify.Notification)
}

// Application wires the intake pipeline stages together.
type Application struct {
	jobs       repository.JobRepository
	candidates repository.CandidateRepository
	store      storage.Storage
	extractor  *extract.Extractor
	redactor   redact.Redactor
	scorer     scoring.Client
	shortlist  ShortlistQueue
	cfg        config.PipelineConfig
	log        *zap.Logger
}

// NewApplication creates the application service.
func NewApplication(
	jobs repository.JobRepository,
	candidates repository.CandidateRepository,
	store storage.Storage,
	extractor *extract.Extractor,
	redactor redact.Redactor,
	scorer scoring.Client,
	shortlist ShortlistQueue,
	cfg config.PipelineConfig,
	log *zap.Logger,
) *Application {
	return &Application{
		jobs:       jobs,
		candidates: candidates,
		store:      store,
		extractor:  extractor,
		redactor:   redactor,
		scorer:     scorer,
		shortlist:  shortlist,
		cfg:        cfg,
		log:        log,
	}
}

var _ ApplicationService = (*Application)(nil)

func (s *Application) ProcessApplication(ctx context.Context, req ApplicationRequest) (*ApplicationOutcome, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	format, err := extract.ParseFormat(filepath.Ext(req.Filename))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.TimeoutSec)*time.Second)
	defer cancel()

	job, err := s.jobs.FindPublished(ctx, req.JobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("find job posting: %w", err)
	}

	text, err := s.extractText(req, format)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, ErrEmptyResume
	}

	// Everything past this point sees only the redacted text. The raw
	// extraction never reaches the scorer or the database.
	redacted := s.redactor.Redact(ctx, text)
	if strings.TrimSpace(redacted) == "" {
		return nil, ErrEmptyResume
	}

	result, err := s.scorer.Score(ctx, redacted, job.Description, job.Requirements)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// A transient outage warrants a warning; a missing endpoint is a
		// deployment error.
		if kind, ok := scoring.KindOf(err); ok && kind == scoring.KindUnreachable {
			s.log.Warn("scoring unavailable",
				zap.String("component", "pipeline"),
				zap.String("job_id", job.ID),
				zap.Error(err))
		} else {
			s.log.Error("scoring failed",
				zap.String("component", "pipeline"),
				zap.String("job_id", job.ID),
				zap.Error(err))
		}
		return nil, err
	}

	candidate := &model.Candidate{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Email:           req.Email,
		JobID:           job.ID,
		JobTitle:        job.Title,
		ResumeText:      redacted,
		MatchScore:      result.MatchScore,
		Shortlisted:     result.Shortlisted,
		Skills:          result.Skills,
		Strengths:       result.Strengths,
		MissingSkills:   result.MissingSkills,
		ExperienceYears: result.ExperienceYears,
		Education:       result.Education,
		CreatedAt:       time.Now().UTC(),
	}
	candidate.ResumePath = fmt.Sprintf("resumes/%s%s", candidate.ID, strings.ToLower(filepath.Ext(req.Filename)))

	if _, err := s.store.Put(ctx, candidate.ResumePath, bytes.NewReader(req.Resume), storage.PutObjectOptions{
		Size:        int64(len(req.Resume)),
		ContentType: contentTypeFor(format),
	}); err != nil {
		s.log.Error("resume archive failed",
			zap.String("component", "pipeline"),
			zap.String("key", candidate.ResumePath),
			zap.Error(err))
		return nil, fmt.Errorf("%w: archive resume: %v", ErrPersistenceFailed, err)
	}

	created, err := s.candidates.Create(ctx, candidate)
	if err != nil {
		// Roll the archived object back so storage does not accumulate
		// resumes without a matching row.
		if delErr := s.store.Delete(context.WithoutCancel(ctx), candidate.ResumePath); delErr != nil {
			s.log.Error("resume rollback failed",
				zap.String("component", "pipeline"),
				zap.String("key", candidate.ResumePath),
				zap.Error(delErr))
		}
		return nil, fmt.Errorf("%w: store candidate: %v", ErrPersistenceFailed, err)
	}

	s.log.Info("application processed",
		zap.String("component", "pipeline"),
		zap.String("candidate_id", created.ID),
		zap.String("job_id", job.ID),
		zap.Float64("match_score", created.MatchScore),
		zap.Bool("shortlisted", created.Shortlisted))

	if created.Shortlisted {
		s.shortlist.Enqueue(notify.Notification{
			CandidateName:  created.Name,
			CandidateEmail: created.Email,
			JobTitle:       job.Title,
			MatchScore:     created.MatchScore,
		})
	}

	return &ApplicationOutcome{
		CandidateID:     created.ID,
		JobTitle:        job.Title,
		MatchScore:      math.Round(created.MatchScore*10) / 10,
		Shortlisted:     created.Shortlisted,
		Skills:          created.Skills,
		Strengths:       created.Strengths,
		MissingSkills:   created.MissingSkills,
		ExperienceYears: created.ExperienceYears,
		Education:       created.Education,
	}, nil
}

func (s *Application) ListJobs(ctx context.Context) ([]model.JobPosting, error) {
	return s.jobs.ListPublished(ctx)
}

func (s *Application) ListCandidates(ctx context.Context) ([]model.CandidateSummary, error) {
	return s.candidates.List(ctx)
}

func (s *Application) GetCandidate(ctx context.Context, id string) (*model.Candidate, error) {
	return s.candidates.FindByID(ctx, id)
}

func (s *Application) Analytics(ctx context.Context) (*model.CandidateStats, error) {
	return s.candidates.Stats(ctx)
}

func validateRequest(req ApplicationRequest) error {
	var missing []string
	if strings.TrimSpace(req.JobID) == "" {
		missing = append(missing, "job_id")
	}
	if strings.TrimSpace(req.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(req.Email) == "" {
		missing = append(missing, "email")
	}
	if len(req.Resume) == 0 || req.Filename == "" {
		missing = append(missing, "resume")
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

// extractText spools the upload to a temp file so the format parsers can
// work off a path, then extracts and truncates the text.
func (s *Application) extractText(req ApplicationRequest, format extract.Format) (string, error) {
	tmp, err := os.CreateTemp("", "resume-*"+strings.ToLower(filepath.Ext(req.Filename)))
	if err != nil {
		return "", fmt.Errorf("create temp resume file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(req.Resume); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp resume file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp resume file: %w", err)
	}

	return s.extractor.Extract(tmp.Name(), format, s.cfg.MaxTextLength)
}

func contentTypeFor(format extract.Format) string {
	switch format {
	case extract.FormatPDF:
		return "application/pdf"
	case extract.FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/plain; charset=utf-8"
	}
}
