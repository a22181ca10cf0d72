package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_job_postings",
		SQL: `CREATE TABLE IF NOT EXISTS job_postings (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  title        TEXT        NOT NULL,
  department   TEXT        NOT NULL DEFAULT '',
  description  TEXT        NOT NULL,
  requirements TEXT        NOT NULL,
  published    BOOLEAN     NOT NULL DEFAULT false,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_candidates",
		SQL: `CREATE TABLE IF NOT EXISTS candidates (
  id               UUID             PRIMARY KEY DEFAULT uuid_generate_v4(),
  name             TEXT             NOT NULL,
  email            TEXT             NOT NULL,
  job_id           UUID             NOT NULL REFERENCES job_postings (id) ON DELETE CASCADE,
  resume_text      TEXT             NOT NULL,
  resume_path      TEXT             NOT NULL DEFAULT '',
  match_score      DOUBLE PRECISION NOT NULL DEFAULT 0,
  shortlisted      BOOLEAN          NOT NULL DEFAULT false,
  skills           JSONB            NOT NULL DEFAULT '[]',
  strengths        JSONB            NOT NULL DEFAULT '[]',
  missing_skills   JSONB            NOT NULL DEFAULT '[]',
  experience_years INTEGER          NOT NULL DEFAULT 0 CHECK (experience_years >= 0),
  education        TEXT             NOT NULL DEFAULT '',
  created_at       TIMESTAMPTZ     NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_job_postings_published",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_job_postings_published ON job_postings (published);`,
	},
	{
		Name: "create_index_candidates_job_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_candidates_job_id ON candidates (job_id);`,
	},
	{
		Name: "create_index_candidates_shortlisted",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_candidates_shortlisted ON candidates (shortlisted);`,
	},
	{
		Name: "create_index_candidates_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_candidates_created_at ON candidates (created_at);`,
	},
}

// EnsureMigrated checks if the 'candidates' table exists and runs the schema
// bootstrap if it doesn't. Steps are idempotent, so re-running is safe.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	start := time.Now()

	var exists bool
	query := "SELECT to_regclass('public.candidates') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("migration sentinel check failed", zap.Error(err))
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("schema already exists, skipping migration",
			zap.Duration("elapsed", time.Since(start)))
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("migration step failed",
				zap.String("step", step.Name),
				zap.Error(err))
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Info("migration step applied",
			zap.String("step", step.Name),
			zap.Duration("elapsed", time.Since(stepStart)))
	}

	log.Info("schema migrated", zap.Duration("elapsed", time.Since(start)))
	return nil
}
