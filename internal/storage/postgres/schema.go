package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS sites (
	id             TEXT PRIMARY KEY,
	user_id        TEXT NOT NULL,
	name           TEXT NOT NULL,
	root_url       TEXT NOT NULL,
	career_url     TEXT NOT NULL,
	keywords       TEXT[] NOT NULL DEFAULT '{}',
	priority       TEXT NOT NULL DEFAULT 'medium' CHECK (priority IN ('high', 'medium', 'low')),
	check_interval INTEGER NOT NULL DEFAULT 1440 CHECK (check_interval >= 1),
	active         BOOLEAN NOT NULL DEFAULT TRUE,
	last_checked   TIMESTAMPTZ,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_sites_user_id ON sites (user_id);
CREATE INDEX IF NOT EXISTS idx_sites_due ON sites (active, last_checked);

CREATE TABLE IF NOT EXISTS jobs (
	id                   TEXT PRIMARY KEY,
	site_id              TEXT NOT NULL REFERENCES sites (id) ON DELETE CASCADE,
	title                TEXT NOT NULL,
	url                  TEXT NOT NULL,
	company              TEXT NOT NULL DEFAULT '',
	description          TEXT NOT NULL DEFAULT '',
	application_deadline TIMESTAMPTZ,
	matched_keywords     TEXT[] NOT NULL DEFAULT '{}',
	status               TEXT NOT NULL DEFAULT 'New' CHECK (status IN ('New', 'Seen', 'Applied', 'Archived')),
	priority             TEXT NOT NULL DEFAULT 'medium' CHECK (priority IN ('high', 'medium', 'low')),
	date_found           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (site_id, url)
);

CREATE INDEX IF NOT EXISTS idx_jobs_site_id ON jobs (site_id);
`

// Migrate creates the tables when they do not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.conn.ExecContext(ctx, schema); err != nil {
		s.logger.Error("failed to apply schema", zap.Error(err))
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
