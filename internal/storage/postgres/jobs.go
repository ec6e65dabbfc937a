package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/gocraft/dbr/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"careerwatch/internal/models"
)

// InsertJobs writes jobs in a single statement. Rows whose (site_id, url)
// already exists are skipped; only the rows actually inserted are returned.
func (s *Store) InsertJobs(ctx context.Context, jobs []models.Job) ([]models.Job, error) {
	inserted := []models.Job{}
	if len(jobs) == 0 {
		return inserted, nil
	}

	query, args := buildInsertJobs(jobs)

	_, err := s.sess.
		SelectBySql(query, args...).
		LoadContext(ctx, &inserted)

	if err != nil {
		s.logger.Error("failed to insert jobs",
			zap.String("site_id", jobs[0].SiteID),
			zap.Int("count", len(jobs)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("insert jobs: %w", err)
	}

	s.logger.Debug("jobs inserted",
		zap.String("site_id", jobs[0].SiteID),
		zap.Int("offered", len(jobs)),
		zap.Int("inserted", len(inserted)),
	)

	return inserted, nil
}

const jobValueRow = "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"

func buildInsertJobs(jobs []models.Job) (string, []interface{}) {
	rows := make([]string, 0, len(jobs))
	args := make([]interface{}, 0, len(jobs)*11)

	for i := range jobs {
		j := &jobs[i]
		if j.ID == "" {
			j.ID = uuid.NewString()
		}
		keywords := j.MatchedKeywords
		if keywords == nil {
			keywords = []string{}
		}

		rows = append(rows, jobValueRow)
		args = append(args,
			j.ID, j.SiteID, j.Title, j.URL, j.Company, j.Description,
			j.ApplicationDeadline, keywords, string(j.Status), string(j.Priority), j.DateFound,
		)
	}

	query := `
		INSERT INTO jobs (
			id, site_id, title, url, company, description,
			application_deadline, matched_keywords, status, priority, date_found
		)
		VALUES ` + strings.Join(rows, ", ") + `
		ON CONFLICT (site_id, url) DO NOTHING
		RETURNING *
	`
	return query, args
}

// GetJobURLs returns the URLs already stored for a site.
func (s *Store) GetJobURLs(ctx context.Context, siteID string) (map[string]struct{}, error) {
	var urls []string

	_, err := s.sess.
		Select("url").
		From("jobs").
		Where("site_id = ?", siteID).
		LoadContext(ctx, &urls)

	if err != nil {
		s.logger.Error("failed to get job urls",
			zap.String("site_id", siteID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get job urls: %w", err)
	}

	existing := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		existing[u] = struct{}{}
	}
	return existing, nil
}

// ListJobs returns jobs matching filter, newest first.
func (s *Store) ListJobs(ctx context.Context, filter models.JobFilter) ([]models.Job, error) {
	jobs := []models.Job{}

	stmt := s.sess.
		Select("jobs.*").
		From("jobs").
		Join("sites", "sites.id = jobs.site_id").
		OrderDesc("jobs.date_found")

	if filter.UserID != "" {
		stmt = stmt.Where("sites.user_id = ?", filter.UserID)
	}
	if filter.SiteID != "" {
		stmt = stmt.Where("jobs.site_id = ?", filter.SiteID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("jobs.status = ?", string(filter.Status))
	}
	if filter.Limit > 0 {
		stmt = stmt.Limit(filter.Limit)
	}

	if _, err := stmt.LoadContext(ctx, &jobs); err != nil {
		s.logger.Error("failed to list jobs",
			zap.String("user_id", filter.UserID),
			zap.String("site_id", filter.SiteID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	return jobs, nil
}

func (s *Store) UpdateJobStatus(ctx context.Context, jobID string, status models.JobStatus) error {
	res, err := s.sess.
		Update("jobs").
		Set("status", string(status)).
		Where("id = ?", jobID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update job status",
			zap.String("job_id", jobID),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return fmt.Errorf("update job status: %w", err)
	}
	if notFound(res) {
		return ErrNotFound
	}

	return nil
}

func (s *Store) updateJobsPriority(ctx context.Context, tx *dbr.Tx, siteID string, priority models.Priority) error {
	_, err := tx.
		Update("jobs").
		Set("priority", string(priority)).
		Where("site_id = ?", siteID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update jobs priority",
			zap.String("site_id", siteID),
			zap.Error(err),
		)
		return fmt.Errorf("update jobs priority: %w", err)
	}

	return nil
}

func (s *Store) DeleteJob(ctx context.Context, jobID string) error {
	res, err := s.sess.
		DeleteFrom("jobs").
		Where("id = ?", jobID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to delete job",
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return fmt.Errorf("delete job: %w", err)
	}
	if notFound(res) {
		return ErrNotFound
	}

	return nil
}
