package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"careerwatch/internal/guard"
	"careerwatch/internal/models"
	"careerwatch/internal/retry"
)

// Gate is the only way jobs reach the store. Every record passes the
// sanitizing guard first.
type Gate struct {
	store  Store
	retry  retry.Policy
	now    func() time.Time
	logger *zap.Logger
}

func NewGate(store Store, policy retry.Policy, logger *zap.Logger) *Gate {
	return &Gate{
		store:  store,
		retry:  policy,
		now:    time.Now,
		logger: logger,
	}
}

// Existing returns the URLs already stored for site.
func (g *Gate) Existing(ctx context.Context, siteID string) (map[string]struct{}, error) {
	existing, err := g.store.GetJobURLs(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("load existing urls: %w", err)
	}
	return existing, nil
}

// Persist sanitizes records, drops the rejected ones and stores the rest in
// one batch. The site's last-checked time is updated afterwards even when
// nothing was inserted. The jobs that were actually inserted are returned.
func (g *Gate) Persist(ctx context.Context, site *models.Site, records []map[string]any) ([]models.Job, error) {
	jobs := make([]models.Job, 0, len(records))
	for _, rec := range records {
		job, err := guard.Sanitize(rec)
		if err != nil {
			var verr *guard.ValidationError
			if errors.As(err, &verr) {
				g.logger.Warn("record rejected by guard",
					zap.String("site_id", site.ID),
					zap.String("field", verr.Field),
					zap.String("reason", verr.Reason),
				)
				continue
			}
			return nil, err
		}
		jobs = append(jobs, job)
	}

	inserted := []models.Job{}
	if len(jobs) > 0 {
		var err error
		inserted, err = g.store.InsertJobs(ctx, jobs)
		if err != nil {
			return nil, fmt.Errorf("insert jobs: %w", err)
		}
	}

	if err := g.Touch(ctx, site); err != nil {
		return inserted, err
	}

	return inserted, nil
}

// Touch stamps the site's last-checked time, retrying under the gate's
// policy.
func (g *Gate) Touch(ctx context.Context, site *models.Site) error {
	checkedAt := g.now()
	err := retry.Do(ctx, g.retry, func(ctx context.Context) error {
		return g.store.UpdateLastChecked(ctx, site.ID, checkedAt)
	})
	if err != nil {
		return fmt.Errorf("update last checked: %w", err)
	}
	site.LastChecked = &checkedAt
	return nil
}
