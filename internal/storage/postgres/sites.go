package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gocraft/dbr/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"careerwatch/internal/models"
)

var siteColumns = []string{
	"id", "user_id", "name", "root_url", "career_url", "keywords",
	"priority", "check_interval", "active", "last_checked", "created_at",
}

// CreateSite inserts site, filling in ID and CreatedAt when they are empty.
func (s *Store) CreateSite(ctx context.Context, site *models.Site) error {
	if site.ID == "" {
		site.ID = uuid.NewString()
	}
	if site.CreatedAt.IsZero() {
		site.CreatedAt = time.Now()
	}
	if site.Keywords == nil {
		site.Keywords = []string{}
	}

	_, err := s.sess.
		InsertInto("sites").
		Columns(siteColumns...).
		Record(site).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to create site",
			zap.String("site_id", site.ID),
			zap.String("user_id", site.UserID),
			zap.Error(err),
		)
		return fmt.Errorf("create site: %w", err)
	}

	s.logger.Info("site created",
		zap.String("site_id", site.ID),
		zap.String("career_url", site.CareerURL),
	)

	return nil
}

// GetSite returns ErrNotFound when the site does not exist.
func (s *Store) GetSite(ctx context.Context, siteID string) (*models.Site, error) {
	var site models.Site

	err := s.sess.
		Select("*").
		From("sites").
		Where("id = ?", siteID).
		LoadOneContext(ctx, &site)

	if errors.Is(err, dbr.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Error("failed to get site",
			zap.String("site_id", siteID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get site: %w", err)
	}

	return &site, nil
}

// ListSites returns a user's sites, newest first.
func (s *Store) ListSites(ctx context.Context, userID string) ([]models.Site, error) {
	sites := []models.Site{}

	_, err := s.sess.
		Select("*").
		From("sites").
		Where("user_id = ?", userID).
		OrderDesc("created_at").
		LoadContext(ctx, &sites)

	if err != nil {
		s.logger.Error("failed to list sites",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list sites: %w", err)
	}

	return sites, nil
}

// GetDueSites returns active sites whose interval has elapsed or that were
// never checked, oldest check first, at most limit of them.
func (s *Store) GetDueSites(ctx context.Context, limit int) ([]models.Site, error) {
	sites := []models.Site{}

	query := `
		SELECT * FROM sites
		WHERE active = true
		AND (
			last_checked IS NULL
			OR NOW() - last_checked >= (check_interval || ' minutes')::interval
		)
		ORDER BY last_checked ASC NULLS FIRST, created_at ASC
		LIMIT ?
	`

	_, err := s.sess.
		SelectBySql(query, limit).
		LoadContext(ctx, &sites)

	if err != nil {
		s.logger.Error("failed to get due sites", zap.Error(err))
		return nil, fmt.Errorf("get due sites: %w", err)
	}

	s.logger.Debug("sites to check",
		zap.Int("count", len(sites)),
	)

	return sites, nil
}

func (s *Store) UpdateLastChecked(ctx context.Context, siteID string, at time.Time) error {
	_, err := s.sess.
		Update("sites").
		Set("last_checked", at).
		Where("id = ?", siteID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update last checked",
			zap.String("site_id", siteID),
			zap.Error(err),
		)
		return fmt.Errorf("update last checked: %w", err)
	}

	return nil
}

// UpdateSitePriority changes the site's priority and the priority snapshot
// of all its jobs in one transaction.
func (s *Store) UpdateSitePriority(ctx context.Context, siteID string, priority models.Priority) error {
	tx, err := s.beginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.RollbackUnlessCommitted()

	res, err := tx.
		Update("sites").
		Set("priority", priority).
		Where("id = ?", siteID).
		ExecContext(ctx)
	if err != nil {
		s.logger.Error("failed to update site priority",
			zap.String("site_id", siteID),
			zap.Error(err),
		)
		return fmt.Errorf("update site priority: %w", err)
	}
	if notFound(res) {
		return ErrNotFound
	}

	if err := s.updateJobsPriority(ctx, tx, siteID, priority); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	s.logger.Info("site priority updated",
		zap.String("site_id", siteID),
		zap.String("priority", string(priority)),
	)

	return nil
}

// UpdateSiteInterval stores a new check interval, already in minutes.
func (s *Store) UpdateSiteInterval(ctx context.Context, siteID string, minutes int) error {
	res, err := s.sess.
		Update("sites").
		Set("check_interval", minutes).
		Where("id = ?", siteID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update site interval",
			zap.String("site_id", siteID),
			zap.Int("interval", minutes),
			zap.Error(err),
		)
		return fmt.Errorf("update site interval: %w", err)
	}
	if notFound(res) {
		return ErrNotFound
	}

	s.logger.Info("site interval updated",
		zap.String("site_id", siteID),
		zap.Int("interval", minutes),
	)

	return nil
}

// DeleteSite removes a site. Its jobs go with it through ON DELETE CASCADE.
func (s *Store) DeleteSite(ctx context.Context, siteID string) error {
	res, err := s.sess.
		DeleteFrom("sites").
		Where("id = ?", siteID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to delete site",
			zap.String("site_id", siteID),
			zap.Error(err),
		)
		return fmt.Errorf("delete site: %w", err)
	}
	if notFound(res) {
		return ErrNotFound
	}

	s.logger.Info("site deleted", zap.String("site_id", siteID))
	return nil
}
