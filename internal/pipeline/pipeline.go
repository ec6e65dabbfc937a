// Package pipeline ties the extraction tiers to storage. It onboards new
// sites and rechecks known ones, persisting only postings whose URL has not
// been seen for that site before.
package pipeline

import (
	"context"
	"errors"
	"time"

	"careerwatch/internal/browser"
	"careerwatch/internal/models"
)

// ErrRunInProgress is returned when another recheck run holds the lock.
var ErrRunInProgress = errors.New("recheck run already in progress")

// Store is the part of the persistent store the pipeline needs.
type Store interface {
	CreateSite(ctx context.Context, site *models.Site) error
	GetDueSites(ctx context.Context, limit int) ([]models.Site, error)
	UpdateLastChecked(ctx context.Context, siteID string, at time.Time) error
	GetJobURLs(ctx context.Context, siteID string) (map[string]struct{}, error)
	InsertJobs(ctx context.Context, jobs []models.Job) ([]models.Job, error)
}

// Locker keeps recheck runs from overlapping.
type Locker interface {
	AcquireRecheckLock(ctx context.Context, ttl time.Duration) (string, bool, error)
	ReleaseRecheckLock(ctx context.Context, token string) error
}

// Publisher announces jobs that were just stored.
type Publisher interface {
	PublishJobs(ctx context.Context, site *models.Site, jobs []models.Job) error
}

// AIExtractor is the fallback tier. It must not fail; it returns an empty
// slice instead.
type AIExtractor interface {
	Extract(ctx context.Context, content string, keywords []string, careerURL, company string) []models.CandidateJob
}

// BrowserFactory starts a browser for one run.
type BrowserFactory func(ctx context.Context) (browser.Browser, error)

type Config struct {
	MaxSitesPerRun    int
	MaxOnboardJobs    int
	MaxNewJobsPerSite int
	RunBudget         time.Duration
	NavigateTimeout   time.Duration
}

// SiteResult is the outcome of checking one site.
type SiteResult struct {
	SiteID  string `json:"companyId"`
	NewJobs int    `json:"newJobs"`
	Error   string `json:"error,omitempty"`
}

// RunSummary describes one recheck run.
type RunSummary struct {
	SitesDue     int           `json:"sitesDue"`
	SitesChecked int           `json:"sitesChecked"`
	SitesFailed  int           `json:"sitesFailed"`
	NewJobs      int           `json:"newJobs"`
	Duration     time.Duration `json:"-"`
	DurationMS   int64         `json:"durationMs"`
	Sites        []SiteResult  `json:"sites"`
}

// OnboardResult is returned for a newly added site.
type OnboardResult struct {
	Site models.Site  `json:"company"`
	Jobs []models.Job `json:"jobs"`
}

// FilterNew returns the candidates whose URL is not in existing, in input
// order. A URL repeated within candidates is kept once.
func FilterNew(candidates []models.CandidateJob, existing map[string]struct{}) []models.CandidateJob {
	fresh := make([]models.CandidateJob, 0, len(candidates))
	taken := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if _, ok := existing[c.URL]; ok {
			continue
		}
		if _, ok := taken[c.URL]; ok {
			continue
		}
		taken[c.URL] = struct{}{}
		fresh = append(fresh, c)
	}
	return fresh
}
