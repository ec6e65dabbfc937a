package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"careerwatch/internal/browser"
	"careerwatch/internal/extractor"
	"careerwatch/internal/guard"
	"careerwatch/internal/models"
	"careerwatch/internal/retry"
)

// Deps are the collaborators of an Orchestrator. Locker and Publisher may
// be nil.
type Deps struct {
	Store      Store
	Locker     Locker
	Publisher  Publisher
	NewBrowser BrowserFactory
	Locator    *extractor.Locator
	DOM        *extractor.DOMExtractor
	Enricher   *extractor.Enricher
	AI         AIExtractor
}

// Orchestrator runs the extraction tiers for one site at a time.
type Orchestrator struct {
	deps   Deps
	gate   *Gate
	cfg    Config
	retry  retry.Policy
	now    func() time.Time
	logger *zap.Logger
}

func New(deps Deps, cfg Config, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		deps:   deps,
		gate:   NewGate(deps.Store, retry.Default, logger),
		cfg:    cfg,
		retry:  retry.Default,
		now:    time.Now,
		logger: logger,
	}
}

// Onboard registers a new site and runs its first extraction. The career
// URL is located unless the input overrides it. Once the site is stored,
// a failing first extraction no longer fails onboarding: the site is
// returned with whatever jobs were stored and the next recheck retries.
func (o *Orchestrator) Onboard(ctx context.Context, in models.NewSiteInput) (*OnboardResult, error) {
	site, err := o.newSite(in)
	if err != nil {
		return nil, err
	}

	b, err := o.deps.NewBrowser(ctx)
	if err != nil {
		return nil, fmt.Errorf("start browser: %w", err)
	}
	defer o.closeBrowser(b)

	page, err := b.NewPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	if site.CareerURL == "" {
		careerURL, err := o.deps.Locator.Locate(ctx, page, site.RootURL)
		if err != nil {
			o.logger.Warn("failed to locate career page",
				zap.String("root_url", site.RootURL),
				zap.Error(err),
			)
			return nil, fmt.Errorf("locate career page: %w", err)
		}
		site.CareerURL = careerURL
	}

	if err := o.deps.Store.CreateSite(ctx, site); err != nil {
		return nil, fmt.Errorf("create site: %w", err)
	}

	jobs, err := o.processSite(ctx, page, site, o.cfg.MaxOnboardJobs)
	if err != nil {
		o.logger.Warn("first extraction incomplete",
			zap.String("site_id", site.ID),
			zap.Int("jobs", len(jobs)),
			zap.Error(err),
		)
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	o.logger.Info("site onboarded",
		zap.String("site_id", site.ID),
		zap.String("career_url", site.CareerURL),
		zap.Int("jobs", len(jobs)),
	)

	return &OnboardResult{Site: *site, Jobs: jobs}, nil
}

func (o *Orchestrator) newSite(in models.NewSiteInput) (*models.Site, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, &guard.ValidationError{Field: "userId", Reason: "required"}
	}

	root, err := extractor.NormalizeRootURL(in.RootURL)
	if err != nil {
		return nil, &guard.ValidationError{Field: "url", Reason: err.Error()}
	}

	var careerURL string
	if strings.TrimSpace(in.CareerURL) != "" {
		careerURL = strings.TrimSpace(in.CareerURL)
		if !extractor.IsAbsoluteHTTP(careerURL) {
			return nil, &guard.ValidationError{Field: "careerUrl", Reason: "must be an absolute http(s) url"}
		}
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		if u, err := url.Parse(root); err == nil {
			name = strings.TrimPrefix(u.Hostname(), "www.")
		}
	}

	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	return &models.Site{
		UserID:        strings.TrimSpace(in.UserID),
		Name:          name,
		RootURL:       root,
		CareerURL:     careerURL,
		Keywords:      models.NormalizeKeywords(in.Keywords),
		Priority:      priority,
		CheckInterval: models.ParseInterval(in.Interval),
		Active:        true,
		CreatedAt:     o.now(),
	}, nil
}

// RecheckDue checks every due site, one after another, within the run
// budget. Per-site failures are counted and never stop the run.
func (o *Orchestrator) RecheckDue(ctx context.Context) (RunSummary, error) {
	started := o.now()
	summary := RunSummary{Sites: []SiteResult{}}

	if o.deps.Locker != nil {
		token, ok, err := o.deps.Locker.AcquireRecheckLock(ctx, o.cfg.RunBudget)
		if err != nil {
			return summary, fmt.Errorf("acquire recheck lock: %w", err)
		}
		if !ok {
			return summary, ErrRunInProgress
		}
		defer func() {
			releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := o.deps.Locker.ReleaseRecheckLock(releaseCtx, token); err != nil {
				o.logger.Error("failed to release recheck lock", zap.Error(err))
			}
		}()
	}

	if o.cfg.RunBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.RunBudget)
		defer cancel()
	}

	sites, err := o.deps.Store.GetDueSites(ctx, o.cfg.MaxSitesPerRun)
	if err != nil {
		return summary, fmt.Errorf("load due sites: %w", err)
	}
	summary.SitesDue = len(sites)

	if len(sites) == 0 {
		o.logger.Debug("no sites due")
		return o.finish(summary, started), nil
	}

	o.logger.Info("recheck run started", zap.Int("sites", len(sites)))

	b, err := o.deps.NewBrowser(ctx)
	if err != nil {
		return summary, fmt.Errorf("start browser: %w", err)
	}
	defer o.closeBrowser(b)

	for i := range sites {
		if ctx.Err() != nil {
			o.logger.Warn("run budget exhausted",
				zap.Int("checked", summary.SitesChecked),
				zap.Int("remaining", len(sites)-i),
			)
			break
		}

		site := &sites[i]
		res := o.recheckWith(ctx, b, site)

		summary.SitesChecked++
		summary.NewJobs += res.NewJobs
		if res.Error != "" {
			summary.SitesFailed++
		}
		summary.Sites = append(summary.Sites, res)
	}

	summary = o.finish(summary, started)
	o.logger.Info("recheck run finished",
		zap.Int("checked", summary.SitesChecked),
		zap.Int("failed", summary.SitesFailed),
		zap.Int("new_jobs", summary.NewJobs),
		zap.Duration("duration", summary.Duration),
	)

	return summary, nil
}

// RecheckSite checks a single site with a browser of its own.
func (o *Orchestrator) RecheckSite(ctx context.Context, site *models.Site) ([]models.Job, error) {
	b, err := o.deps.NewBrowser(ctx)
	if err != nil {
		return nil, fmt.Errorf("start browser: %w", err)
	}
	defer o.closeBrowser(b)

	page, err := b.NewPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	return o.processSite(ctx, page, site, o.cfg.MaxNewJobsPerSite)
}

func (o *Orchestrator) recheckWith(ctx context.Context, b browser.Browser, site *models.Site) SiteResult {
	res := SiteResult{SiteID: site.ID}

	page, err := b.NewPage(ctx)
	if err != nil {
		res.Error = fmt.Sprintf("open page: %v", err)
		return res
	}
	defer page.Close()

	jobs, err := o.processSite(ctx, page, site, o.cfg.MaxNewJobsPerSite)
	res.NewJobs = len(jobs)
	if err != nil {
		o.logger.Error("site check failed",
			zap.String("site_id", site.ID),
			zap.String("career_url", site.CareerURL),
			zap.Error(err),
		)
		res.Error = err.Error()

		// a dead career page waits out its interval like any other check
		var loadErr *careerPageError
		if errors.As(err, &loadErr) {
			if err := o.gate.Touch(ctx, site); err != nil {
				o.logger.Error("failed to mark site checked",
					zap.String("site_id", site.ID),
					zap.Error(err),
				)
			}
		}
	}
	return res
}

type careerPageError struct {
	url string
	err error
}

func (e *careerPageError) Error() string {
	return fmt.Sprintf("load career page %s: %v", e.url, e.err)
}

func (e *careerPageError) Unwrap() error { return e.err }

// processSite runs extraction, dedup, enrichment and persistence for one
// site on page. At most limit new jobs are stored. Jobs that were stored
// are returned and published even when a later step fails.
func (o *Orchestrator) processSite(ctx context.Context, page browser.Page, site *models.Site, limit int) ([]models.Job, error) {
	navCtx, cancel := o.navigateContext(ctx)
	err := page.Navigate(navCtx, site.CareerURL)
	cancel()
	if err != nil {
		return nil, &careerPageError{url: site.CareerURL, err: err}
	}

	candidates, err := o.deps.DOM.Extract(ctx, page, site.Keywords, site.Name)
	if err != nil {
		o.logger.Warn("dom extraction failed",
			zap.String("site_id", site.ID),
			zap.Error(err),
		)
		candidates = nil
	}

	if len(candidates) == 0 && o.deps.AI != nil {
		if content, err := page.HTML(ctx); err == nil {
			candidates = o.deps.AI.Extract(ctx, content, site.Keywords, site.CareerURL, site.Name)
		}
	}

	existing, err := o.gate.Existing(ctx, site.ID)
	if err != nil {
		return nil, err
	}

	fresh := FilterNew(candidates, existing)
	if limit > 0 && len(fresh) > limit {
		fresh = fresh[:limit]
	}

	records := make([]map[string]any, 0, len(fresh))
	for _, c := range fresh {
		records = append(records, guard.FromCandidate(site, c, o.enrich(ctx, page, site, c)))
	}

	inserted, err := o.gate.Persist(ctx, site, records)
	o.publish(ctx, site, inserted)
	if err != nil {
		return inserted, err
	}

	o.logger.Info("site checked",
		zap.String("site_id", site.ID),
		zap.Int("candidates", len(candidates)),
		zap.Int("new", len(fresh)),
		zap.Int("inserted", len(inserted)),
	)

	return inserted, nil
}

// enrich visits the job page. AI candidates that only point back at the
// listing page keep the model's description.
func (o *Orchestrator) enrich(ctx context.Context, page browser.Page, site *models.Site, c models.CandidateJob) models.JobDetail {
	if c.Source == models.SourceAI && c.URL == site.CareerURL {
		return models.JobDetail{Description: c.Description}
	}
	return o.deps.Enricher.Enrich(ctx, page, c.URL)
}

func (o *Orchestrator) publish(ctx context.Context, site *models.Site, jobs []models.Job) {
	if o.deps.Publisher == nil || len(jobs) == 0 {
		return
	}

	err := retry.Do(ctx, o.retry, func(ctx context.Context) error {
		return o.deps.Publisher.PublishJobs(ctx, site, jobs)
	})
	if err != nil {
		o.logger.Error("failed to publish new jobs",
			zap.String("site_id", site.ID),
			zap.Int("count", len(jobs)),
			zap.Error(err),
		)
	}
}

func (o *Orchestrator) navigateContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.cfg.NavigateTimeout > 0 {
		return context.WithTimeout(ctx, o.cfg.NavigateTimeout)
	}
	return context.WithCancel(ctx)
}

func (o *Orchestrator) closeBrowser(b browser.Browser) {
	if err := b.Close(); err != nil {
		o.logger.Warn("failed to close browser", zap.Error(err))
	}
}

func (o *Orchestrator) finish(summary RunSummary, started time.Time) RunSummary {
	summary.Duration = o.now().Sub(started)
	summary.DurationMS = summary.Duration.Milliseconds()
	return summary
}
