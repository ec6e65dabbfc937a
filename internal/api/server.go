// Package api exposes the pipeline and the stored sites and jobs over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"careerwatch/internal/models"
	"careerwatch/internal/pipeline"
)

// MaxOnboardsPerMinute caps POST /companies per client.
const MaxOnboardsPerMinute = 10

// Store is the read and maintenance side of the persistent store.
type Store interface {
	GetSite(ctx context.Context, siteID string) (*models.Site, error)
	ListSites(ctx context.Context, userID string) ([]models.Site, error)
	DeleteSite(ctx context.Context, siteID string) error
	UpdateSitePriority(ctx context.Context, siteID string, priority models.Priority) error
	UpdateSiteInterval(ctx context.Context, siteID string, minutes int) error
	ListJobs(ctx context.Context, filter models.JobFilter) ([]models.Job, error)
	UpdateJobStatus(ctx context.Context, jobID string, status models.JobStatus) error
	DeleteJob(ctx context.Context, jobID string) error
	Ping(ctx context.Context) error
}

// Pipeline runs onboarding and recheck runs.
type Pipeline interface {
	Onboard(ctx context.Context, in models.NewSiteInput) (*pipeline.OnboardResult, error)
	RecheckDue(ctx context.Context) (pipeline.RunSummary, error)
	RecheckSite(ctx context.Context, site *models.Site) ([]models.Job, error)
}

// OnboardLimiter counts onboarding requests per client in a one minute
// window.
type OnboardLimiter interface {
	IncrementOnboardRateLimit(ctx context.Context, client string) (int64, error)
	Ping(ctx context.Context) error
}

type Server struct {
	store      Store
	pipeline   Pipeline
	limiter    OnboardLimiter
	cronSecret string
	router     *gin.Engine
	logger     *zap.Logger
}

// NewServer builds the router. limiter may be nil, which disables the
// onboarding rate limit.
func NewServer(store Store, p Pipeline, limiter OnboardLimiter, cronSecret string, logger *zap.Logger) *Server {
	s := &Server{
		store:      store,
		pipeline:   p,
		limiter:    limiter,
		cronSecret: cronSecret,
		logger:     logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()

	r.Use(RequestID())
	r.Use(Logger(s.logger))
	r.Use(Recovery(s.logger))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders:    []string{requestIDHeader},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	r.GET("/health", s.health)

	companies := r.Group("/companies")
	{
		companies.POST("", RateLimit(s.limiter, MaxOnboardsPerMinute, s.logger), s.createCompany)
		companies.GET("", s.listCompanies)
		companies.DELETE("/:id", s.deleteCompany)
		companies.PUT("/:id/priority", s.updateCompanyPriority)
		companies.PUT("/:id/interval", s.updateCompanyInterval)
		companies.POST("/:id/recheck", s.recheckCompany)
	}

	jobs := r.Group("/jobs")
	{
		jobs.GET("", s.listJobs)
		jobs.PUT("/:id/status", s.updateJobStatus)
		jobs.DELETE("/:id", s.deleteJob)
	}

	r.POST("/cron/recheck", s.cronRecheck)

	return r
}
