package api

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"careerwatch/internal/models"
)

type createCompanyRequest struct {
	UserID    string   `json:"userId" binding:"required"`
	Name      string   `json:"name"`
	URL       string   `json:"url" binding:"required"`
	CareerURL string   `json:"careerUrl"`
	Keywords  []string `json:"keywords"`
	Priority  string   `json:"priority"`
	Interval  string   `json:"interval"`
}

type priorityRequest struct {
	Priority string `json:"priority" binding:"required"`
}

type intervalRequest struct {
	Interval string `json:"interval" binding:"required"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) createCompany(c *gin.Context) {
	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body: "+err.Error())
		return
	}

	var priority models.Priority
	if req.Priority != "" {
		p, ok := models.ParsePriority(req.Priority)
		if !ok {
			s.badRequest(c, fmt.Sprintf("invalid priority: %s", req.Priority))
			return
		}
		priority = p
	}

	res, err := s.pipeline.Onboard(c.Request.Context(), models.NewSiteInput{
		UserID:    req.UserID,
		Name:      req.Name,
		RootURL:   req.URL,
		CareerURL: req.CareerURL,
		Keywords:  req.Keywords,
		Priority:  priority,
		Interval:  req.Interval,
	})
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			// fetch and extraction failures surface as bad gateway
			status = http.StatusBadGateway
		}
		s.logger.Warn("onboarding failed",
			zap.String("user_id", req.UserID),
			zap.String("url", req.URL),
			zap.Error(err),
		)
		s.fail(c, status, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"company":   res.Site,
		"jobsFound": len(res.Jobs),
		"jobs":      res.Jobs,
	})
}

func (s *Server) listCompanies(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("userId"))
	if userID == "" {
		s.badRequest(c, "userId is required")
		return
	}

	sites, err := s.store.ListSites(c.Request.Context(), userID)
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "companies": sites})
}

func (s *Server) deleteCompany(c *gin.Context) {
	if err := s.store.DeleteSite(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) updateCompanyPriority(c *gin.Context) {
	var req priorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body: "+err.Error())
		return
	}

	priority, ok := models.ParsePriority(req.Priority)
	if !ok {
		s.badRequest(c, fmt.Sprintf("invalid priority: %s", req.Priority))
		return
	}

	if err := s.store.UpdateSitePriority(c.Request.Context(), c.Param("id"), priority); err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "priority": priority})
}

func (s *Server) updateCompanyInterval(c *gin.Context) {
	var req intervalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body: "+err.Error())
		return
	}

	minutes := models.ParseInterval(req.Interval)
	if err := s.store.UpdateSiteInterval(c.Request.Context(), c.Param("id"), minutes); err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "checkInterval": minutes})
}

// recheckCompany checks one site right away, outside its schedule.
func (s *Server) recheckCompany(c *gin.Context) {
	site, err := s.store.GetSite(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}

	jobs, err := s.pipeline.RecheckSite(c.Request.Context(), site)
	if err != nil {
		s.logger.Warn("manual recheck failed",
			zap.String("site_id", site.ID),
			zap.Int("jobs", len(jobs)),
			zap.Error(err),
		)
		s.fail(c, http.StatusBadGateway, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"jobsFound": len(jobs),
		"jobs":      jobs,
	})
}

func (s *Server) listJobs(c *gin.Context) {
	filter := models.JobFilter{
		UserID: strings.TrimSpace(c.Query("userId")),
		SiteID: strings.TrimSpace(c.Query("companyId")),
	}

	if raw := c.Query("status"); raw != "" {
		status, ok := models.ParseJobStatus(raw)
		if !ok {
			s.badRequest(c, fmt.Sprintf("invalid status: %s", raw))
			return
		}
		filter.Status = status
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || limit == 0 {
			s.badRequest(c, fmt.Sprintf("invalid limit: %s", raw))
			return
		}
		filter.Limit = limit
	}

	jobs, err := s.store.ListJobs(c.Request.Context(), filter)
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "jobs": jobs})
}

func (s *Server) updateJobStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body: "+err.Error())
		return
	}

	status, ok := models.ParseJobStatus(req.Status)
	if !ok {
		s.badRequest(c, fmt.Sprintf("invalid status: %s", req.Status))
		return
	}

	if err := s.store.UpdateJobStatus(c.Request.Context(), c.Param("id"), status); err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": status})
}

func (s *Server) deleteJob(c *gin.Context) {
	if err := s.store.DeleteJob(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// cronRecheck is the trigger for external schedulers. It is authorized
// with the shared cron secret before any work starts.
func (s *Server) cronRecheck(c *gin.Context) {
	if !s.authorizedCron(c.GetHeader("Authorization")) {
		s.logger.Warn("unauthorized cron trigger", zap.String("client_ip", c.ClientIP()))
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("unauthorized"))
		return
	}

	summary, err := s.pipeline.RecheckDue(c.Request.Context())
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "summary": summary})
}

func (s *Server) authorizedCron(header string) bool {
	if s.cronSecret == "" {
		return false
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.cronSecret)) == 1
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Error("database health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, errorBody("database unavailable"))
		return
	}

	if s.limiter != nil {
		if err := s.limiter.Ping(ctx); err != nil {
			s.logger.Error("redis health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, errorBody("cache unavailable"))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
}
