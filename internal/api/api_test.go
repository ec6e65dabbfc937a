package api_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"go.uber.org/zap"

	"careerwatch/internal/api"
	"careerwatch/internal/extractor"
	"careerwatch/internal/guard"
	"careerwatch/internal/mocks"
	"careerwatch/internal/models"
	"careerwatch/internal/pipeline"
	"careerwatch/internal/storage/postgres"
)

const cronSecret = "s3cret"

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	store    *mocks.MockAPIStore
	pipeline *mocks.MockPipeline
	limiter  *mocks.MockOnboardLimiter
	handler  http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &fixture{
		store:    mocks.NewMockAPIStore(ctrl),
		pipeline: mocks.NewMockPipeline(ctrl),
		limiter:  mocks.NewMockOnboardLimiter(ctrl),
	}
	f.handler = api.NewServer(f.store, f.pipeline, f.limiter, cronSecret, zap.NewNop()).Handler()
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body any, header http.Header) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	var payload map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, payload
}

func expectFailure(t *testing.T, rec *httptest.ResponseRecorder, payload map[string]any, status int) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	if payload["success"] != false {
		t.Fatalf("expected success=false, got %v", payload["success"])
	}
	if msg, _ := payload["error"].(string); msg == "" {
		t.Fatal("expected an error message")
	}
}

func TestCreateCompany(t *testing.T) {
	f := newFixture(t)

	f.limiter.EXPECT().IncrementOnboardRateLimit(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	f.pipeline.EXPECT().
		Onboard(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, in models.NewSiteInput) (*pipeline.OnboardResult, error) {
			if in.UserID != "user-1" || in.RootURL != "https://acme.com" || in.Priority != models.PriorityHigh {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.Interval != "2 hours" || len(in.Keywords) != 1 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &pipeline.OnboardResult{
				Site: models.Site{ID: "site-1", Name: "Acme", CheckInterval: 120},
				Jobs: []models.Job{{ID: "job-1", Title: "React Engineer"}},
			}, nil
		})

	rec, payload := f.do(t, http.MethodPost, "/companies", map[string]any{
		"userId":   "user-1",
		"url":      "https://acme.com",
		"keywords": []string{"react"},
		"priority": "High",
		"interval": "2 hours",
	}, nil)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if payload["success"] != true || payload["jobsFound"] != float64(1) {
		t.Fatalf("unexpected payload: %v", payload)
	}
	company := payload["company"].(map[string]any)
	if company["id"] != "site-1" || company["checkInterval"] != float64(120) {
		t.Fatalf("unexpected company: %v", company)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected a request id header")
	}
}

func TestCreateCompanyValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing user", map[string]any{"url": "https://acme.com"}},
		{"missing url", map[string]any{"userId": "u"}},
		{"bad priority", map[string]any{"userId": "u", "url": "https://acme.com", "priority": "urgent"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.limiter.EXPECT().IncrementOnboardRateLimit(gomock.Any(), gomock.Any()).Return(int64(1), nil)
			f.pipeline.EXPECT().Onboard(gomock.Any(), gomock.Any()).Times(0)

			rec, payload := f.do(t, http.MethodPost, "/companies", tt.body, nil)
			expectFailure(t, rec, payload, http.StatusBadRequest)
		})
	}
}

func TestCreateCompanyErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		echoed bool
	}{
		{"validation", &guard.ValidationError{Field: "url", Reason: "unsupported scheme"}, http.StatusBadRequest, true},
		{"root unreachable", fmt.Errorf("locate career page: %w", extractor.ErrRootUnreachable), http.StatusBadGateway, true},
		{"other failure", errors.New("start browser: exec not found"), http.StatusBadGateway, false},
		{"database failure", errors.New(`create site: pq: duplicate key value violates unique constraint "sites_pkey"`), http.StatusBadGateway, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.limiter.EXPECT().IncrementOnboardRateLimit(gomock.Any(), gomock.Any()).Return(int64(1), nil)
			f.pipeline.EXPECT().Onboard(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			rec, payload := f.do(t, http.MethodPost, "/companies", map[string]any{
				"userId": "u",
				"url":    "https://acme.com",
			}, nil)
			expectFailure(t, rec, payload, tt.status)

			msg := payload["error"].(string)
			if tt.echoed && msg != tt.err.Error() {
				t.Fatalf("error = %q, want %q", msg, tt.err.Error())
			}
			if !tt.echoed && strings.Contains(msg, tt.err.Error()) {
				t.Fatalf("internal error leaked: %q", msg)
			}
		})
	}
}

func TestCreateCompanyRateLimited(t *testing.T) {
	f := newFixture(t)
	f.limiter.EXPECT().
		IncrementOnboardRateLimit(gomock.Any(), gomock.Any()).
		Return(int64(api.MaxOnboardsPerMinute+1), nil)
	f.pipeline.EXPECT().Onboard(gomock.Any(), gomock.Any()).Times(0)

	rec, payload := f.do(t, http.MethodPost, "/companies", map[string]any{"userId": "u", "url": "https://acme.com"}, nil)
	expectFailure(t, rec, payload, http.StatusTooManyRequests)
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}

func TestCreateCompanyLimiterDownFailsOpen(t *testing.T) {
	f := newFixture(t)
	f.limiter.EXPECT().IncrementOnboardRateLimit(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("redis down"))
	f.pipeline.EXPECT().Onboard(gomock.Any(), gomock.Any()).Return(&pipeline.OnboardResult{Jobs: []models.Job{}}, nil)

	rec, _ := f.do(t, http.MethodPost, "/companies", map[string]any{"userId": "u", "url": "https://acme.com"}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestListCompanies(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().ListSites(gomock.Any(), "user-1").Return([]models.Site{{ID: "a"}, {ID: "b"}}, nil)

	rec, payload := f.do(t, http.MethodGet, "/companies?userId=user-1", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := payload["companies"].([]any); len(got) != 2 {
		t.Fatalf("expected 2 companies, got %d", len(got))
	}

	rec, payload = f.do(t, http.MethodGet, "/companies", nil, nil)
	expectFailure(t, rec, payload, http.StatusBadRequest)
}

func TestDeleteCompany(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().DeleteSite(gomock.Any(), "site-1").Return(nil)
	f.store.EXPECT().DeleteSite(gomock.Any(), "missing").Return(postgres.ErrNotFound)

	rec, payload := f.do(t, http.MethodDelete, "/companies/site-1", nil, nil)
	if rec.Code != http.StatusOK || payload["success"] != true {
		t.Fatalf("unexpected response %d %v", rec.Code, payload)
	}

	rec, payload = f.do(t, http.MethodDelete, "/companies/missing", nil, nil)
	expectFailure(t, rec, payload, http.StatusNotFound)
}

func TestRecheckCompany(t *testing.T) {
	f := newFixture(t)
	site := &models.Site{ID: "site-1", Name: "Acme", Active: true}
	f.store.EXPECT().GetSite(gomock.Any(), "site-1").Return(site, nil)
	f.pipeline.EXPECT().RecheckSite(gomock.Any(), site).Return([]models.Job{{ID: "job-9", Title: "Go Engineer"}}, nil)

	rec, payload := f.do(t, http.MethodPost, "/companies/site-1/recheck", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if payload["success"] != true || payload["jobsFound"] != float64(1) {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestRecheckCompanyNotFound(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().GetSite(gomock.Any(), "missing").Return(nil, postgres.ErrNotFound)
	f.pipeline.EXPECT().RecheckSite(gomock.Any(), gomock.Any()).Times(0)

	rec, payload := f.do(t, http.MethodPost, "/companies/missing/recheck", nil, nil)
	expectFailure(t, rec, payload, http.StatusNotFound)
}

func TestRecheckCompanyFailureIsNotEchoed(t *testing.T) {
	f := newFixture(t)
	site := &models.Site{ID: "site-1"}
	f.store.EXPECT().GetSite(gomock.Any(), "site-1").Return(site, nil)
	f.pipeline.EXPECT().RecheckSite(gomock.Any(), site).Return(nil, errors.New("insert jobs: pq: connection refused"))

	rec, payload := f.do(t, http.MethodPost, "/companies/site-1/recheck", nil, nil)
	expectFailure(t, rec, payload, http.StatusBadGateway)
	if msg := payload["error"].(string); strings.Contains(msg, "pq") {
		t.Fatalf("internal error leaked: %q", msg)
	}
}

func TestUpdateCompanyPriority(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().UpdateSitePriority(gomock.Any(), "site-1", models.PriorityLow).Return(nil)

	rec, payload := f.do(t, http.MethodPut, "/companies/site-1/priority", map[string]string{"priority": "low"}, nil)
	if rec.Code != http.StatusOK || payload["priority"] != "low" {
		t.Fatalf("unexpected response %d %v", rec.Code, payload)
	}

	rec, payload = f.do(t, http.MethodPut, "/companies/site-1/priority", map[string]string{"priority": "asap"}, nil)
	expectFailure(t, rec, payload, http.StatusBadRequest)
}

func TestUpdateCompanyInterval(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().UpdateSiteInterval(gomock.Any(), "site-1", 7*24*60).Return(nil)

	rec, payload := f.do(t, http.MethodPut, "/companies/site-1/interval", map[string]string{"interval": "1 week"}, nil)
	if rec.Code != http.StatusOK || payload["checkInterval"] != float64(7*24*60) {
		t.Fatalf("unexpected response %d %v", rec.Code, payload)
	}
}

func TestListJobs(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().
		ListJobs(gomock.Any(), models.JobFilter{UserID: "user-1", SiteID: "site-1", Status: models.StatusNew, Limit: 20}).
		Return([]models.Job{{ID: "job-1"}}, nil)

	rec, payload := f.do(t, http.MethodGet, "/jobs?userId=user-1&companyId=site-1&status=New&limit=20", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := payload["jobs"].([]any); len(got) != 1 {
		t.Fatalf("expected 1 job, got %d", len(got))
	}

	for _, q := range []string{"status=Unknown", "limit=abc", "limit=0"} {
		rec, payload := f.do(t, http.MethodGet, "/jobs?"+q, nil, nil)
		expectFailure(t, rec, payload, http.StatusBadRequest)
	}
}

func TestUpdateJobStatus(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().UpdateJobStatus(gomock.Any(), "job-1", models.StatusApplied).Return(nil)
	f.store.EXPECT().UpdateJobStatus(gomock.Any(), "job-2", models.StatusSeen).Return(postgres.ErrNotFound)

	rec, _ := f.do(t, http.MethodPut, "/jobs/job-1/status", map[string]string{"status": "Applied"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec, payload := f.do(t, http.MethodPut, "/jobs/job-2/status", map[string]string{"status": "Seen"}, nil)
	expectFailure(t, rec, payload, http.StatusNotFound)

	rec, payload = f.do(t, http.MethodPut, "/jobs/job-1/status", map[string]string{"status": "applied"}, nil)
	expectFailure(t, rec, payload, http.StatusBadRequest)
}

func TestDeleteJob(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().DeleteJob(gomock.Any(), "job-1").Return(errors.New("connection reset"))

	rec, payload := f.do(t, http.MethodDelete, "/jobs/job-1", nil, nil)
	expectFailure(t, rec, payload, http.StatusInternalServerError)
	if payload["error"] != "internal server error" {
		t.Fatalf("internal error leaked: %v", payload["error"])
	}
}

func TestCronRecheckRequiresSecret(t *testing.T) {
	for _, auth := range []string{"", "Bearer wrong", cronSecret, "Basic " + cronSecret} {
		f := newFixture(t)
		f.pipeline.EXPECT().RecheckDue(gomock.Any()).Times(0)

		header := http.Header{}
		if auth != "" {
			header.Set("Authorization", auth)
		}
		rec, payload := f.do(t, http.MethodPost, "/cron/recheck", nil, header)
		expectFailure(t, rec, payload, http.StatusUnauthorized)
	}
}

func TestCronRecheck(t *testing.T) {
	f := newFixture(t)
	f.pipeline.EXPECT().RecheckDue(gomock.Any()).Return(pipeline.RunSummary{
		SitesDue:     2,
		SitesChecked: 2,
		NewJobs:      3,
		Sites:        []pipeline.SiteResult{},
	}, nil)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+cronSecret)
	rec, payload := f.do(t, http.MethodPost, "/cron/recheck", nil, header)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	summary := payload["summary"].(map[string]any)
	if summary["newJobs"] != float64(3) || summary["sitesChecked"] != float64(2) {
		t.Fatalf("unexpected summary: %v", summary)
	}
}

func TestCronRecheckAlreadyRunning(t *testing.T) {
	f := newFixture(t)
	f.pipeline.EXPECT().RecheckDue(gomock.Any()).Return(pipeline.RunSummary{}, pipeline.ErrRunInProgress)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+cronSecret)
	rec, payload := f.do(t, http.MethodPost, "/cron/recheck", nil, header)
	expectFailure(t, rec, payload, http.StatusConflict)
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().Ping(gomock.Any()).Return(nil)
	f.limiter.EXPECT().Ping(gomock.Any()).Return(nil)

	rec, payload := f.do(t, http.MethodGet, "/health", nil, nil)
	if rec.Code != http.StatusOK || payload["status"] != "ok" {
		t.Fatalf("unexpected response %d %v", rec.Code, payload)
	}

	f.store.EXPECT().Ping(gomock.Any()).Return(errors.New("down"))
	rec, payload = f.do(t, http.MethodGet, "/health", nil, nil)
	expectFailure(t, rec, payload, http.StatusServiceUnavailable)
}

func TestRequestIDIsPropagated(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().Ping(gomock.Any()).Return(nil)
	f.limiter.EXPECT().Ping(gomock.Any()).Return(nil)

	header := http.Header{}
	header.Set("X-Request-ID", "req-42")
	rec, _ := f.do(t, http.MethodGet, "/health", nil, header)
	if got := rec.Header().Get("X-Request-ID"); got != "req-42" {
		t.Fatalf("request id = %q, want req-42", got)
	}
}

func TestRecoveryHandlesPanics(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().ListSites(gomock.Any(), "user-1").DoAndReturn(func(_ any, _ string) ([]models.Site, error) {
		panic("boom")
	})

	rec, payload := f.do(t, http.MethodGet, "/companies?userId=user-1", nil, nil)
	expectFailure(t, rec, payload, http.StatusInternalServerError)
}
