package extractor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"careerwatch/internal/browser"
	"careerwatch/internal/models"
)

const acmeListing = `<html><body>
<h1>Open roles</h1>
<ul>
  <li><a href="/jobs/1">Software Engineer - React</a></li>
  <li><a href="/careers/2">Senior Frontend Developer</a></li>
  <li><a href="/positions/3">Backend Engineer</a></li>
  <li><a href="https://boards.example.com/job/4#apply">Data Analyst</a></li>
  <li><a href="/openings/5">Product Designer</a></li>
  <li><a href="/jobs/1">Duplicate of the first</a></li>
  <li><a href="/jobs/6">Go</a></li>
  <li><a href="javascript:void(0)" class="job-link">Broken link</a></li>
  <li><a href="/about">About us</a></li>
</ul>
</body></html>`

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func acmeBase(t *testing.T) *url.URL {
	t.Helper()
	u, err := url.Parse("https://acme.com/careers")
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestExtractFromDocumentWithKeywords(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	jobs := ExtractFromDocument(mustDoc(t, acmeListing), acmeBase(t), []string{"react", "frontend"}, "Acme", now)

	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d: %+v", len(jobs), jobs)
	}

	want := []struct {
		title   string
		url     string
		matched []string
	}{
		{"Software Engineer - React", "https://acme.com/jobs/1", []string{"react"}},
		{"Senior Frontend Developer", "https://acme.com/careers/2", []string{"frontend"}},
	}
	for i, w := range want {
		got := jobs[i]
		if got.Title != w.title || got.URL != w.url {
			t.Errorf("job %d = %q %q, want %q %q", i, got.Title, got.URL, w.title, w.url)
		}
		if !reflect.DeepEqual(got.MatchedKeywords, w.matched) {
			t.Errorf("job %d matched = %v, want %v", i, got.MatchedKeywords, w.matched)
		}
		if got.Company != "Acme" || got.Source != models.SourceDOM || !got.DiscoveredAt.Equal(now) {
			t.Errorf("job %d has unexpected metadata: %+v", i, got)
		}
	}
}

func TestExtractFromDocumentWithoutKeywords(t *testing.T) {
	jobs := ExtractFromDocument(mustDoc(t, acmeListing), acmeBase(t), nil, "Acme", time.Now())

	wantURLs := []string{
		"https://acme.com/jobs/1",
		"https://acme.com/careers/2",
		"https://acme.com/positions/3",
		"https://boards.example.com/job/4",
		"https://acme.com/openings/5",
	}
	if len(jobs) != len(wantURLs) {
		t.Fatalf("expected %d jobs, got %d: %+v", len(wantURLs), len(jobs), jobs)
	}
	for i, u := range wantURLs {
		if jobs[i].URL != u {
			t.Errorf("job %d url = %q, want %q", i, jobs[i].URL, u)
		}
		if jobs[i].MatchedKeywords == nil || len(jobs[i].MatchedKeywords) != 0 {
			t.Errorf("job %d should carry an empty keyword list, got %v", i, jobs[i].MatchedKeywords)
		}
	}
}

func TestExtractFromDocumentCards(t *testing.T) {
	html := `<html><body>
<div class="job-card"><h3>Staff React Engineer</h3><p>Remote</p><a href="/jobs/10">Apply</a></div>
<div class="job-card"><a href="/jobs/11"><span>Frontend Lead</span></a></div>
<div class="job-list">
  <a href="/x/1">One listing</a>
  <a href="/x/2">Another listing</a>
</div>
</body></html>`

	jobs := ExtractFromDocument(mustDoc(t, html), acmeBase(t), []string{"React", "frontend"}, "Acme", time.Now())
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d: %+v", len(jobs), jobs)
	}
	if jobs[0].Title != "Staff React Engineer" || jobs[0].URL != "https://acme.com/jobs/10" {
		t.Errorf("unexpected first card: %+v", jobs[0])
	}
	if jobs[1].Title != "Frontend Lead" || jobs[1].URL != "https://acme.com/jobs/11" {
		t.Errorf("unexpected second card: %+v", jobs[1])
	}
}

func TestExtractFromDocumentTruncatesTitle(t *testing.T) {
	long := strings.Repeat("x", 300)
	html := `<a href="/jobs/1">` + long + `</a>`
	jobs := ExtractFromDocument(mustDoc(t, html), acmeBase(t), nil, "Acme", time.Now())
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	if n := len([]rune(jobs[0].Title)); n != maxTitleLen {
		t.Fatalf("title length = %d, want %d", n, maxTitleLen)
	}
}

func TestMatchKeywords(t *testing.T) {
	cases := []struct {
		title    string
		keywords []string
		want     []string
	}{
		{"Senior React Developer", []string{"react", "senior"}, []string{"react", "senior"}},
		{"Senior React Developer", []string{"REACT", "react"}, []string{"react"}},
		{"Reactive Systems Engineer", []string{"react"}, []string{}},
		{"Machine Learning Engineer", []string{"machine learning"}, []string{"machine learning"}},
		{"C++ Developer", []string{"c++"}, []string{"c++"}},
		{"Anything", nil, []string{}},
	}
	for _, c := range cases {
		got := MatchKeywords(c.title, c.keywords)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("MatchKeywords(%q, %v) = %v, want %v", c.title, c.keywords, got, c.want)
		}
	}
}

func TestIncluded(t *testing.T) {
	if !Included(nil, nil) {
		t.Error("empty keyword list should include everything")
	}
	if Included([]string{"go"}, []string{}) {
		t.Error("no match should be excluded")
	}
	if !Included([]string{"go"}, []string{"go"}) {
		t.Error("a match should be included")
	}
}

func TestNormalizeRootURL(t *testing.T) {
	cases := map[string]string{
		"acme.com":                  "https://acme.com",
		"https://acme.com/":         "https://acme.com",
		"http://acme.com/about/#x":  "http://acme.com/about",
		"  https://Acme.com/jobs  ": "https://Acme.com/jobs",
	}
	for in, want := range cases {
		got, err := NormalizeRootURL(in)
		if err != nil {
			t.Errorf("NormalizeRootURL(%q) error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("NormalizeRootURL(%q) = %q, want %q", in, got, want)
		}
	}

	for _, bad := range []string{"", "ftp://acme.com", "https://"} {
		if _, err := NormalizeRootURL(bad); err == nil {
			t.Errorf("NormalizeRootURL(%q) should fail", bad)
		}
	}
}

func TestParseDeadline(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Application deadline: 3/15/2026. Apply soon.", "2026-03-15"},
		{"Closing date 2026-04-01", "2026-04-01"},
		{"Applications close: April 30, 2026", "2026-04-30"},
		{"APPLY BY May 1 2026", "2026-05-01"},
		{"Deadline: 13/45/2026 or Deadline: 2026-06-30", "2026-06-30"},
	}
	for _, c := range cases {
		got := ParseDeadline(c.text)
		if got == nil {
			t.Errorf("ParseDeadline(%q) = nil, want %s", c.text, c.want)
			continue
		}
		if got.Format("2006-01-02") != c.want {
			t.Errorf("ParseDeadline(%q) = %s, want %s", c.text, got.Format("2006-01-02"), c.want)
		}
	}

	for _, text := range []string{"", "We hire all year round.", "Deadline: soon"} {
		if got := ParseDeadline(text); got != nil {
			t.Errorf("ParseDeadline(%q) = %v, want nil", text, got)
		}
	}
}

func TestDetailFromDocument(t *testing.T) {
	body := strings.Repeat("Build great things with us. ", 10)
	html := `<html><body><nav>Home</nav><main><h1>Frontend Engineer</h1><p>` + body +
		`</p><p>Apply by 12/31/2026</p></main></body></html>`

	detail := DetailFromDocument(mustDoc(t, html))
	if !strings.HasPrefix(detail.Description, "Frontend Engineer Build great things") {
		t.Errorf("unexpected description: %q", detail.Description)
	}
	if detail.Deadline == nil || detail.Deadline.Format("2006-01-02") != "2026-12-31" {
		t.Errorf("unexpected deadline: %v", detail.Deadline)
	}
}

func TestDetailFromDocumentFallsBackToBody(t *testing.T) {
	html := `<html><body><main>short</main><div>` + strings.Repeat("y", 3000) + `</div></body></html>`

	detail := DetailFromDocument(mustDoc(t, html))
	if n := len([]rune(detail.Description)); n != maxFallbackBodyLen {
		t.Errorf("fallback description length = %d, want %d", n, maxFallbackBodyLen)
	}
	if detail.Deadline != nil {
		t.Errorf("expected no deadline, got %v", detail.Deadline)
	}
}

func TestEnrichUnreachablePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	page, _ := browser.NewStaticWithClient(srv.Client(), zap.NewNop()).NewPage(context.Background())
	detail := NewEnricher(time.Second, zap.NewNop()).Enrich(context.Background(), page, srv.URL+"/jobs/1")

	if detail.Description != DescriptionUnavailable {
		t.Errorf("unexpected description: %q", detail.Description)
	}
	if detail.Deadline != nil {
		t.Errorf("expected nil deadline, got %v", detail.Deadline)
	}
}

func TestDOMExtractorExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(acmeListing))
	}))
	defer srv.Close()

	page, _ := browser.NewStaticWithClient(srv.Client(), zap.NewNop()).NewPage(context.Background())
	if err := page.Navigate(context.Background(), srv.URL+"/careers"); err != nil {
		t.Fatalf("Navigate error: %v", err)
	}

	ex := NewDOMExtractor(browser.DefaultScrollOptions(), zap.NewNop())
	jobs, err := ex.Extract(context.Background(), page, []string{"react"}, "Acme")
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if len(jobs) != 1 || jobs[0].URL != srv.URL+"/jobs/1" {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}
}

// siteServer serves a root page and a fixed set of extra paths. Every other
// path is a 404.
func siteServer(root string, pages map[string]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" || r.URL.Path == "" {
			w.Write([]byte(root))
			return
		}
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(body))
	}))
}

func locate(t *testing.T, srv *httptest.Server, root string) (string, error) {
	t.Helper()
	page, _ := browser.NewStaticWithClient(srv.Client(), zap.NewNop()).NewPage(context.Background())
	return NewLocator(time.Second, zap.NewNop()).Locate(context.Background(), page, root)
}

func TestLocateRootLooksLikeListing(t *testing.T) {
	srv := siteServer(`<html><body>See our open jobs below</body></html>`, nil)
	defer srv.Close()

	got, err := locate(t, srv, srv.URL+"/")
	if err != nil {
		t.Fatalf("Locate error: %v", err)
	}
	if got != srv.URL {
		t.Fatalf("Locate = %q, want root %q", got, srv.URL)
	}
}

func TestLocateProbesCareerPaths(t *testing.T) {
	longText := strings.Repeat("We are growing fast and love great engineers. ", 20)
	srv := siteServer(`<html><body>Welcome to Acme</body></html>`, map[string]string{
		// too short to count even though it mentions careers
		"/careers": `<html><body>Careers coming soon</body></html>`,
		"/jobs":    `<html><body><h1>Open jobs</h1><p>` + longText + `</p></body></html>`,
	})
	defer srv.Close()

	got, err := locate(t, srv, srv.URL)
	if err != nil {
		t.Fatalf("Locate error: %v", err)
	}
	if got != srv.URL+"/jobs" {
		t.Fatalf("Locate = %q, want %q", got, srv.URL+"/jobs")
	}
}

func TestLocateFallsBackToCareers(t *testing.T) {
	srv := siteServer(`<html><body>Welcome to Acme</body></html>`, nil)
	defer srv.Close()

	got, err := locate(t, srv, srv.URL)
	if err != nil {
		t.Fatalf("Locate error: %v", err)
	}
	if got != srv.URL+"/careers" {
		t.Fatalf("Locate = %q, want fallback", got)
	}
}

func TestLocateRootUnreachable(t *testing.T) {
	srv := siteServer("", nil)
	srv.Close()

	_, err := locate(t, srv, srv.URL)
	if !errors.Is(err, ErrRootUnreachable) {
		t.Fatalf("expected ErrRootUnreachable, got %v", err)
	}
}

// stallingPage records the deadline it was navigated under and never loads.
type stallingPage struct {
	hadDeadline bool
	remaining   time.Duration
}

func (p *stallingPage) Navigate(ctx context.Context, rawURL string) error {
	if deadline, ok := ctx.Deadline(); ok {
		p.hadDeadline = true
		p.remaining = time.Until(deadline)
	}
	return errors.New("connection stalled")
}

func (p *stallingPage) URL() string { return "" }
func (p *stallingPage) HTML(ctx context.Context) (string, error) { return "", nil }
func (p *stallingPage) ScrollToBottom(ctx context.Context) error { return nil }
func (p *stallingPage) Count(ctx context.Context, selector string) (int, error) {
	return 0, nil
}
func (p *stallingPage) Close() error { return nil }

func TestLocateRootNavigationIsBounded(t *testing.T) {
	page := &stallingPage{}

	_, err := NewLocator(2*time.Second, zap.NewNop()).Locate(context.Background(), page, "https://acme.example.com")
	if !errors.Is(err, ErrRootUnreachable) {
		t.Fatalf("expected ErrRootUnreachable, got %v", err)
	}
	if !page.hadDeadline {
		t.Fatal("root navigation ran without a deadline")
	}
	if page.remaining > 2*time.Second {
		t.Fatalf("root deadline %v exceeds the locator timeout", page.remaining)
	}
}
