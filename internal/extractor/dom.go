package extractor

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"careerwatch/internal/browser"
	"careerwatch/internal/models"
)

const (
	// MinTitleLen is the shortest text accepted as a job title.
	MinTitleLen = 3
	maxTitleLen = 200
)

// jobSelectors picks links whose target looks like a posting plus card-like
// containers whose class or id mentions jobs. Matches come back in document
// order because goquery walks the tree once for the whole group.
var jobSelectors = strings.Join([]string{
	"a[href*='job']",
	"a[href*='position']",
	"a[href*='career']",
	"a[href*='opening']",
	"[class*='job']",
	"[class*='position']",
	"[class*='career']",
	"[class*='opening']",
	"[data-job-id]",
	"[id*='job']",
}, ", ")

// DOMExtractor pulls candidate postings out of a loaded listing page.
type DOMExtractor struct {
	scroll browser.ScrollOptions
	now    func() time.Time
	logger *zap.Logger
}

func NewDOMExtractor(scroll browser.ScrollOptions, logger *zap.Logger) *DOMExtractor {
	return &DOMExtractor{
		scroll: scroll,
		now:    time.Now,
		logger: logger,
	}
}

// Extract scrolls the page until lazy-loaded content settles and then scans
// it for postings. An empty result is not an error.
func (e *DOMExtractor) Extract(ctx context.Context, page browser.Page, keywords []string, company string) ([]models.CandidateJob, error) {
	if _, err := browser.ScrollUntilStable(ctx, page, e.scroll); err != nil {
		// a page that will not scroll can still be parsed as-is
		e.logger.Debug("scrolling stopped early",
			zap.String("url", page.URL()),
			zap.Error(err),
		)
	}

	doc, err := browser.Document(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}

	base, _ := url.Parse(page.URL())
	jobs := ExtractFromDocument(doc, base, keywords, company, e.now())

	e.logger.Debug("dom extraction finished",
		zap.String("url", page.URL()),
		zap.String("company", company),
		zap.Int("candidates", len(jobs)),
	)

	return jobs, nil
}

// ExtractFromDocument is the pure part of Extract, split out so it can run
// against HTML that did not come from a live page.
func ExtractFromDocument(doc *goquery.Document, base *url.URL, keywords []string, company string, now time.Time) []models.CandidateJob {
	var jobs []models.CandidateJob
	seen := make(map[string]bool)

	doc.Find(jobSelectors).Each(func(_ int, s *goquery.Selection) {
		title, href, ok := titleAndHref(s)
		if !ok {
			return
		}

		if utf8.RuneCountInString(title) < MinTitleLen {
			return
		}

		link, ok := resolveLink(base, href)
		if !ok || seen[link] {
			return
		}
		seen[link] = true

		matched := MatchKeywords(title, keywords)
		if !Included(keywords, matched) {
			return
		}

		jobs = append(jobs, models.CandidateJob{
			Title:           truncateRunes(title, maxTitleLen),
			URL:             link,
			Company:         company,
			MatchedKeywords: matched,
			DiscoveredAt:    now,
			Source:          models.SourceDOM,
		})
	})

	return jobs
}

// titleAndHref reads a match. Anchors give their own text and href.
// Containers must hold exactly one distinct link, otherwise they are list
// wrappers rather than cards; their title prefers a heading.
func titleAndHref(s *goquery.Selection) (string, string, bool) {
	if goquery.NodeName(s) == "a" {
		href, ok := s.Attr("href")
		if !ok {
			return "", "", false
		}
		return browser.CollapseSpace(s.Text()), href, true
	}

	links := s.Find("a[href]")
	distinct := make(map[string]bool)
	links.Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		distinct[strings.TrimSpace(href)] = true
	})
	if len(distinct) != 1 {
		return "", "", false
	}

	anchor := links.First()
	href, _ := anchor.Attr("href")

	title := browser.CollapseSpace(s.Find("h1, h2, h3, h4, h5").First().Text())
	if title == "" {
		title = browser.CollapseSpace(anchor.Text())
	}
	if title == "" {
		title = browser.CollapseSpace(s.Text())
	}
	return title, href, true
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n]))
}
