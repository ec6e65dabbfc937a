package extractor

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"careerwatch/internal/browser"
	"careerwatch/internal/models"
)

// DescriptionUnavailable is stored when a posting page could not be loaded.
const DescriptionUnavailable = "Description unavailable (unable to fetch job page)"

const (
	minDescriptionLen  = 100
	maxFallbackBodyLen = 2000
)

var descriptionSelectors = []string{
	"article",
	"main",
	"[class*='description']",
	"[class*='job-description']",
	"[class*='content']",
	"[id*='description']",
	"section",
}

// Enricher visits a posting and pulls out its description and deadline.
type Enricher struct {
	timeout time.Duration
	logger  *zap.Logger
}

func NewEnricher(timeout time.Duration, logger *zap.Logger) *Enricher {
	return &Enricher{timeout: timeout, logger: logger}
}

// Enrich never fails: a page that cannot be loaded yields a placeholder
// description and no deadline.
func (e *Enricher) Enrich(ctx context.Context, page browser.Page, jobURL string) models.JobDetail {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	if err := page.Navigate(ctx, jobURL); err != nil {
		e.logger.Warn("failed to load job page",
			zap.String("url", jobURL),
			zap.Error(err),
		)
		return models.JobDetail{Description: DescriptionUnavailable}
	}

	doc, err := browser.Document(ctx, page)
	if err != nil {
		e.logger.Warn("failed to read job page",
			zap.String("url", jobURL),
			zap.Error(err),
		)
		return models.JobDetail{Description: DescriptionUnavailable}
	}

	return DetailFromDocument(doc)
}

// DetailFromDocument extracts description and deadline from a parsed page.
func DetailFromDocument(doc *goquery.Document) models.JobDetail {
	body := browser.VisibleText(doc)
	return models.JobDetail{
		Description: description(doc, body),
		Deadline:    ParseDeadline(body),
	}
}

func description(doc *goquery.Document, body string) string {
	for _, sel := range descriptionSelectors {
		var found string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := visibleSelectionText(s)
			if utf8.RuneCountInString(text) > minDescriptionLen {
				found = text
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return truncateRunes(body, maxFallbackBodyLen)
}

func visibleSelectionText(s *goquery.Selection) string {
	c := s.Clone()
	c.Find("script, style, noscript, template").Remove()
	return browser.CollapseSpace(c.Text())
}
