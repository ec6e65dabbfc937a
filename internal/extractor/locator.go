package extractor

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	"careerwatch/internal/browser"
)

// ErrRootUnreachable means the site's root URL could not be loaded at all.
var ErrRootUnreachable = errors.New("root url unreachable")

// careerPaths are probed in this order when the root page does not look
// like a listing itself.
var careerPaths = []string{
	"/careers",
	"/jobs",
	"/employment",
	"/work-with-us",
	"/job-openings",
	"/opportunities",
}

var jobSignal = regexp.MustCompile(`(?i)\b(?:jobs?|careers?|employment|opportunit(?:y|ies))\b`)

// minProbeContent is the visible text length a probed path needs before we
// believe it is a real page and not a soft 404.
const minProbeContent = 500

// Locator guesses the job-listing page for a site. The result is best
// effort: when nothing matches, root + "/careers" is returned unverified.
type Locator struct {
	probeTimeout time.Duration
	logger       *zap.Logger
}

func NewLocator(probeTimeout time.Duration, logger *zap.Logger) *Locator {
	return &Locator{probeTimeout: probeTimeout, logger: logger}
}

// Locate loads rootURL on page and returns the most likely listing URL.
// Only a failure to load the root itself is returned as an error.
func (l *Locator) Locate(ctx context.Context, page browser.Page, rootURL string) (string, error) {
	root, err := NormalizeRootURL(rootURL)
	if err != nil {
		return "", err
	}

	rootCtx, cancel := context.WithTimeout(ctx, l.probeTimeout)
	err = page.Navigate(rootCtx, root)
	cancel()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRootUnreachable, err)
	}

	if text, err := l.visibleText(ctx, page); err == nil && jobSignal.MatchString(text) {
		l.logger.Debug("root page looks like a job listing", zap.String("url", root))
		return root, nil
	}

	for _, path := range careerPaths {
		candidate := root + path
		if l.probe(ctx, page, candidate) {
			l.logger.Info("career page located",
				zap.String("root", root),
				zap.String("career_url", candidate),
			)
			return candidate, nil
		}
	}

	fallback := root + careerPaths[0]
	l.logger.Info("no career page confirmed, using default",
		zap.String("root", root),
		zap.String("career_url", fallback),
	)
	return fallback, nil
}

// probe loads candidate under its own timeout. Any failure is logged and
// treated as "not this one".
func (l *Locator) probe(ctx context.Context, page browser.Page, candidate string) bool {
	probeCtx, cancel := context.WithTimeout(ctx, l.probeTimeout)
	defer cancel()

	if err := page.Navigate(probeCtx, candidate); err != nil {
		l.logger.Debug("career path probe failed",
			zap.String("url", candidate),
			zap.Error(err),
		)
		return false
	}

	text, err := l.visibleText(probeCtx, page)
	if err != nil {
		l.logger.Debug("career path unreadable",
			zap.String("url", candidate),
			zap.Error(err),
		)
		return false
	}

	return len(text) >= minProbeContent && jobSignal.MatchString(text)
}

func (l *Locator) visibleText(ctx context.Context, page browser.Page) (string, error) {
	doc, err := browser.Document(ctx, page)
	if err != nil {
		return "", err
	}
	return browser.VisibleText(doc), nil
}
