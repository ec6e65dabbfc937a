// Package browser loads career pages for the extraction pipeline. Two
// backends exist: a static one that fetches HTML over plain HTTP and a
// headless Chrome one for pages that render their listings with JavaScript.
package browser

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrScrollUnsupported is returned by pages that cannot scroll (static HTML).
var ErrScrollUnsupported = errors.New("scrolling not supported")

// Page is a single tab. It is not safe for concurrent use.
type Page interface {
	// Navigate loads rawURL. Non-2xx responses are errors where the backend
	// can see the status code.
	Navigate(ctx context.Context, rawURL string) error
	// URL returns the URL of the loaded document after redirects.
	URL() string
	// HTML returns the current rendered document.
	HTML(ctx context.Context) (string, error)
	// ScrollToBottom scrolls the viewport to the end of the document.
	ScrollToBottom(ctx context.Context) error
	// Count returns how many elements match a CSS selector.
	Count(ctx context.Context, selector string) (int, error)
	Close() error
}

// Browser hands out pages. One Browser is shared by a whole run and closed
// once at the end of it.
type Browser interface {
	NewPage(ctx context.Context) (Page, error)
	Close() error
}

// Document parses the page's current HTML with goquery.
func Document(ctx context.Context, p Page) (*goquery.Document, error) {
	html, err := p.HTML(ctx)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// VisibleText returns the whitespace-collapsed text of the body with
// scripts, styles and noscript blocks removed.
func VisibleText(doc *goquery.Document) string {
	body := doc.Find("body")
	if body.Length() == 0 {
		body = doc.Selection
	}
	body = body.Clone()
	body.Find("script, style, noscript, template").Remove()
	return CollapseSpace(body.Text())
}

// CollapseSpace folds every whitespace run into a single space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type ScrollOptions struct {
	Selector    string        // elements whose count signals growth
	StablePolls int           // consecutive polls without growth before stopping
	MaxAttempts int           // hard ceiling on scroll iterations
	Pause       time.Duration // wait after each scroll for lazy content
}

func DefaultScrollOptions() ScrollOptions {
	return ScrollOptions{
		Selector:    "a, li, article, [class*='job']",
		StablePolls: 3,
		MaxAttempts: 20,
		Pause:       750 * time.Millisecond,
	}
}

// ScrollUntilStable scrolls p to the bottom repeatedly until the element
// count stops growing for opts.StablePolls polls or opts.MaxAttempts is
// reached. It returns the last observed count.
func ScrollUntilStable(ctx context.Context, p Page, opts ScrollOptions) (int, error) {
	count, err := p.Count(ctx, opts.Selector)
	if err != nil {
		return 0, err
	}

	stable := 0
	for attempt := 0; attempt < opts.MaxAttempts && stable < opts.StablePolls; attempt++ {
		if err := p.ScrollToBottom(ctx); err != nil {
			if errors.Is(err, ErrScrollUnsupported) {
				return count, nil
			}
			return count, err
		}

		if opts.Pause > 0 {
			select {
			case <-ctx.Done():
				return count, ctx.Err()
			case <-time.After(opts.Pause):
			}
		}

		n, err := p.Count(ctx, opts.Selector)
		if err != nil {
			return count, err
		}

		if n > count {
			count = n
			stable = 0
		} else {
			stable++
		}
	}

	return count, nil
}
