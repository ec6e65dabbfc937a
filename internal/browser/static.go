package browser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (compatible; CareerWatch/1.0; +https://careerwatch.app/bot)"

	maxBodyBytes = 5 << 20
	maxAttempts  = 3
)

// Static fetches pages over plain HTTP. It cannot execute JavaScript, so
// scrolling is a no-op and the document is whatever the server sent.
type Static struct {
	httpClient *http.Client
	logger     *zap.Logger
	userAgent  string
	backoff    time.Duration
}

func NewStatic(timeout time.Duration, logger *zap.Logger) *Static {
	return &Static{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger:    logger,
		userAgent: DefaultUserAgent,
		backoff:   time.Second,
	}
}

// NewStaticWithClient builds a Static browser around a custom client (tests).
func NewStaticWithClient(client *http.Client, logger *zap.Logger) *Static {
	return &Static{
		httpClient: client,
		logger:     logger,
		userAgent:  DefaultUserAgent,
	}
}

func (s *Static) NewPage(ctx context.Context) (Page, error) {
	return &staticPage{browser: s}, nil
}

func (s *Static) Close() error {
	s.httpClient.CloseIdleConnections()
	return nil
}

// fetch does a GET with retries. Transport errors, 429 and 5xx are retried;
// other 4xx fail immediately.
func (s *Static) fetch(ctx context.Context, rawURL string) (string, string, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * s.backoff
			s.logger.Debug("retrying request",
				zap.String("url", rawURL),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return "", "", fmt.Errorf("fetch %s: %w", rawURL, ctx.Err())
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return "", "", fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", s.userAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response body: %w", err)
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			s.logger.Debug("page fetched",
				zap.String("url", rawURL),
				zap.Int("status", resp.StatusCode),
				zap.Int("bytes", len(body)),
			)
			return string(body), resp.Request.URL.String(), nil
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			continue
		default:
			return "", "", fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
		}
	}

	return "", "", fmt.Errorf("fetch %s failed after retries: %w", rawURL, lastErr)
}

type staticPage struct {
	browser *Static
	url     string
	html    string
	doc     *goquery.Document
}

func (p *staticPage) Navigate(ctx context.Context, rawURL string) error {
	html, finalURL, err := p.browser.fetch(ctx, rawURL)
	if err != nil {
		return err
	}
	p.url = finalURL
	p.html = html
	p.doc = nil
	return nil
}

func (p *staticPage) URL() string {
	return p.url
}

func (p *staticPage) HTML(ctx context.Context) (string, error) {
	if p.url == "" {
		return "", fmt.Errorf("page not loaded")
	}
	return p.html, nil
}

func (p *staticPage) ScrollToBottom(ctx context.Context) error {
	return ErrScrollUnsupported
}

func (p *staticPage) Count(ctx context.Context, selector string) (int, error) {
	if p.doc == nil {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(p.html))
		if err != nil {
			return 0, fmt.Errorf("parse html: %w", err)
		}
		p.doc = doc
	}
	return p.doc.Find(selector).Length(), nil
}

func (p *staticPage) Close() error {
	p.html = ""
	p.doc = nil
	return nil
}
