package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"careerwatch/internal/models"
)

// MaxCallsPerMinute bounds model calls across all runs.
const MaxCallsPerMinute = 30

const noJobsMarker = "NONE"

const systemPrompt = "You extract job postings from career page text. " +
	"Reply with one posting per line and nothing else."

// RateLimiter counts model calls in the current window.
type RateLimiter interface {
	IncrementLLMRateLimit(ctx context.Context) (int64, error)
}

// FallbackExtractor asks a model for postings when the DOM tier found none.
// Results are low precision by nature and are tagged as such.
type FallbackExtractor struct {
	completer Completer
	limiter   RateLimiter
	timeout   time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

// NewFallbackExtractor builds the extractor. limiter may be nil.
func NewFallbackExtractor(completer Completer, limiter RateLimiter, timeout time.Duration, logger *zap.Logger) *FallbackExtractor {
	return &FallbackExtractor{
		completer: completer,
		limiter:   limiter,
		timeout:   timeout,
		now:       time.Now,
		logger:    logger,
	}
}

// Extract never fails. Every problem is logged and yields no candidates.
func (f *FallbackExtractor) Extract(ctx context.Context, content string, keywords []string, careerURL, company string) []models.CandidateJob {
	text := CleanContent(content)
	if text == "" {
		return []models.CandidateJob{}
	}

	if !f.allowed(ctx) {
		return []models.CandidateJob{}
	}

	callCtx := ctx
	if f.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	reply, err := f.completer.Complete(callCtx, systemPrompt, BuildPrompt(text, keywords))
	if err != nil {
		f.logger.Warn("ai fallback failed",
			zap.String("career_url", careerURL),
			zap.Error(err),
		)
		return []models.CandidateJob{}
	}

	jobs := ParseCompletion(reply, keywords, careerURL, company, f.now())
	f.logger.Info("ai fallback finished",
		zap.String("career_url", careerURL),
		zap.Int("candidates", len(jobs)),
	)
	if jobs == nil {
		jobs = []models.CandidateJob{}
	}
	return jobs
}

func (f *FallbackExtractor) allowed(ctx context.Context) bool {
	if f.limiter == nil {
		return true
	}
	count, err := f.limiter.IncrementLLMRateLimit(ctx)
	if err != nil {
		f.logger.Error("failed to check llm rate limit", zap.Error(err))
		return true
	}
	if count > MaxCallsPerMinute {
		f.logger.Warn("llm rate limit exceeded", zap.Int64("count", count))
		return false
	}
	return true
}

// BuildPrompt asks for plain lines so the reply can be parsed without a
// schema.
func BuildPrompt(content string, keywords []string) string {
	var sb strings.Builder
	sb.WriteString("List the job postings that appear in the career page text below.\n")
	if len(keywords) > 0 {
		fmt.Fprintf(&sb, "Only include postings whose title relates to any of: %s.\n", strings.Join(keywords, ", "))
	}
	sb.WriteString("Write one posting per line as: <job title> - <short description> - <absolute url if present>.\n")
	fmt.Fprintf(&sb, "Do not number the lines or add commentary. If there are no postings, reply with %s.\n\n", noJobsMarker)
	sb.WriteString("Career page text:\n")
	sb.WriteString(content)
	return sb.String()
}
