package llm

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"careerwatch/internal/extractor"
	"careerwatch/internal/models"
)

const maxTitleLen = 150

var (
	bulletPrefix = regexp.MustCompile(`^\s*(?:[-*•+]|\d+[.)])(?:\s+|$)`)
	urlInLine    = regexp.MustCompile(`https?://[^\s<>"'()\[\]]+`)
)

// ParseCompletion turns a model reply into candidates, one per non-empty
// line. A line without its own URL points at careerURL.
func ParseCompletion(reply string, keywords []string, careerURL, company string, now time.Time) []models.CandidateJob {
	var jobs []models.CandidateJob

	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		line = strings.TrimSpace(bulletPrefix.ReplaceAllString(line, ""))
		if line == "" || strings.EqualFold(line, noJobsMarker) {
			continue
		}

		link := careerURL
		if m := urlInLine.FindString(line); m != "" {
			m = strings.TrimRight(m, ".,;:!?")
			if extractor.IsAbsoluteHTTP(m) {
				link = m
			}
		}

		title := line
		if utf8.RuneCountInString(title) < extractor.MinTitleLen {
			continue
		}
		if utf8.RuneCountInString(title) > maxTitleLen {
			title = strings.TrimSpace(string([]rune(title)[:maxTitleLen]))
		}

		jobs = append(jobs, models.CandidateJob{
			Title:           title,
			URL:             link,
			Company:         company,
			MatchedKeywords: extractor.MatchKeywords(title, keywords),
			DiscoveredAt:    now,
			Description:     line,
			Source:          models.SourceAI,
		})
	}

	return jobs
}
