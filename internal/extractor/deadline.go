package extractor

import (
	"regexp"
	"strings"
	"time"
)

const deadlinePrefix = `(?i)(?:deadline|apply by|closing date|applications close)[:\s]*`

type deadlinePattern struct {
	re      *regexp.Regexp
	layouts []string
}

// deadlinePatterns are tried in order. A capture that none of its layouts
// can parse falls through to the next pattern.
var deadlinePatterns = []deadlinePattern{
	{
		re:      regexp.MustCompile(deadlinePrefix + `(\d{1,2}/\d{1,2}/\d{4})`),
		layouts: []string{"1/2/2006"},
	},
	{
		re:      regexp.MustCompile(deadlinePrefix + `(\d{4}-\d{2}-\d{2})`),
		layouts: []string{"2006-01-02"},
	},
	{
		re: regexp.MustCompile(deadlinePrefix + `([A-Z][a-z]+ \d{1,2},? \d{4})`),
		layouts: []string{
			"January 2, 2006",
			"January 2 2006",
			"Jan 2, 2006",
			"Jan 2 2006",
		},
	},
}

// ParseDeadline looks for an application deadline in text. It returns nil
// when nothing parses.
func ParseDeadline(text string) *time.Time {
	for _, p := range deadlinePatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		token := strings.TrimSpace(m[1])
		for _, layout := range p.layouts {
			if t, err := time.Parse(layout, token); err == nil {
				return &t
			}
		}
	}
	return nil
}
