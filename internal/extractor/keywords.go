package extractor

import (
	"regexp"
	"strings"
)

// MatchKeywords returns the keywords that occur in title as whole words,
// ignoring case. Order follows keywords; duplicates are reported once.
// Multi-word keywords ("machine learning") match as a phrase.
func MatchKeywords(title string, keywords []string) []string {
	matched := make([]string, 0, len(keywords))
	if title == "" {
		return matched
	}

	seen := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		key := strings.ToLower(strings.TrimSpace(kw))
		if key == "" || seen[key] {
			continue
		}
		if keywordPattern(key).MatchString(title) {
			seen[key] = true
			matched = append(matched, key)
		}
	}
	return matched
}

// Included applies the inclusion rule: with no keywords every posting is
// kept, otherwise at least one keyword must match.
func Included(keywords, matched []string) bool {
	return len(keywords) == 0 || len(matched) > 0
}

func keywordPattern(kw string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])` + regexp.QuoteMeta(kw) + `(?:$|[^\p{L}\p{N}])`)
}
