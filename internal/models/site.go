package models

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority returns the priority for s, or false when s is not one of
// high, medium or low. Matching is case-insensitive.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityHigh:
		return PriorityHigh, true
	case PriorityMedium:
		return PriorityMedium, true
	case PriorityLow:
		return PriorityLow, true
	}
	return "", false
}

// Site is a company career site being monitored for new postings.
type Site struct {
	ID            string         `db:"id" json:"id"`
	UserID        string         `db:"user_id" json:"userId"`
	Name          string         `db:"name" json:"name"`
	RootURL       string         `db:"root_url" json:"url"`
	CareerURL     string         `db:"career_url" json:"careerUrl"`
	Keywords      pq.StringArray `db:"keywords" json:"keywords"`
	Priority      Priority       `db:"priority" json:"priority"`
	CheckInterval int            `db:"check_interval" json:"checkInterval"` // in min
	Active        bool           `db:"active" json:"active"`
	LastChecked   *time.Time     `db:"last_checked" json:"lastChecked"`
	CreatedAt     time.Time      `db:"created_at" json:"createdAt"`
}

// NewSiteInput is what a caller supplies to onboard a company.
type NewSiteInput struct {
	UserID    string
	Name      string
	RootURL   string
	CareerURL string // optional override, skips the locator
	Keywords  []string
	Priority  Priority
	Interval  string // user-facing form, e.g. "2 hours"
}

// NormalizeKeywords trims, lowercases and deduplicates keywords, keeping the
// first occurrence order. Empty entries are dropped.
func NormalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}
