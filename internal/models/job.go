package models

import (
	"time"

	"github.com/lib/pq"
)

type JobStatus string

const (
	StatusNew      JobStatus = "New"
	StatusSeen     JobStatus = "Seen"
	StatusApplied  JobStatus = "Applied"
	StatusArchived JobStatus = "Archived"
)

// ParseJobStatus accepts the exact status names only.
func ParseJobStatus(s string) (JobStatus, bool) {
	switch JobStatus(s) {
	case StatusNew, StatusSeen, StatusApplied, StatusArchived:
		return JobStatus(s), true
	}
	return "", false
}

type JobSource string

const (
	SourceDOM JobSource = "dom"
	SourceAI  JobSource = "ai"
)

// CandidateJob is an extraction result that has not been enriched or
// persisted yet. Company is a name snapshot, not a reference.
type CandidateJob struct {
	Title           string
	URL             string
	Company         string
	MatchedKeywords []string
	DiscoveredAt    time.Time
	Description     string
	Source          JobSource
}

// JobDetail is what the enricher pulls from a single job page.
type JobDetail struct {
	Description string
	Deadline    *time.Time
}

// Job is a persisted posting. URL is unique per site.
type Job struct {
	ID                  string         `db:"id" json:"id"`
	SiteID              string         `db:"site_id" json:"companyId"`
	Title               string         `db:"title" json:"title"`
	URL                 string         `db:"url" json:"url"`
	Company             string         `db:"company" json:"company"`
	Description         string         `db:"description" json:"description"`
	ApplicationDeadline *time.Time     `db:"application_deadline" json:"applicationDeadline"`
	MatchedKeywords     pq.StringArray `db:"matched_keywords" json:"matchedKeywords"`
	Status              JobStatus      `db:"status" json:"status"`
	Priority            Priority       `db:"priority" json:"priority"`
	DateFound           time.Time      `db:"date_found" json:"dateFound"`
}

// JobFilter narrows job listings. Zero values mean "any".
type JobFilter struct {
	UserID string
	SiteID string
	Status JobStatus
	Limit  uint64
}
