// Package guard is the single gate between extraction output and storage.
// Records arrive untyped, only whitelisted fields survive, defaults are
// applied and required fields are checked.
package guard

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"careerwatch/internal/models"
)

// ValidationError reports the first field that made a record unusable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// Field names of the untyped record. Anything else is dropped.
const (
	FieldTitle               = "title"
	FieldURL                 = "url"
	FieldCompanyID           = "companyId"
	FieldCompany             = "company"
	FieldDescription         = "description"
	FieldApplicationDeadline = "applicationDeadline"
	FieldMatchedKeywords     = "matchedKeywords"
	FieldStatus              = "status"
	FieldPriority            = "priority"
	FieldDateFound           = "dateFound"
)

var now = time.Now

// Sanitize turns an untyped record into a Job ready for insertion. Missing
// status, priority, matchedKeywords and dateFound get defaults.
func Sanitize(rec map[string]any) (models.Job, error) {
	var job models.Job

	title, err := requiredString(rec, FieldTitle)
	if err != nil {
		return models.Job{}, err
	}
	job.Title = title

	rawURL, err := requiredString(rec, FieldURL)
	if err != nil {
		return models.Job{}, err
	}
	if !absoluteHTTP(rawURL) {
		return models.Job{}, invalid(FieldURL, "must be an absolute http(s) url")
	}
	job.URL = rawURL

	siteID, err := requiredString(rec, FieldCompanyID)
	if err != nil {
		return models.Job{}, err
	}
	job.SiteID = siteID

	if job.Company, err = optionalString(rec, FieldCompany); err != nil {
		return models.Job{}, err
	}
	if job.Description, err = optionalString(rec, FieldDescription); err != nil {
		return models.Job{}, err
	}

	if job.ApplicationDeadline, err = optionalTime(rec, FieldApplicationDeadline); err != nil {
		return models.Job{}, err
	}

	if job.MatchedKeywords, err = stringList(rec, FieldMatchedKeywords); err != nil {
		return models.Job{}, err
	}

	job.Status = models.StatusNew
	if s, err := optionalString(rec, FieldStatus); err != nil {
		return models.Job{}, err
	} else if s != "" {
		status, ok := models.ParseJobStatus(s)
		if !ok {
			return models.Job{}, invalid(FieldStatus, fmt.Sprintf("unknown status %q", s))
		}
		job.Status = status
	}

	job.Priority = models.PriorityMedium
	if s, err := optionalString(rec, FieldPriority); err != nil {
		return models.Job{}, err
	} else if s != "" {
		p, ok := models.ParsePriority(s)
		if !ok {
			return models.Job{}, invalid(FieldPriority, fmt.Sprintf("unknown priority %q", s))
		}
		job.Priority = p
	}

	found, err := optionalTime(rec, FieldDateFound)
	if err != nil {
		return models.Job{}, err
	}
	if found != nil {
		job.DateFound = *found
	} else {
		job.DateFound = now()
	}

	return job, nil
}

// FromCandidate builds the untyped record for a candidate that has been
// enriched for site.
func FromCandidate(site *models.Site, c models.CandidateJob, detail models.JobDetail) map[string]any {
	description := detail.Description
	if description == "" {
		description = c.Description
	}

	rec := map[string]any{
		FieldTitle:           c.Title,
		FieldURL:             c.URL,
		FieldCompanyID:       site.ID,
		FieldCompany:         c.Company,
		FieldDescription:     description,
		FieldMatchedKeywords: c.MatchedKeywords,
		FieldStatus:          string(models.StatusNew),
		FieldPriority:        string(site.Priority),
	}
	if detail.Deadline != nil {
		rec[FieldApplicationDeadline] = *detail.Deadline
	}
	if !c.DiscoveredAt.IsZero() {
		rec[FieldDateFound] = c.DiscoveredAt
	}
	return rec
}

func requiredString(rec map[string]any, field string) (string, error) {
	s, err := optionalString(rec, field)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", invalid(field, "required")
	}
	return s, nil
}

func optionalString(rec map[string]any, field string) (string, error) {
	v, ok := rec[field]
	if !ok || v == nil {
		return "", nil
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s), nil
	case fmt.Stringer:
		return strings.TrimSpace(s.String()), nil
	case models.JobStatus:
		return string(s), nil
	case models.Priority:
		return string(s), nil
	}
	return "", invalid(field, fmt.Sprintf("expected string, got %T", v))
}

func optionalTime(rec map[string]any, field string) (*time.Time, error) {
	v, ok := rec[field]
	if !ok || v == nil {
		return nil, nil
	}
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return nil, nil
		}
		return &t, nil
	case *time.Time:
		if t == nil || t.IsZero() {
			return nil, nil
		}
		tt := *t
		return &tt, nil
	case string:
		t = strings.TrimSpace(t)
		if t == "" {
			return nil, nil
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return &parsed, nil
			}
		}
		return nil, invalid(field, fmt.Sprintf("unparseable date %q", t))
	}
	return nil, invalid(field, fmt.Sprintf("expected date, got %T", v))
}

func stringList(rec map[string]any, field string) ([]string, error) {
	out := []string{}
	v, ok := rec[field]
	if !ok || v == nil {
		return out, nil
	}
	switch list := v.(type) {
	case []string:
		for _, s := range list {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, invalid(field, fmt.Sprintf("expected list of strings, got %T item", item))
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	default:
		return nil, invalid(field, fmt.Sprintf("expected list, got %T", v))
	}
	return out, nil
}

func absoluteHTTP(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
