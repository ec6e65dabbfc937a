// Package events publishes newly discovered jobs to Kafka so that other
// services can react to them.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"careerwatch/internal/models"
)

const EventJobDiscovered = "job.discovered"

// JobDiscovered is the message payload. The key is the site ID so that all
// events of a site land in one partition.
type JobDiscovered struct {
	Event      string     `json:"event"`
	JobID      string     `json:"jobId"`
	SiteID     string     `json:"companyId"`
	UserID     string     `json:"userId"`
	Title      string     `json:"title"`
	URL        string     `json:"url"`
	Company    string     `json:"company"`
	Priority   string     `json:"priority"`
	Keywords   []string   `json:"matchedKeywords"`
	Deadline   *time.Time `json:"applicationDeadline,omitempty"`
	DateFound  time.Time  `json:"dateFound"`
	OccurredAt time.Time  `json:"occurredAt"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer wraps a Kafka writer.
type Producer struct {
	writer messageWriter
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			BatchTimeout:           50 * time.Millisecond,
			AllowAutoTopicCreation: true,
		},
	}
}

// NewProducerWithWriter builds a producer using a custom writer (tests).
func NewProducerWithWriter(writer messageWriter) *Producer {
	return &Producer{writer: writer}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// PublishJobs sends one message per job in a single write.
func (p *Producer) PublishJobs(ctx context.Context, site *models.Site, jobs []models.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	now := time.Now().UTC()
	msgs := make([]kafka.Message, 0, len(jobs))
	for _, job := range jobs {
		payload, err := json.Marshal(JobDiscovered{
			Event:      EventJobDiscovered,
			JobID:      job.ID,
			SiteID:     site.ID,
			UserID:     site.UserID,
			Title:      job.Title,
			URL:        job.URL,
			Company:    job.Company,
			Priority:   string(job.Priority),
			Keywords:   job.MatchedKeywords,
			Deadline:   job.ApplicationDeadline,
			DateFound:  job.DateFound,
			OccurredAt: now,
		})
		if err != nil {
			return fmt.Errorf("marshal event: %w", err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(site.ID),
			Value: payload,
			Time:  now,
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write messages: %w", err)
	}
	return nil
}

// Noop discards events. It is used when no brokers are configured.
type Noop struct{}

func (Noop) PublishJobs(ctx context.Context, site *models.Site, jobs []models.Job) error {
	return nil
}

func (Noop) Close() error { return nil }
