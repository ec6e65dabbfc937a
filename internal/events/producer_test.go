package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	kgo "github.com/segmentio/kafka-go"

	"careerwatch/internal/events"
	"careerwatch/internal/mocks"
	"careerwatch/internal/models"
)

func TestProducerPublishJobs(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	writer := mocks.NewMockMessageWriter(ctrl)
	prod := events.NewProducerWithWriter(writer)

	site := &models.Site{ID: "site-1", UserID: "user-1"}
	jobs := []models.Job{
		{ID: "job-1", SiteID: "site-1", Title: "React Dev", URL: "https://acme.com/jobs/1", MatchedKeywords: []string{"react"}, Priority: models.PriorityHigh},
		{ID: "job-2", SiteID: "site-1", Title: "Go Dev", URL: "https://acme.com/jobs/2", Priority: models.PriorityHigh},
	}

	writer.EXPECT().
		WriteMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msgs ...kgo.Message) error {
			if len(msgs) != 2 {
				t.Fatalf("expected 2 messages, got %d", len(msgs))
			}
			for i, msg := range msgs {
				if string(msg.Key) != "site-1" {
					t.Fatalf("unexpected message key: %s", string(msg.Key))
				}
				var got events.JobDiscovered
				if err := json.Unmarshal(msg.Value, &got); err != nil {
					t.Fatalf("failed to decode message: %v", err)
				}
				if got.Event != events.EventJobDiscovered || got.JobID != jobs[i].ID || got.UserID != "user-1" || got.URL != jobs[i].URL {
					t.Fatalf("unexpected payload: %+v", got)
				}
			}
			return nil
		})

	if err := prod.PublishJobs(context.Background(), site, jobs); err != nil {
		t.Fatalf("PublishJobs returned error: %v", err)
	}
}

func TestProducerPublishJobsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	writer := mocks.NewMockMessageWriter(ctrl)
	prod := events.NewProducerWithWriter(writer)

	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("write failed"))

	err := prod.PublishJobs(context.Background(), &models.Site{ID: "s"}, []models.Job{{ID: "j", DateFound: time.Now()}})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestProducerPublishNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	writer := mocks.NewMockMessageWriter(ctrl)
	prod := events.NewProducerWithWriter(writer)

	if err := prod.PublishJobs(context.Background(), &models.Site{ID: "s"}, nil); err != nil {
		t.Fatalf("PublishJobs returned error: %v", err)
	}
}

func TestProducerClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	writer := mocks.NewMockMessageWriter(ctrl)
	writer.EXPECT().Close().Return(nil)

	if err := events.NewProducerWithWriter(writer).Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}
