// Package events publishes lifecycle notifications to a message broker so
// downstream consumers (mailers, feeds) can react without polling the API.
// Publishing is best-effort: a broker failure is logged and never fails the
// request that produced the event.
package events

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

const (
	TypeJobPosted    = "job.posted"
	TypeBidSubmitted = "bid.submitted"
	TypeBidHired     = "bid.hired"
)

type Event struct {
	Type       string    `json:"type"`
	JobId      string    `json:"jobId"`
	BidId      string    `json:"bidId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher is used when no broker URL is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event Event) error { return nil }
func (NopPublisher) Close() error                                   { return nil }

func PublishJobPosted(ctx context.Context, p Publisher, jobId uuid.UUID) {
	publish(ctx, p, Event{Type: TypeJobPosted, JobId: jobId.String(), OccurredAt: time.Now().UTC()})
}

func PublishBidSubmitted(ctx context.Context, p Publisher, jobId, bidId uuid.UUID) {
	publish(ctx, p, Event{Type: TypeBidSubmitted, JobId: jobId.String(), BidId: bidId.String(), OccurredAt: time.Now().UTC()})
}

func PublishBidHired(ctx context.Context, p Publisher, jobId, bidId uuid.UUID) {
	publish(ctx, p, Event{Type: TypeBidHired, JobId: jobId.String(), BidId: bidId.String(), OccurredAt: time.Now().UTC()})
}

func publish(ctx context.Context, p Publisher, event Event) {
	if err := p.Publish(ctx, event); err != nil {
		log.Printf("failed to publish %s event: %v", event.Type, err)
	}
}
