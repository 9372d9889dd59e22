// Package notify delivers lifecycle transition events to interested
// collaborators. Events are discrete and idempotent; publishing is
// fire-and-forget, so the quoting core never waits on delivery and never
// retries it.
package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type EventType string

const (
	EventRFQAccepted       EventType = "rfq.accepted"
	EventRFQRejected       EventType = "rfq.rejected"
	EventProposalSubmitted EventType = "proposal.submitted"
	EventRecallRequested   EventType = "proposal.recall_requested"
	EventRecallResolved    EventType = "proposal.recall_resolved"
)

type Event struct {
	Type       EventType `json:"type"`
	RfqId      string    `json:"rfqId"`
	ProposalId string    `json:"proposalId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// LogPublisher writes events to the structured log. It stands in for a real
// message broker; consumers tail the log stream.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) {
	p.log.Info().
		Str("event", string(event.Type)).
		Str("rfq_id", event.RfqId).
		Str("proposal_id", event.ProposalId).
		Time("occurred_at", event.OccurredAt).
		Msg("lifecycle event")
}
