package queue

import (
	"context"
	"time"
)

// Notification event types.
const (
	EventDocumentShared  = "document.shared"
	EventDocumentOverdue = "document.overdue"
	EventShareExpired    = "document.share.expired"
)

// Event is one notification event flowing through the queue.
type Event struct {
	Type       string    `json:"type"`
	DocumentID string    `json:"document_id"`
	Recipient  string    `json:"recipient"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NotificationQueue carries notification events to the delivery workers.
type NotificationQueue interface {
	// Publish appends an event to the queue.
	Publish(ctx context.Context, event *Event) error
	// Subscribe returns a channel of events. The channel closes when ctx is
	// cancelled.
	Subscribe(ctx context.Context) (<-chan *Event, error)
	Close() error
}
