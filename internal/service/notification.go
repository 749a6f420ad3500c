package service

import (
	"context"

	"github.com/doxly/doxly/internal/model"
	"github.com/doxly/doxly/internal/queue"
	"github.com/doxly/doxly/internal/store"
	"github.com/sirupsen/logrus"
)

// NewNotificationService creates a new NotificationService.
func NewNotificationService(store store.Store, q queue.NotificationQueue) *NotificationService {
	return &NotificationService{
		store: store,
		queue: q,
	}
}

// NotificationService records notifications and drains queued events into
// pending rows. Delivery (email etc.) is an external concern; rows move to
// sent/failed as the deliverer reports back.
type NotificationService struct {
	store store.Store
	queue queue.NotificationQueue
}

// Notify records a pending notification row.
func (n *NotificationService) Notify(ctx context.Context, notification *model.Notification) error {
	notification.Status = model.NotificationPending
	return n.store.CreateNotification(ctx, notification)
}

// MarkSent moves a notification to sent.
func (n *NotificationService) MarkSent(ctx context.Context, id uint) error {
	return n.store.UpdateNotificationStatus(ctx, id, model.NotificationSent)
}

// MarkFailed moves a notification to failed.
func (n *NotificationService) MarkFailed(ctx context.Context, id uint) error {
	return n.store.UpdateNotificationStatus(ctx, id, model.NotificationFailed)
}

// Pending lists notifications awaiting delivery.
func (n *NotificationService) Pending(ctx context.Context) ([]*model.Notification, error) {
	return n.store.ListPendingNotifications(ctx)
}

// Drain consumes queued notification events into pending rows until ctx is
// cancelled or the queue closes.
func (n *NotificationService) Drain(ctx context.Context) error {
	events, err := n.queue.Subscribe(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			err := n.Notify(ctx, &model.Notification{
				Sender:         event.DocumentID,
				RecipientEmail: event.Recipient,
				Subject:        event.Subject,
				Body:           event.Body,
			})
			if err != nil {
				logrus.Errorf("failed to record %s notification: %v", event.Type, err)
			}
		}
	}
}
