package jobs

import (
	"context"

	"github.com/doxly/doxly/internal/lifecycle"
	"github.com/doxly/doxly/internal/queue"
	"github.com/doxly/doxly/internal/store"
	"github.com/sirupsen/logrus"
)

// OverdueScan finds incomplete documents past their due date and enqueues an
// overdue notification for each uploader.
type OverdueScan struct {
	store    store.Store
	queue    queue.NotificationQueue
	clock    lifecycle.Clock
	schedule string
}

func NewOverdueScan(schedule string, st store.Store, q queue.NotificationQueue, clock lifecycle.Clock) *OverdueScan {
	return &OverdueScan{
		store:    st,
		queue:    q,
		clock:    clock,
		schedule: schedule,
	}
}

func (o *OverdueScan) Schedule() string {
	return o.schedule
}

func (o *OverdueScan) Run() {
	ctx := context.Background()
	now := o.clock.Now()

	docs, err := o.store.ListOverdueDocuments(ctx, now)
	if err != nil {
		logrus.Errorf("overdue scan failed: %v", err)
		return
	}

	for _, doc := range docs {
		dates := lifecycle.Dates{Due: doc.DueDate, Completed: doc.CompletedDate}
		days := lifecycle.OverdueDays(dates, o.clock)

		err := o.queue.Publish(ctx, &queue.Event{
			Type:       queue.EventDocumentOverdue,
			DocumentID: doc.ID,
			Recipient:  doc.UploadedBy,
			Subject:    "Document overdue: " + doc.Name,
			Body:       doc.DocID + " is overdue",
			OccurredAt: now,
		})
		if err != nil {
			logrus.Errorf("failed to publish overdue event for %s: %v", doc.ID, err)
			continue
		}

		logrus.Infof("document %s overdue by %d days", doc.DocID, days)
	}
}
