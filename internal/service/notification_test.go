package service

import (
	"context"
	"testing"
	"time"

	"github.com/doxly/doxly/internal/model"
	"github.com/doxly/doxly/internal/queue"
	"github.com/doxly/doxly/internal/store"
	"github.com/doxly/doxly/internal/tester"
	"github.com/stretchr/testify/assert"
)

func TestNotificationService_Drain(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	st := store.NewGormStore(tester.TestDB())
	q := queue.NewMemoryQueue(4)
	client := NewNotificationService(st, q)

	ctx := context.TODO()
	assert.NoError(t, q.Publish(ctx, &queue.Event{
		Type:       queue.EventDocumentShared,
		DocumentID: "doc-1",
		Recipient:  "bob",
		Subject:    "Document shared",
		Body:       "DOC-2024-0001 was shared with you",
		OccurredAt: time.Now(),
	}))
	assert.NoError(t, q.Publish(ctx, &queue.Event{
		Type:       queue.EventDocumentOverdue,
		DocumentID: "doc-2",
		Recipient:  "alice",
		Subject:    "Document overdue",
		Body:       "DOC-2024-0002 is overdue",
		OccurredAt: time.Now(),
	}))
	assert.NoError(t, q.Close())

	// closed queue drains the buffered events and returns
	assert.NoError(t, client.Drain(ctx))

	pending, err := client.Pending(ctx)
	assert.NoError(t, err)
	assert.Len(t, pending, 2)

	assert.NoError(t, client.MarkSent(ctx, pending[0].ID))
	assert.NoError(t, client.MarkFailed(ctx, pending[1].ID))

	pending, err = client.Pending(ctx)
	assert.NoError(t, err)
	assert.Len(t, pending, 0)
}

func TestNotificationService_Notify(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	st := store.NewGormStore(tester.TestDB())
	client := NewNotificationService(st, nil)

	ctx := context.TODO()
	assert.NoError(t, client.Notify(ctx, &model.Notification{
		RecipientEmail: "bob@example.com",
		Subject:        "hello",
		Body:           "body",
	}))

	pending, err := client.Pending(ctx)
	assert.NoError(t, err)
	assert.Len(t, pending, 1)
	assert.Equal(t, model.NotificationPending, pending[0].Status)
}
