package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/doxly/doxly/internal/model"
	"github.com/doxly/doxly/internal/queue"
	"github.com/doxly/doxly/internal/store"
	"github.com/doxly/doxly/internal/tester"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOverdueScan_Run(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	st := store.NewGormStore(tester.TestDB())
	q := queue.NewMemoryQueue(4)
	clock := tester.FixedClock{Time: time.Now()}

	past := clock.Time.Add(-72 * time.Hour)
	doc := &model.Document{
		ID:            uuid.New().String(),
		ProjectID:     uuid.New().String(),
		Name:          "late drawing",
		ReferenceCode: uuid.New().String(),
		Version:       1,
		State:         model.StateActive,
		UploadedBy:    "alice",
		DueDate:       &past,
	}
	assert.NoError(t, st.CreateDocument(context.TODO(), doc))

	NewOverdueScan("0 0 * * * *", st, q, clock).Run()

	events, err := q.Subscribe(context.TODO())
	assert.NoError(t, err)

	event := <-events
	assert.Equal(t, queue.EventDocumentOverdue, event.Type)
	assert.Equal(t, doc.ID, event.DocumentID)
	assert.Equal(t, "alice", event.Recipient)
}

func TestShareExpiry_Run(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	st := store.NewGormStore(tester.TestDB())
	clock := tester.FixedClock{Time: time.Now()}

	docID := uuid.New().String()
	past := clock.Time.Add(-time.Hour)
	assert.NoError(t, st.UpsertShare(context.TODO(), &model.DocumentShare{
		DocumentID: docID,
		SharedBy:   "alice",
		SharedWith: "bob",
		Permission: model.PermissionView,
		ExpiresAt:  &past,
		Active:     true,
	}))

	NewShareExpiry("0 */5 * * * *", st, clock).Run()

	shares, err := st.ListShares(context.TODO(), uuid.MustParse(docID))
	assert.NoError(t, err)
	assert.Len(t, shares, 0)
}
