package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/doxly/doxly/internal/compress"
	"github.com/doxly/doxly/internal/encryption"
	"github.com/doxly/doxly/internal/lifecycle"
	"github.com/doxly/doxly/internal/model"
	"github.com/doxly/doxly/internal/queue"
	"github.com/doxly/doxly/internal/store"
	"github.com/doxly/doxly/internal/tester"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestDocumentService(t *testing.T, clock lifecycle.Clock, q queue.NotificationQueue) (*DocumentService, store.Store) {
	tester.RemoveDBFile()
	tester.Setup()

	st := store.NewGormStore(tester.TestDB())
	projects := NewProjectService(st)

	key, err := encryption.DeriveKey([]byte("secret"), []byte("salt"))
	assert.NoError(t, err)

	return NewDocumentService(
		st,
		encryption.NewAESGCM(),
		key,
		compress.NewNop(),
		clock,
		projects,
		nil,
		q,
	), st
}

func TestDocumentService_CreateDocument(t *testing.T) {
	clock := tester.FixedClock{Time: time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)}
	client, _ := newTestDocumentService(t, clock, nil)

	doc, err := client.CreateDocument(context.TODO(), &CreateDocumentRequest{
		Name:       "pump layout",
		FileName:   "pump.pdf",
		Content:    []byte("content"),
		UploadedBy: "alice",
	})
	assert.NoError(t, err)
	assert.NotNil(t, doc)

	assert.Equal(t, "DOC-2024-0001", doc.DocID)
	assert.Equal(t, int64(1), doc.Version)
	assert.Equal(t, "pdf", doc.FileType)
	assert.False(t, doc.Encrypted)

	got, err := client.GetDocument(context.TODO(), uuid.MustParse(doc.ID))
	assert.NoError(t, err)
	assert.Equal(t, doc.DocID, got.DocID)

	byCode, err := client.GetDocumentByCode(context.TODO(), "DOC-2024-0001")
	assert.NoError(t, err)
	assert.Equal(t, doc.ID, byCode.ID)

	versions, err := client.ListVersions(context.TODO(), uuid.MustParse(doc.ID))
	assert.NoError(t, err)
	assert.Len(t, versions, 1)
}

func TestDocumentService_EmptyContent(t *testing.T) {
	client, _ := newTestDocumentService(t, lifecycle.RealClock{}, nil)

	_, err := client.CreateDocument(context.TODO(), &CreateDocumentRequest{
		Name:     "empty",
		FileName: "empty.pdf",
	})
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestDocumentService_MalformedProjectID(t *testing.T) {
	client, _ := newTestDocumentService(t, lifecycle.RealClock{}, nil)

	var err error
	assert.NotPanics(t, func() {
		_, err = client.CreateDocument(context.TODO(), &CreateDocumentRequest{
			ProjectID:  "not-a-uuid",
			Name:       "doc",
			FileName:   "doc.pdf",
			Content:    []byte("content"),
			UploadedBy: "alice",
		})
	})
	assert.ErrorIs(t, err, ErrInvalidProjectID)
}

func TestDocumentService_SequentialCodes(t *testing.T) {
	clock := tester.FixedClock{Time: time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)}
	client, _ := newTestDocumentService(t, clock, nil)

	for i := 1; i <= 3; i++ {
		doc, err := client.CreateDocument(context.TODO(), &CreateDocumentRequest{
			Name:       "doc",
			FileName:   "doc.pdf",
			Content:    []byte("content"),
			UploadedBy: "alice",
		})
		assert.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("DOC-2024-%04d", i), doc.DocID)
	}
}

func TestDocumentService_DueDate(t *testing.T) {
	// monday; 5 working days skip the weekend
	clock := tester.FixedClock{Time: time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)}
	client, _ := newTestDocumentService(t, clock, nil)

	doc, err := client.CreateDocument(context.TODO(), &CreateDocumentRequest{
		Name:        "doc",
		FileName:    "doc.pdf",
		Content:     []byte("content"),
		UploadedBy:  "alice",
		WorkingDays: 5,
	})
	assert.NoError(t, err)
	assert.NotNil(t, doc.DueDate)
	assert.Equal(t, time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC), *doc.DueDate)
}

func TestDocumentService_EncryptedRoundTrip(t *testing.T) {
	client, _ := newTestDocumentService(t, lifecycle.RealClock{}, nil)

	doc, err := client.CreateDocument(context.TODO(), &CreateDocumentRequest{
		Name:       "secret doc",
		FileName:   "secret.pdf",
		Content:    []byte("classified"),
		UploadedBy: "alice",
		Encrypt:    true,
	})
	assert.NoError(t, err)
	assert.True(t, doc.Encrypted)
	assert.NotEmpty(t, doc.KeyRef)

	got, err := client.GetContent(context.TODO(), uuid.MustParse(doc.ID), 0)
	assert.NoError(t, err)
	assert.Equal(t, []byte("classified"), got)
}

func TestDocumentService_EncryptDocument(t *testing.T) {
	client, _ := newTestDocumentService(t, lifecycle.RealClock{}, nil)

	doc, err := client.CreateDocument(context.TODO(), &CreateDocumentRequest{
		Name:       "doc",
		FileName:   "doc.pdf",
		Content:    []byte("plain"),
		UploadedBy: "alice",
	})
	assert.NoError(t, err)

	id := uuid.MustParse(doc.ID)
	encrypted, err := client.EncryptDocument(context.TODO(), id)
	assert.NoError(t, err)
	assert.True(t, encrypted.Encrypted)
	assert.Equal(t, int64(2), encrypted.Version)

	// both the plaintext snapshot and the encrypted one read back
	got, err := client.GetContent(context.TODO(), id, 1)
	assert.NoError(t, err)
	assert.Equal(t, []byte("plain"), got)

	got, err = client.GetContent(context.TODO(), id, 2)
	assert.NoError(t, err)
	assert.Equal(t, []byte("plain"), got)

	_, err = client.EncryptDocument(context.TODO(), id)
	assert.ErrorIs(t, err, ErrAlreadyEncrypted)
}

func TestDocumentService_UploadVersion(t *testing.T) {
	client, _ := newTestDocumentService(t, lifecycle.RealClock{}, nil)

	doc, err := client.CreateDocument(context.TODO(), &CreateDocumentRequest{
		Name:       "doc",
		FileName:   "doc.pdf",
		Content:    []byte("v1"),
		UploadedBy: "alice",
	})
	assert.NoError(t, err)

	id := uuid.MustParse(doc.ID)
	updated, err := client.UploadVersion(context.TODO(), id, []byte("v2"), "doc.pdf", "bob")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)

	versions, err := client.ListVersions(context.TODO(), id)
	assert.NoError(t, err)
	assert.Len(t, versions, 2)

	// earlier snapshots stay readable
	got, err := client.GetContent(context.TODO(), id, 1)
	assert.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	got, err = client.GetContent(context.TODO(), id, 0)
	assert.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
}

func TestDocumentService_CompressionRecordedPerSnapshot(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	st := store.NewGormStore(tester.TestDB())
	projects := NewProjectService(st)

	gzipSvc := NewDocumentService(st, encryption.NewNop(), nil, compress.NewGZip(), lifecycle.RealClock{}, projects, nil, nil)
	lz4Svc := NewDocumentService(st, encryption.NewNop(), nil, compress.NewLZ4(), lifecycle.RealClock{}, projects, nil, nil)

	doc, err := gzipSvc.CreateDocument(context.TODO(), &CreateDocumentRequest{
		Name:       "doc",
		FileName:   "doc.pdf",
		Content:    []byte("v1"),
		UploadedBy: "alice",
	})
	assert.NoError(t, err)
	assert.Equal(t, "gzip", doc.Compression)

	// a differently configured service still decodes old snapshots
	id := uuid.MustParse(doc.ID)
	got, err := lz4Svc.GetContent(context.TODO(), id, 0)
	assert.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	_, err = lz4Svc.UploadVersion(context.TODO(), id, []byte("v2"), "doc.pdf", "bob")
	assert.NoError(t, err)

	versions, err := lz4Svc.ListVersions(context.TODO(), id)
	assert.NoError(t, err)
	assert.Len(t, versions, 2)
	assert.Equal(t, "gzip", versions[0].Compression)
	assert.Equal(t, "lz4", versions[1].Compression)

	// each snapshot decodes with its own recorded codec
	for version, want := range map[int64][]byte{1: []byte("v1"), 2: []byte("v2")} {
		got, err := gzipSvc.GetContent(context.TODO(), id, version)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestDocumentService_ShareDocument(t *testing.T) {
	q := queue.NewMemoryQueue(4)
	client, st := newTestDocumentService(t, lifecycle.RealClock{}, q)

	doc, err := client.CreateDocument(context.TODO(), &CreateDocumentRequest{
		Name:       "doc",
		FileName:   "doc.pdf",
		Content:    []byte("content"),
		UploadedBy: "alice",
	})
	assert.NoError(t, err)

	id := uuid.MustParse(doc.ID)
	_, err = client.ShareDocument(context.TODO(), id, "alice", "bob", model.PermissionView, nil)
	assert.NoError(t, err)

	// re-sharing the same recipient updates instead of duplicating
	_, err = client.ShareDocument(context.TODO(), id, "alice", "bob", model.PermissionEdit, nil)
	assert.NoError(t, err)

	shares, err := st.ListShares(context.TODO(), id)
	assert.NoError(t, err)
	assert.Len(t, shares, 1)
	assert.Equal(t, model.PermissionEdit, shares[0].Permission)

	got, err := client.GetDocument(context.TODO(), id)
	assert.NoError(t, err)
	assert.True(t, got.Shared)

	events, err := q.Subscribe(context.TODO())
	assert.NoError(t, err)
	event := <-events
	assert.Equal(t, queue.EventDocumentShared, event.Type)
	assert.Equal(t, "bob", event.Recipient)

	_, err = client.ShareDocument(context.TODO(), id, "alice", "carol", "owner", nil)
	assert.ErrorIs(t, err, ErrInvalidPermission)
}

func TestDocumentService_Classify(t *testing.T) {
	clock := tester.FixedClock{Time: time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)}
	client, _ := newTestDocumentService(t, clock, nil)

	doc, err := client.CreateDocument(context.TODO(), &CreateDocumentRequest{
		Name:       "doc",
		FileName:   "doc.pdf",
		Content:    []byte("content"),
		UploadedBy: "alice",
	})
	assert.NoError(t, err)

	id := uuid.MustParse(doc.ID)

	classification, err := client.Classify(context.TODO(), id)
	assert.NoError(t, err)
	assert.Equal(t, lifecycle.StatusCodeEmpty, classification.Status)
	assert.Equal(t, lifecycle.DelayUnknown, classification.Delay)
	assert.True(t, classification.LatestRevision)

	assert.NoError(t, client.SetStatusCode(context.TODO(), id, "A"))

	classification, err = client.Classify(context.TODO(), id)
	assert.NoError(t, err)
	assert.Equal(t, lifecycle.StatusClosed, classification.Status)
}

func TestDocumentService_References(t *testing.T) {
	client, _ := newTestDocumentService(t, lifecycle.RealClock{}, nil)

	base, err := client.CreateDocument(context.TODO(), &CreateDocumentRequest{
		Name:       "base drawing",
		FileName:   "base.pdf",
		Content:    []byte("content"),
		UploadedBy: "alice",
	})
	assert.NoError(t, err)

	dependent, err := client.CreateDocument(context.TODO(), &CreateDocumentRequest{
		Name:       "detail drawing",
		FileName:   "detail.pdf",
		Content:    []byte("content"),
		UploadedBy: "alice",
		References: []string{lifecycle.CompositeKey(base.ReferenceCode, base.Version)},
	})
	assert.NoError(t, err)

	refs, err := client.References(context.TODO(), uuid.MustParse(base.ID))
	assert.NoError(t, err)
	assert.Equal(t, []string{lifecycle.CompositeKey(dependent.ReferenceCode, dependent.Version)}, refs)

	dates, err := client.ReferenceDates(context.TODO(), uuid.MustParse(base.ID))
	assert.NoError(t, err)
	assert.Len(t, dates, 1)
}

func TestDocumentService_DeleteDocument(t *testing.T) {
	client, _ := newTestDocumentService(t, lifecycle.RealClock{}, nil)

	doc, err := client.CreateDocument(context.TODO(), &CreateDocumentRequest{
		Name:       "doc",
		FileName:   "doc.pdf",
		Content:    []byte("content"),
		UploadedBy: "alice",
	})
	assert.NoError(t, err)

	id := uuid.MustParse(doc.ID)
	assert.NoError(t, client.DeleteDocument(context.TODO(), id))

	_, err = client.GetDocument(context.TODO(), id)
	assert.ErrorIs(t, err, store.ErrDocumentNotFound)
}
