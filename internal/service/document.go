package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/doxly/doxly/internal/cache"
	"github.com/doxly/doxly/internal/compress"
	"github.com/doxly/doxly/internal/encryption"
	"github.com/doxly/doxly/internal/lifecycle"
	"github.com/doxly/doxly/internal/model"
	"github.com/doxly/doxly/internal/queue"
	"github.com/doxly/doxly/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const keyRefLabel = "pbkdf2-sha256:100000"

// NewDocumentService creates a new DocumentService. The key is derived once
// at startup from the configured secret and salt; cache and notifications
// may be nil when the caller does not need them.
func NewDocumentService(
	st store.Store,
	encryptor encryption.Encryptor,
	key encryption.Key,
	comp compress.Compress,
	clock lifecycle.Clock,
	projects DefaultProjectProvider,
	statusCache cache.StatusCache,
	notifications queue.NotificationQueue,
) *DocumentService {
	return &DocumentService{
		store:         st,
		encryptor:     encryptor,
		key:           key,
		compress:      comp,
		clock:         clock,
		projects:      projects,
		cache:         statusCache,
		notifications: notifications,
	}
}

// DocumentService is a service for managing documents: creation with
// sequential code assignment, versioning, sharing, encryption and status
// classification.
type DocumentService struct {
	store         store.Store
	encryptor     encryption.Encryptor
	key           encryption.Key
	compress      compress.Compress
	clock         lifecycle.Clock
	projects      DefaultProjectProvider
	cache         cache.StatusCache
	notifications queue.NotificationQueue
}

// CreateDocumentRequest carries the inputs of a document upload.
type CreateDocumentRequest struct {
	ProjectID   string // empty means default project
	DocumentID  string // empty means generated
	Name        string
	Description string
	FileName    string
	Content     []byte
	UploadedBy  string
	Encrypt     bool
	References  []string // composite keys this document references
	WorkingDays int      // 0 means no due date
	Holidays    mapset.Set[string]
}

// Classification is the derived, human facing view of a document's status.
type Classification struct {
	Status         lifecycle.StatusLabel `json:"status"`
	Delay          lifecycle.DelayLabel  `json:"delay"`
	OverdueDays    int                   `json:"overdue_days"`
	FinalCloseDate *time.Time            `json:"final_close_date,omitempty"`
	LatestRevision bool                  `json:"latest_revision"`
}

// CreateDocument creates a new document at version 1: assigns the sequential
// code inside the transaction, encrypts the payload when requested, computes
// the due date and appends the first snapshot row.
func (d *DocumentService) CreateDocument(ctx context.Context, request *CreateDocumentRequest) (*model.Document, error) {
	if len(request.Content) == 0 {
		return nil, ErrEmptyContent
	}

	projectID := request.ProjectID
	projectName := ""
	if projectID == "" {
		project, err := d.projects.Default(ctx)
		if err != nil {
			return nil, err
		}
		projectID = project.ID
		projectName = project.Name
	} else {
		pid, err := uuid.Parse(projectID)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidProjectID, projectID)
		}
		project, err := d.store.GetProject(ctx, pid)
		if err != nil {
			return nil, err
		}
		projectName = project.Name
	}

	doc := &model.Document{
		ProjectID:     projectID,
		Name:          request.Name,
		Description:   request.Description,
		ReferenceCode: uuid.New().String(),
		Version:       1,
		FileName:      request.FileName,
		FileSize:      int64(len(request.Content)),
		FileType:      fileType(request.FileName),
		State:         model.StateActive,
		UploadedBy:    request.UploadedBy,
		Compression:   d.compress.Name(),
	}
	if request.DocumentID != "" {
		doc.ID = request.DocumentID
	} else {
		doc.ID = uuid.New().String()
	}
	if err := doc.SetReferenceList(request.References); err != nil {
		return nil, err
	}

	content := request.Content
	if request.Encrypt {
		ciphertext, err := d.encryptor.Encrypt(content, d.key)
		if err != nil {
			return nil, err
		}
		content = ciphertext
		doc.Encrypted = true
		doc.KeyRef = keyRefLabel
	}

	if request.WorkingDays > 0 {
		holidays := request.Holidays
		if holidays == nil {
			holidays = mapset.NewSet[string]()
		}
		due, err := lifecycle.CalculateDueDate(d.clock.Now(), request.WorkingDays, holidays, lifecycle.DefaultWeekend())
		if err != nil {
			return nil, err
		}
		doc.DueDate = &due
	}

	snapshot, err := d.compress.Encode(content)
	if err != nil {
		return nil, err
	}

	err = d.store.Transaction(ctx, func(tx store.Store) error {
		seq, err := tx.NextDocumentSequence(ctx, d.clock.Now().Year())
		if err != nil {
			return err
		}
		doc.DocID = model.FormatDocID(d.clock.Now().Year(), seq)
		doc.FilePath = lifecycle.BuildDocumentFolderPath(projectName, doc.ReferenceCode, doc.Version, request.UploadedBy)

		if err := tx.CreateDocument(ctx, doc); err != nil {
			return err
		}

		if err := tx.CreateDocumentVersion(ctx, &model.DocumentVersion{
			DocumentID:  doc.ID,
			Version:     doc.Version,
			Content:     string(snapshot),
			FileName:    doc.FileName,
			FileSize:    doc.FileSize,
			Compression: d.compress.Name(),
			Encrypted:   doc.Encrypted,
			UploadedBy:  request.UploadedBy,
		}); err != nil {
			return err
		}

		return tx.SaveStorageLocation(ctx, &model.StorageLocation{
			DocumentID:  doc.ID,
			StorageType: model.StorageLocal,
			FilePath:    doc.FilePath,
		})
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("document created with id: %s, doc id: %s", doc.ID, doc.DocID)
	return doc, nil
}

// UploadVersion appends new content to an existing document. The version
// counter increments and an immutable snapshot row is created; earlier
// snapshots are never touched.
func (d *DocumentService) UploadVersion(ctx context.Context, id uuid.UUID, content []byte, fileName, uploadedBy string) (*model.Document, error) {
	if len(content) == 0 {
		return nil, ErrEmptyContent
	}

	var doc *model.Document
	err := d.store.Transaction(ctx, func(tx store.Store) error {
		var err error
		doc, err = tx.GetDocument(ctx, id)
		if err != nil {
			return err
		}

		payload := content
		if doc.Encrypted {
			payload, err = d.encryptor.Encrypt(content, d.key)
			if err != nil {
				return err
			}
		}

		snapshot, err := d.compress.Encode(payload)
		if err != nil {
			return err
		}

		doc.Version = doc.Version + 1
		doc.FileName = fileName
		doc.FileSize = int64(len(content))
		doc.FileType = fileType(fileName)
		doc.Compression = d.compress.Name()

		logrus.Infof("uploading version %d for document id: %s", doc.Version, doc.ID)

		if err := tx.CreateDocumentVersion(ctx, &model.DocumentVersion{
			DocumentID:  doc.ID,
			Version:     doc.Version,
			Content:     string(snapshot),
			FileName:    fileName,
			FileSize:    doc.FileSize,
			Compression: d.compress.Name(),
			Encrypted:   doc.Encrypted,
			UploadedBy:  uploadedBy,
		}); err != nil {
			return err
		}

		return tx.UpdateDocument(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	d.dropCachedStatus(ctx, doc.ID)
	return doc, nil
}

// GetDocument retrieves a document.
func (d *DocumentService) GetDocument(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	return d.store.GetDocument(ctx, id)
}

// GetDocumentByCode retrieves a document by its sequential DOC code.
func (d *DocumentService) GetDocumentByCode(ctx context.Context, docID string) (*model.Document, error) {
	return d.store.GetDocumentByDocID(ctx, docID)
}

// ListDocuments lists the documents of a project.
func (d *DocumentService) ListDocuments(ctx context.Context, projectID uuid.UUID) ([]*model.Document, int64, error) {
	return d.store.ListDocuments(ctx, projectID)
}

// ListVersions lists the snapshots of a document.
func (d *DocumentService) ListVersions(ctx context.Context, id uuid.UUID) ([]*model.DocumentVersion, error) {
	return d.store.ListDocumentVersions(ctx, id)
}

// GetContent returns the plaintext payload of one version of a document.
// version <= 0 means the current version. Whether a snapshot is encrypted is
// tracked per snapshot; plaintext snapshots taken before EncryptDocument read
// back as written. Decryption failures surface as encryption.ErrDecryption
// with no partial result.
func (d *DocumentService) GetContent(ctx context.Context, id uuid.UUID, version int64) ([]byte, error) {
	doc, err := d.store.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	if version <= 0 {
		version = doc.Version
	}

	snapshot, err := d.store.GetDocumentVersion(ctx, id, version)
	if err != nil {
		return nil, err
	}

	payload, err := d.decodeSnapshot(snapshot)
	if err != nil {
		return nil, err
	}

	if snapshot.Encrypted {
		return d.encryptor.Decrypt(payload, d.key)
	}

	return payload, nil
}

// decodeSnapshot decodes a snapshot with the codec it was written with, so
// reconfiguring COMPRESSION never breaks existing snapshots.
func (d *DocumentService) decodeSnapshot(snapshot *model.DocumentVersion) ([]byte, error) {
	codec := d.compress
	if snapshot.Compression != "" && snapshot.Compression != codec.Name() {
		var err error
		codec, err = compress.New(snapshot.Compression)
		if err != nil {
			return nil, err
		}
	}
	return codec.Decode([]byte(snapshot.Content))
}

// EncryptDocument encrypts a document that was uploaded in the clear. The
// current payload is re-stored encrypted as a new snapshot; asking twice is an
// error, not a double encryption.
func (d *DocumentService) EncryptDocument(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	var doc *model.Document
	err := d.store.Transaction(ctx, func(tx store.Store) error {
		var err error
		doc, err = tx.GetDocument(ctx, id)
		if err != nil {
			return err
		}
		if doc.Encrypted {
			return ErrAlreadyEncrypted
		}

		snapshot, err := tx.GetDocumentVersion(ctx, id, doc.Version)
		if err != nil {
			return err
		}

		payload, err := d.decodeSnapshot(snapshot)
		if err != nil {
			return err
		}

		ciphertext, err := d.encryptor.Encrypt(payload, d.key)
		if err != nil {
			return err
		}

		encoded, err := d.compress.Encode(ciphertext)
		if err != nil {
			return err
		}

		doc.Version = doc.Version + 1
		doc.Encrypted = true
		doc.KeyRef = keyRefLabel
		doc.Compression = d.compress.Name()

		if err := tx.CreateDocumentVersion(ctx, &model.DocumentVersion{
			DocumentID:  doc.ID,
			Version:     doc.Version,
			Content:     string(encoded),
			FileName:    doc.FileName,
			FileSize:    doc.FileSize,
			Compression: d.compress.Name(),
			Encrypted:   true,
			UploadedBy:  doc.UploadedBy,
		}); err != nil {
			return err
		}

		return tx.UpdateDocument(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	d.dropCachedStatus(ctx, doc.ID)
	return doc, nil
}

// ShareDocument grants a recipient access. Re-sharing the same document with
// the same recipient updates the existing share instead of duplicating it.
func (d *DocumentService) ShareDocument(ctx context.Context, id uuid.UUID, sharedBy, sharedWith, permission string, expiresAt *time.Time) (*model.DocumentShare, error) {
	switch permission {
	case model.PermissionView, model.PermissionEdit, model.PermissionDownload:
	default:
		return nil, ErrInvalidPermission
	}

	doc, err := d.store.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	share := &model.DocumentShare{
		DocumentID: doc.ID,
		SharedBy:   sharedBy,
		SharedWith: sharedWith,
		Permission: permission,
		ExpiresAt:  expiresAt,
		Active:     true,
	}

	err = d.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.UpsertShare(ctx, share); err != nil {
			return err
		}

		if !doc.Shared {
			doc.Shared = true
			return tx.UpdateDocument(ctx, doc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.publish(ctx, &queue.Event{
		Type:       queue.EventDocumentShared,
		DocumentID: doc.ID,
		Recipient:  sharedWith,
		Subject:    "Document shared: " + doc.Name,
		Body:       doc.DocID + " was shared with you (" + permission + ")",
		OccurredAt: d.clock.Now(),
	})

	return share, nil
}

// RevokeShare deactivates the share for a recipient.
func (d *DocumentService) RevokeShare(ctx context.Context, id uuid.UUID, sharedWith string) error {
	return d.store.DeactivateShare(ctx, id, sharedWith)
}

// SetStatusCode records a review code and invalidates the cached
// classification.
func (d *DocumentService) SetStatusCode(ctx context.Context, id uuid.UUID, code string) error {
	doc, err := d.store.GetDocument(ctx, id)
	if err != nil {
		return err
	}

	doc.StatusCode = code
	if err := d.store.UpdateDocument(ctx, doc); err != nil {
		return err
	}

	d.dropCachedStatus(ctx, doc.ID)
	return nil
}

// CompleteDocument records the completion date.
func (d *DocumentService) CompleteDocument(ctx context.Context, id uuid.UUID, completedAt time.Time) error {
	doc, err := d.store.GetDocument(ctx, id)
	if err != nil {
		return err
	}

	doc.CompletedDate = &completedAt
	if err := d.store.UpdateDocument(ctx, doc); err != nil {
		return err
	}

	d.dropCachedStatus(ctx, doc.ID)
	return nil
}

// Classify derives the human facing status of a document from its review
// code, revision history and dates. Results are cached when a cache is
// configured.
func (d *DocumentService) Classify(ctx context.Context, id uuid.UUID) (*Classification, error) {
	if d.cache != nil {
		var cached Classification
		ok, err := d.cache.GetStatus(ctx, id.String(), &cached)
		if err != nil {
			logrus.Warnf("status cache read failed: %v", err)
		} else if ok {
			return &cached, nil
		}
	}

	doc, err := d.store.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	versions, err := d.store.ListDocumentVersions(ctx, id)
	if err != nil {
		return nil, err
	}
	nums := make([]int64, 0, len(versions))
	for _, v := range versions {
		nums = append(nums, v.Version)
	}

	latest := lifecycle.IsLatestRevision(doc.Version, nums)
	modified := doc.UpdatedAt
	dates := lifecycle.Dates{
		Due:       doc.DueDate,
		Completed: doc.CompletedDate,
		Modified:  &modified,
	}

	classification := &Classification{
		Status:         lifecycle.DetermineDocumentStatus(doc.StatusCode, latest),
		Delay:          lifecycle.DelayStatus(dates, d.clock),
		OverdueDays:    lifecycle.OverdueDays(dates, d.clock),
		FinalCloseDate: lifecycle.FinalCloseDate(dates),
		LatestRevision: latest,
	}

	if d.cache != nil {
		if err := d.cache.SetStatus(ctx, id.String(), classification); err != nil {
			logrus.Warnf("status cache write failed: %v", err)
		}
	}

	return classification, nil
}

// References returns the composite keys of project documents referencing
// this document's current revision.
func (d *DocumentService) References(ctx context.Context, id uuid.UUID) ([]string, error) {
	doc, records, err := d.revisionRecords(ctx, id)
	if err != nil {
		return nil, err
	}
	return lifecycle.ReferencesFor(doc, records), nil
}

// ReferenceDates returns the deduplicated DD/MM/YYYY upload dates of project
// documents referencing any revision of this document.
func (d *DocumentService) ReferenceDates(ctx context.Context, id uuid.UUID) ([]string, error) {
	doc, records, err := d.revisionRecords(ctx, id)
	if err != nil {
		return nil, err
	}
	return lifecycle.ReferenceDates(doc, records).ToSlice(), nil
}

// DeleteDocument soft deletes a document.
func (d *DocumentService) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	if err := d.store.DeleteDocument(ctx, id); err != nil {
		return err
	}
	d.dropCachedStatus(ctx, id.String())
	return nil
}

// EraseDocument hard deletes a document.
func (d *DocumentService) EraseDocument(ctx context.Context, id uuid.UUID) error {
	if err := d.store.EraseDocument(ctx, id); err != nil {
		return err
	}
	d.dropCachedStatus(ctx, id.String())
	return nil
}

func (d *DocumentService) revisionRecords(ctx context.Context, id uuid.UUID) (lifecycle.RevisionRecord, []lifecycle.RevisionRecord, error) {
	doc, err := d.store.GetDocument(ctx, id)
	if err != nil {
		return lifecycle.RevisionRecord{}, nil, err
	}

	projectID, err := uuid.Parse(doc.ProjectID)
	if err != nil {
		return lifecycle.RevisionRecord{}, nil, fmt.Errorf("%w: %q", ErrInvalidProjectID, doc.ProjectID)
	}

	all, _, err := d.store.ListDocuments(ctx, projectID)
	if err != nil {
		return lifecycle.RevisionRecord{}, nil, err
	}

	records := make([]lifecycle.RevisionRecord, 0, len(all))
	for _, other := range all {
		refs, err := other.ReferenceList()
		if err != nil {
			return lifecycle.RevisionRecord{}, nil, err
		}
		records = append(records, lifecycle.RevisionRecord{
			ReferenceCode: other.ReferenceCode,
			Version:       other.Version,
			References:    refs,
			UploadedAt:    other.CreatedAt,
		})
	}

	subject := lifecycle.RevisionRecord{
		ReferenceCode: doc.ReferenceCode,
		Version:       doc.Version,
		UploadedAt:    doc.CreatedAt,
	}

	return subject, records, nil
}

func (d *DocumentService) publish(ctx context.Context, event *queue.Event) {
	if d.notifications == nil {
		return
	}
	if err := d.notifications.Publish(ctx, event); err != nil {
		logrus.Errorf("failed to publish %s event: %v", event.Type, err)
	}
}

func (d *DocumentService) dropCachedStatus(ctx context.Context, id string) {
	if d.cache == nil {
		return
	}
	if err := d.cache.DeleteStatus(ctx, id); err != nil {
		logrus.Warnf("status cache delete failed: %v", err)
	}
}

func fileType(fileName string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
}
