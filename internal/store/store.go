package store

import (
	"context"
	"time"

	"github.com/doxly/doxly/internal/model"
	"github.com/google/uuid"
)

type Store interface {
	DocumentStore
	VersionStore
	ShareStore
	ProjectStore
	WorkflowStore
	NotificationStore
	StorageStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type DocumentStore interface {
	// CreateDocument creates a new document.
	CreateDocument(ctx context.Context, doc *model.Document) error
	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id uuid.UUID) (*model.Document, error)
	// GetDocumentByDocID retrieves a document by its sequential code.
	GetDocumentByDocID(ctx context.Context, docID string) (*model.Document, error)
	// ListDocuments retrieves the documents of a project.
	ListDocuments(ctx context.Context, projectID uuid.UUID) ([]*model.Document, int64, error)
	// ListDocumentsFromIDs retrieves a list of documents by IDs.
	ListDocumentsFromIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Document, error)
	// ListOverdueDocuments retrieves incomplete documents whose due date passed.
	ListOverdueDocuments(ctx context.Context, now time.Time) ([]*model.Document, error)
	// UpdateDocument updates a document.
	UpdateDocument(ctx context.Context, doc *model.Document) error
	// DeleteDocument soft deletes a document by ID.
	DeleteDocument(ctx context.Context, id uuid.UUID) error
	// EraseDocument hard deletes a document by ID.
	EraseDocument(ctx context.Context, id uuid.UUID) error
	// NextDocumentSequence hands out the next sequential number for a year.
	// Must run inside a transaction.
	NextDocumentSequence(ctx context.Context, year int) (int64, error)
}

type VersionStore interface {
	// CreateDocumentVersion appends an immutable snapshot row.
	CreateDocumentVersion(ctx context.Context, version *model.DocumentVersion) error
	// GetDocumentVersion retrieves one snapshot by document ID and version.
	GetDocumentVersion(ctx context.Context, docID uuid.UUID, version int64) (*model.DocumentVersion, error)
	// ListDocumentVersions retrieves the snapshots of a document.
	ListDocumentVersions(ctx context.Context, docID uuid.UUID) ([]*model.DocumentVersion, error)
}

type ShareStore interface {
	// UpsertShare creates a share or updates the existing row for the
	// (document, recipient) pair.
	UpsertShare(ctx context.Context, share *model.DocumentShare) error
	// ListShares retrieves the active shares of a document.
	ListShares(ctx context.Context, docID uuid.UUID) ([]*model.DocumentShare, error)
	// DeactivateShare revokes the share for a recipient.
	DeactivateShare(ctx context.Context, docID uuid.UUID, sharedWith string) error
	// ExpireShares deactivates every active share past its expiry, returning
	// how many were touched.
	ExpireShares(ctx context.Context, now time.Time) (int64, error)
}

type ProjectStore interface {
	// CreateProject creates a new project.
	CreateProject(ctx context.Context, project *model.Project) error
	// GetProject retrieves a project by ID.
	GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error)
	// GetProjectByName retrieves a project by its unique name.
	GetProjectByName(ctx context.Context, name string) (*model.Project, error)
	// ListProjects retrieves all projects.
	ListProjects(ctx context.Context) ([]*model.Project, error)
	// CreateFolder adds a folder node to a project tree.
	CreateFolder(ctx context.Context, folder *model.FolderStructure) error
	// ListFolders retrieves the folder nodes of a project.
	ListFolders(ctx context.Context, projectID uuid.UUID) ([]*model.FolderStructure, error)
}

type WorkflowStore interface {
	// CreateWorkflowStage creates a workflow stage.
	CreateWorkflowStage(ctx context.Context, stage *model.WorkflowStage) error
	// ListWorkflowStages retrieves all stages ordered by sequence.
	ListWorkflowStages(ctx context.Context) ([]*model.WorkflowStage, error)
	// CreateDocumentWorkflow starts a workflow for a document.
	CreateDocumentWorkflow(ctx context.Context, wf *model.DocumentWorkflow) error
	// GetDocumentWorkflow retrieves the workflow of a document.
	GetDocumentWorkflow(ctx context.Context, docID uuid.UUID) (*model.DocumentWorkflow, error)
	// UpdateDocumentWorkflow updates a document workflow.
	UpdateDocumentWorkflow(ctx context.Context, wf *model.DocumentWorkflow) error
}

type NotificationStore interface {
	// CreateNotification records a queued notification.
	CreateNotification(ctx context.Context, n *model.Notification) error
	// UpdateNotificationStatus moves a notification to a new status.
	UpdateNotificationStatus(ctx context.Context, id uint, status string) error
	// ListPendingNotifications retrieves notifications awaiting delivery.
	ListPendingNotifications(ctx context.Context) ([]*model.Notification, error)
}

type StorageStore interface {
	// SaveStorageLocation records where a document payload lives.
	SaveStorageLocation(ctx context.Context, loc *model.StorageLocation) error
	// GetStorageLocation retrieves the storage location of a document.
	GetStorageLocation(ctx context.Context, docID uuid.UUID) (*model.StorageLocation, error)
}
