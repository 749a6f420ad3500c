package store

import (
	"context"
	"errors"
	"time"

	"github.com/doxly/doxly/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrProjectNotFound  = errors.New("project not found")
	ErrVersionNotFound  = errors.New("document version not found")
	ErrWorkflowNotFound = errors.New("document workflow not found")
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

func (g *GormStore) CreateDocument(ctx context.Context, doc *model.Document) error {
	return g.db.WithContext(ctx).Create(doc).Error
}

func (g *GormStore) GetDocument(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	var doc model.Document
	err := g.db.WithContext(ctx).Where("id = ?", id.String()).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	return &doc, err
}

func (g *GormStore) GetDocumentByDocID(ctx context.Context, docID string) (*model.Document, error) {
	var doc model.Document
	err := g.db.WithContext(ctx).Where("doc_id = ?", docID).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	return &doc, err
}

func (g *GormStore) ListDocuments(ctx context.Context, projectID uuid.UUID) ([]*model.Document, int64, error) {
	var docs []*model.Document
	err := g.db.WithContext(ctx).Where("project_id = ?", projectID.String()).Order("created_at desc").Find(&docs).Error
	return docs, int64(len(docs)), err
}

func (g *GormStore) ListDocumentsFromIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Document, error) {
	strIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		strIDs = append(strIDs, id.String())
	}

	var docs []*model.Document
	err := g.db.WithContext(ctx).Where("id in (?)", strIDs).Find(&docs).Error
	return docs, err
}

func (g *GormStore) ListOverdueDocuments(ctx context.Context, now time.Time) ([]*model.Document, error) {
	var docs []*model.Document
	err := g.db.WithContext(ctx).
		Where("due_date IS NOT NULL AND due_date < ? AND completed_date IS NULL", now).
		Find(&docs).Error
	return docs, err
}

func (g *GormStore) UpdateDocument(ctx context.Context, doc *model.Document) error {
	return g.db.WithContext(ctx).Save(doc).Error
}

func (g *GormStore) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&model.Document{}).Error
}

func (g *GormStore) EraseDocument(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).Unscoped().Where("id = ?", id.String()).Delete(&model.Document{}).Error
}

// NextDocumentSequence bumps the per-year counter and returns the new value.
// The read-modify-write is serialized by the surrounding transaction, so a
// sequential code is handed out exactly once per project-year.
func (g *GormStore) NextDocumentSequence(ctx context.Context, year int) (int64, error) {
	seq := &model.DocumentSequence{Year: year}
	if err := g.db.WithContext(ctx).Where(model.DocumentSequence{Year: year}).FirstOrCreate(seq).Error; err != nil {
		return 0, err
	}

	res := g.db.WithContext(ctx).Model(&model.DocumentSequence{}).
		Where("year = ?", year).
		UpdateColumn("last_seq", gorm.Expr("last_seq + 1"))
	if res.Error != nil {
		return 0, res.Error
	}

	if err := g.db.WithContext(ctx).Where("year = ?", year).First(seq).Error; err != nil {
		return 0, err
	}

	return seq.LastSeq, nil
}

func (g *GormStore) CreateDocumentVersion(ctx context.Context, version *model.DocumentVersion) error {
	return g.db.WithContext(ctx).Create(version).Error
}

func (g *GormStore) GetDocumentVersion(ctx context.Context, docID uuid.UUID, version int64) (*model.DocumentVersion, error) {
	var snapshot model.DocumentVersion
	err := g.db.WithContext(ctx).
		Where("document_id = ? AND version = ?", docID.String(), version).
		First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVersionNotFound
	}
	return &snapshot, err
}

func (g *GormStore) ListDocumentVersions(ctx context.Context, docID uuid.UUID) ([]*model.DocumentVersion, error) {
	var versions []*model.DocumentVersion
	err := g.db.WithContext(ctx).
		Where("document_id = ?", docID.String()).
		Order("version asc").
		Find(&versions).Error
	return versions, err
}

func (g *GormStore) UpsertShare(ctx context.Context, share *model.DocumentShare) error {
	var existing model.DocumentShare
	err := g.db.WithContext(ctx).
		Where("document_id = ? AND shared_with = ?", share.DocumentID, share.SharedWith).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return g.db.WithContext(ctx).Create(share).Error
	}
	if err != nil {
		return err
	}

	existing.SharedBy = share.SharedBy
	existing.Permission = share.Permission
	existing.ExpiresAt = share.ExpiresAt
	existing.Active = true
	*share = existing

	return g.db.WithContext(ctx).Save(&existing).Error
}

func (g *GormStore) ListShares(ctx context.Context, docID uuid.UUID) ([]*model.DocumentShare, error) {
	var shares []*model.DocumentShare
	err := g.db.WithContext(ctx).
		Where("document_id = ? AND active = ?", docID.String(), true).
		Find(&shares).Error
	return shares, err
}

func (g *GormStore) DeactivateShare(ctx context.Context, docID uuid.UUID, sharedWith string) error {
	return g.db.WithContext(ctx).Model(&model.DocumentShare{}).
		Where("document_id = ? AND shared_with = ?", docID.String(), sharedWith).
		Update("active", false).Error
}

func (g *GormStore) ExpireShares(ctx context.Context, now time.Time) (int64, error) {
	res := g.db.WithContext(ctx).Model(&model.DocumentShare{}).
		Where("active = ? AND expires_at IS NOT NULL AND expires_at < ?", true, now).
		Update("active", false)
	return res.RowsAffected, res.Error
}

func (g *GormStore) CreateProject(ctx context.Context, project *model.Project) error {
	return g.db.WithContext(ctx).Create(project).Error
}

func (g *GormStore) GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	err := g.db.WithContext(ctx).Where("id = ?", id.String()).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	return &project, err
}

func (g *GormStore) GetProjectByName(ctx context.Context, name string) (*model.Project, error) {
	var project model.Project
	err := g.db.WithContext(ctx).Where("name = ?", name).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	return &project, err
}

func (g *GormStore) ListProjects(ctx context.Context) ([]*model.Project, error) {
	var projects []*model.Project
	err := g.db.WithContext(ctx).Find(&projects).Error
	return projects, err
}

func (g *GormStore) CreateFolder(ctx context.Context, folder *model.FolderStructure) error {
	return g.db.WithContext(ctx).Create(folder).Error
}

func (g *GormStore) ListFolders(ctx context.Context, projectID uuid.UUID) ([]*model.FolderStructure, error) {
	var folders []*model.FolderStructure
	err := g.db.WithContext(ctx).
		Where("project_id = ?", projectID.String()).
		Order("id asc").
		Find(&folders).Error
	return folders, err
}

func (g *GormStore) CreateWorkflowStage(ctx context.Context, stage *model.WorkflowStage) error {
	return g.db.WithContext(ctx).Create(stage).Error
}

func (g *GormStore) ListWorkflowStages(ctx context.Context) ([]*model.WorkflowStage, error) {
	var stages []*model.WorkflowStage
	err := g.db.WithContext(ctx).Order("sequence asc").Find(&stages).Error
	return stages, err
}

func (g *GormStore) CreateDocumentWorkflow(ctx context.Context, wf *model.DocumentWorkflow) error {
	return g.db.WithContext(ctx).Create(wf).Error
}

func (g *GormStore) GetDocumentWorkflow(ctx context.Context, docID uuid.UUID) (*model.DocumentWorkflow, error) {
	var wf model.DocumentWorkflow
	err := g.db.WithContext(ctx).Where("document_id = ?", docID.String()).First(&wf).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWorkflowNotFound
	}
	return &wf, err
}

func (g *GormStore) UpdateDocumentWorkflow(ctx context.Context, wf *model.DocumentWorkflow) error {
	return g.db.WithContext(ctx).Save(wf).Error
}

func (g *GormStore) CreateNotification(ctx context.Context, n *model.Notification) error {
	return g.db.WithContext(ctx).Create(n).Error
}

func (g *GormStore) UpdateNotificationStatus(ctx context.Context, id uint, status string) error {
	return g.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (g *GormStore) ListPendingNotifications(ctx context.Context) ([]*model.Notification, error) {
	var notifications []*model.Notification
	err := g.db.WithContext(ctx).
		Where("status = ?", model.NotificationPending).
		Find(&notifications).Error
	return notifications, err
}

func (g *GormStore) SaveStorageLocation(ctx context.Context, loc *model.StorageLocation) error {
	return g.db.WithContext(ctx).Save(loc).Error
}

func (g *GormStore) GetStorageLocation(ctx context.Context, docID uuid.UUID) (*model.StorageLocation, error) {
	var loc model.StorageLocation
	err := g.db.WithContext(ctx).Where("document_id = ?", docID.String()).First(&loc).Error
	return &loc, err
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}
