package service

import (
	"context"

	"github.com/doxly/doxly/internal/model"
	"github.com/doxly/doxly/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NewWorkflowService creates a new WorkflowService.
func NewWorkflowService(store store.Store) *WorkflowService {
	return &WorkflowService{
		store: store,
	}
}

// WorkflowService moves documents through the configured approval stages.
type WorkflowService struct {
	store store.Store
}

// AddStage registers an approval stage.
func (w *WorkflowService) AddStage(ctx context.Context, stage *model.WorkflowStage) error {
	return w.store.CreateWorkflowStage(ctx, stage)
}

// StartWorkflow places a document at the first stage.
func (w *WorkflowService) StartWorkflow(ctx context.Context, docID uuid.UUID, assignedTo string) (*model.DocumentWorkflow, error) {
	stages, err := w.store.ListWorkflowStages(ctx)
	if err != nil {
		return nil, err
	}
	if len(stages) == 0 {
		return nil, ErrNoWorkflowStages
	}

	doc, err := w.store.GetDocument(ctx, docID)
	if err != nil {
		return nil, err
	}

	wf := &model.DocumentWorkflow{
		DocumentID:     doc.ID,
		CurrentStageID: &stages[0].ID,
		Status:         model.WorkflowPending,
		AssignedTo:     assignedTo,
	}
	if err := w.store.CreateDocumentWorkflow(ctx, wf); err != nil {
		return nil, err
	}

	return wf, nil
}

// Approve advances the workflow to the next stage; passing the last stage
// approves the document.
func (w *WorkflowService) Approve(ctx context.Context, docID uuid.UUID, reviewedBy string) (*model.DocumentWorkflow, error) {
	wf, err := w.store.GetDocumentWorkflow(ctx, docID)
	if err != nil {
		return nil, err
	}
	if wf.Status != model.WorkflowPending {
		return nil, ErrWorkflowFinished
	}

	stages, err := w.store.ListWorkflowStages(ctx)
	if err != nil {
		return nil, err
	}

	next := nextStage(stages, wf.CurrentStageID)
	wf.ReviewedBy = reviewedBy
	if next == nil {
		wf.Status = model.WorkflowApproved
		wf.CurrentStageID = nil
		logrus.Infof("document %s approved", docID)
	} else {
		wf.CurrentStageID = &next.ID
	}

	if err := w.store.UpdateDocumentWorkflow(ctx, wf); err != nil {
		return nil, err
	}

	return wf, nil
}

// Reject finishes the workflow as rejected.
func (w *WorkflowService) Reject(ctx context.Context, docID uuid.UUID, reviewedBy string) (*model.DocumentWorkflow, error) {
	wf, err := w.store.GetDocumentWorkflow(ctx, docID)
	if err != nil {
		return nil, err
	}
	if wf.Status != model.WorkflowPending {
		return nil, ErrWorkflowFinished
	}

	wf.Status = model.WorkflowRejected
	wf.ReviewedBy = reviewedBy
	if err := w.store.UpdateDocumentWorkflow(ctx, wf); err != nil {
		return nil, err
	}

	return wf, nil
}

func nextStage(stages []*model.WorkflowStage, currentID *uint) *model.WorkflowStage {
	if currentID == nil {
		return nil
	}
	for i, stage := range stages {
		if stage.ID == *currentID && i+1 < len(stages) {
			return stages[i+1]
		}
	}
	return nil
}
