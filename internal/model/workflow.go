package model

import "gorm.io/gorm"

// Workflow statuses.
const (
	WorkflowPending  = "pending"
	WorkflowApproved = "approved"
	WorkflowRejected = "rejected"
)

// WorkflowStage is one stage in a document approval workflow. Sequence
// defines the order of stages.
type WorkflowStage struct {
	gorm.Model
	Name             string `gorm:"not null"`
	Description      string
	Sequence         int64 `gorm:"not null;index"`
	RequiresApproval bool  `gorm:"not null;default:true"`
}

func (WorkflowStage) TableName() string {
	return "workflow_stages"
}

// DocumentWorkflow tracks a document through the approval stages.
type DocumentWorkflow struct {
	gorm.Model
	DocumentID     string `gorm:"uuid;not null;index"`
	CurrentStageID *uint
	Status         string `gorm:"not null;default:pending"`
	AssignedTo     string `gorm:"uuid"`
	ReviewedBy     string `gorm:"uuid"`
}

func (DocumentWorkflow) TableName() string {
	return "document_workflows"
}
