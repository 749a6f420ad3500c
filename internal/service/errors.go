package service

import "errors"

var (
	// ErrEmptyContent is returned when an upload carries no payload.
	ErrEmptyContent = errors.New("document content is empty")
	// ErrAlreadyEncrypted is returned when encryption is requested for a
	// document that is already encrypted.
	ErrAlreadyEncrypted = errors.New("document is already encrypted")
	// ErrInvalidPermission is returned for a share permission outside
	// view/edit/download.
	ErrInvalidPermission = errors.New("invalid permission level, expected view, edit or download")
	// ErrInvalidProjectCode is returned when a project code is not alphanumeric.
	ErrInvalidProjectCode = errors.New("project code must be alphanumeric")
	// ErrInvalidProjectID is returned when a project id is not a valid uuid.
	ErrInvalidProjectID = errors.New("project id must be a valid uuid")
	// ErrNoWorkflowStages is returned when a workflow is started with no
	// stages configured.
	ErrNoWorkflowStages = errors.New("no workflow stages configured")
	// ErrWorkflowFinished is returned when a finished workflow is advanced.
	ErrWorkflowFinished = errors.New("workflow is already approved or rejected")
)
