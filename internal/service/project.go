package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/doxly/doxly/internal/model"
	"github.com/doxly/doxly/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultProjectProvider supplies the fallback project for documents created
// without one. Passed into the document service explicitly instead of being
// a hidden global lookup.
type DefaultProjectProvider interface {
	Default(ctx context.Context) (*model.Project, error)
}

var _ DefaultProjectProvider = (*ProjectService)(nil)

// NewProjectService creates a new ProjectService.
func NewProjectService(store store.Store) *ProjectService {
	return &ProjectService{
		store: store,
	}
}

// ProjectService manages projects, including the lazily created default one.
type ProjectService struct {
	store store.Store
}

// CreateProject creates a project after validating the alphanumeric code. A
// root folder node is created with it.
func (p *ProjectService) CreateProject(ctx context.Context, project *model.Project) error {
	if !model.ValidCode(project.Code) {
		return fmt.Errorf("%w: %q", ErrInvalidProjectCode, project.Code)
	}

	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	if project.FolderPath == "" {
		project.FolderPath = fmt.Sprintf("/projects/%s/", project.Code)
	}

	return p.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.CreateProject(ctx, project); err != nil {
			return err
		}
		return tx.CreateFolder(ctx, &model.FolderStructure{
			ProjectID: project.ID,
			Name:      project.Code,
		})
	})
}

// AddFolder adds a folder node beneath a project's tree.
func (p *ProjectService) AddFolder(ctx context.Context, folder *model.FolderStructure) error {
	return p.store.CreateFolder(ctx, folder)
}

// ListFolders lists a project's folder nodes.
func (p *ProjectService) ListFolders(ctx context.Context, projectID uuid.UUID) ([]*model.FolderStructure, error) {
	return p.store.ListFolders(ctx, projectID)
}

// GetProject retrieves a project.
func (p *ProjectService) GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	return p.store.GetProject(ctx, id)
}

// ListProjects lists all projects.
func (p *ProjectService) ListProjects(ctx context.Context) ([]*model.Project, error) {
	return p.store.ListProjects(ctx)
}

// Default returns the default project, creating it on first use.
func (p *ProjectService) Default(ctx context.Context) (*model.Project, error) {
	project, err := p.store.GetProjectByName(ctx, model.DefaultProjectName)
	if err == nil {
		return project, nil
	}
	if !errors.Is(err, store.ErrProjectNotFound) {
		return nil, err
	}

	project = &model.Project{
		ID:          uuid.New().String(),
		Name:        model.DefaultProjectName,
		Code:        "DEFAULT",
		Description: "Auto-created default project",
		FolderPath:  "/projects/DEFAULT/",
	}
	if err := p.CreateProject(ctx, project); err != nil {
		return nil, err
	}

	logrus.Infof("created default project with id: %s", project.ID)
	return project, nil
}
