package service

import (
	"context"
	"testing"

	"github.com/doxly/doxly/internal/model"
	"github.com/doxly/doxly/internal/store"
	"github.com/doxly/doxly/internal/tester"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestProjectService_CreateProject(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	client := NewProjectService(store.NewGormStore(tester.TestDB()))

	project := &model.Project{Name: "North Plant", Code: "NP01"}
	assert.NoError(t, client.CreateProject(context.TODO(), project))
	assert.NotEmpty(t, project.ID)
	assert.Equal(t, "/projects/NP01/", project.FolderPath)

	folders, err := client.ListFolders(context.TODO(), uuid.MustParse(project.ID))
	assert.NoError(t, err)
	assert.Len(t, folders, 1)
	assert.Equal(t, "NP01", folders[0].Name)

	err = client.CreateProject(context.TODO(), &model.Project{Name: "Bad", Code: "no spaces!"})
	assert.ErrorIs(t, err, ErrInvalidProjectCode)
}

func TestProjectService_Default(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	client := NewProjectService(store.NewGormStore(tester.TestDB()))

	project, err := client.Default(context.TODO())
	assert.NoError(t, err)
	assert.Equal(t, model.DefaultProjectName, project.Name)

	// second call returns the same project, not a new one
	again, err := client.Default(context.TODO())
	assert.NoError(t, err)
	assert.Equal(t, project.ID, again.ID)

	projects, err := client.ListProjects(context.TODO())
	assert.NoError(t, err)
	assert.Len(t, projects, 1)
}
