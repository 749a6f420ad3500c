package model

import (
	"regexp"

	"gorm.io/gorm"
)

// DefaultProjectName is the name of the lazily created fallback project
// assigned to documents that omit a project.
const DefaultProjectName = "Default Project"

var projectCodePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// Project groups documents. Name and Code are unique, Code is alphanumeric.
type Project struct {
	gorm.Model
	ID          string `gorm:"primaryKey;uuid;not null;"`
	Name        string `gorm:"uniqueIndex;not null"`
	Code        string `gorm:"uniqueIndex;not null"`
	Trade       string
	SubTrade    string
	Description string
	FolderPath  string
	CreatedBy   string `gorm:"uuid"`
}

func (Project) TableName() string {
	return "projects"
}

// ValidCode reports whether code satisfies the alphanumeric constraint.
func ValidCode(code string) bool {
	return projectCodePattern.MatchString(code)
}

// FolderStructure is a named folder node within a project tree.
type FolderStructure struct {
	gorm.Model
	ProjectID string `gorm:"uuid;not null;index"`
	Name      string `gorm:"not null"`
	ParentID  *uint
}

func (FolderStructure) TableName() string {
	return "folder_structures"
}
