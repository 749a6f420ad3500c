package lifecycle

import (
	"fmt"
	"path"
	"strings"
)

const folderRoot = "doxly/projects"

// DocumentExtensions are the formats a logical document is tracked across.
var DocumentExtensions = []string{"pdf", "docx", "xlsx"}

// BuildDocumentFolderPath derives the deterministic storage path for one
// revision of a document: a fixed root, the project name with spaces
// underscored, the composite key segment and the sender. Pure string
// construction, no filesystem access.
func BuildDocumentFolderPath(projectName, documentCode string, revision int64, sender string) string {
	return path.Join(
		folderRoot,
		strings.ReplaceAll(projectName, " ", "_"),
		CompositeKey(documentCode, revision),
		sender,
	)
}

// ExistsFunc answers whether a file exists. Supplied by the hosting
// environment so the check stays testable.
type ExistsFunc func(path string) bool

// CheckDocumentFiles reports, per tracked extension, whether the document
// revision exists under basePath.
func CheckDocumentFiles(basePath, documentCode string, revision int64, exists ExistsFunc) map[string]bool {
	result := make(map[string]bool, len(DocumentExtensions))
	for _, ext := range DocumentExtensions {
		name := fmt.Sprintf("%s.%s", CompositeKey(documentCode, revision), ext)
		result[ext] = exists(path.Join(basePath, name))
	}
	return result
}
