package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDocumentFolderPath(t *testing.T) {
	got := BuildDocumentFolderPath("North Plant", "DWG-100", 3, "alice")
	assert.Equal(t, "doxly/projects/North_Plant/DWG-100_R3/alice", got)
}

func TestCheckDocumentFiles(t *testing.T) {
	existing := map[string]bool{
		"base/DWG-100_R2.pdf":  true,
		"base/DWG-100_R2.xlsx": true,
	}

	got := CheckDocumentFiles("base", "DWG-100", 2, func(path string) bool {
		return existing[path]
	})

	assert.Equal(t, map[string]bool{
		"pdf":  true,
		"docx": false,
		"xlsx": true,
	}, got)
}
