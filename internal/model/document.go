package model

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Document lifecycle states. Documents are never hard deleted in the normal
// flow; archival is the soft end of life.
const (
	StateDraft    = "draft"
	StateActive   = "active"
	StateArchived = "archived"
)

// Document represents one uploaded file and its tracked metadata.
// ReferenceCode is immutable once set and stable across revisions, DocID is
// the human readable sequential code (DOC-<year>-<seq>) assigned exactly once.
type Document struct {
	gorm.Model
	ID            string `gorm:"primaryKey;uuid;not null;"`
	ProjectID     string `gorm:"uuid;not null;index"`
	Name          string `gorm:"not null"`
	Description   string
	ReferenceCode string `gorm:"uuid;uniqueIndex;not null"`
	DocID         string `gorm:"uniqueIndex:idx_documents_doc_id,where:doc_id <> ''"`
	Version       int64  `gorm:"not null;default:1"`
	FileName      string
	FilePath      string
	FileSize      int64
	FileType      string
	State         string `gorm:"not null;default:draft"`
	StatusCode    string // review code (URE, A..E); empty until reviewed
	Encrypted     bool   `gorm:"not null;default:false"`
	KeyRef        string
	References    string // JSON list of composite keys ("<code>_R<rev>") this document references
	UploadedBy    string `gorm:"uuid"`
	Shared        bool   `gorm:"not null;default:false"`
	Compression   string // compression algorithm used for the stored snapshots
	DueDate       *time.Time
	CompletedDate *time.Time
}

func (d *Document) TableName() string {
	return "documents"
}

// ReferenceList decodes the References column. An empty column decodes to an
// empty list, never nil.
func (d *Document) ReferenceList() ([]string, error) {
	refs := make([]string, 0)
	if d.References == "" {
		return refs, nil
	}
	if err := json.Unmarshal([]byte(d.References), &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

// SetReferenceList encodes refs into the References column.
func (d *Document) SetReferenceList(refs []string) error {
	if refs == nil {
		refs = make([]string, 0)
	}
	data, err := json.Marshal(refs)
	if err != nil {
		return err
	}
	d.References = string(data)
	return nil
}

func (d *Document) MarshalBinary() ([]byte, error) {
	return json.Marshal(d)
}
