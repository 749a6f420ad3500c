package model

import "gorm.io/gorm"

// DocumentVersion is an immutable snapshot of a document's content.
// Rows are append only, created on every save that introduces new content,
// and removed only by cascading document deletion.
type DocumentVersion struct {
	gorm.Model
	DocumentID  string `gorm:"primaryKey;uuid;not null;index:idx_document_versions_document_id"`
	Version     int64  `gorm:"primaryKey;not null"`
	Content     string
	FileName    string
	FileSize    int64
	Compression string
	Encrypted   bool   `gorm:"not null;default:false"`
	UploadedBy  string `gorm:"uuid"`
}

func (DocumentVersion) TableName() string {
	return "document_versions"
}
