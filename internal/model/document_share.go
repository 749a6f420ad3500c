package model

import (
	"time"

	"gorm.io/gorm"
)

// Permission levels for document shares.
const (
	PermissionView     = "view"
	PermissionEdit     = "edit"
	PermissionDownload = "download"
)

// DocumentShare grants a recipient access to a document. At most one active
// share exists per (document, recipient) pair; re-sharing updates the
// existing row instead of duplicating it.
type DocumentShare struct {
	gorm.Model
	DocumentID string `gorm:"uuid;not null;uniqueIndex:idx_document_shares_doc_recipient"`
	SharedBy   string `gorm:"uuid;not null"`
	SharedWith string `gorm:"uuid;not null;uniqueIndex:idx_document_shares_doc_recipient"`
	Permission string `gorm:"not null;default:view"`
	ExpiresAt  *time.Time
	Active     bool `gorm:"not null;default:true"`
}

func (DocumentShare) TableName() string {
	return "document_shares"
}

// Expired reports whether the share carries an expiry in the past.
func (s *DocumentShare) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && s.ExpiresAt.Before(now)
}
