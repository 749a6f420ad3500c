package model

import "fmt"

// DocumentSequence holds the per-year counter backing the sequential
// document codes. The row is bumped inside the same transaction that creates
// the document, so a code is handed out exactly once even under concurrent
// creation.
type DocumentSequence struct {
	Year    int   `gorm:"primaryKey;autoIncrement:false"`
	LastSeq int64 `gorm:"not null;default:0"`
}

func (DocumentSequence) TableName() string {
	return "document_sequences"
}

// FormatDocID renders the sequential code for a year and sequence number.
func FormatDocID(year int, seq int64) string {
	return fmt.Sprintf("DOC-%d-%04d", year, seq)
}
