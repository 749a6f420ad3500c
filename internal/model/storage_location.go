package model

import "gorm.io/gorm"

// Storage backends a document payload can live on.
const (
	StorageLocal  = "local"
	StorageAWSS3  = "aws_s3"
	StorageGDrive = "gdrive"
)

// StorageLocation records where a document's payload is stored.
type StorageLocation struct {
	gorm.Model
	DocumentID  string `gorm:"uuid;uniqueIndex;not null"`
	StorageType string `gorm:"not null;default:local"`
	FilePath    string `gorm:"not null"`
}

func (StorageLocation) TableName() string {
	return "storage_locations"
}
