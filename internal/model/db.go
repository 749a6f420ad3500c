package model

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Project{},
		&FolderStructure{},
		&Document{},
		&DocumentVersion{},
		&DocumentShare{},
		&DocumentSequence{},
		&WorkflowStage{},
		&DocumentWorkflow{},
		&Notification{},
		&StorageLocation{},
	)
}
