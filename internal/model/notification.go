package model

import "gorm.io/gorm"

// Notification statuses.
const (
	NotificationPending = "pending"
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
)

// Notification records a message queued for a recipient. Delivery itself is
// an external concern; the row tracks what was enqueued and whether it went
// out.
type Notification struct {
	gorm.Model
	Sender         string `gorm:"uuid;not null;index"`
	RecipientEmail string `gorm:"not null;index"`
	Subject        string `gorm:"not null"`
	Body           string
	Status         string `gorm:"not null;default:pending;index"`
	Read           bool   `gorm:"not null;default:false"`
}

func (Notification) TableName() string {
	return "notifications"
}
