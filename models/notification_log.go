// models/notification_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ChannelWhatsApp = "WHATSAPP"
	ChannelEmail    = "EMAIL"

	SendStatusSuccess = "SUCCESS"
	SendStatusFailed  = "FAILED"
)

// NotificationLog is an append-only audit row for one dispatch attempt.
// Rows are never updated after creation.
type NotificationLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SubmissionID uuid.UUID `gorm:"type:uuid;index;not null" json:"submission_id"`
	Channel      string    `gorm:"type:varchar(20);not null" json:"channel"`     // WHATSAPP, EMAIL
	SendStatus   string    `gorm:"type:varchar(20);not null" json:"send_status"` // SUCCESS, FAILED
	Payload      JSONB     `gorm:"type:jsonb;not null" json:"payload"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (NotificationLog) TableName() string {
	return "notification_logs"
}

func (l *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}
