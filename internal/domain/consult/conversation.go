package consult

import (
	"time"

	"gorm.io/datatypes"
)

// Conversation records one consultation session between a patient and the
// assistant. Progress stores the serialized state of the running vector
// search so a session can be resumed. UserID and PatientID are reserved
// references into an account system outside this service.
type Conversation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title      string         `gorm:"size:255;not null" json:"title"`
	Department string         `gorm:"size:100" json:"department,omitempty"`
	UserID     *int64         `gorm:"column:user_id" json:"user_id,omitempty"`
	PatientID  *int64         `gorm:"column:patient_id" json:"patient_id,omitempty"`
	StartedAt  time.Time      `gorm:"not null;index" json:"started_at"`
	Progress   datatypes.JSON `gorm:"column:progress" json:"progress,omitempty"`

	Messages []Message `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Conversation) TableName() string { return "conversations" }
