package consult

import (
	"time"
)

// Message is a single utterance inside a conversation, ordered by SentAt.
type Message struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ConversationID uint          `gorm:"not null;index" json:"conversation_id"`
	Conversation   *Conversation `gorm:"constraint:OnDelete:CASCADE;foreignKey:ConversationID;references:ID" json:"conversation,omitempty"`

	Content string    `gorm:"type:text;not null" json:"content"`
	Role    string    `gorm:"size:50" json:"role,omitempty"`
	SentAt  time.Time `gorm:"not null;index" json:"sent_at"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Message) TableName() string { return "messages" }
