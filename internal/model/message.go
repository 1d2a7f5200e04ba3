package model

import "time"

// Message role values.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat turn. Immutable once created; insertion order is
// chronological order within a conversation.
type Message struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	ConversationID uint      `json:"conversationId" gorm:"not null;index"`
	Role           string    `json:"role" gorm:"not null"` // "user" or "assistant"
	Content        string    `json:"content" gorm:"type:text;not null"`
	CreatedAt      time.Time `json:"createdAt"`
}
