package entities

import "time"

// SystemSenderID is the synthetic sender id for platform-authored messages
const SystemSenderID = "system"

// SenderType distinguishes who authored a chat message
type SenderType string

const (
	SenderTypeUser  SenderType = "user"
	SenderTypeAdmin SenderType = "admin"
)

// ChatMessage is an append-only message inside a conversation
type ChatMessage struct {
	ID             string     `json:"id" db:"id"`
	ConversationID string     `json:"conversationId" db:"conversation_id"`
	SenderID       string     `json:"senderId" db:"sender_id"`
	SenderType     SenderType `json:"senderType" db:"sender_type"`
	Message        string     `json:"message" db:"message"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
}

// IsSystem returns true for messages authored by the platform itself
func (m *ChatMessage) IsSystem() bool {
	return m.SenderID == SystemSenderID
}
