package entities

import "time"

// ConversationStatus represents whether a support conversation is open
type ConversationStatus string

const (
	ConversationStatusOpen   ConversationStatus = "open"
	ConversationStatusClosed ConversationStatus = "closed"
)

// Conversation is a support chat channel tying a user to the admins.
// Its id doubles as the realtime room id for websocket fan-out.
type Conversation struct {
	ID        string             `json:"id" db:"id"`
	UserID    string             `json:"userId" db:"user_id"`
	Subject   *string            `json:"subject" db:"subject"`
	Status    ConversationStatus `json:"status" db:"status"`
	CreatedAt time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" db:"updated_at"`
}

// IsParticipant reports whether the given user may read or post to this
// conversation. Admins always may.
func (c *Conversation) IsParticipant(userID string, isAdmin bool) bool {
	return c.UserID == userID || isAdmin
}
