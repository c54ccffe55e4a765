package repository

import (
	"context"
	"fmt"

	"inovatrust/database"
	"inovatrust/domain/entities"
)

// ChatMessageRepository implements chat message data access
type ChatMessageRepository struct {
	q queryable
}

// NewChatMessageRepository creates a new chat message repository
func NewChatMessageRepository(db *database.DB) *ChatMessageRepository {
	return &ChatMessageRepository{q: db.Pool}
}

// newChatMessageRepositoryWithTx creates a new chat message repository with a transaction
func newChatMessageRepositoryWithTx(tx queryable) *ChatMessageRepository {
	return &ChatMessageRepository{q: tx}
}

// Create appends a message to its conversation
func (r *ChatMessageRepository) Create(ctx context.Context, m *entities.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (conversation_id, sender_id, sender_type, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		m.ConversationID,
		m.SenderID,
		m.SenderType,
		m.Message,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create message in conversation %s: %w", m.ConversationID, err)
	}
	return nil
}

// GetByConversation returns a conversation's messages oldest first, the
// order clients render them in.
func (r *ChatMessageRepository) GetByConversation(ctx context.Context, conversationID string) ([]*entities.ChatMessage, error) {
	query := `
		SELECT id, conversation_id, sender_id, sender_type, message, created_at
		FROM chat_messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.q.Query(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages for conversation %s: %w", conversationID, err)
	}
	defer rows.Close()

	var messages []*entities.ChatMessage
	for rows.Next() {
		var m entities.ChatMessage
		err := rows.Scan(
			&m.ID,
			&m.ConversationID,
			&m.SenderID,
			&m.SenderType,
			&m.Message,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}
	return messages, nil
}
