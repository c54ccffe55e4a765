package repository

import (
	"context"
	"fmt"

	"inovatrust/database"
	"inovatrust/domain/entities"

	"github.com/jackc/pgx/v5"
)

const conversationColumns = `
	id, user_id, subject, status, created_at, updated_at
`

// ConversationRepository implements support conversation data access
type ConversationRepository struct {
	q queryable
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(db *database.DB) *ConversationRepository {
	return &ConversationRepository{q: db.Pool}
}

// newConversationRepositoryWithTx creates a new conversation repository with a transaction
func newConversationRepositoryWithTx(tx queryable) *ConversationRepository {
	return &ConversationRepository{q: tx}
}

func scanConversation(row pgx.Row) (*entities.Conversation, error) {
	var c entities.Conversation
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Subject,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new conversation
func (r *ConversationRepository) Create(ctx context.Context, c *entities.Conversation) error {
	query := `
		INSERT INTO conversations (user_id, subject, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query, c.UserID, c.Subject, c.Status).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create conversation for user %s: %w", c.UserID, err)
	}
	return nil
}

// GetByID retrieves a conversation by id
func (r *ConversationRepository) GetByID(ctx context.Context, id string) (*entities.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE id = $1`

	c, err := scanConversation(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation %s: %w", id, err)
	}
	return c, nil
}

// GetByUser returns a user's conversations, most recently active first
func (r *ConversationRepository) GetByUser(ctx context.Context, userID string) ([]*entities.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE user_id = $1 ORDER BY updated_at DESC`
	return r.list(ctx, query, userID)
}

// GetAll returns every conversation, most recently active first
func (r *ConversationRepository) GetAll(ctx context.Context) ([]*entities.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations ORDER BY updated_at DESC`
	return r.list(ctx, query)
}

func (r *ConversationRepository) list(ctx context.Context, query string, args ...any) ([]*entities.Conversation, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversations: %w", err)
	}
	defer rows.Close()

	var conversations []*entities.Conversation
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conversations = append(conversations, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate conversations: %w", err)
	}
	return conversations, nil
}

// Touch bumps updated_at so the conversation sorts to the top of inboxes
func (r *ConversationRepository) Touch(ctx context.Context, id string) error {
	query := `UPDATE conversations SET updated_at = NOW() WHERE id = $1`

	result, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to touch conversation %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("conversation %s not found", id)
	}
	return nil
}
