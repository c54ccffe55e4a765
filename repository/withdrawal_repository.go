package repository

import (
	"context"
	"errors"
	"fmt"

	"inovatrust/database"
	"inovatrust/domain"
	"inovatrust/domain/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const withdrawalColumns = `
	id, user_id, conversation_id, amount::text, method, wallet_address,
	status, admin_notes, invoice_number, invoice_generated_at,
	email_sent_at, created_at, processed_at
`

// uniqueViolation is the Postgres error code for a unique index conflict
const uniqueViolation = "23505"

// WithdrawalRepository implements withdrawal data access
type WithdrawalRepository struct {
	q queryable
}

// NewWithdrawalRepository creates a new withdrawal repository
func NewWithdrawalRepository(db *database.DB) *WithdrawalRepository {
	return &WithdrawalRepository{q: db.Pool}
}

// newWithdrawalRepositoryWithTx creates a new withdrawal repository with a transaction
func newWithdrawalRepositoryWithTx(tx queryable) *WithdrawalRepository {
	return &WithdrawalRepository{q: tx}
}

func scanWithdrawal(row pgx.Row) (*entities.Withdrawal, error) {
	var w entities.Withdrawal
	var amount string

	err := row.Scan(
		&w.ID,
		&w.UserID,
		&w.ConversationID,
		&amount,
		&w.Method,
		&w.WalletAddress,
		&w.Status,
		&w.AdminNotes,
		&w.InvoiceNumber,
		&w.InvoiceGeneratedAt,
		&w.EmailSentAt,
		&w.CreatedAt,
		&w.ProcessedAt,
	)
	if err != nil {
		return nil, err
	}

	if w.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("failed to parse amount %q: %w", amount, err)
	}
	return &w, nil
}

// Create inserts a new pending withdrawal
func (r *WithdrawalRepository) Create(ctx context.Context, w *entities.Withdrawal) error {
	query := `
		INSERT INTO withdrawals (user_id, conversation_id, amount, method, wallet_address, status)
		VALUES ($1, $2, $3::numeric, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		w.UserID,
		w.ConversationID,
		w.Amount.StringFixed(2),
		w.Method,
		w.WalletAddress,
		w.Status,
	).Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create withdrawal for user %s: %w", w.UserID, err)
	}
	return nil
}

// GetByID retrieves a withdrawal by id
func (r *WithdrawalRepository) GetByID(ctx context.Context, id string) (*entities.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE id = $1`

	w, err := scanWithdrawal(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawal %s: %w", id, err)
	}
	return w, nil
}

// GetByIDForUpdate retrieves a withdrawal and locks the row until the
// enclosing transaction ends, so a withdrawal transitions at most once
// even under concurrent admin actions.
func (r *WithdrawalRepository) GetByIDForUpdate(ctx context.Context, id string) (*entities.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE id = $1 FOR UPDATE`

	w, err := scanWithdrawal(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock withdrawal %s: %w", id, err)
	}
	return w, nil
}

// GetByUser returns a user's withdrawals, newest first
func (r *WithdrawalRepository) GetByUser(ctx context.Context, userID string) ([]*entities.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

// GetAll returns every withdrawal, newest first
func (r *WithdrawalRepository) GetAll(ctx context.Context) ([]*entities.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *WithdrawalRepository) list(ctx context.Context, query string, args ...any) ([]*entities.Withdrawal, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query withdrawals: %w", err)
	}
	defer rows.Close()

	var withdrawals []*entities.Withdrawal
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan withdrawal: %w", err)
		}
		withdrawals = append(withdrawals, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate withdrawals: %w", err)
	}
	return withdrawals, nil
}

// Update persists the status and invoice/email bookkeeping fields. The
// statement runs in a nested transaction so a conflict on the invoice
// number unique index rolls back to the savepoint instead of aborting
// the enclosing transaction; the conflict surfaces as ErrDuplicateInvoice
// and the caller can regenerate within the same unit of work.
func (r *WithdrawalRepository) Update(ctx context.Context, w *entities.Withdrawal) error {
	query := `
		UPDATE withdrawals
		SET status = $1,
		    admin_notes = $2,
		    invoice_number = $3,
		    invoice_generated_at = $4,
		    email_sent_at = $5,
		    processed_at = $6
		WHERE id = $7
	`

	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin withdrawal update: %w", err)
	}

	result, err := tx.Exec(ctx, query,
		w.Status,
		w.AdminNotes,
		w.InvoiceNumber,
		w.InvoiceGeneratedAt,
		w.EmailSentAt,
		w.ProcessedAt,
		w.ID,
	)
	if err != nil {
		_ = tx.Rollback(ctx)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateInvoice
		}
		return fmt.Errorf("failed to update withdrawal %s: %w", w.ID, err)
	}
	if result.RowsAffected() == 0 {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("withdrawal %s not found", w.ID)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit withdrawal update: %w", err)
	}
	return nil
}
