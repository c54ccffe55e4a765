package repository

import (
	"context"
	"fmt"

	"inovatrust/database"
	"inovatrust/domain/entities"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// userColumns selects every user field. Numeric columns are cast to text
// so amounts round-trip through decimal without float conversion.
const userColumns = `
	id, username, password, full_name, email,
	balance::text, total_invested::text, total_earnings::text,
	is_admin, staking_enabled, connected_wallet, created_at, updated_at
`

// UserRepository implements the UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository with a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	var balance, totalInvested, totalEarnings string

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.FullName,
		&user.Email,
		&balance,
		&totalInvested,
		&totalEarnings,
		&user.IsAdmin,
		&user.StakingEnabled,
		&user.ConnectedWallet,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if user.Balance, err = decimal.NewFromString(balance); err != nil {
		return nil, fmt.Errorf("failed to parse balance %q: %w", balance, err)
	}
	if user.TotalInvested, err = decimal.NewFromString(totalInvested); err != nil {
		return nil, fmt.Errorf("failed to parse total invested %q: %w", totalInvested, err)
	}
	if user.TotalEarnings, err = decimal.NewFromString(totalEarnings); err != nil {
		return nil, fmt.Errorf("failed to parse total earnings %q: %w", totalEarnings, err)
	}
	return &user, nil
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, username))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return user, nil
}

// GetByIDForUpdate retrieves a user and locks the row until the enclosing
// transaction ends. Concurrent balance mutations for one user queue here.
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, id string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`

	user, err := scanUser(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock user %s: %w", id, err)
	}
	return user, nil
}

// Create inserts a new user with a zeroed ledger
func (r *UserRepository) Create(ctx context.Context, username, password, fullName, email string) (*entities.User, error) {
	query := `
		INSERT INTO users (username, password, full_name, email)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	user, err := scanUser(r.q.QueryRow(ctx, query, username, password, fullName, email))
	if err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", username, err)
	}
	return user, nil
}

// UpdateBalance persists a new balance for the user
func (r *UserRepository) UpdateBalance(ctx context.Context, id string, newBalance decimal.Decimal) error {
	query := `
		UPDATE users
		SET balance = $1::numeric, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, newBalance.StringFixed(2), id)
	if err != nil {
		return fmt.Errorf("failed to update balance for user %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", id)
	}
	return nil
}

// Update persists the mutable profile and ledger fields of the user
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	query := `
		UPDATE users
		SET balance = $1::numeric,
		    total_invested = $2::numeric,
		    total_earnings = $3::numeric,
		    staking_enabled = $4,
		    connected_wallet = $5,
		    updated_at = NOW()
		WHERE id = $6
	`

	result, err := r.q.Exec(ctx, query,
		user.Balance.StringFixed(2),
		user.TotalInvested.StringFixed(2),
		user.TotalEarnings.StringFixed(2),
		user.StakingEnabled,
		user.ConnectedWallet,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", user.ID)
	}
	return nil
}

// GetAll returns all users, newest first
func (r *UserRepository) GetAll(ctx context.Context) ([]*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	defer rows.Close()

	var users []*entities.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}
