package repository

import (
	"context"
	"fmt"

	"inovatrust/database"
	"inovatrust/domain/entities"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const stakeColumns = `
	id, user_id, amount::text, currency, network, period_days,
	roi_percent::text, expected_return::text, status, wallet_address,
	tx_hash, start_date, end_date, created_at
`

// StakeRepository implements staking position data access
type StakeRepository struct {
	q queryable
}

// NewStakeRepository creates a new stake repository
func NewStakeRepository(db *database.DB) *StakeRepository {
	return &StakeRepository{q: db.Pool}
}

// newStakeRepositoryWithTx creates a new stake repository with a transaction
func newStakeRepositoryWithTx(tx queryable) *StakeRepository {
	return &StakeRepository{q: tx}
}

func scanStake(row pgx.Row) (*entities.Stake, error) {
	var s entities.Stake
	var amount, roiPercent, expectedReturn string

	err := row.Scan(
		&s.ID,
		&s.UserID,
		&amount,
		&s.Currency,
		&s.Network,
		&s.PeriodDays,
		&roiPercent,
		&expectedReturn,
		&s.Status,
		&s.WalletAddress,
		&s.TxHash,
		&s.StartDate,
		&s.EndDate,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if s.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("failed to parse amount %q: %w", amount, err)
	}
	if s.ROIPercent, err = decimal.NewFromString(roiPercent); err != nil {
		return nil, fmt.Errorf("failed to parse roi %q: %w", roiPercent, err)
	}
	if s.ExpectedReturn, err = decimal.NewFromString(expectedReturn); err != nil {
		return nil, fmt.Errorf("failed to parse expected return %q: %w", expectedReturn, err)
	}
	return &s, nil
}

// Create inserts a new staking position
func (r *StakeRepository) Create(ctx context.Context, s *entities.Stake) error {
	query := `
		INSERT INTO stakes (user_id, amount, currency, network, period_days,
		                    roi_percent, expected_return, status, wallet_address,
		                    tx_hash, start_date, end_date)
		VALUES ($1, $2::numeric, $3, $4, $5, $6::numeric, $7::numeric, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		s.UserID,
		s.Amount.StringFixed(2),
		s.Currency,
		s.Network,
		s.PeriodDays,
		s.ROIPercent.StringFixed(2),
		s.ExpectedReturn.StringFixed(2),
		s.Status,
		s.WalletAddress,
		s.TxHash,
		s.StartDate,
		s.EndDate,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create stake for user %s: %w", s.UserID, err)
	}
	return nil
}

// GetByID retrieves a stake by id
func (r *StakeRepository) GetByID(ctx context.Context, id string) (*entities.Stake, error) {
	query := `SELECT ` + stakeColumns + ` FROM stakes WHERE id = $1`

	s, err := scanStake(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stake %s: %w", id, err)
	}
	return s, nil
}

// GetByUser returns a user's stakes, newest first
func (r *StakeRepository) GetByUser(ctx context.Context, userID string) ([]*entities.Stake, error) {
	query := `SELECT ` + stakeColumns + ` FROM stakes WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

// GetAll returns every stake, newest first
func (r *StakeRepository) GetAll(ctx context.Context) ([]*entities.Stake, error) {
	query := `SELECT ` + stakeColumns + ` FROM stakes ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *StakeRepository) list(ctx context.Context, query string, args ...any) ([]*entities.Stake, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stakes: %w", err)
	}
	defer rows.Close()

	var stakes []*entities.Stake
	for rows.Next() {
		s, err := scanStake(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stake: %w", err)
		}
		stakes = append(stakes, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stakes: %w", err)
	}
	return stakes, nil
}

// Update persists the stake's status and term dates
func (r *StakeRepository) Update(ctx context.Context, s *entities.Stake) error {
	query := `
		UPDATE stakes
		SET status = $1, start_date = $2, end_date = $3
		WHERE id = $4
	`

	result, err := r.q.Exec(ctx, query, s.Status, s.StartDate, s.EndDate, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update stake %s: %w", s.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("stake %s not found", s.ID)
	}
	return nil
}
