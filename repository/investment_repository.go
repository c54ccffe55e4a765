package repository

import (
	"context"
	"fmt"

	"inovatrust/database"
	"inovatrust/domain/entities"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const investmentColumns = `
	id, user_id, package_name, amount::text, daily_return::text,
	duration, status, start_date, end_date
`

// InvestmentRepository implements investment data access
type InvestmentRepository struct {
	q queryable
}

// NewInvestmentRepository creates a new investment repository
func NewInvestmentRepository(db *database.DB) *InvestmentRepository {
	return &InvestmentRepository{q: db.Pool}
}

// newInvestmentRepositoryWithTx creates a new investment repository with a transaction
func newInvestmentRepositoryWithTx(tx queryable) *InvestmentRepository {
	return &InvestmentRepository{q: tx}
}

func scanInvestment(row pgx.Row) (*entities.Investment, error) {
	var inv entities.Investment
	var amount, dailyReturn string

	err := row.Scan(
		&inv.ID,
		&inv.UserID,
		&inv.PackageName,
		&amount,
		&dailyReturn,
		&inv.Duration,
		&inv.Status,
		&inv.StartDate,
		&inv.EndDate,
	)
	if err != nil {
		return nil, err
	}

	if inv.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("failed to parse amount %q: %w", amount, err)
	}
	if inv.DailyReturn, err = decimal.NewFromString(dailyReturn); err != nil {
		return nil, fmt.Errorf("failed to parse daily return %q: %w", dailyReturn, err)
	}
	return &inv, nil
}

// Create inserts a new investment position
func (r *InvestmentRepository) Create(ctx context.Context, inv *entities.Investment) error {
	query := `
		INSERT INTO investments (user_id, package_name, amount, daily_return, duration, status, end_date)
		VALUES ($1, $2, $3::numeric, $4::numeric, $5, $6, $7)
		RETURNING id, start_date
	`

	err := r.q.QueryRow(ctx, query,
		inv.UserID,
		inv.PackageName,
		inv.Amount.StringFixed(2),
		inv.DailyReturn.StringFixed(2),
		inv.Duration,
		inv.Status,
		inv.EndDate,
	).Scan(&inv.ID, &inv.StartDate)
	if err != nil {
		return fmt.Errorf("failed to create investment for user %s: %w", inv.UserID, err)
	}
	return nil
}

// GetByUser returns a user's investments, newest first
func (r *InvestmentRepository) GetByUser(ctx context.Context, userID string) ([]*entities.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE user_id = $1 ORDER BY start_date DESC`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get investments for user %s: %w", userID, err)
	}
	defer rows.Close()

	var investments []*entities.Investment
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}
		investments = append(investments, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate investments: %w", err)
	}
	return investments, nil
}
