package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment is a fixed-term position that accrues a fictional daily return
type Investment struct {
	ID          string          `json:"id" db:"id"`
	UserID      string          `json:"userId" db:"user_id"`
	PackageName string          `json:"packageName" db:"package_name"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	DailyReturn decimal.Decimal `json:"dailyReturn" db:"daily_return"`
	Duration    string          `json:"duration" db:"duration"`
	Status      string          `json:"status" db:"status"`
	StartDate   time.Time       `json:"startDate" db:"start_date"`
	EndDate     *time.Time      `json:"endDate" db:"end_date"`
}
