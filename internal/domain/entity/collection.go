package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpectedCollection is an admin-defined due that every flat of an apartment
// is expected to pay for one quarter of a financial year.
type ExpectedCollection struct {
	ID            string          `json:"id"`
	ApartmentID   string          `json:"apartment_id"`
	PaymentType   string          `json:"payment_type"`
	Quarter       string          `json:"quarter"`
	FinancialYear string          `json:"financial_year"`
	DueDate       time.Time       `json:"due_date"`
	AmountDue     decimal.Decimal `json:"amount_due"`
	DailyFine     decimal.Decimal `json:"daily_fine"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
}
