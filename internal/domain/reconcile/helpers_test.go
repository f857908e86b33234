package reconcile

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/flatfundpro/dues-portal/internal/domain/entity"
)

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := mustDate(s)
	return &t
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func amount(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: dec(s), Valid: true}
}

// q1Collection is due 2025-04-10 for 5000 with a 50/day fine
func q1Collection() *entity.ExpectedCollection {
	return &entity.ExpectedCollection{
		ID:            "col-q1",
		ApartmentID:   "apt-1",
		PaymentType:   entity.PaymentTypeMaintenance,
		Quarter:       "Q1",
		FinancialYear: "FY25",
		DueDate:       mustDate("2025-04-10"),
		AmountDue:     dec("5000"),
		DailyFine:     dec("50"),
		IsActive:      true,
	}
}

func linkedRecord(id, flatID string, amt decimal.NullDecimal, date *time.Time, status string) *entity.PaymentRecord {
	return &entity.PaymentRecord{
		ID:                   id,
		FlatID:               flatID,
		ExpectedCollectionID: "col-q1",
		PaymentType:          "maintenance",
		PaymentQuarter:       "Q1-2025",
		PaymentAmount:        amt,
		PaymentDate:          date,
		Status:               status,
		CreatedAt:            mustDate("2025-04-20"),
	}
}
