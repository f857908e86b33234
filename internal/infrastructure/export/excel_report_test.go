package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/flatfundpro/dues-portal/internal/domain/entity"
	"github.com/flatfundpro/dues-portal/internal/domain/reconcile"
)

func sampleReport() *reconcile.CollectionReport {
	paidOn := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	flats := []reconcile.FlatStatus{
		{
			FlatID:            "f-101",
			FlatNumber:        "101",
			BlockID:           "b-1",
			BlockName:         "A",
			CollectionID:      "col-q1",
			Status:            reconcile.StatusPaid,
			Rule:              reconcile.RulePaidLate,
			PaidAmount:        decimal.NewFromInt(5250),
			ExpectedAmount:    decimal.NewFromInt(5000),
			DaysLate:          5,
			MatchedRecords:    1,
			LastPaymentDate:   &paidOn,
			LastPaymentStatus: entity.ApprovalApproved,
			LastPaymentAmount: decimal.NewNullDecimal(decimal.NewFromInt(5250)),
		},
		{
			FlatID:         "f-102",
			FlatNumber:     "102",
			BlockID:        "b-1",
			BlockName:      "A",
			CollectionID:   "col-q1",
			Status:         reconcile.StatusPending,
			Rule:           reconcile.RuleNoPayments,
			PaidAmount:     decimal.Zero,
			ExpectedAmount: decimal.NewFromInt(5000),
		},
	}
	return &reconcile.CollectionReport{
		Collection: entity.ExpectedCollection{
			ID:            "col-q1",
			PaymentType:   entity.PaymentTypeMaintenance,
			Quarter:       "Q1",
			FinancialYear: "FY25",
			DueDate:       time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
			AmountDue:     decimal.NewFromInt(5000),
			DailyFine:     decimal.NewFromInt(50),
		},
		Flats:   flats,
		Summary: reconcile.Aggregate(flats),
		Blocks:  reconcile.AggregateByBlock(flats),
	}
}

func TestExcelReportWriter_WriteCollectionReport(t *testing.T) {
	writer := NewExcelReportWriter("", zap.NewNop())

	var buf bytes.Buffer
	require.NoError(t, writer.WriteCollectionReport(&buf, sampleReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Flats"}, f.GetSheetList())

	t.Run("summary sheet", func(t *testing.T) {
		v, err := f.GetCellValue("Summary", "B1")
		require.NoError(t, err)
		assert.Equal(t, "col-q1", v)

		v, err = f.GetCellValue("Summary", "B5")
		require.NoError(t, err)
		assert.Equal(t, "2025-04-10", v)

		rows, err := f.GetRows("Summary")
		require.NoError(t, err)
		last := rows[len(rows)-1]
		assert.Equal(t, []string{"All blocks", "2", "1", "0", "1", "5250.00", "10000.00"}, last)
	})

	t.Run("flat sheet", func(t *testing.T) {
		rows, err := f.GetRows("Flats")
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "Block", rows[0][0])
		assert.Equal(t, []string{"A", "101", "paid", "paid_late", "5250.00", "5000.00", "5", "1", "2025-04-15", "Approved", "5250.00"}, rows[1])
		assert.Equal(t, "pending", rows[2][2])
		assert.Equal(t, "no_payments", rows[2][3])
	})

	t.Run("amounts are numeric cells", func(t *testing.T) {
		raw := excelize.Options{RawCellValue: true}
		for _, cell := range []struct{ sheet, ref, want string }{
			{"Flats", "E2", "5250"},
			{"Flats", "F2", "5000"},
			{"Flats", "K2", "5250"},
			{"Summary", "F11", "5250"},
			{"Summary", "G11", "10000"},
		} {
			v, err := f.GetCellValue(cell.sheet, cell.ref, raw)
			require.NoError(t, err)
			assert.Equal(t, cell.want, v, "%s!%s", cell.sheet, cell.ref)
		}
	})
}

func TestExcelReportWriter_Metadata(t *testing.T) {
	writer := NewExcelReportWriter("Summary", zap.NewNop())
	assert.Equal(t, "Flats", writer.flatSheet)
	assert.Equal(t, ".xlsx", writer.FileExtension())
	assert.Contains(t, writer.ContentType(), "spreadsheetml")

	assert.Error(t, writer.WriteCollectionReport(&bytes.Buffer{}, nil))
}
