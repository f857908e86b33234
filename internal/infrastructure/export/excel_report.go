package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/flatfundpro/dues-portal/internal/domain/reconcile"
)

const (
	summarySheet  = "Summary"
	dateLayout    = "2006-01-02"
	xlsxMediaType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var flatHeaders = []string{
	"Block", "Flat", "Status", "Rule", "Paid", "Expected", "Days Late",
	"Records", "Last Payment Date", "Last Payment Status", "Last Payment Amount",
}

// ExcelReportWriter renders a collection report as an xlsx workbook with a
// Summary sheet and one row per flat.
type ExcelReportWriter struct {
	flatSheet string
	logger    *zap.Logger
}

// NewExcelReportWriter creates a writer; an empty sheet name defaults to "Flats"
func NewExcelReportWriter(flatSheet string, logger *zap.Logger) *ExcelReportWriter {
	if flatSheet == "" || flatSheet == summarySheet {
		flatSheet = "Flats"
	}
	return &ExcelReportWriter{flatSheet: flatSheet, logger: logger}
}

// ContentType returns the xlsx media type
func (e *ExcelReportWriter) ContentType() string {
	return xlsxMediaType
}

// FileExtension returns ".xlsx"
func (e *ExcelReportWriter) FileExtension() string {
	return ".xlsx"
}

// WriteCollectionReport writes the workbook to w
func (e *ExcelReportWriter) WriteCollectionReport(w io.Writer, report *reconcile.CollectionReport) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}

	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with "Sheet1"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(e.flatSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", e.flatSheet, err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	// built-in format 2 is "0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	if err := e.fillSummary(f, report, boldStyle, moneyStyle); err != nil {
		return err
	}
	if err := e.fillFlats(f, report, boldStyle, moneyStyle); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	e.logger.Info("Collection report rendered",
		zap.String("collection_id", report.Collection.ID),
		zap.Int("flats", len(report.Flats)))
	return nil
}

func (e *ExcelReportWriter) fillSummary(f *excelize.File, report *reconcile.CollectionReport, style, moneyStyle int) error {
	c := report.Collection
	rows := [][]interface{}{
		{"Collection", c.ID},
		{"Payment Type", c.PaymentType},
		{"Quarter", c.Quarter},
		{"Financial Year", c.FinancialYear},
		{"Due Date", c.DueDate.Format(dateLayout)},
		{"Amount Due", money(c.AmountDue)},
		{"Daily Fine", money(c.DailyFine)},
		{},
		{"Block", "Flats", "Paid", "Partial", "Pending", "Collected", "Expected"},
	}
	header := len(rows)

	summaries := append([]reconcile.Summary{}, report.Blocks...)
	total := report.Summary
	total.BlockName = "All blocks"
	summaries = append(summaries, total)
	for _, s := range summaries {
		rows = append(rows, []interface{}{
			s.BlockName,
			s.TotalFlats,
			s.Counts[reconcile.StatusPaid],
			s.Counts[reconcile.StatusPartial],
			s.Counts[reconcile.StatusPending],
			money(s.TotalCollected),
			money(s.TotalExpected),
		})
	}

	if err := writeRows(f, summarySheet, rows); err != nil {
		return err
	}
	headerCell, _ := excelize.CoordinatesToCellName(1, header)
	endCell, _ := excelize.CoordinatesToCellName(7, header)
	if err := f.SetCellStyle(summarySheet, headerCell, endCell, style); err != nil {
		return fmt.Errorf("failed to style summary header: %w", err)
	}
	if err := f.SetCellStyle(summarySheet, "B6", "B7", moneyStyle); err != nil {
		return fmt.Errorf("failed to style collection amounts: %w", err)
	}
	firstCell, _ := excelize.CoordinatesToCellName(6, header+1)
	lastCell, _ := excelize.CoordinatesToCellName(7, len(rows))
	if err := f.SetCellStyle(summarySheet, firstCell, lastCell, moneyStyle); err != nil {
		return fmt.Errorf("failed to style summary amounts: %w", err)
	}
	return f.SetColWidth(summarySheet, "A", "A", 18)
}

func (e *ExcelReportWriter) fillFlats(f *excelize.File, report *reconcile.CollectionReport, style, moneyStyle int) error {
	rows := make([][]interface{}, 0, len(report.Flats)+1)
	header := make([]interface{}, len(flatHeaders))
	for i, h := range flatHeaders {
		header[i] = h
	}
	rows = append(rows, header)

	for _, st := range report.Flats {
		var lastDate, lastAmount interface{}
		if st.LastPaymentDate != nil {
			lastDate = st.LastPaymentDate.Format(dateLayout)
		}
		if st.LastPaymentAmount.Valid {
			lastAmount = money(st.LastPaymentAmount.Decimal)
		}
		rows = append(rows, []interface{}{
			st.BlockName,
			st.FlatNumber,
			string(st.Status),
			string(st.Rule),
			money(st.PaidAmount),
			money(st.ExpectedAmount),
			st.DaysLate,
			st.MatchedRecords,
			lastDate,
			st.LastPaymentStatus,
			lastAmount,
		})
	}

	if err := writeRows(f, e.flatSheet, rows); err != nil {
		return err
	}
	endCell, _ := excelize.CoordinatesToCellName(len(flatHeaders), 1)
	if err := f.SetCellStyle(e.flatSheet, "A1", endCell, style); err != nil {
		return fmt.Errorf("failed to style flat header: %w", err)
	}
	if last := len(rows); last > 1 {
		for _, cols := range [][2]string{{"E", "F"}, {"K", "K"}} {
			if err := f.SetCellStyle(e.flatSheet, cols[0]+"2", fmt.Sprintf("%s%d", cols[1], last), moneyStyle); err != nil {
				return fmt.Errorf("failed to style flat amounts: %w", err)
			}
		}
	}
	return f.SetPanes(e.flatSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// money converts an amount to a numeric cell value rounded to cents
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
