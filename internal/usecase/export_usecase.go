package usecase

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/dnoor/kasir/internal/domain"
)

// exportVersion tags JSON dumps so imports can reject unknown shapes.
const exportVersion = "1.0.0"

// ExportMetadata describes one export for later verification.
type ExportMetadata struct {
	ID        string    `json:"id"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// ExportBundle is the full JSON dump of register data.
type ExportBundle struct {
	Metadata ExportMetadata               `json:"metadata"`
	Days     []*domain.DailyData          `json:"days"`
	Products []*domain.Product            `json:"products"`
	Audit    []*domain.BalanceModification `json:"audit,omitempty"`
}

// ExportUseCase produces full-data dumps and spreadsheet exports.
type ExportUseCase struct {
	dailyRepo   DailyDataRepository
	productRepo ProductRepository
	auditRepo   AuditRepository
	report      *ReportUseCase
}

// NewExportUseCase creates a new ExportUseCase.
func NewExportUseCase(
	dailyRepo DailyDataRepository,
	productRepo ProductRepository,
	auditRepo AuditRepository,
	report *ReportUseCase,
) *ExportUseCase {
	return &ExportUseCase{
		dailyRepo:   dailyRepo,
		productRepo: productRepo,
		auditRepo:   auditRepo,
		report:      report,
	}
}

// ExportAll gathers every persisted day and the product catalog into one
// versioned bundle.
func (uc *ExportUseCase) ExportAll(ctx context.Context) (*ExportBundle, error) {
	dates, err := uc.dailyRepo.ListDates(ctx)
	if err != nil {
		return nil, err
	}

	bundle := &ExportBundle{
		Metadata: ExportMetadata{
			ID:        uuid.NewString(),
			Version:   exportVersion,
			Timestamp: time.Now().UTC(),
		},
	}

	for _, date := range dates {
		day, err := uc.dailyRepo.Get(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("export day %s: %w", date, err)
		}
		bundle.Days = append(bundle.Days, day)

		audit, err := uc.auditRepo.ListByDate(ctx, date, 1000, 0)
		if err != nil {
			return nil, fmt.Errorf("export audit %s: %w", date, err)
		}
		bundle.Audit = append(bundle.Audit, audit...)
	}

	products, err := uc.productRepo.List(ctx, 1000, 0)
	if err != nil {
		return nil, err
	}
	bundle.Products = products

	return bundle, nil
}

// ExportRangeXLSX renders the transactions in a date range as an .xlsx
// workbook: one transactions sheet plus a summary sheet.
func (uc *ExportUseCase) ExportRangeXLSX(ctx context.Context, from, to string) ([]byte, error) {
	report, err := uc.report.GetRangeReport(ctx, from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const txSheet = "Transactions"
	if err := f.SetSheetName("Sheet1", txSheet); err != nil {
		return nil, err
	}

	headers := []string{"ID", "Timestamp", "Type", "Customer", "Amount", "Payment", "Change", "Method"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(txSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, tx := range report.Transactions {
		values := []any{
			tx.ID,
			tx.Timestamp.Format(timestampLayout),
			string(tx.Type),
			tx.Customer,
			tx.Amount,
			tx.PaymentAmount,
			tx.Change,
			string(tx.PaymentMethod),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(txSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	const summarySheet = "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}
	summary := [][]any{
		{"From", report.From},
		{"To", report.To},
		{"Days", report.Days},
		{"Total sales", report.TotalSales},
		{"Total expenses", report.TotalExpenses},
		{"Net", report.Net},
		{"Cash sales", report.CashSales},
		{"Online sales", report.OnlineSales},
		{"Average sale", report.AverageSale.String()},
	}
	for row, pair := range summary {
		for col, v := range pair {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+1)
			if err := f.SetCellValue(summarySheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
