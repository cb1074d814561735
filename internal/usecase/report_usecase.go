package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dnoor/kasir/internal/domain"
)

// ReportUseCase aggregates committed transactions across date ranges.
// It is read-only: ledger entries are immutable once recorded (short of
// deletion), so a report over a fixed range is deterministic.
type ReportUseCase struct {
	dailyRepo DailyDataRepository
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(dailyRepo DailyDataRepository) *ReportUseCase {
	return &ReportUseCase{dailyRepo: dailyRepo}
}

// ProductSales is aggregated sales for one product name.
type ProductSales struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	Revenue  int64  `json:"revenue"`
}

// CustomerTotal is aggregated spend for one customer.
type CustomerTotal struct {
	Customer     string `json:"customer"`
	Transactions int    `json:"transactions"`
	Total        int64  `json:"total"`
}

// RangeReport is the aggregation over a date range.
type RangeReport struct {
	From             string
	To               string
	Days             int
	TotalSales       int64
	TotalExpenses    int64
	Net              int64
	CashSales        int64
	OnlineSales      int64
	TransactionCount int
	AverageSale      decimal.Decimal
	ExpenseRatio     decimal.Decimal
	ProductSales     []ProductSales
	CustomerTotals   []CustomerTotal
	Transactions     []domain.Transaction
}

// GetRangeReport aggregates all transactions between two dates,
// inclusive.
func (uc *ReportUseCase) GetRangeReport(ctx context.Context, from, to string) (*RangeReport, error) {
	transactions, days, err := uc.collectRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	report := &RangeReport{
		From:         from,
		To:           to,
		Days:         days,
		Transactions: transactions,
	}

	saleCount := 0
	products := make(map[string]*ProductSales)
	customers := make(map[string]*CustomerTotal)

	for _, tx := range transactions {
		report.TransactionCount++
		switch tx.Type {
		case domain.TransactionSale:
			report.TotalSales += tx.Amount
			saleCount++
			if tx.PaymentMethod == domain.PaymentCash {
				report.CashSales += tx.Amount
			} else {
				report.OnlineSales += tx.Amount
			}

			c, ok := customers[tx.Customer]
			if !ok {
				c = &CustomerTotal{Customer: tx.Customer}
				customers[tx.Customer] = c
			}
			c.Transactions++
			c.Total += tx.Amount

			if tx.OrderDetails != nil {
				for _, item := range tx.OrderDetails.Items {
					p, ok := products[item.Name]
					if !ok {
						p = &ProductSales{Name: item.Name}
						products[item.Name] = p
					}
					p.Quantity += item.Quantity
					p.Revenue += item.Price * item.Quantity
				}
			}
		case domain.TransactionExpense:
			report.TotalExpenses += tx.Amount
		}
	}

	report.Net = report.TotalSales - report.TotalExpenses
	if saleCount > 0 {
		report.AverageSale = decimal.NewFromInt(report.TotalSales).
			Div(decimal.NewFromInt(int64(saleCount))).Round(2)
	}
	if report.TotalSales > 0 {
		report.ExpenseRatio = decimal.NewFromInt(report.TotalExpenses).
			Div(decimal.NewFromInt(report.TotalSales)).Round(4)
	}

	for _, p := range products {
		report.ProductSales = append(report.ProductSales, *p)
	}
	sort.Slice(report.ProductSales, func(i, j int) bool {
		return report.ProductSales[i].Revenue > report.ProductSales[j].Revenue
	})

	for _, c := range customers {
		report.CustomerTotals = append(report.CustomerTotals, *c)
	}
	sort.Slice(report.CustomerTotals, func(i, j int) bool {
		return report.CustomerTotals[i].Total > report.CustomerTotals[j].Total
	})

	return report, nil
}

// collectRange loads the snapshots in range and flattens their ledgers
// into one timestamp-ordered sequence, deduplicated by transaction ID.
func (uc *ReportUseCase) collectRange(ctx context.Context, from, to string) ([]domain.Transaction, int, error) {
	if err := domain.ValidateDate(from); err != nil {
		return nil, 0, err
	}
	if err := domain.ValidateDate(to); err != nil {
		return nil, 0, err
	}
	if from > to {
		return nil, 0, domain.ErrInvalidDateRange
	}

	days, err := uc.dailyRepo.GetRange(ctx, from, to)
	if err != nil {
		return nil, 0, err
	}

	seen := make(map[string]bool)
	var transactions []domain.Transaction
	for _, day := range days {
		for _, tx := range day.Transactions {
			if !seen[tx.ID] {
				seen[tx.ID] = true
				transactions = append(transactions, tx)
			}
		}
	}
	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].Timestamp.Before(transactions[j].Timestamp)
	})
	return transactions, len(days), nil
}

// DaySummary is one day's totals for the days listing.
type DaySummary struct {
	Date           string `json:"date"`
	InitialBalance int64  `json:"initial_balance"`
	FinalBalance   int64  `json:"final_balance"`
	CashOnHand     int64  `json:"cash_on_hand"`
	Transactions   int    `json:"transactions"`
}

// GetDaySummaries summarizes every persisted day in a range, newest
// first.
func (uc *ReportUseCase) GetDaySummaries(ctx context.Context, from, to string) ([]DaySummary, error) {
	if err := domain.ValidateDate(from); err != nil {
		return nil, err
	}
	if err := domain.ValidateDate(to); err != nil {
		return nil, err
	}

	days, err := uc.dailyRepo.GetRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	summaries := make([]DaySummary, 0, len(days))
	for _, day := range days {
		summaries = append(summaries, DaySummary{
			Date:           day.Date,
			InitialBalance: day.InitialBalance,
			FinalBalance:   domain.CurrentBalance(day.InitialBalance, day.Transactions),
			CashOnHand:     day.Denominations.Total(),
			Transactions:   len(day.Transactions),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Date > summaries[j].Date
	})
	return summaries, nil
}

// timestampLayout is used when rendering timestamps into exports.
const timestampLayout = time.RFC3339
