package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dnoor/kasir/internal/domain"
	"github.com/dnoor/kasir/internal/usecase"
)

// StatusResponse is the derived view of the active session.
type StatusResponse struct {
	Active          bool                   `json:"active"`
	Date            string                 `json:"date,omitempty"`
	InitialBalance  int64                  `json:"initial_balance"`
	CurrentBalance  int64                  `json:"current_balance"`
	CashOnHand      int64                  `json:"cash_on_hand"`
	Denominations   domain.DenominationSet `json:"denominations,omitempty"`
	Transactions    int                    `json:"transactions"`
	Pending         int                    `json:"pending"`
	Debts           int                    `json:"debts"`
	PersistFailures int64                  `json:"persist_failures,omitempty"`
	LastPersistErr  string                 `json:"last_persist_error,omitempty"`
}

// StatusFromUseCase converts a status snapshot to a response.
func StatusFromUseCase(st usecase.Status) *StatusResponse {
	return &StatusResponse{
		Active:          st.Active,
		Date:            st.Date,
		InitialBalance:  st.InitialBalance,
		CurrentBalance:  st.CurrentBalance,
		CashOnHand:      st.CashOnHand,
		Denominations:   st.Denominations,
		Transactions:    st.Transactions,
		Pending:         st.Pending,
		Debts:           st.Debts,
		PersistFailures: st.PersistFailures,
		LastPersistErr:  st.LastPersistErr,
	}
}

// DayResponse is one persisted day's snapshot.
type DayResponse struct {
	Date                 string                      `json:"date"`
	InitialBalance       int64                       `json:"initial_balance"`
	FinalBalance         int64                       `json:"final_balance"`
	InitialDenominations domain.DenominationSet      `json:"initial_denominations,omitempty"`
	Denominations        domain.DenominationSet      `json:"denominations"`
	Transactions         []domain.Transaction        `json:"transactions"`
	PendingTransactions  []domain.PendingTransaction `json:"pending_transactions,omitempty"`
	DebtTransactions     []domain.DebtTransaction    `json:"debt_transactions,omitempty"`
}

// DayFromDomain converts a daily snapshot to a response.
func DayFromDomain(d *domain.DailyData) *DayResponse {
	return &DayResponse{
		Date:                 d.Date,
		InitialBalance:       d.InitialBalance,
		FinalBalance:         d.FinalBalance,
		InitialDenominations: d.InitialDenominations,
		Denominations:        d.Denominations,
		Transactions:         d.Transactions,
		PendingTransactions:  d.PendingTransactions,
		DebtTransactions:     d.DebtTransactions,
	}
}

// ChangePreviewResponse is the result of a change calculation.
type ChangePreviewResponse struct {
	Amount    int64                   `json:"amount"`
	Possible  bool                    `json:"possible"`
	Breakdown []domain.BreakdownEntry `json:"breakdown,omitempty"`
}

// BalanceModificationResponse is one audit record.
type BalanceModificationResponse struct {
	ID              string    `json:"id"`
	SessionDate     string    `json:"session_date"`
	Type            string    `json:"type"`
	PreviousBalance int64     `json:"previous_balance"`
	NewBalance      int64     `json:"new_balance"`
	Difference      int64     `json:"difference"`
	Timestamp       time.Time `json:"timestamp"`
}

// BalanceModificationFromDomain converts an audit record to a response.
func BalanceModificationFromDomain(m *domain.BalanceModification) *BalanceModificationResponse {
	return &BalanceModificationResponse{
		ID:              m.ID,
		SessionDate:     m.SessionDate,
		Type:            string(m.Type),
		PreviousBalance: m.PreviousBalance,
		NewBalance:      m.NewBalance,
		Difference:      m.Difference,
		Timestamp:       m.Timestamp,
	}
}

// BalanceModificationsFromDomain converts a list of audit records.
func BalanceModificationsFromDomain(mods []*domain.BalanceModification) []*BalanceModificationResponse {
	result := make([]*BalanceModificationResponse, len(mods))
	for i, m := range mods {
		result[i] = BalanceModificationFromDomain(m)
	}
	return result
}

// RangeReportResponse is the aggregation over a date range.
type RangeReportResponse struct {
	From             string                   `json:"from"`
	To               string                   `json:"to"`
	Days             int                      `json:"days"`
	TotalSales       int64                    `json:"total_sales"`
	TotalExpenses    int64                    `json:"total_expenses"`
	Net              int64                    `json:"net"`
	CashSales        int64                    `json:"cash_sales"`
	OnlineSales      int64                    `json:"online_sales"`
	TransactionCount int                      `json:"transaction_count"`
	AverageSale      decimal.Decimal          `json:"average_sale"`
	ExpenseRatio     decimal.Decimal          `json:"expense_ratio"`
	ProductSales     []usecase.ProductSales   `json:"product_sales,omitempty"`
	CustomerTotals   []usecase.CustomerTotal  `json:"customer_totals,omitempty"`
}

// RangeReportFromUseCase converts a report to a response. The raw
// transaction list stays internal; exports carry it instead.
func RangeReportFromUseCase(r *usecase.RangeReport) *RangeReportResponse {
	return &RangeReportResponse{
		From:             r.From,
		To:               r.To,
		Days:             r.Days,
		TotalSales:       r.TotalSales,
		TotalExpenses:    r.TotalExpenses,
		Net:              r.Net,
		CashSales:        r.CashSales,
		OnlineSales:      r.OnlineSales,
		TransactionCount: r.TransactionCount,
		AverageSale:      r.AverageSale,
		ExpenseRatio:     r.ExpenseRatio,
		ProductSales:     r.ProductSales,
		CustomerTotals:   r.CustomerTotals,
	}
}

// ListResponse wraps a list payload with its length.
type ListResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

// NewListResponse builds a ListResponse from a slice.
func NewListResponse[T any](items []T) ListResponse[T] {
	return ListResponse[T]{Items: items, Total: int64(len(items))}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
