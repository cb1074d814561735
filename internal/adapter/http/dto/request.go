package dto

import (
	"github.com/dnoor/kasir/internal/domain"
	"github.com/dnoor/kasir/internal/usecase"
)

// DenominationRequest is one denomination count in a request body.
type DenominationRequest struct {
	Value int64  `json:"value"`
	Label string `json:"label,omitempty"`
	Count int64  `json:"count"`
}

// ToDomain converts a denomination list to the domain set. Missing
// labels are filled from the standard catalog.
func DenominationsToDomain(denoms []DenominationRequest) domain.DenominationSet {
	labels := make(map[int64]string)
	for _, d := range domain.RupiahDenominations() {
		labels[d.Value] = d.Label
	}

	set := make(domain.DenominationSet, len(denoms))
	for i, d := range denoms {
		label := d.Label
		if label == "" {
			label = labels[d.Value]
		}
		set[i] = domain.Denomination{Value: d.Value, Label: label, Count: d.Count}
	}
	return set
}

// BreakdownRequest is one breakdown entry in a request body.
type BreakdownRequest struct {
	Value int64 `json:"value"`
	Count int64 `json:"count"`
}

func breakdownToDomain(entries []BreakdownRequest) []domain.BreakdownEntry {
	if len(entries) == 0 {
		return nil
	}
	out := make([]domain.BreakdownEntry, len(entries))
	for i, e := range entries {
		out[i] = domain.BreakdownEntry{Value: e.Value, Count: e.Count}
	}
	return out
}

// InitializeRequest starts a new register day.
type InitializeRequest struct {
	Date          string                `json:"date"`
	Denominations []DenominationRequest `json:"denominations"`
}

// ToUseCaseInput converts to use case input.
func (r *InitializeRequest) ToUseCaseInput() usecase.InitializeInput {
	return usecase.InitializeInput{
		Date:          r.Date,
		Denominations: DenominationsToDomain(r.Denominations),
	}
}

// ContinueRequest resumes a persisted day.
type ContinueRequest struct {
	Date string `json:"date"`
}

// ChangePreviewRequest asks whether change can be assembled.
type ChangePreviewRequest struct {
	Amount int64 `json:"amount"`
}

// OrderItemRequest is one product line in a sale.
type OrderItemRequest struct {
	ProductID        string                    `json:"product_id,omitempty"`
	Name             string                    `json:"name"`
	Price            int64                     `json:"price"`
	Quantity         int64                     `json:"quantity"`
	SelectedToppings []domain.ToppingSelection `json:"selected_toppings,omitempty"`
	Notes            string                    `json:"notes,omitempty"`
}

// OrderDetailsRequest captures what was sold.
type OrderDetailsRequest struct {
	Items           []OrderItemRequest `json:"items"`
	ShippingAddress string             `json:"shipping_address,omitempty"`
	ShippingAmount  int64              `json:"shipping_amount,omitempty"`
}

func (r *OrderDetailsRequest) toDomain() *domain.OrderDetails {
	if r == nil {
		return nil
	}
	details := &domain.OrderDetails{
		ShippingAddress: r.ShippingAddress,
		ShippingAmount:  r.ShippingAmount,
	}
	for _, item := range r.Items {
		details.Items = append(details.Items, domain.OrderItem{
			ProductID:        item.ProductID,
			Name:             item.Name,
			Price:            item.Price,
			Quantity:         item.Quantity,
			SelectedToppings: item.SelectedToppings,
			Notes:            item.Notes,
		})
	}
	return details
}

// RecordTransactionRequest records a sale or expense.
type RecordTransactionRequest struct {
	Type             string               `json:"type"`
	Amount           int64                `json:"amount"`
	PaymentAmount    int64                `json:"payment_amount,omitempty"`
	Change           int64                `json:"change,omitempty"`
	Customer         string               `json:"customer"`
	PaymentMethod    string               `json:"payment_method"`
	PaymentBreakdown []BreakdownRequest   `json:"payment_breakdown,omitempty"`
	ChangeBreakdown  []BreakdownRequest   `json:"change_breakdown,omitempty"`
	OrderDetails     *OrderDetailsRequest `json:"order_details,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordTransactionRequest) ToUseCaseInput() usecase.RecordTransactionInput {
	return usecase.RecordTransactionInput{
		Type:             domain.TransactionType(r.Type),
		Amount:           r.Amount,
		PaymentAmount:    r.PaymentAmount,
		Change:           r.Change,
		Customer:         r.Customer,
		PaymentMethod:    domain.PaymentMethod(r.PaymentMethod),
		PaymentBreakdown: breakdownToDomain(r.PaymentBreakdown),
		ChangeBreakdown:  breakdownToDomain(r.ChangeBreakdown),
		OrderDetails:     r.OrderDetails.toDomain(),
	}
}

// BalanceChangeRequest carries denominations for balance add/edit.
type BalanceChangeRequest struct {
	Denominations []DenominationRequest `json:"denominations"`
}

// AddPendingRequest queues an unpaid order.
type AddPendingRequest struct {
	Customer     string               `json:"customer"`
	Amount       int64                `json:"amount"`
	OrderDetails *OrderDetailsRequest `json:"order_details,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *AddPendingRequest) ToUseCaseInput() usecase.AddPendingInput {
	return usecase.AddPendingInput{
		Customer:     r.Customer,
		Amount:       r.Amount,
		OrderDetails: r.OrderDetails.toDomain(),
	}
}

// AddDebtRequest queues money owed by a customer.
type AddDebtRequest struct {
	Customer string `json:"customer"`
	Amount   int64  `json:"amount"`
}

// ProductRequest creates or updates a catalog item.
type ProductRequest struct {
	Name     string           `json:"name"`
	Category string           `json:"category"`
	Price    int64            `json:"price"`
	Quantity int64            `json:"quantity"`
	Toppings []domain.Topping `json:"toppings,omitempty"`
}

// ToCreateInput converts to use case input.
func (r *ProductRequest) ToCreateInput() usecase.CreateProductInput {
	return usecase.CreateProductInput{
		Name:     r.Name,
		Category: domain.ProductCategory(r.Category),
		Price:    r.Price,
		Quantity: r.Quantity,
		Toppings: r.Toppings,
	}
}

// ToUpdateInput converts to use case input.
func (r *ProductRequest) ToUpdateInput(id string) usecase.UpdateProductInput {
	return usecase.UpdateProductInput{
		ID:       id,
		Name:     r.Name,
		Category: domain.ProductCategory(r.Category),
		Price:    r.Price,
		Quantity: r.Quantity,
		Toppings: r.Toppings,
	}
}
