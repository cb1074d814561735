package dto

import (
	"testing"

	"github.com/dnoor/kasir/internal/domain"
)

func TestDenominationsToDomainBackfillsLabels(t *testing.T) {
	set := DenominationsToDomain([]DenominationRequest{
		{Value: 100000, Count: 2},
		{Value: 500, Label: "custom", Count: 3},
	})

	if len(set) != 2 {
		t.Fatalf("expected 2 denominations, got %d", len(set))
	}
	if set[0].Label != "Rp100.000" {
		t.Fatalf("expected label backfilled from catalog, got %q", set[0].Label)
	}
	if set[1].Label != "custom" {
		t.Fatalf("expected explicit label preserved, got %q", set[1].Label)
	}
	if set.Total() != 201500 {
		t.Fatalf("expected total 201500, got %d", set.Total())
	}
}

func TestInitializeRequestToUseCaseInput(t *testing.T) {
	req := InitializeRequest{
		Date: "2026-08-28",
		Denominations: []DenominationRequest{
			{Value: 50000, Count: 1},
		},
	}

	input := req.ToUseCaseInput()
	if input.Date != "2026-08-28" {
		t.Fatalf("expected date to pass through, got %q", input.Date)
	}
	if input.Denominations.Total() != 50000 {
		t.Fatalf("expected opening float 50000, got %d", input.Denominations.Total())
	}
}

func TestRecordTransactionRequestToUseCaseInput(t *testing.T) {
	req := RecordTransactionRequest{
		Type:          "sale",
		Amount:        15000,
		PaymentAmount: 20000,
		Change:        5000,
		Customer:      "Budi",
		PaymentMethod: "cash",
		PaymentBreakdown: []BreakdownRequest{
			{Value: 20000, Count: 1},
		},
		ChangeBreakdown: []BreakdownRequest{
			{Value: 5000, Count: 1},
		},
		OrderDetails: &OrderDetailsRequest{
			Items: []OrderItemRequest{
				{Name: "Nasi Goreng", Price: 15000, Quantity: 1},
			},
		},
	}

	input := req.ToUseCaseInput()

	if input.Type != domain.TransactionSale || input.PaymentMethod != domain.PaymentCash {
		t.Fatalf("expected typed enums, got type=%s method=%s", input.Type, input.PaymentMethod)
	}
	if len(input.PaymentBreakdown) != 1 || input.PaymentBreakdown[0].Value != 20000 {
		t.Fatalf("expected payment breakdown to convert, got %+v", input.PaymentBreakdown)
	}
	if input.OrderDetails == nil || len(input.OrderDetails.Items) != 1 {
		t.Fatalf("expected order details to convert, got %+v", input.OrderDetails)
	}
	if input.OrderDetails.Items[0].Name != "Nasi Goreng" {
		t.Fatalf("expected item name to pass through, got %q", input.OrderDetails.Items[0].Name)
	}
}

func TestRecordTransactionRequestNilOrderDetails(t *testing.T) {
	req := RecordTransactionRequest{
		Type:          "expense",
		Amount:        30000,
		Customer:      "Pasar",
		PaymentMethod: "cash",
	}

	input := req.ToUseCaseInput()
	if input.OrderDetails != nil {
		t.Fatalf("expected nil order details, got %+v", input.OrderDetails)
	}
	if len(input.PaymentBreakdown) != 0 || len(input.ChangeBreakdown) != 0 {
		t.Fatalf("expected empty breakdowns to stay nil")
	}
}

func TestProductRequestToUpdateInput(t *testing.T) {
	req := ProductRequest{
		Name:     "Es Teh",
		Category: "Beverage",
		Price:    5000,
		Quantity: 10,
	}

	input := req.ToUpdateInput("prod-1")
	if input.ID != "prod-1" || input.Name != "Es Teh" {
		t.Fatalf("expected update input with id, got %+v", input)
	}
	if input.Category != domain.CategoryBeverage {
		t.Fatalf("expected beverage category, got %s", input.Category)
	}
}
