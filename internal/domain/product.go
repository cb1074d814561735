package domain

import (
	"strings"
	"time"
)

// ProductCategory groups catalog items for filtering and reports.
type ProductCategory string

const (
	CategoryFood     ProductCategory = "Food"
	CategoryBeverage ProductCategory = "Beverage"
	CategorySnack    ProductCategory = "Snack"
	CategoryOther    ProductCategory = "Other"
)

// ProductCategories lists the recognized categories in display order.
var ProductCategories = []ProductCategory{
	CategoryFood, CategoryBeverage, CategorySnack, CategoryOther,
}

// Topping is an optional add-on a product offers.
type Topping struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Product is one catalog item.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  ProductCategory `json:"category"`
	Price     int64           `json:"price"`
	Quantity  int64           `json:"quantity"`
	Toppings  []Topping       `json:"toppings,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Validate checks catalog item fields.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidProductName
	}
	if p.Price < 0 {
		return ErrInvalidAmount
	}
	if p.Quantity < 0 {
		return ErrInvalidProductQuantity
	}
	valid := false
	for _, c := range ProductCategories {
		if p.Category == c {
			valid = true
			break
		}
	}
	if !valid {
		return ErrInvalidProductCategory
	}
	return nil
}
