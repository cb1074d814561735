package usecase

import (
	"context"
	"time"

	"github.com/dnoor/kasir/internal/domain"
)

// ProductUseCase handles product catalog management.
type ProductUseCase struct {
	productRepo ProductRepository
	idGen       IDGenerator
}

// NewProductUseCase creates a new ProductUseCase.
func NewProductUseCase(productRepo ProductRepository, idGen IDGenerator) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		idGen:       idGen,
	}
}

// CreateProductInput represents input for creating a product.
type CreateProductInput struct {
	Name     string
	Category domain.ProductCategory
	Price    int64
	Quantity int64
	Toppings []domain.Topping
}

// CreateProduct adds a catalog item.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	now := time.Now().UTC()
	product := &domain.Product{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		Category:  input.Category,
		Price:     input.Price,
		Quantity:  input.Quantity,
		Toppings:  input.Toppings,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID.
func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

// UpdateProductInput represents input for updating a product.
type UpdateProductInput struct {
	ID       string
	Name     string
	Category domain.ProductCategory
	Price    int64
	Quantity int64
	Toppings []domain.Topping
}

// UpdateProduct replaces a catalog item's mutable fields.
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, input UpdateProductInput) (*domain.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Category = input.Category
	product.Price = input.Price
	product.Quantity = input.Quantity
	product.Toppings = input.Toppings
	product.UpdatedAt = time.Now().UTC()

	if err := product.Validate(); err != nil {
		return nil, err
	}
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a catalog item.
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, id string) error {
	return uc.productRepo.Delete(ctx, id)
}

// ListProducts lists catalog items with pagination.
func (uc *ProductUseCase) ListProducts(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.productRepo.List(ctx, limit, offset)
}
