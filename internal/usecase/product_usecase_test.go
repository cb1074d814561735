package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnoor/kasir/internal/domain"
	"github.com/dnoor/kasir/internal/usecase"
	"github.com/dnoor/kasir/internal/usecase/mocks"
)

func newProductUseCase() (*usecase.ProductUseCase, *mocks.MockProductRepository) {
	repo := mocks.NewMockProductRepository()
	return usecase.NewProductUseCase(repo, mocks.NewMockIDGenerator()), repo
}

func TestProductUseCase_CreateProduct(t *testing.T) {
	ctx := context.Background()
	uc, _ := newProductUseCase()

	product, err := uc.CreateProduct(ctx, usecase.CreateProductInput{
		Name:     "Es Teh",
		Category: domain.CategoryBeverage,
		Price:    5000,
		Quantity: 100,
		Toppings: []domain.Topping{{Name: "Boba", Price: 2000}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.False(t, product.CreatedAt.IsZero())

	got, err := uc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Es Teh", got.Name)
}

func TestProductUseCase_CreateProduct_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   usecase.CreateProductInput
		wantErr error
	}{
		{
			name:    "blank name",
			input:   usecase.CreateProductInput{Name: " ", Category: domain.CategoryFood, Price: 1000},
			wantErr: domain.ErrInvalidProductName,
		},
		{
			name:    "unknown category",
			input:   usecase.CreateProductInput{Name: "Es Teh", Category: "weapons", Price: 1000},
			wantErr: domain.ErrInvalidProductCategory,
		},
		{
			name:    "negative quantity",
			input:   usecase.CreateProductInput{Name: "Es Teh", Category: domain.CategoryFood, Price: 1000, Quantity: -1},
			wantErr: domain.ErrInvalidProductQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newProductUseCase()
			_, err := uc.CreateProduct(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProductUseCase_UpdateProduct(t *testing.T) {
	ctx := context.Background()
	uc, _ := newProductUseCase()

	product, err := uc.CreateProduct(ctx, usecase.CreateProductInput{
		Name: "Es Teh", Category: domain.CategoryBeverage, Price: 5000, Quantity: 100,
	})
	require.NoError(t, err)

	updated, err := uc.UpdateProduct(ctx, usecase.UpdateProductInput{
		ID: product.ID, Name: "Es Teh Manis", Category: domain.CategoryBeverage,
		Price: 6000, Quantity: 80,
	})
	require.NoError(t, err)
	assert.Equal(t, "Es Teh Manis", updated.Name)
	assert.Equal(t, int64(6000), updated.Price)

	_, err = uc.UpdateProduct(ctx, usecase.UpdateProductInput{
		ID: "missing", Name: "x", Category: domain.CategoryFood, Price: 1000,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductUseCase_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	uc, _ := newProductUseCase()

	product, err := uc.CreateProduct(ctx, usecase.CreateProductInput{
		Name: "Es Teh", Category: domain.CategoryBeverage, Price: 5000,
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteProduct(ctx, product.ID))

	_, err = uc.GetProduct(ctx, product.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
