package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dnoor/kasir/internal/domain"
)

// ProductRepository persists the product catalog. Toppings are stored
// as jsonb on the product row.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Create inserts a new catalog item.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	toppings, err := json.Marshal(product.Toppings)
	if err != nil {
		return fmt.Errorf("marshal toppings: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO products (
			id, name, category, price, quantity, toppings,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		product.ID, product.Name, string(product.Category),
		product.Price, product.Quantity, toppings,
		product.CreatedAt, product.UpdatedAt,
	)
	return err
}

const selectProductQuery = `
	SELECT id, name, category, price, quantity, toppings,
	       created_at, updated_at
	FROM products
`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var product domain.Product
	var category string
	var toppings []byte

	err := row.Scan(
		&product.ID, &product.Name, &category,
		&product.Price, &product.Quantity, &toppings,
		&product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	product.Category = domain.ProductCategory(category)
	if len(toppings) > 0 {
		if err := json.Unmarshal(toppings, &product.Toppings); err != nil {
			return nil, fmt.Errorf("unmarshal toppings: %w", err)
		}
	}
	return &product, nil
}

// GetByID loads one catalog item.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	row := r.pool.QueryRow(ctx, selectProductQuery+` WHERE id = $1`, id)
	return scanProduct(row)
}

// Update rewrites a catalog item's mutable fields.
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	toppings, err := json.Marshal(product.Toppings)
	if err != nil {
		return fmt.Errorf("marshal toppings: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE products
		SET name = $2, category = $3, price = $4, quantity = $5,
		    toppings = $6, updated_at = $7
		WHERE id = $1
	`,
		product.ID, product.Name, string(product.Category),
		product.Price, product.Quantity, toppings, product.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// Delete removes a catalog item.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// List returns catalog items ordered by name.
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	rows, err := r.pool.Query(ctx, selectProductQuery+` ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
