package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dnoor/kasir/internal/adapter/http/dto"
	"github.com/dnoor/kasir/internal/domain"
	"github.com/dnoor/kasir/internal/usecase"
)

// ProductService defines the catalog behavior needed by ProductHandler.
type ProductService interface {
	CreateProduct(ctx context.Context, input usecase.CreateProductInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	UpdateProduct(ctx context.Context, input usecase.UpdateProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context, limit, offset int) ([]*domain.Product, error)
}

// ProductHandler handles product catalog HTTP requests.
type ProductHandler struct {
	productUC ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productUC ProductService) *ProductHandler {
	return &ProductHandler{productUC: productUC}
}

// Create adds a catalog item.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	product, err := h.productUC.CreateProduct(r.Context(), req.ToCreateInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create product", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// Get retrieves a catalog item.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	product, err := h.productUC.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get product", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Update replaces a catalog item's mutable fields.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	product, err := h.productUC.UpdateProduct(r.Context(), req.ToUpdateInput(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update product", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Delete removes a catalog item.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.productUC.DeleteProduct(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete product", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// List lists catalog items.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	products, err := h.productUC.ListProducts(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list products", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(products))
}
