package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dnoor/kasir/internal/adapter/http/dto"
	"github.com/dnoor/kasir/internal/domain"
	"github.com/dnoor/kasir/internal/receipt"
	"github.com/dnoor/kasir/internal/usecase"
)

// TransactionService defines the ledger behavior needed by
// TransactionHandler.
type TransactionService interface {
	RecordTransaction(ctx context.Context, input usecase.RecordTransactionInput) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
}

// TransactionHandler handles transaction HTTP requests.
type TransactionHandler struct {
	transactionUC   TransactionService
	receiptSettings receipt.Settings
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService, settings receipt.Settings) *TransactionHandler {
	return &TransactionHandler{
		transactionUC:   transactionUC,
		receiptSettings: settings,
	}
}

// Create records a sale or expense.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tx, err := h.transactionUC.RecordTransaction(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, tx)
}

// List returns the active day's ledger.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactionUC.ListTransactions(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(transactions))
}

// Get returns one ledger record.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	tx, err := h.transactionUC.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, tx)
}

// Delete removes a transaction and reverses its till effect.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	if err := h.transactionUC.DeleteTransaction(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// Receipt renders a transaction as a plain-text receipt.
func (h *TransactionHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	tx, err := h.transactionUC.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(receipt.Render(tx, h.receiptSettings)))
}
