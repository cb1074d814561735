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

// QueueService defines the pending/debt queue behavior needed by
// QueueHandler.
type QueueService interface {
	AddPending(ctx context.Context, input usecase.AddPendingInput) (*domain.PendingTransaction, error)
	ListPending(ctx context.Context) ([]domain.PendingTransaction, error)
	RemovePending(ctx context.Context, id string) error
	ContinuePending(ctx context.Context, id string) (*domain.PendingTransaction, error)
	AddDebt(ctx context.Context, input usecase.AddDebtInput) (*domain.DebtTransaction, error)
	ListDebts(ctx context.Context) ([]domain.DebtTransaction, error)
	RemoveDebt(ctx context.Context, id string) error
}

// QueueHandler handles pending order and debt HTTP requests.
type QueueHandler struct {
	queueUC QueueService
}

// NewQueueHandler creates a new QueueHandler.
func NewQueueHandler(queueUC QueueService) *QueueHandler {
	return &QueueHandler{queueUC: queueUC}
}

// AddPending queues an order taken but not yet paid.
func (h *QueueHandler) AddPending(w http.ResponseWriter, r *http.Request) {
	var req dto.AddPendingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	pending, err := h.queueUC.AddPending(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add pending transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, pending)
}

// ListPending returns the active session's pending queue.
func (h *QueueHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.queueUC.ListPending(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list pending transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(pending))
}

// RemovePending drops a pending transaction without recording a sale.
func (h *QueueHandler) RemovePending(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.queueUC.RemovePending(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to remove pending transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "removed", "id": id})
}

// ContinuePending hands a pending order back for sale entry.
func (h *QueueHandler) ContinuePending(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pending, err := h.queueUC.ContinuePending(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to continue pending transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, pending)
}

// AddDebt queues money owed by a customer.
func (h *QueueHandler) AddDebt(w http.ResponseWriter, r *http.Request) {
	var req dto.AddDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	debt, err := h.queueUC.AddDebt(r.Context(), usecase.AddDebtInput{
		Customer: req.Customer,
		Amount:   req.Amount,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add debt", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, debt)
}

// ListDebts returns the active session's debt queue.
func (h *QueueHandler) ListDebts(w http.ResponseWriter, r *http.Request) {
	debts, err := h.queueUC.ListDebts(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list debts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(debts))
}

// RemoveDebt settles or discards a debt record.
func (h *QueueHandler) RemoveDebt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.queueUC.RemoveDebt(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to remove debt", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "removed", "id": id})
}
