package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dnoor/kasir/internal/adapter/http/dto"
	"github.com/dnoor/kasir/internal/domain"
)

// BalanceService defines the opening balance behavior needed by
// BalanceHandler.
type BalanceService interface {
	AddToBalance(ctx context.Context, added domain.DenominationSet) (*domain.BalanceModification, error)
	EditInitialBalance(ctx context.Context, newInitial domain.DenominationSet) (*domain.BalanceModification, error)
	ListBalanceModifications(ctx context.Context, limit, offset int) ([]*domain.BalanceModification, error)
}

// BalanceHandler handles opening balance HTTP requests.
type BalanceHandler struct {
	balanceUC BalanceService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceUC BalanceService) *BalanceHandler {
	return &BalanceHandler{balanceUC: balanceUC}
}

// Add adds denominations to the opening balance.
func (h *BalanceHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req dto.BalanceChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	mod, err := h.balanceUC.AddToBalance(r.Context(), dto.DenominationsToDomain(req.Denominations))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add to balance", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.BalanceModificationFromDomain(mod))
}

// EditInitial replaces the opening denomination snapshot.
func (h *BalanceHandler) EditInitial(w http.ResponseWriter, r *http.Request) {
	var req dto.BalanceChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	mod, err := h.balanceUC.EditInitialBalance(r.Context(), dto.DenominationsToDomain(req.Denominations))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to edit initial balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceModificationFromDomain(mod))
}

// ListModifications returns the audit history for the active date.
func (h *BalanceHandler) ListModifications(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	mods, err := h.balanceUC.ListBalanceModifications(r.Context(), limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list balance modifications", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.BalanceModificationsFromDomain(mods)))
}
