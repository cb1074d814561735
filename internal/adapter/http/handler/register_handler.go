package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dnoor/kasir/internal/adapter/http/dto"
	"github.com/dnoor/kasir/internal/domain"
	"github.com/dnoor/kasir/internal/usecase"
)

// RegisterService defines the session lifecycle behavior needed by
// RegisterHandler.
type RegisterService interface {
	Initialize(ctx context.Context, input usecase.InitializeInput) (*domain.DailyData, error)
	Continue(ctx context.Context, date string) (*domain.DailyData, error)
	Reset(ctx context.Context) error
	Close(ctx context.Context) error
	DeleteDay(ctx context.Context, date string) error
	ListDates(ctx context.Context) ([]string, error)
	CachedDay(ctx context.Context, date string) (*domain.DailyData, error)
	Status(ctx context.Context) usecase.Status
	PreviewChange(ctx context.Context, amount int64) ([]domain.BreakdownEntry, error)
}

// RegisterHandler handles register session HTTP requests.
type RegisterHandler struct {
	registerUC RegisterService
}

// NewRegisterHandler creates a new RegisterHandler.
func NewRegisterHandler(registerUC RegisterService) *RegisterHandler {
	return &RegisterHandler{registerUC: registerUC}
}

// Initialize starts a new register day.
func (h *RegisterHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	var req dto.InitializeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	day, err := h.registerUC.Initialize(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to initialize register", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.DayFromDomain(day))
}

// Continue resumes a previously persisted day.
func (h *RegisterHandler) Continue(w http.ResponseWriter, r *http.Request) {
	var req dto.ContinueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	day, err := h.registerUC.Continue(r.Context(), req.Date)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to continue day", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DayFromDomain(day))
}

// Reset clears the active day's transaction ledger.
func (h *RegisterHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.registerUC.Reset(r.Context()); err != nil {
		writeError(w, mapDomainError(err), "failed to reset ledger", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// Close detaches the active session.
func (h *RegisterHandler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.registerUC.Close(r.Context()); err != nil {
		writeError(w, mapDomainError(err), "failed to close session", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}

// Status reports the active session's derived balances.
func (h *RegisterHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.registerUC.Status(r.Context())
	writeJSON(w, http.StatusOK, dto.StatusFromUseCase(st))
}

// ListDays lists all persisted dates.
func (h *RegisterHandler) ListDays(w http.ResponseWriter, r *http.Request) {
	dates, err := h.registerUC.ListDates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list days", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dates))
}

// GetDay returns one persisted day's snapshot, served from cache when
// available.
func (h *RegisterHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "missing date", "")
		return
	}

	day, err := h.registerUC.CachedDay(r.Context(), date)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get day", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DayFromDomain(day))
}

// DeleteDay destroys all persisted state for a date.
func (h *RegisterHandler) DeleteDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "missing date", "")
		return
	}

	if err := h.registerUC.DeleteDay(r.Context(), date); err != nil {
		writeError(w, mapDomainError(err), "failed to delete day", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "date": date})
}

// ChangePreview runs the change calculator without recording anything.
func (h *RegisterHandler) ChangePreview(w http.ResponseWriter, r *http.Request) {
	var req dto.ChangePreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	breakdown, err := h.registerUC.PreviewChange(r.Context(), req.Amount)
	if err != nil {
		if errors.Is(err, domain.ErrChangeImpossible) {
			writeJSON(w, http.StatusOK, dto.ChangePreviewResponse{
				Amount:   req.Amount,
				Possible: false,
			})
			return
		}
		writeError(w, mapDomainError(err), "failed to preview change", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ChangePreviewResponse{
		Amount:    req.Amount,
		Possible:  true,
		Breakdown: breakdown,
	})
}
