package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dnoor/kasir/internal/adapter/http/dto"
	"github.com/dnoor/kasir/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

var notFoundErrors = []error{
	domain.ErrTransactionNotFound,
	domain.ErrDayNotFound,
	domain.ErrPendingNotFound,
	domain.ErrDebtNotFound,
	domain.ErrProductNotFound,
}

var badRequestErrors = []error{
	domain.ErrInvalidDenomination,
	domain.ErrDuplicateDenomination,
	domain.ErrNegativeCount,
	domain.ErrUnknownDenomination,
	domain.ErrIncompleteCatalog,
	domain.ErrInvalidAmount,
	domain.ErrInvalidTransactionType,
	domain.ErrInvalidPaymentMethod,
	domain.ErrMissingCustomer,
	domain.ErrInsufficientPayment,
	domain.ErrChangeMismatch,
	domain.ErrPaymentMismatch,
	domain.ErrEmptyOpeningFloat,
	domain.ErrInvalidDate,
	domain.ErrInvalidDateRange,
	domain.ErrCustomerTooLong,
	domain.ErrAmountTooLarge,
	domain.ErrInvalidProductName,
	domain.ErrInvalidProductQuantity,
	domain.ErrInvalidProductCategory,
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionActive):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNoActiveSession):
		return http.StatusConflict
	case errors.Is(err, domain.ErrChangeImpossible):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInsufficientDenominations):
		return http.StatusUnprocessableEntity
	}

	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
