package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation errors
var (
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrCustomerTooLong = errors.New("customer name exceeds maximum length")
	ErrAmountTooLarge  = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxCustomerLength = 255
	// MaxAmount caps a single transaction at one billion rupiah.
	MaxAmount int64 = 1_000_000_000

	// DateLayout is the calendar key format for daily sessions.
	DateLayout = "2006-01-02"
)

// ValidateDate checks a daily-session calendar key.
func ValidateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

// ValidateCustomer checks a customer name or expense description.
func ValidateCustomer(customer string) error {
	customer = strings.TrimSpace(customer)
	if customer == "" {
		return ErrMissingCustomer
	}
	if len(customer) > MaxCustomerLength {
		return fmt.Errorf("%w: limit is %d characters", ErrCustomerTooLong, MaxCustomerLength)
	}
	return nil
}

// ValidateAmount checks a monetary amount entered by the user.
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > MaxAmount {
		return fmt.Errorf("%w: maximum is %d", ErrAmountTooLarge, MaxAmount)
	}
	return nil
}

// ValidatePagination clamps pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 1000
	const defaultPageSize = 50

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
