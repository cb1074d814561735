package domain

import "errors"

var (
	// Denomination errors
	ErrInvalidDenomination   = errors.New("denomination face value must be positive")
	ErrDuplicateDenomination = errors.New("duplicate denomination face value")
	ErrNegativeCount         = errors.New("denomination count cannot be negative")
	ErrUnknownDenomination   = errors.New("breakdown references a denomination absent from the till")
	ErrIncompleteCatalog     = errors.New("denomination snapshot does not cover the till catalog")

	// Change errors
	ErrChangeImpossible = errors.New("cannot make exact change with available denominations")

	// Transaction errors
	ErrInvalidAmount             = errors.New("amount must be positive")
	ErrInvalidTransactionType    = errors.New("transaction type must be sale or expense")
	ErrInvalidPaymentMethod      = errors.New("payment method must be cash or online")
	ErrMissingCustomer           = errors.New("customer or description is required")
	ErrInsufficientPayment       = errors.New("payment amount must cover the sale amount")
	ErrChangeMismatch            = errors.New("change breakdown does not sum to the change amount")
	ErrPaymentMismatch           = errors.New("payment breakdown does not sum to the payment amount")
	ErrInsufficientDenominations = errors.New("till does not hold enough of a denomination")
	ErrTransactionNotFound       = errors.New("transaction not found")

	// Session errors
	ErrSessionActive     = errors.New("a register session is already active")
	ErrNoActiveSession   = errors.New("no active register session")
	ErrEmptyOpeningFloat = errors.New("opening denominations must total more than zero")
	ErrDayNotFound       = errors.New("no data recorded for that date")
	ErrPendingNotFound   = errors.New("pending transaction not found")
	ErrDebtNotFound      = errors.New("debt transaction not found")
	ErrProductNotFound   = errors.New("product not found")

	// Product errors
	ErrInvalidProductName     = errors.New("product name is required")
	ErrInvalidProductQuantity = errors.New("product quantity cannot be negative")
	ErrInvalidProductCategory = errors.New("unrecognized product category")

	// Report errors
	ErrInvalidDateRange = errors.New("invalid date range")
)
