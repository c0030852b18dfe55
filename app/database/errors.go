package database

import (
	"errors"
	"fmt"
)

// Integrity and lookup errors raised by the ledger. Handlers match on
// them with errors.Is to pick the HTTP status; the ledger itself never
// clamps or silently truncates amounts.
var (
	ErrNotFound            = errors.New("record not found")
	ErrInsufficientFunds   = errors.New("insufficient funds on account")
	ErrFeeOverpaid         = errors.New("payment exceeds the fee's pending amount")
	ErrTransactionLocked   = errors.New("transaction is linked to a payment or sub-ledger movement and cannot be changed")
	ErrFeeHasPayments      = errors.New("fee has payments and cannot be deleted")
	ErrCondominiumMismatch = errors.New("record does not belong to the given condominium")
	ErrAccountInUse        = errors.New("account is referenced by transactions and cannot be removed")
)

// ValidationError reports an invalid input field, rejected before any
// write happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
