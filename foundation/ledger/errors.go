package ledger

import (
	"errors"
	"fmt"
)

// Set of sentinel errors detected before any state is touched.
var (
	// ErrInvalidAmount is returned when a deposit or withdrawal specifies
	// an amount of zero.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrReentrancy is returned when a mutating call is made from inside
	// the transfer step of an in-flight operation.
	ErrReentrancy = errors.New("reentrant call detected")
)

// =============================================================================

// CapacityError represents a deposit that would push the ledger total
// over the bank cap.
type CapacityError struct {
	Attempted uint64
	Cap       uint64
}

// Error implements the error interface.
func (ce *CapacityError) Error() string {
	return fmt.Sprintf("deposit would exceed bank cap, attempted total %d, cap %d", ce.Attempted, ce.Cap)
}

// =============================================================================

// LimitError represents a withdrawal larger than the per-transaction
// withdraw limit.
type LimitError struct {
	Attempted uint64
	Limit     uint64
}

// Error implements the error interface.
func (le *LimitError) Error() string {
	return fmt.Sprintf("withdrawal exceeds limit, attempted %d, limit %d", le.Attempted, le.Limit)
}

// =============================================================================

// InsufficientFundsError represents a withdrawal larger than the account's
// current balance.
type InsufficientFundsError struct {
	AccountID AccountID
	Attempted uint64
	Available uint64
}

// Error implements the error interface.
func (ie *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds, account %s, attempted %d, available %d", ie.AccountID, ie.Attempted, ie.Available)
}

// =============================================================================

// TransferError represents a failure reported by the transfer collaborator
// during a withdrawal. The balance effects have been restored.
type TransferError struct {
	Err error
}

// Error implements the error interface.
func (te *TransferError) Error() string {
	return fmt.Sprintf("transfer failed: %s", te.Err)
}

// Unwrap exposes the underlying transfer failure.
func (te *TransferError) Unwrap() error {
	return te.Err
}
