package error

import "errors"

// Wallet domain errors.
var (
	// ErrTransactionNotFound is returned when an advance transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidSettlement is returned when an advance cannot move to the requested status.
	ErrInvalidSettlement = errors.New("only pending transactions can be settled")

	// ErrInvalidTransactionStatus is returned when a transaction status is unknown.
	ErrInvalidTransactionStatus = errors.New("invalid transaction status")
)

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidWalletAmount      Code = "WAL-010001"
	ErrCodeInvalidTransactionStatus Code = "WAL-010002"

	// Lookup errors (02XXXX)
	ErrCodeTransactionNotFound Code = "WAL-020001"
	ErrCodeWalletUserNotFound  Code = "WAL-020002"

	// State errors (04XXXX)
	ErrCodeInvalidSettlement Code = "WAL-040001"

	// Internal errors (09XXXX)
	ErrCodeWalletStorage Code = "WAL-090001"
)
