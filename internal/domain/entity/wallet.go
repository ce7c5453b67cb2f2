// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletEntryKind tells whether an entry adds to or draws from the wallet.
type WalletEntryKind string

const (
	WalletEntryCredit WalletEntryKind = "credit"
	WalletEntryDebit  WalletEntryKind = "debit"
)

// WalletEntry is one line of the wallet statement.
type WalletEntry struct {
	RecordID    string
	DisplayID   string // #transaction_<first 6 chars of RecordID>
	Kind        WalletEntryKind
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}

// Wallet is the monthly allowance read model of a user.
type Wallet struct {
	TotalAmount   decimal.Decimal
	TotalExpenses decimal.Decimal
	BalanceAmount decimal.Decimal
	Entries       []*WalletEntry
}
