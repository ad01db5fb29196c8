package transaction

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Type enumerates the supported transaction kinds.
type Type string

const (
	Deposit    Type = "deposit"
	Withdrawal Type = "withdrawal"
	Dispute    Type = "dispute"
	Resolve    Type = "resolve"
	Chargeback Type = "chargeback"
)

// ParseType converts an input field into a Type.
// Only the exact lowercase spellings are accepted.
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case Deposit, Withdrawal, Dispute, Resolve, Chargeback:
		return t, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// HasAmount reports whether records of this type carry an amount field.
// Dispute, resolve and chargeback reference a prior transaction instead.
func (t Type) HasAmount() bool {
	return t == Deposit || t == Withdrawal
}

type (
	// ClientID identifies an account holder.
	ClientID uint16
	// ID identifies a single transaction within a batch.
	ID uint32
)

// Transaction is one record of the input batch. Amount is set only for
// deposits and withdrawals.
type Transaction struct {
	Type     Type
	ClientID ClientID
	ID       ID
	Amount   decimal.NullDecimal
}
