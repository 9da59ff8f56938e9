package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Type enumerates the five transaction kinds.
type Type string

const (
	Deposit    Type = "deposit"
	Withdrawal Type = "withdrawal"
	Dispute    Type = "dispute"
	Resolve    Type = "resolve"
	Chargeback Type = "chargeback"
)

// ParseType maps the wire spelling of a transaction type to its Type value.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case Deposit, Withdrawal, Dispute, Resolve, Chargeback:
		return Type(s), nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// Record is one transaction as supplied by an input adapter.
// Amount is nil for dispute, resolve and chargeback records.
type Record struct {
	Type   Type             `json:"type"`
	Client uint16           `json:"client"`
	Tx     uint32           `json:"tx"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}
