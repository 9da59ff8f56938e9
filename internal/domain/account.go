package domain

import "github.com/shopspring/decimal"

// Account holds a single client's balances and lock state.
type Account struct {
	Client    uint16          `json:"client"`
	Available decimal.Decimal `json:"available"`
	Held      decimal.Decimal `json:"held"`
	Locked    bool            `json:"locked"`
}

// NewAccount returns a zeroed, unlocked account for the given client.
func NewAccount(client uint16) *Account {
	return &Account{
		Client:    client,
		Available: decimal.Zero,
		Held:      decimal.Zero,
	}
}

// Total is the sum of available and held funds.
func (a *Account) Total() decimal.Decimal {
	return a.Available.Add(a.Held)
}

// Snapshot is the reporting view of an account, with monetary fields
// rendered to exactly four fractional digits.
type Snapshot struct {
	Client    uint16 `json:"client"`
	Available string `json:"available"`
	Held      string `json:"held"`
	Total     string `json:"total"`
	Locked    bool   `json:"locked"`
}

// NewSnapshot builds the reporting view of an account.
func NewSnapshot(a *Account) Snapshot {
	return Snapshot{
		Client:    a.Client,
		Available: a.Available.StringFixed(4),
		Held:      a.Held.StringFixed(4),
		Total:     a.Total().StringFixed(4),
		Locked:    a.Locked,
	}
}
