// Package ledger holds the per-client account table.
package ledger

import (
	"sort"

	"github.com/mpalani/payflow/internal/domain"
)

// Ledger maps client ids to accounts. Accounts are created lazily and
// never deleted.
type Ledger struct {
	accounts map[uint16]*domain.Account
}

func New() *Ledger {
	return &Ledger{accounts: make(map[uint16]*domain.Account)}
}

// Get returns the account for client, if one exists.
func (l *Ledger) Get(client uint16) (*domain.Account, bool) {
	a, ok := l.accounts[client]
	return a, ok
}

// GetOrCreate returns the account for client, creating a zeroed one on
// first reference.
func (l *Ledger) GetOrCreate(client uint16) *domain.Account {
	if a, ok := l.accounts[client]; ok {
		return a
	}
	a := domain.NewAccount(client)
	l.accounts[client] = a
	return a
}

// Accounts returns all accounts in ascending client order, so reports
// are byte-for-byte reproducible.
func (l *Ledger) Accounts() []*domain.Account {
	out := make([]*domain.Account, 0, len(l.accounts))
	for _, a := range l.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Client < out[j].Client })
	return out
}

// Len reports the number of accounts.
func (l *Ledger) Len() int {
	return len(l.accounts)
}
