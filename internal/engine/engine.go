// Package engine applies transaction records against the account ledger.
package engine

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mpalani/payflow/internal/domain"
	"github.com/mpalani/payflow/internal/ledger"
)

var (
	ErrAccountFrozen        = errors.New("account frozen")
	ErrMissingAmount        = errors.New("missing amount")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrDuplicateTransaction = errors.New("duplicate transaction")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrAlreadyUnderDispute  = errors.New("transaction already under dispute")
	ErrNotUnderDispute      = errors.New("transaction not under dispute")
	ErrUnknownType          = errors.New("unknown transaction type")
)

// deposit is the stored record of an accepted deposit. It is kept for the
// lifetime of the engine so the deposit stays disputable indefinitely.
type deposit struct {
	client   uint16
	amount   decimal.Decimal
	disputed bool
}

// Engine is the deterministic transaction state machine. It exclusively owns
// two tables: accounts by client id and deposits by transaction id. It is not
// safe for concurrent use; callers with multiple sources must serialize
// Process behind a single ordering point.
type Engine struct {
	ledger   *ledger.Ledger
	deposits map[uint32]*deposit
}

func New() *Engine {
	return &Engine{
		ledger:   ledger.New(),
		deposits: make(map[uint32]*deposit),
	}
}

// Ledger exposes the account table for reporting.
func (e *Engine) Ledger() *ledger.Ledger {
	return e.ledger
}

// Process applies one record. On error the ledger is left exactly as it was,
// except that a rejected withdrawal still lazily creates its account.
func (e *Engine) Process(rec domain.Record) error {
	// Locked is terminal: every transaction type against a frozen account
	// is rejected before dispatch.
	if a, ok := e.ledger.Get(rec.Client); ok && a.Locked {
		return fmt.Errorf("client %d: %w", rec.Client, ErrAccountFrozen)
	}

	switch rec.Type {
	case domain.Deposit:
		return e.deposit(rec)
	case domain.Withdrawal:
		return e.withdrawal(rec)
	case domain.Dispute:
		return e.dispute(rec)
	case domain.Resolve:
		return e.resolve(rec)
	case domain.Chargeback:
		return e.chargeback(rec)
	}
	return fmt.Errorf("%w %q", ErrUnknownType, rec.Type)
}

func (e *Engine) deposit(rec domain.Record) error {
	if rec.Amount == nil {
		return fmt.Errorf("tx %d: %w", rec.Tx, ErrMissingAmount)
	}
	if !rec.Amount.IsPositive() {
		return fmt.Errorf("tx %d: %w: %s", rec.Tx, ErrInvalidAmount, rec.Amount)
	}
	if _, ok := e.deposits[rec.Tx]; ok {
		return fmt.Errorf("tx %d: %w", rec.Tx, ErrDuplicateTransaction)
	}

	a := e.ledger.GetOrCreate(rec.Client)
	a.Available = a.Available.Add(*rec.Amount)

	e.deposits[rec.Tx] = &deposit{client: rec.Client, amount: *rec.Amount}
	return nil
}

func (e *Engine) withdrawal(rec domain.Record) error {
	if rec.Amount == nil {
		return fmt.Errorf("tx %d: %w", rec.Tx, ErrMissingAmount)
	}
	if !rec.Amount.IsPositive() {
		return fmt.Errorf("tx %d: %w: %s", rec.Tx, ErrInvalidAmount, rec.Amount)
	}

	a := e.ledger.GetOrCreate(rec.Client)
	if a.Available.LessThan(*rec.Amount) {
		return fmt.Errorf("client %d: %w: need %s, have %s",
			rec.Client, ErrInsufficientFunds, rec.Amount, a.Available)
	}

	a.Available = a.Available.Sub(*rec.Amount)
	return nil
}

// lookupDeposit resolves a dispute-family reference. A client mismatch is
// reported as not found so the caller cannot probe another client's deposits.
func (e *Engine) lookupDeposit(rec domain.Record) (*deposit, error) {
	d, ok := e.deposits[rec.Tx]
	if !ok || d.client != rec.Client {
		return nil, fmt.Errorf("tx %d: %w", rec.Tx, ErrTransactionNotFound)
	}
	return d, nil
}

func (e *Engine) dispute(rec domain.Record) error {
	d, err := e.lookupDeposit(rec)
	if err != nil {
		return err
	}
	if d.disputed {
		return fmt.Errorf("tx %d: %w", rec.Tx, ErrAlreadyUnderDispute)
	}

	d.disputed = true
	a := e.ledger.GetOrCreate(rec.Client)
	// Available may go negative if the deposit was already spent. The total
	// is unchanged.
	a.Available = a.Available.Sub(d.amount)
	a.Held = a.Held.Add(d.amount)
	return nil
}

func (e *Engine) resolve(rec domain.Record) error {
	d, err := e.lookupDeposit(rec)
	if err != nil {
		return err
	}
	if !d.disputed {
		return fmt.Errorf("tx %d: %w", rec.Tx, ErrNotUnderDispute)
	}

	d.disputed = false
	a := e.ledger.GetOrCreate(rec.Client)
	a.Held = a.Held.Sub(d.amount)
	a.Available = a.Available.Add(d.amount)
	return nil
}

func (e *Engine) chargeback(rec domain.Record) error {
	d, err := e.lookupDeposit(rec)
	if err != nil {
		return err
	}
	if !d.disputed {
		return fmt.Errorf("tx %d: %w", rec.Tx, ErrNotUnderDispute)
	}

	// The held funds are void, not returned.
	d.disputed = false
	a := e.ledger.GetOrCreate(rec.Client)
	a.Held = a.Held.Sub(d.amount)
	a.Locked = true
	return nil
}
