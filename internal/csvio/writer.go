package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/mpalani/payflow/internal/domain"
)

// WriteAccounts renders accounts as CSV with monetary fields fixed to four
// fractional digits. Callers pass accounts in the order they want reported;
// Ledger.Accounts already yields ascending client order.
func WriteAccounts(w io.Writer, accounts []*domain.Account) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}

	for _, a := range accounts {
		s := domain.NewSnapshot(a)
		row := []string{
			strconv.FormatUint(uint64(s.Client), 10),
			s.Available,
			s.Held,
			s.Total,
			strconv.FormatBool(s.Locked),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
