// Package csvio reads transaction CSV streams and writes account reports.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mpalani/payflow/internal/domain"
)

// Reader streams transaction records from CSV input. The expected header is
// "type,client,tx,amount"; fields are whitespace-trimmed and the amount
// column may be empty or missing entirely on dispute, resolve and chargeback
// rows.
type Reader struct {
	cr   *csv.Reader
	cols map[string]int
	line int
}

func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &Reader{cr: cr}
}

func (r *Reader) readHeader() error {
	row, err := r.cr.Read()
	if err == io.EOF {
		return io.EOF
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	r.line++

	r.cols = make(map[string]int, len(row))
	for i, name := range row {
		r.cols[strings.TrimSpace(name)] = i
	}
	for _, name := range []string{"type", "client", "tx"} {
		if _, ok := r.cols[name]; !ok {
			return fmt.Errorf("header missing %q column", name)
		}
	}
	return nil
}

func (r *Reader) field(row []string, name string) string {
	i, ok := r.cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Read returns the next record, or io.EOF when the input is exhausted.
func (r *Reader) Read() (domain.Record, error) {
	if r.cols == nil {
		if err := r.readHeader(); err != nil {
			return domain.Record{}, err
		}
	}

	row, err := r.cr.Read()
	if err == io.EOF {
		return domain.Record{}, io.EOF
	}
	if err != nil {
		return domain.Record{}, err
	}
	r.line++

	typ, err := domain.ParseType(r.field(row, "type"))
	if err != nil {
		return domain.Record{}, fmt.Errorf("line %d: %w", r.line, err)
	}

	client, err := strconv.ParseUint(r.field(row, "client"), 10, 16)
	if err != nil {
		return domain.Record{}, fmt.Errorf("line %d: bad client id: %w", r.line, err)
	}

	tx, err := strconv.ParseUint(r.field(row, "tx"), 10, 32)
	if err != nil {
		return domain.Record{}, fmt.Errorf("line %d: bad tx id: %w", r.line, err)
	}

	rec := domain.Record{
		Type:   typ,
		Client: uint16(client),
		Tx:     uint32(tx),
	}

	if raw := r.field(row, "amount"); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.Record{}, fmt.Errorf("line %d: bad amount: %w", r.line, err)
		}
		rec.Amount = &amount
	}

	return rec, nil
}
