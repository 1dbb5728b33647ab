package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerParser parses the native export format: date,amount,description,category.
type LedgerParser struct{}

const (
	ledgerDateFormat     = "2006-01-02"
	ledgerDateTimeFormat = "2006-01-02 15:04"
	ledgerNumFields      = 4
	ledgerColDate        = 0
	ledgerColAmount      = 1
	ledgerColDesc        = 2
	ledgerColCategory    = 3
)

// Format returns the parser name.
func (p *LedgerParser) Format() string { return "ledger" }

// Parse reads a native CSV and returns Drafts.
func (p *LedgerParser) Parse(r io.Reader) ([]Draft, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = ledgerNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var drafts []Draft
	for i, rec := range records[1:] {
		d, err := parseLedgerRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

func parseLedgerRow(rec []string) (Draft, error) {
	ts, err := time.Parse(ledgerDateTimeFormat, rec[ledgerColDate])
	if err != nil {
		ts, err = time.Parse(ledgerDateFormat, rec[ledgerColDate])
		if err != nil {
			return Draft{}, fmt.Errorf("parsing date %q: %w", rec[ledgerColDate], err)
		}
	}

	amount, err := decimal.NewFromString(rec[ledgerColAmount])
	if err != nil {
		return Draft{}, fmt.Errorf("parsing amount %q: %w", rec[ledgerColAmount], err)
	}
	if !amount.IsPositive() {
		return Draft{}, fmt.Errorf("amount must be positive, got %s", amount)
	}

	return Draft{
		Timestamp:    ts.UTC(),
		Amount:       amount,
		Description:  rec[ledgerColDesc],
		CategoryName: rec[ledgerColCategory],
	}, nil
}
