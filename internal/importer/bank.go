package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// BankParser parses checking-account CSV exports. Only debit rows become
// drafts; credits are deposits, not spending. Amounts are stored as positive
// values regardless of the export's sign convention.
type BankParser struct{}

const (
	bankDateFormat = "01/02/2006"
	bankNumFields  = 7
	bankColDate    = 1
	bankColDesc    = 2
	bankColAmount  = 3
)

// Format returns the parser name.
func (p *BankParser) Format() string { return "bank" }

// Parse reads a bank CSV and returns Drafts for the debit rows.
func (p *BankParser) Parse(r io.Reader) ([]Draft, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = bankNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading bank CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var drafts []Draft
	for i, rec := range records[1:] {
		d, debit, err := parseBankRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if !debit {
			continue
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

func parseBankRow(rec []string) (Draft, bool, error) {
	date, err := time.Parse(bankDateFormat, rec[bankColDate])
	if err != nil {
		return Draft{}, false, fmt.Errorf("parsing date %q: %w", rec[bankColDate], err)
	}

	amount, err := decimal.NewFromString(rec[bankColAmount])
	if err != nil {
		return Draft{}, false, fmt.Errorf("parsing amount %q: %w", rec[bankColAmount], err)
	}
	if !amount.IsNegative() {
		return Draft{}, false, nil
	}

	return Draft{
		Timestamp:   date.UTC(),
		Amount:      amount.Neg(),
		Description: rec[bankColDesc],
	}, true, nil
}
