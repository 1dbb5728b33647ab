// Package auditlog keeps an append-only CSV trail of ledger mutations.
// Edits and deletes retroactively change the rollover chain, so having a
// record of who changed what and when matters for reconciling history.
package auditlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Action identifies the kind of mutation recorded.
type Action string

const (
	ActionAdd    Action = "add"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
	ActionImport Action = "import"
)

// Entry is one row in the audit log.
type Entry struct {
	Timestamp time.Time
	UserID    int64
	Action    Action
	ExpenseID int64
	Amount    string // decimal string as recorded, empty for bulk actions
	Details   string
}

// Header is the CSV header for audit-log.csv.
const Header = "timestamp,user_id,action,expense_id,amount,details"

const (
	numFields    = 6
	logFile      = "audit-log.csv"
	colTimestamp = 0
	colUserID    = 1
	colAction    = 2
	colExpenseID = 3
	colAmount    = 4
	colDetails   = 5
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colUserID] = strconv.FormatInt(e.UserID, 10)
	row[colAction] = string(e.Action)
	row[colExpenseID] = strconv.FormatInt(e.ExpenseID, 10)
	row[colAmount] = e.Amount
	row[colDetails] = e.Details
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	userID, err := strconv.ParseInt(record[colUserID], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing user id %q: %w", record[colUserID], err)
	}
	expenseID, err := strconv.ParseInt(record[colExpenseID], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing expense id %q: %w", record[colExpenseID], err)
	}

	return Entry{
		Timestamp: ts,
		UserID:    userID,
		Action:    Action(record[colAction]),
		ExpenseID: expenseID,
		Amount:    record[colAmount],
		Details:   record[colDetails],
	}, nil
}

// Append writes entries to <dataDir>/audit-log.csv, creating the file and
// header if needed.
func Append(dataDir string, entries []Entry) error {
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	path := filepath.Join(dataDir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <dataDir>/audit-log.csv.
// Returns an empty slice if the file does not exist.
func Read(dataDir string) ([]Entry, error) {
	path := filepath.Join(dataDir, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading audit log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
