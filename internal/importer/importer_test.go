package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprout-dev/sprout/internal/model"
)

func TestLedgerParser_Parse(t *testing.T) {
	data, err := os.ReadFile("../../testdata/ledger_export.csv")
	require.NoError(t, err)

	p := &LedgerParser{}
	drafts, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	require.Len(t, drafts, 5)

	assert.Equal(t, "Lunch at corner cafe", drafts[0].Description)
	assert.Equal(t, "12.50", drafts[0].Amount.StringFixed(2))
	assert.Equal(t, "Food", drafts[0].CategoryName)
	assert.Equal(t, 12, drafts[0].Timestamp.Hour())

	// Date-only rows land at midnight.
	assert.Equal(t, 0, drafts[1].Timestamp.Hour())
	assert.Equal(t, 3, drafts[1].Timestamp.Day())
}

func TestLedgerParser_RejectsNonPositive(t *testing.T) {
	csv := "date,amount,description,category\n2025-06-03,-5.00,refund,Food\n"
	p := &LedgerParser{}
	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")
}

func TestLedgerParser_BadDate(t *testing.T) {
	csv := "date,amount,description,category\nNOTADATE,5.00,x,Food\n"
	p := &LedgerParser{}
	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing date")
}

func TestLedgerParser_EmptyFile(t *testing.T) {
	p := &LedgerParser{}
	drafts, err := p.Parse(strings.NewReader("date,amount,description,category\n"))
	require.NoError(t, err)
	assert.Nil(t, drafts)
}

func TestBankParser_KeepsOnlyDebits(t *testing.T) {
	data, err := os.ReadFile("../../testdata/bank_checking.csv")
	require.NoError(t, err)

	p := &BankParser{}
	drafts, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)

	// 6 rows, one is a payroll credit.
	require.Len(t, drafts, 5)
	for _, d := range drafts {
		assert.True(t, d.Amount.IsPositive(), "debits import as positive spend, got %s", d.Amount)
	}
	assert.Equal(t, "CORNER CAFE LUNCH", drafts[0].Description)
	assert.Equal(t, "12.50", drafts[0].Amount.StringFixed(2))
	assert.Equal(t, 2025, drafts[0].Timestamp.Year())
	assert.Equal(t, 6, int(drafts[0].Timestamp.Month()))
	assert.Equal(t, 3, drafts[0].Timestamp.Day())
}

func TestBankParser_BadAmount(t *testing.T) {
	csv := "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\nDEBIT,06/03/2025,desc,NOTANUMBER,DEBIT_CARD,100.00,\n"
	p := &BankParser{}
	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing amount")
}

func TestBankParser_EmptyFile(t *testing.T) {
	p := &BankParser{}
	drafts, err := p.Parse(strings.NewReader("Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\n"))
	require.NoError(t, err)
	assert.Nil(t, drafts)
}

func TestResolveCategories(t *testing.T) {
	cats := []model.Category{
		{ID: 1, Scope: model.ScopeDefault, Name: "Food"},
		{ID: 9, Scope: model.ScopeCustom, Name: "Books"},
	}
	drafts := []Draft{
		{Amount: decimal.NewFromInt(5), Description: "lunch", CategoryName: "food"},
		{Amount: decimal.NewFromInt(7), Description: "novel", CategoryName: "Books"},
		{Amount: decimal.NewFromInt(3), Description: "???", CategoryName: "Unknown"},
	}

	expenses := ResolveCategories(drafts, cats)
	require.Len(t, expenses, 3)
	assert.Equal(t, "default_1", expenses[0].CategoryRef)
	assert.Equal(t, "custom_9", expenses[1].CategoryRef)
	assert.Empty(t, expenses[2].CategoryRef)
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(&BankParser{})
	assert.NotNil(t, r.Get("Bank"))
	assert.NotNil(t, r.Get("BANK"))
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("ledger"))
	assert.NotNil(t, r.Get("bank"))
}

func TestScan_FindsCSVs(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "bank.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "other.txt"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "bank.csv", files[0].Name)
}

func TestScan_IgnoresProcessedDir(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	processedDir := filepath.Join(importDir, "processed")
	require.NoError(t, os.MkdirAll(processedDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "new.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(processedDir, "old.csv"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "new.csv", files[0].Name)
}

func TestScan_EmptyDir(t *testing.T) {
	files, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "bank.csv"), []byte("data"), 0o644))

	err := MarkProcessed(dir, "bank.csv")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(importDir, "bank.csv"))
	assert.True(t, os.IsNotExist(err))

	_, err = os.Stat(filepath.Join(dir, "import", "processed", "bank.csv"))
	assert.NoError(t, err)
}
