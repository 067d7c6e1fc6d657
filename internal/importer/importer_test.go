package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accountant-dev/accountant/internal/model"
)

const sampleStatement = `Date,Description,Amount
01/03/2025,GITHUB PRO,-4.00
01/05/2025,PAYROLL DEPOSIT,2500.00
01/07/2025,GROCERY STORE,-42.50
`

func TestBankParser(t *testing.T) {
	p := &BankParser{}
	assert.Equal(t, "bank", p.Format())

	entries, err := p.Parse(strings.NewReader(sampleStatement))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Negative amounts become debits with the absolute value.
	assert.Equal(t, "GITHUB PRO", entries[0].Name)
	assert.Equal(t, model.FlowDebit, entries[0].FlowType)
	assert.Equal(t, "4", entries[0].Amount.String())

	// Positive amounts stay credits.
	assert.Equal(t, model.FlowCredit, entries[1].FlowType)
	assert.Equal(t, "2500", entries[1].Amount.String())

	assert.Equal(t, 2025, entries[0].DateTime.Year())
	assert.NotEmpty(t, entries[0].ID, "imported entries get fresh ids")
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestBankParser_HeaderOnly(t *testing.T) {
	p := &BankParser{}
	entries, err := p.Parse(strings.NewReader("Date,Description,Amount\n"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBankParser_BadAmount(t *testing.T) {
	p := &BankParser{}
	_, err := p.Parse(strings.NewReader("Date,Description,Amount\n01/03/2025,X,abc\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("bank"))
	assert.NotNil(t, r.Get("BANK"), "format lookup is case insensitive")
	assert.Nil(t, r.Get("unknown"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&BankParser{})
	assert.Panics(t, func() { r.Register(&BankParser{}) })
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jan.csv"), []byte(sampleStatement), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "jan.csv", files[0].Name)
	assert.Equal(t, int64(len(sampleStatement)), files[0].Size)
}

func TestScan_MissingDir(t *testing.T) {
	files, err := Scan(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jan.csv"), []byte(sampleStatement), 0o644))

	err := MarkProcessed(dir, "jan.csv")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "jan.csv"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "processed", "jan.csv"))
	assert.NoError(t, err)
}
