package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accountant-dev/accountant/internal/config"
	"github.com/accountant-dev/accountant/internal/store"
)

// writeConfig drops an accountant.yaml into dir pointing all paths inside it.
func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	cfg := config.Default()
	cfg.Ledger.Path = filepath.Join(dir, "ledger.csv")
	cfg.Logs.Dir = filepath.Join(dir, "logs")

	path := filepath.Join(dir, "accountant.yaml")
	require.NoError(t, config.Save(path, cfg))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized ledger")

	_, err = os.Stat(filepath.Join(dir, "accountant.yaml"))
	require.NoError(t, err)
	info, err := os.Stat(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "init", dir)
	require.NoError(t, err)

	_, err = run(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to overwrite")
}

func TestAddAndList(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)

	out, err := run(t, "add", "--config", cfg, "--name", "Cafe", "--amount", "4.75", "--reason", "coffee", "--flow", "debit")
	require.NoError(t, err)
	assert.Contains(t, out, "added ")

	out, err = run(t, "list", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Cafe")
	assert.Contains(t, out, "4.75")
	assert.Contains(t, out, "debit")
}

func TestAdd_BadFlowType(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)

	_, err := run(t, "add", "--config", cfg, "--name", "X", "--amount", "1", "--reason", "r", "--flow", "deposit")
	require.Error(t, err)
}

func TestList_MissingLedger(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)

	_, err := run(t, "list", "--config", cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)

	_, err := run(t, "add", "--config", cfg, "--name", "Cafe", "--amount", "4.75", "--reason", "coffee")
	require.NoError(t, err)
	_, err = run(t, "add", "--config", cfg, "--name", "Bank", "--amount", "100", "--reason", "transfer", "--flow", "savings")
	require.NoError(t, err)

	out, err := run(t, "find", "--config", cfg, "--where", "flow_type", "--value", "savings")
	require.NoError(t, err)
	assert.Contains(t, out, "Bank")
	assert.NotContains(t, out, "Cafe")
}

func TestUpdateCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)

	_, err := run(t, "add", "--config", cfg, "--name", "Spcl", "--amount", "1", "--reason", "r")
	require.NoError(t, err)

	out, err := run(t, "update", "--config", cfg, "--where", "name", "--value", "Spcl", "--set", "Not SO Spcl")
	require.NoError(t, err)
	assert.Contains(t, out, "updated 1 entries")

	out, err = run(t, "update", "--config", cfg, "--where", "name", "--value", "Spcl", "--set", "X")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to update")
}

func TestDeleteCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)

	_, err := run(t, "add", "--config", cfg, "--name", "Usr", "--amount", "1", "--reason", "r")
	require.NoError(t, err)

	out, err := run(t, "delete", "--config", cfg, "--where", "name", "--value", "Usr")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted 1 entries")
}

func TestDeleteCommand_SelectorRequired(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)

	_, err := run(t, "delete", "--config", cfg)
	require.Error(t, err)

	_, err = run(t, "delete", "--config", cfg, "--id", "x", "--where", "name", "--value", "y")
	require.Error(t, err)
}

func TestStatsCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)

	_, err := run(t, "add", "--config", cfg, "--name", "A", "--amount", "0.1", "--reason", "r")
	require.NoError(t, err)
	_, err = run(t, "add", "--config", cfg, "--name", "B", "--amount", "0.2", "--reason", "r")
	require.NoError(t, err)

	out, err := run(t, "stats", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "entries: 2")
	assert.Contains(t, out, "0.3")
}

func TestImportCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)

	statement := "Date,Description,Amount\n01/03/2025,GITHUB PRO,-4.00\n01/05/2025,PAYROLL,2500.00\n"
	stmtDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(stmtDir, 0o755))
	stmtPath := filepath.Join(stmtDir, "jan.csv")
	require.NoError(t, os.WriteFile(stmtPath, []byte(statement), 0o644))

	out, err := run(t, "import", "--config", cfg, stmtPath)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 entries")

	// Statement moved aside, entries landed in the ledger.
	_, err = os.Stat(stmtPath)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(stmtDir, "processed", "jan.csv"))
	assert.NoError(t, err)

	listOut, err := run(t, "list", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, listOut, "GITHUB PRO")
	assert.Contains(t, listOut, "PAYROLL")
}

func TestImportCommand_Directory(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)

	stmtDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(stmtDir, 0o755))
	jan := "Date,Description,Amount\n01/03/2025,GITHUB PRO,-4.00\n"
	feb := "Date,Description,Amount\n02/01/2025,PAYROLL,2500.00\n02/14/2025,FLOWERS,-30.00\n"
	require.NoError(t, os.WriteFile(filepath.Join(stmtDir, "jan.csv"), []byte(jan), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(stmtDir, "feb.csv"), []byte(feb), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(stmtDir, "notes.txt"), []byte("skip"), 0o644))

	out, err := run(t, "import", "--config", cfg, stmtDir)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 1 entries from jan.csv")
	assert.Contains(t, out, "imported 2 entries from feb.csv")

	// Every statement moved aside, non-CSV files left alone.
	for _, name := range []string{"jan.csv", "feb.csv"} {
		_, err = os.Stat(filepath.Join(stmtDir, name))
		assert.True(t, os.IsNotExist(err), "%s should be moved", name)
		_, err = os.Stat(filepath.Join(stmtDir, "processed", name))
		assert.NoError(t, err)
	}
	_, err = os.Stat(filepath.Join(stmtDir, "notes.txt"))
	assert.NoError(t, err)

	listOut, err := run(t, "list", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, listOut, "GITHUB PRO")
	assert.Contains(t, listOut, "FLOWERS")
}

func TestImportCommand_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)

	stmtDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(stmtDir, 0o755))

	out, err := run(t, "import", "--config", cfg, stmtDir)
	require.NoError(t, err)
	assert.Contains(t, out, "no statement CSVs")
}
