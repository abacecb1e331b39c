package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aqlanhadi/stmtcsv/extractor"
	"github.com/aqlanhadi/stmtcsv/extractor/common"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const coffeeStatement = "01-Jan  01-Jan  Coffee Shop   -4.50   95.50\nClosing Balance   95.50\n"

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	viper.Reset()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestRoot_PositionalFileConverts(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "jan.txt")
	require.NoError(t, os.WriteFile(input, []byte(coffeeStatement), 0o644))

	require.NoError(t, runCLI(t, input, "--year", "2024"))

	content, err := os.ReadFile(filepath.Join(dir, "jan.new.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "2024-01-01,2024-01-01,Coffee Shop,4.50,,95.50\n")
}

func TestConvert_FlagsReachConversion(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "jan.txt")
	out := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(input, []byte(coffeeStatement), 0o644))

	require.NoError(t, runCLI(t, "convert", "-f", input, "-o", out, "-y", "2023", "-r", "--layout", "four_column"))

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, ",,Closing Balance,0.00", lines[1])
	assert.Equal(t, "2023-01-01,2023-01-01,Coffee Shop,-4.50", lines[2])
}

func TestConvert_Errors(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "jan.txt")
	require.NoError(t, os.WriteFile(input, []byte(coffeeStatement), 0o644))

	assert.Error(t, runCLI(t, "convert", "-f", filepath.Join(dir, "missing.txt")))
	assert.Error(t, runCLI(t, "convert", "-f", input, "-y", "24"))
	assert.Error(t, runCLI(t, "convert", "-f", input, "-t", "nosuchbank"))
}

func TestPrintResult_PlainText(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	closing := "95.50"
	buf := &bytes.Buffer{}

	printResult(buf, extractor.Result{
		Input:  "/tmp/jan.txt",
		Output: "/tmp/jan.new.csv",
		Statement: common.Statement{
			Transactions:   make([]common.Transaction, 2),
			TotalDebit:     decimal.RequireFromString("-4.5"),
			TotalCredit:    decimal.Zero,
			Nett:           decimal.RequireFromString("-4.5"),
			ClosingBalance: &closing,
			Unparsed:       1,
		},
	})

	assert.Equal(t,
		"Converted jan.txt to /tmp/jan.new.csv: 2 transactions, debits -4.50, credits 0.00, nett -4.50, closing 95.50\n"+
			"Warning: 1 amounts could not be read and were left out of the totals\n",
		buf.String())
}
