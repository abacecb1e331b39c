// Package output renders assembled transactions as CSV.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/aqlanhadi/stmtcsv/extractor/common"
)

// Stdout is the output path that writes to standard output.
const Stdout = "-"

var (
	sixColumnHeader  = []string{"Date", "Processed", "Description", "Debits ($)", "Credits ($)", "Balance ($)"}
	fourColumnHeader = []string{"Processed Date", "Transaction Date", "Details", "Amount"}
)

// Header returns the fixed header row of a layout.
func Header(layout common.Layout) ([]string, error) {
	switch layout {
	case common.LayoutSixColumn:
		return slices.Clone(sixColumnHeader), nil
	case common.LayoutFourColumn:
		return slices.Clone(fourColumnHeader), nil
	}
	return nil, fmt.Errorf("%w: %q", common.ErrUnknownLayout, layout)
}

// Row maps one transaction onto the columns of a layout. In the six column
// layout exactly one of debit and credit is filled, chosen by the sign of the
// amount; the four column layout keeps the signed amount and lists the
// processed date first.
func Row(layout common.Layout, tx common.Transaction) ([]string, error) {
	switch layout {
	case common.LayoutSixColumn:
		debit, credit := "", tx.Magnitude()
		if tx.IsDebit() {
			debit, credit = credit, ""
		}
		return []string{tx.DateReceived, tx.DateProcessed, tx.Description, debit, credit, tx.Balance}, nil
	case common.LayoutFourColumn:
		return []string{tx.DateProcessed, tx.DateReceived, tx.Description, tx.Amount}, nil
	}
	return nil, fmt.Errorf("%w: %q", common.ErrUnknownLayout, layout)
}

// Write renders the header and one row per transaction to w. With reverse
// set the rows come out last-first; the header always leads.
func Write(w io.Writer, txs []common.Transaction, layout common.Layout, reverse bool) error {
	header, err := Header(layout)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	ordered := txs
	if reverse {
		ordered = slices.Clone(txs)
		slices.Reverse(ordered)
	}
	for _, tx := range ordered {
		row, err := Row(layout, tx)
		if err != nil {
			return err
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// Render builds the complete CSV text in memory.
func Render(txs []common.Transaction, layout common.Layout, reverse bool) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, txs, layout, reverse); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteFile replaces the file at path with content in a single write, or
// prints it when path is Stdout.
func WriteFile(path string, content string) (err error) {
	if path == Stdout {
		_, err = io.WriteString(os.Stdout, content)
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file %s: %w", path, closeErr)
		}
	}()

	if _, err = io.WriteString(f, content); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
