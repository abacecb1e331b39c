package common

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Statement is the result of converting one text export.
type Statement struct {
	Source         string          `json:"source"`
	Format         string          `json:"format"`
	Transactions   []Transaction   `json:"transactions"`
	TotalCredit    decimal.Decimal `json:"total_credit"`
	TotalDebit     decimal.Decimal `json:"total_debit"`
	Nett           decimal.Decimal `json:"nett"`
	ClosingBalance *string         `json:"closing_balance,omitempty"`
	Unparsed       int             `json:"unparsed,omitempty"`
}

// Transaction holds one statement row as normalised text. Dates are either
// empty or YYYY-MM-DD; Amount carries an explicit leading '-' for debits.
type Transaction struct {
	DateReceived  string `json:"date_received"`
	DateProcessed string `json:"date_processed"`
	Description   string `json:"description"`
	Amount        string `json:"amount"`
	Balance       string `json:"balance"`
	Closing       bool   `json:"closing,omitempty"`
}

// IsDebit reports whether the amount is signed negative.
func (t Transaction) IsDebit() bool {
	return len(t.Amount) > 0 && t.Amount[0] == '-'
}

// Magnitude returns the amount without its sign.
func (t Transaction) Magnitude() string {
	if t.IsDebit() {
		return t.Amount[1:]
	}
	return t.Amount
}

// AppendDescription extends the description with a continuation line.
func (t *Transaction) AppendDescription(line string) {
	t.Description += " " + CleanDescription(line)
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s %s - %q: %s (%s)", t.DateReceived, t.DateProcessed, t.Description, t.Amount, t.Balance)
}
