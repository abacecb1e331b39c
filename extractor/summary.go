package extractor

import (
	"github.com/aqlanhadi/stmtcsv/extractor/common"
	"github.com/shopspring/decimal"
)

// Summarize totals the assembled transactions. Debits are kept negative so
// that Nett is simply their sum with the credits. Closing balance records are
// not counted; the last one seen supplies ClosingBalance.
func Summarize(source, format string, txs []common.Transaction) common.Statement {
	statement := common.Statement{
		Source:       source,
		Format:       format,
		Transactions: txs,
		TotalCredit:  decimal.Zero,
		TotalDebit:   decimal.Zero,
		Nett:         decimal.Zero,
	}
	if statement.Transactions == nil {
		statement.Transactions = []common.Transaction{}
	}

	for _, tx := range txs {
		if tx.Closing {
			balance := tx.Balance
			statement.ClosingBalance = &balance
			continue
		}

		amount, err := common.CleanDecimal(tx.Amount)
		if err != nil {
			statement.Unparsed++
			continue
		}
		if amount.IsNegative() {
			statement.TotalDebit = statement.TotalDebit.Add(amount)
		} else {
			statement.TotalCredit = statement.TotalCredit.Add(amount)
		}
	}

	statement.Nett = statement.TotalCredit.Add(statement.TotalDebit)
	return statement
}
