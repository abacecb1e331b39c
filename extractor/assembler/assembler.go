// Package assembler turns the lines of a statement text export into
// transactions. Each line is classified against an ordered rule list, first
// match wins, while at most one transaction is open and collecting
// continuation lines.
package assembler

import (
	"regexp"

	"github.com/aqlanhadi/stmtcsv/extractor/common"
	"github.com/rs/zerolog"
)

// Class is the category a line was sorted into.
type Class string

const (
	ClassBlank          Class = "blank"
	ClassClosingBalance Class = "closing_balance"
	ClassTransaction    Class = "transaction"
	ClassPageBoundary   Class = "page_boundary"
	ClassContinuation   Class = "continuation"
	ClassIgnored        Class = "ignored"
)

// closingAmount is the amount given to closing balance records.
const closingAmount = "0.00"

type match struct {
	re     *regexp.Regexp
	groups []string
}

// group returns the text captured by a named group, or "" when the pattern
// has no such group or it did not participate.
func (m match) group(name string) string {
	if m.re == nil {
		return ""
	}
	idx := m.re.SubexpIndex(name)
	if idx < 0 || idx >= len(m.groups) {
		return ""
	}
	return m.groups[idx]
}

func (m match) has(name string) bool {
	return m.re != nil && m.re.SubexpIndex(name) >= 0
}

type rule struct {
	class Class
	when  func(a *Assembler, line string) (match, bool)
	then  func(a *Assembler, line string, m match) error
}

// Assembler holds the state of one pass over a statement.
type Assembler struct {
	format  common.Format
	year    string
	log     zerolog.Logger
	rules   []rule
	current *common.Transaction
	done    []common.Transaction
}

// New prepares an assembler for one statement. The year resolves day-month
// tokens into full dates.
func New(format common.Format, year string, log zerolog.Logger) (*Assembler, error) {
	if err := common.ValidateYear(year); err != nil {
		return nil, err
	}
	a := &Assembler{
		format: format,
		year:   year,
		log:    log,
	}
	a.rules = []rule{
		{ClassBlank, (*Assembler).isBlank, nil},
		{ClassClosingBalance, (*Assembler).isClosingBalance, (*Assembler).startClosingBalance},
		{ClassTransaction, (*Assembler).isTransaction, (*Assembler).startTransaction},
		{ClassPageBoundary, (*Assembler).isPageBoundary, (*Assembler).endPage},
		{ClassContinuation, (*Assembler).isOpen, (*Assembler).continueDescription},
		{ClassIgnored, func(*Assembler, string) (match, bool) { return match{}, true }, nil},
	}
	return a, nil
}

// Assemble runs every row through a fresh assembler and returns the
// finalised transactions in input order.
func Assemble(rows *[]string, format common.Format, year string, log zerolog.Logger) ([]common.Transaction, error) {
	a, err := New(format, year, log)
	if err != nil {
		return nil, err
	}
	for i, row := range *rows {
		if _, err := a.Feed(i+1, row); err != nil {
			return nil, err
		}
	}
	return a.Finish(), nil
}

// Feed classifies one line and applies it. lineNo is only used for
// reporting.
func (a *Assembler) Feed(lineNo int, line string) (Class, error) {
	for _, r := range a.rules {
		m, ok := r.when(a, line)
		if !ok {
			continue
		}
		a.log.Debug().
			Int("line", lineNo).
			Str("class", string(r.class)).
			Bool("open", a.current != nil).
			Str("text", line).
			Msg("classified")
		if r.then != nil {
			if err := r.then(a, line, m); err != nil {
				return r.class, &common.LineError{Line: lineNo, Text: line, Err: err}
			}
		}
		return r.class, nil
	}
	return ClassIgnored, nil
}

// Finish finalises a transaction still open at end of input and returns
// everything assembled so far.
func (a *Assembler) Finish() []common.Transaction {
	a.flush()
	return a.done
}

// Open reports whether a transaction is being accumulated.
func (a *Assembler) Open() bool {
	return a.current != nil
}

func (a *Assembler) flush() {
	if a.current == nil {
		return
	}
	a.log.Debug().Str("transaction", a.current.String()).Msg("finalised")
	a.done = append(a.done, *a.current)
	a.current = nil
}

// isBlank only takes empty lines; a line of spaces while a transaction is
// open is still a continuation.
func (a *Assembler) isBlank(line string) (match, bool) {
	return match{}, line == ""
}

func (a *Assembler) isOpen(string) (match, bool) {
	return match{}, a.current != nil
}

func (a *Assembler) isClosingBalance(line string) (match, bool) {
	return find(a.format.ClosingBalance, line)
}

// isTransaction tries the with-balance shape before the without-balance one;
// the latter is an unanchored prefix of the former and would otherwise drop
// the balance.
func (a *Assembler) isTransaction(line string) (match, bool) {
	if m, ok := find(a.format.Transaction, line); ok {
		return m, true
	}
	return find(a.format.TransactionWithoutBalance, line)
}

func (a *Assembler) isPageBoundary(line string) (match, bool) {
	if a.current == nil {
		return match{}, false
	}
	return find(a.format.PageBoundary, line)
}

func (a *Assembler) startClosingBalance(_ string, m match) error {
	a.flush()
	label := m.group("label")
	if label == "" {
		label = a.format.ClosingLabel
	}
	a.current = &common.Transaction{
		Description: common.CleanDescription(label),
		Amount:      closingAmount,
		Balance:     common.CleanAmount(m.group("balance")),
		Closing:     true,
	}
	return nil
}

func (a *Assembler) startTransaction(_ string, m match) error {
	received, err := common.ResolveDate(m.group("received"), a.year, a.format.DateFormat)
	if err != nil {
		return err
	}
	processed, err := common.ResolveDate(m.group("processed"), a.year, a.format.DateFormat)
	if err != nil {
		return err
	}

	balance := a.format.MissingBalance
	if m.has("balance") {
		balance = common.CleanAmount(m.group("balance"))
	}

	a.flush()
	a.current = &common.Transaction{
		DateReceived:  received,
		DateProcessed: processed,
		Description:   common.CleanDescription(m.group("description")),
		Amount:        a.amount(m),
		Balance:       balance,
	}
	return nil
}

func (a *Assembler) amount(m match) string {
	if a.format.AmountRule == common.AmountDebitCredit {
		credit := m.group("credit")
		if common.IsZeroAmount(credit) {
			return common.NegateAmount(m.group("debit"))
		}
		return common.CleanAmount(credit)
	}
	return common.CleanAmount(m.group("amount"))
}

func (a *Assembler) endPage(string, match) error {
	a.flush()
	return nil
}

func (a *Assembler) continueDescription(line string, _ match) error {
	a.current.AppendDescription(line)
	return nil
}

func find(re *regexp.Regexp, line string) (match, bool) {
	if re == nil {
		return match{}, false
	}
	groups := re.FindStringSubmatch(line)
	if groups == nil {
		return match{}, false
	}
	return match{re: re, groups: groups}, true
}
