package common

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// Layout selects the column mapping of the CSV output.
type Layout string

const (
	LayoutSixColumn  Layout = "six_column"
	LayoutFourColumn Layout = "four_column"
)

// ParseLayout validates a layout name.
func ParseLayout(name string) (Layout, error) {
	switch l := Layout(strings.ToLower(strings.TrimSpace(name))); l {
	case LayoutSixColumn, LayoutFourColumn:
		return l, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLayout, name)
}

// AmountRule decides how the signed amount is read off a transaction line.
type AmountRule string

const (
	// AmountSigned takes the "amount" group as written.
	AmountSigned AmountRule = "signed"
	// AmountDebitCredit takes "credit" unless it reads as zero, in which
	// case the amount is the negated "debit".
	AmountDebitCredit AmountRule = "debit_credit"
)

// Format bundles everything needed to read one statement layout. Patterns use
// named groups: received, processed, description, amount (or debit and
// credit), balance; the closing balance pattern uses balance and optionally
// label.
type Format struct {
	Name                      string
	Legacy                    bool
	Layout                    Layout
	DateFormat                string
	AmountRule                AmountRule
	MissingBalance            string
	ClosingLabel              string
	ClosingBalance            *regexp.Regexp
	Transaction               *regexp.Regexp
	TransactionWithoutBalance *regexp.Regexp
	PageBoundary              *regexp.Regexp
}

// Formats lists the statement formats present in the configuration.
func Formats() []string {
	names := make([]string, 0)
	for name := range viper.GetStringMap("statement") {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LoadFormat builds the descriptor for a configured statement format. With
// legacy set, keys under the format's "legacy" block override the base ones.
func LoadFormat(name string, legacy bool) (Format, error) {
	key := "statement." + strings.ToLower(strings.TrimSpace(name))
	if name == "" || !viper.IsSet(key) {
		return Format{}, fmt.Errorf("%w: %q (configured: %s)", ErrUnknownFormat, name, strings.Join(Formats(), ", "))
	}
	if legacy && !viper.IsSet(key+".legacy") {
		return Format{}, fmt.Errorf("%w: %q", ErrNoLegacyLayout, name)
	}

	get := func(field string) string {
		if legacy && viper.IsSet(key+".legacy."+field) {
			return viper.GetString(key + ".legacy." + field)
		}
		return viper.GetString(key + ".patterns." + field)
	}
	// transaction shapes never fall back: their groups differ between layouts
	shape := func(field string) string {
		if legacy {
			return viper.GetString(key + ".legacy." + field)
		}
		return viper.GetString(key + ".patterns." + field)
	}

	layout, err := ParseLayout(viper.GetString(key + ".layout"))
	if err != nil {
		return Format{}, fmt.Errorf("format %q: %w", name, err)
	}

	f := Format{
		Name:           strings.ToLower(name),
		Legacy:         legacy,
		Layout:         layout,
		DateFormat:     get("date_format"),
		AmountRule:     AmountRule(get("amount_rule")),
		MissingBalance: viper.GetString(key + ".missing_balance"),
		ClosingLabel:   get("closing_label"),
	}
	if f.AmountRule == "" {
		f.AmountRule = AmountSigned
	}
	if f.AmountRule != AmountSigned && f.AmountRule != AmountDebitCredit {
		return Format{}, fmt.Errorf("format %q: unknown amount rule %q", name, f.AmountRule)
	}
	if f.ClosingLabel == "" {
		f.ClosingLabel = "Closing Balance"
	}

	patterns := []struct {
		field    string
		expr     string
		target   **regexp.Regexp
		required bool
	}{
		{"closing_balance", get("closing_balance"), &f.ClosingBalance, false},
		{"transaction", shape("transaction"), &f.Transaction, true},
		{"transaction_without_balance", shape("transaction_without_balance"), &f.TransactionWithoutBalance, false},
		{"page_boundary", get("page_boundary"), &f.PageBoundary, false},
	}
	for _, p := range patterns {
		expr := p.expr
		if expr == "" {
			if p.required {
				return Format{}, fmt.Errorf("format %q: missing pattern %q", name, p.field)
			}
			continue
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return Format{}, fmt.Errorf("format %q: pattern %q: %w", name, p.field, err)
		}
		*p.target = re
	}

	return f, nil
}
