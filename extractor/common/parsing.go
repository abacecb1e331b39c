package common

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	yearRegex       = regexp.MustCompile(`^[0-9]{4}$`)
	nonNumericRegex = regexp.MustCompile(`[^0-9.-]`)
)

// CleanAmount strips thousands separators and surrounding space. The sign is
// kept as written; no numeric parsing happens here.
func CleanAmount(text string) string {
	return strings.ReplaceAll(strings.TrimSpace(text), ",", "")
}

// CleanDescription replaces commas with spaces and trims the result.
func CleanDescription(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, ",", " "))
}

// NegateAmount returns the amount as a debit, "-" followed by its magnitude.
func NegateAmount(amount string) string {
	return "-" + strings.TrimPrefix(CleanAmount(amount), "-")
}

// IsZeroAmount reports whether an amount column reads as nothing: blank, a
// lone dash placeholder, or any spelling of zero.
func IsZeroAmount(amount string) bool {
	clean := CleanAmount(amount)
	if clean == "" || clean == "-" {
		return true
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return false
	}
	return d.IsZero()
}

// CleanDecimal parses a normalised amount into a decimal.Decimal, dropping
// anything that is not a digit, point or sign.
func CleanDecimal(text string) (decimal.Decimal, error) {
	cleanText := nonNumericRegex.ReplaceAllString(text, "")
	if cleanText == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(cleanText)
}

// ValidateYear checks the externally supplied reference year.
func ValidateYear(year string) error {
	if !yearRegex.MatchString(year) {
		return fmt.Errorf("%w: %q", ErrInvalidYear, year)
	}
	return nil
}

// ResolveDate combines a day-month token with the reference year using layout,
// which must describe "<token><sep><year>" (e.g. "02-Jan-2006" or "2 Jan 2006"),
// and renders it as YYYY-MM-DD. Empty tokens stay empty.
func ResolveDate(token, year, layout string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", nil
	}
	date, err := time.Parse(layout, token+layoutSeparator(layout)+year)
	if err != nil {
		return "", fmt.Errorf("%w: %q with layout %q: %v", ErrDateParse, token, layout, err)
	}
	return date.Format(time.DateOnly), nil
}

// layoutSeparator returns the character that joins the month to the year in
// a date layout.
func layoutSeparator(layout string) string {
	idx := strings.LastIndex(layout, "2006")
	if idx <= 0 {
		return " "
	}
	return layout[idx-1 : idx]
}
