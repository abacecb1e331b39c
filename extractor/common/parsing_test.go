package common

import (
	"errors"
	"testing"
)

func TestCleanAmount_WithCommas(t *testing.T) {
	if got := CleanAmount("1,234,567.89"); got != "1234567.89" {
		t.Errorf("Expected '1234567.89', got '%s'", got)
	}
}

func TestCleanAmount_KeepsSign(t *testing.T) {
	if got := CleanAmount(" -1,200.00 "); got != "-1200.00" {
		t.Errorf("Expected '-1200.00', got '%s'", got)
	}
}

func TestCleanAmount_NoRounding(t *testing.T) {
	if got := CleanAmount("12.3456"); got != "12.3456" {
		t.Errorf("Expected '12.3456', got '%s'", got)
	}
}

func TestCleanDescription(t *testing.T) {
	if got := CleanDescription("  Smith, J, rent  "); got != "Smith  J  rent" {
		t.Errorf("Expected 'Smith  J  rent', got '%s'", got)
	}
}

func TestNegateAmount(t *testing.T) {
	cases := map[string]string{
		"12.34":    "-12.34",
		"-12.34":   "-12.34",
		"1,000.00": "-1000.00",
	}
	for in, want := range cases {
		if got := NegateAmount(in); got != want {
			t.Errorf("NegateAmount(%q): expected '%s', got '%s'", in, want, got)
		}
	}
}

func TestIsZeroAmount(t *testing.T) {
	zero := []string{"", " ", "-", "0", "0.00", "0,000.00", "-0.00"}
	for _, v := range zero {
		if !IsZeroAmount(v) {
			t.Errorf("Expected %q to read as zero", v)
		}
	}
	nonZero := []string{"0.01", "12.34", "-1.00", "abc"}
	for _, v := range nonZero {
		if IsZeroAmount(v) {
			t.Errorf("Expected %q not to read as zero", v)
		}
	}
}

func TestCleanDecimal_Signed(t *testing.T) {
	result, err := CleanDecimal("-123.45")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.String() != "-123.45" {
		t.Errorf("Expected '-123.45', got '%s'", result.String())
	}
}

func TestCleanDecimal_EmptyString(t *testing.T) {
	result, err := CleanDecimal("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.IsZero() {
		t.Errorf("Expected zero, got '%s'", result.String())
	}
}

func TestCleanDecimal_Garbage(t *testing.T) {
	if _, err := CleanDecimal("1.2.3"); err == nil {
		t.Error("Expected error for '1.2.3', got nil")
	}
}

func TestValidateYear(t *testing.T) {
	if err := ValidateYear("2024"); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	for _, bad := range []string{"", "24", "20245", "year"} {
		if err := ValidateYear(bad); !errors.Is(err, ErrInvalidYear) {
			t.Errorf("ValidateYear(%q): expected ErrInvalidYear, got %v", bad, err)
		}
	}
}

func TestResolveDate_Dashed(t *testing.T) {
	result, err := ResolveDate("09-May", "2024", "02-Jan-2006")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result != "2024-05-09" {
		t.Errorf("Expected '2024-05-09', got '%s'", result)
	}
}

func TestResolveDate_UnpaddedDay(t *testing.T) {
	result, err := ResolveDate("9 May", "2023", "2 Jan 2006")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result != "2023-05-09" {
		t.Errorf("Expected '2023-05-09', got '%s'", result)
	}
}

func TestResolveDate_Empty(t *testing.T) {
	result, err := ResolveDate("", "2024", "02-Jan-2006")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result != "" {
		t.Errorf("Expected empty date, got '%s'", result)
	}
}

func TestResolveDate_InvalidDate(t *testing.T) {
	for _, token := range []string{"31-Feb", "01-Foo", "1-Jan"} {
		_, err := ResolveDate(token, "2024", "02-Jan-2006")
		if !errors.Is(err, ErrDateParse) {
			t.Errorf("ResolveDate(%q): expected ErrDateParse, got %v", token, err)
		}
	}
}
