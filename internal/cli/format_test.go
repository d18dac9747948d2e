package cli

import (
	"errors"
	"testing"

	"github.com/Caden-Dane/cadenbudget/internal/core"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "integer", input: "42", want: 42},
		{name: "dot separator", input: "12.34", want: 12.34},
		{name: "comma separator", input: "12,34", want: 12.34},
		{name: "single decimal", input: "5.5", want: 5.5},
		{name: "leading dot", input: ".75", want: 0.75},
		{name: "zero", input: "0", want: 0},
		{name: "third decimal rounds down", input: "1.234", want: 1.23},
		{name: "third decimal rounds up", input: "1.235", want: 1.24},
		{name: "rounding carries over", input: "1.995", want: 2},
		{name: "whitespace trimmed", input: "  9.99  ", want: 9.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if err != nil {
				t.Fatalf("ParseAmount(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "blank", input: "   "},
		{name: "negative sign", input: "-5"},
		{name: "plus sign", input: "+5"},
		{name: "two separators", input: "1.2.3"},
		{name: "letters", input: "abc"},
		{name: "mixed", input: "12x.50"},
		{name: "exponent", input: "1e3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseAmount(tt.input); !errors.Is(err, core.ErrInvalidAmount) {
				t.Errorf("ParseAmount(%q) error = %v, want ErrInvalidAmount", tt.input, err)
			}
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{amount: 0, want: "$0.00"},
		{amount: 5, want: "$5.00"},
		{amount: 12.3, want: "$12.30"},
		{amount: 1234.5, want: "$1,234.50"},
		{amount: 1234567.89, want: "$1,234,567.89"},
		{amount: -80, want: "-$80.00"},
		{amount: -1250.75, want: "-$1,250.75"},
	}

	for _, tt := range tests {
		if got := FormatCurrency(tt.amount); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{pct: 0, want: "0%"},
		{pct: 75, want: "75%"},
		{pct: 99.6, want: "100%"},
		{pct: 100, want: "100%"},
	}

	for _, tt := range tests {
		if got := FormatPercent(tt.pct); got != tt.want {
			t.Errorf("FormatPercent(%v) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}
