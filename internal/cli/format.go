// Package cli provides parsing, formatting, and rendering utilities for
// terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Caden-Dane/cadenbudget/internal/core"
)

// ParseAmount converts a decimal string from the command line to a float64
// amount. It accepts both dot (12.34) and comma (12,34) decimal separators
// and performs half-up rounding on the third decimal place. Signs are
// rejected; zero is allowed so callers can distinguish their own >0 / >=0
// rules.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, core.ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, core.ErrInvalidAmount
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, core.ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if r < '0' || r > '9' {
			return 0, core.ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, core.ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, core.ErrInvalidAmount
	}

	// Take the first two fractional digits, half-up rounding on the third.
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	return float64(iv*100+fracCents) / 100, nil
}

// FormatCurrency formats a USD amount, e.g. 1234.5 -> "$1,234.50".
func FormatCurrency(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	cents := int64(math.Round(amount * 100))
	whole := cents / 100
	frac := cents % 100

	s := fmt.Sprintf("$%s.%02d", groupThousands(whole), frac)
	if neg {
		return "-" + s
	}
	return s
}

// FormatPercent formats a 0-100 percent value, e.g. 75 -> "75%".
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.0f%%", pct)
}

// groupThousands adds comma separators to an integer.
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}
