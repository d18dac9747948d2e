package core

import (
	"errors"
	"math"
	"strings"
	"time"
)

// BudgetDocument is the full budget record for one user partition. It is
// loaded whole, mutated in memory, and re-persisted whole after every
// mutation; it is never diffed or partially written.
type BudgetDocument struct {
	Income   float64            `json:"income"`
	Expenses []Expense          `json:"expenses"`
	Limits   map[string]float64 `json:"limits"`
}

// Expense is immutable once created except for deletion.
type Expense struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"` // YYYY-MM-DD
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note"`
}

var (
	ErrInvalidIdentity         = errors.New("invalid identity")
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrInvalidCategory         = errors.New("invalid category")
	ErrStoreUnavailable        = errors.New("store unavailable")
	ErrWriteVerificationFailed = errors.New("write verification failed")
	ErrNotFound                = errors.New("not found")
)

const dateLayout = "2006-01-02"

// NewDocument returns an empty document with all defaults in place.
func NewDocument() BudgetDocument {
	return BudgetDocument{
		Income:   0,
		Expenses: []Expense{},
		Limits:   map[string]float64{},
	}
}

// ValidAmount reports whether v is a usable strictly-positive amount.
func ValidAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// ValidLimit reports whether v is a usable limit value (zero is allowed).
func ValidLimit(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// ValidDate reports whether s is a calendar date in YYYY-MM-DD form.
func ValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// FormatDate renders t as a YYYY-MM-DD string.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func (e Expense) Validate() error {
	if e.ID == "" {
		return errors.New("empty expense id")
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrInvalidCategory
	}
	if !ValidAmount(e.Amount) {
		return ErrInvalidAmount
	}
	if !ValidDate(e.Date) {
		return errors.New("invalid expense date")
	}
	return nil
}

// Clone returns a deep copy. Mutations always operate on a clone so a failed
// persist never leaks a half-applied document back to the caller.
func (d BudgetDocument) Clone() BudgetDocument {
	out := BudgetDocument{
		Income:   d.Income,
		Expenses: make([]Expense, len(d.Expenses)),
		Limits:   make(map[string]float64, len(d.Limits)),
	}
	copy(out.Expenses, d.Expenses)
	for k, v := range d.Limits {
		out.Limits[k] = v
	}
	return out
}

// Equal compares two documents structurally.
func (d BudgetDocument) Equal(other BudgetDocument) bool {
	if d.Income != other.Income {
		return false
	}
	if len(d.Expenses) != len(other.Expenses) {
		return false
	}
	for i := range d.Expenses {
		if d.Expenses[i] != other.Expenses[i] {
			return false
		}
	}
	if len(d.Limits) != len(other.Limits) {
		return false
	}
	for k, v := range d.Limits {
		ov, ok := other.Limits[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}
