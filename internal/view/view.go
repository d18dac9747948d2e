// Package view computes derived, display-ready values from a budget
// document. Everything here is a pure function; nothing reads or writes the
// store.
package view

import (
	"sort"

	"github.com/Caden-Dane/cadenbudget/internal/core"
)

// LimitStatus classifies spending against a category's configured cap.
type LimitStatus string

const (
	StatusOk       LimitStatus = "ok"
	StatusCaution  LimitStatus = "caution"
	StatusExceeded LimitStatus = "exceeded"
)

// cautionRatio is the share of a limit at which spending starts to warn.
const cautionRatio = 0.9

// SpentByCategory sums expense amounts per category.
func SpentByCategory(doc core.BudgetDocument) map[string]float64 {
	spent := make(map[string]float64)
	for _, e := range doc.Expenses {
		spent[e.Category] += e.Amount
	}
	return spent
}

// TotalExpenses sums all expense amounts.
func TotalExpenses(doc core.BudgetDocument) float64 {
	var total float64
	for _, e := range doc.Expenses {
		total += e.Amount
	}
	return total
}

// Remaining is income minus total expenses. Negative is a valid,
// displayable state, not an error.
func Remaining(doc core.BudgetDocument) float64 {
	return doc.Income - TotalExpenses(doc)
}

// Status classifies a category's spending against its limit. prospective is
// an amount about to be added (zero for historical display): Exceeded when
// spent+prospective > limit, Caution past 90% of the limit, Ok otherwise.
// Categories with no configured limit are always Ok.
func Status(doc core.BudgetDocument, category string, prospective float64) LimitStatus {
	limit, ok := doc.Limits[category]
	if !ok {
		return StatusOk
	}

	spent := SpentByCategory(doc)[category] + prospective
	switch {
	case spent > limit:
		return StatusExceeded
	case spent > cautionRatio*limit:
		return StatusCaution
	default:
		return StatusOk
	}
}

// CategoryRow is one line of the per-category table.
type CategoryRow struct {
	Category  string
	Spent     float64
	Limit     *float64 // nil when no cap is configured
	Remaining *float64 // nil when no cap is configured
	Percent   float64  // 0-100, capped
	Status    LimitStatus
}

// ExpenseRow is one line of the expense table.
type ExpenseRow struct {
	ID       string
	Date     string
	Category string
	Amount   float64
	Note     string
}

// Summary is the full view model handed to a renderer.
type Summary struct {
	TotalIncome   float64
	TotalExpenses float64
	Remaining     float64
	Categories    []CategoryRow
	Expenses      []ExpenseRow
}

// BuildSummary assembles the complete view model. The category set is the
// union of capped categories and categories with spend; categories sort
// alphabetically, expenses by date descending.
func BuildSummary(doc core.BudgetDocument) Summary {
	spent := SpentByCategory(doc)

	names := make(map[string]struct{}, len(spent)+len(doc.Limits))
	for cat := range spent {
		names[cat] = struct{}{}
	}
	for cat := range doc.Limits {
		names[cat] = struct{}{}
	}

	categories := make([]CategoryRow, 0, len(names))
	for cat := range names {
		row := CategoryRow{
			Category: cat,
			Spent:    spent[cat],
			Status:   Status(doc, cat, 0),
		}
		if limit, ok := doc.Limits[cat]; ok {
			remaining := limit - row.Spent
			row.Limit = &limit
			row.Remaining = &remaining
			row.Percent = percentOfLimit(row.Spent, limit)
		} else if row.Spent > 0 {
			row.Percent = 100
		}
		categories = append(categories, row)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Category < categories[j].Category
	})

	expenses := make([]ExpenseRow, len(doc.Expenses))
	for i, e := range doc.Expenses {
		expenses[i] = ExpenseRow{
			ID:       e.ID,
			Date:     e.Date,
			Category: e.Category,
			Amount:   e.Amount,
			Note:     e.Note,
		}
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date > expenses[j].Date
	})

	return Summary{
		TotalIncome:   doc.Income,
		TotalExpenses: TotalExpenses(doc),
		Remaining:     Remaining(doc),
		Categories:    categories,
		Expenses:      expenses,
	}
}

func percentOfLimit(spent, limit float64) float64 {
	if limit <= 0 {
		if spent > 0 {
			return 100
		}
		return 0
	}
	pct := spent / limit * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}
