package view

import (
	"testing"

	"github.com/Caden-Dane/cadenbudget/internal/core"
)

func sampleDoc() core.BudgetDocument {
	return core.BudgetDocument{
		Income: 1000,
		Expenses: []core.Expense{
			{ID: "a", Date: "2024-06-01", Category: "Groceries", Amount: 100},
			{ID: "b", Date: "2024-06-03", Category: "Groceries", Amount: 50},
			{ID: "c", Date: "2024-06-02", Category: "Transport", Amount: 30},
		},
		Limits: map[string]float64{
			"Groceries": 200,
			"Savings":   300,
		},
	}
}

func TestSpentByCategory(t *testing.T) {
	spent := SpentByCategory(sampleDoc())
	if spent["Groceries"] != 150 {
		t.Errorf("Groceries = %v, want 150", spent["Groceries"])
	}
	if spent["Transport"] != 30 {
		t.Errorf("Transport = %v, want 30", spent["Transport"])
	}
	if _, ok := spent["Savings"]; ok {
		t.Error("Savings has no expenses, should be absent from spend map")
	}
}

func TestRemaining(t *testing.T) {
	doc := sampleDoc()
	if got := TotalExpenses(doc); got != 180 {
		t.Errorf("TotalExpenses() = %v, want 180", got)
	}
	if got := Remaining(doc); got != 820 {
		t.Errorf("Remaining() = %v, want 820", got)
	}

	// Overspending is displayable, not an error.
	doc.Income = 100
	if got := Remaining(doc); got != -80 {
		t.Errorf("Remaining() = %v, want -80", got)
	}
}

func TestStatus(t *testing.T) {
	doc := sampleDoc() // Groceries: spent 150, limit 200

	tests := []struct {
		name        string
		category    string
		prospective float64
		want        LimitStatus
	}{
		{name: "under caution band", category: "Groceries", prospective: 0, want: StatusOk},
		{name: "prospective exceeds", category: "Groceries", prospective: 60, want: StatusExceeded},
		{name: "prospective in caution band", category: "Groceries", prospective: 40, want: StatusCaution},
		{name: "prospective stays ok", category: "Groceries", prospective: 20, want: StatusOk},
		{name: "exactly at limit is not exceeded", category: "Groceries", prospective: 50, want: StatusCaution},
		{name: "exactly at caution threshold is ok", category: "Groceries", prospective: 30, want: StatusOk},
		{name: "no limit configured", category: "Transport", prospective: 1e9, want: StatusOk},
		{name: "unknown category", category: "Gadgets", prospective: 5, want: StatusOk},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(doc, tt.category, tt.prospective); got != tt.want {
				t.Errorf("Status(%q, +%v) = %v, want %v", tt.category, tt.prospective, got, tt.want)
			}
		})
	}
}

func TestStatus_ZeroLimit(t *testing.T) {
	doc := core.NewDocument()
	doc.Limits["Treats"] = 0

	if got := Status(doc, "Treats", 0); got != StatusOk {
		t.Errorf("Status() with no spend = %v, want Ok", got)
	}
	if got := Status(doc, "Treats", 1); got != StatusExceeded {
		t.Errorf("Status() with any spend against zero cap = %v, want Exceeded", got)
	}
}

func TestBuildSummary(t *testing.T) {
	s := BuildSummary(sampleDoc())

	if s.TotalIncome != 1000 || s.TotalExpenses != 180 || s.Remaining != 820 {
		t.Errorf("totals = %v/%v/%v, want 1000/180/820", s.TotalIncome, s.TotalExpenses, s.Remaining)
	}

	// Union of capped and spent categories, alphabetical.
	gotNames := make([]string, len(s.Categories))
	for i, row := range s.Categories {
		gotNames[i] = row.Category
	}
	wantNames := []string{"Groceries", "Savings", "Transport"}
	if len(gotNames) != len(wantNames) {
		t.Fatalf("categories = %v, want %v", gotNames, wantNames)
	}
	for i := range wantNames {
		if gotNames[i] != wantNames[i] {
			t.Fatalf("categories = %v, want %v", gotNames, wantNames)
		}
	}

	groceries := s.Categories[0]
	if groceries.Limit == nil || *groceries.Limit != 200 {
		t.Errorf("Groceries limit = %v, want 200", groceries.Limit)
	}
	if groceries.Remaining == nil || *groceries.Remaining != 50 {
		t.Errorf("Groceries remaining = %v, want 50", groceries.Remaining)
	}
	if groceries.Percent != 75 {
		t.Errorf("Groceries percent = %v, want 75", groceries.Percent)
	}

	savings := s.Categories[1]
	if savings.Spent != 0 {
		t.Errorf("Savings spent = %v, want 0", savings.Spent)
	}
	if savings.Percent != 0 {
		t.Errorf("Savings percent = %v, want 0", savings.Percent)
	}

	transport := s.Categories[2]
	if transport.Limit != nil || transport.Remaining != nil {
		t.Error("Transport has no cap, limit/remaining should be nil")
	}
	if transport.Percent != 100 {
		t.Errorf("uncapped spend percent = %v, want 100", transport.Percent)
	}

	// Expenses ordered newest first.
	gotDates := make([]string, len(s.Expenses))
	for i, e := range s.Expenses {
		gotDates[i] = e.Date
	}
	wantDates := []string{"2024-06-03", "2024-06-02", "2024-06-01"}
	for i := range wantDates {
		if gotDates[i] != wantDates[i] {
			t.Fatalf("expense dates = %v, want %v", gotDates, wantDates)
		}
	}
}

func TestBuildSummary_Empty(t *testing.T) {
	s := BuildSummary(core.NewDocument())
	if len(s.Categories) != 0 || len(s.Expenses) != 0 {
		t.Errorf("empty document produced rows: %+v", s)
	}
	if s.Remaining != 0 {
		t.Errorf("Remaining = %v, want 0", s.Remaining)
	}
}

func TestBuildSummary_PercentCapped(t *testing.T) {
	doc := core.NewDocument()
	doc.Limits["Food"] = 100
	doc.Expenses = []core.Expense{{ID: "x", Date: "2024-06-01", Category: "Food", Amount: 250}}

	s := BuildSummary(doc)
	if len(s.Categories) != 1 {
		t.Fatalf("len(categories) = %d, want 1", len(s.Categories))
	}
	row := s.Categories[0]
	if row.Percent != 100 {
		t.Errorf("percent = %v, want capped 100", row.Percent)
	}
	if row.Status != StatusExceeded {
		t.Errorf("status = %v, want exceeded", row.Status)
	}
	if row.Remaining == nil || *row.Remaining != -150 {
		t.Errorf("remaining = %v, want -150", row.Remaining)
	}
}
