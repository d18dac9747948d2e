package core

import (
	"math"
	"testing"
)

func TestValidAmount(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want bool
	}{
		{name: "positive", v: 10.5, want: true},
		{name: "zero", v: 0, want: false},
		{name: "negative", v: -1, want: false},
		{name: "NaN", v: math.NaN(), want: false},
		{name: "+Inf", v: math.Inf(1), want: false},
		{name: "-Inf", v: math.Inf(-1), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidAmount(tt.v); got != tt.want {
				t.Errorf("ValidAmount(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestValidLimit(t *testing.T) {
	if !ValidLimit(0) {
		t.Error("ValidLimit(0) = false, want true")
	}
	if ValidLimit(-0.01) {
		t.Error("ValidLimit(-0.01) = true, want false")
	}
	if ValidLimit(math.NaN()) {
		t.Error("ValidLimit(NaN) = true, want false")
	}
}

func TestValidDate(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{"2024-06-01", true},
		{"2024-13-01", false},
		{"2024-6-1", false},
		{"yesterday", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidDate(tt.date); got != tt.want {
			t.Errorf("ValidDate(%q) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestClone_Independent(t *testing.T) {
	doc := NewDocument()
	doc.Income = 100
	doc.Expenses = []Expense{{ID: "a", Date: "2024-01-01", Category: "Food", Amount: 5}}
	doc.Limits = map[string]float64{"Food": 50}

	clone := doc.Clone()
	clone.Income = 999
	clone.Expenses[0].Amount = 999
	clone.Limits["Food"] = 999

	if doc.Income != 100 {
		t.Errorf("original income mutated: %v", doc.Income)
	}
	if doc.Expenses[0].Amount != 5 {
		t.Errorf("original expense mutated: %v", doc.Expenses[0].Amount)
	}
	if doc.Limits["Food"] != 50 {
		t.Errorf("original limit mutated: %v", doc.Limits["Food"])
	}
}

func TestEqual(t *testing.T) {
	base := func() BudgetDocument {
		doc := NewDocument()
		doc.Income = 10
		doc.Expenses = []Expense{{ID: "a", Date: "2024-01-01", Category: "Food", Amount: 5}}
		doc.Limits = map[string]float64{"Food": 50}
		return doc
	}

	tests := []struct {
		name   string
		mutate func(*BudgetDocument)
		want   bool
	}{
		{name: "identical", mutate: func(d *BudgetDocument) {}, want: true},
		{name: "income differs", mutate: func(d *BudgetDocument) { d.Income = 11 }, want: false},
		{name: "expense differs", mutate: func(d *BudgetDocument) { d.Expenses[0].Amount = 6 }, want: false},
		{name: "extra expense", mutate: func(d *BudgetDocument) {
			d.Expenses = append(d.Expenses, Expense{ID: "b", Date: "2024-01-02", Category: "Food", Amount: 1})
		}, want: false},
		{name: "limit differs", mutate: func(d *BudgetDocument) { d.Limits["Food"] = 51 }, want: false},
		{name: "extra limit", mutate: func(d *BudgetDocument) { d.Limits["Rent"] = 1 }, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := base(), base()
			tt.mutate(&b)
			if got := a.Equal(b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}
