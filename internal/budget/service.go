// Package budget is the mutation engine: the sole entry point for all state
// changes. Every operation runs the same read-modify-write cycle (resolve
// the partition key, load and normalize the document, apply a pure transform
// to a clone, persist with verification) and only returns the new document
// once the store has confirmed the write. A failed persist leaves the
// caller's view at the pre-mutation value.
package budget

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Caden-Dane/cadenbudget/internal/core"
	"github.com/Caden-Dane/cadenbudget/internal/identity"
	"github.com/Caden-Dane/cadenbudget/internal/store"

	"github.com/google/uuid"
)

type Service struct {
	store    *store.DocumentStore
	resolver *identity.Resolver

	now   func() time.Time
	newID func() string
}

func NewService(st *store.DocumentStore, resolver *identity.Resolver) *Service {
	return &Service{
		store:    st,
		resolver: resolver,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Load returns the current document for an identity, creating the all-zero
// default in memory when none was ever persisted. Load alone does not write.
func (s *Service) Load(ctx context.Context, ident string) (core.BudgetDocument, error) {
	key, err := s.resolver.ResolveKey(ident)
	if err != nil {
		return core.NewDocument(), err
	}
	doc, _, err := s.store.Get(ctx, key)
	if err != nil {
		return core.NewDocument(), err
	}
	return doc, nil
}

// AddIncome increases cumulative income by amount.
func (s *Service) AddIncome(ctx context.Context, ident string, amount float64) (core.BudgetDocument, error) {
	if !core.ValidAmount(amount) {
		return core.NewDocument(), fmt.Errorf("income %v: %w", amount, core.ErrInvalidAmount)
	}
	return s.mutate(ctx, ident, "add_income", func(doc core.BudgetDocument) core.BudgetDocument {
		doc.Income += amount
		return doc
	})
}

// AddExpense appends a new expense with a fresh unique id. An empty date
// means the current calendar date. The created expense is returned alongside
// the new document.
func (s *Service) AddExpense(ctx context.Context, ident, category string, amount float64, note, date string) (core.BudgetDocument, core.Expense, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return core.NewDocument(), core.Expense{}, fmt.Errorf("expense category: %w", core.ErrInvalidCategory)
	}
	if !core.ValidAmount(amount) {
		return core.NewDocument(), core.Expense{}, fmt.Errorf("expense %v: %w", amount, core.ErrInvalidAmount)
	}
	if date == "" {
		date = core.FormatDate(s.now())
	}
	if !core.ValidDate(date) {
		return core.NewDocument(), core.Expense{}, fmt.Errorf("expense date %q: expected YYYY-MM-DD", date)
	}

	expense := core.Expense{
		ID:       s.newID(),
		Date:     date,
		Category: category,
		Amount:   amount,
		Note:     strings.TrimSpace(note),
	}

	doc, err := s.mutate(ctx, ident, "add_expense", func(doc core.BudgetDocument) core.BudgetDocument {
		doc.Expenses = append(doc.Expenses, expense)
		return doc
	})
	if err != nil {
		return core.NewDocument(), core.Expense{}, err
	}
	return doc, expense, nil
}

// SetLimit creates or overwrites the spending cap for a category. Zero is a
// valid cap.
func (s *Service) SetLimit(ctx context.Context, ident, category string, amount float64) (core.BudgetDocument, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return core.NewDocument(), fmt.Errorf("limit category: %w", core.ErrInvalidCategory)
	}
	if !core.ValidLimit(amount) {
		return core.NewDocument(), fmt.Errorf("limit %v: %w", amount, core.ErrInvalidAmount)
	}
	return s.mutate(ctx, ident, "set_limit", func(doc core.BudgetDocument) core.BudgetDocument {
		doc.Limits[category] = amount
		return doc
	})
}

// DeleteLimit removes the cap for a category. Historical expenses in that
// category are untouched. An absent limit leaves the document unchanged and
// returns it alongside core.ErrNotFound, which callers may treat as benign.
func (s *Service) DeleteLimit(ctx context.Context, ident, category string) (core.BudgetDocument, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return core.NewDocument(), fmt.Errorf("limit category: %w", core.ErrInvalidCategory)
	}
	found := false
	doc, err := s.mutate(ctx, ident, "delete_limit", func(doc core.BudgetDocument) core.BudgetDocument {
		if _, ok := doc.Limits[category]; ok {
			found = true
			delete(doc.Limits, category)
		}
		return doc
	})
	if err != nil {
		return doc, err
	}
	if !found {
		return doc, fmt.Errorf("limit %s: %w", category, core.ErrNotFound)
	}
	return doc, nil
}

// DeleteExpense removes the expense with the given id. An absent id leaves
// the document unchanged and returns it alongside core.ErrNotFound, which
// callers may treat as benign, so the operation stays idempotent.
func (s *Service) DeleteExpense(ctx context.Context, ident, id string) (core.BudgetDocument, error) {
	found := false
	doc, err := s.mutate(ctx, ident, "delete_expense", func(doc core.BudgetDocument) core.BudgetDocument {
		kept := doc.Expenses[:0]
		for _, e := range doc.Expenses {
			if e.ID != id {
				kept = append(kept, e)
			} else {
				found = true
			}
		}
		doc.Expenses = kept
		return doc
	})
	if err != nil {
		return doc, err
	}
	if !found {
		return doc, fmt.Errorf("expense %s: %w", id, core.ErrNotFound)
	}
	return doc, nil
}

// ResetSpending zeroes income and clears all expenses. Limits survive.
func (s *Service) ResetSpending(ctx context.Context, ident string) (core.BudgetDocument, error) {
	return s.mutate(ctx, ident, "reset_spending", func(doc core.BudgetDocument) core.BudgetDocument {
		doc.Income = 0
		doc.Expenses = []core.Expense{}
		return doc
	})
}

// ResetExpenses clears all expenses. Income and limits survive.
func (s *Service) ResetExpenses(ctx context.Context, ident string) (core.BudgetDocument, error) {
	return s.mutate(ctx, ident, "reset_expenses", func(doc core.BudgetDocument) core.BudgetDocument {
		doc.Expenses = []core.Expense{}
		return doc
	})
}

// mutate runs one read-modify-write transaction against a single partition.
func (s *Service) mutate(ctx context.Context, ident, op string, transform func(core.BudgetDocument) core.BudgetDocument) (core.BudgetDocument, error) {
	key, err := s.resolver.ResolveKey(ident)
	if err != nil {
		return core.NewDocument(), err
	}

	current, _, err := s.store.Get(ctx, key)
	if err != nil {
		return core.NewDocument(), fmt.Errorf("%s: %w", op, err)
	}

	next := core.Normalize(transform(current.Clone()))

	if err := s.store.Put(ctx, key, next); err != nil {
		slog.ErrorContext(ctx, "Mutation not persisted",
			"operation", op, "identity", ident, "error", err)
		return core.NewDocument(), fmt.Errorf("%s: %w", op, err)
	}

	slog.InfoContext(ctx, "Mutation persisted",
		"operation", op, "identity", ident,
		"expenses", len(next.Expenses), "income", next.Income)

	return next, nil
}
