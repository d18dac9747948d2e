package core

import (
	"encoding/json"
	"math"
	"strings"
)

// rawDocument decodes each field independently so one malformed field never
// takes down the rest of the document.
type rawDocument struct {
	Income   json.RawMessage `json:"income"`
	Expenses json.RawMessage `json:"expenses"`
	Limits   json.RawMessage `json:"limits"`
}

// Decode parses persisted bytes into a well-formed document. It is total:
// corrupt JSON, partial objects, and wrong-typed fields all collapse to
// defaults rather than errors. This is the single chokepoint that keeps
// malformed stored state out of the in-memory model.
func Decode(data []byte) BudgetDocument {
	doc := NewDocument()
	if len(data) == 0 {
		return doc
	}

	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return doc
	}

	if len(raw.Income) > 0 {
		var income float64
		if err := json.Unmarshal(raw.Income, &income); err == nil {
			doc.Income = income
		}
	}

	if len(raw.Expenses) > 0 {
		var elems []json.RawMessage
		if err := json.Unmarshal(raw.Expenses, &elems); err == nil {
			for _, elem := range elems {
				var e Expense
				if err := json.Unmarshal(elem, &e); err == nil {
					doc.Expenses = append(doc.Expenses, e)
				}
			}
		}
	}

	if len(raw.Limits) > 0 {
		var entries map[string]json.RawMessage
		if err := json.Unmarshal(raw.Limits, &entries); err == nil {
			for cat, elem := range entries {
				var v float64
				if err := json.Unmarshal(elem, &v); err == nil {
					doc.Limits[cat] = v
				}
			}
		}
	}

	return Normalize(doc)
}

// Encode serializes a document for persistence.
func Encode(doc BudgetDocument) ([]byte, error) {
	return json.Marshal(Normalize(doc))
}

// Normalize repairs a structurally-decoded document so it satisfies every
// model invariant: income >= 0, every expense amount > 0 with a non-empty
// trimmed category and a unique id, every limit >= 0 under a non-empty
// trimmed category. Out-of-invariant entries are dropped, negative income is
// clamped to zero. Pure and total.
func Normalize(doc BudgetDocument) BudgetDocument {
	out := NewDocument()

	if !math.IsNaN(doc.Income) && !math.IsInf(doc.Income, 0) && doc.Income > 0 {
		out.Income = doc.Income
	}

	seen := make(map[string]struct{}, len(doc.Expenses))
	for _, e := range doc.Expenses {
		e.Category = strings.TrimSpace(e.Category)
		e.Note = strings.TrimSpace(e.Note)
		if e.Validate() != nil {
			continue
		}
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		out.Expenses = append(out.Expenses, e)
	}

	for cat, v := range doc.Limits {
		cat = strings.TrimSpace(cat)
		if cat == "" || !ValidLimit(v) {
			continue
		}
		// Two raw keys can trim to the same category; keep the larger cap
		// so the result does not depend on map iteration order.
		if prev, ok := out.Limits[cat]; !ok || v > prev {
			out.Limits[cat] = v
		}
	}

	return out
}
