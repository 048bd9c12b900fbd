// Package engine turns raw ledger records into derived analytics:
// windowed summaries, spending trends, and rule-based insights. All
// computations are pure functions over a snapshot fetched once per
// query; nothing here caches or mutates records.
package engine

import (
	"fmt"

	"budgetwise/internal/core"
)

// Snapshot is a consistent set of records for one query. Expenses are
// already filtered to the resolved window by the ledger read.
type Snapshot struct {
	Expenses   []core.Expense
	Income     []core.IncomeEntry
	Categories []core.Category
}

// BuildSummary aggregates the snapshot into windowed totals and
// per-category spending.
//
// Income entries carry no timestamp, so every entry counts toward the
// total regardless of window; this mirrors the upstream product
// behavior rather than inventing a dating rule.
//
// It fails fast when an expense references a category missing from the
// snapshot: referential integrity is the store's job and silently
// dropping records would corrupt every downstream figure.
func BuildSummary(snap Snapshot) (core.Summary, error) {
	byID := make(map[int64]core.Category, len(snap.Categories))
	budgets := make(map[string]core.Money, len(snap.Categories))
	for _, c := range snap.Categories {
		byID[c.ID] = c
		budgets[c.Name] = c.BudgetLimit
	}

	var totalIncome core.Money
	for _, in := range snap.Income {
		totalIncome = totalIncome.Add(in.Amount)
	}

	var totalExpenses core.Money
	spending := make(map[string]core.Money)
	for _, e := range snap.Expenses {
		cat, ok := byID[e.CategoryID]
		if !ok {
			return core.Summary{}, fmt.Errorf("%w: expense %d references category %d", core.ErrUnknownCategory, e.ID, e.CategoryID)
		}
		spending[cat.Name] = spending[cat.Name].Add(e.Amount)
		totalExpenses = totalExpenses.Add(e.Amount)
	}

	return core.Summary{
		TotalIncome:      totalIncome,
		TotalExpenses:    totalExpenses,
		RemainingBudget:  totalIncome.Sub(totalExpenses),
		CategorySpending: spending,
		CategoryBudgets:  budgets,
	}, nil
}
