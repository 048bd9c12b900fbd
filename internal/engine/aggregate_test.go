package engine

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"budgetwise/internal/core"
)

func cents(n int64) core.Money { return core.Money{Cents: n} }

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 12, 0, 0, 0, time.UTC)
}

func TestBuildSummary(t *testing.T) {
	cats := []core.Category{
		{ID: 1, Name: "Food", BudgetLimit: cents(20000)},
		{ID: 2, Name: "Transport", BudgetLimit: cents(10000)},
		{ID: 3, Name: "Other"},
	}
	snap := Snapshot{
		Categories: cats,
		Income: []core.IncomeEntry{
			{ID: 1, Amount: cents(300000), Source: "Salary", Period: core.Monthly},
			{ID: 2, Amount: cents(50000), Source: "Freelance", Period: core.Monthly},
		},
		Expenses: []core.Expense{
			{ID: 1, Amount: cents(4500), CategoryID: 1, DateAdded: day(1)},
			{ID: 2, Amount: cents(1250), CategoryID: 1, DateAdded: day(2)},
			{ID: 3, Amount: cents(3000), CategoryID: 2, DateAdded: day(3)},
		},
	}

	sum, err := BuildSummary(snap)
	if err != nil {
		t.Fatalf("BuildSummary: %v", err)
	}

	if sum.TotalIncome != cents(350000) {
		t.Errorf("TotalIncome = %v, want 350000", sum.TotalIncome.Cents)
	}
	if sum.TotalExpenses != cents(8750) {
		t.Errorf("TotalExpenses = %v, want 8750", sum.TotalExpenses.Cents)
	}
	if sum.RemainingBudget != cents(341250) {
		t.Errorf("RemainingBudget = %v, want 341250", sum.RemainingBudget.Cents)
	}
	wantSpending := map[string]core.Money{"Food": cents(5750), "Transport": cents(3000)}
	if !reflect.DeepEqual(sum.CategorySpending, wantSpending) {
		t.Errorf("CategorySpending = %v, want %v", sum.CategorySpending, wantSpending)
	}

	// Every spent-in category must have a budget entry, even a zero one.
	for name := range sum.CategorySpending {
		if _, ok := sum.CategoryBudgets[name]; !ok {
			t.Errorf("category %q spent but missing from budgets", name)
		}
	}
	if len(sum.CategoryBudgets) != 3 {
		t.Errorf("CategoryBudgets has %d entries, want 3", len(sum.CategoryBudgets))
	}
}

func TestBuildSummaryIncomeIgnoresWindow(t *testing.T) {
	// A week-window snapshot still carries the full income list; the
	// total must include all of it.
	snap := Snapshot{
		Income: []core.IncomeEntry{
			{ID: 1, Amount: cents(100000), Period: core.Monthly},
			{ID: 2, Amount: cents(25000), Period: core.Weekly},
		},
	}
	sum, err := BuildSummary(snap)
	if err != nil {
		t.Fatalf("BuildSummary: %v", err)
	}
	if sum.TotalIncome != cents(125000) {
		t.Errorf("TotalIncome = %v, want 125000", sum.TotalIncome.Cents)
	}
	if sum.RemainingBudget != cents(125000) {
		t.Errorf("RemainingBudget = %v, want 125000", sum.RemainingBudget.Cents)
	}
}

func TestBuildSummaryUnknownCategory(t *testing.T) {
	snap := Snapshot{
		Categories: []core.Category{{ID: 1, Name: "Food"}},
		Expenses: []core.Expense{
			{ID: 7, Amount: cents(100), CategoryID: 99, DateAdded: day(1)},
		},
	}
	_, err := BuildSummary(snap)
	if !errors.Is(err, core.ErrUnknownCategory) {
		t.Fatalf("err = %v, want ErrUnknownCategory", err)
	}
}

func TestBuildSummaryEmptySnapshot(t *testing.T) {
	sum, err := BuildSummary(Snapshot{})
	if err != nil {
		t.Fatalf("BuildSummary: %v", err)
	}
	if sum.TotalIncome.Cents != 0 || sum.TotalExpenses.Cents != 0 {
		t.Errorf("empty snapshot produced non-zero totals: %+v", sum)
	}
	if len(sum.CategorySpending) != 0 {
		t.Errorf("empty snapshot produced spending entries: %v", sum.CategorySpending)
	}
}

func TestBuildSummaryDeterministic(t *testing.T) {
	snap := Snapshot{
		Categories: []core.Category{
			{ID: 1, Name: "Food", BudgetLimit: cents(20000)},
			{ID: 2, Name: "Fun", BudgetLimit: cents(15000)},
		},
		Income: []core.IncomeEntry{{ID: 1, Amount: cents(100000), Period: core.Monthly}},
		Expenses: []core.Expense{
			{ID: 1, Amount: cents(1000), CategoryID: 1, DateAdded: day(1)},
			{ID: 2, Amount: cents(2000), CategoryID: 2, DateAdded: day(2)},
		},
	}
	first, err := BuildSummary(snap)
	if err != nil {
		t.Fatalf("BuildSummary: %v", err)
	}
	second, err := BuildSummary(snap)
	if err != nil {
		t.Fatalf("BuildSummary: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated aggregation differs:\nfirst  %+v\nsecond %+v", first, second)
	}
}
