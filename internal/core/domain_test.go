package core

import (
	"testing"
	"time"
)

func TestIncomeEntryValidate(t *testing.T) {
	good := IncomeEntry{Amount: Money{Cents: 100000}, Source: "Job", Period: Monthly}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []IncomeEntry{
		{Amount: Money{Cents: 0}, Period: Monthly},
		{Amount: Money{Cents: 100}, Period: Yearly}, // income is weekly or monthly only
		{Amount: Money{Cents: 100}, Period: "daily"},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestCategoryValidate(t *testing.T) {
	if err := (Category{Name: "Food", BudgetLimit: Money{Cents: 20000}}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	// zero budget limit is allowed, it just disables threshold checks
	if err := (Category{Name: "Misc"}).Validate(); err != nil {
		t.Fatalf("expected ok for zero budget, got %v", err)
	}
	if err := (Category{Name: "  "}).Validate(); err == nil {
		t.Fatalf("expected error for blank name")
	}
	if err := (Category{Name: "Food", BudgetLimit: Money{Cents: -1}}).Validate(); err == nil {
		t.Fatalf("expected error for negative budget")
	}
}

func TestExpenseValidate(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	good := Expense{Amount: Money{Cents: 550}, CategoryID: 1, Description: "lunch", DateAdded: now}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{Amount: Money{Cents: 0}, CategoryID: 1, DateAdded: now},
		{Amount: Money{Cents: 100}, CategoryID: 0, DateAdded: now},
		{Amount: Money{Cents: 100}, CategoryID: 1},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestRecurringExpenseValidate(t *testing.T) {
	good := RecurringExpense{Name: "Rent", Amount: Money{Cents: 90000}, CategoryID: 1, Frequency: Monthly}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	bad := RecurringExpense{Name: "Rent", Amount: Money{Cents: 90000}, CategoryID: 1, Frequency: "daily"}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for unsupported frequency")
	}
}

func TestDebtValidate(t *testing.T) {
	good := Debt{Name: "Car loan", Total: Money{Cents: 500000}, Remaining: Money{Cents: 250000}}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Debt{
		{Name: "x", Total: Money{Cents: 1000}, Remaining: Money{Cents: 1001}}, // remaining > total
		{Name: "x", Total: Money{Cents: 1000}, Remaining: Money{Cents: -1}},
		{Name: "x", Total: Money{Cents: 0}},
		{Name: "", Total: Money{Cents: 1000}},
	}
	for i, d := range bads {
		if err := d.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestInvestmentValidate(t *testing.T) {
	good := Investment{Name: "VTI", Type: ETF, Cost: Money{Cents: 100000}, CurrentValue: Money{Cents: 110000}}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	bad := Investment{Name: "VTI", Type: "Commodity", Cost: Money{Cents: 100000}}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestSavingsGoalValidate(t *testing.T) {
	// current above target is over-saving, not an error
	good := SavingsGoal{Name: "Vacation", Target: Money{Cents: 100000}, Current: Money{Cents: 120000}}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	bad := SavingsGoal{Name: "Vacation", Target: Money{Cents: 0}}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for zero target")
	}
}
