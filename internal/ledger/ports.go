// Package ledger defines the ports the aggregation engine and services
// use to reach the record store. Implementations must preserve the
// referential integrity of expenses and recurring templates: a category
// is never removed once referenced, so no port exposes category deletion.
package ledger

import (
	"context"

	"budgetwise/internal/core"
)

// Read ports. Each read returns an independent copy of the records;
// callers may retain and aggregate over them without tearing.
type (
	ExpenseReader interface {
		// ListExpenses returns expenses whose DateAdded falls in the interval.
		ListExpenses(ctx context.Context, iv core.Interval) ([]core.Expense, error)
	}

	IncomeReader interface {
		ListIncome(ctx context.Context) ([]core.IncomeEntry, error)
	}

	CategoryReader interface {
		ListCategories(ctx context.Context) ([]core.Category, error)
	}

	RecurringReader interface {
		// ListRecurring returns active recurring expense templates.
		ListRecurring(ctx context.Context) ([]core.RecurringExpense, error)
	}

	DebtReader interface {
		ListDebts(ctx context.Context) ([]core.Debt, error)
		GetDebt(ctx context.Context, id int64) (core.Debt, error)
	}

	InvestmentReader interface {
		ListInvestments(ctx context.Context) ([]core.Investment, error)
		GetInvestment(ctx context.Context, id int64) (core.Investment, error)
	}

	GoalReader interface {
		ListGoals(ctx context.Context) ([]core.SavingsGoal, error)
		GetGoal(ctx context.Context, id int64) (core.SavingsGoal, error)
	}
)

// Reader is the full read surface a snapshot is fetched from.
type Reader interface {
	ExpenseReader
	IncomeReader
	CategoryReader
	RecurringReader
	DebtReader
	InvestmentReader
	GoalReader
}

// Write ports. Mutations are single-record; the store serializes
// concurrent writers (last writer wins).
type (
	ExpenseWriter interface {
		AddExpense(ctx context.Context, e core.Expense) (int64, error)
		DeleteExpense(ctx context.Context, id int64) error
	}

	IncomeWriter interface {
		AddIncome(ctx context.Context, e core.IncomeEntry) (int64, error)
		DeleteIncome(ctx context.Context, id int64) error
	}

	CategoryWriter interface {
		AddCategory(ctx context.Context, c core.Category) (int64, error)
		UpdateBudgetLimit(ctx context.Context, id int64, limit core.Money) error
	}

	RecurringWriter interface {
		AddRecurring(ctx context.Context, re core.RecurringExpense) (int64, error)
		// DeleteRecurring deactivates the template; history is kept.
		DeleteRecurring(ctx context.Context, id int64) error
	}

	DebtWriter interface {
		AddDebt(ctx context.Context, d core.Debt) (int64, error)
		UpdateDebtRemaining(ctx context.Context, id int64, remaining core.Money) error
		DeleteDebt(ctx context.Context, id int64) error
	}

	InvestmentWriter interface {
		AddInvestment(ctx context.Context, inv core.Investment) (int64, error)
		UpdateInvestmentValue(ctx context.Context, id int64, value core.Money) error
		DeleteInvestment(ctx context.Context, id int64) error
	}

	GoalWriter interface {
		AddGoal(ctx context.Context, g core.SavingsGoal) (int64, error)
		UpdateGoalAmount(ctx context.Context, id int64, current core.Money) error
		DeleteGoal(ctx context.Context, id int64) error
	}
)

// Store is a complete ledger backend.
type Store interface {
	Reader
	ExpenseWriter
	IncomeWriter
	CategoryWriter
	RecurringWriter
	DebtWriter
	InvestmentWriter
	GoalWriter
}
