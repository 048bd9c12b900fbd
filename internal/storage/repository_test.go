package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"budgetwise/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestMigrationsSeedCategories(t *testing.T) {
	repo := newTestRepo(t)
	cats, err := repo.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(cats) != 5 {
		t.Fatalf("got %d seeded categories, want 5", len(cats))
	}
	if cats[0].Name != "Food" || cats[0].BudgetLimit.Cents != 20000 {
		t.Errorf("first category = %+v, want Food with $200 budget", cats[0])
	}
}

func TestExpenseWindowFiltering(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Date(2026, time.March, 20, 12, 0, 0, 0, time.UTC)

	for _, daysAgo := range []int{1, 10, 45} {
		_, err := repo.AddExpense(ctx, core.Expense{
			Amount:     core.Money{Cents: 1000},
			CategoryID: 1,
			DateAdded:  now.AddDate(0, 0, -daysAgo),
		})
		if err != nil {
			t.Fatalf("AddExpense: %v", err)
		}
	}

	cases := []struct {
		window core.Window
		want   int
	}{
		{core.WindowWeek, 1},
		{core.WindowMonth, 2},
		{core.WindowAll, 3},
	}
	for _, tc := range cases {
		t.Run(string(tc.window), func(t *testing.T) {
			iv, err := core.ResolvePeriod(tc.window, now)
			if err != nil {
				t.Fatalf("ResolvePeriod: %v", err)
			}
			got, err := repo.ListExpenses(ctx, iv)
			if err != nil {
				t.Fatalf("ListExpenses: %v", err)
			}
			if len(got) != tc.want {
				t.Errorf("got %d expenses, want %d", len(got), tc.want)
			}
		})
	}
}

func TestAddExpenseUnknownCategory(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.AddExpense(context.Background(), core.Expense{
		Amount:     core.Money{Cents: 1000},
		CategoryID: 999,
		DateAdded:  time.Now(),
	})
	if !errors.Is(err, core.ErrUnknownCategory) {
		t.Fatalf("err = %v, want ErrUnknownCategory", err)
	}
}

func TestCategoryNameUniqueCaseInsensitive(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.AddCategory(context.Background(), core.Category{Name: "FOOD"}); err == nil {
		t.Fatal("duplicate category name accepted")
	}
}

func TestRecurringSoftDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.AddRecurring(ctx, core.RecurringExpense{
		Name:       "Gym",
		Amount:     core.Money{Cents: 3000},
		CategoryID: 3,
		Frequency:  core.Monthly,
	})
	if err != nil {
		t.Fatalf("AddRecurring: %v", err)
	}
	if err := repo.DeleteRecurring(ctx, id); err != nil {
		t.Fatalf("DeleteRecurring: %v", err)
	}
	active, err := repo.ListRecurring(ctx)
	if err != nil {
		t.Fatalf("ListRecurring: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("deactivated template still listed: %+v", active)
	}
}

func TestDebtRemainingBounds(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.AddDebt(ctx, core.Debt{
		Name:      "Loan",
		Total:     core.Money{Cents: 50000},
		Remaining: core.Money{Cents: 50000},
	})
	if err != nil {
		t.Fatalf("AddDebt: %v", err)
	}

	if err := repo.UpdateDebtRemaining(ctx, id, core.Money{Cents: 20000}); err != nil {
		t.Fatalf("UpdateDebtRemaining: %v", err)
	}
	d, err := repo.GetDebt(ctx, id)
	if err != nil {
		t.Fatalf("GetDebt: %v", err)
	}
	if d.Remaining.Cents != 20000 {
		t.Errorf("Remaining = %d, want 20000", d.Remaining.Cents)
	}

	if err := repo.UpdateDebtRemaining(ctx, id, core.Money{Cents: 60000}); err == nil {
		t.Error("remaining above total accepted")
	}
	if err := repo.UpdateDebtRemaining(ctx, id, core.Money{Cents: -1}); !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("negative remaining err = %v, want ErrInvalidAmount", err)
	}
}

func TestOptionalDatesRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	deadline := time.Date(2027, time.June, 1, 0, 0, 0, 0, time.UTC)

	withDate, err := repo.AddGoal(ctx, core.SavingsGoal{
		Name:     "House deposit",
		Target:   core.Money{Cents: 5000000},
		Deadline: &deadline,
	})
	if err != nil {
		t.Fatalf("AddGoal: %v", err)
	}
	withoutDate, err := repo.AddGoal(ctx, core.SavingsGoal{
		Name:   "Rainy day",
		Target: core.Money{Cents: 100000},
	})
	if err != nil {
		t.Fatalf("AddGoal: %v", err)
	}

	g, err := repo.GetGoal(ctx, withDate)
	if err != nil {
		t.Fatalf("GetGoal: %v", err)
	}
	if g.Deadline == nil || !g.Deadline.Equal(deadline) {
		t.Errorf("Deadline = %v, want %v", g.Deadline, deadline)
	}

	g, err = repo.GetGoal(ctx, withoutDate)
	if err != nil {
		t.Fatalf("GetGoal: %v", err)
	}
	if g.Deadline != nil {
		t.Errorf("Deadline = %v, want nil", g.Deadline)
	}
}

func TestGetMissingRows(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	if _, err := repo.GetDebt(ctx, 123); err == nil {
		t.Error("missing debt returned no error")
	}
	if _, err := repo.GetInvestment(ctx, 123); err == nil {
		t.Error("missing investment returned no error")
	}
	if err := repo.DeleteExpense(ctx, 123); err == nil {
		t.Error("deleting missing expense returned no error")
	}
}
