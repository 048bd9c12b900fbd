// Package memory provides an in-memory ledger store. It backs tests and
// the default data backend when no SQLite path is configured.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"budgetwise/internal/core"
)

type Store struct {
	mu sync.Mutex

	nextID      int64
	expenses    []core.Expense
	income      []core.IncomeEntry
	categories  []core.Category
	recurring   []core.RecurringExpense
	inactive    map[int64]bool // deactivated recurring templates
	debts       []core.Debt
	investments []core.Investment
	goals       []core.SavingsGoal
}

func New() *Store {
	return &Store{nextID: 1, inactive: make(map[int64]bool)}
}

// NewSeeded returns a store preloaded with the default category set.
func NewSeeded() *Store {
	s := New()
	ctx := context.Background()
	seed := []core.Category{
		{Name: "Food", BudgetLimit: core.Money{Cents: 20000}, Color: "#EF4444"},
		{Name: "Transport", BudgetLimit: core.Money{Cents: 10000}, Color: "#3B82F6"},
		{Name: "Fun", BudgetLimit: core.Money{Cents: 15000}, Color: "#10B981"},
		{Name: "Shopping", BudgetLimit: core.Money{Cents: 10000}, Color: "#F59E0B"},
		{Name: "Other", BudgetLimit: core.Money{Cents: 5000}, Color: "#8B5CF6"},
	}
	for _, c := range seed {
		_, _ = s.AddCategory(ctx, c)
	}
	return s
}

func (s *Store) allocID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// ListExpenses returns expenses inside the interval, insertion order.
func (s *Store) ListExpenses(_ context.Context, iv core.Interval) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Expense
	for _, e := range s.expenses {
		if iv.Contains(e.DateAdded) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) ListIncome(_ context.Context) ([]core.IncomeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.IncomeEntry(nil), s.income...), nil
}

func (s *Store) ListCategories(_ context.Context) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Category(nil), s.categories...), nil
}

func (s *Store) ListRecurring(_ context.Context) ([]core.RecurringExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.RecurringExpense
	for _, re := range s.recurring {
		if !s.inactive[re.ID] {
			out = append(out, re)
		}
	}
	return out, nil
}

func (s *Store) ListDebts(_ context.Context) ([]core.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Debt(nil), s.debts...), nil
}

func (s *Store) GetDebt(_ context.Context, id int64) (core.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.debts {
		if d.ID == id {
			return d, nil
		}
	}
	return core.Debt{}, fmt.Errorf("debt %d not found", id)
}

func (s *Store) ListInvestments(_ context.Context) ([]core.Investment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Investment(nil), s.investments...), nil
}

func (s *Store) GetInvestment(_ context.Context, id int64) (core.Investment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.investments {
		if inv.ID == id {
			return inv, nil
		}
	}
	return core.Investment{}, fmt.Errorf("investment %d not found", id)
}

func (s *Store) ListGoals(_ context.Context) ([]core.SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.SavingsGoal(nil), s.goals...), nil
}

func (s *Store) GetGoal(_ context.Context, id int64) (core.SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.goals {
		if g.ID == id {
			return g, nil
		}
	}
	return core.SavingsGoal{}, fmt.Errorf("goal %d not found", id)
}

func (s *Store) AddExpense(_ context.Context, e core.Expense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.categoryExists(e.CategoryID) {
		return 0, fmt.Errorf("%w: id %d", core.ErrUnknownCategory, e.CategoryID)
	}
	e.ID = s.allocID()
	s.expenses = append(s.expenses, e)
	return e.ID, nil
}

func (s *Store) DeleteExpense(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.expenses {
		if e.ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("expense %d not found", id)
}

func (s *Store) AddIncome(_ context.Context, e core.IncomeEntry) (int64, error) {
	if e.Source == "" {
		e.Source = "Other"
	}
	if err := e.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.allocID()
	s.income = append(s.income, e)
	return e.ID, nil
}

func (s *Store) DeleteIncome(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.income {
		if e.ID == id {
			s.income = append(s.income[:i], s.income[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("income %d not found", id)
}

func (s *Store) AddCategory(_ context.Context, c core.Category) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.categories {
		if strings.EqualFold(existing.Name, c.Name) {
			return 0, fmt.Errorf("category %q already exists", c.Name)
		}
	}
	c.ID = s.allocID()
	s.categories = append(s.categories, c)
	return c.ID, nil
}

func (s *Store) UpdateBudgetLimit(_ context.Context, id int64, limit core.Money) error {
	if limit.Cents < 0 {
		return core.ErrInvalidAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories[i].BudgetLimit = limit
			return nil
		}
	}
	return fmt.Errorf("%w: id %d", core.ErrUnknownCategory, id)
}

func (s *Store) AddRecurring(_ context.Context, re core.RecurringExpense) (int64, error) {
	if err := re.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.categoryExists(re.CategoryID) {
		return 0, fmt.Errorf("%w: id %d", core.ErrUnknownCategory, re.CategoryID)
	}
	re.ID = s.allocID()
	s.recurring = append(s.recurring, re)
	return re.ID, nil
}

func (s *Store) DeleteRecurring(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, re := range s.recurring {
		if re.ID == id {
			s.inactive[id] = true
			return nil
		}
	}
	return fmt.Errorf("recurring expense %d not found", id)
}

func (s *Store) AddDebt(_ context.Context, d core.Debt) (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = s.allocID()
	s.debts = append(s.debts, d)
	return d.ID, nil
}

func (s *Store) UpdateDebtRemaining(_ context.Context, id int64, remaining core.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.debts {
		if s.debts[i].ID == id {
			if remaining.Cents < 0 || remaining.Cents > s.debts[i].Total.Cents {
				return fmt.Errorf("remaining amount out of range for debt %d", id)
			}
			s.debts[i].Remaining = remaining
			return nil
		}
	}
	return fmt.Errorf("debt %d not found", id)
}

func (s *Store) DeleteDebt(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, d := range s.debts {
		if d.ID == id {
			s.debts = append(s.debts[:i], s.debts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("debt %d not found", id)
}

func (s *Store) AddInvestment(_ context.Context, inv core.Investment) (int64, error) {
	if err := inv.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	inv.ID = s.allocID()
	s.investments = append(s.investments, inv)
	return inv.ID, nil
}

func (s *Store) UpdateInvestmentValue(_ context.Context, id int64, value core.Money) error {
	if value.Cents < 0 {
		return core.ErrInvalidAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.investments {
		if s.investments[i].ID == id {
			s.investments[i].CurrentValue = value
			return nil
		}
	}
	return fmt.Errorf("investment %d not found", id)
}

func (s *Store) DeleteInvestment(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, inv := range s.investments {
		if inv.ID == id {
			s.investments = append(s.investments[:i], s.investments[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("investment %d not found", id)
}

func (s *Store) AddGoal(_ context.Context, g core.SavingsGoal) (int64, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	g.ID = s.allocID()
	s.goals = append(s.goals, g)
	return g.ID, nil
}

func (s *Store) UpdateGoalAmount(_ context.Context, id int64, current core.Money) error {
	if current.Cents < 0 {
		return core.ErrInvalidAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.goals {
		if s.goals[i].ID == id {
			s.goals[i].Current = current
			return nil
		}
	}
	return fmt.Errorf("goal %d not found", id)
}

func (s *Store) DeleteGoal(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.goals {
		if g.ID == id {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("goal %d not found", id)
}

func (s *Store) categoryExists(id int64) bool {
	for _, c := range s.categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
