// Package storage is the SQLite-backed ledger store. Amounts are
// persisted as integer cents; REAL columns never hold money.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"budgetwise/internal/core"
	"budgetwise/internal/ledger"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

// Interface check; the repository must cover the whole store surface.
var _ ledger.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// nullTime maps optional DATE columns to *time.Time.
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context, iv core.Interval) ([]core.Expense, error) {
	query := `SELECT id, amount_cents, category_id, description, date_added FROM expenses`
	var (
		conds []string
		args  []any
	)
	if !iv.Start.IsZero() {
		conds = append(conds, "date_added >= ?")
		args = append(args, iv.Start)
	}
	if !iv.End.IsZero() {
		conds = append(conds, "date_added < ?")
		args = append(args, iv.End)
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var e core.Expense
		if err := rows.Scan(&e.ID, &e.Amount.Cents, &e.CategoryID, &e.Description, &e.DateAdded); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) ListIncome(ctx context.Context) ([]core.IncomeEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, amount_cents, source, period FROM income ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list income: %w", err)
	}
	defer rows.Close()

	var out []core.IncomeEntry
	for rows.Next() {
		var e core.IncomeEntry
		if err := rows.Scan(&e.ID, &e.Amount.Cents, &e.Source, &e.Period); err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, budget_limit_cents, color FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.BudgetLimit.Cents, &c.Color); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) ListRecurring(ctx context.Context) ([]core.RecurringExpense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, amount_cents, category_id, frequency, next_due_date
		FROM recurring_expenses WHERE is_active = 1 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list recurring expenses: %w", err)
	}
	defer rows.Close()

	var out []core.RecurringExpense
	for rows.Next() {
		var (
			re  core.RecurringExpense
			due sql.NullTime
		)
		if err := rows.Scan(&re.ID, &re.Name, &re.Amount.Cents, &re.CategoryID, &re.Frequency, &due); err != nil {
			return nil, fmt.Errorf("scan recurring expense: %w", err)
		}
		re.NextDue = timePtr(due)
		out = append(out, re)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) ListDebts(ctx context.Context) ([]core.Debt, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, total_cents, remaining_cents, interest_rate, due_date, description
		FROM debts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	defer rows.Close()

	var out []core.Debt
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDebt(row rowScanner) (core.Debt, error) {
	var (
		d   core.Debt
		due sql.NullTime
	)
	if err := row.Scan(&d.ID, &d.Name, &d.Total.Cents, &d.Remaining.Cents, &d.InterestRate, &due, &d.Description); err != nil {
		return core.Debt{}, fmt.Errorf("scan debt: %w", err)
	}
	d.DueDate = timePtr(due)
	return d, nil
}

func (r *SQLiteRepository) GetDebt(ctx context.Context, id int64) (core.Debt, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, total_cents, remaining_cents, interest_rate, due_date, description
		FROM debts WHERE id = ?`, id)
	d, err := scanDebt(row)
	if err != nil {
		return core.Debt{}, fmt.Errorf("debt %d not found: %w", id, err)
	}
	return d, nil
}

func (r *SQLiteRepository) ListInvestments(ctx context.Context) ([]core.Investment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, type, cost_cents, current_value_cents, purchase_date
		FROM investments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	defer rows.Close()

	var out []core.Investment
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func scanInvestment(row rowScanner) (core.Investment, error) {
	var (
		inv       core.Investment
		purchased sql.NullTime
	)
	if err := row.Scan(&inv.ID, &inv.Name, &inv.Type, &inv.Cost.Cents, &inv.CurrentValue.Cents, &purchased); err != nil {
		return core.Investment{}, fmt.Errorf("scan investment: %w", err)
	}
	inv.PurchaseDate = timePtr(purchased)
	return inv, nil
}

func (r *SQLiteRepository) GetInvestment(ctx context.Context, id int64) (core.Investment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, type, cost_cents, current_value_cents, purchase_date
		FROM investments WHERE id = ?`, id)
	inv, err := scanInvestment(row)
	if err != nil {
		return core.Investment{}, fmt.Errorf("investment %d not found: %w", id, err)
	}
	return inv, nil
}

func (r *SQLiteRepository) ListGoals(ctx context.Context) ([]core.SavingsGoal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, target_cents, current_cents, deadline, description
		FROM savings_goals ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var out []core.SavingsGoal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func scanGoal(row rowScanner) (core.SavingsGoal, error) {
	var (
		g        core.SavingsGoal
		deadline sql.NullTime
	)
	if err := row.Scan(&g.ID, &g.Name, &g.Target.Cents, &g.Current.Cents, &deadline, &g.Description); err != nil {
		return core.SavingsGoal{}, fmt.Errorf("scan goal: %w", err)
	}
	g.Deadline = timePtr(deadline)
	return g, nil
}

func (r *SQLiteRepository) GetGoal(ctx context.Context, id int64) (core.SavingsGoal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, target_cents, current_cents, deadline, description
		FROM savings_goals WHERE id = ?`, id)
	g, err := scanGoal(row)
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("goal %d not found: %w", id, err)
	}
	return g, nil
}

// categoryExists guards inserts; SQLite only enforces the foreign key
// when the pragma is on, so the check lives here.
func (r *SQLiteRepository) categoryExists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM categories WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check category %d: %w", id, err)
	}
	return true, nil
}

func (r *SQLiteRepository) AddExpense(ctx context.Context, e core.Expense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	ok, err := r.categoryExists(ctx, e.CategoryID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: id %d", core.ErrUnknownCategory, e.CategoryID)
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (amount_cents, category_id, description, date_added)
		VALUES (?, ?, ?, ?)`,
		e.Amount.Cents, e.CategoryID, e.Description, e.DateAdded)
	if err != nil {
		return 0, fmt.Errorf("create expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("expense id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"amount_cents", e.Amount.Cents,
		"category_id", e.CategoryID)
	return id, nil
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "expenses", id)
}

func (r *SQLiteRepository) AddIncome(ctx context.Context, e core.IncomeEntry) (int64, error) {
	if e.Source == "" {
		e.Source = "Other"
	}
	if err := e.Validate(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO income (amount_cents, source, period) VALUES (?, ?, ?)`,
		e.Amount.Cents, e.Source, e.Period)
	if err != nil {
		return 0, fmt.Errorf("create income: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) DeleteIncome(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "income", id)
}

func (r *SQLiteRepository) AddCategory(ctx context.Context, c core.Category) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	if c.Color == "" {
		c.Color = "#3B82F6"
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (name, budget_limit_cents, color) VALUES (?, ?, ?)`,
		c.Name, c.BudgetLimit.Cents, c.Color)
	if err != nil {
		// UNIQUE COLLATE NOCASE on name makes duplicates a constraint error.
		return 0, fmt.Errorf("create category %q: %w", c.Name, err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) UpdateBudgetLimit(ctx context.Context, id int64, limit core.Money) error {
	if limit.Cents < 0 {
		return core.ErrInvalidAmount
	}
	return r.updateOne(ctx,
		`UPDATE categories SET budget_limit_cents = ? WHERE id = ?`,
		fmt.Sprintf("category %d", id), limit.Cents, id)
}

func (r *SQLiteRepository) AddRecurring(ctx context.Context, re core.RecurringExpense) (int64, error) {
	if err := re.Validate(); err != nil {
		return 0, err
	}
	ok, err := r.categoryExists(ctx, re.CategoryID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: id %d", core.ErrUnknownCategory, re.CategoryID)
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO recurring_expenses (name, amount_cents, category_id, frequency, next_due_date)
		VALUES (?, ?, ?, ?, ?)`,
		re.Name, re.Amount.Cents, re.CategoryID, re.Frequency, nullTime(re.NextDue))
	if err != nil {
		return 0, fmt.Errorf("create recurring expense: %w", err)
	}
	return res.LastInsertId()
}

// DeleteRecurring deactivates the template instead of removing the row.
func (r *SQLiteRepository) DeleteRecurring(ctx context.Context, id int64) error {
	return r.updateOne(ctx,
		`UPDATE recurring_expenses SET is_active = 0 WHERE id = ?`,
		fmt.Sprintf("recurring expense %d", id), id)
}

func (r *SQLiteRepository) AddDebt(ctx context.Context, d core.Debt) (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO debts (name, total_cents, remaining_cents, interest_rate, due_date, description)
		VALUES (?, ?, ?, ?, ?, ?)`,
		d.Name, d.Total.Cents, d.Remaining.Cents, d.InterestRate, nullTime(d.DueDate), d.Description)
	if err != nil {
		return 0, fmt.Errorf("create debt: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) UpdateDebtRemaining(ctx context.Context, id int64, remaining core.Money) error {
	if remaining.Cents < 0 {
		return core.ErrInvalidAmount
	}
	// The WHERE clause keeps remaining within [0, total] atomically.
	res, err := r.db.ExecContext(ctx, `
		UPDATE debts SET remaining_cents = ? WHERE id = ? AND total_cents >= ?`,
		remaining.Cents, id, remaining.Cents)
	if err != nil {
		return fmt.Errorf("update debt %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update debt %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("remaining amount out of range or debt %d not found", id)
	}
	return nil
}

func (r *SQLiteRepository) DeleteDebt(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "debts", id)
}

func (r *SQLiteRepository) AddInvestment(ctx context.Context, inv core.Investment) (int64, error) {
	if err := inv.Validate(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO investments (name, type, cost_cents, current_value_cents, purchase_date)
		VALUES (?, ?, ?, ?, ?)`,
		inv.Name, inv.Type, inv.Cost.Cents, inv.CurrentValue.Cents, nullTime(inv.PurchaseDate))
	if err != nil {
		return 0, fmt.Errorf("create investment: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) UpdateInvestmentValue(ctx context.Context, id int64, value core.Money) error {
	if value.Cents < 0 {
		return core.ErrInvalidAmount
	}
	return r.updateOne(ctx,
		`UPDATE investments SET current_value_cents = ? WHERE id = ?`,
		fmt.Sprintf("investment %d", id), value.Cents, id)
}

func (r *SQLiteRepository) DeleteInvestment(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "investments", id)
}

func (r *SQLiteRepository) AddGoal(ctx context.Context, g core.SavingsGoal) (int64, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO savings_goals (name, target_cents, current_cents, deadline, description)
		VALUES (?, ?, ?, ?, ?)`,
		g.Name, g.Target.Cents, g.Current.Cents, nullTime(g.Deadline), g.Description)
	if err != nil {
		return 0, fmt.Errorf("create goal: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) UpdateGoalAmount(ctx context.Context, id int64, current core.Money) error {
	if current.Cents < 0 {
		return core.ErrInvalidAmount
	}
	return r.updateOne(ctx,
		`UPDATE savings_goals SET current_cents = ? WHERE id = ?`,
		fmt.Sprintf("goal %d", id), current.Cents, id)
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "savings_goals", id)
}

func (r *SQLiteRepository) deleteByID(ctx context.Context, table string, id int64) error {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if n == 0 {
		return fmt.Errorf("%s row %d not found", table, id)
	}
	return nil
}

func (r *SQLiteRepository) updateOne(ctx context.Context, query, what string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s not found", what)
	}
	return nil
}
