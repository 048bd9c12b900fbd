package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"budgetwise/internal/core"
	"budgetwise/internal/ledger"
)

// Engine is the query facade over a ledger store. Every query fetches a
// fresh snapshot and computes derived values from it; two calls with the
// same underlying records and window yield identical output.
type Engine struct {
	store ledger.Reader
}

func New(store ledger.Reader) *Engine {
	return &Engine{store: store}
}

// snapshot reads expenses, income, and categories for the interval.
// The reads are independent and commutative, so they run concurrently;
// the store hands out copies, which is all the consistency aggregation
// needs.
func (e *Engine) snapshot(ctx context.Context, iv core.Interval) (Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Expenses, err = e.store.ListExpenses(gctx, iv)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Income, err = e.store.ListIncome(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Categories, err = e.store.ListCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("fetch snapshot: %w", err)
	}
	return snap, nil
}

// Summary returns windowed totals and per-category spending.
func (e *Engine) Summary(ctx context.Context, window core.Window, now time.Time) (core.Summary, error) {
	iv, err := core.ResolvePeriod(window, now)
	if err != nil {
		return core.Summary{}, err
	}
	snap, err := e.snapshot(ctx, iv)
	if err != nil {
		return core.Summary{}, err
	}
	return BuildSummary(snap)
}

// Trends returns the day-bucketed series and category ranking for the window.
func (e *Engine) Trends(ctx context.Context, window core.Window, now time.Time) (core.Trend, error) {
	iv, err := core.ResolvePeriod(window, now)
	if err != nil {
		return core.Trend{}, err
	}
	snap, err := e.snapshot(ctx, iv)
	if err != nil {
		return core.Trend{}, err
	}
	return BuildTrend(snap)
}

// Insights evaluates the rule set over a single snapshot, so the trend
// and summary it compares are guaranteed to describe the same records.
func (e *Engine) Insights(ctx context.Context, window core.Window, now time.Time) ([]core.Insight, error) {
	iv, err := core.ResolvePeriod(window, now)
	if err != nil {
		return nil, err
	}
	snap, err := e.snapshot(ctx, iv)
	if err != nil {
		return nil, err
	}
	sum, err := BuildSummary(snap)
	if err != nil {
		return nil, err
	}
	trend, err := BuildTrend(snap)
	if err != nil {
		return nil, err
	}
	return BuildInsights(trend, sum), nil
}

// Overview is the whole-ledger roll-up: all income, current-month
// spending, portfolio value, saved amounts, and open debt.
type Overview struct {
	TotalIncome      core.Money
	TotalExpenses    core.Money
	TotalInvestments core.Money
	TotalSavings     core.Money
	TotalDebts       core.Money
	NetWorth         core.Money
	AvailableCash    core.Money
}

func (e *Engine) Overview(ctx context.Context, now time.Time) (Overview, error) {
	iv, err := core.ResolvePeriod(core.WindowMonth, now)
	if err != nil {
		return Overview{}, err
	}

	var (
		expenses    []core.Expense
		income      []core.IncomeEntry
		investments []core.Investment
		goals       []core.SavingsGoal
		debts       []core.Debt
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { var err error; expenses, err = e.store.ListExpenses(gctx, iv); return err })
	g.Go(func() error { var err error; income, err = e.store.ListIncome(gctx); return err })
	g.Go(func() error { var err error; investments, err = e.store.ListInvestments(gctx); return err })
	g.Go(func() error { var err error; goals, err = e.store.ListGoals(gctx); return err })
	g.Go(func() error { var err error; debts, err = e.store.ListDebts(gctx); return err })
	if err := g.Wait(); err != nil {
		return Overview{}, fmt.Errorf("fetch overview records: %w", err)
	}

	var o Overview
	for _, in := range income {
		o.TotalIncome = o.TotalIncome.Add(in.Amount)
	}
	for _, ex := range expenses {
		o.TotalExpenses = o.TotalExpenses.Add(ex.Amount)
	}
	for _, inv := range investments {
		o.TotalInvestments = o.TotalInvestments.Add(inv.CurrentValue)
	}
	for _, goal := range goals {
		o.TotalSavings = o.TotalSavings.Add(goal.Current)
	}
	for _, d := range debts {
		o.TotalDebts = o.TotalDebts.Add(d.Remaining)
	}
	o.AvailableCash = o.TotalIncome.Sub(o.TotalExpenses)
	o.NetWorth = o.AvailableCash.Add(o.TotalInvestments).Add(o.TotalSavings).Sub(o.TotalDebts)
	return o, nil
}

// MonthlyReport summarizes one calendar month: income, spending by
// category with transaction counts, and the savings rate.
type MonthlyReport struct {
	Year        int
	Month       time.Month
	Income      core.Money
	Expenses    core.Money
	Savings     core.Money
	ByCategory  []core.CategoryTrend
	SavingsRate float64 // percent; 0 when there is no income
}

// MonthlyReport reports one calendar month. Expenses are windowed to
// the month; income entries are undated, so Income is the full total,
// not what was added during that month.
func (e *Engine) MonthlyReport(ctx context.Context, year int, month time.Month) (MonthlyReport, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	iv := core.Interval{Start: start, End: start.AddDate(0, 1, 0)}
	snap, err := e.snapshot(ctx, iv)
	if err != nil {
		return MonthlyReport{}, err
	}
	trend, err := BuildTrend(snap)
	if err != nil {
		return MonthlyReport{}, err
	}

	r := MonthlyReport{Year: year, Month: month, ByCategory: trend.CategoryTrends}
	for _, in := range snap.Income {
		r.Income = r.Income.Add(in.Amount)
	}
	for _, c := range trend.CategoryTrends {
		r.Expenses = r.Expenses.Add(c.Total)
	}
	r.Savings = r.Income.Sub(r.Expenses)
	if r.Income.Cents > 0 {
		r.SavingsRate = float64(r.Savings.Cents) / float64(r.Income.Cents) * 100
	}
	return r, nil
}

// Prediction is a rule-based spend projection for the coming window.
type Prediction struct {
	Predicted  core.Money
	Confidence string // "low" or "medium"
	Message    string
}

// PredictSpend projects spending for the next window from the mean of
// the most recent daily totals over a lookback of twice the horizon.
// Under three observed days there is not enough signal to extrapolate.
func (e *Engine) PredictSpend(ctx context.Context, window core.Window, now time.Time) (Prediction, error) {
	horizon := 30
	if window == core.WindowWeek {
		horizon = 7
	} else if window != core.WindowMonth && window != core.WindowAll {
		return Prediction{}, fmt.Errorf("%w: %q", core.ErrInvalidPeriod, string(window))
	}

	iv := core.Interval{Start: now.AddDate(0, 0, -2*horizon), End: now}
	snap, err := e.snapshot(ctx, iv)
	if err != nil {
		return Prediction{}, err
	}
	trend, err := BuildTrend(snap)
	if err != nil {
		return Prediction{}, err
	}

	daily := trend.DailyTotals
	if len(daily) < 3 {
		return Prediction{Confidence: "low", Message: "Need more data for accurate predictions"}, nil
	}

	span := len(daily)
	if span > momentumSpan {
		span = momentumSpan
	}
	recentAvg := meanCents(daily[len(daily)-span:])
	predicted := core.Money{Cents: int64(math.Round(recentAvg * float64(horizon)))}
	return Prediction{
		Predicted:  predicted,
		Confidence: "medium",
		Message: fmt.Sprintf("Based on recent spending patterns, you might spend around %s in the next %d days.",
			predicted.Format(), horizon),
	}, nil
}
