package engine

import (
	"context"
	"fmt"
	"time"

	"budgetwise/internal/core"
)

// highSpendRatio is the share of income spent above which a spending
// cut is suggested.
const highSpendRatio = 0.8

// Recommendation is a budgeting suggestion derived from the current
// month's numbers.
type Recommendation struct {
	Title       string
	Description string
}

// Recommend evaluates the recommendation rules over the current month's
// summary, its category ranking, and total open debt.
func (e *Engine) Recommend(ctx context.Context, now time.Time) ([]Recommendation, error) {
	iv, err := core.ResolvePeriod(core.WindowMonth, now)
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
	debts, err := e.store.ListDebts(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch debts: %w", err)
	}
	var totalDebt core.Money
	for _, d := range debts {
		totalDebt = totalDebt.Add(d.Remaining)
	}
	return BuildRecommendations(sum, trend, totalDebt), nil
}

// BuildRecommendations applies three independent rules in a fixed
// order: high spending relative to income, a dominant category, and
// outstanding debt. Each can contribute at most one recommendation.
// The spending rule is skipped when income is zero.
func BuildRecommendations(sum core.Summary, trend core.Trend, totalDebt core.Money) []Recommendation {
	var recs []Recommendation

	if sum.TotalIncome.Cents > 0 && sum.TotalExpenses.Dollars() > sum.TotalIncome.Dollars()*highSpendRatio {
		pct := sum.TotalExpenses.Dollars() / sum.TotalIncome.Dollars() * 100
		recs = append(recs, Recommendation{
			Title:       "Reduce Spending",
			Description: fmt.Sprintf("You're spending %.1f%% of your income. Try to reduce expenses by 10-20%%.", pct),
		})
	}

	if len(trend.CategoryTrends) > 0 {
		top := trend.CategoryTrends[0].Name
		recs = append(recs, Recommendation{
			Title:       fmt.Sprintf("Review %s Spending", top),
			Description: fmt.Sprintf("%s is your biggest expense category. Consider setting a weekly limit.", top),
		})
	}

	if totalDebt.Cents > 0 {
		recs = append(recs, Recommendation{
			Title:       "Pay Down Debt",
			Description: fmt.Sprintf("You have %s in debt. Focus on paying high-interest debt first.", totalDebt.Format()),
		})
	}

	return recs
}
