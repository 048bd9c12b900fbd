package engine

import (
	"fmt"
	"sort"

	"budgetwise/internal/core"
)

// Rule thresholds. Comparisons always use unrounded ratios; rounding
// happens only when a value is printed into a message.
const (
	momentumUpFactor   = 1.2
	momentumDownFactor = 0.8
	budgetWarnPercent  = 80
	lowSavingsPercent  = 10
	goodSavingsPercent = 20
	momentumSpan       = 7
)

// BuildInsights evaluates the fixed rule set over a trend and summary
// computed from the same snapshot. Rules run independently; several
// insights may co-occur. Output order is fixed: spending momentum,
// budget thresholds, top category, savings rate.
func BuildInsights(trend core.Trend, sum core.Summary) []core.Insight {
	var out []core.Insight
	out = append(out, momentumInsights(trend.DailyTotals)...)
	out = append(out, budgetInsights(sum)...)
	out = append(out, topCategoryInsights(trend.CategoryTrends)...)
	out = append(out, savingsRateInsights(sum)...)
	return out
}

// momentumInsights compares mean daily spending across the tail and
// head of the series. Fewer than seven points on either side just uses
// what is available; a single-point series emits nothing.
func momentumInsights(daily []core.DailyTotal) []core.Insight {
	if len(daily) < 2 {
		return nil
	}

	recent := daily[max(0, len(daily)-momentumSpan):]
	earlier := daily[:min(momentumSpan, len(daily))]
	recentAvg := meanCents(recent)
	earlierAvg := meanCents(earlier)
	if earlierAvg == 0 {
		return nil
	}

	switch {
	case recentAvg > earlierAvg*momentumUpFactor:
		pct := (recentAvg/earlierAvg - 1) * 100
		return []core.Insight{{
			Type:    core.InsightWarning,
			Title:   "Spending Increasing",
			Message: fmt.Sprintf("Your daily spending has increased by %.1f%% recently. Consider reviewing your expenses.", pct),
		}}
	case recentAvg < earlierAvg*momentumDownFactor:
		pct := (1 - recentAvg/earlierAvg) * 100
		return []core.Insight{{
			Type:    core.InsightSuccess,
			Title:   "Great Job!",
			Message: fmt.Sprintf("Your spending has decreased by %.1f%%. Keep it up!", pct),
		}}
	}
	return nil
}

// budgetInsights checks each spent-in category against its budget.
// Categories are visited in name order so repeated queries over the
// same records emit insights in the same sequence. A zero budget
// disables the check rather than dividing by it.
func budgetInsights(sum core.Summary) []core.Insight {
	names := make([]string, 0, len(sum.CategorySpending))
	for name := range sum.CategorySpending {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []core.Insight
	for _, name := range names {
		spent := sum.CategorySpending[name]
		budget := sum.CategoryBudgets[name]
		if budget.Cents <= 0 {
			continue
		}
		pct := float64(spent.Cents) / float64(budget.Cents) * 100
		switch {
		case pct > 100:
			over := spent.Sub(budget)
			out = append(out, core.Insight{
				Type:    core.InsightAlert,
				Title:   "Over Budget",
				Message: fmt.Sprintf("You've exceeded your %s budget by %s", name, over.Format()),
			})
		case pct > budgetWarnPercent:
			out = append(out, core.Insight{
				Type:    core.InsightWarning,
				Title:   "Approaching Limit",
				Message: fmt.Sprintf("You've used %.1f%% of your %s budget", pct, name),
			})
		}
	}
	return out
}

func topCategoryInsights(trends []core.CategoryTrend) []core.Insight {
	if len(trends) == 0 {
		return nil
	}
	top := trends[0]
	return []core.Insight{{
		Type:    core.InsightInfo,
		Title:   "Top Spending",
		Message: fmt.Sprintf("%s is your biggest expense at %s (%d transactions)", top.Name, top.Total.Format(), top.Count),
	}}
}

// savingsRateInsights is silent for rates between 10 and 20 percent,
// and skipped entirely when there is no income.
func savingsRateInsights(sum core.Summary) []core.Insight {
	if sum.TotalIncome.Cents <= 0 {
		return nil
	}
	rate := float64(sum.TotalIncome.Cents-sum.TotalExpenses.Cents) / float64(sum.TotalIncome.Cents) * 100
	switch {
	case rate < lowSavingsPercent:
		return []core.Insight{{
			Type:    core.InsightWarning,
			Title:   "Low Savings Rate",
			Message: fmt.Sprintf("You're saving only %.1f%% of your income. Aim for at least 20%%!", rate),
		}}
	case rate >= goodSavingsPercent:
		return []core.Insight{{
			Type:    core.InsightSuccess,
			Title:   "Excellent Savings!",
			Message: fmt.Sprintf("You're saving %.1f%% of your income. That's fantastic!", rate),
		}}
	}
	return nil
}

func meanCents(daily []core.DailyTotal) float64 {
	if len(daily) == 0 {
		return 0
	}
	var sum int64
	for _, d := range daily {
		sum += d.Amount.Cents
	}
	return float64(sum) / float64(len(daily))
}
