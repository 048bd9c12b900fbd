package core

import "time"

const (
	InsightSuccess InsightType = "success"
	InsightWarning InsightType = "warning"
	InsightAlert   InsightType = "alert"
	InsightInfo    InsightType = "info"
)

type InsightType string

// Insight is a derived advisory message. Insights are produced fresh on
// every query and have no identity beyond a single response.
type Insight struct {
	Type    InsightType
	Title   string
	Message string
}

// Summary is the windowed roll-up of income and spending.
// CategorySpending keys are always a subset of CategoryBudgets keys.
type Summary struct {
	TotalIncome      Money
	TotalExpenses    Money
	RemainingBudget  Money
	CategorySpending map[string]Money
	CategoryBudgets  map[string]Money
}

// DailyTotal is one day's summed spending. Days without expenses are
// never synthesized; a series of DailyTotals is sparse.
type DailyTotal struct {
	Date   time.Time // midnight, local day
	Amount Money
}

// CategoryTrend carries a category's windowed total and transaction count.
type CategoryTrend struct {
	Name  string
	Total Money
	Count int
}

// Trend pairs the day-bucketed spending series with categories ranked
// by total, descending.
type Trend struct {
	DailyTotals    []DailyTotal
	CategoryTrends []CategoryTrend
}
