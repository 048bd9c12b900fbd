package engine

import (
	"strings"
	"testing"

	"budgetwise/internal/core"
)

func recSummary(incomeCents, expenseCents int64) core.Summary {
	return core.Summary{
		TotalIncome:   cents(incomeCents),
		TotalExpenses: cents(expenseCents),
	}
}

func recTrend(topName string, totalCents int64) core.Trend {
	return core.Trend{
		CategoryTrends: []core.CategoryTrend{{Name: topName, Total: cents(totalCents), Count: 1}},
	}
}

func TestBuildRecommendationsAllRules(t *testing.T) {
	sum := recSummary(100000, 92500) // spending 92.5% of income
	recs := BuildRecommendations(sum, recTrend("Food", 50000), cents(340000))

	if len(recs) != 3 {
		t.Fatalf("got %d recommendations, want 3: %+v", len(recs), recs)
	}
	if recs[0].Title != "Reduce Spending" {
		t.Errorf("recs[0].Title = %q, want Reduce Spending", recs[0].Title)
	}
	if want := "You're spending 92.5% of your income. Try to reduce expenses by 10-20%."; recs[0].Description != want {
		t.Errorf("recs[0].Description = %q, want %q", recs[0].Description, want)
	}
	if recs[1].Title != "Review Food Spending" {
		t.Errorf("recs[1].Title = %q, want Review Food Spending", recs[1].Title)
	}
	if want := "Food is your biggest expense category. Consider setting a weekly limit."; recs[1].Description != want {
		t.Errorf("recs[1].Description = %q, want %q", recs[1].Description, want)
	}
	if recs[2].Title != "Pay Down Debt" {
		t.Errorf("recs[2].Title = %q, want Pay Down Debt", recs[2].Title)
	}
	if !strings.Contains(recs[2].Description, "$3400.00") {
		t.Errorf("recs[2].Description = %q, want debt amount $3400.00", recs[2].Description)
	}
}

func TestBuildRecommendationsSpendingThreshold(t *testing.T) {
	cases := []struct {
		name     string
		income   int64
		expenses int64
		want     bool
	}{
		{"under threshold", 100000, 80000, false}, // exactly 80% does not trigger
		{"just over", 100000, 80001, true},
		{"zero income skipped", 0, 50000, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recs := BuildRecommendations(recSummary(tc.income, tc.expenses), core.Trend{}, core.Money{})
			got := false
			for _, r := range recs {
				if r.Title == "Reduce Spending" {
					got = true
				}
			}
			if got != tc.want {
				t.Errorf("Reduce Spending present = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBuildRecommendationsQuietMonth(t *testing.T) {
	recs := BuildRecommendations(recSummary(100000, 0), core.Trend{}, core.Money{})
	if len(recs) != 0 {
		t.Errorf("got %d recommendations, want none: %+v", len(recs), recs)
	}
}
