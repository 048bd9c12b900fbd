package engine

import (
	"context"
	"sort"
	"time"

	"budgetwise/internal/core"
)

// patternLookbackDays is the window spending patterns are computed over.
const patternLookbackDays = 30

// DayPattern is one weekday's summed spending and transaction count.
type DayPattern struct {
	Day   time.Weekday
	Total core.Money
	Count int
}

// SpendingPatterns describes how spending distributes over the last
// thirty days: per-weekday buckets, transaction size statistics, and
// the heaviest category.
type SpendingPatterns struct {
	DayPatterns    []DayPattern
	AvgTransaction core.Money
	MinTransaction core.Money
	MaxTransaction core.Money
	TopCategory    *core.CategoryTrend
}

// SpendingPatterns analyzes the thirty days before now.
func (e *Engine) SpendingPatterns(ctx context.Context, now time.Time) (SpendingPatterns, error) {
	iv := core.Interval{Start: now.AddDate(0, 0, -patternLookbackDays), End: now}
	snap, err := e.snapshot(ctx, iv)
	if err != nil {
		return SpendingPatterns{}, err
	}
	return BuildPatterns(snap)
}

// BuildPatterns buckets the snapshot's expenses by weekday and computes
// transaction statistics. Weekday buckets are sparse and ordered
// Sunday through Saturday; weekdays without expenses are omitted. With
// no expenses at all, every statistic is zero and TopCategory is nil.
func BuildPatterns(snap Snapshot) (SpendingPatterns, error) {
	trend, err := BuildTrend(snap)
	if err != nil {
		return SpendingPatterns{}, err
	}

	byDay := make(map[time.Weekday]*DayPattern)
	var (
		sum      core.Money
		minCents int64
		maxCents int64
	)
	for i, exp := range snap.Expenses {
		day := exp.DateAdded.Weekday()
		p, ok := byDay[day]
		if !ok {
			p = &DayPattern{Day: day}
			byDay[day] = p
		}
		p.Total = p.Total.Add(exp.Amount)
		p.Count++

		sum = sum.Add(exp.Amount)
		if i == 0 || exp.Amount.Cents < minCents {
			minCents = exp.Amount.Cents
		}
		if exp.Amount.Cents > maxCents {
			maxCents = exp.Amount.Cents
		}
	}

	out := SpendingPatterns{
		MinTransaction: core.Money{Cents: minCents},
		MaxTransaction: core.Money{Cents: maxCents},
	}
	if n := len(snap.Expenses); n > 0 {
		out.AvgTransaction = sum.DivRound(int64(n))
	}
	for _, p := range byDay {
		out.DayPatterns = append(out.DayPatterns, *p)
	}
	sort.Slice(out.DayPatterns, func(i, j int) bool {
		return out.DayPatterns[i].Day < out.DayPatterns[j].Day
	})
	if len(trend.CategoryTrends) > 0 {
		top := trend.CategoryTrends[0]
		out.TopCategory = &top
	}
	return out, nil
}
