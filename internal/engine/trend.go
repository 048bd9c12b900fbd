package engine

import (
	"fmt"
	"sort"
	"time"

	"budgetwise/internal/core"
)

// BuildTrend buckets the snapshot's expenses by calendar day and ranks
// categories by windowed total.
//
// Daily totals are sparse: days without expenses are never synthesized,
// so day-over-day consumers must handle gaps themselves. Category
// trends sort descending by total; ties keep first-seen order so
// identical input always yields identical output.
func BuildTrend(snap Snapshot) (core.Trend, error) {
	byID := make(map[int64]core.Category, len(snap.Categories))
	for _, c := range snap.Categories {
		byID[c.ID] = c
	}

	days := make(map[time.Time]core.Money)
	type catAgg struct {
		name  string
		total core.Money
		count int
	}
	catIndex := make(map[int64]int)
	var cats []catAgg

	for _, e := range snap.Expenses {
		cat, ok := byID[e.CategoryID]
		if !ok {
			return core.Trend{}, fmt.Errorf("%w: expense %d references category %d", core.ErrUnknownCategory, e.ID, e.CategoryID)
		}

		day := time.Date(e.DateAdded.Year(), e.DateAdded.Month(), e.DateAdded.Day(), 0, 0, 0, 0, e.DateAdded.Location())
		days[day] = days[day].Add(e.Amount)

		i, seen := catIndex[e.CategoryID]
		if !seen {
			i = len(cats)
			catIndex[e.CategoryID] = i
			cats = append(cats, catAgg{name: cat.Name})
		}
		cats[i].total = cats[i].total.Add(e.Amount)
		cats[i].count++
	}

	daily := make([]core.DailyTotal, 0, len(days))
	for day, amount := range days {
		daily = append(daily, core.DailyTotal{Date: day, Amount: amount})
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date.Before(daily[j].Date) })

	// Stable sort preserves first-seen order for equal totals.
	sort.SliceStable(cats, func(i, j int) bool { return cats[i].total.Cents > cats[j].total.Cents })

	trends := make([]core.CategoryTrend, 0, len(cats))
	for _, c := range cats {
		trends = append(trends, core.CategoryTrend{Name: c.name, Total: c.total, Count: c.count})
	}

	return core.Trend{DailyTotals: daily, CategoryTrends: trends}, nil
}
