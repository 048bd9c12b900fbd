package engine

import (
	"testing"
	"time"

	"budgetwise/internal/core"
)

func TestBuildPatterns(t *testing.T) {
	cats := []core.Category{
		{ID: 1, Name: "Food"},
		{ID: 2, Name: "Transport"},
	}
	// March 2026 starts on a Sunday, so day(1) is Sunday, day(2) is
	// Monday, and day(8) is the following Sunday.
	snap := Snapshot{
		Categories: cats,
		Expenses: []core.Expense{
			{ID: 1, Amount: cents(4000), CategoryID: 1, DateAdded: day(1)},
			{ID: 2, Amount: cents(2000), CategoryID: 2, DateAdded: day(2)},
			{ID: 3, Amount: cents(1000), CategoryID: 1, DateAdded: day(8)},
		},
	}

	got, err := BuildPatterns(snap)
	if err != nil {
		t.Fatalf("BuildPatterns: %v", err)
	}

	wantDays := []DayPattern{
		{Day: time.Sunday, Total: cents(5000), Count: 2},
		{Day: time.Monday, Total: cents(2000), Count: 1},
	}
	if len(got.DayPatterns) != len(wantDays) {
		t.Fatalf("DayPatterns has %d entries, want %d", len(got.DayPatterns), len(wantDays))
	}
	for i, want := range wantDays {
		if got.DayPatterns[i] != want {
			t.Errorf("DayPatterns[%d] = %+v, want %+v", i, got.DayPatterns[i], want)
		}
	}

	if got.AvgTransaction != cents(2333) {
		t.Errorf("AvgTransaction = %v, want 2333", got.AvgTransaction.Cents)
	}
	if got.MinTransaction != cents(1000) {
		t.Errorf("MinTransaction = %v, want 1000", got.MinTransaction.Cents)
	}
	if got.MaxTransaction != cents(4000) {
		t.Errorf("MaxTransaction = %v, want 4000", got.MaxTransaction.Cents)
	}
	if got.TopCategory == nil {
		t.Fatal("TopCategory is nil, want Food")
	}
	if got.TopCategory.Name != "Food" || got.TopCategory.Total != cents(5000) {
		t.Errorf("TopCategory = %+v, want Food at 5000", got.TopCategory)
	}
}

func TestBuildPatternsEmpty(t *testing.T) {
	got, err := BuildPatterns(Snapshot{})
	if err != nil {
		t.Fatalf("BuildPatterns: %v", err)
	}
	if len(got.DayPatterns) != 0 {
		t.Errorf("DayPatterns = %v, want empty", got.DayPatterns)
	}
	if got.AvgTransaction.Cents != 0 || got.MinTransaction.Cents != 0 || got.MaxTransaction.Cents != 0 {
		t.Errorf("transaction stats = %v/%v/%v, want all zero",
			got.AvgTransaction.Cents, got.MinTransaction.Cents, got.MaxTransaction.Cents)
	}
	if got.TopCategory != nil {
		t.Errorf("TopCategory = %+v, want nil", got.TopCategory)
	}
}

func TestBuildPatternsWeekdayOrder(t *testing.T) {
	cats := []core.Category{{ID: 1, Name: "Food"}}
	// Inserted Saturday first; output must still start at Sunday.
	snap := Snapshot{
		Categories: cats,
		Expenses: []core.Expense{
			{ID: 1, Amount: cents(100), CategoryID: 1, DateAdded: day(7)}, // Saturday
			{ID: 2, Amount: cents(200), CategoryID: 1, DateAdded: day(4)}, // Wednesday
			{ID: 3, Amount: cents(300), CategoryID: 1, DateAdded: day(1)}, // Sunday
		},
	}

	got, err := BuildPatterns(snap)
	if err != nil {
		t.Fatalf("BuildPatterns: %v", err)
	}
	want := []time.Weekday{time.Sunday, time.Wednesday, time.Saturday}
	if len(got.DayPatterns) != len(want) {
		t.Fatalf("DayPatterns has %d entries, want %d", len(got.DayPatterns), len(want))
	}
	for i, w := range want {
		if got.DayPatterns[i].Day != w {
			t.Errorf("DayPatterns[%d].Day = %v, want %v", i, got.DayPatterns[i].Day, w)
		}
	}
}
