package core

import (
	"math"
	"time"
)

// Progress returns the share of the debt paid off as a percentage.
// Remaining is invariant-bounded to [0, Total], so the result stays in [0, 100].
func (d Debt) Progress() float64 {
	if d.Total.Cents <= 0 {
		return 0
	}
	return float64(d.Total.Cents-d.Remaining.Cents) / float64(d.Total.Cents) * 100
}

// ApplyPayment returns a copy of the debt with the payment subtracted from
// the remaining amount. The remainder never goes negative.
func (d Debt) ApplyPayment(p Money) Debt {
	r := d.Remaining.Cents - p.Cents
	if r < 0 {
		r = 0
	}
	d.Remaining = Money{Cents: r}
	return d
}

// Return reports the gain or loss relative to the purchase cost as a
// percentage. A zero purchase cost yields 0, never a division by zero.
func (i Investment) Return() float64 {
	if i.Cost.Cents == 0 {
		return 0
	}
	return float64(i.CurrentValue.Cents-i.Cost.Cents) / float64(i.Cost.Cents) * 100
}

// Progress reports goal completion as a percentage capped at 100.
// The saved amount itself may exceed the target.
func (g SavingsGoal) Progress() float64 {
	if g.Target.Cents <= 0 {
		return 0
	}
	p := float64(g.Current.Cents) / float64(g.Target.Cents) * 100
	if p > 100 {
		p = 100
	}
	return p
}

// MonthlyEquivalent normalizes the recurring amount to a per-month figure:
// monthly as-is, weekly times four, yearly divided by twelve. Any other
// frequency value passes through unchanged.
func (re RecurringExpense) MonthlyEquivalent() Money {
	switch re.Frequency {
	case Monthly:
		return re.Amount
	case Weekly:
		return re.Amount.MulInt(4)
	case Yearly:
		return re.Amount.DivRound(12)
	default:
		return re.Amount
	}
}

// DaysUntil returns the whole calendar days between now and target,
// rounding up so that tomorrow just before midnight still counts as one
// day. Negative values mean the target is overdue; nil when no date is set.
func DaysUntil(target *time.Time, now time.Time) *int {
	if target == nil {
		return nil
	}
	days := int(math.Ceil(target.Sub(now).Hours() / 24))
	return &days
}
