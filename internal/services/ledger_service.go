package services

import (
	"context"
	"fmt"

	"budgetwise/internal/core"
	"budgetwise/internal/ledger"
)

// LedgerService handles the mutations with domain rules attached:
// debt payments, investment revaluation, and goal contributions.
// Plain CRUD goes straight through the store.
type LedgerService struct {
	store ledger.Store
}

func NewLedgerService(store ledger.Store) *LedgerService {
	return &LedgerService{store: store}
}

// ApplyDebtPayment reduces the remaining balance, clamping at zero.
// It returns the debt as it stands after the payment.
func (s *LedgerService) ApplyDebtPayment(ctx context.Context, debtID int64, payment core.Money) (core.Debt, error) {
	if payment.Cents <= 0 {
		return core.Debt{}, core.ErrInvalidAmount
	}
	d, err := s.store.GetDebt(ctx, debtID)
	if err != nil {
		return core.Debt{}, fmt.Errorf("load debt: %w", err)
	}
	d = d.ApplyPayment(payment)
	if err := s.store.UpdateDebtRemaining(ctx, debtID, d.Remaining); err != nil {
		return core.Debt{}, fmt.Errorf("update debt: %w", err)
	}
	return d, nil
}

// RevalueInvestment sets the current market value. Cost never changes.
func (s *LedgerService) RevalueInvestment(ctx context.Context, id int64, value core.Money) (core.Investment, error) {
	if value.Cents < 0 {
		return core.Investment{}, core.ErrInvalidAmount
	}
	if err := s.store.UpdateInvestmentValue(ctx, id, value); err != nil {
		return core.Investment{}, fmt.Errorf("update investment: %w", err)
	}
	inv, err := s.store.GetInvestment(ctx, id)
	if err != nil {
		return core.Investment{}, fmt.Errorf("load investment: %w", err)
	}
	return inv, nil
}

// SetGoalSaved records the amount saved toward a goal. Amounts above
// the target are allowed; progress just reads 100%.
func (s *LedgerService) SetGoalSaved(ctx context.Context, id int64, current core.Money) (core.SavingsGoal, error) {
	if current.Cents < 0 {
		return core.SavingsGoal{}, core.ErrInvalidAmount
	}
	if err := s.store.UpdateGoalAmount(ctx, id, current); err != nil {
		return core.SavingsGoal{}, fmt.Errorf("update goal: %w", err)
	}
	g, err := s.store.GetGoal(ctx, id)
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("load goal: %w", err)
	}
	return g, nil
}
