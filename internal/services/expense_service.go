// Package services orchestrates writes across the ledger store, the
// classifier, and the event bus. Read-side analytics live in engine.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"budgetwise/internal/amqp"
	"budgetwise/internal/classify"
	"budgetwise/internal/core"
	"budgetwise/internal/ledger"
)

// ExpenseService records expenses, resolving the category through the
// classifier when the caller leaves it unset.
type ExpenseService struct {
	store      ledger.Store
	classifier classify.Classifier
	amqpClient *amqp.Client
}

func NewExpenseService(store ledger.Store, classifier classify.Classifier, amqpClient *amqp.Client) *ExpenseService {
	return &ExpenseService{
		store:      store,
		classifier: classifier,
		amqpClient: amqpClient,
	}
}

// CreateExpenseInput is what callers supply; CategoryID zero means
// "pick one for me".
type CreateExpenseInput struct {
	Amount      core.Money
	CategoryID  int64
	Description string
}

// CreateExpense validates, resolves the category, saves the expense,
// and publishes an event. An explicit valid category always wins over
// the classifier. Classifier failures are tolerated: the expense lands
// in the fallback category rather than being rejected.
func (s *ExpenseService) CreateExpense(ctx context.Context, in CreateExpenseInput) (core.Expense, error) {
	if err := in.Amount.Validate(); err != nil {
		return core.Expense{}, err
	}

	cats, err := s.store.ListCategories(ctx)
	if err != nil {
		return core.Expense{}, fmt.Errorf("list categories: %w", err)
	}
	if len(cats) == 0 {
		return core.Expense{}, core.ErrNoCategories
	}

	categoryID := in.CategoryID
	if categoryID != 0 {
		if !categoryExists(cats, categoryID) {
			return core.Expense{}, fmt.Errorf("%w: id %d", core.ErrUnknownCategory, categoryID)
		}
	} else {
		categoryID = s.resolveCategory(ctx, in, cats)
	}

	e := core.Expense{
		Amount:      in.Amount,
		CategoryID:  categoryID,
		Description: in.Description,
		DateAdded:   time.Now(),
	}
	id, err := s.store.AddExpense(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}
	e.ID = id

	// Non-fatal: the expense is saved locally either way.
	msg := amqp.NewExpenseCreatedMessage(e.ID, e.CategoryID, e.Amount.Cents)
	if err := s.amqpClient.PublishExpenseCreated(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense created event",
			"id", e.ID, "error", err)
	}

	return e, nil
}

// resolveCategory asks the classifier and maps its answer back onto the
// real category list. Any failure falls back to the first category,
// matching what the entry form does when a suggestion cannot be used.
func (s *ExpenseService) resolveCategory(ctx context.Context, in CreateExpenseInput, cats []core.Category) int64 {
	if s.classifier == nil || in.Description == "" {
		return cats[0].ID
	}

	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}
	suggestion, err := s.classifier.Categorize(ctx, classify.Request{
		Description: in.Description,
		Amount:      in.Amount,
		Categories:  names,
	})
	if err != nil {
		if !errors.Is(err, classify.ErrUnavailable) {
			slog.WarnContext(ctx, "Classifier failed", "error", err)
		}
		return cats[0].ID
	}

	if id, ok := classify.ResolveCategory(suggestion, cats); ok {
		return id
	}
	slog.WarnContext(ctx, "Classifier suggested unknown category", "suggestion", suggestion)
	return cats[0].ID
}

// DeleteExpense removes the expense from the store.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id int64) error {
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

func categoryExists(cats []core.Category, id int64) bool {
	for _, c := range cats {
		if c.ID == id {
			return true
		}
	}
	return false
}
