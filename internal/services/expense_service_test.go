package services

import (
	"context"
	"errors"
	"testing"

	"budgetwise/internal/classify"
	"budgetwise/internal/core"
	"budgetwise/internal/ledger/memory"
)

type stubClassifier struct {
	answer string
	err    error
}

func (s stubClassifier) Categorize(context.Context, classify.Request) (string, error) {
	return s.answer, s.err
}

func TestCreateExpenseExplicitCategoryWins(t *testing.T) {
	store := memory.NewSeeded()
	// Classifier would say Food; the caller picked Transport (ID 2).
	svc := NewExpenseService(store, stubClassifier{answer: "Food"}, nil)

	e, err := svc.CreateExpense(context.Background(), CreateExpenseInput{
		Amount:      core.Money{Cents: 1500},
		CategoryID:  2,
		Description: "pizza for the road",
	})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if e.CategoryID != 2 {
		t.Errorf("CategoryID = %d, want explicit 2", e.CategoryID)
	}
	if e.ID == 0 {
		t.Error("expense not assigned an ID")
	}
}

func TestCreateExpenseInvalidExplicitCategory(t *testing.T) {
	svc := NewExpenseService(memory.NewSeeded(), classify.Keyword{}, nil)
	_, err := svc.CreateExpense(context.Background(), CreateExpenseInput{
		Amount:     core.Money{Cents: 1000},
		CategoryID: 999,
	})
	if !errors.Is(err, core.ErrUnknownCategory) {
		t.Fatalf("err = %v, want ErrUnknownCategory", err)
	}
}

func TestCreateExpenseClassifierResolution(t *testing.T) {
	cases := []struct {
		name        string
		classifier  classify.Classifier
		description string
		wantCatID   int64
	}{
		{
			name:        "keyword match lands in suggested category",
			classifier:  classify.Keyword{},
			description: "uber to the airport",
			wantCatID:   2, // Transport
		},
		{
			name:        "no keyword hit lands in Other",
			classifier:  classify.Keyword{},
			description: "mystery charge",
			wantCatID:   5,
		},
		{
			name:        "unknown suggestion falls back to first category",
			classifier:  stubClassifier{answer: "Helicopters"},
			description: "rotor maintenance",
			wantCatID:   1,
		},
		{
			name:        "classifier failure falls back to first category",
			classifier:  stubClassifier{err: classify.ErrUnavailable},
			description: "anything",
			wantCatID:   1,
		},
		{
			name:        "case-insensitive suggestion match",
			classifier:  stubClassifier{answer: "transport"},
			description: "anything",
			wantCatID:   2,
		},
		{
			name:       "empty description skips the classifier",
			classifier: stubClassifier{answer: "Transport"},
			wantCatID:  1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewExpenseService(memory.NewSeeded(), tc.classifier, nil)
			e, err := svc.CreateExpense(context.Background(), CreateExpenseInput{
				Amount:      core.Money{Cents: 2500},
				Description: tc.description,
			})
			if err != nil {
				t.Fatalf("CreateExpense: %v", err)
			}
			if e.CategoryID != tc.wantCatID {
				t.Errorf("CategoryID = %d, want %d", e.CategoryID, tc.wantCatID)
			}
		})
	}
}

func TestCreateExpenseRejectsBadInput(t *testing.T) {
	t.Run("invalid amount", func(t *testing.T) {
		svc := NewExpenseService(memory.NewSeeded(), classify.Keyword{}, nil)
		_, err := svc.CreateExpense(context.Background(), CreateExpenseInput{
			Amount: core.Money{Cents: 0},
		})
		if !errors.Is(err, core.ErrInvalidAmount) {
			t.Fatalf("err = %v, want ErrInvalidAmount", err)
		}
	})

	t.Run("no categories", func(t *testing.T) {
		svc := NewExpenseService(memory.New(), classify.Keyword{}, nil)
		_, err := svc.CreateExpense(context.Background(), CreateExpenseInput{
			Amount: core.Money{Cents: 1000},
		})
		if !errors.Is(err, core.ErrNoCategories) {
			t.Fatalf("err = %v, want ErrNoCategories", err)
		}
	})
}

func TestDeleteExpense(t *testing.T) {
	store := memory.NewSeeded()
	svc := NewExpenseService(store, classify.Keyword{}, nil)
	ctx := context.Background()

	e, err := svc.CreateExpense(ctx, CreateExpenseInput{
		Amount:      core.Money{Cents: 500},
		CategoryID:  1,
		Description: "coffee",
	})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if err := svc.DeleteExpense(ctx, e.ID); err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}
	expenses, err := store.ListExpenses(ctx, core.Interval{})
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	if len(expenses) != 0 {
		t.Errorf("expense still present after delete: %+v", expenses)
	}
}
