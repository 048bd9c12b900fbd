// Package classify suggests a category for a free-text expense
// description. The keyword matcher is the always-available fallback;
// the Gemini classifier delegates to the hosted model when configured.
// Callers treat any classifier error as "no suggestion" and fall back
// themselves, so a flaky external service never blocks expense entry.
package classify

import (
	"context"
	"errors"
	"strings"

	"budgetwise/internal/core"
)

// ErrUnavailable signals the classifier backend could not produce a
// suggestion. Callers should fall back rather than surface it.
var ErrUnavailable = errors.New("classifier unavailable")

// Request carries what the classifier may consider. Categories lists
// the valid answer set; a classifier must return one of them.
type Request struct {
	Description string
	Amount      core.Money
	Categories  []string
}

type Classifier interface {
	Categorize(ctx context.Context, req Request) (string, error)
}

// Keyword matches the description against fixed word lists. First list
// with a hit wins; no hit means Other.
type Keyword struct{}

var keywordGroups = []struct {
	category string
	words    []string
}{
	{"Food", []string{"food", "restaurant", "grocery", "eat", "meal", "cafe", "pizza", "burger"}},
	{"Transport", []string{"uber", "taxi", "bus", "train", "gas", "fuel", "parking", "transport"}},
	{"Fun", []string{"movie", "game", "entertainment", "fun", "party", "concert"}},
	{"Shopping", []string{"shop", "store", "buy", "purchase", "amazon", "clothes"}},
}

func (Keyword) Categorize(_ context.Context, req Request) (string, error) {
	desc := strings.ToLower(req.Description)
	for _, g := range keywordGroups {
		for _, w := range g.words {
			if strings.Contains(desc, w) {
				return g.category, nil
			}
		}
	}
	return "Other", nil
}

// ResolveCategory maps a suggestion back onto the caller's category
// list, case-insensitively. The suggestion comes from an external
// service and may name a category the user deleted or never had.
func ResolveCategory(suggestion string, cats []core.Category) (int64, bool) {
	for _, c := range cats {
		if strings.EqualFold(c.Name, suggestion) {
			return c.ID, true
		}
	}
	return 0, false
}
