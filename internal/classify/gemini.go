package classify

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"budgetwise/internal/log"
)

// Gemini asks a hosted Gemini model to pick the category. Credentials
// come from the genai SDK's usual env vars (GEMINI_API_KEY, or the
// Vertex project variables).
type Gemini struct {
	client *genai.Client
	model  string
	logger *log.Logger
}

func NewGemini(ctx context.Context, model string, logger *log.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: model, logger: logger}, nil
}

func (g *Gemini) Categorize(ctx context.Context, req Request) (string, error) {
	if len(req.Categories) == 0 {
		return "", ErrUnavailable
	}

	prompt := fmt.Sprintf(
		"Categorize this expense: %q for %s.\n"+
			"Return ONLY the category name from this list: %s.\n"+
			"Return just the category name, nothing else.",
		req.Description, req.Amount.Format(), strings.Join(req.Categories, ", "))

	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		g.logger.Warn("gemini categorization failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	answer := strings.TrimSpace(resp.Text())
	for _, c := range req.Categories {
		if strings.EqualFold(c, answer) {
			return c, nil
		}
	}
	g.logger.Warn("gemini returned unknown category", "answer", answer)
	return "", fmt.Errorf("%w: model answered %q", ErrUnavailable, answer)
}
