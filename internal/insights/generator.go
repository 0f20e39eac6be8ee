// Package insights asks Gemini for free-text spending advice over one
// month's transactions. The generator is an opaque string producer: any
// failure degrades to a fixed fallback message, callers never see an error
// page because the model was down.
package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"ekspence/internal/core"
)

const Unavailable = "I'm having trouble analyzing your data right now. Please try again later."

const missingKey = "API Key missing. Please configure your environment to use AI features."

type Generator struct {
	apiKey string
	model  string
}

func NewGenerator(apiKey, model string) *Generator {
	return &Generator{apiKey: apiKey, model: model}
}

type promptTransaction struct {
	Date        string  `json:"date"`
	Description string  `json:"desc"`
	Category    string  `json:"cat"`
	Amount      float64 `json:"amount"`
}

// SpendingInsights generates advice for the given month. txns should already
// be narrowed to the month's spending (no income, no transfers).
func (g *Generator) SpendingInsights(ctx context.Context, txns []core.Transaction, monthLabel string) string {
	if g == nil || g.apiKey == "" {
		slog.WarnContext(ctx, "No API key configured for insights")
		return missingKey
	}

	compact := make([]promptTransaction, 0, len(txns))
	for _, t := range txns {
		compact = append(compact, promptTransaction{
			Date:        t.Date.String(),
			Description: t.Description,
			Category:    t.Category,
			Amount:      t.Amount,
		})
	}
	dataStr, err := json.Marshal(compact)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to marshal transactions for prompt", "error", err)
		return Unavailable
	}

	prompt := buildPrompt(monthLabel, string(dataStr))

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      g.apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		slog.ErrorContext(ctx, "Failed to create genai client", "error", err)
		return Unavailable
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		slog.ErrorContext(ctx, "Insight generation failed", "error", err, "month", monthLabel)
		return Unavailable
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return Unavailable
	}
	return text
}

func buildPrompt(monthLabel, dataStr string) string {
	return fmt.Sprintf(`You are a financial advisor assistant for the user's personal expense tracker app "EKSPENCE".

Here is the raw expense data for %s:
%s

Please provide:
1. A short, encouraging summary of their spending behavior this month.
2. Identify the single biggest money drain (Category or Merchant).
3. Three specific, actionable bullet points on how to save money next month based *specifically* on this data.

Keep the tone friendly, professional, and concise. Do not use markdown headers like ##. Use bullet points for the tips.`, monthLabel, dataStr)
}
