package ai

import (
	"fmt"
	"strings"

	"luminadecor/models"
)

// ValidationError describes why a decoded analysis was rejected. Kind is
// either ErrMalformedResponse or ErrIntegrity.
type ValidationError struct {
	Kind   error
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func malformed(format string, args ...any) error {
	return &ValidationError{Kind: ErrMalformedResponse, Reason: fmt.Sprintf(format, args...)}
}

func integrity(format string, args ...any) error {
	return &ValidationError{Kind: ErrIntegrity, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks the invariants the rest of the application relies on:
// at least one theme, unique non-empty ids, a resolvable recommendation,
// non-negative prices and a known budget category.
func Validate(result models.AnalysisResult) error {
	if len(result.Themes) == 0 {
		return malformed("no themes returned")
	}

	seen := make(map[string]struct{}, len(result.Themes))
	for i, theme := range result.Themes {
		id := theme.ID
		if strings.TrimSpace(id) == "" {
			return malformed("theme %d has no id", i)
		}
		if _, dup := seen[id]; dup {
			return integrity("duplicate theme id %q", id)
		}
		seen[id] = struct{}{}

		if theme.TotalCost < 0 {
			return integrity("theme %q has negative total cost", id)
		}
		if !models.ValidBudgetCategory(theme.BudgetCategory) {
			return integrity("theme %q has unknown budget category %q", id, theme.BudgetCategory)
		}
		for _, item := range theme.Items {
			if item.ApproxPriceINR < 0 {
				return integrity("theme %q item %q has negative price", id, item.Name)
			}
		}
	}

	if _, ok := seen[result.RecommendedThemeID]; !ok {
		return integrity("recommended theme %q does not match any theme", result.RecommendedThemeID)
	}
	return nil
}
