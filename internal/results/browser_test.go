package results

import (
	"errors"
	"testing"

	"luminadecor/models"
)

func sampleResult() models.AnalysisResult {
	return models.AnalysisResult{
		Themes: []models.DecorTheme{
			{
				ID:             "pastel",
				Name:           "Pastel Party",
				BudgetCategory: models.BudgetFriendly,
				TotalCost:      1000,
				Items: []models.DecorationItem{
					{Name: "Balloons", ApproxPriceINR: 250, Quantity: "2 packs"},
					{Name: "Banner", ApproxPriceINR: 500, Quantity: "1"},
				},
			},
			{ID: "gold", Name: "Champagne Gold", BudgetCategory: models.BudgetModerate, TotalCost: 2500},
		},
		RecommendedThemeID: "gold",
	}
}

func TestNewBrowserSelectsRecommendedTheme(t *testing.T) {
	t.Parallel()

	b := NewBrowser(sampleResult())
	if b.Step() != SectionRoomAnalysis {
		t.Fatalf("expected step 0, got %d", b.Step())
	}
	if b.SelectedThemeID() != "gold" {
		t.Fatalf("expected recommended theme selected, got %q", b.SelectedThemeID())
	}
	if b.Degraded() {
		t.Fatal("expected browser not degraded")
	}
}

func TestNewBrowserFallsBackToFirstTheme(t *testing.T) {
	t.Parallel()

	result := sampleResult()
	result.RecommendedThemeID = "missing"
	b := NewBrowser(result)

	if !b.Degraded() {
		t.Fatal("expected degraded browser for dangling recommendation")
	}
	if theme := b.ActiveTheme(); theme == nil || theme.ID != "pastel" {
		t.Fatalf("expected first theme active, got %+v", theme)
	}
}

func TestEmptyResultDoesNotPanic(t *testing.T) {
	t.Parallel()

	b := NewBrowser(models.AnalysisResult{})
	if b.ActiveTheme() != nil {
		t.Fatal("expected no active theme")
	}
	if err := b.Next(); !errors.Is(err, ErrNoThemeSelected) {
		t.Fatalf("expected ErrNoThemeSelected, got %v", err)
	}
	if b.Step() != SectionRoomAnalysis {
		t.Fatalf("expected to stay on step 0, got %d", b.Step())
	}
	if _, err := b.ShoppingTotals(); !errors.Is(err, ErrNoThemeSelected) {
		t.Fatalf("expected ErrNoThemeSelected from totals, got %v", err)
	}
}

func TestNavigationClamps(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		run  func(*Browser) error
		want int
	}{
		{name: "previous at start", run: (*Browser).Previous, want: 0},
		{name: "next", run: (*Browser).Next, want: 1},
		{name: "goto beyond end", run: func(b *Browser) error { return b.GoTo(42) }, want: LastSection()},
		{name: "goto negative", run: func(b *Browser) error { return b.GoTo(-3) }, want: 0},
		{name: "next at end", run: func(b *Browser) error {
			if err := b.GoTo(LastSection()); err != nil {
				return err
			}
			return b.Next()
		}, want: LastSection()},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b := NewBrowser(sampleResult())
			if err := tc.run(b); err != nil {
				t.Fatalf("navigation returned error: %v", err)
			}
			if b.Step() != tc.want {
				t.Fatalf("expected step %d, got %d", tc.want, b.Step())
			}
		})
	}
}

func TestSelectThemeUnknownKeepsSelection(t *testing.T) {
	t.Parallel()

	b := NewBrowser(sampleResult())
	if err := b.SelectTheme("nope"); !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
	if b.SelectedThemeID() != "gold" {
		t.Fatalf("expected selection unchanged, got %q", b.SelectedThemeID())
	}
	if err := b.SelectTheme("pastel"); err != nil {
		t.Fatalf("SelectTheme returned error: %v", err)
	}
	if b.ActiveTheme().Name != "Pastel Party" {
		t.Fatalf("expected Pastel Party active, got %s", b.ActiveTheme().Name)
	}
}

func TestShoppingTotals(t *testing.T) {
	t.Parallel()

	b := NewBrowser(sampleResult())
	if err := b.SelectTheme("pastel"); err != nil {
		t.Fatalf("SelectTheme returned error: %v", err)
	}
	totals, err := b.ShoppingTotals()
	if err != nil {
		t.Fatalf("ShoppingTotals returned error: %v", err)
	}
	if totals.ItemCount != 2 || totals.ItemsCost != 1000 || totals.Declared != 1000 || totals.Drift != 0 {
		t.Fatalf("unexpected totals %+v", totals)
	}
}

func TestGenerationReplacesAndBlocksNavigation(t *testing.T) {
	t.Parallel()

	b := NewBrowser(sampleResult())
	if err := b.BeginGeneration("gold"); err != nil {
		t.Fatalf("BeginGeneration returned error: %v", err)
	}
	if err := b.BeginGeneration("pastel"); !errors.Is(err, ErrGenerationInFlight) {
		t.Fatalf("expected second generation to be rejected, got %v", err)
	}
	if err := b.Next(); !errors.Is(err, ErrGenerationInFlight) {
		t.Fatalf("expected navigation blocked, got %v", err)
	}
	if err := b.SelectTheme("pastel"); !errors.Is(err, ErrGenerationInFlight) {
		t.Fatalf("expected theme switch blocked, got %v", err)
	}

	b.FinishGeneration("gold", []string{"data:a", "data:b"})
	if b.Generating() {
		t.Fatal("expected in-flight flag cleared")
	}

	if err := b.BeginGeneration("gold"); err != nil {
		t.Fatalf("BeginGeneration returned error: %v", err)
	}
	b.FinishGeneration("gold", []string{"data:c"})

	urls := b.ActiveTheme().GeneratedImageURLs
	if len(urls) != 1 || urls[0] != "data:c" {
		t.Fatalf("expected the second set to replace the first, got %v", urls)
	}
	result := b.Result()
	if other := result.ThemeByID("pastel"); len(other.GeneratedImageURLs) != 0 {
		t.Fatalf("expected other theme untouched, got %v", other.GeneratedImageURLs)
	}
}

func TestFinishGenerationWithoutURLsLeavesThemeUnchanged(t *testing.T) {
	t.Parallel()

	b := NewBrowser(sampleResult())
	if err := b.BeginGeneration("gold"); err != nil {
		t.Fatalf("BeginGeneration returned error: %v", err)
	}
	b.FinishGeneration("gold", nil)

	if b.Generating() {
		t.Fatal("expected in-flight flag cleared after total failure")
	}
	if urls := b.ActiveTheme().GeneratedImageURLs; len(urls) != 0 {
		t.Fatalf("expected no urls, got %v", urls)
	}
}

func TestBrowserIsolatedFromCallerResult(t *testing.T) {
	t.Parallel()

	result := sampleResult()
	b := NewBrowser(result)
	result.Themes[1].Name = "mutated"

	if b.ActiveTheme().Name != "Champagne Gold" {
		t.Fatal("expected browser to hold its own copy")
	}
	b.ActiveTheme().Name = "also mutated"
	if b.ActiveTheme().Name != "Champagne Gold" {
		t.Fatal("expected ActiveTheme to return a copy")
	}
}

func TestSections(t *testing.T) {
	t.Parallel()

	got := Sections()
	if len(got) != 8 {
		t.Fatalf("expected 8 sections, got %d", len(got))
	}
	for i, section := range got {
		if section.Index != i {
			t.Fatalf("section %s has index %d, want %d", section.Slug, section.Index, i)
		}
	}
}
