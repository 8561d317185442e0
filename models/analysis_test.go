package models

import (
	"math"
	"testing"
)

func sampleResult() AnalysisResult {
	return AnalysisResult{
		RoomAnalysis: RoomAnalysis{
			Layout:        "Rectangular living room",
			SuitableAreas: []string{"Main wall"},
			ClutterCheck:  &ClutterCheck{HasClutter: true, Recommendations: []string{"Move the laundry basket"}},
		},
		Themes: []DecorTheme{
			{
				ID:             "pastel",
				Name:           "Pastel Party",
				ColorPalette:   []string{"#FADADD"},
				PaletteDetails: &PaletteDetails{Colors: []ColorInfo{{Name: "Blush", Hex: "#FADADD"}}},
				Items: []DecorationItem{
					{Name: "Balloons", ApproxPriceINR: 300, Quantity: "2 packs"},
					{Name: "Fairy lights", ApproxPriceINR: 450, Quantity: "1"},
				},
				TotalCost:      1050,
				BudgetCategory: BudgetFriendly,
			},
			{ID: "gold", Name: "Golden Glam", BudgetCategory: BudgetPremium},
		},
		RecommendedThemeID: "gold",
	}
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()

	original := sampleResult()
	clone := original.Clone()

	clone.Themes[0].GeneratedImageURLs = append(clone.Themes[0].GeneratedImageURLs, "data:image/png;base64,AAA")
	clone.Themes[0].Items[0].Name = "Changed"
	clone.Themes[0].PaletteDetails.Colors[0].Hex = "#000000"
	clone.RoomAnalysis.SuitableAreas[0] = "Ceiling"
	clone.RoomAnalysis.ClutterCheck.Recommendations[0] = "Nothing"

	if len(original.Themes[0].GeneratedImageURLs) != 0 {
		t.Fatal("expected generated images of the original to be untouched")
	}
	if original.Themes[0].Items[0].Name != "Balloons" {
		t.Fatal("expected items of the original to be untouched")
	}
	if original.Themes[0].PaletteDetails.Colors[0].Hex != "#FADADD" {
		t.Fatal("expected palette of the original to be untouched")
	}
	if original.RoomAnalysis.SuitableAreas[0] != "Main wall" {
		t.Fatal("expected room analysis of the original to be untouched")
	}
	if original.RoomAnalysis.ClutterCheck.Recommendations[0] != "Move the laundry basket" {
		t.Fatal("expected clutter check of the original to be untouched")
	}
}

func TestRecommendedResolution(t *testing.T) {
	t.Parallel()

	result := sampleResult()
	if got := result.Recommended(); got == nil || got.ID != "gold" {
		t.Fatalf("Recommended() = %v, want gold", got)
	}

	result.RecommendedThemeID = "missing"
	if got := result.Recommended(); got != nil {
		t.Fatalf("expected nil for dangling id, got %v", got.ID)
	}

	var nilResult *AnalysisResult
	if nilResult.ThemeByID("gold") != nil {
		t.Fatal("expected nil result lookup to return nil")
	}
}

func TestItemUnits(t *testing.T) {
	t.Parallel()

	cases := []struct {
		quantity string
		want     float64
	}{
		{"2 packs", 2},
		{"10", 10},
		{"1.5 m", 1.5},
		{"a few", 1},
		{"", 1},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.quantity, func(t *testing.T) {
			t.Parallel()
			if got := (DecorationItem{Quantity: tt.quantity}).Units(); got != tt.want {
				t.Fatalf("Units(%q) = %v, want %v", tt.quantity, got, tt.want)
			}
		})
	}
}

func TestThemeCostConsistencyIsChecked(t *testing.T) {
	t.Parallel()

	theme := sampleResult().Themes[0]
	if got := theme.ItemsCost(); got != 1050 {
		t.Fatalf("ItemsCost() = %v, want 1050", got)
	}
	if drift := theme.CostDrift(); drift != 0 {
		t.Fatalf("CostDrift() = %v, want 0", drift)
	}

	theme.TotalCost = 2100
	if drift := theme.CostDrift(); math.Abs(drift-1) > 1e-9 {
		t.Fatalf("CostDrift() = %v, want 1", drift)
	}
}

func TestIntakePreferences(t *testing.T) {
	t.Parallel()

	var prefs IntakePreferences
	if !prefs.IsEmpty() || prefs.Complete() {
		t.Fatal("expected zero value to be empty and incomplete")
	}

	prefs = IntakePreferences{ImageBytes: []byte{1, 2}, ImagePreview: "data:image/png;base64,AQI=", EventType: "Birthday", Budget: "Approx ₹7500"}
	if !prefs.Complete() {
		t.Fatal("expected populated preferences to be complete")
	}

	clone := prefs.Clone()
	clone.ImageBytes[0] = 9
	if prefs.ImageBytes[0] != 1 {
		t.Fatal("expected clone not to share the image buffer")
	}
}
