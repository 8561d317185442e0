package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"luminadecor/internal/results"
	"luminadecor/internal/wizard"
	"luminadecor/models"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "₹0"},
		{450, "₹450"},
		{7500, "₹7,500"},
		{125000, "₹1,25,000"},
		{1250000.4, "₹12,50,000"},
		{-2000, "-₹2,000"},
	}
	for _, tt := range tests {
		if got := FormatINR(tt.amount); got != tt.want {
			t.Fatalf("FormatINR(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := map[float64]string{
		30:  "30 min",
		60:  "1 h",
		135: "2 h 15 min",
	}
	for minutes, want := range tests {
		if got := FormatMinutes(minutes); got != want {
			t.Fatalf("FormatMinutes(%v) = %q, want %q", minutes, got, want)
		}
	}
}

func render(t *testing.T, snap wizard.Snapshot) string {
	t.Helper()
	var buf bytes.Buffer
	if err := App(snap).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render app: %v", err)
	}
	return buf.String()
}

func loggedIn(state wizard.State) wizard.Snapshot {
	profile := models.NewUserProfile("Aditi Sharma", "aditi@example.com", "")
	return wizard.Snapshot{
		State:    state,
		Profile:  &profile,
		Settings: models.DefaultSettings(),
	}
}

func sampleView(step int) *wizard.ResultsView {
	return &wizard.ResultsView{
		Analysis: models.AnalysisResult{
			RoomAnalysis: models.RoomAnalysis{Layout: "Rectangular living room", SafetyTips: []string{"Keep candles away"}},
			Themes: []models.DecorTheme{
				{
					ID: "pastel", Name: "Pastel Party", TotalCost: 1250, BudgetCategory: models.BudgetFriendly,
					Items:        []models.DecorationItem{{Name: "Balloon pack", Source: "Amazon", ApproxPriceINR: 450, Quantity: "2"}},
					CleaningPlan: &models.CleaningPlan{TapeRemoval: "Warm the tape first"},
				},
				{ID: "gold", Name: "Champagne Gold", TotalCost: 2500, BudgetCategory: models.BudgetModerate},
			},
			RecommendedThemeID: "pastel",
		},
		SelectedThemeID: "pastel",
		Step:            step,
	}
}

func TestScreensRenderPerState(t *testing.T) {
	tests := []struct {
		state wizard.State
		want  string
	}{
		{wizard.StateUpload, `action="/app/upload"`},
		{wizard.StateEventSelection, "Birthday Party"},
		{wizard.StateBudgetSelection, "Moderate (₹5,000 - ₹15,000)"},
		{wizard.StateAnalyzing, "/app/analysis/cancel"},
		{wizard.StateHistory, "No saved designs yet"},
		{wizard.StateSettings, "Clear all history"},
		{wizard.StateHelp, "Help desk"},
		{wizard.StateError, "Try again"},
	}
	for _, tt := range tests {
		out := render(t, loggedIn(tt.state))
		if !strings.Contains(out, tt.want) {
			t.Fatalf("state %s: expected %q in output: %s", tt.state, tt.want, out)
		}
		if !strings.Contains(out, `data-screen="`+string(tt.state)+`"`) {
			t.Fatalf("state %s: expected screen marker", tt.state)
		}
	}
}

func TestResultsSectionsRender(t *testing.T) {
	tests := []struct {
		step int
		want string
	}{
		{results.SectionRoomAnalysis, "Rectangular living room"},
		{results.SectionThemes, "Recommended"},
		{results.SectionVisualize, "Generate Previews"},
		{results.SectionShopping, "₹1,250"},
		{results.SectionCleanup, "Warm the tape first"},
	}
	for _, tt := range tests {
		snap := loggedIn(wizard.StateResults)
		snap.Results = sampleView(tt.step)
		out := render(t, snap)
		if !strings.Contains(out, tt.want) {
			t.Fatalf("step %d: expected %q in output: %s", tt.step, tt.want, out)
		}
	}
}

func TestResultsRenderWithDanglingRecommendation(t *testing.T) {
	snap := loggedIn(wizard.StateResults)
	view := sampleView(results.SectionThemes)
	view.Analysis.RecommendedThemeID = "missing"
	view.Degraded = true
	snap.Results = view

	out := render(t, snap)
	if !strings.Contains(out, "couldn't match the recommended theme") {
		t.Fatalf("expected degraded notice: %s", out)
	}

	view.SelectedThemeID = "missing"
	view.Step = results.SectionShopping
	out = render(t, snap)
	if !strings.Contains(out, "Select a theme to continue") {
		t.Fatalf("expected placeholder for unresolved theme: %s", out)
	}
}

func TestGeneratingHidesNavigation(t *testing.T) {
	snap := loggedIn(wizard.StateResults)
	view := sampleView(results.SectionVisualize)
	view.Generating = true
	snap.Results = view

	out := render(t, snap)
	if !strings.Contains(out, "Generating previews") {
		t.Fatalf("expected in-flight indicator: %s", out)
	}
	if strings.Contains(out, `value="next"`) {
		t.Fatalf("expected navigation hidden while generating: %s", out)
	}
}

func TestHighContrastShell(t *testing.T) {
	snap := loggedIn(wizard.StateHelp)
	snap.Settings.HighContrast = true
	if out := render(t, snap); !strings.Contains(out, `data-theme="high_contrast"`) {
		t.Fatalf("expected high contrast shell: %s", out)
	}
}

func TestLoginEchoesValues(t *testing.T) {
	var buf bytes.Buffer
	form := LoginForm{Name: "Aditi", Email: "aditi@example.com", Language: "hi", Message: "Name and email are required."}
	if err := Login(form).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render login: %v", err)
	}
	out := buf.String()
	for _, token := range []string{`value="Aditi"`, "Name and email are required.", `value="hi" selected`} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected %q in login output: %s", token, out)
		}
	}
}
