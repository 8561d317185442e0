// Package results drives the sub-wizard shown once an analysis succeeded:
// theme selection, section navigation and image variations.
package results

import (
	"errors"
	"fmt"

	"luminadecor/models"
)

// Section indices within the results sub-wizard.
const (
	SectionRoomAnalysis = iota
	SectionThemes
	SectionVisualize
	SectionDesign
	SectionExecution
	SectionAmbience
	SectionShopping
	SectionCleanup
)

var sections = []Section{
	{Index: SectionRoomAnalysis, Slug: "room", Title: "Room Analysis"},
	{Index: SectionThemes, Slug: "themes", Title: "Choose a Theme"},
	{Index: SectionVisualize, Slug: "visualize", Title: "Visualize"},
	{Index: SectionDesign, Slug: "design", Title: "Design Details"},
	{Index: SectionExecution, Slug: "execution", Title: "Setup Plan"},
	{Index: SectionAmbience, Slug: "ambience", Title: "Ambience"},
	{Index: SectionShopping, Slug: "shopping", Title: "Shopping List"},
	{Index: SectionCleanup, Slug: "cleanup", Title: "Cleanup"},
}

var (
	// ErrNoThemeSelected blocks sections that need an active theme.
	ErrNoThemeSelected = errors.New("results: select a theme first")
	// ErrGenerationInFlight is returned while image variations are being generated.
	ErrGenerationInFlight = errors.New("results: image generation in progress")
	// ErrUnknownTheme is returned when an id does not match any theme.
	ErrUnknownTheme = errors.New("results: unknown theme")
)

// Section describes one step of the results sub-wizard.
type Section struct {
	Index int
	Slug  string
	Title string
}

// Sections returns the sub-wizard steps in order.
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

// LastSection is the index of the final step.
func LastSection() int {
	return len(sections) - 1
}

// Browser holds the navigation state over one analysis result. It is not
// safe for concurrent use; the wizard serialises access.
type Browser struct {
	result          models.AnalysisResult
	selectedThemeID string
	step            int
	generating      bool
	generatingFor   string
	degraded        bool
}

// NewBrowser opens a result at the first step with the recommended theme
// selected. When the recommendation does not resolve, the first theme is
// selected and the browser reports Degraded.
func NewBrowser(result models.AnalysisResult) *Browser {
	b := &Browser{result: result.Clone()}
	if rec := b.result.Recommended(); rec != nil {
		b.selectedThemeID = rec.ID
	} else if len(b.result.Themes) > 0 {
		b.selectedThemeID = b.result.Themes[0].ID
		b.degraded = true
	} else {
		b.degraded = true
	}
	return b
}

// Result returns a deep copy of the browsed result, including any generated images.
func (b *Browser) Result() models.AnalysisResult {
	return b.result.Clone()
}

// Degraded reports whether the recommended theme could not be resolved.
func (b *Browser) Degraded() bool {
	return b.degraded
}

// Step returns the current section index.
func (b *Browser) Step() int {
	return b.step
}

// SelectedThemeID returns the id of the active theme, or "".
func (b *Browser) SelectedThemeID() string {
	return b.selectedThemeID
}

// Generating reports whether image variations are in flight.
func (b *Browser) Generating() bool {
	return b.generating
}

// GeneratingFor returns the theme id the in-flight generation belongs to.
func (b *Browser) GeneratingFor() string {
	return b.generatingFor
}

// ActiveTheme resolves the selected theme. It returns nil when nothing is
// selected or the id no longer resolves.
func (b *Browser) ActiveTheme() *models.DecorTheme {
	if b.selectedThemeID == "" {
		return nil
	}
	theme := b.result.ThemeByID(b.selectedThemeID)
	if theme == nil {
		return nil
	}
	clone := theme.Clone()
	return &clone
}

// SelectTheme makes the theme with the given id active.
func (b *Browser) SelectTheme(id string) error {
	if b.generating {
		return ErrGenerationInFlight
	}
	if b.result.ThemeByID(id) == nil {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, id)
	}
	b.selectedThemeID = id
	return nil
}

// Next advances one section, stopping at the last one.
func (b *Browser) Next() error {
	return b.GoTo(b.step + 1)
}

// Previous goes back one section, stopping at the first one.
func (b *Browser) Previous() error {
	return b.GoTo(b.step - 1)
}

// GoTo jumps to a section; out-of-range indices are clamped. Sections after
// theme selection require an active theme.
func (b *Browser) GoTo(index int) error {
	if b.generating {
		return ErrGenerationInFlight
	}
	if index < 0 {
		index = 0
	}
	if last := LastSection(); index > last {
		index = last
	}
	if index > SectionThemes && b.ActiveTheme() == nil {
		return ErrNoThemeSelected
	}
	b.step = index
	return nil
}

// Totals summarises the shopping list of one theme.
type Totals struct {
	ThemeID   string
	ItemCount int
	ItemsCost float64
	Declared  float64
	Drift     float64
}

// ShoppingTotals reports the totals of the active theme.
func (b *Browser) ShoppingTotals() (Totals, error) {
	theme := b.ActiveTheme()
	if theme == nil {
		return Totals{}, ErrNoThemeSelected
	}
	return Totals{
		ThemeID:   theme.ID,
		ItemCount: len(theme.Items),
		ItemsCost: theme.ItemsCost(),
		Declared:  theme.TotalCost,
		Drift:     theme.CostDrift(),
	}, nil
}

// BeginGeneration marks variations for themeID as in flight. Only one
// generation may run per browser.
func (b *Browser) BeginGeneration(themeID string) error {
	if b.generating {
		return ErrGenerationInFlight
	}
	if b.result.ThemeByID(themeID) == nil {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, themeID)
	}
	b.generating = true
	b.generatingFor = themeID
	return nil
}

// FinishGeneration replaces the theme's images with the successful urls and
// clears the in-flight flag. An empty urls slice leaves the theme untouched.
func (b *Browser) FinishGeneration(themeID string, urls []string) {
	b.generating = false
	b.generatingFor = ""
	if len(urls) == 0 {
		return
	}
	theme := b.result.ThemeByID(themeID)
	if theme == nil {
		return
	}
	theme.GeneratedImageURLs = append([]string(nil), urls...)
}
