package pages

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"luminadecor/internal/results"
	"luminadecor/internal/views/components"
	"luminadecor/internal/wizard"
	"luminadecor/models"
)

func resultsScreen(snap wizard.Snapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := components.NewWriter(out)
		view := snap.Results
		if view == nil {
			w.Raw(`<p>No analysis loaded.</p>`)
			return w.Err()
		}

		w.Component(ctx, components.Stepper(view.Step, view.Generating))
		sections := results.Sections()
		w.Printf(`<section class="results" data-step="%d"><h1 class="text-2xl font-bold">%s</h1>`, view.Step, components.Esc(sections[view.Step].Title))

		theme := view.ActiveTheme()
		switch view.Step {
		case results.SectionRoomAnalysis:
			writeRoomAnalysis(w, view.Analysis.RoomAnalysis)
		case results.SectionThemes:
			writeThemeGrid(w, view)
		default:
			if theme == nil {
				w.Raw(`<p>Select a theme to continue.</p>`)
				break
			}
			writeThemeSection(w, view, theme)
		}

		w.Raw(`<nav class="results-nav flex justify-between">`)
		if !view.Generating {
			if view.Step > 0 {
				w.Raw(components.PostButtonHTML("/app/results/step", "Previous", []components.Field{{Name: "move", Value: "previous"}}, "prev"))
			}
			if view.Step < results.LastSection() {
				w.Raw(components.PostButtonHTML("/app/results/step", "Next", []components.Field{{Name: "move", Value: "next"}}, "next"))
			}
		}
		w.Raw(`</nav></section>`)
		return w.Err()
	})
}

func writeList(w *components.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	w.Printf(`<h3>%s</h3><ul>`, components.Esc(title))
	for _, item := range items {
		w.Printf(`<li>%s</li>`, components.Esc(item))
	}
	w.Raw(`</ul>`)
}

func writeField(w *components.Writer, label, value string) {
	if value == "" {
		return
	}
	w.Printf(`<p><strong>%s:</strong> %s</p>`, components.Esc(label), components.Esc(value))
}

func writeRoomAnalysis(w *components.Writer, room models.RoomAnalysis) {
	writeField(w, "Layout", room.Layout)
	writeField(w, "Lighting", room.Lighting)
	writeField(w, "Colors", room.Colors)
	writeField(w, "Open spaces", room.OpenSpaces)
	writeField(w, "Furniture", room.Furniture)
	writeList(w, "Areas to decorate", room.SuitableAreas)
	if dims := room.EstimatedDimensions; dims != nil {
		w.Raw(`<div class="dimensions">`)
		writeField(w, "Width", dims.EstimatedWidth)
		writeField(w, "Height", dims.EstimatedHeight)
		writeField(w, "Wall space", dims.WallSpaceAvailable)
		writeField(w, "Measured against", dims.Notes)
		w.Raw(`</div>`)
	}
	writeList(w, "Decor fit", room.DecorFitAdvice)
	writeList(w, "Lighting ideas", room.LightingSuggestions)
	for _, zone := range room.PhotoZones {
		w.Raw(`<div class="photo-zone">`)
		writeField(w, "Photo zone", zone.Location)
		writeField(w, "Light", zone.Lighting)
		writeField(w, "Where to stand", zone.StandingSpot)
		writeField(w, "Why", zone.Reason)
		w.Raw(`</div>`)
	}
	if crowd := room.CrowdCapacity; crowd != nil {
		writeField(w, "Capacity", crowd.TotalCapacity)
		writeField(w, "Standing", crowd.StandingCapacity)
		writeField(w, "Seated", crowd.SeatingCapacity)
		writeField(w, "Movement", crowd.MovementAdvice)
		writeField(w, "Zones", crowd.ZoneAdvice)
	}
	if clutter := room.ClutterCheck; clutter != nil && clutter.HasClutter {
		writeList(w, "Clear before decorating", clutter.Recommendations)
	}
	writeList(w, "Safety", room.SafetyTips)
}

func writeThemeGrid(w *components.Writer, view *wizard.ResultsView) {
	esc := components.Esc
	if view.Degraded {
		w.Raw(`<p class="notice notice-info">We couldn't match the recommended theme, so the first theme is shown.</p>`)
	} else if view.Analysis.RecommendationReason != "" {
		w.Printf(`<p class="recommendation">%s</p>`, esc(view.Analysis.RecommendationReason))
	}
	w.Raw(`<div class="grid gap-4 md:grid-cols-3">`)
	for _, theme := range view.Analysis.Themes {
		state := "inactive"
		if theme.ID == view.SelectedThemeID {
			state = "active"
		}
		w.Printf(`<article class="theme-card" data-state="%s" data-theme-id="%s">`, state, esc(theme.ID))
		if theme.ID == view.Analysis.RecommendedThemeID {
			w.Raw(`<span class="badge">Recommended</span>`)
		}
		w.Printf(`<h3>%s</h3><p>%s</p>`, esc(theme.Name), esc(theme.Mood))
		w.Raw(`<div class="swatches">`)
		for _, color := range theme.ColorPalette {
			w.Printf(`<span class="swatch" style="background:%s"></span>`, esc(color))
		}
		w.Raw(`</div>`)
		w.Printf(`<p>%s · %s</p>`, esc(FormatINR(theme.TotalCost)), esc(theme.BudgetCategory))
		if !view.Generating {
			w.Raw(components.PostButtonHTML("/app/results/theme", "Select", []components.Field{{Name: "theme", Value: theme.ID}}, "select-theme"))
		}
		w.Raw(`</article>`)
	}
	w.Raw(`</div>`)
}

func writeThemeSection(w *components.Writer, view *wizard.ResultsView, theme *models.DecorTheme) {
	esc := components.Esc
	w.Printf(`<h2>%s</h2>`, esc(theme.Name))

	switch view.Step {
	case results.SectionVisualize:
		if len(theme.GeneratedImageURLs) > 0 {
			w.Raw(`<div class="variations grid grid-cols-2 gap-3">`)
			for i, url := range theme.GeneratedImageURLs {
				w.Image("variation", fmt.Sprintf("%s variation %d", theme.Name, i+1), url)
			}
			w.Raw(`</div>`)
		} else {
			w.Raw(`<p>Generate four photo-realistic variations of this theme in your actual room.</p>`)
		}
		if view.Generating {
			w.Raw(`<p class="generating" hx-get="/app" hx-trigger="every 3s" hx-target="#screen" hx-select="#screen > *">Generating previews…</p>`)
		} else {
			label := "Generate Previews"
			if len(theme.GeneratedImageURLs) > 0 {
				label = "Generate More"
			}
			w.Raw(components.PostButtonHTML("/app/results/variations", label, []components.Field{{Name: "theme", Value: theme.ID}}, "generate"))
		}
		writeField(w, "Vision", theme.VisualDescription)

	case results.SectionDesign:
		if details := theme.PaletteDetails; details != nil {
			w.Raw(`<div class="palette">`)
			for _, color := range details.Colors {
				w.Printf(`<span class="swatch" style="background:%s" title="%s"></span>`, esc(color.Hex), esc(color.Name))
			}
			w.Raw(`</div>`)
			writeField(w, "Palette mood", details.Mood)
			writeField(w, "Why it suits the room", details.WhySuitsRoom)
		}
		writeField(w, "Backdrop", theme.BackdropDesign)
		writeField(w, "Balloons", theme.BalloonArrangement)
		writeField(w, "Lighting", theme.LightingSetup)
		writeField(w, "Table styling", theme.TableStyling)
		writeList(w, "Special elements", theme.SpecialElements)
		if theme.Blueprint != "" {
			w.Printf(`<pre class="blueprint">%s</pre>`, esc(theme.Blueprint))
		}

	case results.SectionExecution:
		writeList(w, "Placement", theme.PlacementInstructions)
		writeList(w, "Installation tips", theme.StabilityTips)
		if plan := theme.TableSetupPlan; plan != nil {
			writeField(w, "Table", plan.Placement)
			writeField(w, "Cake", plan.CakePlacement)
			writeField(w, "Props", plan.PropsArrangement)
			writeField(w, "Centerpiece", plan.CenterpieceIdeas)
			writeField(w, "Food", plan.FoodLayout)
		}
		if est := theme.TimeEstimates; est != nil {
			w.Raw(`<table class="time-estimates"><tbody>`)
			for _, task := range est.Breakdown {
				w.Printf(`<tr><td>%s</td><td>%s</td></tr>`, esc(task.Task), esc(FormatMinutes(task.DurationMinutes)))
			}
			w.Printf(`</tbody><tfoot><tr><td>Total (%s)</td><td>%s</td></tr></tfoot></table>`, esc(est.DifficultyLevel), esc(FormatMinutes(est.TotalTimeMinutes)))
		}
		writeList(w, "DIY ideas", theme.DIYOptions)

	case results.SectionAmbience:
		for _, playlist := range theme.MusicPlaylists {
			w.Printf(`<div class="playlist"><h3>%s</h3><p>%s · %s</p><p>%s</p></div>`, esc(playlist.Name), esc(playlist.Genre), esc(playlist.Mood), esc(playlist.Reason))
		}
		for _, item := range theme.DurabilityEstimates {
			w.Printf(`<p class="durability"><strong>%s</strong> %s %s</p>`, esc(item.Item), esc(item.Lifespan), esc(item.Note))
		}

	case results.SectionShopping:
		w.Raw(`<table class="shopping"><thead><tr><th>Item</th><th>Source</th><th>Qty</th><th>Price</th></tr></thead><tbody>`)
		for _, item := range theme.Items {
			w.Printf(`<tr><td title="%s">%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				esc(item.Reason), esc(item.Name), esc(item.Source), esc(item.Quantity), esc(FormatINR(item.ApproxPriceINR)))
		}
		w.Raw(`</tbody></table>`)
		w.Printf(`<p class="total">Estimated total %s</p>`, esc(FormatINR(theme.TotalCost)))
		if totals := view.Totals; totals != nil && totals.ThemeID == theme.ID && totals.Drift > 0.1 {
			w.Printf(`<p class="drift">Listed items add up to %s (%s off the estimate).</p>`, esc(FormatINR(totals.ItemsCost)), esc(percent(totals.Drift)))
		}

	case results.SectionCleanup:
		if plan := theme.CleaningPlan; plan != nil {
			writeField(w, "Tape removal", plan.TapeRemoval)
			writeList(w, "Keep for next time", plan.ReusableItems)
			writeField(w, "Disposal", plan.DisposalInstructions)
			writeField(w, "Wall care", plan.WallCare)
		} else {
			w.Raw(`<p>No cleanup plan was provided for this theme.</p>`)
		}

	default:
		w.Printf(`<p>Unknown section %s.</p>`, esc(strconv.Itoa(view.Step)))
	}
}

func percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}
