package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"luminadecor/internal/intake"
	"luminadecor/internal/views/components"
	"luminadecor/internal/wizard"
)

func uploadScreen(snap wizard.Snapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := components.NewWriter(out)
		w.Component(ctx, components.IntakeProgress(snap.State))
		name := "there"
		if snap.Profile != nil {
			name = snap.Profile.FirstName()
		}
		w.Printf(`<h1 class="text-3xl font-bold">Hi %s, let's transform your space</h1>`, components.Esc(name))
		w.Raw(`<p>Upload a photo of your room. We'll generate decoration themes, curated shopping lists and budget estimates.</p>`)
		if snap.Intake.ImagePreview != "" {
			w.Image("preview", "Current room photo", snap.Intake.ImagePreview)
		}
		w.Raw(`<form method="post" action="/app/upload" enctype="multipart/form-data" hx-post="/app/upload" hx-encoding="multipart/form-data" hx-target="#screen">`)
		w.Raw(`<input type="file" name="image" accept="image/*" required>`)
		w.Raw(`<button type="submit">Continue</button></form>`)
		return w.Err()
	})
}

func eventScreen(snap wizard.Snapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := components.NewWriter(out)
		w.Component(ctx, components.IntakeProgress(snap.State))
		w.Raw(`<h1 class="text-2xl font-bold">What are we celebrating?</h1>`)
		if snap.Intake.ImagePreview != "" {
			w.Image("preview-thumb", "Room photo", snap.Intake.ImagePreview)
		}
		w.Raw(`<div class="grid grid-cols-2 gap-3 md:grid-cols-5">`)
		for _, event := range intake.Events() {
			w.Raw(components.PostButtonHTML("/app/event", event.Label, []components.Field{{Name: "event", Value: event.ID}}, "event-card"))
		}
		w.Raw(`</div>`)
		w.Raw(`<form method="post" action="/app/event" hx-post="/app/event" hx-target="#screen" class="flex gap-2">`)
		w.Raw(`<input name="event" placeholder="Or type your own occasion" required>`)
		w.Raw(`<button type="submit">Next</button></form>`)
		w.Raw(components.PostButtonHTML("/app/back", "Back", nil, "back"))
		return w.Err()
	})
}

func budgetScreen(snap wizard.Snapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := components.NewWriter(out)
		esc := components.Esc
		w.Component(ctx, components.IntakeProgress(snap.State))
		w.Printf(`<h1 class="text-2xl font-bold">Budget for your %s</h1>`, esc(snap.Intake.EventType))
		w.Raw(`<div class="grid gap-3 md:grid-cols-5">`)
		for _, bracket := range intake.Brackets() {
			w.Raw(`<form method="post" action="/app/budget" hx-post="/app/budget" hx-target="#screen" hx-indicator="#analysis-progress">`)
			w.Printf(`<input type="hidden" name="budget" value="%s">`, esc(bracket.ID))
			w.Printf(`<button type="submit" class="bracket-card"><strong>%s</strong><span>%s</span></button></form>`, esc(bracket.Label), esc(bracket.Description))
		}
		w.Raw(`</div>`)
		w.Raw(`<form method="post" action="/app/budget" hx-post="/app/budget" hx-target="#screen" hx-indicator="#analysis-progress" class="flex gap-2">`)
		w.Raw(`<input name="budget" inputmode="decimal" placeholder="Or enter an amount in ₹" required>`)
		w.Raw(`<button type="submit">Analyze my room</button></form>`)
		w.Raw(`<div id="analysis-progress" class="htmx-indicator">Analyzing your room…</div>`)
		w.Raw(components.PostButtonHTML("/app/back", "Back", nil, "back"))
		return w.Err()
	})
}

func analyzingScreen(snap wizard.Snapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := components.NewWriter(out)
		w.Raw(`<section class="analyzing" hx-get="/app" hx-trigger="every 3s" hx-target="#screen" hx-select="#screen > *">`)
		w.Raw(`<h1 class="text-2xl font-bold">Analyzing your space…</h1>`)
		w.Printf(`<p>Designing %s themes within %s.</p>`, components.Esc(snap.Intake.EventType), components.Esc(snap.Intake.Budget))
		w.Raw(`<div class="progress-bar" role="progressbar"></div>`)
		w.Raw(components.PostButtonHTML("/app/analysis/cancel", "Cancel", nil, "cancel"))
		w.Raw(`</section>`)
		return w.Err()
	})
}
