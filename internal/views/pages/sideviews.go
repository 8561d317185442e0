package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"luminadecor/internal/views/components"
	"luminadecor/internal/wizard"
	"luminadecor/models"
)

func historyScreen(snap wizard.Snapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := components.NewWriter(out)
		esc := components.Esc
		w.Raw(`<section class="history"><h1 class="text-2xl font-bold">Your design history</h1>`)
		if len(snap.History) == 0 {
			w.Raw(`<p class="empty">No saved designs yet. Finished analyses appear here when auto-save is on.</p>`)
		} else {
			w.Raw(`<div class="grid gap-4 md:grid-cols-3">`)
			for _, entry := range snap.History {
				w.Printf(`<article class="history-card" data-history-id="%s">`, esc(entry.ID))
				if entry.ImagePreview != "" {
					w.Image("history-thumb", entry.EventType+" room", entry.ImagePreview)
				}
				w.Printf(`<h3>%s</h3><p>%s</p>`, esc(entry.EventType), esc(entry.Budget))
				w.Printf(`<time datetime="%s">%s</time>`, esc(entry.Timestamp.Format("2006-01-02T15:04:05Z07:00")), esc(entry.Timestamp.Format("2 Jan 2006, 15:04")))
				if entry.RecommendedThemeName != "" {
					w.Printf(`<p>Recommended: %s</p>`, esc(entry.RecommendedThemeName))
				}
				fields := []components.Field{{Name: "id", Value: entry.ID}}
				w.Raw(components.PostButtonHTML("/app/history/restore", "Open", fields, "restore"))
				w.Raw(components.PostButtonHTML("/app/history/delete", "Delete", fields, "delete"))
				w.Raw(`</article>`)
			}
			w.Raw(`</div>`)
		}
		w.Raw(components.PostButtonHTML("/app/close", "Back", nil, "back"))
		w.Raw(`</section>`)
		return w.Err()
	})
}

func settingsScreen(snap wizard.Snapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := components.NewWriter(out)
		esc := components.Esc
		w.Raw(`<section class="settings"><h1 class="text-2xl font-bold">Settings</h1>`)

		if profile := snap.Profile; profile != nil {
			w.Raw(`<h2>Profile</h2>`)
			w.Raw(`<form method="post" action="/app/settings/profile" hx-post="/app/settings/profile" hx-target="#screen">`)
			w.Printf(`<label>Name<input name="name" value="%s"></label>`, esc(profile.Name))
			w.Printf(`<p>Email: %s</p>`, esc(profile.Email))
			w.Raw(`<label>Role<select name="role">`)
			for _, role := range models.Roles {
				w.Printf(`<option value="%s"%s>%s</option>`, esc(role), selected(role == profile.Role), esc(role))
			}
			w.Raw(`</select></label><button type="submit">Save profile</button></form>`)
		}

		w.Raw(`<h2>Preferences</h2>`)
		toggles := []struct {
			key   string
			label string
			on    bool
		}{
			{models.SettingNotifications, "Notifications", snap.Settings.EnableNotifications},
			{models.SettingAutoSave, "Auto-save designs to history", snap.Settings.AutoSave},
			{models.SettingHighContrast, "High contrast", snap.Settings.HighContrast},
		}
		for _, toggle := range toggles {
			state := "off"
			if toggle.on {
				state = "on"
			}
			w.Printf(`<div class="toggle" data-setting="%s" data-state="%s"><span>%s</span>`, esc(toggle.key), state, esc(toggle.label))
			w.Raw(components.PostButtonHTML("/app/settings/toggle", "Toggle", []components.Field{{Name: "key", Value: toggle.key}}, "toggle"))
			w.Raw(`</div>`)
		}

		w.Raw(`<form method="post" action="/app/settings/currency" hx-post="/app/settings/currency" hx-target="#screen">`)
		w.Raw(`<label>Currency<select name="currency">`)
		for _, currency := range []string{models.CurrencyINR, models.CurrencyUSD} {
			w.Printf(`<option value="%s"%s>%s</option>`, currency, selected(currency == snap.Settings.Currency), currency)
		}
		w.Raw(`</select></label><button type="submit">Save</button></form>`)

		w.Raw(`<h2>Data</h2>`)
		w.Raw(`<form method="post" action="/app/history/clear" hx-post="/app/history/clear" hx-target="#screen" hx-confirm="Delete all saved designs? This cannot be undone.">`)
		w.Raw(`<label><input type="checkbox" name="confirm" value="yes" required> I understand</label>`)
		w.Raw(`<button type="submit" class="danger">Clear all history</button></form>`)

		w.Raw(components.PostButtonHTML("/app/close", "Done", nil, "back"))
		w.Raw(`</section>`)
		return w.Err()
	})
}

var helpTopics = []struct {
	question string
	answer   string
}{
	{"How does the analysis work?", "Upload a clear photo of your room, pick the occasion and a budget. We study the layout and lighting and propose several themes with shopping lists."},
	{"Why was my analysis rejected?", "Blurry, dark or non-room photos are hard to analyze. Try again with a well lit photo taken from a corner of the room."},
	{"Are prices exact?", "Prices are estimates based on typical online and local market rates in India. Check the seller before buying."},
	{"Where are my past designs?", "With auto-save on, every finished analysis is kept in History. Only your most recent designs are stored."},
	{"What are previews?", "Previews are AI generated variations of your own room decorated in the chosen theme. Generating more adds to the existing set."},
}

func helpScreen() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := components.NewWriter(out)
		w.Raw(`<section class="help"><h1 class="text-2xl font-bold">Help desk</h1>`)
		for _, topic := range helpTopics {
			w.Printf(`<details><summary>%s</summary><p>%s</p></details>`, components.Esc(topic.question), components.Esc(topic.answer))
		}
		w.Raw(components.PostButtonHTML("/app/close", "Back", nil, "back"))
		w.Raw(`</section>`)
		return w.Err()
	})
}

func errorScreen(snap wizard.Snapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := components.NewWriter(out)
		message := snap.ErrorMessage
		if message == "" {
			message = wizard.MessageAnalysisFailed
		}
		w.Raw(`<section class="error" role="alert"><h1 class="text-2xl font-bold">Something went wrong</h1>`)
		w.Printf(`<p>%s</p>`, components.Esc(message))
		w.Raw(components.PostButtonHTML("/app/reset", "Try again", nil, "retry"))
		w.Raw(`</section>`)
		return w.Err()
	})
}
