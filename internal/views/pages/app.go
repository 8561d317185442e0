package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"luminadecor/internal/views/components"
	"luminadecor/internal/views/layout"
	"luminadecor/internal/views/theme"
	"luminadecor/internal/wizard"
)

// App renders the full document for the current wizard screen.
func App(snap wizard.Snapshot) templ.Component {
	shell := theme.ForSettings(snap.Settings)
	header := components.Header(components.HeaderFromSnapshot(snap, shell))
	return layout.Layout(screenTitle(snap.State)+" · LuminaDecor AI", header, Screen(snap), shell)
}

// Screen renders only the current screen, for HTMX swaps into #screen.
func Screen(snap wizard.Snapshot) templ.Component {
	var body templ.Component
	switch snap.State {
	case wizard.StateUpload:
		body = uploadScreen(snap)
	case wizard.StateEventSelection:
		body = eventScreen(snap)
	case wizard.StateBudgetSelection:
		body = budgetScreen(snap)
	case wizard.StateAnalyzing:
		body = analyzingScreen(snap)
	case wizard.StateResults:
		body = resultsScreen(snap)
	case wizard.StateHistory:
		body = historyScreen(snap)
	case wizard.StateSettings:
		body = settingsScreen(snap)
	case wizard.StateHelp:
		body = helpScreen()
	case wizard.StateError:
		body = errorScreen(snap)
	default:
		body = LoginPartial(LoginForm{})
	}
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := components.NewWriter(out)
		w.Printf(`<div data-screen="%s">`, components.Esc(string(snap.State)))
		if snap.State != wizard.StateError {
			w.Component(ctx, components.Notice("info", snap.Notice))
		}
		w.Component(ctx, body)
		w.Raw(`</div>`)
		return w.Err()
	})
}

func screenTitle(state wizard.State) string {
	switch state {
	case wizard.StateUpload:
		return "Upload your room"
	case wizard.StateEventSelection:
		return "Choose the occasion"
	case wizard.StateBudgetSelection:
		return "Set your budget"
	case wizard.StateAnalyzing:
		return "Analyzing"
	case wizard.StateResults:
		return "Your designs"
	case wizard.StateHistory:
		return "History"
	case wizard.StateSettings:
		return "Settings"
	case wizard.StateHelp:
		return "Help"
	case wizard.StateError:
		return "Something went wrong"
	default:
		return "Sign in"
	}
}
