package components

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"luminadecor/internal/results"
	"luminadecor/internal/views/theme"
	"luminadecor/internal/wizard"
)

// HeaderData drives the top navigation bar.
type HeaderData struct {
	Name         string
	Initials     string
	Role         string
	Active       wizard.State
	CanStartOver bool
	Shell        theme.Shell
}

// HeaderFromSnapshot derives the header from a wizard snapshot.
func HeaderFromSnapshot(snap wizard.Snapshot, shell theme.Shell) HeaderData {
	data := HeaderData{Active: snap.State, CanStartOver: snap.CanStartOver, Shell: shell}
	if snap.Profile != nil {
		data.Name = snap.Profile.Name
		data.Initials = snap.Profile.AvatarInitials
		data.Role = snap.Profile.Role
	}
	return data
}

func linkState(active, target wizard.State) string {
	if active == target {
		return "active"
	}
	return "inactive"
}

// Header renders the brand, the side-view links and the account controls.
func Header(data HeaderData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := NewWriter(out)
		w.Printf(`<header class="flex items-center justify-between px-6 py-4 %s">`, Esc(data.Shell.BorderClass))
		w.Printf(`<a href="/app" class="text-xl font-bold %s">LuminaDecor AI</a>`, Esc(data.Shell.AccentClass))
		if data.Name == "" {
			w.Raw(`</header>`)
			return w.Err()
		}
		w.Raw(`<nav class="flex items-center gap-3">`)
		if data.CanStartOver {
			w.Raw(PostButtonHTML("/app/reset", "New Project", nil, "new-project"))
		}
		w.Printf(`<a href="/app/history" data-state="%s">History</a>`, linkState(data.Active, wizard.StateHistory))
		w.Printf(`<a href="/app/settings" data-state="%s">Settings</a>`, linkState(data.Active, wizard.StateSettings))
		w.Printf(`<a href="/app/help" data-state="%s">Help</a>`, linkState(data.Active, wizard.StateHelp))
		w.Printf(`<span class="avatar" title="%s">%s</span>`, Esc(data.Name+" · "+data.Role), Esc(data.Initials))
		w.Raw(PostButtonHTML("/logout", "Log out", nil, "logout"))
		w.Raw(`</nav></header>`)
		return w.Err()
	})
}

// Notice renders a dismissable message; kind is "error" or "info".
func Notice(kind, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		if message == "" {
			return nil
		}
		w := NewWriter(out)
		w.Printf(`<div class="notice notice-%s" role="status">%s</div>`, Esc(kind), Esc(message))
		return w.Err()
	})
}

// Field is a hidden form input.
type Field struct {
	Name  string
	Value string
}

// PostButtonHTML renders a one-button form posting to action.
func PostButtonHTML(action, label string, fields []Field, class string) string {
	var sb strings.Builder
	fw := NewWriter(&sb)
	fw.Printf(`<form method="post" action="%s" hx-post="%s" hx-target="#screen" class="inline">`, Esc(action), Esc(action))
	for _, field := range fields {
		fw.Printf(`<input type="hidden" name="%s" value="%s">`, Esc(field.Name), Esc(field.Value))
	}
	fw.Printf(`<button type="submit" class="%s">%s</button></form>`, Esc(class), Esc(label))
	return sb.String()
}

// PostButton wraps PostButtonHTML as a component.
func PostButton(action, label string, fields []Field, class string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		_, err := io.WriteString(out, PostButtonHTML(action, label, fields, class))
		return err
	})
}

// Stepper renders the results sub-wizard navigation.
func Stepper(current int, disabled bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := NewWriter(out)
		w.Raw(`<ol class="stepper flex gap-2">`)
		for _, section := range results.Sections() {
			state := "upcoming"
			switch {
			case section.Index == current:
				state = "active"
			case section.Index < current:
				state = "done"
			}
			w.Printf(`<li data-state="%s" data-step="%d">`, state, section.Index)
			if disabled {
				w.Printf(`<span>%s</span>`, Esc(section.Title))
			} else {
				w.Raw(PostButtonHTML("/app/results/step", section.Title, []Field{{Name: "index", Value: strconv.Itoa(section.Index)}}, "step-link"))
			}
			w.Raw(`</li>`)
		}
		w.Raw(`</ol>`)
		return w.Err()
	})
}

// IntakeProgress renders the three intake steps.
func IntakeProgress(state wizard.State) templ.Component {
	steps := []struct {
		state wizard.State
		label string
	}{
		{wizard.StateUpload, "Upload"},
		{wizard.StateEventSelection, "Event"},
		{wizard.StateBudgetSelection, "Budget"},
	}
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := NewWriter(out)
		w.Raw(`<ol class="intake-progress flex gap-4">`)
		for _, step := range steps {
			w.Printf(`<li data-state="%s">%s</li>`, linkState(state, step.state), Esc(step.label))
		}
		w.Raw(`</ol>`)
		return w.Err()
	})
}
