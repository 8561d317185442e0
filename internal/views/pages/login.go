package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"luminadecor/internal/intake"
	"luminadecor/internal/views/components"
	"luminadecor/internal/views/layout"
	"luminadecor/internal/views/theme"
	"luminadecor/models"
)

// LoginForm carries the values echoed back into the login form.
type LoginForm struct {
	Name     string
	Email    string
	Role     string
	Language string
	Message  string
}

// Login renders the full login document.
func Login(form LoginForm) templ.Component {
	shell := theme.Resolve(theme.DefaultKey)
	header := components.Header(components.HeaderData{Shell: shell})
	return layout.Layout("Sign in · LuminaDecor AI", header, LoginPartial(form), shell)
}

// LoginPartial renders only the login form.
func LoginPartial(form LoginForm) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := components.NewWriter(out)
		esc := components.Esc
		w.Raw(`<section class="login mx-auto max-w-md" data-screen="LOGIN">`)
		w.Raw(`<h1 class="text-3xl font-bold">Welcome to LuminaDecor</h1>`)
		w.Raw(`<p>Tell us who you are to start designing your space.</p>`)
		w.Component(ctx, components.Notice("error", form.Message))
		w.Raw(`<form method="post" action="/login" hx-post="/login" hx-target="#screen" class="flex flex-col gap-3">`)
		w.Printf(`<label>Full name<input name="name" required value="%s"></label>`, esc(form.Name))
		w.Printf(`<label>Email<input type="email" name="email" required value="%s"></label>`, esc(form.Email))
		w.Raw(`<label>I am a<select name="role">`)
		role := form.Role
		if role == "" {
			role = models.DefaultRole
		}
		for _, option := range models.Roles {
			w.Printf(`<option value="%s"%s>%s</option>`, esc(option), selected(option == role), esc(option))
		}
		w.Raw(`</select></label>`)
		w.Raw(`<label>Language<select name="language">`)
		language := intake.ResolveLanguage(form.Language).Code
		for _, option := range intake.Languages() {
			w.Printf(`<option value="%s"%s>%s (%s)</option>`, esc(option.Code), selected(option.Code == language), esc(option.Native), esc(option.Name))
		}
		w.Raw(`</select></label>`)
		w.Raw(`<button type="submit">Get started</button></form></section>`)
		return w.Err()
	})
}

func selected(ok bool) string {
	if ok {
		return " selected"
	}
	return ""
}
