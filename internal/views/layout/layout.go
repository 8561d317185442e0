package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"luminadecor/internal/views/components"
	"luminadecor/internal/views/theme"
)

// Layout renders the document shell around header and content.
func Layout(title string, header, content templ.Component, shell theme.Shell) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := components.NewWriter(out)
		w.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		w.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.Printf(`<title>%s</title>`, components.Esc(title))
		w.Raw(`<script src="https://cdn.tailwindcss.com"></script>`)
		w.Raw(`<script src="https://unpkg.com/htmx.org@1.9.12" defer></script>`)
		w.Printf(`</head><body class="%s" data-theme="%s">`, components.Esc(shell.BodyClass), components.Esc(shell.Key))
		w.Printf(`<div class="%s">`, components.Esc(shell.ShellClass))
		w.Component(ctx, header)
		w.Printf(`<main id="screen" class="%s">`, components.Esc(mainClass(shell)))
		w.Component(ctx, content)
		w.Raw(`</main></div></body></html>`)
		return w.Err()
	})
}

func mainClass(shell theme.Shell) string {
	if shell.Key == theme.HighContrastKey {
		return "mx-auto max-w-5xl p-6 text-lg"
	}
	return "mx-auto max-w-5xl p-6"
}
