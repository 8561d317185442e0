package layout

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"luminadecor/internal/views/theme"
)

func TestLayoutRendersProvidedContent(t *testing.T) {
	header := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("<header>header</header>"))
		return err
	})
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("<section>content</section>"))
		return err
	})

	var buf bytes.Buffer
	err := Layout("Room <Designer>", header, content, theme.Resolve(theme.DefaultKey)).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("render layout: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<title>Room &lt;Designer&gt;</title>") {
		t.Fatalf("expected escaped document title to be rendered: %s", out)
	}
	if !strings.Contains(out, "header") || !strings.Contains(out, "content") {
		t.Fatalf("expected header and content sections in output: %s", out)
	}
	if !strings.Contains(out, `id="screen"`) {
		t.Fatalf("expected HTMX swap target in output: %s", out)
	}
}

func TestMainClassReflectsContrast(t *testing.T) {
	if mainClass(theme.Resolve(theme.DefaultKey)) == mainClass(theme.Resolve(theme.HighContrastKey)) {
		t.Fatal("expected different main class for high contrast")
	}
}
