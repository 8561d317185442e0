package components

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Writer renders markup sequentially and keeps the first write error.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup.
func (w *Writer) Raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

// Text writes escaped text.
func (w *Writer) Text(s string) {
	w.Raw(templ.EscapeString(s))
}

// Printf formats trusted markup. Untrusted arguments must go through Esc.
func (w *Writer) Printf(format string, args ...any) {
	w.Raw(fmt.Sprintf(format, args...))
}

// Component renders a nested component into the same stream.
func (w *Writer) Component(ctx context.Context, c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(ctx, w.w)
}

// Err returns the first error encountered.
func (w *Writer) Err() error {
	return w.err
}

// Esc escapes text for element content and quoted attribute values.
func Esc(s string) string {
	return templ.EscapeString(s)
}

// ImageSrc vets an image source. Inline images must be data:image URLs;
// anything else goes through templ's URL sanitizer.
func ImageSrc(raw string) templ.SafeURL {
	if strings.HasPrefix(strings.ToLower(raw), "data:image/") {
		return templ.SafeURL(raw)
	}
	return templ.URL(raw)
}

// Image writes an <img> element with every attribute escaped and the source
// sanitised.
func (w *Writer) Image(class, alt, src string) {
	w.Printf(`<img class="%s" alt="%s" src="%s">`, Esc(class), Esc(alt), Esc(string(ImageSrc(src))))
}
