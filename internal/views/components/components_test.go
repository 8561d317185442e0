package components

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"luminadecor/internal/views/theme"
	"luminadecor/internal/wizard"
)

func TestLinkState(t *testing.T) {
	if got := linkState(wizard.StateHistory, wizard.StateHistory); got != "active" {
		t.Fatalf("expected active state when states match, got %q", got)
	}
	if got := linkState(wizard.StateResults, wizard.StateHistory); got != "inactive" {
		t.Fatalf("expected inactive state when states differ, got %q", got)
	}
}

func TestHeaderRendersProfileAndStartOver(t *testing.T) {
	data := HeaderData{
		Name:         "Aditi <Sharma>",
		Initials:     "AS",
		Role:         "Homeowner",
		Active:       wizard.StateSettings,
		CanStartOver: true,
		Shell:        theme.Resolve(theme.DefaultKey),
	}
	var buf bytes.Buffer
	if err := Header(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render header: %v", err)
	}
	out := buf.String()
	for _, token := range []string{"AS", "New Project", "/logout", `href="/app/settings" data-state="active"`} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected output to contain %q: %s", token, out)
		}
	}
	if strings.Contains(out, "<Sharma>") {
		t.Fatalf("expected profile name to be escaped: %s", out)
	}
}

func TestHeaderHidesStartOver(t *testing.T) {
	var buf bytes.Buffer
	data := HeaderData{Name: "Aditi", Initials: "A", Active: wizard.StateUpload}
	if err := Header(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render header: %v", err)
	}
	if strings.Contains(buf.String(), "New Project") {
		t.Fatalf("expected new project affordance hidden: %s", buf.String())
	}
}

func TestStepperMarksActiveStep(t *testing.T) {
	var buf bytes.Buffer
	if err := Stepper(2, false).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render stepper: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `data-state="active" data-step="2"`) {
		t.Fatalf("expected step 2 active: %s", out)
	}
	if !strings.Contains(out, `data-state="done" data-step="0"`) {
		t.Fatalf("expected step 0 done: %s", out)
	}

	buf.Reset()
	if err := Stepper(0, true).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render disabled stepper: %v", err)
	}
	if strings.Contains(buf.String(), "<form") {
		t.Fatalf("expected no navigation forms while disabled: %s", buf.String())
	}
}

func TestNoticeSkipsEmptyMessage(t *testing.T) {
	var buf bytes.Buffer
	if err := Notice("info", "").Render(context.Background(), &buf); err != nil {
		t.Fatalf("render notice: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for empty notice, got %q", buf.String())
	}
}

func TestPostButtonEscapesFields(t *testing.T) {
	out := PostButtonHTML("/app/history/delete", "Delete", []Field{{Name: "id", Value: `"><script>`}}, "danger")
	if strings.Contains(out, "<script>") {
		t.Fatalf("expected hidden field value escaped: %s", out)
	}
	if !strings.Contains(out, `action="/app/history/delete"`) {
		t.Fatalf("expected form action: %s", out)
	}
}

func TestImageSanitisesSource(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		src  string
		want string
	}{
		{name: "inline image", src: "data:image/png;base64,AAAA", want: `src="data:image/png;base64,AAAA"`},
		{name: "https", src: "https://img.example/a.png?x=1&y=2", want: `src="https://img.example/a.png?x=1&amp;y=2"`},
		{name: "script scheme", src: "javascript:alert(1)", want: `src="about:invalid#TemplFailedSanitizationURL"`},
		{name: "non-image data", src: "data:text/html,<b>x</b>", want: `src="about:invalid#TemplFailedSanitizationURL"`},
		{name: "attribute breakout", src: `https://x/"onerror="y`, want: `src="https://x/&#34;onerror=&#34;y"`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			w := NewWriter(&buf)
			w.Image("thumb", `Room "A"`, tc.src)
			if err := w.Err(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			html := buf.String()
			if !strings.Contains(html, tc.want) {
				t.Fatalf("expected %s in %s", tc.want, html)
			}
			if !strings.Contains(html, `alt="Room &#34;A&#34;"`) {
				t.Fatalf("expected escaped alt text, got %s", html)
			}
		})
	}
}
