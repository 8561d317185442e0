package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"

	"luminadecor/internal/ai"
	"luminadecor/internal/intake"
	"luminadecor/internal/wizard"
	"luminadecor/models"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDRroom-photo")

type stubAnalyzer struct {
	err error
}

func (s stubAnalyzer) AnalyzeRoom(ctx context.Context, req ai.AnalysisRequest) (models.AnalysisResult, error) {
	if s.err != nil {
		return models.AnalysisResult{}, s.err
	}
	return models.AnalysisResult{
		RoomAnalysis: models.RoomAnalysis{Layout: "Rectangular"},
		Themes: []models.DecorTheme{
			{ID: "pastel", Name: "Pastel Party", BudgetCategory: models.BudgetFriendly, TotalCost: 900},
			{ID: "gold", Name: "Champagne Gold", BudgetCategory: models.BudgetModerate, TotalCost: 2500},
		},
		RecommendedThemeID: "gold",
	}, nil
}

type testApp struct {
	server   *httptest.Server
	client   *http.Client
	registry *wizard.Registry
}

// newTestApp serves the handlers behind a fresh session manager. Tests using
// it mutate package state and must not run in parallel.
func newTestApp(t *testing.T, deps wizard.Deps) *testApp {
	t.Helper()

	originalSM, originalRegistry := sessionManager, registry
	sm := scs.New()
	reg := wizard.NewRegistry(deps)
	Configure(sm, reg)
	t.Cleanup(func() {
		Configure(originalSM, originalRegistry)
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/", Home)
	mux.HandleFunc("/healthz", Health)
	mux.HandleFunc("/login", Login)
	mux.HandleFunc("/logout", Logout)
	protected := map[string]http.HandlerFunc{
		"/app":                 App,
		"/app/state":           State,
		"/app/upload":          Upload,
		"/app/event":           Event,
		"/app/budget":          Budget,
		"/app/analysis/cancel": CancelAnalysis,
		"/app/back":            Back,
		"/app/reset":           Reset,
		"/app/close":           Close,
		"/app/history":         History,
		"/app/history/clear":   ClearHistory,
		"/app/settings":        Settings,
		"/app/settings/toggle": ToggleSetting,
		"/app/help":            Help,
		"/app/results/theme":   SelectTheme,
		"/app/results/step":    Step,
	}
	for path, h := range protected {
		mux.Handle(path, RequireAuthentication(h))
	}

	srv := httptest.NewServer(sm.LoadAndSave(mux))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &testApp{server: srv, client: client, registry: reg}
}

func (a *testApp) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := a.client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp, string(body)
}

func (a *testApp) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, a.server.URL+path, nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	return a.do(t, req)
}

func (a *testApp) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, a.server.URL+path, strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	return a.do(t, req)
}

func (a *testApp) upload(t *testing.T, data []byte) (*http.Response, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "room.png")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, a.server.URL+"/app/upload", &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("HX-Request", "true")
	return a.do(t, req)
}

func (a *testApp) login(t *testing.T) {
	t.Helper()
	resp, _ := a.post(t, "/login", url.Values{
		"name":     {"Aditi Sharma"},
		"email":    {"aditi@example.com"},
		"role":     {"Homeowner"},
		"language": {"en"},
	})
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("HX-Redirect") != "/app" {
		t.Fatalf("expected HX redirect to /app after login, got %d %q", resp.StatusCode, resp.Header.Get("HX-Redirect"))
	}
}

func screenOf(body string) string {
	const marker = `data-screen="`
	i := strings.Index(body, marker)
	if i < 0 {
		return ""
	}
	rest := body[i+len(marker):]
	return rest[:strings.IndexByte(rest, '"')]
}

func TestIsHTMX(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if isHTMX(req) {
		t.Fatal("expected false when no HTMX headers present")
	}
	req.Header.Set("HX-Request", "true")
	if !isHTMX(req) {
		t.Fatal("expected true when HX-Request header present")
	}
}

func TestRedirectToLogin(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/app", nil)
	req.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()
	redirectToLogin(w, req)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 for HTMX redirect, got %d", w.Code)
	}
	if w.Header().Get("HX-Redirect") != "/login" {
		t.Fatalf("expected HX-Redirect header to be set")
	}

	req = httptest.NewRequest(http.MethodGet, "/app", nil)
	w = httptest.NewRecorder()
	redirectToLogin(w, req)
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestRedirectToApp(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set("HX-Boosted", "true")
	w := httptest.NewRecorder()
	redirectToApp(w, req)
	if w.Header().Get("HX-Redirect") != "/app" {
		t.Fatalf("expected HX-Redirect header to be set")
	}

	req = httptest.NewRequest(http.MethodGet, "/login", nil)
	w = httptest.NewRecorder()
	redirectToApp(w, req)
	if loc := w.Header().Get("Location"); loc != "/app" {
		t.Fatalf("expected redirect to /app, got %q", loc)
	}
}

func TestUserMessageHidesUpstreamDetail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"too large", fmt.Errorf("upload: %w", intake.ErrTooLarge), "That photo is too large. Please upload a smaller image."},
		{"not image", intake.ErrNotImage, "That file is not an image. Please upload a JPG, PNG or WebP photo."},
		{"invalid transition", fmt.Errorf("select event: %w", wizard.ErrInvalidTransition), "That action is not available right now."},
		{"upstream", errors.New("status 500: secret-key-abc"), "Something went wrong. Please try again."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := userMessage(tt.err); got != tt.want {
				t.Fatalf("userMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHomeRedirectsToLoginWithoutSession(t *testing.T) {
	app := newTestApp(t, wizard.Deps{})

	resp, _ := app.get(t, "/")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected status 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestRequireAuthenticationRedirects(t *testing.T) {
	app := newTestApp(t, wizard.Deps{})

	resp, _ := app.get(t, "/app")
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
	if app.registry.Len() != 0 {
		t.Fatalf("expected no wizard sessions, got %d", app.registry.Len())
	}
}

func TestLoginRequiresNameAndEmail(t *testing.T) {
	app := newTestApp(t, wizard.Deps{})

	resp, body := app.post(t, "/login", url.Values{"name": {"Aditi"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Name and email are required.") {
		t.Fatalf("expected validation message, got %q", body)
	}
	if app.registry.Len() != 0 {
		t.Fatalf("expected no wizard session, got %d", app.registry.Len())
	}
}

func TestLoginPageRendersForm(t *testing.T) {
	app := newTestApp(t, wizard.Deps{})

	resp, body := app.get(t, "/login")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "<html") || screenOf(body) != "LOGIN" {
		t.Fatalf("expected full login document, got %q", body)
	}
}

func TestWizardFlowOverHTTP(t *testing.T) {
	app := newTestApp(t, wizard.Deps{Analyzer: stubAnalyzer{}})
	app.login(t)

	resp, body := app.get(t, "/app")
	if resp.StatusCode != http.StatusOK || screenOf(body) != "UPLOAD" {
		t.Fatalf("expected upload screen, got %d %q", resp.StatusCode, screenOf(body))
	}

	steps := []struct {
		name string
		do   func() (*http.Response, string)
		want string
	}{
		{"upload", func() (*http.Response, string) { return app.upload(t, pngBytes) }, "EVENT_SELECTION"},
		{"back", func() (*http.Response, string) { return app.post(t, "/app/back", nil) }, "UPLOAD"},
		{"upload again", func() (*http.Response, string) { return app.upload(t, pngBytes) }, "EVENT_SELECTION"},
		{"event", func() (*http.Response, string) {
			return app.post(t, "/app/event", url.Values{"event": {"Birthday"}})
		}, "BUDGET_SELECTION"},
		{"budget", func() (*http.Response, string) {
			return app.post(t, "/app/budget", url.Values{"budget": {"5000"}})
		}, "RESULTS"},
		{"next step", func() (*http.Response, string) {
			return app.post(t, "/app/results/step", url.Values{"move": {"next"}})
		}, "RESULTS"},
		{"help", func() (*http.Response, string) { return app.get(t, "/app/help") }, "HELP"},
		{"close", func() (*http.Response, string) { return app.post(t, "/app/close", nil) }, "RESULTS"},
	}
	for _, step := range steps {
		resp, body := step.do()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", step.name, resp.StatusCode)
		}
		if got := screenOf(body); got != step.want {
			t.Fatalf("%s: expected screen %s, got %s", step.name, step.want, got)
		}
	}

	_, body = app.get(t, "/app/state")
	var snap wizard.Snapshot
	if err := json.Unmarshal([]byte(body), &snap); err != nil {
		t.Fatalf("failed to decode state: %v", err)
	}
	if snap.State != wizard.StateResults || snap.Results == nil {
		t.Fatalf("expected results snapshot, got %+v", snap)
	}
	if snap.Results.SelectedThemeID != "gold" || snap.Results.Step != 1 {
		t.Fatalf("unexpected results view: %+v", snap.Results)
	}
	if snap.Intake.Budget != "Approx ₹5000" {
		t.Fatalf("expected normalised budget, got %q", snap.Intake.Budget)
	}
	if !snap.HasImage || snap.Intake.ImagePreview != "" || strings.Contains(body, "data:image") {
		t.Fatalf("expected state without inline image data, got hasImage=%v len=%d", snap.HasImage, len(body))
	}

	resp, _ = app.get(t, "/logout")
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Fatalf("expected logout redirect to /login, got %q", loc)
	}
	if app.registry.Len() != 0 {
		t.Fatalf("expected wizard session to be removed, got %d", app.registry.Len())
	}
	resp, _ = app.get(t, "/app")
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Fatalf("expected /app to require login after logout, got %q", loc)
	}
}

func TestUploadRejectsNonImage(t *testing.T) {
	app := newTestApp(t, wizard.Deps{Analyzer: stubAnalyzer{}})
	app.login(t)

	_, body := app.upload(t, []byte("just some text, not a photo"))
	if got := screenOf(body); got != "UPLOAD" {
		t.Fatalf("expected to stay on upload, got %s", got)
	}
	if !strings.Contains(body, "That file is not an image.") {
		t.Fatalf("expected not-an-image notice, got %q", body)
	}
}

func TestAnalysisFailureShowsErrorScreen(t *testing.T) {
	app := newTestApp(t, wizard.Deps{Analyzer: stubAnalyzer{err: errors.New("upstream status 503: api key sk-test")}})
	app.login(t)
	app.upload(t, pngBytes)
	app.post(t, "/app/event", url.Values{"event": {"Birthday"}})

	_, body := app.post(t, "/app/budget", url.Values{"budget": {"5000"}})
	if got := screenOf(body); got != "ERROR" {
		t.Fatalf("expected error screen, got %s", got)
	}
	if strings.Contains(body, "sk-test") {
		t.Fatal("upstream error detail leaked into the page")
	}

	_, body = app.post(t, "/app/reset", nil)
	if got := screenOf(body); got != "UPLOAD" {
		t.Fatalf("expected reset to return to upload, got %s", got)
	}
}

func TestInvalidTransitionKeepsScreen(t *testing.T) {
	app := newTestApp(t, wizard.Deps{Analyzer: stubAnalyzer{}})
	app.login(t)

	_, body := app.post(t, "/app/event", url.Values{"event": {"Birthday"}})
	if got := screenOf(body); got != "UPLOAD" {
		t.Fatalf("expected to stay on upload, got %s", got)
	}
	if !strings.Contains(body, "That action is not available right now.") {
		t.Fatalf("expected invalid transition notice, got %q", body)
	}
}

func TestSettingsToggle(t *testing.T) {
	app := newTestApp(t, wizard.Deps{Analyzer: stubAnalyzer{}})
	app.login(t)

	_, body := app.get(t, "/app/settings")
	if got := screenOf(body); got != "SETTINGS" {
		t.Fatalf("expected settings screen, got %s", got)
	}
	app.post(t, "/app/settings/toggle", url.Values{"key": {models.SettingHighContrast}})

	_, body = app.get(t, "/app/state")
	var snap wizard.Snapshot
	if err := json.Unmarshal([]byte(body), &snap); err != nil {
		t.Fatalf("failed to decode state: %v", err)
	}
	if !snap.Settings.HighContrast {
		t.Fatal("expected high contrast to be enabled")
	}
}

func TestNonHTMXPostRedirectsWithFlash(t *testing.T) {
	app := newTestApp(t, wizard.Deps{Analyzer: stubAnalyzer{}})
	app.login(t)

	req, err := http.NewRequest(http.MethodPost, app.server.URL+"/app/event", strings.NewReader("event=Birthday"))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, _ := app.do(t, req)
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/app" {
		t.Fatalf("expected 303 to /app, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	_, body := app.get(t, "/app")
	if !strings.Contains(body, "That action is not available right now.") {
		t.Fatalf("expected flash notice on next page, got %q", body)
	}
	_, body = app.get(t, "/app")
	if strings.Contains(body, "That action is not available right now.") {
		t.Fatal("expected flash to be shown once")
	}
}

func TestRepeatedLoginReplacesWizardSession(t *testing.T) {
	app := newTestApp(t, wizard.Deps{Analyzer: stubAnalyzer{}})

	for i := 0; i < 3; i++ {
		app.login(t)
	}
	if got := app.registry.Len(); got != 1 {
		t.Fatalf("expected one wizard session for one browser, got %d", got)
	}

	resp, body := app.get(t, "/app")
	if resp.StatusCode != http.StatusOK || screenOf(body) != "UPLOAD" {
		t.Fatalf("expected the latest session to be usable, got %d %q", resp.StatusCode, screenOf(body))
	}
}
