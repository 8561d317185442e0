package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"luminadecor/internal/history"
	"luminadecor/internal/intake"
	applog "luminadecor/internal/log"
	"luminadecor/internal/results"
	"luminadecor/internal/views/pages"
	"luminadecor/internal/wizard"
)

// App renders the current wizard screen.
func App(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s := wizardSession(r)
	if s == nil {
		redirectToLogin(w, r)
		return
	}

	snap := s.Snapshot()
	if flash := popFlash(r); flash != "" {
		snap.Notice = flash
	}
	render(w, r, snap)
}

// State reports the wizard snapshot as JSON for polling clients.
func State(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s := wizardSession(r)
	if s == nil {
		http.Error(w, "not signed in", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.Snapshot().WithoutInlineImages()); err != nil {
		applog.Error(r.Context(), "failed to encode wizard state", "error", err)
	}
}

// Reset starts a new project, keeping the profile and settings.
func Reset(w http.ResponseWriter, r *http.Request) {
	mutate(w, r, func(s *wizard.Session) error {
		return s.Reset()
	})
}

// Back moves one intake step backwards.
func Back(w http.ResponseWriter, r *http.Request) {
	mutate(w, r, func(s *wizard.Session) error {
		switch s.State() {
		case wizard.StateBudgetSelection:
			return s.BackToEvent()
		default:
			return s.BackToUpload()
		}
	})
}

// Close leaves a side view.
func Close(w http.ResponseWriter, r *http.Request) {
	mutate(w, r, func(s *wizard.Session) error {
		return s.CloseSubView()
	})
}

// mutate runs op against the request's wizard session for POST requests
// and answers with the resulting screen.
func mutate(w http.ResponseWriter, r *http.Request, op func(*wizard.Session) error) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s := wizardSession(r)
	if s == nil {
		redirectToLogin(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		applog.Debug(r.Context(), "failed to parse form", "error", err, "path", r.URL.Path)
		respond(w, r, s, "We could not read that request. Please try again.")
		return
	}

	var message string
	if err := op(s); err != nil {
		applog.Debug(r.Context(), "wizard operation rejected", "path", r.URL.Path, "state", s.State(), "error", err)
		message = userMessage(err)
	}
	respond(w, r, s, message)
}

// respond renders the screen fragment for HTMX requests and redirects
// full page submissions back to /app, carrying message as a flash.
func respond(w http.ResponseWriter, r *http.Request, s *wizard.Session, message string) {
	if !isHTMX(r) {
		setFlash(r, message)
		http.Redirect(w, r, "/app", http.StatusSeeOther)
		return
	}

	snap := s.Snapshot()
	if message != "" {
		snap.Notice = message
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Screen(snap).Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render screen", "error", err, "state", snap.State)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

func render(w http.ResponseWriter, r *http.Request, snap wizard.Snapshot) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	component := pages.App(snap)
	if isHTMX(r) {
		component = pages.Screen(snap)
	}
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render app", "error", err, "state", snap.State)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

// userMessage maps operation errors to short fixed messages. Wrapped
// upstream details never reach the page.
func userMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, intake.ErrEmptyImage):
		return "Please choose a photo of your room."
	case errors.Is(err, intake.ErrNotImage):
		return "That file is not an image. Please upload a JPG, PNG or WebP photo."
	case errors.Is(err, intake.ErrTooLarge):
		return "That photo is too large. Please upload a smaller image."
	case errors.Is(err, intake.ErrInvalidData):
		return "We could not read that image. Please upload it again."
	case errors.Is(err, intake.ErrEmptyEvent):
		return "Please choose or describe the occasion."
	case errors.Is(err, intake.ErrEmptyBudget):
		return "Please choose a budget."
	case errors.Is(err, intake.ErrInvalidPrice):
		return "Please enter a budget greater than zero."
	case errors.Is(err, wizard.ErrProfileRequired):
		return "Name and email are required."
	case errors.Is(err, wizard.ErrMissingImage):
		return "Please upload a photo of your room first."
	case errors.Is(err, wizard.ErrHistoryNotFound):
		return "That saved design no longer exists."
	case errors.Is(err, wizard.ErrServiceUnavailable):
		return "The design service is not available right now."
	case errors.Is(err, wizard.ErrAnalysisCancelled):
		return wizard.MessageAnalysisCancelled
	case errors.Is(err, results.ErrNoThemeSelected):
		return "Select a theme to continue."
	case errors.Is(err, results.ErrGenerationInFlight):
		return "Previews are still being generated."
	case errors.Is(err, results.ErrUnknownTheme):
		return "That theme is not part of this design."
	case errors.Is(err, history.ErrQuotaExceeded):
		return wizard.MessageHistoryNotSaved
	case errors.Is(err, wizard.ErrInvalidTransition):
		return "That action is not available right now."
	default:
		return "Something went wrong. Please try again."
	}
}
