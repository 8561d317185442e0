package handlers

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"

	applog "luminadecor/internal/log"
	"luminadecor/internal/wizard"
)

const (
	sessionWizardTokenKey = "wizard:token"
	sessionFlashKey       = "wizard:flash"
)

var (
	sessionManager *scs.SessionManager
	registry       *wizard.Registry
)

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(sm *scs.SessionManager, reg *wizard.Registry) {
	sessionManager = sm
	registry = reg
}

type wizardSessionKey struct{}

func withWizardSession(ctx context.Context, s *wizard.Session) context.Context {
	return context.WithValue(ctx, wizardSessionKey{}, s)
}

func wizardSession(r *http.Request) *wizard.Session {
	s, _ := r.Context().Value(wizardSessionKey{}).(*wizard.Session)
	return s
}

func sessionToken(r *http.Request) string {
	if sessionManager == nil {
		return ""
	}
	return sessionManager.GetString(r.Context(), sessionWizardTokenKey)
}

// currentSession resolves the wizard session bound to the browser session,
// if the profile step has been completed.
func currentSession(r *http.Request) (*wizard.Session, bool) {
	if registry == nil {
		return nil, false
	}
	token := sessionToken(r)
	if token == "" {
		return nil, false
	}
	s, ok := registry.Lookup(token)
	if !ok || s.State() == wizard.StateLogin {
		return nil, false
	}
	return s, true
}

// ActiveSession returns true when the request belongs to a logged-in wizard session.
func ActiveSession(r *http.Request) bool {
	_, ok := currentSession(r)
	return ok
}

// RequireAuthentication ensures the user has completed the profile step and
// exposes the wizard session to the wrapped handler.
func RequireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentSession(r)
		if !ok {
			applog.Debug(r.Context(), "no active wizard session, redirecting to login", "path", r.URL.Path)
			redirectToLogin(w, r)
			return
		}
		ctx := applog.WithSession(r.Context(), s.Token())
		next.ServeHTTP(w, r.WithContext(withWizardSession(ctx, s)))
	})
}

// Logout clears the profile, forgets the wizard session and redirects to the login screen.
func Logout(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodPost:
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	forgetSession(r)

	if sessionManager != nil {
		if err := sessionManager.Destroy(r.Context()); err != nil {
			applog.Error(r.Context(), "failed to destroy session", "error", err)
		}
	}

	redirectToLogin(w, r)
}

// forgetSession logs out and unregisters the wizard session bound to the
// request, if any.
func forgetSession(r *http.Request) {
	token := sessionToken(r)
	if token == "" || registry == nil {
		return
	}
	if s, ok := registry.Lookup(token); ok {
		if err := s.Logout(); err != nil {
			applog.Debug(r.Context(), "wizard session already logged out", "error", err)
		}
	}
	registry.Remove(token)
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	redirect(w, r, "/login")
}

func redirectToApp(w http.ResponseWriter, r *http.Request) {
	redirect(w, r, "/app")
}

func setFlash(r *http.Request, message string) {
	if sessionManager == nil || message == "" {
		return
	}
	sessionManager.Put(r.Context(), sessionFlashKey, message)
}

func popFlash(r *http.Request) string {
	if sessionManager == nil {
		return ""
	}
	return sessionManager.PopString(r.Context(), sessionFlashKey)
}
