package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	applog "luminadecor/internal/log"
	"luminadecor/internal/views/pages"
	"luminadecor/internal/wizard"
)

// Login renders the profile form and starts a wizard session on submission.
func Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	applog.Debug(r.Context(), "handling login request", "method", r.Method, "htmx", isHTMX(r))

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if ActiveSession(r) {
			applog.Debug(r.Context(), "active session detected, redirecting to app")
			redirectToApp(w, r)
			return
		}
		renderLogin(w, r, pages.LoginForm{Message: popFlash(r)})
	case http.MethodPost:
		if sessionManager == nil || registry == nil {
			applog.Debug(r.Context(), "login dependencies unavailable", "hasSession", sessionManager != nil, "hasRegistry", registry != nil)
			http.Error(w, "login not available", http.StatusServiceUnavailable)
			return
		}
		if err := r.ParseForm(); err != nil {
			applog.Debug(r.Context(), "failed to parse login form", "error", err)
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		form := pages.LoginForm{
			Name:     strings.TrimSpace(r.PostFormValue("name")),
			Email:    strings.TrimSpace(r.PostFormValue("email")),
			Role:     strings.TrimSpace(r.PostFormValue("role")),
			Language: strings.TrimSpace(r.PostFormValue("language")),
		}

		if form.Name == "" || form.Email == "" {
			form.Message = "Name and email are required."
			renderLogin(w, r, form)
			return
		}

		if err := sessionManager.RenewToken(r.Context()); err != nil {
			applog.Error(r.Context(), "failed to renew session token", "error", err)
			form.Message = "We were unable to sign you in. Please try again."
			renderLogin(w, r, form)
			return
		}

		forgetSession(r)

		token := registry.NewToken()
		s := registry.Session(token)
		ctx := applog.WithSession(r.Context(), token)
		if err := s.Login(form.Name, form.Email, form.Role, form.Language); err != nil {
			registry.Remove(token)
			if errors.Is(err, wizard.ErrProfileRequired) {
				form.Message = "Name and email are required."
			} else {
				applog.Error(ctx, "failed to start wizard session", "error", err)
				form.Message = "We were unable to sign you in. Please try again."
			}
			renderLogin(w, r, form)
			return
		}
		sessionManager.Put(r.Context(), sessionWizardTokenKey, token)

		applog.Info(ctx, "wizard session started", "language", form.Language)
		redirectToApp(w, r)
	default:
		applog.Debug(r.Context(), "method not allowed for login", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func renderLogin(w http.ResponseWriter, r *http.Request, form pages.LoginForm) {
	var component templ.Component
	if isHTMX(r) {
		component = pages.LoginPartial(form)
	} else {
		component = pages.Login(form)
	}

	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render login component", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}
