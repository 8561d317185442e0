package handlers

import (
	"net/http"
	"strings"

	applog "luminadecor/internal/log"
	"luminadecor/internal/wizard"
	"luminadecor/models"
)

// History opens the saved designs gallery.
func History(w http.ResponseWriter, r *http.Request) {
	openView(w, r, func(s *wizard.Session) error {
		return s.OpenHistory(r.Context())
	})
}

// Settings opens the profile and preferences view.
func Settings(w http.ResponseWriter, r *http.Request) {
	openView(w, r, func(s *wizard.Session) error {
		return s.OpenSettings()
	})
}

// Help opens the help topics.
func Help(w http.ResponseWriter, r *http.Request) {
	openView(w, r, func(s *wizard.Session) error {
		return s.OpenHelp()
	})
}

// openView serves the side view links, which arrive as plain GETs.
func openView(w http.ResponseWriter, r *http.Request, op func(*wizard.Session) error) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s := wizardSession(r)
	if s == nil {
		redirectToLogin(w, r)
		return
	}

	err := op(s)
	snap := s.Snapshot()
	if err != nil {
		applog.Debug(r.Context(), "side view unavailable", "path", r.URL.Path, "state", snap.State, "error", err)
		snap.Notice = userMessage(err)
	}
	render(w, r, snap)
}

// RestoreHistory loads a saved design into the results view.
func RestoreHistory(w http.ResponseWriter, r *http.Request) {
	mutate(w, r, func(s *wizard.Session) error {
		return s.RestoreHistory(r.Context(), r.PostFormValue("id"))
	})
}

// DeleteHistory removes one saved design.
func DeleteHistory(w http.ResponseWriter, r *http.Request) {
	mutate(w, r, func(s *wizard.Session) error {
		return s.DeleteHistory(r.Context(), r.PostFormValue("id"))
	})
}

// ClearHistory removes every saved design once the user confirmed.
func ClearHistory(w http.ResponseWriter, r *http.Request) {
	mutate(w, r, func(s *wizard.Session) error {
		if r.PostFormValue("confirm") != "yes" {
			return nil
		}
		return s.ClearHistory(r.Context())
	})
}

// UpdateProfile changes the display name and role.
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	mutate(w, r, func(s *wizard.Session) error {
		return s.UpdateProfile(strings.TrimSpace(r.PostFormValue("name")), strings.TrimSpace(r.PostFormValue("role")))
	})
}

// ToggleSetting flips one boolean preference.
func ToggleSetting(w http.ResponseWriter, r *http.Request) {
	mutate(w, r, func(s *wizard.Session) error {
		_, err := s.ToggleSetting(r.PostFormValue("key"))
		return err
	})
}

// UpdateCurrency stores the preferred currency.
func UpdateCurrency(w http.ResponseWriter, r *http.Request) {
	mutate(w, r, func(s *wizard.Session) error {
		currency := r.PostFormValue("currency")
		_, err := s.UpdateSettings(models.SettingsUpdate{Currency: &currency})
		return err
	})
}
