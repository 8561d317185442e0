package handlers

import (
	"context"
	"net/http"
	"strconv"

	applog "luminadecor/internal/log"
	"luminadecor/internal/wizard"
)

// SelectTheme picks the theme shown in the detail sections.
func SelectTheme(w http.ResponseWriter, r *http.Request) {
	mutate(w, r, func(s *wizard.Session) error {
		return s.SelectTheme(r.PostFormValue("theme"))
	})
}

// Step moves through the results sections, either relative ("move") or
// to an absolute "index".
func Step(w http.ResponseWriter, r *http.Request) {
	mutate(w, r, func(s *wizard.Session) error {
		switch r.PostFormValue("move") {
		case "next":
			return s.NextStep()
		case "previous":
			return s.PreviousStep()
		}
		index, err := strconv.Atoi(r.PostFormValue("index"))
		if err != nil {
			applog.Debug(r.Context(), "invalid step index", "index", r.PostFormValue("index"))
			return nil
		}
		return s.GoToStep(index)
	})
}

// Variations renders decorated previews of the chosen theme.
func Variations(w http.ResponseWriter, r *http.Request) {
	mutate(w, r, func(s *wizard.Session) error {
		added, err := s.GenerateVariations(context.WithoutCancel(r.Context()), r.PostFormValue("theme"))
		if err == nil {
			applog.Info(r.Context(), "variations generated", "added", added)
		}
		return err
	})
}
