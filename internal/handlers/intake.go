package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"luminadecor/internal/intake"
	applog "luminadecor/internal/log"
	"luminadecor/internal/wizard"
)

// multipartOverhead leaves room for the form boundary and text fields on
// top of the image size limit.
const multipartOverhead = 1 << 20

// Upload accepts the room photo either as a multipart file named "image"
// or as a data URL in "image_data".
func Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s := wizardSession(r)
	if s == nil {
		redirectToLogin(w, r)
		return
	}

	maxBytes := s.Collector().MaxBytes()
	// Data URLs grow by a third when base64 encoded.
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes)*4/3+multipartOverhead)

	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = uploadMultipart(r, s)
	} else if perr := r.ParseForm(); perr != nil {
		err = tooLarge(perr)
	} else {
		err = s.UploadDataURL(r.PostFormValue("image_data"))
	}

	message := ""
	if err != nil {
		applog.Debug(r.Context(), "image upload rejected", "error", err)
		message = userMessage(err)
	} else {
		applog.Info(r.Context(), "room image selected")
	}
	respond(w, r, s, message)
}

func uploadMultipart(r *http.Request, s *wizard.Session) error {
	if err := r.ParseMultipartForm(int64(s.Collector().MaxBytes())); err != nil {
		return tooLarge(err)
	}
	if value := r.PostFormValue("image_data"); value != "" {
		return s.UploadDataURL(value)
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return intake.ErrEmptyImage
		}
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return tooLarge(err)
	}
	return s.UploadImage(data)
}

func tooLarge(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return intake.ErrTooLarge
	}
	return err
}

// Event records the occasion.
func Event(w http.ResponseWriter, r *http.Request) {
	mutate(w, r, func(s *wizard.Session) error {
		return s.SelectEvent(r.PostFormValue("event"))
	})
}

// Budget records the budget and runs the analysis to completion. The
// analysis outlives a dropped connection so the result still lands in the
// session; cancellation goes through CancelAnalysis.
func Budget(w http.ResponseWriter, r *http.Request) {
	mutate(w, r, func(s *wizard.Session) error {
		err := s.SelectBudget(context.WithoutCancel(r.Context()), r.PostFormValue("budget"))
		if err != nil && s.State() == wizard.StateError {
			// The error screen already carries the message.
			return nil
		}
		return err
	})
}

// CancelAnalysis abandons the running analysis.
func CancelAnalysis(w http.ResponseWriter, r *http.Request) {
	mutate(w, r, func(s *wizard.Session) error {
		return s.CancelAnalysis()
	})
}
