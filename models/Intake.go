package models

import "strings"

// IntakePreferences collects the three inputs required before an analysis can run.
// The zero value is the reset state.
type IntakePreferences struct {
	ImageBytes   []byte `json:"-"`
	ImageMIME    string `json:"imageMime,omitempty"`
	ImagePreview string `json:"imagePreview,omitempty"`
	EventType    string `json:"eventType"`
	Budget       string `json:"budget"`
}

// HasImage reports whether both the transmittable bytes and the preview are present.
func (p IntakePreferences) HasImage() bool {
	return len(p.ImageBytes) > 0 && p.ImagePreview != ""
}

// Complete reports whether every field required for an analysis call is populated.
func (p IntakePreferences) Complete() bool {
	return p.HasImage() && strings.TrimSpace(p.EventType) != "" && strings.TrimSpace(p.Budget) != ""
}

// IsEmpty reports whether the preferences are in their reset state.
func (p IntakePreferences) IsEmpty() bool {
	return len(p.ImageBytes) == 0 && p.ImageMIME == "" && p.ImagePreview == "" && p.EventType == "" && p.Budget == ""
}

// Clone returns a copy that does not share the image buffer.
func (p IntakePreferences) Clone() IntakePreferences {
	if p.ImageBytes != nil {
		p.ImageBytes = append([]byte(nil), p.ImageBytes...)
	}
	return p
}
