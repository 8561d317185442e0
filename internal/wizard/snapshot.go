package wizard

import (
	"strings"
	"time"

	"luminadecor/internal/intake"
	"luminadecor/internal/results"
	"luminadecor/models"
)

// Snapshot is a read-only copy of a session used for rendering.
type Snapshot struct {
	State        State                    `json:"state"`
	Profile      *models.UserProfile      `json:"profile,omitempty"`
	Language     string                   `json:"language"`
	Settings     models.UserSettings      `json:"settings"`
	Intake       models.IntakePreferences `json:"intake"`
	HasImage     bool                     `json:"hasImage"`
	ErrorMessage string                   `json:"errorMessage,omitempty"`
	Notice       string                   `json:"notice,omitempty"`
	CanStartOver bool                     `json:"canStartOver"`
	Results      *ResultsView             `json:"results,omitempty"`
	History      []HistoryEntry           `json:"history,omitempty"`
}

// ResultsView is the results sub-wizard part of a Snapshot.
type ResultsView struct {
	Analysis        models.AnalysisResult `json:"analysis"`
	SelectedThemeID string                `json:"selectedThemeId"`
	Step            int                   `json:"step"`
	Generating      bool                  `json:"generating"`
	Degraded        bool                  `json:"degraded"`
	Totals          *results.Totals       `json:"totals,omitempty"`
}

// ActiveTheme resolves the selected theme of the view, or nil.
func (v *ResultsView) ActiveTheme() *models.DecorTheme {
	if v == nil {
		return nil
	}
	return v.Analysis.ThemeByID(v.SelectedThemeID)
}

// HistoryEntry summarises one stored analysis for the gallery.
type HistoryEntry struct {
	ID                   string    `json:"id"`
	Timestamp            time.Time `json:"timestamp"`
	EventType            string    `json:"eventType"`
	Budget               string    `json:"budget"`
	ImagePreview         string    `json:"imagePreview"`
	ThemeCount           int       `json:"themeCount"`
	RecommendedThemeName string    `json:"recommendedThemeName,omitempty"`
}

// WithoutInlineImages returns a copy with every data: URL removed: the intake
// preview, history thumbnails and generated variations. Remote URLs are kept.
func (s Snapshot) WithoutInlineImages() Snapshot {
	s.Intake.ImagePreview = ""
	if s.History != nil {
		history := make([]HistoryEntry, len(s.History))
		for i, entry := range s.History {
			entry.ImagePreview = ""
			history[i] = entry
		}
		s.History = history
	}
	if s.Results != nil {
		view := *s.Results
		view.Analysis = view.Analysis.Clone()
		for i := range view.Analysis.Themes {
			theme := &view.Analysis.Themes[i]
			kept := theme.GeneratedImageURLs[:0]
			for _, url := range theme.GeneratedImageURLs {
				if !isInlineImage(url) {
					kept = append(kept, url)
				}
			}
			if len(kept) == 0 {
				kept = nil
			}
			theme.GeneratedImageURLs = kept
		}
		s.Results = &view
	}
	return s
}

func isInlineImage(url string) bool {
	return strings.HasPrefix(strings.ToLower(url), "data:")
}

// LanguageInfo returns the display language of the snapshot.
func (s Snapshot) LanguageInfo() intake.Language {
	return intake.ResolveLanguage(s.Language)
}

// Snapshot copies the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:        s.state,
		Language:     s.language.Code,
		Settings:     s.settings,
		Intake:       s.prefs.Clone(),
		HasImage:     s.prefs.HasImage(),
		ErrorMessage: s.errorMessage,
		Notice:       s.notice,
		CanStartOver: s.canStartOver(),
	}
	if s.profile != nil {
		profile := *s.profile
		snap.Profile = &profile
	}
	if s.browser != nil {
		view := &ResultsView{
			Analysis:        s.browser.Result(),
			SelectedThemeID: s.browser.SelectedThemeID(),
			Step:            s.browser.Step(),
			Generating:      s.browser.Generating(),
			Degraded:        s.browser.Degraded(),
		}
		if totals, err := s.browser.ShoppingTotals(); err == nil {
			view.Totals = &totals
		}
		snap.Results = view
	}
	for _, item := range s.history {
		entry := HistoryEntry{
			ID:           item.ID,
			Timestamp:    item.Timestamp,
			EventType:    item.EventType,
			Budget:       item.Budget,
			ImagePreview: item.ImagePreview,
			ThemeCount:   len(item.AnalysisResult.Themes),
		}
		if rec := item.AnalysisResult.Recommended(); rec != nil {
			entry.RecommendedThemeName = rec.Name
		}
		snap.History = append(snap.History, entry)
	}
	return snap
}
