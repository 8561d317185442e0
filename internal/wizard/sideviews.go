package wizard

import (
	"context"

	"luminadecor/internal/log"
	"luminadecor/internal/results"
	"luminadecor/models"
)

// canOpenSideView must be called with mu held.
func (s *Session) canOpenSideView() bool {
	return s.profile != nil && s.state != StateLogin && s.state != StateAnalyzing
}

// OpenHistory refreshes the history list from the store and shows it.
func (s *Session) OpenHistory(ctx context.Context) error {
	s.mu.Lock()
	if !s.canOpenSideView() {
		err := s.invalid("open history")
		s.mu.Unlock()
		return err
	}
	owner := s.owner()
	s.mu.Unlock()

	var items []models.HistoryItem
	if s.deps.History != nil {
		items = s.deps.History.List(ctx, owner)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.canOpenSideView() {
		return s.invalid("open history")
	}
	s.history = items
	s.transition(ctx, StateHistory)
	return nil
}

// RestoreHistory loads a stored analysis into the session and shows its
// results with the recommended theme selected.
func (s *Session) RestoreHistory(ctx context.Context, id string) error {
	s.mu.Lock()
	if !s.canOpenSideView() {
		err := s.invalid("restore history")
		s.mu.Unlock()
		return err
	}
	owner := s.owner()
	s.mu.Unlock()

	if s.deps.History == nil {
		return ErrHistoryNotFound
	}
	item, ok := s.deps.History.Get(ctx, owner, id)
	if !ok {
		return ErrHistoryNotFound
	}

	prefs := restoredPreferences(item)
	browser := results.NewBrowser(item.AnalysisResult)
	if browser.Degraded() {
		log.Warn(s.logContext(ctx), "restored analysis has unresolved recommended theme", "history_id", id, "recommended", item.AnalysisResult.RecommendedThemeID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.canOpenSideView() {
		return s.invalid("restore history")
	}
	s.prefs = prefs
	s.browser = browser
	s.errorMessage = ""
	s.notice = ""
	s.transition(ctx, StateResults)
	return nil
}

// DeleteHistory removes one stored entry.
func (s *Session) DeleteHistory(ctx context.Context, id string) error {
	s.mu.Lock()
	if s.profile == nil {
		err := s.invalid("delete history")
		s.mu.Unlock()
		return err
	}
	owner := s.owner()
	s.mu.Unlock()

	if s.deps.History == nil {
		return nil
	}
	items, err := s.deps.History.Delete(ctx, owner, id)
	if err != nil {
		log.Error(s.logContext(ctx), "failed to delete history entry", "history_id", id, "error", err)
		return err
	}

	s.mu.Lock()
	s.history = items
	s.mu.Unlock()
	return nil
}

// ClearHistory removes every stored entry of the current profile.
func (s *Session) ClearHistory(ctx context.Context) error {
	s.mu.Lock()
	if s.profile == nil {
		err := s.invalid("clear history")
		s.mu.Unlock()
		return err
	}
	owner := s.owner()
	s.mu.Unlock()

	if s.deps.History != nil {
		if err := s.deps.History.Clear(ctx, owner); err != nil {
			log.Error(s.logContext(ctx), "failed to clear history", "error", err)
			return err
		}
	}

	s.mu.Lock()
	s.history = nil
	s.mu.Unlock()
	log.Info(s.logContext(ctx), "history cleared")
	return nil
}

// OpenSettings shows the settings view.
func (s *Session) OpenSettings() error {
	return s.openSubView(StateSettings)
}

// OpenHelp shows the help view.
func (s *Session) OpenHelp() error {
	return s.openSubView(StateHelp)
}

func (s *Session) openSubView(to State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.canOpenSideView() {
		return s.invalid("open " + string(to))
	}
	s.transition(context.Background(), to)
	return nil
}

// CloseSubView leaves history, settings or help for the results when an
// analysis is loaded, otherwise for the upload step.
func (s *Session) CloseSubView() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.isSubView() {
		return s.invalid("close view")
	}
	if s.browser != nil {
		s.transition(context.Background(), StateResults)
	} else {
		s.transition(context.Background(), StateUpload)
	}
	return nil
}

// UpdateProfile renames the user and changes their role. Blank values keep
// the current ones.
func (s *Session) UpdateProfile(name, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return s.invalid("update profile")
	}
	profile := *s.profile
	if name != "" {
		profile = profile.WithName(name)
		if profile.Name == "" {
			return ErrProfileRequired
		}
	}
	profile = profile.WithRole(role)
	s.profile = &profile
	return nil
}

// UpdateSettings applies a partial settings update.
func (s *Session) UpdateSettings(update models.SettingsUpdate) (models.UserSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return s.settings, s.invalid("update settings")
	}
	next, err := s.settings.Apply(update)
	if err != nil {
		return s.settings, err
	}
	s.settings = next
	return next, nil
}

// ToggleSetting flips one boolean preference.
func (s *Session) ToggleSetting(key string) (models.UserSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return s.settings, s.invalid("toggle setting")
	}
	next, err := s.settings.Toggle(key)
	if err != nil {
		return s.settings, err
	}
	s.settings = next
	return next, nil
}
