package wizard

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"luminadecor/internal/ai"
	"luminadecor/internal/intake"
	"luminadecor/internal/log"
	"luminadecor/internal/results"
	"luminadecor/models"
)

// Session is the wizard state of one browser session. Every mutation is
// serialised by mu; external calls run without holding it.
type Session struct {
	mu   sync.Mutex
	deps Deps

	token    string
	state    State
	profile  *models.UserProfile
	language intake.Language
	settings models.UserSettings
	prefs    models.IntakePreferences
	browser  *results.Browser
	history  []models.HistoryItem

	errorMessage string
	notice       string

	analysisSeq    uint64
	cancelAnalysis context.CancelFunc
}

// NewSession returns a logged-out session.
func NewSession(token string, deps Deps) *Session {
	return &Session{
		deps:     deps.withDefaults(),
		token:    token,
		state:    StateLogin,
		language: intake.ResolveLanguage(intake.DefaultLanguage),
		settings: models.DefaultSettings(),
	}
}

// Token returns the identifier the session is registered under.
func (s *Session) Token() string {
	return s.token
}

// State returns the current screen.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Collector returns the upload policy used by the session.
func (s *Session) Collector() *intake.Collector {
	return s.deps.Collector
}

func (s *Session) logContext(ctx context.Context) context.Context {
	return log.WithSession(ctx, s.token)
}

// transition must be called with mu held.
func (s *Session) transition(ctx context.Context, to State) {
	from := s.state
	s.state = to
	log.Debug(s.logContext(ctx), "wizard transition", "from", from, "to", to)
}

func (s *Session) invalid(op string) error {
	return fmt.Errorf("%w: %s in %s", ErrInvalidTransition, op, s.state)
}

func (s *Session) owner() string {
	if s.profile == nil {
		return ""
	}
	return s.profile.Email
}

// Login captures the profile and opens the upload step. Nothing is verified
// beyond non-empty name and email.
func (s *Session) Login(name, email, role, languageCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLogin {
		return s.invalid("login")
	}
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return ErrProfileRequired
	}

	profile := models.NewUserProfile(name, email, role)
	s.profile = &profile
	s.language = intake.ResolveLanguage(languageCode)
	s.transition(context.Background(), StateUpload)
	return nil
}

// UploadImage validates raw file bytes and selects them as the room photo.
func (s *Session) UploadImage(data []byte) error {
	img, err := s.deps.Collector.SelectImage(data)
	if err != nil {
		return err
	}
	return s.SelectImage(img)
}

// UploadDataURL decodes a base64 data URL and selects it as the room photo.
func (s *Session) UploadDataURL(value string) error {
	img, err := s.deps.Collector.DecodeDataURL(value)
	if err != nil {
		return err
	}
	return s.SelectImage(img)
}

// SelectImage stores a decoded photo and moves to event selection.
func (s *Session) SelectImage(img intake.Image) error {
	if len(img.Bytes) == 0 || img.Preview == "" {
		return intake.ErrEmptyImage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateUpload {
		return s.invalid("select image")
	}
	s.prefs.ImageBytes = append([]byte(nil), img.Bytes...)
	s.prefs.ImageMIME = img.MIMEType
	s.prefs.ImagePreview = img.Preview
	s.errorMessage = ""
	s.transition(context.Background(), StateEventSelection)
	return nil
}

// BackToUpload returns from event selection to the upload step.
func (s *Session) BackToUpload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateEventSelection {
		return s.invalid("back to upload")
	}
	s.transition(context.Background(), StateUpload)
	return nil
}

// BackToEvent returns from budget selection to event selection.
func (s *Session) BackToEvent() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateBudgetSelection {
		return s.invalid("back to event")
	}
	s.transition(context.Background(), StateEventSelection)
	return nil
}

// SelectEvent records the event type and moves to budget selection.
func (s *Session) SelectEvent(label string) error {
	eventType, err := intake.SelectEventType(label)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateEventSelection {
		return s.invalid("select event")
	}
	s.prefs.EventType = eventType
	s.transition(context.Background(), StateBudgetSelection)
	return nil
}

// SelectBudget records the budget and runs the analysis. It returns once
// the session has left ANALYZING: nil in RESULTS, an error in ERROR.
func (s *Session) SelectBudget(ctx context.Context, choice string) error {
	budget, err := intake.SelectBudget(choice)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.state != StateBudgetSelection {
		err := s.invalid("select budget")
		s.mu.Unlock()
		return err
	}
	s.prefs.Budget = budget
	s.errorMessage = ""
	s.notice = ""
	s.analysisSeq++
	seq := s.analysisSeq
	callCtx, cancel := context.WithTimeout(ctx, s.deps.AnalysisTimeout)
	s.cancelAnalysis = cancel
	prefs := s.prefs.Clone()
	language := s.language
	s.transition(ctx, StateAnalyzing)
	s.mu.Unlock()
	defer cancel()

	logCtx := s.logContext(ctx)

	var result models.AnalysisResult
	switch {
	case !prefs.HasImage():
		err = ErrMissingImage
		log.Error(logCtx, "analysis precondition failed", "error", err)
	case s.deps.Analyzer == nil:
		err = ErrServiceUnavailable
		log.Error(logCtx, "analysis service unavailable", "error", err)
	default:
		log.Info(logCtx, "analysis started", "event_type", prefs.EventType, "budget", prefs.Budget, "image_bytes", len(prefs.ImageBytes))
		result, err = s.deps.Analyzer.AnalyzeRoom(callCtx, ai.AnalysisRequest{
			Image:     prefs.ImageBytes,
			MIMEType:  prefs.ImageMIME,
			EventType: prefs.EventType,
			Budget:    prefs.Budget,
			Language:  language.Name,
			LowBudget: intake.IsLowBudget(prefs.Budget),
		})
		if err == nil {
			err = ai.Validate(result)
		}
		if errIsCancellation(err) {
			log.Error(logCtx, "analysis timed out or was cancelled", "error", err, "timeout", s.deps.AnalysisTimeout)
		} else if err != nil {
			log.Error(logCtx, "analysis failed", "error", err)
		}
	}

	s.mu.Lock()
	if s.analysisSeq != seq || s.state != StateAnalyzing {
		s.mu.Unlock()
		log.Info(logCtx, "analysis result discarded", "state", s.State())
		return ErrAnalysisCancelled
	}
	s.cancelAnalysis = nil
	if err != nil {
		s.errorMessage = MessageAnalysisFailed
		s.transition(ctx, StateError)
		s.mu.Unlock()
		return fmt.Errorf("wizard: analysis: %w", err)
	}

	s.browser = results.NewBrowser(result)
	autoSave := s.settings.AutoSave
	owner := s.owner()
	s.transition(ctx, StateResults)
	s.mu.Unlock()

	log.Info(logCtx, "analysis completed", "themes", len(result.Themes), "recommended", result.RecommendedThemeID)

	if autoSave && prefs.HasImage() {
		s.saveHistory(ctx, owner, prefs, result)
	}
	return nil
}

// saveHistory appends the finished analysis. Failures are logged and leave
// the session untouched apart from a notice.
func (s *Session) saveHistory(ctx context.Context, owner string, prefs models.IntakePreferences, result models.AnalysisResult) {
	logCtx := s.logContext(ctx)
	if s.deps.History == nil || owner == "" {
		log.Debug(logCtx, "history not saved", "reason", "no store or owner")
		return
	}

	_, err := s.deps.History.Append(ctx, owner, models.NewHistoryItem{
		EventType:      prefs.EventType,
		Budget:         prefs.Budget,
		ImagePreview:   prefs.ImagePreview,
		ImageBase64:    base64.StdEncoding.EncodeToString(prefs.ImageBytes),
		AnalysisResult: result,
	})
	if err != nil {
		log.Error(logCtx, "failed to save history entry", "error", err)
		s.mu.Lock()
		s.notice = MessageHistoryNotSaved
		s.mu.Unlock()
		return
	}

	items := s.deps.History.List(ctx, owner)
	s.mu.Lock()
	s.history = items
	s.mu.Unlock()
}

// CancelAnalysis aborts an analysis in flight and moves to ERROR.
func (s *Session) CancelAnalysis() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAnalyzing {
		return s.invalid("cancel analysis")
	}
	s.abortAnalysis()
	s.errorMessage = MessageAnalysisCancelled
	s.transition(context.Background(), StateError)
	return nil
}

// abortAnalysis must be called with mu held.
func (s *Session) abortAnalysis() {
	if s.cancelAnalysis != nil {
		s.cancelAnalysis()
		s.cancelAnalysis = nil
	}
	s.analysisSeq++
}

// Reset starts a new project: empty intake, no result, UPLOAD. Calling it
// twice is the same as calling it once.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return s.invalid("reset")
	}
	s.reset()
	s.transition(context.Background(), StateUpload)
	return nil
}

// reset must be called with mu held.
func (s *Session) reset() {
	if s.state == StateAnalyzing {
		s.abortAnalysis()
	}
	s.prefs = models.IntakePreferences{}
	s.browser = nil
	s.errorMessage = ""
	s.notice = ""
}

// CanStartOver reports whether the new-project affordance is shown.
func (s *Session) CanStartOver() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canStartOver()
}

func (s *Session) canStartOver() bool {
	if s.profile == nil {
		return false
	}
	switch {
	case s.state == StateLogin, s.state == StateAnalyzing, s.state.isIntake(), s.state.isSubView():
		return false
	default:
		return true
	}
}

// Logout clears the profile and the project and returns to LOGIN.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return s.invalid("logout")
	}
	s.reset()
	s.profile = nil
	s.history = nil
	s.transition(context.Background(), StateLogin)
	return nil
}

func restoredPreferences(item models.HistoryItem) models.IntakePreferences {
	prefs := models.IntakePreferences{
		ImagePreview: item.ImagePreview,
		EventType:    item.EventType,
		Budget:       item.Budget,
	}
	if data, err := base64.StdEncoding.DecodeString(item.ImageBase64); err == nil && len(data) > 0 {
		prefs.ImageBytes = data
		prefs.ImageMIME = http.DetectContentType(data)
	}
	if header, _, ok := strings.Cut(item.ImagePreview, ","); ok && strings.HasPrefix(header, "data:") {
		if mime := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64"); mime != "" {
			prefs.ImageMIME = mime
		}
	}
	return prefs
}

func errIsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
