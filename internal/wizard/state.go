// Package wizard implements the per-session decoration flow: profile
// capture, intake, analysis, the results browser and the history, settings
// and help side views.
package wizard

import (
	"context"
	"errors"
	"time"

	"luminadecor/internal/ai"
	"luminadecor/internal/intake"
	"luminadecor/models"
)

// State names one screen of the wizard.
type State string

const (
	StateLogin           State = "LOGIN"
	StateUpload          State = "UPLOAD"
	StateEventSelection  State = "EVENT_SELECTION"
	StateBudgetSelection State = "BUDGET_SELECTION"
	StateAnalyzing       State = "ANALYZING"
	StateResults         State = "RESULTS"
	StateHistory         State = "HISTORY"
	StateSettings        State = "SETTINGS"
	StateHelp            State = "HELP"
	StateError           State = "ERROR"
)

func (s State) isSubView() bool {
	return s == StateHistory || s == StateSettings || s == StateHelp
}

func (s State) isIntake() bool {
	return s == StateUpload || s == StateEventSelection || s == StateBudgetSelection
}

// User-facing messages. Raw errors are only logged.
const (
	MessageAnalysisFailed    = "Failed to analyze the room. Please try again with a clearer image."
	MessageAnalysisCancelled = "The analysis was cancelled. Start again whenever you're ready."
	MessageVariationsFailed  = "We couldn't generate previews this time. Please try again."
	MessageVariationsPartial = "Some previews could not be generated."
	MessageHistoryNotSaved   = "This design could not be saved to your history."
)

var (
	// ErrInvalidTransition is returned when an operation is not allowed in the current state.
	ErrInvalidTransition = errors.New("wizard: operation not allowed in current state")
	// ErrProfileRequired is returned by Login when name or email is blank.
	ErrProfileRequired = errors.New("wizard: name and email are required")
	// ErrMissingImage is the precondition failure for analysis and variations.
	ErrMissingImage = errors.New("wizard: no room image selected")
	// ErrNoResult is returned by results operations when no analysis is loaded.
	ErrNoResult = errors.New("wizard: no analysis result")
	// ErrHistoryNotFound is returned when restoring an id that is not stored.
	ErrHistoryNotFound = errors.New("wizard: history entry not found")
	// ErrServiceUnavailable is returned when no analysis or image client is configured.
	ErrServiceUnavailable = errors.New("wizard: ai service not configured")
	// ErrAnalysisCancelled is returned by SelectBudget when CancelAnalysis or a
	// reset superseded the call.
	ErrAnalysisCancelled = errors.New("wizard: analysis cancelled")
)

// Analyzer produces a decoration plan for a room photo.
type Analyzer interface {
	AnalyzeRoom(ctx context.Context, req ai.AnalysisRequest) (models.AnalysisResult, error)
}

// Visualizer renders one decorated variation of a room photo.
type Visualizer interface {
	GenerateVariation(ctx context.Context, req ai.VariationRequest) (string, error)
}

// HistoryStore persists completed analyses per owner.
type HistoryStore interface {
	Append(ctx context.Context, owner string, entry models.NewHistoryItem) (models.HistoryItem, error)
	List(ctx context.Context, owner string) []models.HistoryItem
	Get(ctx context.Context, owner, id string) (models.HistoryItem, bool)
	Delete(ctx context.Context, owner, id string) ([]models.HistoryItem, error)
	Clear(ctx context.Context, owner string) error
}

// Deps wires the collaborators shared by every session.
type Deps struct {
	Analyzer         Analyzer
	Visualizer       Visualizer
	History          HistoryStore
	Collector        *intake.Collector
	AnalysisTimeout  time.Duration
	VariationTimeout time.Duration
}

const (
	defaultAnalysisTimeout  = 2 * time.Minute
	defaultVariationTimeout = 3 * time.Minute
)

func (d Deps) withDefaults() Deps {
	if d.Collector == nil {
		d.Collector = intake.NewCollector(0)
	}
	if d.AnalysisTimeout <= 0 {
		d.AnalysisTimeout = defaultAnalysisTimeout
	}
	if d.VariationTimeout <= 0 {
		d.VariationTimeout = defaultVariationTimeout
	}
	return d
}
