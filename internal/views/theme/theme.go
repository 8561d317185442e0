package theme

import (
	"strings"

	"luminadecor/models"
)

// Option represents a selectable theme exposed to the UI.
type Option struct {
	Value string
	Label string
}

// Shell contains resolved styling primitives for the application shell.
type Shell struct {
	Key          string
	BodyClass    string
	ShellClass   string
	PanelClass   string
	BorderClass  string
	AccentClass  string
	MutedClass   string
	PrimaryClass string
}

const (
	// DefaultKey defines the fallback theme when no preference exists.
	DefaultKey = "standard"
	// HighContrastKey is selected by the high-contrast accessibility setting.
	HighContrastKey = "high_contrast"
)

var catalogue = map[string]Shell{
	DefaultKey: {
		Key:          DefaultKey,
		BodyClass:    "min-h-screen bg-slate-50 text-slate-800",
		ShellClass:   "lumina-shell light",
		PanelClass:   "rounded-2xl bg-white shadow-sm",
		BorderClass:  "border border-slate-200",
		AccentClass:  "text-violet-700",
		MutedClass:   "text-slate-500",
		PrimaryClass: "rounded-xl bg-violet-600 px-4 py-2 font-semibold text-white hover:bg-violet-700",
	},
	HighContrastKey: {
		Key:          HighContrastKey,
		BodyClass:    "min-h-screen bg-black text-white",
		ShellClass:   "lumina-shell high-contrast",
		PanelClass:   "rounded-2xl bg-black",
		BorderClass:  "border-2 border-yellow-300",
		AccentClass:  "text-yellow-300",
		MutedClass:   "text-white",
		PrimaryClass: "rounded-xl border-2 border-white bg-yellow-300 px-4 py-2 font-bold text-black",
	},
}

var options = []Option{
	{Value: DefaultKey, Label: "Standard"},
	{Value: HighContrastKey, Label: "High contrast"},
}

// Resolve returns the registered shell for the provided key.
func Resolve(key string) Shell {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if value, ok := catalogue[normalized]; ok {
		return value
	}
	return catalogue[DefaultKey]
}

// ForSettings picks the shell matching the user's accessibility preference.
func ForSettings(settings models.UserSettings) Shell {
	if settings.HighContrast {
		return catalogue[HighContrastKey]
	}
	return catalogue[DefaultKey]
}

// Options exposes the available shells.
func Options() []Option {
	return options
}
