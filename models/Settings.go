package models

import (
	"fmt"
	"strings"
)

const (
	CurrencyINR = "INR"
	CurrencyUSD = "USD"
)

// Setting keys accepted by UserSettings.Toggle.
const (
	SettingNotifications = "enableNotifications"
	SettingAutoSave      = "autoSave"
	SettingHighContrast  = "highContrast"
)

// UserSettings holds the application preferences of the current session.
type UserSettings struct {
	Currency            string `json:"currency"`
	EnableNotifications bool   `json:"enableNotifications"`
	AutoSave            bool   `json:"autoSave"`
	HighContrast        bool   `json:"highContrast"`
}

// SettingsUpdate is a partial update; nil fields are left untouched.
type SettingsUpdate struct {
	Currency            *string
	EnableNotifications *bool
	AutoSave            *bool
	HighContrast        *bool
}

// DefaultSettings mirrors the preferences a fresh session starts with.
func DefaultSettings() UserSettings {
	return UserSettings{
		Currency:            CurrencyINR,
		EnableNotifications: true,
		AutoSave:            true,
		HighContrast:        false,
	}
}

// ValidCurrency reports whether the value is a supported display currency.
func ValidCurrency(value string) bool {
	switch value {
	case CurrencyINR, CurrencyUSD:
		return true
	default:
		return false
	}
}

// Apply merges the update into a copy of the settings.
func (s UserSettings) Apply(update SettingsUpdate) (UserSettings, error) {
	if update.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*update.Currency))
		if !ValidCurrency(currency) {
			return s, fmt.Errorf("unsupported currency: %s", *update.Currency)
		}
		s.Currency = currency
	}
	if update.EnableNotifications != nil {
		s.EnableNotifications = *update.EnableNotifications
	}
	if update.AutoSave != nil {
		s.AutoSave = *update.AutoSave
	}
	if update.HighContrast != nil {
		s.HighContrast = *update.HighContrast
	}
	return s, nil
}

// Toggle flips the named boolean setting.
func (s UserSettings) Toggle(key string) (UserSettings, error) {
	switch key {
	case SettingNotifications:
		s.EnableNotifications = !s.EnableNotifications
	case SettingAutoSave:
		s.AutoSave = !s.AutoSave
	case SettingHighContrast:
		s.HighContrast = !s.HighContrast
	default:
		return s, fmt.Errorf("unknown setting: %s", key)
	}
	return s, nil
}
