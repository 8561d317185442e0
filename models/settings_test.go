package models

import "testing"

func TestSettingsApplyMergesFields(t *testing.T) {
	t.Parallel()

	autoSave := false
	currency := "usd"
	got, err := DefaultSettings().Apply(SettingsUpdate{AutoSave: &autoSave, Currency: &currency})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if got.AutoSave {
		t.Fatal("expected autosave to be disabled")
	}
	if got.Currency != CurrencyUSD {
		t.Fatalf("Currency = %q, want %q", got.Currency, CurrencyUSD)
	}
	if !got.EnableNotifications {
		t.Fatal("expected untouched notifications flag to stay enabled")
	}
}

func TestSettingsApplyRejectsUnknownCurrency(t *testing.T) {
	t.Parallel()

	currency := "EUR"
	original := DefaultSettings()
	got, err := original.Apply(SettingsUpdate{Currency: &currency})
	if err == nil {
		t.Fatal("expected error for unsupported currency")
	}
	if got != original {
		t.Fatalf("expected settings unchanged, got %+v", got)
	}
}

func TestSettingsToggle(t *testing.T) {
	t.Parallel()

	cases := []struct {
		key   string
		check func(UserSettings) bool
	}{
		{SettingAutoSave, func(s UserSettings) bool { return !s.AutoSave }},
		{SettingNotifications, func(s UserSettings) bool { return !s.EnableNotifications }},
		{SettingHighContrast, func(s UserSettings) bool { return s.HighContrast }},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			got, err := DefaultSettings().Toggle(tt.key)
			if err != nil {
				t.Fatalf("Toggle(%q) returned error: %v", tt.key, err)
			}
			if !tt.check(got) {
				t.Fatalf("Toggle(%q) did not flip the setting: %+v", tt.key, got)
			}
		})
	}

	if _, err := DefaultSettings().Toggle("currency"); err == nil {
		t.Fatal("expected error when toggling a non-boolean setting")
	}
}
