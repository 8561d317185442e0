package intake

import "strings"

// Event is an enumerated occasion on the event selection screen.
type Event struct {
	ID    string
	Label string
}

// Bracket is a predefined budget range. ID is the exact string sent to the
// analysis service.
type Bracket struct {
	ID          string
	Label       string
	Description string
}

// Language is a display language offered at login.
type Language struct {
	Code   string
	Name   string
	Native string
}

// DefaultLanguage is used when no or an unknown language is chosen.
const DefaultLanguage = "en"

var events = []Event{
	{ID: "Birthday", Label: "Birthday Party"},
	{ID: "Wedding/Engagement", Label: "Wedding / Engagement"},
	{ID: "Anniversary", Label: "Anniversary"},
	{ID: "Baby Shower", Label: "Baby Shower"},
	{ID: "Memorial", Label: "Memorial"},
	{ID: "Cultural Festival", Label: "Cultural Festival"},
	{ID: "House Warming", Label: "House Warming"},
	{ID: "Corporate", Label: "Office Event"},
	{ID: "Date Night", Label: "Romantic Date"},
	{ID: "Get Together", Label: "Casual Party"},
}

var brackets = []Bracket{
	{ID: "Budget (< ₹2,000)", Label: "Under ₹2,000", Description: "DIY & Wallet Friendly"},
	{ID: "Economy (₹2,000 - ₹5,000)", Label: "₹2,000 - ₹5,000", Description: "Simple & Elegant"},
	{ID: "Moderate (₹5,000 - ₹15,000)", Label: "₹5,000 - ₹15,000", Description: "Standard Celebration"},
	{ID: "Premium (₹15,000 - ₹50,000)", Label: "₹15,000 - ₹50,000", Description: "Grand Setup"},
	{ID: "Luxury (₹50,000+)", Label: "₹50,000+", Description: "Ultimate Luxury"},
}

var languages = []Language{
	{Code: "en", Name: "English", Native: "English"},
	{Code: "hi", Name: "Hindi", Native: "हिन्दी"},
	{Code: "es", Name: "Spanish", Native: "Español"},
	{Code: "fr", Name: "French", Native: "Français"},
	{Code: "de", Name: "German", Native: "Deutsch"},
	{Code: "zh", Name: "Chinese (Mandarin)", Native: "中文"},
	{Code: "ja", Name: "Japanese", Native: "日本語"},
	{Code: "ar", Name: "Arabic", Native: "العربية"},
	{Code: "ru", Name: "Russian", Native: "Русский"},
	{Code: "pt", Name: "Portuguese", Native: "Português"},
	{Code: "bn", Name: "Bengali", Native: "বাংলা"},
	{Code: "ur", Name: "Urdu", Native: "اردو"},
	{Code: "id", Name: "Indonesian", Native: "Bahasa Indonesia"},
	{Code: "it", Name: "Italian", Native: "Italiano"},
	{Code: "ko", Name: "Korean", Native: "한국어"},
	{Code: "tr", Name: "Turkish", Native: "Türkçe"},
	{Code: "ta", Name: "Tamil", Native: "தமிழ்"},
	{Code: "te", Name: "Telugu", Native: "తెలుగు"},
	{Code: "mr", Name: "Marathi", Native: "मराठी"},
	{Code: "vi", Name: "Vietnamese", Native: "Tiếng Việt"},
	{Code: "th", Name: "Thai", Native: "ไทย"},
}

// Events exposes the enumerated occasions.
func Events() []Event {
	return append([]Event(nil), events...)
}

// Brackets exposes the predefined budget ranges, cheapest first.
func Brackets() []Bracket {
	return append([]Bracket(nil), brackets...)
}

// Languages exposes the login screen's language catalogue.
func Languages() []Language {
	return append([]Language(nil), languages...)
}

// ResolveLanguage returns the catalogue entry for code, falling back to English.
func ResolveLanguage(code string) Language {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, lang := range languages {
		if lang.Code == code {
			return lang
		}
	}
	return languages[0]
}
