package models

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

const (
	BudgetFriendly = "Budget-Friendly"
	BudgetModerate = "Moderate"
	BudgetPremium  = "Premium"
)

// ValidBudgetCategory reports whether the value belongs to the three-value enumeration.
func ValidBudgetCategory(value string) bool {
	switch value {
	case BudgetFriendly, BudgetModerate, BudgetPremium:
		return true
	default:
		return false
	}
}

// AnalysisResult is the structured plan returned by the analysis service.
type AnalysisResult struct {
	RoomAnalysis         RoomAnalysis `json:"roomAnalysis"`
	Themes               []DecorTheme `json:"themes"`
	RecommendedThemeID   string       `json:"recommendedThemeId"`
	RecommendationReason string       `json:"recommendationReason"`
}

type RoomAnalysis struct {
	Layout              string          `json:"layout"`
	Lighting            string          `json:"lighting"`
	Colors              string          `json:"colors"`
	OpenSpaces          string          `json:"openSpaces"`
	Furniture           string          `json:"furniture"`
	SuitableAreas       []string        `json:"suitableAreas"`
	SafetyTips          []string        `json:"safetyTips"`
	EstimatedDimensions *RoomDimensions `json:"estimatedDimensions,omitempty"`
	DecorFitAdvice      []string        `json:"decorFitAdvice,omitempty"`
	LightingSuggestions []string        `json:"lightingSuggestions,omitempty"`
	PhotoZones          []PhotoZone     `json:"photoZones,omitempty"`
	CrowdCapacity       *CrowdCapacity  `json:"crowdCapacity,omitempty"`
	ClutterCheck        *ClutterCheck   `json:"clutterCheck,omitempty"`
}

type RoomDimensions struct {
	EstimatedWidth     string `json:"estimatedWidth"`
	EstimatedHeight    string `json:"estimatedHeight"`
	WallSpaceAvailable string `json:"wallSpaceAvailable"`
	Notes              string `json:"notes"`
}

type PhotoZone struct {
	Location     string `json:"location"`
	Lighting     string `json:"lighting"`
	StandingSpot string `json:"standingSpot"`
	Reason       string `json:"reason"`
}

type CrowdCapacity struct {
	TotalCapacity    string `json:"totalCapacity"`
	StandingCapacity string `json:"standingCapacity"`
	SeatingCapacity  string `json:"seatingCapacity"`
	MovementAdvice   string `json:"movementAdvice"`
	ZoneAdvice       string `json:"zoneAdvice"`
}

type ClutterCheck struct {
	HasClutter      bool     `json:"hasClutter"`
	Recommendations []string `json:"recommendations"`
}

// DecorTheme is one themed proposal. GeneratedImageURLs is the only field
// mutated after the theme is produced.
type DecorTheme struct {
	ID                    string                   `json:"id"`
	Name                  string                   `json:"name"`
	Mood                  string                   `json:"mood"`
	ColorPalette          []string                 `json:"colorPalette"`
	PaletteDetails        *PaletteDetails          `json:"paletteDetails,omitempty"`
	VisualDescription     string                   `json:"visualDescription"`
	PlacementInstructions []string                 `json:"placementInstructions"`
	Blueprint             string                   `json:"blueprint,omitempty"`
	BackdropDesign        string                   `json:"backdropDesign"`
	BalloonArrangement    string                   `json:"balloonArrangement"`
	LightingSetup         string                   `json:"lightingSetup"`
	TableStyling          string                   `json:"tableStyling,omitempty"`
	TableSetupPlan        *TableSetup              `json:"tableSetupPlan,omitempty"`
	SpecialElements       []string                 `json:"specialElements"`
	Items                 []DecorationItem         `json:"items"`
	DIYOptions            []string                 `json:"diyOptions,omitempty"`
	StabilityTips         []string                 `json:"stabilityTips,omitempty"`
	TimeEstimates         *DecorationTimeEstimates `json:"timeEstimates,omitempty"`
	DurabilityEstimates   []DurabilityEstimate     `json:"durabilityEstimates,omitempty"`
	MusicPlaylists        []MusicPlaylist          `json:"musicPlaylists,omitempty"`
	CleaningPlan          *CleaningPlan            `json:"cleaningPlan,omitempty"`
	TotalCost             float64                  `json:"totalCost"`
	BudgetCategory        string                   `json:"budgetCategory"`
	GeneratedImageURLs    []string                 `json:"generatedImageUrls,omitempty"`
}

// DecorationItem is one line of a theme's shopping list.
type DecorationItem struct {
	Name           string  `json:"name"`
	Source         string  `json:"source"`
	ApproxPriceINR float64 `json:"approxPriceINR"`
	Quantity       string  `json:"quantity"`
	Reason         string  `json:"reason"`
}

type ColorInfo struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

type PaletteDetails struct {
	Colors       []ColorInfo `json:"colors"`
	Mood         string      `json:"mood"`
	WhySuitsRoom string      `json:"whySuitsRoom"`
}

type TableSetup struct {
	SuitableTableFound bool   `json:"suitableTableFound"`
	Placement          string `json:"placement"`
	CakePlacement      string `json:"cakePlacement"`
	CenterpieceIdeas   string `json:"centerpieceIdeas"`
	PropsArrangement   string `json:"propsArrangement"`
	FoodLayout         string `json:"foodLayout"`
}

type TimeEstimate struct {
	Task            string  `json:"task"`
	DurationMinutes float64 `json:"durationMinutes"`
}

type DecorationTimeEstimates struct {
	Breakdown        []TimeEstimate `json:"breakdown"`
	TotalTimeMinutes float64        `json:"totalTimeMinutes"`
	DifficultyLevel  string         `json:"difficultyLevel"`
}

type DurabilityEstimate struct {
	Item     string `json:"item"`
	Lifespan string `json:"lifespan"`
	Note     string `json:"note,omitempty"`
}

type MusicPlaylist struct {
	Name   string `json:"name"`
	Genre  string `json:"genre"`
	Mood   string `json:"mood"`
	Reason string `json:"reason"`
}

type CleaningPlan struct {
	TapeRemoval          string   `json:"tapeRemoval"`
	ReusableItems        []string `json:"reusableItems"`
	DisposalInstructions string   `json:"disposalInstructions"`
	WallCare             string   `json:"wallCare"`
}

// ThemeByID returns a pointer into the result's theme slice, or nil.
func (r *AnalysisResult) ThemeByID(id string) *DecorTheme {
	if r == nil {
		return nil
	}
	for i := range r.Themes {
		if r.Themes[i].ID == id {
			return &r.Themes[i]
		}
	}
	return nil
}

// Recommended resolves RecommendedThemeID, returning nil when it dangles.
func (r *AnalysisResult) Recommended() *DecorTheme {
	if r == nil {
		return nil
	}
	return r.ThemeByID(r.RecommendedThemeID)
}

// Units parses the leading number of the free-text quantity ("2 packs" -> 2).
// Quantities without a number count as one unit.
func (i DecorationItem) Units() float64 {
	q := strings.TrimSpace(i.Quantity)
	end := 0
	for end < len(q) && (unicode.IsDigit(rune(q[end])) || q[end] == '.') {
		end++
	}
	if end == 0 {
		return 1
	}
	n, err := strconv.ParseFloat(q[:end], 64)
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

// ItemsCost sums price times units over the shopping list.
func (t DecorTheme) ItemsCost() float64 {
	var total float64
	for _, item := range t.Items {
		total += item.ApproxPriceINR * item.Units()
	}
	return total
}

// CostDrift is the relative deviation of TotalCost from ItemsCost.
// It is zero when both are zero.
func (t DecorTheme) CostDrift() float64 {
	items := t.ItemsCost()
	if items == 0 {
		if t.TotalCost == 0 {
			return 0
		}
		return 1
	}
	return math.Abs(t.TotalCost-items) / items
}

// Clone returns a deep copy of the result.
func (r AnalysisResult) Clone() AnalysisResult {
	out := r
	out.RoomAnalysis = r.RoomAnalysis.clone()
	if r.Themes != nil {
		out.Themes = make([]DecorTheme, len(r.Themes))
		for i, theme := range r.Themes {
			out.Themes[i] = theme.Clone()
		}
	}
	return out
}

func (a RoomAnalysis) clone() RoomAnalysis {
	out := a
	out.SuitableAreas = cloneSlice(a.SuitableAreas)
	out.SafetyTips = cloneSlice(a.SafetyTips)
	out.DecorFitAdvice = cloneSlice(a.DecorFitAdvice)
	out.LightingSuggestions = cloneSlice(a.LightingSuggestions)
	out.PhotoZones = cloneSlice(a.PhotoZones)
	if a.EstimatedDimensions != nil {
		dims := *a.EstimatedDimensions
		out.EstimatedDimensions = &dims
	}
	if a.CrowdCapacity != nil {
		capacity := *a.CrowdCapacity
		out.CrowdCapacity = &capacity
	}
	if a.ClutterCheck != nil {
		check := *a.ClutterCheck
		check.Recommendations = cloneSlice(a.ClutterCheck.Recommendations)
		out.ClutterCheck = &check
	}
	return out
}

// Clone returns a deep copy of the theme.
func (t DecorTheme) Clone() DecorTheme {
	out := t
	out.ColorPalette = cloneSlice(t.ColorPalette)
	out.PlacementInstructions = cloneSlice(t.PlacementInstructions)
	out.SpecialElements = cloneSlice(t.SpecialElements)
	out.Items = cloneSlice(t.Items)
	out.DIYOptions = cloneSlice(t.DIYOptions)
	out.StabilityTips = cloneSlice(t.StabilityTips)
	out.DurabilityEstimates = cloneSlice(t.DurabilityEstimates)
	out.MusicPlaylists = cloneSlice(t.MusicPlaylists)
	out.GeneratedImageURLs = cloneSlice(t.GeneratedImageURLs)
	if t.PaletteDetails != nil {
		details := *t.PaletteDetails
		details.Colors = cloneSlice(t.PaletteDetails.Colors)
		out.PaletteDetails = &details
	}
	if t.TableSetupPlan != nil {
		plan := *t.TableSetupPlan
		out.TableSetupPlan = &plan
	}
	if t.TimeEstimates != nil {
		estimates := *t.TimeEstimates
		estimates.Breakdown = cloneSlice(t.TimeEstimates.Breakdown)
		out.TimeEstimates = &estimates
	}
	if t.CleaningPlan != nil {
		plan := *t.CleaningPlan
		plan.ReusableItems = cloneSlice(t.CleaningPlan.ReusableItems)
		out.CleaningPlan = &plan
	}
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append(make([]T, 0, len(in)), in...)
}
