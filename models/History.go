package models

import (
	"time"

	"gorm.io/datatypes"
)

// HistoryItem is one completed analysis session kept for offline revisits.
type HistoryItem struct {
	ID             string         `json:"id"`
	Timestamp      time.Time      `json:"timestamp"`
	EventType      string         `json:"eventType"`
	Budget         string         `json:"budget"`
	ImagePreview   string         `json:"imagePreview"`
	ImageBase64    string         `json:"imageBase64"`
	AnalysisResult AnalysisResult `json:"analysisResult"`
}

// NewHistoryItem carries the caller-provided fields of a HistoryItem; the store
// assigns the id and timestamp.
type NewHistoryItem struct {
	EventType      string
	Budget         string
	ImagePreview   string
	ImageBase64    string
	AnalysisResult AnalysisResult
}

// Clone returns a deep copy of the item.
func (h HistoryItem) Clone() HistoryItem {
	h.AnalysisResult = h.AnalysisResult.Clone()
	return h
}

// HistoryRecordVersion tags the layout of HistoryRecord.Items.
const HistoryRecordVersion = 1

// HistoryRecord is the single keyed record holding an owner's ordered history.
type HistoryRecord struct {
	ID        uint           `gorm:"primaryKey"`
	Key       string         `gorm:"column:record_key;uniqueIndex;size:255;not null"`
	Version   int            `gorm:"not null;default:1"`
	Items     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}
