// Package history keeps a bounded, newest-first log of completed analysis
// sessions per owner in a single keyed database record.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	applog "luminadecor/internal/log"
	"luminadecor/models"
)

const (
	// KeyPrefix namespaces the per-owner history record.
	KeyPrefix = "lumina_decor_history"

	DefaultLimit    = 5
	DefaultMaxBytes = 4 << 20
)

var (
	// ErrQuotaExceeded is returned when the encoded history would not fit the
	// configured storage quota. The previous state is kept.
	ErrQuotaExceeded = errors.New("history: storage quota exceeded")
	// ErrUnknownVersion marks a record written with a layout this build cannot read.
	ErrUnknownVersion = errors.New("history: unknown record version")
	// ErrNoOwner is returned for operations without an owner key.
	ErrNoOwner = errors.New("history: owner must not be empty")
)

// Options sizes the store.
type Options struct {
	Limit    int
	MaxBytes int
	Now      func() time.Time
	NewID    func() string
}

// Store persists history records through gorm.
type Store struct {
	db       *gorm.DB
	limit    int
	maxBytes int
	now      func() time.Time
	newID    func() string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New builds a Store over an already migrated database.
func New(db *gorm.DB, opts Options) (*Store, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.NewString() }
	}
	return &Store{
		db:       db,
		limit:    opts.Limit,
		maxBytes: opts.MaxBytes,
		now:      opts.Now,
		newID:    opts.NewID,
		locks:    make(map[string]*sync.Mutex),
	}, nil
}

// Limit returns the maximum number of retained entries.
func (s *Store) Limit() int {
	return s.limit
}

// Key returns the record key for an owner.
func Key(owner string) string {
	return KeyPrefix + ":" + strings.ToLower(strings.TrimSpace(owner))
}

// Append stores a new entry at the head of the owner's history, evicting the
// oldest entries beyond the limit.
func (s *Store) Append(ctx context.Context, owner string, entry models.NewHistoryItem) (models.HistoryItem, error) {
	if strings.TrimSpace(owner) == "" {
		return models.HistoryItem{}, ErrNoOwner
	}
	unlock := s.lock(owner)
	defer unlock()

	current, err := s.load(ctx, owner)
	if errors.Is(err, ErrUnknownVersion) {
		return models.HistoryItem{}, err
	}
	if err != nil {
		applog.Error(ctx, "history record unreadable, starting over", "owner", Key(owner), "error", err)
		current = nil
	}

	item := models.HistoryItem{
		ID:             s.newID(),
		Timestamp:      s.now(),
		EventType:      entry.EventType,
		Budget:         entry.Budget,
		ImagePreview:   entry.ImagePreview,
		ImageBase64:    entry.ImageBase64,
		AnalysisResult: entry.AnalysisResult.Clone(),
	}

	updated := make([]models.HistoryItem, 0, len(current)+1)
	updated = append(updated, item)
	updated = append(updated, current...)
	if len(updated) > s.limit {
		updated = updated[:s.limit]
	}

	if err := s.save(ctx, owner, updated); err != nil {
		return models.HistoryItem{}, err
	}
	applog.Debug(ctx, "history entry appended", "owner", Key(owner), "id", item.ID, "count", len(updated))
	return item.Clone(), nil
}

// List returns the owner's history newest-first. Missing or corrupt records
// yield an empty list.
func (s *Store) List(ctx context.Context, owner string) []models.HistoryItem {
	if strings.TrimSpace(owner) == "" {
		return []models.HistoryItem{}
	}
	items, err := s.load(ctx, owner)
	if err != nil {
		applog.Error(ctx, "failed to load history", "owner", Key(owner), "error", err)
		return []models.HistoryItem{}
	}
	if items == nil {
		return []models.HistoryItem{}
	}
	return items
}

// Get returns a single entry by id.
func (s *Store) Get(ctx context.Context, owner, id string) (models.HistoryItem, bool) {
	for _, item := range s.List(ctx, owner) {
		if item.ID == id {
			return item, true
		}
	}
	return models.HistoryItem{}, false
}

// Delete removes the entry with the given id and returns what remains. Unknown
// ids leave the history untouched.
func (s *Store) Delete(ctx context.Context, owner, id string) ([]models.HistoryItem, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, ErrNoOwner
	}
	unlock := s.lock(owner)
	defer unlock()

	current, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}

	remaining := make([]models.HistoryItem, 0, len(current))
	for _, item := range current {
		if item.ID != id {
			remaining = append(remaining, item)
		}
	}
	if len(remaining) == len(current) {
		return remaining, nil
	}

	if err := s.save(ctx, owner, remaining); err != nil {
		return nil, err
	}
	applog.Debug(ctx, "history entry deleted", "owner", Key(owner), "id", id, "count", len(remaining))
	return remaining, nil
}

// Clear removes the owner's history record entirely.
func (s *Store) Clear(ctx context.Context, owner string) error {
	if strings.TrimSpace(owner) == "" {
		return ErrNoOwner
	}
	unlock := s.lock(owner)
	defer unlock()

	err := s.db.WithContext(ctx).Where("record_key = ?", Key(owner)).Delete(&models.HistoryRecord{}).Error
	if err != nil {
		return fmt.Errorf("history: clear: %w", err)
	}
	applog.Debug(ctx, "history cleared", "owner", Key(owner))
	return nil
}

func (s *Store) load(ctx context.Context, owner string) ([]models.HistoryItem, error) {
	var record models.HistoryRecord
	err := s.db.WithContext(ctx).Where("record_key = ?", Key(owner)).Limit(1).Find(&record).Error
	if err != nil {
		return nil, fmt.Errorf("history: load: %w", err)
	}
	if record.ID == 0 {
		return nil, nil
	}
	if record.Version != models.HistoryRecordVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVersion, record.Version)
	}

	var items []models.HistoryItem
	if err := json.Unmarshal(record.Items, &items); err != nil {
		return nil, fmt.Errorf("history: decode: %w", err)
	}
	return items, nil
}

func (s *Store) save(ctx context.Context, owner string, items []models.HistoryItem) error {
	encoded, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("history: encode: %w", err)
	}
	if len(encoded) > s.maxBytes {
		return fmt.Errorf("%w: %d bytes over a %d byte quota", ErrQuotaExceeded, len(encoded), s.maxBytes)
	}

	record := models.HistoryRecord{
		Key:       Key(owner),
		Version:   models.HistoryRecordVersion,
		Items:     datatypes.JSON(encoded),
		UpdatedAt: s.now(),
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"version", "items", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("history: save: %w", err)
	}
	return nil
}

func (s *Store) lock(owner string) func() {
	key := Key(owner)
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}
